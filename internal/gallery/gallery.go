// File: internal/gallery/gallery.go
package gallery

import (
	"context"
	"time"

	"pixdrop/pkg/storage"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	msgLoadFailed   = "Failed to load images"
	msgDeleted      = "Image deleted"
	msgDeleteFailed = "Failed to delete image"
	msgCopied       = "URL copied to clipboard!"

	DefaultPageSize = 100
)

// StoredObject is one image as displayed by the gallery
type StoredObject struct {
	Name      string
	PublicURL string
	CreatedAt time.Time
	SizeBytes int64
}

type GalleryOptions struct {
	PageSize  int
	Clipboard Clipboard
	Opener    Opener
}

// Gallery mirrors the bucket listing and handles per-entry actions.
// Like Uploader it is owned by the event loop
type Gallery struct {
	ctx       context.Context
	bucket    storage.Bucket
	notifier  Notifier
	clipboard Clipboard
	opener    Opener
	pageSize  int

	images   []StoredObject
	loading  bool
	deleting map[string]bool
	signal   uint64
	cursor   int
}

func NewGallery(ctx context.Context, bucket storage.Bucket, notifier Notifier, opts GalleryOptions) *Gallery {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	return &Gallery{
		ctx:       ctx,
		bucket:    bucket,
		notifier:  notifier,
		clipboard: opts.Clipboard,
		opener:    opts.Opener,
		pageSize:  opts.PageSize,
		deleting:  make(map[string]bool),
	}
}

// Refresh lists the bucket, newest first. Overlapping refreshes are not cancelled; the last one to resolve wins
func (g *Gallery) Refresh() tea.Cmd {
	g.loading = true

	ctx, bucket := g.ctx, g.bucket
	opts := storage.ListOptions{
		Limit:  g.pageSize,
		SortBy: storage.SortBy{Field: storage.SortByCreatedAt, Order: storage.Descending},
	}

	return func() tea.Msg {
		entries, err := bucket.List(ctx, "", opts)
		if err != nil {
			return ListResultMsg{Result: Err[[]StoredObject](collaboratorFailure("list", err))}
		}
		return ListResultMsg{Result: Ok(toStoredObjects(bucket, entries))}
	}
}

func toStoredObjects(bucket storage.Bucket, entries []storage.Entry) []StoredObject {
	objects := make([]StoredObject, 0, len(entries))
	for _, e := range entries {
		if e.Name == storage.PlaceholderName {
			continue
		}
		objects = append(objects, StoredObject{
			Name:      e.Name,
			PublicURL: bucket.PublicURL(e.Name),
			CreatedAt: e.CreatedAt,
			SizeBytes: e.Metadata.Size,
		})
	}
	return objects
}

// SetRefreshSignal refetches whenever the signal moves
func (g *Gallery) SetRefreshSignal(signal uint64) tea.Cmd {
	if signal == g.signal {
		return nil
	}
	g.signal = signal
	return g.Refresh()
}

// DeleteEntry removes name from the bucket. The local list only changes once the bucket confirms
func (g *Gallery) DeleteEntry(name string) tea.Cmd {
	if g.deleting[name] {
		return nil
	}
	g.deleting[name] = true

	ctx, bucket := g.ctx, g.bucket
	return func() tea.Msg {
		err := bucket.Remove(ctx, []string{name})
		return DeleteResultMsg{
			Name:   name,
			Result: resultOf(Unit{}, collaboratorFailure("remove", err)),
		}
	}
}

// CopyURL puts the public URL of name on the clipboard. Clipboard failures are not reported
func (g *Gallery) CopyURL(name string) bool {
	obj, ok := g.find(name)
	if !ok {
		return false
	}
	if g.clipboard != nil {
		_ = g.clipboard.WriteText(obj.PublicURL)
	}
	g.notifier.Notify(Success, msgCopied)
	return true
}

// OpenURL hands the public URL of name to the opener
func (g *Gallery) OpenURL(name string) tea.Cmd {
	obj, ok := g.find(name)
	if !ok || g.opener == nil {
		return nil
	}

	opener, url := g.opener, obj.PublicURL
	return func() tea.Msg {
		if err := opener.Open(url); err != nil {
			return OpenResultMsg{URL: url, Err: err}
		}
		return nil
	}
}

func (g *Gallery) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ListResultMsg:
		g.loading = false
		images, err := msg.Result.Get()
		if err != nil {
			g.notifier.Notify(Error, msgLoadFailed)
			return nil
		}
		g.images = images
		g.clampCursor()

	case DeleteResultMsg:
		delete(g.deleting, msg.Name)
		if err := msg.Result.Err(); err != nil {
			g.notifier.Notify(Error, msgDeleteFailed)
			return nil
		}
		g.removeFirst(msg.Name)
		g.notifier.Notify(Success, msgDeleted)
	}
	return nil
}

func (g *Gallery) removeFirst(name string) {
	for i, obj := range g.images {
		if obj.Name == name {
			g.images = append(g.images[:i:i], g.images[i+1:]...)
			g.clampCursor()
			return
		}
	}
}

func (g *Gallery) find(name string) (StoredObject, bool) {
	for _, obj := range g.images {
		if obj.Name == name {
			return obj, true
		}
	}
	return StoredObject{}, false
}

// Images returns a copy of the displayed list
func (g *Gallery) Images() []StoredObject {
	out := make([]StoredObject, len(g.images))
	copy(out, g.images)
	return out
}

func (g *Gallery) Loading() bool {
	return g.loading
}

func (g *Gallery) Deleting(name string) bool {
	return g.deleting[name]
}

// MoveCursor shifts the selection by delta, clamped to the list
func (g *Gallery) MoveCursor(delta int) {
	g.cursor += delta
	g.clampCursor()
}

func (g *Gallery) Cursor() int {
	return g.cursor
}

func (g *Gallery) Selected() (StoredObject, bool) {
	if g.cursor < 0 || g.cursor >= len(g.images) {
		return StoredObject{}, false
	}
	return g.images[g.cursor], true
}

func (g *Gallery) clampCursor() {
	if g.cursor >= len(g.images) {
		g.cursor = len(g.images) - 1
	}
	if g.cursor < 0 {
		g.cursor = 0
	}
}
