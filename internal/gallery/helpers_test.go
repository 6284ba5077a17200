package gallery

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"pixdrop/pkg/common"
	"pixdrop/pkg/storage"

	tea "github.com/charmbracelet/bubbletea"
)

type uploadCall struct {
	Key  string
	Data []byte
	Opts storage.UploadOptions
}

// fakeBucket keeps its objects in listing order, newest first
type fakeBucket struct {
	mu        sync.Mutex
	objects   []storage.Entry
	uploads   []uploadCall
	removes   [][]string
	listOpts  []storage.ListOptions
	uploadErr error
	listErr   error
	removeErr error
}

var _ storage.Bucket = (*fakeBucket)(nil)

func newFakeBucket(names ...string) *fakeBucket {
	b := &fakeBucket{}
	for _, n := range names {
		b.objects = append(b.objects, storage.Entry{Name: n, Metadata: storage.EntryMetadata{Size: 10}})
	}
	return b
}

func (b *fakeBucket) ProviderName() common.Provider { return common.Local }
func (b *fakeBucket) Name() string                  { return "images" }
func (b *fakeBucket) Close() error                  { return nil }

func (b *fakeBucket) Upload(_ context.Context, key string, data []byte, opts storage.UploadOptions) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.uploads = append(b.uploads, uploadCall{Key: key, Data: data, Opts: opts})
	if b.uploadErr != nil {
		return b.uploadErr
	}
	entry := storage.Entry{Name: key, CreatedAt: time.Now(), Metadata: storage.EntryMetadata{Size: int64(len(data))}}
	b.objects = append([]storage.Entry{entry}, b.objects...)
	return nil
}

func (b *fakeBucket) List(_ context.Context, _ string, opts storage.ListOptions) ([]storage.Entry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listOpts = append(b.listOpts, opts)
	if b.listErr != nil {
		return nil, b.listErr
	}
	out := make([]storage.Entry, len(b.objects))
	copy(out, b.objects)
	return out, nil
}

func (b *fakeBucket) PublicURL(key string) string {
	return "https://cdn.example.com/images/" + key
}

func (b *fakeBucket) Remove(_ context.Context, keys []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.removes = append(b.removes, keys)
	if b.removeErr != nil {
		return b.removeErr
	}
	for _, k := range keys {
		for i, e := range b.objects {
			if e.Name == k {
				b.objects = append(b.objects[:i], b.objects[i+1:]...)
				break
			}
		}
	}
	return nil
}

func (b *fakeBucket) listCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listOpts)
}

type notification struct {
	Kind    Kind
	Message string
}

type recorder struct {
	notes []notification
}

func (r *recorder) Notify(kind Kind, message string) {
	r.notes = append(r.notes, notification{Kind: kind, Message: message})
}

func (r *recorder) last() notification {
	if len(r.notes) == 0 {
		return notification{}
	}
	return r.notes[len(r.notes)-1]
}

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) WriteText(text string) error {
	c.text = text
	return c.err
}

type fakeOpener struct {
	opened []string
	err    error
}

func (o *fakeOpener) Open(url string) error {
	o.opened = append(o.opened, url)
	return o.err
}

// run executes cmd and every batch it expands to, returning the messages in order
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if msg == nil {
		return nil
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// pump feeds cmd's messages to update until nothing is left, returning every message delivered
func pump(update func(tea.Msg) tea.Cmd, cmd tea.Cmd) []tea.Msg {
	var delivered []tea.Msg
	queue := run(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		delivered = append(delivered, msg)
		queue = append(queue, run(update(msg))...)
	}
	return delivered
}

func countOf[T any](msgs []tea.Msg) int {
	n := 0
	for _, m := range msgs {
		if _, ok := m.(T); ok {
			n++
		}
	}
	return n
}

func pngFile(name string) File {
	return File{
		Name:        name,
		ContentType: "image/png",
		Data:        []byte("\x89PNG\r\n\x1a\nfake"),
	}
}

var errBoom = errors.New("boom")

func newTestPage(t *testing.T, bucket *fakeBucket) (*Page, *recorder) {
	t.Helper()
	rec := &recorder{}
	ctx := context.Background()
	uploader := NewUploader(ctx, bucket, rec, UploaderOptions{CacheControlSeconds: 3600, ResetDelay: time.Millisecond})
	gallery := NewGallery(ctx, bucket, rec, GalleryOptions{})
	return NewPage(uploader, gallery), rec
}
