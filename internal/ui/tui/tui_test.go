package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"pixdrop/internal/gallery"
	"pixdrop/internal/snippets"
	"pixdrop/pkg/common"
	"pixdrop/pkg/storage"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryBucket struct {
	mu        sync.Mutex
	names     []string
	removed   []string
	removeErr error
}

func (b *memoryBucket) ProviderName() common.Provider { return common.Local }
func (b *memoryBucket) Name() string                  { return "images" }
func (b *memoryBucket) Close() error                  { return nil }
func (b *memoryBucket) PublicURL(key string) string   { return "https://cdn.example.com/" + key }

func (b *memoryBucket) Upload(_ context.Context, key string, _ []byte, _ storage.UploadOptions) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.names = append([]string{key}, b.names...)
	return nil
}

func (b *memoryBucket) List(_ context.Context, _ string, _ storage.ListOptions) ([]storage.Entry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]storage.Entry, 0, len(b.names))
	for _, n := range b.names {
		out = append(out, storage.Entry{Name: n, Metadata: storage.EntryMetadata{Size: 2048}})
	}
	return out, nil
}

func (b *memoryBucket) Remove(_ context.Context, keys []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.removeErr != nil {
		return b.removeErr
	}
	b.removed = append(b.removed, keys...)
	return nil
}

type recordingClipboard struct {
	text string
}

func (c *recordingClipboard) WriteText(text string) error {
	c.text = text
	return nil
}

func newTestModel(t *testing.T, bucket *memoryBucket) (*Model, *recordingClipboard) {
	t.Helper()
	ctx := context.Background()
	toaster := NewToaster(time.Millisecond)
	clip := &recordingClipboard{}

	uploader := gallery.NewUploader(ctx, bucket, toaster, gallery.UploaderOptions{ResetDelay: time.Millisecond})
	g := gallery.NewGallery(ctx, bucket, toaster, gallery.GalleryOptions{Clipboard: clip})
	list, err := snippets.Load()
	require.NoError(t, err)

	m := New(gallery.NewPage(uploader, g), toaster, Options{Title: "Local · images", Snippets: list, Clipboard: clip})
	return m, clip
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// deliver feeds the results of cmd back into the model, skipping timers and the spinner
func deliver(m *Model, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	switch msg := msg.(type) {
	case nil:
		return
	case tea.BatchMsg:
		for _, c := range msg {
			deliver(m, c)
		}
	case gallery.ListResultMsg, gallery.DeleteResultMsg, gallery.PreviewReadyMsg, gallery.UploadResultMsg, gallery.UploadCompleteMsg:
		_, next := m.Update(msg)
		deliver(m, next)
	}
}

func TestModel_InitialListing(t *testing.T) {
	m, _ := newTestModel(t, &memoryBucket{names: []string{"a.png", storage.PlaceholderName, "b.jpg"}})
	deliver(m, m.Init())

	view := m.View()
	assert.Contains(t, view, "Gallery (2)")
	assert.Contains(t, view, "a.png")
	assert.Contains(t, view, "2 KB")
	assert.NotContains(t, view, storage.PlaceholderName)
	assert.Contains(t, view, "https://cdn.example.com/a.png")
}

func TestModel_EmptyGallery(t *testing.T) {
	m, _ := newTestModel(t, &memoryBucket{})
	deliver(m, m.Init())

	assert.Contains(t, m.View(), "No images yet")
	assert.Contains(t, m.View(), "No image selected")
}

func TestModel_DeleteSelected(t *testing.T) {
	bucket := &memoryBucket{names: []string{"a.png", "b.png"}}
	m, _ := newTestModel(t, bucket)
	deliver(m, m.Init())

	_, cmd := m.Update(keyMsg("down"))
	deliver(m, cmd)
	_, cmd = m.Update(keyMsg("x"))
	deliver(m, cmd)

	assert.Equal(t, []string{"b.png"}, bucket.removed)
	view := m.View()
	assert.NotContains(t, view, "b.png")
	assert.Contains(t, view, "Image deleted")
}

func TestModel_DeleteFailureShowsToast(t *testing.T) {
	bucket := &memoryBucket{names: []string{"a.png"}, removeErr: errors.New("denied")}
	m, _ := newTestModel(t, bucket)
	deliver(m, m.Init())

	_, cmd := m.Update(keyMsg("x"))
	deliver(m, cmd)

	view := m.View()
	assert.Contains(t, view, "a.png")
	assert.Contains(t, view, "Failed to delete image")
}

func TestModel_CopyURL(t *testing.T) {
	m, clip := newTestModel(t, &memoryBucket{names: []string{"a.png"}})
	deliver(m, m.Init())

	m.Update(keyMsg("c"))

	assert.Equal(t, "https://cdn.example.com/a.png", clip.text)
	assert.Contains(t, m.View(), "URL copied to clipboard!")
}

func TestModel_UploadFlow(t *testing.T) {
	bucket := &memoryBucket{}
	m, _ := newTestModel(t, bucket)
	deliver(m, m.Init())

	cmd, err := m.page.Uploader.SelectFile(gallery.File{Name: "cat.png", ContentType: "image/png", Data: []byte("png")})
	require.NoError(t, err)
	deliver(m, cmd)
	assert.Contains(t, m.View(), "cat.png")
	assert.Contains(t, m.View(), "data:image/png;base64,")

	_, cmd = m.Update(keyMsg("enter"))
	assert.Contains(t, m.View(), "Uploading...")
	deliver(m, cmd)

	view := m.View()
	assert.Contains(t, view, "Image uploaded successfully!")
	assert.Contains(t, view, "Gallery (1)")
	assert.Contains(t, view, ".png")
}

func TestModel_SnippetsCopy(t *testing.T) {
	m, clip := newTestModel(t, &memoryBucket{})

	m.Update(keyMsg("s"))
	assert.Contains(t, m.View(), "API reference")

	m.Update(keyMsg("j"))
	_, cmd := m.Update(keyMsg("c"))
	require.NotNil(t, cmd)

	assert.Equal(t, `url := bucket.PublicURL("photo.png")`, clip.text)
	assert.Contains(t, m.View(), "✓ copied")

	m.Update(snippetCopiedResetMsg{seq: m.copiedSeq})
	assert.NotContains(t, m.View(), "✓ copied")

	m.Update(keyMsg("q"))
	assert.Equal(t, modeGallery, m.mode)
}

func TestModel_QuitKeys(t *testing.T) {
	m, _ := newTestModel(t, &memoryBucket{})

	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	m.mode = modePicker
	_, cmd = m.Update(keyMsg("q"))
	assert.Equal(t, modeGallery, m.mode)
	if cmd != nil {
		assert.NotEqual(t, tea.Quit(), cmd())
	}
}

func TestToaster(t *testing.T) {
	toaster := NewToaster(time.Millisecond)
	assert.Nil(t, toaster.Flush())

	for i := 0; i < 5; i++ {
		toaster.Notify(gallery.Success, "n"+strings.Repeat("!", i))
	}
	assert.Len(t, toaster.items, maxVisibleToasts)
	assert.NotNil(t, toaster.Flush())
	assert.Nil(t, toaster.Flush())

	first := toaster.items[0].id
	toaster.Dismiss(first)
	assert.Len(t, toaster.items, maxVisibleToasts-1)

	toaster.Notify(gallery.Error, "broken")
	assert.Contains(t, toaster.View(), "✗ broken")
}

func TestRunHeadless_StopsOnDone(t *testing.T) {
	bucket := &memoryBucket{names: []string{"a.png"}}
	toaster := NewToaster(time.Second)
	ctx := context.Background()
	page := gallery.NewPage(
		gallery.NewUploader(ctx, bucket, toaster, gallery.UploaderOptions{}),
		gallery.NewGallery(ctx, bucket, toaster, gallery.GalleryOptions{}),
	)

	err := RunHeadless(ctx, page, page.Init(), func(msg tea.Msg) bool {
		_, ok := msg.(gallery.ListResultMsg)
		return ok
	})
	require.NoError(t, err)
	assert.Len(t, page.Gallery.Images(), 1)
}
