// File: internal/ui/tui/toast.go
package tui

import (
	"strings"
	"time"

	"pixdrop/internal/gallery"

	tea "github.com/charmbracelet/bubbletea"
)

const maxVisibleToasts = 3

type toast struct {
	id   int
	kind gallery.Kind
	text string
}

type toastExpiredMsg struct {
	id int
}

// Toaster is the terminal notification area. Notify only records the toast; the model
// calls Flush after every update to schedule the expiry ticks of new toasts
type Toaster struct {
	ttl     time.Duration
	items   []toast
	pending []int
	nextID  int
}

var _ gallery.Notifier = (*Toaster)(nil)

func NewToaster(ttl time.Duration) *Toaster {
	if ttl <= 0 {
		ttl = 3 * time.Second
	}
	return &Toaster{ttl: ttl}
}

func (t *Toaster) Notify(kind gallery.Kind, message string) {
	t.nextID++
	t.items = append(t.items, toast{id: t.nextID, kind: kind, text: message})
	t.pending = append(t.pending, t.nextID)

	if len(t.items) > maxVisibleToasts {
		t.items = t.items[len(t.items)-maxVisibleToasts:]
	}
}

// Flush returns the expiry timers for toasts added since the last call
func (t *Toaster) Flush() tea.Cmd {
	if len(t.pending) == 0 {
		return nil
	}

	cmds := make([]tea.Cmd, 0, len(t.pending))
	for _, id := range t.pending {
		id := id
		cmds = append(cmds, tea.Tick(t.ttl, func(time.Time) tea.Msg {
			return toastExpiredMsg{id: id}
		}))
	}
	t.pending = t.pending[:0]
	return tea.Batch(cmds...)
}

func (t *Toaster) Dismiss(id int) {
	for i, item := range t.items {
		if item.id == id {
			t.items = append(t.items[:i], t.items[i+1:]...)
			return
		}
	}
}

func (t *Toaster) View() string {
	if len(t.items) == 0 {
		return ""
	}

	lines := make([]string, 0, len(t.items))
	for _, item := range t.items {
		if item.kind == gallery.Error {
			lines = append(lines, errorStyle.Render("✗ "+item.text))
		} else {
			lines = append(lines, successStyle.Render("✓ "+item.text))
		}
	}
	return strings.Join(lines, "\n")
}
