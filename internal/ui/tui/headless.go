// File: internal/ui/tui/headless.go
package tui

import (
	"context"
	"fmt"

	"pixdrop/internal/gallery"

	tea "github.com/charmbracelet/bubbletea"
)

// headlessModel drives a page without a terminal. It stops at the first message done accepts
type headlessModel struct {
	page  *gallery.Page
	start tea.Cmd
	done  func(tea.Msg) bool
}

func (m headlessModel) Init() tea.Cmd {
	return m.start
}

func (m headlessModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.page.Update(msg)
	if m.done(msg) {
		return m, tea.Quit
	}
	return m, cmd
}

func (m headlessModel) View() string {
	return ""
}

// RunHeadless runs start through the page's event loop until done reports true for a delivered message.
// One-shot commands use it so they share the interactive page's state handling
func RunHeadless(ctx context.Context, page *gallery.Page, start tea.Cmd, done func(tea.Msg) bool) error {
	if start == nil {
		return nil
	}
	p := tea.NewProgram(
		headlessModel{page: page, start: start, done: done},
		tea.WithContext(ctx),
		tea.WithInput(nil),
		tea.WithoutRenderer(),
		tea.WithoutSignalHandler(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running page: %w", err)
	}
	return nil
}
