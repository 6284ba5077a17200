// File: internal/ui/tui/model.go
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pixdrop/internal/gallery"
	"pixdrop/internal/snippets"
	"pixdrop/pkg/storage"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	snippetCopiedFor  = 2 * time.Second
	previewChars      = 48
	msgUnreadableFile = "Could not read the selected file"
)

type mode int

const (
	modeGallery mode = iota
	modePicker
	modeSnippets
)

type snippetCopiedResetMsg struct {
	seq int
}

type Options struct {
	// Shown in the header, e.g. "S3 · images"
	Title     string
	StartDir  string
	Snippets  []snippets.Snippet
	Clipboard gallery.Clipboard
}

// Model is the interactive page: the uploader panel above the gallery list, with toasts and key help below
type Model struct {
	page    *gallery.Page
	toaster *Toaster
	opts    Options

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	picker  filepicker.Model

	mode          mode
	snippetCursor int
	copiedSnippet int
	copiedSeq     int
	width         int
}

// New builds the model. toaster must be the notifier the page's components were built with
func New(page *gallery.Page, toaster *Toaster, opts Options) *Model {
	picker := filepicker.New()
	picker.ShowHidden = false
	if opts.StartDir != "" {
		picker.CurrentDirectory = opts.StartDir
	}

	return &Model{
		page:          page,
		toaster:       toaster,
		opts:          opts,
		keys:          defaultKeyMap(),
		help:          help.New(),
		spinner:       spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(selectedStyle)),
		picker:        picker,
		copiedSnippet: -1,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.page.Init(), m.spinner.Tick)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		cmd, quit := m.handleKey(msg)
		if quit {
			return m, tea.Quit
		}
		cmds = append(cmds, cmd)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case toastExpiredMsg:
		m.toaster.Dismiss(msg.id)

	case snippetCopiedResetMsg:
		if msg.seq == m.copiedSeq {
			m.copiedSnippet = -1
		}

	case gallery.OpenResultMsg:
		m.toaster.Notify(gallery.Error, "Could not open "+msg.URL)

	default:
		cmds = append(cmds, m.page.Update(msg))
		// Directory listings requested by the picker arrive here too
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		cmds = append(cmds, cmd)
	}

	cmds = append(cmds, m.toaster.Flush())
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch m.mode {
	case modePicker:
		return m.handlePickerKey(msg), false
	case modeSnippets:
		return m.handleSnippetsKey(msg), false
	}

	g := m.page.Gallery
	switch {
	case key.Matches(msg, m.keys.Quit):
		return nil, true
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		g.MoveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		g.MoveCursor(1)
	case key.Matches(msg, m.keys.Pick):
		if m.page.Uploader.Uploading() {
			return nil, false
		}
		m.mode = modePicker
		return m.picker.Init(), false
	case key.Matches(msg, m.keys.Upload):
		return m.page.Uploader.ConfirmUpload(), false
	case key.Matches(msg, m.keys.Cancel):
		m.page.Uploader.Cancel()
	case key.Matches(msg, m.keys.Refresh):
		return g.Refresh(), false
	case key.Matches(msg, m.keys.Snippets):
		m.mode = modeSnippets
	case key.Matches(msg, m.keys.Delete):
		if sel, ok := g.Selected(); ok {
			return g.DeleteEntry(sel.Name), false
		}
	case key.Matches(msg, m.keys.Copy):
		if sel, ok := g.Selected(); ok {
			g.CopyURL(sel.Name)
		}
	case key.Matches(msg, m.keys.Open):
		if sel, ok := g.Selected(); ok {
			return g.OpenURL(sel.Name), false
		}
	}
	return nil, false
}

func (m *Model) handlePickerKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "q" {
		m.mode = modeGallery
		return nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if didSelect, path := m.picker.DidSelectFile(msg); didSelect {
		m.mode = modeGallery
		return tea.Batch(cmd, m.selectPath(path))
	}
	return cmd
}

// selectPath loads a file from disk and hands it to the uploader, which rejects non-images
func (m *Model) selectPath(path string) tea.Cmd {
	f, err := gallery.LoadFile(path)
	if err != nil {
		m.toaster.Notify(gallery.Error, msgUnreadableFile)
		return nil
	}
	cmd, _ := m.page.Uploader.SelectFile(f)
	return cmd
}

func (m *Model) handleSnippetsKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Snippets):
		m.mode = modeGallery
	case key.Matches(msg, m.keys.Up):
		if m.snippetCursor > 0 {
			m.snippetCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.snippetCursor < len(m.opts.Snippets)-1 {
			m.snippetCursor++
		}
	case msg.String() == "c", msg.String() == "enter":
		return m.copySnippet(m.snippetCursor)
	}
	return nil
}

func (m *Model) copySnippet(i int) tea.Cmd {
	if i < 0 || i >= len(m.opts.Snippets) {
		return nil
	}
	if m.opts.Clipboard != nil {
		_ = m.opts.Clipboard.WriteText(m.opts.Snippets[i].Code)
	}

	m.copiedSnippet = i
	m.copiedSeq++
	seq := m.copiedSeq
	return tea.Tick(snippetCopiedFor, func(time.Time) tea.Msg {
		return snippetCopiedResetMsg{seq: seq}
	})
}

func (m *Model) View() string {
	var body string
	switch m.mode {
	case modePicker:
		body = m.pickerView()
	case modeSnippets:
		body = m.snippetsView()
	default:
		body = m.uploaderView() + "\n" + m.galleryView()
	}

	sections := []string{titleStyle.Render("pixdrop") + " " + mutedStyle.Render(m.opts.Title), body}
	if toasts := m.toaster.View(); toasts != "" {
		sections = append(sections, toasts)
	}
	sections = append(sections, m.help.View(m.helpKeys()))
	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (m *Model) helpKeys() help.KeyMap {
	switch m.mode {
	case modePicker:
		return m.keys.pickerHelp()
	case modeSnippets:
		return m.keys.snippetsHelp()
	default:
		return m.keys.galleryHelp()
	}
}

func (m *Model) uploaderView() string {
	u := m.page.Uploader
	draft, ok := u.Draft()
	if !ok {
		return sectionStyle.Render(mutedStyle.Render("No image selected. Press o to choose one."))
	}

	var lines []string
	lines = append(lines, headingStyle.Render(draft.DisplayName))
	if draft.File != nil {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("%s · %s", draft.File.ContentType, storage.FormatSize(draft.File.Size()))))
	}
	if draft.PreviewDataURL != "" {
		lines = append(lines, mutedStyle.Render(truncate(draft.PreviewDataURL, previewChars)))
	}

	switch {
	case u.Uploading():
		lines = append(lines, m.spinner.View()+" Uploading...")
	case u.Uploaded():
		lines = append(lines, successStyle.Render("✓ Uploaded"))
	case u.CanConfirm():
		lines = append(lines, selectedStyle.Render("enter")+" upload · "+selectedStyle.Render("esc")+" discard")
	}
	return sectionStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) galleryView() string {
	g := m.page.Gallery
	images := g.Images()

	heading := headingStyle.Render(fmt.Sprintf("Gallery (%d)", len(images)))
	if g.Loading() {
		heading = headingStyle.Render(fmt.Sprintf("Gallery (%d) %s", len(images), m.spinner.View()))
	}

	if len(images) == 0 {
		empty := "No images yet"
		if g.Loading() {
			empty = "Loading images..."
		}
		return heading + "\n" + mutedStyle.Render(empty)
	}

	rows := make([]string, 0, len(images)+1)
	for i, img := range images {
		cursor := "  "
		name := img.Name
		if i == g.Cursor() {
			cursor = selectedStyle.Render("› ")
			name = selectedStyle.Render(name)
		}

		row := fmt.Sprintf("%s%s  %s  %s", cursor, name,
			mutedStyle.Render(storage.FormatSize(img.SizeBytes)),
			mutedStyle.Render(formatCreated(img.CreatedAt)))
		if g.Deleting(img.Name) {
			row += " " + m.spinner.View() + " deleting"
		}
		rows = append(rows, row)
	}

	if sel, ok := g.Selected(); ok {
		rows = append(rows, "", mutedStyle.Render(sel.PublicURL))
	}
	return heading + "\n" + strings.Join(rows, "\n")
}

func (m *Model) pickerView() string {
	return headingStyle.Render("Choose an image") + "\n" +
		mutedStyle.Render(m.picker.CurrentDirectory) + "\n" +
		m.picker.View()
}

func (m *Model) snippetsView() string {
	parts := []string{headingStyle.Render("API reference")}
	for i, s := range m.opts.Snippets {
		title := s.Title
		if i == m.snippetCursor {
			title = selectedStyle.Render("› " + title)
		} else {
			title = "  " + title
		}
		if i == m.copiedSnippet {
			title += " " + successStyle.Render("✓ copied")
		}
		parts = append(parts, title, codeStyle.Render(s.Code), mutedStyle.Render("$ "+s.Command))
	}
	return strings.Join(parts, "\n")
}

func formatCreated(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Local().Format("Jan 2 15:04")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

// Run starts the interactive page and blocks until the user quits or ctx is cancelled
func Run(ctx context.Context, m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
