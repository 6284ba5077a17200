// File: internal/gallery/page.go
package gallery

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Page wires an Uploader to a Gallery: every completed upload bumps the refresh signal the gallery watches
type Page struct {
	Uploader *Uploader
	Gallery  *Gallery
	refresh  uint64
}

func NewPage(uploader *Uploader, gallery *Gallery) *Page {
	return &Page{Uploader: uploader, Gallery: gallery}
}

// Init performs the initial listing
func (p *Page) Init() tea.Cmd {
	return p.Gallery.Refresh()
}

func (p *Page) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case UploadCompleteMsg:
		p.refresh++
		return p.Gallery.SetRefreshSignal(p.refresh)
	case PreviewReadyMsg, UploadResultMsg, DraftResetMsg:
		return p.Uploader.Update(msg)
	case ListResultMsg, DeleteResultMsg:
		return p.Gallery.Update(msg)
	}
	return nil
}

// RefreshSignal is the number of uploads completed on this page
func (p *Page) RefreshSignal() uint64 {
	return p.refresh
}
