// File: internal/gallery/messages.go
package gallery

import (
	tea "github.com/charmbracelet/bubbletea"
)

// PreviewReadyMsg delivers the data URL built for draft Seq
type PreviewReadyMsg struct {
	Seq     uint64
	DataURL string
}

// UploadResultMsg is the outcome of the upload started for draft Seq
type UploadResultMsg struct {
	Seq    uint64
	Key    string
	Result Result[Unit]
}

// UploadCompleteMsg is emitted once per successful upload
type UploadCompleteMsg struct {
	Key string
}

// DraftResetMsg clears an uploaded draft once the reset delay has passed
type DraftResetMsg struct {
	Seq uint64
}

type ListResultMsg struct {
	Result Result[[]StoredObject]
}

type DeleteResultMsg struct {
	Name   string
	Result Result[Unit]
}

// OpenResultMsg reports a failed attempt to open a URL. Successful opens produce no message
type OpenResultMsg struct {
	URL string
	Err error
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}
