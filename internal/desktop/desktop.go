// File: internal/desktop/desktop.go
package desktop

import (
	"fmt"
	"os/exec"
	"runtime"

	"pixdrop/internal/gallery"

	"github.com/atotto/clipboard"
)

// Clipboard writes to the system clipboard
type Clipboard struct{}

var _ gallery.Clipboard = Clipboard{}

func (Clipboard) WriteText(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard utility available")
	}
	return clipboard.WriteAll(text)
}

// Browser opens URLs with the platform's default handler
type Browser struct {
	// Overrides the platform command, mainly for tests
	Command func(url string) *exec.Cmd
}

var _ gallery.Opener = Browser{}

func (b Browser) Open(url string) error {
	build := b.Command
	if build == nil {
		build = openCommand
	}

	cmd := build(url)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("error opening %s: %w", url, err)
	}
	// Reap the child in the background; the browser outlives us
	go func() { _ = cmd.Wait() }()
	return nil
}

func openCommand(url string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return exec.Command("xdg-open", url)
	}
}
