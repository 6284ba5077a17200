// File: cmd/pixdrop/ui_cmd.go
package main

import (
	"fmt"
	"os"

	"pixdrop/internal/snippets"
	"pixdrop/internal/ui/tui"

	"github.com/spf13/cobra"
)

func newUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive upload and gallery page",
		Long: `Opens a terminal page with an uploader above the image gallery. Choose an image with 'o',
upload it with enter, and copy, open or delete gallery entries from the keyboard.
Logs are written to the pixdrop log file in the user cache directory while the page is open.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationLogToFile: ""},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFromContext(cmd.Context())
			if err != nil {
				return err
			}
			// PersistentPostRunE is skipped when RunE fails
			defer app.Close()

			svc, err := app.openService(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close()

			list, err := snippets.Load()
			if err != nil {
				return err
			}

			startDir, err := os.Getwd()
			if err != nil {
				startDir = ""
			}

			toaster := tui.NewToaster(app.Config.Gallery.ToastDuration)
			page := app.newPage(cmd.Context(), svc, toaster)
			model := tui.New(page, toaster, tui.Options{
				Title:     fmt.Sprintf("%s · %s", svc.ProviderName(), svc.Name()),
				StartDir:  startDir,
				Snippets:  list,
				Clipboard: app.Clipboard,
			})

			return tui.Run(cmd.Context(), model)
		},
	}
}
