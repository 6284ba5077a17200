// File: cmd/pixdrop/image_cmd.go
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"pixdrop/internal/flags"
	"pixdrop/internal/gallery"
	"pixdrop/internal/service"
	"pixdrop/internal/ui/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// cliNotifier prints successes to w. Failures surface as returned errors instead
func cliNotifier(w io.Writer) gallery.Notifier {
	return gallery.NotifierFunc(func(kind gallery.Kind, message string) {
		if kind == gallery.Success {
			fmt.Fprintln(w, message)
		}
	})
}

// imageSession is one opened bucket with a page built over it
type imageSession struct {
	svc  *service.StorageService
	page *gallery.Page
}

func openSession(cmd *cobra.Command) (*appContainer, *imageSession, error) {
	app, err := appFromContext(cmd.Context())
	if err != nil {
		return nil, nil, err
	}

	svc, err := app.openService(cmd.Context())
	if err != nil {
		return nil, nil, err
	}
	page := app.newPage(cmd.Context(), svc, cliNotifier(cmd.ErrOrStderr()))
	return app, &imageSession{svc: svc, page: page}, nil
}

func (s *imageSession) Close() error {
	return s.svc.Close()
}

// load runs the gallery's initial listing and returns the images
func (s *imageSession) load(ctx context.Context) ([]gallery.StoredObject, error) {
	var result gallery.ListResultMsg
	err := tui.RunHeadless(ctx, s.page, s.page.Init(), func(msg tea.Msg) bool {
		r, ok := msg.(gallery.ListResultMsg)
		if ok {
			result = r
		}
		return ok
	})
	if err != nil {
		return nil, err
	}
	return result.Result.Get()
}

func (s *imageSession) find(ctx context.Context, name string) (gallery.StoredObject, error) {
	images, err := s.load(ctx)
	if err != nil {
		return gallery.StoredObject{}, fmt.Errorf("error listing images: %w", err)
	}
	for _, img := range images {
		if img.Name == name {
			return img, nil
		}
	}
	return gallery.StoredObject{}, fmt.Errorf("image '%s' not found in bucket '%s'", name, s.svc.Name())
}

func newUploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload [file]",
		Short: "Upload an image",
		Long: `Uploads a local image to the configured bucket under a freshly generated name
and prints its public URL. Files that are not images are rejected before anything is sent.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, session, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer session.Close()

			file, err := gallery.LoadFile(args[0])
			if err != nil {
				return err
			}

			uploader := session.page.Uploader
			if _, err := uploader.SelectFile(file); err != nil {
				return fmt.Errorf("cannot upload %s (%s): %w", file.Name, file.ContentType, err)
			}

			var result gallery.UploadResultMsg
			err = tui.RunHeadless(cmd.Context(), session.page, uploader.ConfirmUpload(), func(msg tea.Msg) bool {
				r, ok := msg.(gallery.UploadResultMsg)
				if ok {
					result = r
				}
				return ok
			})
			if err != nil {
				return err
			}
			if err := result.Result.Err(); err != nil {
				return fmt.Errorf("error uploading %s: %w", file.Name, err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), session.svc.PublicURL(result.Key))
			return nil
		},
	}
}

func newListCmd() *cobra.Command {
	var output string

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List uploaded images",
		Long:  `Lists the newest images in the bucket (up to gallery.page_size), newest first.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, session, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer session.Close()

			images, err := session.load(cmd.Context())
			if err != nil {
				return fmt.Errorf("error listing images: %w", err)
			}

			switch strings.ToLower(output) {
			case "yaml":
				out, err := app.ImageFormatter.FormatImageYAML(images)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
			case "table", "":
				if len(images) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No images found.")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), app.ImageFormatter.FormatImageList(images))
			default:
				return fmt.Errorf("unsupported output format: %s. Use 'table' or 'yaml'", output)
			}
			return nil
		},
	}
	listCmd.Flags().StringVarP(&output, flags.Output, flags.OutputShort, "table", "Output format (table or yaml)")
	return listCmd
}

func newDeleteCmd() *cobra.Command {
	var force bool

	deleteCmd := &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete an uploaded image",
		Long:  `Deletes an image from the bucket. You will be asked to type the image name to confirm unless --force is given.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, session, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer session.Close()

			name := args[0]
			if _, err := session.find(cmd.Context(), name); err != nil {
				return err
			}

			if !force {
				confirmed, err := app.Prompter.Confirm(
					fmt.Sprintf("You are about to permanently delete '%s' from bucket '%s'.", name, session.svc.Name()), name)
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Deletion cancelled.")
					return nil
				}
			}

			var result gallery.DeleteResultMsg
			err = tui.RunHeadless(cmd.Context(), session.page, session.page.Gallery.DeleteEntry(name), func(msg tea.Msg) bool {
				r, ok := msg.(gallery.DeleteResultMsg)
				if ok {
					result = r
				}
				return ok
			})
			if err != nil {
				return err
			}
			if err := result.Result.Err(); err != nil {
				return fmt.Errorf("error deleting '%s': %w", name, err)
			}
			return nil
		},
	}
	deleteCmd.Flags().BoolVarP(&force, flags.Force, flags.ForceShort, false, "Skip the confirmation prompt")
	return deleteCmd
}

func newURLCmd() *cobra.Command {
	var copyURL, open bool

	urlCmd := &cobra.Command{
		Use:   "url [name]",
		Short: "Print the public URL of an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, session, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer session.Close()

			img, err := session.find(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), img.PublicURL)

			g := session.page.Gallery
			if copyURL {
				g.CopyURL(img.Name)
			}
			if open {
				if openCmd := g.OpenURL(img.Name); openCmd != nil {
					if res, ok := openCmd().(gallery.OpenResultMsg); ok && res.Err != nil {
						return res.Err
					}
				}
			}
			return nil
		},
	}
	urlCmd.Flags().BoolVarP(&copyURL, flags.Copy, flags.CopyShort, false, "Copy the URL to the clipboard")
	urlCmd.Flags().BoolVar(&open, flags.Open, false, "Open the URL in the default browser")
	return urlCmd
}

func newUsageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "usage",
		Short: "Show how much the bucket stores",
		Long: `Shows the bytes stored in the bucket as reported by the provider. Providers without
usage reporting fall back to the total size of the listed images.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, session, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer session.Close()

			images, err := session.load(cmd.Context())
			if err != nil {
				return fmt.Errorf("error listing images: %w", err)
			}

			usage, err := session.svc.Usage(cmd.Context())
			if errors.Is(err, service.ErrUsageUnsupported) {
				usage = 0
				for _, img := range images {
					usage += img.SizeBytes
				}
			} else if err != nil {
				return fmt.Errorf("error fetching usage: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), app.ImageFormatter.FormatUsage(session.svc, usage, len(images)))
			return nil
		},
	}
}
