// File: cmd/pixdrop/root.go
package main

import (
	"io"
	"os"

	"pixdrop/internal/flags"
	"pixdrop/internal/logger"

	"github.com/spf13/cobra"
)

// Commands carrying this annotation own the terminal, so their logs go to a file
const annotationLogToFile = "pixdrop/log-to-file"

type globalFlags struct {
	provider string
	bucket   string
	debug    bool
}

func newRootCmd() *cobra.Command {
	gf := globalFlags{}
	var app *appContainer

	rootCmd := &cobra.Command{
		Use:   "pixdrop",
		Short: "pixdrop uploads and manages images in an object storage bucket.",
		Long: `Upload images to a storage bucket, browse them in a terminal gallery,
copy their public URLs and delete them. Configure a provider and bucket
once, then use the interactive 'ui' page or the one-shot commands.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var w io.Writer = os.Stderr
			var logFile *os.File
			if _, ok := cmd.Annotations[annotationLogToFile]; ok {
				f, err := logger.OpenLogFile()
				if err != nil {
					return err
				}
				w, logFile = f, f
			}

			log := logger.NewLogger(w, gf.debug)

			var err error
			configCmd := cmd.Parent() != nil && cmd.Parent().Name() == "config"
			app, err = newApp(log, gf, configCmd)
			if err != nil {
				if logFile != nil {
					logFile.Close()
				}
				return err
			}
			if logFile != nil {
				app.closers = append(app.closers, logFile)
			}

			cmd.SetContext(withApp(cmd.Context(), app))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if app == nil {
				return nil
			}
			return app.Close()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&gf.provider, flags.Provider, flags.ProviderShort, "", "Storage provider to use, overriding the configured one")
	pf.StringVarP(&gf.bucket, flags.Bucket, flags.BucketShort, "", "Bucket to use, overriding the configured one")
	pf.BoolVarP(&gf.debug, flags.Debug, flags.DebugShort, false, "Enable debug logging")

	rootCmd.AddCommand(
		newUICmd(),
		newUploadCmd(),
		newListCmd(),
		newDeleteCmd(),
		newURLCmd(),
		newUsageCmd(),
		newSnippetsCmd(),
		newConfigCmd(),
	)
	return rootCmd
}
