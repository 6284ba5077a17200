// File: cmd/pixdrop/snippets_cmd.go
package main

import (
	"fmt"

	"pixdrop/internal/flags"
	"pixdrop/internal/snippets"
	"pixdrop/pkg/formatter"

	"github.com/spf13/cobra"
)

func newSnippetsCmd() *cobra.Command {
	var copyIndex int

	snippetsCmd := &cobra.Command{
		Use:   "snippets",
		Short: "Show API reference snippets",
		Long:  `Prints short Go examples for every storage operation alongside the equivalent pixdrop command.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := snippets.Load()
			if err != nil {
				return err
			}

			if copyIndex != 0 {
				if copyIndex < 1 || copyIndex > len(list) {
					return fmt.Errorf("no snippet %d. Choose a number between 1 and %d", copyIndex, len(list))
				}
				app, err := appFromContext(cmd.Context())
				if err != nil {
					return err
				}
				if err := app.Clipboard.WriteText(list[copyIndex-1].Code); err != nil {
					return fmt.Errorf("error copying snippet: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Copied snippet %d (%s) to the clipboard\n", copyIndex, list[copyIndex-1].Title)
				return nil
			}

			out := cmd.OutOrStdout()
			for i, s := range list {
				fmt.Fprintln(out, formatter.FormatSectionTitle(fmt.Sprintf("%d. %s", i+1, s.Title)))
				fmt.Fprintln(out, s.Code)
				fmt.Fprintf(out, "$ %s\n\n", s.Command)
			}
			return nil
		},
	}
	snippetsCmd.Flags().IntVarP(&copyIndex, flags.Copy, flags.CopyShort, 0, "Copy snippet N to the clipboard")
	return snippetsCmd
}
