package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <path>",
	Short: "Show metadata for a file or directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, err := newAPIClient().FileInfo(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Name:     %s\n", entry.Name)
		fmt.Fprintf(cmd.OutOrStdout(), "Path:     %s\n", entry.Path)
		if entry.IsDirectory {
			fmt.Fprintln(cmd.OutOrStdout(), "Type:     directory")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Type:     file")
			fmt.Fprintf(cmd.OutOrStdout(), "Size:     %s\n", formatSize(entry.Size))
		}
		if !entry.LastModified.IsZero() {
			fmt.Fprintf(cmd.OutOrStdout(), "Modified: %s\n", entry.LastModified.Format("2006-01-02 15:04:05"))
		}
		if entry.PublicURL != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "URL:      %s\n", entry.PublicURL)
		}
		return nil
	},
}
