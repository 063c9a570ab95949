package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var mvCmd = &cobra.Command{
	Use:   "mv <old-path> <new-path>",
	Short: "Rename or move a file or directory",
	Long: `Rename a file or directory, or move it to another directory. Both
paths are full storage paths; a trailing slash marks a directory. The
store has no native rename, so large directories are moved entry by
entry and the command may take a while.`,
	Example: `  # Rename a file
  mediavault mv movies/poster.jpg movies/cover.jpg

  # Move a directory
  mediavault mv movies/drafts/ archive/drafts/`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, err := newAPIClient().RenameItem(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "moved to %s\n", entry.Path)
		return nil
	},
}
