package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var mkdirCmd = &cobra.Command{
	Use:   "mkdir <name>",
	Short: "Create an empty folder",
	Example: `  # Create a folder in the storage root
  mediavault mkdir posters

  # Create a folder inside a directory
  mediavault mkdir trailers -d movies`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("directory")

		entry, err := newAPIClient().CreateFolder(cmd.Context(), dir, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", entry.Path)
		return nil
	},
}

func init() {
	mkdirCmd.Flags().StringP("directory", "d", "", "Parent directory (default: storage root)")
}
