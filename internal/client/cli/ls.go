package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var lsCmd = &cobra.Command{
	Use:   "ls [directory]",
	Short: "List the contents of a directory",
	Example: `  # List the storage root
  mediavault ls

  # List a subdirectory
  mediavault ls movies/posters`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := ""
		if len(args) > 0 {
			dir = args[0]
		}

		entries, err := newAPIClient().List(cmd.Context(), dir)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, e := range entries {
			if e.IsDirectory {
				fmt.Fprintf(w, "%s/\t-\t\n", e.Name)
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", e.Name, formatSize(e.Size), e.LastModified.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}
