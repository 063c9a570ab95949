package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <path>",
	Short: "Delete a file or a directory subtree",
	Long: `Delete a file, or a directory together with everything below it.
Directory deletion walks the whole subtree, so it can take a while on
large folders. A path that no longer exists is reported, not treated as
a failure.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		confirm, _ := cmd.Flags().GetBool("confirm")

		if !confirm {
			fmt.Fprintf(cmd.OutOrStdout(), "Delete '%s'? (y/N): ", args[0])
			var response string
			fmt.Fscanln(cmd.InOrStdin(), &response)
			if !strings.EqualFold(response, "y") && !strings.EqualFold(response, "yes") {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
		}

		msg, err := newAPIClient().DeleteItem(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

func init() {
	rmCmd.Flags().Bool("confirm", false, "Skip confirmation prompt")
}
