package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var urlCmd = &cobra.Command{
	Use:   "url <path>",
	Short: "Resolve a download URL for a file",
	Long: `Resolve a retrieval URL for a file. Public files get their plain
public URL; otherwise a time-limited signed URL is issued. With
--download the URL forces a save-as response instead of inline display.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("download")
		expires, _ := cmd.Flags().GetDuration("expires")

		url, err := newAPIClient().DownloadURL(cmd.Context(), args[0], expires, force)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), url)
		return nil
	},
}

func init() {
	urlCmd.Flags().Bool("download", false, "Force an attachment download instead of inline display")
	urlCmd.Flags().Duration("expires", 0, "Signed URL lifetime (default: server setting)")
}
