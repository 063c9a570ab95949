package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/moviebase/mediavault/internal/client/uploader"
	"github.com/moviebase/mediavault/internal/logging"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [files...]",
	Short: "Upload local files through signed URLs",
	Long: `Upload local files into a storage directory. Each file first gets a
one-time signed URL from the server, then the payload goes straight to
the object store. Files are sent one at a time; a failure marks that
file and the batch moves on to the next one.`,
	Example: `  # Upload into the storage root
  mediavault upload poster.jpg

  # Upload several files into a directory
  mediavault upload poster.jpg trailer.mp4 -d movies`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("directory")

		queue := uploader.NewQueue()
		defer queue.Close()

		added, duplicates, err := queue.Add(args...)
		if err != nil {
			return err
		}
		for _, name := range duplicates {
			fmt.Fprintf(cmd.OutOrStdout(), "skipping duplicate name: %s\n", name)
		}
		if len(added) == 0 {
			return fmt.Errorf("nothing to upload")
		}

		logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))
		u := uploader.New(queue, newAPIClient(), logger)

		report, err := u.Run(cmd.Context(), dir)
		if err != nil {
			return err
		}

		for _, task := range queue.Tasks() {
			switch task.Status {
			case uploader.StatusSuccess:
				fmt.Fprintf(cmd.OutOrStdout(), "  ok    %s\n", task.File.Name)
			case uploader.StatusError:
				fmt.Fprintf(cmd.OutOrStdout(), "  fail  %s: %s\n", task.File.Name, task.ErrorMessage)
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), report)

		if report.Failed > 0 {
			return fmt.Errorf("%d of %d uploads failed", report.Failed, report.Failed+report.Succeeded)
		}
		return nil
	},
}

func init() {
	uploadCmd.Flags().StringP("directory", "d", "", "Destination directory (default: storage root)")
}
