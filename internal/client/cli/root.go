// Package cli implements the mediavault command-line tool on top of the
// admin HTTP API.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moviebase/mediavault/internal/client/api"
	"github.com/moviebase/mediavault/internal/client/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "mediavault",
	Short: "Media vault file manager",
	Long: `mediavault is a command-line tool for managing the media storage
behind the admin panel: listing directories, creating folders, renaming,
deleting, and uploading files through one-time signed URLs.

Configuration comes from a JSON file (-c/-config), command-line flags,
or built-in defaults.`,
	SilenceUsage: true,
}

// Execute runs the root command with the given configuration.
func Execute(config *config.Config) error {
	cfg = config
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(mkdirCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(mvCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(urlCmd)
}

func newAPIClient() *api.Client {
	return api.New(cfg.ServerBaseURL, cfg.AccessToken, cfg.RequestTimeout)
}

func formatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
