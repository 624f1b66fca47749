package cli

import (
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <page-id>",
	Short: "Download a page into the local cache",
	Long: `Fetches one page with its ADF body and writes the body and metadata
pair into the cache directory, overwriting any cached copy.`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	if err := requireConfigured(); err != nil {
		return err
	}

	meta, err := pageService.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	emit(cmd, meta, "OK %s v%d %s", meta.ID, meta.Version, meta.Title)
	return nil
}
