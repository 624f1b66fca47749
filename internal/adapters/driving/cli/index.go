package cli

import (
	"github.com/spf13/cobra"
)

var indexSpaces []string

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the page index from the local cache",
	Long: `Scans the cached page metadata and replaces the index file wholesale.
The index only reflects what has been synced; pages never fetched are
not in it. Without --space every cached space is indexed.`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().StringArrayVar(&indexSpaces, "space", nil, "space key to index (repeatable)")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	spaces := indexSpaces
	if len(spaces) == 0 {
		spaces = cfg.Spaces
	}

	entries, err := indexService.Rebuild(spaces)
	if err != nil {
		return err
	}

	emit(cmd, entries, "DONE indexed %d pages", len(entries))
	return nil
}
