package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/conflu-cli/internal/core/domain"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the page index by title or id",
	Long: `Searches the local page index case-insensitively. Matches are printed
in index order. The index must have been built with the index command
first; the network is never consulted.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	matches, err := indexService.Search(args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return errors.New("no index found, run 'conflu index' first")
		}
		return err
	}

	if jsonMode {
		if matches == nil {
			matches = []domain.IndexEntry{}
		}
		emitJSON(cmd, matches)
		return nil
	}

	if len(matches) == 0 {
		cmd.Println("No matches.")
		return nil
	}
	for _, m := range matches {
		cmd.Printf("%s  %s  %s\n", m.Space, m.ID, m.Title)
	}
	return nil
}
