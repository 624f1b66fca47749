package cli

import (
	"github.com/spf13/cobra"
)

var diffCmd = &cobra.Command{
	Use:   "diff <page-id>",
	Short: "Compare the cached body against the remote page",
	Long: `Prints a unified diff between the cached ADF body and the current
remote body. Both sides are reformatted before comparing, so the diff
reflects content changes rather than key order or indentation.`,
	Args: cobra.ExactArgs(1),
	RunE: runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	if err := requireConfigured(); err != nil {
		return err
	}

	diff, err := pageService.Diff(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if jsonMode {
		emitJSON(cmd, map[string]any{"id": args[0], "diff": diff})
		return nil
	}
	if diff == "" {
		cmd.Println("No differences.")
		return nil
	}
	cmd.Print(diff)
	return nil
}
