package cli

import (
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <page-id>",
	Short: "Delete a page remotely and drop it from the cache",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	if err := requireConfigured(); err != nil {
		return err
	}

	id := args[0]
	if err := pageService.Delete(cmd.Context(), id); err != nil {
		return err
	}

	emit(cmd, map[string]any{"id": id, "deleted": true}, "OK deleted %s", id)
	return nil
}
