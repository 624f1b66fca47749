package cli

import (
	"github.com/spf13/cobra"
)

var putForce bool

var putCmd = &cobra.Command{
	Use:   "put <page-id>",
	Short: "Upload the cached body back to Confluence",
	Long: `Pushes the locally cached ADF body as a new page version. The upload
is refused when the remote version no longer matches the version the
cache was taken from; --force overrides the check and overwrites
whatever is remote.`,
	Args: cobra.ExactArgs(1),
	RunE: runPut,
}

func init() {
	putCmd.Flags().BoolVarP(&putForce, "force", "f", false, "upload even if the remote version has moved on")
	rootCmd.AddCommand(putCmd)
}

func runPut(cmd *cobra.Command, args []string) error {
	if err := requireConfigured(); err != nil {
		return err
	}

	id := args[0]
	newVersion, err := pageService.Put(cmd.Context(), id, putForce)
	if err != nil {
		return err
	}

	payload := map[string]any{"id": id, "version": newVersion}
	emit(cmd, payload, "OK %s v%d", id, newVersion)
	return nil
}
