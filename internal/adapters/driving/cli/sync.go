package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/conflu-cli/internal/core/services"
)

var (
	syncForce   bool
	syncWorkers int
)

var syncCmd = &cobra.Command{
	Use:   "sync [space-key...]",
	Short: "Mirror whole spaces into the local cache",
	Long: `Lists every page in each space, compares remote versions against the
cache, and fetches what is stale or missing with a pool of concurrent
workers. Pages whose cached version already matches are skipped.
Without arguments the configured default spaces are synchronised.`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVarP(&syncForce, "force", "f", false, "re-fetch every page, ignoring cached versions")
	syncCmd.Flags().IntVar(&syncWorkers, "workers", services.DefaultWorkers, "number of concurrent page fetches")
	rootCmd.AddCommand(syncCmd)
}

// syncReport is the JSON shape of one sync summary.
type syncReport struct {
	Space   string          `json:"space"`
	Listed  int             `json:"listed"`
	Fetched int             `json:"fetched"`
	Skipped int             `json:"skipped"`
	Failed  int             `json:"failed"`
	Errors  []syncPageError `json:"errors,omitempty"`
}

type syncPageError struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

func runSync(cmd *cobra.Command, args []string) error {
	if err := requireConfigured(); err != nil {
		return err
	}

	spaces := args
	if len(spaces) == 0 {
		spaces = cfg.Spaces
	}
	if len(spaces) == 0 {
		return fmt.Errorf("no space keys given and none configured")
	}

	opts := services.SyncOptions{
		Force:   syncForce,
		Workers: syncWorkers,
	}
	if !jsonMode {
		opts.Progress = func(res services.PageResult) {
			if res.Err != nil {
				cmd.Printf("ERR %s %s: %v\n", res.ID, res.Title, res.Err)
				return
			}
			cmd.Printf("GET %s v%d %s\n", res.ID, res.Version, res.Title)
		}
	}

	failed := 0
	for _, space := range spaces {
		summary, err := syncer.Sync(cmd.Context(), space, opts)
		if err != nil {
			return fmt.Errorf("sync %s: %w", space, err)
		}
		failed += summary.Failed

		report := reportFor(summary)
		emit(cmd, report, "DONE %s listed=%d fetched=%d skipped=%d failed=%d",
			summary.Space, summary.Listed, summary.Fetched, summary.Skipped, summary.Failed)
	}

	if failed > 0 {
		return fmt.Errorf("%d pages failed to sync", failed)
	}
	return nil
}

func reportFor(summary *services.Summary) syncReport {
	report := syncReport{
		Space:   summary.Space,
		Listed:  summary.Listed,
		Fetched: summary.Fetched,
		Skipped: summary.Skipped,
		Failed:  summary.Failed,
	}
	for _, res := range summary.Results {
		if res.Err != nil {
			report.Errors = append(report.Errors, syncPageError{ID: res.ID, Error: res.Err.Error()})
		}
	}
	return report
}
