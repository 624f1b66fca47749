package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	configfile "github.com/custodia-labs/conflu-cli/internal/adapters/driven/config/file"
	storagefile "github.com/custodia-labs/conflu-cli/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/conflu-cli/internal/connectors/confluence"
	"github.com/custodia-labs/conflu-cli/internal/core/ports/driven"
	"github.com/custodia-labs/conflu-cli/internal/core/services"
	"github.com/custodia-labs/conflu-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services wired by setup and consumed by the subcommands.
var (
	cfg          *configfile.Config
	pageService  *services.PageService
	syncer       *services.Syncer
	indexService *services.IndexService

	// configErr is non-nil when the connection settings are incomplete.
	// Commands that talk to the API surface it; local commands ignore it.
	configErr error
)

var (
	flagVerbose bool
	flagJSON    bool
	flagConfig  string
	flagDir     string
)

var rootCmd = &cobra.Command{
	Use:   "conflu",
	Short: "Mirror Confluence pages as local ADF files",
	Long: `conflu keeps a local mirror of Confluence pages as raw ADF JSON files,
one file pair per page, so page bodies can be inspected, diffed, edited
and pushed back from the command line.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit machine-readable JSON output")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default ~/.conflu/config.toml)")
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "page cache directory (overrides config)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// setup loads configuration and wires the services. Commands that only
// touch the local cache work without connection settings, so an
// incomplete configuration is recorded rather than returned here.
func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(flagVerbose)
	jsonMode = flagJSON

	path := flagConfig
	if path == "" {
		var err error
		if path, err = configfile.DefaultPath(); err != nil {
			return err
		}
	}

	var err error
	if cfg, err = configfile.Load(path); err != nil {
		return err
	}
	if flagDir != "" {
		cfg.PagesDir = flagDir
		cfg.IndexPath = filepath.Join(flagDir, "index.json")
	}

	var transport driven.Transport
	if configErr = cfg.Validate(); configErr == nil {
		transport = confluence.NewClient(confluence.Config{
			BaseURL:     cfg.BaseURL,
			Email:       cfg.Email,
			APIToken:    cfg.APIToken,
			BearerToken: cfg.BearerToken,
		})
	}

	store := storagefile.NewPageStore(cfg.PagesDir)
	pageService = services.NewPageService(transport, store)
	syncer = services.NewSyncer(transport, store)
	indexService = services.NewIndexService(store, storagefile.NewIndexStore(cfg.IndexPath))
	return nil
}

// requireConfigured guards commands that talk to the API.
func requireConfigured() error {
	return configErr
}
