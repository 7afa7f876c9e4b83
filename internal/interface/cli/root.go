package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/neilberkman/leaddesk/internal/core/config"
	"github.com/neilberkman/leaddesk/internal/core/console"
	"github.com/neilberkman/leaddesk/internal/core/source"
)

var (
	sourceFlag  string
	configPath  string
	versionInfo string
)

// SetVersion sets the version information from build-time ldflags
func SetVersion(version, commit, date string) {
	versionInfo = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
	rootCmd.Version = versionInfo
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "leaddesk",
	Short: "Salesperson lead console",
	Long: `leaddesk - review, qualify and convert sales leads

Loads leads once from a JSON file, an HTTP endpoint or the local SQLite
catalog, then lets you filter them, edit email and status, and turn them
into opportunities. Edits and opportunities last for the session only.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default to TUI if no subcommand specified
		return tuiCmd.RunE(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&sourceFlag, "source", "", "Lead source: JSON file, http(s) URL or sqlite:<path> (default from config)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/leaddesk/config.toml)")
}

// loadConfig reads the config file and applies flag overrides
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if sourceFlag != "" {
		cfg.Source = sourceFlag
	}
	return cfg, nil
}

// openSource resolves the configured lead source
func openSource(cfg *config.Config) (source.Source, error) {
	src, err := source.Open(cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open lead source: %w", err)
	}
	return src, nil
}

// loadConsole reads the leads synchronously for one-shot commands.
// The loading delay only exists for the interactive console.
func loadConsole(ctx context.Context) (*console.Console, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	src, err := openSource(cfg)
	if err != nil {
		return nil, nil, err
	}

	c := console.New()
	if err := source.LoadInto(ctx, src, 0, c.Leads); err != nil {
		return nil, nil, err
	}
	return c, cfg, nil
}
