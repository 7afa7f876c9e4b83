package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/neilberkman/leaddesk/internal/core/daemon"
	"github.com/neilberkman/leaddesk/internal/core/db"
	"github.com/neilberkman/leaddesk/internal/core/importer"
)

var watchDBPath string

var watchCmd = &cobra.Command{
	Use:   "watch <leads.json>",
	Short: "Keep the SQLite catalog in sync with a JSON file",
	Long: `Import a JSON lead file into the SQLite catalog, then re-import it every
time the file changes. A file that fails validation is logged and the
previous catalog is kept.

Running consoles are not affected; the next session reads the new catalog.
Stop with Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchDBPath, "db", "", "Catalog path (default from config)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dbPath := cfg.DBPath
	if watchDBPath != "" {
		dbPath = watchDBPath
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create db directory: %w", err)
	}

	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		_ = database.Close()
	}()

	w, err := daemon.NewCatalogWatcher(importer.New(database), args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := w.Start(ctx); err != nil && err != context.Canceled {
		return fmt.Errorf("watcher failed: %w", err)
	}

	stats := w.Stats()
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d times, %d errors\n", stats.Imports, stats.Errors)
	return nil
}
