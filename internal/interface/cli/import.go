package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/neilberkman/leaddesk/internal/core/db"
	"github.com/neilberkman/leaddesk/internal/core/importer"
	"github.com/neilberkman/leaddesk/internal/core/source"
)

var importDBPath string

var importCmd = &cobra.Command{
	Use:   "import <leads.json>",
	Short: "Seed the SQLite lead catalog from a JSON file",
	Long: `Validate a JSON array of leads and replace the contents of the local
SQLite catalog with it. Sessions read the catalog when the source is
sqlite:<path> (the default).

The file is rejected as a whole if any lead has a duplicate id or an
unknown status.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVar(&importDBPath, "db", "", "Catalog path (default from config)")
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dbPath := cfg.DBPath
	if importDBPath != "" {
		dbPath = importDBPath
	}

	// Count up front so the progress bar has a total
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	leads, err := source.DecodeLeads(f)
	_ = f.Close()
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Importing leads from: %s\n", path)
	fmt.Fprintf(out, "Database: %s\n\n", dbPath)

	// Ensure database directory exists
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

	imp := importer.New(database)
	progress := importer.NewProgressReporter(out, len(leads))

	if _, err := imp.ImportFile(path, progress); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	progress.Finish()
	return nil
}
