package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/neilberkman/leaddesk/internal/core/config"
	"github.com/neilberkman/leaddesk/internal/core/console"
	"github.com/neilberkman/leaddesk/internal/core/db"
	"github.com/neilberkman/leaddesk/internal/core/models"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show lead statistics",
	Long: `Display counts per status, the average score and the top lead of the
configured source, plus the state of the local SQLite catalog.`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	c, cfg, err := loadConsole(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printStats(out, c.Stats())
	fmt.Fprintln(out)
	return printCatalogInfo(out, cfg)
}

func printStats(w io.Writer, st console.Stats) {
	fmt.Fprintln(w, "Lead Statistics")
	fmt.Fprintln(w, "===============")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total Leads:       %s\n", humanize.Comma(int64(st.Total)))
	for _, s := range models.Statuses {
		fmt.Fprintf(w, "  %-16s %s\n", string(s)+":", humanize.Comma(int64(st.ByStatus[s])))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Average Score:     %s\n", humanize.FormatFloat("#.##", st.AverageScore))
	if st.TopLead != nil {
		fmt.Fprintf(w, "Top Lead:          %s (%s), score %d\n", st.TopLead.Name, st.TopLead.Company, st.TopLead.Score)
	}
}

// printCatalogInfo reports on the SQLite catalog without creating it
func printCatalogInfo(w io.Writer, cfg *config.Config) error {
	fileInfo, err := os.Stat(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(w, "Catalog:           none at %s (run 'leaddesk import')\n", cfg.DBPath)
		return nil
	}

	database, err := db.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		_ = database.Close()
	}()

	count, err := database.CountLeads()
	if err != nil {
		return fmt.Errorf("failed to count catalog leads: %w", err)
	}

	fmt.Fprintf(w, "Catalog Location:  %s\n", cfg.DBPath)
	fmt.Fprintf(w, "Catalog Size:      %s\n", humanize.Bytes(uint64(fileInfo.Size())))
	fmt.Fprintf(w, "Catalog Leads:     %s\n", humanize.Comma(int64(count)))

	last, err := database.LastImport()
	if err != nil {
		return fmt.Errorf("failed to read import log: %w", err)
	}
	if last != nil {
		fmt.Fprintf(w, "Last Import:       %s (%s, %d leads)\n", humanize.Time(last.ImportedAt), last.FilePath, last.Leads)
	}
	return nil
}
