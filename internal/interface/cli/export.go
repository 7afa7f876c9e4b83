package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/neilberkman/leaddesk/internal/core/models"
)

var (
	exportOutput string
	exportStatus string
)

var exportCmd = &cobra.Command{
	Use:   "export [query]",
	Short: "Export leads to a markdown table",
	Long: `Export the leads matching a query to a markdown file.

By default exports to the current directory as leads-<date>.md.
Use --output to specify a custom path, or "-" for stdout.

Examples:
  leaddesk export
  leaddesk export acme --output ~/acme-leads.md
  leaddesk export "status:qualificado" -o qualified.md`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path (default: leads-<date>.md in current directory)")
	exportCmd.Flags().StringVar(&exportStatus, "status", "", "Only export leads with this status")
}

func runExport(cmd *cobra.Command, args []string) error {
	c, cfg, err := loadConsole(cmd.Context())
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	if err := applyFilters(c, query, exportStatus); err != nil {
		return err
	}
	leads := c.Visible()

	content := renderMarkdown(leads, cfg.Source, query, time.Now())

	if exportOutput == "-" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), content)
		return err
	}

	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	// Determine output path
	outputPath := exportOutput
	if outputPath == "" {
		outputPath = filepath.Join(cwd, fmt.Sprintf("leads-%s.md", time.Now().Format("2006-01-02")))
	} else if !filepath.IsAbs(outputPath) {
		// Make relative paths absolute to current directory
		outputPath = filepath.Join(cwd, outputPath)
	}

	if err := os.WriteFile(outputPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d leads to: %s\n", len(leads), outputPath)
	return nil
}

func renderMarkdown(leads []models.Lead, src, query string, at time.Time) string {
	var b strings.Builder

	b.WriteString("# Leads\n\n")
	b.WriteString("**Source:** `")
	b.WriteString(src)
	b.WriteString("`  \n")
	if query != "" {
		b.WriteString("**Query:** `")
		b.WriteString(query)
		b.WriteString("`  \n")
	}
	b.WriteString("**Exported:** ")
	b.WriteString(at.Format("Jan 2, 2006 3:04 PM"))
	b.WriteString("  \n")
	b.WriteString(fmt.Sprintf("**Leads:** %d\n\n", len(leads)))

	if len(leads) == 0 {
		b.WriteString("_No leads match._\n")
		return b.String()
	}

	b.WriteString("| ID | Nome | Empresa | Email | Fonte | Pontuação | Status |\n")
	b.WriteString("|---:|---|---|---|---|---:|---|\n")
	for _, l := range leads {
		b.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s | %d | %s |\n",
			l.ID,
			escapeCell(l.Name),
			escapeCell(l.Company),
			escapeCell(l.Email),
			escapeCell(l.Source),
			l.Score,
			l.Status,
		))
	}
	return b.String()
}

// escapeCell keeps pipes and newlines from breaking the table
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
