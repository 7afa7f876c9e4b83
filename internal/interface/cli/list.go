package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/muesli/reflow/truncate"
	"github.com/spf13/cobra"

	"github.com/neilberkman/leaddesk/internal/core/console"
	"github.com/neilberkman/leaddesk/internal/core/models"
)

var (
	listLimit  int
	listStatus string
	listJSON   bool
)

var listCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List leads",
	Long: `List leads in source order, filtered by name/company text and status.

The query may carry a status:<value> token; --status takes precedence.
Status values: Novo, "Em Contato", Qualificado (or new, in-contact, qualified).

Examples:
  leaddesk list
  leaddesk list acme
  leaddesk list "acme status:qualificado"
  leaddesk list --status em-contato --limit 10
  leaddesk list --json --source leads.json`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum number of leads to display (0 for all)")
	listCmd.Flags().StringVar(&listStatus, "status", "", "Only show leads with this status")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print the leads as a JSON array in the source wire format")
}

func runList(cmd *cobra.Command, args []string) error {
	c, _, err := loadConsole(cmd.Context())
	if err != nil {
		return err
	}

	if err := applyFilters(c, strings.Join(args, " "), listStatus); err != nil {
		return err
	}

	leads := c.Visible()
	if listLimit > 0 && len(leads) > listLimit {
		leads = leads[:listLimit]
	}

	out := cmd.OutOrStdout()
	if listJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(leads)
	}

	if len(leads) == 0 {
		fmt.Fprintln(out, "No leads match.")
		return nil
	}
	writeLeadTable(out, leads)
	return nil
}

// applyFilters sets the console's query and status from a search string
// and an optional explicit status
func applyFilters(c *console.Console, query, status string) error {
	f := c.ApplySearch(query)
	if f.BadStatus != "" {
		return fmt.Errorf("unknown status %q", f.BadStatus)
	}
	if status != "" {
		s, ok := models.ParseStatus(status)
		if !ok {
			return fmt.Errorf("unknown status %q", status)
		}
		c.SetStatusFilter(s)
	}
	return nil
}

func writeLeadTable(w io.Writer, leads []models.Lead) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOME\tEMPRESA\tEMAIL\tFONTE\tPONTUAÇÃO\tSTATUS")
	for _, l := range leads {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\t%s\n",
			l.ID,
			truncate.StringWithTail(l.Name, 30, "..."),
			truncate.StringWithTail(l.Company, 30, "..."),
			l.Email,
			l.Source,
			l.Score,
			l.Status,
		)
	}
	_ = tw.Flush()
}
