package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/neilberkman/leaddesk/internal/core/console"
	"github.com/neilberkman/leaddesk/internal/core/contact"
)

var showCmd = &cobra.Command{
	Use:   "show <lead-id>",
	Short: "Show a lead and its contact card",
	Long: `Display every field of one lead, followed by its contact card rendered
with the configured contact_template.

Example:
  leaddesk show 42`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid lead id %q", args[0])
	}

	c, cfg, err := loadConsole(cmd.Context())
	if err != nil {
		return err
	}

	lead, ok := c.Leads.Get(id)
	if !ok {
		return fmt.Errorf("%w: %d", console.ErrLeadNotFound, id)
	}

	card, err := contact.Render(cfg.ContactTemplate, lead)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Lead #%d\n", lead.ID)
	fmt.Fprintln(out, "========")
	fmt.Fprintf(out, "Nome:       %s\n", lead.Name)
	fmt.Fprintf(out, "Empresa:    %s\n", lead.Company)
	fmt.Fprintf(out, "Email:      %s\n", lead.Email)
	fmt.Fprintf(out, "Fonte:      %s\n", lead.Source)
	fmt.Fprintf(out, "Pontuação:  %d\n", lead.Score)
	fmt.Fprintf(out, "Status:     %s\n", lead.Status)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Contact card: %s\n", card)
	return nil
}
