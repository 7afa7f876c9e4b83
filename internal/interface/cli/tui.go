package cli

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/neilberkman/leaddesk/internal/core/console"
	"github.com/neilberkman/leaddesk/internal/core/models"
	"github.com/neilberkman/leaddesk/internal/interface/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive lead console",
	Long:  "Launch an interactive terminal UI for filtering, editing and converting leads",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	src, err := openSource(cfg)
	if err != nil {
		return err
	}

	model := tui.New(console.New(), src, cfg)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	)

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	// Opportunities are not stored anywhere; leave a record on the terminal
	if m, ok := finalModel.(tui.Model); ok {
		printOpportunitySummary(cmd.OutOrStdout(), m.Opportunities())
	}

	return nil
}

func printOpportunitySummary(w io.Writer, opps []models.Opportunity) {
	if len(opps) == 0 {
		return
	}
	fmt.Fprintf(w, "Created %d %s this session:\n", len(opps), pluralize(len(opps), "opportunity", "opportunities"))
	for _, o := range opps {
		fmt.Fprintf(w, "  %d  %s (%s) %s\n", o.ID, o.Name, o.AccountName, humanize.Time(o.CreatedAt))
	}
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
