package importer

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// ProgressCallback defines the interface for progress reporting
type ProgressCallback interface {
	Update(leadName string, company string)
	Finish()
}

// ProgressReporter handles progress feedback during import
type ProgressReporter struct {
	writer    io.Writer
	total     int
	current   int
	startTime time.Time
}

// NewProgressReporter creates a new progress reporter
func NewProgressReporter(w io.Writer, total int) *ProgressReporter {
	return &ProgressReporter{
		writer:    w,
		total:     total,
		startTime: time.Now(),
	}
}

// Update advances the bar by one lead
func (p *ProgressReporter) Update(leadName string, company string) {
	p.current++
	if p.total == 0 {
		return
	}

	pct := float64(p.current) / float64(p.total) * 100

	barWidth := 50
	filled := int(float64(barWidth) * float64(p.current) / float64(p.total))
	if filled > barWidth {
		filled = barWidth
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	displayText := leadName
	if company != "" {
		displayText += " (" + company + ")"
	}
	if len(displayText) > 60 {
		displayText = displayText[:57] + "..."
	}

	_, _ = fmt.Fprintf(p.writer, "\r[%s] %3.0f%% (%d/%d) | %s",
		bar, pct, p.current, p.total, displayText)
}

// Finish completes the progress display
func (p *ProgressReporter) Finish() {
	elapsed := time.Since(p.startTime)
	_, _ = fmt.Fprintf(p.writer, "\nCompleted: Imported %d leads in %s\n", p.current, elapsed.Round(time.Millisecond))
}
