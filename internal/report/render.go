package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	"github.com/munge/munge/internal/engine"
	"github.com/munge/munge/internal/table"
)

type PrintOptions struct {
	NoColor bool
}

var summaryStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))

// PrintStats writes a per-stage table followed by a one-line summary.
func PrintStats(w io.Writer, res engine.Result, stageIDs []string, opts PrintOptions) error {
	tw := tablewriter.NewWriter(w)
	tw.Header("Stage", "Generated")
	for _, id := range stageIDs {
		n, ok := res.Generated[id]
		if !ok {
			continue
		}
		if err := tw.Append([]string{id, strconv.Itoa(n)}); err != nil {
			return err
		}
	}
	if err := tw.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, summaryLine(res, opts))
	return err
}

func summaryLine(res engine.Result, opts PrintOptions) string {
	line := fmt.Sprintf("Words: %d (skipped: %d)  Classes: %d  Plans: %d  Variants: %d  Duration: %s",
		res.Words, res.Skipped, res.Classes, res.Plans, res.Variants.Len(), res.Duration.Round(time.Millisecond))
	if opts.NoColor {
		return line
	}
	return summaryStyle.Render(line)
}

// PrintRules writes one row per class of t with its candidates in order.
func PrintRules(w io.Writer, t *table.Table) error {
	tw := tablewriter.NewWriter(w)
	tw.Header("Source", "Candidates", "Count")
	for _, c := range t.Classes() {
		cands := ""
		for i, r := range c.Candidates {
			if i > 0 {
				cands += " "
			}
			cands += string(r)
		}
		if err := tw.Append([]string{string(c.Source), cands, strconv.Itoa(len(c.Candidates))}); err != nil {
			return err
		}
	}
	if err := tw.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Plans: %d\n", t.PlanCount())
	return err
}
