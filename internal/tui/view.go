// Package tui implements the interactive strategy menu and the rendered
// views around it.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/epaynter/claude-prune/internal/analyze"
	"github.com/epaynter/claude-prune/internal/cli"
	"github.com/epaynter/claude-prune/internal/model"
	"github.com/epaynter/claude-prune/internal/prune"
	"github.com/epaynter/claude-prune/internal/tui/components"
)

const sparklineWidth = 40

// RenderAnalysis renders the session overview: headline numbers, the
// turn-length activity sparkline, and the work phase table.
func RenderAnalysis(a *analyze.Analysis) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(cli.RenderTitle("SESSION " + cli.Truncate(a.SessionID, 24)))
	b.WriteString("\n\n")

	b.WriteString(cli.KeyValue("Turns", fmt.Sprintf("%s across %s lines",
		cli.FormatNumber(int64(a.TurnCount())), cli.FormatNumber(int64(a.TotalLines)))))
	b.WriteString("\n")
	b.WriteString(cli.KeyValue("Assistant", strconv.Itoa(len(a.AssistantPositions))))
	b.WriteString("\n")
	b.WriteString(cli.KeyValue("Key turns", strconv.Itoa(len(a.Key))))
	b.WriteString("\n")
	if !a.Start.IsZero() && !a.End.IsZero() {
		span := int64(a.End.Sub(a.Start).Seconds())
		b.WriteString(cli.KeyValue("Span", cli.FormatDuration(span)))
		b.WriteString("\n")
	}
	if a.TurnCount() > 0 {
		b.WriteString(cli.KeyValue("Activity", cli.RenderSparkline(downsample(a.Lengths(), sparklineWidth))))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(a.Phases) > 0 {
		rows := make([][]string, 0, len(a.Phases))
		for _, p := range a.Phases {
			rows = append(rows, []string{
				p.Label,
				strconv.Itoa(p.TurnCount),
				fmt.Sprintf("L%d-L%d", p.StartPos, p.EndPos),
				strconv.Itoa(p.CodeCount),
				strconv.Itoa(p.ErrorCount),
				strconv.Itoa(p.EditCount),
				strconv.Itoa(p.ToolCount),
			})
		}
		b.WriteString(cli.RenderTable(cli.Table{
			Title:   "Work phases",
			Headers: []string{"Phase", "Turns", "Span", "Code", "Errs", "Edits", "Tools"},
			Rows:    rows,
		}))
	}

	return b.String()
}

// RenderStrategies renders the candidate list with freed bars, shown
// above the menu so the selector itself can stay plain.
func RenderStrategies(cands []model.Candidate, totalTurns int) string {
	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(cli.Accent("Strategies"))
	b.WriteString("\n")
	for _, c := range cands {
		b.WriteString(fmt.Sprintf("  %-12s %s  %s\n",
			c.Name,
			components.FreedBar(float64(c.FreedPercent)/100, 20),
			cli.Muted(fmt.Sprintf("keeps %d of %d", len(c.KeepPositions), totalTurns)),
		))
	}
	return b.String()
}

// RenderOutcome renders the result of a transform, for both real runs
// and dry runs.
func RenderOutcome(res prune.Result, totalTurns, totalLines int, backupPath string, dryRun bool) string {
	var b strings.Builder

	freed := model.Freed(totalTurns, res.Kept)
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Kept %d of %d turns  %s\n",
		res.Kept, totalTurns, components.FreedBar(float64(freed)/100, 20)))
	b.WriteString(cli.Muted(fmt.Sprintf("  Lines %d → %d, strategy: %s\n",
		totalLines, len(res.Lines), res.Strategy)))
	if res.CacheResetPos >= 0 {
		b.WriteString(cli.Muted(fmt.Sprintf("  Cache-read counter reset at line %d\n", res.CacheResetPos)))
	}

	switch {
	case dryRun:
		b.WriteString(cli.Warn("  Dry run, nothing written.\n"))
	case backupPath != "":
		b.WriteString(fmt.Sprintf("  Backup: %s\n", backupPath))
	}

	return b.String()
}

// downsample buckets values into at most width cells, averaging within
// each bucket, so long sessions still fit one sparkline row.
func downsample(values []float64, width int) []float64 {
	if len(values) <= width {
		return values
	}
	out := make([]float64, width)
	for i := 0; i < width; i++ {
		lo := i * len(values) / width
		hi := (i + 1) * len(values) / width
		if hi <= lo {
			hi = lo + 1
		}
		sum := 0.0
		for _, v := range values[lo:hi] {
			sum += v
		}
		out[i] = sum / float64(hi-lo)
	}
	return out
}
