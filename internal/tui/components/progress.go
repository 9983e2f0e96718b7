// Package components provides small rendering widgets shared by the
// interactive menu and the command output.
package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/epaynter/claude-prune/internal/cli"
)

// ColorForFreed returns green/yellow/orange/red as the share of turns
// being discarded grows. High percentages read as a warning: that much
// context is hard to get back.
func ColorForFreed(pct float64) string {
	switch {
	case pct >= 0.9:
		return string(cli.ColorRed)
	case pct >= 0.7:
		return string(cli.ColorOrange)
	case pct >= 0.5:
		return string(cli.ColorYellow)
	default:
		return string(cli.ColorGreen)
	}
}

// FreedBar renders a static bar for the share of turns a strategy would
// free, with the percentage alongside.
func FreedBar(pct float64, barWidth int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}

	bar := progress.New(
		progress.WithSolidFill(ColorForFreed(pct)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(cli.ColorTextDim)

	pctStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorForFreed(pct))).
		Bold(true)

	return bar.ViewAs(pct) + " " + pctStyle.Render(fmt.Sprintf("%3.0f%%", pct*100))
}
