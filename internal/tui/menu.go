package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/epaynter/claude-prune/internal/analyze"
	"github.com/epaynter/claude-prune/internal/model"
	"github.com/epaynter/claude-prune/internal/strategy"
)

// Choose runs the strategy selector and returns the chosen candidate.
// A nil candidate with a nil error means the user cancelled; no file
// write may happen after that.
func Choose(a *analyze.Analysis, cands []model.Candidate) (*model.Candidate, error) {
	opts := make([]huh.Option[string], 0, len(cands)+2)
	for _, c := range cands {
		label := fmt.Sprintf("%s (%s)", c.Name, c.Description)
		opts = append(opts, huh.NewOption(label, c.Key))
	}
	opts = append(opts,
		huh.NewOption("Custom (pick exact turn ranges)", strategy.KeyCustom),
		huh.NewOption("Cancel", "cancel"),
	)

	var key string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Pruning strategy").
			Description("Choose what to keep; everything else is dropped").
			Options(opts...).
			Value(&key),
	))

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, nil
		}
		return nil, err
	}

	switch key {
	case "cancel":
		return nil, nil
	case strategy.KeyCustom:
		return chooseCustom(a)
	default:
		return strategy.ByKey(cands, key), nil
	}
}

// chooseCustom prompts for a range expression. Validation runs live in
// the input field, so a malformed expression re-prompts with its message
// instead of failing the run.
func chooseCustom(a *analyze.Analysis) (*model.Candidate, error) {
	n := len(a.TurnPositions)

	var expr string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Turn ranges to keep").
			Description(fmt.Sprintf("Comma-separated, 1-based, * runs to the end (session has %d turns)", n)).
			Placeholder("1-10,40-*").
			Validate(func(s string) error {
				_, err := strategy.ParseRange(s, a.TurnPositions)
				return err
			}).
			Value(&expr),
	))

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, nil
		}
		return nil, err
	}

	keep, err := strategy.ParseRange(expr, a.TurnPositions)
	if err != nil {
		return nil, err
	}

	return &model.Candidate{
		Key:           strategy.KeyCustom,
		Name:          "Custom",
		Description:   expr,
		KeepPositions: keep,
		FreedPercent:  model.Freed(n, len(keep)),
	}, nil
}

// Confirm runs the final gate before any file is touched. Abort counts
// as a no.
func Confirm(c *model.Candidate, totalTurns int) (bool, error) {
	drop := totalTurns - len(c.KeepPositions)

	var ok bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Drop %d of %d turns (%d%% freed)?", drop, totalTurns, c.FreedPercent)).
			Affirmative("Prune").
			Negative("Keep everything").
			Value(&ok),
	))

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}
