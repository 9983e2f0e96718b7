package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/epaynter/claude-prune/internal/config"
)

// RunSetup walks the setup form over an existing config and returns the
// updated copy. The second result is false when the user backed out;
// nothing should be saved then.
func RunSetup(cfg config.Config, claudeDir string, sessionCount int) (config.Config, bool, error) {
	dir := cfg.General.ClaudeDir
	keep := strconv.Itoa(cfg.General.DefaultKeep)
	confirm := cfg.General.Confirm

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Claude data directory").
			Description(fmt.Sprintf("Found %d sessions under %s; leave blank to keep using it", sessionCount, claudeDir)).
			Placeholder("~/.claude").
			Value(&dir),
		huh.NewInput().
			Title("Default keep count").
			Description("Assistant turns kept by the menu's keep-last option").
			Validate(func(s string) error {
				n, err := strconv.Atoi(strings.TrimSpace(s))
				if err != nil || n < 1 {
					return errors.New("enter a whole number of turns, at least 1")
				}
				return nil
			}).
			Value(&keep),
		huh.NewConfirm().
			Title("Ask before every rewrite?").
			Affirmative("Ask").
			Negative("Just prune").
			Value(&confirm),
	))

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return cfg, false, nil
		}
		return cfg, false, err
	}

	cfg.General.ClaudeDir = strings.TrimSpace(dir)
	if n, err := strconv.Atoi(strings.TrimSpace(keep)); err == nil {
		cfg.General.DefaultKeep = n
	}
	cfg.General.Confirm = confirm
	return cfg, true, nil
}
