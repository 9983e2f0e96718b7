package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/epaynter/claude-prune/internal/analyze"
	"github.com/epaynter/claude-prune/internal/cli"
	"github.com/epaynter/claude-prune/internal/config"
	"github.com/epaynter/claude-prune/internal/model"
	"github.com/epaynter/claude-prune/internal/prune"
	"github.com/epaynter/claude-prune/internal/session"
	"github.com/epaynter/claude-prune/internal/strategy"
	"github.com/epaynter/claude-prune/internal/tui"
)

var (
	pruneKeep     int
	pruneStrategy string
	pruneRange    string
	pruneDryRun   bool
	pruneYes      bool
)

var pruneCmd = &cobra.Command{
	Use:   "prune <session-id>",
	Short: "Analyze a session and discard turns",
	Long: "Analyze the session's transcript, pick a keep strategy, and rewrite\n" +
		"the file in place. The original is saved to a sibling backups/ directory\n" +
		"before anything is written.",
	Args: cobra.ExactArgs(1),
	RunE: runPrune,
}

func init() {
	pruneCmd.Flags().IntVarP(&pruneKeep, "keep", "k", 0, "Keep everything from the Nth-from-last assistant turn on")
	pruneCmd.Flags().StringVarP(&pruneStrategy, "strategy", "s", "", "Pick a strategy without the menu: recent, bookends, or smart")
	pruneCmd.Flags().StringVarP(&pruneRange, "range", "r", "", "Keep 1-based turn ranges, e.g. 1-10,40-*")
	pruneCmd.Flags().BoolVar(&pruneDryRun, "dry-run", false, "Report what would be written without touching the file")
	pruneCmd.Flags().BoolVarP(&pruneYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(pruneCmd)
}

func runPrune(cmd *cobra.Command, args []string) error {
	sessionID := args[0]

	cfg, claudeDir, err := loadConfig()
	if err != nil {
		return err
	}

	path, err := session.Find(claudeDir, sessionID)
	if err != nil {
		return fmt.Errorf("locating session %s: %w", sessionID, err)
	}
	s, err := session.Load(path, sessionID)
	if err != nil {
		return err
	}

	a := analyze.Analyze(s, analysisOptions(cfg))
	total := a.TurnCount()
	if total == 0 {
		fmt.Println()
		fmt.Println("  " + cli.Muted("Session has no conversation turns, nothing to prune."))
		return nil
	}

	chosen, err := selectCandidate(cmd, a, cfg)
	if err != nil {
		return err
	}
	if chosen == nil {
		fmt.Println()
		fmt.Println("  " + cli.Muted("Cancelled, nothing written."))
		return nil
	}

	res := prune.Apply(s, chosen.KeepPositions, chosen.Key)

	if pruneDryRun {
		fmt.Print(tui.RenderOutcome(res, total, len(s.Lines), "", true))
		return nil
	}

	if !pruneYes && cfg.General.Confirm {
		ok, err := tui.Confirm(chosen, total)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println()
			fmt.Println("  " + cli.Muted("Cancelled, nothing written."))
			return nil
		}
	}

	backupPath, err := session.CreateBackup(path, sessionID)
	if err != nil {
		return fmt.Errorf("backing up session: %w", err)
	}
	if err := session.WriteLines(path, res.Lines); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}

	fmt.Print(tui.RenderOutcome(res, total, len(s.Lines), backupPath, false))
	return nil
}

// selectCandidate resolves the flags into a keep set, falling back to the
// interactive menu when none are given. A nil candidate with a nil error
// means the user backed out.
func selectCandidate(cmd *cobra.Command, a *analyze.Analysis, cfg config.Config) (*model.Candidate, error) {
	total := a.TurnCount()

	switch {
	case cmd.Flags().Changed("keep"):
		if pruneKeep < 1 {
			return nil, fmt.Errorf("--keep must be at least 1")
		}
		legacy := strategy.Legacy(a.TurnPositions, a.AssistantPositions, pruneKeep)
		fmt.Println()
		fmt.Printf("  %s\n", cli.Muted(fmt.Sprintf("%d assistant turns in session, keeping the last %d",
			legacy.AssistantCount, min(pruneKeep, legacy.AssistantCount))))
		return &model.Candidate{
			Key:           strategy.KeyLegacy,
			Name:          fmt.Sprintf("Last %d assistant turns", pruneKeep),
			KeepPositions: legacy.KeepPositions,
			FreedPercent:  model.Freed(total, len(legacy.KeepPositions)),
		}, nil

	case pruneRange != "":
		keep, err := strategy.ParseRange(pruneRange, a.TurnPositions)
		if err != nil {
			return nil, err
		}
		return &model.Candidate{
			Key:           strategy.KeyCustom,
			Name:          fmt.Sprintf("Turns %s", pruneRange),
			KeepPositions: keep,
			FreedPercent:  model.Freed(total, len(keep)),
		}, nil

	case pruneStrategy != "":
		c := strategy.ByKey(strategy.Candidates(a), pruneStrategy)
		if c == nil {
			return nil, fmt.Errorf("unknown strategy %q (want recent, bookends, or smart)", pruneStrategy)
		}
		return c, nil
	}

	cands := strategy.Candidates(a)
	if n := cfg.General.DefaultKeep; n > 0 {
		legacy := strategy.Legacy(a.TurnPositions, a.AssistantPositions, n)
		cands = append(cands, model.Candidate{
			Key:           strategy.KeyLegacy,
			Name:          "Last turns",
			Description:   fmt.Sprintf("keep everything from the last %d assistant turns", n),
			KeepPositions: legacy.KeepPositions,
			FreedPercent:  model.Freed(total, len(legacy.KeepPositions)),
		})
	}
	fmt.Print(tui.RenderAnalysis(a))
	fmt.Println()
	fmt.Print(tui.RenderStrategies(cands, total))
	return tui.Choose(a, cands)
}
