package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/epaynter/claude-prune/internal/analyze"
	"github.com/epaynter/claude-prune/internal/config"
)

var flagClaudeDir string

var rootCmd = &cobra.Command{
	Use:   "claude-prune",
	Short: "Prune Claude Code session transcripts",
	Long: "Analyze a Claude Code session transcript, pick which turns to keep,\n" +
		"and rewrite the file with a backup taken first.",
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagClaudeDir, "claude-dir", "d", "", "Claude data directory (default ~/.claude)")
}

// loadConfig is the shared entry path: the active config plus the
// resolved Claude data directory.
func loadConfig() (config.Config, string, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, "", err
	}
	return cfg, config.ClaudeDir(cfg, flagClaudeDir), nil
}

func analysisOptions(cfg config.Config) analyze.Options {
	return analyze.Options{
		WindowSize:       cfg.Analysis.WindowSize,
		MergeGap:         cfg.Analysis.MergeGap,
		SetupTurns:       cfg.Analysis.SetupTurns,
		ScoreKeepMin:     cfg.Analysis.ScoreKeepMin,
		ScoreKeepPercent: cfg.Analysis.ScoreKeepPercent,
	}
}
