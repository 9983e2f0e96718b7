// Package cmd implements the claude-prune CLI commands.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/epaynter/claude-prune/internal/config"
)

var configPathOnly bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configPathOnly, "path", false, "Print only the config file path")
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	if configPathOnly {
		fmt.Println(config.Path())
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Default keep:    %d\n", cfg.General.DefaultKeep)
	fmt.Printf("    Confirm prompts: %v\n", cfg.General.Confirm)
	if cfg.General.ClaudeDir != "" {
		fmt.Printf("    Claude directory: %s\n", cfg.General.ClaudeDir)
	}
	fmt.Println()

	fmt.Println("  [Analysis]")
	fmt.Printf("    Window size:        %d\n", cfg.Analysis.WindowSize)
	fmt.Printf("    Merge gap:          %d\n", cfg.Analysis.MergeGap)
	fmt.Printf("    Setup turns:        %d\n", cfg.Analysis.SetupTurns)
	fmt.Printf("    Score keep percent: %d\n", cfg.Analysis.ScoreKeepPercent)
	fmt.Printf("    Score keep minimum: %d\n", cfg.Analysis.ScoreKeepMin)
	fmt.Println()

	fmt.Printf("  Edit %s to change these.\n", config.Path())
	return nil
}
