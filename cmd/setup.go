package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/epaynter/claude-prune/internal/cli"
	"github.com/epaynter/claude-prune/internal/config"
	"github.com/epaynter/claude-prune/internal/session"
	"github.com/epaynter/claude-prune/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, claudeDir, err := loadConfig()
	if err != nil {
		return err
	}

	infos, _ := session.Discover(claudeDir)

	fmt.Println()
	fmt.Println("  " + cli.Accent("Welcome to claude-prune!"))
	fmt.Println()

	updated, saveIt, err := tui.RunSetup(cfg, claudeDir, len(infos))
	if err != nil {
		return err
	}
	if !saveIt {
		fmt.Println("  " + cli.Muted("Setup cancelled, nothing saved."))
		return nil
	}

	if err := config.Save(updated); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `claude-prune setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}
