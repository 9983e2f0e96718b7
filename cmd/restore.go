package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/epaynter/claude-prune/internal/cli"
	"github.com/epaynter/claude-prune/internal/session"
)

var restoreDryRun bool

var restoreCmd = &cobra.Command{
	Use:   "restore <session-id>",
	Short: "Restore a session from its most recent backup",
	Args:  cobra.ExactArgs(1),
	RunE:  runRestore,
}

func init() {
	restoreCmd.Flags().BoolVar(&restoreDryRun, "dry-run", false, "List available backups without writing")
	rootCmd.AddCommand(restoreCmd)
}

func runRestore(_ *cobra.Command, args []string) error {
	sessionID := args[0]

	_, claudeDir, err := loadConfig()
	if err != nil {
		return err
	}
	path, err := session.Find(claudeDir, sessionID)
	if err != nil {
		return fmt.Errorf("locating session %s: %w", sessionID, err)
	}

	if restoreDryRun {
		return listBackups(path, sessionID)
	}

	b, err := session.Restore(path, sessionID)
	if err != nil {
		return fmt.Errorf("restoring session %s: %w", sessionID, err)
	}

	fmt.Println()
	fmt.Printf("  Restored %s from backup taken %s\n",
		cli.Accent(sessionID), b.Stamp.Local().Format("Jan 2 15:04:05"))
	return nil
}

func listBackups(path, sessionID string) error {
	backups, err := session.ListBackups(path, sessionID)
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("session %s: %w", sessionID, session.ErrNoBackups)
	}

	t := cli.Table{
		Title:   "Backups",
		Headers: []string{"Taken", "Age", "File"},
	}
	for _, b := range backups {
		t.Rows = append(t.Rows, []string{
			b.Stamp.Local().Format("Jan 2 15:04:05"),
			cli.FormatAge(b.Stamp),
			filepath.Base(b.Path),
		})
	}
	fmt.Println()
	fmt.Println(cli.RenderTable(t))
	fmt.Println("  " + cli.Muted("Most recent is restored first. Re-run without --dry-run to restore."))
	return nil
}
