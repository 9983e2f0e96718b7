package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/epaynter/claude-prune/internal/cli"
	"github.com/epaynter/claude-prune/internal/session"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List sessions found under the Claude data directory",
	RunE:  runSessions,
}

var sessionsLimit int

func init() {
	sessionsCmd.Flags().IntVarP(&sessionsLimit, "limit", "l", 20, "Number of sessions to show")
	rootCmd.AddCommand(sessionsCmd)
}

func runSessions(_ *cobra.Command, _ []string) error {
	_, claudeDir, err := loadConfig()
	if err != nil {
		return err
	}

	infos, err := session.Discover(claudeDir)
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		fmt.Println("\n  No sessions found under " + claudeDir)
		return nil
	}

	// Sort by modification time descending
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ModTime.After(infos[j].ModTime)
	})

	// Limit
	shown := infos
	if sessionsLimit > 0 && len(shown) > sessionsLimit {
		shown = shown[:sessionsLimit]
	}

	rows := make([][]string, 0, len(shown))
	for _, info := range shown {
		project := info.Project
		if info.IsSubagent {
			project += " (sub)"
		}

		rows = append(rows, []string{
			cli.Truncate(info.SessionID, 36),
			cli.Truncate(project, 24),
			cli.FormatBytes(info.Size),
			cli.FormatAge(info.ModTime),
		})
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SESSIONS  %d found (showing %d)", len(infos), len(shown))))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Session", "Project", "Size", "Modified"},
		Rows:    rows,
	}))

	return nil
}
