// Package analyze derives turns, work phases, and importance scores
// from a loaded session transcript.
package analyze

import (
	"regexp"
	"strings"

	"github.com/epaynter/claude-prune/internal/model"
	"github.com/epaynter/claude-prune/internal/session"
)

const previewLen = 100

// declPattern matches a declaration keyword opening a line, the shape
// code pasted into a conversation usually takes.
var declPattern = regexp.MustCompile(`(?m)^(import|export|function|class|const|let|var)\s`)

// errorTerms is the lexical set that marks a turn as error-related.
var errorTerms = []string{
	"error", "exception", "failed", "failure", "bug", "issue", "problem",
}

// fileEditTools are the tool names that modify files.
var fileEditTools = map[string]bool{
	"Edit": true, "Write": true, "MultiEdit": true,
}

// BuildTurns projects the session's conversational records into turns,
// assigning each its rank and signal flags. The returned slice is
// ordered by position; index i holds the turn with rank i.
func BuildTurns(s *session.Session) []model.Turn {
	var turns []model.Turn
	for _, r := range s.Records {
		if !r.IsTurn() {
			continue
		}
		turns = append(turns, model.Turn{
			Position:    r.Position,
			Rank:        len(turns),
			Role:        r.Role,
			Preview:     preview(r.Text),
			HasCode:     hasCode(r.Text),
			HasError:    hasError(r),
			HasFileEdit: hasFileEdit(r.ToolNames),
			HasTool:     len(r.ToolNames) > 0,
			Length:      len(s.Lines[r.Position]),
			Timestamp:   r.Timestamp,
		})
	}
	return turns
}

func hasCode(text string) bool {
	if text == "" {
		return false
	}
	return strings.Contains(text, "```") || declPattern.MatchString(text)
}

func hasError(r session.Record) bool {
	if r.ToolErr || r.APIErr {
		return true
	}
	lower := strings.ToLower(r.Text)
	for _, term := range errorTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

func hasFileEdit(toolNames []string) bool {
	for _, name := range toolNames {
		if fileEditTools[name] {
			return true
		}
	}
	return false
}

// preview collapses whitespace runs and truncates to previewLen runes.
func preview(text string) string {
	flat := strings.Join(strings.Fields(text), " ")
	runes := []rune(flat)
	if len(runes) <= previewLen {
		return flat
	}
	return string(runes[:previewLen])
}
