// Package model defines domain types shared across analysis and pruning.
package model

import "time"

// Turn is a conversational record projected out of one transcript line.
// Turns are read-only: they are rebuilt from scratch on every analysis
// pass and reference their line by global position, never by copy.
type Turn struct {
	Position int    // 0-based index into the full line sequence
	Rank     int    // 0-based index among turns only
	Role     string // "user", "assistant", or "system"
	Preview  string // first 100 chars of flattened text

	HasCode     bool
	HasError    bool
	HasFileEdit bool
	HasTool     bool

	Length    int // byte length of the raw line
	Timestamp time.Time
}

// Phase labels, ordered by classification precedence.
const (
	PhaseDebugging      = "Debugging and error resolution"
	PhaseImplementation = "Implementation and coding"
	PhaseExploration    = "Exploration and file reading"
	PhaseSetup          = "Initial setup and requirements"
	PhaseDiscussion     = "Discussion and planning"
	PhaseGeneral        = "General development"
)

// WorkPhase is a contiguous run of turns sharing a dominant activity.
// Start and End are global line positions of the first and last turn in
// the run; phases never overlap and together cover every turn.
type WorkPhase struct {
	Label    string
	StartPos int
	EndPos   int

	TurnCount  int
	CodeCount  int
	ErrorCount int
	EditCount  int
	ToolCount  int
}

// Candidate is one selectable pruning strategy with its projected effect.
type Candidate struct {
	Key         string // stable identifier: "recent", "bookends", "smart", "custom", "legacy"
	Name        string
	Description string

	// KeepPositions holds the global line positions of turns to retain,
	// ascending and deduplicated.
	KeepPositions []int

	// FreedPercent is round(100 * dropped / totalTurns), informational only.
	FreedPercent int
}

// Freed computes the informational percent-freed figure for keeping
// |kept| of total turns.
func Freed(total, kept int) int {
	if total <= 0 {
		return 0
	}
	dropped := total - kept
	return int(float64(dropped)/float64(total)*100 + 0.5)
}
