package analyze

import (
	"time"

	"github.com/epaynter/claude-prune/internal/model"
	"github.com/epaynter/claude-prune/internal/session"
)

// Options holds the analysis knobs. Defaults reproduce the published
// behavior; the thresholds exist as named values because their numbers
// carry no derivable rationale.
type Options struct {
	WindowSize       int // turns per segmentation window
	MergeGap         int // max positional gap for same-label phase folding
	SetupTurns       int // a window starting below this rank can label as setup
	ScoreKeepMin     int
	ScoreKeepPercent int
}

// DefaultOptions returns the standard analysis parameters.
func DefaultOptions() Options {
	return Options{
		WindowSize:       10,
		MergeGap:         3,
		SetupTurns:       6,
		ScoreKeepMin:     10,
		ScoreKeepPercent: 20,
	}
}

// sanitize clamps nonsensical option values back to their defaults so a
// hand-edited config cannot break segmentation arithmetic.
func (o Options) sanitize() Options {
	d := DefaultOptions()
	if o.WindowSize < 1 {
		o.WindowSize = d.WindowSize
	}
	if o.MergeGap < 0 {
		o.MergeGap = d.MergeGap
	}
	if o.SetupTurns < 0 {
		o.SetupTurns = d.SetupTurns
	}
	if o.ScoreKeepMin < 1 {
		o.ScoreKeepMin = d.ScoreKeepMin
	}
	if o.ScoreKeepPercent < 0 || o.ScoreKeepPercent > 100 {
		o.ScoreKeepPercent = d.ScoreKeepPercent
	}
	return o
}

// Analysis is the full derived view of one session: the turn sequence,
// its phases, the key-turn selection, and the canonical rank-to-position
// table every other component resolves indices through.
type Analysis struct {
	SessionID  string
	TotalLines int

	Turns  []model.Turn
	Phases []model.WorkPhase
	Key    []int // key turn positions, ascending

	// TurnPositions maps turn rank to global line position.
	TurnPositions      []int
	AssistantPositions []int

	Start, End time.Time
}

// Analyze runs the classifier, segmenter, and scorer over a loaded
// session. It is a pure function of the session contents.
func Analyze(s *session.Session, opts Options) *Analysis {
	opts = opts.sanitize()

	turns := BuildTurns(s)
	a := &Analysis{
		SessionID:          s.ID,
		TotalLines:         len(s.Lines),
		Turns:              turns,
		Phases:             DetectWorkPhases(turns, opts),
		Key:                FindKeyMessages(turns, opts),
		TurnPositions:      s.TurnPositions(),
		AssistantPositions: s.AssistantPositions(),
	}

	for _, t := range turns {
		if t.Timestamp.IsZero() {
			continue
		}
		if a.Start.IsZero() || t.Timestamp.Before(a.Start) {
			a.Start = t.Timestamp
		}
		if a.End.IsZero() || t.Timestamp.After(a.End) {
			a.End = t.Timestamp
		}
	}

	return a
}

// TurnCount returns the number of turns in the analysis.
func (a *Analysis) TurnCount() int {
	return len(a.Turns)
}

// Lengths returns the per-turn byte lengths in rank order, the series
// the activity sparkline renders.
func (a *Analysis) Lengths() []float64 {
	out := make([]float64, len(a.Turns))
	for i, t := range a.Turns {
		out[i] = float64(t.Length)
	}
	return out
}
