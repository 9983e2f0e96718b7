package analyze

import (
	"sort"

	"github.com/epaynter/claude-prune/internal/model"
)

// Score weights. File edits dominate because they are the hardest
// context to reconstruct after pruning.
const (
	scoreFileEdit = 10
	scoreError    = 7
	scoreCode     = 5
	scoreTool     = 3

	lengthBonusAt     = 1000
	lengthBonusMoreAt = 2000
)

// scoreTurn computes the importance of one turn. The recency term scales
// continuously in [0,3): later ranks score marginally higher so the
// selection drifts toward the live end of the session on ties.
func scoreTurn(t model.Turn, totalTurns int) float64 {
	s := 0.0
	if t.HasFileEdit {
		s += scoreFileEdit
	}
	if t.HasError {
		s += scoreError
	}
	if t.HasCode {
		s += scoreCode
	}
	if t.HasTool {
		s += scoreTool
	}
	if t.Length > lengthBonusAt {
		s += 2
	}
	if t.Length > lengthBonusMoreAt {
		s += 3
	}
	return s + float64(t.Rank)/float64(totalTurns)*3
}

// FindKeyMessages scores every turn and returns the global positions of
// the top max(opts.ScoreKeepMin, floor(opts.ScoreKeepPercent% of n))
// turns, ascending. Ties keep their original relative order.
func FindKeyMessages(turns []model.Turn, opts Options) []int {
	if len(turns) == 0 {
		return nil
	}
	total := len(turns)

	type scored struct {
		pos   int
		score float64
	}
	scores := make([]scored, total)
	for i, t := range turns {
		scores[i] = scored{pos: t.Position, score: scoreTurn(t, total)}
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})

	keep := total * opts.ScoreKeepPercent / 100
	if keep < opts.ScoreKeepMin {
		keep = opts.ScoreKeepMin
	}
	if keep > total {
		keep = total
	}

	positions := make([]int, keep)
	for i := range positions {
		positions[i] = scores[i].pos
	}
	sort.Ints(positions)
	return positions
}
