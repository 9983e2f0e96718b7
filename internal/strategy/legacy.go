package strategy

// LegacyResult is the outcome of the keep-count compatibility mode.
type LegacyResult struct {
	KeepPositions  []int
	AssistantCount int
	CutoffPos      int // global position of the cutoff turn; -1 when keeping all
}

// Legacy selects every turn from the N-th-from-last assistant turn
// onward, ignoring phase and score analysis entirely. With fewer than
// N+1 assistant turns the whole session is kept. The selection feeds
// the same transform as every other strategy, so non-turn lines are
// unaffected either way.
func Legacy(turnPositions, assistantPositions []int, n int) LegacyResult {
	count := len(assistantPositions)
	res := LegacyResult{AssistantCount: count, CutoffPos: -1}

	if n <= 0 {
		return res // nothing kept; callers validate n before getting here
	}
	if count <= n {
		res.KeepPositions = append([]int(nil), turnPositions...)
		return res
	}

	cutoff := assistantPositions[count-n]
	res.CutoffPos = cutoff
	for _, p := range turnPositions {
		if p >= cutoff {
			res.KeepPositions = append(res.KeepPositions, p)
		}
	}
	return res
}
