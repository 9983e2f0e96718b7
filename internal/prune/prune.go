// Package prune rewrites a transcript's line sequence down to a chosen
// turn selection.
package prune

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/epaynter/claude-prune/internal/session"
)

// Result is the outcome of one transform run. Each run is pure given
// its inputs; nothing is shared between runs.
type Result struct {
	Lines   [][]byte
	Kept    int
	Dropped int

	Strategy string

	// CacheResetPos is the global position whose cache-read token count
	// was rewritten to zero, or -1 when no line carried a positive one.
	CacheResetPos int
}

// cacheReadPaths are the two places the cache-read token count appears:
// nested under the message envelope on turn lines, and at the top level
// on bare usage records.
var cacheReadPaths = []string{
	"message.usage.cache_read_input_tokens",
	"usage.cache_read_input_tokens",
}

// Apply produces the pruned line sequence for a selection of turn
// positions to keep. Line 0 always survives, non-turn lines are copied
// verbatim in order, and turn lines survive only when selected. Before
// the keep/drop pass the whole original sequence gets the cache display
// fix-up, whether or not the affected line survives.
func Apply(s *session.Session, keep []int, strat string) Result {
	lines, resetPos := ResetCacheRead(s.Lines)

	keepSet := make(map[int]struct{}, len(keep))
	for _, p := range keep {
		keepSet[p] = struct{}{}
	}

	res := Result{
		Lines:         make([][]byte, 0, len(lines)),
		Strategy:      strat,
		CacheResetPos: resetPos,
	}

	for i, line := range lines {
		if i == 0 || !s.Records[i].IsTurn() {
			res.Lines = append(res.Lines, line)
			continue
		}
		if _, ok := keepSet[i]; ok {
			res.Lines = append(res.Lines, line)
			res.Kept++
		} else {
			res.Dropped++
		}
	}

	return res
}

// ResetCacheRead zeroes the cache-read token count on the single line
// with the highest position where it is present and positive, leaving
// every other line untouched byte for byte. Claude Code seeds its
// percent-context-remaining figure from the most recent non-zero
// reading; zeroing only the last one forces a fresh baseline without
// rewriting historical accounting. Returns the (possibly shared) line
// slice and the affected position, -1 when nothing qualified.
func ResetCacheRead(lines [][]byte) ([][]byte, int) {
	last := -1
	var lastPath string
	for i, line := range lines {
		for _, path := range cacheReadPaths {
			if v := gjson.GetBytes(line, path); v.Exists() && v.Int() > 0 {
				last = i
				lastPath = path
				break
			}
		}
	}
	if last < 0 {
		return lines, -1
	}

	rewritten, err := sjson.SetBytes(append([]byte(nil), lines[last]...), lastPath, 0)
	if err != nil {
		return lines, -1
	}

	out := append([][]byte(nil), lines...)
	out[last] = rewritten
	return out, last
}
