// Package strategy builds candidate turn selections for pruning.
package strategy

import (
	"fmt"
	"sort"

	"github.com/epaynter/claude-prune/internal/analyze"
	"github.com/epaynter/claude-prune/internal/model"
)

// Candidate keys, stable across the CLI flag surface and the menu.
const (
	KeyRecent   = "recent"
	KeyBookends = "bookends"
	KeySmart    = "smart"
	KeyCustom   = "custom"
	KeyLegacy   = "legacy"
)

// Candidates packages the fixed strategy menu for one analysis. The
// custom-range strategy is not included; it is built on demand from
// user input via ParseRange.
func Candidates(a *analyze.Analysis) []model.Candidate {
	n := len(a.TurnPositions)

	recent := RecentOnly(a.TurnPositions)
	bookends := Bookends(a.TurnPositions)
	smart := append([]int(nil), a.Key...)

	return []model.Candidate{
		{
			Key:           KeyRecent,
			Name:          "Recent only",
			Description:   fmt.Sprintf("keep the newest %d turns", len(recent)),
			KeepPositions: recent,
			FreedPercent:  model.Freed(n, len(recent)),
		},
		{
			Key:           KeyBookends,
			Name:          "Bookends",
			Description:   fmt.Sprintf("keep the opening and the newest turns (%d total)", len(bookends)),
			KeepPositions: bookends,
			FreedPercent:  model.Freed(n, len(bookends)),
		},
		{
			Key:           KeySmart,
			Name:          "Smart",
			Description:   fmt.Sprintf("keep the %d highest-scoring turns", len(smart)),
			KeepPositions: smart,
			FreedPercent:  model.Freed(n, len(smart)),
		},
	}
}

// ByKey returns the candidate with the given key, or nil.
func ByKey(cands []model.Candidate, key string) *model.Candidate {
	for i := range cands {
		if cands[i].Key == key {
			return &cands[i]
		}
	}
	return nil
}

// RecentOnly keeps the last 40% of turns, never fewer than one on a
// non-empty session.
func RecentOnly(positions []int) []int {
	n := len(positions)
	if n == 0 {
		return nil
	}
	keep := n * 2 / 5
	if keep < 1 {
		keep = 1
	}
	return append([]int(nil), positions[n-keep:]...)
}

// Bookends keeps the first min(10, 10%) and last min(30, 30%) of turns.
func Bookends(positions []int) []int {
	n := len(positions)
	if n == 0 {
		return nil
	}

	head := n / 10
	if head > 10 {
		head = 10
	}
	tail := n * 3 / 10
	if tail > 30 {
		tail = 30
	}

	set := make(map[int]struct{}, head+tail)
	for _, p := range positions[:head] {
		set[p] = struct{}{}
	}
	for _, p := range positions[n-tail:] {
		set[p] = struct{}{}
	}

	out := make([]int, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}
