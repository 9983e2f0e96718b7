package strategy

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrBadRange marks a custom range expression that failed validation.
// Callers surface the wrapped message and re-prompt; no partial
// selection is ever produced.
var ErrBadRange = errors.New("invalid range")

// ParseRange resolves a comma-separated range expression over 1-based
// turn ranks into global line positions. Each element is a single rank
// `a`, a span `a-b`, or an open span `a-*` running through the last
// turn. Overlapping elements collapse; the result is ascending.
func ParseRange(expr string, positions []int) ([]int, error) {
	n := len(positions)

	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("%w: empty expression", ErrBadRange)
	}

	set := make(map[int]struct{})
	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		lo, hi, err := parseBounds(part, n)
		if err != nil {
			return nil, err
		}
		for rank := lo; rank <= hi; rank++ {
			set[positions[rank-1]] = struct{}{}
		}
	}

	out := make([]int, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Ints(out)
	return out, nil
}

// parseBounds validates one range element against the turn count.
func parseBounds(part string, n int) (lo, hi int, err error) {
	if part == "" {
		return 0, 0, fmt.Errorf("%w: empty element", ErrBadRange)
	}

	loStr, hiStr, isSpan := strings.Cut(part, "-")

	lo, err = strconv.Atoi(loStr)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q is not a turn number", ErrBadRange, loStr)
	}

	switch {
	case !isSpan:
		hi = lo
	case hiStr == "*":
		hi = n
	default:
		hi, err = strconv.Atoi(hiStr)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %q is not a turn number", ErrBadRange, hiStr)
		}
	}

	if lo < 1 {
		return 0, 0, fmt.Errorf("%w: turns are numbered from 1", ErrBadRange)
	}
	if lo > n || hi > n {
		return 0, 0, fmt.Errorf("%w: session has only %d turns", ErrBadRange, n)
	}
	if hi < lo {
		return 0, 0, fmt.Errorf("%w: %d-%d runs backwards", ErrBadRange, lo, hi)
	}
	return lo, hi, nil
}
