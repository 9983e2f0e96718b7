package analyze

import "github.com/epaynter/claude-prune/internal/model"

// DetectWorkPhases segments the turn sequence into labeled phases. The
// algorithm runs two separated passes: label fixed windows of
// opts.WindowSize turns (merging consecutive windows that share a
// label), then fold adjacent same-label phases separated by a small
// positional gap. Zero turns yield an empty list.
func DetectWorkPhases(turns []model.Turn, opts Options) []model.WorkPhase {
	if len(turns) == 0 {
		return nil
	}

	var phases []model.WorkPhase
	for start := 0; start < len(turns); start += opts.WindowSize {
		end := start + opts.WindowSize
		if end > len(turns) {
			end = len(turns)
		}
		window := turns[start:end]

		p := tallyWindow(window)
		p.Label = labelWindow(window, start, opts.SetupTurns)

		if n := len(phases); n > 0 && phases[n-1].Label == p.Label {
			mergeInto(&phases[n-1], p)
		} else {
			phases = append(phases, p)
		}
	}

	return mergePhaseRuns(phases, opts.MergeGap)
}

// labelWindow classifies one window by precedence. Shares are fractions
// of the window's own turn count, so a short trailing window is judged
// against its actual size.
func labelWindow(window []model.Turn, startRank, setupTurns int) string {
	n := float64(len(window))
	var code, errs, edits, tools int
	conversational := true
	for _, t := range window {
		if t.HasCode {
			code++
		}
		if t.HasError {
			errs++
		}
		if t.HasFileEdit {
			edits++
		}
		if t.HasTool {
			tools++
		}
		if t.Role != "user" && t.Role != "assistant" {
			conversational = false
		}
	}

	switch {
	case float64(errs)/n > 0.3:
		return model.PhaseDebugging
	case float64(edits)/n > 0.3 || float64(code)/n > 0.4:
		return model.PhaseImplementation
	case float64(tools)/n > 0.4 && edits == 0:
		return model.PhaseExploration
	case conversational && tools == 0:
		if startRank < setupTurns {
			return model.PhaseSetup
		}
		return model.PhaseDiscussion
	default:
		return model.PhaseGeneral
	}
}

// tallyWindow builds the unlabeled phase covering one window.
func tallyWindow(window []model.Turn) model.WorkPhase {
	p := model.WorkPhase{
		StartPos:  window[0].Position,
		EndPos:    window[len(window)-1].Position,
		TurnCount: len(window),
	}
	for _, t := range window {
		if t.HasCode {
			p.CodeCount++
		}
		if t.HasError {
			p.ErrorCount++
		}
		if t.HasFileEdit {
			p.EditCount++
		}
		if t.HasTool {
			p.ToolCount++
		}
	}
	return p
}

func mergeInto(dst *model.WorkPhase, src model.WorkPhase) {
	dst.EndPos = src.EndPos
	dst.TurnCount += src.TurnCount
	dst.CodeCount += src.CodeCount
	dst.ErrorCount += src.ErrorCount
	dst.EditCount += src.EditCount
	dst.ToolCount += src.ToolCount
}

// mergePhaseRuns folds adjacent phases that carry the same label when
// the global-position gap between them is at most maxGap. This absorbs
// label flicker from a single outlier window without disturbing
// distinct-label boundaries.
func mergePhaseRuns(phases []model.WorkPhase, maxGap int) []model.WorkPhase {
	if len(phases) < 2 {
		return phases
	}

	out := phases[:1]
	for _, p := range phases[1:] {
		last := &out[len(out)-1]
		if p.Label == last.Label && p.StartPos-last.EndPos <= maxGap {
			mergeInto(last, p)
			continue
		}
		out = append(out, p)
	}
	return out
}
