package prune

import (
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/epaynter/claude-prune/internal/session"
)

// makeSession builds an in-memory session from raw JSONL lines.
func makeSession(t *testing.T, lines ...string) *session.Session {
	t.Helper()
	s := &session.Session{ID: "test-session"}
	for i, l := range lines {
		raw := []byte(l)
		s.Records = append(s.Records, session.DecodeLine(i, raw))
		s.Lines = append(s.Lines, raw)
	}
	return s
}

func TestApply_KeepsSelection(t *testing.T) {
	s := makeSession(t,
		`{"type":"summary","summary":"meta"}`,
		`{"type":"user","message":{"role":"user","content":"one"}}`,
		`{"type":"assistant","message":{"role":"assistant","content":[{"type":"text","text":"two"}]}}`,
		`{"type":"user","message":{"role":"user","content":"three"}}`,
		`{"type":"assistant","message":{"role":"assistant","content":[{"type":"text","text":"four"}]}}`,
	)

	res := Apply(s, []int{3, 4}, "recent")

	if res.Kept != 2 || res.Dropped != 2 {
		t.Errorf("kept/dropped = %d/%d, want 2/2", res.Kept, res.Dropped)
	}
	if len(res.Lines) != 3 {
		t.Fatalf("len(Lines) = %d, want metadata plus 2 turns", len(res.Lines))
	}
	if string(res.Lines[0]) != string(s.Lines[0]) {
		t.Error("line 0 must survive unconditionally")
	}
	if !strings.Contains(string(res.Lines[1]), "three") || !strings.Contains(string(res.Lines[2]), "four") {
		t.Errorf("kept lines = %q, want turns three and four in order", res.Lines)
	}
}

func TestApply_Line0SurvivesEvenWhenNotSelected(t *testing.T) {
	// Some transcripts open with a turn-typed line; it is still metadata.
	s := makeSession(t,
		`{"type":"user","message":{"role":"user","content":"opening"}}`,
		`{"type":"user","message":{"role":"user","content":"real turn"}}`,
	)

	res := Apply(s, nil, "custom")
	if len(res.Lines) != 1 {
		t.Fatalf("len(Lines) = %d, want only line 0", len(res.Lines))
	}
	if !strings.Contains(string(res.Lines[0]), "opening") {
		t.Error("line 0 was not preserved")
	}
	if res.Kept != 0 || res.Dropped != 1 {
		t.Errorf("kept/dropped = %d/%d, want 0/1", res.Kept, res.Dropped)
	}
}

func TestApply_NonTurnsSurviveVerbatim(t *testing.T) {
	s := makeSession(t,
		`{"type":"summary","summary":"meta"}`,
		`{"type":"user","message":{"role":"user","content":"one"}}`,
		`{"type":"file-history-snapshot",  "messageId":"m1"}`,
		`not json at all`,
		`{"type":"assistant","message":{"role":"assistant","content":[{"type":"text","text":"two"}]}}`,
	)

	// Drop every turn.
	res := Apply(s, nil, "custom")

	if len(res.Lines) != 3 {
		t.Fatalf("len(Lines) = %d, want the 3 non-turn lines", len(res.Lines))
	}
	if string(res.Lines[1]) != string(s.Lines[2]) {
		t.Errorf("snapshot line = %q, want byte-identical copy", res.Lines[1])
	}
	if string(res.Lines[2]) != "not json at all" {
		t.Errorf("opaque line = %q, want byte-identical copy", res.Lines[2])
	}
}

func TestApply_Conservation(t *testing.T) {
	s := makeSession(t,
		`{"type":"summary"}`,
		`{"type":"user","message":{"role":"user","content":"a"}}`,
		`{"type":"assistant","message":{"role":"assistant","content":[{"type":"text","text":"b"}]}}`,
		`{"type":"user","message":{"role":"user","content":"c"}}`,
		`{"type":"system","content":"d"}`,
		`{"type":"user","message":{"role":"user","content":"e"}}`,
	)

	turns := s.TurnCount()
	for _, keep := range [][]int{nil, {1}, {1, 3}, {1, 2, 3, 4, 5}} {
		res := Apply(s, keep, "custom")
		if res.Kept+res.Dropped != turns {
			t.Errorf("keep %v: kept %d + dropped %d != %d turns", keep, res.Kept, res.Dropped, turns)
		}
		if res.Kept != len(keep) {
			t.Errorf("keep %v: kept = %d, want %d", keep, res.Kept, len(keep))
		}
	}
}

func TestApply_MetadataOnlySession(t *testing.T) {
	s := makeSession(t, `{"type":"summary","summary":"just metadata"}`)

	for _, keep := range [][]int{nil, {0}, {5}} {
		res := Apply(s, keep, "recent")
		if len(res.Lines) != 1 || string(res.Lines[0]) != string(s.Lines[0]) {
			t.Errorf("keep %v: output = %q, want only the metadata line", keep, res.Lines)
		}
		if res.Kept != 0 || res.Dropped != 0 {
			t.Errorf("keep %v: kept/dropped = %d/%d, want 0/0", keep, res.Kept, res.Dropped)
		}
	}
}

func TestResetCacheRead_LastPositiveOnly(t *testing.T) {
	// Positive readings at positions 2, 5, and 9; only 9 may change.
	lines := [][]byte{
		[]byte(`{"type":"summary"}`),
		[]byte(`{"type":"user"}`),
		[]byte(`{"type":"assistant","message":{"usage":{"cache_read_input_tokens":111,"output_tokens":5}}}`),
		[]byte(`{"type":"user"}`),
		[]byte(`{"type":"assistant","message":{"usage":{"cache_read_input_tokens":0}}}`),
		[]byte(`{"type":"assistant","message":{"usage":{"cache_read_input_tokens":222}}}`),
		[]byte(`{"type":"user"}`),
		[]byte(`not json`),
		[]byte(`{"type":"user"}`),
		[]byte(`{"type":"assistant","message":{"usage":{"cache_read_input_tokens":333,"output_tokens":9}}}`),
	}

	out, pos := ResetCacheRead(lines)

	if pos != 9 {
		t.Fatalf("pos = %d, want the last positive reading at 9", pos)
	}
	if got := gjson.GetBytes(out[9], "message.usage.cache_read_input_tokens").Int(); got != 0 {
		t.Errorf("rewritten value = %d, want 0", got)
	}
	// Sibling fields on the rewritten line survive.
	if got := gjson.GetBytes(out[9], "message.usage.output_tokens").Int(); got != 9 {
		t.Errorf("output_tokens = %d, want 9 untouched", got)
	}
	// Earlier positive readings stay as they were.
	if got := gjson.GetBytes(out[2], "message.usage.cache_read_input_tokens").Int(); got != 111 {
		t.Errorf("reading at 2 = %d, want 111 untouched", got)
	}
	if got := gjson.GetBytes(out[5], "message.usage.cache_read_input_tokens").Int(); got != 222 {
		t.Errorf("reading at 5 = %d, want 222 untouched", got)
	}
	// Every other line is byte-identical.
	for i := 0; i < 9; i++ {
		if string(out[i]) != string(lines[i]) {
			t.Errorf("line %d changed: %q", i, out[i])
		}
	}
	// The input slice itself is never mutated.
	if got := gjson.GetBytes(lines[9], "message.usage.cache_read_input_tokens").Int(); got != 333 {
		t.Errorf("input line mutated to %d", got)
	}
}

func TestResetCacheRead_TopLevelUsagePath(t *testing.T) {
	lines := [][]byte{
		[]byte(`{"type":"summary"}`),
		[]byte(`{"usage":{"cache_read_input_tokens":222}}`),
	}

	out, pos := ResetCacheRead(lines)
	if pos != 1 {
		t.Fatalf("pos = %d, want 1", pos)
	}
	if got := gjson.GetBytes(out[1], "usage.cache_read_input_tokens").Int(); got != 0 {
		t.Errorf("rewritten value = %d, want 0", got)
	}
}

func TestResetCacheRead_NoPositiveReadings(t *testing.T) {
	lines := [][]byte{
		[]byte(`{"type":"summary"}`),
		[]byte(`{"type":"assistant","message":{"usage":{"cache_read_input_tokens":0}}}`),
		[]byte(`{"type":"user"}`),
	}

	out, pos := ResetCacheRead(lines)
	if pos != -1 {
		t.Errorf("pos = %d, want -1", pos)
	}
	for i := range lines {
		if string(out[i]) != string(lines[i]) {
			t.Errorf("line %d changed with nothing to reset", i)
		}
	}
}

func TestApply_CacheResetOnDroppedLine(t *testing.T) {
	// The fix-up runs over the original sequence, so it still counts even
	// when the affected line is then dropped.
	s := makeSession(t,
		`{"type":"summary"}`,
		`{"type":"assistant","message":{"role":"assistant","usage":{"cache_read_input_tokens":500},"content":[{"type":"text","text":"old"}]}}`,
		`{"type":"user","message":{"role":"user","content":"new"}}`,
	)

	res := Apply(s, []int{2}, "recent")

	if res.CacheResetPos != 1 {
		t.Errorf("CacheResetPos = %d, want 1", res.CacheResetPos)
	}
	if len(res.Lines) != 2 {
		t.Fatalf("len(Lines) = %d, want 2", len(res.Lines))
	}
	for _, line := range res.Lines {
		if strings.Contains(string(line), "old") {
			t.Error("dropped line leaked into the output")
		}
	}
}
