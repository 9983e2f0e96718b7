package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeSession creates a temp JSONL file and returns its path.
func writeSession(t *testing.T, lines ...string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test-session.jsonl")
	content := ""
	if len(lines) > 0 {
		content = strings.Join(lines, "\n") + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_TurnCounting(t *testing.T) {
	path := writeSession(t,
		`{"type":"summary","summary":"earlier work"}`,
		`{"type":"user","message":{"role":"user","content":"fix the bug"}}`,
		`{"type":"assistant","message":{"role":"assistant","content":[{"type":"text","text":"looking"}]}}`,
		`{"type":"file-history-snapshot","messageId":"m1"}`,
		`{"type":"system","content":"compacted"}`,
		`{"type":"assistant","message":{"role":"assistant","content":[{"type":"text","text":"done"}]}}`,
	)

	s, err := Load(path, "test-session")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(s.Lines) != 6 {
		t.Fatalf("len(Lines) = %d, want 6", len(s.Lines))
	}
	if got := s.TurnCount(); got != 4 {
		t.Errorf("TurnCount() = %d, want 4", got)
	}

	wantTurns := []int{1, 2, 4, 5}
	if got := s.TurnPositions(); !equalInts(got, wantTurns) {
		t.Errorf("TurnPositions() = %v, want %v", got, wantTurns)
	}
	wantAssistant := []int{2, 5}
	if got := s.AssistantPositions(); !equalInts(got, wantAssistant) {
		t.Errorf("AssistantPositions() = %v, want %v", got, wantAssistant)
	}
}

func TestLoad_FirstLineIsMetadata(t *testing.T) {
	// A session that opens with a user turn: position 0 still never counts.
	path := writeSession(t,
		`{"type":"user","message":{"role":"user","content":"hello"}}`,
		`{"type":"assistant","message":{"role":"assistant","content":[{"type":"text","text":"hi"}]}}`,
	)

	s, err := Load(path, "test-session")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.TurnCount(); got != 1 {
		t.Errorf("TurnCount() = %d, want 1", got)
	}
	if got := s.TurnPositions(); !equalInts(got, []int{1}) {
		t.Errorf("TurnPositions() = %v, want [1]", got)
	}
}

func TestLoad_MalformedLines(t *testing.T) {
	path := writeSession(t,
		`{"type":"summary"}`,
		`not json at all`,
		`{"type":"user","message":{"role":"user","content":"x"}}`,
		`{"type":"assistant","broken json`,
	)

	s, err := Load(path, "test-session")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Malformed lines are carried as opaque records, never dropped.
	if len(s.Lines) != 4 {
		t.Errorf("len(Lines) = %d, want 4", len(s.Lines))
	}
	if got := s.TurnCount(); got != 1 {
		t.Errorf("TurnCount() = %d, want 1", got)
	}
	if s.Records[1].Type != "" {
		t.Errorf("Records[1].Type = %q, want opaque", s.Records[1].Type)
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	path := writeSession(t)

	s, err := Load(path, "test-session")
	if err != nil {
		t.Fatalf("unexpected error on empty file: %v", err)
	}
	if len(s.Lines) != 0 || s.TurnCount() != 0 {
		t.Error("expected no lines and no turns for an empty file")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.jsonl"), "nope")
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestLoad_PreservesRawBytes(t *testing.T) {
	// Key ordering and whitespace must survive untouched.
	line := `{"uuid":"u1",  "type":"user","message":{"role":"user","content":"x"}}`
	path := writeSession(t, line)

	s, err := Load(path, "test-session")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(s.Lines[0]) != line {
		t.Errorf("Lines[0] = %q, want the raw line preserved", s.Lines[0])
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
