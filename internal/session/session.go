package session

import (
	"bufio"
	"fmt"
	"os"
)

// Scanner buffer sizing. Tool-result lines in real transcripts routinely
// exceed bufio's 64K default; 10 MiB matches the largest lines seen in
// the wild.
const (
	scanBufInitial = 1024 * 1024
	scanBufMax     = 10 * 1024 * 1024
)

// Session is one loaded transcript: the verbatim line sequence plus the
// decoded view of each line. Lines is the single source of truth; every
// derived structure addresses it by position.
type Session struct {
	ID      string
	Path    string
	Lines   [][]byte
	Records []Record
}

// Load reads a transcript and decodes every line. Malformed lines are
// kept as opaque records; only I/O failures return an error.
func Load(path, sessionID string) (*Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening transcript: %w", err)
	}
	defer func() { _ = f.Close() }()

	s := &Session{ID: sessionID, Path: path}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, scanBufInitial), scanBufMax)

	for scanner.Scan() {
		line := append([]byte(nil), scanner.Bytes()...)
		s.Records = append(s.Records, DecodeLine(len(s.Lines), line))
		s.Lines = append(s.Lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading transcript: %w", err)
	}

	return s, nil
}

// TurnCount returns the number of conversational turns in the session.
func (s *Session) TurnCount() int {
	n := 0
	for _, r := range s.Records {
		if r.IsTurn() {
			n++
		}
	}
	return n
}

// TurnPositions returns the global positions of all turns, ascending.
// This is the canonical rank-to-position table: index i is the position
// of the turn with rank i.
func (s *Session) TurnPositions() []int {
	var positions []int
	for _, r := range s.Records {
		if r.IsTurn() {
			positions = append(positions, r.Position)
		}
	}
	return positions
}

// AssistantPositions returns the global positions of assistant turns,
// ascending.
func (s *Session) AssistantPositions() []int {
	var positions []int
	for _, r := range s.Records {
		if r.IsTurn() && r.Type == "assistant" {
			positions = append(positions, r.Position)
		}
	}
	return positions
}
