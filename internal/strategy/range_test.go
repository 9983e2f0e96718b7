package strategy

import (
	"errors"
	"testing"
)

func TestParseRange(t *testing.T) {
	// Ranks 1..10 live at sparse positions: rank r -> position r*2.
	positions := make([]int, 10)
	for i := range positions {
		positions[i] = (i + 1) * 2
	}

	tests := []struct {
		name string
		expr string
		want []int
	}{
		{"single rank", "3", []int{6}},
		{"span", "2-4", []int{4, 6, 8}},
		{"wildcard span", "8-*", []int{16, 18, 20}},
		{"multiple elements", "1-2,9-10", []int{2, 4, 18, 20}},
		{"overlap collapses", "1-3,2-4", []int{2, 4, 6, 8}},
		{"duplicate single", "5,5,5", []int{10}},
		{"whitespace tolerated", " 1 , 3-4 ", []int{2, 6, 8}},
		{"full session", "1-*", []int{2, 4, 6, 8, 10, 12, 14, 16, 18, 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRange(tt.expr, positions)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !equalInts(got, tt.want) {
				t.Errorf("ParseRange(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestParseRange_Invalid(t *testing.T) {
	positions := seqPositions(10)

	tests := []struct {
		name string
		expr string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"trailing comma", "1-3,"},
		{"not a number", "abc"},
		{"bad upper bound", "1-x"},
		{"zero rank", "0-3"},
		{"negative", "-2"},
		{"beyond session", "5-11"},
		{"lower beyond session", "11"},
		{"backwards", "7-3"},
		{"wildcard lower bound", "*-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRange(tt.expr, positions)
			if !errors.Is(err, ErrBadRange) {
				t.Fatalf("err = %v, want ErrBadRange", err)
			}
			if got != nil {
				t.Errorf("got %v, want no partial selection on error", got)
			}
		})
	}
}
