// Package mates regression-tests the search against small mate-in-N
// puzzles, the same kind of fixed-depth best-move check the teacher's
// internal/mates package runs against EPD files.
package mates

import (
	"testing"

	"github.com/corvid-chess/corvid/engine"
)

type mateCase struct {
	fen   string
	depth int
	best  string // UCI long algebraic notation
}

func (c mateCase) check(t *testing.T) {
	t.Helper()
	pos, err := engine.ParseFEN(c.fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", c.fen, err)
	}

	eng := engine.NewEngine(pos, nil, engine.Options{})
	tc := engine.NewTimeControl(pos)
	tc.Depth = c.depth
	move, _ := eng.Play(tc)

	want, err := engine.MoveFromUCI(pos, c.best)
	if err != nil {
		t.Fatalf("MoveFromUCI(%q): %v", c.best, err)
	}
	if move != want {
		t.Errorf("%s: got %v, want %v", c.fen, move.UCI(), want.UCI())
	}
}

func TestMateIn1(t *testing.T) {
	cases := []mateCase{
		// Back-rank mate: Rd8#.
		{"6k1/5ppp/8/8/8/8/8/3R2K1 w - - 0 1", 3, "d1d8"},
		// Queen supported by the king on h6: Qg7#.
		{"6k1/8/7K/8/8/8/8/Q7 w - - 0 1", 3, "a1g7"},
		// Black to move, same pattern mirrored.
		{"q7/8/8/8/8/7k/8/6K1 b - - 0 1", 3, "a8g2"},
	}
	for _, c := range cases {
		c.check(t)
	}
}

func TestMateIn2(t *testing.T) {
	if testing.Short() {
		t.SkipNow()
	}
	cases := []mateCase{
		// Two rooks: Rg1 first cuts off the g-file, forcing Kh7, then Rh2#.
		{"7k/8/8/8/8/8/R7/R6K w - - 0 1", 5, "a1g1"},
	}
	for _, c := range cases {
		c.check(t)
	}
}
