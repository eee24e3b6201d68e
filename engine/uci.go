package engine

import "fmt"

// MoveFromUCI parses a move given in UCI long algebraic notation (e.g.
// "e2e4", "e7e8q") against pos's current legal move list, returning the
// matching Move (with Captured/Flags filled in by the generator) or an
// error if no legal move matches.
func MoveFromUCI(pos *Position, s string) (Move, error) {
	if len(s) < 4 || len(s) > 5 {
		return Move{}, fmt.Errorf("uci: invalid move %q", s)
	}
	from, err := SquareFromString(s[0:2])
	if err != nil {
		return Move{}, fmt.Errorf("uci: invalid move %q: %v", s, err)
	}
	to, err := SquareFromString(s[2:4])
	if err != nil {
		return Move{}, fmt.Errorf("uci: invalid move %q: %v", s, err)
	}
	promoted := NoFigure
	if len(s) == 5 {
		fig, ok := symbolToFigure[rune(s[4])]
		if !ok {
			return Move{}, fmt.Errorf("uci: invalid promotion in %q", s)
		}
		promoted = fig
	}
	for _, m := range pos.GenerateMoves() {
		if m.From == from && m.To == to && m.PromotedPiece == promoted {
			return m, nil
		}
	}
	return Move{}, fmt.Errorf("uci: %q is not a legal move", s)
}
