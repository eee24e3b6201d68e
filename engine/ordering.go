package engine

import "sort"

// mvvlvaValue is the attacker/victim weight used by MVV-LVA ordering, one
// pawn = 10, grounded on the teacher's move_ordering.go mvvlvaBonus table
// (same relative shape, not its killer/counter/history phased machinery:
// this module's move list is already fully legal, so there is no need to
// interleave generation phases the way the teacher does to avoid
// generating quiet moves it might not need).
var mvvlvaValue = [FigureArraySize]int32{
	NoFigure: 0,
	Pawn:     10,
	Knight:   30,
	Bishop:   33,
	Rook:     50,
	Queen:    90,
	King:     900,
}

const (
	hashMoveBonus      = 1_000_000
	captureBonusBase   = 10_000
	promotionBonusBase = 800
)

// moveScore assigns a single ordering key to m: the hash move first, then
// captures by most-valuable-victim/least-valuable-aggressor, then
// promotions by the value of the promoted piece, quiet moves last (score
// 0). This is spec's plain additive scoring, not a phased move generator.
func moveScore(m Move, hash Move) int32 {
	var score int32
	if !hash.IsNull() && m.From == hash.From && m.To == hash.To && m.PromotedPiece == hash.PromotedPiece {
		score += hashMoveBonus
	}
	if m.IsCapture() {
		score += captureBonusBase + mvvlvaValue[m.Captured.Figure()]*64 - mvvlvaValue[m.Piece.Figure()]
	}
	if m.IsPromotion() {
		score += promotionBonusBase + mvvlvaValue[m.PromotedPiece]
	}
	return score
}

// scoredMoves sorts a list of moves together with their ordering keys;
// sort.Slice alone would only permute the moves slice and leave a
// separately-computed score slice out of sync, so Len/Less/Swap are
// implemented on both in lockstep.
type scoredMoves struct {
	moves  []Move
	scores []int32
}

func (s scoredMoves) Len() int           { return len(s.moves) }
func (s scoredMoves) Less(i, j int) bool { return s.scores[i] > s.scores[j] }
func (s scoredMoves) Swap(i, j int) {
	s.moves[i], s.moves[j] = s.moves[j], s.moves[i]
	s.scores[i], s.scores[j] = s.scores[j], s.scores[i]
}

// orderMoves sorts moves in place, most promising first, for alpha-beta
// move ordering. hash may be the null move if no hash move is known.
func orderMoves(moves []Move, hash Move) {
	scores := make([]int32, len(moves))
	for i, m := range moves {
		scores[i] = moveScore(m, hash)
	}
	sort.Stable(scoredMoves{moves, scores})
}

// violentMoves filters moves down to the ones quiescence search
// considers: captures and promotions.
func violentMoves(moves []Move) []Move {
	out := moves[:0:0]
	for _, m := range moves {
		if m.IsViolent() {
			out = append(out, m)
		}
	}
	return out
}
