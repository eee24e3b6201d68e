package engine

import "testing"

func TestOrderMovesHashMoveFirst(t *testing.T) {
	pos, err := ParseFEN("startpos")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	moves := pos.GenerateMoves()
	hash := mustMove(t, pos, "g1f3")

	orderMoves(moves, hash)
	if moves[0].From != hash.From || moves[0].To != hash.To {
		t.Fatalf("hash move not ordered first: got %v", moves[0])
	}
}

func TestOrderMovesCapturesBeforeQuiet(t *testing.T) {
	pos, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	moves := pos.GenerateMoves()
	orderMoves(moves, Move{})

	firstQuiet := -1
	for i, m := range moves {
		if !m.IsCapture() && !m.IsPromotion() {
			firstQuiet = i
			break
		}
	}
	if firstQuiet == -1 {
		t.Fatal("expected at least one quiet move in this position")
	}
	for i := 0; i < firstQuiet; i++ {
		if !moves[i].IsCapture() && !moves[i].IsPromotion() {
			t.Errorf("quiet move %v ordered ahead of a violent move", moves[i])
		}
	}
}

func TestOrderMovesScoresStayInLockstepWithMoves(t *testing.T) {
	pos, _ := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	moves := pos.GenerateMoves()
	orderMoves(moves, Move{})

	for i := 1; i < len(moves); i++ {
		if moveScore(moves[i-1], Move{}) < moveScore(moves[i], Move{}) {
			t.Fatalf("moves not sorted by descending score at index %d: %v before %v",
				i, moves[i-1], moves[i])
		}
	}
}

func TestViolentMovesFiltersToCapturesAndPromotions(t *testing.T) {
	pos, _ := ParseFEN("8/P6k/8/8/3p4/4P3/8/7K w - - 0 1")
	moves := pos.GenerateMoves()
	violent := violentMoves(moves)
	if len(violent) == 0 {
		t.Fatal("expected at least one violent move")
	}
	for _, m := range violent {
		if !m.IsViolent() {
			t.Errorf("violentMoves returned a quiet move: %v", m)
		}
	}
	if len(violent) == len(moves) {
		t.Fatal("test position should also have quiet moves to filter out")
	}
}

func TestMoveScoreOrdersCapturesByMVVLVA(t *testing.T) {
	pawnTakesQueen := Move{Piece: ColorFigure(White, Pawn), Captured: ColorFigure(Black, Queen), Flags: FlagCapture}
	queenTakesPawn := Move{Piece: ColorFigure(White, Queen), Captured: ColorFigure(Black, Pawn), Flags: FlagCapture}
	if moveScore(pawnTakesQueen, Move{}) <= moveScore(queenTakesPawn, Move{}) {
		t.Errorf("pawn-takes-queen should score higher than queen-takes-pawn")
	}
}
