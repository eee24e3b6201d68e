package engine

import "testing"

func TestDoUndoMovePreservesPosition(t *testing.T) {
	pos, err := ParseFEN("startpos")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	before := pos.String()
	beforeZobrist := pos.Zobrist()

	for _, m := range pos.GenerateMoves() {
		pos.DoMove(m)
		pos.UndoMove()
		if got := pos.String(); got != before {
			t.Fatalf("after DoMove/UndoMove(%v): got %q, want %q", m, got, before)
		}
		if pos.Zobrist() != beforeZobrist {
			t.Fatalf("after DoMove/UndoMove(%v): zobrist changed", m)
		}
	}
}

func TestDoMoveTogglesSideToMove(t *testing.T) {
	pos, _ := ParseFEN("startpos")
	moves := pos.GenerateMoves()
	if len(moves) == 0 {
		t.Fatal("no legal moves from startpos")
	}
	pos.DoMove(moves[0])
	if pos.SideToMove() != Black {
		t.Errorf("SideToMove() = %v, want Black", pos.SideToMove())
	}
}

func TestDoMoveEnPassantCapture(t *testing.T) {
	pos, err := ParseFEN("rnbqkbnr/pp1ppppp/8/2pP4/8/8/PPP1PPPP/RNBQKBNR w KQkq c6 0 3")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	var epMove Move
	found := false
	for _, m := range pos.GenerateMoves() {
		if m.Flags&FlagEnPassant != 0 {
			epMove = m
			found = true
			break
		}
	}
	if !found {
		t.Fatal("no en-passant move generated")
	}
	pos.DoMove(epMove)
	if pos.PieceAt(RankFile(3, 2)) != NoPiece {
		t.Errorf("captured pawn still present after en passant")
	}
	if err := pos.Verify(); err != nil {
		t.Errorf("Verify() after en passant: %v", err)
	}
	pos.UndoMove()
	if pos.PieceAt(RankFile(3, 2)) == NoPiece {
		t.Errorf("captured pawn not restored after UndoMove")
	}
}

func mustMove(t *testing.T, pos *Position, uci string) Move {
	t.Helper()
	m, err := MoveFromUCI(pos, uci)
	if err != nil {
		t.Fatalf("MoveFromUCI(%q): %v", uci, err)
	}
	return m
}

func TestIsRepetition(t *testing.T) {
	pos, _ := ParseFEN("startpos")
	pos.DoMove(mustMove(t, pos, "g1f3"))
	pos.DoMove(mustMove(t, pos, "b8a6"))
	pos.DoMove(mustMove(t, pos, "f3g1"))
	if pos.IsRepetition() {
		t.Fatal("should not be a repetition yet")
	}
	pos.DoMove(mustMove(t, pos, "a6b8"))
	if !pos.IsRepetition() {
		t.Errorf("expected repetition after returning to the start position")
	}
}

func TestVerifyMinimalPosition(t *testing.T) {
	pos := NewPosition()
	pos.Put(ColorFigure(White, King), sqE1)
	pos.Put(ColorFigure(Black, King), sqE8)
	if err := pos.Verify(); err != nil {
		t.Fatalf("Verify() on minimal legal position: %v", err)
	}
}
