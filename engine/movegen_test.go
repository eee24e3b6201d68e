package engine

import "testing"

func countMoves(t *testing.T, fen string) int {
	t.Helper()
	pos, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return len(pos.GenerateMoves())
}

func TestGenerateMovesStartpos(t *testing.T) {
	if got, want := countMoves(t, "startpos"), 20; got != want {
		t.Errorf("startpos move count = %d, want %d", got, want)
	}
}

func TestGenerateMovesKiwipete(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	if got, want := countMoves(t, fen), 48; got != want {
		t.Errorf("kiwipete move count = %d, want %d", got, want)
	}
}

func TestDoubleCheckOnlyKingMoves(t *testing.T) {
	// Black king on e8 is checked by both the rook on e1 (along the file)
	// and the bishop on h5 (along the diagonal): every move must be a
	// king move.
	pos, err := ParseFEN("4k3/8/8/7B/8/8/8/4R2K b - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	for _, m := range pos.GenerateMoves() {
		if m.Piece.Figure() != King {
			t.Errorf("double check: non-king move generated: %v", m)
		}
	}
}

func TestPinnedPieceRestrictedToRay(t *testing.T) {
	// White bishop on d2 is pinned to the king on e1 by the black bishop
	// on a5, along the a5-e1 diagonal (row-file == 3 in internal
	// coordinates); it must never jump to its other diagonal through d2
	// (row+file == 9).
	pos, err := ParseFEN("4k3/8/8/b7/8/8/3B4/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	sawMove := false
	for _, m := range pos.GenerateMoves() {
		if m.Piece.Figure() != Bishop {
			continue
		}
		sawMove = true
		toRow, toFile := m.To.row(), m.To.File()
		if toRow-toFile != 3 {
			t.Errorf("pinned bishop left its pin ray: %v", m)
		}
	}
	if !sawMove {
		t.Fatal("expected the pinned bishop to have at least one legal move")
	}
}

func TestCastlingBlockedWhenSquareAttacked(t *testing.T) {
	// White to castle kingside, but f1 is attacked by a black rook on f8:
	// O-O must not be generated.
	pos, err := ParseFEN("5rk1/8/8/8/8/8/8/4K2R w K - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	for _, m := range pos.GenerateMoves() {
		if m.Flags&FlagCastle != 0 {
			t.Errorf("castle move generated through an attacked square: %v", m)
		}
	}
}

func TestCastlingAvailableWhenClear(t *testing.T) {
	pos, err := ParseFEN("4k3/8/8/8/8/8/8/4K2R w K - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	found := false
	for _, m := range pos.GenerateMoves() {
		if m.Flags&FlagCastle != 0 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected kingside castle to be generated")
	}
}

func TestEnPassantDiscoveredCheckForbidden(t *testing.T) {
	// White king on a5 and pawn on b5, black pawn just played c7-c5, black
	// rook on h5: b5xc6 en passant would take both pawns off the 5th rank
	// and expose the white king to the rook.
	pos, err := ParseFEN("4k3/8/8/KPp4r/8/8/8/8 w - c6 0 2")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	for _, m := range pos.GenerateMoves() {
		if m.Flags&FlagEnPassant != 0 {
			t.Errorf("en passant generated despite discovered check: %v", m)
		}
	}
}

func TestPromotionGeneratesFourMoves(t *testing.T) {
	pos, err := ParseFEN("8/P6k/8/8/8/8/8/7K w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	count := 0
	for _, m := range pos.GenerateMoves() {
		if m.IsPromotion() && m.From == RankFile(1, 0) {
			count++
		}
	}
	if count != 4 {
		t.Errorf("promotion move count = %d, want 4", count)
	}
}

func TestCheckmateHasNoMoves(t *testing.T) {
	// Fool's mate final position, white to move, checkmated.
	pos, err := ParseFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if len(pos.GenerateMoves()) != 0 {
		t.Errorf("expected no legal moves in checkmate")
	}
	if !pos.IsChecked(White) {
		t.Errorf("expected white king to be in check")
	}
}

func TestStalemateHasNoMoves(t *testing.T) {
	pos, err := ParseFEN("7k/8/6Q1/6K1/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if len(pos.GenerateMoves()) != 0 {
		t.Errorf("expected no legal moves in stalemate")
	}
	if pos.IsChecked(Black) {
		t.Errorf("stalemate position should not have the king in check")
	}
}
