package engine

import "testing"

func TestSquareFromString(t *testing.T) {
	cases := []struct {
		s    string
		want Square
	}{
		{"a8", RankFile(0, 0)},
		{"h8", RankFile(0, 7)},
		{"a1", RankFile(7, 0)},
		{"h1", RankFile(7, 7)},
		{"e4", RankFile(4, 4)},
	}
	for _, c := range cases {
		got, err := SquareFromString(c.s)
		if err != nil {
			t.Fatalf("SquareFromString(%q): %v", c.s, err)
		}
		if got != c.want {
			t.Errorf("SquareFromString(%q) = %d, want %d", c.s, got, c.want)
		}
		if got.String() != c.s {
			t.Errorf("Square(%d).String() = %q, want %q", got, got.String(), c.s)
		}
	}
}

func TestSquareFromStringInvalid(t *testing.T) {
	for _, s := range []string{"", "a", "a9", "i4", "abc"} {
		if _, err := SquareFromString(s); err == nil {
			t.Errorf("SquareFromString(%q): expected error", s)
		}
	}
}

func TestBitboardPop(t *testing.T) {
	bb := RankFile(3, 2).Bitboard() | RankFile(5, 6).Bitboard()
	if bb.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", bb.Count())
	}

	var seen []Square
	for !bb.Empty() {
		seen = append(seen, bb.Pop())
	}
	if len(seen) != 2 {
		t.Fatalf("popped %d squares, want 2", len(seen))
	}
}

func TestNorthSouthEastWest(t *testing.T) {
	e4 := RankFile(4, 4)
	bb := e4.Bitboard()

	if got := North(bb); got != RankFile(3, 4).Bitboard() {
		t.Errorf("North(e4) = %#x, want e5's bitboard", uint64(got))
	}
	if got := South(bb); got != RankFile(5, 4).Bitboard() {
		t.Errorf("South(e4) = %#x, want e3's bitboard", uint64(got))
	}
	if got := East(bb); got != RankFile(4, 5).Bitboard() {
		t.Errorf("East(e4) = %#x, want f4's bitboard", uint64(got))
	}
	if got := West(bb); got != RankFile(4, 3).Bitboard() {
		t.Errorf("West(e4) = %#x, want d4's bitboard", uint64(got))
	}

	// Wrapping off either file edge produces an empty bitboard.
	h4 := RankFile(4, 7).Bitboard()
	if got := East(h4); got != 0 {
		t.Errorf("East(h4) = %#x, want 0", uint64(got))
	}
	a4 := RankFile(4, 0).Bitboard()
	if got := West(a4); got != 0 {
		t.Errorf("West(a4) = %#x, want 0", uint64(got))
	}
}

func TestPieceRoundTrip(t *testing.T) {
	for _, c := range []Color{White, Black} {
		for _, f := range []Figure{Pawn, Knight, Bishop, Rook, Queen, King} {
			pi := ColorFigure(c, f)
			if pi.Color() != c {
				t.Errorf("ColorFigure(%v, %v).Color() = %v", c, f, pi.Color())
			}
			if pi.Figure() != f {
				t.Errorf("ColorFigure(%v, %v).Figure() = %v", c, f, pi.Figure())
			}
		}
	}
}

func TestCastleString(t *testing.T) {
	cases := []struct {
		c    Castle
		want string
	}{
		{NoCastle, "-"},
		{AnyCastle, "KQkq"},
		{WhiteOO | BlackOOO, "Kq"},
	}
	for _, c := range cases {
		if got := c.c.String(); got != c.want {
			t.Errorf("Castle(%v).String() = %q, want %q", c.c, got, c.want)
		}
	}
}

func TestMoveUCI(t *testing.T) {
	m := Move{From: RankFile(4, 4), To: RankFile(3, 4)}
	if got, want := m.UCI(), "e4e5"; got != want {
		t.Errorf("UCI() = %q, want %q", got, want)
	}

	promo := Move{From: RankFile(1, 4), To: RankFile(0, 4), PromotedPiece: Queen}
	if got, want := promo.UCI(), "e7e8q"; got != want {
		t.Errorf("UCI() = %q, want %q", got, want)
	}

	var null Move
	if !null.IsNull() {
		t.Errorf("zero Move should be null")
	}
	if null.String() != "0000" {
		t.Errorf("null Move.String() = %q, want %q", null.String(), "0000")
	}
}

func TestMoveIsViolent(t *testing.T) {
	capture := Move{Flags: FlagCapture}
	if !capture.IsViolent() {
		t.Errorf("capture move should be violent")
	}
	promo := Move{PromotedPiece: Queen}
	if !promo.IsViolent() {
		t.Errorf("promotion move should be violent")
	}
	quiet := Move{}
	if quiet.IsViolent() {
		t.Errorf("quiet move should not be violent")
	}
}
