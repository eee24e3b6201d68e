package engine

// Evaluate scores pos from the perspective of the side to move: positive
// means better for whoever is to move. It is a pure function of pos (no
// cached or mutable package-level state), following the material + piece
// square table + tapered king safety model, not the teacher's much larger
// tuned weight set (mobility, full pawn structure, tropism, ...) which
// keeps a package-level pawn-evaluation cache and so cannot be a pure
// function; see DESIGN.md component F.

// Score is a pair of midgame/endgame centipawn values, tapered together
// by game phase at the end of evaluation. Grounded on the teacher's own
// Score{M,E}/Eval{M,E,Phase} pattern (engine/score.go), reused here
// without its pawnsCache.
type Score struct {
	M, E int32
}

func (s Score) Add(o Score) Score { return Score{s.M + o.M, s.E + o.E} }
func (s Score) Sub(o Score) Score { return Score{s.M - o.M, s.E - o.E} }

// material value per figure, endgame and midgame share the same value:
// spec names flat values rather than a tapered material table.
var materialValue = [FigureArraySize]int32{
	NoFigure: 0,
	Pawn:     100,
	Knight:   320,
	Bishop:   330,
	Rook:     500,
	Queen:    905,
	King:     0,
}

// pst holds one 64-entry table per figure, indexed by this module's own
// square numbering (0=a8..63=h1) from White's point of view; Black's
// value for a square is read by mirroring vertically (rank 8 <-> rank 1)
// before indexing the same table. Values are standard, commonly used
// piece-square bonuses (centralization for knights/bishops, file/rank
// shaping for rooks and the king, rewarding advanced passed-looking pawn
// ranks) rather than a tuned weight set.
var pst = [FigureArraySize][64]Score{
	Pawn: {
		{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0},
		{50, 80}, {50, 80}, {50, 80}, {50, 80}, {50, 80}, {50, 80}, {50, 80}, {50, 80},
		{10, 50}, {10, 50}, {20, 50}, {30, 50}, {30, 50}, {20, 50}, {10, 50}, {10, 50},
		{5, 25}, {5, 25}, {10, 25}, {25, 25}, {25, 25}, {10, 25}, {5, 25}, {5, 25},
		{0, 10}, {0, 10}, {0, 10}, {20, 10}, {20, 10}, {0, 10}, {0, 10}, {0, 10},
		{5, 0}, {-5, 0}, {-10, 0}, {0, 0}, {0, 0}, {-10, 0}, {-5, 0}, {5, 0},
		{5, 0}, {10, 0}, {10, 0}, {-20, 0}, {-20, 0}, {10, 0}, {10, 0}, {5, 0},
		{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0},
	},
	Knight: {
		{-50, -50}, {-40, -30}, {-30, -20}, {-30, -20}, {-30, -20}, {-30, -20}, {-40, -30}, {-50, -50},
		{-40, -30}, {-20, -10}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {-20, -10}, {-40, -30},
		{-30, -20}, {0, 0}, {10, 10}, {15, 15}, {15, 15}, {10, 10}, {0, 0}, {-30, -20},
		{-30, -20}, {5, 5}, {15, 15}, {20, 20}, {20, 20}, {15, 15}, {5, 5}, {-30, -20},
		{-30, -20}, {0, 5}, {15, 15}, {20, 20}, {20, 20}, {15, 15}, {0, 5}, {-30, -20},
		{-30, -20}, {5, 0}, {10, 10}, {15, 15}, {15, 15}, {10, 10}, {5, 0}, {-30, -20},
		{-40, -30}, {-20, -10}, {0, 0}, {5, 5}, {5, 5}, {0, 0}, {-20, -10}, {-40, -30},
		{-50, -50}, {-40, -30}, {-30, -20}, {-30, -20}, {-30, -20}, {-30, -20}, {-40, -30}, {-50, -50},
	},
	Bishop: {
		{-20, -20}, {-10, -10}, {-10, -10}, {-10, -10}, {-10, -10}, {-10, -10}, {-10, -10}, {-20, -20},
		{-10, -10}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {-10, -10},
		{-10, -10}, {0, 0}, {5, 5}, {10, 10}, {10, 10}, {5, 5}, {0, 0}, {-10, -10},
		{-10, -10}, {5, 5}, {5, 5}, {10, 10}, {10, 10}, {5, 5}, {5, 5}, {-10, -10},
		{-10, -10}, {0, 5}, {10, 10}, {10, 10}, {10, 10}, {10, 10}, {0, 5}, {-10, -10},
		{-10, -10}, {10, 5}, {10, 10}, {10, 10}, {10, 10}, {10, 10}, {10, 5}, {-10, -10},
		{-10, -10}, {5, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {5, 0}, {-10, -10},
		{-20, -20}, {-10, -10}, {-10, -10}, {-10, -10}, {-10, -10}, {-10, -10}, {-10, -10}, {-20, -20},
	},
	Rook: {
		{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0},
		{5, 5}, {10, 5}, {10, 5}, {10, 5}, {10, 5}, {10, 5}, {10, 5}, {5, 5},
		{-5, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {-5, 0},
		{-5, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {-5, 0},
		{-5, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {-5, 0},
		{-5, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {-5, 0},
		{-5, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {-5, 0},
		{0, 0}, {0, 0}, {0, 5}, {10, 5}, {10, 5}, {5, 5}, {0, 0}, {0, 0},
	},
	Queen: {
		{-20, -20}, {-10, -10}, {-10, -10}, {-5, -5}, {-5, -5}, {-10, -10}, {-10, -10}, {-20, -20},
		{-10, -10}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {-10, -10},
		{-10, -10}, {0, 0}, {5, 5}, {5, 5}, {5, 5}, {5, 5}, {0, 0}, {-10, -10},
		{-5, -5}, {0, 0}, {5, 5}, {5, 5}, {5, 5}, {5, 5}, {0, 0}, {-5, -5},
		{0, -5}, {0, 0}, {5, 5}, {5, 5}, {5, 5}, {5, 5}, {0, 0}, {-5, -5},
		{-10, -10}, {5, 0}, {5, 5}, {5, 5}, {5, 5}, {5, 5}, {0, 0}, {-10, -10},
		{-10, -10}, {0, 0}, {5, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {-10, -10},
		{-20, -20}, {-10, -10}, {-10, -10}, {-5, -5}, {-5, -5}, {-10, -10}, {-10, -10}, {-20, -20},
	},
	King: {
		{-30, 0}, {-40, 10}, {-40, 20}, {-50, 30}, {-50, 30}, {-40, 20}, {-40, 10}, {-30, 0},
		{-30, 10}, {-40, 20}, {-40, 30}, {-50, 40}, {-50, 40}, {-40, 30}, {-40, 20}, {-30, 10},
		{-30, 20}, {-40, 30}, {-40, 40}, {-50, 50}, {-50, 50}, {-40, 40}, {-40, 30}, {-30, 20},
		{-30, 30}, {-40, 40}, {-40, 50}, {-50, 50}, {-50, 50}, {-40, 50}, {-40, 40}, {-30, 30},
		{-20, 30}, {-30, 40}, {-30, 50}, {-40, 50}, {-40, 50}, {-30, 50}, {-30, 40}, {-20, 30},
		{-10, 20}, {-20, 30}, {-20, 40}, {-20, 40}, {-20, 40}, {-20, 40}, {-20, 30}, {-10, 20},
		{20, 10}, {20, 20}, {-5, 30}, {-5, 30}, {-5, 30}, {-5, 30}, {20, 20}, {20, 10},
		{20, 0}, {30, 10}, {10, 20}, {0, 30}, {0, 30}, {10, 20}, {30, 10}, {20, 0},
	},
}

func mirrorVertical(sq Square) Square { return RankFile(7-sq.row(), sq.File()) }

func pstValue(pi Piece, sq Square) Score {
	if pi.Color() == Black {
		sq = mirrorVertical(sq)
	}
	return pst[pi.Figure()][sq]
}

const kingShelterBonusPerPawn = 10

// kingShelterScore is the simplest concrete reading of "tapered king
// safety": a midgame-only bonus for own pawns on the three files around
// the king, one rank in front of it. It fades out naturally in the
// endgame via the normal M/E taper, since it is only ever added to M.
func kingShelterScore(pos *Position, us Color) Score {
	kingSq := pos.KingSquare(us)
	shieldRow := kingSq.row() - 1
	if us == Black {
		shieldRow = kingSq.row() + 1
	}
	if shieldRow < 0 || shieldRow > 7 {
		return Score{}
	}
	pawns := pos.ByPiece(ColorFigure(us, Pawn))
	file := kingSq.File()
	lo, hi := file-1, file+1
	if lo < 0 {
		lo = 0
	}
	if hi > 7 {
		hi = 7
	}
	var bonus int32
	for f := lo; f <= hi; f++ {
		if pawns.Has(RankFile(shieldRow, f)) {
			bonus += kingShelterBonusPerPawn
		}
	}
	return Score{M: bonus}
}

func sideScore(pos *Position, us Color) Score {
	var s Score
	for fig := Pawn; fig <= King; fig++ {
		bb := pos.ByPiece(ColorFigure(us, fig))
		for bb != 0 {
			sq := bb.Pop()
			s = s.Add(Score{materialValue[fig], materialValue[fig]}).Add(pstValue(ColorFigure(us, fig), sq))
		}
	}
	return s.Add(kingShelterScore(pos, us))
}

const maxPhase = 24

// Phase returns a 0..24 measure of how much non-pawn material remains:
// (4*queens + 2*rooks + 1*minors) clamped to 24, matching the classic
// "4Q+2R+1(B+N), clamp to 24" tapering formula.
func Phase(pos *Position) int32 {
	queens := pos.ByFigure(Queen).Count()
	rooks := pos.ByFigure(Rook).Count()
	minors := (pos.ByFigure(Bishop) | pos.ByFigure(Knight)).Count()
	raw := 4*queens + 2*rooks + minors
	if raw > maxPhase {
		raw = maxPhase
	}
	return int32(raw)
}

// Evaluate returns the static evaluation of pos, positive for the side to
// move being better off, using material + piece-square tables tapered by
// Phase, plus the king-shelter term above.
func Evaluate(pos *Position) int32 {
	total := sideScore(pos, White).Sub(sideScore(pos, Black))
	phase := Phase(pos)
	score := (total.M*phase + total.E*(maxPhase-phase)) / maxPhase
	if pos.SideToMove() == Black {
		score = -score
	}
	return score
}
