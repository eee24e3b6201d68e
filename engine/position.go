package engine

import "fmt"

// Named corner/central squares used by castling logic.
var (
	sqA8 = RankFile(0, 0)
	sqB8 = RankFile(0, 1)
	sqC8 = RankFile(0, 2)
	sqD8 = RankFile(0, 3)
	sqE8 = RankFile(0, 4)
	sqF8 = RankFile(0, 5)
	sqG8 = RankFile(0, 6)
	sqH8 = RankFile(0, 7)
	sqA1 = RankFile(7, 0)
	sqB1 = RankFile(7, 1)
	sqC1 = RankFile(7, 2)
	sqD1 = RankFile(7, 3)
	sqE1 = RankFile(7, 4)
	sqF1 = RankFile(7, 5)
	sqG1 = RankFile(7, 6)
	sqH1 = RankFile(7, 7)
)

// lostCastleRights[sq] is the set of castling rights permanently lost the
// moment anything happens on sq (the king or a rook moves away from its
// home square, or a rook is captured on its home square).
var lostCastleRights [SquareArraySize]Castle

func init() {
	lostCastleRights[sqE1] = WhiteOO | WhiteOOO
	lostCastleRights[sqA1] = WhiteOOO
	lostCastleRights[sqH1] = WhiteOO
	lostCastleRights[sqE8] = BlackOO | BlackOOO
	lostCastleRights[sqA8] = BlackOOO
	lostCastleRights[sqH8] = BlackOO
}

// castlingRookSquares returns the rook's From/To squares for a castling
// move whose king lands on kingTo.
func castlingRookSquares(kingTo Square) (from, to Square) {
	switch kingTo {
	case sqG1:
		return sqH1, sqF1
	case sqC1:
		return sqA1, sqD1
	case sqG8:
		return sqH8, sqF8
	case sqC8:
		return sqA8, sqD8
	}
	panic(fmt.Sprintf("not a castling destination: %v", kingTo))
}

// HistoryRecord captures exactly the state needed to undo one move: the
// irreversible parts of position state the move may have changed, plus
// the move itself and whatever it captured.
type HistoryRecord struct {
	Move           Move
	CapturedPiece  Piece
	CastlingRights Castle
	EnPassant      Square
	HalfMoveClock  int
	FullMoveNumber int
	Zobrist        uint64
}

// Position is a full chess position: piece placement, side to move,
// castling rights, en-passant target, move clocks, and the Zobrist key,
// plus the history stack needed to unmake moves.
type Position struct {
	byFigure [FigureArraySize]Bitboard
	byColor  [int(ColorArraySize)]Bitboard

	sideToMove     Color
	castlingRights Castle
	enPassant      Square
	halfMoveClock  int
	fullMoveNumber int
	zobrist        uint64

	history        []HistoryRecord
	zobristHistory []uint64
}

// NewPosition returns an empty position with White to move and no
// castling rights, matching the defined reset state BadFEN errors fall
// back to.
func NewPosition() *Position {
	pos := &Position{
		sideToMove:     White,
		castlingRights: NoCastle,
		enPassant:      NoSquare,
		fullMoveNumber: 1,
	}
	pos.zobrist = ZobristTurn(White)
	return pos
}

func (pos *Position) SideToMove() Color         { return pos.sideToMove }
func (pos *Position) CastlingRights() Castle    { return pos.castlingRights }
func (pos *Position) EnPassantSquare() Square   { return pos.enPassant }
func (pos *Position) HalfMoveClock() int        { return pos.halfMoveClock }
func (pos *Position) FullMoveNumber() int       { return pos.fullMoveNumber }
func (pos *Position) Zobrist() uint64           { return pos.zobrist }
func (pos *Position) ByFigure(f Figure) Bitboard { return pos.byFigure[f] }
func (pos *Position) ByColor(c Color) Bitboard  { return pos.byColor[c] }
func (pos *Position) ByPiece(pi Piece) Bitboard {
	return pos.byFigure[pi.Figure()] & pos.byColor[pi.Color()]
}
func (pos *Position) Occupied() Bitboard { return pos.byColor[White] | pos.byColor[Black] }

// PieceAt returns the piece occupying sq, or NoPiece.
func (pos *Position) PieceAt(sq Square) Piece {
	bb := sq.Bitboard()
	if pos.Occupied()&bb == 0 {
		return NoPiece
	}
	var color Color
	if pos.byColor[White]&bb != 0 {
		color = White
	} else {
		color = Black
	}
	for f := Pawn; f <= King; f++ {
		if pos.byFigure[f]&bb != 0 {
			return ColorFigure(color, f)
		}
	}
	return NoPiece
}

func (pos *Position) put(pi Piece, sq Square) {
	bb := sq.Bitboard()
	pos.byFigure[pi.Figure()] |= bb
	pos.byColor[pi.Color()] |= bb
	pos.zobrist ^= ZobristPieceSquare(pi, sq)
}

func (pos *Position) remove(pi Piece, sq Square) {
	bb := sq.Bitboard()
	pos.byFigure[pi.Figure()] &^= bb
	pos.byColor[pi.Color()] &^= bb
	pos.zobrist ^= ZobristPieceSquare(pi, sq)
}

// Put places piece pi on sq of an otherwise-under-construction position,
// used by FEN parsing; it does not touch the history stack.
func (pos *Position) Put(pi Piece, sq Square) { pos.put(pi, sq) }

// KingSquare returns the square of color's king.
func (pos *Position) KingSquare(color Color) Square {
	return (pos.byFigure[King] & pos.byColor[color]).AsSquare()
}

// IsChecked reports whether color's king is currently attacked. The
// attacker enumeration (attackersTo) lives in movegen.go, shared with the
// legal move generator's check-mask computation.
func (pos *Position) IsChecked(color Color) bool {
	sq := pos.KingSquare(color)
	return pos.attackersTo(sq, color.Opposite(), pos.Occupied()) != 0
}

// DoMove applies m to pos, pushing a HistoryRecord so it can be undone
// with UndoMove. m must have been produced by the move generator (its
// Captured piece and flags are trusted, not re-derived).
func (pos *Position) DoMove(m Move) {
	record := HistoryRecord{
		Move:           m,
		CapturedPiece:  m.Captured,
		CastlingRights: pos.castlingRights,
		EnPassant:      pos.enPassant,
		HalfMoveClock:  pos.halfMoveClock,
		FullMoveNumber: pos.fullMoveNumber,
		Zobrist:        pos.zobrist,
	}
	pos.history = append(pos.history, record)
	pos.zobristHistory = append(pos.zobristHistory, pos.zobrist)

	us := pos.sideToMove
	them := us.Opposite()

	// Clear old en-passant term.
	if pos.enPassant != NoSquare {
		pos.zobrist ^= ZobristEnPassant(pos.enPassant.File())
	}
	pos.enPassant = NoSquare

	pos.remove(m.Piece, m.From)

	if m.Flags&FlagEnPassant != 0 {
		capSq := RankFile(m.From.row(), m.To.File())
		pos.remove(m.Captured, capSq)
	} else if m.Captured != NoPiece {
		pos.remove(m.Captured, m.To)
	}

	placed := m.Piece
	if m.PromotedPiece != NoFigure {
		placed = ColorFigure(us, m.PromotedPiece)
	}
	pos.put(placed, m.To)

	if m.Flags&FlagCastle != 0 {
		rookFrom, rookTo := castlingRookSquares(m.To)
		rook := ColorFigure(us, Rook)
		pos.remove(rook, rookFrom)
		pos.put(rook, rookTo)
	}

	if m.Flags&FlagDoublePawnPush != 0 {
		mid := RankFile((int(m.From.row())+int(m.To.row()))/2, m.From.File())
		pos.enPassant = mid
		pos.zobrist ^= ZobristEnPassant(mid.File())
	}

	newRights := pos.castlingRights &^ (lostCastleRights[m.From] | lostCastleRights[m.To])
	if newRights != pos.castlingRights {
		pos.zobrist ^= ZobristCastle(pos.castlingRights) ^ ZobristCastle(newRights)
		pos.castlingRights = newRights
	}

	if m.Piece.Figure() == Pawn || m.Captured != NoPiece {
		pos.halfMoveClock = 0
	} else {
		pos.halfMoveClock++
	}
	if us == Black {
		pos.fullMoveNumber++
	}

	pos.zobrist ^= ZobristTurn(us) ^ ZobristTurn(them)
	pos.sideToMove = them
}

// UndoMove reverses the most recent DoMove.
func (pos *Position) UndoMove() {
	n := len(pos.history)
	record := pos.history[n-1]
	pos.history = pos.history[:n-1]
	pos.zobristHistory = pos.zobristHistory[:n-1]
	m := record.Move

	them := pos.sideToMove
	us := them.Opposite()
	pos.sideToMove = us

	if m.Flags&FlagCastle != 0 {
		rookFrom, rookTo := castlingRookSquares(m.To)
		pos.byFigure[Rook] &^= rookTo.Bitboard()
		pos.byColor[us] &^= rookTo.Bitboard()
		pos.byFigure[Rook] |= rookFrom.Bitboard()
		pos.byColor[us] |= rookFrom.Bitboard()
	}

	placed := m.Piece
	if m.PromotedPiece != NoFigure {
		placed = ColorFigure(us, m.PromotedPiece)
	}
	pos.byFigure[placed.Figure()] &^= m.To.Bitboard()
	pos.byColor[us] &^= m.To.Bitboard()

	if m.Flags&FlagEnPassant != 0 {
		capSq := RankFile(m.From.row(), m.To.File())
		pos.byFigure[m.Captured.Figure()] |= capSq.Bitboard()
		pos.byColor[m.Captured.Color()] |= capSq.Bitboard()
	} else if m.Captured != NoPiece {
		pos.byFigure[m.Captured.Figure()] |= m.To.Bitboard()
		pos.byColor[m.Captured.Color()] |= m.To.Bitboard()
	}

	pos.byFigure[m.Piece.Figure()] |= m.From.Bitboard()
	pos.byColor[us] |= m.From.Bitboard()

	pos.castlingRights = record.CastlingRights
	pos.enPassant = record.EnPassant
	pos.halfMoveClock = record.HalfMoveClock
	pos.fullMoveNumber = record.FullMoveNumber
	pos.zobrist = record.Zobrist
}

// IsRepetition reports whether the current position has occurred at least
// once since the last irreversible move (capture or pawn move), the
// shortcut the search driver uses to treat the position as a known draw
// instead of walking a full threefold check.
func (pos *Position) IsRepetition() bool {
	n := len(pos.zobristHistory)
	limit := pos.halfMoveClock
	for i := n - 2; i >= 0 && n-i <= limit; i -= 2 {
		if pos.zobristHistory[i] == pos.zobrist {
			return true
		}
	}
	return false
}

// Verify checks the structural invariants a well-formed position must
// hold: bitboards for each color are disjoint, every square belongs to at
// most one figure, and each side has exactly one king.
func (pos *Position) Verify() error {
	if pos.byColor[White]&pos.byColor[Black] != 0 {
		return fmt.Errorf("white and black bitboards overlap")
	}
	var seen Bitboard
	for f := Pawn; f <= King; f++ {
		if pos.byFigure[f]&seen != 0 {
			return fmt.Errorf("figure bitboards overlap at figure %v", f)
		}
		seen |= pos.byFigure[f]
	}
	if seen != pos.Occupied() {
		return fmt.Errorf("figure bitboards do not match color bitboards")
	}
	for _, c := range [2]Color{White, Black} {
		if (pos.byFigure[King] & pos.byColor[c]).Count() != 1 {
			return fmt.Errorf("color %v does not have exactly one king", c)
		}
	}
	return nil
}
