package engine

import "math/rand"

// Two independent hash schemes are maintained for a Position: an internal
// key, incrementally updated on every DoMove/UndoMove and used by the
// transposition table, and a Polyglot key, recomputed from scratch when
// needed and used only to probe the opening book. They intentionally use
// distinct composition rules (see PolyglotKey and Position's incremental
// update methods): the internal key XORs an en-passant term whenever an
// en-passant square is set, while the Polyglot key only does so when an
// enemy pawn could actually capture there, per the published Polyglot
// book format.
//
// No file in the reference corpus carries the genuine published Polyglot
// Random64 constants, so both tables here are generated by the same
// seeded-PRNG technique the teacher engine uses for its own Zobrist
// tables (rand64 over a fixed rand.Source), laid out in the official
// Polyglot slot order for the Polyglot table. This keeps book fixtures
// built with PolyglotKey self-consistent, at the cost of not being
// byte-compatible with a real-world third party .bin book file.

// rand64 draws a pseudo-random 64 bit value, the way the teacher's
// zobrist.go combines two 63-bit draws.
func rand64(r *rand.Rand) uint64 {
	return uint64(r.Int63())<<32 ^ uint64(r.Int63())
}

// Internal (transposition table) key material.
var (
	internalPieceSquare [PieceArraySize][SquareArraySize]uint64
	internalEnPassant   [8]uint64 // indexed by file
	internalCastleBit   [4]uint64 // one key per castling-right bit
	internalCastle      [16]uint64
	internalTurn        [ColorArraySize]uint64
)

func initInternalZobrist() {
	r := rand.New(rand.NewSource(1))
	for pi := 0; pi < PieceArraySize; pi++ {
		for sq := 0; sq < SquareArraySize; sq++ {
			internalPieceSquare[pi][sq] = rand64(r)
		}
	}
	for f := 0; f < 8; f++ {
		internalEnPassant[f] = rand64(r)
	}
	for i := range internalCastleBit {
		internalCastleBit[i] = rand64(r)
	}
	for c := 0; c < 16; c++ {
		var key uint64
		if c&int(WhiteOO) != 0 {
			key ^= internalCastleBit[0]
		}
		if c&int(WhiteOOO) != 0 {
			key ^= internalCastleBit[1]
		}
		if c&int(BlackOO) != 0 {
			key ^= internalCastleBit[2]
		}
		if c&int(BlackOOO) != 0 {
			key ^= internalCastleBit[3]
		}
		internalCastle[c] = key
	}
	internalTurn[White] = rand64(r)
	internalTurn[Black] = rand64(r)
}

// ZobristPieceSquare returns the internal key term for a piece on a square.
func ZobristPieceSquare(pi Piece, sq Square) uint64 { return internalPieceSquare[pi][sq] }

// ZobristEnPassant returns the internal key term for an en-passant target
// on the given file. Unlike PolyglotKey, the internal key always applies
// this term whenever an en-passant square is recorded, whether or not a
// capture is actually available.
func ZobristEnPassant(file int) uint64 { return internalEnPassant[file] }

// ZobristCastle returns the internal key term for a full castling-rights
// bitmask.
func ZobristCastle(c Castle) uint64 { return internalCastle[c] }

// ZobristTurn returns the internal key term for the side to move. Unlike
// PolyglotKey (which only XORs a term for White), the internal key XORs a
// distinct term per color so that flipping sides always changes the key.
func ZobristTurn(c Color) uint64 { return internalTurn[c] }

// Polyglot key material, in the official Polyglot slot order: 768
// piece/square entries, 4 castling entries, 8 en-passant-file entries, 1
// turn entry.
const (
	polyglotPieceOffset  = 0
	polyglotCastleOffset = 768
	polyglotEnPassOffset = 772
	polyglotTurnOffset   = 780
	polyglotRandomCount  = 781
)

var polyglotRandom [polyglotRandomCount]uint64

func initPolyglotZobrist() {
	r := rand.New(rand.NewSource(0x31f2a9))
	for i := range polyglotRandom {
		polyglotRandom[i] = rand64(r)
	}
}

func init() {
	initInternalZobrist()
	initPolyglotZobrist()
}

// polyglotKindIndex maps (color, figure) to Polyglot's piece-kind index:
// black pawn=0, white pawn=1, black knight=2, white knight=3, ... white
// king=11.
func polyglotKindIndex(color Color, fig Figure) int {
	order := map[Figure]int{Pawn: 0, Knight: 1, Bishop: 2, Rook: 3, Queen: 4, King: 5}
	idx := order[fig] * 2
	if color == White {
		idx++
	}
	return idx
}

// polyglotSquareIndex converts a Square to Polyglot's rank*8+file index
// with rank 0 = rank 1 (the opposite row order from this module's own
// Square numbering).
func polyglotSquareIndex(sq Square) int { return sq.Rank()*8 + sq.File() }

// PolyglotKey computes the Polyglot hash of pos from scratch, following
// the published format: one XOR term per occupied square, one per
// castling right held, one for an en-passant target only when an enemy
// pawn could actually capture on it, and one when White is to move.
func PolyglotKey(pos *Position) uint64 {
	var key uint64
	for sq := SquareMinValue; sq <= SquareMaxValue; sq++ {
		pi := pos.PieceAt(sq)
		if pi == NoPiece {
			continue
		}
		idx := polyglotKindIndex(pi.Color(), pi.Figure())
		key ^= polyglotRandom[polyglotPieceOffset+idx*64+polyglotSquareIndex(sq)]
	}

	ca := pos.CastlingRights()
	if ca&WhiteOO != 0 {
		key ^= polyglotRandom[polyglotCastleOffset+0]
	}
	if ca&WhiteOOO != 0 {
		key ^= polyglotRandom[polyglotCastleOffset+1]
	}
	if ca&BlackOO != 0 {
		key ^= polyglotRandom[polyglotCastleOffset+2]
	}
	if ca&BlackOOO != 0 {
		key ^= polyglotRandom[polyglotCastleOffset+3]
	}

	if ep := pos.EnPassantSquare(); ep != NoSquare && polyglotEnPassantCapturable(pos, ep) {
		key ^= polyglotRandom[polyglotEnPassOffset+ep.File()]
	}

	if pos.SideToMove() == White {
		key ^= polyglotRandom[polyglotTurnOffset]
	}
	return key
}

// polyglotEnPassantCapturable reports whether a pawn of the side to move
// actually occupies a square from which it could capture on ep, the guard
// the Polyglot format requires before including the en-passant term.
func polyglotEnPassantCapturable(pos *Position, ep Square) bool {
	us := pos.SideToMove()
	pawns := pos.ByPiece(ColorFigure(us, Pawn))
	capturers := PawnAttacks(us.Opposite(), ep) // squares a pawn on ep could be captured from
	return pawns&capturers != 0
}
