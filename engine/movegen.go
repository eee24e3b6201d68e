package engine

// Legal move generation. Unlike the teacher engine (which generates
// pseudo-legal moves and discards illegal ones after DoMove, by calling
// IsChecked), this generator computes, up front, the set of squares each
// piece is allowed to move to: a check mask (when the king is in check,
// the squares that capture the checker or block a sliding check; all
// squares when not in check; no squares when in double check) and, per
// pinned piece, a pin ray restricting it to the line between the king and
// its pinner. Every move returned is already fully legal.

const allSquares = Bitboard(^uint64(0))

func isSlider(f Figure) bool { return f == Bishop || f == Rook || f == Queen }

// attackersTo returns the set of by's pieces attacking sq, using occ as
// the board occupancy (letting callers probe "what if this square were
// vacated", e.g. when checking a king's destination square).
func (pos *Position) attackersTo(sq Square, by Color, occ Bitboard) Bitboard {
	var bb Bitboard
	bb |= KnightAttacks(sq) & pos.byFigure[Knight] & pos.byColor[by]
	bb |= KingAttacks(sq) & pos.byFigure[King] & pos.byColor[by]
	bb |= PawnAttacks(by.Opposite(), sq) & pos.byFigure[Pawn] & pos.byColor[by]
	rookLike := (pos.byFigure[Rook] | pos.byFigure[Queen]) & pos.byColor[by]
	bb |= RookAttacks(sq, occ) & rookLike
	bishopLike := (pos.byFigure[Bishop] | pos.byFigure[Queen]) & pos.byColor[by]
	bb |= BishopAttacks(sq, occ) & bishopLike
	return bb
}

// pinRays[sq] is allSquares for a piece that is not pinned, or the ray
// (inclusive of the pinning slider's square) a pinned piece on sq is
// restricted to.
func (pos *Position) pinRays(us Color, kingSq Square) [SquareArraySize]Bitboard {
	var rays [SquareArraySize]Bitboard
	for i := range rays {
		rays[i] = allSquares
	}
	them := us.Opposite()
	occ := pos.Occupied()
	rookLike := (pos.byFigure[Rook] | pos.byFigure[Queen]) & pos.byColor[them]
	bishopLike := (pos.byFigure[Bishop] | pos.byFigure[Queen]) & pos.byColor[them]

	scan := func(d [2]int, sliderBB Bitboard) {
		r, f := kingSq.row()+d[0], kingSq.File()+d[1]
		firstOwn := NoSquare
		for onBoard(r, f) {
			sq := RankFile(r, f)
			if occ.Has(sq) {
				if firstOwn == NoSquare {
					if pos.byColor[us].Has(sq) {
						firstOwn = sq
					} else {
						return
					}
				} else {
					if pos.byColor[them].Has(sq) && sliderBB.Has(sq) {
						rays[firstOwn] = Between(kingSq, sq) | sq.Bitboard()
					}
					return
				}
			}
			r, f = r+d[0], f+d[1]
		}
	}
	for _, d := range rookDirs {
		scan(d, rookLike)
	}
	for _, d := range bishopDirs {
		scan(d, bishopLike)
	}
	return rays
}

func (pos *Position) appendMove(moves *[]Move, piece Piece, from, to Square, promoted Figure, extraFlags MoveFlag) {
	captured := pos.PieceAt(to)
	flags := extraFlags
	if captured != NoPiece {
		flags |= FlagCapture
	}
	*moves = append(*moves, Move{From: from, To: to, Piece: piece, PromotedPiece: promoted, Flags: flags, Captured: captured})
}

// GenerateMoves returns every legal move in pos, in a fixed deterministic
// order (pawns, knights, bishops, rooks, queens, king) so that perft and
// other tests see reproducible move lists.
func (pos *Position) GenerateMoves() []Move {
	moves := make([]Move, 0, 48)
	us := pos.sideToMove
	them := us.Opposite()
	kingSq := pos.KingSquare(us)
	occ := pos.Occupied()

	checkers := pos.attackersTo(kingSq, them, occ)
	numCheckers := checkers.Count()

	var checkMask Bitboard
	switch numCheckers {
	case 0:
		checkMask = allSquares
	case 1:
		checkerSq := checkers.AsSquare()
		if isSlider(pos.PieceAt(checkerSq).Figure()) {
			checkMask = Between(kingSq, checkerSq) | checkerSq.Bitboard()
		} else {
			checkMask = checkerSq.Bitboard()
		}
	default:
		checkMask = 0
	}

	pins := pos.pinRays(us, kingSq)

	pos.genPawnMoves(us, checkMask, &pins, checkers, &moves)
	pos.genFigureMoves(Knight, us, checkMask, &pins, func(sq Square, _ Bitboard) Bitboard { return KnightAttacks(sq) }, &moves)
	pos.genFigureMoves(Bishop, us, checkMask, &pins, BishopAttacks, &moves)
	pos.genFigureMoves(Rook, us, checkMask, &pins, RookAttacks, &moves)
	pos.genFigureMoves(Queen, us, checkMask, &pins, QueenAttacks, &moves)
	pos.genKingMoves(us, kingSq, &moves)
	if numCheckers == 0 {
		pos.genCastleMoves(us, &moves)
	}
	return moves
}

func (pos *Position) genFigureMoves(fig Figure, us Color, checkMask Bitboard, pins *[SquareArraySize]Bitboard, attacks func(Square, Bitboard) Bitboard, moves *[]Move) {
	occ := pos.Occupied()
	bb := pos.ByPiece(ColorFigure(us, fig))
	for bb != 0 {
		from := bb.Pop()
		targets := attacks(from, occ) &^ pos.byColor[us]
		targets &= checkMask & pins[from]
		piece := ColorFigure(us, fig)
		for targets != 0 {
			to := targets.Pop()
			pos.appendMove(moves, piece, from, to, NoFigure, 0)
		}
	}
}

func (pos *Position) genKingMoves(us Color, kingSq Square, moves *[]Move) {
	them := us.Opposite()
	occWithoutKing := pos.Occupied() &^ kingSq.Bitboard()
	targets := KingAttacks(kingSq) &^ pos.byColor[us]
	for targets != 0 {
		to := targets.Pop()
		if pos.attackersTo(to, them, occWithoutKing) != 0 {
			continue
		}
		pos.appendMove(moves, ColorFigure(us, King), kingSq, to, NoFigure, 0)
	}
}

func (pos *Position) genCastleMoves(us Color, moves *[]Move) {
	them := us.Opposite()
	occ := pos.Occupied()
	attacked := func(sq Square) bool { return pos.attackersTo(sq, them, occ) != 0 }

	if us == White {
		if pos.castlingRights&WhiteOO != 0 &&
			!occ.Has(sqF1) && !occ.Has(sqG1) &&
			!attacked(sqE1) && !attacked(sqF1) && !attacked(sqG1) {
			pos.appendMove(moves, ColorFigure(White, King), sqE1, sqG1, NoFigure, FlagCastle)
		}
		if pos.castlingRights&WhiteOOO != 0 &&
			!occ.Has(sqB1) && !occ.Has(sqC1) && !occ.Has(sqD1) &&
			!attacked(sqE1) && !attacked(sqD1) && !attacked(sqC1) {
			pos.appendMove(moves, ColorFigure(White, King), sqE1, sqC1, NoFigure, FlagCastle)
		}
	} else {
		if pos.castlingRights&BlackOO != 0 &&
			!occ.Has(sqF8) && !occ.Has(sqG8) &&
			!attacked(sqE8) && !attacked(sqF8) && !attacked(sqG8) {
			pos.appendMove(moves, ColorFigure(Black, King), sqE8, sqG8, NoFigure, FlagCastle)
		}
		if pos.castlingRights&BlackOOO != 0 &&
			!occ.Has(sqB8) && !occ.Has(sqC8) && !occ.Has(sqD8) &&
			!attacked(sqE8) && !attacked(sqD8) && !attacked(sqC8) {
			pos.appendMove(moves, ColorFigure(Black, King), sqE8, sqC8, NoFigure, FlagCastle)
		}
	}
}

var promotionFigures = [4]Figure{Queen, Rook, Bishop, Knight}

func (pos *Position) genPawnMoves(us Color, checkMask Bitboard, pins *[SquareArraySize]Bitboard, checkers Bitboard, moves *[]Move) {
	them := us.Opposite()
	occ := pos.Occupied()
	piece := ColorFigure(us, Pawn)

	dir := 1
	startRow := 1
	promoRow := 7
	if us == White {
		dir = -1
		startRow = 6
		promoRow = 0
	}

	bb := pos.ByPiece(piece)
	for bb != 0 {
		from := bb.Pop()
		allowed := checkMask & pins[from]
		fromRow, fromFile := from.row(), from.File()

		toRow := fromRow + dir
		if toRow >= 0 && toRow < 8 {
			to := RankFile(toRow, fromFile)
			if !occ.Has(to) {
				if allowed.Has(to) {
					pos.addPawnAdvance(moves, piece, from, to, toRow == promoRow, 0)
				}
				if fromRow == startRow {
					toRow2 := toRow + dir
					to2 := RankFile(toRow2, fromFile)
					if !occ.Has(to2) && allowed.Has(to2) {
						pos.appendMove(moves, piece, from, to2, NoFigure, FlagDoublePawnPush)
					}
				}
			}
		}

		captures := PawnAttacks(us, from) & pos.byColor[them] & allowed
		for captures != 0 {
			to := captures.Pop()
			pos.addPawnAdvance(moves, piece, from, to, to.row() == promoRow, 0)
		}

		if pos.enPassant != NoSquare && PawnAttacks(us, from).Has(pos.enPassant) {
			capSq := RankFile(fromRow, pos.enPassant.File())
			blocksCheck := allowed.Has(pos.enPassant) || checkers.Has(capSq)
			if blocksCheck && !pos.enPassantExposesCheck(us, from, capSq) {
				*moves = append(*moves, Move{
					From: from, To: pos.enPassant, Piece: piece,
					Flags: FlagEnPassant | FlagCapture, Captured: ColorFigure(them, Pawn),
				})
			}
		}
	}
}

func (pos *Position) addPawnAdvance(moves *[]Move, piece Piece, from, to Square, promotes bool, extraFlags MoveFlag) {
	if !promotes {
		pos.appendMove(moves, piece, from, to, NoFigure, extraFlags)
		return
	}
	for _, fig := range promotionFigures {
		pos.appendMove(moves, piece, from, to, fig, extraFlags)
	}
}

// enPassantExposesCheck handles the classic discovered-check edge case: a
// pawn captures en passant, vacating both its own square and the captured
// pawn's square on the same rank as the king, exposing the king to a
// rook or queen that neither pawn's departure alone would have revealed.
func (pos *Position) enPassantExposesCheck(us Color, from, capSq Square) bool {
	kingSq := pos.KingSquare(us)
	them := us.Opposite()
	occ := pos.Occupied() &^ from.Bitboard() &^ capSq.Bitboard()
	rookLike := (pos.byFigure[Rook] | pos.byFigure[Queen]) & pos.byColor[them]
	return RookAttacks(kingSq, occ)&rookLike != 0
}
