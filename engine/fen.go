package engine

import (
	"fmt"
	"strconv"
	"strings"
)

var startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a FEN string (or the literal "startpos") into a new
// Position. On any parse error, nil is returned alongside the error: the
// caller keeps whatever position it had before, per the defined
// BadFEN behavior (no partial state is ever produced from a failed
// parse).
func ParseFEN(fen string) (*Position, error) {
	if fen == "startpos" {
		fen = startFEN
	}
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return nil, fmt.Errorf("fen: expected 6 fields, got %d", len(fields))
	}

	pos := NewPosition()
	pos.zobrist = 0
	if err := parsePiecePlacement(fields[0], pos); err != nil {
		return nil, fmt.Errorf("fen: %v", err)
	}
	if err := parseSideToMove(fields[1], pos); err != nil {
		return nil, fmt.Errorf("fen: %v", err)
	}
	if err := parseCastlingRights(fields[2], pos); err != nil {
		return nil, fmt.Errorf("fen: %v", err)
	}
	if err := parseEnPassant(fields[3], pos); err != nil {
		return nil, fmt.Errorf("fen: %v", err)
	}
	halfMove, err := strconv.Atoi(fields[4])
	if err != nil || halfMove < 0 {
		return nil, fmt.Errorf("fen: invalid halfmove clock %q", fields[4])
	}
	pos.halfMoveClock = halfMove
	fullMove, err := strconv.Atoi(fields[5])
	if err != nil || fullMove < 1 {
		return nil, fmt.Errorf("fen: invalid fullmove number %q", fields[5])
	}
	pos.fullMoveNumber = fullMove

	if err := pos.Verify(); err != nil {
		return nil, fmt.Errorf("fen: %v", err)
	}
	return pos, nil
}

var symbolToFigure = map[rune]Figure{
	'p': Pawn, 'n': Knight, 'b': Bishop, 'r': Rook, 'q': Queen, 'k': King,
}

func parsePiecePlacement(str string, pos *Position) error {
	rows := strings.Split(str, "/")
	if len(rows) != 8 {
		return fmt.Errorf("expected 8 ranks, got %d", len(rows))
	}
	// rows[0] is the FEN's top rank (rank 8), which is row 0 in this
	// module's own numbering, so no reversal is needed here.
	for row, rank := range rows {
		file := 0
		for _, c := range rank {
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			fig, ok := symbolToFigure[c|0x20]
			if !ok {
				return fmt.Errorf("invalid piece symbol %q", string(c))
			}
			if file >= 8 {
				return fmt.Errorf("rank %d has too many squares", 8-row)
			}
			color := Black
			if c >= 'A' && c <= 'Z' {
				color = White
			}
			pos.Put(ColorFigure(color, fig), RankFile(row, file))
			file++
		}
		if file != 8 {
			return fmt.Errorf("rank %d does not add up to 8 squares", 8-row)
		}
	}
	return nil
}

func parseSideToMove(str string, pos *Position) error {
	switch str {
	case "w":
		pos.sideToMove = White
	case "b":
		pos.sideToMove = Black
	default:
		return fmt.Errorf("invalid side to move %q", str)
	}
	pos.zobrist ^= ZobristTurn(pos.sideToMove)
	return nil
}

func parseCastlingRights(str string, pos *Position) error {
	if str == "-" {
		pos.castlingRights = NoCastle
		return nil
	}
	var rights Castle
	for _, c := range str {
		switch c {
		case 'K':
			rights |= WhiteOO
		case 'Q':
			rights |= WhiteOOO
		case 'k':
			rights |= BlackOO
		case 'q':
			rights |= BlackOOO
		default:
			return fmt.Errorf("invalid castling rights %q", str)
		}
	}
	pos.castlingRights = rights
	pos.zobrist ^= ZobristCastle(rights)
	return nil
}

func parseEnPassant(str string, pos *Position) error {
	if str == "-" {
		pos.enPassant = NoSquare
		return nil
	}
	sq, err := SquareFromString(str)
	if err != nil {
		return fmt.Errorf("invalid en-passant square %q", str)
	}
	pos.enPassant = sq
	pos.zobrist ^= ZobristEnPassant(sq.File())
	return nil
}

// String formats pos as a FEN string.
func (pos *Position) String() string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		empty := 0
		for file := 0; file < 8; file++ {
			pi := pos.PieceAt(RankFile(row, file))
			if pi == NoPiece {
				empty++
				continue
			}
			if empty != 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(pieceSymbol(pi))
		}
		if empty != 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if row != 7 {
			sb.WriteByte('/')
		}
	}
	sb.WriteByte(' ')
	sb.WriteString(pos.sideToMove.String())
	sb.WriteByte(' ')
	sb.WriteString(pos.castlingRights.String())
	sb.WriteByte(' ')
	sb.WriteString(pos.enPassant.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(pos.halfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(pos.fullMoveNumber))
	return sb.String()
}

func pieceSymbol(pi Piece) string {
	sym := pi.Figure().String()
	if pi.Color() == Black {
		sym = lower(sym)
	}
	return sym
}
