package engine

import (
	"math/rand"
	"time"
)

// newBookRNG returns a new seeded source for book move sampling. It is
// not package-level/shared state (a pure function would not want that),
// so each Play call that consults the book gets its own.
func newBookRNG() *rand.Rand { return rand.New(rand.NewSource(time.Now().UnixNano())) }

// hashMoveToMove expands a compact hashMove into just enough of a Move to
// compare against generated moves (From/To/PromotedPiece); Piece and
// Captured are left zero, since moveScore never reads them on the hash
// move argument.
func hashMoveToMove(hm hashMove) Move {
	return Move{From: hm.from(), To: hm.to(), PromotedPiece: hm.promoted()}
}

// Score sentinels. mateScore is the score of the side to move being
// checkmated (detected by an empty legal move list while in check).
// negamax subtracts the remaining search depth from it, so a mate found
// with more depth still left to search, i.e. a shorter mate, sorts ahead
// of a longer one.
const (
	infScore  int32 = 20000
	mateScore int32 = -19000
)

// maxSupportedDepth is the deepest iterative-deepening pass Play will ever
// run. A caller-supplied depth (UCI "go depth N") beyond this is clamped
// down to it rather than rejected, per spec.md §7's DepthUnsupported
// recovery rule.
const maxSupportedDepth = 64

// Engine searches a Position for the best move.
type Engine struct {
	Options  Options
	Log      Logger
	Stats    Stats
	Position *Position

	hash *HashTable
	tc   *TimeControl
	book *Book
}

// NewEngine creates a new engine to search pos (the start position if pos
// is nil). log defaults to NulLogger if nil.
func NewEngine(pos *Position, log Logger, options Options) *Engine {
	if log == nil {
		log = NulLogger{}
	}
	hashSizeMB := options.HashSizeMB
	if hashSizeMB <= 0 {
		hashSizeMB = DefaultHashTableSizeMB
	}
	eng := &Engine{
		Options: options,
		Log:     log,
		hash:    NewHashTable(hashSizeMB),
	}
	eng.SetPosition(pos)
	return eng
}

// SetPosition sets the position to search; nil resets to the start
// position.
func (eng *Engine) SetPosition(pos *Position) {
	if pos == nil {
		pos, _ = ParseFEN("startpos")
	}
	eng.Position = pos
}

// SetBook attaches an opening book the search will try before searching.
func (eng *Engine) SetBook(book *Book) { eng.book = book }

// SetHashSizeMB reallocates the transposition table, the UCI "Hash"
// option's effect; it also clears it, matching "setoption Hash" behavior.
func (eng *Engine) SetHashSizeMB(sizeMB int) { eng.hash = NewHashTable(sizeMB) }

// ClearHash empties the transposition table, the UCI "Clear Hash" option.
func (eng *Engine) ClearHash() { eng.hash.Clear() }

// Play returns the engine's move for the current position, searching
// under tc until it reports Stopped() or the configured depth is reached.
// If a book move is available it is returned immediately without
// searching.
func (eng *Engine) Play(tc *TimeControl) (Move, int32) {
	if eng.book != nil {
		if m, ok := eng.book.Probe(eng.Position, newBookRNG()); ok {
			return m, 0
		}
	}

	eng.tc = tc
	eng.Stats = Stats{}
	tc.Start()
	defer tc.Close()

	eng.Log.BeginSearch()
	defer eng.Log.EndSearch()

	var best Move
	var bestScore int32
	maxDepth := tc.Depth
	if maxDepth <= 0 || maxDepth > maxSupportedDepth {
		maxDepth = maxSupportedDepth
	}
	for depth := int32(1); depth <= int32(maxDepth); depth++ {
		score, pv, ok := eng.searchRoot(depth)
		if !ok {
			break
		}
		bestScore = score
		if len(pv) > 0 {
			best = pv[0]
		}
		eng.Stats.Depth = depth
		eng.Log.PrintPV(eng.Stats, score, pv)
		if tc.Stopped() {
			break
		}
	}
	return best, bestScore
}

// searchRoot runs one iterative-deepening pass at depth, returning the
// score, the principal variation (best move first), and ok == false if
// the search was aborted before producing a usable result (only possible
// if the time ran out before even the first move of the root was tried).
func (eng *Engine) searchRoot(depth int32) (int32, []Move, bool) {
	pos := eng.Position
	moves := pos.GenerateMoves()
	if len(moves) == 0 {
		if pos.IsChecked(pos.SideToMove()) {
			return mateScore, nil, true
		}
		return 0, nil, true
	}

	hashMv, _, _, _ := eng.probeHash(pos.Zobrist())
	orderMoves(moves, hashMoveToMove(hashMv))

	alpha, beta := -infScore, infScore
	var best Move
	var bestLine []Move
	bestScore := -infScore
	for i, m := range moves {
		pos.DoMove(m)
		var line []Move
		score := -eng.negamax(-beta, -alpha, depth-1, 1, &line)
		pos.UndoMove()

		if eng.tc.Stopped() && i > 0 {
			break
		}
		if score > bestScore {
			bestScore = score
			best = m
			bestLine = line
		}
		if score > alpha {
			alpha = score
		}
	}
	if best.IsNull() {
		return 0, nil, false
	}
	eng.storeHash(pos.Zobrist(), best, depth, -infScore, infScore, bestScore)
	pv := append([]Move{best}, bestLine...)
	return bestScore, pv, true
}

// negamax is the recursive alpha-beta search below the root. ply counts
// plies from the root. On
// return, *pv holds the best line found from this node onward (the best
// move here followed by its own child's line), so the root can assemble
// the full principal variation instead of only its own first move; quiet
// leaves below the quiescence horizon do not extend it further.
func (eng *Engine) negamax(alpha, beta int32, depth, ply int32, pv *[]Move) int32 {
	eng.Stats.Nodes++
	if eng.tc.Stopped() {
		return 0
	}
	pos := eng.Position

	if ply > 0 && pos.IsRepetition() {
		return -5
	}
	if pos.HalfMoveClock() >= 100 {
		return 0
	}

	if depth <= 0 {
		return eng.quiescence(alpha, beta, ply)
	}

	origAlpha := alpha
	hashMv, hashDepth, hashScore, hashFlags := eng.probeHash(pos.Zobrist())
	if int32(hashDepth) >= depth && isInBounds(hashFlags, alpha, beta, hashScore) {
		return hashScore
	}

	moves := pos.GenerateMoves()
	if len(moves) == 0 {
		if pos.IsChecked(pos.SideToMove()) {
			return mateScore - depth
		}
		return 0
	}
	orderMoves(moves, hashMoveToMove(hashMv))

	var best Move
	var bestLine []Move
	bestScore := -infScore
	for _, m := range moves {
		pos.DoMove(m)
		var line []Move
		score := -eng.negamax(-beta, -alpha, depth-1, ply+1, &line)
		pos.UndoMove()

		if eng.tc.Stopped() {
			return score
		}
		if score > bestScore {
			bestScore = score
			best = m
			bestLine = line
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}

	eng.storeHash(pos.Zobrist(), best, depth, origAlpha, beta, bestScore)
	if pv != nil && !best.IsNull() {
		*pv = append([]Move{best}, bestLine...)
	}
	return bestScore
}

// quiescence resolves captures and promotions until the position is
// quiet, so the static evaluation at the search frontier is never taken
// in the middle of a capture sequence.
func (eng *Engine) quiescence(alpha, beta int32, ply int32) int32 {
	eng.Stats.Nodes++
	pos := eng.Position

	static := Evaluate(pos)
	if static >= beta {
		return static
	}
	if static > alpha {
		alpha = static
	}

	moves := violentMoves(pos.GenerateMoves())
	orderMoves(moves, Move{})
	for _, m := range moves {
		pos.DoMove(m)
		score := -eng.quiescence(-beta, -alpha, ply+1)
		pos.UndoMove()

		if eng.tc.Stopped() {
			return score
		}
		if score >= beta {
			return score
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

func (eng *Engine) probeHash(zobrist uint64) (move hashMove, depth int8, score int32, flags hashFlags) {
	data, ok := eng.hash.get(zobrist)
	if !ok {
		eng.Stats.CacheMiss++
		return 0, -1, 0, 0
	}
	eng.Stats.CacheHit++
	return data.move(), data.depth(), data.score(), data.flags()
}

func (eng *Engine) storeHash(zobrist uint64, best Move, depth int32, alpha, beta, score int32) {
	flags := getBound(alpha, beta, score)
	eng.hash.put(zobrist, encodeHashMove(best), flags, int8(depth), score)
}

// getBound classifies score relative to the window actually searched,
// the same three-way split the teacher's hash_table.go getBound uses.
func getBound(alpha, beta, score int32) hashFlags {
	if score <= alpha {
		return upperBound
	}
	if score >= beta {
		return lowerBound
	}
	return exact
}
