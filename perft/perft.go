// Perft is a perft tool: it counts nodes, captures, en-passant captures,
// castles and promotions reachable from a position at a given depth, and
// checks the counts against the well-known startpos/kiwipete/duplain
// tables, the standard way to test and debug a move generator.
//
// Examples:
//
//	$ ./perft --fen startpos --max_depth 6
//	$ ./perft --fen kiwipete --max_depth 5
//	$ ./perft --fen duplain --max_depth 6
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/corvid-chess/corvid/engine"
)

var (
	fen        = flag.String("fen", "startpos", "position to search")
	minDepth   = flag.Int("min_depth", 1, "minimum depth to search (inclusive)")
	maxDepth   = flag.Int("max_depth", 5, "maximum depth to search (inclusive)")
	depthFlag  = flag.Int("depth", 0, "if non zero, searches only this depth")
	splitDepth = flag.Int("split", 0, "split depth")

	splitMoves []string
)

// Counters counts leaf outcomes after a perft walk to a given depth.
type Counters struct {
	Nodes      uint64
	Captures   uint64
	EnPassant  uint64
	Castles    uint64
	Promotions uint64
}

func (c *Counters) add(o Counters) {
	c.Nodes += o.Nodes
	c.Captures += o.Captures
	c.EnPassant += o.EnPassant
	c.Castles += o.Castles
	c.Promotions += o.Promotions
}

type hashEntry struct {
	zobrist  uint64
	counters Counters
	depth    int
}

// FEN constants for the three fixture positions exercised by PerftFixtures.
const (
	StartposFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	KiwipeteFEN = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	DuplainFEN  = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
)

var known = map[string]string{
	"startpos": StartposFEN,
	"kiwipete": KiwipeteFEN,
	"duplain":  DuplainFEN,
}

// PerftFixtures tabulates, for each of the three well-known test
// positions, the expected Counters at depth == index, matching the
// published perft results for these positions (the same numbers the
// teacher engine's own perft.go doc comment tabulates).
var PerftFixtures = map[string][]Counters{
	StartposFEN: {
		{1, 0, 0, 0, 0},
		{20, 0, 0, 0, 0},
		{400, 0, 0, 0, 0},
		{8902, 34, 0, 0, 0},
		{197281, 1576, 0, 0, 0},
		{4865609, 82719, 258, 0, 0},
		{119060324, 2812008, 5248, 0, 0},
	},
	KiwipeteFEN: {
		{1, 0, 0, 0, 0},
		{48, 8, 0, 2, 0},
		{2039, 351, 1, 91, 0},
		{97862, 17102, 45, 3162, 0},
		{4085603, 757163, 1929, 128013, 15172},
		{193690690, 35043416, 73365, 4993637, 8392},
	},
	DuplainFEN: {
		{1, 0, 0, 0, 0},
		{14, 1, 0, 0, 0},
		{191, 14, 0, 0, 0},
		{2812, 209, 2, 0, 0},
		{43238, 3348, 123, 0, 0},
		{674624, 52051, 1165, 0, 0},
		{11030083, 940350, 33325, 0, 7552},
	},
}

var hashTable = make([]hashEntry, 1<<20)

// Perft returns the Counters reachable from pos at depth, walking only
// legal moves (this module's GenerateMoves, unlike the teacher's
// pseudo-legal generator, never needs an IsChecked-after-DoMove filter),
// memoized in a Zobrist-keyed hash table the way the teacher's perft.go
// does.
func Perft(pos *engine.Position, depth int) Counters {
	if depth == 0 {
		return Counters{Nodes: 1}
	}

	index := pos.Zobrist() % uint64(len(hashTable))
	if e := hashTable[index]; e.depth == depth && e.zobrist == pos.Zobrist() {
		return e.counters
	}

	var r Counters
	for _, move := range pos.GenerateMoves() {
		if depth == 1 {
			if move.IsCapture() {
				r.Captures++
			}
			if move.Flags&engine.FlagEnPassant != 0 {
				r.EnPassant++
			}
			if move.Flags&engine.FlagCastle != 0 {
				r.Castles++
			}
			if move.IsPromotion() {
				r.Promotions++
			}
		}
		pos.DoMove(move)
		r.add(Perft(pos, depth-1))
		pos.UndoMove()
	}

	hashTable[index] = hashEntry{zobrist: pos.Zobrist(), counters: r, depth: depth}
	return r
}

func split(pos *engine.Position, depth, splitDepth int) Counters {
	if depth == 0 || splitDepth == 0 {
		return Perft(pos, depth)
	}
	var r Counters
	for _, move := range pos.GenerateMoves() {
		pos.DoMove(move)
		splitMoves = append(splitMoves, move.String())
		r.add(split(pos, depth-1, splitDepth-1))
		splitMoves = splitMoves[:len(splitMoves)-1]
		pos.UndoMove()
	}
	if len(splitMoves) != 0 {
		fmt.Printf("   %2d %12d %8d %9d %7d split %s\n",
			depth, r.Nodes, r.Captures, r.EnPassant, r.Castles, strings.Join(splitMoves, " "))
	}
	return r
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lshortfile)

	var expected []Counters
	if s, has := known[*fen]; has {
		*fen = s
		expected = PerftFixtures[*fen]
	}
	if *depthFlag != 0 {
		*minDepth = *depthFlag
		*maxDepth = *depthFlag
	}

	fmt.Printf("Searching FEN %q\n", *fen)
	pos, err := engine.ParseFEN(*fen)
	if err != nil {
		log.Fatalln("cannot parse --fen:", err)
	}

	fmt.Printf("depth        nodes   captures enpassant castles   promotions eval  KNps   elapsed\n")
	fmt.Printf("-----+------------+----------+---------+---------+----------+-----+------+-------\n")

	for d := *minDepth; d <= *maxDepth; d++ {
		start := time.Now()
		c := split(pos, d, *splitDepth)
		duration := time.Since(start)

		ok := ""
		if d < len(expected) {
			if c == expected[d] {
				ok = "good"
			} else {
				ok = "bad"
			}
		}

		fmt.Printf("   %2d %12d %10d %9d %9d %10d %-4s %6.f %v\n",
			d, c.Nodes, c.Captures, c.EnPassant, c.Castles, c.Promotions,
			ok, float64(c.Nodes)/duration.Seconds()/1e3, duration)

		if ok == "bad" {
			e := expected[d]
			fmt.Printf("   %2d %12d %10d %9d %9d %10d %s\n",
				d, e.Nodes, e.Captures, e.EnPassant, e.Castles, e.Promotions, "expected")
			break
		}
	}
}
