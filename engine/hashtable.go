package engine

import "unsafe"

var (
	// DefaultHashTableSizeMB is the default size in MB.
	DefaultHashTableSizeMB = 64
	// GlobalHashTable is the global transposition table.
	GlobalHashTable *HashTable
)

// hashFlags records whether a stored score is exact or a bound, the same
// three-way distinction the teacher's hash_table.go uses, renumbered so
// that the zero value never occurs for a real entry (see slot, below).
type hashFlags uint8

const (
	exact      hashFlags = 1 // exact score is known
	lowerBound hashFlags = 2 // search failed high: score is a lower bound
	upperBound hashFlags = 3 // search failed low: score is an upper bound
)

// isInBounds reports whether an entry stored with flags/score can be used
// as-is against the window (alpha, beta), instead of only as a move hint.
func isInBounds(flags hashFlags, alpha, beta, score int32) bool {
	switch flags {
	case exact:
		return true
	case lowerBound:
		return score >= beta
	case upperBound:
		return score <= alpha
	}
	return false
}

// hashMove packs the part of a Move worth storing in 16 bits: From (6
// bits), To (6 bits) and PromotedPiece (3 bits, 0 meaning none). Piece and
// Captured are not stored; the search recovers them by matching From/To/
// PromotedPiece against the current position's legal move list.
type hashMove uint16

func encodeHashMove(m Move) hashMove {
	if m.IsNull() {
		return 0
	}
	return hashMove(uint16(m.From)&0x3f | (uint16(m.To)&0x3f)<<6 | uint16(m.PromotedPiece)<<12)
}

func (hm hashMove) from() Square     { return Square(hm & 0x3f) }
func (hm hashMove) to() Square       { return Square((hm >> 6) & 0x3f) }
func (hm hashMove) promoted() Figure { return Figure((hm >> 12) & 0x7) }

// hashData is the packed 64-bit payload of one transposition table slot:
// score:16 | depth:8 | flags:2 | move:16, left-padded with unused bits, as
// specified for the lockless single-slot scheme.
type hashData uint64

const (
	hdMoveShift  = 0
	hdFlagsShift = 16
	hdDepthShift = 18
	hdScoreShift = 26
)

func packHashData(move hashMove, flags hashFlags, depth int8, score int32) hashData {
	return hashData(uint64(move)<<hdMoveShift |
		uint64(flags)<<hdFlagsShift |
		uint64(uint8(depth))<<hdDepthShift |
		uint64(uint16(int16(score)))<<hdScoreShift)
}

func (d hashData) move() hashMove   { return hashMove(d >> hdMoveShift) }
func (d hashData) flags() hashFlags { return hashFlags((d >> hdFlagsShift) & 0x3) }
func (d hashData) depth() int8      { return int8(uint8(d >> hdDepthShift)) }
func (d hashData) score() int32     { return int32(int16(uint16(d >> hdScoreShift))) }

// slot is one lockless transposition table entry: key is always zobrist
// XOR data, so a torn read under concurrent writes almost certainly fails
// the key == storedKey^storedData check on probe, rather than returning a
// corrupted move or score. data == 0 is the designated empty marker; a
// genuine stored entry always has a nonzero hashFlags (exact/lowerBound/
// upperBound are all non-zero), so it can never be mistaken for empty.
type slot struct {
	key  uint64
	data hashData
}

// HashTable is a lockless, single-slot-per-index transposition table.
type HashTable struct {
	table []slot
	mask  uint32
}

// NewHashTable builds a transposition table sized to at most hashSizeMB
// megabytes, rounded down to a power of two number of slots.
func NewHashTable(hashSizeMB int) *HashTable {
	slotSize := uint64(unsafe.Sizeof(slot{}))
	numSlots := uint64(hashSizeMB) << 20 / slotSize
	for numSlots&(numSlots-1) != 0 {
		numSlots &= numSlots - 1
	}
	if numSlots == 0 {
		numSlots = 1
	}
	return &HashTable{
		table: make([]slot, numSlots),
		mask:  uint32(numSlots - 1),
	}
}

// Size returns the number of slots in the table.
func (ht *HashTable) Size() int { return int(ht.mask) + 1 }

func (ht *HashTable) index(zobrist uint64) uint32 { return uint32(zobrist) & ht.mask }

// put stores an entry for zobrist, depth-preferred: an existing entry,
// whether from the same key or a collision, is only overwritten by one
// searched at least as deep; the only exemption is an empty slot.
func (ht *HashTable) put(zobrist uint64, move hashMove, flags hashFlags, depth int8, score int32) {
	i := ht.index(zobrist)
	cur := &ht.table[i]
	if cur.data != 0 && cur.data.depth() > depth {
		return
	}
	data := packHashData(move, flags, depth, score)
	cur.data = data
	cur.key = zobrist ^ uint64(data)
}

// get looks up zobrist, returning ok == false if the slot is empty or
// holds a different key (either a genuine miss or, extremely rarely, a
// benign SMP-style torn read).
func (ht *HashTable) get(zobrist uint64) (data hashData, ok bool) {
	s := ht.table[ht.index(zobrist)]
	if s.data == 0 {
		return 0, false
	}
	if s.key^uint64(s.data) != zobrist {
		return 0, false
	}
	return s.data, true
}

// Clear removes all entries from the table.
func (ht *HashTable) Clear() {
	for i := range ht.table {
		ht.table[i] = slot{}
	}
}

func init() {
	GlobalHashTable = NewHashTable(DefaultHashTableSizeMB)
}
