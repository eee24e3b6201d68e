package engine

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math/rand"
	"sort"

	"golang.org/x/exp/slices"
)

// bookEntry is one 16-byte Polyglot book record, in the order and widths
// of the published format: an 8-byte big-endian Polyglot key, a 2-byte
// big-endian packed move, a 2-byte weight and a 4-byte learn field (the
// last is read but unused, as no search here writes it back).
type bookEntry struct {
	Key    uint64
	Move   uint16
	Weight uint16
	Learn  uint32
}

// Book is a loaded, key-sorted Polyglot opening book.
type Book struct {
	entries []bookEntry
}

// LoadBook reads a .bin Polyglot book from r. Records are byte-swapped
// from their on-disk big-endian form and then sorted ascending by key, so
// Probe can binary-search for a key's run of matching entries, the same
// layout real Polyglot readers rely on.
func LoadBook(r io.Reader) (*Book, error) {
	br := bufio.NewReader(r)
	b := &Book{}
	var raw [16]byte
	for {
		if _, err := io.ReadFull(br, raw[:]); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("book: %v", err)
		}
		b.entries = append(b.entries, bookEntry{
			Key:    binary.BigEndian.Uint64(raw[0:8]),
			Move:   binary.BigEndian.Uint16(raw[8:10]),
			Weight: binary.BigEndian.Uint16(raw[10:12]),
			Learn:  binary.BigEndian.Uint32(raw[12:16]),
		})
	}
	slices.SortFunc(b.entries, func(a, c bookEntry) int {
		switch {
		case a.Key < c.Key:
			return -1
		case a.Key > c.Key:
			return 1
		}
		return 0
	})
	return b, nil
}

// lowerBoundByKey returns the index of the first entry with Key >= key.
func (b *Book) lowerBoundByKey(key uint64) int {
	return sort.Search(len(b.entries), func(i int) bool { return b.entries[i].Key >= key })
}

// candidates returns the contiguous run of entries matching key.
func (b *Book) candidates(key uint64) []bookEntry {
	i := b.lowerBoundByKey(key)
	j := i
	for j < len(b.entries) && b.entries[j].Key == key {
		j++
	}
	return b.entries[i:j]
}

var polyglotPromotion = [5]Figure{NoFigure, Knight, Bishop, Rook, Queen}

// decodeBookMove unpacks a Polyglot move word into from/to squares and a
// promotion figure (NoFigure if none), in the published bit layout: to
// file in bits 0-2, to rank in bits 3-5, from file in bits 6-8, from rank
// in bits 9-11, promotion piece in bits 12-14.
func decodeBookMove(packed uint16) (from, to Square, promoted Figure) {
	toFile := int(packed & 0x7)
	toRank := int((packed >> 3) & 0x7)
	fromFile := int((packed >> 6) & 0x7)
	fromRank := int((packed >> 9) & 0x7)
	promo := int((packed >> 12) & 0x7)
	from = RankFile(7-fromRank, fromFile)
	to = RankFile(7-toRank, toFile)
	if promo >= 1 && promo <= 4 {
		promoted = polyglotPromotion[promo]
	}
	return from, to, promoted
}

// Probe returns a book move for pos chosen by weighted random sampling
// among every candidate sharing pos's Polyglot key, or ok == false if the
// book has no entry for pos or none of its candidates decode to an
// actually legal move (Polyglot's from/to/promotion triple is matched
// against the position's own legal move list, so Captured and Flags come
// from the generator, not the book).
func (b *Book) Probe(pos *Position, rng *rand.Rand) (move Move, ok bool) {
	candidates := b.candidates(PolyglotKey(pos))
	if len(candidates) == 0 {
		return Move{}, false
	}

	legal := pos.GenerateMoves()
	type match struct {
		mv     Move
		weight int
	}
	var matches []match
	var totalWeight int
	for _, c := range candidates {
		from, to, promoted := decodeBookMove(c.Move)
		for _, lm := range legal {
			if lm.From == from && lm.To == to && lm.PromotedPiece == promoted {
				weight := int(c.Weight)
				if weight == 0 {
					weight = 1
				}
				matches = append(matches, match{lm, weight})
				totalWeight += weight
				break
			}
		}
	}
	if len(matches) == 0 {
		return Move{}, false
	}

	pick := rng.Intn(totalWeight)
	for _, m := range matches {
		if pick < m.weight {
			return m.mv, true
		}
		pick -= m.weight
	}
	return matches[len(matches)-1].mv, true
}
