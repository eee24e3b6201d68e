package engine

import "testing"

func TestHashTableSizeIsPowerOfTwo(t *testing.T) {
	ht := NewHashTable(1)
	size := ht.Size()
	if size&(size-1) != 0 {
		t.Errorf("Size() = %d, not a power of two", size)
	}
	if size == 0 {
		t.Errorf("Size() = 0")
	}
}

func TestHashTablePutGet(t *testing.T) {
	ht := NewHashTable(1)
	m := encodeHashMove(Move{From: RankFile(6, 4), To: RankFile(4, 4)})
	ht.put(0x1234, m, exact, 5, 100)

	data, ok := ht.get(0x1234)
	if !ok {
		t.Fatal("get() reported a miss right after put()")
	}
	if data.move() != m {
		t.Errorf("move() = %v, want %v", data.move(), m)
	}
	if data.flags() != exact {
		t.Errorf("flags() = %v, want exact", data.flags())
	}
	if data.depth() != 5 {
		t.Errorf("depth() = %d, want 5", data.depth())
	}
	if data.score() != 100 {
		t.Errorf("score() = %d, want 100", data.score())
	}
}

func TestHashTableGetMiss(t *testing.T) {
	ht := NewHashTable(1)
	if _, ok := ht.get(0xdeadbeef); ok {
		t.Errorf("get() on an empty table reported a hit")
	}
}

func TestHashTableClear(t *testing.T) {
	ht := NewHashTable(1)
	ht.put(0x1234, 0, exact, 1, 1)
	ht.Clear()
	if _, ok := ht.get(0x1234); ok {
		t.Errorf("get() found an entry after Clear()")
	}
}

func TestHashTableDepthPreferredReplacement(t *testing.T) {
	ht := NewHashTable(1)
	// Force a collision: fabricate two distinct keys that index the same
	// slot by sharing the same low bits the mask selects on.
	mask := uint64(ht.Size() - 1)
	keyA := mask
	keyB := mask | (1 << 40)
	if ht.index(keyA) != ht.index(keyB) {
		t.Fatalf("test setup: keyA/keyB do not collide")
	}

	ht.put(keyA, 0, exact, 10, 1)
	ht.put(keyB, 0, exact, 2, 2) // shallower: must not evict A
	if data, ok := ht.get(keyA); !ok || data.score() != 1 {
		t.Errorf("shallower store evicted a deeper entry")
	}

	ht.put(keyB, 0, exact, 20, 3) // deeper: evicts A
	if _, ok := ht.get(keyA); ok {
		t.Errorf("deeper store of a colliding key did not evict the shallower entry")
	}
	if data, ok := ht.get(keyB); !ok || data.score() != 3 {
		t.Errorf("get(keyB) after the deeper store = (%v, %v), want (score 3, true)", data, ok)
	}
}

func TestHashTablePutSameKeyStillDepthPreferred(t *testing.T) {
	ht := NewHashTable(1)
	ht.put(0x1234, 0, exact, 4, 1)
	ht.put(0x1234, 0, exact, 2, 2) // same key, shallower: must not overwrite
	if data, ok := ht.get(0x1234); !ok || data.depth() != 4 || data.score() != 1 {
		t.Errorf("get(0x1234) = (%v, %v), want the depth-4 entry retained", data, ok)
	}

	ht.put(0x1234, 0, exact, 6, 3) // same key, deeper: must overwrite
	if data, ok := ht.get(0x1234); !ok || data.depth() != 6 || data.score() != 3 {
		t.Errorf("get(0x1234) after a deeper same-key store = (%v, %v), want the depth-6 entry", data, ok)
	}
}

func TestIsInBounds(t *testing.T) {
	cases := []struct {
		flags       hashFlags
		alpha, beta int32
		score       int32
		want        bool
	}{
		{exact, 0, 100, 50, true},
		{lowerBound, 0, 100, 150, true},
		{lowerBound, 0, 100, 50, false},
		{upperBound, 0, 100, -50, true},
		{upperBound, 0, 100, 50, false},
	}
	for _, c := range cases {
		if got := isInBounds(c.flags, c.alpha, c.beta, c.score); got != c.want {
			t.Errorf("isInBounds(%v, %d, %d, %d) = %v, want %v",
				c.flags, c.alpha, c.beta, c.score, got, c.want)
		}
	}
}

func TestEncodeHashMoveRoundTrip(t *testing.T) {
	m := Move{From: RankFile(1, 4), To: RankFile(0, 4), PromotedPiece: Queen}
	hm := encodeHashMove(m)
	if hm.from() != m.From || hm.to() != m.To || hm.promoted() != m.PromotedPiece {
		t.Errorf("round trip mismatch: got from=%v to=%v promoted=%v", hm.from(), hm.to(), hm.promoted())
	}
}

func TestEncodeHashMoveNull(t *testing.T) {
	if got := encodeHashMove(Move{}); got != 0 {
		t.Errorf("encodeHashMove(null) = %v, want 0", got)
	}
}
