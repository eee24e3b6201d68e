package engine

// between[a][b] is the set of squares strictly between a and b if they
// share a rank, file or diagonal; otherwise empty. Used by the legal move
// generator to build check-block masks and to restrict pinned pieces to
// the ray between the king and the pinning slider.
var between [SquareArraySize][SquareArraySize]Bitboard

var allDirs = [8][2]int{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
}

func init() {
	for a := SquareMinValue; a <= SquareMaxValue; a++ {
		ar, af := a.row(), a.File()
		for _, d := range allDirs {
			bb := Bitboard(0)
			r, f := ar+d[0], af+d[1]
			for onBoard(r, f) {
				b := RankFile(r, f)
				between[a][b] = bb
				bb |= b.Bitboard()
				r, f = r+d[0], f+d[1]
			}
		}
	}
}

// Between returns the squares strictly between a and b along a shared
// rank, file or diagonal, or 0 if a and b are not aligned.
func Between(a, b Square) Bitboard { return between[a][b] }
