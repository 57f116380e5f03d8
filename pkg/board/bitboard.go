// Package board implements the Connect Four bitboard representation: encoding a position as
// a pair of 64-bit integers, detecting alignments, and the primitives the search engine builds
// on (drops, threats, legal moves, the canonical position code).
package board

import "math/bits"

// Bitboard is a bit-wise representation of one player's discs on the board. Column x occupies
// bits [x*BitHeight, x*BitHeight+Height); the bit at x*BitHeight+Height is that column's
// "gutter" bit and is always zero in a legal single-player board.
type Bitboard uint64

const (
	// Width is the number of columns.
	Width = 7
	// Height is the number of rows.
	Height = 6
	// BitHeight is the number of bits reserved per column, including the gutter bit.
	BitHeight = Height + 1
	// PositionBits is the number of bits needed to encode a position.
	PositionBits = BitHeight * Width
)

const (
	allBits Bitboard = (1 << PositionBits) - 1

	// FirstColumn is a mask for column 0, including its gutter bit.
	FirstColumn Bitboard = (1 << BitHeight) - 1
	// BottomRow has one bit set at the bottom of every column.
	BottomRow Bitboard = allBits / FirstColumn
	// GutterRow has one bit set at the gutter of every column.
	GutterRow Bitboard = BottomRow << Height
	// FullBoard masks every playable cell, excluding the gutter row.
	FullBoard Bitboard = allBits ^ GutterRow
	// LeftHalf masks the leftmost four columns (0..3), used to restrict symmetric search.
	LeftHalf Bitboard = FirstColumn | FirstColumn<<BitHeight | FirstColumn<<(2*BitHeight) | FirstColumn<<(3*BitHeight)

	// OddRows and EvenRows mark alternating rows of every column.
	OddRows  Bitboard = BottomRow * 0b010101
	EvenRows Bitboard = BottomRow * 0b101010
)

// directionShifts are the four bit shifts corresponding to vertical, horizontal, and the two
// diagonal directions. A pair of bits s apart along one of these shifts lie on a line.
var directionShifts = [4]uint{1, BitHeight, BitHeight - 1, BitHeight + 1}

// HasWon reports whether the board has four discs aligned vertically, horizontally, or along
// either diagonal.
func (b Bitboard) HasWon() bool {
	for _, s := range directionShifts {
		m := b & (b >> s)
		if m&(m>>(2*s)) != 0 {
			return true
		}
	}
	return false
}

// WonCells returns every cell that participates in some four-in-a-row alignment. Used for
// display; never called on the search hot path.
func (b Bitboard) WonCells() Bitboard {
	type delta struct{ dx, dy int }
	dirs := [4]delta{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

	var cells Bitboard
	for x := 0; x < Width; x++ {
		for y := 0; y < Height; y++ {
			if !b.hasDisc(x, y) {
				continue
			}
			for _, d := range dirs {
				var run Bitboard
				ok := true
				for i := 0; i < 4; i++ {
					cx, cy := x+d.dx*i, y+d.dy*i
					if cx < 0 || cx >= Width || cy < 0 || cy >= Height || !b.hasDisc(cx, cy) {
						ok = false
						break
					}
					run |= cellBit(cx, cy)
				}
				if ok {
					cells |= run
				}
			}
		}
	}
	return cells
}

func (b Bitboard) hasDisc(x, y int) bool {
	return b&cellBit(x, y) != 0
}

func cellBit(x, y int) Bitboard {
	return 1 << (BitHeight*x + y)
}

// CellBit returns the bit for column x, row y. Exported for callers outside the package that
// need to build a Bitboard from an explicit grid, e.g. a book file's verbose text format.
func CellBit(x, y int) Bitboard {
	return cellBit(x, y)
}

func columnMask(column int) Bitboard {
	return FirstColumn << (BitHeight * column)
}

// heightBit returns the bit of the lowest empty cell of the given column, or its gutter bit if
// the column is already full.
func heightBit(current, other Bitboard, column int) Bitboard {
	return ((current | other) + BottomRow) & columnMask(column)
}

// heightCells returns, for every column simultaneously, the bit of its lowest empty cell.
func heightCells(current, other Bitboard) Bitboard {
	return (current | other) + BottomRow
}

// ColumnHeight returns the number of discs played in the given column.
func ColumnHeight(current, other Bitboard, column int) int {
	return bits.OnesCount64(uint64((current | other) & columnMask(column)))
}

// CanDrop reports whether column has room for another disc.
func CanDrop(current, other Bitboard, column int) bool {
	return heightBit(current, other, column)&GutterRow == 0
}

// Drop returns the board obtained by dropping current's next disc into column. The caller must
// check CanDrop first; dropping into a full column corrupts the board (sets a gutter bit).
func Drop(current, other Bitboard, column int) Bitboard {
	return current | heightBit(current, other, column)
}

// ThreatCells returns, for every direction, the cells that would complete a four-in-a-row for
// the player owning b -- whether the gap sits above, below, or inside an existing run of three.
// Does not check occupancy; callers mask against emptiness and the opponent's board themselves.
// Grounded on the standard "winning position" shift-and-mask trick (a Go rendition of Pascal
// Pons' algorithm appears verbatim in the pack's compute_winning_position).
func ThreatCells(b Bitboard) Bitboard {
	var r Bitboard
	for _, s := range directionShifts {
		p := (b << s) & (b << (2 * s))
		r |= p & (b << (3 * s))
		r |= p & (b >> s)

		p = (b >> s) & (b >> (2 * s))
		r |= p & (b << s)
		r |= p & (b >> (3 * s))
	}
	return r &^ GutterRow
}

// GetImmediateWins returns the drop sites where current would win immediately.
func GetImmediateWins(current, other Bitboard) Bitboard {
	return ThreatCells(current) & heightCells(current, other)
}

// GetThreats returns every empty cell -- playable now or not -- where current would complete a
// four-in-a-row.
func GetThreats(current, other Bitboard) Bitboard {
	return ThreatCells(current) & (FullBoard ^ (current | other))
}

// CountThreats returns the number of cells where current would complete a four-in-a-row.
func CountThreats(current, other Bitboard) int {
	return bits.OnesCount64(uint64(GetThreats(current, other)))
}

// GetLegalMoves returns the drop destination of every non-full column.
func GetLegalMoves(current, other Bitboard) Bitboard {
	return heightCells(current, other) & FullBoard
}

// GetUnblockedMoves returns the legal moves that do not hand the opponent an immediate win
// directly above the dropped disc. quick_evaluate refines this further for the
// single-forced-reply case.
func GetUnblockedMoves(current, other Bitboard) Bitboard {
	legal := GetLegalMoves(current, other)
	enemyThreats := GetThreats(other, current)
	return legal &^ (enemyThreats >> 1)
}

// KeepLowestOrGutter returns, per column, only the lowest set bit of b, or the gutter bit if the
// column has none set.
func KeepLowestOrGutter(b Bitboard) Bitboard {
	helper := b | GutterRow
	return helper & (^helper + BottomRow)
}

// Flip mirrors the board horizontally, column by column.
func Flip(b Bitboard) Bitboard {
	var r Bitboard
	for x := 0; x < Width; x++ {
		col := (b >> (BitHeight * x)) & FirstColumn
		r |= col << (BitHeight * (Width - 1 - x))
	}
	return r
}

// Silhouette saturates every column downward from its highest set bit, filling every bit below
// it. Used to recover a position from its canonical code.
func Silhouette(b Bitboard) Bitboard {
	var r Bitboard
	for x := 0; x < Width; x++ {
		col := (b >> (BitHeight * x)) & FirstColumn
		col |= col >> 1
		col |= col >> 2
		col |= col >> 4
		r |= (col & FirstColumn) << (BitHeight * x)
	}
	return r
}
