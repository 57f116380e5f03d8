package board

import (
	"fmt"
	"strings"
)

// Position is an ordered pair of bitboards -- current (the side to move) and other -- plus the
// ply count. It is a plain value type, freely copied. Contains the same information as a
// PositionCode but in a format that is cheaper to manipulate during search.
type Position struct {
	Current, Other Bitboard
	Ply            int
}

// Empty returns the starting position.
func Empty() Position {
	return Position{}
}

// FromVariation replays a string of column tokens from the empty position. Each token is a
// 1-based digit (1..Width) or an ASCII letter (A.. / a..) mapped to a column index. Fails on an
// out-of-range or illegal-at-that-point token.
func FromVariation(variation string) (Position, error) {
	p := Empty()
	for i, r := range strings.TrimSpace(variation) {
		col, err := columnFromToken(r)
		if err != nil {
			return Position{}, fmt.Errorf("invalid variation: token %d: %v", i, err)
		}
		if !p.CanDrop(col) {
			return Position{}, fmt.Errorf("invalid variation: token %d: column %d is full", i, col+1)
		}
		p = p.Drop(col)
	}
	return p, nil
}

func columnFromToken(r rune) (int, error) {
	switch {
	case r >= '1' && r <= '9':
		col := int(r-'1')
		if col >= Width {
			return 0, fmt.Errorf("column out of range: '%v'", string(r))
		}
		return col, nil
	case r >= 'A' && r <= 'Z':
		col := int(r - 'A')
		if col >= Width {
			return 0, fmt.Errorf("column out of range: '%v'", string(r))
		}
		return col, nil
	case r >= 'a' && r <= 'z':
		col := int(r - 'a')
		if col >= Width {
			return 0, fmt.Errorf("column out of range: '%v'", string(r))
		}
		return col, nil
	default:
		return 0, fmt.Errorf("invalid column token: '%v'", string(r))
	}
}

// CanDrop reports whether column has room for another disc.
func (p Position) CanDrop(column int) bool {
	return CanDrop(p.Current, p.Other, column)
}

// Drop plays column and returns the resulting position, with current and other swapped (it is
// now the other player's turn). The caller must check CanDrop first.
func (p Position) Drop(column int) Position {
	return Position{
		Current: p.Other,
		Other:   Drop(p.Current, p.Other, column),
		Ply:     p.Ply + 1,
	}
}

// HasWon reports whether either player already has four in a row.
func (p Position) HasWon() bool {
	return p.Current.HasWon() || p.Other.HasWon()
}

// LegalMoves returns the drop destination of every non-full column.
func (p Position) LegalMoves() MoveBitmap {
	return MoveBitmap(GetLegalMoves(p.Current, p.Other))
}

// UnblockedMoves returns the legal moves that do not hand the opponent an immediate win directly
// above.
func (p Position) UnblockedMoves() MoveBitmap {
	return MoveBitmap(GetUnblockedMoves(p.Current, p.Other))
}

// ImmediateWins returns the drop sites where current wins immediately.
func (p Position) ImmediateWins() MoveBitmap {
	return MoveBitmap(GetImmediateWins(p.Current, p.Other))
}

// FlipSides swaps current and other, without touching the board geometry. Used to evaluate a
// position from the opponent's perspective.
func (p Position) FlipSides() Position {
	return Position{Current: p.Other, Other: p.Current, Ply: p.Ply}
}

// Flip mirrors the board horizontally. Ply is unaffected.
func (p Position) Flip() Position {
	return Position{Current: Flip(p.Current), Other: Flip(p.Other), Ply: p.Ply}
}

// Code returns the canonical position code.
func (p Position) Code() PositionCode {
	return Encode(p.Current, p.Other)
}

// NormalizedCode returns the position's canonical symmetry-class representative.
func (p Position) NormalizedCode() PositionCode {
	return p.Code().Normalize()
}

// IsSymmetric reports whether the position is its own mirror image.
func (p Position) IsSymmetric() bool {
	return p.Code().IsSymmetric()
}

// FromCode reconstructs a Position from a position code. Ply is derived from the disc count,
// since a code does not carry it directly.
func FromCode(code PositionCode) Position {
	current, other := Decode(code)
	ply := popcount(current) + popcount(other)
	return Position{Current: current, Other: other, Ply: ply}
}

func popcount(b Bitboard) int {
	n := 0
	for b != 0 {
		b &= b - 1
		n++
	}
	return n
}

// Hex returns the 16 hex digit encoding of the position's canonical code.
func (p Position) Hex() string {
	return fmt.Sprintf("%016X", uint64(p.Code()))
}

// FromHex parses a 16 hex digit position code, as produced by Hex.
func FromHex(s string) (Position, error) {
	if len(s) != 16 {
		return Position{}, fmt.Errorf("invalid hex position code: '%v'", s)
	}
	var v uint64
	if _, err := fmt.Sscanf(s, "%016X", &v); err != nil {
		return Position{}, fmt.Errorf("invalid hex position code: '%v'", s)
	}
	code := PositionCode(v)
	if !IsValidCode(code) {
		return Position{}, fmt.Errorf("invalid position code: '%v'", s)
	}
	return FromCode(code), nil
}

// whiteBoard returns the bitboards in (white, red) order: white is the player with more-or-equal
// discs, i.e. current when ply is even (equal counts), other when ply is odd (other just moved
// and has one more disc than current).
func (p Position) whiteBoard() (white, red Bitboard) {
	if p.Ply%2 == 0 {
		return p.Current, p.Other
	}
	return p.Other, p.Current
}

// String renders an ASCII dump: Height lines of Width characters, row 0 printed last. 'X' is the
// player with more-or-equal discs, 'O' the other, '.' empty.
func (p Position) String() string {
	white, red := p.whiteBoard()

	var sb strings.Builder
	for y := Height - 1; y >= 0; y-- {
		for x := 0; x < Width; x++ {
			switch {
			case white&cellBit(x, y) != 0:
				sb.WriteRune('X')
			case red&cellBit(x, y) != 0:
				sb.WriteRune('O')
			default:
				sb.WriteRune('.')
			}
		}
		if y > 0 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}
