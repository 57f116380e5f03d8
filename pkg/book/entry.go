// Package book implements the opening book: a sorted, binary-searchable array of precomputed
// scores keyed by normalized position code, its on-disk hex/verbose/binary formats, and the
// tree-exploration and worker-pool machinery that generates one.
package book

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lattice7/fourply/pkg/board"
)

// scoreShift puts the 3-bit score in the top of the word, leaving the low 61 bits for the
// position code (49 bits wide, well clear of the boundary).
const scoreShift = 64 - 3

const scoreMask = uint64(0b111) << scoreShift

// Entry packs a normalized position code and its solved score into one 64-bit word. Ordering is
// by Code alone: comparing Entry values directly would let the score bits, sitting above the
// code, dominate the comparison.
type Entry uint64

// NewEntry packs code and score into an Entry.
func NewEntry(code board.PositionCode, score board.Score) Entry {
	return Entry(uint64(code) | uint64(score)<<scoreShift)
}

// Code returns the packed position code.
func (e Entry) Code() board.PositionCode {
	return board.PositionCode(uint64(e) &^ scoreMask)
}

// Score returns the packed score.
func (e Entry) Score() board.Score {
	return board.Score(uint64(e) >> scoreShift)
}

// formatHex renders the text hex line for (code, score): 16 hex digits of the plain position
// code, followed by one score character. This is distinct from the packed Entry word -- the text
// format keeps code and score visually separate rather than bit-packed.
func formatHex(code board.PositionCode, score board.Score) string {
	return fmt.Sprintf("%016X%c", uint64(code), score.Char())
}

// parseHexLine parses a hex-format book line: exactly 16 hex digits followed by one score
// character.
func parseHexLine(line string) (board.PositionCode, board.Score, error) {
	if len(line) != 17 {
		return 0, 0, fmt.Errorf("invalid book line: '%v'", line)
	}
	n, err := strconv.ParseUint(line[:16], 16, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid book line: '%v'", line)
	}
	code := board.PositionCode(n)
	if !board.IsValidCode(code) {
		return 0, 0, fmt.Errorf("invalid position code in book line: '%v'", line)
	}
	score, err := board.ScoreFromChar(rune(line[16]))
	if err != nil || score == board.Unknown {
		return 0, 0, fmt.Errorf("invalid score in book line: '%v'", line)
	}
	return code, score, nil
}

var verboseScoreWords = map[string]board.Score{
	"win":  board.Win,
	"loss": board.Loss,
	"draw": board.Draw,
}

// parseVerboseLine parses a verbose-format book line: W*H cells (commas stripped) over
// {X,x,O,o,b,space} column-major from top-left, followed by optional whitespace and a score token -- one
// character, or one of "Win"/"Loss"/"Draw" case-insensitive.
func parseVerboseLine(line string) (board.PositionCode, board.Score, error) {
	cells := strings.ReplaceAll(line, ",", "")
	size := board.Width * board.Height
	if len(cells) <= size {
		return 0, 0, fmt.Errorf("invalid book line: '%v'", line)
	}

	var current, other board.Bitboard
	for i := 0; i < size; i++ {
		x, y := i/board.Height, board.Height-1-i%board.Height
		switch cells[i] {
		case 'X', 'x':
			current |= board.CellBit(x, y)
		case 'O', 'o':
			other |= board.CellBit(x, y)
		case 'b', ' ':
			// empty cell
		default:
			return 0, 0, fmt.Errorf("invalid book line: '%v'", line)
		}
	}

	rest := strings.TrimSpace(cells[size:])
	if rest == "" {
		return 0, 0, fmt.Errorf("invalid book line: '%v'", line)
	}

	score, ok := verboseScoreWords[strings.ToLower(rest)]
	if !ok {
		s, err := board.ScoreFromChar(rune(rest[0]))
		if err != nil || s == board.Unknown {
			return 0, 0, fmt.Errorf("invalid score in book line: '%v'", line)
		}
		score = s
	}

	code := board.Position{Current: current, Other: other}.NormalizedCode()
	return code, score, nil
}

// parseLine autodetects the hex vs. verbose format and parses a single non-blank book line.
func parseLine(line string) (board.PositionCode, board.Score, error) {
	if len(line) == 17 && isHexCode(line[:16]) {
		return parseHexLine(line)
	}
	return parseVerboseLine(line)
}

func isHexCode(s string) bool {
	_, err := strconv.ParseUint(s, 16, 64)
	return err == nil
}
