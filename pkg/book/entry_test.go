package book

import (
	"testing"

	"github.com/lattice7/fourply/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryPacksAndUnpacksCodeAndScore(t *testing.T) {
	p, err := board.FromVariation("443")
	require.NoError(t, err)
	code := p.NormalizedCode()

	e := NewEntry(code, board.Win)
	assert.Equal(t, code, e.Code())
	assert.Equal(t, board.Win, e.Score())
}

func TestEntryOrderingIsByCodeNotRawWord(t *testing.T) {
	p, err := board.FromVariation("44")
	require.NoError(t, err)
	code := p.NormalizedCode()

	// A Win-scored entry packs a nonzero value into the top 3 bits; if callers ever compared raw
	// Entry words instead of Code(), this would sort above a Loss-scored entry of a numerically
	// smaller code. Code() strips those bits back off.
	low := NewEntry(code, board.Loss)
	high := NewEntry(code, board.Win)
	assert.Less(t, uint64(low), uint64(high))
	assert.Equal(t, low.Code(), high.Code())
}

func TestFormatAndParseHexLineRoundTrip(t *testing.T) {
	p, err := board.FromVariation("112233")
	require.NoError(t, err)
	code := p.NormalizedCode()

	line := formatHex(code, board.DrawOrWin)
	gotCode, gotScore, err := parseHexLine(line)
	require.NoError(t, err)
	assert.Equal(t, code, gotCode)
	assert.Equal(t, board.DrawOrWin, gotScore)
}

func TestParseHexLineRejectsUnknownScore(t *testing.T) {
	p, err := board.FromVariation("4")
	require.NoError(t, err)
	line := formatHex(p.NormalizedCode(), board.Draw)
	line = line[:16] + "?"
	_, _, err = parseHexLine(line)
	assert.Error(t, err)
}

func TestParseHexLineRejectsWrongLength(t *testing.T) {
	p, err := board.FromVariation("4")
	require.NoError(t, err)
	line := formatHex(p.NormalizedCode(), board.Draw) + "="
	_, _, err = parseHexLine(line)
	assert.Error(t, err)
}

func TestParseVerboseLineParsesGridAndCharScore(t *testing.T) {
	p, err := board.FromVariation("443")
	require.NoError(t, err)

	line := verboseGrid(t, p) + " " + string(board.Win.Char())
	code, score, err := parseVerboseLine(line)
	require.NoError(t, err)
	assert.Equal(t, p.NormalizedCode(), code)
	assert.Equal(t, board.Win, score)
}

func TestParseVerboseLineParsesWordScoreCaseInsensitive(t *testing.T) {
	p, err := board.FromVariation("443")
	require.NoError(t, err)

	line := verboseGrid(t, p) + " loss"
	_, score, err := parseVerboseLine(line)
	require.NoError(t, err)
	assert.Equal(t, board.Loss, score)
}

func TestParseVerboseLineStripsCommas(t *testing.T) {
	p, err := board.FromVariation("4")
	require.NoError(t, err)

	grid := verboseGrid(t, p)
	var withCommas string
	for i, r := range grid {
		if i > 0 {
			withCommas += ","
		}
		withCommas += string(r)
	}
	line := withCommas + ",Draw"
	code, score, err := parseVerboseLine(line)
	require.NoError(t, err)
	assert.Equal(t, p.NormalizedCode(), code)
	assert.Equal(t, board.Draw, score)
}

func TestParseLineAutodetectsHexVsVerbose(t *testing.T) {
	p, err := board.FromVariation("33")
	require.NoError(t, err)

	hexLine := formatHex(p.NormalizedCode(), board.Win)
	code, score, err := parseLine(hexLine)
	require.NoError(t, err)
	assert.Equal(t, p.NormalizedCode(), code)
	assert.Equal(t, board.Win, score)

	verboseLine := verboseGrid(t, p) + " win"
	code, score, err = parseLine(verboseLine)
	require.NoError(t, err)
	assert.Equal(t, p.NormalizedCode(), code)
	assert.Equal(t, board.Win, score)
}

// verboseGrid renders p as the verbose format's W*H character cells, column-major from
// top-left, without a trailing score token.
func verboseGrid(t *testing.T, p board.Position) string {
	t.Helper()
	var sb []byte
	for x := 0; x < board.Width; x++ {
		for y := board.Height - 1; y >= 0; y-- {
			switch {
			case p.Current&board.CellBit(x, y) != 0:
				sb = append(sb, 'X')
			case p.Other&board.CellBit(x, y) != 0:
				sb = append(sb, 'O')
			default:
				sb = append(sb, 'b')
			}
		}
	}
	return string(sb)
}
