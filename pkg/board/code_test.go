package board_test

import (
	"testing"

	"github.com/lattice7/fourply/pkg/board"
	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	positions := []string{"", "4", "436675553", "2233441", "4455667"}
	for _, variation := range positions {
		p := drop(t, variation)
		code := p.Code()

		current, other := board.Decode(code)
		assert.Equal(t, p.Current, current)
		assert.Equal(t, p.Other, other)

		// to_position_code(from_position_code(to_position_code(p))) == to_position_code(p)
		roundTripped := board.FromCode(code).Code()
		assert.Equal(t, code, roundTripped)
	}
}

func TestIsValidCode(t *testing.T) {
	p := drop(t, "436675553")
	assert.True(t, board.IsValidCode(p.Code()))
	assert.False(t, board.IsValidCode(board.PositionCode(0)))
}

func TestCodeFlip(t *testing.T) {
	p := drop(t, "4")
	assert.Equal(t, p.Flip().Code(), p.Code().Flip())
	assert.Equal(t, p.Code(), p.Code().Flip().Flip())
}

func TestNormalizeIsMinOfBothOrientations(t *testing.T) {
	p := drop(t, "23")
	code, flipped := p.Code(), p.Code().Flip()

	want := code
	if flipped < code {
		want = flipped
	}
	assert.Equal(t, want, code.Normalize())
}

func TestEmptyBoardIsSymmetric(t *testing.T) {
	assert.True(t, board.Empty().Code().IsSymmetric())
}
