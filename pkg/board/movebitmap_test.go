package board_test

import (
	"testing"

	"github.com/lattice7/fourply/pkg/board"
	"github.com/stretchr/testify/assert"
)

func TestMoveBitmapColumns(t *testing.T) {
	p := board.Empty()
	m := p.LegalMoves()
	assert.Equal(t, board.Width, m.CountMoves())
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, m.Columns())
}

func TestMoveBitmapUnsetMove(t *testing.T) {
	p := board.Empty()
	m := p.LegalMoves().UnsetMove(3)
	assert.False(t, m.HasMove(3))
	assert.Equal(t, board.Width-1, m.CountMoves())
}

func TestMoveBitmapLeftHalf(t *testing.T) {
	p := board.Empty()
	half := p.LegalMoves().LeftHalf()
	for x := 0; x < 4; x++ {
		assert.True(t, half.HasMove(x))
	}
	for x := 4; x < board.Width; x++ {
		assert.False(t, half.HasMove(x))
	}
}
