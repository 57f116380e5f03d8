package search_test

import (
	"testing"

	"github.com/lattice7/fourply/pkg/board"
	"github.com/lattice7/fourply/pkg/search"
	"github.com/stretchr/testify/assert"
)

func TestStaticHeuristicFavorsCenter(t *testing.T) {
	var h search.StaticHeuristic
	center := h.GetValue(3, 3)
	edge := h.GetValue(0, 0)
	assert.Greater(t, center, edge)
}

func TestStaticHeuristicIgnoresIncrease(t *testing.T) {
	var h search.StaticHeuristic
	before := h.GetValue(3, 3)
	h.IncreaseValue(3, 3, 1000)
	assert.Equal(t, before, h.GetValue(3, 3))
}

func TestHistoryHeuristicSeededWithCentralBias(t *testing.T) {
	h := search.NewHistoryHeuristic()
	assert.Greater(t, h.GetValue(3, 0), h.GetValue(0, 0))
	assert.Equal(t, h.GetValue(0, 0), h.GetValue(board.Width-1, 0))
}

func TestHistoryHeuristicIncreaseValueAccumulates(t *testing.T) {
	h := search.NewHistoryHeuristic()
	before := h.GetValue(2, 4)
	h.IncreaseValue(2, 4, 5)
	assert.Equal(t, before+5, h.GetValue(2, 4))
}
