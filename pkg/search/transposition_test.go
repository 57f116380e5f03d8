package search_test

import (
	"context"
	"testing"

	"github.com/lattice7/fourply/pkg/board"
	"github.com/lattice7/fourply/pkg/search"
	"github.com/stretchr/testify/assert"
)

func TestTranspositionTableRememberStoredValue(t *testing.T) {
	ctx := context.Background()
	tt := search.NewTranspositionTable(ctx, 1021)

	assert.Equal(t, board.Unknown, tt.Fetch(board.PositionCode(1000)))

	tt.Store(board.PositionCode(1000), board.Win, 0)
	assert.Equal(t, board.Win, tt.Fetch(board.PositionCode(1000)))
}

func TestTranspositionTableKeepsExpensiveAndRecentEntries(t *testing.T) {
	ctx := context.Background()
	const tableSize = 1021
	tt := search.NewTranspositionTable(ctx, tableSize)

	// Four positions that collide on the same slot, stored with work 300, 600, 500, 400:
	// the TwoBig1 policy keeps the highest-work entry (2) as expensive and the most
	// recently stored cheaper entry (4) as recent, evicting 1 and 3.
	positions := []board.PositionCode{tableSize * 1, tableSize * 2, tableSize * 3, tableSize * 4}
	works := []uint32{300, 600, 500, 400}

	for i, p := range positions {
		tt.Store(p, board.Win, works[i])
	}

	assert.Equal(t, board.Unknown, tt.Fetch(positions[0]))
	assert.Equal(t, board.Win, tt.Fetch(positions[1]))
	assert.Equal(t, board.Unknown, tt.Fetch(positions[2]))
	assert.Equal(t, board.Win, tt.Fetch(positions[3]))
}

func TestTranspositionTableOverwritesMatchingKey(t *testing.T) {
	ctx := context.Background()
	tt := search.NewTranspositionTable(ctx, 1021)

	tt.Store(board.PositionCode(1000), board.DrawOrWin, 10)
	assert.Equal(t, board.DrawOrWin, tt.Fetch(board.PositionCode(1000)))

	tt.Store(board.PositionCode(1000), board.Loss, 1)
	assert.Equal(t, board.Loss, tt.Fetch(board.PositionCode(1000)))
}

func TestTranspositionTableReset(t *testing.T) {
	ctx := context.Background()
	tt := search.NewTranspositionTable(ctx, 1021)

	tt.Store(board.PositionCode(1000), board.Win, 5)
	assert.Equal(t, board.Win, tt.Fetch(board.PositionCode(1000)))

	tt.Reset()
	assert.Equal(t, board.Unknown, tt.Fetch(board.PositionCode(1000)))
	assert.Equal(t, float64(0), tt.Used())
}
