package search

import "github.com/lattice7/fourply/pkg/board"

// staticTable favors central columns and mid-board heights, rows indexed from the bottom.
var staticTable = [board.Height][board.Width]int{
	{2, 3, 5, 7, 5, 3, 2},
	{3, 6, 8, 10, 8, 6, 3},
	{4, 8, 10, 11, 10, 8, 4},
	{5, 10, 11, 12, 11, 10, 5},
	{4, 6, 10, 12, 10, 6, 4},
	{3, 5, 7, 11, 7, 5, 3},
}

// Heuristic supplies a per-cell move-ordering score, optionally adjustable over the lifetime of
// a search as cutoffs accumulate evidence about which cells tend to produce good moves.
type Heuristic interface {
	GetValue(x, y int) int
	IncreaseValue(x, y int, amount int)
}

// StaticHeuristic returns the fixed positional table from spec.md §4.5 and ignores updates.
type StaticHeuristic struct{}

func (StaticHeuristic) GetValue(x, y int) int { return staticTable[y][x] }

func (StaticHeuristic) IncreaseValue(x, y int, amount int) {}

// HistoryHeuristic is a dynamic, per-Engine move-ordering table seeded with a small bias towards
// central columns and reinforced by negamax cutoffs: whichever column produced a cutoff is
// rewarded, and the columns tried before it are penalized. Never shared across Engine instances.
type HistoryHeuristic struct {
	table [board.Width][board.Height]int
}

// NewHistoryHeuristic returns a table seeded with a small central bias, so that in the absence
// of any cutoff evidence columns near the center are still tried first.
func NewHistoryHeuristic() *HistoryHeuristic {
	h := &HistoryHeuristic{}
	for x := 0; x < board.Width; x++ {
		bias := x
		if other := board.Width - x - 1; other < bias {
			bias = other
		}
		for y := 0; y < board.Height; y++ {
			h.table[x][y] = bias
		}
	}
	return h
}

func (h *HistoryHeuristic) GetValue(x, y int) int {
	return h.table[x][y]
}

func (h *HistoryHeuristic) IncreaseValue(x, y int, amount int) {
	h.table[x][y] += amount
}

// movePriority computes the composite move-ordering key for dropping in column x at row y, per
// spec.md §4.5: threat pressure dominates, late-game height is a tie-breaker, and the static (or
// history) table breaks remaining ties.
func movePriority(threatsAfterMove int, ply, x, y int, heuristic Heuristic) int {
	priority := threatsAfterMove * 1_000_000
	if ply > 19 {
		priority += 1000 * y
	}
	if heuristic != nil {
		priority += heuristic.GetValue(x, y)
	} else {
		priority += staticTable[y][x]
	}
	return priority
}
