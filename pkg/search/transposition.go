// Package search implements the negamax search engine: the transposition table, move
// ordering/priority heuristics, and the negamax-with-alpha-beta core over board.Score.
package search

import (
	"context"
	"fmt"
	"math/bits"

	"github.com/lattice7/fourply/pkg/board"
	"github.com/seekerror/logw"
)

const scoreBits = 3

// TranspositionTable is a fixed-size two-entry-per-slot hash table keyed by normalized position
// code, packing key+score+work into a single 64-bit word per entry. Implements the TwoBig1
// replacement policy (Breuker et al. 1994): each slot holds an "expensive" entry, which
// monotonically tracks the maximum work seen for that slot, and a "recent" entry, a
// second-chance cache for whatever was just evicted from expensive. Not safe for concurrent
// use; each search.Engine owns its own table.
type TranspositionTable struct {
	tableSize uint64
	entries   []uint64 // two consecutive words per slot: [expensive, recent]

	keyBits    uint
	scoreShift uint
	workShift  uint
	keyMask    uint64
	scoreMask  uint64
	workMask   uint64

	stored int
}

// NewTranspositionTable allocates a table with room for tableSize slots. tableSize should be a
// prime close to the desired capacity.
func NewTranspositionTable(ctx context.Context, tableSize uint64) *TranspositionTable {
	maxCode := uint64(1)<<board.PositionBits - 1
	keyBits := closestPowerOfTwo(maxCode / tableSize)
	scoreShift := keyBits
	workShift := keyBits + scoreBits

	keyMask := (uint64(1) << keyBits) - 1
	scoreMask := ((uint64(1) << workShift) - 1) ^ keyMask
	workMask := ^uint64(0) ^ scoreMask ^ keyMask

	logw.Infof(ctx, "Allocating transposition table: %v slots, %v bytes", tableSize, 2*tableSize*8)

	return &TranspositionTable{
		tableSize:  tableSize,
		entries:    make([]uint64, 2*tableSize),
		keyBits:    keyBits,
		scoreShift: scoreShift,
		workShift:  workShift,
		keyMask:    keyMask,
		scoreMask:  scoreMask,
		workMask:   workMask,
	}
}

// closestPowerOfTwo returns the number of bits needed to represent n, i.e. ceil(log2(n+1)).
func closestPowerOfTwo(n uint64) uint {
	return uint(bits.Len64(n))
}

func (t *TranspositionTable) slot(code board.PositionCode) (index, key uint64) {
	c := uint64(code)
	return (c % t.tableSize) * 2, c / t.tableSize
}

// Store records (code, score, work) into the table, per the TwoBig1 policy: a matching key
// already in the expensive slot is overwritten in place; a new entry with at least as much work
// as the current expensive entry demotes it to recent and takes the expensive slot; otherwise
// the new entry lands in recent, discarding whatever was there.
func (t *TranspositionTable) Store(code board.PositionCode, score board.Score, work uint32) {
	index, key := t.slot(code)
	entry := key | (uint64(score) << t.scoreShift) | (uint64(work) << t.workShift)

	expensive := t.entries[index]
	recent := t.entries[index+1]

	switch {
	case expensive == 0:
		t.stored++
		t.entries[index] = entry
	case expensive&t.keyMask == key:
		t.entries[index] = entry
	case uint64(work) >= expensive>>t.workShift:
		if recent == 0 {
			t.stored++
		}
		t.entries[index] = entry
		t.entries[index+1] = expensive
	default:
		if recent == 0 {
			t.stored++
		}
		t.entries[index+1] = entry
	}
}

// Fetch returns the stored score for code, or board.Unknown if absent.
func (t *TranspositionTable) Fetch(code board.PositionCode) board.Score {
	index, key := t.slot(code)

	if expensive := t.entries[index]; expensive&t.keyMask == key {
		return decodeScore((expensive & t.scoreMask) >> t.scoreShift)
	}
	if recent := t.entries[index+1]; recent&t.keyMask == key {
		return decodeScore((recent & t.scoreMask) >> t.scoreShift)
	}
	return board.Unknown
}

func decodeScore(v uint64) board.Score {
	if v < uint64(board.Loss) || v > uint64(board.Win) {
		return board.Unknown
	}
	return board.Score(v)
}

// Reset zeroes every slot.
func (t *TranspositionTable) Reset() {
	for i := range t.entries {
		t.entries[i] = 0
	}
	t.stored = 0
}

// Size returns the size of the table in bytes.
func (t *TranspositionTable) Size() uint64 {
	return uint64(len(t.entries)) * 8
}

// Used returns the slot utilization as a fraction in [0;1].
func (t *TranspositionTable) Used() float64 {
	return float64(t.stored) / float64(len(t.entries))
}

func (t *TranspositionTable) String() string {
	return fmt.Sprintf("TT[%v slots @ %v%% used]", t.tableSize, int(100*t.Used()))
}
