// Package benchmark measures and reports search throughput: total time, nodes visited, and
// nodes/sec, in the fixed-width format spec.md §6 prescribes.
package benchmark

import (
	"context"
	"fmt"
	"time"

	"github.com/lattice7/fourply/pkg/board"
)

// Benchmark accumulates the outcome of one or more Engine.Solve calls. A zero-value Benchmark
// (runs == 0) represents "nothing run yet" and is a valid argument to Add.
type Benchmark struct {
	Score    board.Score
	Duration time.Duration
	Work     uint64
	Runs     int
}

// solver is the subset of search.Engine's behavior Run needs. Declared locally, not imported,
// to keep pkg/benchmark independent of pkg/search's Option/Book machinery.
type solver interface {
	WorkCount() uint64
	Solve(ctx context.Context, p board.Position) board.Score
}

// Run solves p with engine and returns a single-run Benchmark. engine.WorkCount is read before
// and after so Run composes with an engine that has already done unrelated work.
func Run(ctx context.Context, engine solver, p board.Position) Benchmark {
	startWork := engine.WorkCount()
	start := time.Now()
	score := engine.Solve(ctx, p)

	return Benchmark{
		Score:    score,
		Duration: time.Since(start),
		Work:     engine.WorkCount() - startWork,
		Runs:     1,
	}
}

// Add combines two Benchmarks, summing duration, work, and run count. Score is taken from the
// receiver; callers accumulating a batch typically only care about aggregate throughput, not a
// single representative score.
func (b Benchmark) Add(other Benchmark) Benchmark {
	return Benchmark{
		Score:    b.Score,
		Duration: b.Duration + other.Duration,
		Work:     b.Work + other.Work,
		Runs:     b.Runs + other.Runs,
	}
}

// Speed returns nodes visited per second of wall-clock Duration.
func (b Benchmark) Speed() float64 {
	seconds := b.Duration.Seconds()
	if seconds == 0 {
		return 0
	}
	return float64(b.Work) / seconds
}

const columnWidth = 6

// FormatLargeNumber renders n right-aligned in width columns; values at or above 100,000 are
// abbreviated as millions with three decimals, per spec.md §6.
func FormatLargeNumber(n float64, width int) string {
	if n < 100_000 {
		return fmt.Sprintf("%*.0f", width, n)
	}
	return fmt.Sprintf("%*.3f M", width, n/1_000_000)
}

// String renders the three-line report: total time, total work, and speed. When Runs == 1 a
// leading "score" line is included, since a single run has one meaningful result to report.
func (b Benchmark) String() string {
	s := ""
	if b.Runs == 1 {
		s += fmt.Sprintf("The score is %v\n", b.Score)
	}
	s += fmt.Sprintf("Total time: %*.3f s\n", columnWidth, b.Duration.Seconds())
	s += fmt.Sprintf("Total work: %v\n", FormatLargeNumber(float64(b.Work), columnWidth))
	s += fmt.Sprintf("Speed:      %v/s", FormatLargeNumber(b.Speed(), columnWidth))
	return s
}
