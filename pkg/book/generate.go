package book

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/lattice7/fourply/pkg/board"
	"github.com/lattice7/fourply/pkg/search"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/seekerror/stdlib/pkg/util/contextx"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

// FindPositionsToSolve explores the game tree from the empty position to exactly maxPly moves,
// using unblocked moves as the move generator and restricting to the left half of the board at
// symmetric nodes, and returns the sorted, deduplicated set of normalized leaf codes.
// Already-won branches are cut off before reaching maxPly and contribute no leaf: their value is
// trivially known without a book entry.
func FindPositionsToSolve(maxPly int) []board.PositionCode {
	seen := map[board.PositionCode]struct{}{}
	exploreTree(board.Empty(), maxPly, seen)

	codes := make([]board.PositionCode, 0, len(seen))
	for c := range seen {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

func exploreTree(p board.Position, depth int, seen map[board.PositionCode]struct{}) {
	if p.HasWon() {
		return
	}
	if depth == 0 {
		seen[p.NormalizedCode()] = struct{}{}
		return
	}

	moves := p.UnblockedMoves()
	if p.IsSymmetric() {
		moves = moves.LeftHalf()
	}
	for _, x := range moves.Columns() {
		exploreTree(p.Drop(x), depth-1, seen)
	}
}

// solved pairs a position code with its solved score.
type solved struct {
	code  board.PositionCode
	score board.Score
}

// GenerateOptions configures Generate. The zero value is valid: ShardCount defaults to 1.
type GenerateOptions struct {
	// ShardCount is the number of solver workers. Unset (the zero Optional) means 1.
	ShardCount lang.Optional[int]
}

// Generate solves every position in codes and returns the resulting entries, sorted by code.
// Work is sharded across opt.ShardCount goroutines, each driving its own search.Engine (and so
// its own transposition table) -- engines and tables are never shared across goroutines, per the
// single-owner concurrency model in SPEC_FULL.md §5.1. If helper already has an informative
// score for a position at this ply, that score is used directly and the engine is not invoked
// for it; otherwise each worker's engine also consults helper during its own search. If ctx is
// cancelled, workers stop picking up new positions, and Generate returns whatever was solved so
// far rather than blocking forever.
func Generate(ctx context.Context, ply int, codes []board.PositionCode, helper *Book, opt GenerateOptions) []Entry {
	shardCount := 1
	if n, ok := opt.ShardCount.V(); ok && n > 0 {
		shardCount = n
	}

	jobs := make(chan board.PositionCode, len(codes))
	for _, c := range codes {
		jobs <- c
	}
	close(jobs)

	results := make(chan solved, len(codes))
	done := iox.NewAsyncCloser()

	var wg sync.WaitGroup
	for i := 0; i < shardCount; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			runGenerateWorker(ctx, worker, ply, jobs, results, helper)
		}(i)
	}

	go func() {
		wg.Wait()
		close(results)
		done.Close()
	}()

	entries := make([]Entry, 0, len(codes))
	start := time.Now()
	for r := range results {
		entries = append(entries, NewEntry(r.code, r.score))
		if n := len(entries); n%10 == 0 || n == len(codes) {
			speed := float64(n) / time.Since(start).Seconds()
			logw.Infof(ctx, "generate-book: solved %v/%v, %.1f positions/sec", n, len(codes), speed)
		}
	}
	<-done.Closed() // workers have fully wound down; safe to report final state

	sort.Slice(entries, func(i, j int) bool { return entries[i].Code() < entries[j].Code() })
	return entries
}

func runGenerateWorker(ctx context.Context, worker, ply int, jobs <-chan board.PositionCode, results chan<- solved, helper *Book) {
	var opts []search.Option
	if helper != nil {
		opts = append(opts, search.WithBook(helper))
	}
	engine := search.New(ctx, opts...)

	for code := range jobs {
		if contextx.IsCancelled(ctx) {
			continue // drain the channel without solving so the pool still winds down cleanly
		}

		if helper != nil && helper.ContainsPly(ply) {
			if s := helper.Get(code); s != board.Unknown {
				results <- solved{code, s}
				continue
			}
		}

		engine.Reset()
		score := engine.Solve(ctx, board.FromCode(code))
		logw.Debugf(ctx, "generate-book: worker %v solved %v -> %v (%v nodes)", worker, code, score, engine.WorkCount())
		results <- solved{code, score}
	}
}

// VerifyReport summarizes comparing two books, per spec.md §4.6.
type VerifyReport struct {
	SizeA, SizeB int
	Common       int
	Equal        bool
}

// Verify compares a and b: the set intersection of positions both books have an informative
// score for must agree exactly, or a mismatch is reported as a fatal error. The returned report
// also notes overall sizes and whether the two books are identical.
func Verify(a, b *Book) (VerifyReport, error) {
	byCode := make(map[board.PositionCode]board.Score, a.Len())
	for _, e := range a.Entries() {
		byCode[e.Code()] = e.Score()
	}

	common := 0
	equal := a.Len() == b.Len()
	for _, e := range b.Entries() {
		scoreA, ok := byCode[e.Code()]
		if !ok {
			equal = false
			continue
		}
		common++
		if scoreA != e.Score() {
			return VerifyReport{}, fmt.Errorf("book mismatch at code %v: %v vs %v", e.Code(), scoreA, e.Score())
		}
	}
	if common != a.Len() || common != b.Len() {
		equal = false
	}

	return VerifyReport{SizeA: a.Len(), SizeB: b.Len(), Common: common, Equal: equal}, nil
}
