package search

import (
	"context"

	"github.com/lattice7/fourply/pkg/board"
	"github.com/seekerror/logw"
)

const defaultTableSize = 8388593

// Book is the subset of opening-book lookup behavior negamax needs. pkg/book.Book satisfies
// this interface structurally; it is declared here, not imported, because book generation
// itself drives a search.Engine and an import in the other direction would cycle.
type Book interface {
	ContainsPly(ply int) bool
	Get(code board.PositionCode) board.Score
}

// Option is an Engine construction option.
type Option func(*Engine)

// WithTable configures the engine to use the given transposition table instead of allocating a
// default-sized one. Pass a fresh table per Engine; tables are never shared across instances.
func WithTable(table *TranspositionTable) Option {
	return func(e *Engine) {
		e.table = table
	}
}

// WithBook configures an opening book consulted by every negamax node whose ply the book covers,
// after the forced-move and one-ply look-ahead checks and before the transposition-table probe.
func WithBook(book Book) Option {
	return func(e *Engine) {
		e.book = book
	}
}

// WithHeuristic overrides the default move-ordering heuristic (a HistoryHeuristic). Pass
// StaticHeuristic{} to disable the dynamic history adjustment described in SPEC_FULL.md §4.8.
func WithHeuristic(heuristic Heuristic) Option {
	return func(e *Engine) {
		e.heuristic = heuristic
	}
}

// Engine solves Connect Four positions exactly via negamax with alpha-beta pruning over the
// five-valued Score lattice. Single-threaded and synchronous; all mutable state (the
// transposition table and the move-ordering heuristic) belongs exclusively to this instance.
// Two Engines may run concurrently on independent goroutines provided each owns its own table.
type Engine struct {
	table     *TranspositionTable
	book      Book
	heuristic Heuristic

	workCount uint64
}

// New creates an Engine with a default-sized transposition table and the history-heuristic move
// ordering enabled, both overridable via Option.
func New(ctx context.Context, opts ...Option) *Engine {
	e := &Engine{
		table:     NewTranspositionTable(ctx, defaultTableSize),
		heuristic: NewHistoryHeuristic(),
	}
	for _, fn := range opts {
		fn(e)
	}
	return e
}

// WorkCount returns the number of negamax nodes visited since the last Reset.
func (e *Engine) WorkCount() uint64 {
	return e.workCount
}

// Reset clears the transposition table and the work counter, preparing the engine for an
// unrelated position. The move-ordering heuristic is left intact, since its value as a search
// accelerator persists across positions.
func (e *Engine) Reset() {
	e.workCount = 0
	if e.table != nil {
		e.table.Reset()
	}
}

// Solve returns the exact outcome of p under perfect play. Pre-search shortcuts avoid the cost
// of a full negamax call on already-decided or trivially-decided positions.
func (e *Engine) Solve(ctx context.Context, p board.Position) board.Score {
	switch {
	case p.Current.HasWon():
		return board.Win
	case p.Other.HasWon():
		return board.Loss
	case p.Ply == board.Width*board.Height:
		return board.Draw
	case p.ImmediateWins().CountMoves() > 0:
		return board.Win
	}

	return e.negamax(ctx, p, board.Loss, board.Win, board.Width*board.Height)
}

// quickEvaluate either returns a definitive Score for p, or a MoveBitmap of the moves negamax
// must explore (board.Unknown as the score signals the latter; quickEvaluate never returns
// Unknown as a final verdict).
func (e *Engine) quickEvaluate(p board.Position, alpha, beta board.Score) (board.Score, board.MoveBitmap) {
	unblocked := p.UnblockedMoves()
	if unblocked.CountMoves() == 0 {
		return board.Loss, 0
	}

	enemyImmWins := board.MoveBitmap(board.GetImmediateWins(p.Other, p.Current))
	switch enemyImmWins.CountMoves() {
	case 0:
		// no immediate enemy threat to answer
	case 1:
		x := enemyImmWins.Columns()[0]
		if !unblocked.HasMove(x) {
			return board.Loss, 0
		}
		return board.Unknown, enemyImmWins
	default:
		return board.Loss, 0 // cannot block two threats in one move
	}

	if auto := e.autofinishScore(p, unblocked); auto != board.Unknown && auto <= alpha {
		return auto, 0
	}

	return board.Unknown, unblocked
}

// autofinishScore is a cheap end-of-game estimate: assume the opponent copies the mover's
// column choice every turn (an "imitator") and plays out what that fill forces. If any playable
// column's landing cell sits on an even row, the imitation isn't sustainable and the function
// gives up (Unknown). Otherwise it fills every playable column alternately, mover first, up to
// the top, and reads off the result.
func (e *Engine) autofinishScore(p board.Position, playable board.MoveBitmap) board.Score {
	if board.Bitboard(playable)&board.EvenRows != 0 {
		return board.Unknown
	}

	current, other := p.Current, p.Other
	for _, x := range playable.Columns() {
		for board.CanDrop(current, other, x) {
			current, other = other, board.Drop(current, other, x)
		}
	}

	switch {
	case current.HasWon():
		return board.Unknown // true score may exceed Draw; autofinish cannot conclude
	case other.HasWon():
		return board.Loss
	default:
		return board.DrawOrLoss
	}
}

// negamaxCandidate is a materialized child used for move ordering.
type negamaxCandidate struct {
	x, y     int
	priority int
	child    board.Position
}

// negamax is the search core: alpha-beta negamax over the five-valued Score lattice, augmented
// by forced-move collapse, symmetry reduction, a one-ply lookahead cutoff, an opening-book
// probe, and a transposition-table probe/store, in that order. Preconditions: neither player has
// already won, the mover has no one-move win, and p.Ply < Width*Height.
func (e *Engine) negamax(ctx context.Context, p board.Position, alpha, beta board.Score, maxDepth int) board.Score {
	e.workCount++
	if e.workCount%1_000_000 == 0 {
		logw.Debugf(ctx, "negamax: %v nodes, ply=%v", e.workCount, p.Ply)
	}

	if p.Ply == board.Width*board.Height-1 {
		return board.Draw
	}
	if maxDepth == 0 {
		return board.Unknown
	}

	score, moves := e.quickEvaluate(p, alpha, beta)
	if score != board.Unknown {
		return score
	}

	if moves.CountMoves() == 1 {
		x := moves.Columns()[0]
		return e.negamax(ctx, p.Drop(x), beta.Flip(), alpha.Flip(), maxDepth-1).Flip()
	}

	code := p.NormalizedCode()
	if p.IsSymmetric() {
		moves = moves.LeftHalf()
	}

	for _, x := range moves.Columns() {
		s, _ := e.quickEvaluate(p.Drop(x), beta.Flip(), alpha.Flip())
		if s != board.Unknown {
			if flipped := s.Flip(); flipped >= beta {
				return flipped
			}
		}
	}

	if e.book != nil && e.book.ContainsPly(p.Ply) {
		if s := e.book.Get(p.Code()); s != board.Unknown {
			return s
		}
	}

	newAlpha, newBeta := alpha, beta
	best := board.Loss
	ttScore := board.Unknown
	if e.table != nil {
		ttScore = e.table.Fetch(code)
		switch {
		case ttScore.IsExact():
			return ttScore
		case ttScore == board.DrawOrWin:
			newAlpha, best = board.Draw, board.Draw
		case ttScore == board.DrawOrLoss:
			newBeta = board.Draw
		}
		if newAlpha >= newBeta {
			return ttScore
		}
	}

	var candidates [board.Width]negamaxCandidate
	n := 0
	for _, x := range moves.Columns() {
		y := board.ColumnHeight(p.Current, p.Other, x)
		child := p.Drop(x)
		threatsAfterMove := board.CountThreats(child.Other, child.Current)
		candidates[n] = negamaxCandidate{
			x:        x,
			y:        y,
			priority: movePriority(threatsAfterMove, p.Ply, x, y, e.heuristic),
			child:    child,
		}
		n++
	}
	insertionSortDescending(candidates[:n])

	work0 := e.workCount
	unknownCount := n
	for i := 0; i < n; i++ {
		c := candidates[i]
		s := e.negamax(ctx, c.child, newBeta.Flip(), newAlpha.Flip(), maxDepth-1).Flip()
		if s != board.Unknown {
			unknownCount--
		}
		if s > best {
			best = s
			newAlpha = board.NarrowAlpha(newAlpha, s)
			if newAlpha >= newBeta {
				if e.heuristic != nil {
					e.heuristic.IncreaseValue(c.x, c.y, i)
					for k := 0; k < i; k++ {
						e.heuristic.IncreaseValue(candidates[k].x, candidates[k].y, -1)
					}
				}
				break
			}
		}
	}
	work := e.workCount - work0

	if unknownCount > 0 {
		if best == board.Draw {
			best = board.DrawOrWin
		} else if best < board.Draw {
			best = board.Unknown
		}
	}
	if ttScore == board.DrawOrLoss && best >= board.Draw {
		best = board.Draw
	}

	if e.table != nil {
		e.table.Store(code, best, uint32(work))
	}
	return best
}

// insertionSortDescending sorts by priority, highest first. Chosen over a library sort because
// the candidate list never exceeds Width entries.
func insertionSortDescending(c []negamaxCandidate) {
	for i := 1; i < len(c); i++ {
		for j := i; j > 0 && c[j-1].priority < c[j].priority; j-- {
			c[j-1], c[j] = c[j], c[j-1]
		}
	}
}
