package board

import "fmt"

// Score is the five-valued game-theoretic value of a position from the side-to-move's
// perspective. Ordered lowest to highest; the ordering only matters for alpha-beta comparisons.
type Score uint8

const (
	// Unknown means search did not reach a conclusive result (e.g. depth exhausted). Never
	// stored in the book; never mistaken for an exact answer.
	Unknown Score = 0
	// Loss is an exact result: the side to move loses with best play.
	Loss Score = 1
	// DrawOrLoss is a half-open bound: the position is a draw or a loss, but not known which.
	DrawOrLoss Score = 2
	// Draw is an exact result.
	Draw Score = 3
	// DrawOrWin is a half-open bound: the position is a draw or a win, but not known which.
	DrawOrWin Score = 4
	// Win is an exact result: the side to move wins with best play.
	Win Score = 5
)

// IsExact reports whether s is one of the three exact values (Loss, Draw, Win).
func (s Score) IsExact() bool {
	return s == Loss || s == Draw || s == Win
}

// Flip swaps a score to the opposing side's perspective. An involution: Flip(Flip(s)) == s.
func (s Score) Flip() Score {
	switch s {
	case Loss:
		return Win
	case Win:
		return Loss
	case DrawOrLoss:
		return DrawOrWin
	case DrawOrWin:
		return DrawOrLoss
	default:
		return s
	}
}

// NarrowAlpha updates alpha given a child's returned score s, per the negamax lattice rule: alpha
// becomes Win if s is Win, is raised to at least Draw if s is Draw or DrawOrWin (an alpha already
// above Draw is kept), and is otherwise left unchanged.
func NarrowAlpha(alpha, s Score) Score {
	switch {
	case s == Win:
		return Win
	case s == Draw || s == DrawOrWin:
		if alpha < Draw {
			return Draw
		}
		return alpha
	default:
		return alpha
	}
}

// scoreChars is the character codec: index by Score, Unknown at the end since it sorts lowest
// but prints last in conventional "-<=>+?" ordering. Every character is a single ASCII byte, as
// the hex book line format requires.
var scoreChars = map[Score]rune{
	Loss:       '-',
	DrawOrLoss: '<',
	Draw:       '=',
	DrawOrWin:  '>',
	Win:        '+',
	Unknown:    '?',
}

var charScores = func() map[rune]Score {
	m := make(map[rune]Score, len(scoreChars))
	for s, c := range scoreChars {
		m[c] = s
	}
	return m
}()

// Char returns the single-character codec for s.
func (s Score) Char() rune {
	return scoreChars[s]
}

// ScoreFromChar parses the single-character codec produced by Char.
func ScoreFromChar(c rune) (Score, error) {
	s, ok := charScores[c]
	if !ok {
		return Unknown, fmt.Errorf("invalid score character: '%v'", string(c))
	}
	return s, nil
}

func (s Score) String() string {
	switch s {
	case Loss:
		return "Loss"
	case DrawOrLoss:
		return "DrawOrLoss"
	case Draw:
		return "Draw"
	case DrawOrWin:
		return "DrawOrWin"
	case Win:
		return "Win"
	default:
		return "Unknown"
	}
}
