package main

import (
	"fmt"

	"github.com/lattice7/fourply/pkg/board"
)

// parsePosition accepts either a variation string or a 16 hex digit position code, per spec.md
// §6's "solve <variation|hex>" surface. A 16-character argument is tried as hex first; anything
// else, or a hex parse failure, falls back to variation parsing.
func parsePosition(s string) (board.Position, error) {
	if len(s) == 16 {
		if p, err := board.FromHex(s); err == nil {
			return p, nil
		}
	}

	p, err := board.FromVariation(s)
	if err != nil {
		return board.Position{}, fmt.Errorf("invalid position %q: %v", s, err)
	}
	return p, nil
}
