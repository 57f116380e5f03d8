package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/lattice7/fourply/pkg/benchmark"
	"github.com/lattice7/fourply/pkg/board"
	"github.com/lattice7/fourply/pkg/book"
	"github.com/lattice7/fourply/pkg/search"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

func runSolve(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("solve", flag.ExitOnError)
	noBook := fs.Bool("no-book", false, "disable opening book usage")
	bookPath := fs.String("book", "", "opening book path (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("solve: expected exactly one variation or hex argument")
	}
	arg := fs.Arg(0)
	// Options may also follow the position argument, as in the usage text.
	if err := fs.Parse(fs.Args()[1:]); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return fmt.Errorf("solve: expected exactly one variation or hex argument")
	}

	p, err := parsePosition(arg)
	if err != nil {
		return err
	}

	var opts []search.Option
	if !*noBook && *bookPath != "" {
		b, err := book.Open(*bookPath)
		if err != nil {
			return err
		}
		opts = append(opts, search.WithBook(b))
	}

	engine := search.New(ctx, opts...)
	result := benchmark.Run(ctx, engine, p)
	fmt.Println(result)
	return nil
}

func runTest(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("test: expected at least one file")
	}

	engine := search.New(ctx)
	total := benchmark.Benchmark{}
	failures := 0

	for _, path := range args {
		lines, err := readLines(path)
		if err != nil {
			return err
		}
		for lineNo, line := range lines {
			if contextx.IsCancelled(ctx) {
				return fmt.Errorf("test: cancelled after %v failure(s)", failures)
			}
			if line == "" {
				continue
			}
			variation, expected, err := parseTestLine(line)
			if err != nil {
				return fmt.Errorf("%v:%v: %v", path, lineNo+1, err)
			}

			engine.Reset()
			b := benchmark.Run(ctx, engine, variation)
			total = total.Add(b)
			if !scoreMatchesExpectation(b.Score, expected) {
				failures++
				fmt.Printf("%v:%v: expected %v, got %v\n", path, lineNo+1, expected, b.Score)
			}
		}
	}

	fmt.Println(total)
	if failures > 0 {
		return fmt.Errorf("test: %v failure(s)", failures)
	}
	return nil
}

// parseTestLine parses "<variation> <signed integer>": negative means Loss, zero Draw, positive
// Win, per spec.md §6's test-file line format.
func parseTestLine(line string) (board.Position, int, error) {
	var variation string
	var expected int
	if _, err := fmt.Sscanf(line, "%s %d", &variation, &expected); err != nil {
		return board.Position{}, 0, fmt.Errorf("malformed test line: %q", line)
	}

	p, err := board.FromVariation(variation)
	if err != nil {
		return board.Position{}, 0, err
	}
	return p, expected, nil
}

func scoreMatchesExpectation(s board.Score, expected int) bool {
	switch {
	case expected < 0:
		return s == board.Loss
	case expected == 0:
		return s == board.Draw
	default:
		return s == board.Win
	}
}
