package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/lattice7/fourply/pkg/board"
	"github.com/lattice7/fourply/pkg/book"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

func runGenerateBook(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("generate-book", flag.ExitOnError)
	ply := fs.Int("ply", 0, "ply depth to generate")
	useBook := fs.String("use-book", "", "helper book to consult first (optional)")
	workers := fs.Int("workers", 1, "number of solver workers")
	out := fs.String("out", "", "output book file (required)")
	format := fs.String("format", "hex", "output format: hex or binary")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *ply <= 0 {
		return fmt.Errorf("generate-book: --ply must be positive")
	}
	if *out == "" {
		return fmt.Errorf("generate-book: --out is required")
	}

	var helper *book.Book
	if *useBook != "" {
		b, err := book.Open(*useBook)
		if err != nil {
			return err
		}
		helper = b
	}

	codes := book.FindPositionsToSolve(*ply)
	logw.Infof(ctx, "generate-book: %v positions to solve at ply %v", len(codes), *ply)

	entries := book.Generate(ctx, *ply, codes, helper, book.GenerateOptions{ShardCount: lang.Some(*workers)})
	return writeBookFile(*out, *format, entries)
}

func runVerifyBook(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("verify-book: expected exactly two book files")
	}

	a, err := book.Open(args[0])
	if err != nil {
		return err
	}
	b, err := book.Open(args[1])
	if err != nil {
		return err
	}

	report, err := book.Verify(a, b)
	if err != nil {
		return err
	}

	fmt.Printf("sizes: %v vs %v, common: %v, equal: %v\n", report.SizeA, report.SizeB, report.Common, report.Equal)
	return nil
}

func runFormatBook(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("format-book", flag.ExitOnError)
	format := fs.String("format", "hex", "output format: hex or binary")
	out := fs.String("out", "", "output file (defaults to stdout)")
	countOnly := fs.Bool("count-only", false, "print only the entry count")
	omitWon := fs.Bool("omit-won", false, "drop entries whose position already has four in a row")
	omitForced := fs.Bool("omit-forced", false, "drop entries whose position has at most one unblocked move")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("format-book: expected exactly one file")
	}
	path := fs.Arg(0)
	// Options may also follow the file argument, as in the usage text.
	if err := fs.Parse(fs.Args()[1:]); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return fmt.Errorf("format-book: expected exactly one file")
	}

	b, err := book.Open(path)
	if err != nil {
		return err
	}

	entries := b.Entries()
	if *omitWon || *omitForced {
		filtered := entries[:0:0]
		for _, e := range entries {
			p := board.FromCode(e.Code())
			if *omitWon && p.HasWon() {
				continue
			}
			if *omitForced && p.UnblockedMoves().CountMoves() <= 1 {
				continue
			}
			filtered = append(filtered, e)
		}
		entries = filtered
	}

	if *countOnly {
		fmt.Println(len(entries))
		return nil
	}

	if *out == "" {
		return writeBook(os.Stdout, *format, entries)
	}
	return writeBookFile(*out, *format, entries)
}

func writeBookFile(path, format string, entries []book.Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return writeBook(f, format, entries)
}

func writeBook(w io.Writer, format string, entries []book.Entry) error {
	switch format {
	case "hex":
		return book.WriteHex(w, entries)
	case "binary":
		return book.WriteBinary(w, entries)
	default:
		return fmt.Errorf("unknown book format %q", format)
	}
}
