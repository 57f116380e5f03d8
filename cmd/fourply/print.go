package main

import (
	"context"
	"flag"
	"fmt"
)

func runPrint(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("print", flag.ExitOnError)
	asHex := fs.Bool("hex", false, "print the position's hex code instead of the board")
	technical := fs.Bool("technical", false, "also print ply, code, and symmetry")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("print: expected exactly one variation or hex argument")
	}
	arg := fs.Arg(0)
	// Options may also follow the position argument, as in the usage text.
	if err := fs.Parse(fs.Args()[1:]); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return fmt.Errorf("print: expected exactly one variation or hex argument")
	}

	p, err := parsePosition(arg)
	if err != nil {
		return err
	}

	if *asHex {
		fmt.Println(p.Hex())
	} else {
		fmt.Println(p)
	}

	if *technical {
		fmt.Printf("ply=%v code=%016X normalized=%016X symmetric=%v\n",
			p.Ply, uint64(p.Code()), uint64(p.NormalizedCode()), p.IsSymmetric())
	}
	return nil
}
