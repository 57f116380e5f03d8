// fourply is a command-line front-end over the Connect Four solver: solving positions, printing
// boards, running test files, and generating/verifying/converting opening books.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/seekerror/build"
	"github.com/seekerror/logw"
)

var version = build.NewVersion(0, 1, 0)

func main() {
	ctx := context.Background()
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	if os.Args[1] == "--version" {
		fmt.Println(version)
		return
	}

	var err error
	switch os.Args[1] {
	case "solve":
		err = runSolve(ctx, os.Args[2:])
	case "print":
		err = runPrint(ctx, os.Args[2:])
	case "test":
		err = runTest(ctx, os.Args[2:])
	case "generate-book":
		err = runGenerateBook(ctx, os.Args[2:])
	case "verify-book":
		err = runVerifyBook(ctx, os.Args[2:])
	case "format-book":
		err = runFormatBook(ctx, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		logw.Exitf(ctx, "%v", err)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `usage: fourply <command> [options]

Commands:
  solve <variation|hex> [--no-book]
  print <variation|hex> [--hex] [--technical]
  test <files...>
  generate-book --ply N [--use-book PATH] [--workers N] --out FILE
  verify-book <a> <b>
  format-book <file> [--format hex|binary] [--out FILE] [--count-only] [--omit-won] [--omit-forced]

Global:
  --version   print the build version and exit
`)
}
