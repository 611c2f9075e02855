// Package main provides the entry point for lc3vm, an LC-3 virtual
// machine: it loads an LC-3 object file and runs it to completion.
package main

import (
	"flag"
	"fmt"
	"os"

	"lc3vm/emu"
	"lc3vm/host"
	"lc3vm/loader"
)

var verbose = flag.Bool("v", false, "Verbose output")

func main() {
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: lc3vm [options] <program.obj>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "lc3vm: %v\n", err)
		os.Exit(1)
	}
}

func run(programPath string) error {
	img, err := loader.Load(programPath)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	console, err := host.NewConsole(os.Stdin, os.Stdout)
	if err != nil {
		return fmt.Errorf("opening console: %w", err)
	}
	defer func() { _ = console.Restore() }()

	machine := emu.NewMachine(emu.WithConsole(console))
	machine.Memory().SetDevice(emu.MRKBSR, host.KBSRDevice(console))

	if err := machine.LoadImage(img.AsLoadImage()); err != nil {
		return fmt.Errorf("loading image: %w", err)
	}

	if *verbose {
		fmt.Fprintf(os.Stderr, "Loaded: %s (origin %#04x, %d words)\n",
			programPath, img.Origin, len(img.Words))
	}

	if err := machine.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}

	if err := console.Flush(); err != nil {
		return fmt.Errorf("flushing console: %w", err)
	}

	if *verbose {
		fmt.Fprintf(os.Stderr, "Instructions executed: %d\n", machine.InstructionCount())
	}

	return nil
}
