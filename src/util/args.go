package util

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Mode selects which backend the driver runs: textual IR or RISC-V
// assembly
type Mode int

const (
	ModeRiscv Mode = iota
	ModeKoopa
)

// Options holds parsed command-line state, narrowed from vslc's
// multi-architecture Options (src/util/args.go) down to the one fixed
// target: RISC-V 32-bit. vslc's -t (thread count), -arch, -os, -vendor and
// -ll flags have no home here: the driver runs single-threaded against a
// fixed target, so those knobs would control nothing.
type Options struct {
	Src     string // Path to source file.
	Out     string // Path to output file.
	Mode    Mode   // -koopa or -riscv.
	Verbose bool   // Set true if -vb was passed: enables debug-level logging.
}

// ---------------------
// ----- constants -----
// ---------------------

const appVersion = "sysyrv compiler 1.0"

// ---------------------
// ----- functions -----
// ---------------------

// ParseArgs parses command line arguments of the form:
// "program (-koopa | -riscv) <input> -o <output>".
func ParseArgs() (Options, error) {
	opt := Options{}
	args := os.Args[1:]
	modeSet := false

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-h", "--h", "-help", "--help":
			printHelp()
			os.Exit(0)
		case "-v", "--v", "-version", "--version":
			fmt.Println(appVersion)
			os.Exit(0)
		case "-koopa":
			opt.Mode = ModeKoopa
			modeSet = true
		case "-riscv":
			opt.Mode = ModeRiscv
			modeSet = true
		case "-vb":
			opt.Verbose = true
		case "-o":
			if i+1 >= len(args) {
				return opt, fmt.Errorf("got flag %s but no argument", args[i])
			}
			if strings.HasPrefix(args[i+1], "-") {
				return opt, fmt.Errorf("expected path to output file, got new flag %s", args[i+1])
			}
			opt.Out = args[i+1]
			i++
		default:
			if strings.HasPrefix(args[i], "-") {
				return opt, fmt.Errorf("unexpected flag: %s", args[i])
			}
			if opt.Src != "" {
				return opt, fmt.Errorf("unexpected extra positional argument: %s", args[i])
			}
			opt.Src = args[i]
		}
	}

	if !modeSet {
		return opt, fmt.Errorf("expected one of -koopa or -riscv")
	}
	if opt.Src == "" {
		return opt, fmt.Errorf("expected path to input source file")
	}
	// -o is optional: an omitted output path falls back to stdout, matching
	// how WriteOutput treats an empty Options.Out.
	return opt, nil
}

// printHelp prints a helpful usage message to stdout.
func printHelp() {
	w := tabwriter.NewWriter(os.Stdout, 6, 1, 1, 0, 0)
	_, _ = fmt.Fprintln(w, "-koopa\tEmit pretty-printed textual IR instead of assembly.")
	_, _ = fmt.Fprintln(w, "-riscv\tEmit RISC-V 32-bit assembly.")
	_, _ = fmt.Fprintln(w, "-o\tPath to the output file (optional; defaults to stdout).")
	_, _ = fmt.Fprintln(w, "-vb\tVerbose mode: log phase timing at debug level.")
	_, _ = fmt.Fprintln(w, "-h, -help\tPrints this help message and exits.")
	_, _ = fmt.Fprintln(w, "-v, -version\tPrints the application version and exits.")
	_ = w.Flush()
}
