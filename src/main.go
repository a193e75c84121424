package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"

	"sysyrv/src/ast"
	"sysyrv/src/backend/riscv"
	"sysyrv/src/diag"
	"sysyrv/src/frontend"
	"sysyrv/src/ir"
	"sysyrv/src/koopa"
	"sysyrv/src/util"
)

// run reads source code and executes every compiler stage. Behaviour is
// driven entirely by the parsed util.Options.
func run(opt util.Options) (string, error) {
	src, err := func() (string, error) {
		defer util.Phase("read-source")()
		return util.ReadSource(opt)
	}()
	if err != nil {
		return "", errors.Wrap(err, "could not read source code")
	}

	normalized := frontend.Normalize(src)

	cu, err := func() (*ast.CompUnit, error) {
		defer util.Phase("parse")()
		return frontend.Parse(normalized)
	}()
	if err != nil {
		return "", fmt.Errorf("parse error: %s", err)
	}

	prog, bag := func() (*ir.Program, *diag.Bag) {
		defer util.Phase("ir-build")()
		return ir.Build(cu)
	}()

	if bag.HasErrors() || bag.CountWarnings() > 0 {
		fmt.Fprint(os.Stderr, bag.Render(normalized))
	}
	if bag.HasErrors() {
		return "", errors.New("compilation failed")
	}

	if opt.Mode == util.ModeKoopa {
		defer util.Phase("koopa-print")()
		return koopa.Print(prog), nil
	}

	defer util.Phase("riscv-gen")()
	return riscv.Generate(prog), nil
}

func main() {
	opt, err := util.ParseArgs()
	if err != nil {
		fmt.Printf("command line argument error: %s\n", err)
		os.Exit(1)
	}
	util.InitLogging(opt)

	out, err := run(opt)
	if err != nil {
		fmt.Printf("error: %s\n", err)
		os.Exit(1)
	}

	if err := util.WriteOutput(opt, out); err != nil {
		fmt.Printf("error writing output: %s\n", err)
		os.Exit(1)
	}
}
