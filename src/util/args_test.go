package util

import (
	"os"
	"testing"
)

func withArgs(t *testing.T, args []string, fn func()) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"sysyrv"}, args...)
	defer func() { os.Args = orig }()
	fn()
}

func TestParseArgsRiscvDefault(t *testing.T) {
	var opt Options
	var err error
	withArgs(t, []string{"-riscv", "in.sy", "-o", "out.s"}, func() {
		opt, err = ParseArgs()
	})
	if err != nil {
		t.Fatalf("ParseArgs() error = %v", err)
	}
	if opt.Mode != ModeRiscv || opt.Src != "in.sy" || opt.Out != "out.s" {
		t.Errorf("ParseArgs() = %+v, want Mode=ModeRiscv Src=in.sy Out=out.s", opt)
	}
}

func TestParseArgsKoopaModeAndVerbose(t *testing.T) {
	var opt Options
	var err error
	withArgs(t, []string{"-koopa", "-vb", "in.sy"}, func() {
		opt, err = ParseArgs()
	})
	if err != nil {
		t.Fatalf("ParseArgs() error = %v", err)
	}
	if opt.Mode != ModeKoopa || !opt.Verbose {
		t.Errorf("ParseArgs() = %+v, want Mode=ModeKoopa Verbose=true", opt)
	}
	if opt.Out != "" {
		t.Errorf("Out = %q, want empty (omitted -o falls back to stdout)", opt.Out)
	}
}

func TestParseArgsMissingModeErrors(t *testing.T) {
	var err error
	withArgs(t, []string{"in.sy"}, func() {
		_, err = ParseArgs()
	})
	if err == nil {
		t.Fatalf("ParseArgs() error = nil, want an error when neither -koopa nor -riscv is given")
	}
}

func TestParseArgsMissingSourceErrors(t *testing.T) {
	var err error
	withArgs(t, []string{"-riscv"}, func() {
		_, err = ParseArgs()
	})
	if err == nil {
		t.Fatalf("ParseArgs() error = nil, want an error when no source file is given")
	}
}

func TestParseArgsUnknownFlagErrors(t *testing.T) {
	var err error
	withArgs(t, []string{"-riscv", "in.sy", "--bogus"}, func() {
		_, err = ParseArgs()
	})
	if err == nil {
		t.Fatalf("ParseArgs() error = nil, want an error for an unrecognized flag")
	}
}

func TestParseArgsExtraPositionalErrors(t *testing.T) {
	var err error
	withArgs(t, []string{"-riscv", "in.sy", "extra.sy"}, func() {
		_, err = ParseArgs()
	})
	if err == nil {
		t.Fatalf("ParseArgs() error = nil, want an error for a second positional argument")
	}
}

func TestParseArgsDashOMissingValueErrors(t *testing.T) {
	var err error
	withArgs(t, []string{"-riscv", "in.sy", "-o"}, func() {
		_, err = ParseArgs()
	})
	if err == nil {
		t.Fatalf("ParseArgs() error = nil, want an error when -o has no following path")
	}
}
