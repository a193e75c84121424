package riscv

import (
	"strings"
	"testing"

	"sysyrv/src/ir"
	"sysyrv/src/util"
)

func TestEmitLiSuppressesZeroRegister(t *testing.T) {
	var wr util.Writer
	emitLi(&wr, zero, 5)
	if wr.String() != "" {
		t.Errorf("emitLi(x0, 5) wrote %q, want nothing", wr.String())
	}
}

func TestEmitMvSuppressesSelfMove(t *testing.T) {
	var wr util.Writer
	emitMv(&wr, "t4", "t4")
	if wr.String() != "" {
		t.Errorf("emitMv(t4, t4) wrote %q, want nothing", wr.String())
	}
	emitMv(&wr, "t4", "t5")
	if !strings.Contains(wr.String(), "mv\tt4,t5") {
		t.Errorf("emitMv(t4, t5) wrote %q, want an actual mv", wr.String())
	}
}

func TestEmitSubSuppressesNoOpSelfMinusZero(t *testing.T) {
	var wr util.Writer
	emitSub(&wr, "t4", "t4", zero)
	if wr.String() != "" {
		t.Errorf("emitSub(t4, t4, x0) wrote %q, want nothing", wr.String())
	}
	emitSub(&wr, "t4", "t5", "t6")
	if !strings.Contains(wr.String(), "sub\tt4,t5,t6") {
		t.Errorf("emitSub(t4, t5, t6) wrote %q, want an actual sub", wr.String())
	}
}

func TestEmitXorSuppressesAllZeroForm(t *testing.T) {
	var wr util.Writer
	emitXor(&wr, zero, zero, zero)
	if wr.String() != "" {
		t.Errorf("emitXor(x0, x0, x0) wrote %q, want nothing", wr.String())
	}
	emitXor(&wr, "t4", "t5", "t6")
	if !strings.Contains(wr.String(), "xor\tt4,t5,t6") {
		t.Errorf("emitXor(t4, t5, t6) wrote %q, want an actual xor", wr.String())
	}
}

func TestAccessWithinImmediateRangeEmitsDirectly(t *testing.T) {
	var wr util.Writer
	access(&wr, "lw", "t4", 2040)
	out := wr.String()
	if !strings.Contains(out, "lw\tt4,2040(sp)") {
		t.Errorf("access() in range = %q, want a direct lw off sp", out)
	}
	if strings.Contains(out, "t0") {
		t.Errorf("access() in range = %q, should not touch t0", out)
	}
}

func TestAccessOutOfRangeMaterializesThroughT0(t *testing.T) {
	var wr util.Writer
	access(&wr, "sw", "t4", 5000)
	out := wr.String()
	if !strings.Contains(out, "li\tt0,5000") {
		t.Errorf("access() out of range = %q, want t0 materialization", out)
	}
	if !strings.Contains(out, "sw\tt4,0(t0)") {
		t.Errorf("access() out of range = %q, want the store off the materialized address", out)
	}
}

func TestAccessNegativeOffsetPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("access() with a negative offset did not panic")
		}
	}()
	var wr util.Writer
	access(&wr, "lw", "t4", -4)
}

func TestBinOpEmitRelationalLowering(t *testing.T) {
	tests := []struct {
		name string
		op   func(wr *util.Writer)
		want []string
	}{
		{"le", func(wr *util.Writer) { binOpEmit(wr, ir.Le, "t4", "t5", "t6") }, []string{"sgt\tt4,t5,t6", "seqz\tt4,t4"}},
		{"ge", func(wr *util.Writer) { binOpEmit(wr, ir.Ge, "t4", "t5", "t6") }, []string{"slt\tt4,t5,t6", "seqz\tt4,t4"}},
		{"eq", func(wr *util.Writer) { binOpEmit(wr, ir.Eq, "t4", "t5", "t6") }, []string{"xor\tt4,t5,t6", "seqz\tt4,t4"}},
		{"ne", func(wr *util.Writer) { binOpEmit(wr, ir.NotEq, "t4", "t5", "t6") }, []string{"xor\tt4,t5,t6", "snez\tt4,t4"}},
	}
	for _, tt := range tests {
		var wr util.Writer
		tt.op(&wr)
		out := wr.String()
		for _, want := range tt.want {
			if !strings.Contains(out, want) {
				t.Errorf("%s lowering = %q, want to contain %q", tt.name, out, want)
			}
		}
	}
}
