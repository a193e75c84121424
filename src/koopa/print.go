// Package koopa implements the textual intermediate-representation printer
// for the compiler's "-koopa" output mode: functions begin with
// "fun @name(): type", basic blocks are labeled "%entry:", and instructions
// print one per line with SSA-style operand references. This implementation
// is intentionally minimal -- it exists so "-koopa" has something to emit --
// styled after the SSA text dump ir_gen.rs builds before handing off to
// codegen.
package koopa

import (
	"fmt"
	"strings"

	"sysyrv/src/ir"
)

// Print renders prog as Koopa-like textual IR.
func Print(prog *ir.Program) string {
	var sb strings.Builder
	for i, fn := range prog.Funcs {
		if i > 0 {
			sb.WriteByte('\n')
		}
		printFunction(&sb, fn)
	}
	return sb.String()
}

func printFunction(sb *strings.Builder, fn *ir.Function) {
	fmt.Fprintf(sb, "fun @%s(): %s {\n", fn.Name, fn.RetType)
	for _, blk := range fn.Layout.Blocks {
		fmt.Fprintf(sb, "%%%s:\n", blk.Name)
		for _, h := range blk.Insts {
			v := fn.DFG.Value(h)
			sb.WriteString("  ")
			sb.WriteString(refName(h))
			sb.WriteString(" = ")
			printValue(sb, fn, v)
			sb.WriteByte('\n')
		}
	}
	sb.WriteString("}\n")
}

// refName returns the SSA-style operand reference for a Handle.
func refName(h ir.Handle) string {
	return fmt.Sprintf("%%%d", int(h))
}

// operand returns the printed form of the value held at h: a literal for
// Integer values, a reference for everything else.
func operand(fn *ir.Function, h ir.Handle) string {
	if h == ir.Invalid {
		return ""
	}
	v := fn.DFG.Value(h)
	if v.Kind == ir.KindInteger {
		return fmt.Sprintf("%d", v.IntVal)
	}
	return refName(h)
}

func printValue(sb *strings.Builder, fn *ir.Function, v ir.Value) {
	switch v.Kind {
	case ir.KindInteger:
		fmt.Fprintf(sb, "%d", v.IntVal)
	case ir.KindAlloc:
		sb.WriteString("alloc i32")
	case ir.KindLoad:
		fmt.Fprintf(sb, "load %s", operand(fn, v.Src))
	case ir.KindStore:
		fmt.Fprintf(sb, "store %s, %s", operand(fn, v.StoreVal), operand(fn, v.StoreDst))
	case ir.KindBinary:
		fmt.Fprintf(sb, "%s %s, %s", v.Op, operand(fn, v.LHS), operand(fn, v.RHS))
	case ir.KindReturn:
		if v.HasRetVal {
			fmt.Fprintf(sb, "ret %s", operand(fn, v.RetVal))
		} else {
			sb.WriteString("ret")
		}
	case ir.KindUndef:
		sb.WriteString("undef")
	}
}
