// Package riscv's top-level entry point: Generate walks a Program and
// produces a complete RISC-V 32-bit assembly listing.
package riscv

import (
	"strings"

	"sysyrv/src/ir"
)

// Generate emits a full assembly file for prog: a .text section followed by
// one .globl directive and function body per Function, in program order.
func Generate(prog *ir.Program) string {
	var sb strings.Builder
	sb.WriteString(".text\n")
	for _, fn := range prog.Funcs {
		sb.WriteString(".globl\t" + fn.Name + "\n")
		sb.WriteString(GenerateFunction(fn))
	}
	return sb.String()
}
