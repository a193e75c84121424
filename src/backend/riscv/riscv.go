// Package riscv implements a one-shot, flow-insensitive register/stack
// allocator and RISC-V 32-bit assembly emitter walking the IR built by
// package ir.
//
// The register constants and the Writer-based emission style are adapted
// from vslc's backend/riscv package (src/backend/riscv/riscv.go),
// narrowed to a small fixed register file: general registers with busy
// flags, plus a disjoint reserved-scratch set (t0 fixed, t1..t3 pooled)
// that is never recorded in the value-to-location map.
package riscv

import (
	"sysyrv/src/backend/regfile"
)

// ----------------------------
// ----- constants -----
// ----------------------------

// zero is the hard-wired zero register; substituting it for a literal 0
// operand lets codegen skip an `li` entirely
const zero = "x0"

// sp and a0 are the only architectural registers this core's calling
// convention cares about: the stack pointer, adjusted in the prologue and
// epilogue, and the return-value register.
const sp = "sp"
const a0 = "a0"

// t0 is fixed scratch: never acquired through the reserved-scratch pool,
// always available for address/immediate materialization. Any routine may
// clobber it while materializing a large immediate or computing an
// out-of-range address offset.
const t0 = "t0"

// scratchPool holds the reserved scratch registers acquired transiently
// during the lowering of a single instruction.
var scratchPool = [...]string{"t1", "t2", "t3"}

// generalRegNames is the pool of interchangeable general registers that may
// hold a live IR value across instructions. Since this language subset has
// no function calls, the caller/callee-save distinction that would
// normally constrain this choice doesn't apply; the pool simply picks
// registers left over once sp, a0, and the scratch set are accounted for.
var generalRegNames = []string{
	"t4", "t5", "t6",
	"s1", "s2", "s3", "s4", "s5", "s6", "s7", "s8", "s9", "s10", "s11",
}

// maxImm and minImm bound the 12-bit signed immediate RISC-V's addi/lw/sw
// instructions accept
const maxImm = 2047
const minImm = -2048

// stackAlign is the mandatory stack alignment
const stackAlign = 16

// wordSize is this core's only scalar width: 4-byte (32-bit) integers.
const wordSize = 4

// newGeneralFile returns a fresh general-register pool for one function.
func newGeneralFile() *regfile.File {
	return regfile.New(generalRegNames)
}

// fitsImm12 reports whether v fits in a signed 12-bit immediate.
func fitsImm12(v int) bool {
	return v >= minImm && v <= maxImm
}

// roundUp16 rounds n up to the next multiple of 16, the mandatory stack
// alignment for the emitted frame size.
func roundUp16(n int) int {
	if rem := n % stackAlign; rem != 0 {
		return n + (stackAlign - rem)
	}
	return n
}
