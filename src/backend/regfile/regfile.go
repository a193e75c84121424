// Package regfile provides the virtual register file type used by the
// RISC-V backend's one-shot, flow-insensitive allocator.
//
// This is a material narrowing of vslc's original regfile: its
// Register/RegisterFile interfaces (src/backend/regfile/
// regfile.go, prior to adaptation) modeled a multi-architecture register
// file with a parallel integer and floating-point bank, SP/FP/LR accessors,
// and least-recently-used eviction. This language subset has exactly one
// data type -- a 32-bit signed integer -- and no calls, so there is no LR,
// no float bank, and no eviction policy to speak of -- only a flat pool of
// interchangeable general registers plus a handful of scratch registers
// reserved outside the pool.
package regfile

import "sysyrv/src/ir"

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// general is one entry of a File's register pool.
type general struct {
	name  string
	busy  bool
	owner ir.Handle // the IR value currently resident, meaningful iff busy.
}

// File is a pool of general-purpose registers. A register is "busy" iff
// some live IR value maps to it; reserved scratch registers are never
// tracked by a File -- they live outside the value-to-location map
// entirely.
type File struct {
	regs []general
}

// ---------------------
// ----- functions -----
// ---------------------

// New returns a File whose pool is exactly the given register names, all
// initially free.
func New(names []string) *File {
	f := &File{regs: make([]general, len(names))}
	for i, n := range names {
		f.regs[i] = general{name: n}
	}
	return f
}

// Alloc returns the name of a free register and marks it busy, owned by h.
// The second return value is false if every register in the pool is
// currently busy. Running out of general registers is never fatal in this
// core: callers fall back to a stack slot rather than treating this as an
// error.
func (f *File) Alloc(h ir.Handle) (string, bool) {
	for i := range f.regs {
		if !f.regs[i].busy {
			f.regs[i].busy = true
			f.regs[i].owner = h
			return f.regs[i].name, true
		}
	}
	return "", false
}

// Free releases the register holding h, if any. Freeing a register that is
// not currently owned by h is a no-op.
func (f *File) Free(h ir.Handle) {
	for i := range f.regs {
		if f.regs[i].busy && f.regs[i].owner == h {
			f.regs[i].busy = false
			f.regs[i].owner = Invalid
		}
	}
}

// Invalid mirrors ir.Invalid for registers that hold no owner.
const Invalid = ir.Invalid

// BusyCount returns the number of currently busy registers in the pool,
// used by tests asserting register discipline.
func (f *File) BusyCount() int {
	n := 0
	for _, r := range f.regs {
		if r.busy {
			n++
		}
	}
	return n
}
