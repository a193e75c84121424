package riscv

import (
	"fmt"

	"sysyrv/src/backend/regfile"
	"sysyrv/src/ir"
	"sysyrv/src/util"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// LocKind distinguishes the two places an IR value's result can live
//
type LocKind int

const (
	LocReg LocKind = iota
	LocSlot
)

// Location is where a single IR value currently resides.
type Location struct {
	Kind   LocKind
	Reg    string // meaningful iff Kind == LocReg
	Offset int    // meaningful iff Kind == LocSlot; always >= 0 and a multiple of 4.
}

// Context is the per-function codegen context: it owns the three output
// buffers, the frame-size counter, the value-to-location map, the general
// register pool and the reserved-scratch busy flags. It is created on
// function entry and entirely discarded on exit: the register busy map,
// reserved-scratch map, frame counter, and symbol map are all reset per
// function.
type Context struct {
	Prologue util.Writer
	Body     util.Writer
	Epilogue util.Writer

	frameSize int
	locs      map[ir.Handle]Location
	general   *regfile.File
	scratch   [len(scratchPool)]bool
}

// ---------------------
// ----- functions -----
// ---------------------

// NewContext returns a freshly reset per-function codegen context.
func NewContext() *Context {
	return &Context{
		locs:    make(map[ir.Handle]Location),
		general: newGeneralFile(),
	}
}

// AllocSlot reserves the next stack slot, advances the frame-size counter
// by one word, and records it as h's location. Slot offsets are always
// non-negative multiples of 4
func (c *Context) AllocSlot(h ir.Handle) Location {
	loc := Location{Kind: LocSlot, Offset: c.frameSize}
	c.frameSize += wordSize
	c.locs[h] = loc
	return loc
}

// AllocReg tries to allocate a free general register for h. If the pool is
// exhausted it spills to a fresh stack slot instead -- never fatal in this
// core.
func (c *Context) AllocReg(h ir.Handle) Location {
	if name, ok := c.general.Alloc(h); ok {
		loc := Location{Kind: LocReg, Reg: name}
		c.locs[h] = loc
		return loc
	}
	return c.AllocSlot(h)
}

// Alias records h as resolving to the same Location as src, used by Load
// deferral: no load is emitted at the Load instruction itself, only at its
// use sites.
func (c *Context) Alias(h, src ir.Handle) Location {
	loc := c.locs[src]
	c.locs[h] = loc
	return loc
}

// Location returns h's current Location. Panics if h has no recorded
// location, which indicates a codegen ordering bug: every instruction must
// resolve a location for its result before any later instruction can
// reference it.
func (c *Context) Location(h ir.Handle) Location {
	loc, ok := c.locs[h]
	if !ok {
		panic(fmt.Sprintf("riscv: no location recorded for value %%%d", int(h)))
	}
	return loc
}

// FreeGeneral releases the general register holding h, if it holds one.
// Used by the live-range heuristic to free registers that only ever held a
// literal operand.
func (c *Context) FreeGeneral(h ir.Handle) {
	c.general.Free(h)
}

// AcquireScratch returns the name of a free reserved-scratch register from
// the t1..t3 pool and marks it busy. It panics if all three are already
// held, which would indicate a single instruction trying to materialize
// more concurrent scratch operands than this core budgets for.
func (c *Context) AcquireScratch() string {
	for i, busy := range c.scratch {
		if !busy {
			c.scratch[i] = true
			return scratchPool[i]
		}
	}
	panic("riscv: reserved scratch pool exhausted")
}

// ReleaseScratch frees a scratch register acquired via AcquireScratch.
func (c *Context) ReleaseScratch(name string) {
	for i, n := range scratchPool {
		if n == name {
			c.scratch[i] = false
			return
		}
	}
}

// FrameSize returns the number of bytes of stack currently allocated to
// Alloc instructions in this function, before 16-byte rounding.
func (c *Context) FrameSize() int {
	return c.frameSize
}

// AssertScratchesReleased panics if any reserved scratch is still held
// after lowering a single IR instruction -- the register-discipline
// invariant this allocator must maintain.
func (c *Context) AssertScratchesReleased() {
	for i, busy := range c.scratch {
		if busy {
			panic(fmt.Sprintf("riscv: scratch register %s leaked across instruction boundary", scratchPool[i]))
		}
	}
}
