package riscv

import (
	"sysyrv/src/ir"
	"sysyrv/src/util"
)

// ----------------------------
// ----- peephole helpers -----
// ----------------------------

// emitLi writes `li rd, imm`, suppressing the instruction when rd is the
// hard-wired zero register
func emitLi(wr *util.Writer, rd string, imm int) {
	if rd == zero {
		return
	}
	wr.Li(rd, imm)
}

// emitMv writes `mv rd, rs`, suppressing the instruction when rd == rs
// (peephole: "suppress mv r,r").
func emitMv(wr *util.Writer, rd, rs string) {
	if rd == rs {
		return
	}
	wr.Ins2("mv", rd, rs)
}

// emitSub writes `sub rd, rs1, rs2`, suppressing the instruction when it is
// a no-op subtraction of zero from itself (peephole: "suppress sub r,r,x0").
func emitSub(wr *util.Writer, rd, rs1, rs2 string) {
	if rd == rs1 && rs2 == zero {
		return
	}
	wr.Ins3("sub", rd, rs1, rs2)
}

// emitXor writes `xor rd, rs1, rs2`, suppressing the instruction only in
// the exact all-zero-register form (peephole: "suppress xor x0,x0,x0").
func emitXor(wr *util.Writer, rd, rs1, rs2 string) {
	if rd == zero && rs1 == zero && rs2 == zero {
		return
	}
	wr.Ins3("xor", rd, rs1, rs2)
}

// ----------------------------
// ----- offset-safe access -----
// ----------------------------

// access emits a load or store of reg at byte offset from sp, materializing
// the address into t0 first when offset exceeds the 12-bit signed
// immediate range. A negative offset indicates a codegen bug and panics
// rather than emitting malformed assembly.
func access(wr *util.Writer, op, reg string, offset int) {
	if offset < 0 {
		panic("riscv: negative stack offset")
	}
	if fitsImm12(offset) {
		wr.LoadStore(op, reg, offset, sp)
		return
	}
	wr.Li(t0, offset)
	wr.Ins3("add", t0, t0, sp)
	wr.LoadStore(op, reg, 0, t0)
}

func (c *Context) emitLoad(wr *util.Writer, reg string, offset int) {
	access(wr, "lw", reg, offset)
}

func (c *Context) emitStore(wr *util.Writer, reg string, offset int) {
	access(wr, "sw", reg, offset)
}

// ----------------------------
// ----- operand resolution -----
// ----------------------------

// resolveOperand returns an assembler register name holding the value of
// IR value h, materializing it if necessary, and a release function the
// caller must invoke once the single emitted instruction using it has been
// written
func (c *Context) resolveOperand(wr *util.Writer, fn *ir.Function, h ir.Handle) (string, func()) {
	v := fn.DFG.Value(h)
	if v.Kind == ir.KindInteger {
		if v.IntVal == 0 {
			// Substitute the hard-wired zero register; emit no li
			//
			return zero, func() {}
		}
		if name, ok := c.general.Alloc(h); ok {
			emitLi(wr, name, int(v.IntVal))
			return name, func() { c.FreeGeneral(h) }
		}
		// General pool exhausted: materialize directly into a reserved
		// scratch instead of spilling a literal to a stack slot only to
		// immediately reload it.
		s := c.AcquireScratch()
		emitLi(wr, s, int(v.IntVal))
		return s, func() { c.ReleaseScratch(s) }
	}

	loc := c.Location(h)
	if loc.Kind == LocReg {
		return loc.Reg, func() {}
	}
	s := c.AcquireScratch()
	c.emitLoad(wr, s, loc.Offset)
	return s, func() { c.ReleaseScratch(s) }
}

// ----------------------------
// ----- per-instruction lowering -----
// ----------------------------

// lowerInst lowers a single IR instruction, dispatching on its Kind
//
func lowerInst(c *Context, fn *ir.Function, h ir.Handle) {
	v := fn.DFG.Value(h)
	wr := &c.Body
	switch v.Kind {
	case ir.KindAlloc:
		lowerAlloc(c, h)
	case ir.KindLoad:
		lowerLoad(c, h, v)
	case ir.KindStore:
		lowerStore(c, wr, fn, v)
	case ir.KindBinary:
		lowerBinaryInst(c, wr, fn, h, v)
	case ir.KindReturn:
		lowerReturn(c, wr, fn, v)
	case ir.KindInteger, ir.KindUndef:
		// Constants and undef never appear directly in a block's
		// instruction layout: a literal number is a value in the DFG,
		// not an instruction appended to a block.
	}
	c.AssertScratchesReleased()
}

func lowerAlloc(c *Context, h ir.Handle) {
	c.AllocSlot(h)
}

func lowerLoad(c *Context, h ir.Handle, v ir.Value) {
	c.Alias(h, v.Src)
}

func lowerStore(c *Context, wr *util.Writer, fn *ir.Function, v ir.Value) {
	dstLoc := c.Location(v.StoreDst)
	srcVal := fn.DFG.Value(v.StoreVal)

	if srcVal.Kind == ir.KindInteger {
		if dstLoc.Kind == LocReg {
			emitLi(wr, dstLoc.Reg, int(srcVal.IntVal))
			return
		}
		s := c.AcquireScratch()
		emitLi(wr, s, int(srcVal.IntVal))
		c.emitStore(wr, s, dstLoc.Offset)
		c.ReleaseScratch(s)
		return
	}

	srcLoc := c.Location(v.StoreVal)
	switch {
	case srcLoc.Kind == LocReg && dstLoc.Kind == LocReg:
		emitMv(wr, dstLoc.Reg, srcLoc.Reg)
	case srcLoc.Kind == LocReg && dstLoc.Kind == LocSlot:
		c.emitStore(wr, srcLoc.Reg, dstLoc.Offset)
	case srcLoc.Kind == LocSlot && dstLoc.Kind == LocReg:
		c.emitLoad(wr, dstLoc.Reg, srcLoc.Offset)
	default: // both slots
		s := c.AcquireScratch()
		c.emitLoad(wr, s, srcLoc.Offset)
		c.emitStore(wr, s, dstLoc.Offset)
		c.ReleaseScratch(s)
	}
}

func lowerReturn(c *Context, wr *util.Writer, fn *ir.Function, v ir.Value) {
	if !v.HasRetVal {
		return
	}
	rv := fn.DFG.Value(v.RetVal)
	switch rv.Kind {
	case ir.KindInteger:
		emitLi(wr, a0, int(rv.IntVal))
	case ir.KindUndef:
		// No move: an undef result leaves a0 unspecified by design.
	default:
		loc := c.Location(v.RetVal)
		if loc.Kind == LocReg {
			emitMv(wr, a0, loc.Reg)
		} else {
			c.emitLoad(wr, a0, loc.Offset)
		}
	}
}

// binOpEmit maps an ir.BinaryOp to its RISC-V instruction sequence,
// writing against dst, l, r.
func binOpEmit(wr *util.Writer, op ir.BinaryOp, dst, l, r string) {
	switch op {
	case ir.Add:
		wr.Ins3("add", dst, l, r)
	case ir.Sub:
		emitSub(wr, dst, l, r)
	case ir.Mul:
		wr.Ins3("mul", dst, l, r)
	case ir.Div:
		wr.Ins3("div", dst, l, r)
	case ir.Mod:
		wr.Ins3("rem", dst, l, r)
	case ir.And:
		wr.Ins3("and", dst, l, r)
	case ir.Or:
		wr.Ins3("or", dst, l, r)
	case ir.Lt:
		wr.Ins3("slt", dst, l, r)
	case ir.Gt:
		wr.Ins3("sgt", dst, l, r)
	case ir.Le:
		wr.Ins3("sgt", dst, l, r)
		wr.Ins2("seqz", dst, dst)
	case ir.Ge:
		wr.Ins3("slt", dst, l, r)
		wr.Ins2("seqz", dst, dst)
	case ir.Eq:
		emitXor(wr, dst, l, r)
		wr.Ins2("seqz", dst, dst)
	case ir.NotEq:
		emitXor(wr, dst, l, r)
		wr.Ins2("snez", dst, dst)
	}
}

func lowerBinaryInst(c *Context, wr *util.Writer, fn *ir.Function, h ir.Handle, v ir.Value) {
	resultLoc := c.AllocReg(h)

	lReg, lRelease := c.resolveOperand(wr, fn, v.LHS)
	rReg, rRelease := c.resolveOperand(wr, fn, v.RHS)

	var dstReg, resultScratch string
	storeAfter := resultLoc.Kind == LocSlot
	if storeAfter {
		resultScratch = c.AcquireScratch()
		dstReg = resultScratch
	} else {
		dstReg = resultLoc.Reg
	}

	binOpEmit(wr, v.Op, dstReg, lReg, rReg)

	if storeAfter {
		c.emitStore(wr, resultScratch, resultLoc.Offset)
		c.ReleaseScratch(resultScratch)
	}

	// Live-range heuristic: free registers allocated purely to hold a
	// literal operand, but leave registers holding the result of another
	// instruction alone -- this flow-insensitive allocator has no
	// use-count to decide otherwise.
	lRelease()
	rRelease()
}
