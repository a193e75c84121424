package riscv

import (
	"sysyrv/src/ir"
	"sysyrv/src/util"
)

// emitFrameAdjust writes sp's frame adjustment to wr: a negative delta
// in the prologue, positive in the epilogue. addi's 12-bit immediate range
// is the same one access() guards, so large frames fall back to
// materializing the delta through t0.
func emitFrameAdjust(wr *util.Writer, delta int) {
	if fitsImm12(delta) {
		wr.Ins2imm("addi", sp, sp, delta)
		return
	}
	wr.Li(t0, delta)
	wr.Ins3("add", sp, sp, t0)
}

// GenerateFunction lowers fn's body into a full RISC-V function: a label,
// the prologue growing the stack by fn's rounded frame size, the lowered
// entry-block instructions (Alloc and Load emit nothing; a Store or Binary
// may emit several), the epilogue shrinking the stack back, and a trailing
// ret.
func GenerateFunction(fn *ir.Function) string {
	c := NewContext()

	for _, h := range fn.Layout.Entry().Insts {
		lowerInst(c, fn, h)
	}

	aligned := roundUp16(c.FrameSize())
	if aligned > 0 {
		emitFrameAdjust(&c.Prologue, -aligned)
		emitFrameAdjust(&c.Epilogue, aligned)
	}

	var out util.Writer
	out.Label(fn.Name)
	out.WriteString(c.Prologue.String())
	out.WriteString(c.Body.String())
	out.WriteString(c.Epilogue.String())
	out.Write("\tret\n")
	out.Blank()
	return out.String()
}
