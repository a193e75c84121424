package ir

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// BasicBlock is a maximal straight-line instruction sequence, terminated by
// at most one Return. This core never builds more than one block per
// function -- there is no control flow to branch on -- but the layout is
// modeled as a slice of blocks so a future extension adding branches has
// somewhere to put them without reshaping Function.
type BasicBlock struct {
	Name  string
	Insts []Handle
}

// Append records h as the next instruction appended to the block's layout.
func (b *BasicBlock) Append(h Handle) {
	b.Insts = append(b.Insts, h)
}

// Layout is the ordered sequence of a Function's basic blocks.
type Layout struct {
	Blocks []*BasicBlock
}

// Entry returns the function's single entry block, the starting point for
// every lowered function body.
func (l *Layout) Entry() *BasicBlock {
	if len(l.Blocks) == 0 {
		return nil
	}
	return l.Blocks[0]
}

// Function is one lowered function: its name, return type, value arena, and
// block layout.
type Function struct {
	Name    string
	RetType Type
	DFG     DFG
	Layout  Layout
}

// NewFunction returns a Function with a single entry block appended to its
// layout, ready for the builder to lower a body into.
func NewFunction(name string, ret Type) *Function {
	f := &Function{Name: name, RetType: ret}
	f.Layout.Blocks = append(f.Layout.Blocks, &BasicBlock{Name: "entry"})
	return f
}

// Append appends h to the function's entry block and returns h, a small
// convenience used throughout the builder to keep "mint a value, then file
// it into the block" as one call when the value is one the caller also
// wants to forward.
func (f *Function) Append(h Handle) Handle {
	f.Layout.Entry().Append(h)
	return h
}
