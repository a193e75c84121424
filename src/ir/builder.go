package ir

import (
	"sysyrv/src/ast"
	"sysyrv/src/diag"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// builder holds the per-function state needed to lower a FuncDef's body
// into IR: the function under construction, its flat symbol table, the
// diagnostic bag shared for the whole build, and bookkeeping for the
// "tail expression value" return-synthesis rule
type builder struct {
	fn  *Function
	sym *SymbolTable
	bag *diag.Bag

	lastWasExp  bool   // true if the most recently lowered statement was an Exp statement.
	lastExpVal  Handle // valid only if lastWasExp && lastExpHasVal.
	lastExpHasVal bool
}

// ---------------------
// ----- functions -----
// ---------------------

// Build lowers a parsed CompUnit into a Program. Diagnostics accumulated
// during the build (duplicate symbols, undeclared identifiers, etc.) are
// returned in the diag.Bag regardless of whether building succeeded; the
// caller decides whether to proceed to codegen based on bag.HasErrors().
func Build(cu *ast.CompUnit) (*Program, *diag.Bag) {
	bag := &diag.Bag{}
	fn := buildFunction(cu.Func, bag)
	return &Program{Funcs: []*Function{fn}}, bag
}

// buildFunction lowers a single FuncDef into a Function.
func buildFunction(fd *ast.FuncDef, bag *diag.Bag) *Function {
	retType := TypeI32
	if fd.ReturnType == ast.Void {
		retType = TypeUnit
	}

	b := &builder{
		fn:  NewFunction(fd.Name, retType),
		sym: NewSymbolTable(),
		bag: bag,
	}

	for _, item := range fd.Body.Items {
		if !b.lowerBlockItem(item) {
			// This function's lowering aborts on first failure, but
			// diagnostics already queued (here and by earlier sibling
			// items) remain in bag.
			break
		}
	}

	b.synthesizeReturn(fd)
	return b.fn
}

// lowerBlockItem dispatches a Decl or a Stmt. It returns false if lowering
// failed and the caller should stop processing further items.
func (b *builder) lowerBlockItem(item ast.BlockItem) bool {
	if item.Decl != nil {
		return b.lowerDecl(item.Decl)
	}
	return b.lowerStmt(item.Stmt)
}

// lowerDecl handles ConstDecl and VarDecl.
func (b *builder) lowerDecl(d *ast.Decl) bool {
	switch d.Kind {
	case ast.DeclConst:
		ok := true
		for _, def := range d.ConstDefs {
			v, evalOk := EvalConst(def.InitExp, b.sym, b.bag)
			if !evalOk {
				ok = false
				continue
			}
			if !b.sym.Define(def.Name, Symbol{Kind: SymConst, ConstVal: v}) {
				b.bag.Errorf([]diag.Label{diag.PrimaryLabel(toSpan(def.Span), "")},
					"duplicate symbol %q found.", def.Name)
				ok = false
			}
		}
		return ok

	case ast.DeclVar:
		ok := true
		for _, def := range d.VarDefs {
			alloc := b.fn.Append(b.fn.DFG.New(Value{Kind: KindAlloc, Ty: TypeI32}))
			if !b.sym.Define(def.Name, Symbol{Kind: SymVar, Alloc: alloc}) {
				b.bag.Errorf([]diag.Label{diag.PrimaryLabel(toSpan(def.Span), "")},
					"duplicate symbol %q found.", def.Name)
				ok = false
				continue
			}
			if def.InitExp != nil {
				val, expOk := b.lowerExp(def.InitExp)
				if !expOk {
					ok = false
					continue
				}
				b.fn.Append(b.fn.DFG.New(Value{Kind: KindStore, StoreVal: val, StoreDst: alloc}))
			}
		}
		return ok
	}
	return false
}

// lowerStmt handles Assign and Exp statements.
func (b *builder) lowerStmt(s *ast.Stmt) bool {
	switch s.Kind {
	case ast.StmtAssign:
		sym, found := b.sym.Lookup(s.LVal.Name)
		if !found {
			b.bag.Errorf([]diag.Label{diag.PrimaryLabel(toSpan(s.LVal.Span), "")},
				"use of undeclared identifier %q", s.LVal.Name)
			return false
		}
		if sym.Kind == SymConst {
			b.bag.Errorf([]diag.Label{diag.PrimaryLabel(toSpan(s.LVal.Span), "")},
				"cannot assign to const %q", s.LVal.Name)
			return false
		}
		val, ok := b.lowerExp(s.AssignExp)
		if !ok {
			return false
		}
		b.fn.Append(b.fn.DFG.New(Value{Kind: KindStore, StoreVal: val, StoreDst: sym.Alloc}))
		b.lastWasExp = false
		return true

	case ast.StmtExp:
		b.lastWasExp = true
		if s.Exp == nil {
			b.lastExpHasVal = false
			return true
		}
		val, ok := b.lowerExp(s.Exp)
		if !ok {
			b.lastExpHasVal = false
			return false
		}
		b.lastExpVal = val
		b.lastExpHasVal = true
		return true
	}
	return false
}

// lowerExp lowers the layered expression grammar bottom-up into IR values.
func (b *builder) lowerExp(e ast.Exp) (Handle, bool) {
	switch n := e.(type) {
	case *ast.NumberExp:
		// Integer literals are DFG-resident constants, not appended to the
		// block
		return b.fn.DFG.New(Value{Kind: KindInteger, Ty: TypeI32, IntVal: n.Value}), true

	case *ast.ParenExp:
		return b.lowerExp(n.X)

	case *ast.LValExp:
		sym, found := b.sym.Lookup(n.Name)
		if !found {
			b.bag.Errorf([]diag.Label{diag.PrimaryLabel(toSpan(n.Span), "")},
				"use of undeclared identifier %q", n.Name)
			return Invalid, false
		}
		if sym.Kind == SymConst {
			return b.fn.DFG.New(Value{Kind: KindInteger, Ty: TypeI32, IntVal: sym.ConstVal}), true
		}
		return b.fn.Append(b.fn.DFG.New(Value{Kind: KindLoad, Ty: TypeI32, Src: sym.Alloc})), true

	case *ast.UnaryExp:
		switch n.Op {
		case ast.UnaryPlus:
			return b.lowerExp(n.X)
		case ast.UnaryMinus:
			x, ok := b.lowerExp(n.X)
			if !ok {
				return Invalid, false
			}
			zero := b.fn.DFG.New(Value{Kind: KindInteger, Ty: TypeI32})
			return b.fn.Append(b.fn.DFG.New(Value{Kind: KindBinary, Ty: TypeI32, Op: Sub, LHS: zero, RHS: x})), true
		case ast.UnaryNot:
			x, ok := b.lowerExp(n.X)
			if !ok {
				return Invalid, false
			}
			zero := b.fn.DFG.New(Value{Kind: KindInteger, Ty: TypeI32})
			return b.fn.Append(b.fn.DFG.New(Value{Kind: KindBinary, Ty: TypeI32, Op: Eq, LHS: x, RHS: zero})), true
		}

	case *ast.BinaryExp:
		return b.lowerBinary(n)
	}
	return Invalid, false
}

// binOpMap maps the AST's arithmetic, relational and equality operators
// directly onto the IR BinaryOp of the same name.
var binOpMap = map[ast.BinOp]BinaryOp{
	ast.OpAdd: Add,
	ast.OpSub: Sub,
	ast.OpMul: Mul,
	ast.OpDiv: Div,
	ast.OpMod: Mod,
	ast.OpLt:  Lt,
	ast.OpLe:  Le,
	ast.OpGt:  Gt,
	ast.OpGe:  Ge,
	ast.OpEq:  Eq,
	ast.OpNe:  NotEq,
}

func (b *builder) lowerBinary(n *ast.BinaryExp) (Handle, bool) {
	if op, direct := binOpMap[n.Op]; direct {
		l, lok := b.lowerExp(n.L)
		r, rok := b.lowerExp(n.R)
		if !lok || !rok {
			return Invalid, false
		}
		return b.fn.Append(b.fn.DFG.New(Value{Kind: KindBinary, Ty: TypeI32, Op: op, LHS: l, RHS: r})), true
	}

	// a && b lowers to binary(And, binary(NotEq, a, 0), binary(NotEq, b, 0)).
	// a || b lowers to binary(Or, binary(NotEq, a, 0), binary(NotEq, b, 0)).
	// These are bitwise-on-normalized-booleans, not short-circuited at
	// runtime
	l, lok := b.lowerExp(n.L)
	r, rok := b.lowerExp(n.R)
	if !lok || !rok {
		return Invalid, false
	}
	zero1 := b.fn.DFG.New(Value{Kind: KindInteger, Ty: TypeI32})
	zero2 := b.fn.DFG.New(Value{Kind: KindInteger, Ty: TypeI32})
	nl := b.fn.Append(b.fn.DFG.New(Value{Kind: KindBinary, Ty: TypeI32, Op: NotEq, LHS: l, RHS: zero1}))
	nr := b.fn.Append(b.fn.DFG.New(Value{Kind: KindBinary, Ty: TypeI32, Op: NotEq, LHS: r, RHS: zero2}))

	var combOp BinaryOp
	if n.Op == ast.OpLAnd {
		combOp = And
	} else {
		combOp = Or
	}
	return b.fn.Append(b.fn.DFG.New(Value{Kind: KindBinary, Ty: TypeI32, Op: combOp, LHS: nl, RHS: nr})), true
}

// synthesizeReturn appends the function's terminal Return.
func (b *builder) synthesizeReturn(fd *ast.FuncDef) {
	if b.lastWasExp && b.lastExpHasVal {
		b.fn.Append(b.fn.DFG.New(Value{Kind: KindReturn, Ty: TypeUnit, RetVal: b.lastExpVal, HasRetVal: true}))
		return
	}

	if b.fn.RetType != TypeUnit {
		b.bag.Warnf([]diag.Label{diag.PrimaryLabel(toSpan(fd.Span), "")},
			"control reaches end of non-void function %q without a returning expression", fd.Name)
		zero := b.fn.DFG.New(Value{Kind: KindInteger, Ty: TypeI32})
		b.fn.Append(b.fn.DFG.New(Value{Kind: KindReturn, Ty: TypeUnit, RetVal: zero, HasRetVal: true}))

		if fd.Name == "main" && fd.ReturnType == ast.Int {
			b.bag.Warnf([]diag.Label{diag.PrimaryLabel(toSpan(fd.Span), "")},
				"`main` doesn't return an integer")
		}
		return
	}

	b.fn.Append(b.fn.DFG.New(Value{Kind: KindReturn, Ty: TypeUnit, RetVal: Invalid, HasRetVal: false}))
}
