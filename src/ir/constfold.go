package ir

import (
	"sysyrv/src/ast"
	"sysyrv/src/diag"
)

// ----------------------------
// ----- functions -----
// ----------------------------

// EvalConst recursively folds expression node n to an i32 value, for use as
// a const declaration's initializer. It is pure: it never touches a
// Function's DFG or block layout.
//
// Identifier lookups only resolve Const symbols; finding a Var symbol or no
// symbol at all is reported to bag and EvalConst returns ok == false.
// Division and modulo by zero are likewise reported rather than evaluated.
func EvalConst(n ast.Exp, st *SymbolTable, bag *diag.Bag) (int32, bool) {
	switch e := n.(type) {
	case *ast.NumberExp:
		return e.Value, true

	case *ast.ParenExp:
		return EvalConst(e.X, st, bag)

	case *ast.LValExp:
		sym, ok := st.Lookup(e.Name)
		if !ok {
			bag.Errorf([]diag.Label{diag.PrimaryLabel(toSpan(e.Span), "")},
				"use of undeclared identifier %q", e.Name)
			return 0, false
		}
		if sym.Kind != SymConst {
			bag.Errorf([]diag.Label{diag.PrimaryLabel(toSpan(e.Span), "")},
				"variable %q found in const value definition", e.Name)
			return 0, false
		}
		return sym.ConstVal, true

	case *ast.UnaryExp:
		x, ok := EvalConst(e.X, st, bag)
		if !ok {
			return 0, false
		}
		switch e.Op {
		case ast.UnaryPlus:
			return x, true
		case ast.UnaryMinus:
			return -x, true
		case ast.UnaryNot:
			return boolToI32(x == 0), true
		}
		return 0, false

	case *ast.BinaryExp:
		// Logical && and || are evaluated as (l!=0)&&(r!=0) and
		// (l!=0)||(r!=0) over pure integers: they are NOT short-circuited
		// at compile time, so both operands are always folded even when
		// one would render the other's evaluation moot at runtime.
		l, lok := EvalConst(e.L, st, bag)
		r, rok := EvalConst(e.R, st, bag)
		if !lok || !rok {
			return 0, false
		}
		switch e.Op {
		case ast.OpAdd:
			return l + r, true
		case ast.OpSub:
			return l - r, true
		case ast.OpMul:
			return l * r, true
		case ast.OpDiv:
			if r == 0 {
				bag.Errorf([]diag.Label{diag.PrimaryLabel(toSpan(e.Span), "")}, "division by zero in constant expression")
				return 0, false
			}
			return l / r, true
		case ast.OpMod:
			if r == 0 {
				bag.Errorf([]diag.Label{diag.PrimaryLabel(toSpan(e.Span), "")}, "modulo by zero in constant expression")
				return 0, false
			}
			return l % r, true
		case ast.OpLt:
			return boolToI32(l < r), true
		case ast.OpLe:
			return boolToI32(l <= r), true
		case ast.OpGt:
			return boolToI32(l > r), true
		case ast.OpGe:
			return boolToI32(l >= r), true
		case ast.OpEq:
			return boolToI32(l == r), true
		case ast.OpNe:
			return boolToI32(l != r), true
		case ast.OpLAnd:
			return boolToI32(l != 0 && r != 0), true
		case ast.OpLOr:
			return boolToI32(l != 0 || r != 0), true
		}
	}
	return 0, false
}

func boolToI32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func toSpan(s ast.Span) diag.Span {
	return diag.Span{Start: s.Start, End: s.End}
}
