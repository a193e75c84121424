package ir

import (
	"testing"

	"sysyrv/src/ast"
	"sysyrv/src/diag"
)

func num(v int32) *ast.NumberExp { return &ast.NumberExp{Value: v} }

func bin(op ast.BinOp, l, r ast.Exp) *ast.BinaryExp {
	return &ast.BinaryExp{Op: op, L: l, R: r}
}

func TestEvalConstLiteral(t *testing.T) {
	var bag diag.Bag
	st := NewSymbolTable()
	v, ok := EvalConst(num(42), st, &bag)
	if !ok || v != 42 {
		t.Errorf("EvalConst(42) = (%d, %v), want (42, true)", v, ok)
	}
	if bag.HasErrors() {
		t.Errorf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestEvalConstArithmeticWraparound(t *testing.T) {
	var bag diag.Bag
	st := NewSymbolTable()
	// 2147483647 + 1 must wrap to the minimum int32 value under two's
	// complement arithmetic.
	lit := &ast.NumberExp{Value: 2147483647}
	v, ok := EvalConst(bin(ast.OpAdd, lit, num(1)), st, &bag)
	if !ok {
		t.Fatalf("EvalConst() ok = false, want true")
	}
	if v != -2147483648 {
		t.Errorf("EvalConst(MaxInt32+1) = %d, want -2147483648", v)
	}
}

func TestEvalConstConstSymbolSubstitution(t *testing.T) {
	var bag diag.Bag
	st := NewSymbolTable()
	st.Define("a", Symbol{Kind: SymConst, ConstVal: 10})
	v, ok := EvalConst(bin(ast.OpMul, &ast.LValExp{Name: "a"}, num(3)), st, &bag)
	if !ok || v != 30 {
		t.Errorf("EvalConst(a*3) = (%d, %v), want (30, true)", v, ok)
	}
}

func TestEvalConstUndeclaredIdentifier(t *testing.T) {
	var bag diag.Bag
	st := NewSymbolTable()
	_, ok := EvalConst(&ast.LValExp{Name: "missing"}, st, &bag)
	if ok {
		t.Fatalf("EvalConst() ok = true, want false for an undeclared identifier")
	}
	if !bag.HasErrors() {
		t.Errorf("expected a diagnostic for the undeclared identifier")
	}
}

func TestEvalConstVarSymbolRejected(t *testing.T) {
	var bag diag.Bag
	st := NewSymbolTable()
	st.Define("x", Symbol{Kind: SymVar, Alloc: 1})
	_, ok := EvalConst(&ast.LValExp{Name: "x"}, st, &bag)
	if ok {
		t.Fatalf("EvalConst() ok = true, want false for a variable used in a const expression")
	}
	if !bag.HasErrors() {
		t.Errorf("expected a diagnostic for the variable reference")
	}
}

func TestEvalConstDivisionByZero(t *testing.T) {
	var bag diag.Bag
	st := NewSymbolTable()
	_, ok := EvalConst(bin(ast.OpDiv, num(1), num(0)), st, &bag)
	if ok {
		t.Fatalf("EvalConst(1/0) ok = true, want false")
	}
	if bag.CountErrors() != 1 {
		t.Errorf("CountErrors() = %d, want 1", bag.CountErrors())
	}
}

func TestEvalConstModuloByZero(t *testing.T) {
	var bag diag.Bag
	st := NewSymbolTable()
	_, ok := EvalConst(bin(ast.OpMod, num(7), num(0)), st, &bag)
	if ok {
		t.Fatalf("EvalConst(7%%0) ok = true, want false")
	}
	if bag.CountErrors() != 1 {
		t.Errorf("CountErrors() = %d, want 1", bag.CountErrors())
	}
}

func TestEvalConstLogicalOperatorsNotShortCircuited(t *testing.T) {
	var bag diag.Bag
	st := NewSymbolTable()

	// 1 || (1/0): the division is still evaluated and still reported as
	// an error, even though its value would be discarded by ||.
	_, ok := EvalConst(bin(ast.OpLOr, num(1), bin(ast.OpDiv, num(1), num(0))), st, &bag)
	if ok {
		t.Fatalf("EvalConst(1 || 1/0) ok = true, want false (rhs error must still surface)")
	}
	if !bag.HasErrors() {
		t.Errorf("expected the rhs division-by-zero diagnostic to surface despite the lhs being truthy")
	}
}

func TestEvalConstLogicalNormalizesToZeroOrOne(t *testing.T) {
	var bag diag.Bag
	st := NewSymbolTable()
	v, ok := EvalConst(bin(ast.OpLAnd, num(5), num(7)), st, &bag)
	if !ok || v != 1 {
		t.Errorf("EvalConst(5 && 7) = (%d, %v), want (1, true)", v, ok)
	}
	v, ok = EvalConst(bin(ast.OpLOr, num(0), num(0)), st, &bag)
	if !ok || v != 0 {
		t.Errorf("EvalConst(0 || 0) = (%d, %v), want (0, true)", v, ok)
	}
}

func TestEvalConstUnaryOperators(t *testing.T) {
	var bag diag.Bag
	st := NewSymbolTable()
	tests := []struct {
		op   ast.UnaryOp
		in   int32
		want int32
	}{
		{ast.UnaryPlus, 5, 5},
		{ast.UnaryMinus, 5, -5},
		{ast.UnaryNot, 0, 1},
		{ast.UnaryNot, 3, 0},
	}
	for _, tt := range tests {
		v, ok := EvalConst(&ast.UnaryExp{Op: tt.op, X: num(tt.in)}, st, &bag)
		if !ok || v != tt.want {
			t.Errorf("EvalConst(unary %v %d) = (%d, %v), want (%d, true)", tt.op, tt.in, v, ok, tt.want)
		}
	}
}

func TestEvalConstRelationalOperators(t *testing.T) {
	var bag diag.Bag
	st := NewSymbolTable()
	tests := []struct {
		op   ast.BinOp
		l, r int32
		want int32
	}{
		{ast.OpLt, 1, 2, 1},
		{ast.OpLt, 2, 1, 0},
		{ast.OpLe, 2, 2, 1},
		{ast.OpGt, 3, 2, 1},
		{ast.OpGe, 2, 3, 0},
		{ast.OpEq, 4, 4, 1},
		{ast.OpNe, 4, 4, 0},
	}
	for _, tt := range tests {
		v, ok := EvalConst(bin(tt.op, num(tt.l), num(tt.r)), st, &bag)
		if !ok || v != tt.want {
			t.Errorf("EvalConst(%d %v %d) = (%d, %v), want (%d, true)", tt.l, tt.op, tt.r, v, ok, tt.want)
		}
	}
}

func TestEvalConstParenIsTransparent(t *testing.T) {
	var bag diag.Bag
	st := NewSymbolTable()
	v, ok := EvalConst(&ast.ParenExp{X: bin(ast.OpAdd, num(1), num(2))}, st, &bag)
	if !ok || v != 3 {
		t.Errorf("EvalConst((1+2)) = (%d, %v), want (3, true)", v, ok)
	}
}
