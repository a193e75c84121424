// Package ast defines the abstract syntax tree contract consumed by the
// intermediate representation builder.
//
// Node shapes: a CompUnit holding one FuncDef, a Block of BlockItems (Decl
// or Stmt), and a layered expression grammar
// (LOr > LAnd > Eq > Rel > Add > Mul > Unary > Primary). Every
// identifier-bearing node carries a byte Span for diagnostics, the same
// instinct as vslc's convention of stamping Line/Pos on every ir.Node
// (src/ir/nodetype.go) -- here generalized to byte spans for a
// diagnostics model addressed by byte offset rather than line/column.
package ast

import "sysyrv/src/diag"

// Span is re-exported so AST consumers don't need to import diag directly
// just to read a node's source location.
type Span = diag.Span

// ReturnType enumerates the two function return types this AST allows.
type ReturnType int

const (
	Int ReturnType = iota
	Void
)

func (r ReturnType) String() string {
	if r == Void {
		return "void"
	}
	return "int"
}

// CompUnit is the root of a parsed source file: exactly one function, since
// this language subset has no functions beyond a single main-style
// definition.
type CompUnit struct {
	Func *FuncDef
}

// FuncDef is a single function definition.
type FuncDef struct {
	ReturnType ReturnType
	Name       string
	Body       *Block
	Span       Span
}

// Block is a brace-delimited sequence of BlockItems.
type Block struct {
	Items []BlockItem
	Span  Span
}

// BlockItem is either a Decl or a Stmt. Exactly one of the two fields is
// non-nil.
type BlockItem struct {
	Decl *Decl
	Stmt *Stmt
}

// DeclKind distinguishes const declarations from var declarations.
type DeclKind int

const (
	DeclConst DeclKind = iota
	DeclVar
)

// BType is the declared base type of a declaration. Only Int exists in this
// language subset.
type BType int

const (
	BTypeInt BType = iota
)

// Decl is a const or var declaration statement, holding one or more
// definitions sharing a base type.
type Decl struct {
	Kind BDeclKind
	BTy  BType
	// ConstDefs is populated when Kind == DeclConst.
	ConstDefs []ConstDef
	// VarDefs is populated when Kind == DeclVar.
	VarDefs []VarDef
}

// BDeclKind aliases DeclKind to keep Decl.Kind's type name distinct from the
// exported DeclKind constants it holds; this is purely a naming
// convenience and carries the same two values.
type BDeclKind = DeclKind

// ConstDef is a single `name = init_exp` binding inside a const
// declaration. The initializer must be a compile-time constant expression.
type ConstDef struct {
	Name    string
	InitExp Exp
	Span    Span
}

// VarDef is a single `name` or `name = init_exp` binding inside a var
// declaration. InitExp is nil when the variable is declared without an
// initializer.
type VarDef struct {
	Name    string
	InitExp Exp // nil if absent
	Span    Span
}

// StmtKind distinguishes the two statement forms this language subset
// allows: a bare expression statement, or an assignment.
type StmtKind int

const (
	StmtExp StmtKind = iota
	StmtAssign
)

// Stmt is either an expression statement or an assignment statement.
type Stmt struct {
	Kind StmtKind
	// Exp is populated when Kind == StmtExp.
	Exp Exp
	// LVal and AssignExp are populated when Kind == StmtAssign.
	LVal     *LVal
	AssignExp Exp
}

// LVal names an assignment target: an identifier, with its span for
// diagnostics.
type LVal struct {
	Name string
	Span Span
}

// Exp is the common interface implemented by every expression node in the
// layered grammar. A closed interface (rather than a tagged struct) keeps
// the IR builder's dispatch a simple type switch, the same shape vslc gets
// from its NodeType-tagged ir.Node but expressed as Go's native sum-type
// idiom for an externally-defined AST contract.
type Exp interface {
	exprNode()
	Location() Span
}

// BinOp is the operator of a binary expression node (LOr, LAnd, Eq, Rel,
// Add, Mul layers all reduce to this one node shape with a different
// operator set).
type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpLt
	OpLe
	OpGt
	OpGe
	OpEq
	OpNe
	OpLAnd
	OpLOr
)

// BinaryExp is a two-operand expression: arithmetic, relational, equality,
// or logical.
type BinaryExp struct {
	Op    BinOp
	L, R  Exp
	Span  Span
}

func (*BinaryExp) exprNode()         {}
func (e *BinaryExp) Location() Span  { return e.Span }

// UnaryOp is the operator of a UnaryExp.
type UnaryOp int

const (
	UnaryPlus UnaryOp = iota
	UnaryMinus
	UnaryNot
)

// UnaryExp is a single-operand prefix expression: `+x`, `-x`, or `!x`.
type UnaryExp struct {
	Op   UnaryOp
	X    Exp
	Span Span
}

func (*UnaryExp) exprNode()        {}
func (e *UnaryExp) Location() Span { return e.Span }

// ParenExp is a parenthesized sub-expression, kept as an explicit node
// (rather than collapsed away during parsing) so its Span can be used for
// diagnostics pointing at the parenthesized form specifically.
type ParenExp struct {
	X    Exp
	Span Span
}

func (*ParenExp) exprNode()        {}
func (e *ParenExp) Location() Span { return e.Span }

// NumberExp is an integer literal.
type NumberExp struct {
	Value int32
	Span  Span
}

func (*NumberExp) exprNode()        {}
func (e *NumberExp) Location() Span { return e.Span }

// LValExp is an identifier reference used as an expression (reading an
// LVal's current value).
type LValExp struct {
	Name string
	Span Span
}

func (*LValExp) exprNode()        {}
func (e *LValExp) Location() Span { return e.Span }
