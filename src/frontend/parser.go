package frontend

import (
	"fmt"

	"sysyrv/src/ast"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// parser holds the token stream and the read cursor for a single recursive
// descent parse. Parse failure is fatal: the driver prints the raw parser
// error and exits nonzero, so parser methods return a plain error on the
// first problem rather than accumulating a diag.Bag the way the IR builder
// does.
type parser struct {
	toks []Token
	pos  int
}

// ---------------------
// ----- functions -----
// ---------------------

// Parse lexes and parses normalized source text into a CompUnit.
func Parse(src string) (*ast.CompUnit, error) {
	toks, err := Lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	cu, err := p.parseCompUnit()
	if err != nil {
		return nil, err
	}
	if p.cur().Kind != TokEOF {
		return nil, fmt.Errorf("unexpected trailing token %q at byte %d", p.cur().Text, p.cur().Span.Start)
	}
	return cu, nil
}

func (p *parser) cur() Token {
	return p.toks[p.pos]
}

func (p *parser) advance() Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) expect(kind TokenKind, what string) (Token, error) {
	if p.cur().Kind != kind {
		return Token{}, fmt.Errorf("expected %s at byte %d, got %q", what, p.cur().Span.Start, p.cur().Text)
	}
	return p.advance(), nil
}

func toSpan(s Span) ast.Span {
	return ast.Span{Start: s.Start, End: s.End}
}

// parseCompUnit parses a single FuncDef: this subset has no functions
// beyond a single main-style definition.
func (p *parser) parseCompUnit() (*ast.CompUnit, error) {
	fn, err := p.parseFuncDef()
	if err != nil {
		return nil, err
	}
	return &ast.CompUnit{Func: fn}, nil
}

func (p *parser) parseFuncDef() (*ast.FuncDef, error) {
	start := p.cur().Span.Start
	var rt ast.ReturnType
	switch p.cur().Kind {
	case TokKwInt:
		rt = ast.Int
		p.advance()
	case TokKwVoid:
		rt = ast.Void
		p.advance()
	default:
		return nil, fmt.Errorf("expected function return type at byte %d, got %q", p.cur().Span.Start, p.cur().Text)
	}
	name, err := p.expect(TokIdent, "function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokLParen, "'('"); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokRParen, "')'"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.FuncDef{
		ReturnType: rt,
		Name:       name.Text,
		Body:       body,
		Span:       ast.Span{Start: start, End: body.Span.End},
	}, nil
}

func (p *parser) parseBlock() (*ast.Block, error) {
	open, err := p.expect(TokLBrace, "'{'")
	if err != nil {
		return nil, err
	}
	var items []ast.BlockItem
	for p.cur().Kind != TokRBrace {
		if p.cur().Kind == TokEOF {
			return nil, fmt.Errorf("unterminated block starting at byte %d", open.Span.Start)
		}
		item, err := p.parseBlockItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	close := p.advance()
	return &ast.Block{Items: items, Span: ast.Span{Start: open.Span.Start, End: close.Span.End}}, nil
}

func (p *parser) parseBlockItem() (ast.BlockItem, error) {
	if p.cur().Kind == TokKwConst || p.cur().Kind == TokKwInt {
		decl, err := p.parseDecl()
		if err != nil {
			return ast.BlockItem{}, err
		}
		return ast.BlockItem{Decl: decl}, nil
	}
	stmt, err := p.parseStmt()
	if err != nil {
		return ast.BlockItem{}, err
	}
	return ast.BlockItem{Stmt: stmt}, nil
}

func (p *parser) parseDecl() (*ast.Decl, error) {
	if p.cur().Kind == TokKwConst {
		return p.parseConstDecl()
	}
	return p.parseVarDecl()
}

func (p *parser) parseConstDecl() (*ast.Decl, error) {
	p.advance() // 'const'
	if _, err := p.expect(TokKwInt, "'int'"); err != nil {
		return nil, err
	}
	var defs []ast.ConstDef
	for {
		name, err := p.expect(TokIdent, "constant name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokAssign, "'='"); err != nil {
			return nil, err
		}
		exp, err := p.parseExp()
		if err != nil {
			return nil, err
		}
		defs = append(defs, ast.ConstDef{
			Name:    name.Text,
			InitExp: exp,
			Span:    ast.Span{Start: name.Span.Start, End: exp.Location().End},
		})
		if p.cur().Kind == TokComma {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(TokSemi, "';'"); err != nil {
		return nil, err
	}
	return &ast.Decl{Kind: ast.DeclConst, BTy: ast.BTypeInt, ConstDefs: defs}, nil
}

func (p *parser) parseVarDecl() (*ast.Decl, error) {
	if _, err := p.expect(TokKwInt, "'int'"); err != nil {
		return nil, err
	}
	var defs []ast.VarDef
	for {
		name, err := p.expect(TokIdent, "variable name")
		if err != nil {
			return nil, err
		}
		def := ast.VarDef{Name: name.Text, Span: toSpan(name.Span)}
		if p.cur().Kind == TokAssign {
			p.advance()
			exp, err := p.parseExp()
			if err != nil {
				return nil, err
			}
			def.InitExp = exp
			def.Span.End = exp.Location().End
		}
		defs = append(defs, def)
		if p.cur().Kind == TokComma {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(TokSemi, "';'"); err != nil {
		return nil, err
	}
	return &ast.Decl{Kind: ast.DeclVar, BTy: ast.BTypeInt, VarDefs: defs}, nil
}

// parseStmt parses one of the two statement forms the AST contract allows:
// Stmt ∈ {Exp(Exp), Assign(LVal, Exp)}. A leading "return" keyword is sugar
// recognized here but folded into the same Exp(Exp) node shape: the IR
// builder's return-synthesis rule already treats the function's last Exp
// statement as its return value, so a dedicated Return AST node would be
// redundant with that rule.
func (p *parser) parseStmt() (*ast.Stmt, error) {
	if p.cur().Kind == TokKwReturn {
		start := p.advance().Span.Start
		if p.cur().Kind == TokSemi {
			end := p.advance().Span.End
			_ = end
			return &ast.Stmt{Kind: ast.StmtExp, Exp: nil}, nil
		}
		exp, err := p.parseExp()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokSemi, "';'"); err != nil {
			return nil, err
		}
		_ = start
		return &ast.Stmt{Kind: ast.StmtExp, Exp: exp}, nil
	}

	// Disambiguate "LVal '=' Exp ';'" from a bare "Exp ';'" by speculative
	// lookahead: both start with an identifier, but only the assignment
	// form is followed directly by '='.
	if p.cur().Kind == TokIdent && p.peekAssign() {
		name := p.advance()
		if _, err := p.expect(TokAssign, "'='"); err != nil {
			return nil, err
		}
		exp, err := p.parseExp()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokSemi, "';'"); err != nil {
			return nil, err
		}
		return &ast.Stmt{
			Kind:      ast.StmtAssign,
			LVal:      &ast.LVal{Name: name.Text, Span: toSpan(name.Span)},
			AssignExp: exp,
		}, nil
	}

	exp, err := p.parseExp()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokSemi, "';'"); err != nil {
		return nil, err
	}
	return &ast.Stmt{Kind: ast.StmtExp, Exp: exp}, nil
}

// peekAssign reports whether the token following the current identifier is
// '='. It does not consume any tokens.
func (p *parser) peekAssign() bool {
	if p.pos+1 >= len(p.toks) {
		return false
	}
	return p.toks[p.pos+1].Kind == TokAssign
}

// parseExp parses the lowest-precedence layer: logical-or.
func (p *parser) parseExp() (ast.Exp, error) {
	return p.parseLOr()
}

func (p *parser) parseLOr() (ast.Exp, error) {
	l, err := p.parseLAnd()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == TokOrOr {
		p.advance()
		r, err := p.parseLAnd()
		if err != nil {
			return nil, err
		}
		l = &ast.BinaryExp{Op: ast.OpLOr, L: l, R: r, Span: ast.Span{Start: l.Location().Start, End: r.Location().End}}
	}
	return l, nil
}

func (p *parser) parseLAnd() (ast.Exp, error) {
	l, err := p.parseEq()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == TokAndAnd {
		p.advance()
		r, err := p.parseEq()
		if err != nil {
			return nil, err
		}
		l = &ast.BinaryExp{Op: ast.OpLAnd, L: l, R: r, Span: ast.Span{Start: l.Location().Start, End: r.Location().End}}
	}
	return l, nil
}

func (p *parser) parseEq() (ast.Exp, error) {
	l, err := p.parseRel()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == TokEqEq || p.cur().Kind == TokNotEq {
		op := ast.OpEq
		if p.cur().Kind == TokNotEq {
			op = ast.OpNe
		}
		p.advance()
		r, err := p.parseRel()
		if err != nil {
			return nil, err
		}
		l = &ast.BinaryExp{Op: op, L: l, R: r, Span: ast.Span{Start: l.Location().Start, End: r.Location().End}}
	}
	return l, nil
}

func (p *parser) parseRel() (ast.Exp, error) {
	l, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinOp
		switch p.cur().Kind {
		case TokLt:
			op = ast.OpLt
		case TokLe:
			op = ast.OpLe
		case TokGt:
			op = ast.OpGt
		case TokGe:
			op = ast.OpGe
		default:
			return l, nil
		}
		p.advance()
		r, err := p.parseAdd()
		if err != nil {
			return nil, err
		}
		l = &ast.BinaryExp{Op: op, L: l, R: r, Span: ast.Span{Start: l.Location().Start, End: r.Location().End}}
	}
}

func (p *parser) parseAdd() (ast.Exp, error) {
	l, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == TokPlus || p.cur().Kind == TokMinus {
		op := ast.OpAdd
		if p.cur().Kind == TokMinus {
			op = ast.OpSub
		}
		p.advance()
		r, err := p.parseMul()
		if err != nil {
			return nil, err
		}
		l = &ast.BinaryExp{Op: op, L: l, R: r, Span: ast.Span{Start: l.Location().Start, End: r.Location().End}}
	}
	return l, nil
}

func (p *parser) parseMul() (ast.Exp, error) {
	l, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == TokStar || p.cur().Kind == TokSlash || p.cur().Kind == TokPercent {
		var op ast.BinOp
		switch p.cur().Kind {
		case TokStar:
			op = ast.OpMul
		case TokSlash:
			op = ast.OpDiv
		case TokPercent:
			op = ast.OpMod
		}
		p.advance()
		r, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		l = &ast.BinaryExp{Op: op, L: l, R: r, Span: ast.Span{Start: l.Location().Start, End: r.Location().End}}
	}
	return l, nil
}

func (p *parser) parseUnary() (ast.Exp, error) {
	switch p.cur().Kind {
	case TokPlus, TokMinus, TokNot:
		tok := p.advance()
		var op ast.UnaryOp
		switch tok.Kind {
		case TokPlus:
			op = ast.UnaryPlus
		case TokMinus:
			op = ast.UnaryMinus
		case TokNot:
			op = ast.UnaryNot
		}
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExp{Op: op, X: x, Span: ast.Span{Start: tok.Span.Start, End: x.Location().End}}, nil
	default:
		return p.parsePrimary()
	}
}

func (p *parser) parsePrimary() (ast.Exp, error) {
	switch p.cur().Kind {
	case TokLParen:
		open := p.advance()
		x, err := p.parseExp()
		if err != nil {
			return nil, err
		}
		close, err := p.expect(TokRParen, "')'")
		if err != nil {
			return nil, err
		}
		return &ast.ParenExp{X: x, Span: ast.Span{Start: open.Span.Start, End: close.Span.End}}, nil
	case TokNumber:
		tok := p.advance()
		return &ast.NumberExp{Value: tok.Value, Span: toSpan(tok.Span)}, nil
	case TokIdent:
		tok := p.advance()
		return &ast.LValExp{Name: tok.Text, Span: toSpan(tok.Span)}, nil
	default:
		return nil, fmt.Errorf("expected expression at byte %d, got %q", p.cur().Span.Start, p.cur().Text)
	}
}
