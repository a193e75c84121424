// Package frontend is the compiler's external front end. The tokenizer and
// grammar aren't the interesting part of this compiler -- lowering and
// codegen are -- but a CLI that cannot produce an ast.CompUnit from source
// text cannot be driven end to end, so a small recursive-descent front end
// lives here to fill that role.
//
// Tokenizing is regexp2-driven rather than vslc's hand-rolled
// character-class state machine (src/frontend/lexerStates.go), matching how
// nooga-paserati's front end leans on github.com/dlclark/regexp2 for its
// token classes.
package frontend

import (
	"fmt"

	"github.com/dlclark/regexp2"
	"golang.org/x/text/unicode/norm"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// TokenKind classifies a lexed Token.
type TokenKind int

// Token kinds. Order has no significance beyond grouping keywords together.
const (
	TokEOF TokenKind = iota
	TokIdent
	TokNumber
	TokKwInt
	TokKwVoid
	TokKwConst
	TokKwReturn
	TokPlus
	TokMinus
	TokStar
	TokSlash
	TokPercent
	TokLt
	TokLe
	TokGt
	TokGe
	TokEqEq
	TokNotEq
	TokAndAnd
	TokOrOr
	TokNot
	TokAssign
	TokSemi
	TokComma
	TokLParen
	TokRParen
	TokLBrace
	TokRBrace
)

// Token is a single lexed unit: its kind, literal text, and byte span in
// the normalized source.
type Token struct {
	Kind  TokenKind
	Text  string
	Value int32 // populated when Kind == TokNumber
	Span  Span
}

// Span mirrors the diagnostic span type (a byte range, End exclusive) so the
// lexer doesn't need a direct diag import; the parser converts it to
// ast.Span.
type Span struct {
	Start int
	End   int
}

// tokenPattern pairs a regexp2 pattern with the TokenKind it produces.
// Patterns are tried in order; the first match at the current offset wins,
// so longer operators (e.g. "<=") must precede their single-character
// prefixes (e.g. "<").
type tokenPattern struct {
	re   *regexp2.Regexp
	kind TokenKind // TokEOF is used as a sentinel meaning "skip, no token".
}

// ---------------------
// ----- Constants -----
// ---------------------

// keywords maps reserved identifiers to their keyword TokenKind.
var keywords = map[string]TokenKind{
	"int":    TokKwInt,
	"void":   TokKwVoid,
	"const":  TokKwConst,
	"return": TokKwReturn,
}

// -------------------
// ----- globals -----
// -------------------

var patterns []tokenPattern

func init() {
	add := func(pattern string, kind TokenKind) {
		re := regexp2.MustCompile(`\G(?:`+pattern+`)`, regexp2.None)
		patterns = append(patterns, tokenPattern{re: re, kind: kind})
	}

	// Skip patterns (whitespace, line comments, block comments) are tagged
	// TokEOF and dropped by Lex.
	add(`[ \t\r\n]+`, TokEOF)
	add(`//[^\n]*`, TokEOF)
	add(`/\*(?:[^*]|\*[^/])*\*/`, TokEOF)

	// Numbers: hex, octal, decimal. Order matters: hex before decimal so
	// "0x10" isn't lexed as the decimal digit "0" followed by "x10".
	add(`0[xX][0-9a-fA-F]+`, TokNumber)
	add(`0[0-7]*`, TokNumber)
	add(`[1-9][0-9]*`, TokNumber)

	add(`[A-Za-z_][A-Za-z0-9_]*`, TokIdent)

	add(`<=`, TokLe)
	add(`>=`, TokGe)
	add(`==`, TokEqEq)
	add(`!=`, TokNotEq)
	add(`&&`, TokAndAnd)
	add(`\|\|`, TokOrOr)
	add(`<`, TokLt)
	add(`>`, TokGt)
	add(`!`, TokNot)
	add(`=`, TokAssign)
	add(`\+`, TokPlus)
	add(`-`, TokMinus)
	add(`\*`, TokStar)
	add(`/`, TokSlash)
	add(`%`, TokPercent)
	add(`;`, TokSemi)
	add(`,`, TokComma)
	add(`\(`, TokLParen)
	add(`\)`, TokRParen)
	add(`\{`, TokLBrace)
	add(`\}`, TokRBrace)
}

// ---------------------
// ----- functions -----
// ---------------------

// Normalize applies Unicode NFC normalization to src so that byte offsets
// recorded in AST spans
// are stable regardless of the input file's original normalization form.
func Normalize(src string) string {
	return norm.NFC.String(src)
}

// Lex tokenizes normalized source text into a slice of Tokens, terminated
// by a single TokEOF. An error is returned on the first byte sequence that
// matches no token pattern.
func Lex(src string) ([]Token, error) {
	var toks []Token
	pos := 0
	for pos < len(src) {
		matched := false
		for _, p := range patterns {
			m, err := p.re.FindStringMatchStartingAt(src, pos)
			if err != nil {
				return nil, fmt.Errorf("lexer internal error: %s", err)
			}
			if m == nil || m.Index != pos {
				continue
			}
			text := m.String()
			if p.kind != TokEOF {
				kind := p.kind
				var value int32
				if kind == TokIdent {
					if kw, ok := keywords[text]; ok {
						kind = kw
					}
				}
				if kind == TokNumber {
					v, err := parseIntLiteral(text)
					if err != nil {
						return nil, fmt.Errorf("at byte %d: %s", pos, err)
					}
					value = v
				}
				toks = append(toks, Token{
					Kind:  kind,
					Text:  text,
					Value: value,
					Span:  Span{Start: pos, End: pos + len(text)},
				})
			}
			pos += len(text)
			matched = true
			break
		}
		if !matched {
			return nil, fmt.Errorf("at byte %d: unrecognized character %q", pos, src[pos])
		}
	}
	toks = append(toks, Token{Kind: TokEOF, Span: Span{Start: len(src), End: len(src)}})
	return toks, nil
}

// parseIntLiteral parses a decimal, octal, or hexadecimal integer literal
// into its two's-complement int32 representation, truncating on overflow
// the same way the constant evaluator truncates arithmetic
func parseIntLiteral(text string) (int32, error) {
	var v uint64
	var err error
	switch {
	case len(text) > 1 && (text[1] == 'x' || text[1] == 'X'):
		v, err = parseUint(text[2:], 16)
	case len(text) > 1 && text[0] == '0':
		v, err = parseUint(text[1:], 8)
	default:
		v, err = parseUint(text, 10)
	}
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// parseUint parses digits in the given base, truncating to 32 bits on
// overflow rather than failing, consistent with the wraparound semantics
// used elsewhere for constant-expression arithmetic.
func parseUint(digits string, base uint64) (uint64, error) {
	if digits == "" {
		return 0, nil
	}
	var v uint64
	for _, c := range digits {
		var d uint64
		switch {
		case c >= '0' && c <= '9':
			d = uint64(c - '0')
		case c >= 'a' && c <= 'f':
			d = uint64(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = uint64(c-'A') + 10
		default:
			return 0, fmt.Errorf("invalid digit %q in numeric literal", c)
		}
		if d >= base {
			return 0, fmt.Errorf("digit %q out of range for base %d", c, base)
		}
		v = v*base + d
	}
	return v, nil
}
