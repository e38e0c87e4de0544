// Package sexp reads and writes the s-expression text format used by
// KiCad board and footprint files.
//
// The reader produces a tree of Expr nodes with source line numbers
// preserved for diagnostics. The writer side is a small line-oriented
// builder plus atom formatters matching the layout KiCad writes.
package sexp

import (
	"io"
	"strconv"
	"strings"

	kfperrors "github.com/matzehuels/kicadfp/pkg/errors"
)

// =============================================================================
// Expression Tree
// =============================================================================

// Expr is a node in a parsed s-expression tree. A node is either a
// leaf atom or a list of sub-expressions.
type Expr struct {
	// Atom holds the unescaped text of a leaf.
	Atom string

	// Quoted reports whether a leaf was written as a quoted string.
	Quoted bool

	// Leaf distinguishes atoms from lists.
	Leaf bool

	// Items holds the elements of a list, the head included.
	Items []*Expr

	// Line is the 1-based source line the node started on.
	Line int
}

// IsList reports whether the node is a list.
func (e *Expr) IsList() bool {
	return !e.Leaf
}

// Name returns the head atom of a list, or the empty string for leaves
// and lists that do not start with an atom.
func (e *Expr) Name() string {
	if e.Leaf || len(e.Items) == 0 || !e.Items[0].Leaf {
		return ""
	}
	return e.Items[0].Atom
}

// Child returns the first sub-list with the given name, or nil.
func (e *Expr) Child(name string) *Expr {
	for _, item := range e.Items {
		if item.IsList() && item.Name() == name {
			return item
		}
	}
	return nil
}

// Children returns all sub-lists with the given name.
func (e *Expr) Children(name string) []*Expr {
	var out []*Expr
	for _, item := range e.Items {
		if item.IsList() && item.Name() == name {
			out = append(out, item)
		}
	}
	return out
}

// Arg returns the i-th argument after the list name, or nil when out
// of range.
func (e *Expr) Arg(i int) *Expr {
	idx := i + 1
	if e.Leaf || idx < 1 || idx >= len(e.Items) {
		return nil
	}
	return e.Items[idx]
}

// NumArgs returns the number of arguments after the list name.
func (e *Expr) NumArgs() int {
	if e.Leaf || len(e.Items) == 0 {
		return 0
	}
	return len(e.Items) - 1
}

// Float parses the i-th argument as a float.
func (e *Expr) Float(i int) (float64, error) {
	a := e.Arg(i)
	if a == nil || !a.Leaf {
		return 0, kfperrors.New(kfperrors.ErrCodeParse, "line %d: %s: missing numeric argument %d", e.Line, e.Name(), i)
	}
	v, err := strconv.ParseFloat(a.Atom, 64)
	if err != nil {
		return 0, kfperrors.New(kfperrors.ErrCodeParse, "line %d: %s: %q is not a number", a.Line, e.Name(), a.Atom)
	}
	return v, nil
}

// Int parses the i-th argument as an integer.
func (e *Expr) Int(i int) (int, error) {
	a := e.Arg(i)
	if a == nil || !a.Leaf {
		return 0, kfperrors.New(kfperrors.ErrCodeParse, "line %d: %s: missing integer argument %d", e.Line, e.Name(), i)
	}
	v, err := strconv.Atoi(a.Atom)
	if err != nil {
		return 0, kfperrors.New(kfperrors.ErrCodeParse, "line %d: %s: %q is not an integer", a.Line, e.Name(), a.Atom)
	}
	return v, nil
}

// Text returns the i-th argument's atom text, or the empty string when
// absent.
func (e *Expr) Text(i int) string {
	a := e.Arg(i)
	if a == nil || !a.Leaf {
		return ""
	}
	return a.Atom
}

// HasToken reports whether the list contains the given bare symbol
// among its arguments.
func (e *Expr) HasToken(tok string) bool {
	for i, item := range e.Items {
		if i == 0 {
			continue
		}
		if item.Leaf && !item.Quoted && item.Atom == tok {
			return true
		}
	}
	return false
}

// String returns a compact single-line rendering.
func (e *Expr) String() string {
	if e.Leaf {
		if e.Quoted {
			return Str(e.Atom)
		}
		return e.Atom
	}
	var sb strings.Builder
	sb.WriteByte('(')
	for i, item := range e.Items {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(item.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

// =============================================================================
// Parsing
// =============================================================================

type parser struct {
	lex     *lexer
	current token
}

// ParseAll parses every top-level expression from r.
func ParseAll(r io.Reader) ([]*Expr, error) {
	p := &parser{lex: newLexer(r)}

	var result []*Expr

	tok, err := p.lex.next()
	if err != nil {
		return nil, err
	}
	p.current = tok

	for p.current.typ != tokenEOF {
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		result = append(result, expr)

		tok, err := p.lex.next()
		if err != nil {
			return nil, err
		}
		p.current = tok
	}

	return result, nil
}

// Parse parses exactly one top-level expression from r.
func Parse(r io.Reader) (*Expr, error) {
	exprs, err := ParseAll(r)
	if err != nil {
		return nil, err
	}
	if len(exprs) != 1 {
		return nil, kfperrors.New(kfperrors.ErrCodeParse, "expected a single top-level expression, found %d", len(exprs))
	}
	return exprs[0], nil
}

// ParseString parses exactly one expression from a string.
func ParseString(s string) (*Expr, error) {
	return Parse(strings.NewReader(s))
}

func (p *parser) parseExpr() (*Expr, error) {
	switch p.current.typ {
	case tokenLeftParen:
		return p.parseList()

	case tokenSymbol:
		return &Expr{Atom: p.current.text, Leaf: true, Line: p.current.line}, nil

	case tokenString:
		return &Expr{Atom: p.current.text, Quoted: true, Leaf: true, Line: p.current.line}, nil

	case tokenRightParen:
		return nil, kfperrors.New(kfperrors.ErrCodeParse, "line %d: unexpected ')'", p.current.line)

	default:
		return nil, kfperrors.New(kfperrors.ErrCodeParse, "line %d: unexpected end of input", p.current.line)
	}
}

func (p *parser) parseList() (*Expr, error) {
	list := &Expr{Line: p.current.line}

	for {
		tok, err := p.lex.next()
		if err != nil {
			return nil, err
		}
		p.current = tok

		if p.current.typ == tokenRightParen {
			break
		}

		if p.current.typ == tokenEOF {
			return nil, kfperrors.New(kfperrors.ErrCodeParse, "line %d: unterminated list", list.Line)
		}

		elem, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, elem)
	}

	return list, nil
}
