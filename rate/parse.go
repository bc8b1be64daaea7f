/*
Copyright © 2020 the ChemScheme authors.
This file is part of ChemScheme.

ChemScheme is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

ChemScheme is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with ChemScheme.  If not, see <http://www.gnu.org/licenses/>.
*/

package rate

import (
	"fmt"
	"strconv"
	"strings"
)

// node is an element of a parsed rate expression.
type node interface {
	// render writes the node as a govaluate expression.
	render(b *strings.Builder)
}

type numNode struct{ v float64 }

type varNode struct {
	name string
	pos  int
}

// photoNode is a reference to the n-th photolysis rate.
type photoNode struct {
	n   int
	pos int
}

type callNode struct {
	fn   *binding
	args []node
}

type unaryNode struct{ x node } // negation

type binaryNode struct {
	op   string
	x, y node
}

func (n numNode) render(b *strings.Builder) {
	b.WriteString(strconv.FormatFloat(n.v, 'f', -1, 64))
}

func (n varNode) render(b *strings.Builder) {
	b.WriteString("[" + n.name + "]")
}

func (n photoNode) render(b *strings.Builder) {
	b.WriteString("[" + photoName(n.n) + "]")
}

func (n callNode) render(b *strings.Builder) {
	b.WriteString(n.fn.name + "(")
	for i, a := range n.args {
		if i > 0 {
			b.WriteString(", ")
		}
		a.render(b)
	}
	for i, in := range n.fn.implicit {
		if i > 0 || len(n.args) > 0 {
			b.WriteString(", ")
		}
		b.WriteString("[" + in + "]")
	}
	b.WriteString(")")
}

func (n unaryNode) render(b *strings.Builder) {
	b.WriteString("(-")
	n.x.render(b)
	b.WriteString(")")
}

func (n binaryNode) render(b *strings.Builder) {
	b.WriteString("(")
	n.x.render(b)
	b.WriteString(" " + n.op + " ")
	n.y.render(b)
	b.WriteString(")")
}

// walk calls f for n and every node below it.
func walk(n node, f func(node)) {
	f(n)
	switch t := n.(type) {
	case callNode:
		for _, a := range t.args {
			walk(a, f)
		}
	case unaryNode:
		walk(t.x, f)
	case binaryNode:
		walk(t.x, f)
		walk(t.y, f)
	}
}

func photoName(n int) string { return "J_" + strconv.Itoa(n) }

// render returns n as govaluate expression text.
func render(n node) string {
	var b strings.Builder
	n.render(&b)
	return b.String()
}

// parser is a recursive descent parser for rate expressions:
//
//	sum     = product { ("+" | "-") product }
//	product = unary { ("*" | "/") unary }
//	unary   = ("-" | "+") unary | power
//	power   = primary [ ("**" | "^" | "@") unary ]
//	primary = number | "(" sum ")" | photo | call | identifier
//	photo   = "J" ( "(" int ")" | "[" int "]" | "<" int ">" )
//	call    = identifier "(" [ sum { "," sum } ] ")"
type parser struct {
	s   scanner
	tok token
}

var closing = map[string]string{"(": ")", "[": "]", "<": ">"}

// parse parses a rate expression.
func parse(expr string) (node, error) {
	p := &parser{s: scanner{src: expr}}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.kind == tokEOF {
		return nil, p.errorf("empty expression")
	}
	n, err := p.sum()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.errorf("unexpected %q", p.tok.text)
	}
	return n, nil
}

func (p *parser) advance() error {
	t, err := p.s.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return &SyntaxError{Expr: p.s.src, Offset: p.tok.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) isOp(ops ...string) bool {
	if p.tok.kind != tokOp {
		return false
	}
	for _, o := range ops {
		if p.tok.text == o {
			return true
		}
	}
	return false
}

func (p *parser) sum() (node, error) {
	x, err := p.product()
	if err != nil {
		return nil, err
	}
	for p.isOp("+", "-") {
		op := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		y, err := p.product()
		if err != nil {
			return nil, err
		}
		x = binaryNode{op: op, x: x, y: y}
	}
	return x, nil
}

func (p *parser) product() (node, error) {
	x, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.isOp("*", "/") {
		op := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		y, err := p.unary()
		if err != nil {
			return nil, err
		}
		x = binaryNode{op: op, x: x, y: y}
	}
	return x, nil
}

func (p *parser) unary() (node, error) {
	if p.isOp("-", "+") {
		neg := p.tok.text == "-"
		if err := p.advance(); err != nil {
			return nil, err
		}
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		if neg {
			return unaryNode{x: x}, nil
		}
		return x, nil
	}
	return p.power()
}

func (p *parser) power() (node, error) {
	x, err := p.primary()
	if err != nil {
		return nil, err
	}
	if p.isOp("**", "^", "@") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		y, err := p.unary()
		if err != nil {
			return nil, err
		}
		return binaryNode{op: "**", x: x, y: y}, nil
	}
	return x, nil
}

func (p *parser) primary() (node, error) {
	t := p.tok
	switch t.kind {
	case tokNum:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return numNode{v: t.num}, nil
	case tokLParen:
		if t.text != "(" {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		x, err := p.sum()
		if err != nil {
			return nil, err
		}
		if err := p.expectClose("("); err != nil {
			return nil, err
		}
		return x, nil
	case tokIdent:
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind != tokLParen {
			return varNode{name: t.text, pos: t.pos}, nil
		}
		if t.text == "J" {
			return p.photo(t)
		}
		if p.tok.text != "(" {
			return nil, p.errorf("unexpected %q after %s", p.tok.text, t.text)
		}
		return p.call(t)
	}
	if t.kind == tokEOF {
		return nil, p.errorf("unexpected end of expression")
	}
	return nil, p.errorf("unexpected %q", t.text)
}

// photo parses the index of a photolysis rate reference. The current token
// is the opening delimiter.
func (p *parser) photo(j token) (node, error) {
	open := p.tok.text
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.kind != tokNum || p.tok.num != float64(int(p.tok.num)) || p.tok.num < 0 {
		return nil, p.errorf("photolysis reference needs a non-negative integer index")
	}
	n := int(p.tok.num)
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.expectClose(open); err != nil {
		return nil, err
	}
	return photoNode{n: n, pos: j.pos}, nil
}

// call parses a function's argument list. The current token is "(".
func (p *parser) call(name token) (node, error) {
	fn, ok := lookupFunc(name.text)
	if !ok {
		return nil, &UndefinedError{Name: name.text, Expr: p.s.src}
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	var args []node
	if !(p.tok.kind == tokRParen && p.tok.text == ")") {
		for {
			a, err := p.sum()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if p.tok.kind != tokComma {
				break
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if err := p.expectClose("("); err != nil {
		return nil, err
	}
	if fn.arity >= 0 && len(args) != fn.arity {
		return nil, &SyntaxError{Expr: p.s.src, Offset: name.pos,
			Msg: fmt.Sprintf("function %s takes %d arguments but got %d", name.text, fn.arity, len(args))}
	}
	if fn.arity < 0 && len(args) == 0 {
		return nil, &SyntaxError{Expr: p.s.src, Offset: name.pos,
			Msg: fmt.Sprintf("function %s needs at least one argument", name.text)}
	}
	return callNode{fn: fn, args: args}, nil
}

func (p *parser) expectClose(open string) error {
	want := closing[open]
	if p.tok.kind != tokRParen || p.tok.text != want {
		return p.errorf("expected %q", want)
	}
	return p.advance()
}
