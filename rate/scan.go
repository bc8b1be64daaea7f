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
	"math"
	"strconv"
	"strings"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNum
	tokIdent
	tokOp     // + - * / and the power operators ** ^ @
	tokLParen // ( [ <
	tokRParen // ) ] >
	tokComma
)

type token struct {
	kind tokenKind
	text string
	num  float64
	pos  int
}

// scanner splits a rate expression into tokens.
type scanner struct {
	src string
	pos int
}

func isLetter(c byte) bool { return c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' }
func isDigit(c byte) bool  { return '0' <= c && c <= '9' }

// next returns the next token.
func (s *scanner) next() (token, error) {
	for s.pos < len(s.src) && (s.src[s.pos] == ' ' || s.src[s.pos] == '\t') {
		s.pos++
	}
	if s.pos >= len(s.src) {
		return token{kind: tokEOF, pos: s.pos}, nil
	}
	start := s.pos
	c := s.src[s.pos]
	switch {
	case isDigit(c) || c == '.' && s.pos+1 < len(s.src) && isDigit(s.src[s.pos+1]):
		return s.number()
	case isLetter(c):
		for s.pos < len(s.src) && (isLetter(s.src[s.pos]) || isDigit(s.src[s.pos])) {
			s.pos++
		}
		return token{kind: tokIdent, text: s.src[start:s.pos], pos: start}, nil
	case c == '*' && strings.HasPrefix(s.src[s.pos:], "**"):
		s.pos += 2
		return token{kind: tokOp, text: "**", pos: start}, nil
	case strings.IndexByte("+-*/^@", c) >= 0:
		s.pos++
		return token{kind: tokOp, text: string(c), pos: start}, nil
	case strings.IndexByte("([<", c) >= 0:
		s.pos++
		return token{kind: tokLParen, text: string(c), pos: start}, nil
	case strings.IndexByte(")]>", c) >= 0:
		s.pos++
		return token{kind: tokRParen, text: string(c), pos: start}, nil
	case c == ',':
		s.pos++
		return token{kind: tokComma, text: ",", pos: start}, nil
	}
	return token{}, &SyntaxError{Expr: s.src, Offset: start, Msg: fmt.Sprintf("unexpected character %q", c)}
}

// number scans a numeric literal. Fortran-style D exponents are accepted.
func (s *scanner) number() (token, error) {
	start := s.pos
	for s.pos < len(s.src) && isDigit(s.src[s.pos]) {
		s.pos++
	}
	if s.pos < len(s.src) && s.src[s.pos] == '.' {
		s.pos++
		for s.pos < len(s.src) && isDigit(s.src[s.pos]) {
			s.pos++
		}
	}
	if s.pos < len(s.src) && strings.IndexByte("eEdD", s.src[s.pos]) >= 0 {
		// Only an exponent if digits follow; otherwise it starts an identifier.
		p := s.pos + 1
		if p < len(s.src) && (s.src[p] == '+' || s.src[p] == '-') {
			p++
		}
		if p < len(s.src) && isDigit(s.src[p]) {
			for p < len(s.src) && isDigit(s.src[p]) {
				p++
			}
			s.pos = p
		}
	}
	text := s.src[start:s.pos]
	v, err := ConvertExponent(text)
	if err != nil {
		return token{}, &SyntaxError{Expr: s.src, Offset: start, Msg: err.Error()}
	}
	return token{kind: tokNum, text: text, num: v, pos: start}, nil
}

// ConvertExponent parses a numeric literal that may use a Fortran D or d
// exponent, as in "5.6D-34".
func ConvertExponent(s string) (float64, error) {
	t := strings.Map(func(r rune) rune {
		if r == 'D' || r == 'd' {
			return 'e'
		}
		return r
	}, strings.TrimSpace(s))
	v, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, fmt.Errorf("rate: invalid number %q", s)
	}
	if math.IsInf(v, 0) {
		return 0, fmt.Errorf("rate: number %q is out of range", s)
	}
	return v, nil
}

// IsIdentifier reports whether s can be used as a rate coefficient name.
func IsIdentifier(s string) bool {
	if s == "" || !isLetter(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isLetter(s[i]) && !isDigit(s[i]) {
			return false
		}
	}
	return true
}
