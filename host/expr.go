// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"errors"
	"strconv"
	"strings"
)

var (
	errExprParse     = errors.New("expression syntax error")
	errDivideByZero  = errors.New("divide by zero")
	errUnknownSymbol = errors.New("unknown symbol")
)

// A resolver converts identifiers found in expressions (register names and
// the like) into values.
type resolver interface {
	resolveIdentifier(s string) (int64, error)
}

type binaryOp struct {
	symbol     string
	precedence int
	eval       func(a, b int64) (int64, error)
}

// Binary operators, longest symbols first so that "<<" is matched before
// any single-character operator.
var binaryOps = []binaryOp{
	{"<<", 4, func(a, b int64) (int64, error) { return a << uint32(b), nil }},
	{">>", 4, func(a, b int64) (int64, error) { return a >> uint32(b), nil }},
	{"|", 1, func(a, b int64) (int64, error) { return a | b, nil }},
	{"^", 2, func(a, b int64) (int64, error) { return a ^ b, nil }},
	{"&", 3, func(a, b int64) (int64, error) { return a & b, nil }},
	{"+", 5, func(a, b int64) (int64, error) { return a + b, nil }},
	{"-", 5, func(a, b int64) (int64, error) { return a - b, nil }},
	{"*", 6, func(a, b int64) (int64, error) { return a * b, nil }},
	{"/", 6, func(a, b int64) (int64, error) {
		if b == 0 {
			return 0, errDivideByZero
		}
		return a / b, nil
	}},
	{"%", 6, func(a, b int64) (int64, error) {
		if b == 0 {
			return 0, errDivideByZero
		}
		return a % b, nil
	}},
}

// An exprParser evaluates integer expressions typed at the monitor prompt.
type exprParser struct {
	hexMode bool
}

func newExprParser() *exprParser {
	return &exprParser{}
}

// exprState holds the remaining input of a single parse.
type exprState struct {
	p *exprParser
	s string
	r resolver
}

// Parse evaluates the expression, resolving any identifiers with r.
func (p *exprParser) Parse(expr string, r resolver) (int64, error) {
	e := &exprState{p: p, s: expr, r: r}
	v, err := e.parseBinary(1)
	if err != nil {
		return 0, err
	}
	if e.skipSpace(); e.s != "" {
		return 0, errExprParse
	}
	return v, nil
}

func (e *exprState) skipSpace() {
	e.s = strings.TrimLeft(e.s, " \t")
}

// Parse a chain of binary operators whose precedence is at least minPrec.
// All binary operators are left-associative.
func (e *exprState) parseBinary(minPrec int) (int64, error) {
	lhs, err := e.parseUnary()
	if err != nil {
		return 0, err
	}

	for {
		e.skipSpace()
		op := e.peekOp()
		if op == nil || op.precedence < minPrec {
			return lhs, nil
		}
		e.s = e.s[len(op.symbol):]

		rhs, err := e.parseBinary(op.precedence + 1)
		if err != nil {
			return 0, err
		}
		if lhs, err = op.eval(lhs, rhs); err != nil {
			return 0, err
		}
	}
}

func (e *exprState) peekOp() *binaryOp {
	for i := range binaryOps {
		if strings.HasPrefix(e.s, binaryOps[i].symbol) {
			return &binaryOps[i]
		}
	}
	return nil
}

func (e *exprState) parseUnary() (int64, error) {
	e.skipSpace()
	if e.s == "" {
		return 0, errExprParse
	}

	switch e.s[0] {
	case '-', '+', '~':
		c := e.s[0]
		e.s = e.s[1:]
		v, err := e.parseUnary()
		if err != nil {
			return 0, err
		}
		switch c {
		case '-':
			return -v, nil
		case '~':
			return ^v, nil
		default:
			return v, nil
		}

	case '(':
		e.s = e.s[1:]
		v, err := e.parseBinary(1)
		if err != nil {
			return 0, err
		}
		if e.skipSpace(); e.s == "" || e.s[0] != ')' {
			return 0, errExprParse
		}
		e.s = e.s[1:]
		return v, nil

	case '%':
		// A binary literal can only appear where an operand is expected.
		return e.parseNumber(e.s[1:], 2)

	case '$':
		return e.parseNumber(e.s[1:], 16)

	case '\'':
		if len(e.s) < 3 || e.s[2] != '\'' {
			return 0, errExprParse
		}
		v := int64(e.s[1])
		e.s = e.s[3:]
		return v, nil
	}

	if strings.HasPrefix(e.s, "0x") || strings.HasPrefix(e.s, "0X") {
		return e.parseNumber(e.s[2:], 16)
	}
	if !e.p.hexMode && (strings.HasPrefix(e.s, "0b") || strings.HasPrefix(e.s, "0B")) {
		return e.parseNumber(e.s[2:], 2)
	}

	c := e.s[0]
	switch {
	case c >= '0' && c <= '9':
		base := 10
		if e.p.hexMode {
			base = 16
		}
		return e.parseNumber(e.s, base)

	case isIdentStart(c):
		return e.parseIdentifier()

	default:
		return 0, errExprParse
	}
}

func (e *exprState) parseNumber(s string, base int) (int64, error) {
	n := 0
	for n < len(s) && isDigit(s[n], base) {
		n++
	}
	if n == 0 {
		return 0, errExprParse
	}

	v, err := strconv.ParseInt(s[:n], base, 64)
	if err != nil {
		return 0, errExprParse
	}
	e.s = s[n:]
	return v, nil
}

func (e *exprState) parseIdentifier() (int64, error) {
	n := 1
	for n < len(e.s) && (isIdentStart(e.s[n]) || isDigit(e.s[n], 10)) {
		n++
	}
	id := e.s[:n]
	e.s = e.s[n:]

	if e.r == nil {
		return 0, errUnknownSymbol
	}
	return e.r.resolveIdentifier(id)
}

func isIdentStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || c == '.'
}

func isDigit(c byte, base int) bool {
	switch base {
	case 2:
		return c == '0' || c == '1'
	case 16:
		return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
	default:
		return c >= '0' && c <= '9'
	}
}
