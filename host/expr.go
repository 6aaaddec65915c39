// Copyright 2026 Brett Vickers.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by the expression evaluator.
var (
	ErrExprParse         = errors.New("expression syntax error")
	ErrExprUnterminated  = errors.New("unterminated expression")
	ErrExprDivideByZero  = errors.New("division by zero")
	ErrExprUnknownSymbol = errors.New("unknown symbol")
)

// A Resolver maps an identifier appearing in an expression to its value.
// Identifiers are register names, assembler labels, or anything else the
// host knows how to look up.
type Resolver func(name string) (int64, error)

// Evaluate parses and evaluates an integer expression. Numbers may be
// written as decimal, hexadecimal ($1234, 0x1234 or 1234h), binary
// (%1010 or 0b1010), or a character constant ('c'). Identifiers are
// resolved through the resolver; a nil resolver rejects all identifiers.
//
// The usual C operator set is supported: unary - + ~ !, arithmetic
// * / % + -, shifts << >>, bitwise & ^ |, comparisons == != < <= > >=,
// and logical && ||. Comparisons and logical operators yield 0 or 1.
func Evaluate(expr string, resolve Resolver) (int64, error) {
	return EvaluateWith(expr, resolve, false)
}

// EvaluateWith is Evaluate with hexadecimal input mode selectable: when
// hexMode is true, unprefixed numbers are interpreted as hexadecimal.
func EvaluateWith(expr string, resolve Resolver, hexMode bool) (int64, error) {
	p := exprParser{input: expr, resolve: resolve, hexMode: hexMode}
	v, err := p.parse(0)
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.pos < len(p.input) {
		return 0, fmt.Errorf("%w near %q", ErrExprParse, p.input[p.pos:])
	}
	return v, nil
}

type binaryFunc func(a, b int64) (int64, error)

// Binary operators grouped by precedence level, loosest binding first.
// Every level is left-associative.
var exprOps = []map[string]binaryFunc{
	{"||": func(a, b int64) (int64, error) { return bool2int(a != 0 || b != 0), nil }},
	{"&&": func(a, b int64) (int64, error) { return bool2int(a != 0 && b != 0), nil }},
	{"|": func(a, b int64) (int64, error) { return a | b, nil }},
	{"^": func(a, b int64) (int64, error) { return a ^ b, nil }},
	{"&": func(a, b int64) (int64, error) { return a & b, nil }},
	{
		"==": func(a, b int64) (int64, error) { return bool2int(a == b), nil },
		"!=": func(a, b int64) (int64, error) { return bool2int(a != b), nil },
	},
	{
		"<":  func(a, b int64) (int64, error) { return bool2int(a < b), nil },
		"<=": func(a, b int64) (int64, error) { return bool2int(a <= b), nil },
		">":  func(a, b int64) (int64, error) { return bool2int(a > b), nil },
		">=": func(a, b int64) (int64, error) { return bool2int(a >= b), nil },
	},
	{
		"<<": func(a, b int64) (int64, error) { return a << uint(b&63), nil },
		">>": func(a, b int64) (int64, error) { return a >> uint(b&63), nil },
	},
	{
		"+": func(a, b int64) (int64, error) { return a + b, nil },
		"-": func(a, b int64) (int64, error) { return a - b, nil },
	},
	{
		"*": func(a, b int64) (int64, error) { return a * b, nil },
		"/": func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, ErrExprDivideByZero
			}
			return a / b, nil
		},
		"%": func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, ErrExprDivideByZero
			}
			return a % b, nil
		},
	},
}

type exprParser struct {
	input   string
	pos     int
	resolve Resolver
	hexMode bool
}

// parse evaluates the expression at the current position using
// precedence climbing, starting at the given precedence level.
func (p *exprParser) parse(level int) (int64, error) {
	if level >= len(exprOps) {
		return p.parseUnary()
	}

	v, err := p.parse(level + 1)
	if err != nil {
		return 0, err
	}
	for {
		fn, ok := p.matchOp(level)
		if !ok {
			return v, nil
		}
		rhs, err := p.parse(level + 1)
		if err != nil {
			return 0, err
		}
		if v, err = fn(v, rhs); err != nil {
			return 0, err
		}
	}
}

// matchOp consumes a binary operator belonging to the given precedence
// level. Longer operators win, so "<<" is never mistaken for "<".
func (p *exprParser) matchOp(level int) (binaryFunc, bool) {
	p.skipSpace()
	rest := p.input[p.pos:]
	var best string
	var fn binaryFunc
	for op, f := range exprOps[level] {
		if strings.HasPrefix(rest, op) && len(op) > len(best) {
			best, fn = op, f
		}
	}
	if best == "" {
		return nil, false
	}
	// A one-character match followed by another operator character
	// belongs to some other level ("<" before "<<", "&" before "&&").
	if len(best) == 1 && len(rest) > 1 && strings.ContainsRune("<>=&|", rune(rest[1])) {
		return nil, false
	}
	p.pos += len(best)
	return fn, true
}

func (p *exprParser) parseUnary() (int64, error) {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return 0, ErrExprUnterminated
	}
	switch p.input[p.pos] {
	case '-':
		p.pos++
		v, err := p.parseUnary()
		return -v, err
	case '+':
		p.pos++
		return p.parseUnary()
	case '~':
		p.pos++
		v, err := p.parseUnary()
		return ^v, err
	case '!':
		if p.pos+1 < len(p.input) && p.input[p.pos+1] == '=' {
			break // "!=" belongs to the comparison level
		}
		p.pos++
		v, err := p.parseUnary()
		return bool2int(v == 0), err
	}
	return p.parseOperand()
}

func (p *exprParser) parseOperand() (int64, error) {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return 0, ErrExprUnterminated
	}

	c := p.input[p.pos]
	switch {
	case c == '(':
		p.pos++
		v, err := p.parse(0)
		if err != nil {
			return 0, err
		}
		p.skipSpace()
		if p.pos >= len(p.input) || p.input[p.pos] != ')' {
			return 0, fmt.Errorf("%w: missing ')'", ErrExprParse)
		}
		p.pos++
		return v, nil

	case c == '\'':
		return p.parseChar()

	case c == '$' || c == '%' || isDigit(c):
		return p.parseNumber()

	case isIdentStart(c):
		return p.parseIdentifier()
	}

	return 0, fmt.Errorf("%w near %q", ErrExprParse, p.input[p.pos:])
}

// parseChar handles a character constant such as 'A' or '\n'.
func (p *exprParser) parseChar() (int64, error) {
	s := p.input[p.pos:]
	if len(s) >= 3 && s[1] != '\\' && s[2] == '\'' {
		p.pos += 3
		return int64(s[1]), nil
	}
	if len(s) >= 4 && s[1] == '\\' && s[3] == '\'' {
		p.pos += 4
		switch s[2] {
		case 'n':
			return '\n', nil
		case 'r':
			return '\r', nil
		case 't':
			return '\t', nil
		case '0':
			return 0, nil
		default:
			return int64(s[2]), nil
		}
	}
	return 0, fmt.Errorf("%w: bad character constant", ErrExprParse)
}

// parseNumber handles the assembler numeric formats: $fc00, 0xfc00,
// 0fc00h, %1010, 0b1010 and plain decimal.
func (p *exprParser) parseNumber() (int64, error) {
	s := p.input[p.pos:]

	base := 10
	digits := "0123456789"
	const hexDigits = "0123456789abcdefABCDEF"
	if p.hexMode {
		base, digits = 16, hexDigits
	}
	switch {
	case s[0] == '$':
		base, digits, s = 16, hexDigits, s[1:]
		p.pos++
	case s[0] == '%':
		base, digits, s = 2, "01", s[1:]
		p.pos++
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		base, digits, s = 16, hexDigits, s[2:]
		p.pos += 2
	case strings.HasPrefix(s, "0b") || strings.HasPrefix(s, "0B"):
		base, digits, s = 2, "01", s[2:]
		p.pos += 2
	}

	n := 0
	for n < len(s) && strings.IndexByte(digits, s[n]) >= 0 {
		n++
	}
	if n == 0 {
		return 0, fmt.Errorf("%w: malformed number", ErrExprParse)
	}
	lit := s[:n]

	// A run of decimal digits may continue with hex digits and an 'h'
	// suffix, making the whole literal hexadecimal.
	if base == 10 {
		m := n
		for m < len(s) && isHexDigit(s[m]) {
			m++
		}
		if m < len(s) && (s[m] == 'h' || s[m] == 'H') {
			base, lit, n = 16, s[:m], m+1
		}
	}

	var v int64
	for i := 0; i < len(lit); i++ {
		v = v*int64(base) + int64(hexValue(lit[i]))
	}
	p.pos += n
	return v, nil
}

func (p *exprParser) parseIdentifier() (int64, error) {
	start := p.pos
	for p.pos < len(p.input) && isIdentRune(p.input[p.pos]) {
		p.pos++
	}
	// A trailing apostrophe names a shadow register (AF', B', HL').
	if p.pos < len(p.input) && p.input[p.pos] == '\'' {
		p.pos++
	}
	name := p.input[start:p.pos]
	if p.resolve == nil {
		return 0, fmt.Errorf("%w %q", ErrExprUnknownSymbol, name)
	}
	return p.resolve(name)
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

func bool2int(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexValue(c byte) int {
	switch {
	case c <= '9':
		return int(c - '0')
	case c >= 'a':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '.' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentRune(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
