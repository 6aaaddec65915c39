// Copyright 2026 Brett Vickers.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package directive

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/z80dbg/z80"
)

// An Evaluator resolves a numeric expression appearing in a directive
// field, such as a watchpoint address or size. Hosts supply an evaluator
// backed by their label table; the default understands numeric literals
// only.
type Evaluator func(expr string) (int64, error)

// A RegisterResolver reports whether a log point placeholder expression
// names a CPU register. Register placeholders are rewritten to reg(...)
// accessors, everything else to eval(...) accessors.
type RegisterResolver func(name string) bool

// A Parser extracts directives from source entries.
type Parser struct {
	eval Evaluator
	reg  RegisterResolver
}

// NewParser creates a directive parser. A nil evaluator restricts
// directive fields to numeric literals ($nnnn, 0xnnnn, nnnnh or decimal).
// A nil register resolver recognizes the Z80 register names.
func NewParser(eval Evaluator, reg RegisterResolver) *Parser {
	if eval == nil {
		eval = EvalLiteral
	}
	if reg == nil {
		reg = z80.IsRegisterName
	}
	return &Parser{eval: eval, reg: reg}
}

// Parse scans the entries in order and collects all embedded directives.
// Each line is processed independently; a malformed clause adds a warning
// to the result and parsing continues with the next line. Directive lines
// with no address are dropped silently, since macro-expanded or zero-byte
// lines legitimately lack one.
func (p *Parser) Parse(entries []SourceEntry) *Set {
	set := &Set{LogPoints: make(map[string][]LogPoint)}
	for _, e := range entries {
		text := strings.TrimSpace(e.Text)
		switch {
		case hasKeyword(text, "WPMEM"):
			p.parseWatchpoint(set, e, strings.TrimSpace(text[len("WPMEM"):]))
		case hasKeyword(text, "ASSERTION"):
			p.parseAssertion(set, e, strings.TrimSpace(text[len("ASSERTION"):]))
		case hasKeyword(text, "LOGPOINT"):
			p.parseLogPoint(set, e, strings.TrimSpace(text[len("LOGPOINT"):]))
		}
	}
	return set
}

// hasKeyword reports whether text begins with the keyword followed by a
// word boundary, so "LOGPOINTx" does not match. Keywords are
// case-sensitive.
func hasKeyword(text, kw string) bool {
	if !strings.HasPrefix(text, kw) {
		return false
	}
	return len(text) == len(kw) || !wordChar(text[len(kw)])
}

func wordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

// parseWatchpoint handles "WPMEM [addr][,size][,access][,condition]".
func (p *Parser) parseWatchpoint(set *Set, e SourceEntry, rest string) {
	if !e.HasAddress {
		return
	}

	wp := Watchpoint{Address: e.Address, Size: 1, Access: AccessReadWrite}

	fields := splitFields(rest, 4)
	if len(fields) > 0 && fields[0] != "" {
		v, err := p.eval(fields[0])
		if err != nil {
			set.warnf("line %d: WPMEM address %q: %v", e.Line, fields[0], err)
			return
		}
		wp.Address = e.Address.Rebase(uint16(v))
	}
	if len(fields) > 1 && fields[1] != "" {
		v, err := p.eval(fields[1])
		if err != nil || v < 1 {
			set.warnf("line %d: WPMEM size %q is not a positive count", e.Line, fields[1])
			return
		}
		wp.Size = int(v)
	}
	if len(fields) > 2 && fields[2] != "" {
		a, ok := parseAccess(fields[2])
		if !ok {
			set.warnf("line %d: WPMEM access %q is not r, w or rw", e.Line, fields[2])
			return
		}
		wp.Access = a
	}
	if len(fields) > 3 {
		wp.Condition = fields[3]
	}

	set.Watchpoints = append(set.Watchpoints, wp)
}

// parseAssertion handles "ASSERTION [condition]". The stored guard is the
// negated condition; a missing condition always triggers.
func (p *Parser) parseAssertion(set *Set, e SourceEntry, rest string) {
	if !e.HasAddress {
		return
	}
	if rest == "" {
		rest = "false"
	}
	set.Assertions = append(set.Assertions, Assertion{
		Address:   e.Address,
		Condition: "!(" + rest + ")",
	})
}

// parseLogPoint handles "LOGPOINT [group] message".
func (p *Parser) parseLogPoint(set *Set, e SourceEntry, rest string) {
	if !e.HasAddress {
		return
	}

	group := DefaultGroup
	if strings.HasPrefix(rest, "[") {
		end := strings.IndexByte(rest, ']')
		name := ""
		if end > 0 {
			name = strings.TrimSpace(rest[1:end])
		}
		if end < 0 || name == "" {
			set.warnf("line %d: LOGPOINT group clause %q is malformed", e.Line, rest)
		} else {
			group = name
			rest = strings.TrimSpace(rest[end+1:])
		}
	}

	msg, warns := prepareTemplate(rest, p.reg)
	for _, w := range warns {
		set.warnf("line %d: %s", e.Line, w)
	}

	set.LogPoints[group] = append(set.LogPoints[group], LogPoint{
		Address: e.Address,
		Group:   group,
		Text:    "[" + group + "] " + msg,
	})
}

// splitFields splits a comma-separated directive tail into at most max
// trimmed fields. The final field keeps embedded commas so conditions can
// contain them.
func splitFields(s string, max int) []string {
	if s == "" {
		return nil
	}
	fields := strings.SplitN(s, ",", max)
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

func parseAccess(s string) (Access, bool) {
	switch strings.ToLower(s) {
	case "r":
		return AccessRead, true
	case "w":
		return AccessWrite, true
	case "rw":
		return AccessReadWrite, true
	}
	return 0, false
}

// EvalLiteral resolves numeric literals in the common assembler
// notations: $nnnn, 0xnnnn, nnnnh and plain decimal.
func EvalLiteral(expr string) (int64, error) {
	s := strings.TrimSpace(expr)
	switch {
	case strings.HasPrefix(s, "$"):
		return strconv.ParseInt(s[1:], 16, 64)
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		return strconv.ParseInt(s[2:], 16, 64)
	case strings.HasSuffix(s, "h") || strings.HasSuffix(s, "H"):
		return strconv.ParseInt(s[:len(s)-1], 16, 64)
	}
	return strconv.ParseInt(s, 10, 64)
}

func (s *Set) warnf(format string, args ...any) {
	s.Warnings = append(s.Warnings, fmt.Sprintf(format, args...))
}
