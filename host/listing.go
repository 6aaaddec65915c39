// Copyright 2026 Brett Vickers.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/beevik/z80dbg/bank"
	"github.com/beevik/z80dbg/directive"
)

// A ListingLine is one line of an assembler listing file. Lines that
// emitted code carry the address of their first byte.
type ListingLine struct {
	Address    uint16
	HasAddress bool
	Text       string // source text with line number, address and code bytes removed
}

// A Listing holds the parsed contents of an assembler listing file: the
// source lines, the labels it defines, and the comment text that may
// carry debugger directives.
type Listing struct {
	Lines  []ListingLine
	Labels map[string]uint16
}

// LoadListing reads an assembler listing from a file.
func LoadListing(filename string) (*Listing, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ParseListing(file)
}

// ParseListing reads an assembler listing line by line. Each line may
// begin with a decimal line number, followed by a 4-digit hex address
// and the code bytes the line emitted; all three are optional and are
// stripped from the stored text. Labels are recognized as identifiers
// ending in ':' at the start of the source text on a line that has an
// address.
func ParseListing(r io.Reader) (*Listing, error) {
	l := &Listing{Labels: make(map[string]uint16)}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := parseListingLine(scanner.Text())
		if line.HasAddress {
			if label, ok := leadingLabel(line.Text); ok {
				l.Labels[label] = line.Address
			}
		}
		l.Lines = append(l.Lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return l, nil
}

// SourceEntries returns the comment tail of every listing line, paired
// with the line's address when it has one, in the form the directive
// parser consumes. Lines without a comment are skipped; each entry keeps
// the 1-based number of its listing line so parser warnings can point
// back at the file.
func (l *Listing) SourceEntries() []directive.SourceEntry {
	var entries []directive.SourceEntry
	for n, line := range l.Lines {
		i := strings.IndexByte(line.Text, ';')
		if i < 0 {
			continue
		}
		e := directive.SourceEntry{
			Line: n + 1,
			Text: strings.TrimSpace(line.Text[i+1:]),
		}
		if line.HasAddress {
			e.Address = bank.Unbanked(line.Address)
			e.HasAddress = true
		}
		entries = append(entries, e)
	}
	return entries
}

// LookupLabel returns the address of a label defined by the listing.
func (l *Listing) LookupLabel(name string) (uint16, bool) {
	addr, ok := l.Labels[name]
	return addr, ok
}

// LineIndex returns the index of the listing line assembled at the given
// address, or the nearest line assembled above it when no line matches
// exactly. It returns -1 when the listing has no line at or above the
// address.
func (l *Listing) LineIndex(addr uint16) int {
	best, bestAddr := -1, uint16(0)
	for i, line := range l.Lines {
		if !line.HasAddress {
			continue
		}
		if line.Address == addr {
			return i
		}
		if line.Address > addr && (best < 0 || line.Address < bestAddr) {
			best, bestAddr = i, line.Address
		}
	}
	return best
}

// parseListingLine strips the line number, address and code-byte columns
// from a listing line, keeping the address if one was present.
func parseListingLine(s string) ListingLine {
	var line ListingLine
	rest := s

	// Optional decimal line number. A token of exactly 4 hex digits is
	// taken as the address column instead.
	if tok, after := nextToken(rest); isDecimal(tok) && !(len(tok) == 4 && isHex(tok)) {
		rest = after
	}

	// Optional 4-digit hex address.
	if tok, after := nextToken(rest); len(tok) == 4 && isHex(tok) {
		line.Address = uint16(hexWord(tok))
		line.HasAddress = true
		rest = after

		// Code bytes emitted by the line follow the address as pairs of
		// hex digits.
		for {
			tok, after := nextToken(rest)
			if len(tok) != 2 || !isHex(tok) {
				break
			}
			rest = after
		}
	}

	line.Text = strings.Trim(rest, " \t")
	return line
}

// nextToken splits off the next whitespace-delimited token, returning
// the token and the remainder of the string.
func nextToken(s string) (tok, rest string) {
	s = strings.TrimLeft(s, " \t")
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i:]
}

// leadingLabel reports whether the source text begins with a label
// definition and returns the label's name.
func leadingLabel(text string) (string, bool) {
	text = strings.TrimLeft(text, " \t")
	i := strings.IndexByte(text, ':')
	if i <= 0 {
		return "", false
	}
	name := text[:i]
	if !isIdentStart(name[0]) {
		return "", false
	}
	for j := 1; j < len(name); j++ {
		if !isIdentRune(name[j]) {
			return "", false
		}
	}
	return name, true
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return false
		}
	}
	return true
}

func hexWord(s string) int {
	v := 0
	for i := 0; i < len(s); i++ {
		v = v<<4 | hexValue(s[i])
	}
	return v
}
