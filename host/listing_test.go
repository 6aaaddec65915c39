// Copyright 2026 Brett Vickers.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/beevik/z80dbg/bank"
	"github.com/beevik/z80dbg/directive"
)

const sampleListing = `
1    8000 3E 05        start:  ld a,5
2    8002 32 00 60             ld (counter),a   ; WPMEM 0x6000,1,w
3    8005 CD 10 80             call delay
4                      ; ASSERTION A == 5
5    8008 C9                   ret
6    8010 10 FE        delay:  djnz delay       ; LOGPOINT [TIMING] b=${B}
7    6000 00           counter: nop
`

func TestParseListingLabels(t *testing.T) {
	l, err := ParseListing(strings.NewReader(sampleListing))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	want := map[string]uint16{
		"start":   0x8000,
		"delay":   0x8010,
		"counter": 0x6000,
	}
	if diff := cmp.Diff(want, l.Labels); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestParseListingAddresses(t *testing.T) {
	l, err := ParseListing(strings.NewReader(sampleListing))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	var addrs []uint16
	for _, line := range l.Lines {
		if line.HasAddress {
			addrs = append(addrs, line.Address)
		}
	}
	want := []uint16{0x8000, 0x8002, 0x8005, 0x8008, 0x8010, 0x6000}
	if diff := cmp.Diff(want, addrs); diff != "" {
		t.Errorf("addresses mismatch (-want +got):\n%s", diff)
	}
}

func TestListingSourceEntries(t *testing.T) {
	l, err := ParseListing(strings.NewReader(sampleListing))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	want := []directive.SourceEntry{
		{Address: bank.Unbanked(0x8002), HasAddress: true, Line: 3, Text: "WPMEM 0x6000,1,w"},
		{Line: 5, Text: "ASSERTION A == 5"},
		{Address: bank.Unbanked(0x8010), HasAddress: true, Line: 7, Text: "LOGPOINT [TIMING] b=${B}"},
	}
	got := l.SourceEntries()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestListingDirectives(t *testing.T) {
	l, err := ParseListing(strings.NewReader(sampleListing))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	parser := directive.NewParser(nil, nil)
	set := parser.Parse(l.SourceEntries())

	if len(set.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", set.Warnings)
	}
	if len(set.Watchpoints) != 1 {
		t.Fatalf("watchpoint count. exp: 1, got: %d", len(set.Watchpoints))
	}
	wp := set.Watchpoints[0]
	if wp.Address.Addr() != 0x6000 || wp.Size != 1 || wp.Access != directive.AccessWrite {
		t.Errorf("watchpoint incorrect: %+v", wp)
	}

	// The assertion line produced no code, so it has no address and is
	// dropped.
	if len(set.Assertions) != 0 {
		t.Errorf("assertion count. exp: 0, got: %d", len(set.Assertions))
	}

	points := set.LogPoints["TIMING"]
	if len(points) != 1 {
		t.Fatalf("log point count. exp: 1, got: %d", len(points))
	}
	if points[0].Text != "[TIMING] b=${u:reg(B)}" {
		t.Errorf("log point text incorrect: %q", points[0].Text)
	}
}

func TestListingLineIndex(t *testing.T) {
	l, err := ParseListing(strings.NewReader(sampleListing))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	cases := []struct {
		addr uint16
		want int
	}{
		{0x8005, 3}, // exact match
		{0x8006, 5}, // nearest line above
		{0x0000, 7}, // counter at $6000 is the lowest address
		{0x9000, -1},
	}
	for _, c := range cases {
		if got := l.LineIndex(c.addr); got != c.want {
			t.Errorf("LineIndex($%04X). exp: %d, got: %d", c.addr, c.want, got)
		}
	}
}

func TestParseListingLineForms(t *testing.T) {
	cases := []struct {
		input   string
		hasAddr bool
		addr    uint16
		text    string
	}{
		{"12   8000 C9        ret", true, 0x8000, "ret"},
		{"8000 C9   ret", true, 0x8000, "ret"},
		{"; plain comment", false, 0, "; plain comment"},
		{"42   ; banked comment", false, 0, "; banked comment"},
		{"", false, 0, ""},
	}
	for _, c := range cases {
		line := parseListingLine(c.input)
		if line.HasAddress != c.hasAddr || line.Address != c.addr || line.Text != c.text {
			t.Errorf("line %q. exp: {%v $%04X %q}, got: {%v $%04X %q}",
				c.input, c.hasAddr, c.addr, c.text,
				line.HasAddress, line.Address, line.Text)
		}
	}
}
