// Copyright 2026 Brett Vickers.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package step

import (
	"sort"

	"github.com/beevik/z80dbg/bank"
)

// A SkipTable records return-address corrections for RST-style system
// calls that consume inline argument bytes following the instruction.
// Entries are keyed by the long address of the byte after the RST or CALL
// instruction. The table is owned by the caller; the planner only reads
// it. An absent entry means the class default applies (one byte for the
// RST 08 vector, zero otherwise).
type SkipTable struct {
	overrides map[bank.LongAddress]int
}

// A SkipOverride is one table entry, reported by Overrides.
type SkipOverride struct {
	Address bank.LongAddress
	Count   int
}

// NewSkipTable creates an empty skip table.
func NewSkipTable() *SkipTable {
	return &SkipTable{overrides: make(map[bank.LongAddress]int)}
}

// Set records a byte-count override for the given long address. Counts
// are clamped to the 16-bit address space: negatives become zero and
// anything above 65535 becomes 65535.
func (t *SkipTable) Set(addr bank.LongAddress, count int) {
	switch {
	case count < 0:
		count = 0
	case count > 0xffff:
		count = 0xffff
	}
	t.overrides[addr] = count
}

// Remove deletes the override at the given long address, if present.
func (t *SkipTable) Remove(addr bank.LongAddress) {
	delete(t.overrides, addr)
}

// Clear removes all overrides.
func (t *SkipTable) Clear() {
	t.overrides = make(map[bank.LongAddress]int)
}

// Lookup returns the override at the given long address and whether one
// is present.
func (t *SkipTable) Lookup(addr bank.LongAddress) (int, bool) {
	n, ok := t.overrides[addr]
	return n, ok
}

// Overrides returns all entries sorted by address.
func (t *SkipTable) Overrides() []SkipOverride {
	var o []SkipOverride
	for addr, n := range t.overrides {
		o = append(o, SkipOverride{Address: addr, Count: n})
	}
	sort.Slice(o, func(i, j int) bool { return o[i].Address < o[j].Address })
	return o
}
