// Copyright 2026 Brett Vickers.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package directive extracts debug directives embedded in assembler
// source comments. Three directive keywords are recognized at the start
// of a comment line: WPMEM declares a memory watchpoint, ASSERTION a
// runtime invariant check, and LOGPOINT a conditional log emission point.
// Parsing is line-independent and never aborts; malformed clauses are
// reported through the result's warning list and skipped.
package directive

import "github.com/beevik/z80dbg/bank"

// A SourceEntry is one assembler source line paired with the address its
// code assembled to. Lines that produced no code (macro invocations,
// comments in unassembled regions) have no address. Line is the 1-based
// line number in the originating file and is used in warning messages.
type SourceEntry struct {
	Address    bank.LongAddress
	HasAddress bool
	Line       int
	Text       string
}

// Access describes which memory operations trigger a watchpoint.
type Access byte

const (
	AccessRead  Access = 1 << iota // r
	AccessWrite                    // w

	AccessReadWrite = AccessRead | AccessWrite // rw
)

func (a Access) String() string {
	switch a {
	case AccessRead:
		return "r"
	case AccessWrite:
		return "w"
	default:
		return "rw"
	}
}

// A Watchpoint is a memory range to guard, declared by a WPMEM comment.
type Watchpoint struct {
	Address   bank.LongAddress // first guarded address
	Size      int              // number of guarded bytes, >= 1
	Access    Access           // operations that trigger
	Condition string           // extra trigger condition, empty if none
}

// An Assertion is an invariant check declared by an ASSERTION comment.
// The stored condition is the negation of the declared one: the assertion
// fires when its guard condition is false.
type Assertion struct {
	Address   bank.LongAddress
	Condition string
}

// A LogPoint is a log emission point declared by a LOGPOINT comment. Log
// points are partitioned into named groups that can be enabled and
// disabled together.
type LogPoint struct {
	Address bank.LongAddress
	Group   string
	Text    string // "[group] message" with placeholders in prepared form
}

// DefaultGroup receives LOGPOINT lines that name no group of their own.
const DefaultGroup = "DEFAULT"

// A Set holds every directive extracted from one source listing, along
// with the warnings raised for malformed clauses. Log points are grouped
// by name; within a group they keep source order.
type Set struct {
	Watchpoints []Watchpoint
	Assertions  []Assertion
	LogPoints   map[string][]LogPoint
	Warnings    []string
}

// GroupNames returns the names of all log point groups present.
func (s *Set) GroupNames() []string {
	names := make([]string, 0, len(s.LogPoints))
	for name := range s.LogPoints {
		names = append(names, name)
	}
	return names
}
