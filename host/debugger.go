// Copyright 2026 Brett Vickers.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"sort"

	"github.com/beevik/z80dbg/step"
)

// A Breakpoint represents an address that will halt execution of the
// attached target when reached.
type Breakpoint struct {
	Address   uint16
	Disabled  bool
	Temporary bool // armed by a step plan, removed once the step lands
}

// A Debugger maintains the set of breakpoints for a target. Persistent
// breakpoints are entered by the user; temporary breakpoints are armed
// from step plans and cleared when the step completes.
type Debugger struct {
	breakpoints map[uint16]*Breakpoint
}

// NewDebugger creates a debugger with no breakpoints.
func NewDebugger() *Debugger {
	return &Debugger{
		breakpoints: make(map[uint16]*Breakpoint),
	}
}

// GetBreakpoint looks up the breakpoint at the given address. It returns
// nil if there is none.
func (d *Debugger) GetBreakpoint(addr uint16) *Breakpoint {
	return d.breakpoints[addr]
}

// GetBreakpoints returns all breakpoints sorted by address.
func (d *Debugger) GetBreakpoints() []*Breakpoint {
	bp := make([]*Breakpoint, 0, len(d.breakpoints))
	for _, b := range d.breakpoints {
		bp = append(bp, b)
	}
	sort.Slice(bp, func(i, j int) bool { return bp[i].Address < bp[j].Address })
	return bp
}

// AddBreakpoint adds a persistent breakpoint at the given address. If a
// temporary breakpoint already exists there, it is promoted.
func (d *Debugger) AddBreakpoint(addr uint16) *Breakpoint {
	b := d.breakpoints[addr]
	if b == nil {
		b = &Breakpoint{Address: addr}
		d.breakpoints[addr] = b
	}
	b.Temporary = false
	return b
}

// RemoveBreakpoint removes the breakpoint at the given address and
// returns it, or nil if there was none.
func (d *Debugger) RemoveBreakpoint(addr uint16) *Breakpoint {
	b := d.breakpoints[addr]
	if b != nil {
		delete(d.breakpoints, addr)
	}
	return b
}

// ArmPlan installs temporary breakpoints for a step plan and returns the
// addresses it armed. Addresses that already carry a persistent
// breakpoint are left as they are.
func (d *Debugger) ArmPlan(p step.Plan) []uint16 {
	var armed []uint16
	for _, addr := range p.Addresses() {
		if d.breakpoints[addr] == nil {
			d.breakpoints[addr] = &Breakpoint{Address: addr, Temporary: true}
			armed = append(armed, addr)
		}
	}
	return armed
}

// Disarm removes all temporary breakpoints, normally after a step has
// landed on one of them.
func (d *Debugger) Disarm() {
	for addr, b := range d.breakpoints {
		if b.Temporary {
			delete(d.breakpoints, addr)
		}
	}
}
