// Copyright 2026 Brett Vickers.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package step plans the temporary breakpoints required to single-step a
// Z80 program under step-into and step-over semantics. The planner
// decodes the instruction at the program counter and computes every
// address execution could legitimately reach after that one instruction;
// it never executes or simulates anything.
package step

import (
	"fmt"

	"github.com/beevik/z80dbg/bank"
	"github.com/beevik/z80dbg/z80"
)

// The Bus interface is the planner's window onto target memory. Reads may
// fail when the target is unreachable (e.g. a remote emulator process has
// disconnected); a failed read aborts the planning call.
type Bus interface {
	// ReadMemory fills buf with memory contents starting at addr.
	ReadMemory(addr uint16, buf []byte) error
}

// A Plan names the breakpoint addresses to arm for one step request. The
// secondary breakpoint, when present, always differs from the primary.
type Plan struct {
	Instruction  z80.Instruction // the instruction at PC
	Primary      uint16          // breakpoint that is always armed
	Secondary    uint16          // alternate landing address, if HasSecondary
	HasSecondary bool
}

// Addresses returns the plan's breakpoint addresses, primary first.
func (p *Plan) Addresses() []uint16 {
	if p.HasSecondary {
		return []uint16{p.Primary, p.Secondary}
	}
	return []uint16{p.Primary}
}

// A Planner computes step plans against a debug target. It holds no
// register state of its own; callers pass a register snapshot into each
// Plan call, taken after the previous step completed.
type Planner struct {
	bus  Bus
	skip *SkipTable
}

// NewPlanner creates a step planner reading memory through bus and
// consulting skip for RST/CALL return-address overrides. A nil skip table
// behaves as an empty one.
func NewPlanner(bus Bus, skip *SkipTable) *Planner {
	return &Planner{bus: bus, skip: skip}
}

// RST 08 is the conventional disk-operating-system call vector; its
// calling convention consumes one inline byte after the instruction
// unless the skip table says otherwise.
const rst08Vector = 0x0008

// Plan decodes the instruction at the snapshot's PC and returns the
// breakpoint addresses for one step-into or step-over request. Memory
// and stack reads go through the bus; a read failure aborts the call
// with no partial plan. Unrecognized opcodes plan a plain fallthrough.
func (p *Planner) Plan(regs *z80.Registers, stepOver bool) (Plan, error) {
	pc := regs.PC

	var code [z80.MaxInstructionLen]byte
	if err := p.bus.ReadMemory(pc, code[:]); err != nil {
		return Plan{}, fmt.Errorf("read instruction at $%04X: %w", pc, err)
	}

	in := z80.Decode(code[:], pc)
	next := pc + uint16(in.Size)
	plan := Plan{Instruction: in, Primary: next}

	switch in.Class {
	case z80.ClassRet:
		top, err := p.stackTop(regs)
		if err != nil {
			return Plan{}, err
		}
		plan.Primary = top

	case z80.ClassRetCond:
		top, err := p.stackTop(regs)
		if err != nil {
			return Plan{}, err
		}
		plan.setSecondary(top)

	case z80.ClassJpAbs, z80.ClassJrRel:
		plan.Primary = in.Target

	case z80.ClassJpCond, z80.ClassJrCond, z80.ClassDjnz:
		plan.setSecondary(in.Target)

	case z80.ClassJpIndirect:
		switch in.Reg {
		case z80.RegIX:
			plan.Primary = regs.IX
		case z80.RegIY:
			plan.Primary = regs.IY
		default:
			plan.Primary = regs.HL()
		}

	case z80.ClassCall:
		if stepOver {
			plan.Primary = next + p.skipAt(next, regs, 0)
			plan.setSecondary(plan.Primary + 1)
		} else {
			plan.Primary = in.Target
		}

	case z80.ClassCallCond:
		if stepOver {
			plan.Primary = next + p.skipAt(next, regs, 0)
			plan.setSecondary(plan.Primary + 1)
		} else {
			plan.setSecondary(in.Target)
		}

	case z80.ClassRst:
		var def uint16
		if in.Target == rst08Vector {
			def = 1
		}
		plan.Primary = next + p.skipAt(next, regs, def)
		switch {
		case !stepOver:
			plan.setSecondary(in.Target)
		case in.Target != rst08Vector:
			// The true return point may be offset by inline data the
			// callee consumes, so arm a safety breakpoint one byte past
			// the expected one. RST 08's convention is fully described
			// by the skip table and needs no safety net.
			plan.setSecondary(plan.Primary + 1)
		}

	case z80.ClassBlockRepeat, z80.ClassHalt:
		// The instruction may still be in progress after the step.
		if !stepOver {
			plan.setSecondary(pc)
		}
	}

	return plan, nil
}

// setSecondary arms the secondary breakpoint unless it would duplicate
// the primary one.
func (p *Plan) setSecondary(addr uint16) {
	if addr != p.Primary {
		p.Secondary = addr
		p.HasSecondary = true
	}
}

// skipAt returns the inline-byte count to skip for a return address at
// the given CPU address, consulting the override table under the
// snapshot's current bank configuration.
func (p *Planner) skipAt(addr uint16, regs *z80.Registers, def uint16) uint16 {
	if p.skip != nil {
		if n, ok := p.skip.Lookup(bank.ToLong(addr, regs.Slots)); ok {
			return uint16(n)
		}
	}
	return def
}

// stackTop reads the 16-bit return address at the top of the stack.
func (p *Planner) stackTop(regs *z80.Registers) (uint16, error) {
	var b [2]byte
	if err := p.bus.ReadMemory(regs.SP, b[:]); err != nil {
		return 0, fmt.Errorf("read stack at $%04X: %w", regs.SP, err)
	}
	return uint16(b[0]) | uint16(b[1])<<8, nil
}
