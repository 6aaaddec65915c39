// Copyright 2026 Brett Vickers.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"testing"

	"github.com/beevik/z80dbg/step"
)

func TestDebuggerBreakpoints(t *testing.T) {
	d := NewDebugger()

	d.AddBreakpoint(0x8000)
	d.AddBreakpoint(0x4000)
	if b := d.GetBreakpoint(0x8000); b == nil || b.Temporary {
		t.Errorf("breakpoint at $8000 incorrect: %+v", b)
	}

	bp := d.GetBreakpoints()
	if len(bp) != 2 || bp[0].Address != 0x4000 || bp[1].Address != 0x8000 {
		t.Errorf("breakpoint list not sorted: %+v", bp)
	}

	if d.RemoveBreakpoint(0x4000) == nil {
		t.Error("remove at $4000 returned nil")
	}
	if d.RemoveBreakpoint(0x4000) != nil {
		t.Error("second remove at $4000 returned a breakpoint")
	}
}

func TestDebuggerArmPlan(t *testing.T) {
	d := NewDebugger()
	d.AddBreakpoint(0x8002)

	plan := step.Plan{Primary: 0x8002, Secondary: 0x8007, HasSecondary: true}
	armed := d.ArmPlan(plan)

	// The persistent breakpoint at the primary address is reused, so only
	// the secondary is armed.
	if len(armed) != 1 || armed[0] != 0x8007 {
		t.Errorf("armed addresses incorrect: %v", armed)
	}
	if b := d.GetBreakpoint(0x8007); b == nil || !b.Temporary {
		t.Errorf("temporary breakpoint at $8007 incorrect: %+v", b)
	}

	d.Disarm()
	if d.GetBreakpoint(0x8007) != nil {
		t.Error("temporary breakpoint survived disarm")
	}
	if d.GetBreakpoint(0x8002) == nil {
		t.Error("persistent breakpoint removed by disarm")
	}
}

func TestDebuggerPromoteTemporary(t *testing.T) {
	d := NewDebugger()
	d.ArmPlan(step.Plan{Primary: 0x9000})
	d.AddBreakpoint(0x9000)
	d.Disarm()
	if b := d.GetBreakpoint(0x9000); b == nil || b.Temporary {
		t.Errorf("promoted breakpoint incorrect: %+v", b)
	}
}
