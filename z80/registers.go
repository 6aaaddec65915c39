// Copyright 2026 Brett Vickers.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package z80

import "strings"

// Registers is a snapshot of the Z80 register file, captured from a
// debug target at a single point in time. Code that needs the "current"
// registers must be handed a snapshot explicitly; mutating a snapshot
// has no effect on the target until it is written back.
type Registers struct {
	A, F byte
	B, C byte
	D, E byte
	H, L byte

	// Alternate (shadow) register set.
	A2, F2 byte
	B2, C2 byte
	D2, E2 byte
	H2, L2 byte

	IX, IY uint16
	SP, PC uint16
	I, R   byte

	// Slots holds the memory bank currently paged into each address-space
	// slot, if the target reports bank state. Empty on unbanked targets.
	Slots []byte
}

// Flag bits of the F register.
const (
	FlagC = 1 << 0 // carry
	FlagN = 1 << 1 // add/subtract
	FlagP = 1 << 2 // parity/overflow
	FlagH = 1 << 4 // half carry
	FlagZ = 1 << 6 // zero
	FlagS = 1 << 7 // sign
)

// AF returns the combined 16-bit accumulator/flags pair.
func (r *Registers) AF() uint16 { return uint16(r.A)<<8 | uint16(r.F) }

// BC returns the combined 16-bit BC pair.
func (r *Registers) BC() uint16 { return uint16(r.B)<<8 | uint16(r.C) }

// DE returns the combined 16-bit DE pair.
func (r *Registers) DE() uint16 { return uint16(r.D)<<8 | uint16(r.E) }

// HL returns the combined 16-bit HL pair.
func (r *Registers) HL() uint16 { return uint16(r.H)<<8 | uint16(r.L) }

// SetBC stores a 16-bit value into the BC pair.
func (r *Registers) SetBC(v uint16) { r.B, r.C = byte(v>>8), byte(v) }

// SetDE stores a 16-bit value into the DE pair.
func (r *Registers) SetDE(v uint16) { r.D, r.E = byte(v>>8), byte(v) }

// SetHL stores a 16-bit value into the HL pair.
func (r *Registers) SetHL(v uint16) { r.H, r.L = byte(v>>8), byte(v) }

// IsRegisterName reports whether a string names a Z80 register. The
// comparison is case-insensitive. Shadow registers use a trailing
// apostrophe (e.g. "AF'").
func IsRegisterName(s string) bool {
	switch strings.ToUpper(s) {
	case "A", "F", "B", "C", "D", "E", "H", "L",
		"AF", "BC", "DE", "HL", "IX", "IY", "SP", "PC", "I", "R",
		"A'", "F'", "B'", "C'", "D'", "E'", "H'", "L'",
		"AF'", "BC'", "DE'", "HL'",
		"IXH", "IXL", "IYH", "IYL":
		return true
	}
	return false
}

// Lookup returns the current value of a register by name, widened to 16
// bits. It returns false if the name does not identify a register.
func (r *Registers) Lookup(name string) (uint16, bool) {
	switch strings.ToUpper(name) {
	case "A":
		return uint16(r.A), true
	case "F":
		return uint16(r.F), true
	case "B":
		return uint16(r.B), true
	case "C":
		return uint16(r.C), true
	case "D":
		return uint16(r.D), true
	case "E":
		return uint16(r.E), true
	case "H":
		return uint16(r.H), true
	case "L":
		return uint16(r.L), true
	case "AF":
		return r.AF(), true
	case "BC":
		return r.BC(), true
	case "DE":
		return r.DE(), true
	case "HL":
		return r.HL(), true
	case "A'":
		return uint16(r.A2), true
	case "F'":
		return uint16(r.F2), true
	case "B'":
		return uint16(r.B2), true
	case "C'":
		return uint16(r.C2), true
	case "D'":
		return uint16(r.D2), true
	case "E'":
		return uint16(r.E2), true
	case "H'":
		return uint16(r.H2), true
	case "L'":
		return uint16(r.L2), true
	case "AF'":
		return uint16(r.A2)<<8 | uint16(r.F2), true
	case "BC'":
		return uint16(r.B2)<<8 | uint16(r.C2), true
	case "DE'":
		return uint16(r.D2)<<8 | uint16(r.E2), true
	case "HL'":
		return uint16(r.H2)<<8 | uint16(r.L2), true
	case "IX":
		return r.IX, true
	case "IY":
		return r.IY, true
	case "IXH":
		return r.IX >> 8, true
	case "IXL":
		return r.IX & 0xff, true
	case "IYH":
		return r.IY >> 8, true
	case "IYL":
		return r.IY & 0xff, true
	case "SP":
		return r.SP, true
	case "PC":
		return r.PC, true
	case "I":
		return uint16(r.I), true
	case "R":
		return uint16(r.R), true
	}
	return 0, false
}

// Store sets the value of a register by name. 8-bit registers keep only
// the low byte of the value. It returns false if the name does not
// identify a writable register.
func (r *Registers) Store(name string, v uint16) bool {
	switch strings.ToUpper(name) {
	case "A":
		r.A = byte(v)
	case "F":
		r.F = byte(v)
	case "B":
		r.B = byte(v)
	case "C":
		r.C = byte(v)
	case "D":
		r.D = byte(v)
	case "E":
		r.E = byte(v)
	case "H":
		r.H = byte(v)
	case "L":
		r.L = byte(v)
	case "AF":
		r.A, r.F = byte(v>>8), byte(v)
	case "BC":
		r.SetBC(v)
	case "DE":
		r.SetDE(v)
	case "HL":
		r.SetHL(v)
	case "A'":
		r.A2 = byte(v)
	case "F'":
		r.F2 = byte(v)
	case "B'":
		r.B2 = byte(v)
	case "C'":
		r.C2 = byte(v)
	case "D'":
		r.D2 = byte(v)
	case "E'":
		r.E2 = byte(v)
	case "H'":
		r.H2 = byte(v)
	case "L'":
		r.L2 = byte(v)
	case "AF'":
		r.A2, r.F2 = byte(v>>8), byte(v)
	case "BC'":
		r.B2, r.C2 = byte(v>>8), byte(v)
	case "DE'":
		r.D2, r.E2 = byte(v>>8), byte(v)
	case "HL'":
		r.H2, r.L2 = byte(v>>8), byte(v)
	case "IX":
		r.IX = v
	case "IY":
		r.IY = v
	case "SP":
		r.SP = v
	case "PC":
		r.PC = v
	case "I":
		r.I = byte(v)
	case "R":
		r.R = byte(v)
	default:
		return false
	}
	return true
}
