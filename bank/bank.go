// Copyright 2026 Brett Vickers.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bank models the paged-memory address space of Z80-family
// systems. A 16-bit CPU address is ambiguous on banked hardware; a
// LongAddress combines the CPU address with the memory bank mapped into
// its slot at the time of observation, yielding a value that is unique
// across all banks.
package bank

// The address space is divided into fixed-size slots, each of which may
// have a different memory bank paged in.
const (
	SlotCount = 8
	SlotSize  = 0x2000
)

// A LongAddress is a 16-bit CPU address qualified by a memory bank. The
// bank component is stored biased by one, so the zero bank component
// means "no bank information" and a plain 16-bit address embeds
// losslessly.
type LongAddress uint32

// MakeLong builds a long address from a CPU address and a bank number.
func MakeLong(addr uint16, bank int) LongAddress {
	return LongAddress(uint32(bank+1)<<16 | uint32(addr))
}

// Unbanked returns the long-address form of a CPU address with no bank
// qualification.
func Unbanked(addr uint16) LongAddress {
	return LongAddress(addr)
}

// Addr returns the 16-bit CPU address component.
func (a LongAddress) Addr() uint16 {
	return uint16(a)
}

// Bank returns the bank component, or -1 if the address carries no bank
// information. The inverse lookup requires no slot state.
func (a LongAddress) Bank() int {
	return int(a>>16) - 1
}

// Rebase returns a long address with the same bank component but a
// different CPU address.
func (a LongAddress) Rebase(addr uint16) LongAddress {
	return a&^LongAddress(0xffff) | LongAddress(addr)
}

// SlotOf returns the slot index containing a CPU address.
func SlotOf(addr uint16) int {
	return int(addr) / SlotSize
}

// ToLong converts a CPU address to a long address using the banks
// currently paged into each slot. A nil or short slot configuration
// yields the unbanked form.
func ToLong(addr uint16, slots []byte) LongAddress {
	s := SlotOf(addr)
	if s >= len(slots) {
		return Unbanked(addr)
	}
	return MakeLong(addr, int(slots[s]))
}
