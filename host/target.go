// Copyright 2026 Brett Vickers.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"errors"
	"io"
	"os"

	"github.com/beevik/z80dbg/z80"
)

// Errors returned by target accessors.
var (
	ErrMemoryOutOfBounds = errors.New("memory access out of bounds")
)

// A Target is a debuggable Z80 system: readable and writable memory plus
// a register file. Reads and writes may fail on remote targets; the
// built-in RAM target never fails.
type Target interface {
	// ReadMemory fills buf with memory starting at addr, wrapping at the
	// top of the address space.
	ReadMemory(addr uint16, buf []byte) error

	// WriteMemory stores buf to memory starting at addr.
	WriteMemory(addr uint16, buf []byte) error

	// Registers returns a snapshot of the register file.
	Registers() (z80.Registers, error)

	// SetRegisters replaces the register file with the given contents.
	SetRegisters(regs z80.Registers) error
}

// A RAMTarget is a local debug target backed by a flat 64K memory. It is
// used when no remote emulator or hardware is attached, allowing code
// images to be inspected, disassembled and step-planned offline.
type RAMTarget struct {
	mem  [64 * 1024]byte
	regs z80.Registers
}

// NewRAMTarget creates a RAM target with empty memory and a reset
// register file (SP at the top of memory, PC at 0).
func NewRAMTarget() *RAMTarget {
	t := &RAMTarget{}
	t.regs.SP = 0xffff
	return t
}

// ReadMemory fills buf with memory contents starting at addr. Reads wrap
// around the top of the 16-bit address space.
func (t *RAMTarget) ReadMemory(addr uint16, buf []byte) error {
	for i := range buf {
		buf[i] = t.mem[addr+uint16(i)]
	}
	return nil
}

// WriteMemory stores buf to memory starting at addr, wrapping at the top
// of the address space.
func (t *RAMTarget) WriteMemory(addr uint16, buf []byte) error {
	for i, v := range buf {
		t.mem[addr+uint16(i)] = v
	}
	return nil
}

// Registers returns a snapshot of the register file.
func (t *RAMTarget) Registers() (z80.Registers, error) {
	return t.regs, nil
}

// SetRegisters replaces the register file.
func (t *RAMTarget) SetRegisters(regs z80.Registers) error {
	t.regs = regs
	return nil
}

// LoadFile reads a raw binary file into memory at origin and returns the
// number of bytes loaded.
func (t *RAMTarget) LoadFile(filename string, origin uint16) (int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	b, err := io.ReadAll(file)
	if err != nil {
		return 0, err
	}
	if int(origin)+len(b) > len(t.mem) {
		return 0, ErrMemoryOutOfBounds
	}

	copy(t.mem[origin:], b)
	return len(b), nil
}
