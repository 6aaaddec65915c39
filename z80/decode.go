// Copyright 2026 Brett Vickers.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package z80 implements instruction decoding for Z80-family CPUs. The
// decoder classifies each instruction by its effect on control flow and
// reports its canonical encoded length; it never executes anything.
package z80

// A Class tags a decoded instruction with its control-flow behavior.
// Instructions with no effect on control flow are ClassOther.
type Class byte

const (
	ClassOther       Class = iota
	ClassRet               // RET, RETI, RETN
	ClassRetCond           // RET cc
	ClassCall              // CALL nn
	ClassCallCond          // CALL cc,nn
	ClassRst               // RST n
	ClassJpAbs             // JP nn
	ClassJpCond            // JP cc,nn
	ClassJrRel             // JR e
	ClassJrCond            // JR cc,e
	ClassDjnz              // DJNZ e
	ClassJpIndirect        // JP (HL), JP (IX), JP (IY)
	ClassBlockRepeat       // LDIR, LDDR, CPIR, CPDR, INIR, INDR, OTIR, OTDR
	ClassHalt              // HALT
)

var classNames = []string{
	"other", "ret", "retcond", "call", "callcond", "rst", "jp", "jpcond",
	"jr", "jrcond", "djnz", "jpindirect", "blockrepeat", "halt",
}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return "other"
}

// IndexReg identifies the register holding the target of an indirect jump.
type IndexReg byte

const (
	RegHL IndexReg = iota
	RegIX
	RegIY
)

var indexRegNames = []string{"HL", "IX", "IY"}

func (r IndexReg) String() string { return indexRegNames[r] }

// An Instruction is the result of decoding one instruction. It is created
// fresh per decode and never persisted.
type Instruction struct {
	Opcode []byte   // raw instruction bytes (length == Size)
	Class  Class    // control-flow classification
	Size   int      // canonical encoded length in bytes
	Target uint16   // resolved branch/call target or RST vector, if branch-like
	Reg    IndexReg // register operand for ClassJpIndirect
}

// baseLen holds encoded lengths for unprefixed opcodes.
var baseLen [256]byte

func init() {
	for i := range baseLen {
		baseLen[i] = 1
	}
	two := []byte{
		0x06, 0x0e, 0x16, 0x1e, 0x26, 0x2e, 0x36, 0x3e, // LD r,n
		0x10, 0x18, 0x20, 0x28, 0x30, 0x38, // DJNZ, JR, JR cc
		0xc6, 0xce, 0xd6, 0xde, 0xe6, 0xee, 0xf6, 0xfe, // ALU n
		0xd3, 0xdb, // OUT (n),A / IN A,(n)
	}
	three := []byte{
		0x01, 0x11, 0x21, 0x31, // LD rr,nn
		0x22, 0x2a, 0x32, 0x3a, // LD (nn),HL etc.
		0xc3, 0xc2, 0xca, 0xd2, 0xda, 0xe2, 0xea, 0xf2, 0xfa, // JP, JP cc
		0xcd, 0xc4, 0xcc, 0xd4, 0xdc, 0xe4, 0xec, 0xf4, 0xfc, // CALL, CALL cc
	}
	for _, op := range two {
		baseLen[op] = 2
	}
	for _, op := range three {
		baseLen[op] = 3
	}
}

// indexDisp reports whether an opcode addresses (HL) and therefore gains a
// displacement byte under a DD/FD prefix.
func indexDisp(op byte) bool {
	switch {
	case op == 0x34 || op == 0x35 || op == 0x36: // INC/DEC/LD (HL)
		return true
	case op >= 0x70 && op <= 0x77 && op != 0x76: // LD (HL),r
		return true
	case op >= 0x40 && op <= 0x7f && op&0x07 == 6 && op != 0x76: // LD r,(HL)
		return true
	case op >= 0x80 && op <= 0xbf && op&0x07 == 6: // ALU (HL)
		return true
	}
	return false
}

// Decode decodes the instruction whose first byte sits at pc. The code
// slice is a window of memory beginning at pc; it should hold at least
// MaxInstructionLen bytes unless pc is near the end of readable memory.
// Byte sequences that do not form a recognized instruction decode as
// ClassOther with a one-byte length; decoding never fails.
func Decode(code []byte, pc uint16) Instruction {
	if len(code) == 0 {
		return Instruction{Class: ClassOther, Size: 1}
	}
	switch code[0] {
	case 0xcb:
		return other(code, 2)
	case 0xed:
		return decodeED(code)
	case 0xdd:
		return decodeIndexed(code, pc, RegIX)
	case 0xfd:
		return decodeIndexed(code, pc, RegIY)
	}
	return decodeBase(code, pc, 0)
}

// MaxInstructionLen is the longest possible Z80 instruction encoding.
const MaxInstructionLen = 4

// other builds an untargeted instruction of the given length, clamped to
// the available window.
func other(code []byte, size int) Instruction {
	if size > len(code) {
		size = len(code)
	}
	return Instruction{Opcode: code[:size:size], Class: ClassOther, Size: size}
}

// decodeBase decodes an unprefixed opcode. The prefix argument is the
// count of prefix bytes already consumed (0, or 1 under DD/FD when the
// opcode is unaffected by the prefix); pc addresses the first byte of the
// whole instruction, prefix included.
func decodeBase(code []byte, pc uint16, prefix int) Instruction {
	op := code[prefix]
	size := prefix + int(baseLen[op])
	if size > len(code) {
		return other(code, 1)
	}

	in := Instruction{Opcode: code[:size:size], Size: size}
	operand := code[prefix+1 : size]

	switch {
	case op == 0xc9: // RET
		in.Class = ClassRet
	case op&0xc7 == 0xc0: // RET cc
		in.Class = ClassRetCond
	case op == 0xcd: // CALL nn
		in.Class = ClassCall
		in.Target = word(operand)
	case op&0xc7 == 0xc4: // CALL cc,nn
		in.Class = ClassCallCond
		in.Target = word(operand)
	case op&0xc7 == 0xc7: // RST n
		in.Class = ClassRst
		in.Target = uint16(op & 0x38)
	case op == 0xc3: // JP nn
		in.Class = ClassJpAbs
		in.Target = word(operand)
	case op&0xc7 == 0xc2: // JP cc,nn
		in.Class = ClassJpCond
		in.Target = word(operand)
	case op == 0x18: // JR e
		in.Class = ClassJrRel
		in.Target = relTarget(pc, size, operand[0])
	case op == 0x20 || op == 0x28 || op == 0x30 || op == 0x38: // JR cc,e
		in.Class = ClassJrCond
		in.Target = relTarget(pc, size, operand[0])
	case op == 0x10: // DJNZ e
		in.Class = ClassDjnz
		in.Target = relTarget(pc, size, operand[0])
	case op == 0xe9: // JP (HL)
		in.Class = ClassJpIndirect
		in.Reg = RegHL
	case op == 0x76: // HALT
		in.Class = ClassHalt
	default:
		in.Class = ClassOther
	}
	return in
}

// decodeED decodes an ED-prefixed opcode.
func decodeED(code []byte) Instruction {
	if len(code) < 2 {
		return other(code, 1)
	}
	op := code[1]

	size := 2
	switch op {
	case 0x43, 0x4b, 0x53, 0x5b, 0x63, 0x6b, 0x73, 0x7b: // LD (nn),rr / LD rr,(nn)
		size = 4
	}

	in := other(code, size)
	switch op {
	case 0x45, 0x4d, 0x55, 0x5d, 0x65, 0x6d, 0x75, 0x7d: // RETN/RETI
		in.Class = ClassRet
	case 0xb0, 0xb1, 0xb2, 0xb3, 0xb8, 0xb9, 0xba, 0xbb: // LDIR..OTDR
		in.Class = ClassBlockRepeat
	}
	return in
}

// decodeIndexed decodes a DD- or FD-prefixed opcode.
func decodeIndexed(code []byte, pc uint16, reg IndexReg) Instruction {
	if len(code) < 2 {
		return other(code, 1)
	}
	op := code[1]

	switch op {
	case 0xcb: // DDCB d op: bit/rotate on (IX+d); never control flow
		return other(code, 4)
	case 0xdd, 0xfd, 0xed:
		// Stacked prefix. The leading prefix byte has no effect; consume
		// it alone so the following instruction decodes on its own.
		return other(code, 1)
	case 0xe9: // JP (IX) / JP (IY)
		in := other(code, 2)
		in.Class = ClassJpIndirect
		in.Reg = reg
		return in
	case 0x26, 0x2e: // LD IXH/IXL,n
		return other(code, 3)
	}

	if isFlow(op) {
		// A flow opcode after DD/FD executes normally; keep its class but
		// account for the prefix byte in the encoded length.
		return decodeBase(code, pc, 1)
	}

	size := 1 + int(baseLen[op])
	if indexDisp(op) {
		size++
	}
	return other(code, size)
}

// isFlow reports whether an unprefixed opcode affects control flow.
func isFlow(op byte) bool {
	switch {
	case op == 0xc9 || op == 0xcd || op == 0xc3 || op == 0x18 || op == 0x10 || op == 0x76:
		return true
	case op&0xc7 == 0xc0 || op&0xc7 == 0xc4 || op&0xc7 == 0xc7 || op&0xc7 == 0xc2:
		return true
	case op == 0x20 || op == 0x28 || op == 0x30 || op == 0x38:
		return true
	}
	return false
}

func word(b []byte) uint16 {
	return uint16(b[0]) | uint16(b[1])<<8
}

func relTarget(pc uint16, size int, disp byte) uint16 {
	return uint16(int(pc) + size + int(int8(disp)))
}
