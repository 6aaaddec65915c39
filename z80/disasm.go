// Copyright 2026 Brett Vickers.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package z80

import "fmt"

// Disassembly tables.
var (
	reg8Names  = []string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}
	reg16Names = []string{"BC", "DE", "HL", "SP"}
	pushNames  = []string{"BC", "DE", "HL", "AF"}
	condNames  = []string{"NZ", "Z", "NC", "C", "PO", "PE", "P", "M"}
	aluNames   = []string{"ADD A,", "ADC A,", "SUB ", "SBC A,", "AND ", "XOR ", "OR ", "CP "}
	rotNames   = []string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SLL", "SRL"}

	miscNames = map[byte]string{
		0x00: "NOP", 0x07: "RLCA", 0x0f: "RRCA", 0x17: "RLA", 0x1f: "RRA",
		0x27: "DAA", 0x2f: "CPL", 0x37: "SCF", 0x3f: "CCF",
		0x08: "EX AF,AF'", 0xd9: "EXX", 0xeb: "EX DE,HL", 0xe3: "EX (SP),HL",
		0xf3: "DI", 0xfb: "EI", 0xf9: "LD SP,HL",
		0x02: "LD (BC),A", 0x0a: "LD A,(BC)", 0x12: "LD (DE),A", 0x1a: "LD A,(DE)",
	}

	edNames = map[byte]string{
		0x44: "NEG", 0x45: "RETN", 0x4d: "RETI",
		0x46: "IM 0", 0x56: "IM 1", 0x5e: "IM 2",
		0x47: "LD I,A", 0x4f: "LD R,A", 0x57: "LD A,I", 0x5f: "LD A,R",
		0x67: "RRD", 0x6f: "RLD",
		0xa0: "LDI", 0xa8: "LDD", 0xb0: "LDIR", 0xb8: "LDDR",
		0xa1: "CPI", 0xa9: "CPD", 0xb1: "CPIR", 0xb9: "CPDR",
		0xa2: "INI", 0xaa: "IND", 0xb2: "INIR", 0xba: "INDR",
		0xa3: "OUTI", 0xab: "OUTD", 0xb3: "OTIR", 0xbb: "OTDR",
	}
)

// Disassemble renders the instruction at pc as one line of assembly text
// and returns the address of the following instruction. Unrecognized byte
// sequences render as data bytes.
func Disassemble(code []byte, pc uint16) (line string, next uint16) {
	in := Decode(code, pc)
	next = pc + uint16(in.Size)
	if len(code) == 0 {
		return "DB ?", next
	}
	if len(code) < in.Size || in.Size == 1 && prefixByte(code[0]) {
		return fmt.Sprintf("DB $%02X", code[0]), pc + 1
	}

	switch code[0] {
	case 0xcb:
		return disasmCB(code[1]), next
	case 0xed:
		if s, ok := edNames[code[1]]; ok {
			return s, next
		}
		return disasmED(code), next
	case 0xdd:
		return disasmIndexed(code, pc, "IX"), next
	case 0xfd:
		return disasmIndexed(code, pc, "IY"), next
	}
	return disasmBase(in, code, 0, "HL", ""), next
}

// disasmBase renders an unprefixed opcode. Under an index prefix, hl
// substitutes the index register name and disp carries the formatted
// displacement for (HL) operands.
func disasmBase(in Instruction, code []byte, prefix int, hl, disp string) string {
	op := code[prefix]
	r8 := func(i byte) string {
		if i == 6 {
			return "(" + hl + disp + ")"
		}
		return reg8Names[i]
	}
	r16 := func(i byte) string {
		if reg16Names[i] == "HL" {
			return hl
		}
		return reg16Names[i]
	}

	if s, ok := miscNames[op]; ok {
		if hl == "HL" {
			return s
		}
		switch op {
		case 0xf9:
			return "LD SP," + hl
		case 0xe3:
			return "EX (SP)," + hl
		}
		return s
	}

	switch in.Class {
	case ClassRet:
		return "RET"
	case ClassRetCond:
		return "RET " + condNames[(op>>3)&7]
	case ClassCall:
		return fmt.Sprintf("CALL $%04X", in.Target)
	case ClassCallCond:
		return fmt.Sprintf("CALL %s,$%04X", condNames[(op>>3)&7], in.Target)
	case ClassRst:
		return fmt.Sprintf("RST $%02X", in.Target)
	case ClassJpAbs:
		return fmt.Sprintf("JP $%04X", in.Target)
	case ClassJpCond:
		return fmt.Sprintf("JP %s,$%04X", condNames[(op>>3)&7], in.Target)
	case ClassJrRel:
		return fmt.Sprintf("JR $%04X", in.Target)
	case ClassJrCond:
		return fmt.Sprintf("JR %s,$%04X", condNames[(op>>3)&3], in.Target)
	case ClassDjnz:
		return fmt.Sprintf("DJNZ $%04X", in.Target)
	case ClassJpIndirect:
		return "JP (" + in.Reg.String() + ")"
	case ClassHalt:
		return "HALT"
	}

	operand := code[prefix+1 : in.Size]
	switch {
	case op&0xcf == 0x01: // LD rr,nn
		return fmt.Sprintf("LD %s,$%04X", r16(op>>4&3), word(operand))
	case op&0xcf == 0x03: // INC rr
		return "INC " + r16(op>>4&3)
	case op&0xcf == 0x0b: // DEC rr
		return "DEC " + r16(op>>4&3)
	case op&0xcf == 0x09: // ADD HL,rr
		return "ADD " + hl + "," + r16(op>>4&3)
	case op&0xcf == 0xc5: // PUSH rr
		return "PUSH " + pushIndexed(op>>4&3, hl)
	case op&0xcf == 0xc1: // POP rr
		return "POP " + pushIndexed(op>>4&3, hl)
	case op == 0x22:
		return fmt.Sprintf("LD ($%04X),%s", word(operand), hl)
	case op == 0x2a:
		return fmt.Sprintf("LD %s,($%04X)", hl, word(operand))
	case op == 0x32:
		return fmt.Sprintf("LD ($%04X),A", word(operand))
	case op == 0x3a:
		return fmt.Sprintf("LD A,($%04X)", word(operand))
	case op&0xc7 == 0x04: // INC r
		return "INC " + r8(op>>3&7)
	case op&0xc7 == 0x05: // DEC r
		return "DEC " + r8(op>>3&7)
	case op&0xc7 == 0x06: // LD r,n
		return fmt.Sprintf("LD %s,$%02X", r8(op>>3&7), operand[len(operand)-1])
	case op >= 0x40 && op <= 0x7f: // LD r,r'
		return "LD " + r8(op>>3&7) + "," + r8(op&7)
	case op >= 0x80 && op <= 0xbf: // ALU r
		return aluNames[op>>3&7] + r8(op&7)
	case op&0xc7 == 0xc6: // ALU n
		return fmt.Sprintf("%s$%02X", aluNames[op>>3&7], operand[0])
	case op == 0xd3:
		return fmt.Sprintf("OUT ($%02X),A", operand[0])
	case op == 0xdb:
		return fmt.Sprintf("IN A,($%02X)", operand[0])
	}
	return fmt.Sprintf("DB $%02X", op)
}

func pushIndexed(i byte, hl string) string {
	if pushNames[i] == "HL" {
		return hl
	}
	return pushNames[i]
}

func disasmCB(op byte) string {
	r := reg8Names[op&7]
	switch {
	case op < 0x40:
		return rotNames[op>>3] + " " + r
	case op < 0x80:
		return fmt.Sprintf("BIT %d,%s", op>>3&7, r)
	case op < 0xc0:
		return fmt.Sprintf("RES %d,%s", op>>3&7, r)
	default:
		return fmt.Sprintf("SET %d,%s", op>>3&7, r)
	}
}

func disasmED(code []byte) string {
	op := code[1]
	switch {
	case op&0xcf == 0x43:
		return fmt.Sprintf("LD ($%04X),%s", word(code[2:]), reg16Names[op>>4&3])
	case op&0xcf == 0x4b:
		return fmt.Sprintf("LD %s,($%04X)", reg16Names[op>>4&3], word(code[2:]))
	case op&0xcf == 0x42:
		return "SBC HL," + reg16Names[op>>4&3]
	case op&0xcf == 0x4a:
		return "ADC HL," + reg16Names[op>>4&3]
	case op&0xc7 == 0x40:
		return "IN " + reg8Names[op>>3&7] + ",(C)"
	case op&0xc7 == 0x41:
		return "OUT (C)," + reg8Names[op>>3&7]
	case op == 0x55 || op == 0x65 || op == 0x75:
		return "RETN"
	case op == 0x5d || op == 0x6d || op == 0x7d:
		return "RETI"
	}
	return fmt.Sprintf("DB $ED,$%02X", op)
}

func disasmIndexed(code []byte, pc uint16, ix string) string {
	in := Decode(code, pc)
	op := code[1]
	switch {
	case op == 0xcb:
		return disasmIndexedCB(code, ix)
	case op == 0xdd || op == 0xfd || op == 0xed:
		return "DB $" + fmt.Sprintf("%02X", code[0])
	case op == 0xe9:
		return "JP (" + ix + ")"
	case op == 0x36: // LD (IX+d),n
		return fmt.Sprintf("LD (%s%s),$%02X", ix, dispString(code[2]), code[3])
	case indexDisp(op):
		return disasmBase(in, code, 1, ix, dispString(code[2]))
	}
	return disasmBase(in, code, 1, ix, "")
}

func disasmIndexedCB(code []byte, ix string) string {
	// DD CB d op
	d, op := code[2], code[3]
	target := "(" + ix + dispString(d) + ")"
	switch {
	case op < 0x40:
		return rotNames[op>>3] + " " + target
	case op < 0x80:
		return fmt.Sprintf("BIT %d,%s", op>>3&7, target)
	case op < 0xc0:
		return fmt.Sprintf("RES %d,%s", op>>3&7, target)
	default:
		return fmt.Sprintf("SET %d,%s", op>>3&7, target)
	}
}

func prefixByte(op byte) bool {
	return op == 0xcb || op == 0xed || op == 0xdd || op == 0xfd
}

func dispString(d byte) string {
	if int8(d) < 0 {
		return fmt.Sprintf("-$%02X", -int(int8(d)))
	}
	return fmt.Sprintf("+$%02X", d)
}
