package z80

import "testing"

func TestDisassemble(t *testing.T) {
	cases := []struct {
		code []byte
		pc   uint16
		text string
		next uint16
	}{
		{[]byte{0x00}, 0x8000, "NOP", 0x8001},
		{[]byte{0x3e, 0x12}, 0x8000, "LD A,$12", 0x8002},
		{[]byte{0x21, 0x34, 0x12}, 0x8000, "LD HL,$1234", 0x8003},
		{[]byte{0x78}, 0x8000, "LD A,B", 0x8001},
		{[]byte{0x86}, 0x8000, "ADD A,(HL)", 0x8001},
		{[]byte{0xc9}, 0x8000, "RET", 0x8001},
		{[]byte{0xd8}, 0x8000, "RET C", 0x8001},
		{[]byte{0xcd, 0x00, 0x60}, 0x8000, "CALL $6000", 0x8003},
		{[]byte{0xdc, 0x00, 0x60}, 0x8000, "CALL C,$6000", 0x8003},
		{[]byte{0xcf}, 0x8000, "RST $08", 0x8001},
		{[]byte{0xc3, 0x00, 0x40}, 0x8000, "JP $4000", 0x8003},
		{[]byte{0x18, 0x05}, 0x8000, "JR $8007", 0x8002},
		{[]byte{0x38, 0x05}, 0x8000, "JR C,$8007", 0x8002},
		{[]byte{0x10, 0xfe}, 0x8000, "DJNZ $8000", 0x8002},
		{[]byte{0xe9}, 0x8000, "JP (HL)", 0x8001},
		{[]byte{0x76}, 0x8000, "HALT", 0x8001},
		{[]byte{0xc5}, 0x8000, "PUSH BC", 0x8001},
		{[]byte{0xf1}, 0x8000, "POP AF", 0x8001},
		{[]byte{0xcb, 0x47}, 0x8000, "BIT 0,A", 0x8002},
		{[]byte{0xed, 0xb0}, 0x8000, "LDIR", 0x8002},
		{[]byte{0xed, 0x44}, 0x8000, "NEG", 0x8002},
		{[]byte{0xdd, 0xe9}, 0x8000, "JP (IX)", 0x8002},
		{[]byte{0xdd, 0x7e, 0x05}, 0x8000, "LD A,(IX+$05)", 0x8003},
		{[]byte{0xfd, 0x7e, 0xfb}, 0x8000, "LD A,(IY-$05)", 0x8003},
		{[]byte{0xdd, 0x21, 0x34, 0x12}, 0x8000, "LD IX,$1234", 0x8004},
		{[]byte{0xdd, 0xcb, 0x05, 0x46}, 0x8000, "BIT 0,(IX+$05)", 0x8004},
		{[]byte{0x32, 0x34, 0x12}, 0x8000, "LD ($1234),A", 0x8003},
		{[]byte{0xd3, 0xfe}, 0x8000, "OUT ($FE),A", 0x8002},
	}
	for _, c := range cases {
		text, next := Disassemble(c.code, c.pc)
		if text != c.text {
			t.Errorf("disassembly incorrect for % X. exp: %q, got: %q", c.code, c.text, text)
		}
		if next != c.next {
			t.Errorf("next incorrect for % X. exp: $%04X, got: $%04X", c.code, c.next, next)
		}
	}
}
