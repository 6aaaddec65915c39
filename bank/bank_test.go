package bank

import "testing"

func TestSlotOf(t *testing.T) {
	cases := []struct {
		addr uint16
		slot int
	}{
		{0x0000, 0},
		{0x1fff, 0},
		{0x2000, 1},
		{0x7fff, 3},
		{0x8000, 4},
		{0xffff, 7},
	}
	for _, c := range cases {
		if got := SlotOf(c.addr); got != c.slot {
			t.Errorf("SlotOf($%04X) incorrect. exp: %d, got: %d", c.addr, c.slot, got)
		}
	}
}

func TestLongAddressRoundTrip(t *testing.T) {
	slots := []byte{0, 1, 2, 3, 4, 5, 6, 7}
	la := ToLong(0x8123, slots)
	if la.Addr() != 0x8123 {
		t.Errorf("Addr incorrect. exp: $8123, got: $%04X", la.Addr())
	}
	if la.Bank() != 4 {
		t.Errorf("Bank incorrect. exp: 4, got: %d", la.Bank())
	}
}

func TestUnbanked(t *testing.T) {
	la := Unbanked(0x6000)
	if la != LongAddress(0x6000) {
		t.Errorf("Unbanked long address incorrect. exp: $6000, got: $%X", uint32(la))
	}
	if la.Bank() != -1 {
		t.Errorf("Bank of unbanked address incorrect. exp: -1, got: %d", la.Bank())
	}
}

func TestToLongWithoutSlots(t *testing.T) {
	la := ToLong(0x4000, nil)
	if la != Unbanked(0x4000) {
		t.Errorf("ToLong with no slots incorrect. exp: $4000, got: $%X", uint32(la))
	}
}

func TestDistinctBanksDisambiguate(t *testing.T) {
	a := ToLong(0xc000, []byte{0, 0, 0, 0, 0, 0, 10, 10})
	b := ToLong(0xc000, []byte{0, 0, 0, 0, 0, 0, 11, 11})
	if a == b {
		t.Errorf("same CPU address in different banks must map to different long addresses")
	}
}
