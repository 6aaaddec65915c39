package directive

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/beevik/z80dbg/bank"
)

func entry(addr uint16, text string) SourceEntry {
	return SourceEntry{Address: bank.Unbanked(addr), HasAddress: true, Text: text}
}

func noAddr(text string) SourceEntry {
	return SourceEntry{Text: text}
}

func parseLines(entries ...SourceEntry) *Set {
	return NewParser(nil, nil).Parse(entries)
}

func TestWatchpointFull(t *testing.T) {
	set := parseLines(entry(0x8000, "WPMEM 0x6000, 5, w, A==0"))

	want := []Watchpoint{{
		Address:   bank.Unbanked(0x6000),
		Size:      5,
		Access:    AccessWrite,
		Condition: "A==0",
	}}
	if diff := cmp.Diff(want, set.Watchpoints); diff != "" {
		t.Errorf("watchpoints mismatch (-want +got):\n%s", diff)
	}
	if len(set.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", set.Warnings)
	}
}

func TestWatchpointDefaults(t *testing.T) {
	set := parseLines(entry(0x8123, "WPMEM"))

	want := []Watchpoint{{
		Address: bank.Unbanked(0x8123),
		Size:    1,
		Access:  AccessReadWrite,
	}}
	if diff := cmp.Diff(want, set.Watchpoints); diff != "" {
		t.Errorf("watchpoints mismatch (-want +got):\n%s", diff)
	}
}

func TestWatchpointPartialFields(t *testing.T) {
	set := parseLines(
		entry(0x8000, "WPMEM $6000"),
		entry(0x8001, "WPMEM , 4"),
		entry(0x8002, "WPMEM 6000h, 2, r"),
	)

	want := []Watchpoint{
		{Address: bank.Unbanked(0x6000), Size: 1, Access: AccessReadWrite},
		{Address: bank.Unbanked(0x8001), Size: 4, Access: AccessReadWrite},
		{Address: bank.Unbanked(0x6000), Size: 2, Access: AccessRead},
	}
	if diff := cmp.Diff(want, set.Watchpoints); diff != "" {
		t.Errorf("watchpoints mismatch (-want +got):\n%s", diff)
	}
}

func TestWatchpointKeepsLineBank(t *testing.T) {
	set := parseLines(SourceEntry{
		Address:    bank.MakeLong(0x8000, 5),
		HasAddress: true,
		Text:       "WPMEM $6000",
	})

	if len(set.Watchpoints) != 1 {
		t.Fatalf("expected 1 watchpoint, got %d", len(set.Watchpoints))
	}
	wp := set.Watchpoints[0]
	if wp.Address.Addr() != 0x6000 || wp.Address.Bank() != 5 {
		t.Errorf("address incorrect. exp: $6000 in bank 5, got: $%04X in bank %d",
			wp.Address.Addr(), wp.Address.Bank())
	}
}

func TestWatchpointWithoutAddressDropped(t *testing.T) {
	set := parseLines(noAddr("WPMEM"))
	if len(set.Watchpoints) != 0 {
		t.Errorf("expected no watchpoints, got %d", len(set.Watchpoints))
	}
	if len(set.Warnings) != 0 {
		t.Errorf("missing address must not warn, got: %v", set.Warnings)
	}
}

func TestWatchpointBadFieldsWarn(t *testing.T) {
	set := parseLines(
		entry(0x8000, "WPMEM bogus"),
		entry(0x8001, "WPMEM , 0"),
		entry(0x8002, "WPMEM , 1, x"),
	)
	if len(set.Watchpoints) != 0 {
		t.Errorf("expected no watchpoints, got %+v", set.Watchpoints)
	}
	if len(set.Warnings) != 3 {
		t.Errorf("expected 3 warnings, got: %v", set.Warnings)
	}
}

func TestKeywordBoundary(t *testing.T) {
	set := parseLines(
		entry(0x8000, "WPMEMx"),
		entry(0x8001, "LOGPOINTx hello"),
		entry(0x8002, "wpmem"),
		entry(0x8003, "  WPMEM  "),
	)
	if len(set.Watchpoints) != 1 {
		t.Errorf("expected exactly 1 watchpoint, got %d", len(set.Watchpoints))
	}
	if len(set.LogPoints) != 0 {
		t.Errorf("expected no log points, got %v", set.LogPoints)
	}
}

func TestAssertionNegatesCondition(t *testing.T) {
	set := parseLines(entry(0x8000, "ASSERTION BC != 0"))

	want := []Assertion{{Address: bank.Unbanked(0x8000), Condition: "!(BC != 0)"}}
	if diff := cmp.Diff(want, set.Assertions); diff != "" {
		t.Errorf("assertions mismatch (-want +got):\n%s", diff)
	}
}

func TestAssertionDefaultAlwaysTriggers(t *testing.T) {
	set := parseLines(entry(0x8000, "ASSERTION"))

	want := []Assertion{{Address: bank.Unbanked(0x8000), Condition: "!(false)"}}
	if diff := cmp.Diff(want, set.Assertions); diff != "" {
		t.Errorf("assertions mismatch (-want +got):\n%s", diff)
	}
}

func TestLogPointGroups(t *testing.T) {
	set := parseLines(
		entry(0x8000, "LOGPOINT [G1] first"),
		entry(0x8001, "LOGPOINT plain"),
		entry(0x8002, "LOGPOINT [G1] second"),
	)

	g1 := set.LogPoints["G1"]
	if len(g1) != 2 || g1[0].Text != "[G1] first" || g1[1].Text != "[G1] second" {
		t.Errorf("group G1 incorrect: %+v", g1)
	}

	def := set.LogPoints[DefaultGroup]
	if len(def) != 1 || def[0].Text != "[DEFAULT] plain" {
		t.Errorf("default group incorrect: %+v", def)
	}

	names := set.GroupNames()
	if len(names) != 2 {
		t.Errorf("group names incorrect: %v", names)
	}
}

func TestLogPointPlaceholders(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"LOGPOINT a=${A}", "[DEFAULT] a=${u:reg(A)}"},
		{"LOGPOINT hl=${hex:HL}", "[DEFAULT] hl=${hex:reg(HL)}"},
		{"LOGPOINT v=${b@:(BC+1)}", "[DEFAULT] v=${b@:eval((BC+1))}"},
		{"LOGPOINT n=${counter}", "[DEFAULT] n=${u:eval(counter)}"},
		{"LOGPOINT ${A} and ${B}", "[DEFAULT] ${u:reg(A)} and ${u:reg(B)}"},
		{"LOGPOINT no placeholders", "[DEFAULT] no placeholders"},
	}
	for _, c := range cases {
		set := parseLines(entry(0x8000, c.text))
		lps := set.LogPoints[DefaultGroup]
		if len(lps) != 1 {
			t.Fatalf("%q: expected 1 log point, got %d", c.text, len(lps))
		}
		if lps[0].Text != c.want {
			t.Errorf("%q: prepared text incorrect.\nexp: %q\ngot: %q", c.text, c.want, lps[0].Text)
		}
	}
}

func TestLogPointMalformedPlaceholder(t *testing.T) {
	set := parseLines(entry(0x8000, "LOGPOINT broken ${A"))

	lps := set.LogPoints[DefaultGroup]
	if len(lps) != 1 || lps[0].Text != "[DEFAULT] broken ${A" {
		t.Errorf("malformed placeholder should stay literal, got: %+v", lps)
	}
	if len(set.Warnings) != 1 || !strings.Contains(set.Warnings[0], "placeholder") {
		t.Errorf("expected one placeholder warning, got: %v", set.Warnings)
	}
}

func TestGroupNamesRoundTrip(t *testing.T) {
	set := parseLines(
		entry(0x8000, "LOGPOINT [IO] port write"),
		entry(0x8001, "LOGPOINT [SOUND] beep"),
		entry(0x8002, "LOGPOINT ungrouped"),
		entry(0x8003, "LOGPOINT [IO] port read"),
	)

	got := set.GroupNames()
	want := map[string]bool{"IO": true, "SOUND": true, DefaultGroup: true}
	if len(got) != len(want) {
		t.Fatalf("group names incorrect: %v", got)
	}
	for _, name := range got {
		if !want[name] {
			t.Errorf("unexpected group %q", name)
		}
	}
}

func TestLogPointCustomRegisterResolver(t *testing.T) {
	reg := func(name string) bool { return name == "counter" }
	set := NewParser(nil, reg).Parse([]SourceEntry{
		entry(0x8000, "LOGPOINT n=${counter} a=${A}"),
	})

	lps := set.LogPoints[DefaultGroup]
	if len(lps) != 1 {
		t.Fatalf("expected 1 log point, got %d", len(lps))
	}
	want := "[DEFAULT] n=${u:reg(COUNTER)} a=${u:eval(A)}"
	if lps[0].Text != want {
		t.Errorf("prepared text incorrect.\nexp: %q\ngot: %q", want, lps[0].Text)
	}
}

func TestWarningsReportSourceLine(t *testing.T) {
	set := NewParser(nil, nil).Parse([]SourceEntry{{
		Address:    bank.Unbanked(0x8000),
		HasAddress: true,
		Line:       17,
		Text:       "WPMEM bogus",
	}})
	if len(set.Warnings) != 1 || !strings.Contains(set.Warnings[0], "line 17") {
		t.Errorf("warning must carry the source line number, got: %v", set.Warnings)
	}
}

func TestParserCustomEvaluator(t *testing.T) {
	eval := func(expr string) (int64, error) {
		if expr == "buffer_start" {
			return 0x7000, nil
		}
		return EvalLiteral(expr)
	}
	set := NewParser(eval, nil).Parse([]SourceEntry{
		entry(0x8000, "WPMEM buffer_start, 16"),
	})

	want := []Watchpoint{{
		Address: bank.Unbanked(0x7000),
		Size:    16,
		Access:  AccessReadWrite,
	}}
	if diff := cmp.Diff(want, set.Watchpoints); diff != "" {
		t.Errorf("watchpoints mismatch (-want +got):\n%s", diff)
	}
}
