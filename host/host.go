// Copyright 2026 Brett Vickers.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host implements the interactive front end of the Z80 debugger.
// A host wraps a debug target with a command interpreter through which
// the user can load binaries and assembler listings, inspect and change
// memory and registers, disassemble code, manage breakpoints and skip
// overrides, plan instruction steps, and browse the watchpoints,
// assertions and log points collected from listing directives.
package host

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/beevik/cmd"
	"github.com/beevik/z80dbg/bank"
	"github.com/beevik/z80dbg/directive"
	"github.com/beevik/z80dbg/step"
	"github.com/beevik/z80dbg/z80"
)

// A Host wraps a debug target with a command interpreter, an expression
// evaluator, a breakpoint table, a step planner, and the directive sets
// harvested from loaded assembler listings.
type Host struct {
	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool
	target      Target
	local       *RAMTarget // non-nil when the target is the built-in one
	debugger    *Debugger
	skip        *step.SkipTable
	planner     *step.Planner
	listing     *Listing
	directives  *directive.Set
	settings    *settings
	lastCmd     *cmd.Selection
}

// New creates a host attached to the built-in RAM target.
func New() *Host {
	local := NewRAMTarget()
	h := NewWithTarget(local)
	h.local = local
	return h
}

// NewWithTarget creates a host attached to the given debug target.
func NewWithTarget(t Target) *Host {
	h := &Host{
		target:   t,
		debugger: NewDebugger(),
		skip:     step.NewSkipTable(),
		settings: newSettings(),
	}
	h.planner = step.NewPlanner(t, h.skip)
	return h
}

// RunCommands accepts host commands from a reader and outputs the results
// to a writer. If the commands are interactive, a prompt is displayed
// while the host waits for the next command to be entered.
func (h *Host) RunCommands(r io.Reader, w io.Writer, interactive bool) {
	h.input = bufio.NewScanner(r)
	h.output = bufio.NewWriter(w)
	h.interactive = interactive

	if interactive {
		h.println()
		h.displayPC()
	}

	for {
		h.prompt()

		line, err := h.getLine()
		if err != nil {
			break
		}

		var c cmd.Selection
		if line != "" {
			c, err = cmds.Lookup(line)
			switch {
			case errors.Is(err, cmd.ErrNotFound):
				h.println("Command not found.")
				continue
			case errors.Is(err, cmd.ErrAmbiguous):
				h.println("Command is ambiguous.")
				continue
			case err != nil:
				h.printf("ERROR: %v.\n", err)
				continue
			}
		} else if h.lastCmd != nil {
			c = *h.lastCmd
		}

		if c.Command == nil {
			continue
		}
		h.lastCmd = &c

		handler := c.Command.Data.(func(*Host, cmd.Selection) error)
		err = handler(h, c)
		if err != nil {
			break
		}
	}

	h.flush()
}

func (h *Host) print(args ...any) {
	fmt.Fprint(h.output, args...)
}

func (h *Host) printf(format string, args ...any) {
	fmt.Fprintf(h.output, format, args...)
	h.flush()
}

func (h *Host) println(args ...any) {
	fmt.Fprintln(h.output, args...)
	h.flush()
}

func (h *Host) flush() {
	h.output.Flush()
}

func (h *Host) getLine() (string, error) {
	if h.input.Scan() {
		return h.input.Text(), nil
	}
	if h.input.Err() != nil {
		return "", h.input.Err()
	}
	return "", io.EOF
}

func (h *Host) prompt() {
	if h.interactive {
		h.printf("* ")
		h.flush()
	}
}

// registers fetches the current register snapshot from the target.
func (h *Host) registers() (z80.Registers, error) {
	regs, err := h.target.Registers()
	if err != nil {
		return z80.Registers{}, fmt.Errorf("read registers: %w", err)
	}
	return regs, nil
}

func (h *Host) displayPC() {
	regs, err := h.registers()
	if err != nil {
		h.printf("%v\n", err)
		return
	}
	d, _ := h.disassemble(regs.PC)
	h.printf("%s  %s\n", d, registerString(&regs))
}

func (h *Host) cmdHelp(c cmd.Selection) error {
	if len(c.Args) == 0 {
		h.println("Commands:")
		for _, e := range helpTable {
			h.printf("    %-24s %s\n", e.name, e.brief)
		}
		return nil
	}

	s, err := cmds.Lookup(strings.Join(c.Args, " "))
	if err != nil || s.Command == nil {
		h.println("Command not found.")
		return nil
	}
	if s.Command.Usage != "" {
		h.printf("Syntax: %s\n\n", s.Command.Usage)
	}
	switch {
	case s.Command.Description != "":
		h.printf("%s\n", s.Command.Description)
	case s.Command.Brief != "":
		h.printf("%s.\n", s.Command.Brief)
	}
	return nil
}

func (h *Host) displayUsage(c *cmd.Command) {
	if c.Usage != "" {
		h.printf("Syntax: %s\n", c.Usage)
	}
}

func (h *Host) cmdBreakpointList(c cmd.Selection) error {
	h.println("Addr  Enabled  Type")
	h.println("----- -------  ----------")
	for _, b := range h.debugger.GetBreakpoints() {
		kind := "persistent"
		if b.Temporary {
			kind = "temporary"
		}
		h.printf("$%04X %-7v  %s\n", b.Address, !b.Disabled, kind)
	}
	return nil
}

func (h *Host) cmdBreakpointAdd(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return nil
	}

	addr, err := h.parseAddr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	h.debugger.AddBreakpoint(addr)
	h.printf("Breakpoint added at $%04X.\n", addr)
	return nil
}

func (h *Host) cmdBreakpointRemove(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return nil
	}

	addr, err := h.parseAddr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	if h.debugger.RemoveBreakpoint(addr) == nil {
		h.printf("No breakpoint was set on $%04X.\n", addr)
		return nil
	}

	h.printf("Breakpoint at $%04X removed.\n", addr)
	return nil
}

func (h *Host) cmdBreakpointEnable(c cmd.Selection) error {
	return h.setBreakpointEnabled(c, true)
}

func (h *Host) cmdBreakpointDisable(c cmd.Selection) error {
	return h.setBreakpointEnabled(c, false)
}

func (h *Host) setBreakpointEnabled(c cmd.Selection, enable bool) error {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return nil
	}

	addr, err := h.parseAddr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	b := h.debugger.GetBreakpoint(addr)
	if b == nil {
		h.printf("No breakpoint was set on $%04X.\n", addr)
		return nil
	}

	b.Disabled = !enable
	state := "enabled"
	if !enable {
		state = "disabled"
	}
	h.printf("Breakpoint at $%04X %s.\n", addr, state)
	return nil
}

func (h *Host) cmdDirectiveWatchpoints(c cmd.Selection) error {
	if h.directives == nil || len(h.directives.Watchpoints) == 0 {
		h.println("No watchpoints.")
		return nil
	}
	h.println("Addr       Size  Access  Condition")
	h.println("---------  ----  ------  ---------")
	for _, wp := range h.directives.Watchpoints {
		h.printf("%-9s  %4d  %-6s  %s\n",
			longAddrString(wp.Address), wp.Size, wp.Access, wp.Condition)
	}
	return nil
}

func (h *Host) cmdDirectiveAssertions(c cmd.Selection) error {
	if h.directives == nil || len(h.directives.Assertions) == 0 {
		h.println("No assertions.")
		return nil
	}
	h.println("Addr       Condition")
	h.println("---------  ---------")
	for _, a := range h.directives.Assertions {
		h.printf("%-9s  %s\n", longAddrString(a.Address), a.Condition)
	}
	return nil
}

func (h *Host) cmdDirectiveLogpoints(c cmd.Selection) error {
	if h.directives == nil || len(h.directives.LogPoints) == 0 {
		h.println("No log points.")
		return nil
	}

	groups := h.directives.GroupNames()
	switch {
	case len(c.Args) > 0:
		groups = []string{c.Args[0]}
	case h.settings.LogGroup != "":
		groups = []string{h.settings.LogGroup}
	}
	for _, g := range groups {
		points, ok := h.directives.LogPoints[g]
		if !ok {
			h.printf("No log point group named '%s'.\n", g)
			continue
		}
		h.printf("Group %s (%d):\n", g, len(points))
		for _, lp := range points {
			h.printf("    %-9s  %s\n", longAddrString(lp.Address), lp.Text)
		}
	}
	return nil
}

func (h *Host) cmdDirectiveWarnings(c cmd.Selection) error {
	if h.directives == nil || len(h.directives.Warnings) == 0 {
		h.println("No warnings.")
		return nil
	}
	for _, w := range h.directives.Warnings {
		h.println(w)
	}
	return nil
}

func (h *Host) cmdDisassemble(c cmd.Selection) error {
	if len(c.Args) == 0 {
		c.Args = []string{"$"}
	}

	addr, err := h.resolveDumpAddr(c.Args[0], h.settings.NextDisasmAddr)
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	lines := h.settings.DisasmLines
	if len(c.Args) > 1 {
		l, err := h.parseExpr(c.Args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		lines = int(l)
	}

	for i := 0; i < lines; i++ {
		d, next := h.disassemble(addr)
		h.println(d)
		addr = next
	}

	h.settings.NextDisasmAddr = addr
	h.lastCmd.Args = []string{"$", fmt.Sprintf("%d", lines)}
	return nil
}

func (h *Host) cmdEvaluate(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return nil
	}

	expr := strings.Join(c.Args, " ")
	v, err := h.parseExpr(expr)
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	h.printf("$%04X (%d)\n", uint16(v), v)
	return nil
}

func (h *Host) cmdExecute(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return nil
	}

	file, err := os.Open(c.Args[0])
	if err != nil {
		h.printf("Failed to open '%s': %v\n", filepath.Base(c.Args[0]), err)
		return nil
	}
	defer file.Close()

	// Run the script through the host's own command loop, then restore
	// the interactive session state.
	input, output, interactive, last := h.input, h.output, h.interactive, h.lastCmd
	h.lastCmd = nil
	h.RunCommands(file, output, false)
	h.input, h.output, h.interactive, h.lastCmd = input, output, interactive, last
	return nil
}

func (h *Host) cmdLabels(c cmd.Selection) error {
	if h.listing == nil || len(h.listing.Labels) == 0 {
		h.println("No labels.")
		return nil
	}
	for _, name := range sortedKeys(h.listing.Labels) {
		h.printf("%-24s $%04X\n", name, h.listing.Labels[name])
	}
	return nil
}

func (h *Host) cmdListing(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return nil
	}

	filename := c.Args[0]
	listing, err := LoadListing(filename)
	if err != nil {
		h.printf("Failed to load '%s': %v\n", filepath.Base(filename), err)
		return nil
	}
	h.listing = listing

	parser := directive.NewParser(func(expr string) (int64, error) {
		return EvaluateWith(expr, h.resolveIdentifier, h.settings.HexMode)
	}, z80.IsRegisterName)
	h.directives = parser.Parse(listing.SourceEntries())

	h.printf("Loaded '%s': %d lines, %d labels.\n",
		filepath.Base(filename), len(listing.Lines), len(listing.Labels))
	h.printf("Collected %d watchpoints, %d assertions, %d log points.\n",
		len(h.directives.Watchpoints), len(h.directives.Assertions),
		countLogPoints(h.directives))
	for _, w := range h.directives.Warnings {
		h.println(w)
	}
	return nil
}

func (h *Host) cmdLoad(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return nil
	}
	if h.local == nil {
		h.println("Loading requires the built-in target.")
		return nil
	}

	filename := c.Args[0]
	var origin uint16
	if len(c.Args) >= 2 {
		a, err := h.parseAddr(c.Args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		origin = a
	}

	n, err := h.local.LoadFile(filename, origin)
	if err != nil {
		h.printf("Failed to load '%s': %v\n", filepath.Base(filename), err)
		return nil
	}

	h.printf("Loaded '%s' to $%04X..$%04X.\n",
		filepath.Base(filename), origin, int(origin)+n-1)
	return nil
}

func (h *Host) cmdMemoryDump(c cmd.Selection) error {
	if len(c.Args) == 0 {
		c.Args = []string{"$"}
	}

	addr, err := h.resolveDumpAddr(c.Args[0], h.settings.NextMemDumpAddr)
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	bytes := uint16(h.settings.MemDumpBytes)
	if len(c.Args) >= 2 {
		b, err := h.parseExpr(c.Args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		bytes = uint16(b)
	}

	h.dumpMemory(addr, bytes)

	h.settings.NextMemDumpAddr = addr + bytes
	h.lastCmd.Args = []string{"$", fmt.Sprintf("%d", bytes)}
	return nil
}

func (h *Host) cmdMemorySet(c cmd.Selection) error {
	if len(c.Args) < 2 {
		h.displayUsage(c.Command)
		return nil
	}

	addr, err := h.parseAddr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	data := make([]byte, len(c.Args)-1)
	for i, arg := range c.Args[1:] {
		v, err := h.parseExpr(arg)
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		data[i] = byte(v)
	}

	if err := h.target.WriteMemory(addr, data); err != nil {
		h.printf("%v\n", err)
		return nil
	}
	h.printf("Set %d bytes at $%04X.\n", len(data), addr)
	return nil
}

func (h *Host) cmdQuit(c cmd.Selection) error {
	return errors.New("exiting program")
}

func (h *Host) cmdRegister(c cmd.Selection) error {
	regs, err := h.registers()
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	if len(c.Args) == 0 {
		h.println(registerString(&regs))
		h.printf("A'=%02X F'=%02X BC'=%04X DE'=%04X HL'=%04X I=%02X R=%02X\n",
			regs.A2, regs.F2,
			uint16(regs.B2)<<8|uint16(regs.C2),
			uint16(regs.D2)<<8|uint16(regs.E2),
			uint16(regs.H2)<<8|uint16(regs.L2),
			regs.I, regs.R)
		h.displayPC()
		return nil
	}

	if len(c.Args) < 2 {
		h.displayUsage(c.Command)
		return nil
	}

	name := c.Args[0]
	v, err := h.parseExpr(c.Args[1])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	if !regs.Store(name, uint16(v)) {
		h.printf("Unknown register '%s'.\n", name)
		return nil
	}
	if err := h.target.SetRegisters(regs); err != nil {
		h.printf("%v\n", err)
		return nil
	}

	value, _ := regs.Lookup(name)
	h.printf("Register %s set to $%04X.\n", strings.ToUpper(name), value)
	return nil
}

func (h *Host) cmdSet(c cmd.Selection) error {
	switch len(c.Args) {
	case 0:
		h.println("Variables:")
		h.settings.Display(h.output)
		h.flush()

	case 1:
		h.displayUsage(c.Command)

	default:
		key, value := strings.ToLower(c.Args[0]), strings.Join(c.Args[1:], " ")

		var err error
		switch h.settings.Kind(key) {
		case reflect.Invalid:
			err = fmt.Errorf("setting '%s' not found", key)
		case reflect.String:
			err = h.settings.Set(key, value)
		case reflect.Bool:
			var v bool
			v, err = stringToBool(value)
			if err == nil {
				err = h.settings.Set(key, v)
			}
		default:
			var v int64
			v, err = h.parseExpr(value)
			if err == nil {
				err = h.settings.Set(key, v)
			}
		}

		if err == nil {
			h.println("Setting updated.")
		} else {
			h.printf("%v\n", err)
		}
	}

	return nil
}

func (h *Host) cmdSkipList(c cmd.Selection) error {
	overrides := h.skip.Overrides()
	if len(overrides) == 0 {
		h.println("No skip overrides.")
		return nil
	}
	h.println("Addr       Skip")
	h.println("---------  ----")
	for _, o := range overrides {
		h.printf("%-9s  %4d\n", longAddrString(o.Address), o.Count)
	}
	return nil
}

func (h *Host) cmdSkipSet(c cmd.Selection) error {
	if len(c.Args) < 2 {
		h.displayUsage(c.Command)
		return nil
	}

	addr, err := h.parseSkipAddr(c.Args[0], c.Args[2:])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}
	count, err := h.parseExpr(c.Args[1])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	h.skip.Set(addr, int(count))
	h.printf("Skip override at %s set to %d.\n", longAddrString(addr), count)
	return nil
}

func (h *Host) cmdSkipRemove(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return nil
	}

	addr, err := h.parseSkipAddr(c.Args[0], c.Args[1:])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	h.skip.Remove(addr)
	h.printf("Skip override at %s removed.\n", longAddrString(addr))
	return nil
}

func (h *Host) cmdSkipClear(c cmd.Selection) error {
	h.skip.Clear()
	h.println("Skip overrides cleared.")
	return nil
}

func (h *Host) cmdSource(c cmd.Selection) error {
	if h.listing == nil {
		h.println("No listing loaded.")
		return nil
	}

	arg := "."
	if len(c.Args) > 0 {
		arg = c.Args[0]
	}
	addr, err := h.parseAddr(arg)
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	lines := h.settings.SourceLines
	if len(c.Args) > 1 {
		n, err := h.parseExpr(c.Args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		lines = int(n)
	}

	start := h.listing.LineIndex(addr)
	if start < 0 {
		h.printf("No listing line at $%04X.\n", addr)
		return nil
	}
	for i := start; i < len(h.listing.Lines) && i < start+lines; i++ {
		line := h.listing.Lines[i]
		if line.HasAddress {
			h.printf("%04X   %s\n", line.Address, line.Text)
		} else {
			h.printf("       %s\n", line.Text)
		}
	}
	return nil
}

func (h *Host) cmdStep(c cmd.Selection) error {
	over := h.settings.StepOverDefault
	if len(c.Args) > 0 {
		switch strings.ToLower(c.Args[0]) {
		case "in":
			over = false
		case "over":
			over = true
		default:
			h.displayUsage(c.Command)
			return nil
		}
	}
	return h.step(over)
}

// step plans a single-instruction step and arms temporary breakpoints at
// the plan's landing addresses. When the target resumes, it stops at
// whichever armed address it reaches first.
func (h *Host) step(over bool) error {
	regs, err := h.registers()
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	plan, err := h.planner.Plan(&regs, over)
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	h.debugger.Disarm()
	armed := h.debugger.ArmPlan(plan)

	d, _ := h.disassemble(regs.PC)
	h.println(d)
	if plan.HasSecondary {
		h.printf("Armed breakpoints at $%04X and $%04X", plan.Primary, plan.Secondary)
	} else {
		h.printf("Armed breakpoint at $%04X", plan.Primary)
	}
	if len(armed) < len(plan.Addresses()) {
		h.print(" (some already set)")
	}
	h.println(".")

	h.settings.NextDisasmAddr = plan.Primary
	return nil
}

// resolveDumpAddr interprets the address argument of the disassemble and
// memory dump commands: "$" continues from the previous command, "."
// names the current PC, anything else is an expression.
func (h *Host) resolveDumpAddr(arg string, next uint16) (uint16, error) {
	switch arg {
	case "$":
		if next != 0 {
			return next, nil
		}
		fallthrough
	case ".":
		regs, err := h.registers()
		if err != nil {
			return 0, err
		}
		return regs.PC, nil
	default:
		return h.parseAddr(arg)
	}
}

// parseSkipAddr parses a skip override address plus an optional bank
// argument into a long address.
func (h *Host) parseSkipAddr(addrArg string, rest []string) (bank.LongAddress, error) {
	addr, err := h.parseAddr(addrArg)
	if err != nil {
		return 0, err
	}
	if len(rest) == 0 {
		return bank.Unbanked(addr), nil
	}
	b, err := h.parseExpr(rest[0])
	if err != nil {
		return 0, err
	}
	return bank.MakeLong(addr, int(b)), nil
}

func (h *Host) parseExpr(expr string) (int64, error) {
	return EvaluateWith(expr, h.resolveIdentifier, h.settings.HexMode)
}

func (h *Host) parseAddr(expr string) (uint16, error) {
	v, err := h.parseExpr(expr)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		v += 0x10000
	}
	return uint16(v), nil
}

// resolveIdentifier resolves an expression identifier against the
// register file, then the loaded listing's labels.
func (h *Host) resolveIdentifier(s string) (int64, error) {
	if s == "." {
		s = "PC"
	}
	if z80.IsRegisterName(s) {
		regs, err := h.registers()
		if err != nil {
			return 0, err
		}
		if v, ok := regs.Lookup(s); ok {
			return int64(v), nil
		}
	}

	if h.listing != nil {
		if addr, ok := h.listing.LookupLabel(s); ok {
			return int64(addr), nil
		}
	}

	return 0, fmt.Errorf("identifier '%s' not found", s)
}

// disassemble returns one line of disassembly at addr in the form
// "ADDR-   CODE BYTES  MNEMONIC" along with the next address.
func (h *Host) disassemble(addr uint16) (str string, next uint16) {
	var code [z80.MaxInstructionLen]byte
	if err := h.target.ReadMemory(addr, code[:]); err != nil {
		return fmt.Sprintf("%04X-   ?? %v", addr, err), addr + 1
	}

	line, next := z80.Disassemble(code[:], addr)
	n := int(next - addr)
	if n < 1 || n > len(code) {
		n = 1
	}
	return fmt.Sprintf("%04X-   %-11s  %-24s", addr, codeString(code[:n]), line), next
}

func (h *Host) dumpMemory(addr0, bytes uint16) {
	if bytes == 0 {
		return
	}

	addr1 := addr0 + bytes - 1
	if addr1 < addr0 {
		addr1 = 0xffff
	}

	buf := []byte("    -" + strings.Repeat(" ", 35))

	// Don't align display for short dumps.
	if addr1-addr0 < 8 {
		addrToBuf(addr0, buf[0:4])
		for a, c1, c2 := addr0, 6, 32; a <= addr1; a, c1, c2 = a+1, c1+3, c2+1 {
			m := h.loadByte(a)
			byteToBuf(m, buf[c1:c1+2])
			buf[c2] = toPrintableChar(m)
		}
		h.println(string(buf))
		return
	}

	// Align addr0 and addr1 to 8-byte boundaries.
	start := uint32(addr0) & 0xfff8
	stop := (uint32(addr1) + 8) & 0xffff8
	if stop > 0x10000 {
		stop = 0x10000
	}

	a := uint16(start)
	for r := start; r < stop; r += 8 {
		addrToBuf(a, buf[0:4])
		for c1, c2 := 6, 32; c1 < 29; c1, c2, a = c1+3, c2+1, a+1 {
			if a >= addr0 && a <= addr1 {
				m := h.loadByte(a)
				byteToBuf(m, buf[c1:c1+2])
				buf[c2] = toPrintableChar(m)
			} else {
				buf[c1] = ' '
				buf[c1+1] = ' '
				buf[c2] = ' '
			}
		}
		h.println(string(buf))
	}
}

func (h *Host) loadByte(addr uint16) byte {
	var b [1]byte
	if err := h.target.ReadMemory(addr, b[:]); err != nil {
		return 0
	}
	return b[0]
}

// registerString formats the primary register set on one line.
func registerString(r *z80.Registers) string {
	return fmt.Sprintf("A=%02X F=%s BC=%04X DE=%04X HL=%04X IX=%04X IY=%04X SP=%04X PC=%04X",
		r.A, flagString(r.F), r.BC(), r.DE(), r.HL(), r.IX, r.IY, r.SP, r.PC)
}

// flagString renders the F register as "SZ-H-PNC" with dots for clear
// flags.
func flagString(f byte) string {
	const names = "SZ.H.PNC"
	b := []byte(names)
	for i, mask := range []byte{z80.FlagS, z80.FlagZ, 0, z80.FlagH, 0, z80.FlagP, z80.FlagN, z80.FlagC} {
		if mask == 0 {
			continue
		}
		if f&mask == 0 {
			b[i] = '.'
		}
	}
	return string(b)
}

// longAddrString formats a long address as "$ADDR" or "$ADDR:bank".
func longAddrString(a bank.LongAddress) string {
	if b := a.Bank(); b >= 0 {
		return fmt.Sprintf("$%04X:%d", a.Addr(), b)
	}
	return fmt.Sprintf("$%04X", a.Addr())
}

func countLogPoints(set *directive.Set) int {
	n := 0
	for _, points := range set.LogPoints {
		n += len(points)
	}
	return n
}

func sortedKeys(m map[string]uint16) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
