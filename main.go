// Copyright 2026 Brett Vickers.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/beevik/term"
	"github.com/spf13/cobra"

	"github.com/beevik/z80dbg/directive"
	"github.com/beevik/z80dbg/host"
	"github.com/beevik/z80dbg/step"
	"github.com/beevik/z80dbg/z80"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "z80dbg [script]...",
		Short: "Z80 source-level debugger back end",
		Long: "z80dbg is a debugger for Z80 targets. It plans step-into and" +
			" step-over breakpoints, loads assembler listings, and collects" +
			" WPMEM, ASSERTION and LOGPOINT directives from listing comments." +
			" Script files given on the command line are executed before the" +
			" interactive shell starts.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(args)
		},
		SilenceUsage: true,
	}

	directivesCmd := &cobra.Command{
		Use:   "directives <listing>",
		Short: "Parse a listing's debugger directives and print them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDirectives(args[0])
		},
		SilenceUsage: true,
	}
	rootCmd.AddCommand(directivesCmd)

	var origin, pc uint32
	var over bool
	planCmd := &cobra.Command{
		Use:   "plan <binary>",
		Short: "Print the step-breakpoint plan for one instruction",
		Long: "Load a raw binary image and print the breakpoint addresses a" +
			" single step would arm at the given program counter.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(args[0], uint16(origin), uint16(pc), over)
		},
		SilenceUsage: true,
	}
	planCmd.Flags().Uint32Var(&origin, "origin", 0, "load address of the binary image")
	planCmd.Flags().Uint32Var(&pc, "pc", 0, "program counter to plan at (defaults to origin)")
	planCmd.Flags().BoolVar(&over, "over", false, "plan a step-over instead of a step-into")
	rootCmd.AddCommand(planCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

func runShell(scripts []string) error {
	h := host.New()

	// Run commands contained in command-line files.
	for _, filename := range scripts {
		file, err := os.Open(filename)
		if err != nil {
			return err
		}
		h.RunCommands(file, os.Stdout, false)
		file.Close()
	}

	// Break on Ctrl-C instead of exiting.
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		for range c {
		}
	}()

	// Run commands interactively, prompting only when stdin is a
	// terminal.
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	h.RunCommands(os.Stdin, os.Stdout, interactive)
	return nil
}

func runPlan(filename string, origin, pc uint16, over bool) error {
	target := host.NewRAMTarget()
	if _, err := target.LoadFile(filename, origin); err != nil {
		return err
	}
	if pc == 0 {
		pc = origin
	}

	regs, _ := target.Registers()
	regs.PC = pc

	planner := step.NewPlanner(target, step.NewSkipTable())
	plan, err := planner.Plan(&regs, over)
	if err != nil {
		return err
	}

	var code [z80.MaxInstructionLen]byte
	target.ReadMemory(pc, code[:])
	line, _ := z80.Disassemble(code[:], pc)

	mode := "step-into"
	if over {
		mode = "step-over"
	}
	fmt.Printf("%04X-   %-24s (%s)\n", pc, line, mode)
	fmt.Printf("primary:   $%04X\n", plan.Primary)
	if plan.HasSecondary {
		fmt.Printf("secondary: $%04X\n", plan.Secondary)
	}
	return nil
}

func runDirectives(filename string) error {
	listing, err := host.LoadListing(filename)
	if err != nil {
		return err
	}

	parser := directive.NewParser(nil, nil)
	set := parser.Parse(listing.SourceEntries())

	fmt.Printf("Watchpoints (%d):\n", len(set.Watchpoints))
	for _, wp := range set.Watchpoints {
		fmt.Printf("    $%04X size=%d access=%s", wp.Address.Addr(), wp.Size, wp.Access)
		if wp.Condition != "" {
			fmt.Printf(" condition=%s", wp.Condition)
		}
		fmt.Println()
	}

	fmt.Printf("Assertions (%d):\n", len(set.Assertions))
	for _, a := range set.Assertions {
		fmt.Printf("    $%04X %s\n", a.Address.Addr(), a.Condition)
	}

	for _, g := range set.GroupNames() {
		points := set.LogPoints[g]
		fmt.Printf("Log points [%s] (%d):\n", g, len(points))
		for _, lp := range points {
			fmt.Printf("    $%04X %s\n", lp.Address.Addr(), lp.Text)
		}
	}

	for _, w := range set.Warnings {
		fmt.Fprintln(os.Stderr, w)
	}
	return nil
}
