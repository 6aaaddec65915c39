package host

import "github.com/beevik/cmd"

var cmds *cmd.Tree

// helpEntry mirrors the registered commands for the help display.
type helpEntry struct {
	name  string
	brief string
}

var helpTable []helpEntry

func addCommand(tree *cmd.Tree, prefix string, d cmd.CommandDescriptor) {
	tree.AddCommand(d)
	if d.Brief != "" {
		helpTable = append(helpTable, helpEntry{prefix + d.Name, d.Brief})
	}
}

func init() {
	root := cmd.NewTree(cmd.TreeDescriptor{Name: "z80dbg"})
	root.AddCommand(cmd.CommandDescriptor{
		Name:        "help",
		Description: "Display help for a command.",
		Usage:       "help [<command>]",
		Data:        (*Host).cmdHelp,
	})

	// Breakpoint commands
	bp := root.AddSubtree(cmd.TreeDescriptor{Name: "breakpoint", Brief: "Breakpoint commands"})
	addCommand(bp, "breakpoint ", cmd.CommandDescriptor{
		Name:        "list",
		Brief:       "List breakpoints",
		Description: "List all current breakpoints.",
		Usage:       "breakpoint list",
		Data:        (*Host).cmdBreakpointList,
	})
	addCommand(bp, "breakpoint ", cmd.CommandDescriptor{
		Name:  "add",
		Brief: "Add a breakpoint",
		Description: "Add a breakpoint at the specified address." +
			" The breakpoint starts enabled.",
		Usage: "breakpoint add <address>",
		Data:  (*Host).cmdBreakpointAdd,
	})
	addCommand(bp, "breakpoint ", cmd.CommandDescriptor{
		Name:        "remove",
		Brief:       "Remove a breakpoint",
		Description: "Remove a breakpoint at the specified address.",
		Usage:       "breakpoint remove <address>",
		Data:        (*Host).cmdBreakpointRemove,
	})
	addCommand(bp, "breakpoint ", cmd.CommandDescriptor{
		Name:        "enable",
		Brief:       "Enable a breakpoint",
		Description: "Enable a previously added breakpoint.",
		Usage:       "breakpoint enable <address>",
		Data:        (*Host).cmdBreakpointEnable,
	})
	addCommand(bp, "breakpoint ", cmd.CommandDescriptor{
		Name:  "disable",
		Brief: "Disable a breakpoint",
		Description: "Disable a previously added breakpoint. A disabled" +
			" breakpoint remains in the list but does not stop the target.",
		Usage: "breakpoint disable <address>",
		Data:  (*Host).cmdBreakpointDisable,
	})

	// Directive commands
	di := root.AddSubtree(cmd.TreeDescriptor{Name: "directive", Brief: "Source directive commands"})
	addCommand(di, "directive ", cmd.CommandDescriptor{
		Name:  "watchpoints",
		Brief: "List WPMEM watchpoints",
		Description: "List the memory watchpoints collected from WPMEM" +
			" directives in the loaded listing.",
		Usage: "directive watchpoints",
		Data:  (*Host).cmdDirectiveWatchpoints,
	})
	addCommand(di, "directive ", cmd.CommandDescriptor{
		Name:  "assertions",
		Brief: "List ASSERTION conditions",
		Description: "List the assertion conditions collected from ASSERTION" +
			" directives in the loaded listing. Each condition is stored in" +
			" negated form, so a match means the assertion failed.",
		Usage: "directive assertions",
		Data:  (*Host).cmdDirectiveAssertions,
	})
	addCommand(di, "directive ", cmd.CommandDescriptor{
		Name:  "logpoints",
		Brief: "List LOGPOINT groups",
		Description: "List the log points collected from LOGPOINT directives" +
			" in the loaded listing. Specify a group name to list only that" +
			" group's log points.",
		Usage: "directive logpoints [<group>]",
		Data:  (*Host).cmdDirectiveLogpoints,
	})
	addCommand(di, "directive ", cmd.CommandDescriptor{
		Name:  "warnings",
		Brief: "List directive parse warnings",
		Description: "List the warnings produced while parsing the loaded" +
			" listing's directives.",
		Usage: "directive warnings",
		Data:  (*Host).cmdDirectiveWarnings,
	})

	addCommand(root, "", cmd.CommandDescriptor{
		Name:  "disassemble",
		Brief: "Disassemble code",
		Description: "Disassemble machine code starting at the requested" +
			" address. The number of instruction lines to disassemble may be" +
			" specified as an option. If no address is specified, the" +
			" disassembly continues from where the last disassembly left off.",
		Usage: "disassemble [<address>] [<lines>]",
		Data:  (*Host).cmdDisassemble,
	})
	addCommand(root, "", cmd.CommandDescriptor{
		Name:  "evaluate",
		Brief: "Evaluate an expression",
		Description: "Evaluate a mathematical expression. Identifiers resolve" +
			" to register values and listing labels.",
		Usage: "evaluate <expression>",
		Data:  (*Host).cmdEvaluate,
	})
	addCommand(root, "", cmd.CommandDescriptor{
		Name:  "execute",
		Brief: "Execute a debugger script file",
		Description: "Load a script file from disk and execute the commands" +
			" it contains.",
		Usage: "execute <filename>",
		Data:  (*Host).cmdExecute,
	})
	addCommand(root, "", cmd.CommandDescriptor{
		Name:  "labels",
		Brief: "List labels from the loaded listing",
		Description: "Display the labels defined by the loaded assembler" +
			" listing along with their addresses.",
		Usage: "labels",
		Data:  (*Host).cmdLabels,
	})
	addCommand(root, "", cmd.CommandDescriptor{
		Name:  "listing",
		Brief: "Load an assembler listing file",
		Description: "Load an assembler listing file. The listing's labels" +
			" become available to expressions, and WPMEM, ASSERTION and" +
			" LOGPOINT directives in its comments are collected.",
		Usage: "listing <filename>",
		Data:  (*Host).cmdListing,
	})
	addCommand(root, "", cmd.CommandDescriptor{
		Name:  "load",
		Brief: "Load a binary file",
		Description: "Load the contents of a raw binary file into the local" +
			" target's memory at the specified origin address.",
		Usage: "load <filename> [<address>]",
		Data:  (*Host).cmdLoad,
	})

	// Memory commands
	me := root.AddSubtree(cmd.TreeDescriptor{Name: "memory", Brief: "Memory commands"})
	addCommand(me, "memory ", cmd.CommandDescriptor{
		Name:  "dump",
		Brief: "Dump memory at address",
		Description: "Dump the contents of memory starting from the" +
			" specified address. The number of bytes to dump may be" +
			" specified as an option. If no address is specified, the" +
			" memory dump continues from where the last dump left off.",
		Usage: "memory dump [<address>] [<bytes>]",
		Data:  (*Host).cmdMemoryDump,
	})
	addCommand(me, "memory ", cmd.CommandDescriptor{
		Name:  "set",
		Brief: "Set memory at address",
		Description: "Set the contents of memory starting from the specified" +
			" address. The values to assign should be a series of" +
			" space-separated byte values. You may use an expression for each" +
			" byte value.",
		Usage: "memory set <address> <byte> [<byte> ...]",
		Data:  (*Host).cmdMemorySet,
	})

	addCommand(root, "", cmd.CommandDescriptor{
		Name:        "quit",
		Brief:       "Quit the program",
		Description: "Quit the program.",
		Usage:       "quit",
		Data:        (*Host).cmdQuit,
	})
	addCommand(root, "", cmd.CommandDescriptor{
		Name:  "register",
		Brief: "View or change register values",
		Description: "When used without arguments, this command displays the" +
			" current contents of the target's registers. When used with" +
			" arguments, it changes the value of a register. Allowed names" +
			" include the 8-bit registers, the 16-bit pairs, the shadow set" +
			" (e.g. AF'), IX, IY, SP and PC.",
		Usage: "register [<name> <value>]",
		Data:  (*Host).cmdRegister,
	})
	addCommand(root, "", cmd.CommandDescriptor{
		Name:  "set",
		Brief: "Set a configuration variable",
		Description: "Set the value of a configuration variable. To see the" +
			" current values of all configuration variables, type set" +
			" without any arguments.",
		Usage: "set [<var> <value>]",
		Data:  (*Host).cmdSet,
	})

	// Skip override commands
	sk := root.AddSubtree(cmd.TreeDescriptor{Name: "skip", Brief: "RST/CALL skip override commands"})
	addCommand(sk, "skip ", cmd.CommandDescriptor{
		Name:  "list",
		Brief: "List skip overrides",
		Description: "List the return-address skip overrides consulted when" +
			" stepping over RST and CALL instructions.",
		Usage: "skip list",
		Data:  (*Host).cmdSkipList,
	})
	addCommand(sk, "skip ", cmd.CommandDescriptor{
		Name:  "set",
		Brief: "Set a skip override",
		Description: "Set the number of inline bytes to skip when computing" +
			" the return address of a call whose return point is the given" +
			" address. Specify a bank number to restrict the override to one" +
			" memory bank.",
		Usage: "skip set <address> <count> [<bank>]",
		Data:  (*Host).cmdSkipSet,
	})
	addCommand(sk, "skip ", cmd.CommandDescriptor{
		Name:        "remove",
		Brief:       "Remove a skip override",
		Description: "Remove the skip override at the given address.",
		Usage:       "skip remove <address> [<bank>]",
		Data:        (*Host).cmdSkipRemove,
	})
	addCommand(sk, "skip ", cmd.CommandDescriptor{
		Name:        "clear",
		Brief:       "Remove all skip overrides",
		Description: "Remove every skip override.",
		Usage:       "skip clear",
		Data:        (*Host).cmdSkipClear,
	})

	addCommand(root, "", cmd.CommandDescriptor{
		Name:  "source",
		Brief: "Display listing source lines",
		Description: "Display source lines from the loaded assembler" +
			" listing, starting at the line assembled at the specified" +
			" address. The number of lines to display may be specified as an" +
			" option. If no address is specified, the display starts at the" +
			" current PC.",
		Usage: "source [<address>] [<lines>]",
		Data:  (*Host).cmdSource,
	})
	addCommand(root, "", cmd.CommandDescriptor{
		Name:  "step",
		Brief: "Step the target",
		Description: "Plan a single-instruction step and arm temporary" +
			" breakpoints at every address the step could land on. 'step in'" +
			" steps into subroutine calls and 'step over' steps over them;" +
			" a bare 'step' uses the StepOverDefault setting to pick the" +
			" mode.",
		Usage: "step [in|over]",
		Data:  (*Host).cmdStep,
	})

	// Add command shortcuts.
	root.AddShortcut("b", "breakpoint")
	root.AddShortcut("bp", "breakpoint")
	root.AddShortcut("ba", "breakpoint add")
	root.AddShortcut("br", "breakpoint remove")
	root.AddShortcut("bl", "breakpoint list")
	root.AddShortcut("be", "breakpoint enable")
	root.AddShortcut("bd", "breakpoint disable")
	root.AddShortcut("d", "disassemble")
	root.AddShortcut("e", "evaluate")
	root.AddShortcut("l", "source")
	root.AddShortcut("m", "memory dump")
	root.AddShortcut("ms", "memory set")
	root.AddShortcut("r", "register")
	root.AddShortcut("s", "step")
	root.AddShortcut("si", "step in")
	root.AddShortcut("so", "step over")
	root.AddShortcut("wp", "directive watchpoints")
	root.AddShortcut("lp", "directive logpoints")
	root.AddShortcut("?", "help")
	root.AddShortcut(".", "register")

	cmds = root
}
