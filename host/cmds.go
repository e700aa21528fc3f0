// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import "github.com/beevik/cmd"

// A command describes a single monitor command and the host method that
// handles it.
type command struct {
	group       string
	name        string
	brief       string
	description string
	usage       string
	handler     func(*Host, selection) error
}

// A selection is a command line resolved against the command tree: the
// matched command and the arguments that followed it.
type selection struct {
	Command *cmd.Command
	Args    []string
}

// Resolve a command line into a selection. A line naming a command group
// instead of a command returns the group's tree.
func lookupCommand(line string) (selection, *cmd.Tree, error) {
	n, args, err := cmds.Lookup(line)
	if err != nil {
		return selection{}, nil, err
	}

	switch n := n.(type) {
	case *cmd.Command:
		return selection{Command: n, Args: args}, nil, nil
	case *cmd.Tree:
		return selection{}, n, nil
	}
	return selection{}, nil, cmd.ErrNotFound
}

func (c *command) descriptor() cmd.CommandDescriptor {
	return cmd.CommandDescriptor{
		Name:        c.name,
		Brief:       c.brief,
		Description: c.description,
		Usage:       c.usage,
		Data:        c,
	}
}

// Command groups, each of which becomes a subtree of the root.
var groups = []struct {
	name  string
	brief string
}{
	{"breakpoint", "Breakpoint commands"},
	{"databreakpoint", "Data breakpoint commands"},
	{"interrupt", "Interrupt commands"},
	{"memory", "Memory commands"},
	{"state", "CPU state commands"},
	{"step", "Step the debugger"},
}

var (
	cmds     *cmd.Tree
	commands []*command
)

func init() {
	commands = []*command{
		{
			name:        "help",
			brief:       "Display help for a command",
			description: "Display help for a command.",
			usage:       "help [<command>]",
			handler:     (*Host).cmdHelp,
		},

		// Breakpoint commands
		{
			group:       "breakpoint",
			name:        "list",
			brief:       "List breakpoints",
			description: "List all current breakpoints.",
			usage:       "breakpoint list",
			handler:     (*Host).cmdBreakpointList,
		},
		{
			group: "breakpoint",
			name:  "add",
			brief: "Add a breakpoint",
			description: "Add a breakpoint at the specified address." +
				" The breakpoint starts enabled.",
			usage:   "breakpoint add <address>",
			handler: (*Host).cmdBreakpointAdd,
		},
		{
			group:       "breakpoint",
			name:        "remove",
			brief:       "Remove a breakpoint",
			description: "Remove a breakpoint at the specified address.",
			usage:       "breakpoint remove <address>",
			handler:     (*Host).cmdBreakpointRemove,
		},
		{
			group:       "breakpoint",
			name:        "enable",
			brief:       "Enable a breakpoint",
			description: "Enable a previously added breakpoint.",
			usage:       "breakpoint enable <address>",
			handler:     (*Host).cmdBreakpointEnable,
		},
		{
			group: "breakpoint",
			name:  "disable",
			brief: "Disable a breakpoint",
			description: "Disable a previously added breakpoint. This" +
				" prevents the breakpoint from being hit when running the" +
				" CPU.",
			usage:   "breakpoint disable <address>",
			handler: (*Host).cmdBreakpointDisable,
		},

		// Data breakpoint commands
		{
			group:       "databreakpoint",
			name:        "list",
			brief:       "List data breakpoints",
			description: "List all current data breakpoints.",
			usage:       "databreakpoint list",
			handler:     (*Host).cmdDataBreakpointList,
		},
		{
			group: "databreakpoint",
			name:  "add",
			brief: "Add a data breakpoint",
			description: "Add a new data breakpoint at the specified" +
				" memory address. When the CPU stores data at this address," +
				" the breakpoint will stop the CPU. Optionally, a byte" +
				" value may be specified, and the CPU will stop only" +
				" when this value is stored. The data breakpoint starts" +
				" enabled.",
			usage:   "databreakpoint add <address> [<value>]",
			handler: (*Host).cmdDataBreakpointAdd,
		},
		{
			group: "databreakpoint",
			name:  "remove",
			brief: "Remove a data breakpoint",
			description: "Remove a previously added data breakpoint at" +
				" the specified memory address.",
			usage:   "databreakpoint remove <address>",
			handler: (*Host).cmdDataBreakpointRemove,
		},
		{
			group:       "databreakpoint",
			name:        "enable",
			brief:       "Enable a data breakpoint",
			description: "Enable a previously added data breakpoint.",
			usage:       "databreakpoint enable <address>",
			handler:     (*Host).cmdDataBreakpointEnable,
		},
		{
			group:       "databreakpoint",
			name:        "disable",
			brief:       "Disable a data breakpoint",
			description: "Disable a previously added data breakpoint.",
			usage:       "databreakpoint disable <address>",
			handler:     (*Host).cmdDataBreakpointDisable,
		},

		{
			name:  "disassemble",
			brief: "Disassemble code",
			description: "Disassemble machine code starting at the requested" +
				" address. The number of instructions to disassemble may be" +
				" specified as an option. If no address is specified, the" +
				" disassembly continues from where the last disassembly left off.",
			usage:   "disassemble [<address>] [<count>]",
			handler: (*Host).cmdDisassemble,
		},
		{
			name:        "evaluate",
			brief:       "Evaluate an expression",
			description: "Evaluate a mathematical expression.",
			usage:       "evaluate <expression>",
			handler:     (*Host).cmdEval,
		},
		{
			name:  "execute",
			brief: "Execute a monitor script file",
			description: "Run all monitor commands found in a text file, one" +
				" command per line.",
			usage:   "execute <filename>",
			handler: (*Host).cmdExecute,
		},

		// Interrupt commands
		{
			group: "interrupt",
			name:  "reset",
			brief: "Reset the CPU",
			description: "Run the reset sequence immediately. The program" +
				" counter is loaded from the reset vector at $FFFC.",
			usage:   "interrupt reset",
			handler: (*Host).cmdInterruptReset,
		},
		{
			group: "interrupt",
			name:  "nmi",
			brief: "Signal a non-maskable interrupt",
			description: "Latch a non-maskable interrupt. The CPU enters the" +
				" NMI handler at the next instruction boundary.",
			usage:   "interrupt nmi",
			handler: (*Host).cmdInterruptNMI,
		},
		{
			group: "interrupt",
			name:  "irq",
			brief: "Set the IRQ line",
			description: "Assert or release the IRQ line. While the line is" +
				" asserted, the CPU enters the IRQ handler whenever the" +
				" interrupt disable flag is clear.",
			usage:   "interrupt irq <on|off>",
			handler: (*Host).cmdInterruptIRQ,
		},
		{
			group:       "interrupt",
			name:        "status",
			brief:       "Display interrupt status",
			description: "Display the interrupt state and the interrupt vectors.",
			usage:       "interrupt status",
			handler:     (*Host).cmdInterruptStatus,
		},
		{
			group: "interrupt",
			name:  "break",
			brief: "Break on interrupt entry",
			description: "Stop the CPU whenever it enters the reset, NMI or" +
				" IRQ sequence.",
			usage:   "interrupt break <reset|nmi|irq> <on|off>",
			handler: (*Host).cmdInterruptBreak,
		},

		{
			name:  "load",
			brief: "Load a binary file",
			description: "Load the contents of a raw binary file into the" +
				" emulated system's memory at the specified address. The" +
				" program counter is set to the load address.",
			usage:   "load <filename> <address>",
			handler: (*Host).cmdLoad,
		},
		{
			name:  "lua",
			brief: "Run a Lua script",
			description: "Run a Lua script against the emulated system. The" +
				" script controls the CPU through the global 'cpu' table.",
			usage:   "lua <filename>",
			handler: (*Host).cmdLua,
		},

		// Memory commands
		{
			group: "memory",
			name:  "dump",
			brief: "Dump memory at address",
			description: "Dump the contents of memory starting from the" +
				" specified address. The number of bytes to dump may be" +
				" specified as an option. If no address is specified, the" +
				" memory dump continues from where the last dump left off.",
			usage:   "memory dump [<address>] [<bytes>]",
			handler: (*Host).cmdMemoryDump,
		},
		{
			group: "memory",
			name:  "set",
			brief: "Set memory at address",
			description: "Set the contents of memory starting from the specified" +
				" address. The values to assign should be a series of" +
				" space-separated byte values. You may use an expression for each" +
				" byte value.",
			usage:   "memory set <address> <byte> [<byte> ...]",
			handler: (*Host).cmdMemorySet,
		},
		{
			group: "memory",
			name:  "copy",
			brief: "Copy memory",
			description: "Copy memory from one range of addresses to another. You" +
				" must specify the destination address, the first byte of the source" +
				" address, and the last byte of the source address.",
			usage:   "memory copy <dst addr> <src addr begin> <src addr end>",
			handler: (*Host).cmdMemoryCopy,
		},

		{
			name:        "quit",
			brief:       "Quit the program",
			description: "Quit the program.",
			usage:       "quit",
			handler:     (*Host).cmdQuit,
		},
		{
			name:  "register",
			brief: "View or change register values",
			description: "When used without arguments, this command displays the current" +
				" contents of the CPU registers. When used with arguments, this" +
				" command changes the value of a register or one of the CPU's status" +
				" flags. Allowed register names include A, X, Y, PC and SP. Allowed status" +
				" flag names include N (Sign), Z (Zero), C (Carry), I (InterruptDisable)," +
				" D (Decimal) and V (Overflow).",
			usage:   "register [<name> <value>]",
			handler: (*Host).cmdRegister,
		},
		{
			name:  "run",
			brief: "Run the CPU",
			description: "Run the CPU until a breakpoint is hit, the CPU" +
				" halts, or the user types Ctrl-C.",
			usage:   "run [<address>]",
			handler: (*Host).cmdRun,
		},
		{
			name:  "set",
			brief: "Set a configuration variable",
			description: "Set the value of a configuration variable. To see the" +
				" current values of all configuration variables, type set" +
				" without any arguments.",
			usage:   "set [<var> <value>]",
			handler: (*Host).cmdSet,
		},

		// State commands
		{
			group: "state",
			name:  "save",
			brief: "Save the CPU and memory state",
			description: "Save the CPU state and the full 64K of memory to a" +
				" file.",
			usage:   "state save <filename>",
			handler: (*Host).cmdStateSave,
		},
		{
			group:       "state",
			name:        "load",
			brief:       "Load the CPU and memory state",
			description: "Restore the CPU state and memory from a file written by state save.",
			usage:       "state load <filename>",
			handler:     (*Host).cmdStateLoad,
		},

		// Step commands
		{
			group: "step",
			name:  "in",
			brief: "Step into next instruction",
			description: "Step the CPU by a single instruction. If the" +
				" instruction is a subroutine call, step into the subroutine." +
				" The number of steps may be specified as an option.",
			usage:   "step in [<count>]",
			handler: (*Host).cmdStepIn,
		},
		{
			group: "step",
			name:  "over",
			brief: "Step over next instruction",
			description: "Step the CPU by a single instruction. If the" +
				" instruction is a subroutine call, step over the subroutine." +
				" The number of steps may be specified as an option.",
			usage:   "step over [<count>]",
			handler: (*Host).cmdStepOver,
		},
		{
			group: "step",
			name:  "out",
			brief: "Step out of the current subroutine",
			description: "Step the CPU until it executes an RTS or RTI" +
				" instruction. This has the effect of stepping until the" +
				" currently running subroutine has returned.",
			usage:   "step out",
			handler: (*Host).cmdStepOut,
		},
	}

	root := cmd.NewTree(cmd.TreeDescriptor{Name: "go2a03"})
	for _, c := range commands {
		if c.group == "" {
			root.AddCommand(c.descriptor())
		}
	}
	for _, g := range groups {
		sub := root.AddSubtree(cmd.TreeDescriptor{Name: g.name, Brief: g.brief})
		for _, c := range commands {
			if c.group == g.name {
				sub.AddCommand(c.descriptor())
			}
		}
	}

	// Add command shortcuts.
	root.AddShortcut("ba", "breakpoint add")
	root.AddShortcut("br", "breakpoint remove")
	root.AddShortcut("bl", "breakpoint list")
	root.AddShortcut("be", "breakpoint enable")
	root.AddShortcut("bd", "breakpoint disable")
	root.AddShortcut("d", "disassemble")
	root.AddShortcut("dbl", "databreakpoint list")
	root.AddShortcut("dba", "databreakpoint add")
	root.AddShortcut("dbr", "databreakpoint remove")
	root.AddShortcut("dbe", "databreakpoint enable")
	root.AddShortcut("dbd", "databreakpoint disable")
	root.AddShortcut("e", "evaluate")
	root.AddShortcut("is", "interrupt status")
	root.AddShortcut("m", "memory dump")
	root.AddShortcut("mc", "memory copy")
	root.AddShortcut("ms", "memory set")
	root.AddShortcut("r", "register")
	root.AddShortcut("s", "step over")
	root.AddShortcut("si", "step in")
	root.AddShortcut("so", "step out")
	root.AddShortcut("x", "execute")
	root.AddShortcut("?", "help")
	root.AddShortcut(".", "register")

	cmds = root
}

// Return the commands belonging to a group. The empty group holds the
// top-level commands.
func groupCommands(group string) []*command {
	var list []*command
	for _, c := range commands {
		if c.group == group {
			list = append(list, c)
		}
	}
	return list
}
