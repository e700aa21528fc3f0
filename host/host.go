// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host allows you to create a "host" that emulates a system with a
// 2A03 CPU, 64K of flat memory, a built-in debugger, and other useful tools.
//
// Within the host it is possible to load machine code into memory, debug and
// step through machine code, measure the number of CPU cycles elapsed, set
// address, data and interrupt breakpoints, drive the CPU's reset, NMI and
// IRQ inputs, dump and disassemble the contents of memory, save and restore
// the machine state, manipulate CPU registers and memory, evaluate arbitrary
// expressions, and run Lua scripts against the CPU.
package host

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync/atomic"

	"github.com/beevik/cmd"
	"github.com/beevik/go2a03/cpu"
	"github.com/beevik/go2a03/disasm"
)

type displayFlags uint8

const (
	displayRegisters displayFlags = 1 << iota
	displayCycles

	displayAll = displayRegisters | displayCycles
)

type state byte

const (
	stateProcessingCommands state = iota
	stateRunning
	stateBreakpoint
)

// A Host represents a fully emulated 2A03 system with 64K of memory, a
// built-in debugger, and other useful tools.
type Host struct {
	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool
	mem         *cpu.FlatMemory
	cpu         *cpu.CPU
	debugger    *cpu.Debugger
	lastCmd     *selection
	state       state
	exprParser  *exprParser
	settings    *settings

	// Set by Break, polled by the run loop between steps.
	breakRequested atomic.Bool
}

// New creates a new host environment around a CPU of the requested
// architecture.
func New(arch cpu.Architecture) *Host {
	h := &Host{
		state:      stateProcessingCommands,
		exprParser: newExprParser(),
		settings:   newSettings(),
		output:     bufio.NewWriter(os.Stdout),
	}

	// Create the emulated CPU and memory.
	h.mem = cpu.NewFlatMemory()
	h.cpu = cpu.NewCPU(arch, h.mem)

	// Create a CPU debugger and attach it to the CPU.
	h.debugger = cpu.NewDebugger(newDebugHandler(h))
	h.cpu.AttachDebugger(h.debugger)

	return h
}

// RunCommands accepts host commands from a reader and outputs the results
// to a writer. If the commands are interactive, a prompt is displayed while
// the host waits for the the next command to be entered. It returns false
// if a command asked the host to exit.
func (h *Host) RunCommands(r io.Reader, w io.Writer, interactive bool) bool {
	h.output = bufio.NewWriter(w)
	h.interactive = interactive

	if interactive {
		h.println()
		h.displayPC()
	}

	return h.processCommands(bufio.NewScanner(r))
}

// Process commands until the input is exhausted or a command handler
// returns an error.
func (h *Host) processCommands(input *bufio.Scanner) bool {
	prev := h.input
	h.input = input
	defer func() { h.input = prev }()

	for {
		h.prompt()

		line, err := h.getLine()
		if err != nil {
			return true
		}

		var c selection
		if line != "" {
			var group *cmd.Tree
			c, group, err = lookupCommand(line)
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
			case group != nil:
				h.displayCommands(group.Name)
				continue
			}
		} else if h.lastCmd != nil {
			c = *h.lastCmd
		}

		if c.Command == nil {
			continue
		}
		h.lastCmd = &c

		cm, ok := c.Command.Data.(*command)
		if !ok {
			continue
		}
		if err := cm.handler(h, c); err != nil {
			return false
		}
	}
}

// Break asks a running CPU to stop after its current step. It may be
// called from any goroutine, typically a signal handler.
func (h *Host) Break() {
	h.breakRequested.Store(true)
}

// CPU returns the emulated CPU.
func (h *Host) CPU() *cpu.CPU {
	return h.cpu
}

// Load copies the contents of a raw binary file into memory at 'addr' and
// points the program counter at it.
func (h *Host) Load(filename string, addr uint16) error {
	b, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	if int(addr)+len(b) > 0x10000 {
		return fmt.Errorf("'%s' does not fit in memory at $%04X", filepath.Base(filename), addr)
	}

	h.mem.StoreBytes(addr, b)
	h.cpu.SetPC(addr)
	h.printf("Loaded '%s' to $%04X..$%04X\n", filepath.Base(filename), addr, int(addr)+len(b)-1)
	return nil
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
		return strings.TrimSpace(h.input.Text()), nil
	}
	if h.input.Err() != nil {
		return "", h.input.Err()
	}
	return "", io.EOF
}

func (h *Host) prompt() {
	if h.interactive {
		h.printf("* ")
	}
}

func (h *Host) displayPC() {
	if h.interactive {
		d, _ := h.disassemble(h.cpu.Reg.PC, displayAll)
		h.println(d)
	}
}

func (h *Host) cmdBreakpointList(c selection) error {
	h.println("Addr  Enabled  Hits")
	h.println("----- -------  ----")
	for _, b := range h.debugger.GetBreakpoints() {
		h.printf("$%04X %-5v    %d\n", b.Address, !b.Disabled, b.Hits)
	}
	return nil
}

func (h *Host) cmdBreakpointAdd(c selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c)
		return nil
	}

	addr, err := h.parseExpr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	h.debugger.AddBreakpoint(addr)
	h.printf("Breakpoint added at $%04X.\n", addr)
	return nil
}

func (h *Host) cmdBreakpointRemove(c selection) error {
	b := h.selectBreakpoint(c)
	if b == nil {
		return nil
	}

	h.debugger.RemoveBreakpoint(b.Address)
	h.printf("Breakpoint at $%04X removed.\n", b.Address)
	return nil
}

func (h *Host) cmdBreakpointEnable(c selection) error {
	b := h.selectBreakpoint(c)
	if b == nil {
		return nil
	}

	b.Disabled = false
	h.printf("Breakpoint at $%04X enabled.\n", b.Address)
	return nil
}

func (h *Host) cmdBreakpointDisable(c selection) error {
	b := h.selectBreakpoint(c)
	if b == nil {
		return nil
	}

	b.Disabled = true
	h.printf("Breakpoint at $%04X disabled.\n", b.Address)
	return nil
}

// Parse the address argument of a breakpoint command and return the
// breakpoint set there. Problems are reported and nil is returned.
func (h *Host) selectBreakpoint(c selection) *cpu.Breakpoint {
	if len(c.Args) < 1 {
		h.displayUsage(c)
		return nil
	}

	addr, err := h.parseExpr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	b := h.debugger.GetBreakpoint(addr)
	if b == nil {
		h.printf("No breakpoint was set on $%04X.\n", addr)
	}
	return b
}

func (h *Host) cmdDataBreakpointList(c selection) error {
	h.println("Addr  Enabled  Value  Hits")
	h.println("----- -------  -----  ----")
	for _, b := range h.debugger.GetDataBreakpoints() {
		if b.Conditional {
			h.printf("$%04X %-5v    $%02X    %d\n", b.Address, !b.Disabled, b.Value, b.Hits)
		} else {
			h.printf("$%04X %-5v    <none> %d\n", b.Address, !b.Disabled, b.Hits)
		}
	}
	return nil
}

func (h *Host) cmdDataBreakpointAdd(c selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c)
		return nil
	}

	addr, err := h.parseExpr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	if len(c.Args) > 1 {
		value, err := h.parseExpr(c.Args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		h.debugger.AddConditionalDataBreakpoint(addr, byte(value))
		h.printf("Conditional data breakpoint added at $%04X for value $%02X.\n", addr, byte(value))
	} else {
		h.debugger.AddDataBreakpoint(addr)
		h.printf("Data breakpoint added at $%04X.\n", addr)
	}
	return nil
}

func (h *Host) cmdDataBreakpointRemove(c selection) error {
	b := h.selectDataBreakpoint(c)
	if b == nil {
		return nil
	}

	h.debugger.RemoveDataBreakpoint(b.Address)
	h.printf("Data breakpoint at $%04X removed.\n", b.Address)
	return nil
}

func (h *Host) cmdDataBreakpointEnable(c selection) error {
	b := h.selectDataBreakpoint(c)
	if b == nil {
		return nil
	}

	b.Disabled = false
	h.printf("Data breakpoint at $%04X enabled.\n", b.Address)
	return nil
}

func (h *Host) cmdDataBreakpointDisable(c selection) error {
	b := h.selectDataBreakpoint(c)
	if b == nil {
		return nil
	}

	b.Disabled = true
	h.printf("Data breakpoint at $%04X disabled.\n", b.Address)
	return nil
}

func (h *Host) selectDataBreakpoint(c selection) *cpu.DataBreakpoint {
	if len(c.Args) < 1 {
		h.displayUsage(c)
		return nil
	}

	addr, err := h.parseExpr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	b := h.debugger.GetDataBreakpoint(addr)
	if b == nil {
		h.printf("No data breakpoint was set on $%04X.\n", addr)
	}
	return b
}

func (h *Host) cmdDisassemble(c selection) error {
	if len(c.Args) == 0 {
		c.Args = []string{"$"}
	}

	var addr uint16
	switch c.Args[0] {
	case "$":
		addr = h.settings.NextDisasmAddr
		if addr == 0 {
			addr = h.cpu.Reg.PC
		}

	case ".":
		addr = h.cpu.Reg.PC

	default:
		a, err := h.parseExpr(c.Args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		addr = a
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
		d, next := h.disassemble(addr, 0)
		h.println(d)
		addr = next
	}

	h.settings.NextDisasmAddr = addr
	h.lastCmd.Args = []string{"$", fmt.Sprintf("%d", lines)}
	return nil
}

func (h *Host) cmdEval(c selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c)
		return nil
	}

	expr := strings.Join(c.Args, " ")
	v, err := h.exprParser.Parse(expr, h)
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	h.printf("$%04X (%d)\n", uint16(v), v)
	return nil
}

func (h *Host) cmdExecute(c selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c)
		return nil
	}

	file, err := os.Open(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}
	defer file.Close()

	interactive := h.interactive
	h.interactive = false
	ok := h.processCommands(bufio.NewScanner(file))
	h.interactive = interactive
	h.lastCmd = nil

	if !ok {
		return errors.New("exiting program")
	}
	return nil
}

func (h *Host) cmdHelp(c selection) error {
	if len(c.Args) == 0 {
		h.displayCommands("")
		return nil
	}

	s, group, err := lookupCommand(strings.Join(c.Args, " "))
	switch {
	case err != nil:
		h.printf("%v.\n", err)
		return nil
	case group != nil:
		h.displayCommands(group.Name)
		return nil
	}

	cm, ok := s.Command.Data.(*command)
	if !ok {
		h.println("Command not found.")
		return nil
	}

	h.printf("Syntax: %s\n\n", cm.usage)
	h.printf("Description:\n%s\n\n", indentWrap(3, cm.description))
	s.Command.DisplayShortcuts(h.output)
	h.flush()
	return nil
}

func (h *Host) cmdLoad(c selection) error {
	if len(c.Args) < 2 {
		h.displayUsage(c)
		return nil
	}

	addr, err := h.parseExpr(c.Args[1])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	if err := h.Load(c.Args[0], addr); err != nil {
		h.printf("Failed to load: %v\n", err)
	}
	return nil
}

func (h *Host) cmdMemoryDump(c selection) error {
	if len(c.Args) == 0 {
		c.Args = []string{"$"}
	}

	var addr uint16
	switch c.Args[0] {
	case "$":
		addr = h.settings.NextMemDumpAddr

	case ".":
		addr = h.cpu.Reg.PC

	default:
		a, err := h.parseExpr(c.Args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		addr = a
	}

	bytes := uint16(h.settings.MemDumpBytes)
	if len(c.Args) >= 2 {
		var err error
		bytes, err = h.parseExpr(c.Args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
	}

	h.dumpMemory(addr, bytes)

	h.settings.NextMemDumpAddr = addr + bytes
	h.lastCmd.Args = []string{"$", fmt.Sprintf("%d", bytes)}
	return nil
}

func (h *Host) cmdMemorySet(c selection) error {
	if len(c.Args) < 2 {
		h.displayUsage(c)
		return nil
	}

	addr, err := h.parseExpr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	b := make([]byte, 0, len(c.Args)-1)
	for _, arg := range c.Args[1:] {
		v, err := h.parseExpr(arg)
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		b = append(b, byte(v))
	}

	h.mem.StoreBytes(addr, b)
	h.dumpMemory(addr, uint16(len(b)))
	return nil
}

func (h *Host) cmdMemoryCopy(c selection) error {
	if len(c.Args) < 3 {
		h.displayUsage(c)
		return nil
	}

	var addr [3]uint16
	for i := range addr {
		a, err := h.parseExpr(c.Args[i])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		addr[i] = a
	}

	dst, src0, src1 := addr[0], addr[1], addr[2]
	if src1 < src0 {
		h.println("Source range is empty.")
		return nil
	}

	b := make([]byte, int(src1)-int(src0)+1)
	h.mem.LoadBytes(src0, b)
	h.mem.StoreBytes(dst, b)
	h.printf("Copied $%04X..$%04X to $%04X.\n", src0, src1, dst)
	return nil
}

func (h *Host) cmdQuit(c selection) error {
	return errors.New("exiting program")
}

func (h *Host) cmdRegister(c selection) error {
	if len(c.Args) == 0 {
		d, _ := h.disassemble(h.cpu.Reg.PC, displayAll)
		h.println(d)
		return nil
	}

	if len(c.Args) < 2 {
		h.displayUsage(c)
		return nil
	}

	key := strings.ToLower(c.Args[0])
	v, err := h.exprParser.Parse(strings.Join(c.Args[1:], " "), h)
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	r := &h.cpu.Reg
	sz := -1
	switch key {
	case "a":
		r.A, sz = byte(v), 1
	case "x":
		r.X, sz = byte(v), 1
	case "y":
		r.Y, sz = byte(v), 1
	case "sp":
		r.SP, sz = byte(v), 1
	case ".", "pc":
		key = "pc"
		r.PC, sz = uint16(v), 2
	case "n", "sign":
		key = "sign"
		r.Sign, sz = v != 0, 0
	case "v", "overflow":
		key = "overflow"
		r.Overflow, sz = v != 0, 0
	case "d", "decimal":
		key = "decimal"
		r.Decimal, sz = v != 0, 0
	case "i", "interruptdisable":
		key = "interruptdisable"
		r.InterruptDisable, sz = v != 0, 0
	case "z", "zero":
		key = "zero"
		r.Zero, sz = v != 0, 0
	case "c", "carry":
		key = "carry"
		r.Carry, sz = v != 0, 0
	}

	switch sz {
	case 0:
		h.printf("Status flag %s set to %v.\n", strings.ToUpper(key), v != 0)
	case 1:
		h.printf("Register %s set to $%02X.\n", strings.ToUpper(key), byte(v))
	case 2:
		h.printf("Register %s set to $%04X.\n", strings.ToUpper(key), uint16(v))
	default:
		h.printf("Unknown register '%s'.\n", key)
	}

	h.settings.NextDisasmAddr = r.PC
	return nil
}

func (h *Host) cmdRun(c selection) error {
	if len(c.Args) > 0 {
		pc, err := h.parseExpr(c.Args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		h.cpu.SetPC(pc)
	}

	h.printf("Running from $%04X. Press ctrl-C to break.\n", h.cpu.Reg.PC)

	h.breakRequested.Store(false)
	h.state = stateRunning
	for h.state == stateRunning {
		h.step()
	}
	h.state = stateProcessingCommands

	h.settings.NextDisasmAddr = h.cpu.Reg.PC
	return nil
}

func (h *Host) cmdSet(c selection) error {
	switch len(c.Args) {
	case 0:
		h.println("Variables:")
		h.settings.Display(h.output)
		h.flush()

	case 1:
		h.displayUsage(c)

	default:
		key, value := strings.ToLower(c.Args[0]), strings.Join(c.Args[1:], " ")

		var err error
		switch h.settings.Kind(key) {
		case reflect.Invalid:
			err = fmt.Errorf("setting '%s' not found", key)
		case reflect.Bool:
			var b bool
			b, err = stringToBool(value)
			if err == nil {
				err = h.settings.Set(key, b)
			}
		default:
			var v int64
			v, err = h.exprParser.Parse(value, h)
			if err == nil {
				err = h.settings.Set(key, v)
			}
		}

		if err == nil {
			h.println("Setting updated.")
		} else {
			h.printf("%v\n", err)
		}

		h.onSettingsUpdate()
	}

	return nil
}

func (h *Host) cmdStepIn(c selection) error {
	return h.stepRepeat(c, h.step)
}

func (h *Host) cmdStepOver(c selection) error {
	return h.stepRepeat(c, h.stepOver)
}

func (h *Host) cmdStepOut(c selection) error {
	h.breakRequested.Store(false)
	h.state = stateRunning
	for h.state == stateRunning {
		inst := h.instructionAt(h.cpu.Reg.PC)
		h.step()
		if inst.Name == "RTS" || inst.Name == "RTI" {
			break
		}
	}
	h.state = stateProcessingCommands

	h.displayPC()
	h.settings.NextDisasmAddr = h.cpu.Reg.PC
	return nil
}

// Step the CPU 'count' times using the step function 'fn', displaying the
// last few instructions executed.
func (h *Host) stepRepeat(c selection, fn func()) error {
	count := 1
	if len(c.Args) > 0 {
		n, err := h.parseExpr(c.Args[0])
		if err == nil {
			count = int(n)
		}
	}

	h.breakRequested.Store(false)
	h.state = stateRunning
	for i := count - 1; i >= 0 && h.state == stateRunning; i-- {
		fn()
		switch {
		case i == h.settings.MaxStepLines:
			h.println("...")
		case i < h.settings.MaxStepLines:
			h.displayPC()
		}
	}
	h.state = stateProcessingCommands

	h.settings.NextDisasmAddr = h.cpu.Reg.PC
	return nil
}

// Execute one CPU step. A CPU that locks up or a pending Break stops the
// current run.
func (h *Host) step() {
	r := h.cpu.Step()
	if h.settings.TraceMode {
		h.println(h.cpu.String())
	}
	if h.state != stateRunning {
		return
	}

	switch {
	case r.Halted:
		h.printf("CPU halted at $%04X.\n", h.cpu.Reg.PC)
		h.state = stateBreakpoint
	case h.breakRequested.Swap(false):
		h.println()
		h.displayPC()
		h.state = stateBreakpoint
	}
}

// Step over the next instruction. Subroutine calls run until they return
// to the instruction following the JSR.
func (h *Host) stepOver() {
	inst := h.instructionAt(h.cpu.Reg.PC)
	if inst.Name != "JSR" {
		h.step()
		return
	}

	next := h.cpu.Reg.PC + uint16(inst.Length)
	sp := h.cpu.Reg.SP
	for h.state == stateRunning {
		h.step()
		if h.cpu.Reg.PC == next && h.cpu.Reg.SP == sp {
			break
		}
	}
}

// Decode the instruction at addr from host memory without touching the
// CPU's bus.
func (h *Host) instructionAt(addr uint16) *cpu.Instruction {
	return h.cpu.InstSet.Lookup(h.mem.Read(addr))
}

func (h *Host) onSettingsUpdate() {
	h.exprParser.hexMode = h.settings.HexMode
}

func (h *Host) parseExpr(expr string) (uint16, error) {
	v, err := h.exprParser.Parse(expr, h)
	if err != nil {
		return 0, err
	}

	if v < 0 {
		v = 0x10000 + v
	}
	return uint16(v), nil
}

func (h *Host) disassemble(addr uint16, flags displayFlags) (str string, next uint16) {
	var line string
	line, next = disasm.Disassemble(h.mem, addr)

	if h.settings.CompactMode {
		str = fmt.Sprintf("%04X- %-11s", addr, line)
	} else {
		b := make([]byte, next-addr)
		h.mem.LoadBytes(addr, b)
		str = fmt.Sprintf("%04X-   %-8s    %-15s", addr, codeString(b), line)
	}

	if (flags & displayRegisters) != 0 {
		str += " " + disasm.GetRegisterString(&h.cpu.Reg)
	}

	if (flags & displayCycles) != 0 {
		str += fmt.Sprintf(" C=%-12d", h.cpu.Cycles)
	}

	return str, next
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
		for a, c1, c2 := uint32(addr0), 6, 32; a <= uint32(addr1); a, c1, c2 = a+1, c1+3, c2+1 {
			m := h.mem.Read(uint16(a))
			byteToBuf(m, buf[c1:c1+2])
			buf[c2] = toPrintableChar(m)
		}
		h.println(strings.TrimRight(string(buf), " "))
		return
	}

	// Align addr0 and addr1 to 8-byte boundaries.
	start := uint32(addr0) & 0xfff8
	stop := min((uint32(addr1)+8)&0xffff8, 0x10000)

	a := start
	for r := start; r < stop; r += 8 {
		addrToBuf(uint16(a), buf[0:4])
		for c1, c2 := 6, 32; c1 < 29; c1, c2, a = c1+3, c2+1, a+1 {
			if a >= uint32(addr0) && a <= uint32(addr1) {
				m := h.mem.Read(uint16(a))
				byteToBuf(m, buf[c1:c1+2])
				buf[c2] = toPrintableChar(m)
			} else {
				buf[c1] = ' '
				buf[c1+1] = ' '
				buf[c2] = ' '
			}
		}
		h.println(strings.TrimRight(string(buf), " "))
	}
}

func (h *Host) displayUsage(c selection) {
	if cm, ok := c.Command.Data.(*command); ok && cm.usage != "" {
		h.printf("Syntax: %s\n", cm.usage)
	} else {
		h.println("<no help text>")
	}
}

func (h *Host) displayCommands(group string) {
	if group == "" {
		h.println("Commands:")
	} else {
		h.printf("%s commands:\n", group)
	}
	for _, c := range groupCommands(group) {
		h.printf("    %-15s  %s\n", c.name, c.brief)
	}
	if group == "" {
		for _, g := range groups {
			h.printf("    %-15s  %s\n", g.name, g.brief)
		}
	}
}

func (h *Host) resolveIdentifier(s string) (int64, error) {
	switch strings.ToLower(s) {
	case "a":
		return int64(h.cpu.Reg.A), nil
	case "x":
		return int64(h.cpu.Reg.X), nil
	case "y":
		return int64(h.cpu.Reg.Y), nil
	case "sp":
		return int64(h.cpu.Reg.SP) | 0x0100, nil
	case ".", "pc":
		return int64(h.cpu.Reg.PC), nil
	}
	return 0, fmt.Errorf("identifier '%s' not found", s)
}

func (h *Host) onBreakpoint(c *cpu.CPU, b *cpu.Breakpoint) {
	if h.state != stateRunning {
		return
	}
	h.state = stateBreakpoint
	h.printf("Breakpoint hit at $%04X.\n", b.Address)
	h.displayPC()
}

func (h *Host) onDataBreakpoint(c *cpu.CPU, b *cpu.DataBreakpoint) {
	if h.state != stateRunning {
		return
	}
	h.state = stateBreakpoint
	h.printf("Data breakpoint hit on address $%04X.\n", b.Address)

	if c.LastPC != c.Reg.PC {
		d, _ := h.disassemble(c.LastPC, displayAll)
		h.println(d)
	}
}

func (h *Host) onInterrupt(c *cpu.CPU, i cpu.Interrupt) {
	if h.state != stateRunning {
		return
	}
	h.state = stateBreakpoint
	h.printf("Entered %v handler at $%04X.\n", i, c.Reg.PC)
	h.displayPC()
}
