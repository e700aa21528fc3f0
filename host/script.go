// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"strings"

	lua "github.com/yuin/gopher-lua"
)

func (h *Host) cmdLua(c selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c)
		return nil
	}

	if err := h.RunLua(c.Args[0]); err != nil {
		h.printf("%v\n", err)
	}
	return nil
}

// RunLua executes a Lua script file. The script drives the emulated system
// through the global 'cpu' table.
func (h *Host) RunLua(filename string) error {
	L := h.newLuaState()
	defer L.Close()
	return L.DoFile(filename)
}

// RunLuaString executes a chunk of Lua source code.
func (h *Host) RunLuaString(source string) error {
	L := h.newLuaState()
	defer L.Close()
	return L.DoString(source)
}

func (h *Host) newLuaState() *lua.LState {
	L := lua.NewState()

	tb := L.NewTable()
	L.SetFuncs(tb, map[string]lua.LGFunction{
		"step":    h.luaStep,
		"run":     h.luaRun,
		"reset":   h.luaReset,
		"nmi":     h.luaNMI,
		"irq":     h.luaIRQ,
		"peek":    h.luaPeek,
		"poke":    h.luaPoke,
		"reg":     h.luaReg,
		"setreg":  h.luaSetReg,
		"pc":      h.luaPC,
		"cycles":  h.luaCycles,
		"halted":  h.luaHalted,
		"command": h.luaCommand,
	})
	L.SetGlobal("cpu", tb)
	L.SetGlobal("print", L.NewFunction(h.luaPrint))
	return L
}

// cpu.step([n]) steps n times (default 1) and returns the cycles consumed.
func (h *Host) luaStep(L *lua.LState) int {
	n := L.OptInt(1, 1)
	cycles := 0
	for i := 0; i < n; i++ {
		cycles += h.cpu.Step().Cycles
	}
	L.Push(lua.LNumber(cycles))
	return 1
}

// cpu.run(limit) steps until the CPU halts or limit steps have run. It returns
// the number of steps taken.
func (h *Host) luaRun(L *lua.LState) int {
	limit := L.CheckInt(1)
	n := 0
	for ; n < limit && !h.cpu.Halted(); n++ {
		h.cpu.Step()
	}
	L.Push(lua.LNumber(n))
	return 1
}

func (h *Host) luaReset(L *lua.LState) int {
	h.cpu.Reset()
	return 0
}

func (h *Host) luaNMI(L *lua.LState) int {
	h.cpu.AssertNMI()
	return 0
}

func (h *Host) luaIRQ(L *lua.LState) int {
	h.cpu.SetIRQLine(L.OptBool(1, true))
	return 0
}

func (h *Host) luaPeek(L *lua.LState) int {
	addr := L.CheckInt(1)
	L.Push(lua.LNumber(h.mem.Read(uint16(addr))))
	return 1
}

func (h *Host) luaPoke(L *lua.LState) int {
	addr := L.CheckInt(1)
	v := L.CheckInt(2)
	h.mem.Write(uint16(addr), byte(v))
	return 0
}

func (h *Host) luaReg(L *lua.LState) int {
	name := L.CheckString(1)
	r := &h.cpu.Reg

	var v int
	switch strings.ToLower(name) {
	case "a":
		v = int(r.A)
	case "x":
		v = int(r.X)
	case "y":
		v = int(r.Y)
	case "sp":
		v = int(r.SP)
	case "pc":
		v = int(r.PC)
	case "ps", "p":
		v = int(r.SavePS(false))
	default:
		L.ArgError(1, "unknown register '"+name+"'")
		return 0
	}
	L.Push(lua.LNumber(v))
	return 1
}

func (h *Host) luaSetReg(L *lua.LState) int {
	name := L.CheckString(1)
	v := L.CheckInt(2)
	r := &h.cpu.Reg

	switch strings.ToLower(name) {
	case "a":
		r.A = byte(v)
	case "x":
		r.X = byte(v)
	case "y":
		r.Y = byte(v)
	case "sp":
		r.SP = byte(v)
	case "pc":
		h.cpu.SetPC(uint16(v))
	case "ps", "p":
		r.RestorePS(byte(v))
	default:
		L.ArgError(1, "unknown register '"+name+"'")
	}
	return 0
}

func (h *Host) luaPC(L *lua.LState) int {
	L.Push(lua.LNumber(h.cpu.Reg.PC))
	return 1
}

func (h *Host) luaCycles(L *lua.LState) int {
	L.Push(lua.LNumber(h.cpu.Cycles))
	return 1
}

func (h *Host) luaHalted(L *lua.LState) int {
	L.Push(lua.LBool(h.cpu.Halted()))
	return 1
}

// cpu.command(line) runs a single monitor command. A command that ends the
// monitor, such as quit, raises a Lua error that stops the script.
func (h *Host) luaCommand(L *lua.LState) int {
	line := L.CheckString(1)

	c, _, err := lookupCommand(line)
	if err != nil || c.Command == nil {
		L.RaiseError("unknown command '%s'", line)
		return 0
	}

	cm, ok := c.Command.Data.(*command)
	if !ok {
		L.RaiseError("unknown command '%s'", line)
		return 0
	}

	h.lastCmd = &c
	if err := cm.handler(h, c); err != nil {
		L.RaiseError("%s: %v", line, err)
	}
	return 0
}

func (h *Host) luaPrint(L *lua.LState) int {
	n := L.GetTop()
	args := make([]string, n)
	for i := 1; i <= n; i++ {
		args[i-1] = lua.LVAsString(L.Get(i))
		if args[i-1] == "" {
			args[i-1] = L.Get(i).String()
		}
	}
	h.println(strings.Join(args, "\t"))
	return 0
}
