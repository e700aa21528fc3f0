// Copyright 2014 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package disasm implements a 2A03 instruction set disassembler, including
// the unofficial opcodes.
package disasm

import (
	"fmt"
	"strings"

	"github.com/beevik/go2a03/cpu"
)

// Memory is the read-only view of the address space used by the
// disassembler. Both cpu.FlatMemory and any cpu.Bus satisfy it.
type Memory interface {
	Read(addr uint16) byte
}

// Disassembler formatting for addressing modes
var modeFormat = []string{
	"#$%s",    // IMM
	"%s",      // IMP
	"$%s",     // REL
	"$%s",     // ZPG
	"$%s,X",   // ZPX
	"$%s,Y",   // ZPY
	"$%s",     // ABS
	"$%s,X",   // ABX
	"$%s,Y",   // ABY
	"($%s)",   // IND
	"($%s,X)", // IDX
	"($%s),Y", // IDY
	"A%s",     // ACC
}

var hex = "0123456789ABCDEF"

// Return a hexadecimal string representation of the byte slice, most
// significant byte first.
func hexString(b []byte) string {
	hexlen := len(b) * 2
	hexbuf := make([]byte, hexlen)
	j := hexlen - 1
	for _, n := range b {
		hexbuf[j] = hex[n&0xf]
		hexbuf[j-1] = hex[n>>4]
		j -= 2
	}
	return string(hexbuf)
}

// Disassemble the machine code in memory 'm' at address 'addr'. Return a
// 'line' string representing the disassembled instruction and a 'next'
// address that starts the following line of machine code. Unofficial
// opcodes are marked with a leading '*'.
func Disassemble(m Memory, addr uint16) (line string, next uint16) {
	set := cpu.GetInstructionSet(cpu.Ricoh2A03)
	inst := set.Lookup(m.Read(addr))

	operand := make([]byte, inst.Length-1)
	for i := range operand {
		operand[i] = m.Read(addr + 1 + uint16(i))
	}

	if inst.Mode == cpu.REL {
		// Convert relative offset to absolute address.
		braddr := addr + uint16(inst.Length) + uint16(int8(operand[0]))
		operand = []byte{byte(braddr), byte(braddr >> 8)}
	}

	name := inst.Name
	if inst.Unofficial {
		name = "*" + name
	}

	format := "%s " + modeFormat[inst.Mode]
	line = strings.TrimSpace(fmt.Sprintf(format, name, hexString(operand)))
	next = addr + uint16(inst.Length)
	return line, next
}

// GetRegisterString returns a string describing the contents of the 2A03
// registers. Set status flags are shown by letter, clear ones by '-'.
func GetRegisterString(r *cpu.Registers) string {
	flags := []byte("NV-BDIZC")
	ps := r.SavePS(false)
	for i := range flags {
		if ps&(0x80>>i) == 0 || flags[i] == 'B' || flags[i] == '-' {
			flags[i] = '-'
		}
	}
	return fmt.Sprintf("A=%02X X=%02X Y=%02X PS=[%s] SP=%02X PC=%04X",
		r.A, r.X, r.Y, flags, r.SP, r.PC)
}
