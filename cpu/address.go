// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// Resolve the effective address of an instruction's memory operand. The
// operand bytes are fetched from PC, and any dummy reads the addressing
// mode performs on hardware are issued in order.
func (cpu *CPU) address(inst *Instruction) uint16 {
	switch inst.Mode {
	case ZPG:
		return uint16(cpu.fetch())
	case ZPX:
		zp := cpu.fetch()
		cpu.read(uint16(zp))
		return offsetZeroPage(zp, cpu.Reg.X)
	case ZPY:
		zp := cpu.fetch()
		cpu.read(uint16(zp))
		return offsetZeroPage(zp, cpu.Reg.Y)
	case ABS:
		return cpu.fetchAddress()
	case ABX:
		return cpu.indexed(cpu.fetchAddress(), cpu.Reg.X, inst.access)
	case ABY:
		return cpu.indexed(cpu.fetchAddress(), cpu.Reg.Y, inst.access)
	case IND:
		// The pointer's MSB is read from the same page as its LSB.
		ptr := cpu.fetchAddress()
		lo := cpu.read(ptr)
		hi := cpu.read((ptr & 0xff00) | ((ptr + 1) & 0x00ff))
		return uint16(lo) | uint16(hi)<<8
	case IDX:
		zp := cpu.fetch()
		cpu.read(uint16(zp))
		return cpu.readZeroPageAddress(zp + cpu.Reg.X)
	case IDY:
		zp := cpu.fetch()
		return cpu.indexed(cpu.readZeroPageAddress(zp), cpu.Reg.Y, inst.access)
	default:
		panic("invalid addressing mode")
	}
}

// Read a 16-bit pointer from the zero page. The MSB wraps to $00 when the
// pointer sits at $FF.
func (cpu *CPU) readZeroPageAddress(zp byte) uint16 {
	lo := cpu.read(uint16(zp))
	hi := cpu.read(uint16(zp + 1))
	return uint16(lo) | uint16(hi)<<8
}

// Add an index register to a base address. The CPU first reads from the
// address with an uncorrected high byte. Reads skip that access when no
// page boundary is crossed; writes and read-modify-writes always perform
// it.
func (cpu *CPU) indexed(base uint16, index byte, acc access) uint16 {
	cpu.base = base
	addr, crossed := offsetAddress(base, index)
	if crossed || acc != accRead {
		cpu.read((base & 0xff00) | (addr & 0x00ff))
	}
	if acc == accRead {
		cpu.pageCrossed = crossed
	}
	return addr
}

// Load a byte value using the instruction's addressing mode.
func (cpu *CPU) load(inst *Instruction) byte {
	switch inst.Mode {
	case IMM:
		return cpu.fetch()
	case ACC:
		return cpu.Reg.A
	default:
		return cpu.read(cpu.address(inst))
	}
}

// Store a byte value using the instruction's addressing mode.
func (cpu *CPU) store(inst *Instruction, v byte) {
	cpu.write(cpu.address(inst), v)
}

// Begin a read-modify-write operation. Memory operands are read and the
// unmodified value is written straight back, as the hardware does.
func (cpu *CPU) loadModify(inst *Instruction) (addr uint16, v byte) {
	if inst.Mode == ACC {
		return 0, cpu.Reg.A
	}
	addr = cpu.address(inst)
	v = cpu.read(addr)
	cpu.write(addr, v)
	return addr, v
}

// Complete a read-modify-write operation begun by loadModify.
func (cpu *CPU) storeModify(inst *Instruction, addr uint16, v byte) {
	if inst.Mode == ACC {
		cpu.Reg.A = v
		return
	}
	cpu.write(addr, v)
}
