// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// ANE and LXA mix the accumulator with an analog "magic" value that varies
// between chips. $EE is the most commonly observed value.
const unstableMagic = 0xee

// AND with immediate, then shift the accumulator right
func (cpu *CPU) alr(inst *Instruction) {
	cpu.Reg.A &= cpu.load(inst)
	cpu.Reg.Carry = ((cpu.Reg.A & 1) == 1)
	cpu.Reg.A >>= 1
	cpu.updateNZ(cpu.Reg.A)
}

// AND with immediate, copying the sign into carry
func (cpu *CPU) anc(inst *Instruction) {
	cpu.Reg.A &= cpu.load(inst)
	cpu.updateNZ(cpu.Reg.A)
	cpu.Reg.Carry = cpu.Reg.Sign
}

// Unstable AND of accumulator, X and immediate
func (cpu *CPU) ane(inst *Instruction) {
	cpu.Reg.A = (cpu.Reg.A | unstableMagic) & cpu.Reg.X & cpu.load(inst)
	cpu.updateNZ(cpu.Reg.A)
}

// AND with immediate, then rotate the accumulator right. Carry comes from
// bit 6 of the result and overflow from bit 6 XOR bit 5.
func (cpu *CPU) arr(inst *Instruction) {
	v := cpu.Reg.A & cpu.load(inst)
	cpu.Reg.A = (v >> 1) | (boolToByte(cpu.Reg.Carry) << 7)
	cpu.updateNZ(cpu.Reg.A)
	cpu.Reg.Carry = ((cpu.Reg.A & 0x40) != 0)
	cpu.Reg.Overflow = (((cpu.Reg.A >> 6) ^ (cpu.Reg.A >> 5)) & 1) != 0
}

// Subtract immediate from A AND X, storing the result in X
func (cpu *CPU) axs(inst *Instruction) {
	v := cpu.load(inst)
	t := cpu.Reg.A & cpu.Reg.X
	cpu.Reg.Carry = (t >= v)
	cpu.Reg.X = t - v
	cpu.updateNZ(cpu.Reg.X)
}

// Decrement memory, then compare with accumulator
func (cpu *CPU) dcp(inst *Instruction) {
	addr, v := cpu.loadModify(inst)
	v--
	cpu.storeModify(inst, addr, v)
	cpu.compare(cpu.Reg.A, v)
}

// Increment memory, then subtract from accumulator
func (cpu *CPU) isc(inst *Instruction) {
	addr, v := cpu.loadModify(inst)
	v++
	cpu.storeModify(inst, addr, v)
	cpu.add(^v)
}

// Increment memory, then subtract from accumulator (NMOS)
func (cpu *CPU) iscn(inst *Instruction) {
	addr, v := cpu.loadModify(inst)
	v++
	cpu.storeModify(inst, addr, v)
	cpu.subDecimal(v)
}

// Lock up the CPU until the next reset
func (cpu *CPU) kil(inst *Instruction) {
	cpu.halted = true
	cpu.Reg.PC = cpu.LastPC
}

// AND memory with the stack pointer into A, X and SP
func (cpu *CPU) las(inst *Instruction) {
	v := cpu.load(inst) & cpu.Reg.SP
	cpu.Reg.A, cpu.Reg.X, cpu.Reg.SP = v, v, v
	cpu.updateNZ(v)
}

// Load accumulator and X register
func (cpu *CPU) lax(inst *Instruction) {
	v := cpu.load(inst)
	cpu.Reg.A, cpu.Reg.X = v, v
	cpu.updateNZ(v)
}

// Unstable load of accumulator and X register from immediate
func (cpu *CPU) lxa(inst *Instruction) {
	v := (cpu.Reg.A | unstableMagic) & cpu.load(inst)
	cpu.Reg.A, cpu.Reg.X = v, v
	cpu.updateNZ(v)
}

// Rotate memory left, then AND with accumulator
func (cpu *CPU) rla(inst *Instruction) {
	addr, tmp := cpu.loadModify(inst)
	v := (tmp << 1) | boolToByte(cpu.Reg.Carry)
	cpu.Reg.Carry = ((tmp & 0x80) != 0)
	cpu.storeModify(inst, addr, v)
	cpu.Reg.A &= v
	cpu.updateNZ(cpu.Reg.A)
}

// Rotate memory right, then add to accumulator
func (cpu *CPU) rra(inst *Instruction) {
	cpu.add(cpu.rotateRight(inst))
}

// Rotate memory right, then add to accumulator (NMOS)
func (cpu *CPU) rran(inst *Instruction) {
	cpu.addDecimal(cpu.rotateRight(inst))
}

func (cpu *CPU) rotateRight(inst *Instruction) byte {
	addr, tmp := cpu.loadModify(inst)
	v := (tmp >> 1) | (boolToByte(cpu.Reg.Carry) << 7)
	cpu.Reg.Carry = ((tmp & 1) != 0)
	cpu.storeModify(inst, addr, v)
	return v
}

// Store accumulator AND X
func (cpu *CPU) sax(inst *Instruction) {
	cpu.store(inst, cpu.Reg.A&cpu.Reg.X)
}

// Store accumulator AND X AND (high byte + 1)
func (cpu *CPU) sha(inst *Instruction) {
	cpu.storeHigh(inst, cpu.Reg.A&cpu.Reg.X)
}

// Store X AND (high byte + 1)
func (cpu *CPU) shx(inst *Instruction) {
	cpu.storeHigh(inst, cpu.Reg.X)
}

// Store Y AND (high byte + 1)
func (cpu *CPU) shy(inst *Instruction) {
	cpu.storeHigh(inst, cpu.Reg.Y)
}

// Shift memory left, then OR with accumulator
func (cpu *CPU) slo(inst *Instruction) {
	addr, v := cpu.loadModify(inst)
	cpu.Reg.Carry = ((v & 0x80) != 0)
	v <<= 1
	cpu.storeModify(inst, addr, v)
	cpu.Reg.A |= v
	cpu.updateNZ(cpu.Reg.A)
}

// Shift memory right, then XOR with accumulator
func (cpu *CPU) sre(inst *Instruction) {
	addr, v := cpu.loadModify(inst)
	cpu.Reg.Carry = ((v & 1) != 0)
	v >>= 1
	cpu.storeModify(inst, addr, v)
	cpu.Reg.A ^= v
	cpu.updateNZ(cpu.Reg.A)
}

// Transfer A AND X to the stack pointer, then store it AND (high byte + 1)
func (cpu *CPU) tas(inst *Instruction) {
	cpu.Reg.SP = cpu.Reg.A & cpu.Reg.X
	cpu.storeHigh(inst, cpu.Reg.SP)
}

// Store 'v' ANDed with the unindexed base address's high byte plus one.
// When indexing crosses a page, the stored value also replaces the high
// byte of the target address.
func (cpu *CPU) storeHigh(inst *Instruction, v byte) {
	addr := cpu.address(inst)
	v &= byte(cpu.base>>8) + 1
	if (addr & 0xff00) != (cpu.base & 0xff00) {
		addr = uint16(v)<<8 | (addr & 0x00ff)
	}
	cpu.write(addr, v)
}
