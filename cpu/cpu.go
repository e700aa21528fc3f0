// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cpu implements a cycle-accurate emulation of the 6502 core found
// in the Ricoh 2A03, including its unofficial opcodes and dummy bus
// accesses.
package cpu

import "fmt"

// Architecture selects the CPU chip: the Ricoh 2A03 or a stock NMOS 6502.
type Architecture byte

const (
	// Ricoh 2A03, with decimal mode disabled
	Ricoh2A03 Architecture = iota

	// NMOS 6502, with decimal mode ADC and SBC
	NMOS
)

// CPU represents a single 2A03 CPU. It issues all memory accesses through
// the attached bus.
type CPU struct {
	Arch         Architecture    // CPU architecture
	Reg          Registers       // CPU registers
	Bus          Bus             // attached bus
	Cycles       uint64          // total executed CPU cycles since reset
	LastPC       uint16          // Previous program counter
	InstSet      *InstructionSet // Instruction set used by the CPU
	pageCrossed  bool
	deltaCycles  int8
	base         uint16 // unindexed address of the last indexed operand
	halted       bool
	resetPending bool
	nmiLine      bool
	nmiPending   bool
	irqLine      bool
	inService    int
	debugger     *Debugger
	storeByte    func(cpu *CPU, addr uint16, v byte)
}

// StepResult describes the outcome of a single call to Step.
type StepResult struct {
	Cycles    int       // CPU cycles consumed by the step
	Interrupt Interrupt // interrupt sequence run instead of an instruction
	Halted    bool      // the CPU is locked up by a KIL opcode
	Reg       Registers // register contents after the step
}

// Interrupt vectors
const (
	vectorNMI   = 0xfffa
	vectorReset = 0xfffc
	vectorIRQ   = 0xfffe
	vectorBRK   = 0xfffe
)

// NewCPU creates an emulated CPU bound to the specified bus. The registers
// hold their power-on values; call Reset to load the program counter from
// the reset vector.
func NewCPU(arch Architecture, bus Bus) *CPU {
	cpu := &CPU{
		Arch:      arch,
		Bus:       bus,
		InstSet:   GetInstructionSet(arch),
		storeByte: (*CPU).storeByteNormal,
	}

	cpu.Reg.Init()
	return cpu
}

// SetPC updates the CPU program counter to 'addr'.
func (cpu *CPU) SetPC(addr uint16) {
	cpu.Reg.PC = addr
}

// GetInstruction returns the instruction at the requested address. The
// opcode is read through the bus, so callers attached to a bus with read
// side effects (I/O registers) should decode from their own memory view.
func (cpu *CPU) GetInstruction(addr uint16) *Instruction {
	opcode := cpu.Bus.Read(addr)
	return cpu.InstSet.Lookup(opcode)
}

// NextAddr returns the address of the next instruction following the
// instruction at addr. Like GetInstruction it reads through the bus.
func (cpu *CPU) NextAddr(addr uint16) uint16 {
	inst := cpu.GetInstruction(addr)
	return addr + uint16(inst.Length)
}

// Halted returns true if the CPU executed a KIL opcode and has not been
// reset since.
func (cpu *CPU) Halted() bool {
	return cpu.halted
}

// Step the cpu by one instruction, or by one interrupt sequence if an
// interrupt is pending at this instruction boundary.
func (cpu *CPU) Step() StepResult {
	var r StepResult

	switch i := cpu.pendingInterrupt(); {
	case i != InterruptNone:
		r.Interrupt = i
		r.Cycles = cpu.serviceInterrupt(i)

	case cpu.halted:
		// A locked-up CPU leaves the bus alone but the clock keeps
		// running.
		r.Cycles = 1

	default:
		r.Cycles = cpu.execute()
	}

	cpu.Cycles += uint64(r.Cycles)
	r.Halted = cpu.halted
	r.Reg = cpu.Reg

	// Update the debugger so it can handle breakpoints.
	if cpu.debugger != nil {
		cpu.debugger.onStep(cpu, &r)
	}
	return r
}

// Fetch, decode and execute the instruction at PC. Return the number of
// cycles consumed.
func (cpu *CPU) execute() int {
	cpu.LastPC = cpu.Reg.PC
	opcode := cpu.fetch()
	inst := cpu.InstSet.Lookup(opcode)

	cpu.pageCrossed = false
	cpu.deltaCycles = 0

	// Single-byte instructions read the following byte and discard it.
	if inst.Mode == IMP || inst.Mode == ACC {
		cpu.read(cpu.Reg.PC)
	}

	inst.fn(cpu, inst)

	cycles := int(inst.Cycles) + int(cpu.deltaCycles)
	if cpu.pageCrossed {
		cycles += int(inst.BPCycles)
	}
	return cycles
}

// AttachDebugger attaches a debugger to the CPU. The debugger receives
// notifications whenever the CPU executes an instruction or stores a byte
// to memory.
func (cpu *CPU) AttachDebugger(debugger *Debugger) {
	cpu.debugger = debugger
	cpu.storeByte = (*CPU).storeByteDebugger
}

// DetachDebugger detaches the currently debugger from the CPU.
func (cpu *CPU) DetachDebugger() {
	cpu.debugger = nil
	cpu.storeByte = (*CPU).storeByteNormal
}

// String returns a one-line trace of the CPU state.
func (cpu *CPU) String() string {
	r := &cpu.Reg
	return fmt.Sprintf("A:%02X X:%02X Y:%02X P:%02X SP:%02X PC:%04X CYC:%d",
		r.A, r.X, r.Y, r.SavePS(false), r.SP, r.PC, cpu.Cycles)
}

// Read a byte from the bus.
func (cpu *CPU) read(addr uint16) byte {
	return cpu.Bus.Read(addr)
}

// Write a byte to the bus.
func (cpu *CPU) write(addr uint16, v byte) {
	cpu.storeByte(cpu, addr, v)
}

// Store the byte value 'v' at the address 'addr'.
func (cpu *CPU) storeByteNormal(addr uint16, v byte) {
	cpu.Bus.Write(addr, v)
}

// Store the byte value 'v' at the address 'addr', notifying the debugger.
func (cpu *CPU) storeByteDebugger(addr uint16, v byte) {
	cpu.debugger.onDataStore(cpu, addr, v)
	cpu.Bus.Write(addr, v)
}

// Read the byte at PC and advance PC.
func (cpu *CPU) fetch() byte {
	v := cpu.read(cpu.Reg.PC)
	cpu.Reg.PC++
	return v
}

// Read a 16-bit little-endian operand at PC and advance PC past it.
func (cpu *CPU) fetchAddress() uint16 {
	lo := cpu.fetch()
	hi := cpu.fetch()
	return uint16(lo) | uint16(hi)<<8
}

// Read a 16-bit little-endian value from the bus.
func (cpu *CPU) readAddress(addr uint16) uint16 {
	lo := cpu.read(addr)
	hi := cpu.read(addr + 1)
	return uint16(lo) | uint16(hi)<<8
}

// Push a value 'v' onto the stack.
func (cpu *CPU) push(v byte) {
	cpu.write(stackAddress(cpu.Reg.SP), v)
	cpu.Reg.SP--
}

// Push the address 'addr' onto the stack.
func (cpu *CPU) pushAddress(addr uint16) {
	cpu.push(byte(addr >> 8))
	cpu.push(byte(addr))
}

// Pop a value from the stack and return it.
func (cpu *CPU) pop() byte {
	cpu.Reg.SP++
	return cpu.read(stackAddress(cpu.Reg.SP))
}

// Pop a 16-bit address off the stack.
func (cpu *CPU) popAddress() uint16 {
	lo := cpu.pop()
	hi := cpu.pop()
	return uint16(lo) | (uint16(hi) << 8)
}

// Read the top of the stack without popping it.
func (cpu *CPU) peekStack() {
	cpu.read(stackAddress(cpu.Reg.SP))
}

// Execute a branch if 'cond' is true, using the relative operand at PC.
func (cpu *CPU) branch(cond bool) {
	offset := cpu.fetch()
	if !cond {
		return
	}

	cpu.read(cpu.Reg.PC)
	oldPC := cpu.Reg.PC
	cpu.Reg.PC = oldPC + uint16(int8(offset))
	cpu.deltaCycles++

	if ((cpu.Reg.PC ^ oldPC) & 0xff00) != 0 {
		cpu.read((oldPC & 0xff00) | (cpu.Reg.PC & 0x00ff))
		cpu.deltaCycles++
	}
}

// Update the Zero and Negative flags based on the value of 'v'.
func (cpu *CPU) updateNZ(v byte) {
	cpu.Reg.Zero = (v == 0)
	cpu.Reg.Sign = ((v & 0x80) != 0)
}

// Binary add with carry. Used by ADC, SBC and their unofficial variants.
func (cpu *CPU) add(v byte) {
	acc := uint32(cpu.Reg.A)
	add := uint32(v)
	r := acc + add + boolToUint32(cpu.Reg.Carry)

	cpu.Reg.Carry = (r >= 0x100)
	cpu.Reg.Overflow = ((acc^r)&(add^r)&0x80 != 0)
	cpu.Reg.A = byte(r)
	cpu.updateNZ(cpu.Reg.A)
}

// Add with carry honoring the decimal flag (NMOS 6502 only).
func (cpu *CPU) addDecimal(v byte) {
	if !cpu.Reg.Decimal {
		cpu.add(v)
		return
	}

	acc := uint32(cpu.Reg.A)
	add := uint32(v)
	carry := boolToUint32(cpu.Reg.Carry)

	lo := (acc & 0x0f) + (add & 0x0f) + carry

	var carrylo uint32
	if lo >= 0x0a {
		carrylo = 0x10
		lo -= 0x0a
	}

	hi := (acc & 0xf0) + (add & 0xf0) + carrylo

	if hi >= 0xa0 {
		cpu.Reg.Carry = true
		hi -= 0xa0
	} else {
		cpu.Reg.Carry = false
	}

	r := (hi & 0xf0) | (lo & 0x0f)
	cpu.Reg.Overflow = ((acc^r)&0x80) != 0 && ((acc^add)&0x80) == 0
	cpu.Reg.A = byte(r)
	cpu.updateNZ(cpu.Reg.A)
}

// Subtract with borrow honoring the decimal flag (NMOS 6502 only).
func (cpu *CPU) subDecimal(v byte) {
	if !cpu.Reg.Decimal {
		cpu.add(^v)
		return
	}

	acc := uint32(cpu.Reg.A)
	sub := uint32(v)
	carry := boolToUint32(cpu.Reg.Carry)

	lo := 0x0f + (acc & 0x0f) - (sub & 0x0f) + carry

	var carrylo uint32
	if lo < 0x10 {
		lo -= 0x06
	} else {
		lo -= 0x10
		carrylo = 0x10
	}

	hi := 0xf0 + (acc & 0xf0) - (sub & 0xf0) + carrylo

	if hi < 0x100 {
		cpu.Reg.Carry = false
		hi -= 0x60
	} else {
		cpu.Reg.Carry = true
		hi -= 0x100
	}

	r := (hi & 0xf0) | (lo & 0x0f)
	cpu.Reg.Overflow = ((acc^r)&0x80) != 0 && ((acc^sub)&0x80) != 0
	cpu.Reg.A = byte(r)
	cpu.updateNZ(cpu.Reg.A)
}

// Compare a register against a value.
func (cpu *CPU) compare(reg, v byte) {
	cpu.Reg.Carry = (reg >= v)
	cpu.updateNZ(reg - v)
}

// Add with carry
func (cpu *CPU) adc(inst *Instruction) {
	cpu.add(cpu.load(inst))
}

// Add with carry (NMOS)
func (cpu *CPU) adcn(inst *Instruction) {
	cpu.addDecimal(cpu.load(inst))
}

// Boolean AND
func (cpu *CPU) and(inst *Instruction) {
	cpu.Reg.A &= cpu.load(inst)
	cpu.updateNZ(cpu.Reg.A)
}

// Arithmetic Shift Left
func (cpu *CPU) asl(inst *Instruction) {
	addr, v := cpu.loadModify(inst)
	cpu.Reg.Carry = ((v & 0x80) == 0x80)
	v = v << 1
	cpu.updateNZ(v)
	cpu.storeModify(inst, addr, v)
}

// Branch if Carry Clear
func (cpu *CPU) bcc(inst *Instruction) {
	cpu.branch(!cpu.Reg.Carry)
}

// Branch if Carry Set
func (cpu *CPU) bcs(inst *Instruction) {
	cpu.branch(cpu.Reg.Carry)
}

// Branch if EQual (to zero)
func (cpu *CPU) beq(inst *Instruction) {
	cpu.branch(cpu.Reg.Zero)
}

// Bit Test
func (cpu *CPU) bit(inst *Instruction) {
	v := cpu.load(inst)
	cpu.Reg.Zero = ((v & cpu.Reg.A) == 0)
	cpu.Reg.Sign = ((v & 0x80) != 0)
	cpu.Reg.Overflow = ((v & 0x40) != 0)
}

// Branch if MInus (negative)
func (cpu *CPU) bmi(inst *Instruction) {
	cpu.branch(cpu.Reg.Sign)
}

// Branch if Not Equal (not zero)
func (cpu *CPU) bne(inst *Instruction) {
	cpu.branch(!cpu.Reg.Zero)
}

// Branch if PLus (positive)
func (cpu *CPU) bpl(inst *Instruction) {
	cpu.branch(!cpu.Reg.Sign)
}

// Break. The byte after the opcode was already read as padding.
func (cpu *CPU) brk(inst *Instruction) {
	cpu.interrupt(vectorBRK, true, true)
	cpu.inService++
}

// Branch if oVerflow Clear
func (cpu *CPU) bvc(inst *Instruction) {
	cpu.branch(!cpu.Reg.Overflow)
}

// Branch if oVerflow Set
func (cpu *CPU) bvs(inst *Instruction) {
	cpu.branch(cpu.Reg.Overflow)
}

// Clear Carry flag
func (cpu *CPU) clc(inst *Instruction) {
	cpu.Reg.Carry = false
}

// Clear Decimal flag
func (cpu *CPU) cld(inst *Instruction) {
	cpu.Reg.Decimal = false
}

// Clear InterruptDisable flag
func (cpu *CPU) cli(inst *Instruction) {
	cpu.Reg.InterruptDisable = false
}

// Clear oVerflow flag
func (cpu *CPU) clv(inst *Instruction) {
	cpu.Reg.Overflow = false
}

// Compare to accumulator
func (cpu *CPU) cmp(inst *Instruction) {
	cpu.compare(cpu.Reg.A, cpu.load(inst))
}

// Compare to X register
func (cpu *CPU) cpx(inst *Instruction) {
	cpu.compare(cpu.Reg.X, cpu.load(inst))
}

// Compare to Y register
func (cpu *CPU) cpy(inst *Instruction) {
	cpu.compare(cpu.Reg.Y, cpu.load(inst))
}

// Decrement memory value
func (cpu *CPU) dec(inst *Instruction) {
	addr, v := cpu.loadModify(inst)
	v--
	cpu.updateNZ(v)
	cpu.storeModify(inst, addr, v)
}

// Decrement X register
func (cpu *CPU) dex(inst *Instruction) {
	cpu.Reg.X--
	cpu.updateNZ(cpu.Reg.X)
}

// Decrement Y register
func (cpu *CPU) dey(inst *Instruction) {
	cpu.Reg.Y--
	cpu.updateNZ(cpu.Reg.Y)
}

// Boolean XOR
func (cpu *CPU) eor(inst *Instruction) {
	cpu.Reg.A ^= cpu.load(inst)
	cpu.updateNZ(cpu.Reg.A)
}

// Increment memory value
func (cpu *CPU) inc(inst *Instruction) {
	addr, v := cpu.loadModify(inst)
	v++
	cpu.updateNZ(v)
	cpu.storeModify(inst, addr, v)
}

// Increment X register
func (cpu *CPU) inx(inst *Instruction) {
	cpu.Reg.X++
	cpu.updateNZ(cpu.Reg.X)
}

// Increment Y register
func (cpu *CPU) iny(inst *Instruction) {
	cpu.Reg.Y++
	cpu.updateNZ(cpu.Reg.Y)
}

// Jump to memory address. JMP ($12FF) loads the target's MSB from $1200.
func (cpu *CPU) jmp(inst *Instruction) {
	cpu.Reg.PC = cpu.address(inst)
}

// Jump to subroutine. The target's MSB is fetched after the return address
// is pushed.
func (cpu *CPU) jsr(inst *Instruction) {
	lo := cpu.fetch()
	cpu.peekStack()
	cpu.pushAddress(cpu.Reg.PC)
	hi := cpu.read(cpu.Reg.PC)
	cpu.Reg.PC = uint16(lo) | uint16(hi)<<8
}

// load Accumulator
func (cpu *CPU) lda(inst *Instruction) {
	cpu.Reg.A = cpu.load(inst)
	cpu.updateNZ(cpu.Reg.A)
}

// load the X register
func (cpu *CPU) ldx(inst *Instruction) {
	cpu.Reg.X = cpu.load(inst)
	cpu.updateNZ(cpu.Reg.X)
}

// load the Y register
func (cpu *CPU) ldy(inst *Instruction) {
	cpu.Reg.Y = cpu.load(inst)
	cpu.updateNZ(cpu.Reg.Y)
}

// Logical Shift Right
func (cpu *CPU) lsr(inst *Instruction) {
	addr, v := cpu.loadModify(inst)
	cpu.Reg.Carry = ((v & 1) == 1)
	v = v >> 1
	cpu.updateNZ(v)
	cpu.storeModify(inst, addr, v)
}

// No-operation. Variants with an operand still read it.
func (cpu *CPU) nop(inst *Instruction) {
	if inst.Mode != IMP {
		cpu.load(inst)
	}
}

// Boolean OR
func (cpu *CPU) ora(inst *Instruction) {
	cpu.Reg.A |= cpu.load(inst)
	cpu.updateNZ(cpu.Reg.A)
}

// Push Accumulator
func (cpu *CPU) pha(inst *Instruction) {
	cpu.push(cpu.Reg.A)
}

// Push Processor flags
func (cpu *CPU) php(inst *Instruction) {
	cpu.push(cpu.Reg.SavePS(true))
}

// Pull (pop) Accumulator
func (cpu *CPU) pla(inst *Instruction) {
	cpu.peekStack()
	cpu.Reg.A = cpu.pop()
	cpu.updateNZ(cpu.Reg.A)
}

// Pull (pop) Processor flags
func (cpu *CPU) plp(inst *Instruction) {
	cpu.peekStack()
	cpu.Reg.RestorePS(cpu.pop())
}

// Rotate Left
func (cpu *CPU) rol(inst *Instruction) {
	addr, tmp := cpu.loadModify(inst)
	v := (tmp << 1) | boolToByte(cpu.Reg.Carry)
	cpu.Reg.Carry = ((tmp & 0x80) != 0)
	cpu.updateNZ(v)
	cpu.storeModify(inst, addr, v)
}

// Rotate Right
func (cpu *CPU) ror(inst *Instruction) {
	addr, tmp := cpu.loadModify(inst)
	v := (tmp >> 1) | (boolToByte(cpu.Reg.Carry) << 7)
	cpu.Reg.Carry = ((tmp & 1) != 0)
	cpu.updateNZ(v)
	cpu.storeModify(inst, addr, v)
}

// Return from Interrupt
func (cpu *CPU) rti(inst *Instruction) {
	cpu.peekStack()
	cpu.Reg.RestorePS(cpu.pop())
	cpu.Reg.PC = cpu.popAddress()
	if cpu.inService > 0 {
		cpu.inService--
	}
}

// Return from Subroutine
func (cpu *CPU) rts(inst *Instruction) {
	cpu.peekStack()
	addr := cpu.popAddress()
	cpu.read(addr)
	cpu.Reg.PC = addr + 1
}

// Subtract with Carry
func (cpu *CPU) sbc(inst *Instruction) {
	cpu.add(^cpu.load(inst))
}

// Subtract with Carry (NMOS)
func (cpu *CPU) sbcn(inst *Instruction) {
	cpu.subDecimal(cpu.load(inst))
}

// Set Carry flag
func (cpu *CPU) sec(inst *Instruction) {
	cpu.Reg.Carry = true
}

// Set Decimal flag
func (cpu *CPU) sed(inst *Instruction) {
	cpu.Reg.Decimal = true
}

// Set InterruptDisable flag
func (cpu *CPU) sei(inst *Instruction) {
	cpu.Reg.InterruptDisable = true
}

// Store Accumulator
func (cpu *CPU) sta(inst *Instruction) {
	cpu.store(inst, cpu.Reg.A)
}

// Store X register
func (cpu *CPU) stx(inst *Instruction) {
	cpu.store(inst, cpu.Reg.X)
}

// Store Y register
func (cpu *CPU) sty(inst *Instruction) {
	cpu.store(inst, cpu.Reg.Y)
}

// Transfer Accumulator to X register
func (cpu *CPU) tax(inst *Instruction) {
	cpu.Reg.X = cpu.Reg.A
	cpu.updateNZ(cpu.Reg.X)
}

// Transfer Accumulator to Y register
func (cpu *CPU) tay(inst *Instruction) {
	cpu.Reg.Y = cpu.Reg.A
	cpu.updateNZ(cpu.Reg.Y)
}

// Transfer Stack pointer to X register
func (cpu *CPU) tsx(inst *Instruction) {
	cpu.Reg.X = cpu.Reg.SP
	cpu.updateNZ(cpu.Reg.X)
}

// Transfer X register to Accumulator
func (cpu *CPU) txa(inst *Instruction) {
	cpu.Reg.A = cpu.Reg.X
	cpu.updateNZ(cpu.Reg.A)
}

// Transfer X register to the Stack pointer
func (cpu *CPU) txs(inst *Instruction) {
	cpu.Reg.SP = cpu.Reg.X
}

// Transfer Y register to the Accumulator
func (cpu *CPU) tya(inst *Instruction) {
	cpu.Reg.A = cpu.Reg.Y
	cpu.updateNZ(cpu.Reg.A)
}
