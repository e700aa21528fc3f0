// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// Interrupt identifies an interrupt sequence run by the CPU.
type Interrupt byte

const (
	InterruptNone  Interrupt = iota // no interrupt, an instruction executed
	InterruptReset                  // reset sequence
	InterruptNMI                    // non-maskable interrupt
	InterruptIRQ                    // maskable interrupt request
)

var interruptNames = []string{"none", "reset", "NMI", "IRQ"}

func (i Interrupt) String() string {
	return interruptNames[i]
}

// InterruptState describes the interrupt controller as seen from the next
// instruction boundary.
type InterruptState byte

const (
	StateIdle       InterruptState = iota // nothing pending or being handled
	StateNMIPending                       // an NMI edge is latched
	StateIRQPending                       // the IRQ line is asserted
	StateInService                        // a handler has not yet executed RTI
)

var interruptStateNames = []string{"idle", "NMI pending", "IRQ pending", "in service"}

func (s InterruptState) String() string {
	return interruptStateNames[s]
}

// Every interrupt sequence, including reset and BRK, takes 7 cycles.
const interruptCycles = 7

// AssertReset requests a reset. The reset sequence runs at the next
// instruction boundary, preempting any other pending interrupt.
func (cpu *CPU) AssertReset() {
	cpu.resetPending = true
}

// AssertNMI latches a non-maskable interrupt request. The request stays
// pending until it is serviced.
func (cpu *CPU) AssertNMI() {
	cpu.nmiPending = true
}

// SetNMILine sets the level of the NMI input. An NMI is latched on each
// transition from inactive to active.
func (cpu *CPU) SetNMILine(active bool) {
	if active && !cpu.nmiLine {
		cpu.nmiPending = true
	}
	cpu.nmiLine = active
}

// SetIRQLine sets the level of the IRQ input. An IRQ is serviced at an
// instruction boundary for as long as the line is active and the interrupt
// disable flag is clear.
func (cpu *CPU) SetIRQLine(active bool) {
	cpu.irqLine = active
}

// InterruptState returns the current state of the interrupt controller. A
// halted CPU services nothing but reset, so it always reports StateIdle.
func (cpu *CPU) InterruptState() InterruptState {
	switch {
	case cpu.halted:
		return StateIdle
	case cpu.nmiPending:
		return StateNMIPending
	case cpu.irqLine:
		return StateIRQPending
	case cpu.inService > 0:
		return StateInService
	default:
		return StateIdle
	}
}

// Reset runs the reset sequence immediately. The program counter is loaded
// from the reset vector and the cycle counter restarts.
func (cpu *CPU) Reset() {
	cpu.Cycles += uint64(cpu.serviceInterrupt(InterruptReset))
}

// Determine which interrupt, if any, should be serviced at this instruction
// boundary.
func (cpu *CPU) pendingInterrupt() Interrupt {
	switch {
	case cpu.resetPending:
		return InterruptReset
	case cpu.halted:
		return InterruptNone
	case cpu.nmiPending:
		return InterruptNMI
	case cpu.irqLine && !cpu.Reg.InterruptDisable:
		return InterruptIRQ
	default:
		return InterruptNone
	}
}

// Run the interrupt sequence for 'i' and return the cycles it consumed.
func (cpu *CPU) serviceInterrupt(i Interrupt) int {
	cpu.LastPC = cpu.Reg.PC

	switch i {
	case InterruptReset:
		cpu.resetPending = false
		cpu.nmiPending = false
		cpu.halted = false
		cpu.inService = 0
		cpu.Cycles = 0
		cpu.interrupt(vectorReset, false, false)

	case InterruptNMI:
		cpu.nmiPending = false
		cpu.interrupt(vectorNMI, false, false)
		cpu.inService++

	case InterruptIRQ:
		cpu.interrupt(vectorIRQ, false, false)
		cpu.inService++
	}

	return interruptCycles
}

// Enter an interrupt handler: push the program counter and status flags on
// the stack, then load the program counter from the vector. BRK passes
// advancePC to skip its padding byte; hardware interrupts instead spend two
// cycles re-reading the next opcode. Reset performs the stack accesses as
// reads.
func (cpu *CPU) interrupt(vector uint16, brk bool, advancePC bool) {
	if advancePC {
		cpu.Reg.PC++
	} else {
		cpu.read(cpu.Reg.PC)
		cpu.read(cpu.Reg.PC)
	}

	if vector == vectorReset {
		for i := 0; i < 3; i++ {
			cpu.peekStack()
			cpu.Reg.SP--
		}
		cpu.Reg.SP = initialSP
	} else {
		cpu.pushAddress(cpu.Reg.PC)
		cpu.push(cpu.Reg.SavePS(brk))
	}

	cpu.Reg.InterruptDisable = true
	cpu.Reg.PC = cpu.readAddress(vector)
}
