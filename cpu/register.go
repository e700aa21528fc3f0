// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// Registers contains the state of all 2A03 registers. The break flag has no
// storage here; it exists only in copies of the processor status pushed to
// the stack.
type Registers struct {
	A                byte   // accumulator
	X                byte   // X index
	Y                byte   // Y index
	SP               byte   // stack offset into page $01
	PC               uint16 // address of the next opcode fetch
	Carry            bool   // C
	Zero             bool   // Z
	InterruptDisable bool   // I: masks the IRQ line
	Decimal          bool   // D: stored and pushed, BCD only on NMOS
	Overflow         bool   // V
	Sign             bool   // N
}

// Bit positions in the packed processor status byte.
const (
	CarryBit            = 1 << 0
	ZeroBit             = 1 << 1
	InterruptDisableBit = 1 << 2
	DecimalBit          = 1 << 3
	BreakBit            = 1 << 4
	ReservedBit         = 1 << 5
	OverflowBit         = 1 << 6
	SignBit             = 1 << 7
)

// Stack pointer value after power-on or reset.
const initialSP = 0xfd

// statusFlags pairs each stored status flag with its bit in the packed
// processor status byte.
func (r *Registers) statusFlags() [6]struct {
	bit  byte
	flag *bool
} {
	return [6]struct {
		bit  byte
		flag *bool
	}{
		{CarryBit, &r.Carry},
		{ZeroBit, &r.Zero},
		{InterruptDisableBit, &r.InterruptDisable},
		{DecimalBit, &r.Decimal},
		{OverflowBit, &r.Overflow},
		{SignBit, &r.Sign},
	}
}

// SavePS returns the processor status byte as PHP, BRK and the interrupt
// sequences push it. Bit 5 always reads as 1. Bit 4 is 1 only for PHP and
// BRK, which pass brk=true.
func (r *Registers) SavePS(brk bool) byte {
	ps := byte(ReservedBit)
	if brk {
		ps |= BreakBit
	}
	for _, f := range r.statusFlags() {
		if *f.flag {
			ps |= f.bit
		}
	}
	return ps
}

// RestorePS loads the six stored flags from a status byte pulled by PLP or
// RTI. Bits 4 and 5 have no storage in the CPU and are dropped.
func (r *Registers) RestorePS(ps byte) {
	for _, f := range r.statusFlags() {
		*f.flag = ps&f.bit != 0
	}
}

// Init puts the registers in their power-on state. Everything is zero except
// SP, which starts at $FD, and the I flag, which starts set.
func (r *Registers) Init() {
	*r = Registers{SP: initialSP, InterruptDisable: true}
}

func boolToUint32(v bool) uint32 {
	if v {
		return 1
	}
	return 0
}

func boolToByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}
