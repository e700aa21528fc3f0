// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrStateSize is returned when unmarshaling a CPU state from a buffer of
// the wrong length.
var ErrStateSize = errors.New("cpu: invalid state size")

// State holds everything needed to resume the CPU at an instruction
// boundary. It does not include the contents of the bus.
type State struct {
	Arch         Architecture
	Reg          Registers
	Cycles       uint64
	LastPC       uint16
	Halted       bool
	ResetPending bool
	NMILine      bool
	NMIPending   bool
	IRQLine      bool
	InService    uint16
}

// Length of a marshaled State in bytes.
const stateSize = 1 + 7 + 8 + 2 + 1 + 2

// Bits of the marshaled state's flags byte.
const (
	stateHalted = 1 << iota
	stateResetPending
	stateNMILine
	stateNMIPending
	stateIRQLine
)

// Snapshot captures the CPU state.
func (cpu *CPU) Snapshot() State {
	return State{
		Arch:         cpu.Arch,
		Reg:          cpu.Reg,
		Cycles:       cpu.Cycles,
		LastPC:       cpu.LastPC,
		Halted:       cpu.halted,
		ResetPending: cpu.resetPending,
		NMILine:      cpu.nmiLine,
		NMIPending:   cpu.nmiPending,
		IRQLine:      cpu.irqLine,
		InService:    uint16(cpu.inService),
	}
}

// Restore returns the CPU to a previously captured state. The instruction
// set is switched to match the state's architecture.
func (cpu *CPU) Restore(s State) {
	cpu.Arch = s.Arch
	cpu.InstSet = GetInstructionSet(s.Arch)
	cpu.Reg = s.Reg
	cpu.Cycles = s.Cycles
	cpu.LastPC = s.LastPC
	cpu.halted = s.Halted
	cpu.resetPending = s.ResetPending
	cpu.nmiLine = s.NMILine
	cpu.nmiPending = s.NMIPending
	cpu.irqLine = s.IRQLine
	cpu.inService = int(s.InService)
}

// MarshalBinary encodes the state as a fixed-size little-endian record.
func (s State) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, stateSize)
	b = append(b, byte(s.Arch))
	b = append(b, s.Reg.A, s.Reg.X, s.Reg.Y, s.Reg.SP)
	b = binary.LittleEndian.AppendUint16(b, s.Reg.PC)
	b = append(b, s.Reg.SavePS(false))
	b = binary.LittleEndian.AppendUint64(b, s.Cycles)
	b = binary.LittleEndian.AppendUint16(b, s.LastPC)

	var flags byte
	if s.Halted {
		flags |= stateHalted
	}
	if s.ResetPending {
		flags |= stateResetPending
	}
	if s.NMILine {
		flags |= stateNMILine
	}
	if s.NMIPending {
		flags |= stateNMIPending
	}
	if s.IRQLine {
		flags |= stateIRQLine
	}
	b = append(b, flags)
	b = binary.LittleEndian.AppendUint16(b, s.InService)
	return b, nil
}

// UnmarshalBinary decodes a state produced by MarshalBinary.
func (s *State) UnmarshalBinary(b []byte) error {
	if len(b) != stateSize {
		return ErrStateSize
	}
	if b[0] > byte(NMOS) {
		return fmt.Errorf("cpu: invalid architecture %d", b[0])
	}

	s.Arch = Architecture(b[0])
	s.Reg.A, s.Reg.X, s.Reg.Y, s.Reg.SP = b[1], b[2], b[3], b[4]
	s.Reg.PC = binary.LittleEndian.Uint16(b[5:])
	s.Reg.RestorePS(b[7])
	s.Cycles = binary.LittleEndian.Uint64(b[8:])
	s.LastPC = binary.LittleEndian.Uint16(b[16:])

	flags := b[18]
	s.Halted = (flags & stateHalted) != 0
	s.ResetPending = (flags & stateResetPending) != 0
	s.NMILine = (flags & stateNMILine) != 0
	s.NMIPending = (flags & stateNMIPending) != 0
	s.IRQLine = (flags & stateIRQLine) != 0
	s.InService = binary.LittleEndian.Uint16(b[19:])
	return nil
}
