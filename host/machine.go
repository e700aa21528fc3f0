// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/beevik/go2a03/cpu"
)

// Length of the memory image stored after the CPU state in a state file.
const memorySize = 0x10000

var errStateFile = errors.New("not a state file")

func (h *Host) cmdInterruptReset(c selection) error {
	h.cpu.Reset()
	h.printf("CPU reset. PC=$%04X.\n", h.cpu.Reg.PC)
	h.settings.NextDisasmAddr = h.cpu.Reg.PC
	return nil
}

func (h *Host) cmdInterruptNMI(c selection) error {
	h.cpu.AssertNMI()
	h.println("NMI latched.")
	return nil
}

func (h *Host) cmdInterruptIRQ(c selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c)
		return nil
	}

	on, err := onOff(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	h.cpu.SetIRQLine(on)
	if on {
		h.println("IRQ line asserted.")
	} else {
		h.println("IRQ line released.")
	}
	return nil
}

func (h *Host) cmdInterruptStatus(c selection) error {
	h.printf("State:     %v\n", h.cpu.InterruptState())
	h.printf("I flag:    %v\n", h.cpu.Reg.InterruptDisable)
	h.printf("NMI:       $%04X\n", cpu.ReadAddress(h.mem, 0xfffa))
	h.printf("RESET:     $%04X\n", cpu.ReadAddress(h.mem, 0xfffc))
	h.printf("IRQ/BRK:   $%04X\n", cpu.ReadAddress(h.mem, 0xfffe))

	var brk []string
	for _, i := range []cpu.Interrupt{cpu.InterruptReset, cpu.InterruptNMI, cpu.InterruptIRQ} {
		if h.debugger.BreaksOnInterrupt(i) {
			brk = append(brk, i.String())
		}
	}
	if len(brk) > 0 {
		h.printf("Break on:  %s\n", strings.Join(brk, " "))
	}
	return nil
}

func (h *Host) cmdInterruptBreak(c selection) error {
	if len(c.Args) < 2 {
		h.displayUsage(c)
		return nil
	}

	var i cpu.Interrupt
	switch strings.ToLower(c.Args[0]) {
	case "reset":
		i = cpu.InterruptReset
	case "nmi":
		i = cpu.InterruptNMI
	case "irq":
		i = cpu.InterruptIRQ
	default:
		h.printf("Unknown interrupt '%s'.\n", c.Args[0])
		return nil
	}

	on, err := onOff(c.Args[1])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	h.debugger.BreakOnInterrupt(i, on)
	if on {
		h.printf("Break on %v enabled.\n", i)
	} else {
		h.printf("Break on %v disabled.\n", i)
	}
	return nil
}

func (h *Host) cmdStateSave(c selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c)
		return nil
	}

	if err := h.SaveState(c.Args[0]); err != nil {
		h.printf("Failed to save state: %v\n", err)
		return nil
	}
	h.printf("State saved to '%s'.\n", c.Args[0])
	return nil
}

func (h *Host) cmdStateLoad(c selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c)
		return nil
	}

	if err := h.LoadState(c.Args[0]); err != nil {
		h.printf("Failed to load state: %v\n", err)
		return nil
	}
	h.printf("State loaded from '%s'.\n", c.Args[0])
	h.settings.NextDisasmAddr = h.cpu.Reg.PC
	h.displayPC()
	return nil
}

// SaveState writes the CPU state followed by the full contents of memory
// to a file.
func (h *Host) SaveState(filename string) error {
	b, err := h.cpu.Snapshot().MarshalBinary()
	if err != nil {
		return err
	}

	mem := make([]byte, memorySize)
	h.mem.LoadBytes(0, mem)
	return os.WriteFile(filename, append(b, mem...), 0o644)
}

// LoadState restores a CPU and memory image written by SaveState.
func (h *Host) LoadState(filename string) error {
	b, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	if len(b) <= memorySize {
		return errStateFile
	}

	n := len(b) - memorySize
	var s cpu.State
	if err := s.UnmarshalBinary(b[:n]); err != nil {
		return fmt.Errorf("%w: %w", errStateFile, err)
	}

	h.cpu.Restore(s)
	h.mem.StoreBytes(0, b[n:])
	return nil
}

func onOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	return stringToBool(s)
}
