package cpu_test

import (
	"testing"

	"github.com/beevik/go2a03/cpu"
)

func loadInterruptCPU() (*cpu.CPU, *recordingBus) {
	c, bus := loadCPU(0x1000, 0xea, 0xea, 0xea) // NOP x3
	setVector(bus, 0xfffa, 0x4000)              // NMI
	setVector(bus, 0xfffc, 0x8000)              // reset
	setVector(bus, 0xfffe, 0x3000)              // IRQ/BRK
	bus.StoreBytes(0x3000, []byte{0x40})        // RTI
	bus.StoreBytes(0x4000, []byte{0x40})        // RTI
	bus.StoreBytes(0x8000, []byte{0xea})        // NOP
	return c, bus
}

func expectInterruptState(t *testing.T, c *cpu.CPU, s cpu.InterruptState) {
	t.Helper()
	if got := c.InterruptState(); got != s {
		t.Errorf("interrupt state incorrect. exp: %v, got: %v", s, got)
	}
}

func TestReset(t *testing.T) {
	c, bus := loadInterruptCPU()
	c.Reg.A = 0x05
	c.Reg.SP = 0x20
	c.Reg.InterruptDisable = false
	c.Cycles = 100

	c.Reset()
	expectPC(t, c, 0x8000)
	expectSP(t, c, 0xfd)
	expectACC(t, c, 0x05)
	expectCycles(t, c, 7)
	expectFlag(t, "interrupt disable", c.Reg.InterruptDisable, true)
	expectAccesses(t, bus,
		rd(0x1000), rd(0x1000), rd(0x0120), rd(0x011f), rd(0x011e), rd(0xfffc), rd(0xfffd))
}

func TestAssertReset(t *testing.T) {
	c, _ := loadInterruptCPU()
	c.AssertReset()

	r := c.Step()
	if r.Interrupt != cpu.InterruptReset || r.Cycles != 7 {
		t.Errorf("expected reset sequence, got %v in %d cycles", r.Interrupt, r.Cycles)
	}
	expectPC(t, c, 0x8000)
	expectCycles(t, c, 7)
}

func TestIRQ(t *testing.T) {
	c, bus := loadInterruptCPU()
	c.Reg.InterruptDisable = false
	c.SetIRQLine(true)

	r := c.Step()
	if r.Interrupt != cpu.InterruptIRQ || r.Cycles != 7 {
		t.Errorf("expected IRQ sequence, got %v in %d cycles", r.Interrupt, r.Cycles)
	}
	expectPC(t, c, 0x3000)
	expectSP(t, c, 0xfa)
	expectFlag(t, "interrupt disable", c.Reg.InterruptDisable, true)
	expectAccesses(t, bus,
		rd(0x1000), rd(0x1000),
		wr(0x01fd, 0x10), wr(0x01fc, 0x00), wr(0x01fb, cpu.ReservedBit),
		rd(0xfffe), rd(0xffff))
	expectInterruptState(t, c, cpu.StateIRQPending)

	c.SetIRQLine(false)
	expectInterruptState(t, c, cpu.StateInService)

	r = c.Step()
	if r.Cycles != 6 {
		t.Errorf("RTI cycles incorrect. exp: 6, got: %d", r.Cycles)
	}
	expectPC(t, c, 0x1000)
	expectSP(t, c, 0xfd)
	expectFlag(t, "interrupt disable", c.Reg.InterruptDisable, false)
	expectInterruptState(t, c, cpu.StateIdle)
}

func TestIRQMasked(t *testing.T) {
	c, _ := loadInterruptCPU()
	c.SetIRQLine(true)

	r := c.Step()
	if r.Interrupt != cpu.InterruptNone {
		t.Errorf("masked IRQ was serviced")
	}
	expectPC(t, c, 0x1001)
	expectInterruptState(t, c, cpu.StateIRQPending)
}

func TestIRQLevelTriggered(t *testing.T) {
	c, _ := loadInterruptCPU()
	c.Reg.InterruptDisable = false
	c.SetIRQLine(true)

	c.Step() // IRQ entry
	c.Step() // RTI restores I=0 with the line still active

	r := c.Step()
	if r.Interrupt != cpu.InterruptIRQ {
		t.Errorf("asserted IRQ line was not serviced again")
	}
}

func TestNMIEdge(t *testing.T) {
	c, bus := loadInterruptCPU()
	c.SetNMILine(true)
	expectInterruptState(t, c, cpu.StateNMIPending)

	r := c.Step()
	if r.Interrupt != cpu.InterruptNMI {
		t.Errorf("expected NMI sequence, got %v", r.Interrupt)
	}
	expectPC(t, c, 0x4000)
	expectMem(t, bus, 0x01fb, cpu.ReservedBit|cpu.InterruptDisableBit)
	expectInterruptState(t, c, cpu.StateInService)

	// Holding the line does not trigger another NMI.
	c.SetNMILine(true)
	r = c.Step()
	if r.Interrupt != cpu.InterruptNone {
		t.Errorf("NMI retriggered without an edge")
	}
	expectPC(t, c, 0x1000)

	c.SetNMILine(false)
	c.SetNMILine(true)
	r = c.Step()
	if r.Interrupt != cpu.InterruptNMI {
		t.Errorf("expected NMI after a new edge, got %v", r.Interrupt)
	}
}

func TestInterruptPriority(t *testing.T) {
	c, _ := loadInterruptCPU()
	c.Reg.InterruptDisable = false
	c.SetIRQLine(true)
	c.AssertNMI()

	r := c.Step()
	if r.Interrupt != cpu.InterruptNMI {
		t.Errorf("NMI should preempt IRQ, got %v", r.Interrupt)
	}

	// The NMI handler runs with interrupts disabled.
	r = c.Step()
	if r.Interrupt != cpu.InterruptNone {
		t.Errorf("IRQ serviced inside NMI handler")
	}

	c.AssertNMI()
	c.AssertReset()
	r = c.Step()
	if r.Interrupt != cpu.InterruptReset {
		t.Errorf("reset should preempt NMI, got %v", r.Interrupt)
	}
	expectInterruptState(t, c, cpu.StateIRQPending)

	c.SetIRQLine(false)
	expectInterruptState(t, c, cpu.StateIdle)
}

func TestBRK(t *testing.T) {
	c, bus := loadInterruptCPU()
	bus.StoreBytes(0x1000, []byte{0x00, 0xff}) // BRK

	r := c.Step()
	if r.Interrupt != cpu.InterruptNone || r.Cycles != 7 {
		t.Errorf("BRK incorrect: %v in %d cycles", r.Interrupt, r.Cycles)
	}
	expectPC(t, c, 0x3000)
	expectMem(t, bus, 0x01fd, 0x10)
	expectMem(t, bus, 0x01fc, 0x02)
	expectMem(t, bus, 0x01fb, cpu.ReservedBit|cpu.BreakBit|cpu.InterruptDisableBit)
	expectInterruptState(t, c, cpu.StateInService)

	c.Step()
	expectPC(t, c, 0x1002)
	expectInterruptState(t, c, cpu.StateIdle)
}

func TestKIL(t *testing.T) {
	c, bus := loadInterruptCPU()
	bus.StoreBytes(0x1000, []byte{0x02})

	r := c.Step()
	if !r.Halted || r.Cycles != 2 {
		t.Errorf("KIL incorrect: halted=%v in %d cycles", r.Halted, r.Cycles)
	}
	expectPC(t, c, 0x1000)

	bus.log = nil
	c.AssertNMI()
	c.Reg.InterruptDisable = false
	c.SetIRQLine(true)
	for i := 0; i < 3; i++ {
		r = c.Step()
		if !r.Halted || r.Cycles != 1 || r.Interrupt != cpu.InterruptNone {
			t.Errorf("halted step incorrect: %+v", r)
		}
	}
	if len(bus.log) != 0 {
		t.Errorf("halted CPU accessed the bus: %v", bus.log)
	}
	expectPC(t, c, 0x1000)
	expectCycles(t, c, 5)
	expectInterruptState(t, c, cpu.StateIdle)

	c.AssertReset()
	r = c.Step()
	if r.Halted || r.Interrupt != cpu.InterruptReset {
		t.Errorf("reset did not recover from KIL: %+v", r)
	}
	if c.Halted() {
		t.Errorf("CPU still halted after reset")
	}
	expectPC(t, c, 0x8000)
}
