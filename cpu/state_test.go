package cpu_test

import (
	"errors"
	"testing"

	"github.com/beevik/go2a03/cpu"
)

func TestStateRoundTrip(t *testing.T) {
	c, _ := loadInterruptCPU()
	c.Reg.A, c.Reg.X, c.Reg.Y = 0x11, 0x22, 0x33
	c.Reg.Carry = true
	c.Reg.Overflow = true
	c.SetNMILine(true)
	c.SetIRQLine(true)
	stepCPU(c, 2)

	s := c.Snapshot()
	b, err := s.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}

	var s2 cpu.State
	if err := s2.UnmarshalBinary(b); err != nil {
		t.Fatal(err)
	}
	if s2 != s {
		t.Errorf("state round trip incorrect.\nexp: %+v\ngot: %+v", s, s2)
	}
}

func TestStateRestore(t *testing.T) {
	c1, bus := loadInterruptCPU()
	c1.Reg.InterruptDisable = false
	stepCPU(c1, 1)
	saved := c1.Snapshot()

	c1.SetIRQLine(true)
	stepCPU(c1, 3)
	want := c1.Reg

	c2 := cpu.NewCPU(cpu.NMOS, bus)
	c2.Restore(saved)
	if c2.Arch != cpu.Ricoh2A03 || c2.InstSet.Arch != cpu.Ricoh2A03 {
		t.Errorf("architecture not restored")
	}
	c2.SetIRQLine(true)
	stepCPU(c2, 3)
	if c2.Reg != want {
		t.Errorf("restored CPU diverged.\nexp: %+v\ngot: %+v", want, c2.Reg)
	}
}

func TestStateSize(t *testing.T) {
	var s cpu.State
	err := s.UnmarshalBinary(make([]byte, 3))
	if !errors.Is(err, cpu.ErrStateSize) {
		t.Errorf("expected ErrStateSize, got %v", err)
	}
}
