package cpu_test

import (
	"testing"

	"github.com/beevik/go2a03/cpu"
)

type regs struct {
	a, x, y byte
	carry   bool
}

func TestUnofficialOpcodes(t *testing.T) {
	tests := []struct {
		name   string
		code   []byte
		in     regs
		mem    byte // initial value at $0010 or $2000
		out    regs
		addr   uint16 // memory location to check
		expMem byte
	}{
		{"LAX zp", []byte{0xa7, 0x10}, regs{}, 0x85, regs{a: 0x85, x: 0x85}, 0x0010, 0x85},
		{"SAX zp", []byte{0x87, 0x10}, regs{a: 0xf0, x: 0x3c}, 0x00, regs{a: 0xf0, x: 0x3c}, 0x0010, 0x30},
		{"DCP zp", []byte{0xc7, 0x10}, regs{a: 0x04}, 0x05, regs{a: 0x04, carry: true}, 0x0010, 0x04},
		{"ISC zp", []byte{0xe7, 0x10}, regs{a: 0x10, carry: true}, 0x04, regs{a: 0x0b, carry: true}, 0x0010, 0x05},
		{"SLO zp", []byte{0x07, 0x10}, regs{a: 0x01}, 0x81, regs{a: 0x03, carry: true}, 0x0010, 0x02},
		{"RLA zp", []byte{0x27, 0x10}, regs{a: 0xff}, 0x81, regs{a: 0x02, carry: true}, 0x0010, 0x02},
		{"SRE zp", []byte{0x47, 0x10}, regs{a: 0xff}, 0x03, regs{a: 0xfe, carry: true}, 0x0010, 0x01},
		{"RRA zp", []byte{0x67, 0x10}, regs{a: 0x10, carry: true}, 0x02, regs{a: 0x91}, 0x0010, 0x81},
		{"ANC imm", []byte{0x0b, 0x80}, regs{a: 0xff}, 0, regs{a: 0x80, carry: true}, 0, 0},
		{"ALR imm", []byte{0x4b, 0x03}, regs{a: 0xff}, 0, regs{a: 0x01, carry: true}, 0, 0},
		{"ARR imm", []byte{0x6b, 0xff}, regs{a: 0xc0, carry: true}, 0, regs{a: 0xe0, carry: true}, 0, 0},
		{"AXS imm", []byte{0xcb, 0x01}, regs{a: 0x0f, x: 0xf3}, 0, regs{a: 0x0f, x: 0x02, carry: true}, 0, 0},
		{"ANE imm", []byte{0x8b, 0xff}, regs{x: 0xff}, 0, regs{a: 0xee, x: 0xff}, 0, 0},
		{"LXA imm", []byte{0xab, 0x0f}, regs{}, 0, regs{a: 0x0e, x: 0x0e}, 0, 0},
		{"SBC imm", []byte{0xeb, 0x01}, regs{a: 0x10, carry: true}, 0, regs{a: 0x0f, carry: true}, 0, 0},
		{"SHY abs,x", []byte{0x9c, 0x00, 0x20}, regs{y: 0x33}, 0x00, regs{y: 0x33}, 0x2000, 0x21},
		{"SHX abs,y", []byte{0x9e, 0x00, 0x20}, regs{x: 0xff, y: 0x01}, 0x00, regs{x: 0xff, y: 0x01}, 0x2001, 0x21},
		{"SHX abs,y page cross", []byte{0x9e, 0xff, 0x20}, regs{x: 0x0f, y: 0x01}, 0x00, regs{x: 0x0f, y: 0x01}, 0x0100, 0x01},
		{"SHA abs,y", []byte{0x9f, 0x00, 0x20}, regs{a: 0xf5, x: 0x0f}, 0x00, regs{a: 0xf5, x: 0x0f}, 0x2000, 0x01},
		{"NOP zp", []byte{0x04, 0x10}, regs{a: 0x42}, 0x99, regs{a: 0x42}, 0x0010, 0x99},
	}

	for _, tc := range tests {
		c, bus := loadCPU(0x1000, tc.code...)
		bus.StoreBytes(0x0010, []byte{tc.mem})
		bus.StoreBytes(0x2000, []byte{tc.mem})
		c.Reg.A, c.Reg.X, c.Reg.Y, c.Reg.Carry = tc.in.a, tc.in.x, tc.in.y, tc.in.carry

		c.Step()

		got := regs{c.Reg.A, c.Reg.X, c.Reg.Y, c.Reg.Carry}
		if got != tc.out {
			t.Errorf("%s: registers incorrect. exp: %+v, got: %+v", tc.name, tc.out, got)
		}
		if tc.addr != 0 {
			if v := bus.FlatMemory.Read(tc.addr); v != tc.expMem {
				t.Errorf("%s: memory at $%04X incorrect. exp: $%02X, got: $%02X",
					tc.name, tc.addr, tc.expMem, v)
			}
		}
	}
}

func TestARROverflow(t *testing.T) {
	c, _ := loadCPU(0x1000, 0x6b, 0xff) // ARR #$FF
	c.Reg.A = 0x40

	c.Step()
	expectACC(t, c, 0x20)
	expectFlag(t, "carry", c.Reg.Carry, false)
	expectFlag(t, "overflow", c.Reg.Overflow, true)
}

func TestLAS(t *testing.T) {
	c, bus := loadCPU(0x1000, 0xbb, 0x00, 0x20) // LAS $2000,Y
	bus.StoreBytes(0x2000, []byte{0xf0})

	c.Step()
	expectACC(t, c, 0xf0)
	expectSP(t, c, 0xf0)
	if c.Reg.X != 0xf0 {
		t.Errorf("X incorrect. exp: $F0, got: $%02X", c.Reg.X)
	}
}

func TestTAS(t *testing.T) {
	c, bus := loadCPU(0x1000, 0x9b, 0x00, 0x20) // TAS $2000,Y
	c.Reg.A = 0xff
	c.Reg.X = 0x7f

	c.Step()
	expectSP(t, c, 0x7f)
	expectMem(t, bus, 0x2000, 0x21)
}

func TestUnofficialRMWCycles(t *testing.T) {
	c, bus := loadCPU(0x1000, 0xd3, 0x10) // DCP ($10),Y
	bus.StoreBytes(0x0010, []byte{0x00, 0x20})
	bus.StoreBytes(0x2005, []byte{0x43})
	c.Reg.Y = 0x05
	c.Reg.A = 0x42

	r := c.Step()
	if r.Cycles != 8 {
		t.Errorf("cycles incorrect. exp: 8, got: %d", r.Cycles)
	}
	expectMem(t, bus, 0x2005, 0x42)
	expectFlag(t, "zero", c.Reg.Zero, true)
	expectAccesses(t, bus,
		rd(0x1000), rd(0x1001), rd(0x0010), rd(0x0011), rd(0x2005),
		rd(0x2005), wr(0x2005, 0x43), wr(0x2005, 0x42))
}

func TestNMOSUnofficialDecimal(t *testing.T) {
	c, bus := newTestCPU(cpu.NMOS)
	bus.StoreBytes(0x1000, []byte{0xe7, 0x10}) // ISC $10
	bus.StoreBytes(0x0010, []byte{0x09})
	c.SetPC(0x1000)
	c.Reg.A = 0x20
	c.Reg.Carry = true
	c.Reg.Decimal = true

	c.Step()
	expectMem(t, bus, 0x0010, 0x0a)
	expectACC(t, c, 0x10)
}
