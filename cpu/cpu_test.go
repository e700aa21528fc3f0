package cpu_test

import (
	"fmt"
	"testing"

	"github.com/beevik/go2a03/cpu"
)

// A busAccess records a single bus cycle.
type busAccess struct {
	addr  uint16
	v     byte
	write bool
}

func (a busAccess) String() string {
	if a.write {
		return fmt.Sprintf("W $%04X=$%02X", a.addr, a.v)
	}
	return fmt.Sprintf("R $%04X", a.addr)
}

func rd(addr uint16) busAccess {
	return busAccess{addr: addr}
}

func wr(addr uint16, v byte) busAccess {
	return busAccess{addr: addr, v: v, write: true}
}

// recordingBus is flat memory that logs every access made by the CPU.
type recordingBus struct {
	*cpu.FlatMemory
	log []busAccess
}

func (b *recordingBus) Read(addr uint16) byte {
	b.log = append(b.log, rd(addr))
	return b.FlatMemory.Read(addr)
}

func (b *recordingBus) Write(addr uint16, v byte) {
	b.log = append(b.log, wr(addr, v))
	b.FlatMemory.Write(addr, v)
}

func newTestCPU(arch cpu.Architecture) (*cpu.CPU, *recordingBus) {
	bus := &recordingBus{FlatMemory: cpu.NewFlatMemory()}
	return cpu.NewCPU(arch, bus), bus
}

func loadCPU(origin uint16, code ...byte) (*cpu.CPU, *recordingBus) {
	c, bus := newTestCPU(cpu.Ricoh2A03)
	bus.StoreBytes(origin, code)
	c.SetPC(origin)
	return c, bus
}

func stepCPU(c *cpu.CPU, steps int) {
	for i := 0; i < steps; i++ {
		c.Step()
	}
}

func setVector(bus *recordingBus, vector, addr uint16) {
	bus.StoreBytes(vector, []byte{byte(addr), byte(addr >> 8)})
}

func expectPC(t *testing.T, c *cpu.CPU, pc uint16) {
	t.Helper()
	if c.Reg.PC != pc {
		t.Errorf("PC incorrect. exp: $%04X, got: $%04X", pc, c.Reg.PC)
	}
}

func expectCycles(t *testing.T, c *cpu.CPU, cycles uint64) {
	t.Helper()
	if c.Cycles != cycles {
		t.Errorf("Cycles incorrect. exp: %d, got: %d", cycles, c.Cycles)
	}
}

func expectACC(t *testing.T, c *cpu.CPU, acc byte) {
	t.Helper()
	if c.Reg.A != acc {
		t.Errorf("Accumulator incorrect. exp: $%02X, got: $%02X", acc, c.Reg.A)
	}
}

func expectSP(t *testing.T, c *cpu.CPU, sp byte) {
	t.Helper()
	if c.Reg.SP != sp {
		t.Errorf("stack pointer incorrect. exp: $%02X, got $%02X", sp, c.Reg.SP)
	}
}

func expectMem(t *testing.T, bus *recordingBus, addr uint16, v byte) {
	t.Helper()
	got := bus.FlatMemory.Read(addr)
	if got != v {
		t.Errorf("Memory at $%04X incorrect. exp: $%02X, got: $%02X", addr, v, got)
	}
}

func expectFlag(t *testing.T, name string, got, exp bool) {
	t.Helper()
	if got != exp {
		t.Errorf("%s flag incorrect. exp: %v, got: %v", name, exp, got)
	}
}

func expectAccesses(t *testing.T, bus *recordingBus, exp ...busAccess) {
	t.Helper()
	if len(bus.log) != len(exp) {
		t.Errorf("bus accesses incorrect. exp: %v, got: %v", exp, bus.log)
		return
	}
	for i := range exp {
		if bus.log[i] != exp[i] {
			t.Errorf("bus access %d incorrect. exp: %v, got: %v", i, exp[i], bus.log[i])
		}
	}
}

func TestPowerOn(t *testing.T) {
	c, _ := newTestCPU(cpu.Ricoh2A03)
	c.SetPC(0x1234)

	exp := "A:00 X:00 Y:00 P:24 SP:FD PC:1234 CYC:0"
	if got := c.String(); got != exp {
		t.Errorf("trace incorrect. exp: %q, got: %q", exp, got)
	}
}

func TestAccumulator(t *testing.T) {
	c, bus := loadCPU(0x1000,
		0xa9, 0x5e, // LDA #$5E
		0x85, 0x15, // STA $15
		0x8d, 0x00, 0x15, // STA $1500
	)
	stepCPU(c, 3)

	expectPC(t, c, 0x1007)
	expectCycles(t, c, 9)
	expectACC(t, c, 0x5e)
	expectMem(t, bus, 0x15, 0x5e)
	expectMem(t, bus, 0x1500, 0x5e)
}

func TestStack(t *testing.T) {
	c, bus := loadCPU(0x1000,
		0xa9, 0x11, // LDA #$11
		0x48,       // PHA
		0xa9, 0x12, // LDA #$12
		0x48,       // PHA
		0xa9, 0x13, // LDA #$13
		0x48,             // PHA
		0x68,             // PLA
		0x8d, 0x00, 0x20, // STA $2000
		0x68,             // PLA
		0x8d, 0x01, 0x20, // STA $2001
		0x68,             // PLA
		0x8d, 0x02, 0x20, // STA $2002
	)

	stepCPU(c, 6)
	expectSP(t, c, 0xfa)
	expectACC(t, c, 0x13)
	expectMem(t, bus, 0x1fd, 0x11)
	expectMem(t, bus, 0x1fc, 0x12)
	expectMem(t, bus, 0x1fb, 0x13)

	stepCPU(c, 6)
	expectACC(t, c, 0x11)
	expectSP(t, c, 0xfd)
	expectMem(t, bus, 0x2000, 0x13)
	expectMem(t, bus, 0x2001, 0x12)
	expectMem(t, bus, 0x2002, 0x11)
}

func TestStackWrap(t *testing.T) {
	c, bus := loadCPU(0x1000, 0x48, 0x68) // PHA, PLA
	c.Reg.SP = 0x00
	c.Reg.A = 0x42

	c.Step()
	expectSP(t, c, 0xff)
	expectMem(t, bus, 0x0100, 0x42)

	c.Reg.A = 0
	c.Step()
	expectSP(t, c, 0x00)
	expectACC(t, c, 0x42)
}

func TestIndirect(t *testing.T) {
	c, bus := loadCPU(0x1000,
		0xa2, 0x80, // LDX #$80
		0xa0, 0x40, // LDY #$40
		0xa9, 0xee, // LDA #$EE
		0x9d, 0x00, 0x20, // STA $2000,X
		0x99, 0x00, 0x20, // STA $2000,Y
		0xa9, 0x11, // LDA #$11
		0x85, 0x06, // STA $06
		0xa9, 0x05, // LDA #$05
		0x85, 0x07, // STA $07
		0xa2, 0x01, // LDX #$01
		0xa0, 0x01, // LDY #$01
		0xa9, 0xbb, // LDA #$BB
		0x81, 0x05, // STA ($05,X)
		0x91, 0x06, // STA ($06),Y
	)
	stepCPU(c, 14)

	expectMem(t, bus, 0x2080, 0xee)
	expectMem(t, bus, 0x2040, 0xee)
	expectMem(t, bus, 0x0511, 0xbb)
	expectMem(t, bus, 0x0512, 0xbb)
}

func TestPageCross(t *testing.T) {
	c, bus := loadCPU(0x1000,
		0xa9, 0x55, // LDA #$55        2 cycles
		0x8d, 0x01, 0x11, // STA $1101 4 cycles
		0xa9, 0x00, // LDA #$00        2 cycles
		0xa2, 0xff, // LDX #$FF        2 cycles
		0xbd, 0x02, 0x10, // LDA $1002,X 5 cycles
	)
	stepCPU(c, 4)
	bus.log = nil
	c.Step()

	expectPC(t, c, 0x100c)
	expectCycles(t, c, 15)
	expectACC(t, c, 0x55)
	expectMem(t, bus, 0x1101, 0x55)
	expectAccesses(t, bus,
		rd(0x1009), rd(0x100a), rd(0x100b), rd(0x1001), rd(0x1101))
}

func TestIndexedStoreDummyRead(t *testing.T) {
	c, bus := loadCPU(0x1000, 0x9d, 0x00, 0x20) // STA $2000,X
	c.Reg.A = 0x77
	c.Reg.X = 0x01

	r := c.Step()
	if r.Cycles != 5 {
		t.Errorf("cycles incorrect. exp: 5, got: %d", r.Cycles)
	}
	expectAccesses(t, bus,
		rd(0x1000), rd(0x1001), rd(0x1002), rd(0x2001), wr(0x2001, 0x77))
}

func TestReadModifyWrite(t *testing.T) {
	c, bus := loadCPU(0x1000, 0xe6, 0x10) // INC $10
	bus.StoreBytes(0x10, []byte{0x41})

	r := c.Step()
	if r.Cycles != 5 {
		t.Errorf("cycles incorrect. exp: 5, got: %d", r.Cycles)
	}
	expectAccesses(t, bus,
		rd(0x1000), rd(0x1001), rd(0x0010), wr(0x0010, 0x41), wr(0x0010, 0x42))
}

func TestZeroPageWrap(t *testing.T) {
	c, bus := loadCPU(0x1000, 0xb5, 0xf0) // LDA $F0,X
	c.Reg.X = 0x20
	bus.StoreBytes(0x0010, []byte{0x99})
	bus.StoreBytes(0x0110, []byte{0x11})

	c.Step()
	expectACC(t, c, 0x99)
	expectCycles(t, c, 4)
	expectAccesses(t, bus, rd(0x1000), rd(0x1001), rd(0x00f0), rd(0x0010))
}

func TestIndexedIndirectWrap(t *testing.T) {
	c, bus := loadCPU(0x1000, 0xa1, 0xff) // LDA ($FF,X)
	bus.StoreBytes(0x00ff, []byte{0x34})
	bus.StoreBytes(0x0000, []byte{0x12})
	bus.StoreBytes(0x1234, []byte{0xab})

	c.Step()
	expectACC(t, c, 0xab)
	expectCycles(t, c, 6)
}

func TestJMPIndirectBug(t *testing.T) {
	c, bus := loadCPU(0x1000, 0x6c, 0xff, 0x12) // JMP ($12FF)
	bus.StoreBytes(0x12ff, []byte{0x34})
	bus.StoreBytes(0x1200, []byte{0x56})
	bus.StoreBytes(0x1300, []byte{0x78})

	c.Step()
	expectPC(t, c, 0x5634)
	expectCycles(t, c, 5)
}

func TestJSRRTS(t *testing.T) {
	c, bus := loadCPU(0x1000, 0x20, 0x00, 0x20) // JSR $2000
	bus.StoreBytes(0x2000, []byte{0x60})        // RTS

	c.Step()
	expectPC(t, c, 0x2000)
	expectSP(t, c, 0xfb)
	expectCycles(t, c, 6)
	expectMem(t, bus, 0x1fd, 0x10)
	expectMem(t, bus, 0x1fc, 0x02)
	expectAccesses(t, bus,
		rd(0x1000), rd(0x1001), rd(0x01fd), wr(0x01fd, 0x10), wr(0x01fc, 0x02), rd(0x1002))

	c.Step()
	expectPC(t, c, 0x1003)
	expectSP(t, c, 0xfd)
	expectCycles(t, c, 12)
}

func TestBranchCycles(t *testing.T) {
	tests := []struct {
		origin uint16
		code   []byte
		carry  bool
		pc     uint16
		cycles int
	}{
		{0x1000, []byte{0xb0, 0x10}, false, 0x1002, 2}, // BCS not taken
		{0x1000, []byte{0x90, 0x02}, false, 0x1004, 3}, // BCC taken
		{0x10f0, []byte{0x90, 0x20}, false, 0x1112, 4}, // BCC taken across page
		{0x1000, []byte{0x90, 0xfc}, false, 0x0ffe, 4}, // BCC backward across page
		{0x1000, []byte{0xb0, 0xfe}, true, 0x1000, 3},  // BCS to self
		{0x20ee, []byte{0x90, 0x05}, false, 0x20f5, 3}, // $20F0 -> $20F5
		{0x20ee, []byte{0x90, 0x15}, false, 0x2105, 4}, // $20F0 -> $2105
	}

	for i, tc := range tests {
		c, _ := loadCPU(tc.origin, tc.code...)
		c.Reg.Carry = tc.carry

		r := c.Step()
		if r.Cycles != tc.cycles {
			t.Errorf("case %d: cycles incorrect. exp: %d, got: %d", i, tc.cycles, r.Cycles)
		}
		expectPC(t, c, tc.pc)
	}
}

func TestBranchDummyReads(t *testing.T) {
	c, bus := loadCPU(0x10f0, 0x90, 0x20) // BCC +$20
	c.Step()
	expectAccesses(t, bus, rd(0x10f0), rd(0x10f1), rd(0x10f2), rd(0x1012))
}

func TestImpliedDummyRead(t *testing.T) {
	c, bus := loadCPU(0x1000, 0xe8) // INX
	c.Step()
	expectAccesses(t, bus, rd(0x1000), rd(0x1001))
}

func TestADCBinary(t *testing.T) {
	for _, decimal := range []bool{false, true} {
		mem := cpu.NewFlatMemory()
		c := cpu.NewCPU(cpu.Ricoh2A03, mem)
		for a := 0; a < 256; a++ {
			for v := 0; v < 256; v++ {
				for carry := 0; carry < 2; carry++ {
					mem.StoreBytes(0x0200, []byte{0x69, byte(v)}) // ADC #v
					c.SetPC(0x0200)
					c.Reg.A = byte(a)
					c.Reg.Carry = carry == 1
					c.Reg.Decimal = decimal
					c.Step()

					sum := a + v + carry
					r := byte(sum)
					expOverflow := (a^int(r))&(v^int(r))&0x80 != 0
					if c.Reg.A != r || c.Reg.Carry != (sum > 0xff) ||
						c.Reg.Overflow != expOverflow || c.Reg.Zero != (r == 0) ||
						c.Reg.Sign != (r&0x80 != 0) {
						t.Fatalf("ADC $%02X+$%02X+%d incorrect: %s", a, v, carry, c)
					}
				}
			}
		}
	}
}

func TestSBCBinary(t *testing.T) {
	for _, decimal := range []bool{false, true} {
		mem := cpu.NewFlatMemory()
		c := cpu.NewCPU(cpu.Ricoh2A03, mem)
		for a := 0; a < 256; a++ {
			for v := 0; v < 256; v++ {
				for carry := 0; carry < 2; carry++ {
					mem.StoreBytes(0x0200, []byte{0xe9, byte(v)}) // SBC #v
					c.SetPC(0x0200)
					c.Reg.A = byte(a)
					c.Reg.Carry = carry == 1
					c.Reg.Decimal = decimal
					c.Step()

					diff := a - v - (1 - carry)
					r := byte(diff)
					expOverflow := (a^v)&(a^int(r))&0x80 != 0
					if c.Reg.A != r || c.Reg.Carry != (diff >= 0) ||
						c.Reg.Overflow != expOverflow || c.Reg.Zero != (r == 0) ||
						c.Reg.Sign != (r&0x80 != 0) {
						t.Fatalf("SBC $%02X-$%02X-%d incorrect: %s", a, v, 1-carry, c)
					}
				}
			}
		}
	}
}

func TestUnofficialArithmeticIgnoresDecimal(t *testing.T) {
	tests := []struct {
		code   []byte
		a, m   byte
		carry  bool
		result byte
		mem    byte
		expC   bool
	}{
		{[]byte{0xe7, 0x10}, 0x42, 0x13, true, 0x2e, 0x14, true},   // ISC $10
		{[]byte{0x67, 0x10}, 0x15, 0x4e, false, 0x3c, 0x27, false}, // RRA $10
	}

	for i, tc := range tests {
		c, bus := loadCPU(0x1000, tc.code...)
		bus.FlatMemory.Write(0x10, tc.m)
		c.Reg.A = tc.a
		c.Reg.Carry = tc.carry
		c.Reg.Decimal = true

		c.Step()
		if c.Reg.A != tc.result || c.Reg.Carry != tc.expC {
			t.Errorf("case %d: exp A=$%02X C=%v, got A=$%02X C=%v",
				i, tc.result, tc.expC, c.Reg.A, c.Reg.Carry)
		}
		expectMem(t, bus, 0x10, tc.mem)
	}
}

func TestNMOSDecimal(t *testing.T) {
	tests := []struct {
		op     byte
		a, v   byte
		carry  bool
		result byte
		expC   bool
	}{
		{0x69, 0x15, 0x27, false, 0x42, false}, // ADC
		{0x69, 0x99, 0x01, false, 0x00, true},
		{0x69, 0x58, 0x46, true, 0x05, true},
		{0xe9, 0x42, 0x13, true, 0x29, true}, // SBC
		{0xe9, 0x00, 0x01, true, 0x99, false},
		{0xe9, 0x46, 0x12, false, 0x33, true},
	}

	for i, tc := range tests {
		c, bus := newTestCPU(cpu.NMOS)
		bus.StoreBytes(0x0200, []byte{tc.op, tc.v})
		c.SetPC(0x0200)
		c.Reg.A = tc.a
		c.Reg.Carry = tc.carry
		c.Reg.Decimal = true

		c.Step()
		if c.Reg.A != tc.result || c.Reg.Carry != tc.expC {
			t.Errorf("case %d: exp A=$%02X C=%v, got A=$%02X C=%v",
				i, tc.result, tc.expC, c.Reg.A, c.Reg.Carry)
		}
	}
}

func TestStatusRegister(t *testing.T) {
	var r cpu.Registers
	for i := 0; i < 256; i++ {
		r.RestorePS(byte(i))

		exp := (byte(i) | cpu.ReservedBit) &^ cpu.BreakBit
		if got := r.SavePS(false); got != exp {
			t.Errorf("SavePS($%02X) incorrect. exp: $%02X, got: $%02X", i, exp, got)
		}
		if got := r.SavePS(true); got != exp|cpu.BreakBit {
			t.Errorf("SavePS($%02X, brk) incorrect. exp: $%02X, got: $%02X", i, exp|cpu.BreakBit, got)
		}
	}
}

func TestPHPPLP(t *testing.T) {
	c, bus := loadCPU(0x1000, 0x08, 0x28) // PHP, PLP
	c.Reg.Carry = true
	c.Reg.Sign = true

	c.Step()
	expectMem(t, bus, 0x1fd, cpu.SignBit|cpu.ReservedBit|cpu.BreakBit|cpu.InterruptDisableBit|cpu.CarryBit)

	c.Reg.Carry = false
	c.Reg.Sign = false
	c.Step()
	expectFlag(t, "carry", c.Reg.Carry, true)
	expectFlag(t, "sign", c.Reg.Sign, true)
	expectCycles(t, c, 7)
}

func TestInstructionSet(t *testing.T) {
	for _, arch := range []cpu.Architecture{cpu.Ricoh2A03, cpu.NMOS} {
		set := cpu.GetInstructionSet(arch)

		var unofficial, halts int
		for op := 0; op < 256; op++ {
			inst := set.Lookup(byte(op))
			if inst.Opcode != byte(op) {
				t.Errorf("opcode $%02X stored as $%02X", op, inst.Opcode)
			}
			if inst.Unofficial {
				unofficial++
			}
			if inst.Halts {
				halts++
			}
		}
		if unofficial != 105 {
			t.Errorf("unofficial opcodes incorrect. exp: 105, got: %d", unofficial)
		}
		if halts != 12 {
			t.Errorf("halting opcodes incorrect. exp: 12, got: %d", halts)
		}
		if n := len(set.GetInstructions("lda")); n != 8 {
			t.Errorf("LDA variants incorrect. exp: 8, got: %d", n)
		}
		if n := len(set.GetInstructions("SBC")); n != 9 {
			t.Errorf("SBC variants incorrect. exp: 9, got: %d", n)
		}
	}
}

// Every cycle performs exactly one bus access, so the number of accesses
// made by an instruction must match the cycles it reports.
func TestBusAccessPerCycle(t *testing.T) {
	for _, arch := range []cpu.Architecture{cpu.Ricoh2A03, cpu.NMOS} {
		for _, index := range []byte{0x00, 0xff} {
			for op := 0; op < 256; op++ {
				c, bus := newTestCPU(arch)
				bus.StoreBytes(0x0200, []byte{byte(op), 0x80, 0x12})
				c.SetPC(0x0200)
				c.Reg.X, c.Reg.Y = index, index

				r := c.Step()
				if r.Halted {
					continue
				}
				if len(bus.log) != r.Cycles {
					t.Errorf("opcode $%02X (index $%02X): %d cycles, %d bus accesses",
						op, index, r.Cycles, len(bus.log))
				}
			}
		}
	}
}

func TestStepCycles(t *testing.T) {
	c, _ := loadCPU(0x1000, 0xea, 0xea) // NOP, NOP
	var total uint64
	for i := 0; i < 2; i++ {
		r := c.Step()
		total += uint64(r.Cycles)
		if r.Reg != c.Reg {
			t.Errorf("step result registers differ from CPU registers")
		}
	}
	expectCycles(t, c, total)
}
