// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// The Bus interface presents the system's address space to the CPU. Every
// CPU cycle performs exactly one Read or Write, in the order the hardware
// would issue them. Implementations may attach side effects to any address
// (memory-mapped registers), so the CPU never reads or writes speculatively.
type Bus interface {
	// Read loads a single byte from the address and returns it.
	Read(addr uint16) byte

	// Write stores a byte to the requested address.
	Write(addr uint16, v byte)
}

// FlatMemory represents an entire 16-bit address space as a singular
// 64K buffer of RAM with no side effects.
type FlatMemory struct {
	b [64 * 1024]byte
}

// NewFlatMemory creates a new 16-bit memory space.
func NewFlatMemory() *FlatMemory {
	return &FlatMemory{}
}

// Read loads a single byte from the address and returns it.
func (m *FlatMemory) Read(addr uint16) byte {
	return m.b[addr]
}

// Write stores a byte at the requested address.
func (m *FlatMemory) Write(addr uint16, v byte) {
	m.b[addr] = v
}

// LoadBytes copies memory starting at the address into the buffer 'b'.
// Bytes past the end of the address space are returned as zero.
func (m *FlatMemory) LoadBytes(addr uint16, b []byte) {
	n := copy(b, m.b[addr:])
	clear(b[n:])
}

// StoreBytes stores multiple bytes to the requested address. Bytes that
// would fall past the end of the address space are dropped.
func (m *FlatMemory) StoreBytes(addr uint16, b []byte) {
	copy(m.b[addr:], b)
}

// ReadAddress reads a little-endian 16-bit value from the bus.
func ReadAddress(bus Bus, addr uint16) uint16 {
	lo := bus.Read(addr)
	hi := bus.Read(addr + 1)
	return uint16(lo) | uint16(hi)<<8
}

// Return the offset address 'addr' + 'offset'. If the offset
// crossed a page boundary, return 'pageCrossed' as true.
func offsetAddress(addr uint16, offset byte) (newAddr uint16, pageCrossed bool) {
	newAddr = addr + uint16(offset)
	pageCrossed = ((newAddr & 0xff00) != (addr & 0xff00))
	return newAddr, pageCrossed
}

// Offset a zero-page address by 'offset', wrapping within the zero page.
func offsetZeroPage(addr byte, offset byte) uint16 {
	return uint16(addr + offset)
}

// Given a 1-byte stack pointer register, return the corresponding stack
// memory address.
func stackAddress(offset byte) uint16 {
	return uint16(0x100) + uint16(offset)
}
