// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import "strings"

// An opsym is an internal symbol used to associate an opcode's data
// with its instructions.
type opsym byte

const (
	symADC opsym = iota
	symAND
	symASL
	symBCC
	symBCS
	symBEQ
	symBIT
	symBMI
	symBNE
	symBPL
	symBRK
	symBVC
	symBVS
	symCLC
	symCLD
	symCLI
	symCLV
	symCMP
	symCPX
	symCPY
	symDEC
	symDEX
	symDEY
	symEOR
	symINC
	symINX
	symINY
	symJMP
	symJSR
	symLDA
	symLDX
	symLDY
	symLSR
	symNOP
	symORA
	symPHA
	symPHP
	symPLA
	symPLP
	symROL
	symROR
	symRTI
	symRTS
	symSBC
	symSEC
	symSED
	symSEI
	symSTA
	symSTX
	symSTY
	symTAX
	symTAY
	symTSX
	symTXA
	symTXS
	symTYA

	// unofficial
	symALR
	symANC
	symANE
	symARR
	symAXS
	symDCP
	symISC
	symKIL
	symLAS
	symLAX
	symLXA
	symRLA
	symRRA
	symSAX
	symSHA
	symSHX
	symSHY
	symSLO
	symSRE
	symTAS
)

type instfunc func(c *CPU, inst *Instruction)

// How an instruction uses its effective address. The access kind decides
// which dummy reads the indexed addressing modes perform.
type access byte

const (
	accNone   access = iota // no memory operand
	accRead                 // operand is read
	accWrite                // operand is written
	accModify               // operand is read, modified and written back
)

// Emulator implementation for each opcode
type opcodeImpl struct {
	sym  opsym
	name string
	acc  access
	fn   [2]instfunc // Ricoh2A03=0, NMOS=1
}

// same returns an implementation pair that behaves identically on every
// architecture.
func same(fn instfunc) [2]instfunc {
	return [2]instfunc{fn, fn}
}

var impl = []opcodeImpl{
	{symADC, "ADC", accRead, [2]instfunc{(*CPU).adc, (*CPU).adcn}},
	{symAND, "AND", accRead, same((*CPU).and)},
	{symASL, "ASL", accModify, same((*CPU).asl)},
	{symBCC, "BCC", accNone, same((*CPU).bcc)},
	{symBCS, "BCS", accNone, same((*CPU).bcs)},
	{symBEQ, "BEQ", accNone, same((*CPU).beq)},
	{symBIT, "BIT", accRead, same((*CPU).bit)},
	{symBMI, "BMI", accNone, same((*CPU).bmi)},
	{symBNE, "BNE", accNone, same((*CPU).bne)},
	{symBPL, "BPL", accNone, same((*CPU).bpl)},
	{symBRK, "BRK", accNone, same((*CPU).brk)},
	{symBVC, "BVC", accNone, same((*CPU).bvc)},
	{symBVS, "BVS", accNone, same((*CPU).bvs)},
	{symCLC, "CLC", accNone, same((*CPU).clc)},
	{symCLD, "CLD", accNone, same((*CPU).cld)},
	{symCLI, "CLI", accNone, same((*CPU).cli)},
	{symCLV, "CLV", accNone, same((*CPU).clv)},
	{symCMP, "CMP", accRead, same((*CPU).cmp)},
	{symCPX, "CPX", accRead, same((*CPU).cpx)},
	{symCPY, "CPY", accRead, same((*CPU).cpy)},
	{symDEC, "DEC", accModify, same((*CPU).dec)},
	{symDEX, "DEX", accNone, same((*CPU).dex)},
	{symDEY, "DEY", accNone, same((*CPU).dey)},
	{symEOR, "EOR", accRead, same((*CPU).eor)},
	{symINC, "INC", accModify, same((*CPU).inc)},
	{symINX, "INX", accNone, same((*CPU).inx)},
	{symINY, "INY", accNone, same((*CPU).iny)},
	{symJMP, "JMP", accNone, same((*CPU).jmp)},
	{symJSR, "JSR", accNone, same((*CPU).jsr)},
	{symLDA, "LDA", accRead, same((*CPU).lda)},
	{symLDX, "LDX", accRead, same((*CPU).ldx)},
	{symLDY, "LDY", accRead, same((*CPU).ldy)},
	{symLSR, "LSR", accModify, same((*CPU).lsr)},
	{symNOP, "NOP", accRead, same((*CPU).nop)},
	{symORA, "ORA", accRead, same((*CPU).ora)},
	{symPHA, "PHA", accNone, same((*CPU).pha)},
	{symPHP, "PHP", accNone, same((*CPU).php)},
	{symPLA, "PLA", accNone, same((*CPU).pla)},
	{symPLP, "PLP", accNone, same((*CPU).plp)},
	{symROL, "ROL", accModify, same((*CPU).rol)},
	{symROR, "ROR", accModify, same((*CPU).ror)},
	{symRTI, "RTI", accNone, same((*CPU).rti)},
	{symRTS, "RTS", accNone, same((*CPU).rts)},
	{symSBC, "SBC", accRead, [2]instfunc{(*CPU).sbc, (*CPU).sbcn}},
	{symSEC, "SEC", accNone, same((*CPU).sec)},
	{symSED, "SED", accNone, same((*CPU).sed)},
	{symSEI, "SEI", accNone, same((*CPU).sei)},
	{symSTA, "STA", accWrite, same((*CPU).sta)},
	{symSTX, "STX", accWrite, same((*CPU).stx)},
	{symSTY, "STY", accWrite, same((*CPU).sty)},
	{symTAX, "TAX", accNone, same((*CPU).tax)},
	{symTAY, "TAY", accNone, same((*CPU).tay)},
	{symTSX, "TSX", accNone, same((*CPU).tsx)},
	{symTXA, "TXA", accNone, same((*CPU).txa)},
	{symTXS, "TXS", accNone, same((*CPU).txs)},
	{symTYA, "TYA", accNone, same((*CPU).tya)},

	{symALR, "ALR", accRead, same((*CPU).alr)},
	{symANC, "ANC", accRead, same((*CPU).anc)},
	{symANE, "ANE", accRead, same((*CPU).ane)},
	{symARR, "ARR", accRead, same((*CPU).arr)},
	{symAXS, "AXS", accRead, same((*CPU).axs)},
	{symDCP, "DCP", accModify, same((*CPU).dcp)},
	{symISC, "ISC", accModify, [2]instfunc{(*CPU).isc, (*CPU).iscn}},
	{symKIL, "KIL", accNone, same((*CPU).kil)},
	{symLAS, "LAS", accRead, same((*CPU).las)},
	{symLAX, "LAX", accRead, same((*CPU).lax)},
	{symLXA, "LXA", accRead, same((*CPU).lxa)},
	{symRLA, "RLA", accModify, same((*CPU).rla)},
	{symRRA, "RRA", accModify, [2]instfunc{(*CPU).rra, (*CPU).rran}},
	{symSAX, "SAX", accWrite, same((*CPU).sax)},
	{symSHA, "SHA", accWrite, same((*CPU).sha)},
	{symSHX, "SHX", accWrite, same((*CPU).shx)},
	{symSHY, "SHY", accWrite, same((*CPU).shy)},
	{symSLO, "SLO", accModify, same((*CPU).slo)},
	{symSRE, "SRE", accModify, same((*CPU).sre)},
	{symTAS, "TAS", accWrite, same((*CPU).tas)},
}

// Mode describes a memory addressing mode.
type Mode byte

// All possible memory addressing modes
const (
	IMM Mode = iota // Immediate
	IMP             // Implied (no operand)
	REL             // Relative
	ZPG             // Zero Page
	ZPX             // Zero Page,X
	ZPY             // Zero Page,Y
	ABS             // Absolute
	ABX             // Absolute,X
	ABY             // Absolute,Y
	IND             // (Indirect)
	IDX             // (Indirect,X)
	IDY             // (Indirect),Y
	ACC             // Accumulator (no operand)
)

// Opcode data for an (opcode, mode) pair
type opcodeData struct {
	sym        opsym // internal opcode symbol
	mode       Mode  // addressing mode
	opcode     byte  // opcode hex value
	length     byte  // length of opcode + operand in bytes
	cycles     byte  // number of CPU cycles to execute command
	bpcycles   byte  // additional CPU cycles if a read crosses a page boundary
	unofficial bool  // whether the opcode is undocumented
}

// All 256 (opcode, mode) pairs
var data = []opcodeData{
	{symLDA, IMM, 0xa9, 2, 2, 0, false},
	{symLDA, ZPG, 0xa5, 2, 3, 0, false},
	{symLDA, ZPX, 0xb5, 2, 4, 0, false},
	{symLDA, ABS, 0xad, 3, 4, 0, false},
	{symLDA, ABX, 0xbd, 3, 4, 1, false},
	{symLDA, ABY, 0xb9, 3, 4, 1, false},
	{symLDA, IDX, 0xa1, 2, 6, 0, false},
	{symLDA, IDY, 0xb1, 2, 5, 1, false},

	{symLDX, IMM, 0xa2, 2, 2, 0, false},
	{symLDX, ZPG, 0xa6, 2, 3, 0, false},
	{symLDX, ZPY, 0xb6, 2, 4, 0, false},
	{symLDX, ABS, 0xae, 3, 4, 0, false},
	{symLDX, ABY, 0xbe, 3, 4, 1, false},

	{symLDY, IMM, 0xa0, 2, 2, 0, false},
	{symLDY, ZPG, 0xa4, 2, 3, 0, false},
	{symLDY, ZPX, 0xb4, 2, 4, 0, false},
	{symLDY, ABS, 0xac, 3, 4, 0, false},
	{symLDY, ABX, 0xbc, 3, 4, 1, false},

	{symSTA, ZPG, 0x85, 2, 3, 0, false},
	{symSTA, ZPX, 0x95, 2, 4, 0, false},
	{symSTA, ABS, 0x8d, 3, 4, 0, false},
	{symSTA, ABX, 0x9d, 3, 5, 0, false},
	{symSTA, ABY, 0x99, 3, 5, 0, false},
	{symSTA, IDX, 0x81, 2, 6, 0, false},
	{symSTA, IDY, 0x91, 2, 6, 0, false},

	{symSTX, ZPG, 0x86, 2, 3, 0, false},
	{symSTX, ZPY, 0x96, 2, 4, 0, false},
	{symSTX, ABS, 0x8e, 3, 4, 0, false},

	{symSTY, ZPG, 0x84, 2, 3, 0, false},
	{symSTY, ZPX, 0x94, 2, 4, 0, false},
	{symSTY, ABS, 0x8c, 3, 4, 0, false},

	{symADC, IMM, 0x69, 2, 2, 0, false},
	{symADC, ZPG, 0x65, 2, 3, 0, false},
	{symADC, ZPX, 0x75, 2, 4, 0, false},
	{symADC, ABS, 0x6d, 3, 4, 0, false},
	{symADC, ABX, 0x7d, 3, 4, 1, false},
	{symADC, ABY, 0x79, 3, 4, 1, false},
	{symADC, IDX, 0x61, 2, 6, 0, false},
	{symADC, IDY, 0x71, 2, 5, 1, false},

	{symSBC, IMM, 0xe9, 2, 2, 0, false},
	{symSBC, ZPG, 0xe5, 2, 3, 0, false},
	{symSBC, ZPX, 0xf5, 2, 4, 0, false},
	{symSBC, ABS, 0xed, 3, 4, 0, false},
	{symSBC, ABX, 0xfd, 3, 4, 1, false},
	{symSBC, ABY, 0xf9, 3, 4, 1, false},
	{symSBC, IDX, 0xe1, 2, 6, 0, false},
	{symSBC, IDY, 0xf1, 2, 5, 1, false},

	{symCMP, IMM, 0xc9, 2, 2, 0, false},
	{symCMP, ZPG, 0xc5, 2, 3, 0, false},
	{symCMP, ZPX, 0xd5, 2, 4, 0, false},
	{symCMP, ABS, 0xcd, 3, 4, 0, false},
	{symCMP, ABX, 0xdd, 3, 4, 1, false},
	{symCMP, ABY, 0xd9, 3, 4, 1, false},
	{symCMP, IDX, 0xc1, 2, 6, 0, false},
	{symCMP, IDY, 0xd1, 2, 5, 1, false},

	{symCPX, IMM, 0xe0, 2, 2, 0, false},
	{symCPX, ZPG, 0xe4, 2, 3, 0, false},
	{symCPX, ABS, 0xec, 3, 4, 0, false},

	{symCPY, IMM, 0xc0, 2, 2, 0, false},
	{symCPY, ZPG, 0xc4, 2, 3, 0, false},
	{symCPY, ABS, 0xcc, 3, 4, 0, false},

	{symBIT, ZPG, 0x24, 2, 3, 0, false},
	{symBIT, ABS, 0x2c, 3, 4, 0, false},

	{symCLC, IMP, 0x18, 1, 2, 0, false},
	{symSEC, IMP, 0x38, 1, 2, 0, false},
	{symCLI, IMP, 0x58, 1, 2, 0, false},
	{symSEI, IMP, 0x78, 1, 2, 0, false},
	{symCLD, IMP, 0xd8, 1, 2, 0, false},
	{symSED, IMP, 0xf8, 1, 2, 0, false},
	{symCLV, IMP, 0xb8, 1, 2, 0, false},

	{symBCC, REL, 0x90, 2, 2, 0, false},
	{symBCS, REL, 0xb0, 2, 2, 0, false},
	{symBEQ, REL, 0xf0, 2, 2, 0, false},
	{symBNE, REL, 0xd0, 2, 2, 0, false},
	{symBMI, REL, 0x30, 2, 2, 0, false},
	{symBPL, REL, 0x10, 2, 2, 0, false},
	{symBVC, REL, 0x50, 2, 2, 0, false},
	{symBVS, REL, 0x70, 2, 2, 0, false},

	{symBRK, IMP, 0x00, 1, 7, 0, false},

	{symAND, IMM, 0x29, 2, 2, 0, false},
	{symAND, ZPG, 0x25, 2, 3, 0, false},
	{symAND, ZPX, 0x35, 2, 4, 0, false},
	{symAND, ABS, 0x2d, 3, 4, 0, false},
	{symAND, ABX, 0x3d, 3, 4, 1, false},
	{symAND, ABY, 0x39, 3, 4, 1, false},
	{symAND, IDX, 0x21, 2, 6, 0, false},
	{symAND, IDY, 0x31, 2, 5, 1, false},

	{symORA, IMM, 0x09, 2, 2, 0, false},
	{symORA, ZPG, 0x05, 2, 3, 0, false},
	{symORA, ZPX, 0x15, 2, 4, 0, false},
	{symORA, ABS, 0x0d, 3, 4, 0, false},
	{symORA, ABX, 0x1d, 3, 4, 1, false},
	{symORA, ABY, 0x19, 3, 4, 1, false},
	{symORA, IDX, 0x01, 2, 6, 0, false},
	{symORA, IDY, 0x11, 2, 5, 1, false},

	{symEOR, IMM, 0x49, 2, 2, 0, false},
	{symEOR, ZPG, 0x45, 2, 3, 0, false},
	{symEOR, ZPX, 0x55, 2, 4, 0, false},
	{symEOR, ABS, 0x4d, 3, 4, 0, false},
	{symEOR, ABX, 0x5d, 3, 4, 1, false},
	{symEOR, ABY, 0x59, 3, 4, 1, false},
	{symEOR, IDX, 0x41, 2, 6, 0, false},
	{symEOR, IDY, 0x51, 2, 5, 1, false},

	{symINC, ZPG, 0xe6, 2, 5, 0, false},
	{symINC, ZPX, 0xf6, 2, 6, 0, false},
	{symINC, ABS, 0xee, 3, 6, 0, false},
	{symINC, ABX, 0xfe, 3, 7, 0, false},

	{symDEC, ZPG, 0xc6, 2, 5, 0, false},
	{symDEC, ZPX, 0xd6, 2, 6, 0, false},
	{symDEC, ABS, 0xce, 3, 6, 0, false},
	{symDEC, ABX, 0xde, 3, 7, 0, false},

	{symINX, IMP, 0xe8, 1, 2, 0, false},
	{symINY, IMP, 0xc8, 1, 2, 0, false},

	{symDEX, IMP, 0xca, 1, 2, 0, false},
	{symDEY, IMP, 0x88, 1, 2, 0, false},

	{symJMP, ABS, 0x4c, 3, 3, 0, false},
	{symJMP, IND, 0x6c, 3, 5, 0, false},

	{symJSR, ABS, 0x20, 3, 6, 0, false},

	{symRTS, IMP, 0x60, 1, 6, 0, false},

	{symRTI, IMP, 0x40, 1, 6, 0, false},

	{symNOP, IMP, 0xea, 1, 2, 0, false},

	{symTAX, IMP, 0xaa, 1, 2, 0, false},
	{symTXA, IMP, 0x8a, 1, 2, 0, false},
	{symTAY, IMP, 0xa8, 1, 2, 0, false},
	{symTYA, IMP, 0x98, 1, 2, 0, false},
	{symTXS, IMP, 0x9a, 1, 2, 0, false},
	{symTSX, IMP, 0xba, 1, 2, 0, false},

	{symPHA, IMP, 0x48, 1, 3, 0, false},
	{symPLA, IMP, 0x68, 1, 4, 0, false},
	{symPHP, IMP, 0x08, 1, 3, 0, false},
	{symPLP, IMP, 0x28, 1, 4, 0, false},

	{symASL, ACC, 0x0a, 1, 2, 0, false},
	{symASL, ZPG, 0x06, 2, 5, 0, false},
	{symASL, ZPX, 0x16, 2, 6, 0, false},
	{symASL, ABS, 0x0e, 3, 6, 0, false},
	{symASL, ABX, 0x1e, 3, 7, 0, false},

	{symLSR, ACC, 0x4a, 1, 2, 0, false},
	{symLSR, ZPG, 0x46, 2, 5, 0, false},
	{symLSR, ZPX, 0x56, 2, 6, 0, false},
	{symLSR, ABS, 0x4e, 3, 6, 0, false},
	{symLSR, ABX, 0x5e, 3, 7, 0, false},

	{symROL, ACC, 0x2a, 1, 2, 0, false},
	{symROL, ZPG, 0x26, 2, 5, 0, false},
	{symROL, ZPX, 0x36, 2, 6, 0, false},
	{symROL, ABS, 0x2e, 3, 6, 0, false},
	{symROL, ABX, 0x3e, 3, 7, 0, false},

	{symROR, ACC, 0x6a, 1, 2, 0, false},
	{symROR, ZPG, 0x66, 2, 5, 0, false},
	{symROR, ZPX, 0x76, 2, 6, 0, false},
	{symROR, ABS, 0x6e, 3, 6, 0, false},
	{symROR, ABX, 0x7e, 3, 7, 0, false},

	// Unofficial read-modify-write combinations
	{symSLO, ZPG, 0x07, 2, 5, 0, true},
	{symSLO, ZPX, 0x17, 2, 6, 0, true},
	{symSLO, ABS, 0x0f, 3, 6, 0, true},
	{symSLO, ABX, 0x1f, 3, 7, 0, true},
	{symSLO, ABY, 0x1b, 3, 7, 0, true},
	{symSLO, IDX, 0x03, 2, 8, 0, true},
	{symSLO, IDY, 0x13, 2, 8, 0, true},

	{symRLA, ZPG, 0x27, 2, 5, 0, true},
	{symRLA, ZPX, 0x37, 2, 6, 0, true},
	{symRLA, ABS, 0x2f, 3, 6, 0, true},
	{symRLA, ABX, 0x3f, 3, 7, 0, true},
	{symRLA, ABY, 0x3b, 3, 7, 0, true},
	{symRLA, IDX, 0x23, 2, 8, 0, true},
	{symRLA, IDY, 0x33, 2, 8, 0, true},

	{symSRE, ZPG, 0x47, 2, 5, 0, true},
	{symSRE, ZPX, 0x57, 2, 6, 0, true},
	{symSRE, ABS, 0x4f, 3, 6, 0, true},
	{symSRE, ABX, 0x5f, 3, 7, 0, true},
	{symSRE, ABY, 0x5b, 3, 7, 0, true},
	{symSRE, IDX, 0x43, 2, 8, 0, true},
	{symSRE, IDY, 0x53, 2, 8, 0, true},

	{symRRA, ZPG, 0x67, 2, 5, 0, true},
	{symRRA, ZPX, 0x77, 2, 6, 0, true},
	{symRRA, ABS, 0x6f, 3, 6, 0, true},
	{symRRA, ABX, 0x7f, 3, 7, 0, true},
	{symRRA, ABY, 0x7b, 3, 7, 0, true},
	{symRRA, IDX, 0x63, 2, 8, 0, true},
	{symRRA, IDY, 0x73, 2, 8, 0, true},

	{symDCP, ZPG, 0xc7, 2, 5, 0, true},
	{symDCP, ZPX, 0xd7, 2, 6, 0, true},
	{symDCP, ABS, 0xcf, 3, 6, 0, true},
	{symDCP, ABX, 0xdf, 3, 7, 0, true},
	{symDCP, ABY, 0xdb, 3, 7, 0, true},
	{symDCP, IDX, 0xc3, 2, 8, 0, true},
	{symDCP, IDY, 0xd3, 2, 8, 0, true},

	{symISC, ZPG, 0xe7, 2, 5, 0, true},
	{symISC, ZPX, 0xf7, 2, 6, 0, true},
	{symISC, ABS, 0xef, 3, 6, 0, true},
	{symISC, ABX, 0xff, 3, 7, 0, true},
	{symISC, ABY, 0xfb, 3, 7, 0, true},
	{symISC, IDX, 0xe3, 2, 8, 0, true},
	{symISC, IDY, 0xf3, 2, 8, 0, true},

	// Unofficial loads and stores
	{symLAX, ZPG, 0xa7, 2, 3, 0, true},
	{symLAX, ZPY, 0xb7, 2, 4, 0, true},
	{symLAX, ABS, 0xaf, 3, 4, 0, true},
	{symLAX, ABY, 0xbf, 3, 4, 1, true},
	{symLAX, IDX, 0xa3, 2, 6, 0, true},
	{symLAX, IDY, 0xb3, 2, 5, 1, true},
	{symLXA, IMM, 0xab, 2, 2, 0, true},

	{symSAX, ZPG, 0x87, 2, 3, 0, true},
	{symSAX, ZPY, 0x97, 2, 4, 0, true},
	{symSAX, ABS, 0x8f, 3, 4, 0, true},
	{symSAX, IDX, 0x83, 2, 6, 0, true},

	{symSHA, IDY, 0x93, 2, 6, 0, true},
	{symSHA, ABY, 0x9f, 3, 5, 0, true},
	{symSHX, ABY, 0x9e, 3, 5, 0, true},
	{symSHY, ABX, 0x9c, 3, 5, 0, true},
	{symTAS, ABY, 0x9b, 3, 5, 0, true},
	{symLAS, ABY, 0xbb, 3, 4, 1, true},

	// Unofficial immediate operations
	{symANC, IMM, 0x0b, 2, 2, 0, true},
	{symANC, IMM, 0x2b, 2, 2, 0, true},
	{symALR, IMM, 0x4b, 2, 2, 0, true},
	{symARR, IMM, 0x6b, 2, 2, 0, true},
	{symANE, IMM, 0x8b, 2, 2, 0, true},
	{symAXS, IMM, 0xcb, 2, 2, 0, true},
	{symSBC, IMM, 0xeb, 2, 2, 0, true},

	// Unofficial no-ops
	{symNOP, IMP, 0x1a, 1, 2, 0, true},
	{symNOP, IMP, 0x3a, 1, 2, 0, true},
	{symNOP, IMP, 0x5a, 1, 2, 0, true},
	{symNOP, IMP, 0x7a, 1, 2, 0, true},
	{symNOP, IMP, 0xda, 1, 2, 0, true},
	{symNOP, IMP, 0xfa, 1, 2, 0, true},
	{symNOP, IMM, 0x80, 2, 2, 0, true},
	{symNOP, IMM, 0x82, 2, 2, 0, true},
	{symNOP, IMM, 0x89, 2, 2, 0, true},
	{symNOP, IMM, 0xc2, 2, 2, 0, true},
	{symNOP, IMM, 0xe2, 2, 2, 0, true},
	{symNOP, ZPG, 0x04, 2, 3, 0, true},
	{symNOP, ZPG, 0x44, 2, 3, 0, true},
	{symNOP, ZPG, 0x64, 2, 3, 0, true},
	{symNOP, ZPX, 0x14, 2, 4, 0, true},
	{symNOP, ZPX, 0x34, 2, 4, 0, true},
	{symNOP, ZPX, 0x54, 2, 4, 0, true},
	{symNOP, ZPX, 0x74, 2, 4, 0, true},
	{symNOP, ZPX, 0xd4, 2, 4, 0, true},
	{symNOP, ZPX, 0xf4, 2, 4, 0, true},
	{symNOP, ABS, 0x0c, 3, 4, 0, true},
	{symNOP, ABX, 0x1c, 3, 4, 1, true},
	{symNOP, ABX, 0x3c, 3, 4, 1, true},
	{symNOP, ABX, 0x5c, 3, 4, 1, true},
	{symNOP, ABX, 0x7c, 3, 4, 1, true},
	{symNOP, ABX, 0xdc, 3, 4, 1, true},
	{symNOP, ABX, 0xfc, 3, 4, 1, true},

	// Opcodes that lock up the CPU until reset
	{symKIL, IMP, 0x02, 1, 2, 0, true},
	{symKIL, IMP, 0x12, 1, 2, 0, true},
	{symKIL, IMP, 0x22, 1, 2, 0, true},
	{symKIL, IMP, 0x32, 1, 2, 0, true},
	{symKIL, IMP, 0x42, 1, 2, 0, true},
	{symKIL, IMP, 0x52, 1, 2, 0, true},
	{symKIL, IMP, 0x62, 1, 2, 0, true},
	{symKIL, IMP, 0x72, 1, 2, 0, true},
	{symKIL, IMP, 0x92, 1, 2, 0, true},
	{symKIL, IMP, 0xb2, 1, 2, 0, true},
	{symKIL, IMP, 0xd2, 1, 2, 0, true},
	{symKIL, IMP, 0xf2, 1, 2, 0, true},
}

// An Instruction describes a CPU instruction, including its name,
// its addressing mode, its opcode value, its operand size, and its CPU cycle
// cost.
type Instruction struct {
	Name       string   // all-caps name of the instruction
	Mode       Mode     // addressing mode
	Opcode     byte     // hexadecimal opcode value
	Length     byte     // combined size of opcode and operand, in bytes
	Cycles     byte     // number of CPU cycles to execute the instruction
	BPCycles   byte     // additional cycles required if boundary page crossed
	Unofficial bool     // undocumented opcode
	Halts      bool     // executing the opcode locks up the CPU
	access     access   // how the effective address is used
	fn         instfunc // emulator implementation of the function
}

// An InstructionSet defines the set of all possible instructions that
// can run on the emulated CPU.
type InstructionSet struct {
	Arch         Architecture
	instructions [256]Instruction          // all instructions by opcode
	variants     map[string][]*Instruction // variants of each instruction
}

// Lookup retrieves a CPU instruction corresponding to the requested opcode.
func (s *InstructionSet) Lookup(opcode byte) *Instruction {
	return &s.instructions[opcode]
}

// GetInstructions returns all CPU instructions whose name matches the
// provided string.
func (s *InstructionSet) GetInstructions(name string) []*Instruction {
	return s.variants[strings.ToUpper(name)]
}

// Create an instruction set for a CPU architecture.
func newInstructionSet(arch Architecture) *InstructionSet {
	set := &InstructionSet{Arch: arch}

	// Create a map from symbol to implementation for fast lookups.
	symToImpl := make(map[opsym]*opcodeImpl, len(impl))
	for i := range impl {
		symToImpl[impl[i].sym] = &impl[i]
	}

	// Create a map from instruction name to the slice of all instruction
	// variants matching that name.
	set.variants = make(map[string][]*Instruction)

	for _, d := range data {
		impl := symToImpl[d.sym]

		inst := &set.instructions[d.opcode]
		if inst.fn != nil {
			panic("duplicate instruction")
		}

		inst.Name = impl.name
		inst.Mode = d.mode
		inst.Opcode = d.opcode
		inst.Length = d.length
		inst.Cycles = d.cycles
		inst.BPCycles = d.bpcycles
		inst.Unofficial = d.unofficial
		inst.Halts = d.sym == symKIL
		inst.access = impl.acc
		inst.fn = impl.fn[arch]

		set.variants[inst.Name] = append(set.variants[inst.Name], inst)
	}

	for i := 0; i < 256; i++ {
		if set.instructions[i].fn == nil {
			panic("missing instruction")
		}
	}
	return set
}

var instructionSets [2]*InstructionSet

// GetInstructionSet returns an instruction set for the requested CPU
// architecture.
func GetInstructionSet(arch Architecture) *InstructionSet {
	if instructionSets[arch] == nil {
		// Lazy-create the instruction set.
		instructionSets[arch] = newInstructionSet(arch)
	}
	return instructionSets[arch]
}
