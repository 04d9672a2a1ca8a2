// This file is part of Gopher64.
//
// Gopher64 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher64 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher64.  If not, see <https://www.gnu.org/licenses/>.

package instructions

import "fmt"

// Definition describes one of the 256 possible opcode values, documented or
// not. The 6510 in a Commodore 64 is pin-compatible with the 6502 other than
// the extra I/O port at the CPU's own data direction/data registers, which
// does not affect instruction decoding.
type Definition struct {
	OpCode         uint8
	Operator       Operator
	Bytes          int
	Cycles         int
	AddressingMode AddressingMode
	PageSensitive  bool
	Effect         Effect
	Undocumented   bool
}

func (defn Definition) String() string {
	return fmt.Sprintf("%02x %s +%dbytes (%d cycles) [mode=%s pagesens=%t effect=%s]",
		defn.OpCode, defn.Operator, defn.Bytes, defn.Cycles, defn.AddressingMode, defn.PageSensitive, defn.Effect)
}

// IsBranch returns true if the instruction is a relative-addressing branch.
func (defn Definition) IsBranch() bool {
	return defn.AddressingMode == Relative && defn.Effect == Flow
}

// definitions is built once, at package initialisation, and returned by
// copy from GetDefinitions() so that callers cannot corrupt the shared
// table via its pointer slice.
var definitions [256]Definition

func init() {
	const (
		imp = Implied
		imm = Immediate
		rel = Relative
		abs = Absolute
		zp  = ZeroPage
		ind = Indirect
		izx = IndexedIndirect
		izy = IndirectIndexed
		abx = AbsoluteIndexedX
		aby = AbsoluteIndexedY
		zpx = ZeroPageIndexedX
		zpy = ZeroPageIndexedY

		rd = Read
		wr = Write
		rw = RMW
		sr = Subroutine
		fl = Flow
	)

	type row struct {
		op     uint8
		oper   Operator
		mode   AddressingMode
		bytes  int
		cycles int
		psens  bool
		effect Effect
		undoc  bool
	}

	rows := []row{
		{0x00, Brk, imp, 1, 7, false, fl, false},
		{0x01, Ora, izx, 2, 6, false, rd, false},
		{0x02, KIL, imp, 1, 2, false, rd, true},
		{0x03, SLO, izx, 2, 8, false, rw, true},
		{0x04, NOP, zp, 2, 3, false, rd, true},
		{0x05, Ora, zp, 2, 3, false, rd, false},
		{0x06, Asl, zp, 2, 5, false, rw, false},
		{0x07, SLO, zp, 2, 5, false, rw, true},
		{0x08, Php, imp, 1, 3, false, rd, false},
		{0x09, Ora, imm, 2, 2, false, rd, false},
		{0x0A, Asl, imp, 1, 2, false, rd, false},
		{0x0B, ANC, imm, 2, 2, false, rd, true},
		{0x0C, NOP, abs, 3, 4, false, rd, true},
		{0x0D, Ora, abs, 3, 4, false, rd, false},
		{0x0E, Asl, abs, 3, 6, false, rw, false},
		{0x0F, SLO, abs, 3, 6, false, rw, true},

		{0x10, Bpl, rel, 2, 2, true, fl, false},
		{0x11, Ora, izy, 2, 5, true, rd, false},
		{0x12, KIL, imp, 1, 2, false, rd, true},
		{0x13, SLO, izy, 2, 8, false, rw, true},
		{0x14, NOP, zpx, 2, 4, false, rd, true},
		{0x15, Ora, zpx, 2, 4, false, rd, false},
		{0x16, Asl, zpx, 2, 6, false, rw, false},
		{0x17, SLO, zpx, 2, 6, false, rw, true},
		{0x18, Clc, imp, 1, 2, false, rd, false},
		{0x19, Ora, aby, 3, 4, true, rd, false},
		{0x1A, NOP, imp, 1, 2, false, rd, true},
		{0x1B, SLO, aby, 3, 7, false, rw, true},
		{0x1C, NOP, abx, 3, 4, true, rd, true},
		{0x1D, Ora, abx, 3, 4, true, rd, false},
		{0x1E, Asl, abx, 3, 7, false, rw, false},
		{0x1F, SLO, abx, 3, 7, false, rw, true},

		{0x20, Jsr, abs, 3, 6, false, sr, false},
		{0x21, And, izx, 2, 6, false, rd, false},
		{0x22, KIL, imp, 1, 2, false, rd, true},
		{0x23, RLA, izx, 2, 8, false, rw, true},
		{0x24, Bit, zp, 2, 3, false, rd, false},
		{0x25, And, zp, 2, 3, false, rd, false},
		{0x26, Rol, zp, 2, 5, false, rw, false},
		{0x27, RLA, zp, 2, 5, false, rw, true},
		{0x28, Plp, imp, 1, 4, false, rd, false},
		{0x29, And, imm, 2, 2, false, rd, false},
		{0x2A, Rol, imp, 1, 2, false, rd, false},
		{0x2B, ANC, imm, 2, 2, false, rd, true},
		{0x2C, Bit, abs, 3, 4, false, rd, false},
		{0x2D, And, abs, 3, 4, false, rd, false},
		{0x2E, Rol, abs, 3, 6, false, rw, false},
		{0x2F, RLA, abs, 3, 6, false, rw, true},

		{0x30, Bmi, rel, 2, 2, true, fl, false},
		{0x31, And, izy, 2, 5, true, rd, false},
		{0x32, KIL, imp, 1, 2, false, rd, true},
		{0x33, RLA, izy, 2, 8, false, rw, true},
		{0x34, NOP, zpx, 2, 4, false, rd, true},
		{0x35, And, zpx, 2, 4, false, rd, false},
		{0x36, Rol, zpx, 2, 6, false, rw, false},
		{0x37, RLA, zpx, 2, 6, false, rw, true},
		{0x38, Sec, imp, 1, 2, false, rd, false},
		{0x39, And, aby, 3, 4, true, rd, false},
		{0x3A, NOP, imp, 1, 2, false, rd, true},
		{0x3B, RLA, aby, 3, 7, false, rw, true},
		{0x3C, NOP, abx, 3, 4, true, rd, true},
		{0x3D, And, abx, 3, 4, true, rd, false},
		{0x3E, Rol, abx, 3, 7, false, rw, false},
		{0x3F, RLA, abx, 3, 7, false, rw, true},

		{0x40, Rti, imp, 1, 6, false, fl, false},
		{0x41, Eor, izx, 2, 6, false, rd, false},
		{0x42, KIL, imp, 1, 2, false, rd, true},
		{0x43, SRE, izx, 2, 8, false, rw, true},
		{0x44, NOP, zp, 2, 3, false, rd, true},
		{0x45, Eor, zp, 2, 3, false, rd, false},
		{0x46, Lsr, zp, 2, 5, false, rw, false},
		{0x47, SRE, zp, 2, 5, false, rw, true},
		{0x48, Pha, imp, 1, 3, false, rd, false},
		{0x49, Eor, imm, 2, 2, false, rd, false},
		{0x4A, Lsr, imp, 1, 2, false, rd, false},
		{0x4B, ASR, imm, 2, 2, false, rd, true},
		{0x4C, Jmp, abs, 3, 3, false, fl, false},
		{0x4D, Eor, abs, 3, 4, false, rd, false},
		{0x4E, Lsr, abs, 3, 6, false, rw, false},
		{0x4F, SRE, abs, 3, 6, false, rw, true},

		{0x50, Bvc, rel, 2, 2, true, fl, false},
		{0x51, Eor, izy, 2, 5, true, rd, false},
		{0x52, KIL, imp, 1, 2, false, rd, true},
		{0x53, SRE, izy, 2, 8, false, rw, true},
		{0x54, NOP, zpx, 2, 4, false, rd, true},
		{0x55, Eor, zpx, 2, 4, false, rd, false},
		{0x56, Lsr, zpx, 2, 6, false, rw, false},
		{0x57, SRE, zpx, 2, 6, false, rw, true},
		{0x58, Cli, imp, 1, 2, false, rd, false},
		{0x59, Eor, aby, 3, 4, true, rd, false},
		{0x5A, NOP, imp, 1, 2, false, rd, true},
		{0x5B, SRE, aby, 3, 7, false, rw, true},
		{0x5C, NOP, abx, 3, 4, true, rd, true},
		{0x5D, Eor, abx, 3, 4, true, rd, false},
		{0x5E, Lsr, abx, 3, 7, false, rw, false},
		{0x5F, SRE, abx, 3, 7, false, rw, true},

		{0x60, Rts, imp, 1, 6, false, fl, false},
		{0x61, Adc, izx, 2, 6, false, rd, false},
		{0x62, KIL, imp, 1, 2, false, rd, true},
		{0x63, RRA, izx, 2, 8, false, rw, true},
		{0x64, NOP, zp, 2, 3, false, rd, true},
		{0x65, Adc, zp, 2, 3, false, rd, false},
		{0x66, Ror, zp, 2, 5, false, rw, false},
		{0x67, RRA, zp, 2, 5, false, rw, true},
		{0x68, Pla, imp, 1, 4, false, rd, false},
		{0x69, Adc, imm, 2, 2, false, rd, false},
		{0x6A, Ror, imp, 1, 2, false, rd, false},
		{0x6B, ARR, imm, 2, 2, false, rd, true},
		{0x6C, Jmp, ind, 3, 5, false, fl, false},
		{0x6D, Adc, abs, 3, 4, false, rd, false},
		{0x6E, Ror, abs, 3, 6, false, rw, false},
		{0x6F, RRA, abs, 3, 6, false, rw, true},

		{0x70, Bvs, rel, 2, 2, true, fl, false},
		{0x71, Adc, izy, 2, 5, true, rd, false},
		{0x72, KIL, imp, 1, 2, false, rd, true},
		{0x73, RRA, izy, 2, 8, false, rw, true},
		{0x74, NOP, zpx, 2, 4, false, rd, true},
		{0x75, Adc, zpx, 2, 4, false, rd, false},
		{0x76, Ror, zpx, 2, 6, false, rw, false},
		{0x77, RRA, zpx, 2, 6, false, rw, true},
		{0x78, Sei, imp, 1, 2, false, rd, false},
		{0x79, Adc, aby, 3, 4, true, rd, false},
		{0x7A, NOP, imp, 1, 2, false, rd, true},
		{0x7B, RRA, aby, 3, 7, false, rw, true},
		{0x7C, NOP, abx, 3, 4, true, rd, true},
		{0x7D, Adc, abx, 3, 4, true, rd, false},
		{0x7E, Ror, abx, 3, 7, false, rw, false},
		{0x7F, RRA, abx, 3, 7, false, rw, true},

		{0x80, NOP, imm, 2, 2, false, rd, true},
		{0x81, Sta, izx, 2, 6, false, wr, false},
		{0x82, NOP, imm, 2, 2, false, rd, true},
		{0x83, SAX, izx, 2, 6, false, wr, true},
		{0x84, Sty, zp, 2, 3, false, wr, false},
		{0x85, Sta, zp, 2, 3, false, wr, false},
		{0x86, Stx, zp, 2, 3, false, wr, false},
		{0x87, SAX, zp, 2, 3, false, wr, true},
		{0x88, Dey, imp, 1, 2, false, rd, false},
		{0x89, NOP, imm, 2, 2, false, rd, true},
		{0x8A, Txa, imp, 1, 2, false, rd, false},
		{0x8B, XAA, imm, 2, 2, false, rd, true},
		{0x8C, Sty, abs, 3, 4, false, wr, false},
		{0x8D, Sta, abs, 3, 4, false, wr, false},
		{0x8E, Stx, abs, 3, 4, false, wr, false},
		{0x8F, SAX, abs, 3, 4, false, wr, true},

		{0x90, Bcc, rel, 2, 2, true, fl, false},
		{0x91, Sta, izy, 2, 6, false, wr, false},
		{0x92, KIL, imp, 1, 2, false, rd, true},
		{0x93, AHX, izy, 2, 6, false, wr, true},
		{0x94, Sty, zpx, 2, 4, false, wr, false},
		{0x95, Sta, zpx, 2, 4, false, wr, false},
		{0x96, Stx, zpy, 2, 4, false, wr, false},
		{0x97, SAX, zpy, 2, 4, false, wr, true},
		{0x98, Tya, imp, 1, 2, false, rd, false},
		{0x99, Sta, aby, 3, 5, false, wr, false},
		{0x9A, Txs, imp, 1, 2, false, rd, false},
		{0x9B, TAS, aby, 3, 5, false, wr, true},
		{0x9C, SHY, abx, 3, 5, false, wr, true},
		{0x9D, Sta, abx, 3, 5, false, wr, false},
		{0x9E, SHX, aby, 3, 5, false, wr, true},
		{0x9F, AHX, aby, 3, 5, false, wr, true},

		{0xA0, Ldy, imm, 2, 2, false, rd, false},
		{0xA1, Lda, izx, 2, 6, false, rd, false},
		{0xA2, Ldx, imm, 2, 2, false, rd, false},
		{0xA3, LAX, izx, 2, 6, false, rd, true},
		{0xA4, Ldy, zp, 2, 3, false, rd, false},
		{0xA5, Lda, zp, 2, 3, false, rd, false},
		{0xA6, Ldx, zp, 2, 3, false, rd, false},
		{0xA7, LAX, zp, 2, 3, false, rd, true},
		{0xA8, Tay, imp, 1, 2, false, rd, false},
		{0xA9, Lda, imm, 2, 2, false, rd, false},
		{0xAA, Tax, imp, 1, 2, false, rd, false},
		{0xAB, LAX, imm, 2, 2, false, rd, true},
		{0xAC, Ldy, abs, 3, 4, false, rd, false},
		{0xAD, Lda, abs, 3, 4, false, rd, false},
		{0xAE, Ldx, abs, 3, 4, false, rd, false},
		{0xAF, LAX, abs, 3, 4, false, rd, true},

		{0xB0, Bcs, rel, 2, 2, true, fl, false},
		{0xB1, Lda, izy, 2, 5, true, rd, false},
		{0xB2, KIL, imp, 1, 2, false, rd, true},
		{0xB3, LAX, izy, 2, 5, true, rd, true},
		{0xB4, Ldy, zpx, 2, 4, false, rd, false},
		{0xB5, Lda, zpx, 2, 4, false, rd, false},
		{0xB6, Ldx, zpy, 2, 4, false, rd, false},
		{0xB7, LAX, zpy, 2, 4, false, rd, true},
		{0xB8, Clv, imp, 1, 2, false, rd, false},
		{0xB9, Lda, aby, 3, 4, true, rd, false},
		{0xBA, Tsx, imp, 1, 2, false, rd, false},
		{0xBB, LAS, aby, 3, 4, true, rd, true},
		{0xBC, Ldy, abx, 3, 4, true, rd, false},
		{0xBD, Lda, abx, 3, 4, true, rd, false},
		{0xBE, Ldx, aby, 3, 4, true, rd, false},
		{0xBF, LAX, aby, 3, 4, true, rd, true},

		{0xC0, Cpy, imm, 2, 2, false, rd, false},
		{0xC1, Cmp, izx, 2, 6, false, rd, false},
		{0xC2, NOP, imm, 2, 2, false, rd, true},
		{0xC3, DCP, izx, 2, 8, false, rw, true},
		{0xC4, Cpy, zp, 2, 3, false, rd, false},
		{0xC5, Cmp, zp, 2, 3, false, rd, false},
		{0xC6, Dec, zp, 2, 5, false, rw, false},
		{0xC7, DCP, zp, 2, 5, false, rw, true},
		{0xC8, Iny, imp, 1, 2, false, rd, false},
		{0xC9, Cmp, imm, 2, 2, false, rd, false},
		{0xCA, Dex, imp, 1, 2, false, rd, false},
		{0xCB, AXS, imm, 2, 2, false, rd, true},
		{0xCC, Cpy, abs, 3, 4, false, rd, false},
		{0xCD, Cmp, abs, 3, 4, false, rd, false},
		{0xCE, Dec, abs, 3, 6, false, rw, false},
		{0xCF, DCP, abs, 3, 6, false, rw, true},

		{0xD0, Bne, rel, 2, 2, true, fl, false},
		{0xD1, Cmp, izy, 2, 5, true, rd, false},
		{0xD2, KIL, imp, 1, 2, false, rd, true},
		{0xD3, DCP, izy, 2, 8, false, rw, true},
		{0xD4, NOP, zpx, 2, 4, false, rd, true},
		{0xD5, Cmp, zpx, 2, 4, false, rd, false},
		{0xD6, Dec, zpx, 2, 6, false, rw, false},
		{0xD7, DCP, zpx, 2, 6, false, rw, true},
		{0xD8, Cld, imp, 1, 2, false, rd, false},
		{0xD9, Cmp, aby, 3, 4, true, rd, false},
		{0xDA, NOP, imp, 1, 2, false, rd, true},
		{0xDB, DCP, aby, 3, 7, false, rw, true},
		{0xDC, NOP, abx, 3, 4, true, rd, true},
		{0xDD, Cmp, abx, 3, 4, true, rd, false},
		{0xDE, Dec, abx, 3, 7, false, rw, false},
		{0xDF, DCP, abx, 3, 7, false, rw, true},

		{0xE0, Cpx, imm, 2, 2, false, rd, false},
		{0xE1, Sbc, izx, 2, 6, false, rd, false},
		{0xE2, NOP, imm, 2, 2, false, rd, true},
		{0xE3, ISC, izx, 2, 8, false, rw, true},
		{0xE4, Cpx, zp, 2, 3, false, rd, false},
		{0xE5, Sbc, zp, 2, 3, false, rd, false},
		{0xE6, Inc, zp, 2, 5, false, rw, false},
		{0xE7, ISC, zp, 2, 5, false, rw, true},
		{0xE8, Inx, imp, 1, 2, false, rd, false},
		{0xE9, Sbc, imm, 2, 2, false, rd, false},
		{0xEA, Nop, imp, 1, 2, false, rd, false},
		{0xEB, SBC, imm, 2, 2, false, rd, true},
		{0xEC, Cpx, abs, 3, 4, false, rd, false},
		{0xED, Sbc, abs, 3, 4, false, rd, false},
		{0xEE, Inc, abs, 3, 6, false, rw, false},
		{0xEF, ISC, abs, 3, 6, false, rw, true},

		{0xF0, Beq, rel, 2, 2, true, fl, false},
		{0xF1, Sbc, izy, 2, 5, true, rd, false},
		{0xF2, KIL, imp, 1, 2, false, rd, true},
		{0xF3, ISC, izy, 2, 8, false, rw, true},
		{0xF4, NOP, zpx, 2, 4, false, rd, true},
		{0xF5, Sbc, zpx, 2, 4, false, rd, false},
		{0xF6, Inc, zpx, 2, 6, false, rw, false},
		{0xF7, ISC, zpx, 2, 6, false, rw, true},
		{0xF8, Sed, imp, 1, 2, false, rd, false},
		{0xF9, Sbc, aby, 3, 4, true, rd, false},
		{0xFA, NOP, imp, 1, 2, false, rd, true},
		{0xFB, ISC, aby, 3, 7, false, rw, true},
		{0xFC, NOP, abx, 3, 4, true, rd, true},
		{0xFD, Sbc, abx, 3, 4, true, rd, false},
		{0xFE, Inc, abx, 3, 7, false, rw, false},
		{0xFF, ISC, abx, 3, 7, false, rw, true},
	}

	if len(rows) != 256 {
		panic(fmt.Sprintf("cpu instruction table is incomplete: got %d entries", len(rows)))
	}

	for _, r := range rows {
		definitions[r.op] = Definition{
			OpCode:         r.op,
			Operator:       r.oper,
			Bytes:          r.bytes,
			Cycles:         r.cycles,
			AddressingMode: r.mode,
			PageSensitive:  r.psens,
			Effect:         r.effect,
			Undocumented:   r.undoc,
		}
	}
}

// GetDefinitions returns the 256-entry opcode table, indexed by opcode
// value, as a slice of pointers (nil entries never occur; every opcode is
// defined, including KIL/JAM slots).
func GetDefinitions() []*Definition {
	defs := make([]*Definition, 256)
	for i := range definitions {
		d := definitions[i]
		defs[i] = &d
	}
	return defs
}
