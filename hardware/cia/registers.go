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

// Package cia implements the 6526 Complex Interface Adapter: two 16-bit
// timers, a BCD time-of-day clock, an 8-bit serial shift register and two
// 8-bit parallel ports. Two CIAs sit behind the $DC00/$DD00 I/O windows;
// what each one's ports are wired to (the keyboard matrix, joysticks, the
// IEC bus, the VIC-II bank select) is the machine package's business, not
// this one's - a CIA has no idea what it's connected to.
package cia

// register offsets, relative to a CIA's own base address. Only the low 4
// bits of an access are decoded; hardware/memory mirrors this window
// across the whole $DC00-$DCFF/$DD00-$DDFF page.
const (
	PRA  = 0x00 // peripheral data register A
	PRB  = 0x01 // peripheral data register B
	DDRA = 0x02 // data direction register A
	DDRB = 0x03 // data direction register B

	TALO = 0x04
	TAHI = 0x05
	TBLO = 0x06
	TBHI = 0x07

	TOD10THS = 0x08
	TODSEC   = 0x09
	TODMIN   = 0x0A
	TODHR    = 0x0B

	SDR = 0x0C
	ICR = 0x0D
	CRA = 0x0E
	CRB = 0x0F
)

// ICR bit positions, both for the mask written via ICR and the pending
// flags read back.
const (
	icrTimerA = 1 << 0
	icrTimerB = 1 << 1
	icrTOD    = 1 << 2
	icrSerial = 1 << 3
	icrFlag   = 1 << 4
	icrSetClr = 1 << 7 // write: 1 sets the addressed bits, 0 clears them
	icrIRQ    = 1 << 7 // read: an interrupt is pending
)

// CRA/CRB control bits common to both timers.
const (
	crStart    = 1 << 0
	crPBON     = 1 << 1
	crOutMode  = 1 << 2 // 0 = pulse, 1 = toggle
	crRunMode  = 1 << 3 // 0 = continuous, 1 = one-shot
	crForceLoad = 1 << 4
	crInMode   = 1 << 5 // timer A: 0 = Phi2, 1 = CNT
	crSPMode   = 1 << 6 // CRA only: serial port direction, 0 = input, 1 = output
	crTODIn    = 1 << 7 // CRA only: 0 = 60Hz, 1 = 50Hz
)

// CRB has a two-bit input mode instead of CRA's one-bit version, occupying
// the same bit 5 plus bit 6.
const (
	crbInModeMask      = 0x60
	crbInModePhi2      = 0x00
	crbInModeCNT       = 0x20
	crbInModeTimerA    = 0x40
	crbInModeTimerACNT = 0x60
	crbAlarm           = 1 << 7 // 0 = writes set the clock, 1 = writes set the alarm
)

// Revision selects between the original NMOS 6526 and the later 8521.
// They differ in a handful of edge cases: the 8521 fixed a TOD
// divide-by-zero-on-first-tick glitch and changed how SP/CNT behave as
// outputs, neither of which is modelled yet (see DESIGN.md).
type Revision int

const (
	MOS6526 Revision = iota
	MOS8521
)
