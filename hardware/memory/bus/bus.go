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

// Package bus defines the interfaces that connect the 6510 (and the
// 6502 inside the VC1541) to the rest of the machine. The PLA-driven memory
// map implements CPUBus for the CPU itself. ChipBus describes a way for the
// chips behind that map (VIC-II, CIA, SID) to report the CPU's writes to
// their register windows, but none of them implements it: the memory map
// reaches them through their plain Read/Write methods.
package bus

import "errors"

// AddressError is returned by a CPUBus when an access falls outside of any
// memory area it's responsible for. It should never reach the CPU itself:
// the top level memory map always has something mapped to every address,
// even if it's just open bus.
var AddressError = errors.New("address error")

// CPUBus is implemented by every part of the address space the CPU can see.
// The top level memory map composes its children's CPUBus implementations
// into the single, correctly-banked Read/Write pair the CPU uses.
type CPUBus interface {
	Read(address uint16) (uint8, error)
	Write(address uint16, data uint8) error
}

// ChipData is returned by ChipBus.ChipRead.
type ChipData struct {
	// canonical name of the chip register written to, eg. "TIMER_A_LO"
	Name string

	// the value written
	Value uint8
}

// ChipBus describes a chip whose register window reports CPU writes
// outside of the normal Read/Write cycle. No chip in this module
// implements it.
type ChipBus interface {
	// ChipRead reports whether the chip's register window has been written
	// to since the last call, and if so returns the ChipData describing it
	ChipRead() (bool, ChipData)

	// ChipWrite writes data directly to the chip's register window
	ChipWrite(address uint16, data uint8)

	// LastReadRegister returns the name of the register most recently read
	// by the CPU, for debugger/disassembler display
	LastReadRegister() string
}

// InputDeviceBus describes a peripheral driven from outside the emulated
// machine (keyboard matrix, joysticks, paddles, a mouse). None of those
// implements it; each has methods of its own instead.
type InputDeviceBus interface {
	InputDeviceWrite(address uint16, data uint8, mask uint8)
}

// DebuggerBus is implemented by anything that wants to allow inspection and
// modification outside of the normal rules of CPU access, eg. reading ROM
// that is currently banked out, or writing to a register without
// triggering its side effects.
type DebuggerBus interface {
	Peek(address uint16) (uint8, error)
	Poke(address uint16, value uint8) error
}
