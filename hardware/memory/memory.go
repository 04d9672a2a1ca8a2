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

// Package memory implements the Commodore 64's PLA-driven address map: the
// 6510's two built-in I/O port lines (used as the bank-switching control
// bits), the RAM/BASIC/KERNAL/character-ROM/I/O overlay this produces, and
// the demultiplexing of the $D000-$DFFF window into its seven occupants
// (VIC-II, SID, colour RAM, the two CIAs, and the cartridge's two I/O
// pages).
package memory

import (
	"github.com/jetsetilly/gopher64/errors"
	"github.com/jetsetilly/gopher64/hardware/expansion"
	"github.com/jetsetilly/gopher64/hardware/memory/bus"
)

const (
	basicROMSize  = 8192
	kernalROMSize = 8192
	charROMSize   = 4096
	colorRAMSize  = 1024
)

// ROMs holds the three built-in ROM images. All three are required; a C64
// does not boot without them.
type ROMs struct {
	Basic  [basicROMSize]byte
	Kernal [kernalROMSize]byte
	Char   [charROMSize]byte
}

// chip is the narrow interface the I/O window's occupants present. VIC-II,
// SID and the two CIAs are all, from the bus's point of view, a bank of
// registers the CPU can read and write; anything address-decoding beyond
// that is the chip's own business.
type chip interface {
	Read(address uint16) (uint8, error)
	Write(address uint16, data uint8) error
}

// Memory is the top-level CPUBus implementation: the PLA itself. It owns
// RAM and the ROM images directly, and dispatches everything else (the chip
// registers, the cartridge port) to the wired sub-devices.
type Memory struct {
	ram  [0x10000]byte
	roms ROMs

	colorRAM [colorRAMSize]byte

	vic  chip
	sid  chip
	cia1 chip
	cia2 chip
	cart expansion.Port

	// dataDirection and ioPort are the 6510's own built-in I/O port,
	// memory-mapped at $0000/$0001 underneath all the RAM. Bits 0-2 of
	// ioPort are LORAM, HIRAM and CHAREN; bits 3-5 drive the datasette.
	dataDirection byte
	ioPort        byte

	banks bankTable

	// lastBusValue is the most recent byte the VIC-II drove onto the bus
	// during its own DMA, used as the open-bus fill value for reads that
	// land on an unmapped address (eg. the Ultimax hole, or a read of the
	// $DE00-$DFFF cartridge I/O window when no cartridge answers it).
	lastBusValue byte
}

// NewMemory constructs a Memory with the given ROM images and no cartridge
// attached. Chips are wired in afterwards with Plumb.
func NewMemory(roms ROMs) *Memory {
	mem := &Memory{
		roms: roms,
		cart: expansion.NoCartridge{},
	}
	mem.Reset()
	return mem
}

// Plumb wires the chip registers and the cartridge port into the memory
// map. It must be called once after construction (and again after a
// snapshot restore, since the chip instances themselves are not part of the
// snapshot's memory image).
func (mem *Memory) Plumb(vic, sid, cia1, cia2 chip, cart expansion.Port) {
	mem.vic = vic
	mem.sid = sid
	mem.cia1 = cia1
	mem.cia2 = cia2
	if cart == nil {
		cart = expansion.NoCartridge{}
	}
	mem.cart = cart
	mem.recomputeBanks()
}

// AttachCartridge replaces the expansion port contents, recomputing the
// bank table since GAME/EXROM may have changed.
func (mem *Memory) AttachCartridge(cart expansion.Port) {
	if cart == nil {
		cart = expansion.NoCartridge{}
	}
	mem.cart = cart
	mem.recomputeBanks()
}

// Reset sets the 6510 I/O port to its power-on default (all bank control
// lines high: BASIC, KERNAL and I/O all visible) and recomputes the bank
// table accordingly. RAM contents are untouched, and nothing fills RAM at
// power-up: the RandomState preference randomises only the CPU's
// registers (see hardware/cpu).
func (mem *Memory) Reset() {
	mem.dataDirection = 0x2f
	mem.ioPort = 0x37
	mem.cart.Reset()
	mem.recomputeBanks()
}

func (mem *Memory) portBits() bankConfig {
	// an input bit reads as 1 (pulled up) when its direction bit selects
	// input, regardless of what was last written to ioPort.
	effective := (mem.ioPort & mem.dataDirection) | (^mem.dataDirection & 0xff)
	return bankConfig{
		loram:  effective&0x01 != 0,
		hiram:  effective&0x02 != 0,
		charen: effective&0x04 != 0,
		game:   mem.cart.GAME(),
		exrom:  mem.cart.EXROM(),
	}
}

func (mem *Memory) recomputeBanks() {
	mem.banks = mem.portBits().recompute()
}

// Read implements bus.CPUBus.
func (mem *Memory) Read(address uint16) (uint8, error) {
	if address < 2 {
		return mem.readPort(address), nil
	}

	switch mem.banks[address>>12] {
	case sourceRAM:
		return mem.ram[address], nil
	case sourceBasic:
		return mem.roms.Basic[address-0xA000], nil
	case sourceKernal:
		return mem.roms.Kernal[address-0xE000], nil
	case sourceCharROM:
		return mem.roms.Char[address-0xD000], nil
	case sourceCartLo:
		if v, ok := mem.cart.ReadROML(address); ok {
			return v, nil
		}
		return mem.ram[address], nil
	case sourceCartHi:
		if v, ok := mem.cart.ReadROMH(address); ok {
			return v, nil
		}
		return mem.ram[address], nil
	case sourceIO:
		return mem.readIO(address)
	default:
		return mem.lastBusValue, nil
	}
}

// Write implements bus.CPUBus. Writes always land in RAM underneath ROM
// overlays (ROM cannot be written through), the cartridge ROM windows
// included; only the I/O window and the Ultimax open-bus areas are not
// backed by RAM.
func (mem *Memory) Write(address uint16, data uint8) error {
	if address < 2 {
		mem.writePort(address, data)
		return nil
	}

	mem.cart.Listen(address, data)

	switch mem.banks[address>>12] {
	case sourceIO:
		return mem.writeIO(address, data)
	case sourceCartLo, sourceCartHi:
		// cartridge ROM is never written through; bank-switching happens
		// via Listen above, same as a real cartridge's address decoder
		// watching the bus without asserting its own /CS.
		mem.ram[address] = data
	case sourceOpenBus:
		// nothing is listening; the write is lost
	default:
		mem.ram[address] = data
	}
	return nil
}

func (mem *Memory) readPort(address uint16) byte {
	if address == 0 {
		return mem.dataDirection
	}
	return (mem.ioPort & mem.dataDirection) | (^mem.dataDirection & 0x17)
}

func (mem *Memory) writePort(address uint16, data byte) {
	if address == 0 {
		mem.dataDirection = data
	} else {
		mem.ioPort = data
	}
	mem.recomputeBanks()
}

// Peek and Poke implement bus.DebuggerBus. Peek is a plain Read, with the
// same chip register side effects a CPU read has. Poke writes straight to
// RAM whatever is banked in, without a cartridge Listen call, and refuses
// addresses where the I/O window is banked in.
func (mem *Memory) Peek(address uint16) (uint8, error) {
	return mem.Read(address)
}

func (mem *Memory) Poke(address uint16, value uint8) error {
	if mem.banks[address>>12] == sourceIO {
		return errors.Errorf(errors.UnpokeableAddress, address)
	}
	mem.ram[address] = value
	return nil
}

// VICBankRead implements the VIC-II's own 16K-windowed view of memory,
// selected by the two CIA2 Port A bits the machine plumbs as vicBank
// (0-3, already decoded from those inverted pins: bank n covers RAM from
// n*$4000 to n*$4000+$3FFF). The VIC-II sees RAM everywhere in its
// bank except for the fixed 4K character ROM shadow at $1000-$1FFF within
// banks 0 and 2 - wired directly into the character generator ROM
// regardless of what the CPU's own CHAREN/bank-switching state is - and
// never sees the cartridge, I/O or BASIC/KERNAL ROM overlays the CPU does.
func (mem *Memory) VICBankRead(vicBank int, address uint16) uint8 {
	address &= 0x3fff
	if (vicBank == 0 || vicBank == 2) && address >= 0x1000 && address < 0x2000 {
		return mem.roms.Char[address-0x1000]
	}
	return mem.ram[uint16(vicBank)*0x4000+address]
}

// ColorRAM returns the 4-bit colour RAM nibble at the given offset
// (0-1023), the fixed SRAM the VIC-II reads alongside the video matrix
// regardless of which 16K bank it is currently pointed at.
func (mem *Memory) ColorRAM(offset uint16) uint8 {
	return mem.colorRAM[offset&0x3ff] | 0xf0
}
