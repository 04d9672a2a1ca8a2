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

// Package expansion defines the contract between the PLA's memory map and
// whatever is plugged into the cartridge port. It is independent of any one
// cartridge type: hardware/memory/cartridge implements it once per mapper
// variant, and hardware/memory only ever talks to this interface.
package expansion

// Port is implemented by whatever occupies the expansion port: a cartridge,
// or (when nothing is plugged in) the always-disconnected NoCartridge.
type Port interface {
	// GAME and EXROM report the state of the two cartridge configuration
	// lines. Both true means no cartridge is visible to the PLA.
	GAME() bool
	EXROM() bool

	// ReadROML and ReadROMH service reads of the cartridge's low ($8000-$9FFF)
	// and high ($A000-$BFFF or, in Ultimax mode, $E000-$FFFF) ROM windows.
	// ok is false if the cartridge has nothing mapped there, in which case
	// the PLA falls through to RAM or open bus.
	ReadROML(addr uint16) (data uint8, ok bool)
	ReadROMH(addr uint16) (data uint8, ok bool)

	// ReadIO1, WriteIO1, ReadIO2, WriteIO2 service the two 256-byte I/O
	// windows at $DE00-$DEFF and $DF00-$DFFF.
	ReadIO1(addr uint16) (data uint8, ok bool)
	WriteIO1(addr uint16, data uint8) bool
	ReadIO2(addr uint16) (data uint8, ok bool)
	WriteIO2(addr uint16, data uint8) bool

	// Listen is called on every CPU write, regardless of whether the
	// address was claimed by the cartridge, so that bank-switching
	// cartridges can watch for their trigger addresses (eg. Ocean's
	// $DE00-mirrored-everywhere bankswitch write).
	Listen(addr uint16, data uint8)

	// NMI reports whether the cartridge is currently asserting /NMI (eg.
	// a freezer cartridge's button, or Final Cartridge III's NMI vector
	// interception).
	NMI() bool

	// Reset is called on a machine reset; freezer cartridges use it to
	// restore their un-frozen, power-on bank configuration.
	Reset()
}

// NoCartridge is the Port implementation used when nothing is plugged into
// the expansion port. GAME and EXROM both read high, exactly as an empty
// socket's pull-up resistors present them to the PLA.
type NoCartridge struct{}

func (NoCartridge) GAME() bool                             { return true }
func (NoCartridge) EXROM() bool                            { return true }
func (NoCartridge) ReadROML(addr uint16) (uint8, bool)      { return 0, false }
func (NoCartridge) ReadROMH(addr uint16) (uint8, bool)      { return 0, false }
func (NoCartridge) ReadIO1(addr uint16) (uint8, bool)       { return 0, false }
func (NoCartridge) WriteIO1(addr uint16, data uint8) bool   { return false }
func (NoCartridge) ReadIO2(addr uint16) (uint8, bool)       { return 0, false }
func (NoCartridge) WriteIO2(addr uint16, data uint8) bool   { return false }
func (NoCartridge) Listen(addr uint16, data uint8)          {}
func (NoCartridge) NMI() bool                               { return false }
func (NoCartridge) Reset()                                  {}
