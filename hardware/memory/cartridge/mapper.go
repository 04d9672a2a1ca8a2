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

package cartridge

import "github.com/jetsetilly/gopher64/errors"

// mapper holds a cartridge's actual ROM/RAM banks and the bank-switching
// state machine a particular hardware type needs. The address arguments it
// receives are the full 16-bit CPU address, not normalised, since unlike
// the Atari 2600 a C64 cartridge sees three distinct windows (ROML, ROMH,
// the two I/O pages) rather than one.
type mapper interface {
	initialise()

	game() bool
	exrom() bool

	readROML(addr uint16) (uint8, bool)
	readROMH(addr uint16) (uint8, bool)
	readIO1(addr uint16) (uint8, bool)
	writeIO1(addr uint16, data uint8) bool
	readIO2(addr uint16) (uint8, bool)
	writeIO2(addr uint16, data uint8) bool

	// listen is called on every CPU write regardless of where it landed, for
	// mappers that bankswitch on writes to RAM-mapped or ROM-mirrored
	// addresses outside their own claimed windows.
	listen(addr uint16, data uint8)

	nmi() bool
	reset()
}

// registryEntry constructs a mapper from a CRT file's decoded chip packets.
type registryEntry func(h header, chips []chipPacket) (mapper, error)

// registry maps the CRT hardware type IDs that have a mapper of their own
// to a constructor; the other documented IDs are not listed. Types with no cartridge-specific bank-switching behaviour of their own
// (the overwhelming majority of 8K/16K one-bank cartridges that happen to
// carry a distinct ID for historical reasons, eg. many of the budget
// European "clone" boards) fall back to newNormal, which is correct for
// them: the type ID only exists to tell a loader which ROM layout to
// expect, not to select different hardware.
var registry = map[uint16]registryEntry{
	0:  newNormal,       // Normal cartridge
	1:  newActionReplay, // Action Replay
	3:  newFinalIII,     // Final Cartridge III
	5:  newOcean,        // Ocean type 1
	7:  newFunPlay,      // Fun Play, Power Play
	10: newEpyx,         // Epyx Fastload
	19: newZaxxon,       // Zaxxon, Super Zaxxon
	21: newGeoRAM,       // GeoRAM / Berkeley Softworks
}

// lookup returns the mapper constructor for hardwareType, falling back to
// newNormal for any ID not given specific behaviour above.
func lookup(hardwareType uint16) registryEntry {
	if entry, ok := registry[hardwareType]; ok {
		return entry
	}
	return newNormal
}

func errUnsupportedType(hardwareType uint16) error {
	return errors.Errorf(errors.CartridgeUnsupported, hardwareType)
}
