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

package memory

// source identifies which physical device answers a peek or poke to a given
// 4KB region of the 6510's address space. It is recomputed whenever the
// processor port bits (LORAM, HIRAM, CHAREN) or the cartridge's GAME/EXROM
// lines change, mirroring the 7700-series PLA's combinatorial behaviour:
// the mapping is a pure function of those five inputs, never stateful.
type source int

const (
	sourceRAM source = iota
	sourceBasic
	sourceKernal
	sourceCharROM
	sourceIO
	sourceCartLo
	sourceCartHi
	sourceOpenBus
)

// bankConfig is the five PLA input lines, latched once per recompute so the
// derivation functions below don't need to re-read the processor port or
// query the cartridge port repeatedly.
type bankConfig struct {
	loram  bool
	hiram  bool
	charen bool
	game   bool
	exrom  bool
}

// cartridgeMode classifies the GAME/EXROM combination into the four
// configurations a cartridge port can present. This mirrors the well known
// C64 bankswitching rules: 8K and 16K games map extra ROM in over the top
// of RAM/BASIC, Ultimax mode tears a hole in RAM entirely.
type cartridgeMode int

const (
	modeNone cartridgeMode = iota
	mode8K
	mode16K
	modeUltimax
)

func (c bankConfig) mode() cartridgeMode {
	switch {
	case c.game && c.exrom:
		return modeNone
	case c.game && !c.exrom:
		return mode8K
	case !c.game && !c.exrom:
		return mode16K
	default:
		return modeUltimax
	}
}

// bankTable is the complete set of peek/poke sources for each 4KB region of
// the address space, recomputed by recomputeBanks whenever the PLA inputs
// change. Index is address >> 12.
type bankTable [16]source

// recompute derives the sixteen 4KB region sources for the given PLA
// inputs. $D000-$DFFF additionally needs byte-level demultiplexing (VIC,
// SID, colour RAM, the two CIAs, and the two cartridge I/O windows all
// share that space) which is handled separately in Read/Write once this
// table has resolved the region to sourceIO.
func (c bankConfig) recompute() bankTable {
	var t bankTable

	// $0000-$7FFF: always RAM, except Ultimax mode tears a hole in
	// $1000-$7FFF because ROML/ROMH assert the whole bus's RAM /CS lines
	// high, leaving those addresses with nothing driving the data bus.
	t[0x0] = sourceRAM
	for i := 1; i <= 7; i++ {
		if c.mode() == modeUltimax {
			t[i] = sourceOpenBus
		} else {
			t[i] = sourceRAM
		}
	}

	// $8000-$9FFF: RAM normally, cartridge ROML in every cartridge mode.
	switch c.mode() {
	case mode8K, mode16K, modeUltimax:
		t[0x8] = sourceCartLo
		t[0x9] = sourceCartLo
	default:
		t[0x8] = sourceRAM
		t[0x9] = sourceRAM
	}

	// $A000-$BFFF: cartridge ROMH in 16K mode; open bus in Ultimax mode
	// (ROMH there is relocated to $E000); otherwise the familiar
	// LORAM&&HIRAM-selects-BASIC rule.
	var abArea source
	switch c.mode() {
	case mode16K:
		abArea = sourceCartHi
	case modeUltimax:
		abArea = sourceOpenBus
	default:
		if c.loram && c.hiram {
			abArea = sourceBasic
		} else {
			abArea = sourceRAM
		}
	}
	t[0xA] = abArea
	t[0xB] = abArea

	// $C000-$CFFF: always RAM, except Ultimax leaves it open bus along with
	// the rest of the mid-range hole.
	if c.mode() == modeUltimax {
		t[0xC] = sourceOpenBus
	} else {
		t[0xC] = sourceRAM
	}

	// $D000-$DFFF: I/O unconditionally in Ultimax mode (the cartridge's
	// ROMH takes $E000 so the PLA always exposes the chip registers here);
	// otherwise CHAREN alone selects character ROM vs I/O.
	if c.mode() == modeUltimax {
		t[0xD] = sourceIO
	} else if c.charen {
		t[0xD] = sourceIO
	} else {
		t[0xD] = sourceCharROM
	}

	// $E000-$FFFF: cartridge ROMH in Ultimax mode; otherwise HIRAM selects
	// KERNAL ROM vs RAM, same in every cartridge mode since ROMH at $E000
	// only appears in Ultimax.
	var efArea source
	switch {
	case c.mode() == modeUltimax:
		efArea = sourceCartHi
	case c.hiram:
		efArea = sourceKernal
	default:
		efArea = sourceRAM
	}
	t[0xE] = efArea
	t[0xF] = efArea

	return t
}
