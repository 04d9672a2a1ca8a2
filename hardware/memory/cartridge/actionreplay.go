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

// actionReplay is hardware type 1: a freezer cartridge. A 256 byte RAM
// buffer at IO2 backs up state across the freeze button press; the control
// register at $DE00 selects one of four 8K ROM banks and independently
// controls GAME/EXROM (so software can bank the cartridge fully out of the
// address space once it's done) and whether its own RAM is write
// protected.
//
// The freeze button is modelled as a latch set by the host (see Freeze)
// and consumed the next time nmi() is polled by the CPU scheduler, which
// matches a real Action Replay's edge-triggered NMI line.
type actionReplay struct {
	banks [][]byte
	ram   [256]byte

	bank       int
	ramEnabled bool
	disabled   bool // control register bit 2: bank cartridge fully out
	frozen     bool
}

func newActionReplay(h header, chips []chipPacket) (mapper, error) {
	ar := &actionReplay{}
	for _, c := range chips {
		ar.banks = append(ar.banks, c.data)
	}
	return ar, nil
}

func (ar *actionReplay) initialise() { ar.reset() }

func (ar *actionReplay) reset() {
	ar.bank = 0
	ar.ramEnabled = false
	ar.disabled = false
	ar.frozen = false
}

// game and exrom report 16K mode (GAME=0, EXROM=0) when enabled, and both
// high (no cartridge visible) once software has disabled the board.
func (ar *actionReplay) game() bool {
	return ar.disabled
}

func (ar *actionReplay) exrom() bool {
	return ar.disabled
}

// Freeze is called by the host when the user presses the cartridge's
// freeze button: it resets the bank-select state to bank 0 with the
// cartridge fully enabled, exactly as the hardware does, and asserts NMI.
func (ar *actionReplay) Freeze() {
	ar.bank = 0
	ar.disabled = false
	ar.frozen = true
}

func (ar *actionReplay) nmi() bool {
	f := ar.frozen
	ar.frozen = false
	return f
}

func (ar *actionReplay) readROML(addr uint16) (uint8, bool) {
	if ar.disabled || ar.bank >= len(ar.banks) {
		return 0, false
	}
	data := ar.banks[ar.bank]
	off := int(addr - 0x8000)
	if off >= len(data) {
		return 0, false
	}
	return data[off], true
}

func (ar *actionReplay) readROMH(uint16) (uint8, bool) { return 0, false }

func (ar *actionReplay) readIO1(addr uint16) (uint8, bool) {
	if ar.disabled {
		return 0, false
	}
	return 0, true
}

func (ar *actionReplay) writeIO1(addr uint16, data uint8) bool {
	if ar.disabled {
		return false
	}
	ar.bank = int(data & 0x03)
	ar.ramEnabled = data&0x20 != 0
	ar.disabled = data&0x04 != 0
	return true
}

func (ar *actionReplay) readIO2(addr uint16) (uint8, bool) {
	if ar.disabled {
		return 0, false
	}
	return ar.ram[addr&0xff], true
}

func (ar *actionReplay) writeIO2(addr uint16, data uint8) bool {
	if ar.disabled || !ar.ramEnabled {
		return false
	}
	ar.ram[addr&0xff] = data
	return true
}

func (ar *actionReplay) listen(uint16, uint8) {}
