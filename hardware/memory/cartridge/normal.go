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

// normal is hardware type 0: a single fixed bank, no bank-switching
// registers at all. Covers plain 4K/8K/16K games and Ultimax-mode
// cartridges (the CRT header's EXROM/GAME bits tell us which).
type normal struct {
	gameHigh  bool
	exromHigh bool
	roml      []byte
	romh      []byte
}

func newNormal(h header, chips []chipPacket) (mapper, error) {
	n := &normal{gameHigh: h.gameHigh, exromHigh: h.exromHigh}
	for _, c := range chips {
		switch {
		case c.loadAddress == 0x8000:
			n.roml = c.data
		case c.loadAddress == 0xA000 || c.loadAddress == 0xE000:
			n.romh = c.data
		}
	}
	return n, nil
}

func (n *normal) initialise()         {}
func (n *normal) game() bool          { return n.gameHigh }
func (n *normal) exrom() bool         { return n.exromHigh }
func (n *normal) listen(uint16, uint8) {}
func (n *normal) nmi() bool           { return false }
func (n *normal) reset()              {}

func (n *normal) readROML(addr uint16) (uint8, bool) {
	if n.roml == nil {
		return 0, false
	}
	off := int(addr - 0x8000)
	if off >= len(n.roml) {
		return 0, false
	}
	return n.roml[off], true
}

func (n *normal) readROMH(addr uint16) (uint8, bool) {
	if n.romh == nil {
		return 0, false
	}
	base := uint16(0xA000)
	if !n.gameHigh && n.exromHigh {
		base = 0xE000 // Ultimax mode maps ROMH at $E000
	}
	off := int(addr - base)
	if off < 0 || off >= len(n.romh) {
		return 0, false
	}
	return n.romh[off], true
}

func (n *normal) readIO1(uint16) (uint8, bool)        { return 0, false }
func (n *normal) writeIO1(uint16, uint8) bool         { return false }
func (n *normal) readIO2(uint16) (uint8, bool)        { return 0, false }
func (n *normal) writeIO2(uint16, uint8) bool         { return false }
