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

// geoRAM is hardware type 21: a pure RAM expansion (512K in the common
// configuration), reached through a single 256-byte window in IO1. It never
// maps ROM at all; GAME/EXROM stay high so the PLA treats $8000-$9FFF as
// RAM, and the cartridge answers only IO1 (the RAM window) and writes to
// IO2 (its registers).
//
// Two registers at $DFFE/$DFFF select the 256-byte page within the current
// 16K block and the 16K block itself; the selected 256 bytes are then
// visible through the whole of IO1 ($DE00-$DEFF), mirrored.
type geoRAM struct {
	ram      []byte
	block    int
	page     int
}

const geoRAMSize = 512 * 1024

func newGeoRAM(h header, chips []chipPacket) (mapper, error) {
	return &geoRAM{ram: make([]byte, geoRAMSize)}, nil
}

func (g *geoRAM) initialise() { g.block, g.page = 0, 0 }
func (g *geoRAM) game() bool  { return true }
func (g *geoRAM) exrom() bool { return true }
func (g *geoRAM) nmi() bool   { return false }
func (g *geoRAM) reset()      { g.block, g.page = 0, 0 }

func (g *geoRAM) readROML(uint16) (uint8, bool) { return 0, false }
func (g *geoRAM) readROMH(uint16) (uint8, bool) { return 0, false }

func (g *geoRAM) offset(addr uint16) int {
	return (g.block*16*1024 + g.page*256 + int(addr&0xff)) % len(g.ram)
}

func (g *geoRAM) readIO1(addr uint16) (uint8, bool) {
	return g.ram[g.offset(addr)], true
}

func (g *geoRAM) writeIO1(addr uint16, data uint8) bool {
	g.ram[g.offset(addr)] = data
	return true
}

func (g *geoRAM) readIO2(uint16) (uint8, bool) { return 0, false }

func (g *geoRAM) writeIO2(addr uint16, data uint8) bool {
	switch addr & 0xff {
	case 0xfe:
		g.page = int(data)
	case 0xff:
		g.block = int(data)
	default:
		return false
	}
	return true
}

func (g *geoRAM) listen(uint16, uint8) {}
