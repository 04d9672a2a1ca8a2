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

// zaxxon is hardware type 19: Ultimax mode permanently, with a 4K ROML
// bank switched by any read within $8000-$9FFF (the address itself, not
// its data, selects the bank: bit 12 of the address picks one of two 4K
// halves of the first chip) and a fixed 8K ROMH bank relocated to $E000.
type zaxxon struct {
	lo0, lo1 []byte
	hi       []byte
}

func newZaxxon(h header, chips []chipPacket) (mapper, error) {
	z := &zaxxon{}
	for _, c := range chips {
		switch {
		case c.loadAddress == 0x8000 && len(c.data) >= 0x2000:
			z.lo0 = c.data[0x0000:0x1000]
			z.lo1 = c.data[0x1000:0x2000]
		case c.loadAddress == 0xA000:
			z.hi = c.data
		}
	}
	return z, nil
}

func (z *zaxxon) initialise()          {}
func (z *zaxxon) game() bool           { return false }
func (z *zaxxon) exrom() bool          { return true }
func (z *zaxxon) nmi() bool            { return false }
func (z *zaxxon) reset()               {}
func (z *zaxxon) listen(uint16, uint8) {}

func (z *zaxxon) readROML(addr uint16) (uint8, bool) {
	bank := z.lo0
	if addr&0x1000 != 0 {
		bank = z.lo1
	}
	if bank == nil {
		return 0, false
	}
	off := int(addr & 0x0fff)
	if off >= len(bank) {
		return 0, false
	}
	return bank[off], true
}

func (z *zaxxon) readROMH(addr uint16) (uint8, bool) {
	if z.hi == nil {
		return 0, false
	}
	off := int(addr - 0xE000)
	if off < 0 || off >= len(z.hi) {
		return 0, false
	}
	return z.hi[off], true
}

func (z *zaxxon) readIO1(uint16) (uint8, bool) { return 0, false }
func (z *zaxxon) writeIO1(uint16, uint8) bool  { return false }
func (z *zaxxon) readIO2(uint16) (uint8, bool) { return 0, false }
func (z *zaxxon) writeIO2(uint16, uint8) bool  { return false }
