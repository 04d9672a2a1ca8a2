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

// ocean is hardware type 5: up to 64 banks of 8K (or, for the largest
// games like Terminator 2, paired into 16K banks mapping both ROML and
// ROMH simultaneously). Bank selection is a single register at $DE00;
// only the low 6 bits are meaningful.
type ocean struct {
	gameHigh  bool
	exromHigh bool
	banks     [][]byte // one entry per 8K bank, in load order
	loBanks   [][]byte // ROMH half of a 16K bank, when present
	bank      int
}

func newOcean(h header, chips []chipPacket) (mapper, error) {
	o := &ocean{gameHigh: h.gameHigh, exromHigh: h.exromHigh}
	for _, c := range chips {
		switch c.loadAddress {
		case 0x8000:
			o.banks = append(o.banks, c.data)
		case 0xA000:
			o.loBanks = append(o.loBanks, c.data)
		}
	}
	return o, nil
}

func (o *ocean) initialise() { o.bank = 0 }
func (o *ocean) game() bool  { return o.gameHigh }
func (o *ocean) exrom() bool { return o.exromHigh }
func (o *ocean) nmi() bool   { return false }
func (o *ocean) reset()      { o.bank = 0 }

func (o *ocean) readROML(addr uint16) (uint8, bool) {
	if o.bank >= len(o.banks) {
		return 0, false
	}
	data := o.banks[o.bank]
	off := int(addr - 0x8000)
	if off >= len(data) {
		return 0, false
	}
	return data[off], true
}

func (o *ocean) readROMH(addr uint16) (uint8, bool) {
	if o.bank >= len(o.loBanks) {
		return 0, false
	}
	data := o.loBanks[o.bank]
	off := int(addr - 0xA000)
	if off >= len(data) {
		return 0, false
	}
	return data[off], true
}

func (o *ocean) readIO1(uint16) (uint8, bool) { return 0, false }

// writeIO1 is the bank-select register. A real Ocean board decodes any
// address in the $DE00 page, not just $DE00 itself.
func (o *ocean) writeIO1(addr uint16, data uint8) bool {
	o.bank = int(data & 0x3f)
	return true
}

func (o *ocean) readIO2(uint16) (uint8, bool)  { return 0, false }
func (o *ocean) writeIO2(uint16, uint8) bool   { return false }
func (o *ocean) listen(uint16, uint8)          {}
