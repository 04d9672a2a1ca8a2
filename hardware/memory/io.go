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

// The $D000-$DFFF window subdivides into seven occupants. VIC-II and the
// two CIAs only decode a handful of address bits, so their register files
// mirror repeatedly across their 1KB (VIC, colour RAM) or 256-byte (CIA)
// windows; this is a well known, software-visible quirk and several
// fastloaders rely on it.
const (
	vicBase      = 0xD000
	vicRegisters = 0x40 // VIC-II decodes 6 address bits
	sidBase      = 0xD400
	sidRegisters = 0x20 // SID decodes 5 address bits
	colorRAMBase = 0xD800
	cia1Base     = 0xDC00
	cia2Base     = 0xDD00
	ciaRegisters = 0x10 // each CIA decodes 4 address bits
	io1Base      = 0xDE00
	io2Base      = 0xDF00
)

func (mem *Memory) readIO(address uint16) (uint8, error) {
	switch {
	case address < sidBase:
		return mem.vic.Read(vicBase + (address-vicBase)%vicRegisters)
	case address < colorRAMBase:
		return mem.sid.Read(sidBase + (address-sidBase)%sidRegisters)
	case address < cia1Base:
		// colour RAM is a nibble wide; the unused upper nibble floats to
		// whatever the VIC last drove onto the bus.
		return mem.colorRAM[address-colorRAMBase]&0x0f | mem.lastBusValue&0xf0, nil
	case address < cia2Base:
		return mem.cia1.Read(cia1Base + (address-cia1Base)%ciaRegisters)
	case address < io1Base:
		return mem.cia2.Read(cia2Base + (address-cia2Base)%ciaRegisters)
	case address < io2Base:
		if v, ok := mem.cart.ReadIO1(address); ok {
			return v, nil
		}
		return mem.lastBusValue, nil
	default:
		if v, ok := mem.cart.ReadIO2(address); ok {
			return v, nil
		}
		return mem.lastBusValue, nil
	}
}

func (mem *Memory) writeIO(address uint16, data uint8) error {
	switch {
	case address < sidBase:
		return mem.vic.Write(vicBase+(address-vicBase)%vicRegisters, data)
	case address < colorRAMBase:
		return mem.sid.Write(sidBase+(address-sidBase)%sidRegisters, data)
	case address < cia1Base:
		mem.colorRAM[address-colorRAMBase] = data & 0x0f
		return nil
	case address < cia2Base:
		return mem.cia1.Write(cia1Base+(address-cia1Base)%ciaRegisters, data)
	case address < io1Base:
		return mem.cia2.Write(cia2Base+(address-cia2Base)%ciaRegisters, data)
	case address < io2Base:
		mem.cart.WriteIO1(address, data)
		return nil
	default:
		mem.cart.WriteIO2(address, data)
		return nil
	}
}

// NoteVICBusValue records the most recent byte the VIC-II drove onto the
// bus during its own DMA cycles, used as the open-bus fill value for reads
// that land on an address nothing answers.
func (mem *Memory) NoteVICBusValue(v byte) {
	mem.lastBusValue = v
}
