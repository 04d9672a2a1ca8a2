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

import "github.com/jetsetilly/gopher64/errors"

const snapshotLen = 0x10000 + colorRAMSize + 2

// MarshalBinary captures RAM, colour RAM and the 6510 I/O port's two
// latches. The three ROM images are not included - they are loaded
// externally and are immutable for the life of the process, not part of
// the machine's mutable state - and neither is the bank table, which
// Plumb/AttachCartridge recompute from ioPort/dataDirection and whatever
// cartridge is plugged back in after restore.
func (mem *Memory) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, snapshotLen)
	b = append(b, mem.ram[:]...)
	b = append(b, mem.colorRAM[:]...)
	b = append(b, mem.dataDirection, mem.ioPort)
	return b, nil
}

// UnmarshalBinary restores RAM, colour RAM and the I/O port captured by
// MarshalBinary. The caller must call Plumb afterwards to re-wire the chip
// registers and cartridge port, exactly as after NewMemory.
func (mem *Memory) UnmarshalBinary(data []byte) error {
	if len(data) != snapshotLen {
		return errors.Errorf("memory: corrupt snapshot (want %d bytes, got %d)", snapshotLen, len(data))
	}
	copy(mem.ram[:], data[:0x10000])
	copy(mem.colorRAM[:], data[0x10000:0x10000+colorRAMSize])
	off := 0x10000 + colorRAMSize
	mem.dataDirection, mem.ioPort = data[off], data[off+1]
	mem.recomputeBanks()
	return nil
}
