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

package machine

import "github.com/jetsetilly/gopher64/hardware/memory"

// vicBus adapts Memory's bank-relative view to the vic.Bus interface,
// adding the fixed colour-RAM path and the CIA2-controlled 16K bank
// select that sit outside Memory's own address decoding.
type vicBus struct {
	mem  *memory.Memory
	bank int // 0-3, set by CIA2 Port A bits 0-1 (inverted)
}

func (b *vicBus) VICRead(address uint16) uint8 {
	if address >= 0xd800 && address < 0xdc00 {
		return b.mem.ColorRAM(address - 0xd800)
	}
	return b.mem.VICBankRead(b.bank, address)
}
