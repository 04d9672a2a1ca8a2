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

package bus

// The 6510's three interrupt vectors, fixed at the top of the address
// space. Whatever is currently banked into $FFFA-$FFFF (kernal ROM, a
// cartridge, or RAM) supplies the actual target address.
const (
	NMI   = 0xfffa
	Reset = 0xfffc
	BRK   = 0xfffe
	IRQ   = 0xfffe
)
