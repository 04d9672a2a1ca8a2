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

// Package keyboard implements the 8x8 matrix CIA1's Port A/Port B pins are
// wired to: CIA1 drives columns out on whichever port the ROM has selected
// and reads rows back on the other, and a key is "pressed" by pulling the
// intersection of its row and column low. This package holds that matrix
// as host-independent state; cmd/* packages translate OS key events into
// Down/Up calls using whatever key-to-position table suits their toolkit.
package keyboard

// Matrix is the 8x8 grid of key switches. Rows and columns are both
// active-low, matching the CIA ports they're wired to.
type Matrix struct {
	state [8]byte // bit set = key held, indexed [row][col]
}

// NewMatrix returns an empty (no keys held) matrix.
func NewMatrix() *Matrix {
	return &Matrix{}
}

// Down marks the key at (row, col) held.
func (m *Matrix) Down(row, col int) {
	m.state[row&7] |= 1 << uint(col&7)
}

// Up marks the key at (row, col) released.
func (m *Matrix) Up(row, col int) {
	m.state[row&7] &^= 1 << uint(col&7)
}

// Reset releases every key, as if the user lifted every finger.
func (m *Matrix) Reset() {
	m.state = [8]byte{}
}

// ScanColumns returns the byte CIA1 Port B should read back when Port A is
// driving the given columns byte (0 bits select columns to scan, matching
// the ROM convention of writing a column low to select it). The result's
// bits are 0 for any row with a held key in a selected column, 1 otherwise -
// again active low, so an idle keyboard with no key selected reads $FF.
func (m *Matrix) ScanColumns(columnsOut byte) byte {
	var rows byte = 0xff
	for col := 0; col < 8; col++ {
		if columnsOut&(1<<uint(col)) != 0 {
			continue // column not selected (driven high)
		}
		for row := 0; row < 8; row++ {
			if m.state[row]&(1<<uint(col)) != 0 {
				rows &^= 1 << uint(row)
			}
		}
	}
	return rows
}

// ScanRows is the mirror operation used when the ROM has swapped which
// port drives columns and which reads rows (as the KERNAL sometimes does
// to debounce SHIFT/RESTORE independently).
func (m *Matrix) ScanRows(rowsOut byte) byte {
	var cols byte = 0xff
	for row := 0; row < 8; row++ {
		if rowsOut&(1<<uint(row)) != 0 {
			continue
		}
		for col := 0; col < 8; col++ {
			if m.state[row]&(1<<uint(col)) != 0 {
				cols &^= 1 << uint(col)
			}
		}
	}
	return cols
}

// RestoreKey tracks whether RESTORE is held; RESTORE is wired
// directly to the NMI line rather than into the matrix, so machine wiring
// polls this separately from the CIA1 port merge.
type RestoreKey struct {
	held bool
}

func (r *RestoreKey) Down() { r.held = true }
func (r *RestoreKey) Up()   { r.held = false }
func (r *RestoreKey) Held() bool { return r.held }
