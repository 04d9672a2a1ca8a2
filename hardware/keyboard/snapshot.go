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

package keyboard

import "github.com/jetsetilly/gopher64/errors"

// MarshalBinary captures which keys are currently held.
func (m *Matrix) MarshalBinary() ([]byte, error) {
	b := make([]byte, 8)
	copy(b, m.state[:])
	return b, nil
}

// UnmarshalBinary restores a Matrix captured by MarshalBinary.
func (m *Matrix) UnmarshalBinary(data []byte) error {
	if len(data) != 8 {
		return errors.Errorf("keyboard: corrupt snapshot (want 8 bytes, got %d)", len(data))
	}
	copy(m.state[:], data)
	return nil
}

// MarshalBinary captures whether RESTORE is currently held.
func (r *RestoreKey) MarshalBinary() ([]byte, error) {
	if r.held {
		return []byte{1}, nil
	}
	return []byte{0}, nil
}

// UnmarshalBinary restores a RestoreKey captured by MarshalBinary.
func (r *RestoreKey) UnmarshalBinary(data []byte) error {
	if len(data) != 1 {
		return errors.Errorf("keyboard: corrupt restore-key snapshot (want 1 byte, got %d)", len(data))
	}
	r.held = data[0] != 0
	return nil
}
