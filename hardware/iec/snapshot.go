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

package iec

import "github.com/jetsetilly/gopher64/errors"

// MarshalBinary captures what every device on the bus is currently
// driving: one byte per device (host plus the two possible drives), each
// bit recording one line's state.
func (b *Bus) MarshalBinary() ([]byte, error) {
	out := make([]byte, deviceCount)
	for d := Device(0); d < deviceCount; d++ {
		var v byte
		if b.atn[d] {
			v |= 0x01
		}
		if b.clk[d] {
			v |= 0x02
		}
		if b.data[d] {
			v |= 0x04
		}
		if b.autoAck[d] {
			v |= 0x08
		}
		out[d] = v
	}
	return out, nil
}

// UnmarshalBinary restores a Bus captured by MarshalBinary.
func (b *Bus) UnmarshalBinary(data []byte) error {
	if len(data) != int(deviceCount) {
		return errors.Errorf("iec: corrupt snapshot (want %d bytes, got %d)", deviceCount, len(data))
	}
	for d := Device(0); d < deviceCount; d++ {
		v := data[d]
		b.atn[d] = v&0x01 != 0
		b.clk[d] = v&0x02 != 0
		b.data[d] = v&0x04 != 0
		b.autoAck[d] = v&0x08 != 0
	}
	return nil
}
