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

package cpu

import (
	"github.com/jetsetilly/gopher64/errors"
)

// snapshotLen is PC(2) + A + X + Y + SP + Status + flags(1).
const snapshotLen = 8

// MarshalBinary captures the register file: PC, A, X, Y, SP, the packed
// status byte, and the RdyFlg/Interrupted latches. The instruction
// sequencer's own micro-op state (LastResult) is not captured - a
// snapshot is only ever taken at an instruction boundary (see
// snapshot.Save), so there is never a pending micro-op to lose.
func (mc *CPU) MarshalBinary() ([]byte, error) {
	b := make([]byte, snapshotLen)
	b[0] = byte(mc.PC.Value())
	b[1] = byte(mc.PC.Value() >> 8)
	b[2] = mc.A.Value()
	b[3] = mc.X.Value()
	b[4] = mc.Y.Value()
	b[5] = mc.SP.Value()
	b[6] = mc.Status.Value()
	var flags byte
	if mc.RdyFlg {
		flags |= 0x01
	}
	if mc.Interrupted {
		flags |= 0x02
	}
	b[7] = flags
	return b, nil
}

// UnmarshalBinary restores a register file captured by MarshalBinary.
func (mc *CPU) UnmarshalBinary(data []byte) error {
	if len(data) != snapshotLen {
		return errors.Errorf("cpu: corrupt snapshot (want %d bytes, got %d)", snapshotLen, len(data))
	}
	mc.PC.Load(uint16(data[0]) | uint16(data[1])<<8)
	mc.A.Load(data[2])
	mc.X.Load(data[3])
	mc.Y.Load(data[4])
	mc.SP.Load(data[5])
	mc.Status.Load(data[6])
	mc.Status.Break = data[6]&0x10 != 0
	mc.RdyFlg = data[7]&0x01 != 0
	mc.Interrupted = data[7]&0x02 != 0
	return nil
}
