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

package cia

import "github.com/jetsetilly/gopher64/errors"

const timerLen = 5
const todLen = 13
const snapshotLen = 4 + timerLen*2 + todLen + 2 + 3 + 1

// MarshalBinary captures everything about a CIA that isn't supplied anew at
// construction: both ports' latched/direction bytes, both timers, the TOD
// clock, the interrupt control register's mask and pending flags, and the
// serial port shift register. Name and Revision are configuration, not
// state, and are not part of the snapshot.
func (c *CIA) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, snapshotLen)
	b = append(b, c.portA, c.portB, c.ddrA, c.ddrB)
	b = append(b, marshalTimer(&c.timerA)...)
	b = append(b, marshalTimer(&c.timerB)...)
	b = append(b, marshalTod(&c.tod)...)
	b = append(b, c.icrMask, c.icrFlags)
	b = append(b, c.sdr, c.crASPBits, c.crBAlarmBit)
	var flags byte
	if c.sdrOutPending {
		flags |= 0x01
	}
	flags |= byte(c.sdrBitsLeft&0x7f) << 1
	b = append(b, flags)
	return b, nil
}

// UnmarshalBinary restores a CIA captured by MarshalBinary. The caller must
// still assign ReadPortA/B and WritePortA/B afterwards (see
// hardware/machine.Machine.wirePorts), since hooks are never part of a
// snapshot.
func (c *CIA) UnmarshalBinary(data []byte) error {
	if len(data) != snapshotLen {
		return errors.Errorf("cia: corrupt snapshot (want %d bytes, got %d)", snapshotLen, len(data))
	}
	c.portA, c.portB, c.ddrA, c.ddrB = data[0], data[1], data[2], data[3]
	off := 4
	unmarshalTimer(&c.timerA, data[off:off+timerLen])
	off += timerLen
	unmarshalTimer(&c.timerB, data[off:off+timerLen])
	off += timerLen
	unmarshalTod(&c.tod, data[off:off+todLen])
	off += todLen
	c.icrMask, c.icrFlags = data[off], data[off+1]
	off += 2
	c.sdr, c.crASPBits, c.crBAlarmBit = data[off], data[off+1], data[off+2]
	off += 3
	flags := data[off]
	c.sdrOutPending = flags&0x01 != 0
	c.sdrBitsLeft = int(flags >> 1)
	return nil
}

func marshalTimer(t *timer) []byte {
	b := make([]byte, timerLen)
	b[0] = byte(t.latch)
	b[1] = byte(t.latch >> 8)
	b[2] = byte(t.counter)
	b[3] = byte(t.counter >> 8)
	var flags byte
	if t.running {
		flags |= 0x01
	}
	if t.oneShot {
		flags |= 0x02
	}
	if t.pbOn {
		flags |= 0x04
	}
	if t.toggle {
		flags |= 0x08
	}
	if t.pbState {
		flags |= 0x10
	}
	if t.justWritten {
		flags |= 0x20
	}
	flags |= byte(t.input) << 6
	b[4] = flags
	return b
}

func unmarshalTimer(t *timer, data []byte) {
	t.latch = uint16(data[0]) | uint16(data[1])<<8
	t.counter = uint16(data[2]) | uint16(data[3])<<8
	flags := data[4]
	t.running = flags&0x01 != 0
	t.oneShot = flags&0x02 != 0
	t.pbOn = flags&0x04 != 0
	t.toggle = flags&0x08 != 0
	t.pbState = flags&0x10 != 0
	t.justWritten = flags&0x20 != 0
	t.input = timerInput(flags >> 6)
}

func marshalTod(c *tod) []byte {
	b := make([]byte, todLen)
	b[0], b[1], b[2], b[3] = c.tenths, c.sec, c.min, c.hr
	b[4], b[5], b[6], b[7] = c.alarmTenths, c.alarmSec, c.alarmMin, c.alarmHr
	b[8], b[9], b[10], b[11] = c.latchTenths, c.latchSec, c.latchMin, c.latchHr
	var flags byte
	if c.running {
		flags |= 0x01
	}
	if c.latched {
		flags |= 0x02
	}
	if c.halted {
		flags |= 0x04
	}
	b[12] = flags
	return b
}

func unmarshalTod(c *tod, data []byte) {
	c.tenths, c.sec, c.min, c.hr = data[0], data[1], data[2], data[3]
	c.alarmTenths, c.alarmSec, c.alarmMin, c.alarmHr = data[4], data[5], data[6], data[7]
	c.latchTenths, c.latchSec, c.latchMin, c.latchHr = data[8], data[9], data[10], data[11]
	flags := data[12]
	c.running = flags&0x01 != 0
	c.latched = flags&0x02 != 0
	c.halted = flags&0x04 != 0
}
