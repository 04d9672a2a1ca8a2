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

package disk

import "github.com/jetsetilly/gopher64/errors"

const viaLen = 11
const driveSnapshotLen = cpuSnapshotLen + ramSize + viaLen*2 + 4 + 4 + 1

// cpuSnapshotLen mirrors hardware/cpu's own snapshot length; kept as a
// local constant rather than importing cpu's unexported const so this
// package's framing doesn't depend on cpu's internal layout, only on the
// length MarshalBinary actually returns (checked at restore time).
const cpuSnapshotLen = 8

// MarshalBinary captures everything that makes a Drive's own emulation
// state distinct from another: its CPU, RAM, both VIAs, and the head
// position/motor/cursor state. The mounted Disk (the removable medium) and
// the ROM image are not included - like hardware/memory's ROMs, they are
// externally supplied and are re-attached by whoever restores the
// snapshot, not regenerated from it.
func (d *Drive) MarshalBinary() ([]byte, error) {
	cpuBytes, err := d.cpu.MarshalBinary()
	if err != nil {
		return nil, err
	}
	if len(cpuBytes) != cpuSnapshotLen {
		return nil, errors.Errorf("disk: unexpected cpu snapshot length (got %d)", len(cpuBytes))
	}

	b := make([]byte, 0, driveSnapshotLen)
	b = append(b, cpuBytes...)
	b = append(b, d.ram[:]...)
	b = append(b, marshalVIA(d.via1)...)
	b = append(b, marshalVIA(d.via2)...)
	b = append(b, byte(d.headTrack), byte(d.headTrack>>8), byte(d.headTrack>>16), byte(d.headTrack>>24))
	b = append(b, byte(d.bitCursor), byte(d.bitCursor>>8), byte(d.bitCursor>>16), byte(d.bitCursor>>24))
	var flags byte
	if d.motorOn {
		flags |= 0x01
	}
	if d.ledOn {
		flags |= 0x02
	}
	if d.byteReady {
		flags |= 0x04
	}
	flags |= d.stepPhase << 4
	b = append(b, flags)
	return b, nil
}

// UnmarshalBinary restores a Drive captured by MarshalBinary. The caller
// must still assign Disk (via d.Disk = ...) and re-wire PlumbIEC
// afterwards, exactly as after NewDrive.
func (d *Drive) UnmarshalBinary(data []byte) error {
	if len(data) != driveSnapshotLen {
		return errors.Errorf("disk: corrupt snapshot (want %d bytes, got %d)", driveSnapshotLen, len(data))
	}
	off := 0
	if err := d.cpu.UnmarshalBinary(data[off : off+cpuSnapshotLen]); err != nil {
		return err
	}
	off += cpuSnapshotLen
	copy(d.ram[:], data[off:off+ramSize])
	off += ramSize
	unmarshalVIA(d.via1, data[off:off+viaLen])
	off += viaLen
	unmarshalVIA(d.via2, data[off:off+viaLen])
	off += viaLen
	d.headTrack = int(int32(uint32(data[off]) | uint32(data[off+1])<<8 | uint32(data[off+2])<<16 | uint32(data[off+3])<<24))
	off += 4
	d.bitCursor = int(int32(uint32(data[off]) | uint32(data[off+1])<<8 | uint32(data[off+2])<<16 | uint32(data[off+3])<<24))
	off += 4
	flags := data[off]
	d.motorOn = flags&0x01 != 0
	d.ledOn = flags&0x02 != 0
	d.byteReady = flags&0x04 != 0
	d.stepPhase = flags >> 4
	return nil
}

func marshalVIA(v *via) []byte {
	b := make([]byte, viaLen)
	b[0], b[1], b[2], b[3] = v.portA, v.portB, v.ddrA, v.ddrB
	b[4], b[5] = byte(v.t1Counter), byte(v.t1Counter>>8)
	b[6], b[7] = byte(v.t1Latch), byte(v.t1Latch>>8)
	var flags byte
	if v.t1Running {
		flags |= 0x01
	}
	if v.t1IRQ {
		flags |= 0x02
	}
	if v.t1FreeRun {
		flags |= 0x04
	}
	b[8] = flags
	b[9], b[10] = v.irqFlags, v.irqMask
	return b
}

func unmarshalVIA(v *via, data []byte) {
	v.portA, v.portB, v.ddrA, v.ddrB = data[0], data[1], data[2], data[3]
	v.t1Counter = uint16(data[4]) | uint16(data[5])<<8
	v.t1Latch = uint16(data[6]) | uint16(data[7])<<8
	flags := data[8]
	v.t1Running = flags&0x01 != 0
	v.t1IRQ = flags&0x02 != 0
	v.t1FreeRun = flags&0x04 != 0
	v.irqFlags, v.irqMask = data[9], data[10]
}
