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

package vic

import "github.com/jetsetilly/gopher64/errors"

const spriteLen = 16
const snapshotLen = spriteLen*8 + 7 + 5 + 5 + 8 + 2 + 2 + 2 + 2 + 1 + 2

// MarshalBinary captures the raster/sprite state machine and the register
// file. Timing and Bus are supplied by the caller (NewVIC/Plumb) and are
// not part of the snapshot, and neither is Frame: it is this cycle's
// rendered output, derived entirely from the state captured here plus
// whatever VICBankRead/ColorRAM answer, and carries nothing that affects
// any future Cycle call.
func (v *VIC) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, snapshotLen)
	for i := range v.Sprites {
		b = append(b, marshalSprite(&v.Sprites[i])...)
	}
	b = append(b, v.mobX8, v.mobYE, v.mobXE, v.mobMC, v.mobPri, v.mobCollSS, v.mobCollSB)
	b = append(b, v.cr1, v.cr2, v.memPtr, v.irqFlags, v.irqMask)
	b = append(b, v.border, v.bg0, v.bg1, v.bg2, v.bg3)
	b = append(b, v.spriteColor[:]...)
	b = append(b, v.spriteMC0, v.spriteMC1)
	b = append(b, byte(v.rasterLine), byte(v.rasterLine>>8))
	b = append(b, byte(v.rasterLatch), byte(v.rasterLatch>>8))
	b = append(b, byte(v.cycleInLine), byte(v.cycleInLine>>8))
	var flags byte
	if v.denLatched {
		flags |= 0x01
	}
	if v.badLine {
		flags |= 0x02
	}
	if v.ba {
		flags |= 0x04
	}
	b = append(b, flags)
	b = append(b, v.lightpenX, v.lightpenY)
	return b, nil
}

// UnmarshalBinary restores a VIC captured by MarshalBinary. Timing, Bus and
// NotifyIRQ are untouched - the caller must Plumb afterwards exactly as
// after NewVIC.
func (v *VIC) UnmarshalBinary(data []byte) error {
	if len(data) != snapshotLen {
		return errors.Errorf("vic: corrupt snapshot (want %d bytes, got %d)", snapshotLen, len(data))
	}
	off := 0
	for i := range v.Sprites {
		unmarshalSprite(&v.Sprites[i], data[off:off+spriteLen])
		off += spriteLen
	}
	v.mobX8, v.mobYE, v.mobXE, v.mobMC, v.mobPri, v.mobCollSS, v.mobCollSB =
		data[off], data[off+1], data[off+2], data[off+3], data[off+4], data[off+5], data[off+6]
	off += 7
	v.cr1, v.cr2, v.memPtr, v.irqFlags, v.irqMask = data[off], data[off+1], data[off+2], data[off+3], data[off+4]
	off += 5
	v.border, v.bg0, v.bg1, v.bg2, v.bg3 = data[off], data[off+1], data[off+2], data[off+3], data[off+4]
	off += 5
	copy(v.spriteColor[:], data[off:off+8])
	off += 8
	v.spriteMC0, v.spriteMC1 = data[off], data[off+1]
	off += 2
	v.rasterLine = int(data[off]) | int(data[off+1])<<8
	off += 2
	v.rasterLatch = uint16(data[off]) | uint16(data[off+1])<<8
	off += 2
	v.cycleInLine = int(data[off]) | int(data[off+1])<<8
	off += 2
	flags := data[off]
	v.denLatched = flags&0x01 != 0
	v.badLine = flags&0x02 != 0
	v.ba = flags&0x04 != 0
	off++
	v.lightpenX, v.lightpenY = data[off], data[off+1]
	return nil
}

func marshalSprite(s *Sprite) []byte {
	b := make([]byte, spriteLen)
	b[0], b[1] = byte(s.X), byte(s.X>>8)
	b[2], b[3] = byte(s.Y), byte(s.Y>>8)
	var flags byte
	if s.Enabled {
		flags |= 0x01
	}
	if s.Multicolor {
		flags |= 0x02
	}
	if s.ExpandX {
		flags |= 0x04
	}
	if s.ExpandY {
		flags |= 0x08
	}
	if s.Priority {
		flags |= 0x10
	}
	if s.dmaActive {
		flags |= 0x20
	}
	if s.expandFlip {
		flags |= 0x40
	}
	b[4] = flags
	b[5] = s.Color
	b[6] = s.dataPointer
	b[7] = byte(s.shiftReg)
	b[8] = byte(s.shiftReg >> 8)
	b[9] = byte(s.shiftReg >> 16)
	b[10] = byte(s.shiftReg >> 24)
	b[11] = byte(s.mcShiftReg)
	b[12] = byte(s.mcShiftReg >> 8)
	b[13] = byte(s.mcShiftReg >> 16)
	b[14] = byte(s.mcShiftReg >> 24)
	b[15] = s.mcPending
	return b
}

func unmarshalSprite(s *Sprite, data []byte) {
	s.X = int(data[0]) | int(data[1])<<8
	s.Y = int(data[2]) | int(data[3])<<8
	flags := data[4]
	s.Enabled = flags&0x01 != 0
	s.Multicolor = flags&0x02 != 0
	s.ExpandX = flags&0x04 != 0
	s.ExpandY = flags&0x08 != 0
	s.Priority = flags&0x10 != 0
	s.dmaActive = flags&0x20 != 0
	s.expandFlip = flags&0x40 != 0
	s.Color = data[5]
	s.dataPointer = data[6]
	s.shiftReg = uint32(data[7]) | uint32(data[8])<<8 | uint32(data[9])<<16 | uint32(data[10])<<24
	s.mcShiftReg = uint32(data[11]) | uint32(data[12])<<8 | uint32(data[13])<<16 | uint32(data[14])<<24
	s.mcPending = data[15]
}
