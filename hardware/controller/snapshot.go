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

package controller

import "github.com/jetsetilly/gopher64/errors"

// MarshalBinary captures a Joystick's switch state.
func (j *Joystick) MarshalBinary() ([]byte, error) {
	return []byte{j.bits}, nil
}

// UnmarshalBinary restores a Joystick captured by MarshalBinary.
func (j *Joystick) UnmarshalBinary(data []byte) error {
	if len(data) != 1 {
		return errors.Errorf("controller: corrupt joystick snapshot (want 1 byte, got %d)", len(data))
	}
	j.bits = data[0]
	return nil
}

// MarshalBinary captures a Paddle's position and button state.
func (p *Paddle) MarshalBinary() ([]byte, error) {
	var pressed byte
	if p.Pressed {
		pressed = 1
	}
	return []byte{p.Position, pressed}, nil
}

// UnmarshalBinary restores a Paddle captured by MarshalBinary.
func (p *Paddle) UnmarshalBinary(data []byte) error {
	if len(data) != 2 {
		return errors.Errorf("controller: corrupt paddle snapshot (want 2 bytes, got %d)", len(data))
	}
	p.Position = data[0]
	p.Pressed = data[1] != 0
	return nil
}

const mouseSnapshotLen = 1 + 4 + 4 + 1 + 1 + 1

// MarshalBinary captures a Mouse's model (first byte), accumulated motion,
// button state and quadrature phase.
func (m *Mouse) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, mouseSnapshotLen)
	b = append(b, byte(m.Model))
	b = append(b, byte(m.dx), byte(m.dx>>8), byte(m.dx>>16), byte(m.dx>>24))
	b = append(b, byte(m.dy), byte(m.dy>>8), byte(m.dy>>16), byte(m.dy>>24))
	var flags byte
	if m.left {
		flags |= 0x01
	}
	if m.right {
		flags |= 0x02
	}
	b = append(b, flags)
	b = append(b, m.quadX, m.quadY)
	return b, nil
}

// UnmarshalBinary restores a Mouse captured by MarshalBinary.
func (m *Mouse) UnmarshalBinary(data []byte) error {
	if len(data) != mouseSnapshotLen {
		return errors.Errorf("controller: corrupt mouse snapshot (want %d bytes, got %d)", mouseSnapshotLen, len(data))
	}
	m.Model = MouseModel(data[0])
	m.dx = int(int32(uint32(data[1]) | uint32(data[2])<<8 | uint32(data[3])<<16 | uint32(data[4])<<24))
	m.dy = int(int32(uint32(data[5]) | uint32(data[6])<<8 | uint32(data[7])<<16 | uint32(data[8])<<24))
	flags := data[9]
	m.left = flags&0x01 != 0
	m.right = flags&0x02 != 0
	m.quadX, m.quadY = data[10], data[11]
	return nil
}
