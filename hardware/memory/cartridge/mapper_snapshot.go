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

package cartridge

import "github.com/jetsetilly/gopher64/errors"

// MarshalBinary captures the current bank register.
func (o *ocean) MarshalBinary() ([]byte, error) {
	return []byte{byte(o.bank)}, nil
}

// UnmarshalBinary restores an ocean captured by MarshalBinary.
func (o *ocean) UnmarshalBinary(data []byte) error {
	if len(data) != 1 {
		return errors.Errorf("cartridge: corrupt ocean snapshot (want 1 byte, got %d)", len(data))
	}
	o.bank = int(data[0])
	return nil
}

// MarshalBinary captures the current bank register.
func (fp *funPlay) MarshalBinary() ([]byte, error) {
	return []byte{byte(fp.bank)}, nil
}

// UnmarshalBinary restores a funPlay captured by MarshalBinary.
func (fp *funPlay) UnmarshalBinary(data []byte) error {
	if len(data) != 1 {
		return errors.Errorf("cartridge: corrupt funPlay snapshot (want 1 byte, got %d)", len(data))
	}
	fp.bank = int(data[0])
	return nil
}

const actionReplayLen = 2 + 256

// MarshalBinary captures the bank/control latches and the onboard 256
// byte freeze-buffer RAM.
func (ar *actionReplay) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, actionReplayLen)
	b = append(b, byte(ar.bank))
	var flags byte
	if ar.ramEnabled {
		flags |= 0x01
	}
	if ar.disabled {
		flags |= 0x02
	}
	if ar.frozen {
		flags |= 0x04
	}
	b = append(b, flags)
	b = append(b, ar.ram[:]...)
	return b, nil
}

// UnmarshalBinary restores an actionReplay captured by MarshalBinary.
func (ar *actionReplay) UnmarshalBinary(data []byte) error {
	if len(data) != actionReplayLen {
		return errors.Errorf("cartridge: corrupt actionReplay snapshot (want %d bytes, got %d)", actionReplayLen, len(data))
	}
	ar.bank = int(data[0])
	flags := data[1]
	ar.ramEnabled = flags&0x01 != 0
	ar.disabled = flags&0x02 != 0
	ar.frozen = flags&0x04 != 0
	copy(ar.ram[:], data[2:2+256])
	return nil
}

// MarshalBinary captures the block/page registers and the full 512K RAM
// expansion.
func (g *geoRAM) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, 4+len(g.ram))
	b = append(b, byte(g.block), byte(g.block>>8), byte(g.page), byte(g.page>>8))
	b = append(b, g.ram...)
	return b, nil
}

// UnmarshalBinary restores a geoRAM captured by MarshalBinary.
func (g *geoRAM) UnmarshalBinary(data []byte) error {
	if len(data) != 4+len(g.ram) {
		return errors.Errorf("cartridge: corrupt geoRAM snapshot (want %d bytes, got %d)", 4+len(g.ram), len(data))
	}
	g.block = int(uint16(data[0]) | uint16(data[1])<<8)
	g.page = int(uint16(data[2]) | uint16(data[3])<<8)
	copy(g.ram, data[4:])
	return nil
}

// MarshalBinary captures the control register and freeze state machine.
func (f *finalIII) MarshalBinary() ([]byte, error) {
	var flags byte
	if f.frozen {
		flags |= 0x01
	}
	if f.qLow {
		flags |= 0x02
	}
	if f.hidden {
		flags |= 0x04
	}
	return []byte{f.control, flags}, nil
}

// UnmarshalBinary restores a finalIII captured by MarshalBinary.
func (f *finalIII) UnmarshalBinary(data []byte) error {
	if len(data) != 2 {
		return errors.Errorf("cartridge: corrupt finalIII snapshot (want 2 bytes, got %d)", len(data))
	}
	f.control = data[0]
	flags := data[1]
	f.frozen = flags&0x01 != 0
	f.qLow = flags&0x02 != 0
	f.hidden = flags&0x04 != 0
	return nil
}

const epyxLen = 8 + 8 + 1

// MarshalBinary captures the discharge capacitor's own clock and charge
// state.
func (e *epyx) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, epyxLen)
	for _, v := range []uint64{e.cycle, e.dischargeCycle} {
		for i := 0; i < 8; i++ {
			b = append(b, byte(v>>(8*i)))
		}
	}
	var charged byte
	if e.charged {
		charged = 1
	}
	b = append(b, charged)
	return b, nil
}

// UnmarshalBinary restores an epyx captured by MarshalBinary.
func (e *epyx) UnmarshalBinary(data []byte) error {
	if len(data) != epyxLen {
		return errors.Errorf("cartridge: corrupt epyx snapshot (want %d bytes, got %d)", epyxLen, len(data))
	}
	readU64 := func(b []byte) uint64 {
		var v uint64
		for i := 0; i < 8; i++ {
			v |= uint64(b[i]) << (8 * i)
		}
		return v
	}
	e.cycle = readU64(data[0:8])
	e.dischargeCycle = readU64(data[8:16])
	e.charged = data[16] != 0
	return nil
}
