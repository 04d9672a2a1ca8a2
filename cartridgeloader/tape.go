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

package cartridgeloader

import (
	"encoding/binary"

	"github.com/jetsetilly/gopher64/errors"
)

// TapePulse is one half-wave pulse length, in cycles of the machine's
// system clock, as read off the cassette port's data line. A Datasette
// motor simply reads these back at a steady clock rate; there is no
// equivalent of a disk's rotating head position to model.
type TapePulse uint32

// TapeImage is a decoded TAP capture: a flat sequence of pulse lengths
// with the file's declared clock rate, which tap2c64-style tools record
// in its 20-byte header.
type TapeImage struct {
	Video  byte // 0 = PAL, 1 = NTSC, matching the TAP header's machine byte
	Pulses []TapePulse
}

// TapeImage decodes a loaded TAP capture.
func (ld Loader) TapeImage() (TapeImage, error) {
	if ld.Format != FormatTAP {
		return TapeImage{}, errors.Errorf("cartridgeloader: %s is not a tape image", ld.Format)
	}

	const headerSize = 20
	raw := ld.raw
	if len(raw) < headerSize || string(raw[:12]) != "C64 tape ima" {
		return TapeImage{}, errors.Errorf("cartridgeloader: not a TAP file")
	}

	version := raw[12]
	video := raw[14]
	dataLength := binary.LittleEndian.Uint32(raw[16:20])

	body := raw[headerSize:]
	if int(dataLength) < len(body) {
		body = body[:dataLength]
	}

	img := TapeImage{Video: video}
	for i := 0; i < len(body); i++ {
		v := body[i]
		if v != 0 {
			img.Pulses = append(img.Pulses, TapePulse(v)*8)
			continue
		}
		// version 0 has no long-pulse extension; version 1+ encodes pulses
		// longer than 255*8 cycles as a zero byte followed by a 24-bit
		// little-endian cycle count.
		if version == 0 || i+3 >= len(body) {
			continue
		}
		long := uint32(body[i+1]) | uint32(body[i+2])<<8 | uint32(body[i+3])<<16
		img.Pulses = append(img.Pulses, TapePulse(long))
		i += 3
	}

	return img, nil
}
