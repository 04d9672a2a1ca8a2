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

// Package cartridge implements the CRT cartridge container format and the
// per-hardware-type bank-switching logic that turns a CRT image's raw CHIP
// packets into something that answers hardware/expansion.Port.
package cartridge

import (
	"encoding/binary"
	"fmt"

	"github.com/jetsetilly/gopher64/errors"
)

const crtSignature = "C64 CARTRIDGE   "

// chipPacket is one CHIP block from a CRT file: a bank of ROM or RAM data
// destined for a particular load address.
type chipPacket struct {
	bank        int
	loadAddress uint16
	romRAM      bool // true for ROM, false for RAM
	data        []byte
}

// header is the fixed 64-byte CRT file header.
type header struct {
	hardwareType uint16
	exromHigh    bool
	gameHigh     bool
	name         string
}

// parseCRT decodes a complete CRT file image into a header and its CHIP
// packets. It does not interpret the hardware type; that's the registry's
// job in mapper.go.
func parseCRT(data []byte) (header, []chipPacket, error) {
	var h header

	if len(data) < 0x40 || string(data[0:16]) != crtSignature {
		return h, nil, errors.Errorf(errors.CartridgeFileError, "not a CRT file")
	}

	headerLen := binary.BigEndian.Uint32(data[16:20])
	if headerLen < 0x40 || int(headerLen) > len(data) {
		return h, nil, errors.Errorf(errors.CartridgeFileError, "corrupt CRT header length")
	}

	h.hardwareType = binary.BigEndian.Uint16(data[22:24])
	h.exromHigh = data[25] != 0
	h.gameHigh = data[24] != 0

	nameEnd := 0x20
	for nameEnd < 0x40 && data[nameEnd] != 0 {
		nameEnd++
	}
	h.name = string(data[0x20:nameEnd])

	var chips []chipPacket
	pos := int(headerLen)
	for pos+16 <= len(data) {
		if string(data[pos:pos+4]) != "CHIP" {
			break
		}
		packetLen := binary.BigEndian.Uint32(data[pos+4 : pos+8])
		chipType := binary.BigEndian.Uint16(data[pos+8 : pos+10])
		bank := binary.BigEndian.Uint16(data[pos+10 : pos+12])
		loadAddr := binary.BigEndian.Uint16(data[pos+12 : pos+14])
		romSize := binary.BigEndian.Uint16(data[pos+14 : pos+16])

		dataStart := pos + 16
		dataEnd := dataStart + int(romSize)
		if dataEnd > len(data) || dataEnd > pos+int(packetLen) {
			return h, nil, errors.Errorf(errors.CartridgeFileError, "corrupt CHIP packet at offset %d", pos)
		}

		chips = append(chips, chipPacket{
			bank:        int(bank),
			loadAddress: loadAddr,
			romRAM:      chipType != 1, // type 2 is "Flash ROM"... still ROM; 1 is RAM
			data:        data[dataStart:dataEnd],
		})

		if packetLen == 0 {
			break
		}
		pos += int(packetLen)
	}

	if len(chips) == 0 {
		return h, nil, errors.Errorf(errors.CartridgeFileError, "CRT file has no CHIP packets")
	}

	return h, chips, nil
}

func (h header) String() string {
	return fmt.Sprintf("%s (type %d)", h.name, h.hardwareType)
}
