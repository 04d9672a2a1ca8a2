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
	"bytes"
	"path/filepath"
	"strings"
)

// Format identifies the shape of a loaded image.
type Format int

const (
	FormatUnknown Format = iota
	FormatD64            // raw sector-ordered disk image
	FormatG64            // GCR bitstream disk image, variable track length
	FormatT64            // tape archive container holding one or more programs
	FormatPRG            // a single program with a two-byte load address prefix
	FormatP00            // a single program wrapped in a PC64 header
	FormatTAP            // raw cassette pulse-width capture
	FormatCRT            // cartridge ROM image with mapper header
	FormatSnapshot       // this emulator's own saved-state format (see snapshot)
)

func (f Format) String() string {
	switch f {
	case FormatD64:
		return "D64"
	case FormatG64:
		return "G64"
	case FormatT64:
		return "T64"
	case FormatPRG:
		return "PRG"
	case FormatP00:
		return "P00"
	case FormatTAP:
		return "TAP"
	case FormatCRT:
		return "CRT"
	case FormatSnapshot:
		return "VSF"
	default:
		return "unknown"
	}
}

// sniff decides a Format from name's extension, falling back to a magic
// header check for the formats that carry one (G64, T64, CRT, TAP), since
// extensions are a convention, not a guarantee, and embedded data has no
// extension at all.
func sniff(name string, raw []byte) Format {
	switch strings.ToUpper(filepath.Ext(name)) {
	case ".D64":
		return FormatD64
	case ".G64":
		return FormatG64
	case ".T64":
		return FormatT64
	case ".PRG":
		return FormatPRG
	case ".P00":
		return FormatP00
	case ".TAP":
		return FormatTAP
	case ".CRT":
		return FormatCRT
	case ".VSF":
		return FormatSnapshot
	}

	switch {
	case bytes.HasPrefix(raw, []byte("GCR-1541")):
		return FormatG64
	case bytes.HasPrefix(raw, []byte("C64 tape image")):
		return FormatTAP
	case bytes.HasPrefix(raw, []byte("C64 CARTRIDGE")):
		return FormatCRT
	case bytes.HasPrefix(raw, []byte("C64File")):
		return FormatP00
	case len(raw) >= 32 && bytes.HasPrefix(raw, []byte("C64S tape image file")):
		return FormatT64
	case len(raw) == d64SectorCount*bytesPerSector || len(raw) == d64SectorCount*bytesPerSector+errorBytesD64:
		return FormatD64
	}

	return FormatUnknown
}
