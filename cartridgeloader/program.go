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

// Program is a single machine-language program with the load address it
// should be placed at, the form every PRG, P00, and T64-archived file
// ultimately reduces to once unwrapped.
type Program struct {
	Name        string
	LoadAddress uint16
	Data        []byte
}

// Program extracts the single program a PRG or P00 file holds. T64
// archives can hold more than one; use Programs for those.
func (ld Loader) Program() (Program, error) {
	switch ld.Format {
	case FormatPRG:
		return decodePRG(ld.Filename, ld.raw)
	case FormatP00:
		return decodeP00(ld.Filename, ld.raw)
	default:
		progs, err := ld.Programs()
		if err != nil {
			return Program{}, err
		}
		if len(progs) == 0 {
			return Program{}, errors.Errorf("cartridgeloader: %s contains no programs", ld.Filename)
		}
		return progs[0], nil
	}
}

// Programs extracts every program a T64 archive holds, in directory order.
// For single-program formats it returns a one-element slice.
func (ld Loader) Programs() ([]Program, error) {
	switch ld.Format {
	case FormatT64:
		return decodeT64(ld.raw)
	case FormatPRG:
		p, err := decodePRG(ld.Filename, ld.raw)
		return []Program{p}, err
	case FormatP00:
		p, err := decodeP00(ld.Filename, ld.raw)
		return []Program{p}, err
	default:
		return nil, errors.Errorf("cartridgeloader: %s is not a program container", ld.Format)
	}
}

func decodePRG(name string, raw []byte) (Program, error) {
	if len(raw) < 2 {
		return Program{}, errors.Errorf("cartridgeloader: PRG file %s is too short to contain a load address", name)
	}
	return Program{
		Name:        name,
		LoadAddress: binary.LittleEndian.Uint16(raw[:2]),
		Data:        raw[2:],
	}, nil
}

// decodeP00 unwraps a PC64 .P00 container: a fixed 26-byte signature and
// filename field, followed by an ordinary two-byte-prefixed PRG body.
func decodeP00(name string, raw []byte) (Program, error) {
	const headerSize = 26
	if len(raw) < headerSize || string(raw[:7]) != "C64File" {
		return Program{}, errors.Errorf("cartridgeloader: %s is not a P00 file", name)
	}
	return decodePRG(name, raw[headerSize:])
}

// decodeT64 walks a T64 archive's directory and returns every entry it
// finds as a Program, reading each one's bytes straight out of the
// archive's data area rather than copying via an intermediate PRG buffer.
func decodeT64(raw []byte) ([]Program, error) {
	const (
		headerSize   = 64
		entrySize    = 32
		directoryOff = headerSize
	)
	if len(raw) < headerSize+entrySize {
		return nil, errors.Errorf("cartridgeloader: T64 archive is too short")
	}

	maxEntries := int(binary.LittleEndian.Uint16(raw[0x22:0x24]))
	if maxEntries <= 0 {
		maxEntries = 1
	}

	var programs []Program
	for i := 0; i < maxEntries; i++ {
		off := directoryOff + i*entrySize
		if off+entrySize > len(raw) {
			break
		}
		entry := raw[off : off+entrySize]
		entryType := entry[0]
		if entryType == 0 {
			continue
		}

		loadAddress := binary.LittleEndian.Uint16(entry[2:4])
		endAddress := binary.LittleEndian.Uint16(entry[4:6])
		dataOffset := binary.LittleEndian.Uint32(entry[8:12])
		name := trimPETSCIIName(entry[16:32])

		length := int(endAddress) - int(loadAddress)
		if length <= 0 || int(dataOffset)+length > len(raw) {
			continue
		}

		programs = append(programs, Program{
			Name:        name,
			LoadAddress: loadAddress,
			Data:        raw[dataOffset : int(dataOffset)+length],
		})
	}

	return programs, nil
}

func trimPETSCIIName(b []byte) string {
	end := len(b)
	for end > 0 && (b[end-1] == 0x20 || b[end-1] == 0x00) {
		end--
	}
	return string(b[:end])
}
