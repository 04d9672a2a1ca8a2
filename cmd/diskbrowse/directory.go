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

package main

import "github.com/jetsetilly/gopher64/errors"

const bytesPerSector = 256

// sectorsPerTrack mirrors cartridgeloader's own table - this package reads
// raw D64 bytes directly rather than going through a disk.Drive, since a
// directory listing has no need for the GCR bitstream a real drive head
// would see.
func sectorsPerTrack(track int) int {
	switch {
	case track <= 17:
		return 21
	case track <= 24:
		return 19
	case track <= 30:
		return 18
	default:
		return 17
	}
}

func sectorOffset(track, sector int) int {
	offset := 0
	for t := 1; t < track; t++ {
		offset += sectorsPerTrack(t)
	}
	return (offset + sector) * bytesPerSector
}

func readSector(raw []byte, track, sector int) ([]byte, error) {
	off := sectorOffset(track, sector)
	if off+bytesPerSector > len(raw) {
		return nil, errors.Errorf("diskbrowse: track %d sector %d is out of range", track, sector)
	}
	return raw[off : off+bytesPerSector], nil
}

// fileType names CBM DOS's directory entry file type nibble.
type fileType int

const (
	typeDEL fileType = iota
	typeSEQ
	typePRG
	typeUSR
	typeREL
	typeUnknown
)

func (t fileType) String() string {
	switch t {
	case typeDEL:
		return "DEL"
	case typeSEQ:
		return "SEQ"
	case typePRG:
		return "PRG"
	case typeUSR:
		return "USR"
	case typeREL:
		return "REL"
	default:
		return "???"
	}
}

// entry is one file as it appears in a D64's directory track.
type entry struct {
	Name     string
	Type     fileType
	Locked   bool
	Closed   bool
	Blocks   int
}

// diskName and diskID come from the BAM sector, track 18 sector 0.
type volumeInfo struct {
	Name string
	ID   string
}

// readBAM decodes track 18 sector 0: the block availability map, disk
// name and ID. CBM DOS stores both the name and ID PETSCII-padded with
// 0xA0, which petsciiString strips.
func readBAM(raw []byte) (volumeInfo, error) {
	sec, err := readSector(raw, 18, 0)
	if err != nil {
		return volumeInfo{}, err
	}
	return volumeInfo{
		Name: petsciiString(sec[0x90:0xa0]),
		ID:   petsciiString(sec[0xa2:0xa4]),
	}, nil
}

// readDirectory walks the linked list of directory sectors starting at
// track 18 sector 1, decoding each of the 8 thirty-two-byte entries per
// sector CBM DOS packs in. A zero track byte in the link field ends the
// chain; a file type of 0 with the "closed" bit clear is a deleted or
// never-finalised entry and is skipped, matching how the real DOS's
// directory command treats it.
func readDirectory(raw []byte) ([]entry, error) {
	var entries []entry

	track, sector := 18, 1
	seen := map[[2]int]bool{}
	for track != 0 {
		if seen[[2]int{track, sector}] {
			return nil, errors.Errorf("diskbrowse: directory chain loops back on itself")
		}
		seen[[2]int{track, sector}] = true

		sec, err := readSector(raw, track, sector)
		if err != nil {
			return nil, err
		}

		nextTrack, nextSector := int(sec[0]), int(sec[1])

		for i := 0; i < 8; i++ {
			base := 2 + i*32
			rawType := sec[base]
			if rawType == 0 {
				continue
			}

			name := petsciiString(sec[base+3 : base+3+16])
			blocks := int(sec[base+0x1c]) | int(sec[base+0x1d])<<8

			entries = append(entries, entry{
				Name:   name,
				Type:   fileType(rawType & 0x07),
				Locked: rawType&0x40 != 0,
				Closed: rawType&0x80 != 0,
				Blocks: blocks,
			})
		}

		track, sector = nextTrack, nextSector
	}

	return entries, nil
}

// petsciiString trims 0xA0 padding and passes the remaining bytes through
// unchanged: uppercase letters and digits are identical in PETSCII and
// ASCII, and no other character is translated.
func petsciiString(b []byte) string {
	end := len(b)
	for end > 0 && b[end-1] == 0xa0 {
		end--
	}
	return string(b[:end])
}
