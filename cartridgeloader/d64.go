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
	"github.com/jetsetilly/gopher64/errors"
	"github.com/jetsetilly/gopher64/hardware/disk"
)

const (
	bytesPerSector = 256
	d64SectorCount = 683 // standard 35-track image, no error-info appendix
	errorBytesD64  = d64SectorCount
)

// sectorsPerTrack mirrors the 1541's four speed zones: outer tracks are
// physically longer so they're formatted with more sectors, all spun at
// the same angular velocity (that's what the drive's bitCursor rotating at
// a fixed rate per Cycle models; this table only decides how a D64's flat
// byte stream maps onto track/sector addresses).
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

// DiskImage turns a loaded D64 or G64 image into a disk.Disk ready to hand
// to disk.Drive. G64 images already store their tracks as GCR bitstreams
// and are used almost verbatim; D64 images are flat sector dumps that this
// function encodes into GCR itself, the same conversion the 1541's DOS
// performs when formatting a disk for real.
func (ld Loader) DiskImage() (*disk.Disk, error) {
	switch ld.Format {
	case FormatD64:
		return decodeD64(ld.raw)
	case FormatG64:
		return decodeG64(ld.raw)
	default:
		return nil, errors.Errorf("cartridgeloader: %s is not a disk image", ld.Format)
	}
}

func decodeD64(raw []byte) (*disk.Disk, error) {
	if len(raw) < d64SectorCount*bytesPerSector {
		return nil, errors.Errorf("cartridgeloader: D64 image is truncated (%d bytes)", len(raw))
	}

	d := disk.NewBlankDisk()
	for track := 1; track <= 35; track++ {
		n := sectorsPerTrack(track)
		var gcr []byte

		for sector := 0; sector < n; sector++ {
			off := sectorOffset(track, sector)
			block := raw[off : off+bytesPerSector]

			// five sync bytes, then the data block marker (0x07) and
			// checksum (XOR of all 256 data bytes) GCR-encoded alongside
			// the sector payload, matching the 1541 ROM's own GCR data
			// block layout.
			gcr = append(gcr, 0xff, 0xff, 0xff, 0xff, 0xff)

			checksum := byte(0)
			for _, b := range block {
				checksum ^= b
			}

			header := [4]byte{0x07, block[0], block[1], block[2]}
			gcr = append(gcr, disk.EncodeBlock(header)[:]...)

			for i := 3; i+4 <= bytesPerSector; i += 4 {
				var group [4]byte
				copy(group[:], block[i:i+4])
				enc := disk.EncodeBlock(group)
				gcr = append(gcr, enc[:]...)
			}

			tail := [4]byte{block[bytesPerSector-1], checksum, 0, 0}
			gcr = append(gcr, disk.EncodeBlock(tail)[:]...)
		}

		d.Tracks[track-1] = disk.Track{GCR: gcr, BitCount: len(gcr) * 8}
	}

	return d, nil
}

func decodeG64(raw []byte) (*disk.Disk, error) {
	const headerSize = 0x0c
	if len(raw) < headerSize || string(raw[:8]) != "GCR-1541" {
		return nil, errors.Errorf("cartridgeloader: not a G64 image")
	}

	numTracks := int(raw[9])
	if numTracks <= 0 || numTracks > 84 {
		numTracks = 84
	}

	d := disk.NewBlankDisk()
	trackOffsetTable := raw[headerSize:]

	for half := 0; half < numTracks && half/2 < len(d.Tracks); half++ {
		entry := half * 4
		if entry+4 > len(trackOffsetTable) {
			break
		}
		offset := int(trackOffsetTable[entry]) | int(trackOffsetTable[entry+1])<<8 |
			int(trackOffsetTable[entry+2])<<16 | int(trackOffsetTable[entry+3])<<24
		if offset == 0 || offset+2 > len(raw) {
			continue
		}

		length := int(raw[offset]) | int(raw[offset+1])<<8
		start := offset + 2
		if start+length > len(raw) {
			continue
		}

		idx := half / 2
		d.Tracks[idx] = disk.Track{GCR: raw[start : start+length], BitCount: length * 8}
	}

	return d, nil
}
