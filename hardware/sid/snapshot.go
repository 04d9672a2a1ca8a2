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

package sid

import "github.com/jetsetilly/gopher64/errors"

const voiceBinLen = 7
const snapshotLen = voiceBinLen*3 + 4 + 2

// MarshalBinary captures the register file: all three voices, the shared
// filter/volume registers, and OSC3/ENV3. ReadPotX/Y and the rendering
// engine are wiring, not state, and are not part of the snapshot.
func (s *SID) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, snapshotLen)
	for i := range s.Voices {
		v := &s.Voices[i]
		b = append(b, v.FreqLo, v.FreqHi, v.PulseLo, v.PulseHi, v.Control, v.AttackDecay, v.SustainRelease)
	}
	b = append(b, s.filterCutoffLo, s.filterCutoffHi, s.resonanceFilter, s.modeVolume)
	b = append(b, s.osc3, s.env3)
	return b, nil
}

// UnmarshalBinary restores a SID captured by MarshalBinary. The caller
// should Plumb an engine afterwards if live/recorded audio output is
// wanted; a nil engine is perfectly valid (a silent SID), exactly as after
// NewSID.
func (s *SID) UnmarshalBinary(data []byte) error {
	if len(data) != snapshotLen {
		return errors.Errorf("sid: corrupt snapshot (want %d bytes, got %d)", snapshotLen, len(data))
	}
	off := 0
	for i := range s.Voices {
		v := &s.Voices[i]
		v.FreqLo, v.FreqHi, v.PulseLo, v.PulseHi, v.Control, v.AttackDecay, v.SustainRelease =
			data[off], data[off+1], data[off+2], data[off+3], data[off+4], data[off+5], data[off+6]
		off += voiceBinLen
	}
	s.filterCutoffLo, s.filterCutoffHi, s.resonanceFilter, s.modeVolume = data[off], data[off+1], data[off+2], data[off+3]
	off += 4
	s.osc3, s.env3 = data[off], data[off+1]
	return nil
}
