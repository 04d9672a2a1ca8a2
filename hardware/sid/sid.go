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

// Package sid implements the 6581/8580's register file: three voices of
// frequency/pulse-width/waveform/ADSR registers plus the shared filter and
// volume register, and the two registers the CPU reads back (POTX/POTY
// paddle values, and OSC3/ENV3 for the third voice's current output). The
// analogue synthesis itself - generating actual audio samples from this
// register state - is a DSP concern the audio package's Engine interface
// below is handed off to; this package only ever exercises the bits
// software can read and write.
package sid

// register offsets within the 32-byte (mirrored across $D400-$D7FF)
// window.
const (
	voiceStride = 7 // FREQLO, FREQHI, PWLO, PWHI, CONTROL, ATTACKDECAY, SUSTAINRELEASE

	FCLO    = 0x15
	FCHI    = 0x16
	RESFILT = 0x17
	MODEVOL = 0x18
	POTX    = 0x19
	POTY    = 0x1A
	OSC3    = 0x1B
	ENV3    = 0x1C
)

// Voice is one of the three oscillator/envelope channels.
type Voice struct {
	FreqLo, FreqHi   byte
	PulseLo, PulseHi byte
	Control          byte
	AttackDecay      byte
	SustainRelease   byte
}

// Engine is implemented by whatever turns register state into actual
// samples - the audio package's live (oto/v3) and wav-dump sinks both sit
// behind a resampler that implements this, so SID itself never depends on
// an audio library. Reset is called whenever the chip's own Reset is.
type Engine interface {
	WriteRegister(address uint16, data uint8)
	Reset()
}

// SID is the register file. PotX/PotY are supplied by whatever paddle or
// mouse hardware is plugged into the controller ports the SID chip shares
// wiring with; a nil ReadPot reads back the idle value $FF (no paddle
// connected pulls the line high through the 1M resistor).
type SID struct {
	Voices [3]Voice

	filterCutoffLo, filterCutoffHi byte
	resonanceFilter                byte
	modeVolume                     byte

	osc3, env3 byte

	ReadPotX func() byte
	ReadPotY func() byte

	engine Engine
}

// NewSID constructs a SID with no engine attached; Plumb wires one in.
func NewSID() *SID {
	s := &SID{}
	s.Reset()
	return s
}

// Plumb attaches the sample-generating engine. May be called again after a
// snapshot restore, since the engine itself is not part of a snapshot.
func (s *SID) Plumb(engine Engine) {
	s.engine = engine
}

func (s *SID) Reset() {
	*s = SID{ReadPotX: s.ReadPotX, ReadPotY: s.ReadPotY, engine: s.engine}
	if s.engine != nil {
		s.engine.Reset()
	}
}

func (s *SID) voiceRegister(n int, offset uint16) byte {
	v := &s.Voices[n]
	switch offset {
	case 0:
		return v.FreqLo
	case 1:
		return v.FreqHi
	case 2:
		return v.PulseLo
	case 3:
		return v.PulseHi
	case 4:
		return v.Control
	case 5:
		return v.AttackDecay
	default:
		return v.SustainRelease
	}
}

func (s *SID) setVoiceRegister(n int, offset uint16, data byte) {
	v := &s.Voices[n]
	switch offset {
	case 0:
		v.FreqLo = data
	case 1:
		v.FreqHi = data
	case 2:
		v.PulseLo = data
	case 3:
		v.PulseHi = data
	case 4:
		v.Control = data
	case 5:
		v.AttackDecay = data
	default:
		v.SustainRelease = data
	}
}

// Read implements the chip interface hardware/memory dispatches to. Most
// SID registers are write-only and read back as the last value the bus
// carried (we return 0, the common emulator approximation); POTX/POTY/
// OSC3/ENV3 are the real exceptions.
func (s *SID) Read(address uint16) (uint8, error) {
	reg := address & 0x1f
	switch {
	case reg < 0x15:
		voice := int(reg) / voiceStride
		if voice > 2 {
			return 0, nil
		}
		return 0, nil // write-only on real hardware
	case reg == POTX:
		if s.ReadPotX != nil {
			return s.ReadPotX(), nil
		}
		return 0xff, nil
	case reg == POTY:
		if s.ReadPotY != nil {
			return s.ReadPotY(), nil
		}
		return 0xff, nil
	case reg == OSC3:
		return s.osc3, nil
	case reg == ENV3:
		return s.env3, nil
	default:
		return 0, nil
	}
}

// Write implements the chip interface hardware/memory dispatches to.
func (s *SID) Write(address uint16, data uint8) error {
	reg := address & 0x1f
	switch {
	case reg < 0x15:
		voice := int(reg) / voiceStride
		s.setVoiceRegister(voice, reg%voiceStride, data)
	case reg == FCLO:
		s.filterCutoffLo = data
	case reg == FCHI:
		s.filterCutoffHi = data
	case reg == RESFILT:
		s.resonanceFilter = data
	case reg == MODEVOL:
		s.modeVolume = data
	}
	if s.engine != nil {
		s.engine.WriteRegister(reg, data)
	}
	return nil
}
