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

// Package audio turns a SID register stream into actual samples and sends
// them somewhere: a live speaker (Sink backed by oto/v3) or a capture file
// (Sink backed by go-audio's wav encoder). hardware/sid never imports
// either library directly - the Engine type here is what it calls through,
// keeping the DSP and its output plumbing out of the hardware model the
// same way the register file is kept out of knowing what a speaker is.
package audio

import "math"

// SampleRate is the fixed output rate every Sink in this package produces.
// A real 6581/8580 has no notion of a sample rate; this is purely a choice
// made at the boundary between chip emulation and digital audio.
const SampleRate = 44100

// Sink receives interleaved mono float32 samples in the range [-1, 1].
type Sink interface {
	Write(samples []float32) (int, error)
	Close() error
}

// voiceState tracks the minimum a naive oscillator/envelope model needs:
// phase accumulators for the three SID voices, driven by whatever register
// values Engine.WriteRegister last observed. This is not a
// cycle-accurate analogue model of the 6581's actual filter and envelope
// curves - that is explicitly out of scope (see DESIGN.md) - just enough
// of a synthesiser that a Sink has real, register-reactive samples to
// carry.
type voiceState struct {
	freq     uint16
	pulse    uint16
	control  byte
	phase    float64
	envLevel float64
	gate     bool
}

// Engine implements sid.Engine, turning register writes into a running
// audio stream that Render pulls fixed-size blocks from.
type Engine struct {
	voices [3]voiceState
	volume byte
}

// NewEngine returns an Engine with all three voices silent.
func NewEngine() *Engine {
	return &Engine{}
}

// WriteRegister implements sid.Engine.
func (e *Engine) WriteRegister(address uint16, data uint8) {
	if address == 0x18 {
		e.volume = data & 0x0f
		return
	}
	if address >= 0x15 {
		return
	}
	voice := &e.voices[address/7]
	switch address % 7 {
	case 0:
		voice.freq = voice.freq&0xff00 | uint16(data)
	case 1:
		voice.freq = voice.freq&0x00ff | uint16(data)<<8
	case 2:
		voice.pulse = voice.pulse&0xff00 | uint16(data)
	case 3:
		voice.pulse = voice.pulse&0x00ff | uint16(data)<<8
	case 4:
		voice.control = data
		voice.gate = data&0x01 != 0
	}
}

// Reset implements sid.Engine.
func (e *Engine) Reset() {
	*e = Engine{}
}

// Render fills buf with the next len(buf) samples at SampleRate, mixing
// the three voices' naive oscillators (triangle/sawtooth/pulse/noise
// selected by the waveform control bits) and applying a simple linear
// envelope gated by the voice's gate bit - enough to make Sinks carry a
// recognisable, reactive signal without claiming SID-accurate timbre.
func (e *Engine) Render(buf []float32) {
	const twoPi = 2 * math.Pi
	for i := range buf {
		var mix float64
		for v := range e.voices {
			voice := &e.voices[v]
			if voice.control == 0 {
				continue
			}
			step := float64(voice.freq) * 0.0596 / SampleRate // SID's documented Hz-per-register-count constant
			voice.phase += step
			if voice.phase >= 1 {
				voice.phase -= math.Floor(voice.phase)
			}
			if voice.gate && voice.envLevel < 1 {
				voice.envLevel += 0.001
			} else if !voice.gate && voice.envLevel > 0 {
				voice.envLevel -= 0.0005
			}

			var sample float64
			switch {
			case voice.control&0x10 != 0: // triangle
				sample = 2*math.Abs(2*voice.phase-1) - 1
			case voice.control&0x20 != 0: // sawtooth
				sample = 2*voice.phase - 1
			case voice.control&0x40 != 0: // pulse
				duty := float64(voice.pulse) / 4096
				if voice.phase < duty {
					sample = 1
				} else {
					sample = -1
				}
			case voice.control&0x80 != 0: // noise (approximated, not LFSR-accurate)
				sample = math.Sin(voice.phase * twoPi * 13)
			}
			mix += sample * voice.envLevel
		}
		buf[i] = float32(mix/3) * (float32(e.volume) / 15)
	}
}
