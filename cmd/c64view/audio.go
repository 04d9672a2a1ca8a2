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

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/jetsetilly/gopher64/audio"
)

// sdlAudioSink implements audio.Sink by queuing mono 16-bit samples to an
// SDL2 audio device, rather than going through oto/v3 - giving this front
// end its own audio path entirely inside the windowing toolkit it already
// links, instead of pulling in a second audio library alongside it.
type sdlAudioSink struct {
	device sdl.AudioDeviceID
}

func newSDLAudioSink() (*sdlAudioSink, error) {
	spec := &sdl.AudioSpec{
		Freq:     audio.SampleRate,
		Format:   sdl.AUDIO_S16LSB,
		Channels: 1,
		Samples:  1024,
	}
	obtained := &sdl.AudioSpec{}
	device, err := sdl.OpenAudioDevice("", false, spec, obtained, 0)
	if err != nil {
		return nil, fmt.Errorf("c64view: opening audio device: %w", err)
	}
	sdl.PauseAudioDevice(device, false)
	return &sdlAudioSink{device: device}, nil
}

func (s *sdlAudioSink) Write(samples []float32) (int, error) {
	pcm := make([]int16, len(samples))
	for i, v := range samples {
		if v > 1 {
			v = 1
		}
		if v < -1 {
			v = -1
		}
		pcm[i] = int16(v * 32767)
	}
	if err := sdl.QueueAudio(s.device, int16SliceToBytes(pcm)); err != nil {
		return 0, err
	}
	return len(samples), nil
}

func (s *sdlAudioSink) Close() error {
	sdl.CloseAudioDevice(s.device)
	return nil
}

func int16SliceToBytes(pcm []int16) []byte {
	buf := make([]byte, len(pcm)*2)
	for i, v := range pcm {
		buf[i*2+0] = byte(v)
		buf[i*2+1] = byte(v >> 8)
	}
	return buf
}

var _ audio.Sink = (*sdlAudioSink)(nil)
