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

package audio

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WavDumpSink captures the emulated machine's sound to a 16-bit PCM wav
// file on disk, for recording a session without needing a live speaker -
// the same role oto's LiveSink fills for a listener, but written to disk
// instead of played.
type WavDumpSink struct {
	file    *os.File
	encoder *wav.Encoder
	format  *audio.Format
}

// NewWavDumpSink creates (or truncates) path and prepares it to receive
// mono 16-bit samples at SampleRate.
func NewWavDumpSink(path string) (*WavDumpSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("audio: creating wav dump: %w", err)
	}
	format := &audio.Format{NumChannels: 1, SampleRate: SampleRate}
	enc := wav.NewEncoder(f, SampleRate, 16, 1, 1)
	return &WavDumpSink{file: f, encoder: enc, format: format}, nil
}

// Write implements Sink, quantising the float32 stream to 16-bit PCM and
// appending it to the wav file.
func (s *WavDumpSink) Write(samples []float32) (int, error) {
	ints := make([]int, len(samples))
	for i, v := range samples {
		if v > 1 {
			v = 1
		}
		if v < -1 {
			v = -1
		}
		ints[i] = int(v * 32767)
	}
	buf := &audio.IntBuffer{Format: s.format, Data: ints, SourceBitDepth: 16}
	if err := s.encoder.Write(buf); err != nil {
		return 0, fmt.Errorf("audio: writing wav samples: %w", err)
	}
	return len(samples), nil
}

// Close implements Sink, finalising the wav header and closing the file.
func (s *WavDumpSink) Close() error {
	if err := s.encoder.Close(); err != nil {
		return err
	}
	return s.file.Close()
}

var _ Sink = (*WavDumpSink)(nil)
var _ Sink = (*LiveSink)(nil)
