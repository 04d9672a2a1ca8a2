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
	"io"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// ringReader is the io.Reader oto's player pulls PCM from. Write appends
// samples (as little-endian float32 bytes) from the emulation thread;
// Read drains them from oto's own playback goroutine. When the ring runs
// dry Read emits silence rather than blocking, since oto expects Read to
// return promptly.
type ringReader struct {
	mu  sync.Mutex
	buf []byte
}

func (r *ringReader) push(b []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buf = append(r.buf, b...)
}

func (r *ringReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.buf) == 0 {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}
	n := copy(p, r.buf)
	r.buf = r.buf[n:]
	return n, nil
}

// LiveSink plays samples through the host's audio device via oto/v3.
type LiveSink struct {
	ring   *ringReader
	ctx    *oto.Context
	player oto.Player
}

// NewLiveSink opens the default audio device at SampleRate, mono,
// 32-bit float samples, and starts playback immediately.
func NewLiveSink() (*LiveSink, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   0,
	})
	if err != nil {
		return nil, fmt.Errorf("audio: opening oto context: %w", err)
	}
	<-ready

	ring := &ringReader{}
	player := ctx.NewPlayer(ring)
	player.Play()

	return &LiveSink{ring: ring, ctx: ctx, player: player}, nil
}

// Write implements Sink, appending samples to the playback ring.
func (s *LiveSink) Write(samples []float32) (int, error) {
	raw := make([]byte, len(samples)*4)
	for i, v := range samples {
		bits := math.Float32bits(v)
		raw[i*4+0] = byte(bits)
		raw[i*4+1] = byte(bits >> 8)
		raw[i*4+2] = byte(bits >> 16)
		raw[i*4+3] = byte(bits >> 24)
	}
	s.ring.push(raw)
	return len(samples), nil
}

// Close implements Sink.
func (s *LiveSink) Close() error {
	return s.player.Close()
}

var _ io.Reader = (*ringReader)(nil)
