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

// Package emulation owns the run loop: pacing the host machine and its
// attached disk drives against real time, and against each other, given
// that (per hardware/clocks) their oscillators are nominally but not
// exactly the same frequency.
package emulation

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jetsetilly/gopher64/audio"
	"github.com/jetsetilly/gopher64/hardware/clocks"
	"github.com/jetsetilly/gopher64/hardware/machine"
)

// Scheduler runs a machine in real time. The frame rate it targets is
// derived from the region's refresh rate, not hardcoded, since PAL and NTSC
// disagree.
type Scheduler struct {
	Machine *machine.Machine
	Region  clocks.Region

	Sinks []audio.Sink
	audioEngine *audio.Engine

	// DriveCyclesPerHostCycle lets a caller nudge the drive clock away from
	// a perfect 1:1 ratio with the host clock, modelling the two free-
	// running oscillators' real-world drift; 1.0 means "assume they're
	// exactly locked", which is what every built-in cmd/* front end uses.
	DriveCyclesPerHostCycle float64

	paused bool
	speed  float64 // 1.0 = real time; reported by Speed
}

// NewScheduler wires a Scheduler to run the given machine, rendering its
// SID output through engine and fanning it out to every sink supplied.
func NewScheduler(m *machine.Machine, region clocks.Region, engine *audio.Engine, sinks ...audio.Sink) *Scheduler {
	m.SID.Plumb(engine)
	return &Scheduler{
		Machine:                 m,
		Region:                  region,
		Sinks:                   sinks,
		audioEngine:             engine,
		DriveCyclesPerHostCycle: 1.0,
		speed:                   1.0,
	}
}

// Pause stops Run's loop from advancing the emulation (audio keeps
// flowing silence, the UI keeps refreshing) until Resume is called.
func (s *Scheduler) Pause()  { s.paused = true }
func (s *Scheduler) Resume() { s.paused = false }

// Speed reports the current playback rate relative to real time.
func (s *Scheduler) Speed() float64 { return s.speed }

// SetSpeed changes the playback rate; 2.0 runs twice as fast, 0.5 half
// speed. Values <= 0 are ignored.
func (s *Scheduler) SetSpeed(factor float64) {
	if factor > 0 {
		s.speed = factor
	}
}

// driveBudget accumulates fractional drive cycles owed, since
// DriveCyclesPerHostCycle is rarely an integer.
type driveBudget struct {
	owed float64
}

func (b *driveBudget) take(rate float64) int {
	b.owed += rate
	n := int(b.owed)
	b.owed -= float64(n)
	return n
}

// Run drives the emulation in real time until ctx is cancelled, calling
// onFrame once per completed video frame (typically to repaint a UI) and
// feeding rendered audio to every configured Sink. The host machine and
// each attached drive are advanced from their own goroutine via
// errgroup, synchronised only by the host's per-frame audio handoff -
// mirroring how the real machine and a real 1541 run on genuinely
// independent clocks, communicating only over the serial bus.
func (s *Scheduler) Run(ctx context.Context, onFrame func()) error {
	g, ctx := errgroup.WithContext(ctx)

	cyclesPerFrame := s.Region.CyclesPerLine() * s.Region.Lines()
	frameInterval := time.Duration(float64(time.Second) / s.Region.RefreshRate())

	audioBuf := make([]float32, audio.SampleRate/int(s.Region.RefreshRate())+1)

	g.Go(func() error {
		ticker := time.NewTicker(frameInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if s.paused {
					for i := range audioBuf {
						audioBuf[i] = 0
					}
					for _, sink := range s.Sinks {
						if _, err := sink.Write(audioBuf); err != nil {
							return fmt.Errorf("emulation: audio sink: %w", err)
						}
					}
					if onFrame != nil {
						onFrame()
					}
					continue
				}
				for n := 0; n < int(float64(cyclesPerFrame)*s.speed); n++ {
					if err := s.Machine.Cycle(); err != nil {
						return fmt.Errorf("emulation: host cycle: %w", err)
					}
				}

				s.audioEngine.Render(audioBuf)
				for _, sink := range s.Sinks {
					if _, err := sink.Write(audioBuf); err != nil {
						return fmt.Errorf("emulation: audio sink: %w", err)
					}
				}

				if onFrame != nil {
					onFrame()
				}
			}
		}
	})

	for i, d := range s.Machine.Drives {
		if d == nil {
			continue
		}
		drive := d
		_ = i
		g.Go(func() error {
			budget := driveBudget{}
			ticker := time.NewTicker(frameInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					if s.paused {
						continue
					}
					n := budget.take(float64(cyclesPerFrame) * s.DriveCyclesPerHostCycle * s.speed)
					for j := 0; j < n; j++ {
						if err := drive.Cycle(); err != nil {
							return fmt.Errorf("emulation: drive cycle: %w", err)
						}
					}
				}
			}
		})
	}

	return g.Wait()
}

// Close releases every configured audio sink.
func (s *Scheduler) Close() error {
	var firstErr error
	for _, sink := range s.Sinks {
		if err := sink.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
