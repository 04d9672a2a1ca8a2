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

// Package random centralises the sources of nondeterminism in the emulator:
// the contents of RAM at power-on, and the floating value of an undriven
// data bus. A single source avoids the global math/rand state leaking
// between independently-seeded instances (see hardware/instance).
package random

import (
	"math/rand"
	"time"
)

// Coords identifies the point in the video signal a random draw was made at.
// It mirrors the fields a VIC-II raster position is described by (see
// hardware/vic), kept as a plain struct here to avoid a dependency cycle.
type Coords struct {
	Frame int
	Line  int
	Cycle int
}

// Source supplies the current raster position to the random package.
type Source interface {
	GetCoords() Coords
}

// Random is the preferred source of nondeterminism for one machine instance.
type Random struct {
	source Source

	// ZeroSeed forces Rewindable draws to be a deterministic function of the
	// current raster position, rather than true randomness. Used by
	// regression tests that require the same initial state on every run.
	ZeroSeed bool

	gen *rand.Rand
}

// NewRandom is the preferred method of initialisation for the Random type.
func NewRandom(source Source) *Random {
	r := &Random{source: source}
	r.gen = rand.New(rand.NewSource(time.Now().UnixNano()))
	return r
}

func (r *Random) seed() int64 {
	if r.ZeroSeed {
		c := r.source.GetCoords()
		return int64(c.Frame)*1_000_000 + int64(c.Line)*1_000 + int64(c.Cycle)
	}
	return time.Now().UnixNano()
}

// Rewindable returns a value in [0,n) that is a pure function of the current
// raster position when ZeroSeed is set. Two machines at the same raster
// position, with ZeroSeed set, will draw the same value, so that a rewound
// machine re-run from a snapshot reproduces identical "random" bus noise.
func (r *Random) Rewindable(n int) int {
	if n <= 0 {
		return 0
	}
	src := rand.New(rand.NewSource(r.seed()))
	return src.Intn(n)
}

// NoRewind returns a value in [0,n) drawn from a persistent generator that
// advances on every call. Unlike Rewindable, the sequence is not reproducible
// across a rewind — appropriate for one-off choices like the RAM pattern at
// power-on, which only ever happens once per machine lifetime.
func (r *Random) NoRewind(n int) int {
	if n <= 0 {
		return 0
	}
	if r.ZeroSeed {
		return rand.New(rand.NewSource(0)).Intn(n)
	}
	return r.gen.Intn(n)
}
