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

package random_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jetsetilly/gopher64/random"
)

type fixedSource struct{}

func (fixedSource) GetCoords() random.Coords {
	return random.Coords{Frame: 100, Line: 32, Cycle: 10}
}

func TestRewindableIsDeterministic(t *testing.T) {
	a := random.NewRandom(fixedSource{})
	b := random.NewRandom(fixedSource{})
	a.ZeroSeed = true
	b.ZeroSeed = true

	for i := 1; i < 256; i++ {
		assert.Equal(t, a.Rewindable(i), b.Rewindable(i))
	}
}

func TestNoRewindIsNotPinnedToZero(t *testing.T) {
	a := random.NewRandom(fixedSource{})
	a.ZeroSeed = false

	seen := map[int]bool{}
	for i := 0; i < 50; i++ {
		seen[a.NoRewind(1_000_000)] = true
	}
	assert.Greater(t, len(seen), 1)
}
