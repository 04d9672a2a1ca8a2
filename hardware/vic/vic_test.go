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

package vic_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jetsetilly/gopher64/hardware/vic"
)

type blankBus struct{}

func (blankBus) VICRead(uint16) uint8 { return 0 }

func runToLine(v *vic.VIC, line int) {
	for v.Raster() != line {
		v.Cycle()
	}
}

func TestBadLineAssertsBAWithinFetchWindow(t *testing.T) {
	v := vic.NewVIC()
	v.Plumb(blankBus{})
	require.NoError(t, v.Write(vic.CR1, 0x10)) // DEN set, YSCROLL 0

	runToLine(v, 0x38) // inside the 0x30-0xf7 bad-line band, raster&7==0

	sawBA := false
	for i := 0; i < v.Timing.CyclesPerLine; i++ {
		v.Cycle()
		if v.BA() {
			sawBA = true
		}
	}
	require.True(t, sawBA, "a bad line should assert BA to steal cycles from the CPU")
}

func TestNonBadLineDoesNotAssertBA(t *testing.T) {
	v := vic.NewVIC()
	v.Plumb(blankBus{})
	require.NoError(t, v.Write(vic.CR1, 0x11)) // YSCROLL=1, so raster&7==0 lines are not bad lines

	runToLine(v, 0x38)
	for i := 0; i < v.Timing.CyclesPerLine; i++ {
		v.Cycle()
		require.False(t, v.BA(), "cycle %d should not steal the bus outside a bad line", i)
	}
}

func TestRasterCompareRaisesIRQ(t *testing.T) {
	v := vic.NewVIC()
	v.Plumb(blankBus{})
	require.NoError(t, v.Write(vic.IRQMASK, 0x01))
	require.NoError(t, v.Write(vic.RASTER, 10))

	runToLine(v, 10)
	require.True(t, v.IRQ())

	reg, err := v.Read(vic.IRQREG)
	require.NoError(t, err)
	require.NotZero(t, reg&0x80)

	require.NoError(t, v.Write(vic.IRQREG, 0x01))
	require.False(t, v.IRQ(), "writing a 1 bit to the interrupt register should clear that flag")
}

func TestSpriteEnableIsReadBackThroughMOBENA(t *testing.T) {
	v := vic.NewVIC()
	v.Plumb(blankBus{})
	require.NoError(t, v.Write(vic.MOBENA, 0x05))

	reg, err := v.Read(vic.MOBENA)
	require.NoError(t, err)
	require.Equal(t, uint8(0x05), reg)
	require.True(t, v.Sprites[0].Enabled)
	require.True(t, v.Sprites[2].Enabled)
	require.False(t, v.Sprites[1].Enabled)
}
