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

package cia_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jetsetilly/gopher64/hardware/cia"
)

func TestTimerAUnderflowRaisesIRQ(t *testing.T) {
	c := cia.NewCIA("CIA1", cia.MOS6526)

	require.NoError(t, c.Write(cia.TALO, 0x02))
	require.NoError(t, c.Write(cia.TAHI, 0x00))
	require.NoError(t, c.Write(cia.ICR, 0x81)) // unmask timer A
	require.NoError(t, c.Write(cia.CRA, 0x01)) // start, continuous

	require.False(t, c.IRQ())
	c.Step() // counter 2 -> 1
	require.False(t, c.IRQ())
	c.Step() // counter 1 -> 0, no underflow flagged yet
	require.False(t, c.IRQ())
	c.Step() // counter 0 -> reload, underflow
	require.True(t, c.IRQ())

	v, err := c.Read(cia.ICR)
	require.NoError(t, err)
	require.NotZero(t, v&0x80, "reading ICR should report the IRQ bit")
	require.False(t, c.IRQ(), "reading ICR should clear pending flags")
}

func TestOneShotTimerStopsAfterUnderflow(t *testing.T) {
	c := cia.NewCIA("CIA1", cia.MOS6526)
	require.NoError(t, c.Write(cia.TALO, 0x01))
	require.NoError(t, c.Write(cia.TAHI, 0x00))
	require.NoError(t, c.Write(cia.CRA, 0x09)) // start, one-shot

	c.Step() // 1 -> 0
	c.Step() // 0 -> reload, underflow, one-shot stops it

	v, err := c.Read(cia.CRA)
	require.NoError(t, err)
	require.Zero(t, v&0x01, "one-shot timer should clear its own start bit")
}

func TestPortReadMergesOutputAndExternal(t *testing.T) {
	c := cia.NewCIA("CIA1", cia.MOS6526)
	c.ReadPortA = func() byte { return 0x00 } // external drives every input bit low

	require.NoError(t, c.Write(cia.DDRA, 0x02)) // bit 1 is an output, rest are input
	require.NoError(t, c.Write(cia.PRA, 0x02))  // drive bit 1 high

	v, err := c.Read(cia.PRA)
	require.NoError(t, err)
	require.Equal(t, uint8(0x02), v, "input bits should read the external value, the output bit should read as driven")
}

func TestICRSetClearConvention(t *testing.T) {
	c := cia.NewCIA("CIA1", cia.MOS6526)

	require.NoError(t, c.Write(cia.ICR, 0x83)) // set mask bits 0 and 1
	require.NoError(t, c.Write(cia.ICR, 0x01)) // clear mask bit 0 (bit 7 clear = clear)

	require.NoError(t, c.Write(cia.TBLO, 0x01))
	require.NoError(t, c.Write(cia.TBHI, 0x00))
	require.NoError(t, c.Write(cia.CRB, 0x01))
	c.Step()
	c.Step()
	require.True(t, c.IRQ(), "timer B interrupt should still be masked in")
}

func TestTODHoursReadLatchesAllFields(t *testing.T) {
	c := cia.NewCIA("CIA1", cia.MOS6526)

	for i := 0; i < 15; i++ {
		c.TickTOD()
	}

	_, err := c.Read(cia.TODHR) // latches
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		c.TickTOD()
	}

	tenths, err := c.Read(cia.TOD10THS) // reads the latched value, unlatches
	require.NoError(t, err)
	require.Equal(t, uint8(0x05), tenths, "latched read should not see the five ticks since the hours read")

	tenths, err = c.Read(cia.TOD10THS)
	require.NoError(t, err)
	require.Equal(t, uint8(0x00), tenths, "unlatched read should see the live clock")
}
