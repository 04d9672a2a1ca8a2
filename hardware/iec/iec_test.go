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

package iec_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jetsetilly/gopher64/hardware/iec"
)

func TestLineIsWiredAndAcrossAllDevices(t *testing.T) {
	b := iec.NewBus()
	require.True(t, b.ATN(), "idle bus should read every line released")

	b.Drive(iec.Host, true, true, true)
	b.Drive(iec.Drive1, false, true, true) // drive 1 pulls ATN low
	b.Drive(iec.Drive2, true, true, true)

	require.False(t, b.ATN(), "any single device pulling ATN low should win")

	// the invariant the bus must satisfy: atnLine == host.atn AND
	// drive1.atn AND drive2.atn (a wired AND), expressed directly against
	// what each device thinks it is driving.
	hostAtn, drive1Atn, drive2Atn := true, false, true
	require.Equal(t, !(hostAtn && drive1Atn && drive2Atn), !b.ATN())
}

func TestAutoAckPullsDataLowWhenATNAsserted(t *testing.T) {
	b := iec.NewBus()
	b.SetAutoAck(iec.Drive1, true)

	require.True(t, b.DATA(), "no auto-ack should fire while ATN is released")

	b.Drive(iec.Host, false, true, true) // host asserts ATN to address devices
	require.False(t, b.ATN())
	require.False(t, b.DATA(), "drive with auto-ack should pull DATA low within the same cycle ATN drops")
}

func TestAutoAckDoesNotFireWhenDisabled(t *testing.T) {
	b := iec.NewBus()
	b.Drive(iec.Host, false, true, true)
	require.True(t, b.DATA(), "no device has auto-ack enabled, so DATA should stay released")
}

// TestTalkAddressingSequence exercises the classic ATN-assert / listen-then-
// unlisten handshake a host uses to address a drive before a command: the
// host pulls ATN and DATA low, each drive acknowledges by pulling CLK low,
// and releasing ATN hands control of DATA back to whichever drive is now
// the active talker.
func TestTalkAddressingSequence(t *testing.T) {
	b := iec.NewBus()

	b.Drive(iec.Host, false, true, false) // ATN asserted, host holds DATA low too
	require.False(t, b.ATN())

	b.Drive(iec.Drive1, true, false, true) // drive acknowledges by pulling CLK low
	require.False(t, b.CLK(), "an acknowledging drive pulling CLK low should be visible bus-wide")

	b.Drive(iec.Host, true, true, true) // host releases ATN, becomes idle
	b.Drive(iec.Drive1, true, true, false) // drive 1 is now talker, holds DATA low to signal data valid

	require.True(t, b.ATN())
	require.False(t, b.DATA())
}
