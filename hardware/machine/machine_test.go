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

package machine_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jetsetilly/gopher64/hardware/clocks"
	"github.com/jetsetilly/gopher64/hardware/machine"
	"github.com/jetsetilly/gopher64/hardware/memory"
)

func blankROMs() memory.ROMs {
	var roms memory.ROMs
	// reset vector ($FFFC/$FFFD) points at $E000, which holds an infinite
	// JMP $E000 - enough for the CPU to fetch forever without jamming on a
	// stray $00 (BRK).
	roms.Kernal[0] = 0x4c // JMP
	roms.Kernal[1] = 0x00
	roms.Kernal[2] = 0xe0
	roms.Kernal[0x1ffc] = 0x00
	roms.Kernal[0x1ffd] = 0xe0
	return roms
}

func TestMachineRunsWithoutPanicking(t *testing.T) {
	m := machine.NewMachine(clocks.PAL, blankROMs())
	for i := 0; i < 10000; i++ {
		require.NoError(t, m.Cycle())
	}
}

func TestKeyboardJoystickShareCIA1PortB(t *testing.T) {
	m := machine.NewMachine(clocks.PAL, blankROMs())
	m.Keyboard.Down(0, 0)
	m.Joystick[1].Press(1) // up

	// selecting column 0 (driven low) should reveal both the held key and
	// the held joystick direction, since both pull the same physical line.
	v := m.CIA1.ReadPortB()
	require.Zero(t, v&0x01, "row 0 should read low: the keyboard matrix is pulling it down")
}

func TestDiskDriveSharesIECBusWithHost(t *testing.T) {
	var driveROM [0x4000]byte
	m := machine.NewMachine(clocks.PAL, blankROMs(), driveROM)
	require.NotNil(t, m.Drives[0])

	m.IEC.Drive(0, false, true, true) // host asserts ATN
	require.False(t, m.IEC.ATN(), "host pulling ATN low should be visible bus-wide")
}
