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

package snapshot_test

import (
	"bytes"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"

	"github.com/jetsetilly/gopher64/hardware/clocks"
	"github.com/jetsetilly/gopher64/hardware/machine"
	"github.com/jetsetilly/gopher64/hardware/memory"
	"github.com/jetsetilly/gopher64/snapshot"
)

func blankROMs() memory.ROMs {
	var roms memory.ROMs
	roms.Kernal[0] = 0x4c // JMP $E000
	roms.Kernal[1] = 0x00
	roms.Kernal[2] = 0xe0
	roms.Kernal[0x1ffc] = 0x00
	roms.Kernal[0x1ffd] = 0xe0
	return roms
}

// dump renders a value with go-spew, deep enough to compare two machines
// field by field when a round-trip test fails - the assertion failure
// message alone gives no clue which of dozens of chip registers differed.
func dump(v interface{}) string {
	cfg := spew.ConfigState{Indent: "  ", DisableMethods: true, SortKeys: true}
	return cfg.Sdump(v)
}

func TestSaveLoadRoundTripIsByteIdentical(t *testing.T) {
	m := machine.NewMachine(clocks.PAL, blankROMs())
	m.Keyboard.Down(1, 4)
	m.Joystick[0].Press(1)
	for i := 0; i < 1000; i++ {
		require.NoError(t, m.Cycle())
	}

	var first bytes.Buffer
	require.NoError(t, snapshot.Save(&first, m))

	restored := machine.NewMachine(clocks.PAL, blankROMs())
	require.NoError(t, snapshot.Load(bytes.NewReader(first.Bytes()), restored))

	var second bytes.Buffer
	require.NoError(t, snapshot.Save(&second, restored))

	require.True(t, bytes.Equal(first.Bytes(), second.Bytes()),
		"snapshot should round-trip byte-identically\nfirst:\n%s\nsecond:\n%s",
		dump(first.Bytes()), dump(second.Bytes()))
}

func TestSaveIsIdempotentAfterFurtherExecution(t *testing.T) {
	m := machine.NewMachine(clocks.PAL, blankROMs())
	for i := 0; i < 1000; i++ {
		require.NoError(t, m.Cycle())
	}

	var saved bytes.Buffer
	require.NoError(t, snapshot.Save(&saved, m))

	restored := machine.NewMachine(clocks.PAL, blankROMs())
	require.NoError(t, snapshot.Load(bytes.NewReader(saved.Bytes()), restored))

	// a freshly restored machine, run for the same number of cycles from
	// the same starting point, must end up in the same state as the
	// original would after the same further execution - loading a
	// snapshot and resuming is the same thing as having never saved it.
	for i := 0; i < 1000; i++ {
		require.NoError(t, m.Cycle())
		require.NoError(t, restored.Cycle())
	}

	var a, b bytes.Buffer
	require.NoError(t, snapshot.Save(&a, m))
	require.NoError(t, snapshot.Save(&b, restored))
	require.True(t, bytes.Equal(a.Bytes(), b.Bytes()),
		"resumed machine should match the original after identical further execution")
}

func TestLoadRejectsBadMagic(t *testing.T) {
	m := machine.NewMachine(clocks.PAL, blankROMs())
	err := snapshot.Load(bytes.NewReader([]byte("not a snapshot")), m)
	require.Error(t, err)
}

func TestLoadRejectsUnknownVersion(t *testing.T) {
	m := machine.NewMachine(clocks.PAL, blankROMs())
	var saved bytes.Buffer
	require.NoError(t, snapshot.Save(&saved, m))

	corrupt := saved.Bytes()
	corrupt[4] = snapshot.VersionMajor + 1
	err := snapshot.Load(bytes.NewReader(corrupt), m)
	require.Error(t, err)
}
