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

package prefs_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jetsetilly/gopher64/prefs"
)

func TestCommandLineStack(t *testing.T) {
	prefs.PushCommandLineStack("region::ntsc; vic.revision::6567R8")

	ok, v := prefs.GetCommandLinePref("region")
	require.True(t, ok)
	require.Equal(t, "ntsc", v)

	ok, v = prefs.GetCommandLinePref("vic.revision")
	require.True(t, ok)
	require.Equal(t, "6567R8", v)

	ok, _ = prefs.GetCommandLinePref("not.present")
	require.False(t, ok)

	s := prefs.PopCommandLineStack()
	require.Equal(t, "region::ntsc; vic.revision::6567R8", s)

	// stack is empty again
	ok, _ = prefs.GetCommandLinePref("region")
	require.False(t, ok)
	require.Equal(t, "", prefs.PopCommandLineStack())
}

func TestCommandLineStackNesting(t *testing.T) {
	prefs.PushCommandLineStack("region::pal")
	prefs.PushCommandLineStack("region::ntsc")

	ok, v := prefs.GetCommandLinePref("region")
	require.True(t, ok)
	require.Equal(t, "ntsc", v)

	require.Equal(t, "region::ntsc", prefs.PopCommandLineStack())

	ok, v = prefs.GetCommandLinePref("region")
	require.True(t, ok)
	require.Equal(t, "pal", v)

	require.Equal(t, "region::pal", prefs.PopCommandLineStack())
}

func TestCommandLineStackMalformed(t *testing.T) {
	prefs.PushCommandLineStack("region::ntsc; garbage; ::noKey; ok::1")
	require.Equal(t, "ok::1; region::ntsc", prefs.PopCommandLineStack())
}
