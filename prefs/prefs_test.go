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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jetsetilly/gopher64/prefs"
)

func tmpPrefFile(t *testing.T) string {
	t.Helper()
	fn := filepath.Join(os.TempDir(), fmt.Sprintf("gopher64_prefs_test_%d", os.Getpid()))
	t.Cleanup(func() { os.Remove(fn) })
	return fn
}

func cmpFile(t *testing.T, fn string, expected string) {
	t.Helper()
	f, err := os.Open(fn)
	require.NoError(t, err)
	defer f.Close()

	data, err := io.ReadAll(f)
	require.NoError(t, err)

	expected = fmt.Sprintf("%s\n%s", prefs.WarningBoilerPlate, expected)
	require.Equal(t, expected, string(data))
}

func TestBool(t *testing.T) {
	fn := tmpPrefFile(t)
	dsk, err := prefs.NewDisk(fn)
	require.NoError(t, err)

	var v, w, x prefs.Bool
	require.NoError(t, dsk.Add("test", &v))
	require.NoError(t, dsk.Add("testB", &w))
	require.NoError(t, dsk.Add("testC", &x))

	require.NoError(t, v.Set(true))
	require.NoError(t, w.Set("foo"))
	require.NoError(t, x.Set("true"))

	require.NoError(t, dsk.Save())
	cmpFile(t, fn, "test :: true\ntestB :: false\ntestC :: true\n")
}

func TestString(t *testing.T) {
	fn := tmpPrefFile(t)
	dsk, err := prefs.NewDisk(fn)
	require.NoError(t, err)

	var v prefs.String
	require.NoError(t, dsk.Add("foo", &v))
	require.NoError(t, v.Set("bar"))
	require.NoError(t, dsk.Save())
	cmpFile(t, fn, "foo :: bar\n")
}

func TestFloat(t *testing.T) {
	fn := tmpPrefFile(t)
	dsk, err := prefs.NewDisk(fn)
	require.NoError(t, err)

	var v prefs.Float
	require.NoError(t, dsk.Add("foo", &v))

	require.Error(t, v.Set("bar"))
	require.NoError(t, v.Set(1.0))
	require.NoError(t, v.Set(2.0))
	require.NoError(t, v.Set(-3.0))
	require.NoError(t, dsk.Save())
}

func TestInt(t *testing.T) {
	fn := tmpPrefFile(t)
	dsk, err := prefs.NewDisk(fn)
	require.NoError(t, err)

	var v, w prefs.Int
	require.NoError(t, dsk.Add("number", &v))
	require.NoError(t, dsk.Add("numberB", &w))

	require.NoError(t, v.Set(10))
	require.NoError(t, w.Set("99"))
	require.NoError(t, dsk.Save())
	cmpFile(t, fn, "number :: 10\nnumberB :: 99\n")

	require.Error(t, v.Set("---"))
	require.Error(t, v.Set(1.0))
}

func TestGeneric(t *testing.T) {
	fn := tmpPrefFile(t)
	dsk, err := prefs.NewDisk(fn)
	require.NoError(t, err)

	var w, h int
	v := prefs.NewGeneric(
		func(s prefs.Value) error {
			_, err := fmt.Sscanf(s.(string), "%d,%d", &w, &h)
			return err
		},
		func() prefs.Value {
			return fmt.Sprintf("%d,%d", w, h)
		},
	)
	require.NoError(t, dsk.Add("generic", v))

	w, h = 1, 2
	require.NoError(t, dsk.Save())
	cmpFile(t, fn, "generic :: 1,2\n")

	w, h = 0, 0
	require.NoError(t, dsk.Load())
	require.Equal(t, 1, w)
	require.Equal(t, 2, h)
}

// write bool and then a string from a different prefs.Disk instance. tests
// that the second writing doesn't clobber the results of the first write.
func TestBoolAndString(t *testing.T) {
	fn := tmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	require.NoError(t, err)
	var v prefs.Bool
	require.NoError(t, dsk.Add("test", &v))
	require.NoError(t, v.Set(true))
	require.NoError(t, dsk.Save())

	dsk2, err := prefs.NewDisk(fn)
	require.NoError(t, err)
	var s prefs.String
	require.NoError(t, dsk2.Add("foo", &s))
	require.NoError(t, s.Set("bar"))
	require.NoError(t, dsk2.Save())

	cmpFile(t, fn, "foo :: bar\ntest :: true\n")
}

func TestMaxStringLength(t *testing.T) {
	var s prefs.String
	require.NoError(t, s.Set("123456789"))
	require.Equal(t, "123456789", s.String())

	s.SetMaxLen(5)
	require.Equal(t, "12345", s.String())

	s.SetMaxLen(0)
	require.Equal(t, "12345", s.String())

	s.SetMaxLen(3)
	require.NoError(t, s.Set("abcdefghi"))
	require.Equal(t, "abc", s.String())
}
