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

package main

import (
	"os"
	"syscall"
	"time"

	"github.com/pkg/term/termios"

	"github.com/jetsetilly/gopher64/hardware/keyboard"
)

// rawTerm puts stdin into cbreak mode (unbuffered, unechoed, one byte at a
// time) for the duration of a run, so keystrokes reach the emulated
// keyboard matrix without waiting on a newline. canAttr is restored by
// restore() regardless of how the run ends.
type rawTerm struct {
	canAttr   syscall.Termios
	cbreak    syscall.Termios
}

func newRawTerm() (*rawTerm, error) {
	rt := &rawTerm{}
	if err := termios.Tcgetattr(os.Stdin.Fd(), &rt.canAttr); err != nil {
		return nil, err
	}
	termios.Cfmakecbreak(&rt.cbreak)
	if err := termios.Tcsetattr(os.Stdin.Fd(), termios.TCIFLUSH, &rt.cbreak); err != nil {
		return nil, err
	}
	return rt, nil
}

func (rt *rawTerm) restore() {
	_ = termios.Tcsetattr(os.Stdin.Fd(), termios.TCIFLUSH, &rt.canAttr)
}

// readKeys blocks reading single bytes from stdin and translates each into
// a Down/Up pulse on the keyboard matrix (held just long enough for the
// KERNAL's scan loop to notice, since a real terminal gives us no
// key-release event at all - every character is a tap, not a held key).
// It returns when quit is closed or stdin reaches EOF.
func readKeys(kb *keyboard.Matrix, restore *keyboard.RestoreKey, quit <-chan struct{}) {
	buf := make([]byte, 1)
	for {
		select {
		case <-quit:
			return
		default:
		}

		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			return
		}

		r := rune(buf[0])
		if r == 0x1b { // ESC doubles as RESTORE on a terminal with no NMI key
			restore.Down()
			restore.Up()
			continue
		}

		k, ok := keyFor(r)
		if !ok {
			continue
		}

		if k.shifted {
			kb.Down(rowShiftLeft, colShiftLeft)
		}
		kb.Down(k.row, k.col)
		time.Sleep(50 * time.Millisecond) // about three of the KERNAL's 60Hz scans
		kb.Up(k.row, k.col)
		if k.shifted {
			kb.Up(rowShiftLeft, colShiftLeft)
		}
	}
}
