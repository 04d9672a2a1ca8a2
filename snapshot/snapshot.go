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

// Package snapshot frames a Machine's complete state as a single versioned
// byte blob: a four-byte "VC64" magic, a major and minor version byte, and
// then the machine-level component stream hardware/machine.Machine itself
// knows how to produce. Versioning lives here rather than in
// hardware/machine because it's a concern of the file format, not of any
// one subsystem - a future minor version might add a new trailing
// component without needing every existing MarshalBinary to change.
package snapshot

import (
	"bytes"
	"io"

	"github.com/jetsetilly/gopher64/errors"
	"github.com/jetsetilly/gopher64/hardware/machine"
)

var magic = [4]byte{'V', 'C', '6', '4'}

// VersionMajor changes whenever a restore from an older snapshot can no
// longer be made to work (a component was removed, or reordered).
// VersionMinor changes when a component was only ever appended - Load
// still accepts any snapshot sharing its VersionMajor regardless of minor.
const (
	VersionMajor = 1
	VersionMinor = 0
)

// Save serialises m's complete state (see Machine.MarshalBinary for
// exactly what that covers and what it deliberately omits - ROM images,
// the mounted disk medium, hook wiring) and writes it to w, framed with
// the format's magic and version.
//
// The caller must only call Save between calls to Machine.Cycle, never
// from inside one: the CPU's mid-instruction micro-op state is not part
// of the snapshot, matching the real machine's own notion that there is
// no such thing as "half an instruction" to resume from except via the
// bus cycles CPU.ExecuteInstruction itself already steps through.
func Save(w io.Writer, m *machine.Machine) error {
	body, err := m.MarshalBinary()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.Write(magic[:])
	buf.WriteByte(VersionMajor)
	buf.WriteByte(VersionMinor)
	buf.Write(body)

	_, err = w.Write(buf.Bytes())
	return err
}

// Load reads a snapshot written by Save and restores it into m, which must
// already be constructed (NewMachine) with the same ROM images, the same
// cartridge attached (if any, via AttachCartridge) and the same drives
// populated as when the snapshot was taken - Load restores state, not
// configuration.
func Load(r io.Reader, m *machine.Machine) error {
	all, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if len(all) < 6 {
		return errors.Errorf(errors.SnapshotCorrupt, "truncated header")
	}
	if !bytes.Equal(all[:4], magic[:]) {
		return errors.Errorf(errors.SnapshotCorrupt, "bad magic")
	}
	if all[4] != VersionMajor {
		return errors.Errorf(errors.SnapshotVersionMismatch, all[4])
	}

	return m.UnmarshalBinary(all[6:])
}
