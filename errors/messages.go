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

package errors

// error messages, grouped roughly by subsystem.
const (
	// panics / sentinels
	PanicError  = "panic: %v: %v"
	PowerOff    = "emulated machine has been powered off"
	UserQuit    = "user quit"

	// config errors (reject at configure-time)
	InvalidConfigValue = "invalid argument: %s: %v"
	UnknownRevision    = "unknown revision: %v (%v)"

	// cpu
	InvalidResult            = "cpu error: %v"
	InvalidDuringExecution   = "cpu error: invalid operation mid-instruction (%v)"
	UnimplementedInstruction = "cpu error: unimplemented instruction (%#02x) at (%#04x)"
	CPUJammed                = "cpu error: jammed on opcode (%#02x) at (%#04x)"

	// memory / PLA
	UnpokeableAddress = "memory error: cannot poke address (%#04x)"
	UnpeekableAddress = "memory error: cannot peek address (%#04x)"
	MissingROM        = "memory error: required rom image not loaded (%s)"

	// cartridges
	CartridgeError       = "cartridge error: %v"
	CartridgeEjected     = "cartridge error: no cartridge attached"
	CartridgeUnsupported = "cartridge error: unsupported cartridge type (%v)"
	CartridgeFileError   = "cartridge error: %v"

	// disk / VC1541
	DiskError           = "disk error: %v"
	DiskFileError       = "disk error: %v"
	DiskWriteProtected  = "disk error: disk is write protected"
	DiskTrackOutOfRange = "disk error: halftrack out of range (%v)"

	// IEC bus
	IECProtocolError = "iec error: %v"

	// snapshot
	SnapshotVersionMismatch = "snapshot error: unsupported snapshot version (%v)"
	SnapshotCorrupt         = "snapshot error: %v"

	// input
	InputError  = "input error: %v"
	KeyboardErr = "keyboard error: %v"
	StickError  = "joystick error: %v"
	PaddleError = "paddle error: %v"
	MouseError  = "mouse error: %v"

	// scheduler / emulation
	SchedulerError = "scheduler error: %v"

	// audio
	AudioSinkError = "audio sink error: %v"

	// cartridgeloader
	CartridgeLoaderError = "cartridge loading error: %v"

	// prefs
	Prefs         = "prefs: %v"
	PrefsNoFile   = "prefs: no file (%s)"
	PrefsNotValid = "prefs: not a valid prefs file (%s)"
)
