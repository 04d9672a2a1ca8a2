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

// Package clocks defines the constant values that define the speed of the
// main clock in a Commodore 64, for each video region it can be configured
// for, plus the rasterline geometry that the main clock speed is derived
// from.
//
// The host CPU/VIC-II clock and the VC1541 drive clock are nominally both
// 1 MHz but are not the same oscillator; the drive runs very slightly faster
// or slower than the host depending on region, which is why the scheduler
// runs each drive from its own per-frame cycle budget, scaled by
// Scheduler.DriveCyclesPerHostCycle, rather than in lock step with the host.
package clocks

// Region identifies a combination of video timing and power-line frequency.
type Region int

const (
	PAL Region = iota
	NTSC
	PALN
	Drean
)

// SystemClock gives the host (CPU/VIC-II) clock frequency in Hz for the
// given region.
func (r Region) SystemClock() float64 {
	switch r {
	case NTSC:
		return NTSCClock
	case PALN:
		return PALNClock
	case Drean:
		return DreanClock
	default:
		return PALClock
	}
}

// CyclesPerLine gives the number of CPU cycles the VIC-II spends per
// rasterline in the given region.
func (r Region) CyclesPerLine() int {
	switch r {
	case NTSC, Drean:
		return CyclesPerLineNTSC
	default:
		return CyclesPerLinePAL
	}
}

// Lines gives the number of rasterlines per frame in the given region.
func (r Region) Lines() int {
	switch r {
	case NTSC:
		return LinesNTSC
	case Drean:
		return LinesDrean
	default:
		return LinesPAL
	}
}

// RefreshRate gives the nominal vertical refresh rate, used to derive the
// CIA's TOD clock power-line divider.
func (r Region) RefreshRate() float64 {
	switch r {
	case NTSC, Drean:
		return 60.0
	default:
		return 50.0
	}
}

const (
	// PALClock is the system clock frequency of a PAL C64 (312 lines * 63
	// cycles/line * 50.125 Hz).
	PALClock = 985248.0

	// NTSCClock is the system clock frequency of an NTSC C64 (263 lines * 65
	// cycles/line * 59.826 Hz).
	NTSCClock = 1022727.0

	// PALNClock is the system clock frequency of the Drean-region PAL-N
	// variant used in Argentina.
	PALNClock = 1023440.0

	// DreanClock is retained as an alias of PALNClock; some original
	// documentation uses the board name rather than the broadcast standard.
	DreanClock = PALNClock

	// DriveClock is the nominal VC1541 6502 clock. It is not locked to the
	// host clock; the scheduler gives a drive as many cycles per frame as
	// the host unless Scheduler.DriveCyclesPerHostCycle is set away from 1.0
	// to model the drift between them.
	DriveClock = 1000000.0
)

const (
	CyclesPerLinePAL  = 63
	CyclesPerLineNTSC = 65

	LinesPAL   = 312
	LinesNTSC  = 263
	LinesDrean = 312
)
