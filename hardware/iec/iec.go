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

// Package iec implements the three-wire serial bus (ATN, CLK, DATA) that
// connects the host's CIA2 to the VC1541 (or any number of them, daisy
// chained) over the real machine's 6-pin DIN cable.
//
// Every line is open-collector: any device on the bus can only pull a line
// low, never drive it high, and every device - including ones not
// currently talking - senses the line's actual state, which is the AND of
// everybody's output (a single low anywhere wins). This is a genuinely
// different electrical model from a CIA's own parallel port pins (see
// hardware/cia), where each bit is either actively driven by that chip or
// left floating for something else to drive: there is no such thing as an
// "input-configured" wire here, every participant always both drives
// (weakly, pulled up) and senses every line.
package iec

// Device identifies one of the (at most three, on a real machine) agents
// that can pull a line low: the host's CIA2, and up to two daisy-chained
// drives.
type Device int

const (
	Host Device = iota
	Drive1
	Drive2
	deviceCount
)

// Bus holds each device's current contribution to the three lines. A line
// reads high only when every device is letting it go (true in this
// encoding means "not pulled low").
type Bus struct {
	atn  [deviceCount]bool
	clk  [deviceCount]bool
	data [deviceCount]bool

	// autoAck implements the drive hardware's automatic ATN acknowledgement:
	// the 6522 VIA's CA1 input (ATN IN) is wired through an inverter/XOR
	// into its own DATA OUT driver on some drive revisions, pulling DATA low
	// within microseconds of ATN going low regardless of what the drive's
	// firmware has done yet. Each drive can toggle whether it currently
	// participates in this.
	autoAck [deviceCount]bool
}

// NewBus returns a bus with every device idle (not pulling any line low).
func NewBus() *Bus {
	b := &Bus{}
	for d := Device(0); d < deviceCount; d++ {
		b.atn[d], b.clk[d], b.data[d] = true, true, true
	}
	return b
}

// Drive sets what device d is currently asserting onto each line. true
// means "not pulled low" (released), matching the open-collector idiom
// used throughout this package.
func (b *Bus) Drive(d Device, atn, clk, data bool) {
	b.atn[d] = atn
	b.clk[d] = clk
	b.data[d] = data
}

// SetAutoAck enables or disables device d's automatic ATN-to-DATA
// acknowledgement.
func (b *Bus) SetAutoAck(d Device, enabled bool) {
	b.autoAck[d] = enabled
}

// ATN is the bus's actual ATN line state: the logical AND of every
// device's contribution. This is the invariant every device's sensing
// input must agree with: atnLine == NOT (any device pulling it low), ie.
// for the host and two possible drives, atnLine == host.atn AND
// drive1.atn AND drive2.atn.
func (b *Bus) ATN() bool {
	return b.wiredAnd(b.atn[:])
}

// CLK is the bus's actual CLK line state.
func (b *Bus) CLK() bool {
	return b.wiredAnd(b.clk[:])
}

// DATA is the bus's actual DATA line state, including every device's
// auto-ack contribution: a device with auto-ack enabled pulls DATA low
// whenever it senses ATN low, on top of whatever it has explicitly driven
// with Drive.
func (b *Bus) DATA() bool {
	dataLines := make([]bool, deviceCount)
	copy(dataLines, b.data[:])
	if !b.ATN() {
		for d := Device(0); d < deviceCount; d++ {
			if b.autoAck[d] {
				dataLines[d] = false
			}
		}
	}
	return b.wiredAnd(dataLines)
}

func (b *Bus) wiredAnd(lines []bool) bool {
	for _, v := range lines {
		if !v {
			return false
		}
	}
	return true
}

// Sense returns the (ATN, CLK, DATA) state every device - including the
// one that just called Drive - actually observes on the bus.
func (b *Bus) Sense() (atn, clk, data bool) {
	return b.ATN(), b.CLK(), b.DATA()
}
