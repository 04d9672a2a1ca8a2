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

package cia

// CIA is one 6526. Port A/B reads merge whatever the CPU last wrote
// (masked by the data direction register) with whatever ReadPortA/
// ReadPortB report is being driven externally; a CIA has no idea whether
// its ports are wired to a keyboard matrix, a joystick, or the IEC bus -
// that wiring is supplied by whoever constructs it.
type CIA struct {
	Name     string
	Revision Revision

	portA, portB byte
	ddrA, ddrB   byte

	timerA, timerB timer
	tod            tod

	icrMask  byte
	icrFlags byte

	sdr           byte
	sdrOutPending bool
	sdrBitsLeft   int

	crASPBits   byte // CRA bit 6 (serial port direction), kept for readback
	crBAlarmBit byte // CRB bit 7 (TOD clock/alarm select), kept for readback

	// ReadPortA and ReadPortB report the byte currently being driven onto
	// the port by external circuitry (keyboard rows, joystick switches,
	// the IEC bus), with bits this CIA doesn't drive reading as whatever
	// is actually on the line and driven bits ignored by the merge. A nil
	// hook reads as all-ones (an unconnected, pulled-up port).
	ReadPortA func() byte
	ReadPortB func() byte

	// WritePortA and WritePortB are called after every CPU write (and
	// after any internal change, eg. a DDR write) with the byte the port
	// is now presenting on its external pins, so peripherals can react.
	WritePortA func(value byte)
	WritePortB func(value byte)
}

// NewCIA constructs a CIA with its registers in their post-reset state.
func NewCIA(name string, revision Revision) *CIA {
	c := &CIA{Name: name, Revision: revision}
	c.Reset()
	return c
}

// Reset restores power-on register state: both ports set to input
// (DDR=0), both timers stopped with latches at $FFFF, TOD running from
// midnight, no pending interrupts.
func (c *CIA) Reset() {
	c.portA, c.portB = 0, 0
	c.ddrA, c.ddrB = 0, 0
	c.timerA.reset()
	c.timerB.reset()
	c.timerB.input = inputPhi2
	c.tod.reset()
	c.icrMask, c.icrFlags = 0, 0
	c.sdr, c.sdrOutPending, c.sdrBitsLeft = 0, false, 0
}

func (c *CIA) externalA() byte {
	if c.ReadPortA == nil {
		return 0xff
	}
	return c.ReadPortA()
}

func (c *CIA) externalB() byte {
	if c.ReadPortB == nil {
		return 0xff
	}
	return c.ReadPortB()
}

// outputA/outputB are what this CIA is actively driving onto its ports:
// the written latch value on bits the data direction register has
// configured as output, and nothing (represented as 0, the identity value
// for the OR-merge below) on input bits. Unlike the IEC bus's true
// wired-AND, a CIA port pin is either actively driven by this chip or left
// floating for whatever else is connected to read or drive - it is not
// combined bitwise with the external value.
func (c *CIA) outputA() byte {
	return c.portA & c.ddrA
}

func (c *CIA) outputB() byte {
	v := c.portB & c.ddrB
	if c.timerA.pbOn {
		v = v&^0x40 | boolBit(c.timerA.pbState, 0x40)
	}
	if c.timerB.pbOn {
		v = v&^0x80 | boolBit(c.timerB.pbState, 0x80)
	}
	return v
}

func boolBit(b bool, bit byte) byte {
	if b {
		return bit
	}
	return 0
}

// readA/readB select, bit by bit, the driven value on output-configured
// pins and the externally sensed value on input-configured pins.
func (c *CIA) readA() byte {
	return c.outputA() | c.externalA()&^c.ddrA
}

func (c *CIA) readB() byte {
	mask := c.ddrB
	if c.timerA.pbOn {
		mask |= 0x40
	}
	if c.timerB.pbOn {
		mask |= 0x80
	}
	return c.outputB() | c.externalB()&^mask
}

func (c *CIA) notifyA() {
	if c.WritePortA != nil {
		c.WritePortA(c.readA())
	}
}

func (c *CIA) notifyB() {
	if c.WritePortB != nil {
		c.WritePortB(c.readB())
	}
}

func (c *CIA) setFlag(bit byte) {
	c.icrFlags |= bit
}

// IRQ reports whether this CIA currently wants to assert /IRQ (or /NMI,
// for CIA2): any pending, unmasked interrupt source.
func (c *CIA) IRQ() bool {
	return c.icrFlags&c.icrMask != 0
}

// Step advances both timers by one system clock cycle.
func (c *CIA) Step() {
	taUnder := c.timerA.tick(true, true, false)
	if taUnder {
		c.setFlag(icrTimerA)
		c.clockSerialOut()
	}

	tbUnder := c.timerB.tick(true, true, taUnder)
	if tbUnder {
		c.setFlag(icrTimerB)
	}

	if c.timerA.justWritten {
		c.timerA.justWritten = false
		c.notifyB() // PB6/7 state may have just changed
	}
}

// TickTOD advances the time-of-day clock by one tenth of a second. The
// caller divides whichever oscillator it has (the AC power line, in the
// general case, via CRA's 50/60Hz select bit) down to that rate.
func (c *CIA) TickTOD() {
	if c.tod.tick() {
		c.setFlag(icrTOD)
	}
}

func (c *CIA) clockSerialOut() {
	if !c.sdrOutPending || c.sdrBitsLeft == 0 {
		return
	}
	c.sdrBitsLeft--
	if c.sdrBitsLeft == 0 {
		c.sdrOutPending = false
		c.setFlag(icrSerial)
	}
}

// Read implements the chip interface hardware/memory dispatches to.
func (c *CIA) Read(address uint16) (uint8, error) {
	switch address & 0x0f {
	case PRA:
		return c.readA(), nil
	case PRB:
		return c.readB(), nil
	case DDRA:
		return c.ddrA, nil
	case DDRB:
		return c.ddrB, nil
	case TALO:
		return c.timerA.readLo(), nil
	case TAHI:
		return c.timerA.readHi(), nil
	case TBLO:
		return c.timerB.readLo(), nil
	case TBHI:
		return c.timerB.readHi(), nil
	case TOD10THS:
		return c.tod.readTenths(), nil
	case TODSEC:
		return c.tod.readSec(), nil
	case TODMIN:
		return c.tod.readMin(), nil
	case TODHR:
		return c.tod.readHr(), nil
	case SDR:
		return c.sdr, nil
	case ICR:
		v := c.icrFlags & 0x1f
		if c.IRQ() {
			v |= icrIRQ
		}
		c.icrFlags = 0
		return v, nil
	case CRA:
		return c.controlA(), nil
	default: // CRB
		return c.controlB(), nil
	}
}

func (c *CIA) controlA() byte {
	var v byte
	if c.timerA.running {
		v |= crStart
	}
	if c.timerA.pbOn {
		v |= crPBON
	}
	if c.timerA.toggle {
		v |= crOutMode
	}
	if c.timerA.oneShot {
		v |= crRunMode
	}
	if c.timerA.input == inputCNT {
		v |= crInMode
	}
	return v | c.crASPBits
}

func (c *CIA) controlB() byte {
	var v byte
	if c.timerB.running {
		v |= crStart
	}
	if c.timerB.pbOn {
		v |= crPBON
	}
	if c.timerB.toggle {
		v |= crOutMode
	}
	if c.timerB.oneShot {
		v |= crRunMode
	}
	switch c.timerB.input {
	case inputCNT:
		v |= crbInModeCNT
	case inputTimerAUnderflow:
		v |= crbInModeTimerA
	case inputTimerAUnderflowCNT:
		v |= crbInModeTimerACNT
	}
	return v | c.crBAlarmBit
}

// Write implements the chip interface hardware/memory dispatches to.
func (c *CIA) Write(address uint16, data uint8) error {
	switch address & 0x0f {
	case PRA:
		c.portA = data
		c.notifyA()
	case PRB:
		c.portB = data
		c.notifyB()
	case DDRA:
		c.ddrA = data
		c.notifyA()
	case DDRB:
		c.ddrB = data
		c.notifyB()
	case TALO:
		c.timerA.writeLo(data)
	case TAHI:
		c.timerA.writeHi(data)
	case TBLO:
		c.timerB.writeLo(data)
	case TBHI:
		c.timerB.writeHi(data)
	case TOD10THS:
		c.tod.writeTenths(data, c.crBAlarmBit != 0)
	case TODSEC:
		c.tod.writeSec(data, c.crBAlarmBit != 0)
	case TODMIN:
		c.tod.writeMin(data, c.crBAlarmBit != 0)
	case TODHR:
		c.tod.writeHr(data, c.crBAlarmBit != 0)
	case SDR:
		c.sdr = data
		if c.crASPBits != 0 { // output mode: loading SDR starts a shift-out
			c.sdrOutPending = true
			c.sdrBitsLeft = 8
		}
	case ICR:
		if data&icrSetClr != 0 {
			c.icrMask |= data & 0x1f
		} else {
			c.icrMask &^= data & 0x1f
		}
	case CRA:
		c.timerA.writeControl(data)
		if data&crInMode != 0 {
			c.timerA.input = inputCNT
		} else {
			c.timerA.input = inputPhi2
		}
		c.crASPBits = data & crSPMode
	default: // CRB
		c.timerB.writeControl(data)
		switch data & crbInModeMask {
		case crbInModeCNT:
			c.timerB.input = inputCNT
		case crbInModeTimerA:
			c.timerB.input = inputTimerAUnderflow
		case crbInModeTimerACNT:
			c.timerB.input = inputTimerAUnderflowCNT
		default:
			c.timerB.input = inputPhi2
		}
		c.crBAlarmBit = data & crbAlarm
	}
	return nil
}
