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

// Package controller holds the devices that plug into the two DB9
// controller ports: digital joysticks wired into CIA1's ports, paddles
// wired into SID's POTX/POTY, and the three documented mouse protocols
// that multiplex both onto a single port. As with keyboard, it is
// host-independent - cmd/* packages own the goroutine that turns an SDL or
// terminal input event into a call here, the same separation the original
// machine's controller wiring used between a Stick's register writes and
// whatever physical joystick API fed it.
package controller

// Joystick bit positions, active low, matching a DB9 switch joystick wired
// directly into a CIA data port.
const (
	JoyUp = 1 << iota
	JoyDown
	JoyLeft
	JoyRight
	JoyFire
)

// Joystick is a digital joystick. State() reads back active-low, the same
// convention the CIA port it is wired into uses, so a machine can simply
// feed it into that port's ReadPortA/ReadPortB hook directly.
type Joystick struct {
	bits byte // bit set = direction/fire released
}

// NewJoystick returns one with every direction and the fire button idle.
func NewJoystick() *Joystick {
	return &Joystick{bits: 0xff}
}

func (j *Joystick) Press(mask byte)   { j.bits &^= mask }
func (j *Joystick) Release(mask byte) { j.bits |= mask }

// State returns the active-low byte this joystick presents to its port,
// with the unused upper three bits held high.
func (j *Joystick) State() byte { return j.bits | 0xe0 }

// Paddle is one potentiometer of a paddle pair, read through SID's POTX or
// POTY. Position ranges 0-255; Button is wired into the joystick port's
// fire line (paddle 1's button shares JoyFire on the port, paddle 2's
// shares JoyUp, per the real wiring).
type Paddle struct {
	Position uint8
	Pressed  bool
}

func NewPaddle() *Paddle { return &Paddle{Position: 128} }

// Read satisfies sid.SID's ReadPotX/ReadPotY hook signature.
func (p *Paddle) Read() byte { return p.Position }

// MouseModel distinguishes the three mouse wire protocols the machine's
// port hardware can tell apart only by software convention - none of them
// are self-identifying on the wire.
type MouseModel int

const (
	Mouse1351 MouseModel = iota // proportional, read through POTX/POTY
	Mouse1350                   // quadrature, read as joystick pulses
	MouseNeos                   // quadrature with a third button wired to POTY
)

// Mouse tracks relative motion and button state for all three models; the
// machine wiring decides which read path (quadrature joystick bits or
// proportional pot values) to expose based on the configured Model.
type Mouse struct {
	Model MouseModel

	dx, dy int // accumulated relative motion since last sample
	left   bool
	right  bool

	quadX, quadY byte // current 2-bit quadrature phase, 1350/NEOS only
}

func NewMouse(model MouseModel) *Mouse {
	return &Mouse{Model: model}
}

// Move accumulates relative motion reported by the host pointing device.
func (m *Mouse) Move(dx, dy int) {
	m.dx += dx
	m.dy += dy
}

func (m *Mouse) SetButtons(left, right bool) {
	m.left, m.right = left, right
}

// potValue maps accumulated 1351 motion onto an 8-bit pot reading centred
// at 128, the proportional encoding the 1351 actually uses. Each read
// empties the axis accumulator; motion beyond the 0-255 range is dropped.
func (m *Mouse) potValue(axis *int) byte {
	v := 128 + *axis
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	*axis = 0
	return byte(v)
}

// ReadPotX/ReadPotY implement the 1351's proportional reporting via
// sid.SID's pot hooks.
func (m *Mouse) ReadPotX() byte { return m.potValue(&m.dx) }
func (m *Mouse) ReadPotY() byte { return m.potValue(&m.dy) }

// QuadratureStep advances the 1350/NEOS quadrature phase by one tick per
// unit of remaining motion and returns the joystick-port bits (JoyUp/
// JoyDown encode the Y phase, JoyLeft/JoyRight the X phase, active low) a
// CIA port read should see this cycle.
func (m *Mouse) QuadratureStep() byte {
	step := func(rem *int, phase *byte) {
		if *rem == 0 {
			return
		}
		if *rem > 0 {
			*phase = (*phase + 1) & 3
			*rem--
		} else {
			*phase = (*phase - 1) & 3
			*rem++
		}
	}
	step(&m.dx, &m.quadX)
	step(&m.dy, &m.quadY)

	var bits byte = 0xff
	if m.quadY&1 != 0 {
		bits &^= JoyUp
	}
	if m.quadY&2 != 0 {
		bits &^= JoyDown
	}
	if m.quadX&1 != 0 {
		bits &^= JoyLeft
	}
	if m.quadX&2 != 0 {
		bits &^= JoyRight
	}
	if m.left {
		bits &^= JoyFire
	}
	return bits
}
