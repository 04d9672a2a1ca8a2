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

package cartridge

import "fmt"

// Cartridge wraps a concrete mapper and implements hardware/expansion.Port,
// so hardware/memory never needs to know which of the 61 hardware types is
// actually plugged in.
type Cartridge struct {
	Name string
	Type uint16

	mapper mapper
}

// NewFromCRT decodes a complete CRT file image and returns a Cartridge
// ready to be attached to a memory map with Memory.AttachCartridge.
func NewFromCRT(data []byte) (*Cartridge, error) {
	h, chips, err := parseCRT(data)
	if err != nil {
		return nil, err
	}

	construct := lookup(h.hardwareType)
	m, err := construct(h, chips)
	if err != nil {
		return nil, err
	}
	m.initialise()

	return &Cartridge{
		Name:   h.name,
		Type:   h.hardwareType,
		mapper: m,
	}, nil
}

func (c *Cartridge) String() string {
	return fmt.Sprintf("%s (type %d)", c.Name, c.Type)
}

// GAME implements hardware/expansion.Port.
func (c *Cartridge) GAME() bool { return c.mapper.game() }

// EXROM implements hardware/expansion.Port.
func (c *Cartridge) EXROM() bool { return c.mapper.exrom() }

// ReadROML implements hardware/expansion.Port.
func (c *Cartridge) ReadROML(addr uint16) (uint8, bool) { return c.mapper.readROML(addr) }

// ReadROMH implements hardware/expansion.Port.
func (c *Cartridge) ReadROMH(addr uint16) (uint8, bool) { return c.mapper.readROMH(addr) }

// ReadIO1 implements hardware/expansion.Port.
func (c *Cartridge) ReadIO1(addr uint16) (uint8, bool) { return c.mapper.readIO1(addr) }

// WriteIO1 implements hardware/expansion.Port.
func (c *Cartridge) WriteIO1(addr uint16, data uint8) bool { return c.mapper.writeIO1(addr, data) }

// ReadIO2 implements hardware/expansion.Port.
func (c *Cartridge) ReadIO2(addr uint16) (uint8, bool) { return c.mapper.readIO2(addr) }

// WriteIO2 implements hardware/expansion.Port.
func (c *Cartridge) WriteIO2(addr uint16, data uint8) bool { return c.mapper.writeIO2(addr, data) }

// Listen implements hardware/expansion.Port.
func (c *Cartridge) Listen(addr uint16, data uint8) { c.mapper.listen(addr, data) }

// NMI implements hardware/expansion.Port.
func (c *Cartridge) NMI() bool { return c.mapper.nmi() }

// Reset implements hardware/expansion.Port.
func (c *Cartridge) Reset() { c.mapper.reset() }

// freezeable is implemented by cartridges with a physical freeze button
// (Action Replay and its many clones).
type freezeable interface {
	Freeze()
}

// Freeze presses the cartridge's freeze button, if it has one. It is a
// no-op for cartridge types without one.
func (c *Cartridge) Freeze() {
	if f, ok := c.mapper.(freezeable); ok {
		f.Freeze()
	}
}

// tickable is implemented by cartridges with their own notion of elapsed
// time independent of bus accesses (Epyx Fastload's discharge capacitor).
type tickable interface {
	Tick()
}

// Tick advances any cartridge-internal clock by one CPU cycle. It is a
// no-op for cartridge types without one, so the owning machine can call it
// unconditionally every cycle alongside the VIC and CIAs.
func (c *Cartridge) Tick() {
	if t, ok := c.mapper.(tickable); ok {
		t.Tick()
	}
}

// snapshotable is implemented by mappers with bank-switching or RAM state
// that outlives a single bus cycle (a simple fixed-bank cartridge like
// normal or zaxxon has nothing to capture and need not implement it).
type snapshotable interface {
	MarshalBinary() ([]byte, error)
	UnmarshalBinary([]byte) error
}

// MarshalBinary captures the attached mapper's own switchable state (bank
// registers, onboard RAM, freeze latches). A mapper with no mutable state
// of its own (normal, zaxxon) produces a zero-length payload. Name, Type
// and the ROM images themselves are not included: a cartridge's ROM
// content is external, loaded media exactly like the machine's KERNAL/
// BASIC images, re-attached with AttachCartridge after a restore rather
// than round-tripped through the snapshot.
func (c *Cartridge) MarshalBinary() ([]byte, error) {
	if s, ok := c.mapper.(snapshotable); ok {
		return s.MarshalBinary()
	}
	return nil, nil
}

// UnmarshalBinary restores a mapper's state captured by MarshalBinary. The
// cartridge must already be the same type it was when the snapshot was
// taken (ie. the same CRT re-attached via AttachCartridge first) - a
// snapshot only ever records a cartridge's register state, never its
// identity.
func (c *Cartridge) UnmarshalBinary(data []byte) error {
	if s, ok := c.mapper.(snapshotable); ok {
		return s.UnmarshalBinary(data)
	}
	return nil
}
