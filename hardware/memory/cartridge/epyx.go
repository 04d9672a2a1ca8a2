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

// epyx is hardware type 10, Epyx Fastload: a single 8K bank with no bank
// register at all. Its trick is a capacitor wired to /EXROM: any access to
// ROML or IO1 recharges it, and the cartridge stays mapped in (8K mode)
// for as long as it stays charged. Leave the cartridge idle for about
// 512 cycles (the constant VICE's own implementation measured) and it
// discharges, switching itself out so the machine can boot normally
// without the user removing the cartridge by hand.
//
// This is modelled as a deadline in CPU cycles rather than a literal RC
// decay; dischargeCycle is compared against the cartridge's own cycle
// count, which Tick advances by one on every call.
type epyx struct {
	bank [1][]byte

	cycle          uint64
	dischargeCycle uint64
	charged        bool
}

func newEpyx(h header, chips []chipPacket) (mapper, error) {
	e := &epyx{}
	if len(chips) > 0 {
		e.bank[0] = chips[0].data
	}
	return e, nil
}

func (e *epyx) initialise() { e.reset() }

func (e *epyx) reset() {
	e.cycle = 0
	e.dischargeCapacitor()
}

func (e *epyx) dischargeCapacitor() {
	e.dischargeCycle = e.cycle + 512
	e.charged = true
}

// Tick advances the capacitor's notion of elapsed time; the owning
// machine calls it once per CPU cycle so the 512-cycle deadline means the
// same thing regardless of how quickly ROML happens to be accessed.
func (e *epyx) Tick() {
	e.cycle++
	if e.charged && e.cycle > e.dischargeCycle {
		e.charged = false
	}
}

func (e *epyx) game() bool  { return true }
func (e *epyx) exrom() bool { return !e.charged }

func (e *epyx) readROML(addr uint16) (uint8, bool) {
	e.dischargeCapacitor()
	if !e.charged {
		return 0, false
	}
	return peek(e.bank[0], addr-0x8000)
}

func (e *epyx) readROMH(uint16) (uint8, bool) { return 0, false }

func (e *epyx) readIO1(addr uint16) (uint8, bool) {
	e.dischargeCapacitor()
	return 0, true
}

func (e *epyx) writeIO1(uint16, uint8) bool { return false }

// readIO2 mirrors the last 256 bytes of the ROM bank, uninvolved with the
// capacitor timer (real hardware wires only ROML and IO1 to the retrigger
// pin, not IO2).
func (e *epyx) readIO2(addr uint16) (uint8, bool) {
	return peek(e.bank[0], 0x1f00+(addr-0xdf00))
}

func (e *epyx) writeIO2(uint16, uint8) bool { return false }

func (e *epyx) listen(uint16, uint8) {}

func (e *epyx) nmi() bool { return false }
