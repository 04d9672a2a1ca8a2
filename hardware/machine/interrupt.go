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

package machine

import (
	"github.com/jetsetilly/gopher64/hardware/cpu"
	"github.com/jetsetilly/gopher64/hardware/memory/bus"
)

const (
	irqVector = 0xfffe
	nmiVector = 0xfffa
)

// serviceInterrupt runs the 7-cycle (here: instantaneous, since this
// package doesn't need cycle-by-cycle visibility into the push sequence
// itself) IRQ/NMI entry sequence: push PC and status, set the interrupt-
// disable flag, load PC from the given vector. It serves the host 6510
// only; the VC1541's 6502 is never sent through it.
func serviceInterrupt(mc *cpu.CPU, mem bus.CPUBus, vector uint16) error {
	mc.Interrupted = true
	defer func() { mc.Interrupted = false }()

	push := func(v uint8) error {
		if err := mem.Write(mc.SP.Address(), v); err != nil {
			return err
		}
		mc.SP.Load(mc.SP.Value() - 1)
		return nil
	}

	pc := mc.PC.Value()
	if err := push(uint8(pc >> 8)); err != nil {
		return err
	}
	if err := push(uint8(pc)); err != nil {
		return err
	}

	status := mc.Status
	status.Break = false
	if err := push(status.Value()); err != nil {
		return err
	}

	mc.Status.InterruptDisable = true

	return mc.LoadPCIndirect(vector)
}
