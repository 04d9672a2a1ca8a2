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

// Package machine is the arena: it owns one of every chip a Commodore 64
// has, wires their ports and buses together exactly as the real machine's
// PCB traces do, and exposes the single Cycle method that advances the
// CPU, VIC-II and both CIAs together; attached disk drives are paced
// separately by the owner of the Machine. Every other hardware/* package models one
// chip in isolation; this is the only package that knows how they are
// actually connected.
package machine

import (
	"github.com/jetsetilly/gopher64/hardware/cia"
	"github.com/jetsetilly/gopher64/hardware/clocks"
	"github.com/jetsetilly/gopher64/hardware/controller"
	"github.com/jetsetilly/gopher64/hardware/cpu"
	"github.com/jetsetilly/gopher64/hardware/disk"
	"github.com/jetsetilly/gopher64/hardware/expansion"
	"github.com/jetsetilly/gopher64/hardware/iec"
	"github.com/jetsetilly/gopher64/hardware/instance"
	"github.com/jetsetilly/gopher64/hardware/keyboard"
	"github.com/jetsetilly/gopher64/hardware/memory"
	"github.com/jetsetilly/gopher64/hardware/sid"
	"github.com/jetsetilly/gopher64/hardware/vic"
	"github.com/jetsetilly/gopher64/random"
)

// Machine is a complete Commodore 64, plus zero or more VC1541s daisy
// chained on its serial bus.
type Machine struct {
	Region clocks.Region

	CPU    *cpu.CPU
	Memory *memory.Memory
	VIC    *vic.VIC
	CIA1   *cia.CIA
	CIA2   *cia.CIA
	SID    *sid.SID

	Keyboard *keyboard.Matrix
	Restore  keyboard.RestoreKey
	Joystick [2]*controller.Joystick
	Paddle   [2]*controller.Paddle
	Mouse    *controller.Mouse

	IEC    *iec.Bus
	Drives [2]*disk.Drive

	cart   expansion.Port
	vicBus *vicBus

	todDivider    int
	todCyclesPer  int
	frameCount    int
	lastColumnsOut byte
}

// NewMachine constructs a complete, plumbed machine. roms supplies the
// three built-in ROM images; driveROMs, if non-empty, attaches that many
// VC1541s (device 8 first) sharing the IEC bus.
func NewMachine(region clocks.Region, roms memory.ROMs, driveROMs ...[0x4000]byte) *Machine {
	m := &Machine{Region: region}

	m.Memory = memory.NewMemory(roms)
	m.VIC = vic.NewVIC()
	m.VIC.Timing = vic.Timing{
		CyclesPerLine: region.CyclesPerLine(),
		TotalLines:    region.Lines(),
		FirstDMALine:  0x30,
		LastDMALine:   0xf7,
	}
	m.CIA1 = cia.NewCIA("CIA1", cia.MOS6526)
	m.CIA2 = cia.NewCIA("CIA2", cia.MOS6526)
	m.SID = sid.NewSID()

	m.Keyboard = keyboard.NewMatrix()
	m.Joystick[0] = controller.NewJoystick()
	m.Joystick[1] = controller.NewJoystick()
	m.Paddle[0] = controller.NewPaddle()
	m.Paddle[1] = controller.NewPaddle()
	m.Mouse = controller.NewMouse(controller.Mouse1351)

	m.IEC = iec.NewBus()
	for i, rom := range driveROMs {
		m.Drives[i] = disk.NewDrive(8+i, rom)
	}

	m.vicBus = &vicBus{mem: m.Memory}
	m.VIC.Plumb(m.vicBus)

	m.wirePorts()

	m.cart = expansion.NoCartridge{}
	m.Memory.Plumb(m.VIC, m.SID, m.CIA1, m.CIA2, m.cart)

	ins, _ := instance.NewInstance(m, "")
	m.CPU = cpu.NewCPU(ins, m.Memory)

	m.todCyclesPer = int(region.SystemClock() * 0.1) // TOD ticks in tenths of a second
	if m.todCyclesPer <= 0 {
		m.todCyclesPer = 100000
	}

	m.Reset()
	return m
}

// wirePorts connects CIA1's ports to the keyboard matrix and joysticks, and
// CIA2's Port A to the VIC bank select and the IEC bus, matching the real
// machine's keyboard-PCB and serial-port wiring.
func (m *Machine) wirePorts() {
	m.CIA1.WritePortA = func(value byte) { m.lastColumnsOut = value }
	m.CIA1.ReadPortA = func() byte { return m.Joystick[0].State() }
	m.CIA1.ReadPortB = func() byte {
		return m.Keyboard.ScanColumns(m.lastColumnsOut) & m.Joystick[1].State()
	}

	m.CIA2.WritePortA = func(value byte) {
		m.vicBus.bank = int(^value & 0x03)
		atn := value&0x08 == 0
		clk := value&0x10 == 0
		data := value&0x20 == 0
		m.IEC.Drive(iec.Host, !atn, !clk, !data)
	}
	m.CIA2.ReadPortA = func() byte {
		_, clk, data := m.IEC.Sense()
		var v byte = 0xff
		if !clk {
			v &^= 0x40
		}
		if !data {
			v &^= 0x80
		}
		return v
	}

	m.SID.ReadPotX = m.Paddle[0].Read
	m.SID.ReadPotY = m.Paddle[1].Read

	for i, d := range m.Drives {
		if d == nil {
			continue
		}
		dev := iec.Drive1
		if i == 1 {
			dev = iec.Drive2
		}
		d.PlumbIEC(func(value byte) {
			clk := value&0x08 == 0
			data := value&0x02 == 0
			m.IEC.Drive(dev, true, !clk, !data)
		}, func() byte {
			atn, clk, _ := m.IEC.Sense()
			var v byte = 0xff
			if !clk {
				v &^= 0x04
			}
			if !atn {
				v &^= 0x80
			}
			return v
		})
	}
}

// AttachCartridge plugs cart into the expansion port, replacing whatever
// was there before (typically expansion.NoCartridge). The memory map's
// bank configuration is recomputed immediately, matching a real C64
// re-reading GAME/EXROM the instant a cartridge edge connector makes
// contact.
func (m *Machine) AttachCartridge(cart expansion.Port) {
	if cart == nil {
		cart = expansion.NoCartridge{}
	}
	m.cart = cart
	m.Memory.AttachCartridge(cart)
}

// cartTickable is implemented by cartridges with their own notion of
// elapsed time independent of bus accesses (eg. Epyx Fastload's discharge
// capacitor, see hardware/memory/cartridge).
type cartTickable interface {
	Tick()
}

// GetCoords implements random.Source, reporting the VIC's current raster
// position as the entropy-mixing coordinate the random package expects.
func (m *Machine) GetCoords() random.Coords {
	return random.Coords{Frame: m.frameCount, Line: m.VIC.Raster(), Cycle: 0}
}

// Reset pulls every chip's reset line, as if the user pressed the
// C64's reset button (or power switch).
func (m *Machine) Reset() {
	m.Memory.Reset()
	m.VIC.Reset()
	m.CIA1.Reset()
	m.CIA2.Reset()
	m.SID.Reset()
	if m.cart != nil {
		m.cart.Reset()
	}
	m.wirePorts()
	m.CPU.Reset()
	_ = m.CPU.LoadPCIndirect(0xfffc)
	for _, d := range m.Drives {
		if d != nil {
			d.Reset()
		}
	}
}

// Cycle advances the whole machine by one system clock cycle: the VIC-II's
// raster/DMA engine, both CIAs' timers, and either the CPU (if the VIC
// isn't holding BA) or a single held cycle while it waits. Disk drives run
// on their own, very slightly different, clock and are paced separately by
// whatever owns the Machine (see emulation.Scheduler), not by this method.
func (m *Machine) Cycle() error {
	wasNMI := m.CIA2.IRQ() || m.Restore.Held() || m.cart.NMI()

	m.CPU.RdyFlg = !m.VIC.BA()
	if err := m.CPU.ExecuteInstruction(m.tick); err != nil {
		return err
	}

	// NMI is edge-triggered: it fires once when the line transitions low,
	// not for as long as it's held, matching the 6502/6510's actual input
	// latch on the /NMI pin. A cartridge's own NMI line (a freezer button,
	// or FC3's delayed-counter output) is ORed in exactly like CIA2's.
	if nowNMI := m.CIA2.IRQ() || m.Restore.Held() || m.cart.NMI(); nowNMI && !wasNMI {
		if err := serviceInterrupt(m.CPU, m.Memory, nmiVector); err != nil {
			return err
		}
		return nil
	}

	// IRQ is level-sensitive: it keeps firing at every instruction boundary
	// for as long as an unmasked source holds the line low and the
	// interrupt-disable flag is clear, which is also why a handler must
	// clear the source's flag before returning.
	if (m.CIA1.IRQ() || m.VIC.IRQ()) && !m.CPU.Status.InterruptDisable {
		if err := serviceInterrupt(m.CPU, m.Memory, irqVector); err != nil {
			return err
		}
	}

	return nil
}

// tick is the CPU's cycleCallback: every system clock cycle the CPU
// consumes (including cycles spent stalled on RDY) also advances the VIC
// and both CIAs by exactly one cycle, keeping every chip's notion of time
// in lock-step.
func (m *Machine) tick() error {
	m.VIC.Cycle()
	m.CIA1.Step()
	m.CIA2.Step()
	if t, ok := m.cart.(cartTickable); ok {
		t.Tick()
	}

	m.todDivider++
	if m.todDivider >= m.todCyclesPer {
		m.todDivider = 0
		m.CIA1.TickTOD()
		m.CIA2.TickTOD()
	}

	if m.VIC.Raster() == 0 {
		m.frameCount++
	}

	return nil
}
