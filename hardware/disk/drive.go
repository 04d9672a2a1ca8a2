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

// Package disk implements the VC1541: its own 6502 (reusing hardware/cpu
// exactly as the host's 6510 does), two 6522 VIAs (one for the IEC serial
// bus, one for the head/motor/data separator), the GCR bit-stream encoding
// every track is stored in, and the stepper-motor head positioning across
// the drive's 35 tracks.
package disk

import (
	"errors"

	"github.com/jetsetilly/gopher64/hardware/cpu"
	"github.com/jetsetilly/gopher64/hardware/instance"
	"github.com/jetsetilly/gopher64/hardware/memory/bus"
)

// ErrInvalidGCR is returned by DecodeBlock when a 5-bit code has no valid
// data interpretation - a track that was never formatted, or was damaged.
var ErrInvalidGCR = errors.New("disk: invalid GCR code")

const (
	ramSize  = 0x0800 // 2K, decoded and mirrored across $0000-$07FF
	romSize  = 0x4000 // 16K, $C000-$FFFF
	numTracks = 35
)

// Track holds one track's worth of raw GCR bitstream, as it would appear
// rotating past the read/write head: a G64-style variable-length byte
// stream and its length in bits (not always a multiple of 8, since real
// tracks don't divide evenly). Write protection belongs to the Disk, not
// to a Track.
type Track struct {
	GCR      []byte
	BitCount int
}

// Disk is the removable medium: 35 tracks' worth of GCR bitstream plus a
// write-protect tab. A Disk with no tracks loaded behaves like an empty
// drive - the drive motor can still spin and the head can still step, but
// every read returns sync-less garbage.
type Disk struct {
	Tracks        [numTracks]Track
	WriteProtected bool
}

// NewBlankDisk returns a Disk with every track present but unformatted
// (zero-length), the state of a disk fresh out of its packaging before
// running the format command.
func NewBlankDisk() *Disk {
	return &Disk{}
}

// Drive is one VC1541 unit: its own CPU, RAM, ROM, and two VIAs, connected
// to the host machine only via the IEC bus (see hardware/iec) - there is no
// shared memory or register access between a Drive and the host machine,
// exactly as on real hardware.
type Drive struct {
	DeviceNumber int

	cpu  *cpu.CPU
	ram  [ramSize]byte
	rom  [romSize]byte
	via1 *via // $1800-$1BFF: IEC bus
	via2 *via // $1C00-$1FFF: head, motor, data separator, write protect sense

	Disk *Disk

	// headTrack is the current head position in half-tracks (0-69), since
	// the stepper motor can park the head on a half-track between two
	// formatted 35 tracks; headTrack/2 is the Track index actually read.
	headTrack int
	bitCursor int // position within the current track's bitstream, in bits

	motorOn   bool
	ledOn     bool
	stepPhase byte // VIA2 PB0-1, the two-phase stepper signal

	// byteReady mirrors VIA2 CA1: pulses once per decoded GCR byte so the
	// ROM's bit-banged data separator loop knows when to read PA.
	byteReady bool
}

// NewDrive constructs a 1541 with the given ROM image (16K, mapped at
// $C000-$FFFF) and device number (8-11 on a real IEC bus).
func NewDrive(deviceNumber int, rom [romSize]byte) *Drive {
	d := &Drive{DeviceNumber: deviceNumber, rom: rom, Disk: NewBlankDisk()}
	d.via1 = newVIA()
	d.via2 = newVIA()
	d.via2.ReadPortB = d.readVIA2PortB
	d.cpu = cpu.NewCPU(instanceForDrive(), d)
	d.Reset()
	return d
}

// PlumbIEC wires the drive's VIA1 (the one connected to the serial bus
// port) to whatever represents the bus: write is called whenever the
// drive's own idea of what it's driving onto CLK/DATA changes, read
// supplies what the bus is actually presenting back to ATN IN/CLK IN.
func (d *Drive) PlumbIEC(write func(value byte), read func() byte) {
	d.via1.WritePortA = write
	d.via1.ReadPortA = read
}

// instanceForDrive returns a minimal instance.Instance for the drive's own
// CPU; drives don't share the host's random-fill-on-reset or preferences.
func instanceForDrive() *instance.Instance {
	return nil
}

func (d *Drive) Reset() {
	d.cpu.Reset()
	_ = d.cpu.LoadPCIndirect(0xfffc)
	d.via1.reset()
	d.via2.reset()
	d.via2.ReadPortB = d.readVIA2PortB
	d.headTrack = 34 // track 18, the directory track, is where real drives park on reset
	d.bitCursor = 0
	d.motorOn = false
}

// readVIA2PortB reports the drive's sensed inputs on Port B: bit 4 is the
// write-protect photo-sensor (0 = protected, inverted so "low" means
// blocked, matching the real drive's optical sensor wiring), bit 7 is the
// sync-mark detector (low while the head is positioned over a sync mark),
// and every other bit reads 1. Data-density zones are not modelled; tracks
// are decoded at a fixed rate.
func (d *Drive) readVIA2PortB() byte {
	var v byte = 0xff
	if d.Disk != nil && d.Disk.WriteProtected {
		v &^= 0x10
	}
	if d.atSyncMark() {
		v &^= 0x80
	}
	return v
}

func (d *Drive) currentTrack() *Track {
	idx := d.headTrack / 2
	if d.Disk == nil || idx < 0 || idx >= numTracks {
		return nil
	}
	return &d.Disk.Tracks[idx]
}

func (d *Drive) atSyncMark() bool {
	t := d.currentTrack()
	if t == nil || t.BitCount == 0 {
		return false
	}
	// a sync mark is ten or more consecutive 1 bits; approximated here by
	// checking whether the single byte under the cursor is 0xff, since every track
	// this package formats writes a conventional 5-byte sync run.
	byteIdx := (d.bitCursor / 8) % len(t.GCR)
	return t.GCR[byteIdx] == 0xff
}

// StepHead moves the head by one half-track in the given direction (+1 or
// -1), the effect of the two-phase stepper motor signal VIA2 PB0-1 drives.
// Real firmware steps by toggling the phase and waiting out the motor's
// settling time (modelled by the caller pacing calls to Cycle, not by this
// method).
func (d *Drive) StepHead(direction int) {
	d.headTrack += direction
	if d.headTrack < 0 {
		d.headTrack = 0
	}
	if d.headTrack >= numTracks*2 {
		d.headTrack = numTracks*2 - 1
	}
	d.bitCursor = 0
}

// Cycle advances the drive by one of its own clock cycles: the VIAs' free-
// running timer, the bit cursor rotating under the head while the motor is
// on, and the drive's CPU (stalled, like the host's, whenever its own RDY
// equivalent - here, simply always ready, since this package does not
// model DMA contention on the 1541 side - would otherwise run).
func (d *Drive) Cycle() error {
	d.via1.Step()
	d.via2.Step()

	if d.motorOn {
		d.rotateBit()
	}

	return d.cpu.ExecuteInstruction(cpu.NilCycleCallback)
}

func (d *Drive) rotateBit() {
	t := d.currentTrack()
	if t == nil || t.BitCount == 0 {
		return
	}
	d.bitCursor++
	if d.bitCursor >= t.BitCount {
		d.bitCursor = 0
	}
}

// Read implements bus.CPUBus for the drive's own address space: RAM
// mirrored every 2K up to $8000, VIA1/VIA2 windows, and ROM from $C000.
func (d *Drive) Read(address uint16) (uint8, error) {
	switch {
	case address >= 0x1800 && address < 0x1c00:
		return d.via1.Read(address), nil
	case address >= 0x1c00 && address < 0x2000:
		return d.via2.Read(address), nil
	case address < 0x8000:
		return d.ram[address&(ramSize-1)], nil
	case address >= 0xc000:
		return d.rom[address-0xc000], nil
	default:
		return 0, nil
	}
}

// Write implements bus.CPUBus.
func (d *Drive) Write(address uint16, data uint8) error {
	switch {
	case address >= 0x1800 && address < 0x1c00:
		d.via1.Write(address, data)
	case address >= 0x1c00 && address < 0x2000:
		d.via2.Write(address, data)
		d.afterVIA2Write(address)
	case address < 0x8000:
		d.ram[address&(ramSize-1)] = data
	}
	return nil
}

func (d *Drive) afterVIA2Write(address uint16) {
	if address&0xf != regPB {
		return
	}
	pb := d.via2.portB & d.via2.ddrB
	d.motorOn = d.via2.portB&0x04 != 0
	d.ledOn = d.via2.portB&0x08 != 0
	newPhase := pb & 0x03
	if newPhase != d.stepPhase {
		switch (newPhase - d.stepPhase) & 0x03 {
		case 1:
			d.StepHead(1)
		case 3:
			d.StepHead(-1)
		}
		d.stepPhase = newPhase
	}
}

var _ bus.CPUBus = (*Drive)(nil)
