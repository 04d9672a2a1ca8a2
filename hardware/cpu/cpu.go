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

// Package cpu implements the NMOS 6502-family core shared by the 6510 at
// the heart of the C64 and the 6502 inside the VC1541 disk drive. Register
// logic is implemented by the Register type in the registers sub-package;
// the two CPUs differ only in how their owning Machine wires up the
// memory bus (the 6510 exposes its extra data-direction/data port through
// that bus, not through this package).
package cpu

import (
	"errors"
	"fmt"

	"github.com/jetsetilly/gopher64/hardware/cpu/execution"
	"github.com/jetsetilly/gopher64/hardware/cpu/instructions"
	"github.com/jetsetilly/gopher64/hardware/cpu/registers"
	"github.com/jetsetilly/gopher64/hardware/instance"
	"github.com/jetsetilly/gopher64/hardware/memory/bus"
	"github.com/jetsetilly/gopher64/logger"
)

// CPU implements the 6502 core common to the 6510 and the VC1541's drive
// processor.
type CPU struct {
	instance *instance.Instance

	PC     registers.ProgramCounter
	A      registers.Register
	X      registers.Register
	Y      registers.Register
	SP     registers.StackPointer
	Status registers.StatusRegister

	// some operations only need an accumulator
	acc8  registers.Register
	acc16 registers.ProgramCounter

	mem          bus.CPUBus
	instructions []*instructions.Definition

	// cycleCallback is called for additional emulator functionality
	cycleCallback func() error

	// controls whether the cpu executes a cycle when it receives a clock
	// tick. the host machine clears it while the VIC-II holds BA low; the
	// VC1541's core never clears it.
	RdyFlg bool

	// last result. the address field is guaranteed to be always valid
	// except when the CPU has just been reset. we use this fact to help us
	// decide whether the CPU has just been reset (see HasReset())
	//
	// note that LastResult is not reset unless RdyFlg is true at the start
	// of execution.
	LastResult execution.Result

	// NoFlowControl sets whether the cpu responds accurately to
	// instructions that affect the flow of the program (branches, JMP,
	// subroutines and interrupts). used by disassembly-style tools that
	// need to reach every part of a program regardless of what it actually
	// does at runtime.
	NoFlowControl bool

	// Interrupted indicates that the CPU has been put into a state outside
	// of its normal operation. When true, work may be done on the CPU that
	// would otherwise be considered an error. Resets to false on every call
	// to ExecuteInstruction().
	Interrupted bool

	// whether the last memory access by the CPU was a phantom access
	PhantomMemAccess bool

	// the cpu has encountered a KIL instruction. requires a Reset()
	Killed bool
}

// NewCPU is the preferred method of initialisation for the CPU structure.
// Note that the registers start at zero rather than in their power-on
// state; call Reset() before use.
func NewCPU(instance *instance.Instance, mem bus.CPUBus) *CPU {
	return &CPU{
		instance:     instance,
		mem:          mem,
		PC:           registers.NewProgramCounter(0),
		A:            registers.NewRegister(0, "A"),
		X:            registers.NewRegister(0, "X"),
		Y:            registers.NewRegister(0, "Y"),
		SP:           registers.NewStackPointer(0),
		Status:       registers.NewStatusRegister(),
		acc8:         registers.NewRegister(0, "accumulator"),
		acc16:        registers.NewProgramCounter(0),
		instructions: instructions.GetDefinitions(),
	}
}

// Snapshot creates a copy of the CPU in its current state.
func (mc *CPU) Snapshot() *CPU {
	n := *mc
	return &n
}

// Plumb a new CPUBus into the CPU.
func (mc *CPU) Plumb(mem bus.CPUBus) {
	mc.mem = mem
}

func (mc *CPU) String() string {
	return fmt.Sprintf("%s=%s %s=%s %s=%s %s=%s %s=%s %s=%s",
		mc.PC.Label(), mc.PC, mc.A.Label(), mc.A,
		mc.X.Label(), mc.X, mc.Y.Label(), mc.Y,
		mc.SP.Label(), mc.SP, mc.Status.Label(), mc.Status)
}

// Reset reinitialises all registers. Does not load PC with the reset
// vector; use cpu.LoadPCIndirect(bus.Reset) when appropriate.
func (mc *CPU) Reset() {
	mc.LastResult.Reset()
	mc.Interrupted = true
	mc.Killed = false

	// checking for instance == nil because it's possible for NewCPU to be
	// called with a nil instance (eg. in tests)
	if mc.instance != nil && mc.instance.Prefs.RandomState.Value() {
		mc.PC.Load(uint16(mc.instance.Random.NoRewind(0xffff)))
		mc.A.Load(uint8(mc.instance.Random.NoRewind(0xff)))
		mc.X.Load(uint8(mc.instance.Random.NoRewind(0xff)))
		mc.Y.Load(uint8(mc.instance.Random.NoRewind(0xff)))
		mc.SP.Load(uint8(mc.instance.Random.NoRewind(0xff)))
		mc.Status.Load(uint8(mc.instance.Random.NoRewind(0xff)))
	} else {
		mc.PC.Load(0)
		mc.A.Load(0)
		mc.X.Load(0)
		mc.Y.Load(0)
		mc.SP.Load(0xff)
		mc.Status.Reset()
	}

	mc.Status.Zero = mc.A.IsZero()
	mc.Status.Sign = mc.A.IsNegative()
	mc.RdyFlg = true
	mc.cycleCallback = nil

	// not touching NoFlowControl
}

// HasReset checks whether the CPU has recently been reset.
func (mc *CPU) HasReset() bool {
	return mc.LastResult.Address == 0 && mc.LastResult.Defn == nil
}

// LoadPCIndirect loads the contents of indirectAddress into the PC.
func (mc *CPU) LoadPCIndirect(indirectAddress uint16) error {
	mc.PhantomMemAccess = false

	if !mc.LastResult.Final && !mc.Interrupted {
		return fmt.Errorf("cpu: load PC indirect invalid mid-instruction")
	}

	lo, err := mc.mem.Read(indirectAddress)
	if err != nil {
		if !errors.Is(err, bus.AddressError) {
			return err
		}
		mc.LastResult.Error = err.Error()
	}

	hi, err := mc.mem.Read(indirectAddress + 1)
	if err != nil {
		if !errors.Is(err, bus.AddressError) {
			return err
		}
		mc.LastResult.Error = err.Error()
	}

	mc.PC.Load((uint16(hi) << 8) | uint16(lo))

	return nil
}

// LoadPC loads the contents of directAddress into the PC.
func (mc *CPU) LoadPC(directAddress uint16) error {
	if !mc.LastResult.Final && !mc.Interrupted {
		return fmt.Errorf("cpu: load PC invalid mid-instruction")
	}

	mc.PC.Load(directAddress)

	return nil
}

// read8Bit returns the 8 bit value at the specified address.
//
// side-effects:
//   - calls cycleCallback after memory read
func (mc *CPU) read8Bit(address uint16, phantom bool) (uint8, error) {
	mc.PhantomMemAccess = phantom

	val, err := mc.mem.Read(address)
	if err != nil {
		if !errors.Is(err, bus.AddressError) {
			return 0, err
		}
		mc.LastResult.Error = err.Error()
	}

	mc.LastResult.Cycles++
	if err := mc.cycleCallback(); err != nil {
		return 0, err
	}

	return val, nil
}

// read8BitZeroPage returns the 8 bit value at the specified zero page
// address.
//
// side-effects:
//   - calls cycleCallback after memory read
func (mc *CPU) read8BitZeroPage(address uint8) (uint8, error) {
	mc.PhantomMemAccess = false

	val, err := mc.mem.Read(uint16(address))
	if err != nil {
		if !errors.Is(err, bus.AddressError) {
			return 0, err
		}
		mc.LastResult.Error = err.Error()
	}

	mc.LastResult.Cycles++
	if err := mc.cycleCallback(); err != nil {
		return 0, err
	}

	return val, nil
}

// write8Bit writes 8 bits to the specified address. There are no side
// effects on CPU state; *cycleCallback must be called by the caller as
// appropriate*.
func (mc *CPU) write8Bit(address uint16, value uint8, phantom bool) error {
	mc.PhantomMemAccess = phantom

	err := mc.mem.Write(address, value)
	if err != nil {
		if !errors.Is(err, bus.AddressError) {
			return err
		}
		mc.LastResult.Error = err.Error()
	}

	return nil
}

// read16Bit returns the 16 bit value at the specified address.
//
// side-effects:
//   - calls cycleCallback after each 8 bit read
func (mc *CPU) read16Bit(address uint16) (uint16, error) {
	mc.PhantomMemAccess = false

	lo, err := mc.mem.Read(address)
	if err != nil {
		if !errors.Is(err, bus.AddressError) {
			return 0, err
		}
		mc.LastResult.Error = err.Error()
	}

	mc.LastResult.Cycles++
	if err := mc.cycleCallback(); err != nil {
		return 0, err
	}

	hi, err := mc.mem.Read(address + 1)
	if err != nil {
		if !errors.Is(err, bus.AddressError) {
			return 0, err
		}
		mc.LastResult.Error = err.Error()
	}

	mc.LastResult.Cycles++
	if err := mc.cycleCallback(); err != nil {
		return 0, err
	}

	return (uint16(hi) << 8) | uint16(lo), nil
}

// read8BitPCeffect names the additional side effects of reading a byte from
// the location the PC points to.
type read8BitPCeffect int

const (
	brk read8BitPCeffect = iota
	newOpcode
	loNibble
	hiNibble
)

// read8BitPC reads 8 bits from the memory location pointed to by PC.
//
// side-effects:
//   - updates program counter
//   - calls cycleCallback at the end of the function
//   - updates LastResult.ByteCount
//   - additional side effect updates LastResult as appropriate
func (mc *CPU) read8BitPC(effect read8BitPCeffect) error {
	v, err := mc.mem.Read(mc.PC.Address())
	if err != nil {
		if !errors.Is(err, bus.AddressError) {
			return err
		}
		mc.LastResult.Error = err.Error()
	}

	mc.PC.Add(1)
	mc.LastResult.ByteCount++

	switch effect {
	case brk:
		// BRK advances the PC by two but we don't want to record that the
		// additional byte has been read
		mc.LastResult.ByteCount--

	case newOpcode:
		mc.LastResult.Defn = mc.instructions[v]
		if mc.LastResult.Defn == nil {
			return fmt.Errorf("cpu: unimplemented instruction (%#02x) at (%#04x)", v, mc.PC.Address()-1)
		}

	case loNibble:
		mc.LastResult.InstructionData = uint16(v)

	case hiNibble:
		mc.LastResult.InstructionData = (uint16(v) << 8) | mc.LastResult.InstructionData
	}

	mc.LastResult.Cycles++
	if err := mc.cycleCallback(); err != nil {
		return err
	}

	return nil
}

// read16BitPC reads 16 bits from the memory location pointed to by PC.
//
// side-effects:
//   - updates program counter
//   - calls cycleCallback after each 8 bit read
//   - updates LastResult.ByteCount
//   - updates InstructionData, once before each call to cycleCallback
func (mc *CPU) read16BitPC() error {
	lo, err := mc.mem.Read(mc.PC.Address())
	if err != nil {
		if !errors.Is(err, bus.AddressError) {
			return err
		}
		mc.LastResult.Error = err.Error()
	}

	mc.PC.Add(1)
	mc.LastResult.ByteCount++
	mc.LastResult.InstructionData = uint16(lo)

	mc.LastResult.Cycles++
	if err := mc.cycleCallback(); err != nil {
		return err
	}

	hi, err := mc.mem.Read(mc.PC.Address())
	if err != nil {
		if !errors.Is(err, bus.AddressError) {
			return err
		}
		mc.LastResult.Error = err.Error()
	}

	mc.PC.Add(1)
	mc.LastResult.ByteCount++
	mc.LastResult.InstructionData = (uint16(hi) << 8) | uint16(lo)

	mc.LastResult.Cycles++
	if err := mc.cycleCallback(); err != nil {
		return err
	}

	return nil
}

func (mc *CPU) branch(flag bool, address uint16) error {
	if mc.NoFlowControl {
		return nil
	}

	// relative addressing reads an 8 bit value rather than a 16 bit value;
	// sign-extend it before using it in PC arithmetic
	if address&0x0080 == 0x0080 {
		address |= 0xff00
	}

	mc.LastResult.BranchSuccess = flag

	if flag {
		oldPC := mc.PC.Address()

		// phantom read
		if _, err := mc.read8Bit(mc.PC.Address(), true); err != nil {
			return err
		}

		// add the full (sign extended) offset to PC, note whether a page
		// boundary was crossed, then restore the MSB of the old PC - the
		// MSB is corrected separately below if a page was actually crossed
		mc.PC.Add(address)
		mc.LastResult.PageFault = oldPC&0xff00 != mc.PC.Address()&0xff00
		mc.PC.Load(oldPC&0xff00 | mc.PC.Address()&0x00ff)

		if mc.LastResult.PageFault {
			// phantom read
			if _, err := mc.read8Bit(mc.PC.Address(), true); err != nil {
				return err
			}

			if address&0xff00 == 0xff00 {
				mc.PC.Add(0xff00)
			} else {
				mc.PC.Add(0x0100)
			}

			mc.LastResult.PageFault = true
		}
	}

	return nil
}

// NilCycleCallback can be provided as an argument to ExecuteInstruction().
// It's a convenient do-nothing function.
func NilCycleCallback() error {
	return nil
}

// ResetMidInstruction is returned by ExecuteInstruction() if the CPU was
// reset in the middle of an instruction.
var ResetMidInstruction = errors.New("cpu: appears to have been reset mid-instruction")

// ExecuteInstruction steps the CPU forward one instruction:
//
//  1. read the opcode and look up its instruction definition
//  2. read operands (if any) according to the instruction's addressing mode
//  3. perform the instruction
//
// Every instruction takes at least two cycles. After each cycle,
// cycleCallback is run, allowing the rest of the machine to keep pace with
// the CPU.
//
// cycleCallback should never be nil; pass NilCycleCallback if no per-cycle
// side effect is needed.
func (mc *CPU) ExecuteInstruction(cycleCallback func() error) error {
	if mc.Killed {
		return nil
	}

	if !mc.LastResult.Final && !mc.Interrupted {
		return fmt.Errorf("cpu: starting a new instruction is invalid mid-instruction")
	}

	mc.Interrupted = false

	if !mc.RdyFlg {
		return cycleCallback()
	}

	mc.cycleCallback = cycleCallback

	mc.LastResult.Reset()
	mc.LastResult.Address = mc.PC.Address()

	var err error

	if err = mc.read8BitPC(newOpcode); err != nil {
		mc.LastResult.ByteCount = 1
		mc.LastResult.Final = true
		return err
	}

	// address is the actual address to use to access memory, after any
	// indexing has taken place
	var address uint16

	// value is unset for implied addressing, read from the program for
	// immediate/relative modes, and read from memory for every other mode.
	// for read-modify-write instructions the value changes during execution
	// and is written back to memory at the end
	var value uint8

	var zeroPage bool

	defn := mc.LastResult.Defn
	if defn == nil {
		return ResetMidInstruction
	}

	switch defn.AddressingMode {
	case instructions.Implied:
		if defn.Operator == instructions.Brk {
			// BRK advances the PC by two bytes despite being Implied
			if err = mc.read8BitPC(brk); err != nil {
				return err
			}
		} else {
			if _, err = mc.read8Bit(mc.PC.Address(), true); err != nil {
				return err
			}
		}

	case instructions.Immediate:
		if err = mc.read8BitPC(loNibble); err != nil {
			return err
		}
		value = uint8(mc.LastResult.InstructionData)

	case instructions.Relative:
		// most of the cycles for this addressing mode are consumed in
		// branch()
		if err = mc.read8BitPC(loNibble); err != nil {
			return err
		}
		address = mc.LastResult.InstructionData

	case instructions.Absolute:
		if defn.Effect != instructions.Subroutine {
			if err := mc.read16BitPC(); err != nil {
				return err
			}
			address = mc.LastResult.InstructionData
		}
		// else: JSR reads its address differently; that's handled in the
		// operator switch below

	case instructions.ZeroPage:
		zeroPage = true
		if err = mc.read8BitPC(loNibble); err != nil {
			return err
		}
		address = mc.LastResult.InstructionData

	case instructions.Indirect:
		// indirect addressing (without indexing) is only used by JMP
		if err := mc.read16BitPC(); err != nil {
			return err
		}
		indirectAddress := mc.LastResult.InstructionData

		if indirectAddress&0x00ff == 0x00ff {
			mc.LastResult.CPUBug = execution.JmpIndirectAddressingBug

			lo, err := mc.mem.Read(indirectAddress)
			if err != nil {
				if !errors.Is(err, bus.AddressError) {
					return err
				}
				mc.LastResult.Error = err.Error()
			}

			mc.LastResult.Cycles++
			if err := mc.cycleCallback(); err != nil {
				return err
			}

			// the low byte of the indirect address sits on a page
			// boundary, so the buggy high byte read wraps to the start of
			// the same page rather than crossing into the next one
			hi, err := mc.mem.Read(indirectAddress & 0xff00)
			if err != nil {
				return err
			}
			address = uint16(hi)<<8 | uint16(lo)

			mc.LastResult.Cycles++
			if err := mc.cycleCallback(); err != nil {
				return err
			}
		} else {
			address, err = mc.read16Bit(indirectAddress)
			if err != nil {
				return err
			}
		}

	case instructions.IndexedIndirect: // (zp,X)
		if err = mc.read8BitPC(loNibble); err != nil {
			return err
		}
		indirectAddress := uint8(mc.LastResult.InstructionData)

		// phantom read before adjusting the index
		if _, err = mc.read8Bit(uint16(indirectAddress), true); err != nil {
			return err
		}

		// 8 bit addition so the indexed address never extends past the
		// first page
		mc.acc8.Load(mc.X.Value())
		mc.acc8.Add(indirectAddress, false)

		if uint16(indirectAddress+mc.X.Value())&0xff00 != uint16(indirectAddress)&0xff00 {
			mc.LastResult.CPUBug = execution.IndexedIndirectAddressingBug
		}

		address, err = mc.read16Bit(mc.acc8.Address())
		if err != nil {
			return err
		}

	case instructions.IndirectIndexed: // (zp),Y
		if err = mc.read8BitPC(loNibble); err != nil {
			return err
		}
		indirectAddress := mc.LastResult.InstructionData

		var indexedAddress uint16
		indexedAddress, err = mc.read16Bit(indirectAddress)
		if err != nil {
			return err
		}

		mc.acc16.Load(mc.Y.Address())
		mc.acc16.Add(indexedAddress & 0x00ff)
		address = mc.acc16.Address()

		if defn.PageSensitive && (address&0xff00 == 0x0100) {
			mc.LastResult.PageFault = true
		}

		if mc.LastResult.PageFault || defn.Effect == instructions.Write || defn.Effect == instructions.RMW {
			// phantom read; always happens for Write and RMW
			if _, err = mc.read8Bit((indexedAddress&0xff00)|(address&0x00ff), true); err != nil {
				return err
			}
		}

		mc.acc16.Add(indexedAddress & 0xff00)
		address = mc.acc16.Address()

	case instructions.AbsoluteIndexedX:
		if err = mc.read16BitPC(); err != nil {
			return err
		}
		indirectAddress := mc.LastResult.InstructionData

		mc.acc16.Load(mc.X.Address())
		mc.acc16.Add(indirectAddress & 0x00ff)
		address = mc.acc16.Address()

		mc.LastResult.PageFault = defn.PageSensitive && (address&0xff00 == 0x0100)
		if mc.LastResult.PageFault || defn.Effect == instructions.Write || defn.Effect == instructions.RMW {
			if _, err := mc.read8Bit((indirectAddress&0xff00)|(address&0x00ff), true); err != nil {
				return err
			}
		}

		mc.acc16.Add(indirectAddress & 0xff00)
		address = mc.acc16.Address()

	case instructions.AbsoluteIndexedY:
		if err = mc.read16BitPC(); err != nil {
			return err
		}
		indirectAddress := mc.LastResult.InstructionData

		mc.acc16.Load(mc.Y.Address())
		mc.acc16.Add(indirectAddress & 0x00ff)
		address = mc.acc16.Address()

		mc.LastResult.PageFault = defn.PageSensitive && (address&0xff00 == 0x0100)
		if mc.LastResult.PageFault || defn.Effect == instructions.Write || defn.Effect == instructions.RMW {
			if _, err := mc.read8Bit((indirectAddress&0xff00)|(address&0x00ff), true); err != nil {
				return err
			}
		}

		mc.acc16.Add(indirectAddress & 0xff00)
		address = mc.acc16.Address()

	case instructions.ZeroPageIndexedX:
		zeroPage = true
		if err = mc.read8BitPC(loNibble); err != nil {
			return err
		}

		// phantom read from the base address before index adjustment
		if _, err := mc.read8Bit(mc.LastResult.InstructionData, true); err != nil {
			return err
		}

		indirectAddress := uint8(mc.LastResult.InstructionData)
		mc.acc8.Load(indirectAddress)
		mc.acc8.Add(mc.X.Value(), false)
		address = mc.acc8.Address()

		if uint16(indirectAddress+mc.X.Value())&0xff00 != uint16(indirectAddress)&0xff00 {
			mc.LastResult.CPUBug = execution.ZeroPageIndexBug
		}

	case instructions.ZeroPageIndexedY:
		// used exclusively by LDX zeropage,Y and STX zeropage,Y
		zeroPage = true
		if err = mc.read8BitPC(loNibble); err != nil {
			return err
		}

		if _, err := mc.read8Bit(mc.LastResult.InstructionData, true); err != nil {
			return err
		}

		indirectAddress := uint8(mc.LastResult.InstructionData)
		mc.acc8.Load(indirectAddress)
		mc.acc8.Add(mc.Y.Value(), false)
		address = mc.acc8.Address()

		if uint16(indirectAddress+mc.Y.Value())&0xff00 != uint16(indirectAddress)&0xff00 {
			mc.LastResult.CPUBug = execution.ZeroPageIndexBug
		}

	default:
		return fmt.Errorf("cpu: unknown addressing mode for %s", defn.Operator)
	}

	// read the value to operate on, for every addressing mode except
	// Implied/Immediate (which already have it) and every effect except
	// Write/Flow/Subroutine (which don't need it)
	if !(defn.AddressingMode == instructions.Implied || defn.AddressingMode == instructions.Immediate) {
		if defn.Effect == instructions.Read {
			if zeroPage {
				value, err = mc.read8BitZeroPage(uint8(address))
			} else {
				value, err = mc.read8Bit(address, false)
			}
			if err != nil {
				return err
			}
		} else if defn.Effect == instructions.RMW {
			if zeroPage {
				value, err = mc.read8BitZeroPage(uint8(address))
			} else {
				value, err = mc.read8Bit(address, false)
			}
			if err != nil {
				return err
			}

			// phantom write
			if err = mc.write8Bit(address, value, true); err != nil {
				return err
			}
			mc.LastResult.Cycles++
			if err = mc.cycleCallback(); err != nil {
				return err
			}
		}
	}

	switch defn.Operator {
	case instructions.Nop:

	case instructions.Cli:
		mc.Status.InterruptDisable = false

	case instructions.Sei:
		mc.Status.InterruptDisable = true

	case instructions.Clc:
		mc.Status.Carry = false

	case instructions.Sec:
		mc.Status.Carry = true

	case instructions.Cld:
		mc.Status.DecimalMode = false

	case instructions.Sed:
		mc.Status.DecimalMode = true

	case instructions.Clv:
		mc.Status.Overflow = false

	case instructions.Pha:
		if err = mc.write8Bit(mc.SP.Address(), mc.A.Value(), false); err != nil {
			return err
		}
		mc.SP.Add(0xff, false)
		mc.LastResult.Cycles++
		if err = mc.cycleCallback(); err != nil {
			return err
		}

	case instructions.Pla:
		mc.SP.Add(1, false)
		mc.LastResult.Cycles++
		if err = mc.cycleCallback(); err != nil {
			return err
		}

		value, err = mc.read8Bit(mc.SP.Address(), false)
		if err != nil {
			return err
		}
		mc.A.Load(value)
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()

	case instructions.Php:
		if err = mc.write8Bit(mc.SP.Address(), mc.Status.Value(), false); err != nil {
			return err
		}
		mc.SP.Add(0xff, false)
		mc.LastResult.Cycles++
		if err = mc.cycleCallback(); err != nil {
			return err
		}

	case instructions.Plp:
		mc.SP.Add(1, false)
		mc.LastResult.Cycles++
		if err = mc.cycleCallback(); err != nil {
			return err
		}
		value, err = mc.read8Bit(mc.SP.Address(), false)
		if err != nil {
			return err
		}
		mc.Status.Load(value)

	case instructions.Txa:
		mc.A.Load(mc.X.Value())
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()

	case instructions.Tax:
		mc.X.Load(mc.A.Value())
		mc.Status.Zero = mc.X.IsZero()
		mc.Status.Sign = mc.X.IsNegative()

	case instructions.Tay:
		mc.Y.Load(mc.A.Value())
		mc.Status.Zero = mc.Y.IsZero()
		mc.Status.Sign = mc.Y.IsNegative()

	case instructions.Tya:
		mc.A.Load(mc.Y.Value())
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()

	case instructions.Tsx:
		mc.X.Load(mc.SP.Value())
		mc.Status.Zero = mc.X.IsZero()
		mc.Status.Sign = mc.X.IsNegative()

	case instructions.Txs:
		mc.SP.Load(mc.X.Value())
		// does not affect status register

	case instructions.Eor:
		mc.A.EOR(value)
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()

	case instructions.Ora:
		mc.A.ORA(value)
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()

	case instructions.And:
		mc.A.AND(value)
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()

	case instructions.Lda:
		mc.A.Load(value)
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()

	case instructions.Ldx:
		mc.X.Load(value)
		mc.Status.Zero = mc.X.IsZero()
		mc.Status.Sign = mc.X.IsNegative()

	case instructions.Ldy:
		mc.Y.Load(value)
		mc.Status.Zero = mc.Y.IsZero()
		mc.Status.Sign = mc.Y.IsNegative()

	case instructions.Sta:
		if err = mc.write8Bit(address, mc.A.Value(), false); err != nil {
			return err
		}
		mc.LastResult.Cycles++
		if err = mc.cycleCallback(); err != nil {
			return err
		}

	case instructions.Stx:
		if err = mc.write8Bit(address, mc.X.Value(), false); err != nil {
			return err
		}
		mc.LastResult.Cycles++
		if err = mc.cycleCallback(); err != nil {
			return err
		}

	case instructions.Sty:
		if err = mc.write8Bit(address, mc.Y.Value(), false); err != nil {
			return err
		}
		mc.LastResult.Cycles++
		if err = mc.cycleCallback(); err != nil {
			return err
		}

	case instructions.Inx:
		mc.X.Add(1, false)
		mc.Status.Zero = mc.X.IsZero()
		mc.Status.Sign = mc.X.IsNegative()

	case instructions.Iny:
		mc.Y.Add(1, false)
		mc.Status.Zero = mc.Y.IsZero()
		mc.Status.Sign = mc.Y.IsNegative()

	case instructions.Dex:
		mc.X.Add(0xff, false)
		mc.Status.Zero = mc.X.IsZero()
		mc.Status.Sign = mc.X.IsNegative()

	case instructions.Dey:
		mc.Y.Add(0xff, false)
		mc.Status.Zero = mc.Y.IsZero()
		mc.Status.Sign = mc.Y.IsNegative()

	case instructions.Asl:
		var r *registers.Register
		if defn.Effect == instructions.RMW {
			r = &mc.acc8
			r.Load(value)
		} else {
			r = &mc.A
		}
		mc.Status.Carry = r.ASL()
		mc.Status.Zero = r.IsZero()
		mc.Status.Sign = r.IsNegative()
		value = r.Value()

	case instructions.Lsr:
		var r *registers.Register
		if defn.Effect == instructions.RMW {
			r = &mc.acc8
			r.Load(value)
		} else {
			r = &mc.A
		}
		mc.Status.Carry = r.LSR()
		mc.Status.Zero = r.IsZero()
		mc.Status.Sign = r.IsNegative()
		value = r.Value()

	case instructions.Adc:
		if mc.Status.DecimalMode {
			mc.Status.Carry, mc.Status.Zero, mc.Status.Overflow, mc.Status.Sign = mc.A.AddDecimal(value, mc.Status.Carry)
		} else {
			mc.Status.Carry, mc.Status.Overflow = mc.A.Add(value, mc.Status.Carry)
			mc.Status.Zero = mc.A.IsZero()
			mc.Status.Sign = mc.A.IsNegative()
		}

	case instructions.SBC:
		// SBC ($EB) is an undocumented synonym of the regular SBC
		fallthrough

	case instructions.Sbc:
		if mc.Status.DecimalMode {
			mc.Status.Carry, mc.Status.Zero, mc.Status.Overflow, mc.Status.Sign = mc.A.SubtractDecimal(value, mc.Status.Carry)
		} else {
			mc.Status.Carry, mc.Status.Overflow = mc.A.Subtract(value, mc.Status.Carry)
			mc.Status.Zero = mc.A.IsZero()
			mc.Status.Sign = mc.A.IsNegative()
		}

	case instructions.Ror:
		var r *registers.Register
		if defn.Effect == instructions.RMW {
			r = &mc.acc8
			r.Load(value)
		} else {
			r = &mc.A
		}
		mc.Status.Carry = r.ROR(mc.Status.Carry)
		mc.Status.Zero = r.IsZero()
		mc.Status.Sign = r.IsNegative()
		value = r.Value()

	case instructions.Rol:
		var r *registers.Register
		if defn.Effect == instructions.RMW {
			r = &mc.acc8
			r.Load(value)
		} else {
			r = &mc.A
		}
		mc.Status.Carry = r.ROL(mc.Status.Carry)
		mc.Status.Zero = r.IsZero()
		mc.Status.Sign = r.IsNegative()
		value = r.Value()

	case instructions.Inc:
		r := mc.acc8
		r.Load(value)
		r.Add(1, false)
		mc.Status.Zero = r.IsZero()
		mc.Status.Sign = r.IsNegative()
		value = r.Value()

	case instructions.Dec:
		r := mc.acc8
		r.Load(value)
		r.Add(0xff, false)
		mc.Status.Zero = r.IsZero()
		mc.Status.Sign = r.IsNegative()
		value = r.Value()

	case instructions.Cmp:
		r := mc.acc8
		r.Load(mc.A.Value())
		// CMP works as a binary subtract even in decimal mode
		mc.Status.Carry, _ = r.Subtract(value, true)
		mc.Status.Zero = r.IsZero()
		mc.Status.Sign = r.IsNegative()

	case instructions.Cpx:
		r := mc.acc8
		r.Load(mc.X.Value())
		mc.Status.Carry, _ = r.Subtract(value, true)
		mc.Status.Zero = r.IsZero()
		mc.Status.Sign = r.IsNegative()

	case instructions.Cpy:
		r := mc.acc8
		r.Load(mc.Y.Value())
		mc.Status.Carry, _ = r.Subtract(value, true)
		mc.Status.Zero = r.IsZero()
		mc.Status.Sign = r.IsNegative()

	case instructions.Bit:
		r := mc.acc8
		r.Load(value)
		mc.Status.Sign = r.IsNegative()
		mc.Status.Overflow = r.IsBitV()
		r.AND(mc.A.Value())
		mc.Status.Zero = r.IsZero()

	case instructions.Jmp:
		if !mc.NoFlowControl {
			mc.PC.Load(address)
		}

	case instructions.Bcc:
		if err = mc.branch(!mc.Status.Carry, address); err != nil {
			return err
		}

	case instructions.Bcs:
		if err = mc.branch(mc.Status.Carry, address); err != nil {
			return err
		}

	case instructions.Beq:
		if err = mc.branch(mc.Status.Zero, address); err != nil {
			return err
		}

	case instructions.Bmi:
		if err = mc.branch(mc.Status.Sign, address); err != nil {
			return err
		}

	case instructions.Bne:
		if err = mc.branch(!mc.Status.Zero, address); err != nil {
			return err
		}

	case instructions.Bpl:
		if err = mc.branch(!mc.Status.Sign, address); err != nil {
			return err
		}

	case instructions.Bvc:
		if err = mc.branch(!mc.Status.Overflow, address); err != nil {
			return err
		}

	case instructions.Bvs:
		if err = mc.branch(mc.Status.Overflow, address); err != nil {
			return err
		}

	case instructions.Jsr:
		if err = mc.read8BitPC(loNibble); err != nil {
			return err
		}

		// the PC is already correct even though only one byte of the
		// address has been read - RTS increments the PC after pulling it
		// from the stack, so it arrives back here correctly
		mc.LastResult.Cycles++
		if err = mc.cycleCallback(); err != nil {
			return err
		}

		if err = mc.write8Bit(mc.SP.Address(), uint8(mc.PC.Address()>>8), false); err != nil {
			return err
		}
		mc.SP.Add(0xff, false)
		mc.LastResult.Cycles++
		if err = mc.cycleCallback(); err != nil {
			return err
		}

		if err = mc.write8Bit(mc.SP.Address(), uint8(mc.PC.Address()), false); err != nil {
			return err
		}
		mc.SP.Add(0xff, false)
		mc.LastResult.Cycles++
		if err = mc.cycleCallback(); err != nil {
			return err
		}

		if err = mc.read8BitPC(hiNibble); err != nil {
			return err
		}

		// JSR uses absolute addressing but the address is built here,
		// rather than in the addressing-mode switch, because of its
		// unusual cycle sequence
		address = mc.LastResult.InstructionData
		if !mc.NoFlowControl {
			mc.PC.Load(address)
		}

	case instructions.Rts:
		if !mc.NoFlowControl {
			mc.SP.Add(1, false)
		}
		mc.LastResult.Cycles++
		if err = mc.cycleCallback(); err != nil {
			return err
		}

		var rtsAddress uint16
		rtsAddress, err = mc.read16Bit(mc.SP.Address())
		if err != nil {
			return err
		}

		if !mc.NoFlowControl {
			mc.SP.Add(1, false)
			mc.PC.Load(rtsAddress)
			mc.PC.Add(1)
		}

		mc.LastResult.Cycles++
		if err = mc.cycleCallback(); err != nil {
			return err
		}

	case instructions.Brk:
		// push PC (same effect as JSR)
		if err := mc.write8Bit(mc.SP.Address(), uint8(mc.PC.Address()>>8), false); err != nil {
			return err
		}
		mc.SP.Add(0xff, false)
		mc.LastResult.Cycles++
		if err = mc.cycleCallback(); err != nil {
			return err
		}

		if err := mc.write8Bit(mc.SP.Address(), uint8(mc.PC.Address()), false); err != nil {
			return err
		}
		mc.SP.Add(0xff, false)
		mc.LastResult.Cycles++
		if err = mc.cycleCallback(); err != nil {
			return err
		}

		// push status (same effect as PHP)
		if err := mc.write8Bit(mc.SP.Address(), mc.Status.Value(), false); err != nil {
			return err
		}
		mc.SP.Add(0xff, false)
		mc.LastResult.Cycles++
		if err = mc.cycleCallback(); err != nil {
			return err
		}

		mc.Status.Break = true

		var brkAddress uint16
		brkAddress, err = mc.read16Bit(bus.BRK)
		if err != nil {
			return err
		}
		if !mc.NoFlowControl {
			mc.PC.Load(brkAddress)
		}

	case instructions.Rti:
		// pull status (same effect as PLP)
		if !mc.NoFlowControl {
			mc.SP.Add(1, false)
		}
		mc.LastResult.Cycles++
		if err = mc.cycleCallback(); err != nil {
			return err
		}

		value, err = mc.read8Bit(mc.SP.Address(), false)
		if err != nil {
			return err
		}
		mc.Status.Load(value)

		// pull program counter (same effect as RTS, but no +1 correction)
		if !mc.NoFlowControl {
			mc.SP.Add(1, false)
		}

		var rtiAddress uint16
		rtiAddress, err = mc.read16Bit(mc.SP.Address())
		if err != nil {
			return err
		}

		if !mc.NoFlowControl {
			mc.SP.Add(1, false)
			mc.PC.Load(rtiAddress)
		}

	// undocumented instructions

	case instructions.NOP:
		// 2-byte NOP, does nothing

	case instructions.LAX:
		mc.A.Load(value)
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()
		mc.X.Load(value)

	case instructions.DCP:
		r := mc.acc8
		r.Load(value)
		r.Add(0xff, false)
		value = r.Value()

		r.Load(mc.A.Value())
		mc.Status.Carry, _ = r.Subtract(value, true)
		mc.Status.Zero = r.IsZero()
		mc.Status.Sign = r.IsNegative()

	case instructions.ASR:
		mc.A.AND(value)
		mc.Status.Carry = mc.A.LSR()
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()

	case instructions.XAA:
		mc.A.Load(mc.X.Value())
		mc.A.AND(value)
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()

	case instructions.AXS:
		mc.X.AND(mc.A.Value())
		mc.Status.Carry, _ = mc.X.Subtract(value, true)
		mc.Status.Zero = mc.X.IsZero()
		mc.Status.Sign = mc.X.IsNegative()

	case instructions.SAX:
		r := mc.acc8
		r.Load(mc.A.Value())
		r.AND(mc.X.Value())

		if err = mc.write8Bit(address, r.Value(), false); err != nil {
			return err
		}
		mc.LastResult.Cycles++
		if err = mc.cycleCallback(); err != nil {
			return err
		}

	case instructions.ARR:
		mc.A.AND(value)
		mc.Status.Carry = mc.A.ROR(mc.Status.Carry)
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()

	case instructions.SLO:
		r := mc.acc8
		r.Load(value)
		mc.Status.Carry = r.ASL()
		mc.Status.Zero = r.IsZero()
		mc.Status.Sign = r.IsNegative()
		value = r.Value()
		mc.A.ORA(value)
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()

	case instructions.RLA:
		r := mc.acc8
		r.Load(value)
		mc.Status.Carry = r.ROL(mc.Status.Carry)
		value = r.Value()
		mc.A.AND(r.Value())
		mc.Status.Zero = r.IsZero()
		mc.Status.Sign = r.IsNegative()

	case instructions.ISC:
		r := mc.acc8
		r.Load(value)
		r.Add(1, false)
		value = r.Value()
		mc.Status.Carry, mc.Status.Overflow = mc.A.Subtract(value, mc.Status.Carry)
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()

	case instructions.ANC:
		mc.A.AND(value)
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()
		mc.Status.Carry = value&0x80 == 0x80

	case instructions.SRE:
		r := mc.acc8
		r.Load(value)
		mc.Status.Carry = r.LSR()
		value = r.Value()
		mc.A.EOR(value)
		mc.Status.Zero = r.IsZero()
		mc.Status.Sign = r.IsNegative()

	case instructions.RRA:
		r := mc.acc8
		r.Load(value)
		mc.Status.Carry = r.ROR(mc.Status.Carry)
		value = r.Value()
		mc.Status.Carry, mc.Status.Overflow = mc.A.Add(value, mc.Status.Carry)
		mc.Status.Zero = r.IsZero()
		mc.Status.Sign = r.IsNegative()

	case instructions.AHX:
		r := mc.acc8
		r.Load(mc.A.Value())
		r.AND(mc.X.Value())
		r.AND(uint8(mc.PC.Address() >> 8))

		if err = mc.write8Bit(address, r.Value(), false); err != nil {
			return err
		}
		mc.LastResult.Cycles++
		if err = mc.cycleCallback(); err != nil {
			return err
		}

	case instructions.TAS:
		r := mc.acc8
		r.Load(mc.A.Value())
		r.AND(mc.X.Value())
		mc.SP.Load(r.Value())

		r.AND(uint8(mc.PC.Address() >> 8))

		if err = mc.write8Bit(address, r.Value(), false); err != nil {
			return err
		}
		mc.LastResult.Cycles++
		if err = mc.cycleCallback(); err != nil {
			return err
		}

	case instructions.SHY:
		r := mc.acc8
		r.Load(mc.Y.Value())
		r.AND(uint8(mc.PC.Address() >> 8))

		if err = mc.write8Bit(address, r.Value(), false); err != nil {
			return err
		}
		mc.LastResult.Cycles++
		if err = mc.cycleCallback(); err != nil {
			return err
		}

	case instructions.SHX:
		r := mc.acc8
		r.Load(mc.X.Value())
		r.AND(uint8(mc.PC.Address() >> 8))

		if err = mc.write8Bit(address, r.Value(), false); err != nil {
			return err
		}
		mc.LastResult.Cycles++
		if err = mc.cycleCallback(); err != nil {
			return err
		}

	case instructions.LAS:
		mc.SP.AND(value)
		mc.A.Load(mc.SP.Value())
		mc.X.Load(mc.SP.Value())
		mc.Status.Zero = mc.SP.IsZero()
		mc.Status.Sign = mc.SP.IsNegative()

	case instructions.KIL:
		if !mc.NoFlowControl {
			mc.Killed = true
			logger.Logf("CPU", "KIL instruction (%#04x)", mc.PC.Address())
		}

	default:
		return fmt.Errorf("cpu: unknown operator (%s)", defn.Operator)
	}

	if defn.Effect == instructions.RMW {
		if err = mc.write8Bit(address, value, false); err != nil {
			return err
		}
		mc.LastResult.Cycles++
		if err = mc.cycleCallback(); err != nil {
			return err
		}
	}

	if mc.LastResult.Defn != nil {
		mc.LastResult.Final = true
	}

	return nil
}

// predictRTS is implemented by memory maps that support peeking without
// side effects.
type predictRTS interface {
	Peek(address uint16) (uint8, error)
}

// PredictRTS returns the PC address that would result if RTS was run at the
// current moment, without actually running it. Used by the disassembler to
// follow subroutine calls without disturbing CPU state.
func (mc *CPU) PredictRTS() (uint16, bool) {
	predict, ok := mc.mem.(predictRTS)
	if !ok {
		return 0, false
	}

	var sp registers.Register
	sp.Load(mc.SP.Value())
	sp.Add(1, false)

	lo, err := predict.Peek(0x0100 | sp.Address())
	if err != nil {
		return 0, false
	}

	hi, err := predict.Peek(0x0100 | (sp.Address() + 1))
	if err != nil {
		return 0, false
	}

	return ((uint16(hi) << 8) | uint16(lo)) + 1, true
}
