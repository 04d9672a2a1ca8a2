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

package cpu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jetsetilly/gopher64/hardware/cpu"
	"github.com/jetsetilly/gopher64/hardware/memory/bus"
)

// mockMem is a flat 64k address space with no banking, good enough to drive
// the CPU's addressing modes and catch-out-of-range accesses at the very top
// of the space.
type mockMem struct {
	internal []uint8
}

func newMockMem() *mockMem {
	return &mockMem{internal: make([]uint8, 0x10000)}
}

func (mem *mockMem) putInstructions(origin uint16, bytes ...uint8) uint16 {
	for i, b := range bytes {
		_ = mem.Write(uint16(i)+origin, b)
	}
	return origin + uint16(len(bytes))
}

func (mem *mockMem) Read(address uint16) (uint8, error) {
	if address >= 0xff00 {
		return 0, bus.AddressError
	}
	return mem.internal[address], nil
}

func (mem *mockMem) Write(address uint16, data uint8) error {
	if address >= 0xff00 {
		return bus.AddressError
	}
	mem.internal[address] = data
	return nil
}

func (mem *mockMem) Peek(address uint16) (uint8, error) {
	return mem.Read(address)
}

func (mem *mockMem) Poke(address uint16, data uint8) error {
	return mem.Write(address, data)
}

func step(t *testing.T, mc *cpu.CPU) {
	t.Helper()
	err := mc.ExecuteInstruction(cpu.NilCycleCallback)
	require.NoError(t, err)
	require.NoError(t, mc.LastResult.IsValid())
}

func newTestCPU(mem *mockMem) *cpu.CPU {
	mc := cpu.NewCPU(nil, mem)
	mc.Reset()
	return mc
}

func TestStatusFlagInstructions(t *testing.T) {
	mem := newMockMem()
	mc := newTestCPU(mem)

	// SEC, CLC, SEI, CLI, SED, CLD
	mem.putInstructions(0x0000, 0x38, 0x18, 0x78, 0x58, 0xf8, 0xd8)
	mc.LoadPC(0x0000)

	step(t, mc) // SEC
	assert.True(t, mc.Status.Carry)
	step(t, mc) // CLC
	assert.False(t, mc.Status.Carry)
	step(t, mc) // SEI
	assert.True(t, mc.Status.InterruptDisable)
	step(t, mc) // CLI
	assert.False(t, mc.Status.InterruptDisable)
	step(t, mc) // SED
	assert.True(t, mc.Status.DecimalMode)
	step(t, mc) // CLD
	assert.False(t, mc.Status.DecimalMode)
}

func TestLoadAndStore(t *testing.T) {
	mem := newMockMem()
	mc := newTestCPU(mem)

	// LDA #$80; STA $0010; LDX $0010; LDY #$00
	mem.putInstructions(0x0000, 0xa9, 0x80, 0x85, 0x10, 0xa6, 0x10, 0xa0, 0x00)
	mc.LoadPC(0x0000)

	step(t, mc) // LDA #$80
	assert.Equal(t, uint8(0x80), mc.A.Value())
	assert.True(t, mc.Status.Sign)
	assert.False(t, mc.Status.Zero)

	step(t, mc) // STA $0010
	mem.assertValue(t, 0x0010, 0x80)

	step(t, mc) // LDX $0010
	assert.Equal(t, uint8(0x80), mc.X.Value())

	step(t, mc) // LDY #$00
	assert.True(t, mc.Status.Zero)
}

func (mem *mockMem) assertValue(t *testing.T, address uint16, value uint8) {
	t.Helper()
	d, err := mem.Read(address)
	require.NoError(t, err)
	assert.Equal(t, value, d)
}

func TestAdcSbcBinary(t *testing.T) {
	mem := newMockMem()
	mc := newTestCPU(mem)

	// CLC; LDA #$50; ADC #$50 -- overflows into negative, V set
	mem.putInstructions(0x0000, 0x18, 0xa9, 0x50, 0x69, 0x50)
	mc.LoadPC(0x0000)

	step(t, mc) // CLC
	step(t, mc) // LDA #$50
	step(t, mc) // ADC #$50
	assert.Equal(t, uint8(0xa0), mc.A.Value())
	assert.True(t, mc.Status.Overflow)
	assert.False(t, mc.Status.Carry)

	// SEC; LDA #$50; SBC #$f0 -- borrow, no carry out
	mem.putInstructions(0x0010, 0x38, 0xa9, 0x50, 0xe9, 0xf0)
	mc.LoadPC(0x0010)
	step(t, mc) // SEC
	step(t, mc) // LDA #$50
	step(t, mc) // SBC #$f0
	assert.Equal(t, uint8(0x60), mc.A.Value())
	assert.False(t, mc.Status.Carry)
}

func TestAdcDecimalMode(t *testing.T) {
	mem := newMockMem()
	mc := newTestCPU(mem)

	// SED; CLC; LDA #$09; ADC #$01 -- BCD 09 + 01 = 10
	mem.putInstructions(0x0000, 0xf8, 0x18, 0xa9, 0x09, 0x69, 0x01)
	mc.LoadPC(0x0000)

	step(t, mc) // SED
	step(t, mc) // CLC
	step(t, mc) // LDA #$09
	step(t, mc) // ADC #$01
	assert.Equal(t, uint8(0x10), mc.A.Value())
	assert.False(t, mc.Status.Carry)
}

func TestBranchTaken(t *testing.T) {
	mem := newMockMem()
	mc := newTestCPU(mem)

	// LDA #$00; BEQ +2; LDA #$ff (skipped); LDA #$7f
	mem.putInstructions(0x0000, 0xa9, 0x00, 0xf0, 0x02, 0xa9, 0xff, 0xa9, 0x7f)
	mc.LoadPC(0x0000)

	step(t, mc) // LDA #$00
	step(t, mc) // BEQ +2
	require.True(t, mc.LastResult.BranchSuccess)
	step(t, mc) // LDA #$7f (the LDA #$ff in between was jumped over)
	assert.Equal(t, uint8(0x7f), mc.A.Value())
}

func TestJsrRts(t *testing.T) {
	mem := newMockMem()
	mc := newTestCPU(mem)

	// JSR $0010; BRK (never reached); at $0010: LDA #$42; RTS
	mem.putInstructions(0x0000, 0x20, 0x10, 0x00)
	mem.putInstructions(0x0010, 0xa9, 0x42, 0x60)
	mc.LoadPC(0x0000)

	step(t, mc) // JSR $0010
	assert.Equal(t, uint16(0x0010), mc.PC.Address())
	assert.Equal(t, uint8(0xfd), mc.SP.Value())

	step(t, mc) // LDA #$42
	assert.Equal(t, uint8(0x42), mc.A.Value())

	step(t, mc) // RTS
	assert.Equal(t, uint16(0x0003), mc.PC.Address())
	assert.Equal(t, uint8(0xff), mc.SP.Value())
}

func TestStackPushPull(t *testing.T) {
	mem := newMockMem()
	mc := newTestCPU(mem)

	// LDA #$33; PHA; LDA #$00; PLA
	mem.putInstructions(0x0000, 0xa9, 0x33, 0x48, 0xa9, 0x00, 0x68)
	mc.LoadPC(0x0000)

	step(t, mc) // LDA #$33
	step(t, mc) // PHA
	mem.assertValue(t, 0x01ff, 0x33)
	step(t, mc) // LDA #$00
	require.True(t, mc.Status.Zero)
	step(t, mc) // PLA
	assert.Equal(t, uint8(0x33), mc.A.Value())
	assert.False(t, mc.Status.Zero)
}

func TestIndirectIndexedAddressing(t *testing.T) {
	mem := newMockMem()
	mc := newTestCPU(mem)

	// zero page $10/$11 points at $0200. LDY #$05; LDA ($10),Y
	mem.Write(0x0010, 0x00)
	mem.Write(0x0011, 0x02)
	mem.Write(0x0205, 0x99)

	mem.putInstructions(0x0000, 0xa0, 0x05, 0xb1, 0x10)
	mc.LoadPC(0x0000)

	step(t, mc) // LDY #$05
	step(t, mc) // LDA ($10),Y
	assert.Equal(t, uint8(0x99), mc.A.Value())
}

func TestUndocumentedLAX(t *testing.T) {
	mem := newMockMem()
	mc := newTestCPU(mem)

	mem.Write(0x0010, 0x77)
	mem.putInstructions(0x0000, 0xa7, 0x10) // LAX $10 (zero page)
	mc.LoadPC(0x0000)

	step(t, mc)
	assert.Equal(t, uint8(0x77), mc.A.Value())
	assert.Equal(t, uint8(0x77), mc.X.Value())
}

func TestKilHaltsExecution(t *testing.T) {
	mem := newMockMem()
	mc := newTestCPU(mem)

	mem.putInstructions(0x0000, 0x02) // KIL
	mc.LoadPC(0x0000)

	step(t, mc)
	assert.True(t, mc.Killed)

	pcBefore := mc.PC.Address()
	err := mc.ExecuteInstruction(cpu.NilCycleCallback)
	require.NoError(t, err)
	assert.Equal(t, pcBefore, mc.PC.Address())
}

func TestResetUsesKnownStateWhenNotRandomised(t *testing.T) {
	mem := newMockMem()
	mc := cpu.NewCPU(nil, mem)
	mc.Reset()

	assert.Equal(t, uint8(0), mc.A.Value())
	assert.Equal(t, uint8(0xff), mc.SP.Value())
	assert.True(t, mc.Status.InterruptDisable)
}
