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

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildCRT assembles a minimal, well-formed CRT image with a single CHIP
// packet, for tests that don't need more than one bank.
func buildCRT(hardwareType uint16, game, exrom bool, loadAddress uint16, rom []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString(crtSignature)
	binary.Write(&buf, binary.BigEndian, uint32(0x40))
	binary.Write(&buf, binary.BigEndian, uint16(1)) // version
	binary.Write(&buf, binary.BigEndian, hardwareType)
	if game {
		buf.WriteByte(1)
	} else {
		buf.WriteByte(0)
	}
	if exrom {
		buf.WriteByte(1)
	} else {
		buf.WriteByte(0)
	}
	buf.Write(make([]byte, 6)) // reserved
	name := make([]byte, 0x20)
	copy(name, "TEST CART")
	buf.Write(name)

	buf.WriteString("CHIP")
	packetLen := uint32(16 + len(rom))
	binary.Write(&buf, binary.BigEndian, packetLen)
	binary.Write(&buf, binary.BigEndian, uint16(0)) // chip type: ROM
	binary.Write(&buf, binary.BigEndian, uint16(0)) // bank
	binary.Write(&buf, binary.BigEndian, loadAddress)
	binary.Write(&buf, binary.BigEndian, uint16(len(rom)))
	buf.Write(rom)

	return buf.Bytes()
}

func TestParseCRTRejectsBadSignature(t *testing.T) {
	_, _, err := parseCRT([]byte("not a crt file at all"))
	require.Error(t, err)
}

func TestNormalCartridge8K(t *testing.T) {
	rom := bytes.Repeat([]byte{0xAA}, 0x2000)
	data := buildCRT(0, true, false, 0x8000, rom)

	cart, err := NewFromCRT(data)
	require.NoError(t, err)
	require.True(t, cart.GAME())
	require.False(t, cart.EXROM())

	v, ok := cart.ReadROML(0x8000)
	require.True(t, ok)
	require.Equal(t, uint8(0xAA), v)

	_, ok = cart.ReadROMH(0xA000)
	require.False(t, ok)
}

func TestOceanBankSwitch(t *testing.T) {
	h := header{hardwareType: 5, gameHigh: true, exromHigh: false}
	chips := []chipPacket{
		{loadAddress: 0x8000, data: bytes.Repeat([]byte{0x01}, 0x2000)},
		{loadAddress: 0x8000, data: bytes.Repeat([]byte{0x02}, 0x2000)},
	}
	m, err := newOcean(h, chips)
	require.NoError(t, err)
	m.initialise()

	v, ok := m.readROML(0x8000)
	require.True(t, ok)
	require.Equal(t, uint8(0x01), v)

	require.True(t, m.writeIO1(0xDE00, 1))
	v, ok = m.readROML(0x8000)
	require.True(t, ok)
	require.Equal(t, uint8(0x02), v)
}

func TestActionReplayFreezeResetsBank(t *testing.T) {
	h := header{hardwareType: 1}
	chips := []chipPacket{
		{data: bytes.Repeat([]byte{0x10}, 0x2000)},
		{data: bytes.Repeat([]byte{0x20}, 0x2000)},
	}
	m, err := newActionReplay(h, chips)
	require.NoError(t, err)
	m.initialise()

	ar := m.(*actionReplay)
	require.True(t, ar.writeIO1(0xDE00, 0x01)) // select bank 1
	require.False(t, ar.game())
	require.False(t, ar.exrom())

	ar.Freeze()
	require.True(t, ar.nmi())
	require.False(t, ar.nmi(), "NMI line should de-assert once polled")

	v, ok := ar.readROML(0x8000)
	require.True(t, ok)
	require.Equal(t, uint8(0x10), v, "freeze should reset bank selection to 0")
}

func TestGeoRAMPaging(t *testing.T) {
	m, err := newGeoRAM(header{}, nil)
	require.NoError(t, err)
	m.initialise()

	require.True(t, m.writeIO2(0xDFFF, 2)) // block 2
	require.True(t, m.writeIO2(0xDFFE, 1)) // page 1
	require.True(t, m.writeIO1(0xDE05, 0x77))

	v, ok := m.readIO1(0xDE05)
	require.True(t, ok)
	require.Equal(t, uint8(0x77), v)

	require.True(t, m.writeIO2(0xDFFF, 0)) // back to block 0
	_, ok = m.readIO1(0xDE05)
	require.True(t, ok)
}
