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

package registers

// AddDecimal and SubtractDecimal implement BCD arithmetic for ADC/SBC when
// the 6510's decimal flag is set. AddDecimal takes carry, sign and overflow
// from the decimal adjustment and zero from the equivalent binary addition;
// SubtractDecimal takes every flag from the equivalent binary subtraction.
//
// Appendix A of http://www.6502.org/tutorials/decimal_mode.html was used as
// a reference, along with Jorge Cwik's notes on NMOS overflow behaviour in
// decimal mode (https://forums.atariage.com/topic/163876-).

// AddDecimal adds val (and an incoming carry) to the register using BCD
// arithmetic. The returned carry, zero, overflow and sign values are the
// flags the CPU should set; they are derived partly from the equivalent
// binary operation and partly from the BCD adjustment, per the NMOS 6502's
// actual (quirky) decimal-mode behaviour.
func (r *Register) AddDecimal(val uint8, carry bool) (rcarry, rzero, roverflow, rsign bool) {
	// zero flag is set as though the addition had been done in binary
	br := *r
	_, _ = br.Add(val, carry)
	rzero = br.IsZero()

	// Seq.1: AL = (A & $0F) + (B & $0F) + C
	al := (r.value & 0x0f) + (val & 0x0f)
	if carry {
		al++
	}
	if al >= 0x0a {
		al = ((al + 0x06) & 0x0f) + 0x10
	}

	a1 := (uint16(r.value) & 0xf0) + (uint16(val) & 0xf0) + uint16(al)
	if a1 >= 0xa0 {
		a1 += 0x60
	}
	rcarry = a1 >= 0x100

	// Seq.2: sign and overflow use the same AL but twos-complement widths.
	a2 := int16(r.value&0xf0) + int16(val&0xf0) + int16(al)
	rsign = a2&0x80 == 0x80

	// the NMOS 6502's overflow flag in decimal mode actually behaves like
	// binary addition's overflow flag, not the Seq.2 "A < -128 or A > 127"
	// rule the reference describes.
	roverflow = ((r.value ^ uint8(a2)) & (val ^ uint8(a2)) & 0x80) != 0

	r.value = uint8(a1)

	return rcarry, rzero, roverflow, rsign
}

// SubtractDecimal subtracts val (and a borrow) from the register using BCD
// arithmetic. Carry, zero, overflow and sign are all derived from the
// equivalent binary subtraction; only the stored result is BCD-adjusted.
func (r *Register) SubtractDecimal(val uint8, carry bool) (rcarry, rzero, roverflow, rsign bool) {
	br := *r
	rcarry, roverflow = br.Subtract(val, carry)
	rzero = br.IsZero()
	rsign = br.IsNegative()

	// Seq.3: AL = (A & $0F) - (B & $0F) + C-1
	al := (int16(r.value) & 0x0f) - (int16(val) & 0x0f) - 1
	if carry {
		al++
	}
	if al < 0x00 {
		al = ((al - 0x06) & 0x0f) - 0x10
	}

	a := (int16(r.value) & 0xf0) - (int16(val) & 0xf0) + al
	if a < 0x00 {
		a -= 0x60
	}

	r.value = uint8(a)

	return rcarry, rzero, roverflow, rsign
}
