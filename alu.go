package z80

// inc8 increments v and sets flags per the INC8 rule.
func (c *CPU) inc8(v uint8) uint8 {
	res := v + 1
	c.setFlagsInc8(v, res)
	return res
}

// dec8 decrements v and sets flags per the DEC8 rule.
func (c *CPU) dec8(v uint8) uint8 {
	res := v - 1
	c.setFlagsDec8(v, res)
	return res
}

// add8 computes dst+src (+carry if withCarry) and sets ADD8/ADC8 flags.
func (c *CPU) add8(dst, src uint8, withCarry bool) uint8 {
	var carry uint16
	if withCarry && c.flag(flagC) {
		carry = 1
	}
	result := uint16(dst) + uint16(src) + carry
	c.setFlagsAdd8(dst, src, result)
	return uint8(result)
}

// sub8 computes dst-src (-carry if withCarry) and sets SUB8/SBC8 flags.
func (c *CPU) sub8(dst, src uint8, withCarry bool) uint8 {
	var carry uint8
	if withCarry && c.flag(flagC) {
		carry = 1
	}
	res := dst - src - carry
	borrow := uint16(dst) < uint16(src)+uint16(carry)
	c.setFlagsSub8(dst, src, res, borrow)
	return res
}

// cp8 compares dst against src without storing the result.
func (c *CPU) cp8(dst, src uint8) {
	res := dst - src
	c.setFlagsCp(dst, src, res, dst < src)
}

func (c *CPU) and8(dst, src uint8) uint8 {
	res := dst & src
	c.setFlagsLogical(res, true)
	return res
}

func (c *CPU) or8(dst, src uint8) uint8 {
	res := dst | src
	c.setFlagsLogical(res, false)
	return res
}

func (c *CPU) xor8(dst, src uint8) uint8 {
	res := dst ^ src
	c.setFlagsLogical(res, false)
	return res
}

// neg8 computes 0-A with the full SUB8 flag contract, plus the
// documented P/V (overflow only from 0x80) and C (set unless A was 0)
// special cases.
func (c *CPU) neg8(a uint8) uint8 {
	res := c.sub8(0, a, false)
	return res
}

// daa adjusts A after a BCD addition/subtraction based on the current
// C, H, and N flags, then recomputes S, Z, P, H, C.
func (c *CPU) daa() {
	a := c.reg.A
	correction := uint8(0)
	carry := c.flag(flagC)
	halfCarry := c.flag(flagH)
	subtract := c.flag(flagN)

	if halfCarry || (!subtract && a&0x0F > 9) {
		correction |= 0x06
	}
	if carry || (!subtract && a > 0x99) {
		correction |= 0x60
		carry = true
	}

	var res uint8
	if subtract {
		res = a - correction
	} else {
		res = a + correction
	}

	halfOut := false
	if subtract {
		halfOut = halfCarry && a&0x0F < 6
	} else {
		halfOut = a&0x0F+correction&0x0F > 0x0F
	}

	c.reg.A = res
	c.setFlag(flagC, carry)
	c.setFlag(flagH, halfOut)
	c.setFlag(flagPV, parityEven(res))
	c.setFlag(flagZ, res == 0)
	c.setFlag(flagS, res&0x80 != 0)
	c.setXY(res)
}

// --- rotate/shift primitives, each returning the result with flags set ---

func (c *CPU) rlc(v uint8) uint8 {
	carryOut := v&0x80 != 0
	res := v<<1 | v>>7
	c.setFlagsRot(res, carryOut)
	return res
}

func (c *CPU) rrc(v uint8) uint8 {
	carryOut := v&0x01 != 0
	res := v>>1 | v<<7
	c.setFlagsRot(res, carryOut)
	return res
}

func (c *CPU) rl(v uint8) uint8 {
	carryIn := uint8(0)
	if c.flag(flagC) {
		carryIn = 1
	}
	carryOut := v&0x80 != 0
	res := v<<1 | carryIn
	c.setFlagsRot(res, carryOut)
	return res
}

func (c *CPU) rr(v uint8) uint8 {
	carryIn := uint8(0)
	if c.flag(flagC) {
		carryIn = 0x80
	}
	carryOut := v&0x01 != 0
	res := v>>1 | carryIn
	c.setFlagsRot(res, carryOut)
	return res
}

func (c *CPU) sla(v uint8) uint8 {
	carryOut := v&0x80 != 0
	res := v << 1
	c.setFlagsRot(res, carryOut)
	return res
}

func (c *CPU) sra(v uint8) uint8 {
	carryOut := v&0x01 != 0
	res := v>>1 | v&0x80
	c.setFlagsRot(res, carryOut)
	return res
}

// sll is the undocumented "shift left logical" that always forces bit 0 set.
func (c *CPU) sll(v uint8) uint8 {
	carryOut := v&0x80 != 0
	res := v<<1 | 1
	c.setFlagsRot(res, carryOut)
	return res
}

func (c *CPU) srl(v uint8) uint8 {
	carryOut := v&0x01 != 0
	res := v >> 1
	c.setFlagsRot(res, carryOut)
	return res
}

// add16 computes dst+src for ADD HL,rr / ADD IX,rr / ADD IY,rr: H from
// bit 11 carry, N=0, C=bit15 carry; Z/S/P are unchanged; X/Y come from
// the high byte of the result.
func (c *CPU) add16(dst, src uint16) uint16 {
	result := uint32(dst) + uint32(src)
	c.setFlag(flagH, (dst^src^uint16(result))&0x1000 != 0)
	c.setFlag(flagN, false)
	c.setFlag(flagC, result > 0xFFFF)
	c.setXY(uint8(result >> 8))
	return uint16(result)
}

// adc16/sbc16 compute the full 16-bit flag set, including Z on the
// 16-bit result and P/V on signed overflow.
func (c *CPU) adc16(dst, src uint16) uint16 {
	carry := uint32(0)
	if c.flag(flagC) {
		carry = 1
	}
	result := uint32(dst) + uint32(src) + carry
	res := uint16(result)
	c.setFlag(flagH, (dst^src^res)&0x1000 != 0)
	c.setFlag(flagPV, (^(dst^src)&(dst^res))&0x8000 != 0)
	c.setFlag(flagN, false)
	c.setFlag(flagC, result > 0xFFFF)
	c.setFlag(flagZ, res == 0)
	c.setFlag(flagS, res&0x8000 != 0)
	c.setXY(uint8(res >> 8))
	return res
}

func (c *CPU) sbc16(dst, src uint16) uint16 {
	carry := uint16(0)
	if c.flag(flagC) {
		carry = 1
	}
	res := dst - src - carry
	borrow := uint32(dst) < uint32(src)+uint32(carry)
	c.setFlag(flagH, (dst^src^res)&0x1000 != 0)
	c.setFlag(flagPV, (dst^src)&(dst^res)&0x8000 != 0)
	c.setFlag(flagN, true)
	c.setFlag(flagC, borrow)
	c.setFlag(flagZ, res == 0)
	c.setFlag(flagS, res&0x8000 != 0)
	c.setXY(uint8(res >> 8))
	return res
}
