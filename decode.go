package z80

// The base, CB, and ED pages are decoded with the standard Z80 bit-field
// breakdown of an opcode byte:
//
//	x = bits 7-6 (2 bits)   y = bits 5-3 (3 bits)   z = bits 2-0 (3 bits)
//	p = y >> 1 (2 bits)     q = y & 1 (1 bit)
//
// This collapses the ~1,250-entry instruction space into a handful of
// structural cases per page instead of a 256-entry table per prefix,
// while still dispatching to one semantic handler per mnemonic.

func xyz(op uint8) (x, y, z, p, q uint8) {
	x = op >> 6
	y = (op >> 3) & 7
	z = op & 7
	p = y >> 1
	q = y & 1
	return
}

// testCond evaluates condition y: 0=NZ,1=Z,2=NC,3=C,4=PO,5=PE,6=P,7=M.
func (c *CPU) testCond(y uint8) bool {
	switch y {
	case 0:
		return !c.flag(flagZ)
	case 1:
		return c.flag(flagZ)
	case 2:
		return !c.flag(flagC)
	case 3:
		return c.flag(flagC)
	case 4:
		return !c.flag(flagPV)
	case 5:
		return c.flag(flagPV)
	case 6:
		return !c.flag(flagS)
	case 7:
		return c.flag(flagS)
	}
	return false
}

// idxBase returns IX, IY, or HL according to idx.
func (c *CPU) idxBase(idx idxMode) uint16 {
	switch idx {
	case idxIX:
		return c.reg.IX
	case idxIY:
		return c.reg.IY
	}
	return c.reg.HL()
}

// tickModify adds the extra write-back T-state a read-modify-write
// memory operand needs beyond a plain MR+MW pair (INC/DEC (HL) is 11 T,
// not the 10 that MR(3)+MW(3)+OCF(4) alone would give).
func (c *CPU) tickModify(field uint8) {
	if field == 6 {
		c.tick(1, 1)
	}
}

// execBase decodes and executes an opcode from the unprefixed page (or
// one that arrived via a DD/FD index substitution).
func (c *CPU) execBase(op uint8, idx idxMode) {
	x, y, z, p, q := xyz(op)

	switch x {
	case 0:
		switch z {
		case 0:
			switch {
			case y == 0:
				c.opNOP()
			case y == 1:
				c.reg.exAF()
			case y == 2:
				c.opDJNZ()
			case y == 3:
				c.opJR()
			default:
				c.opJRCond(c.testCond(y - 4))
			}
		case 1:
			if q == 0 {
				c.opLD16Imm(p, idx)
			} else {
				c.opAddHL(p, idx)
			}
		case 2:
			c.opLDIndirect(p, q, idx)
		case 3:
			if q == 0 {
				c.opInc16(p, idx)
			} else {
				c.opDec16(p, idx)
			}
		case 4:
			dst := c.reg8(y, idx)
			dst.write(c.inc8(dst.read()))
			c.tickModify(y)
		case 5:
			dst := c.reg8(y, idx)
			dst.write(c.dec8(dst.read()))
			c.tickModify(y)
		case 6:
			c.opLDImm(y, idx)
		case 7:
			c.opAccumOrFlagOp(y)
		}
	case 1:
		if z == 6 && y == 6 {
			c.opHALT()
		} else {
			// When one side is the displaced-memory form, the other
			// side's plain register field is never IXH/IXL/IYH/IYL
			// substituted: LD H,(IX+d) and LD (IX+d),H always address
			// the plain H, not IXH.
			srcIdx, dstIdx := idx, idx
			if y == 6 {
				srcIdx = idxNone
			}
			if z == 6 {
				dstIdx = idxNone
			}
			src := c.reg8(z, srcIdx)
			v := src.read()
			dst := c.reg8(y, dstIdx)
			dst.write(v)
		}
	case 2:
		src := c.reg8(z, idx)
		c.aluOp(y, src.read())
	case 3:
		switch z {
		case 0:
			c.opRetCond(y)
		case 1:
			if q == 0 {
				c.opPop(p, idx)
			} else {
				switch p {
				case 0:
					c.opRet()
				case 1:
					c.reg.exx()
				case 2:
					c.reg.PC = c.idxBase(idx)
				case 3:
					c.reg.SP = c.idxBase(idx)
					c.tick(1, 2)
				}
			}
		case 2:
			c.opJPCond(y)
		case 3:
			switch y {
			case 0:
				c.opJP()
			case 2:
				c.opOutImm()
			case 3:
				c.opInImm()
			case 4:
				c.opExSPHL(idx)
			case 5:
				c.opExDEHL()
			case 6:
				c.opDI()
			case 7:
				c.opEI()
			}
		case 4:
			c.opCallCond(y)
		case 5:
			if q == 0 {
				c.opPush(p, idx)
			} else if p == 0 {
				c.opCall()
			}
			// p==1/2/3 (DD/ED/FD) never reach here: the prefix loop in
			// Step consumes them before execBase runs.
		case 6:
			c.aluOp(y, c.fetchByte())
		case 7:
			c.opRST(y)
		}
	}
}
