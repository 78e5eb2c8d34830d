package z80

// rotOp dispatches the eight CB-page rotate/shift kinds (RLC, RRC, RL,
// RR, SLA, SRA, SLL, SRL) selected by y. SLL is the undocumented form.
func (c *CPU) rotOp(y uint8, v uint8) uint8 {
	switch y {
	case 0:
		return c.rlc(v)
	case 1:
		return c.rrc(v)
	case 2:
		return c.rl(v)
	case 3:
		return c.rr(v)
	case 4:
		return c.sla(v)
	case 5:
		return c.sra(v)
	case 6:
		return c.sll(v)
	case 7:
		return c.srl(v)
	}
	return v
}

// execCB decodes and executes a plain CB-prefixed opcode: rotate/shift
// (x=0), BIT (x=1), RES (x=2), SET (x=3) over register field z.
func (c *CPU) execCB() {
	op := c.fetchOpcode()
	x, y, z, _, _ := xyz(op)

	src := c.reg8(z, idxNone)
	v := src.read()
	if z == 6 {
		c.tick(1, 1)
	}

	switch x {
	case 0:
		src.write(c.rotOp(y, v))
	case 1:
		xySource := v
		if z == 6 {
			xySource = uint8(c.reg.WZ >> 8)
		}
		c.setFlagsBit(y, v, xySource)
	case 2:
		src.write(v &^ (1 << y))
	case 3:
		src.write(v | (1 << y))
	}
}

// execIndexedCB decodes and executes a DD/FD CB d op instruction. The
// displacement is fetched before the final opcode byte, the reverse of
// every other indexed form, and the final byte is read as plain memory
// rather than a fresh M1 cycle (R is not incremented again for it). The
// read-modify-write forms (RLC/RRC/.../RES/SET, everything but BIT)
// also copy their result into the plain register named by z, the
// well-known undocumented side effect of this page.
func (c *CPU) execIndexedCB(idx idxMode) {
	base := c.idxBase(idx)
	d := int8(c.fetchByte())
	addr := uint16(int32(base) + int32(d))

	op := c.readMemRaw(c.reg.PC)
	c.reg.PC++
	c.tick(1, 5)

	x, y, z, _, _ := xyz(op)
	v := c.readMem(addr)
	c.tick(1, 1)

	switch x {
	case 0:
		res := c.rotOp(y, v)
		c.writeMem(addr, res)
		if z != 6 {
			c.reg8(z, idxNone).write(res)
		}
	case 1:
		c.setFlagsBit(y, v, uint8(addr>>8))
	case 2:
		res := v &^ (1 << y)
		c.writeMem(addr, res)
		if z != 6 {
			c.reg8(z, idxNone).write(res)
		}
	case 3:
		res := v | (1 << y)
		c.writeMem(addr, res)
		if z != 6 {
			c.reg8(z, idxNone).write(res)
		}
	}
}
