package z80

// This file holds the semantic handlers for the unprefixed (base) page,
// one function per mnemonic shape as dispatched from execBase in
// decode.go. Handlers that take an idx argument are shared between the
// plain and DD/FD-substituted forms.

func (c *CPU) opNOP() {}

// opDJNZ implements DJNZ e: after a 1 T internal delay the displacement
// is read, B is decremented, and the displacement is applied only if B
// is now non-zero.
func (c *CPU) opDJNZ() {
	c.tick(1, 1)
	d := int8(c.fetchByte())
	c.reg.B--
	if c.reg.B != 0 {
		c.tick(1, 5)
		c.reg.PC = uint16(int32(c.reg.PC) + int32(d))
		c.reg.WZ = c.reg.PC
	}
}

// opJR implements the unconditional JR e.
func (c *CPU) opJR() {
	d := int8(c.fetchByte())
	c.tick(1, 5)
	c.reg.PC = uint16(int32(c.reg.PC) + int32(d))
	c.reg.WZ = c.reg.PC
}

// opJRCond implements JR cc,e: the displacement byte is always fetched;
// the extra 5 T jump cost is paid only when the branch is taken.
func (c *CPU) opJRCond(taken bool) {
	d := int8(c.fetchByte())
	if taken {
		c.tick(1, 5)
		c.reg.PC = uint16(int32(c.reg.PC) + int32(d))
		c.reg.WZ = c.reg.PC
	}
}

func (c *CPU) opLD16Imm(p uint8, idx idxMode) {
	nn := c.fetchWord()
	_, set := c.reg16sp(p, idx)
	set(nn)
}

func (c *CPU) opAddHL(p uint8, idx idxMode) {
	dstGet, dstSet := c.reg16sp(2, idx)
	srcGet, _ := c.reg16sp(p, idx)
	dst := dstGet()
	c.reg.WZ = dst + 1
	dstSet(c.add16(dst, srcGet()))
	c.tick(1, 7)
}

// opLDIndirect implements the eight LD forms keyed by (p,q) at x=0,z=2:
// LD (BC),A / LD A,(BC) / LD (DE),A / LD A,(DE) / LD (nn),HL / LD
// HL,(nn) / LD (nn),A / LD A,(nn). The HL form substitutes IX/IY under
// a DD/FD prefix.
func (c *CPU) opLDIndirect(p, q uint8, idx idxMode) {
	switch p {
	case 0:
		bc := c.reg.BC()
		if q == 0 {
			c.writeMem(bc, c.reg.A)
			c.reg.WZ = uint16(c.reg.A)<<8 | (bc+1)&0xFF
		} else {
			c.reg.A = c.readMem(bc)
			c.reg.WZ = bc + 1
		}
	case 1:
		de := c.reg.DE()
		if q == 0 {
			c.writeMem(de, c.reg.A)
			c.reg.WZ = uint16(c.reg.A)<<8 | (de+1)&0xFF
		} else {
			c.reg.A = c.readMem(de)
			c.reg.WZ = de + 1
		}
	case 2:
		nn := c.fetchWord()
		get, set := c.reg16sp(2, idx)
		if q == 0 {
			c.writeMemWord(nn, get())
		} else {
			set(c.readMemWord(nn))
		}
		c.reg.WZ = nn + 1
	case 3:
		nn := c.fetchWord()
		if q == 0 {
			c.writeMem(nn, c.reg.A)
			c.reg.WZ = uint16(c.reg.A)<<8 | (nn+1)&0xFF
		} else {
			c.reg.A = c.readMem(nn)
			c.reg.WZ = nn + 1
		}
	}
}

func (c *CPU) opInc16(p uint8, idx idxMode) {
	get, set := c.reg16sp(p, idx)
	set(get() + 1)
	c.tick(1, 2)
}

func (c *CPU) opDec16(p uint8, idx idxMode) {
	get, set := c.reg16sp(p, idx)
	set(get() - 1)
	c.tick(1, 2)
}

func (c *CPU) opLDImm(y uint8, idx idxMode) {
	dst := c.reg8(y, idx)
	dst.write(c.fetchByte())
}

// opAccumOrFlagOp implements the eight x=0,z=7 accumulator/flag
// instructions: RLCA, RRCA, RLA, RRA, DAA, CPL, SCF, CCF.
func (c *CPU) opAccumOrFlagOp(y uint8) {
	switch y {
	case 0:
		carryOut := c.reg.A&0x80 != 0
		c.reg.A = c.reg.A<<1 | c.reg.A>>7
		c.setFlagsRotA(c.reg.A, carryOut)
	case 1:
		carryOut := c.reg.A&0x01 != 0
		c.reg.A = c.reg.A>>1 | c.reg.A<<7
		c.setFlagsRotA(c.reg.A, carryOut)
	case 2:
		carryIn := uint8(0)
		if c.flag(flagC) {
			carryIn = 1
		}
		carryOut := c.reg.A&0x80 != 0
		c.reg.A = c.reg.A<<1 | carryIn
		c.setFlagsRotA(c.reg.A, carryOut)
	case 3:
		carryIn := uint8(0)
		if c.flag(flagC) {
			carryIn = 0x80
		}
		carryOut := c.reg.A&0x01 != 0
		c.reg.A = c.reg.A>>1 | carryIn
		c.setFlagsRotA(c.reg.A, carryOut)
	case 4:
		c.daa()
	case 5:
		c.reg.A = ^c.reg.A
		c.setFlag(flagH, true)
		c.setFlag(flagN, true)
		c.setXY(c.reg.A)
	case 6:
		c.setFlag(flagH, false)
		c.setFlag(flagN, false)
		c.setFlag(flagC, true)
		c.setXY(c.reg.A)
	case 7:
		wasCarry := c.flag(flagC)
		c.setFlag(flagH, wasCarry)
		c.setFlag(flagN, false)
		c.setFlag(flagC, !wasCarry)
		c.setXY(c.reg.A)
	}
}

// opHALT leaves PC on the HALT byte while halted; interrupt entry steps
// it past the HALT byte before pushing the return address.
func (c *CPU) opHALT() {
	c.reg.PC--
	c.halted = true
}

// aluOp implements the eight x=2 ALU operations against A, selected by
// y: ADD, ADC, SUB, SBC, AND, XOR, OR, CP.
func (c *CPU) aluOp(y uint8, v uint8) {
	switch y {
	case 0:
		c.reg.A = c.add8(c.reg.A, v, false)
	case 1:
		c.reg.A = c.add8(c.reg.A, v, true)
	case 2:
		c.reg.A = c.sub8(c.reg.A, v, false)
	case 3:
		c.reg.A = c.sub8(c.reg.A, v, true)
	case 4:
		c.reg.A = c.and8(c.reg.A, v)
	case 5:
		c.reg.A = c.xor8(c.reg.A, v)
	case 6:
		c.reg.A = c.or8(c.reg.A, v)
	case 7:
		c.cp8(c.reg.A, v)
	}
}

func (c *CPU) opRetCond(y uint8) {
	c.tick(1, 1)
	if c.testCond(y) {
		c.reg.PC = c.pop16()
		c.reg.WZ = c.reg.PC
	}
}

func (c *CPU) opPop(p uint8, idx idxMode) {
	_, set := c.reg16af(p, idx)
	set(c.pop16())
}

func (c *CPU) opRet() {
	c.reg.PC = c.pop16()
	c.reg.WZ = c.reg.PC
}

func (c *CPU) opJPCond(y uint8) {
	nn := c.fetchWord()
	c.reg.WZ = nn
	if c.testCond(y) {
		c.reg.PC = nn
	}
}

func (c *CPU) opJP() {
	nn := c.fetchWord()
	c.reg.PC = nn
	c.reg.WZ = nn
}

func (c *CPU) opOutImm() {
	n := c.fetchByte()
	c.reg.WZ = uint16(c.reg.A)<<8 | uint16(n+1)
	c.writePort(n, c.reg.A)
}

func (c *CPU) opInImm() {
	n := c.fetchByte()
	c.reg.WZ = uint16(c.reg.A)<<8 | uint16(n+1)
	c.reg.A = c.readPort(n)
}

// opExSPHL implements EX (SP),HL (or EX (SP),IX / EX (SP),IY under a
// prefix): the word at (SP) is swapped with the selected register pair.
func (c *CPU) opExSPHL(idx idxMode) {
	addr := c.reg.SP
	lo := c.readMem(addr)
	hi := c.readMem(addr + 1)
	old := uint16(hi)<<8 | uint16(lo)

	get, set := c.reg16sp(2, idx)
	cur := get()
	c.writeMem(addr, uint8(cur))
	c.writeMem(addr+1, uint8(cur>>8))
	set(old)
	c.tick(1, 3)
	c.reg.WZ = old
}

func (c *CPU) opExDEHL() {
	c.reg.D, c.reg.H = c.reg.H, c.reg.D
	c.reg.E, c.reg.L = c.reg.L, c.reg.E
}

func (c *CPU) opDI() {
	c.reg.IFF1 = false
	c.reg.IFF2 = false
}

func (c *CPU) opEI() {
	c.reg.IFF1 = true
	c.reg.IFF2 = true
	c.eiPending = true
}

func (c *CPU) opCallCond(y uint8) {
	nn := c.fetchWord()
	c.reg.WZ = nn
	if c.testCond(y) {
		c.tick(1, 1)
		c.push16(c.reg.PC)
		c.reg.PC = nn
	}
}

func (c *CPU) opPush(p uint8, idx idxMode) {
	get, _ := c.reg16af(p, idx)
	c.tick(1, 1)
	c.push16(get())
}

func (c *CPU) opCall() {
	nn := c.fetchWord()
	c.reg.WZ = nn
	c.tick(1, 1)
	c.push16(c.reg.PC)
	c.reg.PC = nn
}

func (c *CPU) opRST(y uint8) {
	c.tick(1, 1)
	c.push16(c.reg.PC)
	c.reg.PC = uint16(y) * 8
	c.reg.WZ = c.reg.PC
}
