package z80

// imTable maps the ED-page y field (x=1,z=6) to the resulting interrupt
// mode: {0,0,1,2,0,0,1,2}.
var imTable = [8]uint8{0, 0, 1, 2, 0, 0, 1, 2}

// execED decodes and executes an ED-prefixed opcode. Undefined ED forms
// (x=0, x=3, the two reserved x=1,z=7 slots, and the x=2 slots outside
// the block-instruction grid) behave as an 8 T NOP;
// StrictDecode logs them since a real program hitting one is usually a
// decoder bug rather than intentional.
func (c *CPU) execED() {
	op := c.fetchOpcode()
	x, y, z, p, q := xyz(op)

	switch x {
	case 1:
		c.execED1(y, z, p, q)
	case 2:
		c.execEDBlock(y, z)
	default:
		if StrictDecode {
			logUndefined("ED", op, c.prevPC)
		}
	}
}

func (c *CPU) execED1(y, z, p, q uint8) {
	switch z {
	case 0:
		v := c.readPort(c.reg.C)
		if y != 6 {
			c.reg8(y, idxNone).write(v)
		}
		c.setFlag(flagS, v&0x80 != 0)
		c.setFlag(flagZ, v == 0)
		c.setFlag(flagH, false)
		c.setFlag(flagN, false)
		c.setFlag(flagPV, parityEven(v))
		c.setXY(v)
	case 1:
		v := uint8(0)
		if y != 6 {
			v = c.reg8(y, idxNone).read()
		}
		c.writePort(c.reg.C, v)
	case 2:
		get, set := c.reg16sp(p, idxNone)
		hl := c.reg.HL()
		if q == 0 {
			set(c.sbc16(hl, get()))
		} else {
			set(c.adc16(hl, get()))
		}
		c.reg.WZ = hl + 1
		c.tick(1, 7)
	case 3:
		nn := c.fetchWord()
		get, set := c.reg16sp(p, idxNone)
		if q == 0 {
			c.writeMemWord(nn, get())
		} else {
			set(c.readMemWord(nn))
		}
		c.reg.WZ = nn + 1
	case 4:
		c.reg.A = c.neg8(c.reg.A)
	case 5:
		c.reg.PC = c.pop16()
		if y == 1 {
			// RETI (ED 4D): unconditionally re-enables interrupts.
			c.reg.IFF1 = true
			c.reg.IFF2 = true
		} else {
			// RETN: IFF1 is restored from the IFF2 shadow saved on NMI entry.
			c.reg.IFF1 = c.reg.IFF2
		}
		c.reg.WZ = c.reg.PC
	case 6:
		c.reg.IM = imTable[y]
	case 7:
		switch y {
		case 0:
			c.reg.I = c.reg.A
			c.tick(1, 1)
		case 1:
			c.reg.R = c.reg.A
			c.tick(1, 1)
		case 2:
			c.reg.A = c.reg.I
			c.setLDAIRFlags(c.reg.A)
			c.tick(1, 1)
		case 3:
			c.reg.A = c.reg.R
			c.setLDAIRFlags(c.reg.A)
			c.tick(1, 1)
		case 4:
			c.rrd()
		case 5:
			c.rld()
		default:
			if StrictDecode {
				logUndefined("ED", 0x40|y<<3|7, c.prevPC)
			}
		}
	}
}

// setLDAIRFlags applies the LD A,I / LD A,R flag rule: S/Z from the
// value, H=0, N=0, P/V=IFF2, X/Y from the value.
func (c *CPU) setLDAIRFlags(v uint8) {
	c.setFlag(flagS, v&0x80 != 0)
	c.setFlag(flagZ, v == 0)
	c.setFlag(flagH, false)
	c.setFlag(flagN, false)
	c.setFlag(flagPV, c.reg.IFF2)
	c.setXY(v)
}

// rrd/rld rotate a BCD digit between A's low nibble and (HL).
func (c *CPU) rrd() {
	hl := c.reg.HL()
	m := c.readMem(hl)
	c.tick(1, 4)
	newA := c.reg.A&0xF0 | m&0x0F
	newM := c.reg.A<<4 | m>>4
	c.writeMem(hl, newM)
	c.reg.A = newA
	c.setFlag(flagS, c.reg.A&0x80 != 0)
	c.setFlag(flagZ, c.reg.A == 0)
	c.setFlag(flagH, false)
	c.setFlag(flagN, false)
	c.setFlag(flagPV, parityEven(c.reg.A))
	c.setXY(c.reg.A)
	c.reg.WZ = hl + 1
}

func (c *CPU) rld() {
	hl := c.reg.HL()
	m := c.readMem(hl)
	c.tick(1, 4)
	newA := c.reg.A&0xF0 | m>>4
	newM := m<<4 | c.reg.A&0x0F
	c.writeMem(hl, newM)
	c.reg.A = newA
	c.setFlag(flagS, c.reg.A&0x80 != 0)
	c.setFlag(flagZ, c.reg.A == 0)
	c.setFlag(flagH, false)
	c.setFlag(flagN, false)
	c.setFlag(flagPV, parityEven(c.reg.A))
	c.setXY(c.reg.A)
	c.reg.WZ = hl + 1
}

// execEDBlock dispatches the sixteen LDI/LDD/CPI/CPD/INI/IND/OUTI/OUTD
// family instructions and their repeating (IR/DR) forms, selected by
// y (4=single, 5=single reverse, 6=repeat, 7=repeat reverse) and z
// (0=LD, 1=CP, 2=IN, 3=OUT).
func (c *CPU) execEDBlock(y, z uint8) {
	if y < 4 || z > 3 {
		if StrictDecode {
			logUndefined("ED", 0x80|y<<3|z, c.prevPC)
		}
		return
	}
	step := 1
	repeat := y == 6 || y == 7
	if y == 5 || y == 7 {
		step = -1
	}

	switch z {
	case 0:
		c.blockTransfer(step)
		if repeat && c.reg.BC() != 0 {
			c.tick(1, 5)
			c.reg.PC -= 2
		}
	case 1:
		c.blockCompare(step)
		if repeat && c.reg.BC() != 0 && !c.flag(flagZ) {
			c.tick(1, 5)
			c.reg.PC -= 2
		}
	case 2:
		c.blockIn(step)
		if repeat && c.reg.B != 0 {
			c.tick(1, 5)
			c.reg.PC -= 2
		}
	case 3:
		c.blockOut(step)
		if repeat && c.reg.B != 0 {
			c.tick(1, 5)
			c.reg.PC -= 2
		}
	}
}

func (c *CPU) blockTransfer(step int) {
	v := c.readMem(c.reg.HL())
	c.writeMem(c.reg.DE(), v)
	c.reg.SetHL(uint16(int32(c.reg.HL()) + int32(step)))
	c.reg.SetDE(uint16(int32(c.reg.DE()) + int32(step)))
	bc := c.reg.BC() - 1
	c.reg.SetBC(bc)
	c.tick(1, 2)

	n := v + c.reg.A
	c.setFlag(flagH, false)
	c.setFlag(flagN, false)
	c.setFlag(flagPV, bc != 0)
	c.reg.F = c.reg.F&^(flagY|flagX) | n&flagX | (n&0x02)<<4
}

// blockCompare applies the famously non-obvious CPI/CPD X/Y rule: they
// come from bit 3 and bit 1 of (A - (HL) - H), not from the result.
func (c *CPU) blockCompare(step int) {
	val := c.readMem(c.reg.HL())
	c.reg.SetHL(uint16(int32(c.reg.HL()) + int32(step)))
	bc := c.reg.BC() - 1
	c.reg.SetBC(bc)

	result := c.reg.A - val
	halfCarry := (c.reg.A^val^result)&0x10 != 0
	n := result
	if halfCarry {
		n--
	}
	c.setFlag(flagS, result&0x80 != 0)
	c.setFlag(flagZ, result == 0)
	c.setFlag(flagH, halfCarry)
	c.setFlag(flagN, true)
	c.setFlag(flagPV, bc != 0)
	c.reg.F = c.reg.F&^(flagY|flagX) | n&flagX | (n&0x02)<<4
	c.tick(1, 5)
}

// blockIn/blockOut apply the documented (if rarely exercised) carry and
// parity rule for INI/IND/OUTI/OUTD, derived from the transferred byte
// and the post-step B/C or HL value.
func (c *CPU) blockIn(step int) {
	c.tick(1, 1)
	v := c.readPort(c.reg.C)
	c.writeMem(c.reg.HL(), v)
	c.reg.SetHL(uint16(int32(c.reg.HL()) + int32(step)))
	c.reg.B--

	k := uint16(v) + (uint16(c.reg.C)+uint16(int16(step)))&0xFF
	c.setFlag(flagS, c.reg.B&0x80 != 0)
	c.setFlag(flagZ, c.reg.B == 0)
	c.setFlag(flagN, v&0x80 != 0)
	c.setFlag(flagH, k > 0xFF)
	c.setFlag(flagC, k > 0xFF)
	c.setFlag(flagPV, parityEven(uint8(k&7)^c.reg.B))
	c.setXY(c.reg.B)
}

func (c *CPU) blockOut(step int) {
	c.tick(1, 1)
	v := c.readMem(c.reg.HL())
	c.reg.SetHL(uint16(int32(c.reg.HL()) + int32(step)))
	c.reg.B--
	c.writePort(c.reg.C, v)

	k := uint16(v) + uint16(c.reg.L)
	c.setFlag(flagS, c.reg.B&0x80 != 0)
	c.setFlag(flagZ, c.reg.B == 0)
	c.setFlag(flagN, v&0x80 != 0)
	c.setFlag(flagH, k > 0xFF)
	c.setFlag(flagC, k > 0xFF)
	c.setFlag(flagPV, parityEven(uint8(k&7)^c.reg.B))
	c.setXY(c.reg.B)
}
