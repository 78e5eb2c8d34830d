package z80

// idxMode selects which 16-bit index register (if any) a DD/FD-prefixed
// instruction substitutes for HL/H/L.
type idxMode uint8

const (
	idxNone idxMode = iota
	idxIX
	idxIY
)

// operand is a tagged-union view over an 8-bit source/destination: a
// register, an immediate, or a resolved memory address. It lets every
// instruction handler share one read/write shape regardless of
// addressing mode, mirroring the capability-object pattern but
// collapsed into a single small struct (get/set closures) rather than
// per-kind interfaces.
type operand struct {
	get     func() uint8
	set     func(uint8)
	memAddr *uint16 // non-nil when this operand is a resolved memory address
}

func (o operand) read() uint8   { return o.get() }
func (o operand) write(v uint8) { o.set(v) }
func (o operand) isMem() bool   { return o.memAddr != nil }
func (o operand) address() uint16 {
	if o.memAddr != nil {
		return *o.memAddr
	}
	return 0
}

func regOperand(get func() uint8, set func(uint8)) operand {
	return operand{get: get, set: set}
}

func immOperand(v uint8) operand {
	return operand{get: func() uint8 { return v }, set: func(uint8) {}}
}

// memOperand builds an operand over a resolved memory address using the
// auto-ticking read/write helpers (the common MR/MW timing case).
func (c *CPU) memOperand(addr uint16) operand {
	a := addr
	return operand{
		get:     func() uint8 { return c.readMem(a) },
		set:     func(v uint8) { c.writeMem(a, v) },
		memAddr: &a,
	}
}

// reg8 resolves the standard 3-bit register field (0=B,1=C,2=D,3=E,
// 4=H,5=L,6=(HL),7=A) against the active index substitution. Under
// DD/FD, field 4/5 become IXH/IXL or IYH/IYL (undocumented) and field 6
// becomes (IX+d)/(IY+d) with the displacement fetched inline.
func (c *CPU) reg8(field uint8, idx idxMode) operand {
	switch field {
	case 0:
		return regOperand(func() uint8 { return c.reg.B }, func(v uint8) { c.reg.B = v })
	case 1:
		return regOperand(func() uint8 { return c.reg.C }, func(v uint8) { c.reg.C = v })
	case 2:
		return regOperand(func() uint8 { return c.reg.D }, func(v uint8) { c.reg.D = v })
	case 3:
		return regOperand(func() uint8 { return c.reg.E }, func(v uint8) { c.reg.E = v })
	case 4:
		switch idx {
		case idxIX:
			return regOperand(func() uint8 { return c.reg.IXH() }, func(v uint8) { c.reg.SetIXH(v) })
		case idxIY:
			return regOperand(func() uint8 { return c.reg.IYH() }, func(v uint8) { c.reg.SetIYH(v) })
		default:
			return regOperand(func() uint8 { return c.reg.H }, func(v uint8) { c.reg.H = v })
		}
	case 5:
		switch idx {
		case idxIX:
			return regOperand(func() uint8 { return c.reg.IXL() }, func(v uint8) { c.reg.SetIXL(v) })
		case idxIY:
			return regOperand(func() uint8 { return c.reg.IYL() }, func(v uint8) { c.reg.SetIYL(v) })
		default:
			return regOperand(func() uint8 { return c.reg.L }, func(v uint8) { c.reg.L = v })
		}
	case 6:
		switch idx {
		case idxIX:
			addr := c.fetchDisplaced(c.reg.IX)
			c.tick(1, 5) // effective-address calculation delay
			return c.memOperand(addr)
		case idxIY:
			addr := c.fetchDisplaced(c.reg.IY)
			c.tick(1, 5)
			return c.memOperand(addr)
		default:
			return c.memOperand(c.reg.HL())
		}
	case 7:
		return regOperand(func() uint8 { return c.reg.A }, func(v uint8) { c.reg.A = v })
	}
	return immOperand(0)
}

// reg16sp resolves the 2-bit "dd"/"ss" register-pair field used by 16-bit
// loads, ADD HL,rr, and INC/DEC rr (0=BC,1=DE,2=HL[/IX/IY],3=SP).
func (c *CPU) reg16sp(field uint8, idx idxMode) (get func() uint16, set func(uint16)) {
	switch field {
	case 0:
		return c.reg.BC, c.reg.SetBC
	case 1:
		return c.reg.DE, c.reg.SetDE
	case 2:
		switch idx {
		case idxIX:
			return func() uint16 { return c.reg.IX }, func(v uint16) { c.reg.IX = v }
		case idxIY:
			return func() uint16 { return c.reg.IY }, func(v uint16) { c.reg.IY = v }
		default:
			return c.reg.HL, c.reg.SetHL
		}
	case 3:
		return func() uint16 { return c.reg.SP }, func(v uint16) { c.reg.SP = v }
	}
	return func() uint16 { return 0 }, func(uint16) {}
}

// reg16af resolves the 2-bit "qq" register-pair field used by PUSH/POP
// (0=BC,1=DE,2=HL[/IX/IY],3=AF).
func (c *CPU) reg16af(field uint8, idx idxMode) (get func() uint16, set func(uint16)) {
	if field == 3 {
		return c.reg.AF, c.reg.SetAF
	}
	return c.reg16sp(field, idx)
}

// fetchDisplaced reads a signed 8-bit displacement from the instruction
// stream and adds it to base, implementing mem(idx+d).
func (c *CPU) fetchDisplaced(base uint16) uint16 {
	d := int8(c.fetchByte())
	return uint16(int32(base) + int32(d))
}
