package z80

import "log"

// StrictDecode, when true, logs a diagnostic on every undefined-opcode
// fallthrough instead of silently executing it as a NOP. Most of the
// Z80's encoding space is defined, so this only fires for the small
// number of genuinely undefined byte patterns.
var StrictDecode = false

// logUndefined reports an undefined opcode hit under a given prefix.
// Gated behind StrictDecode so normal operation pays no cost for it.
func logUndefined(prefix string, op uint8, pc uint16) {
	log.Printf("z80: undefined %s opcode 0x%02X at PC=0x%04X, treated as NOP", prefix, op, pc)
}

// CPU is the Z80 processor.
type CPU struct {
	reg      Registers
	bus      Bus
	cycleBus CycleBus

	cycles uint64 // total T-states since the last Reset or SetState

	halted bool

	// ei_pending blocks interrupt acceptance until the instruction
	// following EI has completed (the EI-delay rule).
	eiPending bool

	// Interrupt request latches (see §4.I of the design): the host must
	// re-assert RequestInterrupt every Step for as long as the INT line
	// is held (level-triggered); RequestNMI is edge-triggered and stays
	// latched until serviced.
	intRequested bool
	intData      uint8
	nmiRequested bool

	prevPC uint16 // PC before the instruction just dispatched, for diagnostics
}

// New creates a CPU wired to the given bus at its power-on reset state.
func New(bus Bus) *CPU {
	c := &CPU{bus: bus}
	c.cycleBus, _ = bus.(CycleBus)
	c.Reset()
	return c
}

// Reset restores the power-on state documented in the design: all main
// and alternate 8-bit registers zeroed, IX=IY=0, I=0, R=0x8C, SP=0xDFF0,
// PC=0, interrupts disabled, IM 0, not halted.
func (c *CPU) Reset() {
	c.cycleBus, _ = c.bus.(CycleBus)
	c.reg = Registers{R: 0x8C, SP: 0xDFF0}
	c.cycles = 0
	c.halted = false
	c.eiPending = false
	c.intRequested = false
	c.nmiRequested = false
}

// SetState installs regs directly instead of the power-on register
// values. It also zeroes the cycle counter and clears the halted state,
// the EI delay, and any pending interrupt or NMI request. Intended for
// test harnesses that need to establish exact CPU state before a single
// Step.
func (c *CPU) SetState(regs Registers) {
	c.cycleBus, _ = c.bus.(CycleBus)
	c.reg = regs
	c.cycles = 0
	c.halted = false
	c.eiPending = false
	c.intRequested = false
	c.nmiRequested = false
}

// Registers returns a snapshot of the current register state.
func (c *CPU) Registers() Registers { return c.reg }

// Halted reports whether the CPU is in the HALT low-power state.
func (c *CPU) Halted() bool { return c.halted }

// Cycles returns the total T-states elapsed since the last Reset or
// SetState.
func (c *CPU) Cycles() uint64 { return c.cycles }

// RequestInterrupt asserts the maskable interrupt line for this Step.
// data is the value the bus would place on the data bus during the
// interrupt acknowledge cycle; it supplies the low byte of the IM 2
// vector address. The Z80 INT line is level-triggered: call this again
// before every Step for as long as the device wants service.
func (c *CPU) RequestInterrupt(data uint8) {
	c.intRequested = true
	c.intData = data
}

// RequestNMI latches a non-maskable interrupt request. NMI is
// edge-triggered: once requested it stays pending until the CPU
// services it, even across several Step calls.
func (c *CPU) RequestNMI() {
	c.nmiRequested = true
}

// tick forwards an elapsed machine-cycle/T-state count to the bus.
func (c *CPU) tick(mCycles, tStates uint8) {
	c.cycles += uint64(tStates)
	c.bus.Tick(mCycles, tStates)
}

// readMem performs a ticked memory read (MR/OD/stack-read timing: 3 T).
func (c *CPU) readMem(addr uint16) uint8 {
	var v uint8
	if c.cycleBus != nil {
		v = c.cycleBus.ReadCycle(c.cycles, addr)
	} else {
		v = c.bus.MemoryRead(addr)
	}
	c.tick(1, 3)
	return v
}

// writeMem performs a ticked memory write (MW/stack-write timing: 3 T).
func (c *CPU) writeMem(addr uint16, v uint8) {
	if c.cycleBus != nil {
		c.cycleBus.WriteCycle(c.cycles, addr, v)
	} else {
		c.bus.MemoryWrite(addr, v)
	}
	c.tick(1, 3)
}

// readMemRaw/writeMemRaw bypass automatic ticking for instructions that
// need a non-standard cycle breakdown (documented at each call site).
func (c *CPU) readMemRaw(addr uint16) uint8 {
	if c.cycleBus != nil {
		return c.cycleBus.ReadCycle(c.cycles, addr)
	}
	return c.bus.MemoryRead(addr)
}

func (c *CPU) writeMemRaw(addr uint16, v uint8) {
	if c.cycleBus != nil {
		c.cycleBus.WriteCycle(c.cycles, addr, v)
		return
	}
	c.bus.MemoryWrite(addr, v)
}

func (c *CPU) readMemWord(addr uint16) uint16 {
	lo := c.readMem(addr)
	hi := c.readMem(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) writeMemWord(addr uint16, v uint16) {
	c.writeMem(addr, uint8(v))
	c.writeMem(addr+1, uint8(v>>8))
}

func (c *CPU) readPort(port uint8) uint8 {
	v := c.bus.PortRead(port)
	c.tick(1, 4)
	return v
}

func (c *CPU) writePort(port uint8, v uint8) {
	c.bus.PortWrite(port, v)
	c.tick(1, 4)
}

// bumpR increments the low 7 bits of R, preserving bit 7.
func (c *CPU) bumpR() {
	c.reg.R = c.reg.R&0x80 | (c.reg.R+1)&0x7F
}

// fetchOpcode fetches one opcode/prefix byte: OCF timing (4 T), R++.
func (c *CPU) fetchOpcode() uint8 {
	op := c.readMemRaw(c.reg.PC)
	c.reg.PC++
	c.tick(1, 4)
	c.bumpR()
	return op
}

// fetchByte reads one byte from PC and advances PC (OD timing: 3 T).
func (c *CPU) fetchByte() uint8 {
	v := c.readMem(c.reg.PC)
	c.reg.PC++
	return v
}

// fetchWord reads a little-endian word from PC and advances PC by 2.
func (c *CPU) fetchWord() uint16 {
	lo := c.fetchByte()
	hi := c.fetchByte()
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) push16(v uint16) {
	c.reg.SP--
	c.writeMem(c.reg.SP, uint8(v>>8))
	c.reg.SP--
	c.writeMem(c.reg.SP, uint8(v))
}

func (c *CPU) pop16() uint16 {
	lo := c.readMem(c.reg.SP)
	c.reg.SP++
	hi := c.readMem(c.reg.SP)
	c.reg.SP++
	return uint16(hi)<<8 | uint16(lo)
}

// Step executes exactly one instruction, including any prefix chain,
// servicing a pending NMI or maskable interrupt first if one applies.
// It returns the number of T-states consumed.
func (c *CPU) Step() int {
	before := c.cycles

	if c.nmiRequested {
		c.serviceNMI()
		c.eiPending = false
		return int(c.cycles - before)
	}

	if c.intRequested && c.reg.IFF1 && !c.eiPending {
		c.serviceInterrupt()
		c.intRequested = false
		c.eiPending = false
		return int(c.cycles - before)
	}
	c.intRequested = false
	c.eiPending = false

	if c.halted {
		// A halted CPU still executes a no-op fetch cycle so timing
		// stays consistent with a host driving Step in a loop.
		c.tick(1, 4)
		c.bumpR()
		return int(c.cycles - before)
	}

	c.prevPC = c.reg.PC
	idx := idxNone
	op := c.fetchOpcode()

	for op == 0xDD || op == 0xFD {
		if op == 0xDD {
			idx = idxIX
		} else {
			idx = idxIY
		}
		op = c.fetchOpcode()
	}

	switch {
	case op == 0xCB && idx != idxNone:
		// DD/FD CB dd op: the displacement byte precedes the final
		// opcode byte, unlike the plain CB page.
		c.execIndexedCB(idx)
	case op == 0xCB:
		c.execCB()
	case op == 0xED:
		c.execED()
	default:
		c.execBase(op, idx)
	}

	return int(c.cycles - before)
}
