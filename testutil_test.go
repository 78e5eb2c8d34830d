package z80

// testBus is a flat 64KB memory bus with an 8-bit port space, used
// across the unit tests.
type testBus struct {
	mem   [65536]byte
	ports [256]byte
	ticks int
}

func (b *testBus) MemoryRead(addr uint16) uint8  { return b.mem[addr] }
func (b *testBus) MemoryWrite(addr uint16, v uint8) { b.mem[addr] = v }
func (b *testBus) PortRead(port uint8) uint8      { return b.ports[port] }
func (b *testBus) PortWrite(port uint8, v uint8)  { b.ports[port] = v }
func (b *testBus) Tick(mCycles, tStates uint8)    { b.ticks += int(tStates) }

// newCPU builds a CPU over a fresh testBus with code loaded at 0x0000.
func newCPU(code ...uint8) (*CPU, *testBus) {
	bus := &testBus{}
	copy(bus.mem[:], code)
	return New(bus), bus
}

func (c *CPU) setReg(f func(r *Registers)) {
	r := c.Registers()
	f(&r)
	c.SetState(r)
}
