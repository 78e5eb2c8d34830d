// Package z80 implements a Zilog Z80 CPU emulator.
//
// The Z80 is an 8-bit CISC processor with:
//   - A main register set (A, F, B, C, D, E, H, L) and a shadow alternate
//     set (A', F', B', C', D', E', H', L') swapped via EX AF,AF' and EXX
//   - Two 16-bit index registers (IX, IY), each independently addressable
//     as high/low halves for undocumented operations
//   - A 16-bit stack pointer (SP) and program counter (PC)
//   - An interrupt vector base register (I) and a memory refresh
//     register (R)
//   - Three interrupt modes (IM 0, 1, 2) and a HALT low-power state
package z80

// Bus provides the memory and I/O access the CPU needs to fetch and
// execute instructions. All addresses are 16-bit; all data is 8-bit.
type Bus interface {
	MemoryRead(addr uint16) uint8
	MemoryWrite(addr uint16, value uint8)
	PortRead(port uint8) uint8
	PortWrite(port uint8, value uint8)
	Tick(mCycles, tStates uint8)
}

// CycleBus is optionally implemented by a Bus that wants to observe the
// CPU's running T-state count at each access (for DMA/contention timing
// a host layers on top of this core).
type CycleBus interface {
	Bus
	ReadCycle(cycle uint64, addr uint16) uint8
	WriteCycle(cycle uint64, addr uint16, value uint8)
}
