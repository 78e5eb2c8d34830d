package z80

import (
	"flag"
	"os"
	"strings"
	"testing"
)

// zexPath points at a CP/M zexdoc/zexall .com exerciser image, mirroring
// the teacher's -sstpath flag: absent by default, so the test is a no-op
// in normal `go test` runs and only exercises conformance when a host
// supplies an image on the command line.
var zexPath = flag.String("zexpath", "", "path to a zexdoc/zexall .com exerciser image")

// zexMaxSteps bounds a runaway exerciser run; a real zexdoc/zexall pass
// completes in well under this many instructions.
const zexMaxSteps = 200_000_000

// zexBus is the same flat-memory, no-op-ports, no-op-tick bus cmd/zexrun
// uses to host a CP/M exerciser image; duplicated here rather than
// imported since cmd/zexrun is package main and this is an internal test.
type zexBus struct {
	mem [65536]byte
	out strings.Builder
}

func (b *zexBus) MemoryRead(addr uint16) uint8     { return b.mem[addr] }
func (b *zexBus) MemoryWrite(addr uint16, v uint8) { b.mem[addr] = v }
func (b *zexBus) PortRead(uint8) uint8             { return 0xFF }
func (b *zexBus) PortWrite(uint8, uint8)           {}
func (b *zexBus) Tick(uint8, uint8)                {}

// bdosCall answers the two BDOS functions zexdoc/zexall actually call:
// function 2 (console char out, in E) and function 9 ('$'-terminated
// string out, addressed by DE).
func (b *zexBus) bdosCall(cpu *CPU) {
	reg := cpu.Registers()
	switch reg.C {
	case 2:
		b.out.WriteByte(reg.E)
	case 9:
		addr := reg.DE()
		for {
			ch := b.mem[addr]
			addr++
			if ch == '$' {
				break
			}
			b.out.WriteByte(ch)
		}
	}
}

// TestConformance runs a zexdoc/zexall CP/M exerciser image against the
// core under a minimal BDOS trap (spec.md §6's "intercept PC=0x0005 and
// PC=0x0000" contract) and fails if the exerciser reports any mismatch.
// Skipped unless -zexpath names an image, since the corpus isn't shipped
// with the repo (same reasoning as the teacher's -sstpath-gated
// TestSSTRunner, which skips without a corpus directory).
func TestConformance(t *testing.T) {
	if *zexPath == "" {
		t.Skip("no -zexpath provided")
	}

	data, err := os.ReadFile(*zexPath)
	if err != nil {
		t.Fatalf("reading zexpath: %v", err)
	}

	bus := &zexBus{}
	copy(bus.mem[0x0100:], data)

	// JP 0xF000 at addresses 0 and 5: the loop below traps PC at either
	// address before these bytes run, in place of real CP/M code.
	bus.mem[0] = 0xC3
	bus.mem[1] = 0x00
	bus.mem[2] = 0xF0
	bus.mem[5] = 0xC3
	bus.mem[6] = 0x00
	bus.mem[7] = 0xF0

	cpu := New(bus)
	regs := cpu.Registers()
	regs.PC = 0x0100
	regs.SP = 0xF000
	cpu.SetState(regs)

	for i := 0; i < zexMaxSteps; i++ {
		cpu.Step()
		pc := cpu.Registers().PC
		if pc == 0x0000 {
			break
		}
		if pc == 0x0005 {
			bus.bdosCall(cpu)
			regs := cpu.Registers()
			regs.PC = uint16(bus.mem[regs.SP]) | uint16(bus.mem[regs.SP+1])<<8
			regs.SP += 2
			cpu.SetState(regs)
		}
	}

	out := bus.out.String()
	t.Log(out)
	if strings.Contains(out, "ERROR") {
		t.Errorf("zexdoc/zexall reported a failure:\n%s", out)
	}
	if !strings.Contains(out, "Tests complete") {
		t.Errorf("exerciser run did not reach its completion banner (truncated or hung)")
	}
}
