// Command zexrun runs a CP/M "zexdoc"/"zexall" style .com image against
// the z80 core under a minimal CP/M BIOS trap, for manual conformance
// checking against the classic Z80 exerciser test suites.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/user-none/go-chip-z80"
)

// cpmBus loads a .com image at 0x0100 and answers the handful of BDOS
// calls (function 2: console output, function 9: string output) that
// the zexdoc/zexall exercisers use to report results.
type cpmBus struct {
	mem [65536]byte
	out *bufio.Writer
}

func (b *cpmBus) MemoryRead(addr uint16) uint8      { return b.mem[addr] }
func (b *cpmBus) MemoryWrite(addr uint16, v uint8)  { b.mem[addr] = v }
func (b *cpmBus) PortRead(uint8) uint8              { return 0xFF }
func (b *cpmBus) PortWrite(uint8, uint8)            {}
func (b *cpmBus) Tick(mCycles, tStates uint8)       {}

func (b *cpmBus) bdosCall(cpu *z80.CPU) {
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

func runImage(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	bus := &cpmBus{out: bufio.NewWriter(os.Stdout)}
	defer bus.out.Flush()
	copy(bus.mem[0x0100:], data)

	// JP 0xF000 at address 0 and 5 (warm/cold boot and BDOS entry
	// points). The loop below traps PC at either address before these
	// bytes run, so a RET to 0 or a CALL 5 from the program is caught.
	bus.mem[0] = 0xC3
	bus.mem[1] = 0x00
	bus.mem[2] = 0xF0
	bus.mem[5] = 0xC3
	bus.mem[6] = 0x00
	bus.mem[7] = 0xF0

	cpu := z80.New(bus)
	regs := cpu.Registers()
	regs.PC = 0x0100
	regs.SP = 0xF000
	cpu.SetState(regs)

	var ops uint64
	for {
		ops++
		cpu.Step()
		switch cpu.Registers().PC {
		case 0x0000:
			bus.out.Flush()
			fmt.Printf("\n%d instructions executed\n", ops)
			return nil
		case 0x0005:
			bus.bdosCall(cpu)
			regs := cpu.Registers()
			regs.PC = uint16(bus.mem[regs.SP]) | uint16(bus.mem[regs.SP+1])<<8
			regs.SP += 2
			cpu.SetState(regs)
		}
	}
}

func main() {
	var romPath string

	root := &cobra.Command{
		Use:   "zexrun",
		Short: "Run a CP/M Z80 exerciser .com image against the z80 core",
		RunE: func(cmd *cobra.Command, args []string) error {
			if romPath == "" {
				return fmt.Errorf("--rom is required (point it at zexdoc.com or zexall.com)")
			}
			return runImage(romPath)
		},
	}
	root.Flags().StringVar(&romPath, "rom", "", "path to a CP/M .com exerciser image")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
