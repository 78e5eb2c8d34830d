package z80

import "testing"

func TestLDRR(t *testing.T) {
	// LD B,A ; HALT
	cpu, _ := newCPU(0x47, 0x76)
	cpu.setReg(func(r *Registers) { r.A = 0x42 })
	cpu.Step()
	if cpu.Registers().B != 0x42 {
		t.Fatalf("B = 0x%02X, want 0x42", cpu.Registers().B)
	}
}

func TestINC8Flags(t *testing.T) {
	// INC A with A=0x7F sets H and P/V (overflow), clears S/Z.
	cpu, _ := newCPU(0x3C)
	cpu.setReg(func(r *Registers) { r.A = 0x7F })
	cpu.Step()
	reg := cpu.Registers()
	if reg.A != 0x80 {
		t.Fatalf("A = 0x%02X, want 0x80", reg.A)
	}
	if !cpu.flag(flagS) || !cpu.flag(flagH) || !cpu.flag(flagPV) || cpu.flag(flagZ) {
		t.Fatalf("F = 0x%02X, want S,H,PV set and Z clear", reg.F)
	}
}

func TestAddHLBC(t *testing.T) {
	// ADD HL,BC
	cpu, _ := newCPU(0x09)
	cpu.setReg(func(r *Registers) {
		r.SetHL(0xFFFF)
		r.SetBC(0x0002)
	})
	cycles := cpu.Step()
	reg := cpu.Registers()
	if reg.HL() != 0x0001 {
		t.Fatalf("HL = 0x%04X, want 0x0001", reg.HL())
	}
	if !cpu.flag(flagC) {
		t.Fatalf("carry flag not set on HL overflow")
	}
	if cycles != 11 {
		t.Fatalf("cycles = %d, want 11", cycles)
	}
}

func TestJRTakenVsNotTaken(t *testing.T) {
	// JR Z,2
	cpu, _ := newCPU(0x28, 0x02, 0x76, 0x76, 0x76)
	cpu.setReg(func(r *Registers) { r.F = flagZ })
	cycles := cpu.Step()
	if cycles != 12 {
		t.Fatalf("taken JR cycles = %d, want 12", cycles)
	}
	if cpu.Registers().PC != 4 {
		t.Fatalf("PC after taken JR = %d, want 4", cpu.Registers().PC)
	}

	cpu2, _ := newCPU(0x28, 0x02, 0x76)
	cpu2.setReg(func(r *Registers) { r.F = 0 })
	cycles2 := cpu2.Step()
	if cycles2 != 7 {
		t.Fatalf("not-taken JR cycles = %d, want 7", cycles2)
	}
	if cpu2.Registers().PC != 2 {
		t.Fatalf("PC after not-taken JR = %d, want 2", cpu2.Registers().PC)
	}
}

func TestCallAndRet(t *testing.T) {
	// CALL 0x0010 ; ... ; at 0x0010: RET
	code := make([]byte, 0x20)
	code[0] = 0xCD
	code[1] = 0x10
	code[2] = 0x00
	code[0x10] = 0xC9
	cpu, bus := newCPU(code...)
	cpu.setReg(func(r *Registers) { r.SP = 0x100 })
	cycles := cpu.Step()
	if cycles != 17 {
		t.Fatalf("CALL cycles = %d, want 17", cycles)
	}
	if cpu.Registers().PC != 0x10 {
		t.Fatalf("PC after CALL = 0x%04X, want 0x0010", cpu.Registers().PC)
	}
	if bus.mem[0xFF] != 0x00 || bus.mem[0xFE] != 0x03 {
		t.Fatalf("return address not pushed correctly")
	}

	cycles = cpu.Step()
	if cycles != 10 {
		t.Fatalf("RET cycles = %d, want 10", cycles)
	}
	if cpu.Registers().PC != 0x0003 {
		t.Fatalf("PC after RET = 0x%04X, want 0x0003", cpu.Registers().PC)
	}
}

func TestPushPop(t *testing.T) {
	// PUSH BC ; POP DE
	cpu, _ := newCPU(0xC5, 0xD1)
	cpu.setReg(func(r *Registers) {
		r.SetBC(0x1234)
		r.SP = 0x100
	})
	cpu.Step()
	cpu.Step()
	reg := cpu.Registers()
	if reg.DE() != 0x1234 {
		t.Fatalf("DE = 0x%04X, want 0x1234", reg.DE())
	}
}

func TestIndexedLoad(t *testing.T) {
	// LD A,(IX+2)
	cpu, bus := newCPU(0xDD, 0x7E, 0x02)
	bus.mem[0x1002] = 0x99
	cpu.setReg(func(r *Registers) { r.IX = 0x1000 })
	cycles := cpu.Step()
	if cpu.Registers().A != 0x99 {
		t.Fatalf("A = 0x%02X, want 0x99", cpu.Registers().A)
	}
	if cycles != 19 {
		t.Fatalf("cycles = %d, want 19", cycles)
	}
}

func TestIndexedLoadDoesNotSubstitutePlainRegister(t *testing.T) {
	// LD H,(IX+2): the source is displaced memory, so the destination
	// stays the plain H register, not IXH. IX's high byte (0xAA) must
	// survive untouched.
	cpu, bus := newCPU(0xDD, 0x66, 0x02)
	bus.mem[0xAA02] = 0x55
	cpu.setReg(func(r *Registers) { r.IX = 0xAA00; r.H = 0x00 })
	cpu.Step()
	reg := cpu.Registers()
	if reg.H != 0x55 {
		t.Fatalf("H = 0x%02X, want 0x55", reg.H)
	}
	if reg.IX != 0xAA00 {
		t.Fatalf("IX = 0x%04X, want unchanged 0xAA00", reg.IX)
	}

	// LD (IX+2),L: the destination is displaced memory, so the source
	// stays the plain L register, not IXL. IX's low byte (0x07) must
	// survive untouched.
	cpu2, bus2 := newCPU(0xDD, 0x75, 0x02)
	cpu2.setReg(func(r *Registers) { r.IX = 0xBB07; r.L = 0x42 })
	cpu2.Step()
	if bus2.mem[0xBB09] != 0x42 {
		t.Fatalf("(IX+2) = 0x%02X, want 0x42 (plain L, not IXL)", bus2.mem[0xBB09])
	}
	if cpu2.Registers().IX != 0xBB07 {
		t.Fatalf("IX = 0x%04X, want unchanged 0xBB07", cpu2.Registers().IX)
	}
}

func TestCBRotate(t *testing.T) {
	// CB 00 = RLC B
	cpu, _ := newCPU(0xCB, 0x00)
	cpu.setReg(func(r *Registers) { r.B = 0x80 })
	cpu.Step()
	reg := cpu.Registers()
	if reg.B != 0x01 {
		t.Fatalf("B = 0x%02X, want 0x01", reg.B)
	}
	if !cpu.flag(flagC) {
		t.Fatalf("carry not set from RLC of 0x80")
	}
}

func TestBitOnMemory(t *testing.T) {
	// CB 46 = BIT 0,(HL)
	cpu, bus := newCPU(0xCB, 0x46)
	bus.mem[0x2000] = 0x00
	cpu.setReg(func(r *Registers) { r.SetHL(0x2000) })
	cycles := cpu.Step()
	if !cpu.flag(flagZ) {
		t.Fatalf("Z not set for BIT 0 on a zero bit")
	}
	if cycles != 12 {
		t.Fatalf("cycles = %d, want 12", cycles)
	}
}

func TestIndexedCBWritesBackToRegister(t *testing.T) {
	// DD CB 02 00 = RLC (IX+2),B
	cpu, bus := newCPU(0xDD, 0xCB, 0x02, 0x00)
	bus.mem[0x1002] = 0x80
	cpu.setReg(func(r *Registers) { r.IX = 0x1000 })
	cycles := cpu.Step()
	reg := cpu.Registers()
	if bus.mem[0x1002] != 0x01 {
		t.Fatalf("(IX+2) = 0x%02X, want 0x01", bus.mem[0x1002])
	}
	if reg.B != 0x01 {
		t.Fatalf("B = 0x%02X, want 0x01 (undocumented copy-back)", reg.B)
	}
	if cycles != 23 {
		t.Fatalf("cycles = %d, want 23", cycles)
	}
}

func TestLDIR(t *testing.T) {
	// LDIR from 0x1000 to 0x2000, length 3
	cpu, bus := newCPU(0xED, 0xB0)
	bus.mem[0x1000] = 0xAA
	bus.mem[0x1001] = 0xBB
	bus.mem[0x1002] = 0xCC
	cpu.setReg(func(r *Registers) {
		r.SetHL(0x1000)
		r.SetDE(0x2000)
		r.SetBC(3)
	})
	for i := 0; i < 3; i++ {
		cpu.Step()
	}
	if bus.mem[0x2000] != 0xAA || bus.mem[0x2001] != 0xBB || bus.mem[0x2002] != 0xCC {
		t.Fatalf("LDIR did not copy all three bytes")
	}
	reg := cpu.Registers()
	if reg.BC() != 0 {
		t.Fatalf("BC after LDIR = %d, want 0", reg.BC())
	}
	if cpu.flag(flagPV) {
		t.Fatalf("P/V should be clear once BC reaches 0")
	}
}

func TestHaltAndNMI(t *testing.T) {
	cpu, _ := newCPU(0x76) // HALT
	cpu.Step()
	if !cpu.Halted() {
		t.Fatalf("CPU did not halt")
	}

	cpu.RequestNMI()
	cpu.Step()
	if cpu.Halted() {
		t.Fatalf("NMI did not clear halted state")
	}
	if cpu.Registers().PC != 0x0066 {
		t.Fatalf("PC after NMI = 0x%04X, want 0x0066", cpu.Registers().PC)
	}
}

func TestEIDelaysInterrupt(t *testing.T) {
	// EI ; NOP ; NOP
	cpu, _ := newCPU(0xFB, 0x00, 0x00)
	cpu.setReg(func(r *Registers) { r.IM = 1 })
	cpu.Step() // EI
	cpu.RequestInterrupt(0)
	cpu.Step() // NOP: interrupt must NOT fire here
	if cpu.Registers().PC != 0x0002 {
		t.Fatalf("interrupt fired during the EI-delay instruction")
	}
}

func TestRETIEnablesBothIFFsUnconditionally(t *testing.T) {
	// ED 4D = RETI
	cpu, bus := newCPU(0xED, 0x4D)
	bus.mem[0x100] = 0x34
	bus.mem[0x101] = 0x12
	cpu.setReg(func(r *Registers) {
		r.SP = 0x100
		r.IFF1 = false
		r.IFF2 = false
	})
	cpu.Step()
	reg := cpu.Registers()
	if !reg.IFF1 || !reg.IFF2 {
		t.Fatalf("IFF1/IFF2 after RETI = %v/%v, want true/true", reg.IFF1, reg.IFF2)
	}
	if reg.PC != 0x1234 {
		t.Fatalf("PC after RETI = 0x%04X, want 0x1234", reg.PC)
	}
}

func TestRETNRestoresIFF1FromIFF2(t *testing.T) {
	// ED 45 = RETN
	cpu, bus := newCPU(0xED, 0x45)
	bus.mem[0x100] = 0x34
	bus.mem[0x101] = 0x12
	cpu.setReg(func(r *Registers) {
		r.SP = 0x100
		r.IFF1 = false
		r.IFF2 = true
	})
	cpu.Step()
	reg := cpu.Registers()
	if !reg.IFF1 {
		t.Fatalf("IFF1 after RETN = false, want IFF2's true restored")
	}
}

func TestIM2Vector(t *testing.T) {
	cpu, bus := newCPU(0x00) // NOP, never reached
	bus.mem[0x1002] = 0x00
	bus.mem[0x1003] = 0x80 // vector -> 0x8000
	cpu.setReg(func(r *Registers) {
		r.IM = 2
		r.I = 0x10
		r.IFF1 = true
		r.SP = 0x100
	})
	cpu.RequestInterrupt(0x02)
	cpu.Step()
	if cpu.Registers().PC != 0x8000 {
		t.Fatalf("PC after IM2 interrupt = 0x%04X, want 0x8000", cpu.Registers().PC)
	}
}
