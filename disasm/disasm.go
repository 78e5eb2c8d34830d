// Package disasm renders Z80 machine code into assembler mnemonics. It
// decodes independently of the cpu package's execution path: sharing a
// literal sink interface between "execute this opcode" and "print this
// opcode" would force every instruction handler in the core through an
// extra layer of indirection for a feature most callers never use, so
// the disassembler keeps its own small decode table instead.
package disasm

import "fmt"

// Instruction is one decoded instruction: its mnemonic text and its
// length in bytes, including any DD/FD/CB prefixes.
type Instruction struct {
	Mnemonic string
	Length   int
}

// reg8Names is indexed by the standard 3-bit register field.
var reg8Names = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

var reg16spNames = [4]string{"BC", "DE", "HL", "SP"}
var reg16afNames = [4]string{"BC", "DE", "HL", "AF"}
var condNames = [8]string{"NZ", "Z", "NC", "C", "PO", "PE", "P", "M"}
var aluNames = [8]string{"ADD A,", "ADC A,", "SUB ", "SBC A,", "AND ", "XOR ", "OR ", "CP "}
var rotNames = [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SLL", "SRL"}

// byteAt reads a byte at off from code, or 0 past the end (used so a
// truncated buffer still produces something rather than panicking).
func byteAt(code []byte, off int) uint8 {
	if off < 0 || off >= len(code) {
		return 0
	}
	return code[off]
}

func word(code []byte, off int) uint16 {
	return uint16(byteAt(code, off)) | uint16(byteAt(code, off+1))<<8
}

func xyz(op uint8) (x, y, z, p, q uint8) {
	x = op >> 6
	y = (op >> 3) & 7
	z = op & 7
	p = y >> 1
	q = y & 1
	return
}

// regName returns the name of the 3-bit register field under an index
// substitution: field 6 becomes "(IX+d)"/"(IY+d)" and fields 4/5 become
// the undocumented half-register names.
func regName(field uint8, idxSuffix string, d int8) string {
	if idxSuffix == "" {
		return reg8Names[field]
	}
	switch field {
	case 4:
		return "I" + idxSuffix + "H"
	case 5:
		return "I" + idxSuffix + "L"
	case 6:
		if d < 0 {
			return fmt.Sprintf("(I%s-%d)", idxSuffix, -int(d))
		}
		return fmt.Sprintf("(I%s+%d)", idxSuffix, d)
	}
	return reg8Names[field]
}

// Decode decodes a single instruction starting at code[0]. The index
// suffix handed to decodeBase/decodeCB is "" for the plain page, "X"
// under a DD prefix, "Y" under an FD prefix.
func Decode(code []byte) Instruction {
	op := byteAt(code, 0)
	switch op {
	case 0xCB:
		return decodeCB(code, 1, "", 0)
	case 0xED:
		return decodeED(code)
	case 0xDD, 0xFD:
		suffix := "X"
		if op == 0xFD {
			suffix = "Y"
		}
		next := byteAt(code, 1)
		if next == 0xCB {
			d := int8(byteAt(code, 2))
			return decodeCB(code, 3, suffix, d)
		}
		inner := decodeBase(code[1:], suffix)
		return Instruction{Mnemonic: inner.Mnemonic, Length: inner.Length + 1}
	default:
		return decodeBase(code, "")
	}
}

func decodeBase(code []byte, idx string) Instruction {
	op := byteAt(code, 0)
	x, y, z, p, q := xyz(op)

	// displaced forms consume a displacement byte right after the
	// opcode, before any further immediate bytes. Which field names the
	// memory operand depends on x: y for the INC/DEC/LD-immediate group
	// (x=0) since it addresses the destination via y, either y or z for
	// LD r,r' (x=1), and z for the ALU group (x=2).
	d := int8(0)
	length := 1
	usesDisp := false
	switch x {
	case 0:
		usesDisp = idx != "" && (z == 4 || z == 5 || z == 6) && y == 6
	case 1:
		usesDisp = idx != "" && (y == 6 || z == 6)
	case 2:
		usesDisp = idx != "" && z == 6
	}
	if usesDisp {
		d = int8(byteAt(code, 1))
		length = 2
	}

	mn := func(s string) Instruction { return Instruction{Mnemonic: s, Length: length} }
	mnLen := func(s string, extra int) Instruction { return Instruction{Mnemonic: s, Length: length + extra} }

	hl := "HL"
	if idx != "" {
		hl = "I" + idx
	}

	switch x {
	case 0:
		switch z {
		case 0:
			switch {
			case y == 0:
				return mn("NOP")
			case y == 1:
				return mn("EX AF,AF'")
			case y == 2:
				return mnLen(fmt.Sprintf("DJNZ %+d", int8(byteAt(code, length))), 1)
			case y == 3:
				return mnLen(fmt.Sprintf("JR %+d", int8(byteAt(code, length))), 1)
			default:
				return mnLen(fmt.Sprintf("JR %s,%+d", condNames[y-4], int8(byteAt(code, length))), 1)
			}
		case 1:
			name := reg16spNames[p]
			if idx != "" && p == 2 {
				name = "I" + idx
			}
			if q == 0 {
				return mnLen(fmt.Sprintf("LD %s,%d", name, word(code, length)), 2)
			}
			return mn(fmt.Sprintf("ADD %s,%s", hl, name))
		case 2:
			switch {
			case p == 0 && q == 0:
				return mn("LD (BC),A")
			case p == 0:
				return mn("LD A,(BC)")
			case p == 1 && q == 0:
				return mn("LD (DE),A")
			case p == 1:
				return mn("LD A,(DE)")
			case p == 2 && q == 0:
				return mnLen(fmt.Sprintf("LD (%d),%s", word(code, length), hl), 2)
			case p == 2:
				return mnLen(fmt.Sprintf("LD %s,(%d)", hl, word(code, length)), 2)
			case p == 3 && q == 0:
				return mnLen(fmt.Sprintf("LD (%d),A", word(code, length)), 2)
			default:
				return mnLen(fmt.Sprintf("LD A,(%d)", word(code, length)), 2)
			}
		case 3:
			name := reg16spNames[p]
			if idx != "" && p == 2 {
				name = "I" + idx
			}
			if q == 0 {
				return mn(fmt.Sprintf("INC %s", name))
			}
			return mn(fmt.Sprintf("DEC %s", name))
		case 4:
			return mn(fmt.Sprintf("INC %s", regName(y, idx, d)))
		case 5:
			return mn(fmt.Sprintf("DEC %s", regName(y, idx, d)))
		case 6:
			return mnLen(fmt.Sprintf("LD %s,%d", regName(y, idx, d), byteAt(code, length)), 1)
		case 7:
			names := [8]string{"RLCA", "RRCA", "RLA", "RRA", "DAA", "CPL", "SCF", "CCF"}
			return mn(names[y])
		}
	case 1:
		if z == 6 && y == 6 {
			return mn("HALT")
		}
		// Opposite a displaced (IX+d)/(IY+d) operand, H and L stay plain.
		dstIdx, srcIdx := idx, idx
		if y == 6 {
			srcIdx = ""
		}
		if z == 6 {
			dstIdx = ""
		}
		return mn(fmt.Sprintf("LD %s,%s", regName(y, dstIdx, d), regName(z, srcIdx, d)))
	case 2:
		return mn(aluNames[y] + regName(z, idx, d))
	case 3:
		switch z {
		case 0:
			return mn(fmt.Sprintf("RET %s", condNames[y]))
		case 1:
			if q == 0 {
				name := reg16afNames[p]
				if idx != "" && p == 2 {
					name = "I" + idx
				}
				return mn(fmt.Sprintf("POP %s", name))
			}
			switch p {
			case 0:
				return mn("RET")
			case 1:
				return mn("EXX")
			case 2:
				return mn(fmt.Sprintf("JP (%s)", hl))
			default:
				return mn(fmt.Sprintf("LD SP,%s", hl))
			}
		case 2:
			return mnLen(fmt.Sprintf("JP %s,%d", condNames[y], word(code, length)), 2)
		case 3:
			switch y {
			case 0:
				return mnLen(fmt.Sprintf("JP %d", word(code, length)), 2)
			case 2:
				return mnLen(fmt.Sprintf("OUT (%d),A", byteAt(code, length)), 1)
			case 3:
				return mnLen(fmt.Sprintf("IN A,(%d)", byteAt(code, length)), 1)
			case 4:
				return mn(fmt.Sprintf("EX (SP),%s", hl))
			case 5:
				return mn("EX DE,HL")
			case 6:
				return mn("DI")
			default:
				return mn("EI")
			}
		case 4:
			return mnLen(fmt.Sprintf("CALL %s,%d", condNames[y], word(code, length)), 2)
		case 5:
			if q == 0 {
				name := reg16afNames[p]
				if idx != "" && p == 2 {
					name = "I" + idx
				}
				return mn(fmt.Sprintf("PUSH %s", name))
			}
			return mnLen(fmt.Sprintf("CALL %d", word(code, length)), 2)
		case 6:
			return mnLen(aluNames[y]+fmt.Sprintf("%d", byteAt(code, length)), 1)
		default:
			return mn(fmt.Sprintf("RST %02Xh", y*8))
		}
	}
	return mn(fmt.Sprintf("DB %02Xh", op))
}

func decodeCB(code []byte, opOff int, idx string, d int8) Instruction {
	op := byteAt(code, opOff)
	x, y, z, _, _ := xyz(op)
	length := opOff + 1

	target := reg8Names[z]
	if idx != "" {
		if d < 0 {
			target = fmt.Sprintf("(I%s-%d)", idx, -int(d))
		} else {
			target = fmt.Sprintf("(I%s+%d)", idx, d)
		}
	}
	copySuffix := ""
	if idx != "" && z != 6 {
		copySuffix = "," + reg8Names[z]
	}

	switch x {
	case 0:
		return Instruction{Mnemonic: fmt.Sprintf("%s %s%s", rotNames[y], target, copySuffix), Length: length}
	case 1:
		return Instruction{Mnemonic: fmt.Sprintf("BIT %d,%s", y, target), Length: length}
	case 2:
		return Instruction{Mnemonic: fmt.Sprintf("RES %d,%s%s", y, target, copySuffix), Length: length}
	default:
		return Instruction{Mnemonic: fmt.Sprintf("SET %d,%s%s", y, target, copySuffix), Length: length}
	}
}

func decodeED(code []byte) Instruction {
	op := byteAt(code, 1)
	x, y, z, p, q := xyz(op)

	mn := func(s string) Instruction { return Instruction{Mnemonic: s, Length: 2} }
	mnLen := func(s string, extra int) Instruction { return Instruction{Mnemonic: s, Length: 2 + extra} }

	if x == 2 {
		names := map[uint8][4]string{
			4: {"LDI", "CPI", "INI", "OUTI"},
			5: {"LDD", "CPD", "IND", "OUTD"},
			6: {"LDIR", "CPIR", "INIR", "OTIR"},
			7: {"LDDR", "CPDR", "INDR", "OTDR"},
		}
		if row, ok := names[y]; ok && z < 4 {
			return mn(row[z])
		}
		return mn(fmt.Sprintf("DB EDh,%02Xh", op))
	}

	if x != 1 {
		return mn(fmt.Sprintf("DB EDh,%02Xh", op))
	}

	switch z {
	case 0:
		if y == 6 {
			return mn("IN (C)")
		}
		return mn(fmt.Sprintf("IN %s,(C)", reg8Names[y]))
	case 1:
		if y == 6 {
			return mn("OUT (C),0")
		}
		return mn(fmt.Sprintf("OUT (C),%s", reg8Names[y]))
	case 2:
		name := reg16spNames[p]
		if q == 0 {
			return mn(fmt.Sprintf("SBC HL,%s", name))
		}
		return mn(fmt.Sprintf("ADC HL,%s", name))
	case 3:
		name := reg16spNames[p]
		if q == 0 {
			return mnLen(fmt.Sprintf("LD (%d),%s", word(code, 2), name), 2)
		}
		return mnLen(fmt.Sprintf("LD %s,(%d)", name, word(code, 2)), 2)
	case 4:
		return mn("NEG")
	case 5:
		if y == 1 {
			return mn("RETI")
		}
		return mn("RETN")
	case 6:
		imTable := [8]uint8{0, 0, 1, 2, 0, 0, 1, 2}
		return mn(fmt.Sprintf("IM %d", imTable[y]))
	default:
		names := [8]string{"LD I,A", "LD R,A", "LD A,I", "LD A,R", "RRD", "RLD", "NOP", "NOP"}
		return mn(names[y])
	}
}
