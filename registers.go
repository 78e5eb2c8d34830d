package z80

// Registers holds the programmer-visible state of the Z80.
type Registers struct {
	A, F uint8
	B, C uint8
	D, E uint8
	H, L uint8

	A_, F_ uint8
	B_, C_ uint8
	D_, E_ uint8
	H_, L_ uint8

	IX, IY uint16
	SP, PC uint16

	I, R uint8 // R bit 7 is preserved across auto-increment.

	IFF1, IFF2 bool
	IM uint8 // 0, 1, or 2

	// WZ (aka MEMPTR) is an internal latch not visible to programs. Many
	// instructions update it (jumps, calls, 16-bit ADD/ADC/SBC, indirect
	// loads); its high byte supplies the undocumented X/Y flag bits of
	// BIT n,(HL).
	WZ uint16
}

// AF returns the 16-bit view of A and F (A is the high byte).
func (r *Registers) AF() uint16 { return uint16(r.A)<<8 | uint16(r.F) }

// SetAF stores a 16-bit value into A and F.
func (r *Registers) SetAF(v uint16) { r.A = uint8(v >> 8); r.F = uint8(v) }

// BC returns the 16-bit view of B and C.
func (r *Registers) BC() uint16 { return uint16(r.B)<<8 | uint16(r.C) }

// SetBC stores a 16-bit value into B and C.
func (r *Registers) SetBC(v uint16) { r.B = uint8(v >> 8); r.C = uint8(v) }

// DE returns the 16-bit view of D and E.
func (r *Registers) DE() uint16 { return uint16(r.D)<<8 | uint16(r.E) }

// SetDE stores a 16-bit value into D and E.
func (r *Registers) SetDE(v uint16) { r.D = uint8(v >> 8); r.E = uint8(v) }

// HL returns the 16-bit view of H and L.
func (r *Registers) HL() uint16 { return uint16(r.H)<<8 | uint16(r.L) }

// SetHL stores a 16-bit value into H and L.
func (r *Registers) SetHL(v uint16) { r.H = uint8(v >> 8); r.L = uint8(v) }

// IXH/IXL/IYH/IYL expose the index register halves for the undocumented
// DD/FD opcodes that operate on them directly.
func (r *Registers) IXH() uint8 { return uint8(r.IX >> 8) }
func (r *Registers) IXL() uint8 { return uint8(r.IX) }
func (r *Registers) IYH() uint8 { return uint8(r.IY >> 8) }
func (r *Registers) IYL() uint8 { return uint8(r.IY) }

func (r *Registers) SetIXH(v uint8) { r.IX = uint16(v)<<8 | (r.IX & 0xFF) }
func (r *Registers) SetIXL(v uint8) { r.IX = (r.IX &^ 0xFF) | uint16(v) }
func (r *Registers) SetIYH(v uint8) { r.IY = uint16(v)<<8 | (r.IY & 0xFF) }
func (r *Registers) SetIYL(v uint8) { r.IY = (r.IY &^ 0xFF) | uint16(v) }

// exAF swaps AF with the shadow AF' (EX AF,AF').
func (r *Registers) exAF() {
	r.A, r.A_ = r.A_, r.A
	r.F, r.F_ = r.F_, r.F
}

// exx swaps BC/DE/HL with their shadow counterparts (EXX).
func (r *Registers) exx() {
	r.B, r.B_ = r.B_, r.B
	r.C, r.C_ = r.C_, r.C
	r.D, r.D_ = r.D_, r.D
	r.E, r.E_ = r.E_, r.E
	r.H, r.H_ = r.H_, r.H
	r.L, r.L_ = r.L_, r.L
}
