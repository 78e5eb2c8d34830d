package z80

import (
	"encoding/binary"
	"errors"
)

// cpuSerializeVersion is incremented whenever the binary layout changes.
const cpuSerializeVersion = 1

// cpuSerializeSize is the number of bytes produced by CPU.Serialize.
// Update this constant whenever the binary layout changes.
const cpuSerializeSize = 47

// SerializeSize returns the number of bytes needed for Serialize.
func (c *CPU) SerializeSize() int { return cpuSerializeSize }

// Serialize writes the full CPU state into buf, which must be at least
// SerializeSize() bytes. Returns an error if the buffer is too small.
// The bus and cycleBus references are not included.
func (c *CPU) Serialize(buf []byte) error {
	if len(buf) < cpuSerializeSize {
		return errors.New("z80: serialize buffer too small")
	}

	buf[0] = cpuSerializeVersion
	be := binary.BigEndian
	off := 1

	buf[off] = c.reg.A
	buf[off+1] = c.reg.F
	buf[off+2] = c.reg.B
	buf[off+3] = c.reg.C
	buf[off+4] = c.reg.D
	buf[off+5] = c.reg.E
	buf[off+6] = c.reg.H
	buf[off+7] = c.reg.L
	off += 8

	buf[off] = c.reg.A_
	buf[off+1] = c.reg.F_
	buf[off+2] = c.reg.B_
	buf[off+3] = c.reg.C_
	buf[off+4] = c.reg.D_
	buf[off+5] = c.reg.E_
	buf[off+6] = c.reg.H_
	buf[off+7] = c.reg.L_
	off += 8

	be.PutUint16(buf[off:], c.reg.IX)
	off += 2
	be.PutUint16(buf[off:], c.reg.IY)
	off += 2
	be.PutUint16(buf[off:], c.reg.SP)
	off += 2
	be.PutUint16(buf[off:], c.reg.PC)
	off += 2

	buf[off] = c.reg.I
	buf[off+1] = c.reg.R
	off += 2

	buf[off] = boolByte(c.reg.IFF1)
	buf[off+1] = boolByte(c.reg.IFF2)
	off += 2
	buf[off] = c.reg.IM
	off++

	be.PutUint16(buf[off:], c.reg.WZ)
	off += 2

	be.PutUint64(buf[off:], c.cycles)
	off += 8

	buf[off] = boolByte(c.halted)
	buf[off+1] = boolByte(c.eiPending)
	buf[off+2] = boolByte(c.intRequested)
	buf[off+3] = c.intData
	buf[off+4] = boolByte(c.nmiRequested)
	off += 5

	be.PutUint16(buf[off:], c.prevPC)
	return nil
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// Deserialize restores CPU state from buf, which must be at least
// SerializeSize() bytes. Returns an error if the buffer is too small or
// the version does not match. The bus and cycleBus fields are left
// unchanged.
func (c *CPU) Deserialize(buf []byte) error {
	if len(buf) < cpuSerializeSize {
		return errors.New("z80: deserialize buffer too small")
	}
	if buf[0] != cpuSerializeVersion {
		return errors.New("z80: unsupported serialize version")
	}

	be := binary.BigEndian
	off := 1

	c.reg.A = buf[off]
	c.reg.F = buf[off+1]
	c.reg.B = buf[off+2]
	c.reg.C = buf[off+3]
	c.reg.D = buf[off+4]
	c.reg.E = buf[off+5]
	c.reg.H = buf[off+6]
	c.reg.L = buf[off+7]
	off += 8

	c.reg.A_ = buf[off]
	c.reg.F_ = buf[off+1]
	c.reg.B_ = buf[off+2]
	c.reg.C_ = buf[off+3]
	c.reg.D_ = buf[off+4]
	c.reg.E_ = buf[off+5]
	c.reg.H_ = buf[off+6]
	c.reg.L_ = buf[off+7]
	off += 8

	c.reg.IX = be.Uint16(buf[off:])
	off += 2
	c.reg.IY = be.Uint16(buf[off:])
	off += 2
	c.reg.SP = be.Uint16(buf[off:])
	off += 2
	c.reg.PC = be.Uint16(buf[off:])
	off += 2

	c.reg.I = buf[off]
	c.reg.R = buf[off+1]
	off += 2

	c.reg.IFF1 = buf[off] != 0
	c.reg.IFF2 = buf[off+1] != 0
	off += 2
	c.reg.IM = buf[off]
	off++

	c.reg.WZ = be.Uint16(buf[off:])
	off += 2

	c.cycles = be.Uint64(buf[off:])
	off += 8

	c.halted = buf[off] != 0
	c.eiPending = buf[off+1] != 0
	c.intRequested = buf[off+2] != 0
	c.intData = buf[off+3]
	c.nmiRequested = buf[off+4] != 0
	off += 5

	c.prevPC = be.Uint16(buf[off:])
	return nil
}
