package disasm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeBaseForms(t *testing.T) {
	cases := []struct {
		code []byte
		want string
		len  int
	}{
		{[]byte{0x00}, "NOP", 1},
		{[]byte{0x47}, "LD B,A", 1},
		{[]byte{0x3C}, "INC A", 1},
		{[]byte{0x76}, "HALT", 1},
		{[]byte{0xC3, 0x34, 0x12}, "JP 4660", 3},
		{[]byte{0xCD, 0x00, 0x10}, "CALL 4096", 3},
		{[]byte{0xC9}, "RET", 1},
	}
	for _, tc := range cases {
		got := Decode(tc.code)
		assert.Equal(t, tc.want, got.Mnemonic)
		assert.Equal(t, tc.len, got.Length)
	}
}

func TestDecodeCBForms(t *testing.T) {
	got := Decode([]byte{0xCB, 0x00})
	assert.Equal(t, "RLC B", got.Mnemonic)
	assert.Equal(t, 2, got.Length)

	got = Decode([]byte{0xCB, 0x46})
	assert.Equal(t, "BIT 0,(HL)", got.Mnemonic)
}

func TestDecodeIndexedForms(t *testing.T) {
	got := Decode([]byte{0xDD, 0x7E, 0x05})
	assert.Equal(t, "LD A,(IX+5)", got.Mnemonic)
	assert.Equal(t, 3, got.Length)

	got = Decode([]byte{0xFD, 0xCB, 0x02, 0x06})
	assert.Equal(t, "RLC (IY+2)", got.Mnemonic)
	assert.Equal(t, 4, got.Length)

	got = Decode([]byte{0xDD, 0xCB, 0x02, 0x00})
	assert.Equal(t, "RLC (IX+2),B", got.Mnemonic)
}

func TestDecodeEDForms(t *testing.T) {
	got := Decode([]byte{0xED, 0xB0})
	assert.Equal(t, "LDIR", got.Mnemonic)

	got = Decode([]byte{0xED, 0x44})
	assert.Equal(t, "NEG", got.Mnemonic)

	got = Decode([]byte{0xED, 0x5E})
	assert.Equal(t, "IM 2", got.Mnemonic)
}
