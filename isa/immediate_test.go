package isa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateImmediate(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		value    int64
		format   Format
		mnemonic string
		valid    bool
	}{
		{1 << 40, FORMAT_R, "add", true},
		{-1 << 40, FORMAT_R, "sub", true},

		{0, FORMAT_I, "slli", true},
		{31, FORMAT_I, "slli", true},
		{32, FORMAT_I, "srli", false},
		{-1, FORMAT_I, "srai", false},

		{-2048, FORMAT_I, "addi", true},
		{2047, FORMAT_I, "lw", true},
		{2048, FORMAT_I, "jalr", false},
		{-2049, FORMAT_I, "andi", false},
		{-2048, FORMAT_S, "sw", true},
		{2047, FORMAT_S, "sb", true},
		{2048, FORMAT_S, "sh", false},

		{4, FORMAT_B, "beq", true},
		{3, FORMAT_B, "beq", false},
		{-4096, FORMAT_B, "bne", true},
		{4094, FORMAT_B, "blt", true},
		{4096, FORMAT_B, "bge", false},
		{-4098, FORMAT_B, "bltu", false},

		{0, FORMAT_U, "lui", true},
		{1048575, FORMAT_U, "auipc", true},
		{1048576, FORMAT_U, "lui", false},
		{-1, FORMAT_U, "lui", false},

		{-1048576, FORMAT_J, "jal", true},
		{1048574, FORMAT_J, "jal", true},
		{1048575, FORMAT_J, "jal", false},
		{1048576, FORMAT_J, "jal", false},
		{-7, FORMAT_J, "jal", false},
	}

	for _, entry := range table {
		err := ValidateImmediate(entry.value, entry.format, entry.mnemonic)
		if entry.valid {
			assert.NoError(err, "%v %v", entry.mnemonic, entry.value)
		} else {
			assert.ErrorIs(err, ErrImmediateRange, "%v %v", entry.mnemonic, entry.value)
		}
	}
}

func TestValidateImmediate_Odd(t *testing.T) {
	assert := assert.New(t)

	err := ValidateImmediate(3, FORMAT_B, "beq")
	assert.Equal(ErrImmediate{Value: 3, Format: FORMAT_B, Mnemonic: "beq", Min: -4096, Max: 4094, Odd: true}, err)

	err = ValidateImmediate(5000, FORMAT_B, "beq")
	assert.Equal(ErrImmediate{Value: 5000, Format: FORMAT_B, Mnemonic: "beq", Min: -4096, Max: 4094}, err)
	assert.Contains(err.Error(), "beq")
}

func TestValidateImmediate_Format(t *testing.T) {
	assert := assert.New(t)

	assert.ErrorIs(ValidateImmediate(0, FORMAT_LABEL, "main"), ErrFormatInvalid)
	assert.ErrorIs(ValidateImmediate(0, FORMAT_DATA, ".word"), ErrFormatInvalid)
}
