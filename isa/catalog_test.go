package isa

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("label", FORMAT_LABEL.String())
	assert.Equal("R", FORMAT_R.String())
	assert.Equal("J", FORMAT_J.String())
	assert.Equal("data", FORMAT_DATA.String())
	assert.Equal("Format(9)", Format(9).String())

	assert.False(FORMAT_LABEL.Instruction())
	assert.True(FORMAT_R.Instruction())
	assert.True(FORMAT_J.Instruction())
	assert.False(FORMAT_DATA.Instruction())
}

func TestOpcodeFor(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		mnemonic string
		format   Format
		opcode   Opcode
	}{
		{"add", FORMAT_R, 0b0110011},
		{"sra", FORMAT_R, 0b0110011},
		{"jalr", FORMAT_I, 0b1100111},
		{"lb", FORMAT_I, 0b0000011},
		{"lh", FORMAT_I, 0b0000011},
		{"lw", FORMAT_I, 0b0000011},
		{"lbu", FORMAT_I, 0b0000011},
		{"lhu", FORMAT_I, 0b0000011},
		{"addi", FORMAT_I, 0b0010011},
		{"slti", FORMAT_I, 0b0010011},
		{"srai", FORMAT_I, 0b0010011},
		{"ecall", FORMAT_I, 0b1110011},
		{"sw", FORMAT_S, 0b0100011},
		{"bgeu", FORMAT_B, 0b1100011},
		{"lui", FORMAT_U, 0b0110111},
		{"auipc", FORMAT_U, 0b0010111},
		{"jal", FORMAT_J, 0b1101111},
	}

	for _, entry := range table {
		op, err := OpcodeFor(entry.mnemonic, entry.format)
		assert.NoError(err, entry.mnemonic)
		assert.Equal(entry.opcode, op, entry.mnemonic)
	}
}

func TestOpcodeFor_Unknown(t *testing.T) {
	assert := assert.New(t)

	_, err := OpcodeFor("mul", FORMAT_R)
	assert.ErrorIs(err, ErrOpcodeLookup)
	assert.Equal(ErrOpcode{Mnemonic: "mul", Format: FORMAT_R}, err)

	// Known mnemonic, wrong format.
	_, err = OpcodeFor("addi", FORMAT_R)
	assert.ErrorIs(err, ErrOpcodeLookup)

	_, err = OpcodeFor("lui", FORMAT_J)
	assert.ErrorIs(err, ErrOpcodeLookup)

	_, err = OpcodeFor("add", FORMAT_DATA)
	assert.ErrorIs(err, ErrOpcodeLookup)
}

func TestFunct3For(t *testing.T) {
	assert := assert.New(t)

	table := map[string]string{
		"add": "000", "sub": "000", "sll": "001", "slt": "010", "sltu": "011",
		"xor": "100", "srl": "101", "sra": "101", "or": "110", "and": "111",
		"addi": "000", "slti": "010", "sltiu": "011", "xori": "100", "ori": "110",
		"andi": "111", "slli": "001", "srli": "101", "srai": "101",
		"lb": "000", "lh": "001", "lw": "010", "lbu": "100", "lhu": "101",
		"sb": "000", "sh": "001", "sw": "010",
		"beq": "000", "bne": "001", "blt": "100", "bge": "101", "bltu": "110", "bgeu": "111",
		"jalr": "000", "ecall": "000", "ebreak": "000",
	}

	for mnemonic, expected := range table {
		field, err := Funct3For(mnemonic)
		assert.NoError(err)
		assert.Equal(expected, field.String(), mnemonic)
	}

	for _, mnemonic := range []string{"lui", "auipc", "jal"} {
		field, err := Funct3For(mnemonic)
		assert.NoError(err)
		assert.False(field.Present(), mnemonic)
	}

	_, err := Funct3For("nop")
	assert.ErrorIs(err, ErrMnemonicUnknown)
}

func TestFunct7For(t *testing.T) {
	assert := assert.New(t)

	for mnemonic := range Mnemonics() {
		field, err := Funct7For(mnemonic)
		assert.NoError(err)
		assert.Equal(7, field.Width())
		switch mnemonic {
		case "sub", "sra", "srai":
			assert.Equal("0100000", field.String(), mnemonic)
		default:
			assert.Equal("0000000", field.String(), mnemonic)
		}
	}

	_, err := Funct7For("mret")
	assert.ErrorIs(err, ErrMnemonicUnknown)
}

func TestMnemonics(t *testing.T) {
	assert := assert.New(t)

	all := slices.Collect(Mnemonics())
	assert.Len(all, 39)
	assert.True(slices.IsSorted(all))
	assert.Contains(all, "ebreak")

	for _, mnemonic := range all {
		format, err := FormatOf(mnemonic)
		assert.NoError(err)
		assert.True(format.Instruction(), mnemonic)
	}

	_, err := FormatOf("li")
	assert.ErrorIs(err, ErrMnemonicUnknown)
}

func TestIsShift(t *testing.T) {
	assert := assert.New(t)

	assert.True(IsShift("slli"))
	assert.True(IsShift("srli"))
	assert.True(IsShift("srai"))
	assert.False(IsShift("sll"))
	assert.False(IsShift("addi"))
	assert.False(IsShift("bogus"))
}
