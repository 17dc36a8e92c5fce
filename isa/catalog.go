package isa

import (
	"fmt"
	"iter"
	"maps"
	"slices"
)

// Format is the instruction encoding of a symbol table entry.
type Format int

//go:generate go tool stringer -linecomment -type=Format
const (
	FORMAT_LABEL = Format(0) // label
	FORMAT_R     = Format(1) // R
	FORMAT_I     = Format(2) // I
	FORMAT_S     = Format(3) // S
	FORMAT_B     = Format(4) // B
	FORMAT_U     = Format(5) // U
	FORMAT_J     = Format(6) // J
	FORMAT_DATA  = Format(7) // data
)

// Instruction returns true if the format is one of the six RV32I encodings.
func (format Format) Instruction() bool {
	return format >= FORMAT_R && format <= FORMAT_J
}

// Opcode is the 7-bit major opcode.
type Opcode uint8

const (
	OPCODE_LOAD   = Opcode(0b0000011)
	OPCODE_OP_IMM = Opcode(0b0010011)
	OPCODE_AUIPC  = Opcode(0b0010111)
	OPCODE_STORE  = Opcode(0b0100011)
	OPCODE_OP     = Opcode(0b0110011)
	OPCODE_LUI    = Opcode(0b0110111)
	OPCODE_BRANCH = Opcode(0b1100011)
	OPCODE_JALR   = Opcode(0b1100111)
	OPCODE_JAL    = Opcode(0b1101111)
	OPCODE_SYSTEM = Opcode(0b1110011)
)

const (
	FUNCT7_BASE = 0b0000000 // funct7 of most instructions.
	FUNCT7_ALT  = 0b0100000 // funct7 of sub, sra and srai.
)

// Field returns the opcode as a 7-bit field.
func (op Opcode) Field() Field {
	return MakeField(uint32(op), 7)
}

func (op Opcode) String() string {
	return fmt.Sprintf("%07b", uint8(op))
}

// Encoding describes the fixed fields of an instruction mnemonic.
type Encoding struct {
	Format Format
	Opcode Opcode
	Funct3 uint8
	Funct7 uint8
	Shift  bool // Immediate is a 5-bit shift amount.
}

// catalog holds every RV32I mnemonic.
var catalog = map[string]Encoding{
	// Register-register
	"add":  {FORMAT_R, OPCODE_OP, 0b000, FUNCT7_BASE, false},
	"sub":  {FORMAT_R, OPCODE_OP, 0b000, FUNCT7_ALT, false},
	"sll":  {FORMAT_R, OPCODE_OP, 0b001, FUNCT7_BASE, false},
	"slt":  {FORMAT_R, OPCODE_OP, 0b010, FUNCT7_BASE, false},
	"sltu": {FORMAT_R, OPCODE_OP, 0b011, FUNCT7_BASE, false},
	"xor":  {FORMAT_R, OPCODE_OP, 0b100, FUNCT7_BASE, false},
	"srl":  {FORMAT_R, OPCODE_OP, 0b101, FUNCT7_BASE, false},
	"sra":  {FORMAT_R, OPCODE_OP, 0b101, FUNCT7_ALT, false},
	"or":   {FORMAT_R, OPCODE_OP, 0b110, FUNCT7_BASE, false},
	"and":  {FORMAT_R, OPCODE_OP, 0b111, FUNCT7_BASE, false},

	// Register-immediate
	"addi":  {FORMAT_I, OPCODE_OP_IMM, 0b000, FUNCT7_BASE, false},
	"slti":  {FORMAT_I, OPCODE_OP_IMM, 0b010, FUNCT7_BASE, false},
	"sltiu": {FORMAT_I, OPCODE_OP_IMM, 0b011, FUNCT7_BASE, false},
	"xori":  {FORMAT_I, OPCODE_OP_IMM, 0b100, FUNCT7_BASE, false},
	"ori":   {FORMAT_I, OPCODE_OP_IMM, 0b110, FUNCT7_BASE, false},
	"andi":  {FORMAT_I, OPCODE_OP_IMM, 0b111, FUNCT7_BASE, false},
	"slli":  {FORMAT_I, OPCODE_OP_IMM, 0b001, FUNCT7_BASE, true},
	"srli":  {FORMAT_I, OPCODE_OP_IMM, 0b101, FUNCT7_BASE, true},
	"srai":  {FORMAT_I, OPCODE_OP_IMM, 0b101, FUNCT7_ALT, true},

	// Loads
	"lb":  {FORMAT_I, OPCODE_LOAD, 0b000, FUNCT7_BASE, false},
	"lh":  {FORMAT_I, OPCODE_LOAD, 0b001, FUNCT7_BASE, false},
	"lw":  {FORMAT_I, OPCODE_LOAD, 0b010, FUNCT7_BASE, false},
	"lbu": {FORMAT_I, OPCODE_LOAD, 0b100, FUNCT7_BASE, false},
	"lhu": {FORMAT_I, OPCODE_LOAD, 0b101, FUNCT7_BASE, false},

	// Jump and link register, system
	"jalr":   {FORMAT_I, OPCODE_JALR, 0b000, FUNCT7_BASE, false},
	"ecall":  {FORMAT_I, OPCODE_SYSTEM, 0b000, FUNCT7_BASE, false},
	"ebreak": {FORMAT_I, OPCODE_SYSTEM, 0b000, FUNCT7_BASE, false},

	// Stores
	"sb": {FORMAT_S, OPCODE_STORE, 0b000, FUNCT7_BASE, false},
	"sh": {FORMAT_S, OPCODE_STORE, 0b001, FUNCT7_BASE, false},
	"sw": {FORMAT_S, OPCODE_STORE, 0b010, FUNCT7_BASE, false},

	// Branches
	"beq":  {FORMAT_B, OPCODE_BRANCH, 0b000, FUNCT7_BASE, false},
	"bne":  {FORMAT_B, OPCODE_BRANCH, 0b001, FUNCT7_BASE, false},
	"blt":  {FORMAT_B, OPCODE_BRANCH, 0b100, FUNCT7_BASE, false},
	"bge":  {FORMAT_B, OPCODE_BRANCH, 0b101, FUNCT7_BASE, false},
	"bltu": {FORMAT_B, OPCODE_BRANCH, 0b110, FUNCT7_BASE, false},
	"bgeu": {FORMAT_B, OPCODE_BRANCH, 0b111, FUNCT7_BASE, false},

	// Upper immediates, jump and link
	"lui":   {FORMAT_U, OPCODE_LUI, 0, FUNCT7_BASE, false},
	"auipc": {FORMAT_U, OPCODE_AUIPC, 0, FUNCT7_BASE, false},
	"jal":   {FORMAT_J, OPCODE_JAL, 0, FUNCT7_BASE, false},
}

// opcodeFormat lists the formats each major opcode may be used with.
var opcodeFormat = map[Opcode]Format{
	OPCODE_LOAD:   FORMAT_I,
	OPCODE_OP_IMM: FORMAT_I,
	OPCODE_AUIPC:  FORMAT_U,
	OPCODE_STORE:  FORMAT_S,
	OPCODE_OP:     FORMAT_R,
	OPCODE_LUI:    FORMAT_U,
	OPCODE_BRANCH: FORMAT_B,
	OPCODE_JALR:   FORMAT_I,
	OPCODE_JAL:    FORMAT_J,
	OPCODE_SYSTEM: FORMAT_I,
}

func init() {
	for mnemonic, enc := range catalog {
		format, ok := opcodeFormat[enc.Opcode]
		switch {
		case !ok:
			panic(fmt.Sprintf("isa: %v: opcode %v not cataloged", mnemonic, enc.Opcode))
		case format != enc.Format:
			panic(fmt.Sprintf("isa: %v: opcode %v is not %v-format", mnemonic, enc.Opcode, enc.Format))
		case enc.Funct3 > 0b111:
			panic(fmt.Sprintf("isa: %v: funct3 %#b too wide", mnemonic, enc.Funct3))
		case enc.Funct7 > 0b1111111:
			panic(fmt.Sprintf("isa: %v: funct7 %#b too wide", mnemonic, enc.Funct7))
		case (enc.Format == FORMAT_U || enc.Format == FORMAT_J) && enc.Funct3 != 0:
			panic(fmt.Sprintf("isa: %v: %v-format has no funct3", mnemonic, enc.Format))
		case enc.Shift && enc.Opcode != OPCODE_OP_IMM:
			panic(fmt.Sprintf("isa: %v: shift without OP-IMM opcode", mnemonic))
		}
	}
}

// Lookup returns the encoding of a mnemonic.
func Lookup(mnemonic string) (enc Encoding, err error) {
	enc, ok := catalog[mnemonic]
	if !ok {
		err = ErrMnemonicUnknown
	}
	return
}

// Mnemonics returns every cataloged mnemonic in sorted order.
func Mnemonics() iter.Seq[string] {
	return slices.Values(slices.Sorted(maps.Keys(catalog)))
}

// FormatOf returns the instruction format of a mnemonic.
func FormatOf(mnemonic string) (format Format, err error) {
	enc, err := Lookup(mnemonic)
	if err != nil {
		return
	}
	format = enc.Format
	return
}

// IsShift returns true for the shift-immediate mnemonics.
func IsShift(mnemonic string) bool {
	return catalog[mnemonic].Shift
}

// OpcodeFor returns the opcode of a mnemonic in a given format.
// A mnemonic that is unknown, or not of that format, is an ErrOpcode.
func OpcodeFor(mnemonic string, format Format) (op Opcode, err error) {
	enc, ok := catalog[mnemonic]
	if !ok || enc.Format != format {
		err = ErrOpcode{Mnemonic: mnemonic, Format: format}
		return
	}

	op = enc.Opcode
	return
}

// Funct3For returns the funct3 field of a mnemonic.
// U and J format mnemonics have no funct3, and return the absent field.
func Funct3For(mnemonic string) (field Field, err error) {
	enc, err := Lookup(mnemonic)
	if err != nil {
		return
	}

	if enc.Format == FORMAT_U || enc.Format == FORMAT_J {
		return
	}

	field = MakeField(uint32(enc.Funct3), 3)
	return
}

// Funct7For returns the funct7 field of a mnemonic.
// Mnemonics without funct7 semantics return FUNCT7_BASE.
func Funct7For(mnemonic string) (field Field, err error) {
	enc, err := Lookup(mnemonic)
	if err != nil {
		return
	}

	field = MakeField(uint32(enc.Funct7), 7)
	return
}
