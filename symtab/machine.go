package symtab

import (
	"github.com/ezrec/rv32i/isa"
)

// required lists the fields each instruction format must carry.
func (sym *Symbol) required() (fields []isa.Field) {
	switch sym.Format {
	case isa.FORMAT_R:
		fields = []isa.Field{sym.Opcode, sym.Rd, sym.Funct3, sym.Rs1, sym.Rs2, sym.Funct7}
	case isa.FORMAT_I:
		fields = []isa.Field{sym.Opcode, sym.Rd, sym.Funct3, sym.Rs1, sym.Immediate}
	case isa.FORMAT_S, isa.FORMAT_B:
		fields = []isa.Field{sym.Opcode, sym.Funct3, sym.Rs1, sym.Rs2, sym.Immediate}
	case isa.FORMAT_U, isa.FORMAT_J:
		fields = []isa.Field{sym.Opcode, sym.Rd, sym.Immediate}
	}
	return
}

// bits extracts imm[hi:lo] from an immediate, placed at bit position at.
func bits(imm uint32, hi, lo, at uint) uint32 {
	width := hi - lo + 1
	return ((imm >> lo) & ((1 << width) - 1)) << at
}

// MachineCode returns the 32-bit word of an instruction or data entry.
func (sym *Symbol) MachineCode() (word uint32, err error) {
	if sym.Format == isa.FORMAT_DATA {
		word = uint32(sym.Value)
		return
	}

	fields := sym.required()
	if len(fields) == 0 {
		err = ErrFormatInvalid
		return
	}
	for _, field := range fields {
		if !field.Present() {
			err = ErrFormatInvalid
			return
		}
	}

	opcode := sym.Opcode.Uint32()
	rd := sym.Rd.Uint32() << 7
	funct3 := sym.Funct3.Uint32() << 12
	rs1 := sym.Rs1.Uint32() << 15
	rs2 := sym.Rs2.Uint32() << 20
	funct7 := sym.Funct7.Uint32() << 25
	imm := uint32(sym.Immediate.Int32())

	switch sym.Format {
	case isa.FORMAT_R:
		word = funct7 | rs2 | rs1 | funct3 | rd | opcode
	case isa.FORMAT_I:
		if sym.Funct7.Present() {
			// Shift immediates carry funct7 above the shift amount.
			word = funct7 | bits(imm, 4, 0, 20) | rs1 | funct3 | rd | opcode
		} else {
			word = bits(imm, 11, 0, 20) | rs1 | funct3 | rd | opcode
		}
	case isa.FORMAT_S:
		word = bits(imm, 11, 5, 25) | rs2 | rs1 | funct3 | bits(imm, 4, 0, 7) | opcode
	case isa.FORMAT_B:
		word = bits(imm, 12, 12, 31) | bits(imm, 10, 5, 25) | rs2 | rs1 | funct3 |
			bits(imm, 4, 1, 8) | bits(imm, 11, 11, 7) | opcode
	case isa.FORMAT_U:
		word = bits(imm, 19, 0, 12) | rd | opcode
	case isa.FORMAT_J:
		word = bits(imm, 20, 20, 31) | bits(imm, 10, 1, 21) | bits(imm, 11, 11, 20) |
			bits(imm, 19, 12, 12) | rd | opcode
	}

	return
}

// Assemble returns the machine word of the entry at index.
func (tab *Table) Assemble(index int) (word uint32, err error) {
	if index < 0 || index >= len(tab.symbols) {
		err = tab.report(ErrIndexInvalid, "", 0)
		return
	}

	sym := &tab.symbols[index]
	word, err = sym.MachineCode()
	if err != nil {
		err = tab.report(err, sym.Name, sym.LineNo)
	}

	return
}
