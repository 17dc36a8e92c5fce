// Copyright 2026, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package symtab holds the symbol and label tables of an assembly run, and
// generates machine code from the stored entries.
//
// A Table is not safe for concurrent mutation. Independent tables share no
// state, and may be used from different goroutines.
package symtab

import (
	"iter"
	"log"
	"slices"

	"github.com/ezrec/rv32i/diag"
	"github.com/ezrec/rv32i/isa"
)

const (
	SYMBOL_LIMIT = 3000 // Maximum instruction and data entries.
	LABEL_LIMIT  = 1000 // Maximum labels.
	WORD_SIZE    = 4    // Bytes per instruction.
)

// Symbol is an instruction or data entry. Only the fields meaningful to
// the format are present; the rest are absent isa.Field values.
type Symbol struct {
	Name    string     // Mnemonic, or data directive name.
	Format  isa.Format // Entry format.
	Address uint32     // Byte address.
	LineNo  int        // Source line.

	Opcode    isa.Field
	Rd        isa.Field
	Rs1       isa.Field
	Rs2       isa.Field
	Immediate isa.Field
	Funct3    isa.Field
	Funct7    isa.Field

	Value int32 // Data value.
	Size  int   // Data size in bytes, 1 or 4. Zero for instructions.
}

// Label binds a name to an address.
type Label struct {
	Name    string
	Address uint32
	LineNo  int
}

// Instruction is a tokenized instruction handed to AddInstruction.
// Register operands are names; an empty name is an operand not supplied.
type Instruction struct {
	Mnemonic  string
	Format    isa.Format
	Rd        string
	Rs1       string
	Rs2       string
	Immediate int64
	LineNo    int
}

// Data is a raw data value handed to AddData.
type Data struct {
	Name    string
	Value   int32
	Size    int
	Address uint32
	LineNo  int
}

// Table is a bounded, append-only set of symbols and labels.
// The zero Table is empty and ready to use.
type Table struct {
	Verbose bool      // If set, logs every table insertion.
	Sink    diag.Sink // Diagnostics sink. Nil discards.

	symbols []Symbol
	labels  []Label
}

// NewTable creates an empty table reporting to sink.
func NewTable(sink diag.Sink) (tab *Table) {
	tab = &Table{
		Sink: sink,
	}
	return
}

// registerUse marks which of rd, rs1 and rs2 a format encodes.
type registerUse struct {
	rd, rs1, rs2 bool
}

var formatRegisters = map[isa.Format]registerUse{
	isa.FORMAT_R: {rd: true, rs1: true, rs2: true},
	isa.FORMAT_I: {rd: true, rs1: true},
	isa.FORMAT_S: {rs1: true, rs2: true},
	isa.FORMAT_B: {rs1: true, rs2: true},
	isa.FORMAT_U: {rd: true},
	isa.FORMAT_J: {rd: true},
}

// report sends err to the sink, and returns it as a diag.Diagnostic.
func (tab *Table) report(err error, name string, lineno int) error {
	return diag.Report(tab.Sink, err, name, lineno)
}

// encodeRegister resolves an operand the format may or may not use.
func encodeRegister(name string, used bool) (field isa.Field, err error) {
	switch {
	case used && len(name) == 0:
		err = ErrRegisterMissing
		return
	case !used && len(name) != 0:
		err = ErrRegisterUnexpected
		return
	case !used:
		return
	}

	reg, err := isa.RegisterIndex(name)
	if err != nil {
		return
	}

	return isa.EncodeRegister(int(reg))
}

// nextAddress checks that address does not precede the last entry.
func (tab *Table) nextAddress(address uint32) (err error) {
	if len(tab.symbols) == 0 {
		return
	}
	if address < tab.symbols[len(tab.symbols)-1].Address {
		err = ErrAddressOrder
	}
	return
}

// AddInstruction encodes an instruction and appends it at Count() * 4,
// returning its index.
func (tab *Table) AddInstruction(inst Instruction) (index int, err error) {
	index = -1

	defer func() {
		if err != nil {
			err = tab.report(err, inst.Mnemonic, inst.LineNo)
		}
	}()

	if len(tab.symbols) >= SYMBOL_LIMIT {
		err = ErrTableFull{Table: "symbol", Limit: SYMBOL_LIMIT}
		return
	}

	use, ok := formatRegisters[inst.Format]
	if !ok {
		err = ErrFormatInvalid
		return
	}

	sym := Symbol{
		Name:    inst.Mnemonic,
		Format:  inst.Format,
		Address: uint32(len(tab.symbols) * WORD_SIZE),
		LineNo:  inst.LineNo,
	}

	opcode, err := isa.OpcodeFor(inst.Mnemonic, inst.Format)
	if err != nil {
		return
	}
	sym.Opcode = opcode.Field()

	sym.Funct3, err = isa.Funct3For(inst.Mnemonic)
	if err != nil {
		return
	}

	if inst.Format == isa.FORMAT_R || isa.IsShift(inst.Mnemonic) {
		sym.Funct7, err = isa.Funct7For(inst.Mnemonic)
		if err != nil {
			return
		}
	}

	sym.Rd, err = encodeRegister(inst.Rd, use.rd)
	if err != nil {
		return
	}
	sym.Rs1, err = encodeRegister(inst.Rs1, use.rs1)
	if err != nil {
		return
	}
	sym.Rs2, err = encodeRegister(inst.Rs2, use.rs2)
	if err != nil {
		return
	}

	sym.Immediate, err = isa.EncodeImmediate(inst.Immediate, inst.Format, inst.Mnemonic)
	if err != nil {
		return
	}

	err = tab.nextAddress(sym.Address)
	if err != nil {
		return
	}

	index = len(tab.symbols)
	tab.symbols = append(tab.symbols, sym)

	if tab.Verbose {
		log.Printf("symtab: %d: %#08x %v %v", index, sym.Address, sym.Format, sym.Name)
	}

	return
}

// AddData appends a data entry at the supplied address, returning its index.
func (tab *Table) AddData(data Data) (index int, err error) {
	index = -1

	defer func() {
		if err != nil {
			err = tab.report(err, data.Name, data.LineNo)
		}
	}()

	if len(tab.symbols) >= SYMBOL_LIMIT {
		err = ErrTableFull{Table: "symbol", Limit: SYMBOL_LIMIT}
		return
	}

	if data.Size != 1 && data.Size != 4 {
		err = ErrDataSize
		return
	}

	err = tab.nextAddress(data.Address)
	if err != nil {
		return
	}

	index = len(tab.symbols)
	tab.symbols = append(tab.symbols, Symbol{
		Name:    data.Name,
		Format:  isa.FORMAT_DATA,
		Address: data.Address,
		LineNo:  data.LineNo,
		Value:   data.Value,
		Size:    data.Size,
	})

	if tab.Verbose {
		log.Printf("symtab: %d: %#08x data %v %d/%d", index, data.Address, data.Name, data.Value, data.Size)
	}

	return
}

// AddLabel binds name to address. Label names are unique.
func (tab *Table) AddLabel(name string, address uint32, lineno int) (err error) {
	if len(tab.labels) >= LABEL_LIMIT {
		return tab.report(ErrTableFull{Table: "label", Limit: LABEL_LIMIT}, name, lineno)
	}

	for _, label := range tab.labels {
		if label.Name == name {
			return tab.report(ErrLabelDuplicate, name, lineno)
		}
	}

	tab.labels = append(tab.labels, Label{Name: name, Address: address, LineNo: lineno})

	if tab.Verbose {
		log.Printf("symtab: label %v = %#08x", name, address)
	}

	return
}

// LookupLabel returns the address bound to name. A missing label is not
// reported to the sink; use ResolveLabel to report it against a line.
func (tab *Table) LookupLabel(name string) (address uint32, err error) {
	for _, label := range tab.labels {
		if label.Name == name {
			address = label.Address
			return
		}
	}

	err = ErrLabelMissing(name)
	return
}

// ResolveLabel returns the address bound to name, reporting a missing
// label as found on line lineno while using mnemonic.
func (tab *Table) ResolveLabel(name string, mnemonic string, lineno int) (address uint32, err error) {
	address, err = tab.LookupLabel(name)
	if err != nil {
		err = tab.report(err, mnemonic, lineno)
	}
	return
}

// Count returns the number of instruction and data entries.
func (tab *Table) Count() int {
	return len(tab.symbols)
}

// LabelCount returns the number of labels.
func (tab *Table) LabelCount() int {
	return len(tab.labels)
}

// Symbol returns the entry at index.
func (tab *Table) Symbol(index int) (sym Symbol, ok bool) {
	if index < 0 || index >= len(tab.symbols) {
		return
	}
	return tab.symbols[index], true
}

// Symbols iterates over the entries in insertion order.
func (tab *Table) Symbols() iter.Seq2[int, Symbol] {
	return slices.All(tab.symbols)
}

// Labels iterates over the labels in insertion order.
func (tab *Table) Labels() iter.Seq[Label] {
	return slices.Values(tab.labels)
}

// Reset empties both tables, leaving them as a fresh table's.
func (tab *Table) Reset() {
	tab.symbols = nil
	tab.labels = nil
}
