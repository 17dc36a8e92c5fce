// Copyright 2026, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package asm is a two-pass RV32I source front end.
//
// The first pass splits the source into statements, lays out the .text and
// .data sections, and binds labels. The second pass resolves operands and
// fills a symtab.Table, from which machine code is generated.
package asm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ezrec/rv32i/diag"
	"github.com/ezrec/rv32i/internal"
	"github.com/ezrec/rv32i/isa"
	"github.com/ezrec/rv32i/symtab"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":    "0",
	"XLEN":      "32",
	"WORD_SIZE": fmt.Sprintf("%d", symtab.WORD_SIZE),
}

// Section is an output section.
type Section int

const (
	SECTION_TEXT = Section(0)
	SECTION_DATA = Section(1)
)

func (sect Section) String() string {
	if sect == SECTION_DATA {
		return ".data"
	}
	return ".text"
}

// statement is a label-free source line laid out by the first pass.
type statement struct {
	LineNo  int
	Line    string
	Section Section
	Offset  uint32   // Offset within the section.
	Op      string   // Mnemonic or directive.
	Args    []string // Operands.
}

// pendingLabel is a label awaiting the final section layout.
type pendingLabel struct {
	Name    string
	LineNo  int
	Section Section
	Offset  uint32
}

// Program is the result of an assembly run.
type Program struct {
	Table    *symtab.Table // Assembled symbols and labels.
	TextSize uint32        // Bytes of .text, which starts at address 0.
	DataBase uint32        // Address of .data.
	DataSize uint32        // Bytes of .data.
}

// Assembler is a two-pass assembler for RV32I source text.
type Assembler struct {
	Verbose bool      // If set, verbosely logs the assembler actions.
	Sink    diag.Sink // Diagnostics sink. Nil discards.

	predefine map[string]string // Predefines
	Equate    map[string]string // Map of equates.

	table    *symtab.Table
	text     []statement
	data     []statement
	labels   []pendingLabel
	section  Section
	offset   [2]uint32
	dataBase uint32
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

var (
	reCharacter = regexp.MustCompile(`'\\?[^']'`)
	reLabel     = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.$]*$`)
)

// cleanLine replaces character literals by their values, and drops comments.
func cleanLine(text string) (line string) {
	line = reCharacter.ReplaceAllStringFunc(text, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] >= utf8.RuneSelf {
			// Only ASCII literals fit a byte; leave the rest to fail as numbers.
			return word
		}
		if str[0] == '\\' {
			switch str[1:] {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "t":
				str = "\t"
			case "0":
				str = "\x00"
			default:
				return word
			}
		}
		return fmt.Sprintf("%d", str[0])
	})

	if n := strings.IndexAny(line, "#;"); n >= 0 {
		line = line[:n]
	}

	line = strings.TrimSpace(line)
	return
}

// splitOperands splits operands on commas outside of parentheses.
func splitOperands(text string) (args []string) {
	depth := 0
	start := 0
	for n, c := range text {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(text[start:n]))
				start = n + 1
			}
		}
	}
	if last := strings.TrimSpace(text[start:]); len(last) > 0 || len(args) > 0 {
		args = append(args, last)
	}
	return
}

// reset prepares the assembler for a new run.
func (asm *Assembler) reset() {
	asm.table = symtab.NewTable(asm.Sink)
	asm.table.Verbose = asm.Verbose
	asm.text = asm.text[:0]
	asm.data = asm.data[:0]
	asm.labels = asm.labels[:0]
	asm.section = SECTION_TEXT
	asm.offset = [2]uint32{}
	asm.dataBase = 0
	asm.Equate = maps.Collect(internal.Concat2(maps.All(sysEquate), maps.All(asm.predefine)))
}

// Parse assembles an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var op string

	defer func() {
		if err == nil {
			return
		}
		var reported diag.Diagnostic
		if errors.As(err, &reported) {
			// The table has already reported this one.
			err = reported.Err
		} else {
			_ = diag.Report(asm.Sink, err, op, lineno)
		}
		err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
	}()

	asm.reset()

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1
		op = ""

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		line = cleanLine(text)
		op, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Data follows the text, word aligned.
	asm.dataBase = internal.Align(asm.offset[SECTION_TEXT], symtab.WORD_SIZE)

	lineno, line, op = 0, "", ""
	for _, label := range asm.labels {
		lineno = label.LineNo
		op = label.Name
		err = asm.table.AddLabel(label.Name, asm.address(label.Section, label.Offset), label.LineNo)
		if err != nil {
			return
		}
	}

	for _, stmt := range append(asm.text, asm.data...) {
		lineno, line, op = stmt.LineNo, stmt.Line, stmt.Op
		err = asm.encode(stmt)
		if err != nil {
			return
		}
	}

	prog = &Program{
		Table:    asm.table,
		TextSize: asm.offset[SECTION_TEXT],
		DataBase: asm.dataBase,
		DataSize: asm.offset[SECTION_DATA],
	}

	return
}

// address returns the absolute address of a section offset.
func (asm *Assembler) address(sect Section, offset uint32) uint32 {
	if sect == SECTION_DATA {
		return asm.dataBase + offset
	}
	return offset
}

// parseLine lays out a single cleaned line, returning its operation.
func (asm *Assembler) parseLine(line string, lineno int) (op string, err error) {
	asm.Equate["LINENO"] = fmt.Sprintf("%d", lineno)

	// Leading labels
	var names []string
	for {
		colon := strings.IndexByte(line, ':')
		if colon < 0 {
			break
		}
		name := strings.TrimSpace(line[:colon])
		if strings.ContainsAny(name, " \t(,") {
			// A colon further into the statement is not a label.
			break
		}
		if !reLabel.MatchString(name) {
			op = name
			err = ErrLabelSyntax
			return
		}
		names = append(names, name)
		line = strings.TrimSpace(line[colon+1:])
	}

	op, rest := line, ""
	if n := strings.IndexAny(line, " \t"); n >= 0 {
		op, rest = line[:n], line[n+1:]
	}
	op = strings.ToLower(op)
	args := splitOperands(strings.TrimSpace(rest))

	// Words are aligned before any label on their line is bound.
	if op == ".word" {
		asm.offset[asm.section] = internal.Align(asm.offset[asm.section], symtab.WORD_SIZE)
	}

	for _, name := range names {
		asm.labels = append(asm.labels, pendingLabel{
			Name:    name,
			LineNo:  lineno,
			Section: asm.section,
			Offset:  asm.offset[asm.section],
		})
	}

	if len(line) == 0 {
		return
	}

	stmt := statement{
		LineNo:  lineno,
		Line:    line,
		Section: asm.section,
		Op:      op,
		Args:    args,
	}

	if strings.HasPrefix(op, ".") {
		err = asm.parseDirective(stmt)
		return
	}

	if asm.section != SECTION_TEXT {
		err = ErrInstructionSection
		return
	}

	_, err = isa.FormatOf(op)
	if err != nil {
		err = ErrInstructionInvalid
		return
	}

	asm.emit(stmt, symtab.WORD_SIZE)
	return
}

// emit places a statement of size bytes at the current section offset.
func (asm *Assembler) emit(stmt statement, size uint32) {
	stmt.Offset = asm.offset[stmt.Section]
	asm.offset[stmt.Section] += size

	if asm.Verbose {
		log.Printf("%v: %v+%#x %v %v", stmt.LineNo, stmt.Section, stmt.Offset, stmt.Op, stmt.Args)
	}

	if stmt.Section == SECTION_DATA {
		asm.data = append(asm.data, stmt)
	} else {
		asm.text = append(asm.text, stmt)
	}
}

// parseDirective lays out an assembler directive.
func (asm *Assembler) parseDirective(stmt statement) (err error) {
	switch stmt.Op {
	case ".text":
		asm.section = SECTION_TEXT
	case ".data":
		asm.section = SECTION_DATA
	case ".equ":
		// .equ NAME VALUE, or .equ NAME, VALUE
		words := strings.Fields(strings.ReplaceAll(strings.Join(stmt.Args, " "), ",", " "))
		if len(words) != 2 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[0]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[0]] = words[1]
	case ".word":
		if len(stmt.Args) == 0 {
			err = ErrValueMissing
			return
		}
		for _, arg := range stmt.Args {
			word := stmt
			word.Args = []string{arg}
			asm.emit(word, 4)
		}
	case ".byte":
		if len(stmt.Args) == 0 {
			err = ErrValueMissing
			return
		}
		if asm.section != SECTION_DATA {
			err = ErrDirectiveSection
			return
		}
		for _, arg := range stmt.Args {
			byt := stmt
			byt.Args = []string{arg}
			asm.emit(byt, 1)
		}
	case ".align":
		if len(stmt.Args) != 1 {
			err = ErrAlignInvalid
			return
		}
		var shift int64
		shift, err = asm.valueOf(stmt.Args[0])
		if err != nil {
			return
		}
		if shift < 0 || shift > 12 {
			err = ErrAlignInvalid
			return
		}
		size := uint32(1) << shift
		if asm.section == SECTION_TEXT {
			if size > symtab.WORD_SIZE {
				err = ErrDirectiveSection
			}
			return
		}
		asm.offset[SECTION_DATA] = internal.Align(asm.offset[SECTION_DATA], size)
	default:
		err = ErrDirectiveInvalid
	}

	return
}

// encode adds a laid out statement to the table.
func (asm *Assembler) encode(stmt statement) (err error) {
	asm.Equate["LINENO"] = fmt.Sprintf("%d", stmt.LineNo)
	address := asm.address(stmt.Section, stmt.Offset)

	switch stmt.Op {
	case ".word", ".byte":
		size := 4
		lo, hi := int64(-1<<31), int64(1<<32-1)
		if stmt.Op == ".byte" {
			size = 1
			lo, hi = -1<<7, 1<<8-1
		}
		var value int64
		value, err = asm.immediate(stmt, stmt.Args[0], address, false)
		if err != nil {
			return
		}
		if value < lo || value > hi {
			err = ErrValueRange
			return
		}
		_, err = asm.table.AddData(symtab.Data{
			Name:    stmt.Op,
			Value:   int32(value),
			Size:    size,
			Address: address,
			LineNo:  stmt.LineNo,
		})
		return
	}

	inst, err := asm.operands(stmt, address)
	if err != nil {
		return
	}

	_, err = asm.table.AddInstruction(inst)
	return
}
