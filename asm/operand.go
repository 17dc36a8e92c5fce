package asm

import (
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/rv32i/isa"
	"github.com/ezrec/rv32i/symtab"
)

// EQUATE_DEPTH limits chains of equates referring to equates.
const EQUATE_DEPTH = 16

// resolve follows a word through the equate table.
func (asm *Assembler) resolve(word string) (out string, err error) {
	out = word
	for range EQUATE_DEPTH {
		equ, ok := asm.Equate[out]
		if !ok {
			return
		}
		out = equ
	}

	err = ErrEquateLoop
	return
}

// valueOf returns the value of a number, equate or $(...) expression.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	word, err = asm.resolve(word)
	if err != nil {
		return
	}

	if len(word) == 0 {
		err = ErrValueMissing
		return
	}

	if strings.HasPrefix(word, "$(") && strings.HasSuffix(word, ")") {
		return asm.parenEval(word[2 : len(word)-1])
	}

	value, err = strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	return
}

// parenEval does compile-time $(...) evaluations over equates and labels.
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		str, err = asm.resolve(str)
		if err != nil || strings.HasPrefix(str, "$(") {
			// Expressions are not nested, even through an alias.
			err = nil
			continue
		}
		var equ int64
		equ, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(equ)
	}
	if asm.table != nil {
		for label := range asm.table.Labels() {
			pred[label.Name] = starlark.MakeUint(uint(label.Address))
		}
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// immediate resolves an immediate operand of a statement at pc. A bare label
// is its address, or its offset from pc if relative.
func (asm *Assembler) immediate(stmt statement, word string, pc uint32, relative bool) (value int64, err error) {
	if len(word) == 0 {
		err = ErrValueMissing
		return
	}

	if reLabel.MatchString(word) {
		if _, equ := asm.Equate[word]; !equ {
			var address uint32
			address, err = asm.table.ResolveLabel(word, stmt.Op, stmt.LineNo)
			if err != nil {
				return
			}
			value = int64(address)
			if relative {
				value -= int64(pc)
			}
			return
		}
	}

	return asm.valueOf(word)
}

// register resolves a register operand through the equates.
func (asm *Assembler) register(word string) (reg string, err error) {
	if len(word) == 0 {
		err = ErrValueMissing
		return
	}
	return asm.resolve(word)
}

// memory splits an offset(register) operand.
func (asm *Assembler) memory(stmt statement, word string, pc uint32) (offset int64, reg string, err error) {
	open := strings.LastIndexByte(word, '(')
	if open < 0 || !strings.HasSuffix(word, ")") {
		err = ErrOperandMemory
		return
	}

	// $(expr) alone is an offset without a register.
	if open > 0 && word[open-1] == '$' {
		err = ErrOperandMemory
		return
	}

	reg, err = asm.register(strings.TrimSpace(word[open+1 : len(word)-1]))
	if err != nil {
		return
	}

	imm := strings.TrimSpace(word[:open])
	if len(imm) == 0 {
		return
	}

	offset, err = asm.immediate(stmt, imm, pc, false)
	return
}

// operands converts a statement into a table instruction.
func (asm *Assembler) operands(stmt statement, pc uint32) (inst symtab.Instruction, err error) {
	format, err := isa.FormatOf(stmt.Op)
	if err != nil {
		return
	}

	inst = symtab.Instruction{
		Mnemonic: stmt.Op,
		Format:   format,
		LineNo:   stmt.LineNo,
	}

	args := stmt.Args
	need := func(count int) bool {
		if len(args) != count {
			err = ErrOperandCount
			return false
		}
		return true
	}

	switch {
	case stmt.Op == "ecall" || stmt.Op == "ebreak":
		if !need(0) {
			return
		}
		inst.Rd, inst.Rs1 = "zero", "zero"
		if stmt.Op == "ebreak" {
			inst.Immediate = 1
		}
	case format == isa.FORMAT_R:
		if !need(3) {
			return
		}
		if inst.Rd, err = asm.register(args[0]); err != nil {
			return
		}
		if inst.Rs1, err = asm.register(args[1]); err != nil {
			return
		}
		inst.Rs2, err = asm.register(args[2])
	case format == isa.FORMAT_I:
		enc, _ := isa.Lookup(stmt.Op)
		if enc.Opcode == isa.OPCODE_LOAD || (enc.Opcode == isa.OPCODE_JALR && len(args) == 2) {
			if !need(2) {
				return
			}
			if inst.Rd, err = asm.register(args[0]); err != nil {
				return
			}
			inst.Immediate, inst.Rs1, err = asm.memory(stmt, args[1], pc)
			return
		}
		if !need(3) {
			return
		}
		if inst.Rd, err = asm.register(args[0]); err != nil {
			return
		}
		if inst.Rs1, err = asm.register(args[1]); err != nil {
			return
		}
		inst.Immediate, err = asm.immediate(stmt, args[2], pc, false)
	case format == isa.FORMAT_S:
		if !need(2) {
			return
		}
		if inst.Rs2, err = asm.register(args[0]); err != nil {
			return
		}
		inst.Immediate, inst.Rs1, err = asm.memory(stmt, args[1], pc)
	case format == isa.FORMAT_B:
		if !need(3) {
			return
		}
		if inst.Rs1, err = asm.register(args[0]); err != nil {
			return
		}
		if inst.Rs2, err = asm.register(args[1]); err != nil {
			return
		}
		inst.Immediate, err = asm.immediate(stmt, args[2], pc, true)
	case format == isa.FORMAT_U:
		if !need(2) {
			return
		}
		if inst.Rd, err = asm.register(args[0]); err != nil {
			return
		}
		inst.Immediate, err = asm.immediate(stmt, args[1], pc, false)
	case format == isa.FORMAT_J:
		if !need(2) {
			return
		}
		if inst.Rd, err = asm.register(args[0]); err != nil {
			return
		}
		inst.Immediate, err = asm.immediate(stmt, args[1], pc, true)
	}

	return
}
