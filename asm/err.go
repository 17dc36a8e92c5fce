package asm

import (
	"errors"

	"github.com/ezrec/rv32i/translate"
)

var f = translate.From

var (
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrEquateLoop         = errors.New(f(".equ loop"))
	ErrLabelSyntax        = errors.New(f("label syntax"))
	ErrDirectiveInvalid   = errors.New(f("directive invalid"))
	ErrDirectiveSection   = errors.New(f("directive not allowed in section"))
	ErrAlignInvalid       = errors.New(f(".align invalid"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrInstructionSection = errors.New(f("instruction outside .text"))
	ErrOperandCount       = errors.New(f("operand count"))
	ErrOperandMemory      = errors.New(f("memory operand syntax"))
	ErrValueMissing       = errors.New(f("value missing"))
	ErrValueRange         = errors.New(f("value out of range"))
)

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number or label", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
