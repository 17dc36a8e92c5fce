package isa

import (
	"errors"

	"github.com/ezrec/rv32i/translate"
)

var f = translate.From

var (
	ErrMnemonicUnknown = errors.New(f("mnemonic unknown"))
	ErrOpcodeLookup    = errors.New(f("opcode lookup failed"))
	ErrRegisterUnknown = errors.New(f("register unknown"))
	ErrRegisterRange   = errors.New(f("register out of range"))
	ErrImmediateRange  = errors.New(f("immediate out of range"))
	ErrFormatInvalid   = errors.New(f("format invalid"))
)

// ErrOpcode reports a mnemonic with no opcode in the requested format.
type ErrOpcode struct {
	Mnemonic string
	Format   Format
}

func (err ErrOpcode) Error() string {
	return f("no %v-format opcode for '%v'", err.Format, err.Mnemonic)
}

func (err ErrOpcode) Is(target error) bool {
	return target == ErrOpcodeLookup
}

// ErrRegister reports a register name that does not resolve.
type ErrRegister string

func (err ErrRegister) Error() string {
	return f("'%v' is not a register", string(err))
}

func (err ErrRegister) Is(target error) bool {
	return target == ErrRegisterUnknown
}

// ErrImmediate reports an immediate outside the range of its format.
type ErrImmediate struct {
	Value    int64
	Format   Format
	Mnemonic string
	Min      int64
	Max      int64
	Odd      bool // Value is in range, but must be even.
}

func (err ErrImmediate) Error() string {
	if err.Odd {
		return f("immediate %v of '%v' must be even", err.Value, err.Mnemonic)
	}
	return f("immediate %v of '%v' not in [%v, %v]", err.Value, err.Mnemonic, err.Min, err.Max)
}

func (err ErrImmediate) Is(target error) bool {
	return target == ErrImmediateRange
}
