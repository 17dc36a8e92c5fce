package symtab

import (
	"errors"

	"github.com/ezrec/rv32i/isa"
	"github.com/ezrec/rv32i/translate"
)

var f = translate.From

var (
	ErrCapacity           = errors.New(f("table full"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrLabelNotFound      = errors.New(f("label not found"))
	ErrRegisterMissing    = errors.New(f("register missing"))
	ErrRegisterUnexpected = errors.New(f("register not used by format"))
	ErrDataSize           = errors.New(f("data size must be 1 or 4"))
	ErrAddressOrder       = errors.New(f("address before previous entry"))
	ErrIndexInvalid       = errors.New(f("symbol index invalid"))
	ErrFormatInvalid      = isa.ErrFormatInvalid
)

// ErrLabelMissing names a label that is not in the table.
type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

func (el ErrLabelMissing) Is(target error) bool {
	return target == ErrLabelNotFound
}

// ErrTableFull reports which table reached its limit.
type ErrTableFull struct {
	Table string
	Limit int
}

func (err ErrTableFull) Error() string {
	return f("%v table full at %v entries", err.Table, err.Limit)
}

func (err ErrTableFull) Is(target error) bool {
	return target == ErrCapacity
}
