package isa

import (
	"fmt"
)

// ABSENT is the printed form of a field that is not part of an encoding.
const ABSENT = "---"

// Field is a fixed-width bit field. The zero Field is absent, which is
// distinct from any present field, including one holding zero.
type Field struct {
	bits  uint32
	width uint8
}

// MakeField masks value into a field of width bits, 1 to 32.
func MakeField(value uint32, width int) Field {
	if width < 1 || width > 32 {
		panic(fmt.Sprintf("isa: field width %d", width))
	}

	mask := uint32(0xffffffff) >> (32 - width)
	return Field{bits: value & mask, width: uint8(width)}
}

// Present returns true if the field is part of the encoding.
func (field Field) Present() bool {
	return field.width != 0
}

// Width returns the field width in bits, 0 if absent.
func (field Field) Width() int {
	return int(field.width)
}

// Uint32 returns the raw field bits.
func (field Field) Uint32() uint32 {
	return field.bits
}

// Int32 returns the field bits sign-extended from the field width.
func (field Field) Int32() int32 {
	if field.width == 0 {
		return 0
	}
	shift := 32 - field.width
	return int32(field.bits<<shift) >> shift
}

// String returns the field as binary digits, or ABSENT.
func (field Field) String() string {
	if !field.Present() {
		return ABSENT
	}
	return fmt.Sprintf("%0*b", int(field.width), field.bits)
}

// EncodeRegister encodes a register index into a 5-bit field.
func EncodeRegister(index int) (field Field, err error) {
	if index < 0 || index >= REGISTER_COUNT {
		err = ErrRegisterRange
		return
	}

	field = MakeField(uint32(index), 5)
	return
}

// ImmediateWidth returns the immediate field width of a mnemonic in a
// format, 0 if the format has no immediate.
//
// B and J widths cover the logical offset including its implicit low zero.
func ImmediateWidth(format Format, mnemonic string) int {
	switch format {
	case FORMAT_I:
		if IsShift(mnemonic) {
			return 5
		}
		return 12
	case FORMAT_S:
		return 12
	case FORMAT_B:
		return 13
	case FORMAT_U:
		return 20
	case FORMAT_J:
		return 21
	}
	return 0
}

// EncodeImmediate validates an immediate and truncates its two's-complement
// form to the field width. R-format instructions return the absent field.
func EncodeImmediate(value int64, format Format, mnemonic string) (field Field, err error) {
	if format == FORMAT_R {
		return
	}

	err = ValidateImmediate(value, format, mnemonic)
	if err != nil {
		return
	}

	field = MakeField(uint32(value), ImmediateWidth(format, mnemonic))
	return
}
