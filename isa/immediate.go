package isa

// immediateRange is the inclusive range of an immediate, and whether it
// must be even.
type immediateRange struct {
	min  int64
	max  int64
	even bool
}

var (
	rangeShift  = immediateRange{0, 31, false}
	rangeSigned = immediateRange{-2048, 2047, false}
	rangeBranch = immediateRange{-4096, 4094, true}
	rangeUpper  = immediateRange{0, 1048575, false}
	rangeJump   = immediateRange{-1048576, 1048574, true}
)

// ValidateImmediate checks value against the immediate range of mnemonic in
// format. R-format immediates are unused and always valid.
func ValidateImmediate(value int64, format Format, mnemonic string) (err error) {
	var r immediateRange

	switch format {
	case FORMAT_R:
		return
	case FORMAT_I:
		if IsShift(mnemonic) {
			r = rangeShift
		} else {
			r = rangeSigned
		}
	case FORMAT_S:
		r = rangeSigned
	case FORMAT_B:
		r = rangeBranch
	case FORMAT_U:
		r = rangeUpper
	case FORMAT_J:
		r = rangeJump
	default:
		err = ErrFormatInvalid
		return
	}

	bad := ErrImmediate{
		Value:    value,
		Format:   format,
		Mnemonic: mnemonic,
		Min:      r.min,
		Max:      r.max,
	}

	if value < r.min || value > r.max {
		err = bad
		return
	}

	if r.even && value&1 != 0 {
		bad.Odd = true
		err = bad
		return
	}

	return
}
