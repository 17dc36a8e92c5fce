package isa

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterIndex(t *testing.T) {
	assert := assert.New(t)

	for n, name := range abiNames {
		abi, err := RegisterIndex(name)
		assert.NoError(err)
		numeric, err := RegisterIndex(fmt.Sprintf("x%d", n))
		assert.NoError(err)
		assert.Equal(Register(n), abi, name)
		assert.Equal(abi, numeric, name)
		assert.Equal(name, abi.ABI())
	}

	for _, name := range []string{"s0", "fp", "x8"} {
		reg, err := RegisterIndex(name)
		assert.NoError(err)
		assert.Equal(Register(8), reg, name)
	}
}

func TestRegisterIndex_Unknown(t *testing.T) {
	assert := assert.New(t)

	for _, name := range []string{"", "x", "x32", "x-1", "x08", "X1", "r1", "s12", "a8", "zero ", "pc"} {
		_, err := RegisterIndex(name)
		assert.ErrorIs(err, ErrRegisterUnknown, name)
		assert.Equal(ErrRegister(name), err)
	}
}

func TestRegister_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("x31", Register(31).String())
	assert.Equal("t6", Register(31).ABI())
	assert.Equal("x40", Register(40).ABI())
}

func FuzzRegisterIndex(f *testing.F) {
	for _, name := range []string{"zero", "fp", "x0", "x31", "x32", "t7"} {
		f.Add(name)
	}

	f.Fuzz(func(t *testing.T, name string) {
		assert := assert.New(t)

		reg, err := RegisterIndex(name)
		if err != nil {
			assert.ErrorIs(err, ErrRegisterUnknown)
			return
		}

		assert.Less(int(reg), REGISTER_COUNT)
		field, err := EncodeRegister(int(reg))
		assert.NoError(err)
		assert.Equal(uint32(reg), field.Uint32())
	})
}
