package isa

import (
	"fmt"
)

const (
	REGISTER_COUNT = 32 // Number of integer registers.
	REGISTER_FP    = 8  // fp is an alias of s0.
)

// Register is an integer register index, x0 to x31.
type Register uint8

// abiNames are the ABI mnemonics of x0 to x31, in index order.
var abiNames = [REGISTER_COUNT]string{
	"zero", "ra", "sp", "gp", "tp",
	"t0", "t1", "t2", "s0", "s1",
	"a0", "a1", "a2", "a3", "a4", "a5", "a6", "a7",
	"s2", "s3", "s4", "s5", "s6", "s7", "s8", "s9",
	"s10", "s11", "t3", "t4", "t5", "t6",
}

// registerMap maps every accepted register spelling to its index.
var registerMap = map[string]Register{
	"fp": REGISTER_FP,
}

func init() {
	for n, name := range abiNames {
		registerMap[name] = Register(n)
		registerMap[fmt.Sprintf("x%d", n)] = Register(n)
	}
}

// RegisterIndex resolves an ABI name, fp, or x0-x31 to a register index.
func RegisterIndex(name string) (reg Register, err error) {
	reg, ok := registerMap[name]
	if !ok {
		err = ErrRegister(name)
	}
	return
}

// ABI returns the ABI mnemonic of the register.
func (reg Register) ABI() string {
	if int(reg) >= REGISTER_COUNT {
		return reg.String()
	}
	return abiNames[reg]
}

func (reg Register) String() string {
	return fmt.Sprintf("x%d", uint8(reg))
}
