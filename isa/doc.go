// Package isa catalogs the RV32I base integer instruction set.
//
// The catalog maps each mnemonic to its instruction format, opcode, funct3
// and funct7 fields, resolves register names (ABI names, the fp alias, and
// the numeric x0-x31 form), and validates immediates against the range of
// each format. The codec turns resolved registers and validated immediates
// into fixed-width bit fields ready for machine code assembly.
package isa
