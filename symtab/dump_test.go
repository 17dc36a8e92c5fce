package symtab

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/rv32i/isa"
)

func TestTable_Dump(t *testing.T) {
	assert := assert.New(t)

	tab := &Table{}
	assert.NoError(tab.AddLabel("main", 0, 1))
	_, err := tab.AddInstruction(Instruction{Mnemonic: "lui", Format: isa.FORMAT_U, Rd: "a0", Immediate: 1})
	assert.NoError(err)
	_, err = tab.AddData(Data{Name: ".word", Value: 42, Size: 4, Address: 4})
	assert.NoError(err)

	buf := &bytes.Buffer{}
	assert.NoError(tab.Dump(buf))
	out := buf.String()

	assert.Contains(out, "=== LABEL TABLE ===")
	assert.Contains(out, "main            0x00000000")
	assert.Contains(out, "=== SYMBOL TABLE ===")

	lines := strings.Split(out, "\n")
	var lui, word string
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "0x00000000"):
			lui = line
		case strings.HasPrefix(line, "0x00000004"):
			word = line
		}
	}

	assert.Equal([]string{"0x00000000", "lui", "U", "0110111", "01010", "---", "---", "---", "---", "00000000000000000001"},
		strings.Fields(lui))
	assert.Equal([]string{"0x00000004", ".word", "data", "---", "---", "---", "---", "---", "---", "42", "(size:", "4)"},
		strings.Fields(word))
}

func TestTable_Dump_Empty(t *testing.T) {
	assert := assert.New(t)

	tab := &Table{}
	buf := &bytes.Buffer{}
	assert.NoError(tab.Dump(buf))
	assert.Contains(buf.String(), "=== SYMBOL TABLE ===")
	assert.NotContains(buf.String(), "0x")
}
