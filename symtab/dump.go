package symtab

import (
	"fmt"
	"io"
	"strings"

	"github.com/ezrec/rv32i/isa"
)

// Dump writes a human-readable listing of the labels and symbols to w.
func (tab *Table) Dump(w io.Writer) (err error) {
	var out strings.Builder

	fmt.Fprintf(&out, "\n=== LABEL TABLE ===\n")
	fmt.Fprintf(&out, "%-15s %-10s\n", "Label", "Address")
	fmt.Fprintf(&out, "%s\n", strings.Repeat("-", 26))
	for _, label := range tab.labels {
		fmt.Fprintf(&out, "%-15s 0x%08x\n", label.Name, label.Address)
	}

	fmt.Fprintf(&out, "\n=== SYMBOL TABLE ===\n")
	fmt.Fprintf(&out, "%-10s %-10s %-6s %-8s %-6s %-6s %-6s %-6s %-8s %-21s\n",
		"Address", "Name", "Format", "Opcode", "rd", "rs1", "rs2", "funct3", "funct7", "Immediate")
	fmt.Fprintf(&out, "%s\n", strings.Repeat("-", 98))
	for _, sym := range tab.symbols {
		if sym.Format == isa.FORMAT_DATA {
			fmt.Fprintf(&out, "0x%08x %-10s %-6v %-8s %-6s %-6s %-6s %-6s %-8s %d (size: %d)\n",
				sym.Address, sym.Name, sym.Format,
				isa.ABSENT, isa.ABSENT, isa.ABSENT, isa.ABSENT, isa.ABSENT, isa.ABSENT,
				sym.Value, sym.Size)
			continue
		}
		fmt.Fprintf(&out, "0x%08x %-10s %-6v %-8v %-6v %-6v %-6v %-6v %-8v %v\n",
			sym.Address, sym.Name, sym.Format, sym.Opcode,
			sym.Rd, sym.Rs1, sym.Rs2, sym.Funct3, sym.Funct7, sym.Immediate)
	}

	_, err = io.WriteString(w, out.String())
	return
}
