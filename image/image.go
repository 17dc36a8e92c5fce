// Package image lays assembled table entries out as a memory image.
package image

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"iter"

	"github.com/ezrec/rv32i/symtab"
	"github.com/ezrec/rv32i/translate"
)

var f = translate.From

// Image is a little endian memory image starting at address 0.
type Image struct {
	Bytes []byte
}

// Build assembles every entry of tab into an image. Gaps between entries
// are zero filled.
func Build(tab *symtab.Table) (img *Image, err error) {
	mem := &Image{}

	for index, sym := range tab.Symbols() {
		var word uint32
		word, err = tab.Assemble(index)
		if err != nil {
			return
		}

		size := symtab.WORD_SIZE
		if sym.Size != 0 {
			size = sym.Size
		}

		end := int(sym.Address) + size
		if end > len(mem.Bytes) {
			mem.Bytes = append(mem.Bytes, make([]byte, end-len(mem.Bytes))...)
		}

		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], word)
		copy(mem.Bytes[sym.Address:end], buf[:size])
	}

	img = mem
	return
}

// Words iterates over the image as 32-bit little endian words, by address.
// A trailing partial word is zero padded.
func (img *Image) Words() iter.Seq2[uint32, uint32] {
	return func(yield func(address uint32, word uint32) bool) {
		for n := 0; n < len(img.Bytes); n += symtab.WORD_SIZE {
			var buf [4]byte
			copy(buf[:], img.Bytes[n:])
			if !yield(uint32(n), binary.LittleEndian.Uint32(buf[:])) {
				return
			}
		}
	}
}

// WriteHex writes one word per line, as eight hex digits.
func (img *Image) WriteHex(w io.Writer) (err error) {
	out := bufio.NewWriter(w)
	for _, word := range img.Words() {
		_, err = fmt.Fprintf(out, "%08x\n", word)
		if err != nil {
			return
		}
	}
	err = out.Flush()
	return
}

// WriteBinary writes the raw image bytes.
func (img *Image) WriteBinary(w io.Writer) (err error) {
	_, err = w.Write(img.Bytes)
	return
}

// ErrOutputFormat is an unknown output format name.
type ErrOutputFormat string

func (err ErrOutputFormat) Error() string {
	return f("output format '%v' unknown", string(err))
}

// Write writes the image in the named format, "hex" or "bin".
func (img *Image) Write(w io.Writer, format string) (err error) {
	switch format {
	case "hex":
		err = img.WriteHex(w)
	case "bin":
		err = img.WriteBinary(w)
	default:
		err = ErrOutputFormat(format)
	}
	return
}
