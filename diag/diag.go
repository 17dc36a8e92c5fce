// Package diag carries assembler diagnostics to a single reporting sink.
package diag

import (
	"log"

	"github.com/ezrec/rv32i/translate"
)

var f = translate.From

// Diagnostic locates a recoverable fault in the assembly source.
type Diagnostic struct {
	LineNo   int    // Source line, 0 if unknown.
	Mnemonic string // Offending mnemonic or name, may be empty.
	Err      error
}

func (d Diagnostic) Error() string {
	mnemonic := d.Mnemonic
	if len(mnemonic) == 0 {
		mnemonic = f("unknown")
	}
	return f("line %d in '%v': %v", d.LineNo, mnemonic, d.Err)
}

func (d Diagnostic) Unwrap() error {
	return d.Err
}

// Sink receives diagnostics. Report must not terminate the process.
type Sink interface {
	Report(d Diagnostic)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(d Diagnostic)

func (fn SinkFunc) Report(d Diagnostic) {
	fn(d)
}

// Discard drops every diagnostic.
var Discard Sink = SinkFunc(func(Diagnostic) {})

// Log writes diagnostics to a logger, or to the standard logger if nil.
type Log struct {
	Logger *log.Logger
}

func (l *Log) Report(d Diagnostic) {
	msg := f("error: %v", d.Error())
	if l.Logger == nil {
		log.Print(msg)
		return
	}
	l.Logger.Print(msg)
}

// Collector records diagnostics in order of arrival.
type Collector struct {
	Diagnostics []Diagnostic
}

func (c *Collector) Report(d Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
}

// Len returns the number of recorded diagnostics.
func (c *Collector) Len() int {
	return len(c.Diagnostics)
}

// Reset forgets all recorded diagnostics.
func (c *Collector) Reset() {
	c.Diagnostics = c.Diagnostics[:0]
}

// Report sends a diagnostic for err to sink, and returns it as an error.
// A nil sink discards.
func Report(sink Sink, err error, mnemonic string, lineno int) error {
	d := Diagnostic{LineNo: lineno, Mnemonic: mnemonic, Err: err}
	if sink != nil {
		sink.Report(d)
	}
	return d
}
