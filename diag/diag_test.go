package diag

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errTest = errors.New("test fault")

func TestReport(t *testing.T) {
	assert := assert.New(t)

	c := &Collector{}
	err := Report(c, errTest, "addi", 7)
	assert.ErrorIs(err, errTest)
	assert.Equal(1, c.Len())
	assert.Equal(Diagnostic{LineNo: 7, Mnemonic: "addi", Err: errTest}, c.Diagnostics[0])
	assert.Equal("line 7 in 'addi': test fault", err.Error())

	c.Reset()
	assert.Equal(0, c.Len())
}

func TestReport_NilSink(t *testing.T) {
	assert := assert.New(t)

	err := Report(nil, errTest, "", 3)
	assert.ErrorIs(err, errTest)
	assert.Equal("line 3 in 'unknown': test fault", err.Error())

	err = Report(Discard, errTest, "jal", 4)
	assert.ErrorIs(err, errTest)
}

func TestLog(t *testing.T) {
	assert := assert.New(t)

	buf := &bytes.Buffer{}
	sink := &Log{Logger: log.New(buf, "", 0)}
	_ = Report(sink, errTest, "beq", 9)
	assert.Equal("error: line 9 in 'beq': test fault\n", buf.String())
}

func TestSinkFunc(t *testing.T) {
	assert := assert.New(t)

	var got []int
	sink := SinkFunc(func(d Diagnostic) { got = append(got, d.LineNo) })
	_ = Report(sink, errTest, "lw", 1)
	_ = Report(sink, errTest, "sw", 2)
	assert.Equal([]int{1, 2}, got)
}
