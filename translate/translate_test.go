package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	SetLanguage()
	assert.Equal("line 12 'addi' bad", From("line %d '%v' %v", 12, "addi", "bad"))
	assert.Equal("0x00000013", From("0x%08x", uint32(0x13)))
}

func TestSetLanguage(t *testing.T) {
	assert := assert.New(t)

	SetLanguage("en-GB", "fr")
	assert.Equal("label main missing", From("label %v missing", "main"))

	SetLanguage()
	assert.Equal("label main missing", From("label %v missing", "main"))
}
