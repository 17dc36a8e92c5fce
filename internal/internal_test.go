package internal

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConcat2(t *testing.T) {
	assert := assert.New(t)

	a := map[string]int{"a": 1}
	b := map[string]int{"a": 2, "b": 3}

	merged := maps.Collect(Concat2(maps.All(a), maps.All(b)))
	assert.Equal(map[string]int{"a": 2, "b": 3}, merged)

	count := 0
	for range Concat2(maps.All(a), maps.All(b)) {
		count++
		break
	}
	assert.Equal(1, count)
}

func TestAlign(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(uint32(0), Align(0, 4))
	assert.Equal(uint32(4), Align(1, 4))
	assert.Equal(uint32(4), Align(4, 4))
	assert.Equal(uint32(7), Align(7, 1))
	assert.Equal(uint32(16), Align(9, 8))
}
