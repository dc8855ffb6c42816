package xmladapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Simple source and destination structs to verify JSON round-trip conversion works.
type src struct {
	A string `json:"a"`
	B int    `json:"b"`
}

type dst struct {
	A string `json:"a"`
	B int    `json:"b"`
}

func Test_convert_roundtrip(t *testing.T) {
	in := src{A: "hello", B: 42}
	var out dst
	require.NoError(t, convert(in, &out))
	assert.Equal(t, dst{A: "hello", B: 42}, out)
}

func Test_convert_errors(t *testing.T) {
	var out dst
	err := convert(make(chan int), &out)
	assert.ErrorContains(t, err, "xmladapter: marshal failed")

	err = convert(map[string]any{"b": "not a number"}, &out)
	assert.ErrorContains(t, err, "xmladapter: unmarshal failed")
}
