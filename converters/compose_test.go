package converters

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeConverters(t *testing.T) {
	upper := ComposeConverters(MapString(strings.TrimSpace), MapString(strings.ToUpper))
	got, err := upper("  k1abc ")
	require.NoError(t, err)
	assert.Equal(t, "K1ABC", got)

	// non-strings pass through MapString untouched
	got, err = upper(42)
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	calls := 0
	counting := func(src any) (any, error) { calls++; return src, nil }

	failing := ComposeConverters(func(any) (any, error) { return nil, errors.New("boom") }, counting)
	_, err = failing("x")
	assert.EqualError(t, err, "boom")

	null := ComposeConverters(func(any) (any, error) { return nil, nil }, counting)
	got, err = null("x")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 0, calls)

	got, err = ComposeConverters()("same")
	require.NoError(t, err)
	assert.Equal(t, "same", got)
}
