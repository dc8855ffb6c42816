package converters

import (
	"testing"

	"github.com/Station-Manager/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckText(t *testing.T) {
	op := errors.Op("test.CheckText")

	tests := []struct {
		name    string
		input   interface{}
		want    string
		wantErr bool
	}{
		{
			name:  "valid string",
			input: "test string",
			want:  "test string",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:    "non-string (int)",
			input:   123,
			wantErr: true,
		},
		{
			name:    "non-string (nil)",
			input:   nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CheckText(op, tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckToken(t *testing.T) {
	op := errors.Op("test.CheckToken")

	got, err := CheckToken(op, "  42\n")
	require.NoError(t, err)
	assert.Equal(t, "42", got)

	_, err = CheckToken(op, "   ")
	assert.Error(t, err)

	_, err = CheckToken(op, 42)
	assert.Error(t, err)
}

func TestCheckInt64(t *testing.T) {
	op := errors.Op("test.CheckInt64")

	tests := []struct {
		name    string
		input   interface{}
		want    int64
		wantErr bool
	}{
		{name: "int64", input: int64(123), want: 123},
		{name: "int", input: 123, want: 123},
		{name: "int32", input: int32(-7), want: -7},
		{name: "int8", input: int8(5), want: 5},
		{name: "uint is rejected", input: uint(1), wantErr: true},
		{name: "string is rejected", input: "1", wantErr: true},
		{name: "nil is rejected", input: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CheckInt64(op, tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckUint64AndFloat64(t *testing.T) {
	op := errors.Op("test.CheckNumbers")

	u, err := CheckUint64(op, uint16(9))
	require.NoError(t, err)
	assert.Equal(t, uint64(9), u)
	_, err = CheckUint64(op, -1)
	assert.Error(t, err)

	f, err := CheckFloat64(op, float32(1.5))
	require.NoError(t, err)
	assert.Equal(t, 1.5, f)
	_, err = CheckFloat64(op, 1)
	assert.Error(t, err)
}
