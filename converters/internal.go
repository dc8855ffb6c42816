package converters

import (
	"strings"

	"github.com/Station-Manager/errors"
)

// CheckText asserts that src is XML text. Empty text is valid.
func CheckText(op errors.Op, src any) (string, error) {
	srcVal, ok := src.(string)
	if !ok {
		return "", errors.New(op).Errorf("Given parameter not a string, got %T", src)
	}
	return srcVal, nil
}

// CheckToken asserts that src is XML text and returns it with surrounding
// whitespace collapsed, as XML Schema does for non-string simple types.
func CheckToken(op errors.Op, src any) (string, error) {
	srcVal, err := CheckText(op, src)
	if err != nil {
		return "", err
	}
	srcVal = strings.TrimSpace(srcVal)
	if srcVal == "" {
		return "", errors.New(op).Msg(ErrMsgNotText)
	}
	return srcVal, nil
}

func CheckFloat64(op errors.Op, src any) (float64, error) {
	switch v := src.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	}
	return 0, errors.New(op).Errorf("Given parameter not a float64, got %T", src)
}

func CheckInt64(op errors.Op, src any) (int64, error) {
	switch v := src.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int8:
		return int64(v), nil
	}
	return 0, errors.New(op).Errorf("Given parameter not a int64, got %T", src)
}

func CheckUint64(op errors.Op, src any) (uint64, error) {
	switch v := src.(type) {
	case uint64:
		return v, nil
	case uint:
		return uint64(v), nil
	case uint32:
		return uint64(v), nil
	case uint16:
		return uint64(v), nil
	case uint8:
		return uint64(v), nil
	}
	return 0, errors.New(op).Errorf("Given parameter not a uint64, got %T", src)
}
