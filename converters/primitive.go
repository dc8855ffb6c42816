package converters

import (
	"math"
	"strconv"

	"github.com/Station-Manager/errors"
)

// TextToStringConverter passes element text through unchanged.
func TextToStringConverter(src any) (any, error) {
	const op errors.Op = "converters.TextToStringConverter"
	srcVal, err := CheckText(op, src)
	if err != nil {
		return "", errors.New(op).Err(err)
	}
	return srcVal, nil
}

// StringToTextConverter is the inverse of TextToStringConverter.
func StringToTextConverter(src any) (any, error) {
	const op errors.Op = "converters.StringToTextConverter"
	srcVal, ok := src.(string)
	if !ok {
		return nil, errors.New(op).Errorf("Given parameter not a string, got %T", src)
	}
	return srcVal, nil
}

// TextToBoolConverter parses an xs:boolean.
func TextToBoolConverter(src any) (any, error) {
	const op errors.Op = "converters.TextToBoolConverter"
	srcVal, err := CheckToken(op, src)
	if err != nil {
		return false, errors.New(op).Err(err)
	}
	switch srcVal {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	}
	return false, errors.New(op).Msg(ErrMsgBadBool)
}

// BoolToTextConverter formats an xs:boolean.
func BoolToTextConverter(src any) (any, error) {
	const op errors.Op = "converters.BoolToTextConverter"
	srcVal, ok := src.(bool)
	if !ok {
		return nil, errors.New(op).Errorf("Given parameter not a bool, got %T", src)
	}
	return strconv.FormatBool(srcVal), nil
}

// TextToIntConverter returns a converter parsing a signed integer that must
// fit in bitSize bits. The result is always an int64.
func TextToIntConverter(bitSize int) ConverterFunc {
	return func(src any) (any, error) {
		const op errors.Op = "converters.TextToIntConverter"
		srcVal, err := CheckToken(op, src)
		if err != nil {
			return int64(0), errors.New(op).Err(err)
		}
		retVal, err := strconv.ParseInt(srcVal, 10, bitSize)
		if err != nil {
			return int64(0), errors.New(op).Err(err).Msg(ErrMsgBadNumber)
		}
		return retVal, nil
	}
}

// IntToTextConverter formats any signed integer.
func IntToTextConverter(src any) (any, error) {
	const op errors.Op = "converters.IntToTextConverter"
	srcVal, err := CheckInt64(op, src)
	if err != nil {
		return nil, errors.New(op).Err(err)
	}
	return strconv.FormatInt(srcVal, 10), nil
}

// TextToUintConverter returns a converter parsing an unsigned integer that
// must fit in bitSize bits. The result is always a uint64.
func TextToUintConverter(bitSize int) ConverterFunc {
	return func(src any) (any, error) {
		const op errors.Op = "converters.TextToUintConverter"
		srcVal, err := CheckToken(op, src)
		if err != nil {
			return uint64(0), errors.New(op).Err(err)
		}
		retVal, err := strconv.ParseUint(srcVal, 10, bitSize)
		if err != nil {
			return uint64(0), errors.New(op).Err(err).Msg(ErrMsgBadNumber)
		}
		return retVal, nil
	}
}

// UintToTextConverter formats any unsigned integer.
func UintToTextConverter(src any) (any, error) {
	const op errors.Op = "converters.UintToTextConverter"
	srcVal, err := CheckUint64(op, src)
	if err != nil {
		return nil, errors.New(op).Err(err)
	}
	return strconv.FormatUint(srcVal, 10), nil
}

// TextToFloatConverter returns a converter parsing xs:float (bitSize 32) or
// xs:double (bitSize 64), including INF, -INF and NaN. The result is always a
// float64.
func TextToFloatConverter(bitSize int) ConverterFunc {
	return func(src any) (any, error) {
		const op errors.Op = "converters.TextToFloatConverter"
		srcVal, err := CheckToken(op, src)
		if err != nil {
			return float64(0), errors.New(op).Err(err)
		}
		switch srcVal {
		case "INF", "+INF":
			return math.Inf(1), nil
		case "-INF":
			return math.Inf(-1), nil
		case "NaN":
			return math.NaN(), nil
		}
		retVal, err := strconv.ParseFloat(srcVal, bitSize)
		if err != nil {
			return float64(0), errors.New(op).Err(err).Msg(ErrMsgBadNumber)
		}
		return retVal, nil
	}
}

// FloatToTextConverter returns a converter formatting xs:float or xs:double
// with the shortest representation that round-trips at bitSize.
func FloatToTextConverter(bitSize int) ConverterFunc {
	return func(src any) (any, error) {
		const op errors.Op = "converters.FloatToTextConverter"
		srcVal, err := CheckFloat64(op, src)
		if err != nil {
			return nil, errors.New(op).Err(err)
		}
		switch {
		case math.IsInf(srcVal, 1):
			return "INF", nil
		case math.IsInf(srcVal, -1):
			return "-INF", nil
		case math.IsNaN(srcVal):
			return "NaN", nil
		}
		return strconv.FormatFloat(srcVal, 'g', -1, bitSize), nil
	}
}
