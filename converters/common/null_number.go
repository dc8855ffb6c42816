package common

import (
	"strconv"

	"github.com/Station-Manager/errors"
	"github.com/Station-Manager/xmladapter/converters"
	"github.com/aarondl/null/v8"
)

// TextToNullIntConverter converts xs:int text to a valid null.Int.
func TextToNullIntConverter(src any) (any, error) {
	const op errors.Op = "converters.common.TextToNullIntConverter"
	v, err := converters.TextToIntConverter(strconv.IntSize)(src)
	if err != nil {
		return null.Int{}, errors.New(op).Err(err)
	}
	return null.IntFrom(int(v.(int64))), nil
}

// NullIntToTextConverter converts a null.Int to xs:int text.
func NullIntToTextConverter(src any) (any, error) {
	const op errors.Op = "converters.common.NullIntToTextConverter"
	nullInt, ok := src.(null.Int)
	if !ok {
		return nil, errors.New(op).Errorf("Given parameter not a null.Int, got %T", src)
	}
	if !nullInt.Valid {
		return nil, nil
	}
	return converters.IntToTextConverter(nullInt.Int)
}

// TextToNullInt64Converter converts xs:long text to a valid null.Int64.
func TextToNullInt64Converter(src any) (any, error) {
	const op errors.Op = "converters.common.TextToNullInt64Converter"
	v, err := converters.TextToIntConverter(64)(src)
	if err != nil {
		return null.Int64{}, errors.New(op).Err(err)
	}
	return null.Int64From(v.(int64)), nil
}

// NullInt64ToTextConverter converts a null.Int64 to xs:long text.
func NullInt64ToTextConverter(src any) (any, error) {
	const op errors.Op = "converters.common.NullInt64ToTextConverter"
	nullInt, ok := src.(null.Int64)
	if !ok {
		return nil, errors.New(op).Errorf("Given parameter not a null.Int64, got %T", src)
	}
	if !nullInt.Valid {
		return nil, nil
	}
	return converters.IntToTextConverter(nullInt.Int64)
}

// TextToNullFloat64Converter converts xs:double text to a valid null.Float64.
func TextToNullFloat64Converter(src any) (any, error) {
	const op errors.Op = "converters.common.TextToNullFloat64Converter"
	v, err := converters.TextToFloatConverter(64)(src)
	if err != nil {
		return null.Float64{}, errors.New(op).Err(err)
	}
	return null.Float64From(v.(float64)), nil
}

// NullFloat64ToTextConverter converts a null.Float64 to xs:double text.
func NullFloat64ToTextConverter(src any) (any, error) {
	const op errors.Op = "converters.common.NullFloat64ToTextConverter"
	nullFloat, ok := src.(null.Float64)
	if !ok {
		return nil, errors.New(op).Errorf("Given parameter not a null.Float64, got %T", src)
	}
	if !nullFloat.Valid {
		return nil, nil
	}
	return converters.FloatToTextConverter(64)(nullFloat.Float64)
}
