package common

import (
	"github.com/Station-Manager/errors"
	"github.com/Station-Manager/xmladapter/converters"
	"github.com/aarondl/null/v8"
)

// TextToNullBoolConverter converts xs:boolean text to a valid null.Bool.
func TextToNullBoolConverter(src any) (any, error) {
	const op errors.Op = "converters.common.TextToNullBoolConverter"
	v, err := converters.TextToBoolConverter(src)
	if err != nil {
		return null.Bool{}, errors.New(op).Err(err)
	}
	return null.BoolFrom(v.(bool)), nil
}

// NullBoolToTextConverter converts a null.Bool to xs:boolean text.
func NullBoolToTextConverter(src any) (any, error) {
	const op errors.Op = "converters.common.NullBoolToTextConverter"

	if nullBool, ok := src.(null.Bool); ok {
		if !nullBool.Valid {
			return nil, nil
		}
		return converters.BoolToTextConverter(nullBool.Bool)
	}

	if b, ok := src.(bool); ok {
		return converters.BoolToTextConverter(b)
	}

	return nil, errors.New(op).Errorf("Given parameter not a bool or null.Bool, got %T", src)
}
