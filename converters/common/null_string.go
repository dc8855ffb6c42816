// Package common holds text converters for the nullable and identifier types
// shared across shapes: aarondl/null values, UUIDs and raw JSON.
package common

import (
	"github.com/Station-Manager/errors"
	"github.com/Station-Manager/xmladapter/converters"
	"github.com/aarondl/null/v8"
)

// TextToNullStringConverter converts element text to a valid null.String.
// Absence is handled by the caller, so text always yields a valid value.
func TextToNullStringConverter(src any) (any, error) {
	const op errors.Op = "converters.common.TextToNullStringConverter"
	srcVal, err := converters.CheckText(op, src)
	if err != nil {
		return null.String{}, errors.New(op).Err(err)
	}
	return null.StringFrom(srcVal), nil
}

// NullStringToTextConverter converts a null.String to element text. An invalid
// null.String is null.
func NullStringToTextConverter(src any) (any, error) {
	const op errors.Op = "converters.common.NullStringToTextConverter"

	if nullStr, ok := src.(null.String); ok {
		if !nullStr.Valid {
			return nil, nil
		}
		return nullStr.String, nil
	}

	// Fallback to plain string
	srcVal, err := converters.CheckText(op, src)
	if err != nil {
		return nil, errors.New(op).Err(err)
	}
	return srcVal, nil
}
