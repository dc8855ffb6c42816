package common

import (
	"time"

	"github.com/Station-Manager/errors"
	"github.com/Station-Manager/xmladapter/converters/xsd"
	"github.com/aarondl/null/v8"
)

// TextToNullTimeConverter converts xs:dateTime text to a valid null.Time.
func TextToNullTimeConverter(src any) (any, error) {
	const op errors.Op = "converters.common.TextToNullTimeConverter"
	v, err := xsd.TextToDateTimeConverter(src)
	if err != nil {
		return null.Time{}, errors.New(op).Err(err)
	}
	return null.TimeFrom(v.(time.Time)), nil
}

// NullTimeToTextConverter converts a null.Time to xs:dateTime text.
func NullTimeToTextConverter(src any) (any, error) {
	const op errors.Op = "converters.common.NullTimeToTextConverter"

	if nullTime, ok := src.(null.Time); ok {
		if !nullTime.Valid {
			return nil, nil
		}
		return xsd.DateTimeToTextConverter(nullTime.Time)
	}

	if s, ok := src.(time.Time); ok {
		return xsd.DateTimeToTextConverter(s)
	}

	return nil, errors.New(op).Errorf("Given parameter not a time.Time or null.Time, got %T", src)
}
