package common

import (
	"github.com/Station-Manager/errors"
	"github.com/Station-Manager/xmladapter/converters"
	"github.com/google/uuid"
)

// TextToUUIDConverter parses guid text.
func TextToUUIDConverter(src any) (any, error) {
	const op errors.Op = "converters.common.TextToUUIDConverter"
	srcVal, err := converters.CheckToken(op, src)
	if err != nil {
		return uuid.Nil, errors.New(op).Err(err)
	}
	retVal, err := uuid.Parse(srcVal)
	if err != nil {
		return uuid.Nil, errors.New(op).Err(err).Msg(converters.ErrMsgBadUUID)
	}
	return retVal, nil
}

// UUIDToTextConverter formats a uuid.UUID in its canonical 36 character form.
func UUIDToTextConverter(src any) (any, error) {
	const op errors.Op = "converters.common.UUIDToTextConverter"
	srcVal, ok := src.(uuid.UUID)
	if !ok {
		return nil, errors.New(op).Errorf("Given parameter not a uuid.UUID, got %T", src)
	}
	return srcVal.String(), nil
}
