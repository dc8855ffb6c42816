package xsd

import (
	"encoding/base64"
	"strings"

	"github.com/Station-Manager/errors"
	"github.com/Station-Manager/xmladapter/converters"
)

// TextToBase64Converter decodes xs:base64Binary text. Whitespace inside the
// text is ignored.
func TextToBase64Converter(src any) (any, error) {
	const op errors.Op = "converters.xsd.TextToBase64Converter"
	srcVal, err := converters.CheckText(op, src)
	if err != nil {
		return []byte(nil), errors.New(op).Err(err)
	}
	srcVal = strings.Join(strings.Fields(srcVal), "")
	retVal, err := base64.StdEncoding.DecodeString(srcVal)
	if err != nil {
		return []byte(nil), errors.New(op).Err(err).Msg(converters.ErrMsgBadBase64)
	}
	return retVal, nil
}

// Base64ToTextConverter encodes a byte slice as xs:base64Binary. A nil slice is
// null.
func Base64ToTextConverter(src any) (any, error) {
	const op errors.Op = "converters.xsd.Base64ToTextConverter"
	srcVal, ok := src.([]byte)
	if !ok {
		return nil, errors.New(op).Errorf("Given parameter not a []byte, got %T", src)
	}
	if srcVal == nil {
		return nil, nil
	}
	return base64.StdEncoding.EncodeToString(srcVal), nil
}
