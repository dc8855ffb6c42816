package common

import (
	"strings"

	"github.com/Station-Manager/errors"
	"github.com/Station-Manager/xmladapter/converters"
	"github.com/aarondl/null/v8"
	boilertypes "github.com/aarondl/sqlboiler/v4/types"
	"github.com/goccy/go-json"
)

func checkJSON(op errors.Op, src any) ([]byte, error) {
	srcVal, err := converters.CheckToken(op, src)
	if err != nil {
		return nil, err
	}
	raw := []byte(strings.TrimSpace(srcVal))
	if !json.Valid(raw) {
		return nil, errors.New(op).Msg(converters.ErrMsgBadJSON)
	}
	return raw, nil
}

// TextToNullJSONConverter validates element text as JSON and wraps it in a
// valid null.JSON.
func TextToNullJSONConverter(src any) (any, error) {
	const op errors.Op = "converters.common.TextToNullJSONConverter"
	raw, err := checkJSON(op, src)
	if err != nil {
		return null.JSON{}, errors.New(op).Err(err)
	}
	return null.JSONFrom(raw), nil
}

// NullJSONToTextConverter writes the raw JSON of a null.JSON as element text.
func NullJSONToTextConverter(src any) (any, error) {
	const op errors.Op = "converters.common.NullJSONToTextConverter"
	nj, ok := src.(null.JSON)
	if !ok {
		return nil, errors.New(op).Errorf("Given parameter not a null.JSON, got %T", src)
	}
	if !nj.Valid {
		return nil, nil
	}
	if !json.Valid(nj.JSON) {
		return nil, errors.New(op).Msg(converters.ErrMsgBadJSON)
	}
	return string(nj.JSON), nil
}

// TextToBoilerJSONConverter validates element text as JSON and returns it as a
// sqlboiler types.JSON.
func TextToBoilerJSONConverter(src any) (any, error) {
	const op errors.Op = "converters.common.TextToBoilerJSONConverter"
	raw, err := checkJSON(op, src)
	if err != nil {
		return boilertypes.JSON(nil), errors.New(op).Err(err)
	}
	return boilertypes.JSON(raw), nil
}

// BoilerJSONToTextConverter writes a sqlboiler types.JSON as element text. An
// empty value is null.
func BoilerJSONToTextConverter(src any) (any, error) {
	const op errors.Op = "converters.common.BoilerJSONToTextConverter"
	bj, ok := src.(boilertypes.JSON)
	if !ok {
		return nil, errors.New(op).Errorf("Given parameter not a types.JSON, got %T", src)
	}
	if len(bj) == 0 {
		return nil, nil
	}
	if !json.Valid(bj) {
		return nil, errors.New(op).Msg(converters.ErrMsgBadJSON)
	}
	return string(bj), nil
}
