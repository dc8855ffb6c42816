package xmladapter

import (
	"fmt"
	"reflect"
	"time"

	"github.com/Station-Manager/xmladapter/converters"
	"github.com/Station-Manager/xmladapter/converters/common"
	"github.com/Station-Manager/xmladapter/converters/xsd"
	"github.com/aarondl/null/v8"
	boilertypes "github.com/aarondl/sqlboiler/v4/types"
	"github.com/google/uuid"
)

func scalar(fromText, toText converters.ConverterFunc, names ...string) converters.Scalar {
	return converters.Scalar{Names: names, FromText: fromText, ToText: toText}
}

// builtinScalars returns the converters every Adapter starts with.
func builtinScalars() map[reflect.Type]converters.Scalar {
	return map[reflect.Type]converters.Scalar{
		reflect.TypeOf(""):         scalar(converters.TextToStringConverter, converters.StringToTextConverter, "string", "normalizedString", "token"),
		reflect.TypeOf(false):      scalar(converters.TextToBoolConverter, converters.BoolToTextConverter, "boolean"),
		reflect.TypeOf(int(0)):     scalar(converters.TextToIntConverter(strconvIntSize), converters.IntToTextConverter, "int", "integer", "long", "short", "byte"),
		reflect.TypeOf(int8(0)):    scalar(converters.TextToIntConverter(8), converters.IntToTextConverter, "byte"),
		reflect.TypeOf(int16(0)):   scalar(converters.TextToIntConverter(16), converters.IntToTextConverter, "short", "byte"),
		reflect.TypeOf(int32(0)):   scalar(converters.TextToIntConverter(32), converters.IntToTextConverter, "int", "short", "byte"),
		reflect.TypeOf(int64(0)):   scalar(converters.TextToIntConverter(64), converters.IntToTextConverter, "long", "integer", "int", "short", "byte"),
		reflect.TypeOf(uint(0)):    scalar(converters.TextToUintConverter(strconvIntSize), converters.UintToTextConverter, "unsignedLong", "unsignedInt", "unsignedShort", "unsignedByte"),
		reflect.TypeOf(uint8(0)):   scalar(converters.TextToUintConverter(8), converters.UintToTextConverter, "unsignedByte"),
		reflect.TypeOf(uint16(0)):  scalar(converters.TextToUintConverter(16), converters.UintToTextConverter, "unsignedShort", "unsignedByte"),
		reflect.TypeOf(uint32(0)):  scalar(converters.TextToUintConverter(32), converters.UintToTextConverter, "unsignedInt", "unsignedShort", "unsignedByte"),
		reflect.TypeOf(uint64(0)):  scalar(converters.TextToUintConverter(64), converters.UintToTextConverter, "unsignedLong", "unsignedInt", "unsignedShort", "unsignedByte"),
		reflect.TypeOf(float32(0)): scalar(converters.TextToFloatConverter(32), converters.FloatToTextConverter(32), "float"),
		reflect.TypeOf(float64(0)): scalar(converters.TextToFloatConverter(64), converters.FloatToTextConverter(64), "double", "decimal", "float"),

		reflect.TypeOf(time.Time{}):        scalar(xsd.TextToDateTimeConverter, xsd.DateTimeToTextConverter, "dateTime", "date"),
		reflect.TypeOf(time.Duration(0)):   scalar(xsd.TextToDurationConverter, xsd.DurationToTextConverter, "duration"),
		bytesType:                          scalar(xsd.TextToBase64Converter, xsd.Base64ToTextConverter, "base64Binary"),
		reflect.TypeOf(uuid.UUID{}):        scalar(common.TextToUUIDConverter, common.UUIDToTextConverter, "guid"),
		reflect.TypeOf(null.String{}):      scalar(common.TextToNullStringConverter, common.NullStringToTextConverter, "string", "normalizedString", "token"),
		reflect.TypeOf(null.Bool{}):        scalar(common.TextToNullBoolConverter, common.NullBoolToTextConverter, "boolean"),
		reflect.TypeOf(null.Int{}):         scalar(common.TextToNullIntConverter, common.NullIntToTextConverter, "int", "integer", "long", "short", "byte"),
		reflect.TypeOf(null.Int64{}):       scalar(common.TextToNullInt64Converter, common.NullInt64ToTextConverter, "long", "integer", "int", "short", "byte"),
		reflect.TypeOf(null.Float64{}):     scalar(common.TextToNullFloat64Converter, common.NullFloat64ToTextConverter, "double", "decimal", "float"),
		reflect.TypeOf(null.Time{}):        scalar(common.TextToNullTimeConverter, common.NullTimeToTextConverter, "dateTime", "date"),
		reflect.TypeOf(null.JSON{}):        scalar(common.TextToNullJSONConverter, common.NullJSONToTextConverter, "json"),
		reflect.TypeOf(boilertypes.JSON{}): scalar(common.TextToBoilerJSONConverter, common.BoilerJSONToTextConverter, "json"),
	}
}

const strconvIntSize = 32 << (^uint(0) >> 63)

// codec binds a scalar converter to the Go type of a property.
type codec struct {
	typ    reflect.Type
	scalar converters.Scalar
	via    reflect.Type // values are converted to via before ToText and from it after FromText; nil when typ is passed as is
}

// fromText converts text to a value of c.typ.
func (c codec) fromText(text string) (reflect.Value, error) {
	out, err := c.scalar.FromText(text)
	if err != nil {
		return reflect.Value{}, err
	}
	rv := reflect.ValueOf(out)
	if !rv.IsValid() {
		return reflect.Zero(c.typ), nil
	}
	if rv.Type() == c.typ {
		return rv, nil
	}
	if !rv.Type().ConvertibleTo(c.typ) {
		return reflect.Value{}, fmt.Errorf("converter returned type %s, expected %s", rv.Type(), c.typ)
	}
	return rv.Convert(c.typ), nil
}

// toText converts a value of c.typ to text. A nil string pointer means null.
func (c codec) toText(rv reflect.Value) (*string, error) {
	if c.via != nil && rv.Type() != c.via {
		rv = rv.Convert(c.via)
	}
	out, err := c.scalar.ToText(rv.Interface())
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, nil
	}
	s, ok := out.(string)
	if !ok {
		return nil, fmt.Errorf("converter returned %T, expected string", out)
	}
	return &s, nil
}
