package converters

const (
	ErrMsgNotText       = "Given parameter is not XML text."
	ErrMsgBadBool       = "Bad boolean, expected true, false, 1 or 0"
	ErrMsgBadNumber     = "Bad number format"
	ErrMsgBadTimeFormat = "Bad time format, expected xs:dateTime, xs:date or YYYYMMDD"
	ErrMsgBadDuration   = "Bad duration format, expected xs:duration (PnDTnHnMnS) or a Go duration"
	ErrMsgBadBase64     = "Bad base64Binary content"
	ErrMsgBadJSON       = "Element text is not valid JSON"
	ErrMsgBadUUID       = "Bad guid format"
)
