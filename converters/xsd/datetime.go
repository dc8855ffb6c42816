// Package xsd holds text converters for the XML Schema simple types that need
// more than strconv: dates, durations and binary content.
package xsd

import (
	"strings"
	"time"

	"github.com/Station-Manager/xmladapter/converters"
	"github.com/Station-Manager/errors"
)

// dateTimeLayouts are tried in order. The last one is the compact
// YYYYMMDD form some producers emit for xs:date.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02Z07:00",
	"2006-01-02",
	"20060102",
}

// TextToDateTimeConverter parses xs:dateTime and xs:date text into a time.Time.
// Values without a zone are read as UTC.
func TextToDateTimeConverter(src any) (any, error) {
	const op errors.Op = "converters.xsd.TextToDateTimeConverter"
	srcVal, err := converters.CheckToken(op, src)
	if err != nil {
		return time.Time{}, errors.New(op).Err(err)
	}

	for _, layout := range dateTimeLayouts {
		if retVal, perr := time.Parse(layout, srcVal); perr == nil {
			return retVal, nil
		}
	}
	return time.Time{}, errors.New(op).Msg(converters.ErrMsgBadTimeFormat)
}

// DateTimeToTextConverter formats a time.Time as xs:dateTime.
func DateTimeToTextConverter(src any) (any, error) {
	const op errors.Op = "converters.xsd.DateTimeToTextConverter"
	srcVal, ok := src.(time.Time)
	if !ok {
		return nil, errors.New(op).Errorf("Given parameter not a time.Time, got %T", src)
	}
	return srcVal.Format(time.RFC3339Nano), nil
}

// TextToDurationConverter parses xs:duration text. Year and month designators
// are rejected because they have no fixed length. Go duration strings
// ("1h30m") are accepted as a fallback.
func TextToDurationConverter(src any) (any, error) {
	const op errors.Op = "converters.xsd.TextToDurationConverter"
	srcVal, err := converters.CheckToken(op, src)
	if err != nil {
		return time.Duration(0), errors.New(op).Err(err)
	}

	if d, ok := parseISODuration(srcVal); ok {
		return d, nil
	}
	d, err := time.ParseDuration(srcVal)
	if err != nil {
		return time.Duration(0), errors.New(op).Err(err).Msg(converters.ErrMsgBadDuration)
	}
	return d, nil
}

// DurationToTextConverter formats a time.Duration as xs:duration.
func DurationToTextConverter(src any) (any, error) {
	const op errors.Op = "converters.xsd.DurationToTextConverter"
	srcVal, ok := src.(time.Duration)
	if !ok {
		return nil, errors.New(op).Errorf("Given parameter not a time.Duration, got %T", src)
	}
	return formatISODuration(srcVal), nil
}

func parseISODuration(s string) (time.Duration, bool) {
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	if !strings.HasPrefix(s, "P") || len(s) < 2 {
		return 0, false
	}
	s = s[1:]

	var total time.Duration
	inTime := false
	seen := false
	for len(s) > 0 {
		if s[0] == 'T' {
			if inTime || len(s) == 1 {
				return 0, false
			}
			inTime = true
			s = s[1:]
			continue
		}
		i := 0
		for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '.') {
			i++
		}
		if i == 0 || i == len(s) {
			return 0, false
		}
		num, unit := s[:i], s[i]
		s = s[i+1:]

		var scale time.Duration
		switch {
		case unit == 'D' && !inTime:
			scale = 24 * time.Hour
		case unit == 'H' && inTime:
			scale = time.Hour
		case unit == 'M' && inTime:
			scale = time.Minute
		case unit == 'S' && inTime:
			scale = time.Second
		default:
			return 0, false
		}
		part, err := time.ParseDuration(num + "s")
		if err != nil {
			return 0, false
		}
		total += time.Duration(float64(part) / float64(time.Second) * float64(scale))
		seen = true
	}
	if !seen {
		return 0, false
	}
	if neg {
		total = -total
	}
	return total, true
}

func formatISODuration(d time.Duration) string {
	if d == 0 {
		return "PT0S"
	}
	var b strings.Builder
	if d < 0 {
		b.WriteByte('-')
		d = -d
	}
	b.WriteString("P")
	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	if days > 0 {
		b.WriteString(itoa(int64(days)))
		b.WriteByte('D')
	}
	if d == 0 {
		return b.String()
	}
	b.WriteByte('T')
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute
	if hours > 0 {
		b.WriteString(itoa(int64(hours)))
		b.WriteByte('H')
	}
	if minutes > 0 {
		b.WriteString(itoa(int64(minutes)))
		b.WriteByte('M')
	}
	if d > 0 {
		b.WriteString(trimFraction(d.Seconds()))
		b.WriteByte('S')
	}
	return b.String()
}
