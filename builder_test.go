package xmladapter

import (
	"encoding/xml"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type callsign struct {
	XMLName xml.Name `adapter:"Station"`
	Call    string
	Power   int
}

type operator struct {
	Call string
}

func notEmpty(v any) error {
	if s, ok := v.(string); ok && s == "" {
		return errors.New("empty")
	}
	return nil
}

func TestBuilder_Build(t *testing.T) {
	a := NewBuilder().
		WithOptions(WithIndent(1)).
		AddConverter(false, yesNoScalar()).
		AddValidator("Call", notEmpty).
		AddValidatorFor(callsign{}, "Power", func(v any) error {
			if n, ok := v.(int); ok && n > 100 {
				return errors.New("too much power")
			}
			return nil
		}).
		AddDefaults(operator{}, Defaults{IsNullable: true}).
		Warm(callsign{}, &operator{}, 42, nil).
		Build()

	assert.Equal(t, 1, a.Options().Config.Indent)

	st := mustCreate[callsign](t, a, `<Station/>`)
	assert.ErrorContains(t, st.Set("Call", ""), "empty")
	assert.ErrorContains(t, st.Set("Power", 500), "too much power")
	require.NoError(t, st.Set("Power", 50))
	require.NoError(t, st.Set("Call", "K1ABC"))

	op := mustCreate[operator](t, a, `<operator/>`)
	assert.Error(t, op.Set("Call", ""))
	require.NoError(t, op.Set("Call", nil))
	assertXML(t, `<operator><Call xsi:nil="true"/></operator>`, op)

	v := mustCreate[allScalars](t, a, `<All><B>yes</B></All>`)
	got, err := v.Get("B")
	require.NoError(t, err)
	assert.Equal(t, true, got)
}

func TestValidators_ScopedTakesPrecedence(t *testing.T) {
	a := New()
	a.RegisterValidator("Call", func(v any) error { return errors.New("global") })
	a.RegisterValidatorFor(&callsign{}, "Call", func(v any) error {
		if !strings.ContainsAny(v.(string), "0123456789") {
			return errors.New("no digit")
		}
		return nil
	})

	st := mustCreate[callsign](t, a, `<Station/>`)
	require.NoError(t, st.Set("Call", "W1AW"))
	err := st.Set("Call", "WAW")
	assert.ErrorContains(t, err, "no digit")
	assert.ErrorContains(t, err, "Station.Call")

	op := mustCreate[operator](t, a, `<operator/>`)
	assert.ErrorContains(t, op.Set("Call", "W1AW"), "global")
	assertXML(t, `<operator/>`, op)
}

func TestValidators_ReceiveAssignedValue(t *testing.T) {
	a := New()
	var seen []any
	a.RegisterValidator("Power", func(v any) error {
		seen = append(seen, v)
		return nil
	})
	st := mustCreate[callsign](t, a, `<Station/>`)
	require.NoError(t, st.Set("Power", "12"))
	require.NoError(t, st.Set("Power", nil))
	assert.Equal(t, []any{"12"}, seen)
}

func TestValidators_RunOnStore(t *testing.T) {
	a := New()
	a.RegisterValidator("Call", notEmpty)
	a.RegisterValidator("Power", func(v any) error {
		if v.(int) < 0 {
			return errors.New("negative")
		}
		return nil
	})

	st := mustCreate[callsign](t, a, `<Station/>`)
	err := st.Store(callsign{Call: "G4XYZ", Power: -1})
	assert.ErrorContains(t, err, "negative")

	require.NoError(t, st.Store(&callsign{Call: "G4XYZ", Power: 5}))
	assertXML(t, `<Station><Call>G4XYZ</Call><Power>5</Power></Station>`, st)

	// zero fields are skipped unless asked for
	require.NoError(t, st.Store(operator{}))
	assertXML(t, `<Station><Call>G4XYZ</Call><Power>5</Power></Station>`, st)

	withZero := NewWithOptions(WithIncludeZeroValues(true))
	withZero.RegisterValidator("Call", notEmpty)
	st = mustCreate[callsign](t, withZero, `<Station><Call>X</Call></Station>`)
	assert.ErrorContains(t, st.Store(operator{}), "empty")
}

func TestView_StoreRejectsNonStructs(t *testing.T) {
	st := mustCreate[callsign](t, New(), `<Station/>`)
	assert.Error(t, st.Store(nil))
	assert.Error(t, st.Store(12))
	var p *operator
	assert.Error(t, st.Store(p))
}
