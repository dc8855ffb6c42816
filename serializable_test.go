package xmladapter

import (
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type qualifiedText struct {
	Text string `xml:"urn:q Text"`
}

type counter struct {
	N int
}

type noted struct {
	XMLName xml.Name      `adapter:"Noted"`
	Stamp   stamp         // xml.Unmarshaler, detected without a tag
	Ptr     *stamp        `adapter:"ptr"`
	Msg     qualifiedText `adapter:",external"`
	Count   counter       `adapter:",external"`
}

func TestExternal_Detection(t *testing.T) {
	shape, err := New().ShapeOf(noted{})
	require.NoError(t, err)
	for _, name := range []string{"Stamp", "ptr", "Msg", "Count"} {
		p, ok := shape.Property(name)
		require.True(t, ok, name)
		assert.Equal(t, KindExternal, p.Kind, name)
	}
}

func TestExternal_SetAndGet(t *testing.T) {
	v := mustCreate[noted](t, New(), `<Noted/>`)
	require.NoError(t, v.Set("Stamp", stamp{Value: "a"}))
	require.NoError(t, v.Set("Ptr", &stamp{Value: "b"}))
	assertXML(t, `<Noted><Stamp v="a"/><ptr v="b"/></Noted>`, v)

	s, err := Value[stamp](v, "Stamp")
	require.NoError(t, err)
	assert.Equal(t, stamp{Value: "a"}, s)

	p, err := Value[*stamp](v, "Ptr")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "b", p.Value)

	// replacing keeps a single element in place
	require.NoError(t, v.Set("Stamp", stamp{Value: "c"}))
	assertXML(t, `<Noted><Stamp v="c"/><ptr v="b"/></Noted>`, v)

	require.NoError(t, v.Set("Stamp", nil))
	var none *stamp
	require.NoError(t, v.Set("Ptr", none))
	assertXML(t, `<Noted/>`, v)
}

func TestExternal_NamespacesInScope(t *testing.T) {
	v := mustCreate[noted](t, New(), `<Noted xmlns:q="urn:q"><Msg><q:Text>hi</q:Text></Msg></Noted>`)
	got, err := Value[qualifiedText](v, "Msg")
	require.NoError(t, err)
	assert.Equal(t, "hi", got.Text)

	require.NoError(t, v.Set("Msg", qualifiedText{Text: "there"}))
	reparsed := mustCreate[noted](t, New(), documentXML(t, v.Document()))
	got, err = Value[qualifiedText](reparsed, "Msg")
	require.NoError(t, err)
	assert.Equal(t, "there", got.Text)
}

func TestExternal_Errors(t *testing.T) {
	v := mustCreate[noted](t, New(), `<Noted><Count><N>many</N></Count></Noted>`)
	_, err := v.Get("Count")
	assert.ErrorIs(t, err, ErrConversion)

	err = v.Set("Stamp", counter{N: 1})
	assert.ErrorIs(t, err, ErrIncompatibleAssignment)
	assertXML(t, `<Noted><Count><N>many</N></Count></Noted>`, v)
}

func TestExternal_NilMarkedIsNil(t *testing.T) {
	v := mustCreate[noted](t, New(), `<Noted xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"><Stamp xsi:nil="true"/></Noted>`)
	got, err := v.Get("Stamp")
	require.NoError(t, err)
	assert.Nil(t, got)
}
