package xmladapter

import (
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Location struct {
	Grid string `adapter:"grid,attr"`
	City string
}

type Contactable struct {
	Email string
}

type station struct {
	XMLName xml.Name `adapter:"Station"`
	Call    string
	*Location
	Contactable
}

func TestEmbedded_PropertiesAreFlattened(t *testing.T) {
	shape, err := New().ShapeOf(station{})
	require.NoError(t, err)

	names := make([]string, 0, len(shape.Properties()))
	for _, p := range shape.Properties() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Call", "Grid", "City", "Email"}, names)

	grid, ok := shape.Property("grid")
	require.True(t, ok)
	assert.True(t, grid.Attr)
	assert.Equal(t, "Station.Grid", grid.path())
}

func TestEmbedded_GetAndSet(t *testing.T) {
	v := mustCreate[station](t, New(), `<Station grid="FN42"><Call>K1ABC</Call><City>Boston</City></Station>`)
	grid, err := Value[string](v, "Grid")
	require.NoError(t, err)
	assert.Equal(t, "FN42", grid)

	require.NoError(t, v.Set("Email", "k1abc@example.com"))
	assertXML(t, `<Station grid="FN42"><Call>K1ABC</Call><City>Boston</City><Email>k1abc@example.com</Email></Station>`, v)
}

func TestEmbedded_StoreSkipsNilPointer(t *testing.T) {
	v := mustCreate[station](t, New(), `<Station/>`)
	require.NoError(t, v.Store(station{Call: "W1AW", Contactable: Contactable{Email: "w1aw@example.com"}}))
	assertXML(t, `<Station><Call>W1AW</Call><Email>w1aw@example.com</Email></Station>`, v)

	require.NoError(t, v.Store(&station{Location: &Location{Grid: "FN31", City: "Newington"}}))
	assertXML(t, `<Station grid="FN31"><Call>W1AW</Call><Email>w1aw@example.com</Email><City>Newington</City></Station>`, v)
}

func TestEmbedded_StoreFromOtherType(t *testing.T) {
	type flat struct {
		Call  string
		Grid  string
		Email string
		Extra string
	}
	v := mustCreate[station](t, New(), `<Station/>`)
	require.NoError(t, v.Store(flat{Call: "G4XYZ", Grid: "IO91", Extra: "ignored"}))
	assertXML(t, `<Station grid="IO91"><Call>G4XYZ</Call></Station>`, v)
}

func TestEmbedded_Decode(t *testing.T) {
	v := mustCreate[station](t, New(), `<Station grid="FN42"><Call>K1ABC</Call><Email>e</Email></Station>`)
	got, err := Decode[station](v)
	require.NoError(t, err)
	assert.Equal(t, "K1ABC", got.Call)
	assert.Equal(t, "e", got.Email)
	require.NotNil(t, got.Location)
	assert.Equal(t, "FN42", got.Grid)
	assert.Empty(t, got.City)
}
