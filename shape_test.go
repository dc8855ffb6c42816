package xmladapter

import (
	"encoding/xml"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Audit struct {
	CreatedBy string
}

type shapeEverything struct {
	XMLName  xml.Name `adapter:"Everything"`
	Audit             // embedded, flattened
	ID       string   `adapter:"id,attr" json:"id"`
	Note     *string  `adapter:"note,nullable"`
	Child    complexB
	Lines    []complexB `adapter:"Lines,item=Line"`
	Numbers  []int64
	External textMessage `adapter:",external"`
	Secret   string      `adapter:"-"`
	Ignored  string      `adapter:"ignore"`
	hidden   string
}

type nullableShape struct {
	A string
	B int
}

func (nullableShape) XMLDefaults() Defaults { return Defaults{IsNullable: true} }

func TestShape_Classification(t *testing.T) {
	a := New()
	shape, err := a.ShapeOf(&shapeEverything{})
	require.NoError(t, err)
	assert.Equal(t, "Everything", shape.Name())
	assert.Equal(t, reflect.TypeOf(shapeEverything{}), shape.Type())

	names := make([]string, 0, len(shape.Properties()))
	for _, p := range shape.Properties() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"CreatedBy", "ID", "Note", "Child", "Lines", "Numbers", "External"}, names)

	tests := []struct {
		name     string
		xmlName  string
		kind     Kind
		attr     bool
		nullable bool
	}{
		{"CreatedBy", "CreatedBy", KindScalar, false, false},
		{"ID", "id", KindScalar, true, false},
		{"Note", "note", KindScalar, false, true},
		{"Child", "Child", KindComplex, false, false},
		{"Lines", "Lines", KindCollection, false, false},
		{"Numbers", "Numbers", KindCollection, false, false},
		{"External", "External", KindExternal, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := shape.Property(tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.xmlName, p.XMLName)
			assert.Equal(t, tt.kind, p.Kind)
			assert.Equal(t, tt.attr, p.Attr)
			assert.Equal(t, tt.nullable, p.Nullable)

			byXML, ok := shape.Property(tt.xmlName)
			require.True(t, ok)
			assert.Same(t, p, byXML)
		})
	}

	id, _ := shape.Property("ID")
	assert.Equal(t, "id", id.JSONName)

	lines, _ := shape.Property("Lines")
	assert.Equal(t, KindComplex, lines.ItemKind)
	assert.Equal(t, "Line", lines.ItemName)

	numbers, _ := shape.Property("Numbers")
	assert.Equal(t, KindScalar, numbers.ItemKind)
	assert.Equal(t, "long", numbers.ItemName)

	for _, name := range []string{"Secret", "Ignored", "hidden", "XMLName"} {
		_, ok := shape.Property(name)
		assert.False(t, ok, name)
	}
}

func TestShape_IsCached(t *testing.T) {
	a := New()
	first, err := a.ShapeOf(shapeEverything{})
	require.NoError(t, err)
	second, err := a.ShapeOf(reflect.TypeOf(&shapeEverything{}))
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestShape_Defaults(t *testing.T) {
	a := New()
	shape, err := a.ShapeOf(nullableShape{})
	require.NoError(t, err)
	assert.True(t, shape.Defaults().IsNullable)
	for _, p := range shape.Properties() {
		assert.True(t, p.Nullable, p.Name)
	}

	a.RegisterDefaults(nullableShape{}, Defaults{})
	shape, err = a.ShapeOf(nullableShape{})
	require.NoError(t, err)
	assert.False(t, shape.Defaults().IsNullable)

	a = NewWithOptions(WithNullable(true))
	shape, err = a.ShapeOf(complexB{})
	require.NoError(t, err)
	p, _ := shape.Property("B")
	assert.True(t, p.Nullable)
}

func TestShape_Errors(t *testing.T) {
	type duplicate struct {
		A string `adapter:"x"`
		B string `adapter:"x"`
	}
	type unsupported struct {
		M map[string]int
	}
	type nested struct {
		N [][]int
	}
	type complexAttr struct {
		C complexB `adapter:"C,attr"`
	}
	tests := []struct {
		name   string
		sample any
	}{
		{"not a struct", 12},
		{"duplicate names", duplicate{}},
		{"unsupported type", unsupported{}},
		{"nested collections", nested{}},
		{"complex attribute", complexAttr{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().ShapeOf(tt.sample)
			assert.Error(t, err)
		})
	}

	_, err := New().ShapeOf(nil)
	assert.Error(t, err)
}

func TestShape_RecursiveShapes(t *testing.T) {
	type tree struct {
		Name     string
		Children []*tree `adapter:"Children,item=Node"`
	}
	a := New()
	v := mustCreate[tree](t, a, `<tree><Name>root</Name><Children><Node><Name>leaf</Name></Node></Children></tree>`)
	children := mustList(t, v, "Children")
	require.Equal(t, 1, children.Len())
	item, err := children.At(0)
	require.NoError(t, err)
	name, err := Value[string](item.(*View), "Name")
	require.NoError(t, err)
	assert.Equal(t, "leaf", name)
}

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag  string
		want tagOptions
	}{
		{"", tagOptions{}},
		{"-", tagOptions{ignore: true}},
		{"ignore", tagOptions{ignore: true}},
		{"name", tagOptions{name: "name"}},
		{"name,attr", tagOptions{name: "name", attr: true}},
		{",nullable,external", tagOptions{nullable: true, external: true}},
		{"Lines, item=Line", tagOptions{name: "Lines", item: "Line"}},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			assert.Equal(t, tt.want, parseTag(tt.tag))
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "scalar", KindScalar.String())
	assert.Equal(t, "complex", KindComplex.String())
	assert.Equal(t, "collection", KindCollection.String())
	assert.Equal(t, "external", KindExternal.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}
