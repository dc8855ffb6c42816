package xmladapter

import (
	"encoding"
	"encoding/xml"
	"fmt"
	"reflect"
	"strings"

	"github.com/Station-Manager/errors"
	"github.com/Station-Manager/xmladapter/converters"
)

// Kind classifies how a property is stored in the document.
type Kind int

const (
	KindScalar     Kind = iota // text of an attribute or element
	KindComplex                // a child element viewed through another shape
	KindCollection             // a wrapper element holding one element per item
	KindExternal               // a child element handled by encoding/xml
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindComplex:
		return "complex"
	case KindCollection:
		return "collection"
	case KindExternal:
		return "external"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Defaults are shape-wide property behaviors.
type Defaults struct {
	IsNullable bool // a nil assignment writes the nil marker instead of removing the node
}

// DefaultsProvider is implemented by shapes that carry their own Defaults.
type DefaultsProvider interface {
	XMLDefaults() Defaults
}

// Property describes one named member of a shape.
type Property struct {
	Name     string       // Go field name
	XMLName  string       // local name of the attribute or element
	JSONName string       // json tag name, if any
	Kind     Kind         // how the property is stored
	Type     reflect.Type // declared field type
	Nullable bool
	Attr     bool // read and written as an attribute only

	ItemKind Kind         // collections only
	ItemType reflect.Type // collections only, declared element type
	ItemName string       // collections only, empty for complex items until the list resolves it

	owner      string
	index      []int
	valueType  reflect.Type // Type without its pointer
	codec      codec        // KindScalar
	itemValue  reflect.Type // ItemType without its pointer
	itemCodec  codec        // KindScalar items
	itemForced bool         // ItemName came from the tag
}

func (p *Property) path() string { return p.owner + "." + p.Name }

// Shape is the description of a struct type as seen through a view. Shapes
// are derived once per type and cached by the Adapter.
type Shape struct {
	typ        reflect.Type
	name       string
	defaults   Defaults
	properties []*Property
	byName     map[string]*Property
}

func (s *Shape) Name() string { return s.name }
func (s *Shape) Type() reflect.Type { return s.typ }
func (s *Shape) Defaults() Defaults { return s.defaults }
func (s *Shape) Properties() []*Property { return s.properties }

// Property looks up a property by Go field name or XML name.
func (s *Shape) Property(name string) (*Property, bool) {
	p, ok := s.byName[name]
	return p, ok
}

var (
	xmlNameType        = reflect.TypeOf(xml.Name{})
	xmlUnmarshalerType = reflect.TypeOf((*xml.Unmarshaler)(nil)).Elem()
	textUnmarshaler    = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
	textMarshaler      = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

type tagOptions struct {
	name     string
	ignore   bool
	attr     bool
	nullable bool
	external bool
	item     string
}

// parseTag reads `adapter:"name,attr,nullable,external,item=x"`.
func parseTag(tag string) tagOptions {
	var o tagOptions
	if tag == "ignore" || tag == "-" {
		o.ignore = true
		return o
	}
	parts := strings.Split(tag, ",")
	o.name = strings.TrimSpace(parts[0])
	for _, p := range parts[1:] {
		p = strings.TrimSpace(p)
		switch {
		case p == "attr":
			o.attr = true
		case p == "nullable":
			o.nullable = true
		case p == "external":
			o.external = true
		case strings.HasPrefix(p, "item="):
			o.item = strings.TrimPrefix(p, "item=")
		}
	}
	return o
}

func (a *Adapter) getOrBuildShape(typ reflect.Type) (*Shape, error) {
	if cached, ok := a.shapeCache.Load(typ); ok {
		return cached.(*Shape), nil
	}
	shape, err := a.buildShape(typ)
	if err != nil {
		return nil, err
	}
	actual, _ := a.shapeCache.LoadOrStore(typ, shape)
	return actual.(*Shape), nil
}

func (a *Adapter) buildShape(typ reflect.Type) (*Shape, error) {
	const op errors.Op = "xmladapter.Adapter.buildShape"
	if typ == nil || typ.Kind() != reflect.Struct {
		return nil, errors.New(op).Errorf("shape must be a struct type, got %v", typ)
	}
	shape := &Shape{typ: typ, name: typ.Name()}
	if shape.name == "" {
		shape.name = "Element"
	}
	if d, ok := a.registeredDefaults(typ); ok {
		shape.defaults = d
	} else if dp, ok := reflect.New(typ).Interface().(DefaultsProvider); ok {
		shape.defaults = dp.XMLDefaults()
	}

	fc := a.countFields(typ)
	shape.properties = make([]*Property, 0, fc)
	shape.byName = make(map[string]*Property, fc*2)
	if err := a.buildProperties(shape, typ, nil); err != nil {
		return nil, errors.New(op).Err(err)
	}

	seen := make(map[string]string, len(shape.properties))
	for _, p := range shape.properties {
		if other, dup := seen[p.XMLName]; dup {
			return nil, errors.New(op).Errorf("%s: fields %s and %s both map to %q", shape.name, other, p.Name, p.XMLName)
		}
		seen[p.XMLName] = p.Name
		shape.byName[p.XMLName] = p
	}
	for _, p := range shape.properties {
		shape.byName[p.Name] = p
	}
	return shape, nil
}

func (a *Adapter) countFields(typ reflect.Type) int {
	c := 0
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if f.Anonymous {
			ft := f.Type
			if ft.Kind() == reflect.Ptr {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				c += a.countFields(ft)
				continue
			}
		}
		if f.PkgPath != "" {
			continue
		}
		c++
	}
	return c
}

func (a *Adapter) buildProperties(shape *Shape, typ reflect.Type, prefix []int) error {
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		idx := append(append([]int(nil), prefix...), i)
		if f.Anonymous {
			ft := f.Type
			if ft.Kind() == reflect.Ptr {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				if err := a.buildProperties(shape, ft, idx); err != nil {
					return err
				}
				continue
			}
		}
		if f.PkgPath != "" {
			continue
		}
		tag := parseTag(f.Tag.Get("adapter"))
		if f.Name == "XMLName" && f.Type == xmlNameType {
			if tag.name != "" {
				shape.name = tag.name
			}
			continue
		}
		if tag.ignore {
			continue
		}
		p := &Property{
			Name:     f.Name,
			XMLName:  f.Name,
			JSONName: jsonName(f),
			Type:     f.Type,
			Attr:     tag.attr,
			Nullable: tag.nullable || shape.defaults.IsNullable || a.options.Config.Nullable,
			owner:    shape.name,
			index:    idx,
		}
		if tag.name != "" {
			p.XMLName = tag.name
		}
		if err := a.classify(p, tag); err != nil {
			return err
		}
		shape.properties = append(shape.properties, p)
	}
	return nil
}

func jsonName(f reflect.StructField) string {
	jt, ok := f.Tag.Lookup("json")
	if !ok {
		return ""
	}
	if j := strings.IndexByte(jt, ','); j >= 0 {
		jt = jt[:j]
	}
	if jt == "-" {
		return ""
	}
	return jt
}

// classify decides the property kind: an external tag wins, then registered
// and text-marshaling scalars, then encoding/xml unmarshalers, then slices,
// then structs, then the basic kinds.
func (a *Adapter) classify(p *Property, tag tagOptions) error {
	p.valueType = derefType(p.Type)
	switch kind, c, err := a.classifyValue(p.valueType, tag.external); {
	case err != nil:
		return fmt.Errorf("%s: %w", p.path(), err)
	case kind != KindCollection:
		p.Kind, p.codec = kind, c
		if p.Attr && kind != KindScalar {
			return fmt.Errorf("%s: only scalar properties can be attributes", p.path())
		}
		return nil
	}

	p.Kind = KindCollection
	if p.Attr {
		return fmt.Errorf("%s: only scalar properties can be attributes", p.path())
	}
	p.ItemType = p.valueType.Elem()
	p.itemValue = derefType(p.ItemType)
	kind, c, err := a.classifyValue(p.itemValue, false)
	if err != nil {
		return fmt.Errorf("%s: item: %w", p.path(), err)
	}
	if kind == KindCollection {
		return fmt.Errorf("%s: collections of collections are not supported", p.path())
	}
	p.ItemKind, p.itemCodec = kind, c
	switch {
	case tag.item != "":
		p.ItemName, p.itemForced = tag.item, true
	case kind == KindScalar:
		p.ItemName = c.scalar.Name()
	case kind == KindExternal:
		p.ItemName = p.itemValue.Name()
	}
	return nil
}

func (a *Adapter) classifyValue(t reflect.Type, external bool) (Kind, codec, error) {
	if external {
		return KindExternal, codec{}, nil
	}
	if c, ok := a.codecFor(t); ok {
		return KindScalar, c, nil
	}
	if reflect.PointerTo(t).Implements(xmlUnmarshalerType) {
		return KindExternal, codec{}, nil
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return KindCollection, codec{}, nil
	case reflect.Struct:
		return KindComplex, codec{}, nil
	}
	return 0, codec{}, fmt.Errorf("unsupported type %s", t)
}

func derefType(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}

// codecFor finds the scalar converter for t. Exact registrations win; types
// implementing encoding.TextMarshaler and TextUnmarshaler come next; named
// types of a basic kind borrow the converter of that kind.
func (a *Adapter) codecFor(t reflect.Type) (codec, bool) {
	reg := a.scalarRegistry().byType
	if s, ok := reg[t]; ok {
		return codec{typ: t, scalar: s, via: canonicalType(t, true)}, true
	}
	if reflect.PointerTo(t).Implements(textUnmarshaler) && (t.Implements(textMarshaler) || reflect.PointerTo(t).Implements(textMarshaler)) {
		return codec{typ: t, scalar: textScalar(t)}, true
	}
	if base, ok := basicTypes[t.Kind()]; ok {
		if s, ok := reg[base]; ok {
			return codec{typ: t, scalar: s, via: canonicalType(t, false)}, true
		}
	}
	if t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8 {
		if s, ok := reg[bytesType]; ok {
			return codec{typ: t, scalar: s, via: bytesType}, true
		}
	}
	return codec{}, false
}

// canonicalType is the type values travel through on their way to the
// primitive converters, or nil when the registered converter takes t as is.
func canonicalType(t reflect.Type, exact bool) reflect.Type {
	if exact && t.PkgPath() != "" {
		return nil
	}
	return canonicalKinds[t.Kind()]
}

var (
	bytesType = reflect.TypeOf([]byte(nil))

	basicTypes = map[reflect.Kind]reflect.Type{
		reflect.String:  reflect.TypeOf(""),
		reflect.Bool:    reflect.TypeOf(false),
		reflect.Int:     reflect.TypeOf(int(0)),
		reflect.Int8:    reflect.TypeOf(int8(0)),
		reflect.Int16:   reflect.TypeOf(int16(0)),
		reflect.Int32:   reflect.TypeOf(int32(0)),
		reflect.Int64:   reflect.TypeOf(int64(0)),
		reflect.Uint:    reflect.TypeOf(uint(0)),
		reflect.Uint8:   reflect.TypeOf(uint8(0)),
		reflect.Uint16:  reflect.TypeOf(uint16(0)),
		reflect.Uint32:  reflect.TypeOf(uint32(0)),
		reflect.Uint64:  reflect.TypeOf(uint64(0)),
		reflect.Float32: reflect.TypeOf(float32(0)),
		reflect.Float64: reflect.TypeOf(float64(0)),
	}

	canonicalKinds = map[reflect.Kind]reflect.Type{
		reflect.String:  reflect.TypeOf(""),
		reflect.Bool:    reflect.TypeOf(false),
		reflect.Int:     reflect.TypeOf(int64(0)),
		reflect.Int8:    reflect.TypeOf(int64(0)),
		reflect.Int16:   reflect.TypeOf(int64(0)),
		reflect.Int32:   reflect.TypeOf(int64(0)),
		reflect.Int64:   reflect.TypeOf(int64(0)),
		reflect.Uint:    reflect.TypeOf(uint64(0)),
		reflect.Uint8:   reflect.TypeOf(uint64(0)),
		reflect.Uint16:  reflect.TypeOf(uint64(0)),
		reflect.Uint32:  reflect.TypeOf(uint64(0)),
		reflect.Uint64:  reflect.TypeOf(uint64(0)),
		reflect.Float32: reflect.TypeOf(float64(0)),
		reflect.Float64: reflect.TypeOf(float64(0)),
	}
)

// textScalar adapts a type implementing encoding.TextMarshaler and
// encoding.TextUnmarshaler.
func textScalar(t reflect.Type) converters.Scalar {
	name := t.Name()
	if name == "" {
		name = "string"
	}
	return converters.Scalar{
		Names: []string{name},
		FromText: func(src any) (any, error) {
			const op errors.Op = "xmladapter.textScalar.FromText"
			s, err := converters.CheckText(op, src)
			if err != nil {
				return nil, err
			}
			ptr := reflect.New(t)
			if err = ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
				return nil, errors.New(op).Err(err)
			}
			return ptr.Elem().Interface(), nil
		},
		ToText: func(src any) (any, error) {
			const op errors.Op = "xmladapter.textScalar.ToText"
			rv := reflect.ValueOf(src)
			if rv.Type() != t {
				return nil, errors.New(op).Errorf("expected %s, got %T", t, src)
			}
			m, ok := src.(encoding.TextMarshaler)
			if !ok {
				ptr := reflect.New(t)
				ptr.Elem().Set(rv)
				m = ptr.Interface().(encoding.TextMarshaler)
			}
			b, err := m.MarshalText()
			if err != nil {
				return nil, errors.New(op).Err(err)
			}
			return string(b), nil
		},
	}
}
