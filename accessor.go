package xmladapter

import (
	"fmt"
	"reflect"

	"github.com/beevik/etree"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

func (b *Binding) get(p *Property) (any, error) {
	switch p.Kind {
	case KindScalar:
		return b.getScalar(p)
	case KindComplex:
		return b.complexChild(p)
	case KindCollection:
		return b.list(p)
	case KindExternal:
		return b.getExternal(p)
	}
	return nil, fmt.Errorf("%s: unknown kind %s", p.path(), p.Kind)
}

func (b *Binding) set(p *Property, value any) error {
	switch p.Kind {
	case KindScalar:
		return b.setScalar(p, value)
	case KindComplex:
		return b.setComplex(p, value)
	case KindCollection:
		l, err := b.list(p)
		if err != nil {
			return err
		}
		return l.Set(value)
	case KindExternal:
		return b.setExternal(p, value)
	}
	return fmt.Errorf("%s: unknown kind %s", p.path(), p.Kind)
}

// getScalar reads an attribute of the property name, or failing that the
// first child element of that name.
func (b *Binding) getScalar(p *Property) (any, error) {
	el := b.node.lookup()
	if el == nil {
		return nil, nil
	}
	if a := findAttr(el, p.XMLName); a != nil {
		return decodeScalar(p.path(), p.Type, p.codec, a.Value)
	}
	if p.Attr {
		return nil, nil
	}
	child := findChild(el, p.XMLName)
	if child == nil || b.doc.nilMarker().isNil(child) {
		return nil, nil
	}
	if !acceptsTypeHint(child, p.codec) {
		b.doc.log.Debug("ignoring element with foreign xsi:type",
			zap.String("property", p.path()), zap.String("path", b.node.path()))
		return nil, nil
	}
	return decodeScalar(p.path(), p.Type, p.codec, child.Text())
}

// decodeScalar converts text to the declared type, boxing it in a pointer
// when the declared type is one.
func decodeScalar(path string, declared reflect.Type, c codec, text string) (any, error) {
	rv, err := c.fromText(text)
	if err != nil {
		return nil, &ConversionError{Property: path, Type: c.typ, Text: text, Err: err}
	}
	if declared.Kind() == reflect.Pointer {
		ptr := reflect.New(c.typ)
		ptr.Elem().Set(rv)
		return ptr.Interface(), nil
	}
	return rv.Interface(), nil
}

// encodeScalar converts a value to text; a nil result means null.
func encodeScalar(path string, c codec, value any) (*string, error) {
	rv, err := normalize(path, c.typ, value)
	if err != nil || !rv.IsValid() {
		return nil, err
	}
	text, err := c.toText(rv)
	if err != nil {
		return nil, &ConversionError{Property: path, Type: c.typ, Text: fmt.Sprint(value), Err: err}
	}
	return text, nil
}

// normalize brings value to type t. Pointers are followed, values of the
// same kind are converted, and basic kinds are cast leniently so that an int
// can be assigned to a float64 property or "42" to an int one. An invalid
// result means null.
func normalize(path string, t reflect.Type, value any) (reflect.Value, error) {
	if value == nil {
		return reflect.Value{}, nil
	}
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return reflect.Value{}, nil
		}
		rv = rv.Elem()
	}
	if rv.Type() == t {
		return rv, nil
	}
	if rv.Kind() == t.Kind() && rv.Type().ConvertibleTo(t) {
		return rv.Convert(t), nil
	}
	if _, basic := basicTypes[t.Kind()]; !basic {
		return reflect.Value{}, &IncompatibleAssignmentError{Property: path, Want: t.String(), Got: rv.Type().String()}
	}
	if _, basic := basicTypes[rv.Kind()]; !basic {
		return reflect.Value{}, &IncompatibleAssignmentError{Property: path, Want: t.String(), Got: rv.Type().String()}
	}

	var (
		cv  any
		err error
	)
	in := rv.Interface()
	switch t.Kind() {
	case reflect.String:
		cv, err = cast.ToStringE(in)
	case reflect.Bool:
		cv, err = cast.ToBoolE(in)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		var n int64
		if n, err = cast.ToInt64E(in); err == nil && reflect.Zero(t).OverflowInt(n) {
			err = fmt.Errorf("%d overflows %s", n, t)
		}
		cv = n
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		var n uint64
		if n, err = cast.ToUint64E(in); err == nil && reflect.Zero(t).OverflowUint(n) {
			err = fmt.Errorf("%d overflows %s", n, t)
		}
		cv = n
	case reflect.Float32, reflect.Float64:
		var f float64
		if f, err = cast.ToFloat64E(in); err == nil && reflect.Zero(t).OverflowFloat(f) {
			err = fmt.Errorf("%g overflows %s", f, t)
		}
		cv = f
	}
	if err != nil {
		return reflect.Value{}, &ConversionError{Property: path, Type: t, Text: fmt.Sprint(in), Err: err}
	}
	return reflect.ValueOf(cv).Convert(t), nil
}

func (b *Binding) setScalar(p *Property, value any) error {
	text, err := encodeScalar(p.path(), p.codec, value)
	if err != nil {
		return err
	}
	if text == nil {
		b.clear(p)
		return nil
	}
	el := b.node.realize()
	if p.Attr || findAttr(el, p.XMLName) != nil {
		el.CreateAttr(p.XMLName, *text)
		return nil
	}
	child := findChild(el, p.XMLName)
	if child == nil {
		child = el.CreateElement(p.XMLName)
	}
	b.doc.nilMarker().clear(child)
	if !acceptsTypeHint(child, p.codec) {
		removeTypeHint(child)
	}
	setText(child, *text)
	return nil
}

// clear removes the attribute and elements of a property. A nullable
// property is then written back as an element carrying the nil marker.
func (b *Binding) clear(p *Property) {
	if el := b.node.lookup(); el != nil {
		if !p.Attr || p.Kind != KindScalar {
			removeChildren(el, p.XMLName)
		}
		removeAttr(el, p.XMLName)
	}
	b.forget(p.XMLName)
	if !p.Nullable || p.Attr {
		return
	}
	child := b.node.realize().CreateElement(p.XMLName)
	b.doc.nilMarker().mark(child)
}

func (b *Binding) complexChild(p *Property) (*View, error) {
	shape, err := b.doc.adapter.getOrBuildShape(p.valueType)
	if err != nil {
		return nil, err
	}
	if el := b.node.lookup(); el != nil && findAttr(el, p.XMLName) != nil && findChild(el, p.XMLName) == nil {
		b.doc.log.Debug("attribute does not back a complex property",
			zap.String("property", p.path()), zap.String("path", b.node.path()))
	}
	return b.child(p.XMLName, shape), nil
}

// setComplex replaces the child element of a complex property with a copy
// of the assigned view's element, or with the fields of an assigned struct.
// Structs are stored into a detached element first, so a rejected field
// leaves the old child in place.
func (b *Binding) setComplex(p *Property, value any) error {
	target, err := b.doc.adapter.getOrBuildShape(p.valueType)
	if err != nil {
		return err
	}
	switch src := value.(type) {
	case nil:
		b.clear(p)
		return nil
	case *View:
		if src == nil {
			b.clear(p)
			return nil
		}
		if src.shape.typ != target.typ {
			return &IncompatibleAssignmentError{Property: p.path(), Want: target.name, Got: "view of " + src.shape.name}
		}
		srcEl := src.Element()
		if srcEl != nil && srcEl == b.childElement(p.XMLName) {
			return nil
		}
		b.replaceChild(p.XMLName, copyElement(srcEl, p.XMLName))
		b.doc.log.Debug("copied view into property",
			zap.String("property", p.path()), zap.Stringer("source", src))
		return nil
	}

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			b.clear(p)
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Type() != target.typ {
		return &IncompatibleAssignmentError{Property: p.path(), Want: target.name, Got: rv.Type().String()}
	}
	fresh := etree.NewElement(p.XMLName)
	n := &node{doc: b.doc, name: p.XMLName, elem: fresh}
	if err = b.doc.bindingOf(n).view(target).store(rv); err != nil {
		delete(b.doc.bindings, fresh)
		return err
	}
	b.replaceChild(p.XMLName, fresh)
	n.parent = b.node
	b.nodes[p.XMLName] = n
	return nil
}

func (b *Binding) childElement(name string) *etree.Element {
	el := b.node.lookup()
	if el == nil {
		return nil
	}
	return findChild(el, name)
}

// replaceChild puts fresh where the first element called name was, removing
// every element of that name.
func (b *Binding) replaceChild(name string, fresh *etree.Element) {
	el := b.node.realize()
	old := findChildren(el, name)
	if len(old) == 0 {
		el.AddChild(fresh)
	} else {
		at := old[0].Index()
		for _, c := range old {
			el.RemoveChild(c)
		}
		el.InsertChildAt(at, fresh)
	}
	b.forget(name)
}
