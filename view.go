package xmladapter

import (
	"fmt"
	"reflect"

	"github.com/Station-Manager/errors"
	"github.com/beevik/etree"
)

// View reads and writes one element through a Shape. Properties are read
// from the document on every access; nothing is copied into Go values until
// Decode is called.
type View struct {
	binding *Binding
	shape   *Shape
}

func (v *View) Shape() *Shape { return v.shape }
func (v *View) Document() *Document { return v.binding.doc }
func (v *View) Element() *etree.Element { return v.binding.Element() }

// IsVirtual reports whether the viewed element is absent from the document.
func (v *View) IsVirtual() bool { return v.binding.IsVirtual() }

func (v *View) String() string {
	return fmt.Sprintf("%s@%s", v.shape.name, v.binding.node.path())
}

// Get returns the value of a property: the converted scalar or nil when
// absent, a *View for complex properties, a *List for collections.
func (v *View) Get(name string) (any, error) {
	p, ok := v.shape.Property(name)
	if !ok {
		return nil, unknownProperty(v.shape, name)
	}
	return v.binding.get(p)
}

// Set assigns a property. Assigning nil removes the node, or marks it nil
// when the property is nullable.
func (v *View) Set(name string, value any) error {
	p, ok := v.shape.Property(name)
	if !ok {
		return unknownProperty(v.shape, name)
	}
	return v.assign(p, value)
}

func (v *View) assign(p *Property, value any) error {
	if err := v.binding.doc.adapter.runValidators(v.shape, p, value); err != nil {
		return err
	}
	return v.binding.set(p, value)
}

// Child returns the view of a complex property.
func (v *View) Child(name string) (*View, error) {
	const op errors.Op = "xmladapter.View.Child"
	p, ok := v.shape.Property(name)
	if !ok {
		return nil, unknownProperty(v.shape, name)
	}
	if p.Kind != KindComplex {
		return nil, errors.New(op).Errorf("%s is a %s property", p.path(), p.Kind)
	}
	return v.binding.complexChild(p)
}

// List returns the list of a collection property.
func (v *View) List(name string) (*List, error) {
	const op errors.Op = "xmladapter.View.List"
	p, ok := v.shape.Property(name)
	if !ok {
		return nil, unknownProperty(v.shape, name)
	}
	if p.Kind != KindCollection {
		return nil, errors.New(op).Errorf("%s is a %s property", p.path(), p.Kind)
	}
	return v.binding.list(p)
}

// Coerce returns a new view of the same element through another shape. The
// result shares the binding, and with it every cached child, with v.
func (v *View) Coerce(sample any) (*View, error) {
	const op errors.Op = "xmladapter.View.Coerce"
	shape, err := v.binding.doc.adapter.ShapeOf(sample)
	if err != nil {
		return nil, errors.New(op).Err(err)
	}
	return &View{binding: v.binding, shape: shape}, nil
}

// Store writes the fields of a struct through the view. Fields are matched
// to properties by Go name; zero fields are skipped unless the adapter was
// built with WithIncludeZeroValues.
func (v *View) Store(src any) error {
	const op errors.Op = "xmladapter.View.Store"
	rv := reflect.ValueOf(src)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return errors.New(op).Msg("source must not be nil")
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errors.New(op).Errorf("source must be a struct, got %T", src)
	}
	return v.store(rv)
}

func (v *View) store(rv reflect.Value) error {
	includeZero := v.binding.doc.adapter.options.IncludeZeroValues
	sameShape := rv.Type() == v.shape.typ
	for _, p := range v.shape.properties {
		index := p.index
		if !sameShape {
			sf, found := rv.Type().FieldByName(p.Name)
			if !found || !sf.IsExported() {
				continue
			}
			index = sf.Index
		}
		fv, ok := safeFieldByIndex(rv, index)
		if !ok {
			continue
		}
		if !includeZero && fv.IsZero() {
			continue
		}
		if err := v.assign(p, fv.Interface()); err != nil {
			return err
		}
	}
	return nil
}

func safeFieldByIndex(val reflect.Value, index []int) (reflect.Value, bool) {
	for i, x := range index {
		if i > 0 && val.Kind() == reflect.Ptr {
			if val.IsNil() {
				return reflect.Value{}, false
			}
			val = val.Elem()
		}
		val = val.Field(x)
	}
	return val, true
}
