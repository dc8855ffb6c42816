package xmladapter

import (
	"fmt"
	"reflect"
)

// Generic helpers as top-level functions (methods cannot have type parameters yet)

// Create parses text and binds its document element to T.
func Create[T any](a *Adapter, text string) (*View, error) {
	d, err := a.Parse(text)
	if err != nil {
		return nil, err
	}
	return Bind[T](d)
}

// Detached binds T to a new, empty document.
func Detached[T any](a *Adapter) (*View, error) { return Bind[T](a.NewDocument()) }

func Bind[T any](d *Document) (*View, error) { return d.Bind(reflect.TypeFor[T]()) }

func Coerce[T any](v *View) (*View, error) { return v.Coerce(reflect.TypeFor[T]()) }

// Value returns a property as T, or the zero T when it is absent.
func Value[T any](v *View, name string) (T, error) {
	t, _, err := Lookup[T](v, name)
	return t, err
}

// Lookup returns a property as T and whether it is present.
func Lookup[T any](v *View, name string) (T, bool, error) {
	var zero T
	got, err := v.Get(name)
	if err != nil || got == nil {
		return zero, false, err
	}
	t, ok := got.(T)
	if !ok {
		return zero, false, fmt.Errorf("xmladapter: %s.%s is %T, not %T", v.shape.name, name, got, zero)
	}
	return t, true, nil
}

func SetValue[T any](v *View, name string, value T) error { return v.Set(name, value) }

func ListOf(v *View, name string) (*List, error) { return v.List(name) }

// Items returns every item of l as T. Absent items are the zero T.
func Items[T any](l *List) ([]T, error) {
	values, err := l.Values()
	if err != nil {
		return nil, err
	}
	out := make([]T, len(values))
	for i, value := range values {
		if value == nil {
			continue
		}
		t, ok := value.(T)
		if !ok {
			return nil, fmt.Errorf("xmladapter: %s item %d is %T, not %T", l.prop.path(), i, value, out[i])
		}
		out[i] = t
	}
	return out, nil
}
