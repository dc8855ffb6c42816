package xmladapter

import (
	"fmt"
	"iter"
	"reflect"

	"github.com/Station-Manager/errors"
	"github.com/beevik/etree"
)

type ListAction int

const (
	ListAdded ListAction = iota
	ListRemoved
	ListReset
)

func (a ListAction) String() string {
	switch a {
	case ListAdded:
		return "added"
	case ListRemoved:
		return "removed"
	case ListReset:
		return "reset"
	}
	return fmt.Sprintf("ListAction(%d)", int(a))
}

// ListChange is delivered to list observers after every mutation. Index is
// -1 for resets.
type ListChange struct {
	Action ListAction
	Index  int
}

// List projects the item elements of a collection property. The items live
// in the document only: every read enumerates the wrapper element again, so
// edits made through other routes are seen immediately.
type List struct {
	owner     *Binding
	prop      *Property
	itemName  string
	itemShape *Shape
	observers map[int]func(ListChange)
	nextID    int
}

func (b *Binding) list(p *Property) (*List, error) {
	key := listKey{name: p.XMLName, item: p.ItemType}
	if l, ok := b.lists[key]; ok {
		return l, nil
	}
	l := &List{owner: b, prop: p, itemName: p.ItemName}
	if p.ItemKind == KindComplex {
		shape, err := b.doc.adapter.getOrBuildShape(p.itemValue)
		if err != nil {
			return nil, err
		}
		l.itemShape = shape
		if !p.itemForced {
			l.itemName = shape.name
		}
	}
	b.lists[key] = l
	return l, nil
}

func (l *List) parent() *node { return l.owner.childNode(l.prop.XMLName) }

func (l *List) elements() []*etree.Element {
	pe := l.parent().lookup()
	if pe == nil {
		return nil
	}
	return findChildren(pe, l.itemName)
}

// ItemName is the local name of the item elements.
func (l *List) ItemName() string { return l.itemName }

// Len returns the number of items.
func (l *List) Len() int { return len(l.elements()) }

// All yields the items in document order. Items are converted as they are
// reached, so a conversion error does not stop the iteration.
func (l *List) All() iter.Seq2[any, error] {
	return func(yield func(any, error) bool) {
		for _, el := range l.elements() {
			if !yield(l.item(el)) {
				return
			}
		}
	}
}

// Values returns every item, stopping at the first conversion error.
func (l *List) Values() ([]any, error) {
	els := l.elements()
	out := make([]any, 0, len(els))
	for _, el := range els {
		v, err := l.item(el)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// At returns the item at index i.
func (l *List) At(i int) (any, error) {
	const op errors.Op = "xmladapter.List.At"
	els := l.elements()
	if i < 0 || i >= len(els) {
		return nil, errors.New(op).Errorf("index %d out of range [0,%d)", i, len(els))
	}
	return l.item(els[i])
}

func (l *List) item(el *etree.Element) (any, error) {
	path := l.prop.path() + "[]"
	switch l.prop.ItemKind {
	case KindScalar:
		if l.owner.doc.nilMarker().isNil(el) || !acceptsTypeHint(el, l.prop.itemCodec) {
			return nil, nil
		}
		return decodeScalar(path, l.prop.ItemType, l.prop.itemCodec, el.Text())
	case KindComplex:
		n := &node{doc: l.owner.doc, parent: l.parent(), name: l.itemName, elem: el, fixed: true}
		return l.owner.doc.bindingOf(n).view(l.itemShape), nil
	case KindExternal:
		if l.owner.doc.nilMarker().isNil(el) {
			return nil, nil
		}
		return decodeExternal(path, l.prop.itemValue, l.prop.ItemType, el)
	}
	return nil, fmt.Errorf("%s: unknown item kind %s", path, l.prop.ItemKind)
}

// newItem builds a detached item element for value. Struct items are stored
// into it right away, through a node that is adopted by the list once the
// element is inserted.
func (l *List) newItem(value any) (*etree.Element, *node, error) {
	path := l.prop.path() + "[]"
	switch l.prop.ItemKind {
	case KindScalar:
		el := etree.NewElement(l.itemName)
		text, err := encodeScalar(path, l.prop.itemCodec, value)
		if err != nil {
			return nil, nil, err
		}
		if text == nil {
			l.owner.doc.nilMarker().mark(el)
		} else {
			setText(el, *text)
		}
		return el, nil, nil
	case KindExternal:
		if isNilValue(value) {
			el := etree.NewElement(l.itemName)
			l.owner.doc.nilMarker().mark(el)
			return el, nil, nil
		}
		el, err := encodeExternal(path, l.prop.itemValue, value, l.itemName)
		return el, nil, err
	}

	if v, ok := value.(*View); ok && v != nil {
		if v.shape.typ != l.itemShape.typ {
			return nil, nil, &IncompatibleAssignmentError{Property: path, Want: l.itemShape.name, Got: "view of " + v.shape.name}
		}
		return copyElement(v.Element(), l.itemName), nil, nil
	}
	rv := reflect.ValueOf(value)
	for rv.IsValid() && rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	if !rv.IsValid() || rv.Type() != l.itemShape.typ {
		return nil, nil, &IncompatibleAssignmentError{Property: path, Want: l.itemShape.name, Got: fmt.Sprintf("%T", value)}
	}
	el := etree.NewElement(l.itemName)
	n := &node{doc: l.owner.doc, name: l.itemName, elem: el, fixed: true}
	if err := l.owner.doc.bindingOf(n).view(l.itemShape).store(rv); err != nil {
		delete(l.owner.doc.bindings, el)
		return nil, nil, err
	}
	return el, n, nil
}

// adopt hangs a node built by newItem under the list's wrapper.
func (l *List) adopt(n *node) {
	if n != nil {
		n.parent = l.parent()
	}
}

func isNilValue(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// Add appends value. Views are copied, structs are stored field by field.
func (l *List) Add(value any) error {
	return l.Insert(l.Len(), value)
}

// AddNew appends an empty item and returns its view. Only lists of complex
// items support it.
func (l *List) AddNew() (*View, error) {
	const op errors.Op = "xmladapter.List.AddNew"
	if l.prop.ItemKind != KindComplex {
		return nil, errors.New(op).Errorf("%s holds %s items", l.prop.path(), l.prop.ItemKind)
	}
	el := etree.NewElement(l.itemName)
	index := l.Len()
	l.insertAt(index, el)
	l.notify(ListChange{Action: ListAdded, Index: index})
	n := &node{doc: l.owner.doc, parent: l.parent(), name: l.itemName, elem: el, fixed: true}
	return l.owner.doc.bindingOf(n).view(l.itemShape), nil
}

// Insert puts value at index i, shifting later items.
func (l *List) Insert(i int, value any) error {
	const op errors.Op = "xmladapter.List.Insert"
	if n := l.Len(); i < 0 || i > n {
		return errors.New(op).Errorf("index %d out of range [0,%d]", i, n)
	}
	el, n, err := l.newItem(value)
	if err != nil {
		return err
	}
	l.insertAt(i, el)
	l.adopt(n)
	l.notify(ListChange{Action: ListAdded, Index: i})
	return nil
}

func (l *List) insertAt(i int, el *etree.Element) {
	pe := l.parent().realize()
	items := findChildren(pe, l.itemName)
	if i >= len(items) {
		pe.AddChild(el)
		return
	}
	pe.InsertChildAt(items[i].Index(), el)
}

// RemoveAt removes the item at index i.
func (l *List) RemoveAt(i int) error {
	const op errors.Op = "xmladapter.List.RemoveAt"
	els := l.elements()
	if i < 0 || i >= len(els) {
		return errors.New(op).Errorf("index %d out of range [0,%d)", i, len(els))
	}
	els[i].Parent().RemoveChild(els[i])
	l.notify(ListChange{Action: ListRemoved, Index: i})
	return nil
}

// Clear removes every item and keeps the wrapper element.
func (l *List) Clear() {
	for _, el := range l.elements() {
		el.Parent().RemoveChild(el)
	}
	l.notify(ListChange{Action: ListReset, Index: -1})
}

// Set replaces the items with the elements of a slice, array or *List.
// Assigning nil removes the wrapper element. Every item is converted and
// validated before the document is touched.
func (l *List) Set(value any) error {
	if isNilValue(value) {
		l.owner.clear(l.prop)
		l.notify(ListChange{Action: ListReset, Index: -1})
		return nil
	}

	var values []any
	switch src := value.(type) {
	case *List:
		var err error
		if values, err = src.Values(); err != nil {
			return err
		}
	default:
		rv := reflect.ValueOf(value)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return &IncompatibleAssignmentError{Property: l.prop.path(), Want: l.prop.Type.String(), Got: rv.Type().String()}
		}
		values = make([]any, rv.Len())
		for i := range values {
			values[i] = rv.Index(i).Interface()
		}
	}

	els := make([]*etree.Element, len(values))
	nodes := make([]*node, len(values))
	for i, v := range values {
		var err error
		if els[i], nodes[i], err = l.newItem(v); err != nil {
			for _, built := range els[:i] {
				delete(l.owner.doc.bindings, built)
			}
			return err
		}
	}

	for _, el := range l.elements() {
		el.Parent().RemoveChild(el)
	}
	pe := l.parent().realize()
	for i, el := range els {
		pe.AddChild(el)
		l.adopt(nodes[i])
	}
	l.notify(ListChange{Action: ListReset, Index: -1})
	return nil
}

// Observe registers fn for every later change and returns a func that
// unregisters it.
func (l *List) Observe(fn func(ListChange)) (cancel func()) {
	if l.observers == nil {
		l.observers = make(map[int]func(ListChange))
	}
	id := l.nextID
	l.nextID++
	l.observers[id] = fn
	return func() { delete(l.observers, id) }
}

func (l *List) notify(c ListChange) {
	for _, fn := range l.observers {
		fn(c)
	}
}
