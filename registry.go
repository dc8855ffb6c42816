package xmladapter

import (
	"io"
	"reflect"

	"github.com/Station-Manager/errors"
	"github.com/beevik/etree"
	"go.uber.org/zap"
)

// Document is an XML document opened by an Adapter. It keeps one Binding per
// element so that every route to the same element shares child views and
// lists. A Document and its views must not be used from several goroutines
// at once.
type Document struct {
	adapter  *Adapter
	xml      *etree.Document
	root     *node
	bindings map[*etree.Element]*Binding
	log      *zap.Logger
}

func newDocument(a *Adapter, x *etree.Document) *Document {
	d := &Document{
		adapter:  a,
		xml:      x,
		bindings: make(map[*etree.Element]*Binding),
		log:      a.log,
	}
	d.root = &node{doc: d}
	return d
}

// Bind returns a view of the document element through the shape of sample.
// On an empty document the element is named after the shape and created on
// the first write.
func (d *Document) Bind(sample any) (*View, error) {
	const op errors.Op = "xmladapter.Document.Bind"
	shape, err := d.adapter.ShapeOf(sample)
	if err != nil {
		return nil, errors.New(op).Err(err)
	}
	if d.root.lookup() == nil && d.root.name == "" {
		d.root.name = shape.name
	}
	return d.bindingOf(d.root).view(shape), nil
}

func (d *Document) Adapter() *Adapter { return d.adapter }

// Etree returns the underlying document.
func (d *Document) Etree() *etree.Document { return d.xml }

// WriteTo writes the document, indented when the adapter config asks for it.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	out := d.xml
	if n := d.adapter.options.Config.Indent; n > 0 {
		out = d.xml.Copy()
		out.Indent(n)
	}
	return out.WriteTo(w)
}

// XML returns the document text.
func (d *Document) XML() (string, error) {
	const op errors.Op = "xmladapter.Document.XML"
	out := d.xml
	if n := d.adapter.options.Config.Indent; n > 0 {
		out = d.xml.Copy()
		out.Indent(n)
	}
	s, err := out.WriteToString()
	if err != nil {
		return "", errors.New(op).Err(err)
	}
	return s, nil
}

func (d *Document) nilMarker() NilMarker { return d.adapter.options.Config.NilMarker }

// bindingOf returns the binding of n, reusing the binding already registered
// for its element.
func (d *Document) bindingOf(n *node) *Binding {
	if n.binding != nil {
		return n.binding
	}
	if el := n.lookup(); el != nil {
		if b, ok := d.bindings[el]; ok {
			n.binding = b
			return b
		}
	}
	n.binding = &Binding{
		doc:   d,
		node:  n,
		views: make(map[reflect.Type]*View),
		nodes: make(map[string]*node),
		lists: make(map[listKey]*List),
	}
	n.register()
	return n.binding
}

type listKey struct {
	name string
	item reflect.Type
}

// Binding is the per-element state shared by every view of one element:
// the primary view per shape, the child nodes by name and the lists by
// property.
type Binding struct {
	doc   *Document
	node  *node
	views map[reflect.Type]*View
	nodes map[string]*node
	lists map[listKey]*List
}

// BindingOf returns the binding behind a view. Views of the same element
// share one binding, whatever their shape.
func BindingOf(v *View) *Binding { return v.binding }

func (b *Binding) Document() *Document { return b.doc }

// Element returns the bound element, or nil while it is virtual.
func (b *Binding) Element() *etree.Element { return b.node.lookup() }

func (b *Binding) IsVirtual() bool { return b.node.lookup() == nil }

// view returns the primary view of the binding for shape.
func (b *Binding) view(shape *Shape) *View {
	if v, ok := b.views[shape.typ]; ok && v.shape == shape {
		return v
	}
	v := &View{binding: b, shape: shape}
	b.views[shape.typ] = v
	return v
}

// childNode returns the node of the child element called name. A node whose
// element was detached from this binding's element is replaced.
func (b *Binding) childNode(name string) *node {
	if n, ok := b.nodes[name]; ok {
		b.node.lookup()
		if !n.detachedFrom(b.node) {
			return n
		}
		b.doc.log.Debug("dropping detached child", zap.String("path", n.path()))
	}
	n := &node{doc: b.doc, parent: b.node, name: name}
	b.nodes[name] = n
	return n
}

func (b *Binding) child(name string, shape *Shape) *View {
	return b.doc.bindingOf(b.childNode(name)).view(shape)
}

func (b *Binding) forget(name string) {
	delete(b.nodes, name)
}
