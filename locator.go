package xmladapter

import (
	"github.com/beevik/etree"
	"go.uber.org/zap"
)

// node locates one element of a document. A node whose element does not
// exist yet is virtual: reads through it see nothing and the first write
// creates it, together with any missing ancestors.
type node struct {
	doc     *Document
	parent  *node
	name    string
	elem    *etree.Element
	binding *Binding
	fixed   bool // elem is the identity of the node, never looked up by name (list items)
}

// lookup returns the element, or nil while the node is virtual. A found
// element stays bound to the node until it is detached from its parent, after
// which the node resolves by name again.
func (n *node) lookup() *etree.Element {
	if n.elem != nil {
		if n.fixed || n.parent == nil {
			return n.elem
		}
		if pe := n.parent.lookup(); pe != nil && n.elem.Parent() == pe {
			return n.elem
		}
		n.doc.log.Debug("re-resolving detached element", zap.String("path", n.path()))
		n.elem = nil
	}
	if n.parent == nil {
		n.elem = n.doc.xml.Root()
		n.register()
		return n.elem
	}
	pe := n.parent.lookup()
	if pe == nil {
		return nil
	}
	n.elem = findChild(pe, n.name)
	n.register()
	return n.elem
}

// realize returns the element, creating it and its missing ancestors. It is
// only called before content is written, so an existing element loses its
// nil marker.
func (n *node) realize() *etree.Element {
	if el := n.lookup(); el != nil {
		n.doc.nilMarker().clear(el)
		return el
	}
	if n.parent == nil {
		name := n.name
		if name == "" {
			name = "Root"
		}
		n.elem = n.doc.xml.CreateElement(name)
	} else {
		n.elem = n.parent.realize().CreateElement(n.name)
	}
	n.register()
	n.doc.log.Debug("realized virtual element", zap.String("path", n.path()))
	return n.elem
}

func (n *node) register() {
	if n.elem != nil && n.binding != nil {
		if _, ok := n.doc.bindings[n.elem]; !ok {
			n.doc.bindings[n.elem] = n.binding
		}
	}
}

// detachedFrom reports whether the node was bound to an element that is no
// longer a child of the owner's element.
func (n *node) detachedFrom(owner *node) bool {
	if n.elem == nil {
		return false
	}
	return owner.elem == nil || n.elem.Parent() != owner.elem
}

func (n *node) path() string {
	name := n.name
	if n.elem != nil {
		name = n.elem.FullTag()
	}
	if n.parent == nil {
		return "/" + name
	}
	return n.parent.path() + "/" + name
}
