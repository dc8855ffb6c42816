package xmladapter

import (
	"strings"

	"github.com/beevik/etree"
)

const xmlNamespace = "http://www.w3.org/XML/1998/namespace"

// resolveNS finds the namespace bound to prefix in scope at el, or "" when
// the prefix is undeclared.
func resolveNS(el *etree.Element, prefix string) string {
	if prefix == "xml" {
		return xmlNamespace
	}
	for e := el; e != nil; e = e.Parent() {
		for _, a := range e.Attr {
			if prefix == "" && a.Space == "" && a.Key == "xmlns" {
				return a.Value
			}
			if prefix != "" && a.Space == "xmlns" && a.Key == prefix {
				return a.Value
			}
		}
	}
	return ""
}

func splitQName(name string) (prefix, local string) {
	if i := strings.IndexByte(name, ':'); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}

// findAttr returns the unqualified attribute named local.
func findAttr(el *etree.Element, local string) *etree.Attr {
	for i := range el.Attr {
		if a := &el.Attr[i]; a.Space == "" && a.Key == local {
			return a
		}
	}
	return nil
}

func removeAttr(el *etree.Element, local string) {
	if findAttr(el, local) != nil {
		el.RemoveAttr(local)
	}
}

// matchesName reports whether child carries the local name and either no
// prefix or the same prefix as its parent.
func matchesName(child, parent *etree.Element, local string) bool {
	return child.Tag == local && (child.Space == "" || child.Space == parent.Space)
}

func findChild(el *etree.Element, local string) *etree.Element {
	for _, c := range el.ChildElements() {
		if matchesName(c, el, local) {
			return c
		}
	}
	return nil
}

func findChildren(el *etree.Element, local string) []*etree.Element {
	var out []*etree.Element
	for _, c := range el.ChildElements() {
		if matchesName(c, el, local) {
			out = append(out, c)
		}
	}
	return out
}

func removeChildren(el *etree.Element, local string) int {
	n := 0
	for _, c := range findChildren(el, local) {
		el.RemoveChild(c)
		n++
	}
	return n
}

func clearContent(el *etree.Element) {
	for len(el.Child) > 0 {
		el.RemoveChildAt(0)
	}
}

// setText replaces the content of el with text.
func setText(el *etree.Element, text string) {
	clearContent(el)
	if text != "" {
		el.SetText(text)
	}
}

// topElement walks up to the document element, or the top of a detached subtree.
func topElement(el *etree.Element) *etree.Element {
	for {
		p := el.Parent()
		if p == nil || p.Tag == "" {
			return el
		}
		el = p
	}
}

// xsiAttr returns the attribute with the given local name in the XSI
// namespace. A bare xsi prefix with no declaration in scope is accepted.
func xsiAttr(el *etree.Element, local string) *etree.Attr {
	for i := range el.Attr {
		a := &el.Attr[i]
		if a.Key != local || a.Space == "" || a.Space == "xmlns" {
			continue
		}
		ns := resolveNS(el, a.Space)
		if ns == XSINamespace || (ns == "" && a.Space == "xsi") {
			return a
		}
	}
	return nil
}

// acceptsTypeHint reports whether an xsi:type hint on el, if any, names one
// of the XML types of c. The hint prefix may be missing, undeclared or bound
// to the XML Schema namespace.
func acceptsTypeHint(el *etree.Element, c codec) bool {
	a := xsiAttr(el, "type")
	if a == nil {
		return true
	}
	prefix, local := splitQName(strings.TrimSpace(a.Value))
	if prefix != "" {
		if ns := resolveNS(el, prefix); ns != "" && ns != XSDNamespace {
			return false
		}
	}
	return c.scalar.Accepts(local)
}

func removeTypeHint(el *etree.Element) {
	if a := xsiAttr(el, "type"); a != nil {
		el.RemoveAttr(a.Space + ":" + a.Key)
	}
}

// isNil reports whether el carries the nil marker.
func (m NilMarker) isNil(el *etree.Element) bool {
	a := m.attr(el)
	if a == nil {
		return false
	}
	v := strings.TrimSpace(a.Value)
	return v == m.Value || (m.Value == "true" && v == "1")
}

func (m NilMarker) attr(el *etree.Element) *etree.Attr {
	prefix, local := m.split()
	for i := range el.Attr {
		a := &el.Attr[i]
		if a.Key != local {
			continue
		}
		if a.Space == prefix {
			return a
		}
		if a.Space != "" && a.Space != "xmlns" && m.Namespace != "" && resolveNS(el, a.Space) == m.Namespace {
			return a
		}
	}
	return nil
}

// mark clears el and writes the marker, declaring its prefix on the top
// element when it is not in scope.
func (m NilMarker) mark(el *etree.Element) {
	clearContent(el)
	prefix, _ := m.split()
	el.CreateAttr(m.Attr, m.Value)
	if prefix != "" && resolveNS(el, prefix) == "" {
		topElement(el).CreateAttr("xmlns:"+prefix, m.Namespace)
	}
}

func (m NilMarker) clear(el *etree.Element) {
	if a := m.attr(el); a != nil {
		key := a.Key
		if a.Space != "" {
			key = a.Space + ":" + a.Key
		}
		el.RemoveAttr(key)
	}
}

// copyElement deep-copies src under a new unqualified name. Prefixes used in
// the copy but declared above src are redeclared on the copy so it stays
// well-formed wherever it is inserted.
func copyElement(src *etree.Element, name string) *etree.Element {
	if src == nil {
		return etree.NewElement(name)
	}
	dst := src.Copy()
	dst.Space, dst.Tag = "", name

	used := make(map[string]struct{})
	declared := make(map[string]struct{})
	collectPrefixes(src, used, declared)
	if src.Space != "" {
		used[src.Space] = struct{}{}
	}
	for prefix := range used {
		if _, ok := declared[prefix]; ok {
			continue
		}
		if ns := resolveNS(src.Parent(), prefix); ns != "" {
			dst.CreateAttr("xmlns:"+prefix, ns)
		}
	}
	if _, ok := declared[""]; !ok {
		if ns := resolveNS(src.Parent(), ""); ns != "" {
			dst.CreateAttr("xmlns", ns)
		}
	}
	return dst
}

func collectPrefixes(el *etree.Element, used, declared map[string]struct{}) {
	for _, a := range el.Attr {
		switch {
		case a.Space == "xmlns":
			declared[a.Key] = struct{}{}
		case a.Space == "" && a.Key == "xmlns":
			declared[""] = struct{}{}
		case a.Space != "" && a.Space != "xml":
			used[a.Space] = struct{}{}
			if a.Key == "type" {
				if prefix, _ := splitQName(a.Value); prefix != "" {
					used[prefix] = struct{}{}
				}
			}
		}
	}
	for _, c := range el.ChildElements() {
		if c.Space != "" {
			used[c.Space] = struct{}{}
		}
		collectPrefixes(c, used, declared)
	}
}
