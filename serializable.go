package xmladapter

import (
	"bytes"
	"encoding/xml"
	"reflect"

	"github.com/beevik/etree"
)

// External properties hand their element to encoding/xml: the value type
// implements xml.Unmarshaler, or the field is tagged `adapter:",external"`.

func (b *Binding) getExternal(p *Property) (any, error) {
	el := b.node.lookup()
	if el == nil {
		return nil, nil
	}
	child := findChild(el, p.XMLName)
	if child == nil || b.doc.nilMarker().isNil(child) {
		return nil, nil
	}
	return decodeExternal(p.path(), p.valueType, p.Type, child)
}

func (b *Binding) setExternal(p *Property, value any) error {
	if isNilValue(value) {
		b.clear(p)
		return nil
	}
	fresh, err := encodeExternal(p.path(), p.valueType, value, p.XMLName)
	if err != nil {
		return err
	}
	b.replaceChild(p.XMLName, fresh)
	return nil
}

// decodeExternal unmarshals a copy of el, redeclaring the namespaces in scope.
func decodeExternal(path string, valueType, declared reflect.Type, el *etree.Element) (any, error) {
	doc := etree.NewDocument()
	doc.SetRoot(copyElement(el, el.Tag))
	data, err := doc.WriteToBytes()
	if err != nil {
		return nil, &ConversionError{Property: path, Type: valueType, Err: err}
	}
	ptr := reflect.New(valueType)
	if err = xml.Unmarshal(data, ptr.Interface()); err != nil {
		return nil, &ConversionError{Property: path, Type: valueType, Text: string(data), Err: err}
	}
	if declared.Kind() == reflect.Pointer {
		return ptr.Interface(), nil
	}
	return ptr.Elem().Interface(), nil
}

// encodeExternal marshals value as an element called name.
func encodeExternal(path string, valueType reflect.Type, value any, name string) (*etree.Element, error) {
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Type() != valueType {
		return nil, &IncompatibleAssignmentError{Property: path, Want: valueType.String(), Got: rv.Type().String()}
	}
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	ptr := reflect.New(valueType)
	ptr.Elem().Set(rv)
	if err := enc.EncodeElement(ptr.Interface(), xml.StartElement{Name: xml.Name{Local: name}}); err != nil {
		return nil, &ConversionError{Property: path, Type: valueType, Err: err}
	}
	if err := enc.Flush(); err != nil {
		return nil, &ConversionError{Property: path, Type: valueType, Err: err}
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(buf.Bytes()); err != nil {
		return nil, &ConversionError{Property: path, Type: valueType, Text: buf.String(), Err: err}
	}
	root := doc.Root()
	if root == nil {
		return etree.NewElement(name), nil
	}
	doc.RemoveChild(root)
	root.Space, root.Tag = "", name
	return root, nil
}
