// Package xmladapter reads and writes XML documents through Go struct types.
//
// A struct type is a shape: its exported fields name the properties a View
// exposes. Nothing is copied out of the document; every Get reads the XML and
// every Set edits it in place.
//
// # Basic Usage
//
//	type Foo struct {
//	    Name string
//	    Bar  Bar
//	    Tags []string
//	}
//
//	a := xmladapter.New()
//	foo, err := xmladapter.Create[Foo](a, `<Foo Name='n'><Bar/></Foo>`)
//	name, err := xmladapter.Value[string](foo, "Name")
//	err = foo.Set("Name", "renamed")
//
// # Property Kinds
//
// Each field is classified once per shape:
//  1. Scalar: a type with a registered converter, a TextMarshaler, or a named
//     type of a basic kind. Read from an attribute of that name when present,
//     otherwise from the child element. Written to the existing attribute, or
//     to a child element.
//  2. External: a type implementing xml.Unmarshaler or a field tagged
//     `adapter:",external"`. The child element is handed to encoding/xml.
//  3. Collection: a slice or array. Items are the child elements of a wrapper
//     element, named after the item converter ("int", "string", ...) or the
//     item shape.
//  4. Complex: any other struct. Get returns a *View of the child element,
//     virtual until something is written beneath it.
//
// # Struct Tags
//
//	type Order struct {
//	    XMLName xml.Name `adapter:"order"`         // element name of the shape
//	    ID      string   `adapter:"id,attr"`        // attribute only
//	    Note    string   `adapter:"note,nullable"`  // nil writes xsi:nil="true"
//	    Lines   []Line   `adapter:"lines,item=line"`
//	    Secret  string   `adapter:"-"`              // not a property
//	}
//
// Embedded struct fields (including pointer-to-struct) are flattened and treated
// as if they were defined directly in the parent struct.
//
// # Nullability
//
// Assigning nil removes the attribute and element of a property. Properties
// tagged nullable, properties of shapes whose Defaults say IsNullable, and
// every property when Config.Nullable is set are written as an element
// carrying the nil marker instead. An element carrying the marker reads as nil.
//
// # Coercion
//
// View.Coerce and Coerce[T] view the same element through another shape. All
// views of one element share a Binding, and with it their child views and lists.
//
// # Thread Safety
//
// The Adapter is safe for concurrent use. Multiple goroutines can open documents and register
// converters/validators concurrently. Internals use copy-on-write registries and cached shapes.
// A Document and the views, bindings and lists it hands out are not safe for concurrent use.
package xmladapter
