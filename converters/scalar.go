package converters

// ConverterFunc converts a value between its XML text form and a Go value.
// Text-to-value converters receive a string; value-to-text converters return a
// string, or nil when the value is null and the node should be removed.
type ConverterFunc func(src any) (any, error)

// Scalar describes how one Go type is carried as XML text.
type Scalar struct {
	// Names are the XML type names of the Go type. The first one names
	// collection item elements; all of them are accepted as xsi:type hints.
	Names    []string
	FromText ConverterFunc
	ToText   ConverterFunc
}

// Name returns the item element name, or "" when the scalar has no names.
func (s Scalar) Name() string {
	if len(s.Names) == 0 {
		return ""
	}
	return s.Names[0]
}

// Accepts reports whether an xsi:type local name denotes this scalar.
func (s Scalar) Accepts(local string) bool {
	for _, n := range s.Names {
		if n == local {
			return true
		}
	}
	return false
}
