package xmladapter

import (
	"fmt"

	"github.com/goccy/go-json"
)

// convert serializes the input to JSON and deserializes it into the target output.
// Field matching follows encoding/json rules, so output fields line up with
// the Go or json names of the shape's properties.
func convert[Input any, Output any](input Input, output *Output) error {
	data, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("xmladapter: marshal failed: %w", err)
	}
	if err = json.Unmarshal(data, output); err != nil {
		return fmt.Errorf("xmladapter: unmarshal failed: %w", err)
	}
	return nil
}

// MarshalJSON renders the properties present in the document. Absent
// scalars, virtual children and empty lists are left out.
func (v *View) MarshalJSON() ([]byte, error) {
	m, err := v.snapshot()
	if err != nil {
		return nil, err
	}
	return json.Marshal(m)
}

func (v *View) snapshot() (map[string]any, error) {
	out := make(map[string]any, len(v.shape.properties))
	for _, p := range v.shape.properties {
		key := p.JSONName
		if key == "" {
			key = p.Name
		}
		value, err := v.binding.get(p)
		if err != nil {
			return nil, err
		}
		switch p.Kind {
		case KindScalar, KindExternal:
			if value != nil {
				out[key] = value
			}
		case KindComplex:
			child := value.(*View)
			if child.IsVirtual() {
				continue
			}
			if out[key], err = child.snapshot(); err != nil {
				return nil, err
			}
		case KindCollection:
			items, err := value.(*List).Values()
			if err != nil {
				return nil, err
			}
			if len(items) == 0 {
				continue
			}
			for i, item := range items {
				if iv, ok := item.(*View); ok {
					if items[i], err = iv.snapshot(); err != nil {
						return nil, err
					}
				}
			}
			out[key] = items
		}
	}
	return out, nil
}

// Decode copies the current content of a view into a new T, typically the
// shape struct itself.
func Decode[T any](v *View) (*T, error) {
	m, err := v.snapshot()
	if err != nil {
		return nil, err
	}
	var result T
	if err = convert(m, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
