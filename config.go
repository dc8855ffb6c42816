package xmladapter

import (
	"io"
	"strings"

	"github.com/Station-Manager/errors"
	"gopkg.in/yaml.v3"
)

const (
	XSINamespace = "http://www.w3.org/2001/XMLSchema-instance"
	XSDNamespace = "http://www.w3.org/2001/XMLSchema"
)

// NilMarker is the attribute written on an element to state that a nullable
// property is explicitly null.
type NilMarker struct {
	Attr      string `yaml:"attr"`      // qualified name, e.g. "xsi:nil"
	Value     string `yaml:"value"`     // e.g. "true"
	Namespace string `yaml:"namespace"` // declared for the prefix when no declaration is in scope
}

func (m NilMarker) split() (prefix, local string) {
	if i := strings.IndexByte(m.Attr, ':'); i >= 0 {
		return m.Attr[:i], m.Attr[i+1:]
	}
	return "", m.Attr
}

// Config holds the document conventions of an Adapter.
type Config struct {
	Nullable  bool      `yaml:"nullable"`   // every property is nullable
	NilMarker NilMarker `yaml:"nil_marker"` // marker written for nullable properties set to nil
	Indent    int       `yaml:"indent"`     // spaces per level when writing documents; 0 writes compactly
}

// DefaultConfig returns the xsi:nil conventions.
func DefaultConfig() Config {
	return Config{
		NilMarker: NilMarker{Attr: "xsi:nil", Value: "true", Namespace: XSINamespace},
	}
}

// LoadConfig reads a YAML config. Missing keys keep their DefaultConfig value.
func LoadConfig(r io.Reader) (Config, error) {
	const op errors.Op = "xmladapter.LoadConfig"
	cfg := DefaultConfig()
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, errors.New(op).Err(err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.New(op).Err(err)
	}
	return cfg, nil
}

// Validate checks that the nil marker is usable.
func (c Config) Validate() error {
	const op errors.Op = "xmladapter.Config.Validate"
	prefix, local := c.NilMarker.split()
	if local == "" {
		return errors.New(op).Msg("nil marker attribute must not be empty")
	}
	if prefix != "" && c.NilMarker.Namespace == "" {
		return errors.New(op).Errorf("nil marker prefix %q has no namespace", prefix)
	}
	if c.Indent < 0 {
		return errors.New(op).Errorf("indent must not be negative, got %d", c.Indent)
	}
	return nil
}
