package xmladapter

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/Station-Manager/errors"
	"github.com/Station-Manager/xmladapter/converters"
	"github.com/beevik/etree"
	"go.uber.org/zap"
)

// Options configure an Adapter.
type Options struct {
	IncludeZeroValues bool        // when true, Store writes zero-valued struct fields
	Config            Config      // document conventions (nil marker, nullability, indentation)
	Logger            *zap.Logger // nil means no logging
}

type Option func(*Options)

func WithIncludeZeroValues(v bool) Option { return func(o *Options) { o.IncludeZeroValues = v } }
func WithConfig(c Config) Option { return func(o *Options) { o.Config = c } }
func WithLogger(l *zap.Logger) Option { return func(o *Options) { o.Logger = l } }
func WithNullable(v bool) Option { return func(o *Options) { o.Config.Nullable = v } }
func WithNilMarker(m NilMarker) Option { return func(o *Options) { o.Config.NilMarker = m } }
func WithIndent(spaces int) Option { return func(o *Options) { o.Config.Indent = spaces } }

// converterRegistry stores scalar converters by Go type and is swapped atomically (copy-on-write)
type converterRegistry struct {
	byType map[reflect.Type]converters.Scalar
}

// ValidatorFunc checks a value before it is written to the document.
type ValidatorFunc func(value any) error

// validatorRegistry holds global (by property name) and shape-scoped validators.
type validatorRegistry struct {
	global  map[string]ValidatorFunc
	byShape map[reflect.Type]map[string]ValidatorFunc
}

// defaultsRegistry stores shape defaults registered from outside the shape type.
type defaultsRegistry struct {
	byShape map[reflect.Type]Defaults
}

// Adapter derives shapes and opens documents. It is safe for concurrent use;
// the documents and views it creates are not.
type Adapter struct {
	converters atomic.Value // holds *converterRegistry
	validators atomic.Value // holds *validatorRegistry
	defaults   atomic.Value // holds *defaultsRegistry
	shapeCache sync.Map     // map[reflect.Type]*Shape
	options    Options
	log        *zap.Logger
}

// New creates an Adapter with default options.
func New() *Adapter { return NewWithOptions() }

// NewWithOptions creates a new Adapter with provided options.
func NewWithOptions(opts ...Option) *Adapter {
	a := &Adapter{}
	optsState := Options{Config: DefaultConfig()}
	for _, f := range opts {
		f(&optsState)
	}
	if optsState.Logger == nil {
		optsState.Logger = zap.NewNop()
	}
	a.options = optsState
	a.log = optsState.Logger.Named("xmladapter")
	a.converters.Store(&converterRegistry{byType: builtinScalars()})
	a.validators.Store(&validatorRegistry{global: make(map[string]ValidatorFunc), byShape: make(map[reflect.Type]map[string]ValidatorFunc)})
	a.defaults.Store(&defaultsRegistry{byShape: make(map[reflect.Type]Defaults)})
	return a
}

// Options returns a copy of the adapter's options.
func (a *Adapter) Options() Options { return a.options }

// RegisterConverter adds or replaces the scalar converter for the type of
// sample. Shapes derived before the call are dropped from the cache.
func (a *Adapter) RegisterConverter(sample any, s converters.Scalar) {
	old := a.converters.Load().(*converterRegistry)
	newReg := &converterRegistry{byType: make(map[reflect.Type]converters.Scalar, len(old.byType)+1)}
	for k, v := range old.byType {
		newReg.byType[k] = v
	}
	newReg.byType[typeOf(sample)] = s
	a.converters.Store(newReg)
	a.shapeCache.Clear()
}

// RegisterValidator adds a global validator for a property name.
func (a *Adapter) RegisterValidator(property string, fn ValidatorFunc) {
	newReg := a.validatorRegistry().clone()
	newReg.global[property] = fn
	a.validators.Store(newReg)
}

// RegisterValidatorFor adds a validator scoped to one shape; it takes
// precedence over a global validator of the same property name.
func (a *Adapter) RegisterValidatorFor(shape any, property string, fn ValidatorFunc) {
	newReg := a.validatorRegistry().clone()
	t := typeOf(shape)
	m := newReg.byShape[t]
	if m == nil {
		m = make(map[string]ValidatorFunc)
		newReg.byShape[t] = m
	}
	m[property] = fn
	a.validators.Store(newReg)
}

func (r *validatorRegistry) clone() *validatorRegistry {
	newReg := &validatorRegistry{global: make(map[string]ValidatorFunc, len(r.global)+1), byShape: make(map[reflect.Type]map[string]ValidatorFunc, len(r.byShape)+1)}
	for k, v := range r.global {
		newReg.global[k] = v
	}
	for k, v := range r.byShape {
		m := make(map[string]ValidatorFunc, len(v)+1)
		for fk, fv := range v {
			m[fk] = fv
		}
		newReg.byShape[k] = m
	}
	return newReg
}

func (a *Adapter) validatorRegistry() *validatorRegistry {
	return a.validators.Load().(*validatorRegistry)
}

// runValidators applies the shape-scoped validator of p, or failing that the
// global one. Nil values are not validated.
func (a *Adapter) runValidators(shape *Shape, p *Property, value any) error {
	if isNilValue(value) {
		return nil
	}
	vreg := a.validatorRegistry()
	fn := vreg.byShape[shape.typ][p.Name]
	if fn == nil {
		fn = vreg.global[p.Name]
	}
	if fn == nil {
		return nil
	}
	if err := fn(value); err != nil {
		return fmt.Errorf("xmladapter: validating %s: %w", p.path(), err)
	}
	return nil
}

// RegisterDefaults sets the defaults of a shape, taking precedence over an
// XMLDefaults method on the shape itself.
func (a *Adapter) RegisterDefaults(shape any, d Defaults) {
	old := a.defaults.Load().(*defaultsRegistry)
	newReg := &defaultsRegistry{byShape: make(map[reflect.Type]Defaults, len(old.byShape)+1)}
	for k, v := range old.byShape {
		newReg.byShape[k] = v
	}
	t := typeOf(shape)
	newReg.byShape[t] = d
	a.defaults.Store(newReg)
	a.shapeCache.Delete(t)
}

// WarmMetadata pre-builds shapes for provided example values or types (pass either a value or a *T or T).
func (a *Adapter) WarmMetadata(examples ...any) {
	for _, e := range examples {
		if e == nil {
			continue
		}
		t := typeOf(e)
		if t.Kind() != reflect.Struct {
			continue
		}
		_, _ = a.getOrBuildShape(t)
	}
}

// ShapeOf returns the shape of a struct type given as a value, a pointer or a
// reflect.Type.
func (a *Adapter) ShapeOf(sample any) (*Shape, error) {
	const op errors.Op = "xmladapter.Adapter.ShapeOf"
	if sample == nil {
		return nil, errors.New(op).Msg("shape sample must not be nil")
	}
	return a.getOrBuildShape(typeOf(sample))
}

// Parse reads a document from XML text.
func (a *Adapter) Parse(text string) (*Document, error) {
	return a.ParseBytes([]byte(text))
}

// ParseBytes reads a document from XML bytes.
func (a *Adapter) ParseBytes(b []byte) (*Document, error) {
	return a.ReadFrom(bytes.NewReader(b))
}

// ReadFrom reads a document from r.
func (a *Adapter) ReadFrom(r io.Reader) (*Document, error) {
	const op errors.Op = "xmladapter.Adapter.ReadFrom"
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, errors.New(op).Err(err)
	}
	return a.Wrap(doc), nil
}

// Wrap binds an existing etree document. The document stays owned by the
// caller; edits made through views are applied to it directly.
func (a *Adapter) Wrap(doc *etree.Document) *Document {
	return newDocument(a, doc)
}

// NewDocument returns an empty document. Its root element is created on the
// first write through a view bound to it.
func (a *Adapter) NewDocument() *Document {
	return newDocument(a, etree.NewDocument())
}

func (a *Adapter) scalarRegistry() *converterRegistry {
	return a.converters.Load().(*converterRegistry)
}

func (a *Adapter) registeredDefaults(t reflect.Type) (Defaults, bool) {
	d, ok := a.defaults.Load().(*defaultsRegistry).byShape[t]
	return d, ok
}

// typeOf resolves a shape or converter sample to its non-pointer type.
func typeOf(sample any) reflect.Type {
	t, ok := sample.(reflect.Type)
	if !ok {
		t = reflect.TypeOf(sample)
	}
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
