package xmladapter

import (
	"reflect"

	"github.com/Station-Manager/xmladapter/converters"
)

// Builder provides a fluent API to construct an Adapter with options, converters, validators and shape defaults pre-registered.
type Builder struct {
	opts     []Option
	convs    map[reflect.Type]converters.Scalar
	valsG    map[string]ValidatorFunc
	valsS    map[reflect.Type]map[string]ValidatorFunc
	defaults map[reflect.Type]Defaults
	warm     []any
}

// NewBuilder creates a new builder.
func NewBuilder() *Builder {
	return &Builder{
		convs:    make(map[reflect.Type]converters.Scalar),
		valsG:    make(map[string]ValidatorFunc),
		valsS:    make(map[reflect.Type]map[string]ValidatorFunc),
		defaults: make(map[reflect.Type]Defaults),
	}
}

// WithOptions appends adapter options to the builder.
func (b *Builder) WithOptions(opts ...Option) *Builder { b.opts = append(b.opts, opts...); return b }

// AddConverter registers a scalar converter for the type of sample.
func (b *Builder) AddConverter(sample any, s converters.Scalar) *Builder {
	b.convs[typeOf(sample)] = s
	return b
}

// AddValidator registers a global validator by property name.
func (b *Builder) AddValidator(property string, fn ValidatorFunc) *Builder {
	b.valsG[property] = fn
	return b
}

// AddValidatorFor registers a validator for a shape and property name.
func (b *Builder) AddValidatorFor(shape any, property string, fn ValidatorFunc) *Builder {
	st := typeOf(shape)
	m := b.valsS[st]
	if m == nil {
		m = make(map[string]ValidatorFunc)
		b.valsS[st] = m
	}
	m[property] = fn
	return b
}

// AddDefaults registers the defaults of a shape.
func (b *Builder) AddDefaults(shape any, d Defaults) *Builder {
	b.defaults[typeOf(shape)] = d
	return b
}

// Warm queues shapes to derive once the adapter is built.
func (b *Builder) Warm(examples ...any) *Builder { b.warm = append(b.warm, examples...); return b }

// Build constructs an Adapter using a single registry swap for converters, validators and defaults.
func (b *Builder) Build() *Adapter {
	a := NewWithOptions(b.opts...)
	creg := &converterRegistry{byType: builtinScalars()}
	for t, s := range b.convs {
		creg.byType[t] = s
	}
	a.converters.Store(creg)
	vreg := &validatorRegistry{global: make(map[string]ValidatorFunc, len(b.valsG)), byShape: make(map[reflect.Type]map[string]ValidatorFunc, len(b.valsS))}
	for k, v := range b.valsG {
		vreg.global[k] = v
	}
	for t, m := range b.valsS {
		sub := make(map[string]ValidatorFunc, len(m))
		for k, v := range m {
			sub[k] = v
		}
		vreg.byShape[t] = sub
	}
	a.validators.Store(vreg)
	dreg := &defaultsRegistry{byShape: make(map[reflect.Type]Defaults, len(b.defaults))}
	for t, d := range b.defaults {
		dreg.byShape[t] = d
	}
	a.defaults.Store(dreg)
	a.WarmMetadata(b.warm...)
	return a
}
