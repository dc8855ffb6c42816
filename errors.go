package xmladapter

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrConversion is matched by every *ConversionError.
	ErrConversion = errors.New("xmladapter: conversion failed")
	// ErrIncompatibleAssignment is matched by every *IncompatibleAssignmentError.
	ErrIncompatibleAssignment = errors.New("xmladapter: incompatible assignment")
	// ErrUnknownProperty is returned when a shape has no property of the given name.
	ErrUnknownProperty = errors.New("xmladapter: unknown property")
)

// ConversionError reports text that cannot be converted to, or a value that
// cannot be converted from, the declared type of a property. It is distinct
// from an absent property, which is never an error.
type ConversionError struct {
	Property string
	Type     reflect.Type
	Text     string
	Err      error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("xmladapter: property %s: cannot convert %q to %s: %v", e.Property, e.Text, e.Type, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

func (e *ConversionError) Is(target error) bool { return target == ErrConversion }

// IncompatibleAssignmentError reports a value that cannot be assigned to a
// property, such as a view of an unrelated shape assigned to a complex property.
type IncompatibleAssignmentError struct {
	Property string
	Want     string
	Got      string
}

func (e *IncompatibleAssignmentError) Error() string {
	return fmt.Sprintf("xmladapter: property %s: cannot assign %s, want %s", e.Property, e.Got, e.Want)
}

func (e *IncompatibleAssignmentError) Is(target error) bool { return target == ErrIncompatibleAssignment }

func unknownProperty(shape *Shape, name string) error {
	return fmt.Errorf("%w: %s.%s", ErrUnknownProperty, shape.Name(), name)
}
