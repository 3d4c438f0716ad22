package model

import (
	"reflect"

	"github.com/cockroachdb/polycollection/poly"
)

// Value is the polymorphic view produced by Any: a small runtime proxy
// standing in for the type-erased "any" cell of spec.md §4.2's open
// type-erasure model, since a bare Go any loses the addressability an
// in-place-mutating caller needs.
type Value struct {
	t    reflect.Type
	elem reflect.Value // addressable
}

// Type reports the concrete type currently boxed.
func (v Value) Type() reflect.Type { return v.t }

// Interface returns the boxed value as an any, a copy of the stored
// element.
func (v Value) Interface() any { return v.elem.Interface() }

// Addr returns the addressable reflect.Value of the stored element,
// allowing in-place mutation the way a C++ any_cast<T&> would.
func (v Value) Addr() reflect.Value { return v.elem }

// As attempts to assign the boxed value into dst, a non-nil pointer of the
// exact boxed type, reporting whether the assignment happened.
func (v Value) As(dst any) bool {
	dv := reflect.ValueOf(dst)
	if dv.Kind() != reflect.Ptr || dv.Elem().Type() != v.t {
		return false
	}
	dv.Elem().Set(v.elem)
	return true
}

// Any implements spec.md §4.2's open type-erasure model: every concrete,
// non-interface type is acceptable, with no shared-interface requirement
// at all. It is the Go analogue of boost::any stored type-segregated by
// concrete type.
type Any struct{}

// Accept rejects only interface types; anything concrete is storable.
func (Any) Accept(t reflect.Type) error {
	if t.Kind() == reflect.Interface {
		return &poly.UnregisteredTypeError{Type: t}
	}
	return nil
}

// Subtype always returns true: Any has no closed membership beyond Accept.
func (Any) Subtype(t reflect.Type) bool { return true }

// Terminal always returns true, for the same reason as Base: Go concrete
// types carry no further runtime subtype of themselves.
func (Any) Terminal(t reflect.Type) bool { return true }

// DynamicType returns the exact concrete type boxed in x.
func (Any) DynamicType(x any) reflect.Type { return reflect.TypeOf(x) }

// NewBackend returns a split segment: Value must be built per element
// (the (type, addr) pair), not simply cast from an address the way Base's
// interface conversion is.
func (Any) NewBackend(t reflect.Type) poly.SegmentBackend {
	return poly.NewSplitSegment[Value](t, Any{}.View)
}

// View builds the Value proxy for elem.
func (Any) View(t reflect.Type, elem reflect.Value) Value {
	return Value{t: t, elem: elem}
}
