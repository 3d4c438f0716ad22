package model

import (
	"reflect"

	"github.com/cockroachdb/polycollection/poly"
)

// Function implements spec.md §4.2's callable-signature model: every
// stored concrete type is a distinct closure type sharing one call
// signature, Sig (itself a func type); the polymorphic view is Sig
// itself, a plain callable value, the Go analogue of std::function<Sig>.
//
// A concrete type opts in by exposing a Call method whose signature
// (minus the receiver) matches Sig exactly; the view is then that bound
// method value, which Go's runtime already represents as a func of
// exactly that type, no trampoline required.
type Function[Sig any] struct{}

func sigType[Sig any]() reflect.Type {
	return reflect.TypeOf((*Sig)(nil)).Elem()
}

// callMethod locates t's (or *t's) Call method, reporting its Type and
// whether it was found on the pointer receiver.
func callMethod(t reflect.Type) (m reflect.Method, onPtr bool, ok bool) {
	if m, ok = t.MethodByName("Call"); ok {
		return m, false, true
	}
	pt := reflect.PtrTo(t)
	if m, ok = pt.MethodByName("Call"); ok {
		return m, true, true
	}
	return reflect.Method{}, false, false
}

// Accept requires t to be a concrete type with a Call method whose
// signature, excluding the receiver, is exactly Sig.
func (Function[Sig]) Accept(t reflect.Type) error {
	if t.Kind() == reflect.Interface {
		return &poly.UnregisteredTypeError{Type: t}
	}
	m, _, ok := callMethod(t)
	if !ok {
		return &poly.UnregisteredTypeError{Type: t}
	}
	// m.Type includes the receiver as its first parameter; strip it before
	// comparing against Sig.
	want := sigType[Sig]()
	got := m.Type
	if got.NumIn()-1 != want.NumIn() || got.NumOut() != want.NumOut() {
		return &poly.UnregisteredTypeError{Type: t}
	}
	for i := 0; i < want.NumIn(); i++ {
		if got.In(i+1) != want.In(i) {
			return &poly.UnregisteredTypeError{Type: t}
		}
	}
	for i := 0; i < want.NumOut(); i++ {
		if got.Out(i) != want.Out(i) {
			return &poly.UnregisteredTypeError{Type: t}
		}
	}
	return nil
}

// Subtype always returns true: Function is an open model, like Any.
func (Function[Sig]) Subtype(t reflect.Type) bool { return true }

// Terminal always returns true.
func (Function[Sig]) Terminal(t reflect.Type) bool { return true }

// DynamicType returns the exact concrete closure type boxed in x.
func (Function[Sig]) DynamicType(x any) reflect.Type { return reflect.TypeOf(x) }

// NewBackend returns a split segment: the callable view is a bound method
// value, which must be (re)computed per element rather than cast from a
// bare address.
func (f Function[Sig]) NewBackend(t reflect.Type) poly.SegmentBackend {
	return poly.NewSplitSegment[Sig](t, f.View)
}

// View returns the bound Call method of elem as a value of type Sig.
func (Function[Sig]) View(t reflect.Type, elem reflect.Value) Sig {
	_, onPtr, _ := callMethod(t)
	target := elem
	if onPtr {
		target = elem.Addr()
	}
	bound := target.MethodByName("Call")
	return bound.Interface().(Sig)
}
