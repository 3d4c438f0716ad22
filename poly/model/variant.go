package model

import (
	"reflect"

	"github.com/cockroachdb/polycollection/poly"
	"github.com/cockroachdb/polycollection/poly/variant"
)

// Variant implements spec.md §4.2's closed-alternatives model: a fixed,
// caller-declared set of concrete types, the only one of the four built-in
// models whose Subtype check is a genuine finite membership test rather
// than an unconditional true. The polymorphic view is a variant.Variant
// tagged reference into the stored element.
type Variant struct {
	types []reflect.Type
	index map[reflect.Type]int
}

// NewVariant declares a closed-alternatives model over exactly these
// types. The slice is retained, not copied; pass the same value to every
// Collection meant to compare variant.Variant tags against one another.
func NewVariant(types ...reflect.Type) *Variant {
	idx := make(map[reflect.Type]int, len(types))
	for i, t := range types {
		idx[t] = i
	}
	return &Variant{types: types, index: idx}
}

// Accept requires t to be one of the declared alternatives.
func (m *Variant) Accept(t reflect.Type) error {
	if _, ok := m.index[t]; !ok {
		return &poly.UnregisteredTypeError{Type: t}
	}
	return nil
}

// Subtype reports genuine closed membership, unlike the other three
// built-in models.
func (m *Variant) Subtype(t reflect.Type) bool {
	_, ok := m.index[t]
	return ok
}

// Terminal always returns true: each alternative is itself a concrete,
// non-polymorphic Go type.
func (m *Variant) Terminal(t reflect.Type) bool { return true }

// DynamicType returns the exact concrete type boxed in x.
func (m *Variant) DynamicType(x any) reflect.Type { return reflect.TypeOf(x) }

// NewBackend returns a split segment: a variant.Variant reference must be
// rebuilt per element, not simply cast from an address.
func (m *Variant) NewBackend(t reflect.Type) poly.SegmentBackend {
	return poly.NewSplitSegment[variant.Variant](t, m.View)
}

// View builds the variant.Variant referencing elem. Accept having already
// validated t's membership, the underlying variant.New construction
// cannot fail here.
func (m *Variant) View(t reflect.Type, elem reflect.Value) variant.Variant {
	v, err := variant.New(m.types, elem)
	if err != nil {
		panic(err)
	}
	return v
}
