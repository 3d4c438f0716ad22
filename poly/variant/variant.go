// Copyright 2018 The Cockroach Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License. See the AUTHORS file
// for names of contributors.

// Package variant implements a sum-type-over-references (spec.md §4.10):
// a value that holds exactly one reference into externally-owned storage,
// tagged with which of a declared, closed set of alternative types that
// reference actually points at. It is used only by the closed-alternatives
// (variant) model, but is otherwise independent of the rest of the engine.
package variant

import (
	"fmt"
	"reflect"
)

// BadVariantAccessError is returned by Get when it is asked to treat a
// Variant as an alternative it does not currently hold.
type BadVariantAccessError struct {
	Want reflect.Type
	Have reflect.Type
}

func (e *BadVariantAccessError) Error() string {
	return fmt.Sprintf("variant: bad access: holds %s, asked for %s", e.Have, e.Want)
}

// Variant references exactly one of a declared, closed set of alternative
// types. It never reaches a "valueless" state: construction fails
// outright if the referenced value's type is not one of the declared
// alternatives.
type Variant struct {
	types []reflect.Type
	tag   int
	elem  reflect.Value // addressable; Type() == types[tag]
}

// New constructs a Variant over elem (which must be addressable) given the
// closed set of declared alternative types. types is shared, not copied;
// callers should pass the same slice for every Variant drawn from one
// model so that Index values remain comparable across them.
func New(types []reflect.Type, elem reflect.Value) (Variant, error) {
	for i, t := range types {
		if t == elem.Type() {
			return Variant{types: types, tag: i, elem: elem}, nil
		}
	}
	return Variant{}, fmt.Errorf("variant: %s is not a declared alternative", elem.Type())
}

// Index returns the tag of the currently-held alternative: its position
// within the declared type list.
func (v Variant) Index() int { return v.tag }

// Type returns the declared type of the currently-held alternative.
func (v Variant) Type() reflect.Type { return v.types[v.tag] }

// Elem returns the addressable reflect.Value referenced by v.
func (v Variant) Elem() reflect.Value { return v.elem }

// HoldsAlternative reports whether v currently holds type t.
func (v Variant) HoldsAlternative(t reflect.Type) bool { return v.Type() == t }

// GetIf returns the addressable reflect.Value held by v if its type is t,
// or the zero Value otherwise.
func (v Variant) GetIf(t reflect.Type) reflect.Value {
	if !v.HoldsAlternative(t) {
		return reflect.Value{}
	}
	return v.elem
}

// Get returns the addressable reflect.Value held by v if its type is t,
// or a BadVariantAccessError otherwise.
func (v Variant) Get(t reflect.Type) (reflect.Value, error) {
	if !v.HoldsAlternative(t) {
		return reflect.Value{}, &BadVariantAccessError{Want: t, Have: v.Type()}
	}
	return v.elem, nil
}

// Visit dispatches on v's tag: handlers must be parallel to the type list
// v was built from, and the handler matching v's tag is invoked with v's
// referenced value, its result returned directly.
func Visit[R any](v Variant, handlers []func(reflect.Value) R) R {
	return handlers[v.tag](v.elem)
}

// Equal reports whether a and b hold the same tag and equal values,
// recovering from the runtime panic Go raises when the held alternative's
// dynamic value turns out to be non-comparable (e.g. one containing a
// slice) and reporting that as eq == false, err != nil instead.
func Equal(a, b Variant) (eq bool, err error) {
	if a.tag != b.tag {
		return false, nil
	}
	defer func() {
		if r := recover(); r != nil {
			eq = false
			err = fmt.Errorf("variant: %s is not equality-comparable", a.Type())
		}
	}()
	return a.elem.Interface() == b.elem.Interface(), nil
}

// Compare lexicographically orders a and b by (tag, value), requiring the
// held type to implement a Compare(other) int method or to be one of Go's
// ordered basic kinds; any other held type makes Compare return an error.
func Compare(a, b Variant) (int, error) {
	if a.tag != b.tag {
		return a.tag - b.tag, nil
	}
	if cmp, ok := a.elem.Interface().(interface{ Compare(any) int }); ok {
		return cmp.Compare(b.elem.Interface()), nil
	}
	switch a.elem.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		ai, bi := a.elem.Int(), b.elem.Int()
		switch {
		case ai < bi:
			return -1, nil
		case ai > bi:
			return 1, nil
		default:
			return 0, nil
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		au, bu := a.elem.Uint(), b.elem.Uint()
		switch {
		case au < bu:
			return -1, nil
		case au > bu:
			return 1, nil
		default:
			return 0, nil
		}
	case reflect.Float32, reflect.Float64:
		af, bf := a.elem.Float(), b.elem.Float()
		switch {
		case af < bf:
			return -1, nil
		case af > bf:
			return 1, nil
		default:
			return 0, nil
		}
	case reflect.String:
		as, bs := a.elem.String(), b.elem.String()
		switch {
		case as < bs:
			return -1, nil
		case as > bs:
			return 1, nil
		default:
			return 0, nil
		}
	default:
		return 0, fmt.Errorf("variant: %s does not support ordering", a.Type())
	}
}
