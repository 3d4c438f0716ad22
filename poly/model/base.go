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

// Package model implements the built-in policies a poly.Collection can be
// parameterised over: base-class (interface-implementing structs, split
// by concrete type), open type-erasure (any concrete type, no shared
// interface required), callable-signature (functions sharing one
// signature), and closed-alternatives (a fixed, declared set of types).
//
// Base uses poly.NewPackedSegment, since its view is a bare interface
// conversion off an element's address; Any, Function and Variant use
// poly.NewSplitSegment instead, since each of their views (a proxy
// struct, a bound method value, a tagged reference) must be rebuilt per
// element rather than cast from a live address.
package model

import (
	"reflect"

	"github.com/cockroachdb/polycollection/poly"
)

// Base implements spec.md §4.2's base-class model: V is an interface type
// (B), and any concrete struct type implementing B, by value or by
// pointer, may be stored. DynamicType always returns x's own concrete
// type, since Go gives no slicing: reflect.TypeOf on a concrete value is
// always the exact type that was stored, never an ancestor.
type Base[B any] struct{}

// baseIfaceType returns the reflect.Type describing interface B.
func baseIfaceType[B any]() reflect.Type {
	return reflect.TypeOf((*B)(nil)).Elem()
}

// Accept requires t to be a concrete (non-interface) type whose value, or
// pointer to it, implements B.
func (Base[B]) Accept(t reflect.Type) error {
	iface := baseIfaceType[B]()
	if t.Kind() == reflect.Interface {
		return &poly.UnregisteredTypeError{Type: t}
	}
	if t.Implements(iface) || reflect.PtrTo(t).Implements(iface) {
		return nil
	}
	return &poly.UnregisteredTypeError{Type: t}
}

// Subtype always returns true: Base is an open model, any type accepted
// by Accept may be registered, there is no further closed membership
// check to perform beyond that.
func (Base[B]) Subtype(t reflect.Type) bool { return true }

// Terminal always returns true: a concrete Go type never has further
// runtime subtypes of itself the way a C++ class hierarchy might.
func (Base[B]) Terminal(t reflect.Type) bool { return true }

// DynamicType returns the exact concrete type boxed in x.
func (Base[B]) DynamicType(x any) reflect.Type { return reflect.TypeOf(x) }

// NewBackend returns a packed segment: View for the base model is a bare
// interface conversion off the element's address, requiring no cached
// proxy.
func (Base[B]) NewBackend(t reflect.Type) poly.SegmentBackend {
	return poly.NewPackedSegment(t)
}

// View builds B from elem, preferring a pointer receiver when t itself
// does not implement B but *t does (so mutations through the returned
// interface, where the method set allows it, observe and affect the
// stored element).
func (Base[B]) View(t reflect.Type, elem reflect.Value) B {
	iface := baseIfaceType[B]()
	var x any
	if t.Implements(iface) {
		x = elem.Interface()
	} else {
		x = elem.Addr().Interface()
	}
	return x.(B)
}
