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

package poly

import "reflect"

// SegmentBackend is the uniform, virtual-dispatch contract a per-concrete-
// type storage strategy must satisfy (spec.md §4.3). It is the only
// interface boundary in the engine; everything above it (Collection,
// iterators, the segment facade) is written purely in terms of this
// contract and never type-switches on the concrete backend.
//
// The element-constructing operations (EmplaceBack, Emplace, PushBack,
// Insert) return the index of the new element, which Collection uses to
// build the iterator it hands back. Reserve, ShrinkToFit, Erase,
// EraseRange and Clear return nothing; callers read Len() afterwards when
// they need the new end of the segment.
type SegmentBackend interface {
	// Type is the concrete type this backend stores.
	Type() reflect.Type

	// Len, Cap and MaxSize report element count, current storage
	// capacity, and the theoretical capacity ceiling.
	Len() int
	Cap() int
	MaxSize() int

	// Reserve ensures capacity for at least n elements, reallocating if
	// necessary. It offers the strong exception guarantee.
	Reserve(n int)
	// ShrinkToFit releases unused capacity on a best-effort basis.
	ShrinkToFit()

	// EmplaceBack type-erased-constructs a new element at the end via
	// ctor, which must populate the addressable, zero-valued dst it is
	// given. Returns the index of the new element.
	EmplaceBack(ctor func(dst reflect.Value)) int
	// Emplace is the positional form of EmplaceBack.
	Emplace(pos int, ctor func(dst reflect.Value)) int
	// PushBack appends a copy of src, which must be assignable to Type().
	PushBack(src reflect.Value) int
	// Insert is the positional form of PushBack.
	Insert(pos int, src reflect.Value) int

	// Erase removes the element at pos. EraseRange removes [first,last).
	Erase(pos int)
	EraseRange(first, last int)
	// Clear removes every element but retains backing capacity.
	Clear()

	// ElemAt returns an addressable reflect.Value of Type() referencing
	// the live storage at index i. The caller must not retain it across a
	// mutating call.
	ElemAt(i int) reflect.Value

	// Copy returns a new backend with the same contents, failing with
	// NotCopyConstructibleError if Type() opted out of copying.
	Copy() (SegmentBackend, error)
	// EmptyCopy returns a new, empty backend of the same concrete type.
	EmptyCopy() SegmentBackend
	// Equal reports element-wise equality against another backend of the
	// same concrete type, failing with NotEqualityComparableError if
	// Type() opted out of equality.
	Equal(other SegmentBackend) (bool, error)
}

// growSlice grows s, a reflect.Value of Kind Slice, so that it has room
// for at least n elements, following a doubling policy: a reallocation at
// least doubles the current capacity, or grows straight to n when that is
// larger, so repeated single-element inserts reallocate only
// logarithmically often.
func growSlice(s reflect.Value, n int) reflect.Value {
	if s.Cap() >= n {
		return s
	}
	newCap := 2 * s.Cap()
	if newCap < n {
		newCap = n
	}
	grown := reflect.MakeSlice(s.Type(), s.Len(), newCap)
	reflect.Copy(grown, s)
	return grown
}
