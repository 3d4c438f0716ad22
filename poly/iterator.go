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

// cachedViewer is implemented by segment backends that precompute and
// cache each element's polymorphic view up front (poly/split.go's
// splitSegment, whose view is a proxy value rather than a bare cast).
// Value() prefers reading through this cache over calling model.View
// afresh whenever the backend behind a segment supports it.
type cachedViewer[V any] interface {
	ViewAt(i int) V
}

// Iterator is the whole-collection iterator of spec.md §4.9
// (CollectionIterator): a map cursor paired with a segment cursor. Ranging
// past a segment's last element rolls forward to the next non-empty
// segment; at the end of the last segment it becomes the universal end
// iterator.
//
// The zero Iterator is not valid; obtain one from Collection.Begin/End or
// from a conversion.
type Iterator[V any] struct {
	c       *Collection[V]
	typeIdx int
	elemIdx int
}

func (it Iterator[V]) valid() bool {
	return it.c != nil && it.typeIdx < len(it.c.order)
}

func (it Iterator[V]) currentType() reflect.Type {
	return it.c.order[it.typeIdx]
}

// TypeID returns the concrete type of the element it currently refers to.
// Calling it on an end iterator panics, mirroring dereferencing end() in
// the original design.
func (it Iterator[V]) TypeID() reflect.Type {
	return it.currentType()
}

// Value returns the polymorphic view of the current element.
func (it Iterator[V]) Value() V {
	t := it.currentType()
	backend := it.c.segments[t].backend
	if cv, ok := backend.(cachedViewer[V]); ok {
		return cv.ViewAt(it.elemIdx)
	}
	return it.c.model.View(t, backend.ElemAt(it.elemIdx))
}

// Next returns an iterator advanced by one element.
func (it Iterator[V]) Next() Iterator[V] {
	it.elemIdx++
	return it.c.normalize(it)
}

// Prev returns an iterator stepped back by one element. Calling Prev on
// Begin() is undefined, as with a standard bidirectional iterator.
func (it Iterator[V]) Prev() Iterator[V] {
	for {
		if it.elemIdx > 0 {
			it.elemIdx--
			return it
		}
		it.typeIdx--
		if it.typeIdx < 0 {
			return it
		}
		it.elemIdx = it.c.segments[it.c.order[it.typeIdx]].backend.Len()
	}
}

func (it Iterator[V]) equalTo(other Iterator[V]) bool {
	return it.c == other.c && it.typeIdx == other.typeIdx && it.elemIdx == other.elemIdx
}

// Equal reports whether it and other refer to the same position of the
// same Collection.
func (it Iterator[V]) Equal(other Iterator[V]) bool { return it.equalTo(other) }

// ToSegmentIterator converts it to a local iterator over its current
// segment (spec.md's LocalBaseIterator conversion: "the map cursor and
// map-end uniquely reconstruct the composite").
func (it Iterator[V]) ToSegmentIterator() SegmentIterator[V] {
	return SegmentIterator[V]{c: it.c, t: it.currentType(), elemIdx: it.elemIdx}
}

// SegmentHeader exposes one (TypeID, segment) entry from
// Collection.Segments, with Begin/End accessors yielding V. It has no
// concrete-form accessors; concrete iteration over a segment goes through
// the package-level ConcreteBegin/ConcreteEnd.
type SegmentHeader[V any] struct {
	c *Collection[V]
	t reflect.Type
}

// TypeID returns the concrete type this header describes.
func (h SegmentHeader[V]) TypeID() reflect.Type { return h.t }

// Len returns the segment's element count.
func (h SegmentHeader[V]) Len() int { return h.c.segments[h.t].backend.Len() }

// Begin returns a local iterator to the first element of this segment.
func (h SegmentHeader[V]) Begin() SegmentIterator[V] {
	return SegmentIterator[V]{c: h.c, t: h.t, elemIdx: 0}
}

// End returns the end sentinel of this segment.
func (h SegmentHeader[V]) End() SegmentIterator[V] {
	return SegmentIterator[V]{c: h.c, t: h.t, elemIdx: h.c.segments[h.t].backend.Len()}
}

// SegmentIterator ranges over a single segment only, yielding V (spec.md's
// LocalBaseIterator). Unlike Iterator, advancing past the segment's end
// never rolls over into another segment.
type SegmentIterator[V any] struct {
	c       *Collection[V]
	t       reflect.Type
	elemIdx int
}

// TypeID returns the concrete type this iterator ranges over.
func (it SegmentIterator[V]) TypeID() reflect.Type { return it.t }

// Value returns the polymorphic view of the current element.
func (it SegmentIterator[V]) Value() V {
	backend := it.c.segments[it.t].backend
	if cv, ok := backend.(cachedViewer[V]); ok {
		return cv.ViewAt(it.elemIdx)
	}
	return it.c.model.View(it.t, backend.ElemAt(it.elemIdx))
}

// Next advances by one element within the segment.
func (it SegmentIterator[V]) Next() SegmentIterator[V] {
	it.elemIdx++
	return it
}

// Prev steps back by one element within the segment.
func (it SegmentIterator[V]) Prev() SegmentIterator[V] {
	it.elemIdx--
	return it
}

// Equal reports whether it and other refer to the same position of the
// same segment.
func (it SegmentIterator[V]) Equal(other SegmentIterator[V]) bool {
	return it.c == other.c && it.t == other.t && it.elemIdx == other.elemIdx
}

// ToIterator converts it to a whole-collection iterator (spec.md's
// LocalBaseIterator -> CollectionIterator conversion).
func (it SegmentIterator[V]) ToIterator() Iterator[V] {
	for i, t := range it.c.order {
		if t == it.t {
			return Iterator[V]{c: it.c, typeIdx: i, elemIdx: it.elemIdx}
		}
	}
	return it.c.End()
}

// LocalIterator is a pointer-like iterator into one segment that yields
// the concrete type T by reference, rather than the polymorphic V
// (spec.md's LocalIterator<C>). Because it is parameterised over T in
// addition to the Collection's V, it is built and used via the package-
// level ConcreteBegin/ConcreteEnd helpers rather than a Collection method (Go methods
// cannot introduce additional type parameters).
type LocalIterator[T any, V any] struct {
	c       *Collection[V]
	t       reflect.Type
	elemIdx int
}

// ConcreteBegin returns a LocalIterator over T's segment, auto-registering
// it if absent.
func ConcreteBegin[T any, V any](c *Collection[V]) (LocalIterator[T, V], error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if _, err := c.segmentFor(t); err != nil {
		return LocalIterator[T, V]{}, err
	}
	return LocalIterator[T, V]{c: c, t: t, elemIdx: 0}, nil
}

// ConcreteEnd returns the end sentinel of T's segment, auto-registering it
// if absent.
func ConcreteEnd[T any, V any](c *Collection[V]) (LocalIterator[T, V], error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	f, err := c.segmentFor(t)
	if err != nil {
		return LocalIterator[T, V]{}, err
	}
	return LocalIterator[T, V]{c: c, t: t, elemIdx: f.backend.Len()}, nil
}

// Value returns a pointer to the stored T at this position.
func (it LocalIterator[T, V]) Value() *T {
	elem := it.c.segments[it.t].backend.ElemAt(it.elemIdx)
	return elem.Addr().Interface().(*T)
}

// Next advances by one element.
func (it LocalIterator[T, V]) Next() LocalIterator[T, V] {
	it.elemIdx++
	return it
}

// Prev steps back by one element.
func (it LocalIterator[T, V]) Prev() LocalIterator[T, V] {
	it.elemIdx--
	return it
}

// Equal reports whether it and other refer to the same position.
func (it LocalIterator[T, V]) Equal(other LocalIterator[T, V]) bool {
	return it.c == other.c && it.t == other.t && it.elemIdx == other.elemIdx
}

// ToSegmentIterator converts it to the V-yielding SegmentIterator over the
// same segment (spec.md's "pointer-to-base conversion through the
// cell/V mapping").
func (it LocalIterator[T, V]) ToSegmentIterator() SegmentIterator[V] {
	return SegmentIterator[V]{c: it.c, t: it.t, elemIdx: it.elemIdx}
}

// Emplace constructs a new T at the end of its segment via ctor and
// returns a whole-collection iterator to it (spec.md's emplace<T>).
func Emplace[T any, V any](c *Collection[V], ctor func() T) (Iterator[V], error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return c.Emplace(t, func() any { return ctor() })
}

// EmplaceHint is the hinted form of Emplace.
func EmplaceHint[T any, V any](c *Collection[V], hint Iterator[V], ctor func() T) (Iterator[V], error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return c.EmplaceHint(hint, t, func() any { return ctor() })
}

// EmplacePos constructs a new T at local position pos within T's segment.
func EmplacePos[T any, V any](c *Collection[V], pos LocalIterator[T, V], ctor func() T) (Iterator[V], error) {
	it, err := c.emplaceAt(pos.t, func() any { return ctor() }, pos.elemIdx)
	return it, err
}
