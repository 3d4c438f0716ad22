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

import (
	"reflect"

	"github.com/pkg/errors"
)

// Collection is the type-map-of-segments engine described in spec.md
// §4.8: a mapping from concrete type to segment, dispatch logic for
// insertion, and the operations needed to build the iterator family.
//
// A Collection is single-threaded (spec.md §5): concurrent read-only
// access from multiple goroutines is safe provided none of them mutate;
// concurrent mutation requires external exclusion, same as a plain Go map
// or slice.
type Collection[V any] struct {
	model    Model[V]
	segments map[reflect.Type]*segmentFacade
	// order records segment registration order so that whole-collection
	// iteration has a stable, if contractually unspecified, enumeration
	// order across repeated passes over the same Collection.
	order []reflect.Type
}

// New constructs an empty Collection governed by m.
func New[V any](m Model[V]) *Collection[V] {
	return &Collection[V]{
		model:    m,
		segments: make(map[reflect.Type]*segmentFacade),
	}
}

// RegisterTypes ensures a (possibly empty) segment exists for each given
// type, without evicting any segment that already exists.
func (c *Collection[V]) RegisterTypes(types ...reflect.Type) error {
	for _, t := range types {
		if _, err := c.segmentFor(t); err != nil {
			return err
		}
	}
	return nil
}

// IsRegistered reports whether t has a segment, empty or not.
func (c *Collection[V]) IsRegistered(t reflect.Type) bool {
	_, ok := c.segments[t]
	return ok
}

// segmentFor returns the segment for t, creating it (and the backend via
// Model.NewBackend) if it does not yet exist. Before creating a segment it
// checks Model.Accept and returns that error, leaving the Collection
// unchanged, if t is rejected.
func (c *Collection[V]) segmentFor(t reflect.Type) (*segmentFacade, error) {
	if f, ok := c.segments[t]; ok {
		return f, nil
	}
	if err := c.model.Accept(t); err != nil {
		return nil, err
	}
	f := newSegmentFacade(c.model.NewBackend(t))
	c.segments[t] = f
	c.order = append(c.order, t)
	return f, nil
}

// Segments returns every registered (TypeID, segment) pair in
// registration order (spec.md's segment_traversal).
func (c *Collection[V]) Segments() []SegmentHeader[V] {
	out := make([]SegmentHeader[V], len(c.order))
	for i, t := range c.order {
		out[i] = SegmentHeader[V]{c: c, t: t}
	}
	return out
}

// Size is the total element count across every segment.
func (c *Collection[V]) Size() int {
	n := 0
	for _, t := range c.order {
		n += c.segments[t].backend.Len()
	}
	return n
}

// Empty reports whether Size() == 0.
func (c *Collection[V]) Empty() bool { return c.Size() == 0 }

// SizeOf reports the element count of t's segment, or 0 if t is not
// registered.
func (c *Collection[V]) SizeOf(t reflect.Type) int {
	f, ok := c.segments[t]
	if !ok {
		return 0
	}
	return f.backend.Len()
}

// EmptyOf reports whether t's segment is empty (an unregistered type
// counts as empty).
func (c *Collection[V]) EmptyOf(t reflect.Type) bool { return c.SizeOf(t) == 0 }

// Capacity is the minimum capacity across every segment, or 0 if there are
// no segments — spec.md §4.8's whole-collection capacity.
func (c *Collection[V]) Capacity() int {
	return c.minOverSegments(func(b SegmentBackend) int { return b.Cap() })
}

// MaxSize is the minimum max-size across every segment.
func (c *Collection[V]) MaxSize() int {
	return c.minOverSegments(func(b SegmentBackend) int { return b.MaxSize() })
}

func (c *Collection[V]) minOverSegments(f func(SegmentBackend) int) int {
	min := -1
	for _, t := range c.order {
		v := f(c.segments[t].backend)
		if min == -1 || v < min {
			min = v
		}
	}
	if min == -1 {
		return 0
	}
	return min
}

// CapacityOf reports t's segment capacity.
func (c *Collection[V]) CapacityOf(t reflect.Type) int {
	f, ok := c.segments[t]
	if !ok {
		return 0
	}
	return f.backend.Cap()
}

// Reserve ensures t's segment has room for at least n elements, creating
// the segment if necessary.
func (c *Collection[V]) Reserve(t reflect.Type, n int) error {
	f, err := c.segmentFor(t)
	if err != nil {
		return err
	}
	f.backend.Reserve(n)
	return nil
}

// ReserveAll reserves n elements in every currently-registered segment.
func (c *Collection[V]) ReserveAll(n int) {
	for _, t := range c.order {
		c.segments[t].backend.Reserve(n)
	}
}

// ShrinkToFit releases unused capacity in every segment.
func (c *Collection[V]) ShrinkToFit() {
	for _, t := range c.order {
		c.segments[t].backend.ShrinkToFit()
	}
}

// ShrinkToFitOf releases unused capacity in t's segment.
func (c *Collection[V]) ShrinkToFitOf(t reflect.Type) {
	if f, ok := c.segments[t]; ok {
		f.backend.ShrinkToFit()
	}
}

// Clear removes every element from every segment but keeps the segments
// themselves registered (spec.md §3: "Empty segments may persist after
// element removal").
func (c *Collection[V]) Clear() {
	for _, t := range c.order {
		c.segments[t].backend.Clear()
	}
}

// ClearOf removes every element from t's segment only.
func (c *Collection[V]) ClearOf(t reflect.Type) {
	if f, ok := c.segments[t]; ok {
		f.backend.Clear()
	}
}

// Insert dispatches x (a concrete, non-nil value) to the segment matching
// its dynamic type, auto-registering that segment if the static and
// dynamic types agree, per the dispatch logic of spec.md §4.8.
func (c *Collection[V]) Insert(x any) (Iterator[V], error) {
	return c.insertAt(x, -1)
}

// insertAt inserts x at local position pos within its destination
// segment. A negative pos behaves like Insert (push_back).
func (c *Collection[V]) insertAt(x any, pos int) (Iterator[V], error) {
	rv := reflect.ValueOf(x)
	staticType := rv.Type()
	dynType := staticType
	if !c.model.Terminal(staticType) {
		dynType = c.model.DynamicType(x)
	}

	f, err := c.resolveSegment(dynType, staticType)
	if err != nil {
		return Iterator[V]{}, err
	}

	var idx int
	if pos < 0 {
		idx = f.backend.PushBack(rv)
	} else {
		idx = f.backend.Insert(pos, rv)
	}
	return c.iteratorAt(dynType, idx), nil
}

// resolveSegment implements spec's insertion dispatch: find the segment
// for dynType if it exists; otherwise, only auto-register it when the
// argument's own static type is the dynamic type (i.e. the caller isn't
// trying to insert a subtype that nobody asked this collection to track).
func (c *Collection[V]) resolveSegment(dynType, staticType reflect.Type) (*segmentFacade, error) {
	if f, ok := c.segments[dynType]; ok {
		return f, nil
	}
	if dynType != staticType {
		return nil, &UnregisteredTypeError{Type: dynType}
	}
	return c.segmentFor(dynType)
}

// InsertHint behaves like Insert, but if hint currently refers to a
// position within the destination segment, the backend's positional
// insert is used at that position; otherwise hint is ignored and the
// element is appended.
func (c *Collection[V]) InsertHint(hint Iterator[V], x any) (Iterator[V], error) {
	dynType := reflect.TypeOf(x)
	if !c.model.Terminal(dynType) {
		dynType = c.model.DynamicType(x)
	}
	if hint.valid() && hint.currentType() == dynType {
		return c.insertAt(x, hint.elemIdx)
	}
	return c.Insert(x)
}

// InsertRange inserts every element of xs. If they all share one terminal
// dynamic type, the destination segment is resolved once and every
// element goes through it (spec.md §4.8's range-insert fast path);
// otherwise each element is re-dispatched individually. Offers the basic
// exception guarantee: on error, every element inserted before the
// failing one remains in the collection.
func (c *Collection[V]) InsertRange(xs []any) error {
	if len(xs) == 0 {
		return nil
	}

	t0 := c.model.DynamicType(xs[0])
	if c.model.Terminal(t0) {
		uniform := true
		for _, x := range xs[1:] {
			if c.model.DynamicType(x) != t0 {
				uniform = false
				break
			}
		}
		if uniform {
			f, err := c.resolveSegment(t0, reflect.TypeOf(xs[0]))
			if err != nil {
				return err
			}
			for _, x := range xs {
				f.backend.PushBack(reflect.ValueOf(x))
			}
			return nil
		}
	}

	for _, x := range xs {
		if _, err := c.Insert(x); err != nil {
			return err
		}
	}
	return nil
}

// Emplace type-erased-constructs a new element of type t via ctor, which
// must return the value to store (Go has no placement-new, so the
// type-erased "thunk" from spec.md §9 becomes a closure that builds and
// returns the value instead of constructing in place).
func (c *Collection[V]) Emplace(t reflect.Type, ctor func() any) (Iterator[V], error) {
	return c.emplaceAt(t, ctor, -1)
}

// EmplaceHint is the positional/hinted form of Emplace.
func (c *Collection[V]) EmplaceHint(hint Iterator[V], t reflect.Type, ctor func() any) (Iterator[V], error) {
	if hint.valid() && hint.currentType() == t {
		return c.emplaceAt(t, ctor, hint.elemIdx)
	}
	return c.Emplace(t, ctor)
}

func (c *Collection[V]) emplaceAt(t reflect.Type, ctor func() any, pos int) (Iterator[V], error) {
	f, err := c.segmentFor(t)
	if err != nil {
		return Iterator[V]{}, err
	}
	thunk := func(dst reflect.Value) {
		dst.Set(reflect.ValueOf(ctor()))
	}
	var idx int
	if pos < 0 {
		idx = f.backend.EmplaceBack(thunk)
	} else {
		idx = f.backend.Emplace(pos, thunk)
	}
	return c.iteratorAt(t, idx), nil
}

// Erase removes the element at it and returns an iterator to the element
// that followed it (or End(), if it was the last element).
func (c *Collection[V]) Erase(it Iterator[V]) Iterator[V] {
	if !it.valid() {
		return it
	}
	t := it.currentType()
	c.segments[t].backend.Erase(it.elemIdx)
	return c.normalize(Iterator[V]{c: c, typeIdx: it.typeIdx, elemIdx: it.elemIdx})
}

// EraseRange removes [first,last). Spanning multiple segments, it erases
// the tail of first's segment, clears every segment strictly between
// them, and erases the prefix of last's segment (spec.md §4.8).
func (c *Collection[V]) EraseRange(first, last Iterator[V]) Iterator[V] {
	if first.equalTo(last) {
		return first
	}
	if first.typeIdx == last.typeIdx {
		t := first.currentType()
		c.segments[t].backend.EraseRange(first.elemIdx, last.elemIdx)
		return c.normalize(Iterator[V]{c: c, typeIdx: first.typeIdx, elemIdx: first.elemIdx})
	}

	firstType := c.order[first.typeIdx]
	c.segments[firstType].backend.EraseRange(first.elemIdx, c.segments[firstType].backend.Len())

	for i := first.typeIdx + 1; i < last.typeIdx; i++ {
		c.segments[c.order[i]].backend.Clear()
	}

	if last.typeIdx < len(c.order) {
		lastType := c.order[last.typeIdx]
		c.segments[lastType].backend.EraseRange(0, last.elemIdx)
	}

	// The surviving tail of the erased range is whatever followed last
	// before the call, now sitting at index 0 of last's segment (or, if
	// last was already End(), there is nothing left to point at).
	return c.normalize(Iterator[V]{c: c, typeIdx: last.typeIdx, elemIdx: 0})
}

// Copy returns a deep copy of c. If any registered segment's concrete
// type is not copy-constructible, it fails with NotCopyConstructibleError
// and returns nil; this applies to empty segments as well.
func (c *Collection[V]) Copy() (*Collection[V], error) {
	out := New(c.model)
	for _, t := range c.order {
		f, err := c.segments[t].copy()
		if err != nil {
			return nil, err
		}
		out.segments[t] = f
		out.order = append(out.order, t)
	}
	return out, nil
}

// Equal reports whether c and other have the same size and, for every
// type present in either, equal segments (an absent segment is treated as
// an empty one). It fails with NotEqualityComparableError only if a
// non-empty matching segment's type lacks equality.
func (c *Collection[V]) Equal(other *Collection[V]) (bool, error) {
	seen := make(map[reflect.Type]bool, len(c.order)+len(other.order))
	for _, t := range c.order {
		seen[t] = true
	}
	for _, t := range other.order {
		seen[t] = true
	}
	for t := range seen {
		a, aok := c.segments[t]
		b, bok := other.segments[t]
		switch {
		case aok && bok:
			if a.backend.Len() != b.backend.Len() {
				return false, nil
			}
			if a.backend.Len() == 0 {
				continue
			}
			eq, err := a.equal(b)
			if err != nil {
				return false, err
			}
			if !eq {
				return false, nil
			}
		case aok:
			if a.backend.Len() != 0 {
				return false, nil
			}
		case bok:
			if b.backend.Len() != 0 {
				return false, nil
			}
		}
	}
	return true, nil
}

// iteratorAt builds an Iterator pointing at index within t's segment,
// looking up t's position in c.order.
func (c *Collection[V]) iteratorAt(t reflect.Type, index int) Iterator[V] {
	for i, ot := range c.order {
		if ot == t {
			return Iterator[V]{c: c, typeIdx: i, elemIdx: index}
		}
	}
	panic(errors.Errorf("polycollection: internal error: %s not registered", t))
}

// Begin returns a whole-collection iterator to the first element,
// skipping any leading empty segments.
func (c *Collection[V]) Begin() Iterator[V] {
	return c.normalize(Iterator[V]{c: c, typeIdx: 0, elemIdx: 0})
}

// End returns the universal whole-collection end iterator.
func (c *Collection[V]) End() Iterator[V] {
	return Iterator[V]{c: c, typeIdx: len(c.order), elemIdx: 0}
}

// BeginOf returns a local iterator over t's segment, auto-registering it
// if absent.
func (c *Collection[V]) BeginOf(t reflect.Type) (SegmentIterator[V], error) {
	if _, err := c.segmentFor(t); err != nil {
		return SegmentIterator[V]{}, err
	}
	return SegmentIterator[V]{c: c, t: t, elemIdx: 0}, nil
}

// EndOf returns the end sentinel for t's segment, auto-registering it if
// absent.
func (c *Collection[V]) EndOf(t reflect.Type) (SegmentIterator[V], error) {
	f, err := c.segmentFor(t)
	if err != nil {
		return SegmentIterator[V]{}, err
	}
	return SegmentIterator[V]{c: c, t: t, elemIdx: f.backend.Len()}, nil
}

// BeginOfRegistered returns a local iterator over t's segment, failing
// with UnregisteredTypeError if it does not already exist.
func (c *Collection[V]) BeginOfRegistered(t reflect.Type) (SegmentIterator[V], error) {
	if !c.IsRegistered(t) {
		return SegmentIterator[V]{}, &UnregisteredTypeError{Type: t}
	}
	return SegmentIterator[V]{c: c, t: t, elemIdx: 0}, nil
}

// EndOfRegistered is the registered-only counterpart to EndOf.
func (c *Collection[V]) EndOfRegistered(t reflect.Type) (SegmentIterator[V], error) {
	f, ok := c.segments[t]
	if !ok {
		return SegmentIterator[V]{}, &UnregisteredTypeError{Type: t}
	}
	return SegmentIterator[V]{c: c, t: t, elemIdx: f.backend.Len()}, nil
}

// normalize walks it forward past any exhausted or empty segments until
// it refers to a live element or to End().
func (c *Collection[V]) normalize(it Iterator[V]) Iterator[V] {
	for it.typeIdx < len(c.order) {
		seg := c.segments[c.order[it.typeIdx]]
		if it.elemIdx < seg.backend.Len() {
			return it
		}
		it.typeIdx++
		it.elemIdx = 0
	}
	it.typeIdx = len(c.order)
	it.elemIdx = 0
	return it
}
