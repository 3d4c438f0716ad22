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

// splitSegment maintains two parallel arrays (spec.md §4.5): store, the
// actual elements, and index, one pre-built V per element plus a trailing
// sentinel. It is required whenever the model's View cannot be derived
// from a bare element address — e.g. the any/function/variant models,
// whose views are proxy values (a (type, element) pair, a bound method
// value, a reference-variant) that have to be constructed, not merely cast.
//
// Invariant: len(index) == store.Len()+1 at all times. Because index
// entries reference into store, any reallocation of store invalidates
// every entry; rather than patch addresses in place, the whole index is
// rebuilt from scratch after every structural mutation (spec.md §9:
// "index is a cache derived from store").
type splitSegment[V any] struct {
	t     reflect.Type
	store reflect.Value // Kind() == reflect.Slice, Type() == reflect.SliceOf(t)
	index []V
	view  func(t reflect.Type, elem reflect.Value) V
}

// NewSplitSegment constructs an empty split segment for t, using view to
// materialise the polymorphic V for each stored element.
func NewSplitSegment[V any](t reflect.Type, view func(reflect.Type, reflect.Value) V) SegmentBackend {
	s := &splitSegment[V]{
		t:     t,
		store: reflect.MakeSlice(reflect.SliceOf(t), 0, 0),
		view:  view,
	}
	s.rebuildIndex()
	return s
}

func (s *splitSegment[V]) rebuildIndex() {
	n := s.store.Len()
	idx := make([]V, n+1, s.store.Cap()+1)
	for i := 0; i < n; i++ {
		idx[i] = s.view(s.t, s.store.Index(i))
	}
	s.index = idx
}

func (s *splitSegment[V]) Type() reflect.Type { return s.t }
func (s *splitSegment[V]) Len() int           { return s.store.Len() }
func (s *splitSegment[V]) Cap() int           { return s.store.Cap() }
func (s *splitSegment[V]) MaxSize() int       { return maxSegmentSize }

func (s *splitSegment[V]) Reserve(n int) {
	if s.store.Cap() >= n {
		return
	}
	s.store = growSlice(s.store, n)
	s.rebuildIndex()
}

func (s *splitSegment[V]) ShrinkToFit() {
	if s.store.Len() == s.store.Cap() {
		return
	}
	fit := reflect.MakeSlice(s.store.Type(), s.store.Len(), s.store.Len())
	reflect.Copy(fit, s.store)
	s.store = fit
	s.rebuildIndex()
}

func (s *splitSegment[V]) makeRoom(pos, n int) {
	oldLen := s.store.Len()
	grown := growSlice(s.store, oldLen+n)
	grown = grown.Slice(0, oldLen+n)
	for i := oldLen - 1; i >= pos; i-- {
		grown.Index(i + n).Set(grown.Index(i))
	}
	zero := reflect.Zero(s.t)
	for i := pos; i < pos+n; i++ {
		grown.Index(i).Set(zero)
	}
	s.store = grown
}

func (s *splitSegment[V]) EmplaceBack(ctor func(dst reflect.Value)) int {
	return s.Emplace(s.store.Len(), ctor)
}

func (s *splitSegment[V]) Emplace(pos int, ctor func(dst reflect.Value)) int {
	s.makeRoom(pos, 1)
	ctor(s.store.Index(pos))
	s.rebuildIndex()
	return pos
}

func (s *splitSegment[V]) PushBack(src reflect.Value) int {
	return s.Insert(s.store.Len(), src)
}

func (s *splitSegment[V]) Insert(pos int, src reflect.Value) int {
	s.makeRoom(pos, 1)
	s.store.Index(pos).Set(src)
	s.rebuildIndex()
	return pos
}

func (s *splitSegment[V]) Erase(pos int) {
	s.EraseRange(pos, pos+1)
}

func (s *splitSegment[V]) EraseRange(first, last int) {
	if first == last {
		return
	}
	n := s.store.Len()
	reflect.Copy(s.store.Slice(first, n), s.store.Slice(last, n))
	s.store = s.store.Slice(0, n-(last-first))
	s.rebuildIndex()
}

func (s *splitSegment[V]) Clear() {
	s.store = s.store.Slice(0, 0)
	s.rebuildIndex()
}

func (s *splitSegment[V]) ElemAt(i int) reflect.Value {
	return s.store.Index(i)
}

// ViewAt returns the cached polymorphic view for element i, or the
// trailing sentinel when i == Len().
func (s *splitSegment[V]) ViewAt(i int) V {
	return s.index[i]
}

func (s *splitSegment[V]) Copy() (SegmentBackend, error) {
	if err := checkCopyable(s.t); err != nil {
		return nil, err
	}
	cp := reflect.MakeSlice(s.store.Type(), s.store.Len(), s.store.Len())
	reflect.Copy(cp, s.store)
	out := &splitSegment[V]{t: s.t, store: cp, view: s.view}
	out.rebuildIndex()
	return out, nil
}

func (s *splitSegment[V]) EmptyCopy() SegmentBackend {
	return NewSplitSegment[V](s.t, s.view)
}

func (s *splitSegment[V]) Equal(other SegmentBackend) (bool, error) {
	o, ok := other.(*splitSegment[V])
	if !ok || o.t != s.t {
		return false, nil
	}
	if err := checkEquatable(s.t); err != nil {
		return false, err
	}
	if s.Len() != o.Len() {
		return false, nil
	}
	for i := 0; i < s.Len(); i++ {
		eq, err := cellEqual(s.t, s.store.Index(i), o.store.Index(i))
		if err != nil {
			return false, err
		}
		if !eq {
			return false, nil
		}
	}
	return true, nil
}
