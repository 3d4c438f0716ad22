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

const maxSegmentSize = int(^uint(0) >> 1)

// packedSegment is a single contiguous run of cells of one concrete type
// (spec.md §4.4). It is the right choice whenever the model's View can be
// derived straight from an element's address — the typical base-class
// case, where V is simply an interface built from &elem.
type packedSegment struct {
	t     reflect.Type
	store reflect.Value // Kind() == reflect.Slice, Type() == reflect.SliceOf(t)
}

// NewPackedSegment constructs an empty packed segment for t.
func NewPackedSegment(t reflect.Type) SegmentBackend {
	return &packedSegment{t: t, store: reflect.MakeSlice(reflect.SliceOf(t), 0, 0)}
}

func (s *packedSegment) Type() reflect.Type { return s.t }
func (s *packedSegment) Len() int           { return s.store.Len() }
func (s *packedSegment) Cap() int           { return s.store.Cap() }
func (s *packedSegment) MaxSize() int       { return maxSegmentSize }

func (s *packedSegment) Reserve(n int) {
	s.store = growSlice(s.store, n)
}

func (s *packedSegment) ShrinkToFit() {
	if s.store.Len() == s.store.Cap() {
		return
	}
	fit := reflect.MakeSlice(s.store.Type(), s.store.Len(), s.store.Len())
	reflect.Copy(fit, s.store)
	s.store = fit
}

func (s *packedSegment) EmplaceBack(ctor func(dst reflect.Value)) int {
	return s.Emplace(s.store.Len(), ctor)
}

func (s *packedSegment) Emplace(pos int, ctor func(dst reflect.Value)) int {
	s.makeRoom(pos, 1)
	dst := s.store.Index(pos)
	ctor(dst)
	return pos
}

func (s *packedSegment) PushBack(src reflect.Value) int {
	return s.Insert(s.store.Len(), src)
}

func (s *packedSegment) Insert(pos int, src reflect.Value) int {
	s.makeRoom(pos, 1)
	s.store.Index(pos).Set(src)
	return pos
}

// makeRoom grows the backing slice by n elements and shifts the tail
// starting at pos to the right, leaving n zero-valued slots at pos.
func (s *packedSegment) makeRoom(pos, n int) {
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

func (s *packedSegment) Erase(pos int) {
	s.EraseRange(pos, pos+1)
}

func (s *packedSegment) EraseRange(first, last int) {
	if first == last {
		return
	}
	n := s.store.Len()
	reflect.Copy(s.store.Slice(first, n), s.store.Slice(last, n))
	s.store = s.store.Slice(0, n-(last-first))
}

func (s *packedSegment) Clear() {
	s.store = s.store.Slice(0, 0)
}

func (s *packedSegment) ElemAt(i int) reflect.Value {
	return s.store.Index(i)
}

func (s *packedSegment) Copy() (SegmentBackend, error) {
	if err := checkCopyable(s.t); err != nil {
		return nil, err
	}
	cp := reflect.MakeSlice(s.store.Type(), s.store.Len(), s.store.Len())
	reflect.Copy(cp, s.store)
	return &packedSegment{t: s.t, store: cp}, nil
}

func (s *packedSegment) EmptyCopy() SegmentBackend {
	return NewPackedSegment(s.t)
}

func (s *packedSegment) Equal(other SegmentBackend) (bool, error) {
	o, ok := other.(*packedSegment)
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
