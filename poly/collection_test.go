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

package poly_test

import (
	"reflect"
	"testing"

	"github.com/cockroachdb/polycollection/poly"
	"github.com/cockroachdb/polycollection/poly/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Shape is the sample base interface used throughout this package's
// tests: a small, closed set of two concrete implementors.
type Shape interface {
	Area() float64
}

// Circle implements Shape by value.
type Circle struct {
	R float64
}

// Area implements Shape.
func (c Circle) Area() float64 { return 3.14159 * c.R * c.R }

// Square implements Shape by pointer.
type Square struct {
	Side float64
}

// Area implements Shape.
func (s *Square) Area() float64 { return s.Side * s.Side }

func newShapes(t *testing.T) *poly.Collection[Shape] {
	t.Helper()
	c := poly.New[Shape](model.Base[Shape]{})
	require.NoError(t, c.InsertRange([]any{
		Circle{R: 1},
		Circle{R: 2},
		&Square{Side: 3},
	}))
	return c
}

func TestInsertSegregatesByConcreteType(t *testing.T) {
	a := assert.New(t)
	c := newShapes(t)

	a.Equal(3, c.Size())
	a.Equal(2, c.SizeOf(reflect.TypeOf(Circle{})))
	a.Equal(1, c.SizeOf(reflect.TypeOf(&Square{})))
}

func TestWholeCollectionIterationOrder(t *testing.T) {
	a := assert.New(t)
	c := newShapes(t)

	var areas []float64
	for it := c.Begin(); !it.Equal(c.End()); it = it.Next() {
		areas = append(areas, it.Value().Area())
	}
	require.Len(t, areas, 3)
	a.InDelta(3.14159, areas[0], 0.001)
	a.InDelta(12.56636, areas[1], 0.001)
	a.InDelta(9.0, areas[2], 0.001)
}

func TestSegmentIterationIsLocal(t *testing.T) {
	a := assert.New(t)
	c := newShapes(t)

	circleT := reflect.TypeOf(Circle{})
	begin, err := c.BeginOf(circleT)
	require.NoError(t, err)
	end, err := c.EndOf(circleT)
	require.NoError(t, err)

	n := 0
	for it := begin; !it.Equal(end); it = it.Next() {
		n++
	}
	a.Equal(2, n)
}

func TestEraseReturnsFollowingElement(t *testing.T) {
	a := assert.New(t)
	c := newShapes(t)

	it := c.Begin()
	next := c.Erase(it)
	a.Equal(2, c.Size())
	a.InDelta(12.56636, next.Value().Area(), 0.001)
}

func TestEraseRangeAcrossSegments(t *testing.T) {
	a := assert.New(t)
	c := newShapes(t)

	first := c.Begin()
	last := c.End()
	res := c.EraseRange(first, last)
	a.Equal(0, c.Size())
	a.True(res.Equal(c.End()))
}

// Triangle is a third Shape implementor, used only to give
// TestEraseRangeMidSegmentToMidSegment a third segment to clear entirely
// between the segments first and last partially straddle.
type Triangle struct {
	Base, Height float64
}

// Area implements Shape.
func (t *Triangle) Area() float64 { return 0.5 * t.Base * t.Height }

func TestEraseRangeMidSegmentToMidSegment(t *testing.T) {
	a := assert.New(t)
	c := poly.New[Shape](model.Base[Shape]{})
	require.NoError(t, c.InsertRange([]any{
		Circle{R: 1}, Circle{R: 2}, Circle{R: 3}, // segment 0: 3 elements
		&Square{Side: 4}, &Square{Side: 5}, // segment 1: 2 elements, erased entirely
		&Triangle{Base: 6, Height: 2}, &Triangle{Base: 7, Height: 2}, &Triangle{Base: 8, Height: 2}, // segment 2: 3 elements
	}))

	circleT := reflect.TypeOf(Circle{})
	triangleT := reflect.TypeOf(&Triangle{})

	first, err := c.BeginOfRegistered(circleT)
	require.NoError(t, err)
	firstIt := first.Next().ToIterator() // second circle (R=2)

	last, err := c.BeginOfRegistered(triangleT)
	require.NoError(t, err)
	lastIt := last.Next().ToIterator() // second triangle (Base=7)

	res := c.EraseRange(firstIt, lastIt)

	// Circle segment keeps only its first element (R=1); Square segment is
	// wiped entirely; Triangle segment keeps its original tail starting at
	// the element lastIt pointed to before the call (Base=7).
	a.Equal(1, c.SizeOf(circleT))
	a.InDelta(3.14159, c.Begin().Value().Area(), 0.001)
	a.Equal(0, c.SizeOf(reflect.TypeOf(&Square{})))
	a.Equal(2, c.SizeOf(triangleT))

	// The returned iterator must refer to what lastIt referred to before
	// the call (Base=7, Height=2 -> Area 7), now at index 0 of Triangle's
	// segment, not to an element of first's own segment.
	a.InDelta(7.0, res.Value().Area(), 0.001)
}

func TestCopyProducesIndependentCollection(t *testing.T) {
	a := assert.New(t)
	c := newShapes(t)

	cp, err := c.Copy()
	require.NoError(t, err)
	c.Erase(c.Begin())

	a.Equal(2, c.Size())
	a.Equal(3, cp.Size())

	eq, err := c.Equal(cp)
	require.NoError(t, err)
	a.False(eq)
}

func TestEqualTreatsAbsentSegmentAsEmpty(t *testing.T) {
	a := assert.New(t)
	c1 := poly.New[Shape](model.Base[Shape]{})
	require.NoError(t, c1.RegisterTypes(reflect.TypeOf(Circle{})))

	c2 := poly.New[Shape](model.Base[Shape]{})

	eq, err := c1.Equal(c2)
	require.NoError(t, err)
	a.True(eq, "an empty, registered segment should equal an entirely absent one")
}

func TestInsertRejectsUnimplementedType(t *testing.T) {
	a := assert.New(t)
	c := poly.New[Shape](model.Base[Shape]{})
	type notAShape struct{}
	_, err := c.Insert(notAShape{})
	a.Error(err)
	a.IsType(&poly.UnregisteredTypeError{}, err)
}

func TestEmplaceBuildsInPlace(t *testing.T) {
	a := assert.New(t)
	c := poly.New[Shape](model.Base[Shape]{})
	it, err := poly.Emplace[Circle](c, func() Circle { return Circle{R: 5} })
	require.NoError(t, err)
	a.InDelta(78.53975, it.Value().Area(), 0.001)
}

func TestConcreteLocalIteratorYieldsPointer(t *testing.T) {
	a := assert.New(t)
	c := newShapes(t)

	begin, err := poly.ConcreteBegin[Circle](c)
	require.NoError(t, err)
	end, err := poly.ConcreteEnd[Circle](c)
	require.NoError(t, err)

	n := 0
	for it := begin; !it.Equal(end); it = it.Next() {
		it.Value().R *= 2
		n++
	}
	a.Equal(2, n)

	it := c.Begin()
	a.InDelta(3.14159*4, it.Value().Area(), 0.001, "in-place mutation through LocalIterator should be visible")
}

func TestReserveAndCapacity(t *testing.T) {
	a := assert.New(t)
	c := poly.New[Shape](model.Base[Shape]{})
	require.NoError(t, c.Reserve(reflect.TypeOf(Circle{}), 10))
	a.GreaterOrEqual(c.CapacityOf(reflect.TypeOf(Circle{})), 10)
}

func TestClearKeepsSegmentsRegistered(t *testing.T) {
	a := assert.New(t)
	c := newShapes(t)
	c.Clear()
	a.Equal(0, c.Size())
	a.True(c.IsRegistered(reflect.TypeOf(Circle{})))
}
