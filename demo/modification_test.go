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

package demo_test

// In this test, we exercise poly.Collection's mutation surface against
// the demo package's base-model Target collection: insertion dispatch,
// erasure, segment growth, and unregistered-type rejection.

import (
	"reflect"
	"testing"

	l "github.com/cockroachdb/polycollection/demo"
	"github.com/cockroachdb/polycollection/demo/other"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertDispatchesByDynamicType(t *testing.T) {
	a := assert.New(t)
	c, err := l.NewTargets()
	require.NoError(t, err)

	a.Equal(7, c.Size())
	a.Equal(2, c.SizeOf(reflect.TypeOf(&l.ByRefType{})))
	a.Equal(3, c.SizeOf(reflect.TypeOf(l.ByValType{})))
}

func TestInsertReusesExistingSegment(t *testing.T) {
	a := assert.New(t)
	c, err := l.NewTargets()
	require.NoError(t, err)

	// other.Implementor has already been registered by NewTargets, so a
	// second value of that type joins the same segment.
	_, err = c.Insert(other.Implementor{Val: "second"})
	a.NoError(err)
	a.Equal(2, c.SizeOf(reflect.TypeOf(other.Implementor{})))
}

func TestSizeOfUnregisteredTypeIsZero(t *testing.T) {
	a := assert.New(t)
	c, err := l.NewTargets()
	require.NoError(t, err)

	neverRegistered := reflect.TypeOf(struct{ l.Target }{})
	a.False(c.IsRegistered(neverRegistered))
	a.Equal(0, c.SizeOf(neverRegistered))
}

func TestEraseShiftsFollowingElements(t *testing.T) {
	a := assert.New(t)
	c, err := l.NewTargets()
	require.NoError(t, err)

	it, err := c.BeginOfRegistered(reflect.TypeOf(l.ByValType{}))
	require.NoError(t, err)
	collIt := it.ToIterator()

	before := c.Size()
	next := c.Erase(collIt)
	a.Equal(before-1, c.Size())
	a.Equal("by-val-2", next.Value().Value())
}

func TestClearKeepsSegmentRegistered(t *testing.T) {
	a := assert.New(t)
	c, err := l.NewTargets()
	require.NoError(t, err)

	byValType := reflect.TypeOf(l.ByValType{})
	c.ClearOf(byValType)
	a.True(c.IsRegistered(byValType))
	a.Equal(0, c.SizeOf(byValType))
}

func TestCopyIsIndependent(t *testing.T) {
	a := assert.New(t)
	c, err := l.NewTargets()
	require.NoError(t, err)

	cp, err := c.Copy()
	require.NoError(t, err)

	it, err := c.BeginOfRegistered(reflect.TypeOf(&l.ByRefType{}))
	require.NoError(t, err)
	c.Erase(it.ToIterator())

	a.Equal(6, c.Size())
	a.Equal(7, cp.Size())
}

func TestEqualComparesContents(t *testing.T) {
	a := assert.New(t)
	c1, err := l.NewTargets()
	require.NoError(t, err)
	c2, err := l.NewTargets()
	require.NoError(t, err)

	eq, err := c1.Equal(c2)
	require.NoError(t, err)
	a.True(eq)

	c2.Clear()
	eq, err = c1.Equal(c2)
	require.NoError(t, err)
	a.False(eq)
}

func TestMixedBagRoundTrip(t *testing.T) {
	a := assert.New(t)
	c, err := l.NewMixedBag()
	require.NoError(t, err)

	var vals []any
	for it := c.Begin(); !it.Equal(c.End()); it = it.Next() {
		vals = append(vals, it.Value().Interface())
	}
	a.Equal([]any{
		l.Measurement{Celsius: 21.5},
		l.Reading{Label: "pressure", Value: 101},
		"a bare string",
		42,
	}, vals)
}

func TestScalarsRejectUnknownAlternative(t *testing.T) {
	a := assert.New(t)
	c, err := l.NewScalars()
	require.NoError(t, err)

	_, err = c.Insert(3.14)
	a.Error(err)
}
