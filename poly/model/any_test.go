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

package model_test

import (
	"reflect"
	"testing"

	"github.com/cockroachdb/polycollection/poly"
	"github.com/cockroachdb/polycollection/poly/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnyAcceptsAnyConcreteType(t *testing.T) {
	a := assert.New(t)
	m := model.Any{}
	a.NoError(m.Accept(reflect.TypeOf(42)))
	a.NoError(m.Accept(reflect.TypeOf("s")))
	a.NoError(m.Accept(reflect.TypeOf(struct{ X int }{})))
}

func TestAnyRejectsInterfaceType(t *testing.T) {
	m := model.Any{}
	err := m.Accept(reflect.TypeOf((*error)(nil)).Elem())
	assert.IsType(t, &poly.UnregisteredTypeError{}, err)
}

func TestAnyValueAddrAllowsInPlaceMutation(t *testing.T) {
	a := assert.New(t)
	c := poly.New[model.Value](model.Any{})
	it, err := c.Insert(42)
	require.NoError(t, err)

	v := it.Value()
	a.Equal(42, v.Interface())

	v.Addr().SetInt(99)
	a.Equal(99, it.Value().Interface(), "mutating through Addr must be visible on the stored element")
}

func TestAnyValueAsCopiesOutWhenTypeMatches(t *testing.T) {
	a := assert.New(t)
	c := poly.New[model.Value](model.Any{})
	_, err := c.Insert("hello")
	require.NoError(t, err)

	v := c.Begin().Value()
	var dst string
	a.True(v.As(&dst))
	a.Equal("hello", dst)

	var wrongType int
	a.False(v.As(&wrongType))
}

func TestAnyCollectionHoldsMixedUnrelatedTypes(t *testing.T) {
	a := assert.New(t)
	c := poly.New[model.Value](model.Any{})
	require.NoError(t, c.InsertRange([]any{1, "two", 3.0}))

	a.Equal(3, c.Size())
	var types []reflect.Type
	for it := c.Begin(); !it.Equal(c.End()); it = it.Next() {
		types = append(types, it.Value().Type())
	}
	a.ElementsMatch([]reflect.Type{
		reflect.TypeOf(1), reflect.TypeOf("two"), reflect.TypeOf(3.0),
	}, types)
}
