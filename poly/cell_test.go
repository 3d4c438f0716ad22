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
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type plainStruct struct {
	A int
	B string
}

type lockingStruct struct {
	mu sync.Mutex
	N  int
}

type embedsLocking struct {
	lockingStruct
	Label string
}

type interfaceField struct {
	V any
}

func TestCheckCopyableAllowsPlainStruct(t *testing.T) {
	assert.NoError(t, checkCopyable(reflect.TypeOf(plainStruct{})))
}

func TestCheckCopyableRejectsDirectLock(t *testing.T) {
	err := checkCopyable(reflect.TypeOf(lockingStruct{}))
	assert.Error(t, err)
	assert.IsType(t, &NotCopyConstructibleError{}, err)
}

func TestCheckCopyableRejectsEmbeddedLock(t *testing.T) {
	err := checkCopyable(reflect.TypeOf(embedsLocking{}))
	assert.Error(t, err, "an embedded lock should be detected transitively")
	assert.IsType(t, &NotCopyConstructibleError{}, err)
}

func TestCheckEquatableAllowsComparableStruct(t *testing.T) {
	assert.NoError(t, checkEquatable(reflect.TypeOf(plainStruct{})))
}

func TestCheckEquatableAllowsInterfaceField(t *testing.T) {
	// reflect.Type.Comparable() only inspects static field types; an any
	// field is always statically comparable even though a particular
	// dynamic value stored in it might not be.
	assert.NoError(t, checkEquatable(reflect.TypeOf(interfaceField{})))
}

func TestCheckEquatableRejectsSlice(t *testing.T) {
	type hasSlice struct{ S []int }
	err := checkEquatable(reflect.TypeOf(hasSlice{}))
	assert.Error(t, err)
	assert.IsType(t, &NotEqualityComparableError{}, err)
}

func TestCellEqualComparesEqualValues(t *testing.T) {
	a := plainStruct{A: 1, B: "x"}
	b := plainStruct{A: 1, B: "x"}
	eq, err := cellEqual(reflect.TypeOf(a), reflect.ValueOf(a), reflect.ValueOf(b))
	assert.NoError(t, err)
	assert.True(t, eq)
}

func TestCellEqualComparesUnequalValues(t *testing.T) {
	a := plainStruct{A: 1, B: "x"}
	b := plainStruct{A: 2, B: "x"}
	eq, err := cellEqual(reflect.TypeOf(a), reflect.ValueOf(a), reflect.ValueOf(b))
	assert.NoError(t, err)
	assert.False(t, eq)
}

func TestCellEqualRecoversFromUncomparableDynamicValue(t *testing.T) {
	a := interfaceField{V: []int{1, 2, 3}}
	b := interfaceField{V: []int{1, 2, 3}}
	eq, err := cellEqual(reflect.TypeOf(a), reflect.ValueOf(a), reflect.ValueOf(b))
	assert.False(t, eq)
	assert.Error(t, err)
	assert.IsType(t, &NotEqualityComparableError{}, err)
}
