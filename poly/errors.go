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
	"fmt"
	"reflect"
)

// UnregisteredTypeError is returned whenever an operation needs a segment
// for a type that does not exist and cannot be auto-created (the dynamic
// type of the argument differs from its static type, so the collection
// cannot infer which segment the caller intended).
type UnregisteredTypeError struct {
	Type reflect.Type
}

func (e *UnregisteredTypeError) Error() string {
	return fmt.Sprintf("polycollection: unregistered type %s", e.Type)
}

// NotCopyConstructibleError is returned when a segment is copied (directly,
// or transitively via Collection.Copy) whose concrete type opted out of
// copying.
type NotCopyConstructibleError struct {
	Type reflect.Type
}

func (e *NotCopyConstructibleError) Error() string {
	return fmt.Sprintf("polycollection: %s is not copy-constructible", e.Type)
}

// NotEqualityComparableError is returned when two segments of a
// non-comparable concrete type are compared for equality.
type NotEqualityComparableError struct {
	Type reflect.Type
}

func (e *NotEqualityComparableError) Error() string {
	return fmt.Sprintf("polycollection: %s is not equality-comparable", e.Type)
}
