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

// Package demo is used for demonstration and testing of polycollection.
package demo

import (
	"github.com/cockroachdb/polycollection/demo/other"
	"github.com/cockroachdb/polycollection/poly"
	"github.com/cockroachdb/polycollection/poly/model"
)

// Target is a base interface that a poly.Collection is built against.
// There's nothing special about this interface; any type implementing it,
// by value or by reference, can be stored.
type Target interface {
	Value() string
}

// Just an FYI to show that we support types that implement the
// interface by-value and by-reference.
var (
	_ Target = &ByRefType{}
	_ Target = ByValType{}
	_ Target = &ContainerType{}
)

// ByRefType implements Target with a pointer receiver.
type ByRefType struct {
	Val string
}

// Value implements the Target interface.
func (x *ByRefType) Value() string { return x.Val }

// ByValType implements the Target interface with a value receiver.
type ByValType struct {
	Val string
}

// Value implements the Target interface.
func (x ByValType) Value() string { return x.Val }

// ContainerType is a third, unrelated Target implementation, included to
// show that a base-model Collection segregates however many concrete
// types are registered, not just two.
type ContainerType struct {
	Label string
}

// Value implements the Target interface.
func (x *ContainerType) Value() string { return x.Label }

// NewTargets builds a poly.Collection[Target] seeded with a mix of
// ByRefType, ByValType, ContainerType, and other.Implementor values — the
// last one registered from an entirely different package, demonstrating
// that the base model places no restriction on a concrete type's origin.
func NewTargets() (*poly.Collection[Target], error) {
	c := poly.New[Target](model.Base[Target]{})
	values := []any{
		&ByRefType{"by-ref-1"},
		&ByRefType{"by-ref-2"},
		ByValType{"by-val-1"},
		ByValType{"by-val-2"},
		ByValType{"by-val-3"},
		&ContainerType{"container-1"},
		other.Implementor{Val: "other-1"},
	}
	if err := c.InsertRange(values); err != nil {
		return nil, err
	}
	return c, nil
}
