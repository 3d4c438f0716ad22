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

package demo

import (
	"github.com/cockroachdb/polycollection/poly"
	"github.com/cockroachdb/polycollection/poly/model"
)

// Measurement and Reading are two unrelated concrete types with nothing
// in common, stored side by side under the open type-erasure model.
type Measurement struct {
	Celsius float64
}

// Reading is a second, unrelated concrete type.
type Reading struct {
	Label string
	Value int
}

// NewMixedBag builds a poly.Collection[model.Value] holding values of
// several concrete types with no shared interface at all, the open
// type-erasure model's distinguishing feature relative to the base model.
func NewMixedBag() (*poly.Collection[model.Value], error) {
	c := poly.New[model.Value](model.Any{})
	values := []any{
		Measurement{Celsius: 21.5},
		Reading{Label: "pressure", Value: 101},
		"a bare string",
		42,
	}
	if err := c.InsertRange(values); err != nil {
		return nil, err
	}
	return c, nil
}
