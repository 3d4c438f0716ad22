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
	"reflect"

	"github.com/cockroachdb/polycollection/poly"
	"github.com/cockroachdb/polycollection/poly/model"
	"github.com/cockroachdb/polycollection/poly/variant"
)

var (
	intType    = reflect.TypeOf(int(0))
	stringType = reflect.TypeOf("")
	boolType   = reflect.TypeOf(false)
)

// NewScalars builds a poly.Collection[variant.Variant] over a closed set
// of three primitive alternatives, the one built-in model where Subtype
// is a genuine finite membership test.
func NewScalars() (*poly.Collection[variant.Variant], error) {
	c := poly.New[variant.Variant](model.NewVariant(intType, stringType, boolType))
	if err := c.InsertRange([]any{7, "seven", true, 3, false}); err != nil {
		return nil, err
	}
	return c, nil
}
