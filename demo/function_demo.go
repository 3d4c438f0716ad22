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
	"strings"

	"github.com/cockroachdb/polycollection/poly"
	"github.com/cockroachdb/polycollection/poly/model"
)

// Transform is the shared call signature of the callable-signature model
// demo below: every stored concrete type exposes a Call(string) string
// method, and the Collection's view is that callable itself.
type Transform = func(string) string

// Upper implements Transform via its Call method.
type Upper struct{}

// Call implements the Transform signature.
func (Upper) Call(s string) string { return strings.ToUpper(s) }

// Reverse implements Transform via its Call method.
type Reverse struct{}

// Call implements the Transform signature.
func (Reverse) Call(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

// NewTransforms builds a poly.Collection[Transform] holding two distinct
// closure types that share one call signature.
func NewTransforms() (*poly.Collection[Transform], error) {
	c := poly.New[Transform](model.Function[Transform]{})
	if err := c.InsertRange([]any{Upper{}, Reverse{}}); err != nil {
		return nil, err
	}
	return c, nil
}
