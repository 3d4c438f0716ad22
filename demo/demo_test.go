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

import (
	"fmt"

	"github.com/cockroachdb/polycollection/demo"
)

// This example demonstrates whole-collection iteration over a
// base-model Collection holding several distinct concrete types,
// segregated into segments but observed in one uniform pass.
func Example_iterate() {
	c, err := demo.NewTargets()
	if err != nil {
		panic(err)
	}
	for it := c.Begin(); !it.Equal(c.End()); it = it.Next() {
		fmt.Println(it.Value().Value())
	}

	//Output:
	//by-ref-1
	//by-ref-2
	//by-val-1
	//by-val-2
	//by-val-3
	//container-1
	//other-1
}

// This example demonstrates segment-by-segment traversal: every value of
// one concrete type is visited together, in registration order of the
// segments themselves.
func Example_segments() {
	c, err := demo.NewTargets()
	if err != nil {
		panic(err)
	}
	for _, seg := range c.Segments() {
		fmt.Printf("%s: %d\n", seg.TypeID(), seg.Len())
	}

	//Output:
	//*demo.ByRefType: 2
	//demo.ByValType: 3
	//*demo.ContainerType: 1
	//other.Implementor: 1
}

// This example shows the open type-erasure model: concrete types sharing
// no interface at all, stored and recovered by dynamic type.
func Example_mixedBag() {
	c, err := demo.NewMixedBag()
	if err != nil {
		panic(err)
	}
	for it := c.Begin(); !it.Equal(c.End()); it = it.Next() {
		v := it.Value()
		fmt.Printf("%s: %v\n", v.Type(), v.Interface())
	}

	//Output:
	//demo.Measurement: {21.5}
	//demo.Reading: {pressure 101}
	//string: a bare string
	//int: 42
}

// This example shows the callable-signature model: two closure types
// sharing one call signature, the Collection's view being the callable
// itself.
func Example_transforms() {
	c, err := demo.NewTransforms()
	if err != nil {
		panic(err)
	}
	for it := c.Begin(); !it.Equal(c.End()); it = it.Next() {
		fn := it.Value()
		fmt.Println(fn("Hello"))
	}

	//Output:
	//HELLO
	//olleH
}

// This example shows the closed-alternatives model: a fixed set of
// primitive types tagged by a variant.Variant reference.
func Example_scalars() {
	c, err := demo.NewScalars()
	if err != nil {
		panic(err)
	}
	for it := c.Begin(); !it.Equal(c.End()); it = it.Next() {
		v := it.Value()
		fmt.Printf("%s=%v\n", v.Type(), v.Elem().Interface())
	}

	//Output:
	//int=7
	//int=3
	//string=seven
	//bool=true
	//bool=false
}
