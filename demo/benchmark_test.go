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
	"testing"

	"github.com/cockroachdb/polycollection/demo"
)

// BenchmarkIterate measures the cost of a full whole-collection pass over
// a small, multi-segment base-model Collection.
func BenchmarkIterate(b *testing.B) {
	c, err := demo.NewTargets()
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for it := c.Begin(); !it.Equal(c.End()); it = it.Next() {
			_ = it.Value().Value()
		}
	}
}

// BenchmarkInsertErase measures one insert/erase round trip against a
// freshly built Collection, the steady-state churn pattern of a long-lived
// segment.
func BenchmarkInsertErase(b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c, err := demo.NewTargets()
		if err != nil {
			b.Fatal(err)
		}
		it, err := c.Insert(&demo.ByRefType{Val: "churn"})
		if err != nil {
			b.Fatal(err)
		}
		c.Erase(it)
	}
}
