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

// Package other exists to show that a poly.Collection's base model places
// no restriction on which package a concrete type comes from: any type
// implementing the shared interface may be registered, whether it is
// declared alongside the collection or not.
package other

// Implementor implements demo.Target from outside the demo package.
type Implementor struct {
	Val string
}

// Value implements the demo.Target interface.
func (i Implementor) Value() string { return i.Val }
