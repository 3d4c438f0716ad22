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

import "reflect"

// segmentFacade is a value-semantic wrapper around a uniquely-owned
// backend (spec.md §4.7). It is what Collection's type-map stores; Copy
// goes through the backend's own Copy, which is the only place
// NotCopyConstructibleError can surface.
type segmentFacade struct {
	backend SegmentBackend
}

func newSegmentFacade(b SegmentBackend) *segmentFacade {
	return &segmentFacade{backend: b}
}

func (f *segmentFacade) Type() reflect.Type { return f.backend.Type() }

func (f *segmentFacade) copy() (*segmentFacade, error) {
	b, err := f.backend.Copy()
	if err != nil {
		return nil, err
	}
	return newSegmentFacade(b), nil
}

func (f *segmentFacade) equal(other *segmentFacade) (bool, error) {
	return f.backend.Equal(other.backend)
}
