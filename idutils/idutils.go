// Copyright 2024 The acquirecloud Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package idutils provides generation of unique identifiers. The ids are
// ULIDs, so the values generated earlier are less lexicographically than the
// values generated after them, which makes the ids convenient for ordering
// events in logs.
package idutils

import (
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// New returns new ulid.ULID.
func New() ulid.ULID {
	return ulid.Make()
}

// NewUUID returns new ulid.ULID converted to uuid.UUID, for the callers
// that key their objects by UUIDs.
func NewUUID() uuid.UUID {
	return uuid.UUID(New())
}

// NewID returns new ulid.ULID in string format. The returned ID can be
// compared to any other result returned by the function. An ID returned
// earlier is less lexicographically than the ID returned after the first one.
func NewID() string {
	return New().String()
}
