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
package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestIs(t *testing.T) {
	assert.True(t, Is(fmt.Errorf("fddd %w", ErrNotExist), ErrNotExist))
	assert.True(t, Is(status.Errorf(codes.NotFound, "ha ha"), ErrNotExist))
	assert.True(t, Is(status.Errorf(codes.DeadlineExceeded, "too late"), ErrTimeout))
	assert.False(t, Is(status.Errorf(codes.Unknown, "ha ha"), ErrNotExist))
	assert.False(t, Is(fmt.Errorf("fddd %s", ErrNotExist), ErrNotExist))
	assert.False(t, Is(fmt.Errorf("no grpc here"), ErrCommunication))
}
