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
package context

import (
	"context"
	"time"
)

// Sleep blocks the current goroutine for the sleepTimeout duration, or until
// the ctx is closed, whatever happens first. It returns ctx.Err(), so the
// result is nil if the sleep was not interrupted.
func Sleep(ctx context.Context, sleepTimeout time.Duration) error {
	if sleepTimeout <= 0 {
		return ctx.Err()
	}
	tmr := time.NewTimer(sleepTimeout)
	defer tmr.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-tmr.C:
		return nil
	}
}
