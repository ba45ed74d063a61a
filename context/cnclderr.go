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
	ctx "context"
	"sync"
	"time"

	errors2 "github.com/acquirecloud/bounded/errors"
)

type (
	// cancelErrCtx is a child context which can be closed with an arbitrary
	// error. The work owned by the context observes the injected error via
	// Err() at its next check of Done().
	cancelErrCtx struct {
		parent ctx.Context
		done   chan struct{}
		err    error
		mu     sync.Mutex
	}

	// CancelErrFunc closes the scope with the error provided. The first call
	// wins, the following calls are no-ops.
	CancelErrFunc func(err error)
)

var _ ctx.Context = (*cancelErrCtx)(nil)

// WithCancelError creates a child context which may be cancelled with a
// custom error, not only the standard context.Canceled. Cancellation of the
// parent propagates into the child with the parent's error. The CancelErrFunc
// must always be called when the context is not used anymore, even after a
// normal completion, to release the propagation watchdog.
func WithCancelError(parent ctx.Context) (ctx.Context, CancelErrFunc) {
	if parent == nil {
		panic("cannot create context from nil parent")
	}
	c := &cancelErrCtx{parent: parent, done: make(chan struct{})}
	// watchdog
	go func() {
		select {
		case <-parent.Done():
			c.cancel(parent.Err())
		case <-c.done:
		}
	}()
	return c, func(err error) { c.cancel(err) }
}

func (c *cancelErrCtx) Deadline() (deadline time.Time, ok bool) {
	return c.parent.Deadline()
}

func (c *cancelErrCtx) Done() <-chan struct{} {
	return c.done
}

func (c *cancelErrCtx) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *cancelErrCtx) Value(key any) any {
	return c.parent.Value(key)
}

func (c *cancelErrCtx) cancel(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case <-c.done:
		// already closed
		return
	default:
	}

	if c.err == nil {
		c.err = err
		if err == nil {
			c.err = errors2.ErrClosed
		}
	}
	close(c.done)
}
