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
package deadline

import (
	ctx "context"
	"errors"
	"fmt"
	"time"

	context2 "github.com/acquirecloud/bounded/context"
	errors2 "github.com/acquirecloud/bounded/errors"
)

// Work is a unit of work which may be run under a deadline. The work must be
// cooperative: it observes the ctx provided at its waiting points and returns
// ctx.Err() when the scope is closed. It is never interrupted preemptively.
type Work[T any] func(ctx ctx.Context) (T, error)

// Run executes the work under the deadline of the timeout provided and
// returns the work result.
//
// The work starts inline on the caller's goroutine with the timer already
// armed. If the work completes before the timer fires, its outcome (the value
// or the error) is returned as is and no *TimeoutError is ever observed. If
// the timer fires first, a *TimeoutError is injected into the work scope and
// returned to the caller.
//
// NOTE: once the deadline has fired its authority over the final outcome is
// absolute. Even if the work catches the injected *TimeoutError and returns a
// benign value or another error, Run still returns the *TimeoutError. Code
// that needs to survive the deadline must finish before it fires.
//
// Special timeout values: a negative timeout is a contract violation, an
// error wrapping errors.ErrInvalid is returned right away. A zero timeout is
// the immediate-timeout fast path: the *TimeoutError is returned without
// registering a timer or starting the work.
//
// An error injected by an enclosing scope (an outer deadline or any other
// cancellation) is not this deadline's business: the work completes with that
// error and Run propagates it unchanged.
func Run[T any](ctx ctx.Context, timeout time.Duration, work Work[T]) (T, error) {
	_, v, err := run(defSched, ctx, timeout, work)
	return v, err
}

// RunOrNone is the Run variant that reports this invocation's own timeout as
// the absent result: the second return value is false and the error is nil
// when the deadline elapsed before the work completed. Everything else - the
// work's own error, an outer cancellation, and notably a *TimeoutError raised
// by a different (e.g. enclosing) deadline - is returned unchanged, so a
// nested call never converts an outer timeout into a false "absent" at the
// wrong scope. The identity of the signal is checked by reference, not by the
// timeout value.
//
// The deadline-wins rule of Run applies here as well: once this invocation's
// timer has fired, the result is "absent" no matter what the work returned.
func RunOrNone[T any](ctx ctx.Context, timeout time.Duration, work Work[T]) (T, bool, error) {
	t, v, err := run(defSched, ctx, timeout, work)
	if err == nil {
		return v, true, nil
	}
	var zero T
	var te *TimeoutError
	if errors.As(err, &te) && te.raisedBy(t) {
		return zero, false, nil
	}
	return zero, false, err
}

// run hosts the shared state machine of both public variants: it validates
// the timeout, arms the timer, starts the work inline and arbitrates the
// completion. The task is returned so the callers can test the signal
// ownership.
func run[T any](sched scheduler, parent ctx.Context, tmout time.Duration, work Work[T]) (*task, T, error) {
	var zero T
	if tmout < 0 {
		return nil, zero, fmt.Errorf("the timeout=%v must not be negative: %w", tmout, errors2.ErrInvalid)
	}
	t := newTask(tmout)
	if tmout == 0 {
		// nothing to race: the budget is over before the work could start
		return t, zero, t.terr
	}

	wctx, cancel := context2.WithCancelError(parent)
	t.cancel = cancel
	defer cancel(nil)

	t.timer = sched.schedule(t.onFire, tmout)
	v, err := work(wctx)
	if t.finished() {
		return t, v, err
	}
	// the timer won the race, the deadline owns the outcome even if the work
	// suppressed the injected signal and produced something else
	return t, zero, t.terr
}
