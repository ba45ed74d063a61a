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
	"fmt"
	"sync/atomic"
	"time"

	context2 "github.com/acquirecloud/bounded/context"
	errors2 "github.com/acquirecloud/bounded/errors"
	"github.com/acquirecloud/bounded/idutils"
	"github.com/acquirecloud/bounded/timeout"
)

// the bounded task completion states. Exactly one transition out of
// stateActive ever happens, the losing side of the race becomes a no-op.
const (
	stateActive int32 = iota
	// stateTimedOut - the timer fired first, the deadline owns the final outcome
	stateTimedOut
	// stateDone - the work finished first, its own outcome is final
	stateDone
)

type (
	// task is the cancellation scope around one guarded work invocation. It
	// is the fire target for the timer registration and the single choke
	// point where "the timer fired" and "the work finished" compete.
	task struct {
		id     string
		state  atomic.Int32
		timer  timeout.Future
		cancel context2.CancelErrFunc
		terr   *TimeoutError
	}

	// TimeoutError is the signal injected into the guarded work scope when
	// its deadline elapses. The signal keeps the reference to the task that
	// raised it, so a nested invocation can tell its own timeout from one
	// raised by an enclosing deadline. Two signals with the same duration
	// raised by different invocations never compare equal.
	//
	// errors.Is(err, errors.ErrTimeout) reports true for the signal.
	TimeoutError struct {
		owner *task
		tmout time.Duration
	}

	// scheduler abstracts the timer service, so the tests can substitute a
	// deterministic probe for it
	scheduler interface {
		schedule(f func(), tmout time.Duration) timeout.Future
	}

	timeoutScheduler struct{}
)

var defSched scheduler = timeoutScheduler{}

func (timeoutScheduler) schedule(f func(), tmout time.Duration) timeout.Future {
	return timeout.Call(f, tmout)
}

func newTask(tmout time.Duration) *task {
	t := &task{id: idutils.NewID(), timer: timeout.VoidFuture}
	t.terr = &TimeoutError{owner: t, tmout: tmout}
	return t
}

// onFire is the timer callback. It moves the task into the timed-out state
// and injects the signal into the work scope. Firing twice, or firing after
// the work already completed, has no additional effect. The function never
// blocks, it runs on the timer-service goroutine.
func (t *task) onFire() {
	if !t.state.CompareAndSwap(stateActive, stateTimedOut) {
		return
	}
	t.cancel(t.terr)
}

// finished is called when the guarded work returned. It releases the timer
// registration and reports whether the work's own outcome stands: false means
// the timer won the race and the deadline owns the final outcome. The timer
// release happens on every path exactly once per invocation, and the
// Future.Cancel it relies on is a no-op after the fire anyway.
func (t *task) finished() bool {
	t.timer.Cancel()
	return t.state.CompareAndSwap(stateActive, stateDone)
}

// raisedBy reports whether the signal was raised by the task provided. The
// check is the reference identity, never the value equality.
func (e *TimeoutError) raisedBy(t *task) bool {
	return e.owner == t
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("deadline of %s elapsed, task=%s", e.tmout, e.owner.id)
}

// Is makes the signal a member of the errors.ErrTimeout class for errors.Is
func (e *TimeoutError) Is(target error) bool {
	return target == errors2.ErrTimeout
}
