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
package timeout

import (
	"container/heap"
	"fmt"
	"sync"
	"time"

	"github.com/acquirecloud/bounded/logging"
)

type (
	// Future object allows to cancel a future execution request made by Call()
	Future interface {
		// Cancel revokes the future execution. It is idempotent and safe to
		// call concurrently with the fire: if the callback already ran, or
		// the Future is already cancelled, the call is a no-op.
		Cancel()
	}

	// timerSvc keeps the registered callbacks ordered by their fire time in
	// a min-heap and serves them by a small elastic pool of watcher
	// goroutines. The pool grows up to maxWorkers when the fires pile up and
	// decays back when the watchers stay idle for idleTimeout.
	timerSvc struct {
		lock        sync.Mutex
		wakeCh      chan bool
		pending     *fireHeap
		watchers    int
		idleTimeout time.Duration
		maxWorkers  int
		logger      logging.Logger
	}

	future struct {
		svc   *timerSvc
		f     func()
		fireT time.Time
		idx   int
	}

	fireHeap []*future

	dummyFuture struct{}
)

var svc *timerSvc

func init() {
	svc = newTimerSvc()
}

// VoidFuture may be used to initialize a Future variable, without checking
// whether it is nil or not
var VoidFuture Future = dummyFuture{}

func newTimerSvc() *timerSvc {
	ts := new(timerSvc)
	ts.pending = &fireHeap{}
	ts.maxWorkers = 10
	ts.wakeCh = make(chan bool, ts.maxWorkers)
	ts.idleTimeout = time.Second * 30
	ts.logger = logging.NewLogger("timeout")
	heap.Init(ts.pending)
	return ts
}

// Call schedules exactly one future invocation of the function f, which will
// happen no earlier than the timeout provided from now. The function returns
// the Future object, which may be used for cancelling the execution request
// if it is not needed anymore.
func Call(f func(), timeout time.Duration) Future {
	return call(svc, f, timeout)
}

func call(ts *timerSvc, f func(), timeout time.Duration) Future {
	fu := new(future)
	fu.f = f
	fu.fireT = time.Now().Add(timeout)
	fu.idx = -1
	fu.svc = ts
	if f != nil {
		ts.add(fu)
	}
	return fu
}

// Cancel revokes the future execution if it is not fired yet
func (fu *future) Cancel() {
	fu.svc.cancel(fu)
}

// String implements fmt.Stringify
func (fu *future) String() string {
	return fu.svc.futureAsString(fu)
}

func (ts *timerSvc) add(fu *future) {
	ts.lock.Lock()
	defer ts.lock.Unlock()
	heap.Push(ts.pending, fu)
	if ts.watchers == 0 {
		ts.watchers++
		go ts.watcher()
	} else {
		ts.notifyWatcher()
	}
}

func (ts *timerSvc) cancel(fu *future) {
	ts.lock.Lock()
	defer ts.lock.Unlock()

	if fu.idx < 0 {
		// already fired or cancelled
		return
	}
	fu.f = nil
	heap.Remove(ts.pending, fu.idx)
	if ts.watchers > 0 {
		ts.notifyWatcher()
	}
}

func (ts *timerSvc) futureAsString(fu *future) string {
	ts.lock.Lock()
	defer ts.lock.Unlock()
	f := "<not assigned>"
	if fu.f != nil {
		f = "<assigned>"
	}
	return fmt.Sprintf("{?f: %s, fireT: %v, pending: %t}", f, fu.fireT, fu.idx >= 0)
}

func (ts *timerSvc) notifyWatcher() {
	select {
	case ts.wakeCh <- true:
	default:
	}
}

// exec runs the fire callback. The watcher must survive a panicking callback,
// so the panic is recovered and reported here.
func (ts *timerSvc) exec(f func()) {
	defer func() {
		if r := recover(); r != nil {
			ts.logger.Errorf("the fire callback panicked, recovering: %v", r)
		}
	}()
	f()
}

func (ts *timerSvc) watcher() {
	idleRuns := 0
	var f func()
	for {
		if f != nil {
			ts.exec(f)
			f = nil
			idleRuns = 0
		} else {
			idleRuns++
		}

		var tmt time.Duration
		ts.lock.Lock()
		if ts.pending.Len() == 0 {
			if idleRuns > 1 {
				ts.watchers--
				ts.lock.Unlock()
				return
			}
			// the watcher did the job, let it linger for the idle timeout and
			// if no new fires come, let it go as well
			tmt = ts.idleTimeout
		} else {
			fireT := (*ts.pending)[0].fireT
			now := time.Now()
			if !now.Before(fireT) {
				fu := heap.Pop(ts.pending).(*future)
				f = fu.f
				if ts.pending.Len() > 0 {
					fireT = (*ts.pending)[0].fireT
					if now.After(fireT) && ts.watchers < ts.maxWorkers {
						// more fires are overdue, spawn an extra watcher
						ts.watchers++
						go ts.watcher()
					}
				}
				ts.lock.Unlock()
				continue
			}

			tmt = fireT.Sub(now)
			if ts.watchers > 1 {
				// an extra watcher that already slept once with no job may go
				if idleRuns > 1 {
					ts.watchers--
					ts.lock.Unlock()
					return
				}
				if tmt > ts.idleTimeout {
					tmt = ts.idleTimeout
				}
			}
		}
		ts.lock.Unlock()

		tmr := time.NewTimer(tmt)
		select {
		case <-tmr.C:
		case <-ts.wakeCh:
			if !tmr.Stop() {
				<-tmr.C
			}
			idleRuns = 0
		}
	}
}

func (fh *fireHeap) Len() int {
	return len(*fh)
}

func (fh *fireHeap) Less(i, j int) bool {
	return (*fh)[i].fireT.Before((*fh)[j].fireT)
}

func (fh *fireHeap) Swap(i, j int) {
	(*fh)[i], (*fh)[j] = (*fh)[j], (*fh)[i]
	(*fh)[i].idx, (*fh)[j].idx = i, j
}

func (fh *fireHeap) Push(x any) {
	fu := x.(*future)
	fu.idx = fh.Len()
	(*fh) = append(*fh, fu)
}

func (fh *fireHeap) Pop() any {
	last := fh.Len() - 1
	res := (*fh)[last]
	(*fh)[last] = nil
	(*fh) = (*fh)[:last]
	res.idx = -1
	return res
}

func (d dummyFuture) Cancel() {
	// Do nothing
}
