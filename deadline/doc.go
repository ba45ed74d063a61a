// Copyright 2024 The acquirecloud Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
/*
Package deadline provides running a unit of work under a time budget: the
work either completes before the budget is over, or it is cancelled and the
fact is reported to the caller. Run() reports the elapsed budget by the
*TimeoutError, RunOrNone() reports it by the absent result. Everything else -
the work's own errors and cancellations arriving from enclosing scopes - is
passed through unchanged by both variants.

The cancellation is cooperative: the work receives a child context and is
expected to observe it at its waiting points, nothing interrupts it in the
middle of a computation. The package guarantees that exactly one final
outcome reaches the caller and the timer registration is released exactly
once, whichever of the work completion and the timer fire happens first, or
if both happen near-simultaneously.

Mind the deadline-wins rule: after the timer has fired, the work cannot
change the visible outcome anymore, even by suppressing the injected signal.
See the Run documentation.
*/
package deadline
