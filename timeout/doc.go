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
Package timeout contains only one public function, which allows calling
functions in the future. The call request may be canceled if the execution of
the function is not started yet. Cancelling an already fired or already
cancelled request is a no-op, so the returned Future may be disposed blindly
on every completion path.

The package is the timer service behind the deadline package: a deadline
registers its fire callback here and releases the registration when the
guarded work completes first.
*/
package timeout
