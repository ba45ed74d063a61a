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
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	// ErrInvalid indicates that the arguments provided to a call violate
	// its contract, e.g. a negative timeout value
	ErrInvalid = errors.New("invalid argument")
	// ErrTimeout is the class of errors raised when a time budget elapses
	// before the guarded operation completes
	ErrTimeout = errors.New("timeout elapsed")
	// ErrClosed indicates that an object is closed and cannot be used anymore
	ErrClosed = errors.New("closed")
	// ErrCanceled indicates that an operation was interrupted before its
	// normal completion, but not by a timeout
	ErrCanceled = errors.New("canceled")
	// ErrNotExist indicates that the requested object doesn't exist
	ErrNotExist = errors.New("not exist")
	// ErrExist indicates that the object already exists
	ErrExist = errors.New("already exist")
	// ErrInternal indicates an unexpected internal error
	ErrInternal = errors.New("unexpected internal error")
	// ErrCommunication indicates a problem on the transport level
	ErrCommunication = errors.New("communication error")
	// ErrExhausted indicates that a resource limit is reached
	ErrExhausted = errors.New("resource is exhausted")
	// ErrNotAuthorized indicates that the requested operation is not authorized
	ErrNotAuthorized = errors.New("not authorized")
	// ErrDataLoss indicates an unrecoverable data loss or corruption
	ErrDataLoss = errors.New("data loss")
	// ErrUnimplemented indicates that the operation is not implemented
	ErrUnimplemented = errors.New("not implemented")
	// ErrConflict indicates that the operation cannot be performed in the
	// current state of the object
	ErrConflict = errors.New("conflict")
)

// Is reports whether err matches target. It extends the standard errors.Is
// by understanding the gRPC code-based errors, so an error received from a
// remote call can be tested against the general errors above.
func Is(err, target error) bool {
	if errors.Is(err, target) {
		return true
	}
	if st, ok := status.FromError(err); ok && st.Code() != codes.Unknown && st.Code() != codes.OK {
		return grpcToErrors[st.Code()] == target
	}
	return false
}
