// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package protocol

import "github.com/pkg/errors"

// The failure kinds every component reports. Handlers wrap these with the
// failing detail; callers classify with errors.Cause. Saturating arithmetic
// clamps are not errors and never surface here.
var (
	// ErrInvalidState indicates the entity is in the wrong life-cycle state for the operation
	ErrInvalidState = errors.New("invalid entity state")
	// ErrUnauthorized indicates the caller's authority does not cover the required address
	ErrUnauthorized = errors.New("unauthorized caller")
	// ErrCapacityExceeded indicates a supply or capacity cap has been reached
	ErrCapacityExceeded = errors.New("capacity exceeded")
	// ErrOutsideWindow indicates the operation is outside its permitted time window
	ErrOutsideWindow = errors.New("outside permitted window")
	// ErrInvalidInput indicates malformed or out-of-range operation input
	ErrInvalidInput = errors.New("invalid input")
)
