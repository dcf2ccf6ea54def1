// go-pn532
// Copyright (c) 2026 The go-pn532 Authors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-pn532.
//
// go-pn532 is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-pn532 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-pn532; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

// Package transport provides internal retry utilities shared by the
// transport implementations.
package transport

import (
	"time"

	pn532 "github.com/wnrosenberg/go-pn532"
)

// RetryOperation represents a function that can be retried.
// Returns: data, shouldRetry, error
//   - data: the result if successful
//   - shouldRetry: true if the operation should be attempted again
//   - error: any permanent error that should stop retries
type RetryOperation[T any] func() (T, bool, error)

// WithRetry executes an operation up to maxRetries+1 times with a
// fixed delay between attempts. This consolidates the bounded retry
// pattern used across transports (re-reading a corrupt frame after a
// NACK, for example).
func WithRetry[T any](maxRetries int, delay time.Duration, operation RetryOperation[T]) (T, error) {
	var zero T

	for attempt := 0; attempt <= maxRetries; attempt++ {
		result, shouldRetry, err := operation()
		if err != nil {
			return zero, err
		}
		if !shouldRetry {
			return result, nil
		}
		if delay > 0 && attempt < maxRetries {
			time.Sleep(delay)
		}
	}

	return zero, pn532.NewTransportError("retry", "unknown", pn532.ErrCommunicationFailed, pn532.ErrorTypeTransient)
}

// TimeoutRetry executes an operation until it succeeds or the timeout
// elapses, with a short fixed pause between attempts. Common pattern
// for polling operations like waiting for the device ready status.
func TimeoutRetry[T any](timeout time.Duration, operation RetryOperation[T]) (T, error) {
	var zero T
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		result, shouldRetry, err := operation()
		if err != nil {
			return zero, err
		}
		if !shouldRetry {
			return result, nil
		}
		time.Sleep(time.Millisecond)
	}

	return zero, pn532.NewTimeoutError("timeoutRetry", "unknown")
}
