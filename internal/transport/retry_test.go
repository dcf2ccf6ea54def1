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

package transport

import (
	"errors"
	"testing"
	"time"

	pn532 "github.com/wnrosenberg/go-pn532"
)

func TestWithRetrySucceedsAfterRetries(t *testing.T) {
	t.Parallel()

	calls := 0
	got, err := WithRetry(3, 0, func() (int, bool, error) {
		calls++
		if calls < 3 {
			return 0, true, nil
		}
		return 42, false, nil
	})
	if err != nil {
		t.Fatalf("WithRetry() error = %v", err)
	}
	if got != 42 {
		t.Errorf("WithRetry() = %d, want 42", got)
	}
	if calls != 3 {
		t.Errorf("operation ran %d times, want 3", calls)
	}
}

func TestWithRetryStopsOnError(t *testing.T) {
	t.Parallel()

	opErr := errors.New("bus fault")
	calls := 0
	_, err := WithRetry(3, 0, func() (int, bool, error) {
		calls++
		return 0, false, opErr
	})
	if !errors.Is(err, opErr) {
		t.Fatalf("WithRetry() error = %v, want %v", err, opErr)
	}
	if calls != 1 {
		t.Errorf("operation ran %d times, want 1", calls)
	}
}

func TestWithRetryExhaustsAttempts(t *testing.T) {
	t.Parallel()

	calls := 0
	_, err := WithRetry(2, 0, func() (int, bool, error) {
		calls++
		return 0, true, nil
	})
	if !errors.Is(err, pn532.ErrCommunicationFailed) {
		t.Fatalf("WithRetry() error = %v, want %v", err, pn532.ErrCommunicationFailed)
	}
	if calls != 3 {
		t.Errorf("operation ran %d times, want 3 (maxRetries+1)", calls)
	}
}

func TestTimeoutRetryTimesOut(t *testing.T) {
	t.Parallel()

	_, err := TimeoutRetry(10*time.Millisecond, func() (int, bool, error) {
		return 0, true, nil
	})
	if !pn532.IsRetryable(err) {
		t.Fatalf("TimeoutRetry() error = %v, want a retryable timeout", err)
	}
	if pn532.GetErrorType(err) != pn532.ErrorTypeTimeout {
		t.Errorf("GetErrorType() = %v, want timeout", pn532.GetErrorType(err))
	}
}

func TestTimeoutRetryReturnsResult(t *testing.T) {
	t.Parallel()

	got, err := TimeoutRetry(time.Second, func() ([]byte, bool, error) {
		return []byte{0x01}, false, nil
	})
	if err != nil {
		t.Fatalf("TimeoutRetry() error = %v", err)
	}
	if len(got) != 1 || got[0] != 0x01 {
		t.Errorf("TimeoutRetry() = % X, want 01", got)
	}
}
