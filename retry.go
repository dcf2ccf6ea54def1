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

package pn532

import (
	"context"
	"math/rand"
	"time"
)

// RetryConfig configures retry behavior for transport operations.
// The driver core never retries on its own; this configuration is used
// by the opt-in TransportWithRetry wrapper and by transports internally.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts (including the first)
	MaxAttempts int
	// InitialBackoff is the delay before the first retry
	InitialBackoff time.Duration
	// MaxBackoff caps the backoff growth
	MaxBackoff time.Duration
	// BackoffMultiplier scales the backoff after each attempt
	BackoffMultiplier float64
	// Jitter is the random fraction (0..1) added to each backoff
	Jitter float64
	// RetryTimeout bounds the total time spent across all attempts
	RetryTimeout time.Duration
}

// DefaultRetryConfig returns the default retry configuration
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts:       3,
		InitialBackoff:    10 * time.Millisecond,
		MaxBackoff:        500 * time.Millisecond,
		BackoffMultiplier: 2.0,
		Jitter:            0.1,
		RetryTimeout:      5 * time.Second,
	}
}

// nextBackoff computes the delay before the given retry attempt
func (c *RetryConfig) nextBackoff(attempt int) time.Duration {
	backoff := float64(c.InitialBackoff)
	for i := 0; i < attempt; i++ {
		backoff *= c.BackoffMultiplier
	}
	if max := float64(c.MaxBackoff); backoff > max {
		backoff = max
	}
	if c.Jitter > 0 {
		backoff += backoff * c.Jitter * rand.Float64()
	}
	return time.Duration(backoff)
}

// RetryWithConfig executes op, retrying retryable failures per config.
// Permanent errors and context cancellation stop the retries
// immediately; the last error is returned when attempts are exhausted.
func RetryWithConfig(ctx context.Context, config *RetryConfig, op func() error) error {
	if config == nil {
		config = DefaultRetryConfig()
	}
	if config.RetryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.RetryTimeout)
		defer cancel()
	}

	var lastErr error
	for attempt := 0; attempt < config.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			if lastErr != nil {
				return lastErr
			}
			return err
		}

		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !IsRetryable(lastErr) {
			return lastErr
		}
		if attempt == config.MaxAttempts-1 {
			break
		}

		debugf("retrying after %v (attempt %d/%d)", lastErr, attempt+1, config.MaxAttempts)
		select {
		case <-ctx.Done():
			return lastErr
		case <-time.After(config.nextBackoff(attempt)):
		}
	}
	return lastErr
}
