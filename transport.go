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
	"fmt"
)

// Notification is one push event from a transport: either a complete
// candidate frame buffer cut at frame boundaries, or a transport-level
// error. Exactly one of the two fields is set.
type Notification struct {
	Err   error
	Frame []byte
}

// Transport is the byte-level boundary to a PN532. Implementations
// (UART, I2C) write exact byte sequences to the wire and deliver
// complete candidate frames - or transport errors - over the
// notification channel. Frame parsing, correlation and sequencing all
// live above this interface.
type Transport interface {
	// WriteFrame writes an exact encoded frame to the wire
	WriteFrame(data []byte) error

	// Notifications returns the channel of frame-arrival and error
	// events. The channel is closed when the transport closes.
	Notifications() <-chan Notification

	// Close closes the transport connection
	Close() error

	// IsConnected returns true if the transport is connected
	IsConnected() bool

	// Type returns the transport type
	Type() TransportType
}

// TransportType represents the type of transport
type TransportType string

const (
	// TransportUART represents UART/serial transport.
	TransportUART TransportType = "uart"
	// TransportI2C represents I2C bus transport.
	TransportI2C TransportType = "i2c"
	// TransportMock represents a mock transport for testing
	TransportMock TransportType = "mock"
)

// TransportWithRetry wraps a Transport, retrying retryable frame
// writes with backoff. Notification delivery is passed through
// untouched: responses are correlated above this layer and the core
// never re-issues a command on its own.
type TransportWithRetry struct {
	transport Transport
	config    *RetryConfig
}

// NewTransportWithRetry creates a new transport wrapper with retry logic
func NewTransportWithRetry(transport Transport, config *RetryConfig) *TransportWithRetry {
	if config == nil {
		config = DefaultRetryConfig()
	}
	return &TransportWithRetry{
		transport: transport,
		config:    config,
	}
}

// WriteFrame writes a frame, retrying transient write failures
func (t *TransportWithRetry) WriteFrame(data []byte) error {
	return RetryWithConfig(context.Background(), t.config, func() error {
		if err := t.transport.WriteFrame(data); err != nil {
			return &TransportError{
				Op:        "WriteFrame",
				Err:       err,
				Type:      GetErrorType(err),
				Retryable: IsRetryable(err),
			}
		}
		return nil
	})
}

// Notifications returns the underlying notification channel
func (t *TransportWithRetry) Notifications() <-chan Notification {
	return t.transport.Notifications()
}

// Close closes the transport connection
func (t *TransportWithRetry) Close() error {
	if err := t.transport.Close(); err != nil {
		return fmt.Errorf("failed to close underlying transport: %w", err)
	}
	return nil
}

// IsConnected returns true if the transport is connected
func (t *TransportWithRetry) IsConnected() bool {
	return t.transport.IsConnected()
}

// Type returns the transport type
func (t *TransportWithRetry) Type() TransportType {
	return t.transport.Type()
}

// SetRetryConfig updates the retry configuration
func (t *TransportWithRetry) SetRetryConfig(config *RetryConfig) {
	t.config = config
}
