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
	"errors"
	"fmt"
)

// Transport-level errors
var (
	// ErrTransportTimeout indicates a transport operation timed out
	ErrTransportTimeout = errors.New("transport timeout")
	// ErrTransportRead indicates a transport read failure
	ErrTransportRead = errors.New("transport read failed")
	// ErrTransportWrite indicates a transport write failure
	ErrTransportWrite = errors.New("transport write failed")
	// ErrTransportNotReady indicates the device was not ready for an exchange
	ErrTransportNotReady = errors.New("transport not ready")
	// ErrCommunicationFailed indicates a general communication breakdown
	ErrCommunicationFailed = errors.New("communication failed")
	// ErrNoACK indicates the device did not acknowledge a command
	ErrNoACK = errors.New("no ACK received")
	// ErrFrameCorrupted indicates a received frame failed validation
	ErrFrameCorrupted = errors.New("frame corrupted")
	// ErrChecksumMismatch indicates a frame checksum failed verification
	ErrChecksumMismatch = errors.New("checksum mismatch")
)

// Device and protocol errors
var (
	// ErrDeviceNotFound indicates no PN532 device could be located
	ErrDeviceNotFound = errors.New("device not found")
	// ErrUnsupportedTransport indicates an unrecognized transport handle type
	ErrUnsupportedTransport = errors.New("unsupported transport")
	// ErrCommandPending indicates a command was dispatched while another
	// was still in flight; the driver keeps one request outstanding at a time
	ErrCommandPending = errors.New("command already pending")
	// ErrCommandFailed indicates the chip reported an application-level error frame
	ErrCommandFailed = errors.New("command failed")
	// ErrEmptyResponse indicates a response data frame carried no payload
	ErrEmptyResponse = errors.New("empty response")
	// ErrUnexpectedResponse indicates a response code that does not match
	// the dispatched command
	ErrUnexpectedResponse = errors.New("unexpected response code")
	// ErrDeviceClosed indicates the device was closed while an operation was in flight
	ErrDeviceClosed = errors.New("device closed")
)

// Tag-level errors
var (
	// ErrNoTagDetected indicates no tag was present during detection
	ErrNoTagDetected = errors.New("no tag detected")
	// ErrTagNotFound indicates a previously selected tag is gone
	ErrTagNotFound = errors.New("tag not found")
	// ErrInvalidTag indicates an unusable or unsupported tag
	ErrInvalidTag = errors.New("invalid tag type")
	// ErrFormatMismatch is the warning-kind result for MIFARE status 0x13:
	// the block data is still returned, but the tag reported a format
	// mismatch and the bytes are likely unusable
	ErrFormatMismatch = errors.New("tag format mismatch")
	// ErrTLVNotFound indicates the NDEF TLV tag was not located in tag memory
	ErrTLVNotFound = errors.New("NDEF TLV not found")
	// ErrDataTooLarge indicates a payload exceeding frame or tag capacity
	ErrDataTooLarge = errors.New("data too large")
	// ErrInvalidParameter indicates an invalid argument to a driver operation
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrInvalidUID indicates a malformed colon-hex UID string
	ErrInvalidUID = errors.New("invalid UID format")
)

// ErrorType classifies errors for retry decisions
type ErrorType int

const (
	// ErrorTypePermanent indicates an error that will not resolve by retrying
	ErrorTypePermanent ErrorType = iota
	// ErrorTypeTransient indicates an error that may resolve by retrying
	ErrorTypeTransient
	// ErrorTypeTimeout indicates a timeout that may resolve by retrying
	ErrorTypeTimeout
)

// String returns the error type name
func (t ErrorType) String() string {
	switch t {
	case ErrorTypePermanent:
		return "permanent"
	case ErrorTypeTransient:
		return "transient"
	case ErrorTypeTimeout:
		return "timeout"
	default:
		return fmt.Sprintf("errortype(%d)", int(t))
	}
}

// TransportError wraps a transport failure with operational context
type TransportError struct {
	Err       error
	Op        string
	Port      string
	Type      ErrorType
	Retryable bool
}

// Error implements the error interface
func (e *TransportError) Error() string {
	if e.Port != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Port, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError creates a TransportError; retryability follows the
// error type unless overridden by a more specific constructor
func NewTransportError(op, port string, err error, errType ErrorType) *TransportError {
	return &TransportError{
		Op:        op,
		Port:      port,
		Err:       err,
		Type:      errType,
		Retryable: errType == ErrorTypeTransient || errType == ErrorTypeTimeout,
	}
}

// NewTimeoutError creates a retryable timeout TransportError
func NewTimeoutError(op, port string) *TransportError {
	return NewTransportError(op, port, ErrTransportTimeout, ErrorTypeTimeout)
}

// NewNoACKError creates a retryable no-ACK TransportError
func NewNoACKError(op, port string) *TransportError {
	return NewTransportError(op, port, ErrNoACK, ErrorTypeTransient)
}

// NewFrameCorruptedError creates a retryable corrupted-frame TransportError
func NewFrameCorruptedError(op, port string) *TransportError {
	return NewTransportError(op, port, ErrFrameCorrupted, ErrorTypeTransient)
}

// NewTransportNotReadyError creates a retryable not-ready TransportError
func NewTransportNotReadyError(op, port string) *TransportError {
	return NewTransportError(op, port, ErrTransportNotReady, ErrorTypeTransient)
}

// NewDataTooLargeError creates a permanent data-too-large TransportError
func NewDataTooLargeError(op, port string) *TransportError {
	return NewTransportError(op, port, ErrDataTooLarge, ErrorTypePermanent)
}

// retryableSentinels are the sentinel errors considered retryable when
// matched with errors.Is
var retryableSentinels = []error{
	ErrTransportTimeout,
	ErrTransportRead,
	ErrTransportWrite,
	ErrTransportNotReady,
	ErrCommunicationFailed,
	ErrNoACK,
	ErrFrameCorrupted,
	ErrChecksumMismatch,
}

// IsRetryable reports whether an operation that failed with err is
// worth retrying. A TransportError's explicit Retryable flag is
// authoritative; otherwise retryability is decided by sentinel match,
// never by string inspection.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var te *TransportError
	if errors.As(err, &te) {
		return te.Retryable
	}

	for _, sentinel := range retryableSentinels {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// GetErrorType classifies an error for backoff decisions
func GetErrorType(err error) ErrorType {
	if err == nil {
		return ErrorTypePermanent
	}

	var te *TransportError
	if errors.As(err, &te) {
		return te.Type
	}

	if errors.Is(err, ErrTransportTimeout) {
		return ErrorTypeTimeout
	}
	if IsRetryable(err) {
		return ErrorTypeTransient
	}
	return ErrorTypePermanent
}
