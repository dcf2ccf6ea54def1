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
	"sync"
	"time"

	"github.com/wnrosenberg/go-pn532/internal/frame"
)

// DeviceConfig contains configuration options for the Device
type DeviceConfig struct {
	// RetryConfig configures the opt-in write retry wrapper
	RetryConfig *RetryConfig
	// PollInterval is the delay between tag poll cycles
	PollInterval time.Duration
}

// DefaultDeviceConfig returns default device configuration
func DefaultDeviceConfig() *DeviceConfig {
	return &DeviceConfig{
		RetryConfig:  DefaultRetryConfig(),
		PollInterval: 1 * time.Second,
	}
}

// commandResult settles one pending request: a chip-to-host response
// payload or an error, never both.
type commandResult struct {
	err     error
	payload []byte
}

// pendingRequest is the single in-flight command slot. It is created
// when a command is dispatched and destroyed when the matching frame or
// an error notification is observed. The done channel is buffered so
// the dispatcher never blocks on a caller that already gave up.
type pendingRequest struct {
	done  chan commandResult
	acked bool
}

func (p *pendingRequest) settle(r commandResult) {
	select {
	case p.done <- r:
	default:
	}
}

// Device correlates commands with responses over a single PN532
// transport. It owns the transport handle and exactly one pending
// request slot: commands never pipeline, matching the chip's single
// logical request/response channel (the protocol carries no request
// identifier to disambiguate concurrent exchanges).
//
// A Device may be shared between goroutines, but a second SendCommand
// issued while one is in flight fails immediately with
// ErrCommandPending rather than queueing.
type Device struct {
	transport       Transport
	config          *DeviceConfig
	firmwareVersion *FirmwareVersion
	pending         *pendingRequest
	dispatcherDone  chan struct{}
	mu              sync.Mutex
}

// New creates a new PN532 device with the given transport and starts
// its notification dispatcher. Close releases both.
func New(transport Transport, opts ...Option) (*Device, error) {
	if transport == nil {
		return nil, fmt.Errorf("%w: nil transport", ErrUnsupportedTransport)
	}

	device := &Device{
		transport:      transport,
		config:         DefaultDeviceConfig(),
		dispatcherDone: make(chan struct{}),
	}

	for _, opt := range opts {
		if err := opt(device); err != nil {
			return nil, err
		}
	}

	go device.dispatch()
	return device, nil
}

// Transport returns the underlying transport
func (d *Device) Transport() Transport {
	return d.transport
}

// SendCommand dispatches one command payload (command code plus body)
// and waits for the matching chip-to-host response payload.
//
// The sequence per call is fixed: install the pending slot, encode a
// host-to-chip data frame, perform exactly one transport write, then
// wait. An ACK notification only means the command was received and
// keeps the wait alive; a data frame resolves it; an error frame or a
// transport error rejects it. If another command is already pending the
// call fails immediately with ErrCommandPending - callers needing
// queueing must serialize above this layer.
//
// There is no built-in timeout: an unacknowledged command waits until
// ctx is done, at which point the slot is deregistered and the call
// rejected locally without waiting on the transport.
func (d *Device) SendCommand(ctx context.Context, payload []byte) ([]byte, error) {
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: empty command payload", ErrInvalidParameter)
	}
	if len(payload) > frame.MaxPayloadLength {
		return nil, NewDataTooLargeError("SendCommand", string(d.transport.Type()))
	}

	p := &pendingRequest{done: make(chan commandResult, 1)}

	d.mu.Lock()
	if d.pending != nil {
		d.mu.Unlock()
		return nil, ErrCommandPending
	}
	d.pending = p
	d.mu.Unlock()

	encoded := frame.Encode(frame.NewCommandFrame(payload))
	debugf("-> %02X % X", payload[0], payload[1:])
	if err := d.transport.WriteFrame(encoded); err != nil {
		d.clearPending(p)
		return nil, fmt.Errorf("%w: %w", ErrTransportWrite, err)
	}

	select {
	case r := <-p.done:
		if r.err != nil {
			return nil, r.err
		}
		return r.payload, nil
	case <-ctx.Done():
		d.clearPending(p)
		return nil, ctx.Err()
	case <-d.dispatcherDone:
		d.clearPending(p)
		return nil, ErrDeviceClosed
	}
}

// clearPending removes p from the slot if it still occupies it. A lost
// race with the dispatcher is fine: the result lands in p's buffered
// channel and is dropped with it.
func (d *Device) clearPending(p *pendingRequest) {
	d.mu.Lock()
	if d.pending == p {
		d.pending = nil
	}
	d.mu.Unlock()
}

// takePending removes and returns the current pending request, if any.
func (d *Device) takePending() *pendingRequest {
	d.mu.Lock()
	defer d.mu.Unlock()
	p := d.pending
	d.pending = nil
	return p
}

// dispatch drains transport notifications and settles the pending
// request slot. It is the only reader of the notification channel and
// the only resolver of pending requests, which keeps the match between
// overlapping arrivals and the single slot race-free.
func (d *Device) dispatch() {
	defer close(d.dispatcherDone)

	for n := range d.transport.Notifications() {
		if n.Err != nil {
			if p := d.takePending(); p != nil {
				p.settle(commandResult{err: n.Err})
			} else {
				debugf("transport error with no pending command: %v", n.Err)
			}
			continue
		}
		d.dispatchFrame(n.Frame)
	}
}

// dispatchFrame decodes one candidate frame buffer and applies it to
// the pending slot.
func (d *Device) dispatchFrame(buf []byte) {
	f, err := frame.Decode(buf)
	if err != nil {
		if p := d.takePending(); p != nil {
			p.settle(commandResult{err: fmt.Errorf("%w: %w", ErrFrameCorrupted, err)})
		} else {
			debugf("discarding invalid frame: % X", buf)
		}
		return
	}

	switch f.Type {
	case frame.TypeAck:
		// Command received, not completed; keep waiting for the data frame
		d.mu.Lock()
		if d.pending != nil {
			d.pending.acked = true
		}
		d.mu.Unlock()
	case frame.TypeNack:
		debugln("NACK received; command will not be retransmitted")
	case frame.TypeError:
		if p := d.takePending(); p != nil {
			p.settle(commandResult{err: fmt.Errorf("%w: error frame (0x7F)", ErrCommandFailed)})
		}
	case frame.TypeData:
		if p := d.takePending(); p != nil {
			debugf("<- % X", f.Payload)
			p.settle(commandResult{payload: f.Payload})
		} else {
			debugf("discarding unsolicited data frame: % X", f.Payload)
		}
	case frame.TypeInvalid:
	}
}

// Init initializes the PN532 by configuring the Secure Access Module.
func (d *Device) Init() error {
	return d.InitContext(context.Background())
}

// InitContext initializes the PN532 with context support.
func (d *Device) InitContext(ctx context.Context) error {
	if err := d.SAMConfiguration(ctx); err != nil {
		return fmt.Errorf("SAM configuration failed: %w", err)
	}
	return nil
}

// PollInterval returns the configured tag poll interval.
func (d *Device) PollInterval() time.Duration {
	return d.config.PollInterval
}

// SetRetryConfig updates the retry configuration
func (d *Device) SetRetryConfig(config *RetryConfig) {
	d.config.RetryConfig = config
	if tr, ok := d.transport.(*TransportWithRetry); ok {
		tr.SetRetryConfig(config)
	}
}

// Close closes the device and its transport. Any in-flight command is
// rejected once the transport's notification channel drains.
func (d *Device) Close() error {
	if d.transport != nil {
		if err := d.transport.Close(); err != nil {
			return fmt.Errorf("failed to close transport: %w", err)
		}
	}
	return nil
}
