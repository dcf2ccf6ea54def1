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

// Package i2c provides the I2C transport for PN532 devices. The bus
// has no push side, so each frame write schedules a collection pass
// that polls the chip's ready status and delivers the ACK and response
// frames over the notification channel.
package i2c

import (
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	pn532 "github.com/wnrosenberg/go-pn532"
	"github.com/wnrosenberg/go-pn532/internal/frame"
	itransport "github.com/wnrosenberg/go-pn532/internal/transport"
)

const (
	// PN532 I2C address (write address; periph shifts as needed).
	pn532Addr = 0x48

	// First byte of every I2C read: 0x01 when the chip has data.
	pn532Ready = 0x01

	// Max clock frequency (400 kHz).
	maxClockFreq = 400 * physic.KiloHertz

	// Longest possible wrapped frame plus the ready status byte.
	readSpan = frame.MaxFrameDataLength + 8

	// Command processing delay before the first response poll.
	processingDelay = 6 * time.Millisecond

	maxFrameRetries = 3
)

// Transport implements the pn532.Transport interface for I2C communication.
type Transport struct {
	dev           *i2c.Dev
	busName       string
	notifications chan pn532.Notification
	timeout       time.Duration
	mu            sync.Mutex
	closed        bool
}

// New creates a new I2C transport on the given bus.
func New(busName string) (*Transport, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph host: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("failed to open I2C bus %s: %w", busName, err)
	}

	dev := &i2c.Dev{Addr: pn532Addr, Bus: bus}
	_ = bus.SetSpeed(maxClockFreq) // Continue with the default speed on error

	return &Transport{
		dev:           dev,
		busName:       busName,
		notifications: make(chan pn532.Notification, 16),
		timeout:       time.Second,
	}, nil
}

// WriteFrame writes an encoded frame and schedules the response
// collection pass. Collection runs under the transport mutex, so a
// second write queues behind the previous exchange.
func (t *Transport) WriteFrame(data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return pn532.NewTransportError("WriteFrame", t.busName, pn532.ErrTransportWrite, pn532.ErrorTypePermanent)
	}

	if err := t.dev.Tx(data, nil); err != nil {
		return pn532.NewTransportError("WriteFrame", t.busName,
			fmt.Errorf("%w: %w", pn532.ErrTransportWrite, err), pn532.ErrorTypeTransient)
	}

	go t.collectResponse()
	return nil
}

// collectResponse polls for and delivers the ACK and data frames that
// follow one command write.
func (t *Transport) collectResponse() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}

	ack, err := t.waitReadChunk(len(frame.AckFrame))
	if err != nil {
		t.notify(pn532.Notification{Err: err})
		return
	}
	t.notifyFrames(ack)

	time.Sleep(processingDelay)

	resp, err := t.receiveFrame()
	if err != nil {
		t.notify(pn532.Notification{Err: err})
		return
	}
	t.notifyFrames(resp)
}

// receiveFrame reads a response frame, NACKing and re-reading when the
// chunk does not scan to a complete frame.
func (t *Transport) receiveFrame() ([]byte, error) {
	return itransport.WithRetry(maxFrameRetries, time.Millisecond, func() ([]byte, bool, error) {
		chunk, err := t.waitReadChunk(readSpan)
		if err != nil {
			return nil, false, err
		}
		var s frame.Scanner
		if frames := s.Push(chunk); len(frames) > 0 {
			return frames[0], false, nil
		}
		if nackErr := t.dev.Tx(frame.NackFrame, nil); nackErr != nil {
			return nil, false, pn532.NewTransportError("sendNack", t.busName,
				fmt.Errorf("%w: %w", pn532.ErrTransportWrite, nackErr), pn532.ErrorTypeTransient)
		}
		return nil, true, nil
	})
}

// waitReadChunk polls the ready status until the chip has data, then
// reads size bytes and strips the leading status byte.
func (t *Transport) waitReadChunk(size int) ([]byte, error) {
	return itransport.TimeoutRetry(t.timeout, func() ([]byte, bool, error) {
		buf := make([]byte, size+1)
		if err := t.dev.Tx(nil, buf); err != nil {
			return nil, false, pn532.NewTransportError("Read", t.busName,
				fmt.Errorf("%w: %w", pn532.ErrTransportRead, err), pn532.ErrorTypeTransient)
		}
		if buf[0] != pn532Ready {
			return nil, true, nil
		}
		return buf[1:], false, nil
	})
}

// notifyFrames classifies a read chunk into candidate frames and
// pushes each one.
func (t *Transport) notifyFrames(chunk []byte) {
	var s frame.Scanner
	for _, f := range s.Push(chunk) {
		t.notify(pn532.Notification{Frame: f})
	}
}

func (t *Transport) notify(n pn532.Notification) {
	if !t.closed {
		t.notifications <- n
	}
}

// Notifications returns the frame-arrival channel.
func (t *Transport) Notifications() <-chan pn532.Notification {
	return t.notifications
}

// Close closes the transport and its notification channel.
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	close(t.notifications)
	// periph.io handles bus cleanup automatically
	return nil
}

// IsConnected returns true while the transport is open.
func (t *Transport) IsConnected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.closed
}

// Type returns the transport type.
func (*Transport) Type() pn532.TransportType {
	return pn532.TransportI2C
}

// Ensure Transport implements pn532.Transport
var _ pn532.Transport = (*Transport)(nil)
