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

// Package uart provides the UART transport for PN532 devices: it
// writes encoded frames to a serial port and pushes complete candidate
// frames cut from the receive stream to the driver core.
package uart

import (
	"fmt"
	"sync"
	"time"

	"go.bug.st/serial"

	pn532 "github.com/wnrosenberg/go-pn532"
	"github.com/wnrosenberg/go-pn532/internal/frame"
)

const (
	baudRate    = 115200
	readTimeout = 50 * time.Millisecond
	readBufSize = 512
)

// wakeup precedes the first frame on the wire: long HSU preamble that
// brings the chip out of low-VBAT mode before it can parse a command.
var wakeup = []byte{0x55, 0x55, 0x00, 0x00, 0x00}

// Transport implements the pn532.Transport interface over a serial port.
type Transport struct {
	port          serial.Port
	portName      string
	notifications chan pn532.Notification
	closing       chan struct{}
	mu            sync.Mutex
	awake         bool
	closed        bool
}

// New opens a UART transport on the given port and starts its read loop.
func New(portName string) (*Transport, error) {
	port, err := serial.Open(portName, &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open UART port %s: %w", portName, err)
	}

	if err := port.SetReadTimeout(readTimeout); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("failed to set UART read timeout: %w", err)
	}

	t := &Transport{
		port:          port,
		portName:      portName,
		notifications: make(chan pn532.Notification, 16),
		closing:       make(chan struct{}),
	}
	go t.readLoop()
	return t, nil
}

// WriteFrame writes an exact encoded frame to the serial port. The
// first write is preceded by the wakeup preamble.
func (t *Transport) WriteFrame(data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return pn532.NewTransportError("WriteFrame", t.portName, pn532.ErrTransportWrite, pn532.ErrorTypePermanent)
	}

	if !t.awake {
		if _, err := t.port.Write(wakeup); err != nil {
			return pn532.NewTransportError("WriteFrame", t.portName,
				fmt.Errorf("%w: %w", pn532.ErrTransportWrite, err), pn532.ErrorTypeTransient)
		}
		t.awake = true
	}

	if _, err := t.port.Write(data); err != nil {
		return pn532.NewTransportError("WriteFrame", t.portName,
			fmt.Errorf("%w: %w", pn532.ErrTransportWrite, err), pn532.ErrorTypeTransient)
	}
	return nil
}

// readLoop drains the serial port, cuts the byte stream at frame
// boundaries and pushes candidate frames. It owns the notification
// channel and closes it on exit.
func (t *Transport) readLoop() {
	defer close(t.notifications)

	var scanner frame.Scanner
	buf := make([]byte, readBufSize)

	for {
		select {
		case <-t.closing:
			return
		default:
		}

		n, err := t.port.Read(buf)
		if err != nil {
			select {
			case <-t.closing:
				// Read failures during teardown are expected
				return
			default:
			}
			t.notifications <- pn532.Notification{
				Err: pn532.NewTransportError("Read", t.portName,
					fmt.Errorf("%w: %w", pn532.ErrTransportRead, err), pn532.ErrorTypeTransient),
			}
			return
		}
		if n == 0 {
			// Read timeout; poll again so Close can win the race
			continue
		}

		for _, f := range scanner.Push(buf[:n]) {
			t.notifications <- pn532.Notification{Frame: f}
		}
	}
}

// Notifications returns the frame-arrival channel.
func (t *Transport) Notifications() <-chan pn532.Notification {
	return t.notifications
}

// Close closes the serial port and stops the read loop.
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	close(t.closing)
	if err := t.port.Close(); err != nil {
		return fmt.Errorf("failed to close UART port: %w", err)
	}
	return nil
}

// IsConnected returns true while the port is open.
func (t *Transport) IsConnected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.closed
}

// Type returns the transport type.
func (*Transport) Type() pn532.TransportType {
	return pn532.TransportUART
}

// Ensure Transport implements pn532.Transport
var _ pn532.Transport = (*Transport)(nil)
