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
	"sync"

	"github.com/wnrosenberg/go-pn532/internal/frame"
)

// MockTransport scripts a PN532 at the frame level for tests. Each
// written command frame is decoded and answered with an ACK followed
// by a wrapped chip-to-host data frame carrying the scripted response
// payload, exercising the real codec and correlation path end to end.
type MockTransport struct {
	responses     map[byte][]byte
	queued        map[byte][][]byte
	responseFn    func(cmd byte, args []byte) ([]byte, bool)
	notifications chan Notification
	writeErr      error
	written       [][]byte
	mu            sync.Mutex
	closed        bool
	suppressAck   bool
	suppressData  bool
}

// NewMockTransport creates a mock transport with an empty script
func NewMockTransport() *MockTransport {
	return &MockTransport{
		responses:     make(map[byte][]byte),
		queued:        make(map[byte][][]byte),
		notifications: make(chan Notification, 64),
	}
}

// SetResponse scripts the response payload (response code included)
// returned for every command with the given code
func (m *MockTransport) SetResponse(cmd byte, payload []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[cmd] = payload
}

// QueueResponse scripts a one-shot response payload for the given
// command code; queued responses are consumed in FIFO order before any
// SetResponse fallback
func (m *MockTransport) QueueResponse(cmd byte, payload []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queued[cmd] = append(m.queued[cmd], payload)
}

// SetResponseFunc scripts responses dynamically from the command code
// and its arguments; it runs after queued responses and before fixed
// ones. Returning false means "no response for this command".
func (m *MockTransport) SetResponseFunc(fn func(cmd byte, args []byte) ([]byte, bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responseFn = fn
}

// SetWriteError makes subsequent WriteFrame calls fail with err
func (m *MockTransport) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}

// SuppressAck stops the mock from acknowledging commands
func (m *MockTransport) SuppressAck(suppress bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suppressAck = suppress
}

// SuppressData stops the mock from sending response data frames,
// simulating a chip that acknowledges but never completes
func (m *MockTransport) SuppressData(suppress bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suppressData = suppress
}

// Inject delivers an arbitrary notification, bypassing the script
func (m *MockTransport) Inject(n Notification) {
	m.notifications <- n
}

// WrittenFrames returns the raw frames written so far
func (m *MockTransport) WrittenFrames() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]byte, len(m.written))
	copy(out, m.written)
	return out
}

// WriteFrame records the frame and emits the scripted ACK and response
func (m *MockTransport) WriteFrame(data []byte) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrTransportWrite
	}
	if m.writeErr != nil {
		err := m.writeErr
		m.mu.Unlock()
		return err
	}
	m.written = append(m.written, append([]byte(nil), data...))

	f, err := frame.Decode(data)
	if err != nil || f.Type != frame.TypeData || len(f.Payload) == 0 {
		m.mu.Unlock()
		return nil
	}
	cmd := f.Payload[0]

	payload, ok := m.takeResponseLocked(cmd, f.Payload[1:])
	suppressAck, suppressData := m.suppressAck, m.suppressData
	m.mu.Unlock()

	if !suppressAck {
		m.notifications <- Notification{Frame: append([]byte(nil), frame.AckFrame...)}
	}
	if !ok || suppressData {
		return nil
	}
	respFrame := frame.Encode(&frame.Frame{
		Type:      frame.TypeData,
		Direction: frame.Pn532ToHost,
		Payload:   payload,
	})
	m.notifications <- Notification{Frame: respFrame}
	return nil
}

// takeResponseLocked pops a queued response or falls back to the fixed
// one. Callers hold m.mu.
func (m *MockTransport) takeResponseLocked(cmd byte, args []byte) ([]byte, bool) {
	if q := m.queued[cmd]; len(q) > 0 {
		payload := q[0]
		m.queued[cmd] = q[1:]
		return payload, true
	}
	if m.responseFn != nil {
		if payload, ok := m.responseFn(cmd, args); ok {
			return payload, true
		}
	}
	payload, ok := m.responses[cmd]
	return payload, ok
}

// Notifications returns the notification channel
func (m *MockTransport) Notifications() <-chan Notification {
	return m.notifications
}

// Close closes the notification channel
func (m *MockTransport) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		close(m.notifications)
	}
	return nil
}

// IsConnected returns true until Close is called
func (m *MockTransport) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.closed
}

// Type returns TransportMock
func (*MockTransport) Type() TransportType {
	return TransportMock
}

// Ensure MockTransport implements Transport
var _ Transport = (*MockTransport)(nil)
