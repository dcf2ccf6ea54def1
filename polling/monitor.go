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

// Package polling runs the periodic tag detection loop on top of a
// pn532.Device. The monitor is idle until Start; cancelling the Start
// context is the only way to stop it.
package polling

import (
	"context"
	"errors"
	"fmt"
	"time"

	pn532 "github.com/wnrosenberg/go-pn532"
)

// Config controls monitor timing.
type Config struct {
	// PollInterval is the pause between detection attempts.
	PollInterval time.Duration
}

// DefaultConfig returns the default monitor configuration.
func DefaultConfig() *Config {
	return &Config{
		PollInterval: time.Second,
	}
}

// Monitor polls for tags in the field and reports them through
// callbacks. Every successful poll that finds a tag fires
// OnTagDetected; OnTagRemoved fires once when a previously seen tag
// stops answering.
type Monitor struct {
	device        *pn532.Device
	config        *Config
	OnTagDetected func(tag *pn532.DetectedTag) error
	OnTagRemoved  func()
	lastUID       string
}

// NewMonitor creates a monitor over an initialized device.
func NewMonitor(device *pn532.Device, config *Config) *Monitor {
	if config == nil {
		config = DefaultConfig()
	}
	if config.PollInterval <= 0 {
		config.PollInterval = time.Second
	}
	return &Monitor{
		device: device,
		config: config,
	}
}

// Device returns the underlying PN532 device.
func (m *Monitor) Device() *pn532.Device {
	return m.device
}

// Start polls until ctx is cancelled. Callback errors stop the loop
// and are returned to the caller; detection errors other than "no tag"
// are returned as well since they indicate a broken transport.
func (m *Monitor) Start(ctx context.Context) error {
	ticker := time.NewTicker(m.config.PollInterval)
	defer ticker.Stop()

	for {
		if err := m.pollOnce(ctx); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (m *Monitor) pollOnce(ctx context.Context) error {
	tag, err := m.device.InListPassiveTarget(ctx)
	switch {
	case errors.Is(err, pn532.ErrNoTagDetected):
		if m.lastUID != "" {
			m.lastUID = ""
			if m.OnTagRemoved != nil {
				m.OnTagRemoved()
			}
		}
		return nil
	case err != nil:
		return fmt.Errorf("tag detection failed: %w", err)
	}

	m.lastUID = tag.UID
	if m.OnTagDetected != nil {
		if cbErr := m.OnTagDetected(tag); cbErr != nil {
			return fmt.Errorf("tag callback failed: %w", cbErr)
		}
	}
	return nil
}
