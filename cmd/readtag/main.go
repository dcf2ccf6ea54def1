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

// Command readtag polls for a tag and dumps its NDEF content.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	pn532 "github.com/wnrosenberg/go-pn532"
	"github.com/wnrosenberg/go-pn532/detection"
	"github.com/wnrosenberg/go-pn532/polling"
	"github.com/wnrosenberg/go-pn532/transport/i2c"
	"github.com/wnrosenberg/go-pn532/transport/uart"
)

type config struct {
	devicePath   *string
	timeout      *time.Duration
	debug        *bool
	pollInterval *time.Duration
}

func parseFlags() *config {
	cfg := &config{
		devicePath: flag.String("device", "",
			"Serial device path (e.g., /dev/ttyUSB0 or COM3). Leave empty for auto-detection."),
		timeout:      flag.Duration("timeout", 30*time.Second, "Timeout for tag detection"),
		debug:        flag.Bool("debug", false, "Enable debug output"),
		pollInterval: flag.Duration("poll-interval", 100*time.Millisecond, "Polling interval for tag detection"),
	}
	flag.Parse()

	if *cfg.debug {
		pn532.SetDebugEnabled(true)
	}

	return cfg
}

// newTransport creates a transport from a device path.
func newTransport(path string) (pn532.Transport, error) {
	if path == "" {
		return nil, errors.New("empty device path")
	}

	if strings.Contains(strings.ToLower(path), "i2c") {
		transport, err := i2c.New(path)
		if err != nil {
			return nil, fmt.Errorf("failed to create I2C transport: %w", err)
		}
		return transport, nil
	}

	transport, err := uart.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create UART transport: %w", err)
	}
	return transport, nil
}

// resolvePath returns the configured device path or the first
// auto-detected candidate.
func resolvePath(cfg *config) (string, error) {
	if *cfg.devicePath != "" {
		return *cfg.devicePath, nil
	}

	_, _ = fmt.Println("Auto-detecting PN532 devices...")
	devices, err := detection.DetectAll()
	if err != nil {
		return "", fmt.Errorf("device detection failed: %w", err)
	}
	if len(devices) == 0 {
		return "", errors.New("no candidate devices found")
	}
	_, _ = fmt.Printf("Using device: %s (%s)\n", devices[0].Path, devices[0].Name)
	return devices[0].Path, nil
}

func connectDevice(cfg *config) (*pn532.Device, error) {
	path, err := resolvePath(cfg)
	if err != nil {
		return nil, err
	}

	transport, err := newTransport(path)
	if err != nil {
		return nil, err
	}

	device, err := pn532.New(transport)
	if err != nil {
		_ = transport.Close()
		return nil, fmt.Errorf("failed to create device: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *cfg.timeout)
	defer cancel()

	if err := device.InitContext(ctx); err != nil {
		_ = device.Close()
		return nil, fmt.Errorf("failed to initialize device: %w", err)
	}

	if version, versionErr := device.GetFirmwareVersion(ctx); versionErr == nil {
		_, _ = fmt.Printf("PN532 Firmware: %s\n", version.Version)
	}

	return device, nil
}

func dumpTag(ctx context.Context, device *pn532.Device, tag *pn532.DetectedTag) error {
	_, _ = fmt.Printf("\nTag detected: UID %s (ATQA %02X%02X, SAK %02X)\n",
		tag.UID, tag.ATQA[0], tag.ATQA[1], tag.SAK)

	msg, err := device.ReadNDEFMessage(ctx, tag.TargetNumber)
	switch {
	case errors.Is(err, pn532.ErrTLVNotFound):
		_, _ = fmt.Println("No NDEF message on tag")
		return nil
	case err != nil:
		return fmt.Errorf("failed to read NDEF message: %w", err)
	}

	_, _ = fmt.Printf("NDEF message: %s\n", msg)
	return nil
}

func main() {
	cfg := parseFlags()

	device, err := connectDevice(cfg)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to connect to device: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = device.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), *cfg.timeout)
	defer cancel()

	monitor := polling.NewMonitor(device, &polling.Config{PollInterval: *cfg.pollInterval})
	monitor.OnTagDetected = func(tag *pn532.DetectedTag) error {
		return dumpTag(ctx, device, tag)
	}
	monitor.OnTagRemoved = func() {
		_, _ = fmt.Println("Tag removed - ready for next tag...")
	}

	_, _ = fmt.Printf("Waiting for NFC tag (timeout: %s, poll interval: %s)...\n", *cfg.timeout, *cfg.pollInterval)

	if err := monitor.Start(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
