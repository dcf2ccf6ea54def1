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

// Command writetag waits for a tag and writes an NDEF text record to it.
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
	"github.com/wnrosenberg/go-pn532/transport/i2c"
	"github.com/wnrosenberg/go-pn532/transport/uart"
)

type config struct {
	devicePath   *string
	text         *string
	timeout      *time.Duration
	debug        *bool
	pollInterval *time.Duration
}

func parseFlags() *config {
	cfg := &config{
		devicePath: flag.String("device", "",
			"Serial device path (e.g., /dev/ttyUSB0 or COM3). Leave empty for auto-detection."),
		text:         flag.String("text", "", "Text to write to the tag (required)"),
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

func resolvePath(cfg *config) (string, error) {
	if *cfg.devicePath != "" {
		return *cfg.devicePath, nil
	}

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

// waitForTag polls until a tag answers or ctx expires.
func waitForTag(ctx context.Context, device *pn532.Device, interval time.Duration) (*pn532.DetectedTag, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		tag, err := device.InListPassiveTarget(ctx)
		switch {
		case errors.Is(err, pn532.ErrNoTagDetected):
		case err != nil:
			return nil, fmt.Errorf("tag detection failed: %w", err)
		default:
			return tag, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func run(cfg *config) error {
	path, err := resolvePath(cfg)
	if err != nil {
		return err
	}

	transport, err := newTransport(path)
	if err != nil {
		return err
	}

	device, err := pn532.New(transport)
	if err != nil {
		_ = transport.Close()
		return fmt.Errorf("failed to create device: %w", err)
	}
	defer func() { _ = device.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), *cfg.timeout)
	defer cancel()

	if err := device.InitContext(ctx); err != nil {
		return fmt.Errorf("failed to initialize device: %w", err)
	}

	_, _ = fmt.Println("Waiting for tag to write...")
	tag, err := waitForTag(ctx, device, *cfg.pollInterval)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("no tag detected within %s", *cfg.timeout)
		}
		return err
	}
	_, _ = fmt.Printf("Tag detected: UID %s\n", tag.UID)

	if err := device.WriteNDEFText(ctx, tag.TargetNumber, *cfg.text); err != nil {
		return fmt.Errorf("failed to write text record: %w", err)
	}
	_, _ = fmt.Println("Write successful!")

	if err := device.InRelease(ctx, tag.TargetNumber); err != nil {
		return fmt.Errorf("failed to release tag: %w", err)
	}
	return nil
}

func main() {
	cfg := parseFlags()
	if *cfg.text == "" {
		_, _ = fmt.Fprintln(os.Stderr, "missing required -text flag")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(cfg); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
