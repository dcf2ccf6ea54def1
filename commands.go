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
	"encoding/hex"
	"fmt"
	"strings"
)

// PN532 Command codes
const (
	cmdSamConfiguration    = 0x14
	cmdGetFirmwareVersion  = 0x02
	cmdGetGeneralStatus    = 0x04
	cmdInListPassiveTarget = 0x4A
	cmdInDataExchange      = 0x40
	cmdInRelease           = 0x52
)

// SAMConfiguration parameters: normal mode, 1s virtual-card timeout
// (0x14 * 50ms), IRQ pin enabled. Section 7.2.10 of the PN532 manual.
const (
	samModeNormal     = 0x01
	samTimeoutDefault = 0x14
	samUseIRQ         = 0x01
)

// Baud rate / modulation selector for InListPassiveTarget
const (
	// BaudRateTypeA selects 106 kbps ISO14443 Type A
	BaudRateTypeA = 0x00
)

// call dispatches a command and validates the response code. The chip
// answers every command code with code+1; anything else means the
// correlation layer matched a frame that does not belong to this
// exchange. Returns the response body with the code stripped.
func (d *Device) call(ctx context.Context, cmd byte, args []byte) ([]byte, error) {
	payload := make([]byte, 0, 1+len(args))
	payload = append(payload, cmd)
	payload = append(payload, args...)

	resp, err := d.SendCommand(ctx, payload)
	if err != nil {
		return nil, err
	}
	if len(resp) == 0 {
		return nil, fmt.Errorf("%w: command %02X", ErrEmptyResponse, cmd)
	}
	if resp[0] != cmd+1 {
		return nil, fmt.Errorf("%w: command %02X answered %02X", ErrUnexpectedResponse, cmd, resp[0])
	}
	return resp[1:], nil
}

// SAMConfiguration selects the Secure Access Module mode. The chip
// answers with an empty body; reaching this response at all is the
// usual "is a PN532 listening" probe.
func (d *Device) SAMConfiguration(ctx context.Context) error {
	_, err := d.call(ctx, cmdSamConfiguration, []byte{samModeNormal, samTimeoutDefault, samUseIRQ})
	if err != nil {
		return fmt.Errorf("SAMConfiguration failed: %w", err)
	}
	return nil
}

// FirmwareVersion contains the parsed GetFirmwareVersion response
type FirmwareVersion struct {
	// Version is the firmware version in "major.revision" form
	Version string
	// IC is the chip identifier (0x32 for PN532)
	IC byte
	// Revision is the firmware revision byte
	Revision byte
	// Support is the supported protocol bit field
	Support byte
}

// GetFirmwareVersion queries the chip firmware version.
func (d *Device) GetFirmwareVersion(ctx context.Context) (*FirmwareVersion, error) {
	if d.firmwareVersion != nil {
		return d.firmwareVersion, nil
	}

	body, err := d.call(ctx, cmdGetFirmwareVersion, nil)
	if err != nil {
		return nil, fmt.Errorf("GetFirmwareVersion failed: %w", err)
	}
	if len(body) < 4 {
		return nil, fmt.Errorf("%w: firmware version body %d bytes", ErrUnexpectedResponse, len(body))
	}

	d.firmwareVersion = &FirmwareVersion{
		IC:       body[0],
		Version:  fmt.Sprintf("%d.%d", body[1], body[2]),
		Revision: body[2],
		Support:  body[3],
	}
	return d.firmwareVersion, nil
}

// GetGeneralStatus returns the raw general status body: last error,
// RF field presence and target descriptors. Callers interpret it.
func (d *Device) GetGeneralStatus(ctx context.Context) ([]byte, error) {
	body, err := d.call(ctx, cmdGetGeneralStatus, nil)
	if err != nil {
		return nil, fmt.Errorf("GetGeneralStatus failed: %w", err)
	}
	return body, nil
}

// DetectedTag describes one target found by InListPassiveTarget
type DetectedTag struct {
	// UID is the tag UID as a colon-separated hex string ("04:A1:B2:C3")
	UID string
	// UIDBytes is the raw tag UID
	UIDBytes []byte
	// ATQA is the two answer-to-request bytes (SENS_RES)
	ATQA []byte
	// TargetNumber is the logical target number assigned by the chip
	TargetNumber byte
	// SAK is the select-acknowledge byte (SEL_RES)
	SAK byte
}

// InListPassiveTarget scans for a single passive ISO14443 Type A
// target. Returns ErrNoTagDetected when the field is empty.
//
// Response body layout: NbTg, Tg, SENS_RES (2 bytes), SEL_RES,
// NFCID length, NFCID bytes.
func (d *Device) InListPassiveTarget(ctx context.Context) (*DetectedTag, error) {
	body, err := d.call(ctx, cmdInListPassiveTarget, []byte{0x01, BaudRateTypeA})
	if err != nil {
		return nil, fmt.Errorf("InListPassiveTarget failed: %w", err)
	}
	return parsePassiveTarget(body)
}

// parsePassiveTarget extracts the single-target fields from an
// InListPassiveTarget response body.
func parsePassiveTarget(body []byte) (*DetectedTag, error) {
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty target listing", ErrUnexpectedResponse)
	}
	if body[0] == 0 {
		return nil, ErrNoTagDetected
	}
	if body[0] != 1 {
		// The chip was asked for at most one target
		return nil, fmt.Errorf("%w: %d targets listed", ErrUnexpectedResponse, body[0])
	}
	if len(body) < 6 {
		return nil, fmt.Errorf("%w: target listing %d bytes", ErrUnexpectedResponse, len(body))
	}

	uidLen := int(body[5])
	if len(body) < 6+uidLen {
		return nil, fmt.Errorf("%w: UID truncated", ErrUnexpectedResponse)
	}
	uid := make([]byte, uidLen)
	copy(uid, body[6:6+uidLen])

	return &DetectedTag{
		TargetNumber: body[1],
		ATQA:         []byte{body[2], body[3]},
		SAK:          body[4],
		UID:          FormatUID(uid),
		UIDBytes:     uid,
	}, nil
}

// InDataExchange relays data to the selected target. The returned body
// starts with the exchange status byte; callers interpret it, since
// some statuses (like the MIFARE format mismatch) are warnings rather
// than failures.
func (d *Device) InDataExchange(ctx context.Context, target byte, data []byte) ([]byte, error) {
	args := make([]byte, 0, 1+len(data))
	args = append(args, target)
	args = append(args, data...)

	body, err := d.call(ctx, cmdInDataExchange, args)
	if err != nil {
		return nil, fmt.Errorf("InDataExchange failed: %w", err)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: no exchange status", ErrEmptyResponse)
	}
	return body, nil
}

// InRelease releases the selected target (0x00 releases all).
func (d *Device) InRelease(ctx context.Context, target byte) error {
	_, err := d.call(ctx, cmdInRelease, []byte{target})
	if err != nil {
		return fmt.Errorf("InRelease failed: %w", err)
	}
	return nil
}

// FormatUID renders a raw UID as the colon-separated hex string used
// across the public API.
func FormatUID(uid []byte) string {
	parts := make([]string, len(uid))
	for i, b := range uid {
		parts[i] = fmt.Sprintf("%02X", b)
	}
	return strings.Join(parts, ":")
}

// ParseUID parses a colon-separated hex UID string back to raw bytes.
func ParseUID(uid string) ([]byte, error) {
	if uid == "" {
		return nil, fmt.Errorf("%w: empty string", ErrInvalidUID)
	}
	parts := strings.Split(uid, ":")
	out := make([]byte, 0, len(parts))
	for _, part := range parts {
		b, err := hex.DecodeString(part)
		if err != nil || len(b) != 1 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidUID, uid)
		}
		out = append(out, b[0])
	}
	return out, nil
}
