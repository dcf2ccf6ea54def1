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

// MIFARE-family commands relayed through InDataExchange
const (
	mifareCmdRead      = 0x30 // Returns 16 bytes (4 pages on Ultralight/NTAG)
	mifareCmdWrite     = 0xA0 // MIFARE Classic 16-byte block write
	mifareCmdWritePage = 0xA2 // MIFARE Ultralight / NTAG 4-byte page write
)

// Authentication key selectors for AuthenticateBlock
const (
	// MIFAREKeyA selects authentication with key A
	MIFAREKeyA = 0x60
	// MIFAREKeyB selects authentication with key B
	MIFAREKeyB = 0x61
)

// MIFARE memory geometry
const (
	mifareBlockSize = 16 // Bytes returned by one read
	mifarePageSize  = 4  // Bytes per Ultralight/NTAG write page
	mifareKeySize   = 6  // Bytes per authentication key
)

// statusFormatMismatch is the exchange status a MIFARE-family tag
// reports when the access does not fit its format.
const statusFormatMismatch = 0x13

// ReadBlock reads one 16-byte memory block from the selected target.
//
// The exchange status byte and the trailing reserved byte are stripped
// from the response. On status 0x13 the block is still returned
// together with ErrFormatMismatch: the bytes are likely unusable, but
// the caller decides. Check with errors.Is rather than discarding data
// on any non-nil error.
func (d *Device) ReadBlock(ctx context.Context, target, block byte) ([]byte, error) {
	body, err := d.InDataExchange(ctx, target, []byte{mifareCmdRead, block})
	if err != nil {
		return nil, fmt.Errorf("read block %d: %w", block, err)
	}
	return stripExchangeStatus(body, block)
}

// WriteBlock writes one memory block to the selected target. 16-byte
// buffers use the MIFARE Classic write; 4-byte buffers use the
// Ultralight/NTAG page write. Status handling matches ReadBlock.
func (d *Device) WriteBlock(ctx context.Context, target, block byte, data []byte) ([]byte, error) {
	var cmd byte
	switch len(data) {
	case mifareBlockSize:
		cmd = mifareCmdWrite
	case mifarePageSize:
		cmd = mifareCmdWritePage
	default:
		return nil, fmt.Errorf("%w: block data must be %d or %d bytes, got %d",
			ErrInvalidParameter, mifarePageSize, mifareBlockSize, len(data))
	}

	payload := make([]byte, 0, 2+len(data))
	payload = append(payload, cmd, block)
	payload = append(payload, data...)

	body, err := d.InDataExchange(ctx, target, payload)
	if err != nil {
		return nil, fmt.Errorf("write block %d: %w", block, err)
	}
	return stripExchangeStatus(body, block)
}

// stripExchangeStatus removes the leading status byte and the trailing
// reserved byte from a MIFARE exchange body, surfacing the 0x13
// format-mismatch status as a warning-kind error alongside the data.
func stripExchangeStatus(body []byte, block byte) ([]byte, error) {
	if len(body) < 2 {
		return nil, fmt.Errorf("%w: exchange body %d bytes", ErrUnexpectedResponse, len(body))
	}
	status := body[0]
	data := make([]byte, len(body)-2)
	copy(data, body[1:len(body)-1])

	if status == statusFormatMismatch {
		debugf("block %d: format mismatch (status 0x13), data may be unusable", block)
		return data, fmt.Errorf("block %d: %w", block, ErrFormatMismatch)
	}
	if status != 0x00 {
		return nil, fmt.Errorf("block %d: %w: status 0x%02X", block, ErrCommandFailed, status)
	}
	return data, nil
}

// AuthenticateBlock authenticates a block with a 6-byte key before
// Classic-style access. keyType is MIFAREKeyA or MIFAREKeyB; uid is the
// tag UID in colon-hex form as reported by detection.
//
// The raw exchange body is returned without interpretation. This path
// is a work-in-progress capability: status handling and sector state
// tracking are not implemented, so callers must not assume a non-error
// return means the sector is usable.
func (d *Device) AuthenticateBlock(ctx context.Context, uid string, block, keyType byte, key []byte) ([]byte, error) {
	if keyType != MIFAREKeyA && keyType != MIFAREKeyB {
		return nil, fmt.Errorf("%w: key type 0x%02X", ErrInvalidParameter, keyType)
	}
	if len(key) != mifareKeySize {
		return nil, fmt.Errorf("%w: key must be %d bytes, got %d", ErrInvalidParameter, mifareKeySize, len(key))
	}
	uidBytes, err := ParseUID(uid)
	if err != nil {
		return nil, err
	}

	payload := make([]byte, 0, 2+mifareKeySize+len(uidBytes))
	payload = append(payload, keyType, block)
	payload = append(payload, key...)
	payload = append(payload, uidBytes...)

	body, err := d.InDataExchange(ctx, 1, payload)
	if err != nil {
		return nil, fmt.Errorf("authenticate block %d: %w", block, err)
	}
	return body, nil
}
