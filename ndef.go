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
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/hsanjuan/go-ndef"
)

// TLV types per NFC Forum Type 2 Tag specification
const (
	tlvNull       = 0x00 // Padding byte, no length field
	tlvNDEF       = 0x03 // NDEF Message TLV
	tlvTerminator = 0xFE // End of data area, no length field
)

// NDEF memory layout
const (
	ndefStartBlock = 0x04 // First user-memory block holding the TLV area
	ndefMaxShort   = 0xFE // Largest value length for the 1-byte TLV length form
)

// tlvLocation is the transient cursor result while scanning a block
// for the NDEF TLV entry: where the value starts within the
// accumulated buffer and how long it is.
type tlvLocation struct {
	valueOffset int
	length      int
}

// findNDEFTLV scans a block buffer for the NDEF TLV entry. NULL TLVs
// are single padding bytes; every other non-NDEF entry is skipped over
// its declared length. A terminator before the NDEF entry, or running
// off the end of the block, fails with ErrTLVNotFound.
func findNDEFTLV(block []byte) (*tlvLocation, error) {
	cursor := 0
	for cursor < len(block) {
		switch block[cursor] {
		case tlvNull:
			cursor++
		case tlvTerminator:
			return nil, fmt.Errorf("%w: terminator at offset %d", ErrTLVNotFound, cursor)
		case tlvNDEF:
			return parseNDEFLength(block, cursor)
		default:
			if cursor+1 >= len(block) {
				return nil, fmt.Errorf("%w: truncated TLV at offset %d", ErrTLVNotFound, cursor)
			}
			cursor += 2 + int(block[cursor+1])
		}
	}
	return nil, fmt.Errorf("%w: block exhausted", ErrTLVNotFound)
}

// parseNDEFLength reads the TLV length field at cursor. Lengths up to
// 0xFE use the short 1-byte form; 0xFF marks the 3-byte form with a
// big-endian 16-bit length (NFCForum-TS-Type-2-Tag 1.1, section 2.3).
func parseNDEFLength(block []byte, cursor int) (*tlvLocation, error) {
	if cursor+1 >= len(block) {
		return nil, fmt.Errorf("%w: missing length byte", ErrTLVNotFound)
	}
	if block[cursor+1] != 0xFF {
		return &tlvLocation{
			valueOffset: cursor + 2,
			length:      int(block[cursor+1]),
		}, nil
	}
	if cursor+3 >= len(block) {
		return nil, fmt.Errorf("%w: truncated long length field", ErrTLVNotFound)
	}
	return &tlvLocation{
		valueOffset: cursor + 4,
		length:      int(binary.BigEndian.Uint16(block[cursor+2 : cursor+4])),
	}, nil
}

// ReadNDEF locates and assembles the NDEF payload from tag memory.
//
// The block at ndefStartBlock is read and scanned for the NDEF TLV;
// if the value extends past it, further 16-byte blocks are read one at
// a time at addresses 4*(n+1) - sequentially, because the driver keeps
// a single request in flight - and concatenated. Exactly the TLV value
// is returned, trimming any read overshoot. Format-mismatch warnings
// from the block layer do not abort assembly.
func (d *Device) ReadNDEF(ctx context.Context, target byte) ([]byte, error) {
	buf, err := d.readNDEFBlock(ctx, target, ndefStartBlock)
	if err != nil {
		return nil, err
	}

	loc, err := findNDEFTLV(buf)
	if err != nil {
		return nil, err
	}

	total := loc.valueOffset + loc.length
	additional := 0
	if total > mifareBlockSize {
		additional = (total - mifareBlockSize + mifareBlockSize - 1) / mifareBlockSize
	}
	for n := 1; n <= additional; n++ {
		addr := int(ndefStartBlock) * (n + 1)
		if addr > 0xFF {
			return nil, fmt.Errorf("%w: NDEF value spans past block 255", ErrDataTooLarge)
		}
		block, err := d.readNDEFBlock(ctx, target, byte(addr))
		if err != nil {
			return nil, err
		}
		buf = append(buf, block...)
	}

	if len(buf) < total {
		return nil, fmt.Errorf("%w: assembled %d of %d bytes", ErrUnexpectedResponse, len(buf), total)
	}
	return buf[loc.valueOffset:total], nil
}

// readNDEFBlock reads one block, tolerating the format-mismatch
// warning as long as data came back.
func (d *Device) readNDEFBlock(ctx context.Context, target, block byte) ([]byte, error) {
	data, err := d.ReadBlock(ctx, target, block)
	if err != nil && !errors.Is(err, ErrFormatMismatch) {
		return nil, err
	}
	if errors.Is(err, ErrFormatMismatch) {
		debugf("NDEF read: continuing past format mismatch on block %d", block)
	}
	if len(data) < mifareBlockSize {
		return nil, fmt.Errorf("%w: block %d returned %d bytes", ErrUnexpectedResponse, block, len(data))
	}
	return data[:mifareBlockSize], nil
}

// WriteNDEF wraps data in an NDEF TLV, fragments it into 4-byte pages
// (zero-padding the final page) and writes the pages to ascending
// block addresses starting at ndefStartBlock, one write completing
// before the next is issued.
func (d *Device) WriteNDEF(ctx context.Context, target byte, data []byte) error {
	header, err := ndefTLVHeader(len(data))
	if err != nil {
		return err
	}

	msg := make([]byte, 0, len(header)+len(data)+1)
	msg = append(msg, header...)
	msg = append(msg, data...)
	msg = append(msg, tlvTerminator)

	for i := 0; len(msg) > 0; i++ {
		page := make([]byte, mifarePageSize)
		copy(page, msg)
		if len(msg) > mifarePageSize {
			msg = msg[mifarePageSize:]
		} else {
			msg = nil
		}

		block := int(ndefStartBlock) + i
		if block > 0xFF {
			return fmt.Errorf("%w: NDEF message spans past block 255", ErrDataTooLarge)
		}
		if _, err := d.WriteBlock(ctx, target, byte(block), page); err != nil && !errors.Is(err, ErrFormatMismatch) {
			return fmt.Errorf("NDEF write: %w", err)
		}
	}
	return nil
}

// ndefTLVHeader builds the NDEF TLV tag and length field for a value
// of the given size, using the 3-byte length form past 0xFE bytes.
func ndefTLVHeader(length int) ([]byte, error) {
	if length <= ndefMaxShort {
		return []byte{tlvNDEF, byte(length)}, nil
	}
	if length > 0xFFFF {
		return nil, fmt.Errorf("%w: NDEF value of %d bytes", ErrDataTooLarge, length)
	}
	header := []byte{tlvNDEF, 0xFF, 0x00, 0x00}
	binary.BigEndian.PutUint16(header[2:], uint16(length))
	return header, nil
}

// ReadNDEFMessage assembles and decodes the tag's NDEF message.
func (d *Device) ReadNDEFMessage(ctx context.Context, target byte) (*ndef.Message, error) {
	raw, err := d.ReadNDEF(ctx, target)
	if err != nil {
		return nil, err
	}

	msg := &ndef.Message{}
	if _, err := msg.Unmarshal(raw); err != nil {
		return nil, fmt.Errorf("failed to decode NDEF message: %w", err)
	}
	return msg, nil
}

// ReadNDEFText reads the tag's NDEF message and renders it as text.
func (d *Device) ReadNDEFText(ctx context.Context, target byte) (string, error) {
	msg, err := d.ReadNDEFMessage(ctx, target)
	if err != nil {
		return "", err
	}
	return msg.String(), nil
}

// WriteNDEFText writes a single well-known text record ("en" locale).
func (d *Device) WriteNDEFText(ctx context.Context, target byte, text string) error {
	msg := ndef.NewTextMessage(text, "en")
	payload, err := msg.Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode NDEF message: %w", err)
	}
	return d.WriteNDEF(ctx, target, payload)
}
