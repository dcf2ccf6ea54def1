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
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wnrosenberg/go-pn532/internal/frame"
	pn532testing "github.com/wnrosenberg/go-pn532/internal/testing"
)

func TestFindNDEFTLV(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		block      []byte
		wantOffset int
		wantLength int
		wantErr    bool
	}{
		{
			name:       "NDEF TLV at start",
			block:      []byte{0x03, 0x05, 0xD1, 0x01, 0x01, 0x54, 0x00},
			wantOffset: 2,
			wantLength: 5,
		},
		{
			name:       "NULL padding before NDEF",
			block:      []byte{0x00, 0x00, 0x03, 0x02, 0xD0, 0x00},
			wantOffset: 4,
			wantLength: 2,
		},
		{
			name:       "foreign TLV skipped by declared length",
			block:      []byte{0x01, 0x03, 0xAA, 0xBB, 0xCC, 0x03, 0x01, 0xD0},
			wantOffset: 7,
			wantLength: 1,
		},
		{
			name:    "terminator before NDEF",
			block:   []byte{0x00, 0xFE, 0x03, 0x02},
			wantErr: true,
		},
		{
			name:    "block exhausted",
			block:   []byte{0x00, 0x00, 0x00, 0x00},
			wantErr: true,
		},
		{
			name:    "foreign TLV truncated at block edge",
			block:   []byte{0x00, 0x01},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			loc, err := findNDEFTLV(tt.block)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrTLVNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOffset, loc.valueOffset)
			assert.Equal(t, tt.wantLength, loc.length)
		})
	}
}

func TestParseNDEFLengthLongForm(t *testing.T) {
	t.Parallel()

	block := []byte{0x03, 0xFF, 0x01, 0x2C}
	loc, err := parseNDEFLength(block, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, loc.valueOffset)
	assert.Equal(t, 300, loc.length)

	_, err = parseNDEFLength([]byte{0x03, 0xFF, 0x01}, 0)
	require.ErrorIs(t, err, ErrTLVNotFound)
}

func TestNDEFTLVHeader(t *testing.T) {
	t.Parallel()

	header, err := ndefTLVHeader(0x10)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x03, 0x10}, header)

	header, err = ndefTLVHeader(300)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x03, 0xFF, 0x01, 0x2C}, header)

	_, err = ndefTLVHeader(0x10000)
	require.ErrorIs(t, err, ErrDataTooLarge)
}

// serveVirtualTag routes InDataExchange traffic to a virtual tag.
func serveVirtualTag(transport *MockTransport, vt *pn532testing.VirtualTag) {
	transport.SetResponseFunc(func(cmd byte, args []byte) ([]byte, bool) {
		if cmd != cmdInDataExchange || len(args) < 1 {
			return nil, false
		}
		return vt.HandleExchange(args[1:]), true
	})
}

func TestReadNDEFSingleBlock(t *testing.T) {
	t.Parallel()

	device, transport := newTestDevice(t)
	vt := pn532testing.NewVirtualTag(nil, 32)
	vt.LoadUserMemory([]byte{0x03, 0x03, 0xAA, 0xBB, 0xCC, 0xFE})
	serveVirtualTag(transport, vt)

	data, err := device.ReadNDEF(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAA, 0xBB, 0xCC}, data)
}

func TestReadNDEFSpansBlocks(t *testing.T) {
	t.Parallel()

	device, transport := newTestDevice(t)
	vt := pn532testing.NewVirtualTag(nil, 64)

	// 40-byte value: 2-byte header + 40 bytes + terminator spans three
	// 16-byte reads
	value := bytes.Repeat([]byte{0x5A}, 40)
	user := append([]byte{0x03, 0x28}, value...)
	user = append(user, 0xFE)
	vt.LoadUserMemory(user)
	serveVirtualTag(transport, vt)

	data, err := device.ReadNDEF(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, value, data)

	// One initial read plus two continuation reads, issued sequentially
	assert.Len(t, transport.WrittenFrames(), 3)
}

func TestReadNDEFNoTLV(t *testing.T) {
	t.Parallel()

	device, transport := newTestDevice(t)
	vt := pn532testing.NewVirtualTag(nil, 32)
	vt.LoadUserMemory([]byte{0xFE})
	serveVirtualTag(transport, vt)

	_, err := device.ReadNDEF(context.Background(), 1)
	require.ErrorIs(t, err, ErrTLVNotFound)
}

func TestReadNDEFRejectsValueBeyondLastBlock(t *testing.T) {
	t.Parallel()

	device, transport := newTestDevice(t)
	vt := pn532testing.NewVirtualTag(nil, 256)
	// Long-form TLV claiming 2000 bytes: the continuation reads would
	// have to walk past block 255, where addresses no longer fit a byte
	vt.LoadUserMemory([]byte{0x03, 0xFF, 0x07, 0xD0})
	serveVirtualTag(transport, vt)

	_, err := device.ReadNDEF(context.Background(), 1)
	require.ErrorIs(t, err, ErrDataTooLarge)
}

func TestWriteNDEFFragmentsIntoPages(t *testing.T) {
	t.Parallel()

	device, transport := newTestDevice(t)
	transport.SetResponse(cmdInDataExchange, pn532testing.BuildDataExchangeResponse(nil))

	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0A}
	require.NoError(t, device.WriteNDEF(context.Background(), 1, data))

	// 2-byte header + 10 bytes + terminator = 13 bytes = 4 padded pages
	frames := transport.WrittenFrames()
	require.Len(t, frames, 4)

	var wire []byte
	for i, raw := range frames {
		f, err := frame.Decode(raw)
		require.NoError(t, err)
		require.Len(t, f.Payload, 4+mifarePageSize)
		assert.Equal(t, byte(mifareCmdWritePage), f.Payload[2])
		assert.Equal(t, byte(ndefStartBlock+i), f.Payload[3], "pages must land on ascending blocks")
		wire = append(wire, f.Payload[4:]...)
	}

	want := append([]byte{0x03, 0x0A}, data...)
	want = append(want, 0xFE, 0x00, 0x00, 0x00)
	assert.Equal(t, want, wire)
}

func TestNDEFTextRoundTrip(t *testing.T) {
	t.Parallel()

	device, transport := newTestDevice(t)
	vt := pn532testing.NewVirtualTag(nil, 64)
	serveVirtualTag(transport, vt)

	require.NoError(t, device.WriteNDEFText(context.Background(), 1, "hello nfc"))

	msg, err := device.ReadNDEFMessage(context.Background(), 1)
	require.NoError(t, err)
	assert.Contains(t, msg.String(), "hello nfc")

	text, err := device.ReadNDEFText(context.Background(), 1)
	require.NoError(t, err)
	assert.Contains(t, text, "hello nfc")
}
