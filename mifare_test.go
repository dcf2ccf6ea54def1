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

func TestReadBlock(t *testing.T) {
	t.Parallel()

	device, transport := newTestDevice(t)
	blockData := bytes.Repeat([]byte{0xAB}, 16)
	transport.SetResponse(cmdInDataExchange, pn532testing.BuildDataExchangeResponse(blockData))

	data, err := device.ReadBlock(context.Background(), 1, 4)
	require.NoError(t, err)
	assert.Equal(t, blockData, data)

	// The wire payload must be the MIFARE read command for block 4
	frames := transport.WrittenFrames()
	require.Len(t, frames, 1)
	f, err := frame.Decode(frames[0])
	require.NoError(t, err)
	assert.Equal(t, []byte{cmdInDataExchange, 0x01, mifareCmdRead, 0x04}, f.Payload)
}

func TestReadBlockFormatMismatchKeepsData(t *testing.T) {
	t.Parallel()

	device, transport := newTestDevice(t)
	blockData := bytes.Repeat([]byte{0xCD}, 16)
	transport.SetResponse(cmdInDataExchange,
		pn532testing.BuildDataExchangeStatusResponse(0x13, blockData))

	data, err := device.ReadBlock(context.Background(), 1, 4)
	require.ErrorIs(t, err, ErrFormatMismatch)
	assert.Equal(t, blockData, data, "data must be returned alongside the mismatch warning")
}

func TestReadBlockFailureStatus(t *testing.T) {
	t.Parallel()

	device, transport := newTestDevice(t)
	transport.SetResponse(cmdInDataExchange,
		pn532testing.BuildDataExchangeStatusResponse(0x14, nil))

	_, err := device.ReadBlock(context.Background(), 1, 4)
	require.ErrorIs(t, err, ErrCommandFailed)
}

func TestWriteBlock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		wantCmd byte
	}{
		{
			name:    "classic 16 byte block",
			data:    bytes.Repeat([]byte{0x11}, 16),
			wantCmd: mifareCmdWrite,
		},
		{
			name:    "ultralight 4 byte page",
			data:    []byte{0x01, 0x02, 0x03, 0x04},
			wantCmd: mifareCmdWritePage,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			device, transport := newTestDevice(t)
			transport.SetResponse(cmdInDataExchange, pn532testing.BuildDataExchangeResponse(nil))

			_, err := device.WriteBlock(context.Background(), 1, 5, tt.data)
			require.NoError(t, err)

			frames := transport.WrittenFrames()
			require.Len(t, frames, 1)
			f, err := frame.Decode(frames[0])
			require.NoError(t, err)

			want := append([]byte{cmdInDataExchange, 0x01, tt.wantCmd, 0x05}, tt.data...)
			assert.Equal(t, want, f.Payload)
		})
	}
}

func TestWriteBlockRejectsOddSizes(t *testing.T) {
	t.Parallel()

	device, _ := newTestDevice(t)

	_, err := device.WriteBlock(context.Background(), 1, 5, []byte{0x01, 0x02})
	require.ErrorIs(t, err, ErrInvalidParameter)
}

func TestStripExchangeStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     []byte
		want     []byte
		wantErr  error
		wantData bool
	}{
		{
			name:     "success",
			body:     []byte{0x00, 0xDE, 0xAD, 0x00},
			want:     []byte{0xDE, 0xAD},
			wantData: true,
		},
		{
			name:     "format mismatch returns data and warning",
			body:     []byte{0x13, 0xDE, 0xAD, 0x00},
			want:     []byte{0xDE, 0xAD},
			wantErr:  ErrFormatMismatch,
			wantData: true,
		},
		{
			name:    "other status fails",
			body:    []byte{0x01, 0xDE, 0xAD, 0x00},
			wantErr: ErrCommandFailed,
		},
		{
			name:    "too short",
			body:    []byte{0x00},
			wantErr: ErrUnexpectedResponse,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			data, err := stripExchangeStatus(tt.body, 4)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			if tt.wantData {
				assert.Equal(t, tt.want, data)
			}
		})
	}
}

func TestAuthenticateBlock(t *testing.T) {
	t.Parallel()

	device, transport := newTestDevice(t)
	transport.SetResponse(cmdInDataExchange,
		pn532testing.BuildDataExchangeStatusResponse(0x00, nil))

	key := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	_, err := device.AuthenticateBlock(context.Background(), "12:34:56:78", 7, MIFAREKeyA, key)
	require.NoError(t, err)

	frames := transport.WrittenFrames()
	require.Len(t, frames, 1)
	f, err := frame.Decode(frames[0])
	require.NoError(t, err)

	want := []byte{cmdInDataExchange, 0x01, MIFAREKeyA, 0x07}
	want = append(want, key...)
	want = append(want, 0x12, 0x34, 0x56, 0x78)
	assert.Equal(t, want, f.Payload)
}

func TestAuthenticateBlockValidation(t *testing.T) {
	t.Parallel()

	device, _ := newTestDevice(t)
	key := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}

	_, err := device.AuthenticateBlock(context.Background(), "12:34:56:78", 7, 0x62, key)
	require.ErrorIs(t, err, ErrInvalidParameter)

	_, err = device.AuthenticateBlock(context.Background(), "12:34:56:78", 7, MIFAREKeyB, key[:4])
	require.ErrorIs(t, err, ErrInvalidParameter)

	_, err = device.AuthenticateBlock(context.Background(), "not-a-uid", 7, MIFAREKeyA, key)
	require.ErrorIs(t, err, ErrInvalidUID)
}
