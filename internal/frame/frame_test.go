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

package frame

import (
	"bytes"
	"errors"
	"testing"
)

func TestClassify(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		buf  []byte
		want Type
	}{
		{
			name: "ack pattern",
			buf:  []byte{0x00, 0x00, 0xFF, 0x00, 0xFF, 0x00},
			want: TypeAck,
		},
		{
			name: "nack pattern",
			buf:  []byte{0x00, 0x00, 0xFF, 0xFF, 0x00, 0x00},
			want: TypeNack,
		},
		{
			name: "application error pattern",
			buf:  []byte{0x00, 0x00, 0xFF, 0x01, 0xFF, 0x7F, 0x81, 0x00},
			want: TypeError,
		},
		{
			name: "firmware version response frame",
			buf:  []byte{0x00, 0x00, 0xFF, 0x06, 0xFA, 0xD5, 0x03, 0x32, 0x01, 0x06, 0x07, 0xE8, 0x00},
			want: TypeData,
		},
		{
			name: "five bytes is never a frame",
			buf:  []byte{0x00, 0x00, 0xFF, 0x00, 0xFF},
			want: TypeInvalid,
		},
		{
			name: "empty buffer",
			buf:  nil,
			want: TypeInvalid,
		},
		{
			name: "bad length checksum",
			buf:  []byte{0x00, 0x00, 0xFF, 0x02, 0xFD, 0xD4, 0x02, 0x2A, 0x00},
			want: TypeInvalid,
		},
		{
			name: "bad direction byte",
			buf:  []byte{0x00, 0x00, 0xFF, 0x02, 0xFE, 0xD6, 0x02, 0x28, 0x00},
			want: TypeInvalid,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Classify(tt.buf); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEncodeCommandFrame(t *testing.T) {
	t.Parallel()
	// SAMConfiguration-style single byte command with empty body. Expected
	// bytes derived from the checksum formulas, not assumed.
	payload := []byte{0x14}
	lcs := CalculateLengthChecksum(0x02)
	dcs := CalculateDataChecksum(HostToPn532, payload)
	want := []byte{0x00, 0x00, 0xFF, 0x02, lcs, 0xD4, 0x14, dcs, 0x00}

	got := Encode(NewCommandFrame(payload))
	if !bytes.Equal(got, want) {
		t.Errorf("Encode() = % X, want % X", got, want)
	}

	// Sanity-check the formula outputs themselves
	if lcs != 0xFE {
		t.Errorf("length checksum = 0x%02X, want 0xFE", lcs)
	}
	if (0x02+int(lcs))&0xFF != 0 {
		t.Errorf("length + LCS = 0x%02X, want 0", (0x02+int(lcs))&0xFF)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		payload   []byte
		direction byte
	}{
		{"single byte command", []byte{0x02}, HostToPn532},
		{"command with args", []byte{0x4A, 0x01, 0x00}, HostToPn532},
		{"response payload", []byte{0x4B, 0x01, 0x01, 0x00, 0x04, 0x08, 0x04, 0x12, 0x34, 0x56, 0x78}, Pn532ToHost},
		{"empty body", []byte{0x14}, HostToPn532},
		{"payload summing to zero", []byte{0x2B}, Pn532ToHost},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			encoded := Encode(&Frame{Type: TypeData, Direction: tt.direction, Payload: tt.payload})

			decoded, err := Decode(encoded)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if decoded.Type != TypeData {
				t.Fatalf("Decode() type = %v, want data", decoded.Type)
			}
			if decoded.Direction != tt.direction {
				t.Errorf("Decode() direction = 0x%02X, want 0x%02X", decoded.Direction, tt.direction)
			}
			if !bytes.Equal(decoded.Payload, tt.payload) {
				t.Errorf("Decode() payload = % X, want % X", decoded.Payload, tt.payload)
			}
			if decoded.Bare {
				t.Error("Decode() marked wrapped frame as bare")
			}

			// Re-encoding a decoded frame must reproduce the wire bytes
			if reencoded := Encode(decoded); !bytes.Equal(reencoded, encoded) {
				t.Errorf("re-encode = % X, want % X", reencoded, encoded)
			}
		})
	}
}

func TestDecodeFixedPatterns(t *testing.T) {
	t.Parallel()

	f, err := Decode(AckFrame)
	if err != nil {
		t.Fatalf("Decode(ack) error = %v", err)
	}
	if f.Type != TypeAck || len(f.Payload) != 0 {
		t.Errorf("Decode(ack) = %+v, want empty ack", f)
	}

	f, err = Decode(NackFrame)
	if err != nil {
		t.Fatalf("Decode(nack) error = %v", err)
	}
	if f.Type != TypeNack {
		t.Errorf("Decode(nack) type = %v", f.Type)
	}

	f, err = Decode(ErrorFrame)
	if err != nil {
		t.Fatalf("Decode(error) error = %v", err)
	}
	if f.Type != TypeError {
		t.Fatalf("Decode(error) type = %v", f.Type)
	}
	if !bytes.Equal(f.Payload, []byte{ErrorPayload}) {
		t.Errorf("Decode(error) payload = % X, want 7F", f.Payload)
	}
}

func TestDecodeBareAPDU(t *testing.T) {
	t.Parallel()
	buf := []byte{0x90, 0x00}

	f, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if f.Type != TypeData || !f.Bare {
		t.Fatalf("Decode() = %+v, want bare data frame", f)
	}
	if f.Direction != Pn532ToHost {
		t.Errorf("Decode() direction = 0x%02X, want Pn532ToHost", f.Direction)
	}
	if !bytes.Equal(f.Payload, buf) {
		t.Errorf("Decode() payload = % X, want % X", f.Payload, buf)
	}
}

func TestDecodeInvalid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		want error
		name string
		buf  []byte
	}{
		{
			name: "empty buffer",
			buf:  nil,
			want: ErrInvalidFrame,
		},
		{
			name: "wrapped buffer with garbage after markers",
			buf:  []byte{0x00, 0x00, 0xFF, 0x13, 0x37},
			want: ErrInvalidFrame,
		},
		{
			name: "declared length exceeds buffer",
			buf:  []byte{0x00, 0x00, 0xFF, 0x10, 0xF0, 0xD5, 0x03, 0x00, 0x00},
			want: ErrFrameTooShort,
		},
		{
			// LEN=0x00/LCS=0x00 passes the length-checksum test but no
			// data frame can have a zero LEN
			name: "zero length with zero checksum",
			buf:  []byte{0x00, 0x00, 0xFF, 0x00, 0x00, 0xD4, 0x00},
			want: ErrInvalidFrame,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Decode(tt.buf)
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
		})
	}
}
