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
	"fmt"
)

// Frame codec errors
var (
	// ErrInvalidFrame indicates a buffer that matches no known frame variant
	ErrInvalidFrame = errors.New("invalid frame")
	// ErrFrameTooShort indicates a buffer shorter than the declared length
	ErrFrameTooShort = errors.New("frame shorter than declared length")
	// ErrInvalidDirection indicates a TFI byte that is neither 0xD4 nor 0xD5
	ErrInvalidDirection = errors.New("invalid frame direction byte")
)

// Type identifies one of the closed set of frame variants.
type Type int

const (
	// TypeInvalid is a buffer matching no known variant
	TypeInvalid Type = iota
	// TypeData is an information frame carrying a command or response payload
	TypeData
	// TypeAck is the fixed acknowledge pattern
	TypeAck
	// TypeNack is the fixed negative-acknowledge pattern
	TypeNack
	// TypeError is the fixed application-level error pattern
	TypeError
)

// String returns the variant name for diagnostics.
func (t Type) String() string {
	switch t {
	case TypeData:
		return "data"
	case TypeAck:
		return "ack"
	case TypeNack:
		return "nack"
	case TypeError:
		return "error"
	case TypeInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("type(%d)", int(t))
	}
}

// Frame is one complete protocol message. Data frames carry a direction
// and payload; ACK/NACK/error frames are fixed patterns with no payload.
//
// Bare marks a Data frame decoded from a marker-less buffer (a raw APDU
// exchange delivered by a transport that strips framing). Bare frames
// always have direction Pn532ToHost. This is an explicit variant flag,
// not something call sites should re-infer from the payload.
type Frame struct {
	Payload   []byte
	Type      Type
	Direction byte
	Bare      bool
}

// NewCommandFrame builds a host-to-chip Data frame around payload.
// The payload's first byte is the command code.
func NewCommandFrame(payload []byte) *Frame {
	return &Frame{
		Type:      TypeData,
		Direction: HostToPn532,
		Payload:   payload,
	}
}

// Classify determines which frame variant a byte buffer represents.
// Checks run in fixed order: Data-with-wrapper, ACK, NACK, error. A
// buffer too short for a variant never matches it; classification is
// mutually exclusive because a Data frame requires a valid direction
// byte where the fixed patterns carry 0x00, 0xFF or 0x7F.
func Classify(buf []byte) Type {
	if isWrappedDataFrame(buf) {
		return TypeData
	}
	if len(buf) >= len(AckFrame) && bytes.Equal(buf[:len(AckFrame)], AckFrame) {
		return TypeAck
	}
	if len(buf) >= len(NackFrame) && bytes.Equal(buf[:len(NackFrame)], NackFrame) {
		return TypeNack
	}
	if len(buf) >= len(ErrorFrame) && bytes.Equal(buf[:len(ErrorFrame)], ErrorFrame) {
		return TypeError
	}
	return TypeInvalid
}

// isWrappedDataFrame reports whether buf carries the standard Data frame
// envelope: preamble, start code, consistent length checksum and a valid
// direction byte.
func isWrappedDataFrame(buf []byte) bool {
	if len(buf) < frameOverhead {
		return false
	}
	if buf[0] != Preamble || buf[1] != StartCode1 || buf[2] != StartCode2 {
		return false
	}
	if buf[3]+buf[4] != 0 {
		return false
	}
	return buf[5] == HostToPn532 || buf[5] == Pn532ToHost
}

// Encode serializes a frame to its wire form. For Data frames the
// length byte and both checksums are computed fresh from the payload
// and direction; stale fields are never trusted. Encoding a bare Data
// frame returns the payload bytes unwrapped.
func Encode(f *Frame) []byte {
	switch f.Type {
	case TypeAck:
		return append([]byte(nil), AckFrame...)
	case TypeNack:
		return append([]byte(nil), NackFrame...)
	case TypeError:
		return append([]byte(nil), ErrorFrame...)
	case TypeData, TypeInvalid:
	}

	if f.Bare {
		return append([]byte(nil), f.Payload...)
	}

	length := byte(len(f.Payload) + 1) // payload + direction byte
	out := make([]byte, 0, len(f.Payload)+frameOverhead)
	out = append(out, Preamble, StartCode1, StartCode2)
	out = append(out, length, CalculateLengthChecksum(length))
	out = append(out, f.Direction)
	out = append(out, f.Payload...)
	out = append(out, CalculateDataChecksum(f.Direction, f.Payload))
	out = append(out, Postamble)
	return out
}

// Decode parses a byte buffer into a typed frame. Wrapped buffers are
// classified against the known signatures; a marker-less buffer is
// accepted as a bare Data frame with direction fixed to chip-to-host,
// the legacy path for transports that strip framing. Checksum bytes on
// inbound frames are not verified here, but the length byte is checked
// against the actual buffer before slicing.
func Decode(buf []byte) (*Frame, error) {
	switch t := Classify(buf); t {
	case TypeAck, TypeNack:
		return &Frame{Type: t}, nil
	case TypeError:
		return &Frame{
			Type:      TypeError,
			Direction: Pn532ToHost,
			Payload:   []byte{ErrorPayload},
		}, nil
	case TypeData:
		return decodeData(buf)
	case TypeInvalid:
	}

	if isBareCandidate(buf) {
		return &Frame{
			Type:      TypeData,
			Direction: Pn532ToHost,
			Payload:   append([]byte(nil), buf...),
			Bare:      true,
		}, nil
	}
	return nil, fmt.Errorf("%w: % X", ErrInvalidFrame, buf)
}

// isBareCandidate reports whether buf can take the bare-APDU decode
// path: non-empty and carrying none of the standard frame markers.
func isBareCandidate(buf []byte) bool {
	if len(buf) == 0 {
		return false
	}
	return len(buf) < 3 || !(buf[0] == Preamble && buf[1] == StartCode1 && buf[2] == StartCode2)
}

// decodeData extracts direction and payload from a wrapped Data frame.
func decodeData(buf []byte) (*Frame, error) {
	length := int(buf[3]) // direction byte + payload
	if length == 0 {
		// LEN counts the direction byte, so 0x00 is never valid here;
		// a zero length checksum makes it classify as Data anyway.
		return nil, fmt.Errorf("%w: zero length in data envelope", ErrInvalidFrame)
	}
	if len(buf) < length+frameOverhead {
		return nil, fmt.Errorf("%w: have %d bytes, need %d", ErrFrameTooShort, len(buf), length+frameOverhead)
	}
	dir := buf[5]
	if dir != HostToPn532 && dir != Pn532ToHost {
		return nil, fmt.Errorf("%w: 0x%02X", ErrInvalidDirection, dir)
	}
	payload := make([]byte, length-1)
	copy(payload, buf[6:6+length-1])
	return &Frame{
		Type:      TypeData,
		Direction: dir,
		Payload:   payload,
	}, nil
}
