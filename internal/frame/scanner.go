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

import "bytes"

// startCode marks the beginning of every frame after the preamble.
var startCode = []byte{StartCode1, StartCode2}

// Scanner accumulates raw transport bytes and cuts them at frame
// boundaries, emitting complete candidate frame buffers for the codec.
// It tolerates leading garbage between frames by resynchronizing on the
// next start code. Scanner is not safe for concurrent use; transports
// drive it from their single read loop.
type Scanner struct {
	buf []byte
}

// Push appends raw bytes to the accumulation buffer and returns all
// complete candidate frames now available, in arrival order. Partial
// frames stay buffered until the remaining bytes arrive.
func (s *Scanner) Push(p []byte) [][]byte {
	s.buf = append(s.buf, p...)

	var frames [][]byte
	for {
		f := s.next()
		if f == nil {
			return frames
		}
		frames = append(frames, f)
	}
}

// Reset discards any partially accumulated bytes.
func (s *Scanner) Reset() {
	s.buf = s.buf[:0]
}

// next cuts one complete frame off the front of the buffer, or returns
// nil if no complete frame is available yet.
func (s *Scanner) next() []byte {
	start := bytes.Index(s.buf, startCode)
	if start == -1 {
		// Keep at most one byte: a trailing 0x00 may be the first
		// half of a start code split across reads.
		if len(s.buf) > 1 {
			s.buf = s.buf[len(s.buf)-1:]
		}
		return nil
	}

	// Frames begin one preamble byte before the start code. Keep the
	// preamble when one was received; otherwise drop any garbage and
	// synthesize the missing 0x00 so downstream classification sees
	// the canonical envelope.
	if start > 0 && s.buf[start-1] == Preamble {
		s.buf = s.buf[start-1:]
	} else {
		s.buf = append([]byte{Preamble}, s.buf[start:]...)
	}

	total, ok := s.frameLength()
	if !ok {
		return nil
	}
	if total < 0 {
		// Corrupt length checksum: skip the start code and resync.
		s.buf = s.buf[2:]
		return s.next()
	}
	if len(s.buf) < total {
		return nil
	}

	f := make([]byte, total)
	copy(f, s.buf[:total])
	s.buf = append(s.buf[:0], s.buf[total:]...)
	return f
}

// frameLength determines the total wire length of the frame at the
// front of the buffer. Returns ok=false when more bytes are needed and
// a negative length when the length checksum proves the buffer corrupt.
func (s *Scanner) frameLength() (int, bool) {
	if len(s.buf) < 5 {
		return 0, false
	}
	length, lcs := s.buf[3], s.buf[4]

	// Fixed 6-byte patterns: ACK (len 0x00) and NACK (len 0xFF).
	if length == 0x00 && lcs == 0xFF {
		return len(AckFrame), true
	}
	if length == 0xFF && lcs == 0x00 {
		return len(NackFrame), true
	}
	if length+lcs != 0 {
		return -1, true
	}
	total := int(length) + frameOverhead
	if total > MaxFrameDataLength+frameOverhead {
		return -1, true
	}
	return total, true
}
