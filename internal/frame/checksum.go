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

// CalculateChecksum returns the byte sum of data, truncated to one byte.
func CalculateChecksum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum += b
	}
	return sum
}

// ValidateChecksum reports whether the data (including its trailing
// checksum byte) fails verification. A valid span sums to zero, so a
// true result means the frame should be NACKed.
func ValidateChecksum(data []byte) bool {
	return CalculateChecksum(data) != 0
}

// CalculateLengthChecksum returns the LCS for a frame length byte.
// The invariant (length + LCS) & 0xFF == 0 always holds.
func CalculateLengthChecksum(length byte) byte {
	return ^length + 1
}

// CalculateDataChecksum returns the DCS over the frame identifier (TFI)
// and the data bytes. The two's-complement result is normalized back
// into byte range when the complement of a zero sum overflows 255,
// matching the chip's reference arithmetic.
func CalculateDataChecksum(tfi byte, data []byte) byte {
	sum := tfi + CalculateChecksum(data)
	dcs := (int(^sum) & 0xFF) + 1
	if dcs > 255 {
		dcs -= 255
	}
	return byte(dcs)
}
