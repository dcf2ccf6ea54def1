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

// Package testing provides canned PN532 response payloads shared by
// the driver tests. Payloads start at the response code byte; the mock
// transport wraps them in chip-to-host data frames.
package testing

// Command bytes for reference
const (
	CmdGetFirmwareVersion  = 0x02
	CmdGetGeneralStatus    = 0x04
	CmdSAMConfiguration    = 0x14
	CmdInDataExchange      = 0x40
	CmdInListPassiveTarget = 0x4A
	CmdInRelease           = 0x52
)

// BuildFirmwareVersionResponse creates a GetFirmwareVersion response:
// PN532 (IC 0x32) firmware 1.6, ISO14443A/B support bits set.
func BuildFirmwareVersionResponse() []byte {
	return []byte{0x03, 0x32, 0x01, 0x06, 0x07}
}

// BuildSAMConfigurationResponse creates a SAMConfiguration response
// (response code only, empty body)
func BuildSAMConfigurationResponse() []byte {
	return []byte{0x15}
}

// BuildNoTagResponse creates an empty InListPassiveTarget response
func BuildNoTagResponse() []byte {
	return []byte{0x4B, 0x00}
}

// BuildTagDetectionResponse creates an InListPassiveTarget response
// listing one Type A target with the given identity
func BuildTagDetectionResponse(atqa [2]byte, sak byte, uid []byte) []byte {
	response := []byte{0x4B, 0x01, 0x01, atqa[0], atqa[1], sak, byte(len(uid))}
	return append(response, uid...)
}

// BuildNTAGDetectionResponse creates a detection response for an NTAG
// tag (ATQA 00 44, SAK 00)
func BuildNTAGDetectionResponse(uid []byte) []byte {
	if uid == nil {
		uid = TestNTAG213UID
	}
	return BuildTagDetectionResponse([2]byte{0x00, 0x44}, 0x00, uid)
}

// BuildMIFAREDetectionResponse creates a detection response for a
// MIFARE Classic 1K tag (ATQA 00 04, SAK 08)
func BuildMIFAREDetectionResponse(uid []byte) []byte {
	if uid == nil {
		uid = TestMIFARE1KUID
	}
	return BuildTagDetectionResponse([2]byte{0x00, 0x04}, 0x08, uid)
}

// BuildDataExchangeResponse creates a successful InDataExchange
// response carrying data plus the trailing reserved byte
func BuildDataExchangeResponse(data []byte) []byte {
	response := make([]byte, 0, 3+len(data))
	response = append(response, 0x41, 0x00)
	response = append(response, data...)
	return append(response, 0x00)
}

// BuildDataExchangeStatusResponse creates an InDataExchange response
// with an explicit exchange status byte
func BuildDataExchangeStatusResponse(status byte, data []byte) []byte {
	response := make([]byte, 0, 3+len(data))
	response = append(response, 0x41, status)
	response = append(response, data...)
	return append(response, 0x00)
}

// BuildErrorResponse creates an error response for any command
func BuildErrorResponse(cmd, errorCode byte) []byte {
	return []byte{cmd + 1, errorCode}
}

// Common UIDs for testing
var (
	// TestNTAG213UID is a sample NTAG213 UID
	TestNTAG213UID = []byte{0x04, 0xAB, 0xCD, 0xEF, 0x12, 0x34, 0x56}

	// TestMIFARE1KUID is a sample MIFARE Classic 1K UID
	TestMIFARE1KUID = []byte{0x12, 0x34, 0x56, 0x78}
)
