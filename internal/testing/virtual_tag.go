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

package testing

import "fmt"

const (
	pageSize  = 4  // Bytes per memory page
	readSpan  = 16 // Bytes returned by one MIFARE read (4 pages)
	userStart = 4  // First user-memory page on Type 2 tags
)

// VirtualTag simulates page-addressed Type 2 tag memory for driver
// tests: reads return 16 bytes starting at the addressed page, writes
// replace one 4-byte page. The TLV content is whatever the test put
// there; the virtual tag itself knows nothing about NDEF.
type VirtualTag struct {
	UID     []byte
	memory  []byte
	Present bool
}

// NewVirtualTag creates a present tag with the given number of pages
func NewVirtualTag(uid []byte, pages int) *VirtualTag {
	if uid == nil {
		uid = TestNTAG213UID
	}
	return &VirtualTag{
		UID:     uid,
		memory:  make([]byte, pages*pageSize),
		Present: true,
	}
}

// LoadUserMemory copies data into memory starting at the first user
// page, the area the NDEF assembler reads and writes
func (v *VirtualTag) LoadUserMemory(data []byte) {
	copy(v.memory[userStart*pageSize:], data)
}

// UserMemory returns a copy of the user memory area
func (v *VirtualTag) UserMemory() []byte {
	out := make([]byte, len(v.memory)-userStart*pageSize)
	copy(out, v.memory[userStart*pageSize:])
	return out
}

// ReadBlock returns 16 bytes starting at the addressed page
func (v *VirtualTag) ReadBlock(page int) ([]byte, error) {
	if !v.Present {
		return nil, fmt.Errorf("tag not present")
	}
	start := page * pageSize
	if start < 0 || start >= len(v.memory) {
		return nil, fmt.Errorf("page %d out of range", page)
	}
	out := make([]byte, readSpan)
	copy(out, v.memory[start:])
	return out, nil
}

// WritePage replaces the 4 bytes of one page
func (v *VirtualTag) WritePage(page int, data []byte) error {
	if !v.Present {
		return fmt.Errorf("tag not present")
	}
	if len(data) != pageSize {
		return fmt.Errorf("page data must be %d bytes, got %d", pageSize, len(data))
	}
	start := page * pageSize
	if start < 0 || start+pageSize > len(v.memory) {
		return fmt.Errorf("page %d out of range", page)
	}
	copy(v.memory[start:], data)
	return nil
}

// HandleExchange serves InDataExchange argument bytes (target byte
// already stripped) against the virtual memory, returning a response
// payload for the mock transport. Unknown commands report status 0x14
// the way a confused tag would.
func (v *VirtualTag) HandleExchange(args []byte) []byte {
	if len(args) < 2 {
		return BuildDataExchangeStatusResponse(0x14, nil)
	}
	switch args[0] {
	case 0x30: // read
		data, err := v.ReadBlock(int(args[1]))
		if err != nil {
			return BuildDataExchangeStatusResponse(0x14, nil)
		}
		return BuildDataExchangeResponse(data)
	case 0xA2: // page write
		if err := v.WritePage(int(args[1]), args[2:]); err != nil {
			return BuildDataExchangeStatusResponse(0x14, nil)
		}
		return BuildDataExchangeResponse(nil)
	default:
		return BuildDataExchangeStatusResponse(0x14, nil)
	}
}
