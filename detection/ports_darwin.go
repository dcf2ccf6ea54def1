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

//go:build darwin

package detection

import "path/filepath"

// getSerialPorts returns callout serial devices. The cu.* nodes are
// preferred over tty.* because they do not block waiting for DCD.
func getSerialPorts() ([]serialPort, error) {
	var ports []serialPort
	for _, pattern := range []string{"/dev/cu.usbserial*", "/dev/cu.usbmodem*", "/dev/cu.SLAB*", "/dev/cu.wchusbserial*"} {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			continue
		}
		for _, path := range matches {
			ports = append(ports, serialPort{
				Path: path,
				Name: filepath.Base(path),
			})
		}
	}
	return ports, nil
}

// getI2CBuses returns nothing; macOS exposes no userland I2C bus nodes.
func getI2CBuses() []DeviceInfo {
	return nil
}
