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

//go:build linux

package detection

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	pn532 "github.com/wnrosenberg/go-pn532"
)

// getSerialPorts returns USB serial devices, reading identity from
// sysfs when available.
func getSerialPorts() ([]serialPort, error) {
	var ports []serialPort
	for _, pattern := range []string{"/dev/ttyUSB*", "/dev/ttyACM*", "/dev/ttyAMA*"} {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			continue
		}
		for _, path := range matches {
			ports = append(ports, serialPort{
				Path:   path,
				Name:   filepath.Base(path),
				VIDPID: sysfsVIDPID(path),
			})
		}
	}
	return ports, nil
}

// sysfsVIDPID walks from the tty device to its USB parent and reads
// idVendor/idProduct. Empty string when the device is not USB-backed.
func sysfsVIDPID(devPath string) string {
	base := filepath.Base(devPath)
	node, err := filepath.EvalSymlinks(filepath.Join("/sys/class/tty", base, "device"))
	if err != nil {
		return ""
	}

	// USB attribute files live a few levels up from the tty interface
	for i := 0; i < 4; i++ {
		vendor, vErr := os.ReadFile(filepath.Join(node, "idVendor"))
		product, pErr := os.ReadFile(filepath.Join(node, "idProduct"))
		if vErr == nil && pErr == nil {
			return strings.ToUpper(fmt.Sprintf("%s:%s",
				strings.TrimSpace(string(vendor)), strings.TrimSpace(string(product))))
		}
		node = filepath.Dir(node)
	}
	return ""
}

// getI2CBuses lists the system I2C bus device nodes.
func getI2CBuses() []DeviceInfo {
	matches, err := filepath.Glob("/dev/i2c-*")
	if err != nil {
		return nil
	}
	buses := make([]DeviceInfo, 0, len(matches))
	for _, path := range matches {
		buses = append(buses, DeviceInfo{
			Path:      path,
			Name:      filepath.Base(path),
			Transport: pn532.TransportI2C,
		})
	}
	return buses
}
