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

// Package detection enumerates ports that plausibly carry a PN532
// reader. It only lists candidates; opening and probing them is the
// caller's job.
package detection

import (
	"strings"

	pn532 "github.com/wnrosenberg/go-pn532"
)

// DeviceInfo describes one candidate device path.
type DeviceInfo struct {
	Path      string
	Name      string
	Transport pn532.TransportType
}

// serialPort is the raw platform enumeration result.
type serialPort struct {
	Path         string
	Name         string
	VIDPID       string
	Product      string
	Manufacturer string
}

// knownAdapterIDs lists USB VID:PID pairs of serial adapters commonly
// wired to PN532 boards (CH340, PL2303, FTDI, CP210x).
var knownAdapterIDs = map[string]string{
	"1A86:7523": "CH340 serial adapter",
	"1A86:55D4": "CH9102 serial adapter",
	"067B:2303": "PL2303 serial adapter",
	"0403:6001": "FTDI FT232 serial adapter",
	"10C4:EA60": "CP210x serial adapter",
}

// ignoredPathFragments mark ports that are never a PN532: Bluetooth
// bridges, debug consoles, virtual printer ports.
var ignoredPathFragments = []string{
	"bluetooth",
	"debug-console",
	"wlan",
	"irda",
}

func ignoredPath(path string) bool {
	lower := strings.ToLower(path)
	for _, fragment := range ignoredPathFragments {
		if strings.Contains(lower, fragment) {
			return true
		}
	}
	return false
}

// DetectAll returns every candidate device on the system: serial
// ports that pass the ignore filter plus, on platforms that have
// them, I2C buses. Known USB adapters sort first.
func DetectAll() ([]DeviceInfo, error) {
	ports, err := getSerialPorts()
	if err != nil {
		return nil, err
	}

	var known, unknown []DeviceInfo
	for _, port := range ports {
		if ignoredPath(port.Path) {
			continue
		}
		info := DeviceInfo{
			Path:      port.Path,
			Name:      port.Name,
			Transport: pn532.TransportUART,
		}
		if label, ok := knownAdapterIDs[strings.ToUpper(port.VIDPID)]; ok {
			if info.Name == "" || info.Name == info.Path {
				info.Name = label
			}
			known = append(known, info)
			continue
		}
		unknown = append(unknown, info)
	}

	devices := append(known, unknown...)
	devices = append(devices, getI2CBuses()...)
	return devices, nil
}
