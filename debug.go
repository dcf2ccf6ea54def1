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
	"log"
	"os"
	"sync/atomic"
)

// debugEnabled gates debug output for the whole package. Protocol logic
// never depends on it; it only adds trace output around the edges.
var debugEnabled atomic.Bool

var debugLogger = log.New(os.Stderr, "pn532: ", log.LstdFlags|log.Lmicroseconds)

// SetDebugEnabled turns package debug logging on or off.
// Debug output goes to stderr and is disabled by default.
func SetDebugEnabled(enabled bool) {
	debugEnabled.Store(enabled)
}

// DebugEnabled reports whether debug logging is enabled.
func DebugEnabled() bool {
	return debugEnabled.Load()
}

func debugf(format string, args ...any) {
	if debugEnabled.Load() {
		debugLogger.Printf(format, args...)
	}
}

func debugln(args ...any) {
	if debugEnabled.Load() {
		debugLogger.Println(args...)
	}
}
