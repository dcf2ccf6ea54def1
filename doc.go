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

/*
Package pn532 is a host-side driver for PN532 NFC controllers.

The PN532 is a 13.56 MHz contactless transceiver that speaks a framed
command protocol over UART or I2C. This package owns the protocol
layer: it encodes command frames, matches chip responses (ACK, data,
error) back to the requests that caused them, and exposes typed
operations for tag detection, MIFARE block access and NDEF messages.
Byte movement lives in the transport packages; a transport only writes
frames and pushes received candidate frames over a channel.

Basic Usage:

	import (
	    "github.com/wnrosenberg/go-pn532"
	    "github.com/wnrosenberg/go-pn532/transport/uart"
	)

	transport, err := uart.New("/dev/ttyUSB0")
	if err != nil {
	    log.Fatal(err)
	}

	device, err := pn532.New(transport)
	if err != nil {
	    log.Fatal(err)
	}
	defer device.Close()

	if err := device.Init(); err != nil {
	    log.Fatal(err)
	}

	ctx := context.Background()
	tag, err := device.InListPassiveTarget(ctx)
	if err != nil {
	    log.Fatal(err)
	}
	fmt.Printf("Tag detected: %s\n", tag.UID)

	msg, err := device.ReadNDEFMessage(ctx, tag.TargetNumber)
	if err != nil {
	    log.Fatal(err)
	}
	fmt.Println(msg)

Concurrency:

A Device runs one command at a time. A second SendCommand while one is
in flight fails immediately with ErrCommandPending rather than queueing.
Commands have no built-in deadline; cancel the context to abandon one.

Error Handling:

Failures are sentinel errors, optionally wrapped in a TransportError
carrying the operation, port and retryability:

	if pn532.IsRetryable(err) {
	    // try again
	}

The continuous detection loop lives in the polling package; the
detection package enumerates likely device paths.
*/
package pn532
