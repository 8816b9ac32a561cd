// Copyright (C) 2026 The Bolo Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

import (
	"bufio"
	"net"
)

// Conn wraps a net.Conn with the buffering Decode needs, shared by the
// ingestion listener, the management request/reply loop and the broadcast
// fan-out set.
type Conn struct {
	net.Conn
	r *bufio.Reader
}

// NewConn wraps an established connection for PDU framing.
func NewConn(c net.Conn) *Conn {
	return &Conn{Conn: c, r: bufio.NewReader(c)}
}

// ReadPDU reads the next PDU from the connection.
func (c *Conn) ReadPDU() (PDU, error) {
	return Decode(c.r)
}

// WritePDU writes a PDU to the connection.
func (c *Conn) WritePDU(p PDU) error {
	return Encode(c.Conn, p)
}

// Listen wraps net.Listen for the three PDU endpoints (ingestion,
// management, broadcast), all of which speak the identical framing and
// differ only in who talks first and how many round trips occur.
func Listen(network, addr string) (net.Listener, error) {
	return net.Listen(network, addr)
}
