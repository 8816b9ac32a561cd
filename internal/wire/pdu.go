// Copyright (C) 2026 The Bolo Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package wire implements the aggregator's multi-frame PDU protocol: the
// first frame of every message is a type tag, the remaining frames are its
// payload fields (§4.5/§6 of the specification). The original transport is
// a ZeroMQ pub/sub and req/rep bus; per the specification's design notes
// that substitution is explicitly permitted, so this package frames PDUs
// as length-prefixed multi-part messages over a plain TCP byte stream
// instead (no ZeroMQ binding exists anywhere in the example corpus).
package wire

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// maxFrames bounds a single PDU's frame count, guarding a corrupt peer
// from forcing an unbounded allocation.
const maxFrames = 4096

// maxFrameLen bounds a single frame's length for the same reason.
const maxFrameLen = 16 << 20

// PDU is one multi-frame protocol message. Type is conventionally the
// first logical frame (e.g. "STATE", "COUNTER", "ERROR"); Fields holds
// everything after it.
type PDU struct {
	Type   string
	Fields []string
}

// Field returns the i'th field, or "" if the PDU has fewer fields.
func (p PDU) Field(i int) string {
	if i < 0 || i >= len(p.Fields) {
		return ""
	}
	return p.Fields[i]
}

// NewPDU is a small constructor convenience.
func NewPDU(typ string, fields ...string) PDU {
	return PDU{Type: typ, Fields: fields}
}

// ErrorPDU builds the standard ERROR reply frame pair used across the
// management endpoint whenever a request cannot be satisfied.
func ErrorPDU(message string) PDU {
	return PDU{Type: "ERROR", Fields: []string{message}}
}

// Encode writes p to w as: u32-BE frame count, then each frame as
// u32-BE length followed by its bytes. The type tag counts as frame zero.
func Encode(w io.Writer, p PDU) error {
	frames := make([]string, 0, len(p.Fields)+1)
	frames = append(frames, p.Type)
	frames = append(frames, p.Fields...)

	var countBuf [4]byte
	binary.BigEndian.PutUint32(countBuf[:], uint32(len(frames)))
	if _, err := w.Write(countBuf[:]); err != nil {
		return err
	}

	for _, f := range frames {
		var lenBuf [4]byte
		binary.BigEndian.PutUint32(lenBuf[:], uint32(len(f)))
		if _, err := w.Write(lenBuf[:]); err != nil {
			return err
		}
		if _, err := io.WriteString(w, f); err != nil {
			return err
		}
	}
	return nil
}

// Decode reads one PDU from r, the inverse of Encode.
func Decode(r *bufio.Reader) (PDU, error) {
	var countBuf [4]byte
	if _, err := io.ReadFull(r, countBuf[:]); err != nil {
		return PDU{}, err
	}
	count := binary.BigEndian.Uint32(countBuf[:])
	if count == 0 {
		return PDU{}, fmt.Errorf("wire: PDU with zero frames")
	}
	if count > maxFrames {
		return PDU{}, fmt.Errorf("wire: PDU frame count %d exceeds limit", count)
	}

	frames := make([]string, count)
	for i := range frames {
		var lenBuf [4]byte
		if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
			return PDU{}, err
		}
		n := binary.BigEndian.Uint32(lenBuf[:])
		if n > maxFrameLen {
			return PDU{}, fmt.Errorf("wire: frame length %d exceeds limit", n)
		}
		buf := make([]byte, n)
		if _, err := io.ReadFull(r, buf); err != nil {
			return PDU{}, err
		}
		frames[i] = string(buf)
	}

	return PDU{Type: frames[0], Fields: frames[1:]}, nil
}
