// Copyright (C) 2026 The Bolo Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package snapshot implements the single-version (v1) binary snapshot
// format described in §4.6 of the specification:
//
//	Header  : "BOLO" magic (4B) | version u16-BE | flags u16-BE | timestamp u32-BE | record_count u32-BE
//	Record* : length u16-BE | kind-flags u16-BE | fixed body (per kind) | variable body
//	Trailer : two NUL bytes
//
// The original C implementation mmaps a fixed-size region and writes a
// host-order "htonl" bit pattern for some float fields and a native memcpy
// for others (§9 Open Question: "the binary format's exact endianness for
// floating-point fields is unspecified"). This implementation resolves
// that ambiguity, as the spec recommends, by writing every float64 field
// as the big-endian IEEE-754 bit pattern (math.Float64bits +
// binary.BigEndian), consistently, for every Sample field.
//
// No mmap-capable library appears anywhere in the retrieved example
// corpus, so the writer/reader here use plain buffered os.File I/O over a
// pre-truncated file instead of an actual memory mapping; see DESIGN.md.
package snapshot

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

const (
	magic   = "BOLO"
	version = uint16(1)
)

// RecordKind tags which fixed body follows the record header.
type RecordKind uint16

const (
	KindState   RecordKind = 1
	KindCounter RecordKind = 2
	KindSample  RecordKind = 3
	KindEvent   RecordKind = 4
	KindRate    RecordKind = 5
)

// StateRecord is the on-disk shape of a State.
type StateRecord struct {
	Name     string
	LastSeen int64
	Status   uint8
	Stale    bool
	Summary  string
}

// CounterRecord is the on-disk shape of a Counter.
type CounterRecord struct {
	Name     string
	LastSeen int64
	Value    uint64
}

// SampleRecord is the on-disk shape of a Sample.
type SampleRecord struct {
	Name     string
	LastSeen int64
	N        uint64
	Min      float64
	Max      float64
	Sum      float64
	Mean     float64
	Var      float64
}

// RateRecord is the on-disk shape of a Rate.
type RateRecord struct {
	Name      string
	FirstSeen int64
	LastSeen  int64
	First     uint64
	Last      uint64
}

// EventRecord is the on-disk shape of an Event.
type EventRecord struct {
	Timestamp int64
	Name      string
	Extra     string
}

func writeCString(w io.Writer, s string) error {
	if _, err := io.WriteString(w, s); err != nil {
		return err
	}
	_, err := w.Write([]byte{0})
	return err
}

func writeU32(w io.Writer, v uint32) error {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func writeU64(w io.Writer, v uint64) error {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func writeF64(w io.Writer, v float64) error {
	return writeU64(w, math.Float64bits(v))
}

// fixedBodyLen returns the fixed-body length in bytes for each record kind,
// matching the original C struct layouts in binf.c: u32 last_seen + u8
// status + u8 stale for state, etc.
func fixedBodyLen(kind RecordKind) int {
	switch kind {
	case KindState:
		return 4 + 1 + 1 // last_seen, status, stale
	case KindCounter:
		return 4 + 8 // last_seen, value
	case KindSample:
		return 4 + 8 + 8*5 // last_seen, n, min, max, sum, mean, var
	case KindRate:
		return 4 + 4 + 8 + 8 // first_seen, last_seen, first, last
	case KindEvent:
		return 4 // timestamp
	default:
		return 0
	}
}

// EncodeState writes one KindState record to w.
func EncodeState(w *bufio.Writer, r StateRecord) error {
	varLen := len(r.Name) + 1 + len(r.Summary) + 1
	return encodeRecord(w, KindState, fixedBodyLen(KindState)+varLen, func(w io.Writer) error {
		if err := writeU32(w, uint32(r.LastSeen)); err != nil {
			return err
		}
		stale := byte(0)
		if r.Stale {
			stale = 1
		}
		if _, err := w.Write([]byte{r.Status, stale}); err != nil {
			return err
		}
		if err := writeCString(w, r.Name); err != nil {
			return err
		}
		return writeCString(w, r.Summary)
	})
}

// EncodeCounter writes one KindCounter record to w.
func EncodeCounter(w *bufio.Writer, r CounterRecord) error {
	varLen := len(r.Name) + 1
	return encodeRecord(w, KindCounter, fixedBodyLen(KindCounter)+varLen, func(w io.Writer) error {
		if err := writeU32(w, uint32(r.LastSeen)); err != nil {
			return err
		}
		if err := writeU64(w, r.Value); err != nil {
			return err
		}
		return writeCString(w, r.Name)
	})
}

// EncodeSample writes one KindSample record to w.
func EncodeSample(w *bufio.Writer, r SampleRecord) error {
	varLen := len(r.Name) + 1
	return encodeRecord(w, KindSample, fixedBodyLen(KindSample)+varLen, func(w io.Writer) error {
		if err := writeU32(w, uint32(r.LastSeen)); err != nil {
			return err
		}
		if err := writeU64(w, r.N); err != nil {
			return err
		}
		for _, v := range []float64{r.Min, r.Max, r.Sum, r.Mean, r.Var} {
			if err := writeF64(w, v); err != nil {
				return err
			}
		}
		return writeCString(w, r.Name)
	})
}

// EncodeRate writes one KindRate record to w.
func EncodeRate(w *bufio.Writer, r RateRecord) error {
	varLen := len(r.Name) + 1
	return encodeRecord(w, KindRate, fixedBodyLen(KindRate)+varLen, func(w io.Writer) error {
		if err := writeU32(w, uint32(r.FirstSeen)); err != nil {
			return err
		}
		if err := writeU32(w, uint32(r.LastSeen)); err != nil {
			return err
		}
		if err := writeU64(w, r.First); err != nil {
			return err
		}
		if err := writeU64(w, r.Last); err != nil {
			return err
		}
		return writeCString(w, r.Name)
	})
}

// EncodeEvent writes one KindEvent record to w.
func EncodeEvent(w *bufio.Writer, r EventRecord) error {
	varLen := len(r.Name) + 1 + len(r.Extra) + 1
	return encodeRecord(w, KindEvent, fixedBodyLen(KindEvent)+varLen, func(w io.Writer) error {
		if err := writeU32(w, uint32(r.Timestamp)); err != nil {
			return err
		}
		if err := writeCString(w, r.Name); err != nil {
			return err
		}
		return writeCString(w, r.Extra)
	})
}

func encodeRecord(w *bufio.Writer, kind RecordKind, bodyLen int, writeBody func(io.Writer) error) error {
	recordHeaderLen := 4 // u16 len + u16 flags
	total := recordHeaderLen + bodyLen
	if total > 0xffff {
		return fmt.Errorf("snapshot: record too large (%d bytes)", total)
	}

	var hdr [4]byte
	binary.BigEndian.PutUint16(hdr[0:2], uint16(total))
	binary.BigEndian.PutUint16(hdr[2:4], uint16(kind))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	return writeBody(w)
}
