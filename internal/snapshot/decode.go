// Copyright (C) 2026 The Bolo Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package snapshot

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Record is a decoded snapshot record: exactly one of the typed fields is
// populated, selected by Kind.
type Record struct {
	Kind    RecordKind
	State   *StateRecord
	Counter *CounterRecord
	Sample  *SampleRecord
	Rate    *RateRecord
	Event   *EventRecord
}

func readCString(r *bufio.Reader) (string, error) {
	s, err := r.ReadString(0)
	if err != nil {
		return "", err
	}
	return s[:len(s)-1], nil
}

func readU32(r io.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

func readU64(r io.Reader) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

func readF64(r io.Reader) (float64, error) {
	bits, err := readU64(r)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}

// DecodeRecord reads one record from r. Callers must know how many records
// to expect (the file header's record_count, or a PDU's own framing) since
// the two-byte snapshot trailer is not itself a record.
func DecodeRecord(r *bufio.Reader) (*Record, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, err
	}
	total := binary.BigEndian.Uint16(hdr[0:2])
	kind := RecordKind(binary.BigEndian.Uint16(hdr[2:4]))

	lr := io.LimitReader(r, int64(total)-4)
	br := bufio.NewReader(lr)

	switch kind {
	case KindState:
		lastSeen, err := readU32(br)
		if err != nil {
			return nil, err
		}
		var sb [2]byte
		if _, err := io.ReadFull(br, sb[:]); err != nil {
			return nil, err
		}
		name, err := readCString(br)
		if err != nil {
			return nil, err
		}
		summary, err := readCString(br)
		if err != nil {
			return nil, err
		}
		return &Record{Kind: kind, State: &StateRecord{
			Name: name, LastSeen: int64(lastSeen), Status: sb[0], Stale: sb[1] != 0, Summary: summary,
		}}, nil

	case KindCounter:
		lastSeen, err := readU32(br)
		if err != nil {
			return nil, err
		}
		value, err := readU64(br)
		if err != nil {
			return nil, err
		}
		name, err := readCString(br)
		if err != nil {
			return nil, err
		}
		return &Record{Kind: kind, Counter: &CounterRecord{Name: name, LastSeen: int64(lastSeen), Value: value}}, nil

	case KindSample:
		lastSeen, err := readU32(br)
		if err != nil {
			return nil, err
		}
		n, err := readU64(br)
		if err != nil {
			return nil, err
		}
		vals := make([]float64, 5)
		for i := range vals {
			v, err := readF64(br)
			if err != nil {
				return nil, err
			}
			vals[i] = v
		}
		name, err := readCString(br)
		if err != nil {
			return nil, err
		}
		return &Record{Kind: kind, Sample: &SampleRecord{
			Name: name, LastSeen: int64(lastSeen), N: n,
			Min: vals[0], Max: vals[1], Sum: vals[2], Mean: vals[3], Var: vals[4],
		}}, nil

	case KindRate:
		firstSeen, err := readU32(br)
		if err != nil {
			return nil, err
		}
		lastSeen, err := readU32(br)
		if err != nil {
			return nil, err
		}
		first, err := readU64(br)
		if err != nil {
			return nil, err
		}
		last, err := readU64(br)
		if err != nil {
			return nil, err
		}
		name, err := readCString(br)
		if err != nil {
			return nil, err
		}
		return &Record{Kind: kind, Rate: &RateRecord{
			Name: name, FirstSeen: int64(firstSeen), LastSeen: int64(lastSeen), First: first, Last: last,
		}}, nil

	case KindEvent:
		ts, err := readU32(br)
		if err != nil {
			return nil, err
		}
		name, err := readCString(br)
		if err != nil {
			return nil, err
		}
		extra, err := readCString(br)
		if err != nil {
			return nil, err
		}
		return &Record{Kind: kind, Event: &EventRecord{Timestamp: int64(ts), Name: name, Extra: extra}}, nil

	default:
		return nil, fmt.Errorf("snapshot: unknown record kind %d", kind)
	}
}
