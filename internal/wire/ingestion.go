// Copyright (C) 2026 The Bolo Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"strconv"
)

// StateSubmission is a parsed STATE ingestion PDU: ts, name, code, message.
type StateSubmission struct {
	Timestamp int64
	Name      string
	Code      int
	Message   string
}

// ParseStateSubmission parses a STATE PDU's frames.
func ParseStateSubmission(p PDU) (StateSubmission, error) {
	if len(p.Fields) != 4 {
		return StateSubmission{}, fmt.Errorf("wire: STATE wants 4 fields, got %d", len(p.Fields))
	}
	ts, err := strconv.ParseInt(p.Fields[0], 10, 64)
	if err != nil {
		return StateSubmission{}, fmt.Errorf("wire: STATE timestamp: %w", err)
	}
	name := p.Fields[1]
	if name == "" {
		return StateSubmission{}, fmt.Errorf("wire: STATE name is empty")
	}
	code, err := strconv.Atoi(p.Fields[2])
	if err != nil {
		return StateSubmission{}, fmt.Errorf("wire: STATE code: %w", err)
	}
	msg := p.Fields[3]
	if msg == "" {
		return StateSubmission{}, fmt.Errorf("wire: STATE message is empty")
	}
	return StateSubmission{Timestamp: ts, Name: name, Code: code, Message: msg}, nil
}

// CounterSubmission is a parsed COUNTER ingestion PDU: ts, name, delta.
type CounterSubmission struct {
	Timestamp int64
	Name      string
	Delta     uint64
}

// ParseCounterSubmission parses a COUNTER PDU's frames.
func ParseCounterSubmission(p PDU) (CounterSubmission, error) {
	if len(p.Fields) != 3 {
		return CounterSubmission{}, fmt.Errorf("wire: COUNTER wants 3 fields, got %d", len(p.Fields))
	}
	ts, err := strconv.ParseInt(p.Fields[0], 10, 64)
	if err != nil {
		return CounterSubmission{}, fmt.Errorf("wire: COUNTER timestamp: %w", err)
	}
	name := p.Fields[1]
	if name == "" {
		return CounterSubmission{}, fmt.Errorf("wire: COUNTER name is empty")
	}
	delta, err := strconv.ParseUint(p.Fields[2], 10, 64)
	if err != nil {
		return CounterSubmission{}, fmt.Errorf("wire: COUNTER delta: %w", err)
	}
	return CounterSubmission{Timestamp: ts, Name: name, Delta: delta}, nil
}

// SampleSubmission is a parsed SAMPLE ingestion PDU: ts, name, v1..vk.
type SampleSubmission struct {
	Timestamp int64
	Name      string
	Values    []float64
}

// ParseSampleSubmission parses a SAMPLE PDU's frames. At least one value
// is required.
func ParseSampleSubmission(p PDU) (SampleSubmission, error) {
	if len(p.Fields) < 3 {
		return SampleSubmission{}, fmt.Errorf("wire: SAMPLE wants at least 3 fields, got %d", len(p.Fields))
	}
	ts, err := strconv.ParseInt(p.Fields[0], 10, 64)
	if err != nil {
		return SampleSubmission{}, fmt.Errorf("wire: SAMPLE timestamp: %w", err)
	}
	name := p.Fields[1]
	if name == "" {
		return SampleSubmission{}, fmt.Errorf("wire: SAMPLE name is empty")
	}
	values := make([]float64, 0, len(p.Fields)-2)
	for _, f := range p.Fields[2:] {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return SampleSubmission{}, fmt.Errorf("wire: SAMPLE value %q: %w", f, err)
		}
		values = append(values, v)
	}
	return SampleSubmission{Timestamp: ts, Name: name, Values: values}, nil
}

// RateSubmission is a parsed RATE ingestion PDU: ts, name, value.
type RateSubmission struct {
	Timestamp int64
	Name      string
	Value     uint64
}

// ParseRateSubmission parses a RATE PDU's frames.
func ParseRateSubmission(p PDU) (RateSubmission, error) {
	if len(p.Fields) != 3 {
		return RateSubmission{}, fmt.Errorf("wire: RATE wants 3 fields, got %d", len(p.Fields))
	}
	ts, err := strconv.ParseInt(p.Fields[0], 10, 64)
	if err != nil {
		return RateSubmission{}, fmt.Errorf("wire: RATE timestamp: %w", err)
	}
	name := p.Fields[1]
	if name == "" {
		return RateSubmission{}, fmt.Errorf("wire: RATE name is empty")
	}
	v, err := strconv.ParseUint(p.Fields[2], 10, 64)
	if err != nil {
		return RateSubmission{}, fmt.Errorf("wire: RATE value: %w", err)
	}
	return RateSubmission{Timestamp: ts, Name: name, Value: v}, nil
}

// EventSubmission is a parsed EVENT ingestion PDU: ts, name, extra.
type EventSubmission struct {
	Timestamp int64
	Name      string
	Extra     string
}

// ParseEventSubmission parses an EVENT PDU's frames.
func ParseEventSubmission(p PDU) (EventSubmission, error) {
	if len(p.Fields) != 3 {
		return EventSubmission{}, fmt.Errorf("wire: EVENT wants 3 fields, got %d", len(p.Fields))
	}
	ts, err := strconv.ParseInt(p.Fields[0], 10, 64)
	if err != nil {
		return EventSubmission{}, fmt.Errorf("wire: EVENT timestamp: %w", err)
	}
	name := p.Fields[1]
	if name == "" {
		return EventSubmission{}, fmt.Errorf("wire: EVENT name is empty")
	}
	return EventSubmission{Timestamp: ts, Name: name, Extra: p.Fields[2]}, nil
}

// ParseSetKeysSubmission parses a SET.KEYS PDU's frames, an even-length
// sequence of alternating (k, v) pairs.
func ParseSetKeysSubmission(p PDU) (map[string]string, error) {
	if len(p.Fields) == 0 || len(p.Fields)%2 != 0 {
		return nil, fmt.Errorf("wire: SET.KEYS wants an even, nonzero number of fields, got %d", len(p.Fields))
	}
	pairs := make(map[string]string, len(p.Fields)/2)
	for i := 0; i < len(p.Fields); i += 2 {
		k := p.Fields[i]
		if k == "" {
			return nil, fmt.Errorf("wire: SET.KEYS key is empty")
		}
		pairs[k] = p.Fields[i+1]
	}
	return pairs, nil
}
