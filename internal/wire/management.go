// Copyright (C) 2026 The Bolo Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"strconv"
)

// ParseStateQuery parses a "STATE | name" management request.
func ParseStateQuery(p PDU) (string, error) {
	if len(p.Fields) != 1 || p.Fields[0] == "" {
		return "", fmt.Errorf("wire: STATE query wants exactly one name field")
	}
	return p.Fields[0], nil
}

// StateReply builds the management reply to a point STATE lookup, using
// the same field layout as the STATE/TRANSITION broadcasts: name,
// timestamp, freshness tag, status name, summary.
func StateReply(name string, ts int64, fresh bool, statusName, summary string) PDU {
	return NewPDU("STATE", name, strconv.FormatInt(ts, 10), freshnessTag(fresh), statusName, summary)
}

func freshnessTag(fresh bool) string {
	if fresh {
		return "fresh"
	}
	return "stale"
}

// DumpReply wraps a YAML-encoded snapshot of current states as a DUMP
// reply.
func DumpReply(yamlBlob string) PDU {
	return NewPDU("DUMP", yamlBlob)
}

// ParseGetKeysQuery parses a "GET.KEYS | k+" request.
func ParseGetKeysQuery(p PDU) ([]string, error) {
	if len(p.Fields) == 0 {
		return nil, fmt.Errorf("wire: GET.KEYS wants at least one key")
	}
	return p.Fields, nil
}

// ValuesReply builds a "VALUES | (k, v)+" reply, flattening pairs into
// alternating frames, for keys that were actually present.
func ValuesReply(pairs map[string]string, order []string) PDU {
	fields := make([]string, 0, len(order)*2)
	for _, k := range order {
		v, ok := pairs[k]
		if !ok {
			continue
		}
		fields = append(fields, k, v)
	}
	return PDU{Type: "VALUES", Fields: fields}
}

// ParseDelKeysQuery parses a "DEL.KEYS | k+" request.
func ParseDelKeysQuery(p PDU) ([]string, error) {
	if len(p.Fields) == 0 {
		return nil, fmt.Errorf("wire: DEL.KEYS wants at least one key")
	}
	return p.Fields, nil
}

// OKReply is the generic acknowledgement used by DEL.KEYS and SAVESTATE.
func OKReply() PDU {
	return NewPDU("OK")
}

// ParseSearchKeysQuery parses a "SEARCH.KEYS | pattern" request.
func ParseSearchKeysQuery(p PDU) (string, error) {
	if len(p.Fields) != 1 || p.Fields[0] == "" {
		return "", fmt.Errorf("wire: SEARCH.KEYS wants exactly one pattern field")
	}
	return p.Fields[0], nil
}

// KeysReply builds a "KEYS | k+" reply.
func KeysReply(keys []string) PDU {
	return PDU{Type: "KEYS", Fields: keys}
}

// ParseGetEventsQuery parses a "GET.EVENTS | since" request.
func ParseGetEventsQuery(p PDU) (int64, error) {
	if len(p.Fields) != 1 {
		return 0, fmt.Errorf("wire: GET.EVENTS wants exactly one since field")
	}
	since, err := strconv.ParseInt(p.Fields[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("wire: GET.EVENTS since: %w", err)
	}
	return since, nil
}

// EventsReply wraps a YAML-encoded event dump as an EVENTS reply.
func EventsReply(yamlBlob string) PDU {
	return NewPDU("EVENTS", yamlBlob)
}
