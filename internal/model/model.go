// Copyright (C) 2026 The Bolo Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package model holds the aggregator's data model: types, windows, states,
// counters, samples, rates and events, plus the online aggregation math
// that updates them. Types and windows are immutable once loaded from
// configuration; states/counters/samples/rates hold non-owning references
// to their type/window (a pointer into the immutable table built at config
// load, never a value copy), per the ownership rules in the specification.
package model

// Status is a monitored condition's discrete status code.
type Status uint8

const (
	StatusOK Status = iota
	StatusWarning
	StatusCritical
	StatusUnknown
	// StatusPending is the status of a state that has never been updated.
	StatusPending
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusWarning:
		return "WARNING"
	case StatusCritical:
		return "CRITICAL"
	case StatusUnknown:
		return "UNKNOWN"
	case StatusPending:
		return "PENDING"
	default:
		return "UNKNOWN"
	}
}

// ParseStatus maps a numeric status code (as carried on the wire, 0-3) to a
// Status. Codes outside that range map to StatusUnknown, matching the
// original C implementation's clamping behavior.
func ParseStatus(code int) Status {
	if code < 0 || code > int(StatusUnknown) {
		return StatusUnknown
	}
	return Status(code)
}

// Type is a named class of states sharing a freshness policy. Immutable
// after config load.
type Type struct {
	Name             string
	FreshnessSeconds int64
	StaleStatus      Status
	StaleSummary     string
}

// Window is a named or anonymous period, in seconds, used to bucket
// counters, samples and rates. Immutable after config load.
type Window struct {
	Name    string
	Seconds int64
}

// Start returns the window-start for timestamp t: t - (t mod period).
func (w *Window) Start(t int64) int64 {
	if w.Seconds <= 0 {
		return t
	}
	m := t % w.Seconds
	if m < 0 {
		m += w.Seconds
	}
	return t - m
}

// End returns the end of the window containing t.
func (w *Window) End(t int64) int64 {
	return w.Start(t) + w.Seconds
}
