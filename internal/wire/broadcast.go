// Copyright (C) 2026 The Bolo Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"strconv"
)

// StateBroadcast builds a STATE broadcast: name, timestamp, freshness tag,
// status name, summary. Emitted unconditionally on every freshness-sweep
// match and on every accepted STATE submission.
func StateBroadcast(name string, ts int64, fresh bool, statusName, summary string) PDU {
	return NewPDU("STATE", name, strconv.FormatInt(ts, 10), freshnessTag(fresh), statusName, summary)
}

// TransitionBroadcast has the identical field layout to StateBroadcast;
// it is emitted only when stale or status actually changed.
func TransitionBroadcast(name string, ts int64, fresh bool, statusName, summary string) PDU {
	return NewPDU("TRANSITION", name, strconv.FormatInt(ts, 10), freshnessTag(fresh), statusName, summary)
}

// CounterBroadcast builds a COUNTER broadcast: window-start-ts, name, value.
func CounterBroadcast(windowStart int64, name string, value uint64) PDU {
	return NewPDU("COUNTER", strconv.FormatInt(windowStart, 10), name, strconv.FormatUint(value, 10))
}

// SampleBroadcast builds a SAMPLE broadcast: window-start-ts, name, n,
// min, max, sum, mean, var, with floats rendered in %e notation.
func SampleBroadcast(windowStart int64, name string, n uint64, min, max, sum, mean, variance float64) PDU {
	return NewPDU("SAMPLE",
		strconv.FormatInt(windowStart, 10),
		name,
		strconv.FormatUint(n, 10),
		fmt.Sprintf("%e", min),
		fmt.Sprintf("%e", max),
		fmt.Sprintf("%e", sum),
		fmt.Sprintf("%e", mean),
		fmt.Sprintf("%e", variance),
	)
}

// RateBroadcast builds a RATE broadcast: window-start-ts, name,
// window-seconds, rate.
func RateBroadcast(windowStart int64, name string, windowSeconds int64, rate float64) PDU {
	return NewPDU("RATE",
		strconv.FormatInt(windowStart, 10),
		name,
		strconv.FormatInt(windowSeconds, 10),
		fmt.Sprintf("%e", rate),
	)
}

// EventBroadcast builds an EVENT broadcast: timestamp, name, extra.
func EventBroadcast(ts int64, name, extra string) PDU {
	return NewPDU("EVENT", strconv.FormatInt(ts, 10), name, extra)
}
