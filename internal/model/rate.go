// Copyright (C) 2026 The Bolo Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package model

// Rate captures the first and last observation of a counter-like value
// within a window, from which a per-unit rate is derived accounting for
// unsigned integer rollover.
type Rate struct {
	Name       string
	Window     *Window
	FirstSeen  int64
	LastSeen   int64
	First      uint64
	Last       uint64
	hasFirst   bool
}

// NewRate returns a Rate for the given window.
func NewRate(name string, w *Window) *Rate {
	return &Rate{Name: name, Window: w}
}

// HasData reports whether the rate has recorded any observation yet in
// its current window.
func (r *Rate) HasData() bool {
	return r.hasFirst
}

// Restore sets a Rate's fields from persisted snapshot state, marking it
// as having data so HasData and the next Update treat it exactly as if
// firstSeen/first had been observed normally rather than overwritten by
// the next incoming submission.
func (r *Rate) Restore(firstSeen, lastSeen int64, first, last uint64) {
	r.FirstSeen = firstSeen
	r.LastSeen = lastSeen
	r.First = first
	r.Last = last
	r.hasFirst = true
}

// Reset clears the rate for a new window, per §4.3 window rollover.
func (r *Rate) Reset() {
	r.FirstSeen = 0
	r.LastSeen = 0
	r.First = 0
	r.Last = 0
	r.hasFirst = false
}

// Update records an observation within the current window: first captures
// the first value seen, last always tracks the latest.
func (r *Rate) Update(ts int64, v uint64) {
	if !r.hasFirst {
		r.FirstSeen = ts
		r.First = v
		r.hasFirst = true
	}
	r.LastSeen = ts
	r.Last = v
}

// Rollover thresholds preserved verbatim from the original C
// implementation (see spec §9 Open Questions): the choice between 16-bit
// and 32-bit wraparound accounting is gated on `first < 0xffff`, even
// though first/last are both declared as 64-bit values. This looks like a
// latent bug in the original source; it is intentionally NOT "fixed" here.
const (
	rollover16 = 0xffff
	rollover32 = 0xffffffff
)

// Delta returns last-first accounting for rollover at either the 16-bit or
// 32-bit boundary, exactly as specified (verbatim, bug included).
func (r *Rate) Delta() uint64 {
	if r.Last >= r.First {
		return r.Last - r.First
	}
	if r.First < rollover16 {
		return rollover16 - r.First + r.Last
	}
	return rollover32 - r.First + r.Last
}

// Calc returns the rate over span S seconds: delta / (last_seen -
// first_seen) * S. Returns 0 if first_seen == last_seen (no elapsed time).
func (r *Rate) Calc(spanSeconds int64) float64 {
	elapsed := r.LastSeen - r.FirstSeen
	if elapsed <= 0 {
		return 0
	}
	return float64(r.Delta()) / float64(elapsed) * float64(spanSeconds)
}
