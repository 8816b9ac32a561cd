// Copyright (C) 2026 The Bolo Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package model

// Counter is a monotone-per-window additive accumulator. Window is a
// non-owning reference into the immutable window table.
type Counter struct {
	Name     string
	Window   *Window
	LastSeen int64
	Value    uint64
}

// NewCounter returns a Counter for the given window, already positioned at
// the window containing ts.
func NewCounter(name string, w *Window, ts int64) *Counter {
	return &Counter{Name: name, Window: w, LastSeen: ts}
}

// Reset zeroes the counter for a new window, per §4.3 window rollover.
func (c *Counter) Reset(ts int64) {
	c.Value = 0
	c.LastSeen = ts
}

// Add folds delta into the current window's value.
func (c *Counter) Add(ts int64, delta uint64) {
	c.Value += delta
	c.LastSeen = ts
}
