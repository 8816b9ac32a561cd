// Copyright (C) 2026 The Bolo Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package model

// Sample is an online statistical aggregator over real-valued observations
// within a window, updated with Welford's algorithm. mean_/var_ hold the
// prior-step values needed by the recurrence.
type Sample struct {
	Name     string
	Window   *Window
	LastSeen int64
	N        uint64
	Min      float64
	Max      float64
	Sum      float64
	Mean     float64
	Var      float64
	mean_    float64
	var_     float64
}

// NewSample returns a Sample for the given window.
func NewSample(name string, w *Window, ts int64) *Sample {
	return &Sample{Name: name, Window: w, LastSeen: ts}
}

// Reset zeroes every field, per §4.3 window rollover.
func (s *Sample) Reset(ts int64) {
	s.LastSeen = ts
	s.N = 0
	s.Min = 0
	s.Max = 0
	s.Sum = 0
	s.Mean = 0
	s.Var = 0
	s.mean_ = 0
	s.var_ = 0
}

// Update folds v into the aggregate at time ts using Welford's online
// algorithm:
//
//	mean' = mean + (v - mean)/n
//	var'  = ((n-1)*var + (v - mean_prev)*(v - mean')) / n
func (s *Sample) Update(ts int64, v float64) {
	s.LastSeen = ts
	s.Sum += v

	if s.N == 0 {
		s.Min = v
		s.Max = v
	} else {
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}

	s.N++
	s.mean_ = s.Mean
	s.var_ = s.Var

	n := float64(s.N)
	s.Mean = s.mean_ + (v-s.mean_)/n
	if s.N > 1 {
		s.Var = (float64(s.N-1)*s.var_ + (v-s.mean_)*(v-s.Mean)) / n
	} else {
		s.Var = 0
	}
}
