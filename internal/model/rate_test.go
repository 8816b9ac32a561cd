// Copyright (C) 2026 The Bolo Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRateUpdateCapturesFirstAndLast(t *testing.T) {
	w := &Window{Seconds: 60}
	r := NewRate("req.permin", w)
	require.False(t, r.HasData())

	r.Update(1000, 100)
	r.Update(1030, 150)
	r.Update(1060, 220)

	require.True(t, r.HasData())
	require.Equal(t, uint64(100), r.First)
	require.Equal(t, uint64(220), r.Last)
	require.Equal(t, int64(1000), r.FirstSeen)
	require.Equal(t, int64(1060), r.LastSeen)
}

func TestRateCalcWithoutRollover(t *testing.T) {
	r := NewRate("req.permin", &Window{Seconds: 60})
	r.Update(1000, 100)
	r.Update(1060, 220)

	// delta 120 over 60s, scaled to a 60s span: 120/60*60 = 120.
	require.InDelta(t, 120.0, r.Calc(60), 1e-9)
}

func TestRateCalcZeroElapsedIsZero(t *testing.T) {
	r := NewRate("req.permin", &Window{Seconds: 60})
	r.Update(1000, 100)
	require.Equal(t, 0.0, r.Calc(60))
}

// TestRateDeltaRolloverThresholdVerbatim pins the preserved 16-bit
// threshold check (first < 0xffff) even though First/Last are 64-bit,
// exactly as in the original accounting. Values below the threshold wrap
// at 16 bits; values at or above it wrap at 32 bits, regardless of
// whether the observed counter was ever actually a 16-bit counter.
func TestRateDeltaRolloverThresholdVerbatim(t *testing.T) {
	r := NewRate("c", &Window{Seconds: 60})
	r.Update(1000, 0xfffe)
	r.Update(1010, 10)
	require.Equal(t, rollover16-uint64(0xfffe)+10, r.Delta())

	r2 := NewRate("c", &Window{Seconds: 60})
	r2.Update(1000, 0x1_0000)
	r2.Update(1010, 10)
	require.Equal(t, rollover32-uint64(0x1_0000)+10, r2.Delta())
}

func TestRateDeltaWithoutRollover(t *testing.T) {
	r := NewRate("c", &Window{Seconds: 60})
	r.Update(1000, 50)
	r.Update(1010, 80)
	require.Equal(t, uint64(30), r.Delta())
}

func TestRateResetClearsHasData(t *testing.T) {
	r := NewRate("c", &Window{Seconds: 60})
	r.Update(1000, 50)
	r.Reset()
	require.False(t, r.HasData())
	require.Equal(t, uint64(0), r.First)
}
