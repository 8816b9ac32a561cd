// Copyright (C) 2026 The Bolo Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSampleUpdateConstantValues(t *testing.T) {
	w := &Window{Seconds: 10}
	s := NewSample("cpu", w, 1000)
	s.Update(1000, 10.0)
	s.Update(1000, 10.0)
	s.Update(1001, 10.0)

	require.Equal(t, uint64(3), s.N)
	require.Equal(t, 10.0, s.Min)
	require.Equal(t, 10.0, s.Max)
	require.Equal(t, 30.0, s.Sum)
	require.Equal(t, 10.0, s.Mean)
	require.Equal(t, 0.0, s.Var)
}

func TestSampleUpdateTracksMinMax(t *testing.T) {
	w := &Window{Seconds: 10}
	s := NewSample("cpu", w, 1000)
	s.Update(1000, 5.0)
	s.Update(1001, 1.0)
	s.Update(1002, 9.0)

	require.Equal(t, 1.0, s.Min)
	require.Equal(t, 9.0, s.Max)
	require.Equal(t, uint64(3), s.N)
}

func TestSampleVarianceNonNegativeForVaryingValues(t *testing.T) {
	w := &Window{Seconds: 10}
	s := NewSample("cpu", w, 1000)
	s.Update(1000, 2.0)
	s.Update(1001, 4.0)
	s.Update(1002, 4.0)
	s.Update(1003, 4.0)
	s.Update(1004, 5.0)
	s.Update(1005, 5.0)
	s.Update(1006, 7.0)
	s.Update(1007, 9.0)

	require.InDelta(t, 5.0, s.Mean, 1e-9)
	require.InDelta(t, 4.0, s.Var, 1e-9)
}

func TestSampleResetZeroesEverything(t *testing.T) {
	w := &Window{Seconds: 10}
	s := NewSample("cpu", w, 1000)
	s.Update(1000, 10.0)
	s.Reset(1010)

	require.Equal(t, uint64(0), s.N)
	require.Equal(t, 0.0, s.Sum)
	require.Equal(t, 0.0, s.Mean)
	require.Equal(t, 0.0, s.Var)
	require.Equal(t, int64(1010), s.LastSeen)
}
