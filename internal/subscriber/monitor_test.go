// Copyright (C) 2026 The Bolo Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package subscriber

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMonitorCountAccumulates(t *testing.T) {
	m := NewMonitor()
	m.Count("inserts", 3)
	m.Count("inserts", 4)

	pdus := m.Flush(1000, "relay.sql.")
	require.Len(t, pdus, 1)
	require.Equal(t, "COUNTER", pdus[0].Type)
	require.Equal(t, "relay.sql.inserts", pdus[0].Field(1))
	require.Equal(t, "7", pdus[0].Field(2))
}

func TestMonitorFlushResetsState(t *testing.T) {
	m := NewMonitor()
	m.Count("x", 1)
	m.Flush(1000, "")

	pdus := m.Flush(1001, "")
	require.Empty(t, pdus)
}

func TestReservoirMedianOddCount(t *testing.T) {
	r := &reservoir{}
	for _, v := range []float64{5, 1, 3} {
		r.values = append(r.values, v)
		r.seen++
	}
	require.Equal(t, 3.0, r.median())
}

func TestReservoirMedianEvenCount(t *testing.T) {
	r := &reservoir{}
	for _, v := range []float64{1, 2, 3, 4} {
		r.values = append(r.values, v)
		r.seen++
	}
	require.Equal(t, 2.5, r.median())
}
