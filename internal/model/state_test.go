// Copyright (C) 2026 The Bolo Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testType() *Type {
	return &Type{Name: "svc", FreshnessSeconds: 2, StaleStatus: StatusCritical, StaleSummary: "no update"}
}

func TestStateFirstObserveTransitionsFromPending(t *testing.T) {
	st := NewState("svc.a", testType())
	require.Equal(t, StatusPending, st.Status)

	trans := st.Observe(1000, StatusOK, "ok")
	require.True(t, trans.Changed)
	require.Equal(t, StatusPending, trans.WasStatus)
	require.Equal(t, int64(1002), st.Expiry)
	require.False(t, st.Stale)
}

func TestStateObserveSameStatusNoTransition(t *testing.T) {
	st := NewState("svc.a", testType())
	st.Observe(1000, StatusOK, "ok")

	trans := st.Observe(1001, StatusOK, "still ok")
	require.False(t, trans.Changed)
	require.Equal(t, "still ok", st.Summary)
}

func TestStateSweepStaleBeforeExpiryIsNoop(t *testing.T) {
	st := NewState("svc.a", testType())
	st.Observe(1000, StatusOK, "ok")

	trans, swept := st.SweepStale(1001)
	require.False(t, swept)
	require.False(t, trans.Changed)
	require.False(t, st.Stale)
}

func TestStateSweepStaleAfterExpiryTransitions(t *testing.T) {
	st := NewState("svc.a", testType())
	st.Observe(1000, StatusOK, "ok")

	trans, swept := st.SweepStale(1002)
	require.True(t, swept)
	require.True(t, trans.Changed)
	require.True(t, st.Stale)
	require.Equal(t, StatusCritical, st.Status)
	require.Equal(t, "no update", st.Summary)
}

func TestStateSweepStaleAgainIsNotAChange(t *testing.T) {
	st := NewState("svc.a", testType())
	st.Observe(1000, StatusOK, "ok")
	st.SweepStale(1002)

	trans, swept := st.SweepStale(1004)
	require.True(t, swept)
	require.False(t, trans.Changed)
}
