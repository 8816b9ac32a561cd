// Copyright (C) 2026 The Bolo Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWindowStartAligns(t *testing.T) {
	w := &Window{Seconds: 10}
	require.Equal(t, int64(1000), w.Start(1005))
	require.Equal(t, int64(1000), w.Start(1000))
	require.Equal(t, int64(1010), w.End(1005))
}

func TestWindowStartNegativeTimestamp(t *testing.T) {
	w := &Window{Seconds: 10}
	require.Equal(t, int64(-10), w.Start(-5))
}

func TestWindowZeroPeriodIsIdentity(t *testing.T) {
	w := &Window{Seconds: 0}
	require.Equal(t, int64(42), w.Start(42))
}

func TestParseStatusClampsOutOfRange(t *testing.T) {
	require.Equal(t, StatusOK, ParseStatus(0))
	require.Equal(t, StatusUnknown, ParseStatus(3))
	require.Equal(t, StatusUnknown, ParseStatus(99))
	require.Equal(t, StatusUnknown, ParseStatus(-1))
}

func TestStatusString(t *testing.T) {
	require.Equal(t, "OK", StatusOK.String())
	require.Equal(t, "CRITICAL", StatusCritical.String())
	require.Equal(t, "PENDING", StatusPending.String())
}
