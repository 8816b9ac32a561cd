// Copyright (C) 2026 The Bolo Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCounterAddAccumulates(t *testing.T) {
	w := &Window{Seconds: 10}
	c := NewCounter("c.a", w, 1000)
	c.Add(1001, 3)
	c.Add(1002, 4)
	require.Equal(t, uint64(7), c.Value)
	require.Equal(t, int64(1002), c.LastSeen)
}

func TestCounterResetZeroesValue(t *testing.T) {
	w := &Window{Seconds: 10}
	c := NewCounter("c.a", w, 1000)
	c.Add(1001, 5)
	c.Reset(1010)
	require.Equal(t, uint64(0), c.Value)
	require.Equal(t, int64(1010), c.LastSeen)
}
