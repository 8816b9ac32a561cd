// Copyright (C) 2026 The Bolo Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEventRingEvictByCount(t *testing.T) {
	r := NewEventRing(EvictByCount, 2)
	r.Append(Event{Timestamp: 1, Name: "a"}, 1)
	r.Append(Event{Timestamp: 2, Name: "b"}, 2)
	r.Append(Event{Timestamp: 3, Name: "c"}, 3)

	require.Equal(t, 2, r.Len())
	all := r.All()
	require.Equal(t, "b", all[0].Name)
	require.Equal(t, "c", all[1].Name)
}

func TestEventRingEvictByAge(t *testing.T) {
	r := NewEventRing(EvictByAge, 10)
	r.Append(Event{Timestamp: 1000, Name: "old"}, 1000)
	r.Append(Event{Timestamp: 1005, Name: "mid"}, 1005)
	r.Append(Event{Timestamp: 1012, Name: "new"}, 1012)

	all := r.All()
	require.Len(t, all, 2)
	require.Equal(t, "mid", all[0].Name)
	require.Equal(t, "new", all[1].Name)
}

func TestEventRingSinceFiltersByTimestamp(t *testing.T) {
	r := NewEventRing(EvictByCount, 100)
	r.Append(Event{Timestamp: 100, Name: "a"}, 100)
	r.Append(Event{Timestamp: 200, Name: "b"}, 200)
	r.Append(Event{Timestamp: 300, Name: "c"}, 300)

	since := r.Since(200)
	require.Len(t, since, 2)
	require.Equal(t, "b", since[0].Name)
	require.Equal(t, "c", since[1].Name)
}

func TestEventRingUnboundedWhenNZero(t *testing.T) {
	r := NewEventRing(EvictByCount, 0)
	for i := 0; i < 5; i++ {
		r.Append(Event{Timestamp: int64(i)}, int64(i))
	}
	require.Equal(t, 5, r.Len())
}
