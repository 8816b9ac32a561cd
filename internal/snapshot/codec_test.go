// Copyright (C) 2026 The Bolo Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package snapshot

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeSample(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)

	in := SampleRecord{Name: "cpu.load", LastSeen: 1700000000, N: 3, Min: 1, Max: 1, Sum: 3, Mean: 1, Var: 0}
	require.NoError(t, EncodeSample(w, in))
	require.NoError(t, w.Flush())

	r := bufio.NewReader(&buf)
	rec, err := DecodeRecord(r)
	require.NoError(t, err)
	require.Equal(t, KindSample, rec.Kind)
	require.Equal(t, in, *rec.Sample)
}

func TestEncodeDecodeState(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)

	in := StateRecord{Name: "host.alive", LastSeen: 42, Status: 2, Stale: true, Summary: "stale: no update in 30s"}
	require.NoError(t, EncodeState(w, in))
	require.NoError(t, w.Flush())

	r := bufio.NewReader(&buf)
	rec, err := DecodeRecord(r)
	require.NoError(t, err)
	require.Equal(t, KindState, rec.Kind)
	require.Equal(t, in, *rec.State)
}

func TestEncodeDecodeMultipleRecords(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)

	require.NoError(t, EncodeCounter(w, CounterRecord{Name: "req.count", LastSeen: 1, Value: 9001}))
	require.NoError(t, EncodeRate(w, RateRecord{Name: "net.rx", FirstSeen: 1, LastSeen: 2, First: 10, Last: 20}))
	require.NoError(t, EncodeEvent(w, EventRecord{Timestamp: 5, Name: "deploy", Extra: "v1.2.3"}))
	require.NoError(t, w.Flush())

	r := bufio.NewReader(&buf)

	rec1, err := DecodeRecord(r)
	require.NoError(t, err)
	require.Equal(t, uint64(9001), rec1.Counter.Value)

	rec2, err := DecodeRecord(r)
	require.NoError(t, err)
	require.Equal(t, uint64(10), rec2.Rate.First)

	rec3, err := DecodeRecord(r)
	require.NoError(t, err)
	require.Equal(t, "deploy", rec3.Event.Name)
}
