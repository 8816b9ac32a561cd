// Copyright (C) 2026 The Bolo Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	in := NewPDU("STATE", "svc.a", "1000", "fresh", "OK", "ok")

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, in))

	out, err := Decode(bufio.NewReader(&buf))
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestDecodeRejectsZeroFrames(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0, 0, 0, 0})

	_, err := Decode(bufio.NewReader(&buf))
	require.Error(t, err)
}

func TestParseStateSubmission(t *testing.T) {
	sub, err := ParseStateSubmission(NewPDU("STATE", "1000", "svc.a", "0", "ok"))
	require.NoError(t, err)
	require.Equal(t, StateSubmission{Timestamp: 1000, Name: "svc.a", Code: 0, Message: "ok"}, sub)

	_, err = ParseStateSubmission(NewPDU("STATE", "1000", "svc.a"))
	require.Error(t, err)
}

func TestParseSampleSubmissionMultiValue(t *testing.T) {
	sub, err := ParseSampleSubmission(NewPDU("SAMPLE", "1000", "cpu", "10.0", "11.5"))
	require.NoError(t, err)
	require.Equal(t, []float64{10.0, 11.5}, sub.Values)
}

func TestParseSetKeysSubmission(t *testing.T) {
	pairs, err := ParseSetKeysSubmission(NewPDU("SET.KEYS", "host.ip", "1.2.3.4", "host.mask", "255.255.255.0"))
	require.NoError(t, err)
	require.Equal(t, map[string]string{"host.ip": "1.2.3.4", "host.mask": "255.255.255.0"}, pairs)

	_, err = ParseSetKeysSubmission(NewPDU("SET.KEYS", "host.ip"))
	require.Error(t, err)
}

func TestBroadcastFieldLayout(t *testing.T) {
	p := StateBroadcast("svc.a", 1000, true, "OK", "ok")
	require.Equal(t, []string{"svc.a", "1000", "fresh", "OK", "ok"}, p.Fields)

	p = SampleBroadcast(1000, "cpu", 3, 1.0, 1.0, 3.0, 1.0, 0.0)
	require.Equal(t, "cpu", p.Field(1))
	require.Equal(t, "3", p.Field(2))
}
