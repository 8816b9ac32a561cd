// Copyright (C) 2026 The Bolo Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kernel

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/teancom/bolo-sub000/internal/configschema"
	"github.com/teancom/bolo-sub000/internal/store"
	"github.com/teancom/bolo-sub000/internal/telemetry"
	"github.com/teancom/bolo-sub000/internal/wire"
	"github.com/teancom/bolo-sub000/pkg/bolog"
)

const testConfigJSON = `{
  "types": [{"name": "svc", "freshness_seconds": 2, "stale_status": "CRITICAL", "stale_summary": "no update"}],
  "windows": [{"name": "w2", "seconds": 2}],
  "defaults": {"type": "svc", "window": "w2"},
  "states": [{"pattern": "^s", "regex": true}],
  "counters": [{"pattern": "^c", "regex": true}],
  "samples": [{"pattern": "cpu"}],
  "rates": [{"pattern": "req.permin"}],
  "events": {"n": 100, "unit": "count"},
  "endpoints": {"ingestion": "tcp://*:2999", "management": "tcp://*:2998", "broadcast": "tcp://*:2997"},
  "scheduler": {"tick_seconds": 1, "freshness_interval": 1, "savestate_interval": 60}
}`

func newTestKernel(t *testing.T) *Kernel {
	t.Helper()
	cfg, err := configschema.Load(json.RawMessage(testConfigJSON))
	require.NoError(t, err)
	s, err := store.New(cfg)
	require.NoError(t, err)
	return New(s, LoadConfig(cfg), bolog.New("test"), telemetry.New())
}

func drain(t *testing.T, k *Kernel, n int) []wire.PDU {
	t.Helper()
	out := make([]wire.PDU, 0, n)
	for i := 0; i < n; i++ {
		select {
		case p := <-k.Broadcasts:
			out = append(out, p)
		default:
			t.Fatalf("expected %d broadcasts, got %d", n, i)
		}
	}
	return out
}

func TestStateFirstObservationEmitsTransitionThenState(t *testing.T) {
	k := newTestKernel(t)

	err := k.applySubmission(wire.NewPDU("STATE", "1000", "svc.a", "0", "ok"))
	require.NoError(t, err)

	pdus := drain(t, k, 2)
	require.Equal(t, "TRANSITION", pdus[0].Type)
	require.Equal(t, "STATE", pdus[1].Type)
	require.Equal(t, []string{"svc.a", "1000", "fresh", "OK", "ok"}, pdus[0].Fields)
	require.Equal(t, pdus[0].Fields, pdus[1].Fields)
}

func TestSampleWindowRolloverBroadcastsClosedWindow(t *testing.T) {
	k := newTestKernel(t)

	require.NoError(t, k.applySubmission(wire.NewPDU("SAMPLE", "1000", "cpu", "10.0")))
	require.NoError(t, k.applySubmission(wire.NewPDU("SAMPLE", "1000", "cpu", "10.0")))
	require.NoError(t, k.applySubmission(wire.NewPDU("SAMPLE", "1001", "cpu", "10.0")))
	require.NoError(t, k.applySubmission(wire.NewPDU("SAMPLE", "1002", "cpu", "11.0")))

	pdus := drain(t, k, 1)
	require.Equal(t, "SAMPLE", pdus[0].Type)
	require.Equal(t, "1000", pdus[0].Field(0))
	require.Equal(t, "cpu", pdus[0].Field(1))
	require.Equal(t, "3", pdus[0].Field(2))
}

func TestFreshnessSweepEmitsTransitionAndState(t *testing.T) {
	k := newTestKernel(t)

	require.NoError(t, k.applySubmission(wire.NewPDU("STATE", "1000", "s", "0", "ok")))
	drain(t, k, 2)

	k.applyTick(Tick{Now: 1003, Seq: 1})

	pdus := drain(t, k, 2)
	require.Equal(t, "TRANSITION", pdus[0].Type)
	require.Equal(t, "STATE", pdus[1].Type)
	require.Equal(t, "stale", pdus[0].Field(2))
	require.Equal(t, "CRITICAL", pdus[0].Field(3))
}

func TestUnconfiguredMetricIsRejected(t *testing.T) {
	k := newTestKernel(t)

	err := k.applySubmission(wire.NewPDU("STATE", "1000", "unconfigured.name", "0", "ok"))
	require.Error(t, err)
}
