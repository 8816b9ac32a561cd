// Copyright (C) 2026 The Bolo Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package snapshot

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/teancom/bolo-sub000/internal/configschema"
	"github.com/teancom/bolo-sub000/internal/model"
	"github.com/teancom/bolo-sub000/internal/store"
)

const testConfigJSON = `{
  "types": [{"name": "svc", "freshness_seconds": 30, "stale_status": "CRITICAL"}],
  "windows": [{"name": "w10", "seconds": 10}],
  "defaults": {"type": "svc", "window": "w10"},
  "states": [{"pattern": "host.alive"}],
  "counters": [{"pattern": "req.count"}],
  "samples": [{"pattern": "cpu.load"}],
  "rates": [{"pattern": "net.rx"}],
  "events": {"n": 10, "unit": "count"},
  "endpoints": {"ingestion": "tcp://*:1", "management": "tcp://*:2", "broadcast": "tcp://*:3"}
}`

func testStore(t *testing.T) *store.Store {
	t.Helper()
	cfg, err := configschema.Load(json.RawMessage(testConfigJSON))
	require.NoError(t, err)
	s, err := store.New(cfg)
	require.NoError(t, err)
	return s
}

func TestWriteReadFileRoundTrip(t *testing.T) {
	s := testStore(t)

	st, err := s.FindOrCreateState("host.alive")
	require.NoError(t, err)
	st.Observe(1000, model.StatusOK, "ok")

	c, err := s.FindOrCreateCounter("req.count", 1000)
	require.NoError(t, err)
	c.Add(1000, 42)

	sa, err := s.FindOrCreateSample("cpu.load", 1000)
	require.NoError(t, err)
	sa.Update(1000, 5.0)
	sa.Update(1001, 7.0)

	r, err := s.FindOrCreateRate("net.rx")
	require.NoError(t, err)
	r.Update(1000, 100)
	r.Update(1010, 220)

	s.Events.Append(model.Event{Timestamp: 1000, Name: "deploy", Extra: "v1.2.3"}, 1000)

	path := filepath.Join(t.TempDir(), "snapshot.bin")
	require.NoError(t, WriteFile(path, s, 0, 1000))

	restored := testStore(t)
	require.NoError(t, ReadFile(path, restored))

	rst, ok := restored.LookupState("host.alive")
	require.True(t, ok)
	require.Equal(t, model.StatusOK, rst.Status)
	require.Equal(t, "ok", rst.Summary)

	rc, err := restored.FindOrCreateCounter("req.count", 1000)
	require.NoError(t, err)
	require.Equal(t, uint64(42), rc.Value)

	rsa, err := restored.FindOrCreateSample("cpu.load", 1000)
	require.NoError(t, err)
	require.Equal(t, uint64(2), rsa.N)
	require.Equal(t, 7.0, rsa.Max)

	rr, err := restored.FindOrCreateRate("net.rx")
	require.NoError(t, err)
	require.True(t, rr.HasData(), "restored rate must report HasData true")
	require.Equal(t, uint64(100), rr.First)
	require.Equal(t, uint64(220), rr.Last)

	evs := restored.Events.Since(0)
	require.Len(t, evs, 1)
	require.Equal(t, "deploy", evs[0].Name)
}

// TestRestoredRateRolloverNotClobberedByNextUpdate pins the bug the review
// caught: without Restore marking hasFirst, the next Update after a
// restore would silently overwrite FirstSeen/First instead of extending
// the window with Last, discarding the snapshot's state.
func TestRestoredRateRolloverNotClobberedByNextUpdate(t *testing.T) {
	s := testStore(t)
	r, err := s.FindOrCreateRate("net.rx")
	require.NoError(t, err)
	r.Update(1000, 100)
	r.Update(1010, 220)

	path := filepath.Join(t.TempDir(), "snapshot.bin")
	require.NoError(t, WriteFile(path, s, 0, 1010))

	restored := testStore(t)
	require.NoError(t, ReadFile(path, restored))

	rr, err := restored.FindOrCreateRate("net.rx")
	require.NoError(t, err)

	rr.Update(1020, 300)
	require.Equal(t, uint64(100), rr.First, "restored First must survive a subsequent Update")
	require.Equal(t, int64(1000), rr.FirstSeen)
	require.Equal(t, uint64(300), rr.Last)
}
