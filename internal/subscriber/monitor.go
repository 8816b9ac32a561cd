// Copyright (C) 2026 The Bolo Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package subscriber provides the reusable actor scaffolding an external
// relay process (RRD/SQL/Influx/log/chat) embeds per §4.9 of the
// specification: a self-telemetry monitor, paired with the same
// supervisor actor the kernel uses and a periodic flush ticker, that batches
// counted and sampled internal events into outbound COUNTER/SAMPLE PDUs
// submitted back to the aggregator's own ingestion endpoint.
package subscriber

import (
	"math/rand"
	"sort"
	"strconv"
	"sync"

	"github.com/teancom/bolo-sub000/internal/wire"
)

// reservoirSize bounds how many observations a Monitor retains per metric
// per flush interval before falling back to reservoir sampling, per §4.9.
const reservoirSize = 1024

// Monitor aggregates self-telemetry for a relay process: named counters
// (monotone within an interval) and named samples (reservoir-sampled,
// median-reduced on flush).
type Monitor struct {
	mu       sync.Mutex
	counters map[string]uint64
	samples  map[string]*reservoir
	rng      *rand.Rand
}

// NewMonitor returns an empty Monitor.
func NewMonitor() *Monitor {
	return &Monitor{
		counters: make(map[string]uint64),
		samples:  make(map[string]*reservoir),
		rng:      rand.New(rand.NewSource(1)),
	}
}

// Count increments a named counter by delta.
func (m *Monitor) Count(name string, delta uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[name] += delta
}

// Sample records an observation for a named metric, subject to reservoir
// sampling once the buffer reaches reservoirSize.
func (m *Monitor) Sample(name string, v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.samples[name]
	if !ok {
		r = &reservoir{}
		m.samples[name] = r
	}
	r.offer(v, m.rng)
}

// reservoir implements classic reservoir sampling up to reservoirSize
// retained values, tracking how many observations it has seen in total so
// later offers displace earlier ones with the correct probability.
type reservoir struct {
	values []float64
	seen   int64
}

func (r *reservoir) offer(v float64, rng *rand.Rand) {
	r.seen++
	if len(r.values) < reservoirSize {
		r.values = append(r.values, v)
		return
	}
	j := rng.Int63n(r.seen)
	if j < reservoirSize {
		r.values[j] = v
	}
}

func (r *reservoir) median() float64 {
	if len(r.values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), r.values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// Flush drains every accumulated counter and sample into submission PDUs
// (COUNTER for counters, SAMPLE carrying the reservoir's median as its
// sole value) addressed to the aggregator's ingestion endpoint, and resets
// its internal state for the next interval.
func (m *Monitor) Flush(ts int64, namePrefix string) []wire.PDU {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]wire.PDU, 0, len(m.counters)+len(m.samples))

	tsStr := strconv.FormatInt(ts, 10)

	for name, v := range m.counters {
		out = append(out, wire.NewPDU("COUNTER", tsStr, namePrefix+name, strconv.FormatUint(v, 10)))
	}
	for name, r := range m.samples {
		if r.seen == 0 {
			continue
		}
		out = append(out, wire.NewPDU("SAMPLE", tsStr, namePrefix+name, strconv.FormatFloat(r.median(), 'e', -1, 64)))
	}

	m.counters = make(map[string]uint64)
	m.samples = make(map[string]*reservoir)

	return out
}
