// Copyright (C) 2026 The Bolo Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package subscriber

import (
	"bufio"
	"context"
	"net"
	"time"

	"github.com/teancom/bolo-sub000/internal/supervisor"
	"github.com/teancom/bolo-sub000/internal/wire"
	"github.com/teancom/bolo-sub000/pkg/bolog"
)

// Harness bundles the monitor/scheduler/supervisor triad a relay process
// embeds: it owns a Monitor, periodically flushes it as submission PDUs
// dialed to the aggregator's ingestion endpoint, and shares the
// supervisor's shutdown context with its caller.
type Harness struct {
	Monitor    *Monitor
	Supervisor *supervisor.Supervisor
	Ctx        context.Context

	ingestionAddr string
	namePrefix    string
	log           *bolog.Logger
}

// NewHarness constructs a Harness dialing ingestionAddr on every flush
// (at the period passed to Run) to submit self-telemetry, tagging every metric name with namePrefix
// (conventionally the relay's own name, e.g. "relay.rrd.").
func NewHarness(ingestionAddr, namePrefix string, log *bolog.Logger) *Harness {
	sv, ctx := supervisor.New(log)
	return &Harness{
		Monitor:       NewMonitor(),
		Supervisor:    sv,
		Ctx:           ctx,
		ingestionAddr: ingestionAddr,
		namePrefix:    namePrefix,
		log:           log,
	}
}

// Run starts the supervisor's signal handling in the background and
// blocks flushing self-telemetry every flushPeriod until shutdown.
func (h *Harness) Run(flushPeriod time.Duration) {
	go h.Supervisor.Run()

	ticker := time.NewTicker(flushPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-h.Ctx.Done():
			return
		case now := <-ticker.C:
			h.flush(now.Unix())
		}
	}
}

func (h *Harness) flush(ts int64) {
	pdus := h.Monitor.Flush(ts, h.namePrefix)
	if len(pdus) == 0 {
		return
	}

	conn, err := net.DialTimeout("tcp", h.ingestionAddr, 2*time.Second)
	if err != nil {
		h.log.Warnf("subscriber: dialing ingestion endpoint %s: %v", h.ingestionAddr, err)
		return
	}
	defer conn.Close()

	w := bufio.NewWriter(conn)
	for _, p := range pdus {
		if err := wire.Encode(w, p); err != nil {
			h.log.Warnf("subscriber: encoding self-telemetry PDU: %v", err)
			return
		}
	}
	if err := w.Flush(); err != nil {
		h.log.Warnf("subscriber: flushing self-telemetry: %v", err)
	}
}
