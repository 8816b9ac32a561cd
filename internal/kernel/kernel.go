// Copyright (C) 2026 The Bolo Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package kernel implements the aggregator's central event reactor: a
// single goroutine that owns the metric store exclusively, applies
// ingestion submissions, answers management requests, drives window
// rollover and the freshness sweep on scheduler ticks, and emits broadcast
// PDUs. Per §5 of the specification the store needs no locking because
// this goroutine is its only writer; every other actor (listener,
// controller, scheduler, supervisor) talks to it only through the channels
// below.
package kernel

import (
	"context"

	"github.com/teancom/bolo-sub000/internal/configschema"
	"github.com/teancom/bolo-sub000/internal/store"
	"github.com/teancom/bolo-sub000/internal/telemetry"
	"github.com/teancom/bolo-sub000/internal/wire"
	"github.com/teancom/bolo-sub000/pkg/bolog"
)

// Submission is one accepted ingestion PDU routed to the kernel. ErrCh, if
// non-nil, receives exactly one error (nil on success). The TCP and NATS
// ingestion paths leave it nil: they send no reply, and a rejected
// submission is only logged and counted by Run.
type Submission struct {
	PDU   wire.PDU
	ErrCh chan error
}

// Request is one management PDU awaiting a reply.
type Request struct {
	PDU   wire.PDU
	Reply chan wire.PDU
}

// Tick is a scheduler heartbeat. Seq counts ticks since start, used to
// gate the freshness-sweep and savestate cadences.
type Tick struct {
	Now int64
	Seq int64
}

// Config bundles the cadence and persistence settings the kernel consults
// on each tick; everything else comes from the already-loaded Store.
type Config struct {
	FreshnessInterval int64
	SavestateInterval int64
	SnapshotPath      string
	SnapshotSizeMiB   int64
	KeysPath          string
}

// Kernel is the reactor. Construct with New and run with Run in its own
// goroutine.
type Kernel struct {
	store *store.Store
	cfg   Config
	log   *bolog.Logger
	tel   *telemetry.Telemetry

	Submissions chan Submission
	Requests    chan Request
	Ticks       chan Tick
	Broadcasts  chan wire.PDU

	lastTick int64
}

// New constructs a Kernel over an already-built Store.
func New(s *store.Store, cfg Config, log *bolog.Logger, tel *telemetry.Telemetry) *Kernel {
	return &Kernel{
		store:       s,
		cfg:         cfg,
		log:         log,
		tel:         tel,
		Submissions: make(chan Submission, 256),
		Requests:    make(chan Request, 64),
		Ticks:       make(chan Tick, 4),
		Broadcasts:  make(chan wire.PDU, 256),
	}
}

// LoadConfig builds the kernel's Config view from a validated
// configuration document.
func LoadConfig(cfg *configschema.Config) Config {
	return Config{
		FreshnessInterval: cfg.Scheduler.FreshnessInterval,
		SavestateInterval: cfg.Scheduler.SavestateInterval,
		SnapshotPath:      cfg.Snapshot.Path,
		SnapshotSizeMiB:   cfg.Snapshot.SizeMiB,
		KeysPath:          cfg.Keys.Path,
	}
}

// Run is the reactor loop. It returns when ctx is canceled, after one
// final drain of anything already queued on the channels is NOT attempted
// — per §5, a terminate signal halts the reactor at its next recv
// boundary, and in-flight submissions already accepted are applied but
// queued ones may be dropped.
func (k *Kernel) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			k.log.Info("kernel: terminate received, shutting down")
			return

		case sub := <-k.Submissions:
			err := k.applySubmission(sub.PDU)
			if sub.ErrCh != nil {
				sub.ErrCh <- err
			}
			if err != nil {
				k.tel.Errors.WithLabelValues(sub.PDU.Type).Inc()
				k.log.Debugf("kernel: rejected %s: %v", sub.PDU.Type, err)
			} else {
				k.tel.Submissions.WithLabelValues(sub.PDU.Type).Inc()
			}

		case req := <-k.Requests:
			reply := k.applyRequest(req.PDU)
			k.tel.ManagementRequests.WithLabelValues(req.PDU.Type).Inc()
			req.Reply <- reply

		case tick := <-k.Ticks:
			k.applyTick(tick)
		}
	}
}

func (k *Kernel) emit(p wire.PDU) {
	select {
	case k.Broadcasts <- p:
		k.tel.Broadcasts.WithLabelValues(p.Type).Inc()
	default:
		k.log.Warnf("kernel: broadcast channel full, dropping %s", p.Type)
	}
}
