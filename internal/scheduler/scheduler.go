// Copyright (C) 2026 The Bolo Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package scheduler implements the aggregator's scheduler actor (§4.7 of
// the specification): a single timer publishing tick events at a
// configured period onto the kernel's Ticks channel. Modeled on the
// teacher's own gocron/v2-based task manager.
package scheduler

import (
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/teancom/bolo-sub000/internal/kernel"
	"github.com/teancom/bolo-sub000/pkg/bolog"
)

// Scheduler owns the gocron.Scheduler driving the kernel's tick channel.
type Scheduler struct {
	s    gocron.Scheduler
	log  *bolog.Logger
	seq  int64
}

// New constructs a Scheduler. Call Start to begin publishing ticks.
func New(log *bolog.Logger) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	return &Scheduler{s: s, log: log}, nil
}

// Start registers the tick job at the given period and starts the
// underlying gocron scheduler. Each tick is timestamped with the wall
// clock at fire time and carries a monotonically increasing sequence
// number the kernel uses to gate freshness-sweep and savestate cadences.
func (sc *Scheduler) Start(periodSeconds int64, ticks chan<- kernel.Tick) error {
	if periodSeconds <= 0 {
		periodSeconds = 1
	}

	_, err := sc.s.NewJob(
		gocron.DurationJob(time.Duration(periodSeconds)*time.Second),
		gocron.NewTask(func() {
			sc.seq++
			select {
			case ticks <- kernel.Tick{Now: time.Now().Unix(), Seq: sc.seq}:
			default:
				sc.log.Warnf("scheduler: tick channel full, dropping tick %d", sc.seq)
			}
		}),
	)
	if err != nil {
		return err
	}

	sc.s.Start()
	return nil
}

// Shutdown stops the underlying gocron scheduler and waits for any
// in-flight job to finish.
func (sc *Scheduler) Shutdown() error {
	return sc.s.Shutdown()
}
