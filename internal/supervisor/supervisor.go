// Copyright (C) 2026 The Bolo Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package supervisor implements the aggregator's supervisor actor (§4.8 of
// the specification): signal handling and fan-out of a single terminate
// signal to every other actor via context cancellation (the in-process
// stand-in for the original's terminate PDU on a supervisor control
// address — every actor here already takes a context.Context and halts at
// its next select/recv boundary on cancellation, which is the same
// contract).
package supervisor

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/teancom/bolo-sub000/pkg/bolog"
	"github.com/teancom/bolo-sub000/pkg/runtimeenv"
)

// Supervisor owns the process's signal handling.
type Supervisor struct {
	log    *bolog.Logger
	cancel context.CancelFunc
}

// New returns a Supervisor and the context every other actor should run
// under; canceling that context is how shutdown propagates.
func New(log *bolog.Logger) (*Supervisor, context.Context) {
	ctx, cancel := context.WithCancel(context.Background())
	return &Supervisor{log: log, cancel: cancel}, ctx
}

// Run blocks until SIGTERM or SIGINT arrives, then cancels the context
// returned by New and reports readiness to systemd, if applicable, both
// at startup and at the start of shutdown.
func (sv *Supervisor) Run() {
	runtimeenv.SystemdNotify(true, "running")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigCh
	sv.log.Infof("supervisor: received %s, terminating", sig)
	runtimeenv.SystemdNotify(false, "stopping")
	sv.cancel()
}

// Terminate cancels the shared context directly, for callers (tests, or a
// management SHUTDOWN-equivalent) that need to trigger shutdown without an
// OS signal.
func (sv *Supervisor) Terminate() {
	sv.cancel()
}
