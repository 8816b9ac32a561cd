// Copyright (C) 2026 The Bolo Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package telemetry exposes the kernel's own self-telemetry as Prometheus
// metrics, served over a small dedicated HTTP listener (§4.5/§6 of the
// specification's domain-stack additions). This is a process-local
// complement to the SAMPLE/COUNTER self-telemetry PDUs the subscriber
// harness emits back into the aggregator's own ingestion endpoint.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Telemetry holds the kernel's Prometheus collectors.
type Telemetry struct {
	Submissions *prometheus.CounterVec
	Broadcasts  *prometheus.CounterVec
	Errors      *prometheus.CounterVec
	ManagementRequests *prometheus.CounterVec
	StoreSize   *prometheus.GaugeVec

	registry *prometheus.Registry
	srv      *http.Server
}

// New constructs and registers every collector against a dedicated
// registry (not the global DefaultRegisterer, so embedding this package
// twice in a test process never panics on duplicate registration).
func New() *Telemetry {
	reg := prometheus.NewRegistry()

	t := &Telemetry{
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bolo",
			Name:      "submissions_total",
			Help:      "Ingestion PDUs accepted, by PDU type.",
		}, []string{"type"}),
		Broadcasts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bolo",
			Name:      "broadcasts_total",
			Help:      "Broadcast PDUs emitted, by PDU type.",
		}, []string{"type"}),
		Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bolo",
			Name:      "errors_total",
			Help:      "Malformed or rejected PDUs, by PDU type.",
		}, []string{"type"}),
		ManagementRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bolo",
			Name:      "management_requests_total",
			Help:      "Management requests handled, by request type.",
		}, []string{"type"}),
		StoreSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "bolo",
			Name:      "store_entries",
			Help:      "Current entry count in the metric store, by kind.",
		}, []string{"kind"}),
		registry: reg,
	}

	reg.MustRegister(t.Submissions, t.Broadcasts, t.Errors, t.ManagementRequests, t.StoreSize)
	return t
}

// Serve starts the /metrics HTTP listener on addr and blocks until ctx is
// canceled, then shuts the server down gracefully.
func (t *Telemetry) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(t.registry, promhttp.HandlerOpts{}))

	t.srv = &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		errCh <- t.srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return t.srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
