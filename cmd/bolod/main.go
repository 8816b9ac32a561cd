// Copyright (C) 2026 The Bolo Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command bolod is the aggregator kernel entrypoint: it loads the
// declarative configuration, builds the metric store, restores the last
// snapshot and keys file, then wires the kernel, scheduler, supervisor and
// the three PDU listeners together.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"net"
	"os"
	"strings"
	"time"

	"github.com/teancom/bolo-sub000/internal/configschema"
	"github.com/teancom/bolo-sub000/internal/kernel"
	"github.com/teancom/bolo-sub000/internal/scheduler"
	"github.com/teancom/bolo-sub000/internal/snapshot"
	"github.com/teancom/bolo-sub000/internal/store"
	"github.com/teancom/bolo-sub000/internal/supervisor"
	"github.com/teancom/bolo-sub000/internal/telemetry"
	"github.com/teancom/bolo-sub000/pkg/bolog"
	"github.com/teancom/bolo-sub000/pkg/nats"
)

var log = bolog.New("bolod")

func main() {
	configPath := flag.String("config", "/etc/bolo/bolo.json", "path to the JSON configuration document")
	logLevel := flag.String("log-level", "info", "debug|info|notice|warn|error|crit")
	flag.Parse()

	if lvl, err := bolog.ParseLevel(*logLevel); err == nil {
		log.WithLevel(lvl)
	}

	raw, err := os.ReadFile(*configPath)
	if err != nil {
		log.Fatalf("reading config %s: %v", *configPath, err)
	}

	cfg, err := configschema.Load(json.RawMessage(raw))
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	s, err := store.New(cfg)
	if err != nil {
		log.Fatalf("building store: %v", err)
	}

	if cfg.Snapshot.Path != "" {
		if err := snapshot.ReadFile(cfg.Snapshot.Path, s); err != nil {
			log.Warnf("restoring snapshot %s: %v", cfg.Snapshot.Path, err)
		}
	}
	if cfg.Keys.Path != "" {
		if err := s.LoadKeys(cfg.Keys.Path); err != nil {
			log.Warnf("restoring keys file %s: %v", cfg.Keys.Path, err)
		}
	}

	tel := telemetry.New()
	k := kernel.New(s, kernel.LoadConfig(cfg), log.Named("kernel"), tel)

	sv, ctx := supervisor.New(log.Named("supervisor"))
	go sv.Run()

	go k.Run(ctx)

	sched, err := scheduler.New(log.Named("scheduler"))
	if err != nil {
		log.Fatalf("building scheduler: %v", err)
	}
	tickSeconds := cfg.Scheduler.TickSeconds
	if tickSeconds <= 0 {
		tickSeconds = 1
	}
	if err := sched.Start(tickSeconds, k.Ticks); err != nil {
		log.Fatalf("starting scheduler: %v", err)
	}

	startListeners(ctx, cfg, k)

	if cfg.Nats != nil {
		startNATS(cfg, k)
	}

	if cfg.Metrics.Addr != "" {
		go func() {
			if err := tel.Serve(ctx, cfg.Metrics.Addr); err != nil {
				log.Warnf("telemetry server: %v", err)
			}
		}()
	}

	<-ctx.Done()

	if err := sched.Shutdown(); err != nil {
		log.Warnf("scheduler shutdown: %v", err)
	}

	// Best-effort final flush on shutdown: an explicit, documented
	// deviation from the ambiguous original (see the configuration
	// schema's savestate cadence and the project's design notes).
	time.Sleep(50 * time.Millisecond)
	if cfg.Snapshot.Path != "" {
		if err := snapshot.WriteFile(cfg.Snapshot.Path, s, cfg.Snapshot.SizeMiB, time.Now().Unix()); err != nil {
			log.Warnf("final snapshot: %v", err)
		}
	}
	if cfg.Keys.Path != "" {
		if err := s.SaveKeys(cfg.Keys.Path); err != nil {
			log.Warnf("final keys flush: %v", err)
		}
	}

	log.Info("bolod: shutdown complete")
}

func startListeners(ctx context.Context, cfg *configschema.Config, k *kernel.Kernel) {
	ingestionLn, err := net.Listen("tcp", parseEndpoint(cfg.Endpoints.Ingestion))
	if err != nil {
		log.Fatalf("listening on ingestion endpoint %s: %v", cfg.Endpoints.Ingestion, err)
	}
	go kernel.ServeIngestion(ctx, ingestionLn, k, log.Named("ingestion"))

	managementLn, err := net.Listen("tcp", parseEndpoint(cfg.Endpoints.Management))
	if err != nil {
		log.Fatalf("listening on management endpoint %s: %v", cfg.Endpoints.Management, err)
	}
	go kernel.ServeManagement(ctx, managementLn, k, log.Named("management"))

	broadcastLn, err := net.Listen("tcp", parseEndpoint(cfg.Endpoints.Broadcast))
	if err != nil {
		log.Fatalf("listening on broadcast endpoint %s: %v", cfg.Endpoints.Broadcast, err)
	}
	go kernel.ServeBroadcast(ctx, broadcastLn, k, log.Named("broadcast"))
}

// parseEndpoint strips a "tcp://" scheme and "*" wildcard host from a
// configured endpoint string, yielding the net.Listen-compatible address.
func parseEndpoint(endpoint string) string {
	addr := strings.TrimPrefix(endpoint, "tcp://")
	addr = strings.Replace(addr, "*", "", 1)
	return addr
}

func startNATS(cfg *configschema.Config, k *kernel.Kernel) {
	raw, err := json.Marshal(cfg.Nats)
	if err != nil {
		log.Warnf("marshaling nats config: %v", err)
		return
	}
	if err := nats.Init(raw); err != nil {
		log.Warnf("loading nats config: %v", err)
		return
	}

	nats.Connect()
	client := nats.GetClient()
	if client == nil {
		log.Warnf("nats ingestion configured but connection failed")
		return
	}

	if err := kernel.ServeNATSIngestion(client, cfg.Nats.Subject, k, log.Named("nats")); err != nil {
		log.Warnf("subscribing to nats subject %s: %v", cfg.Nats.Subject, err)
	}
}
