// Copyright (C) 2026 The Bolo Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kernel

import "github.com/teancom/bolo-sub000/internal/wire"

// applyTick implements the scheduler cadence from §4.7: close any window
// whose end has passed, run the freshness sweep every FreshnessInterval
// ticks, and persist every SavestateInterval ticks.
func (k *Kernel) applyTick(t Tick) {
	k.lastTick = t.Now

	k.closeExpiredWindows(t.Now)

	if k.cfg.FreshnessInterval > 0 && t.Seq%k.cfg.FreshnessInterval == 0 {
		k.sweepFreshness(t.Now)
	}

	if k.cfg.SavestateInterval > 0 && t.Seq%k.cfg.SavestateInterval == 0 {
		if err := k.flush(); err != nil {
			k.log.Errorf("kernel: savestate flush: %v", err)
		}
	}

	k.reportStoreSize()
}

// reportStoreSize refreshes the store_entries gauge for every metric kind.
// Updating once per tick
// rather than on every individual mutation keeps the hot ingestion path
// free of a Set call while still keeping /metrics current to within one
// tick interval.
func (k *Kernel) reportStoreSize() {
	k.tel.StoreSize.WithLabelValues("state").Set(float64(len(k.store.States)))
	k.tel.StoreSize.WithLabelValues("counter").Set(float64(len(k.store.Counters)))
	k.tel.StoreSize.WithLabelValues("sample").Set(float64(len(k.store.Samples)))
	k.tel.StoreSize.WithLabelValues("rate").Set(float64(len(k.store.Rates)))
	k.tel.StoreSize.WithLabelValues("event").Set(float64(k.store.Events.Len()))
	k.tel.StoreSize.WithLabelValues("key").Set(float64(len(k.store.Keys)))
}

func (k *Kernel) closeExpiredWindows(now int64) {
	for _, c := range k.store.Counters {
		if c.Window == nil || c.Window.End(c.LastSeen) > now {
			continue
		}
		k.emit(wire.CounterBroadcast(c.Window.Start(c.LastSeen), c.Name, c.Value))
		c.Reset(now)
	}

	for _, sa := range k.store.Samples {
		if sa.Window == nil || sa.N == 0 || sa.Window.End(sa.LastSeen) > now {
			continue
		}
		k.emit(wire.SampleBroadcast(sa.Window.Start(sa.LastSeen), sa.Name, sa.N, sa.Min, sa.Max, sa.Sum, sa.Mean, sa.Var))
		sa.Reset(now)
	}

	for _, r := range k.store.Rates {
		if r.Window == nil || !r.HasData() || r.Window.End(r.LastSeen) > now {
			continue
		}
		k.emit(wire.RateBroadcast(r.Window.Start(r.LastSeen), r.Name, r.Window.Seconds, r.Calc(r.Window.Seconds)))
		r.Reset()
	}
}

func (k *Kernel) sweepFreshness(now int64) {
	for _, st := range k.store.States {
		trans, ok := st.SweepStale(now)
		if !ok {
			continue
		}

		fresh := !st.Stale
		if trans.Changed {
			k.emit(wire.TransitionBroadcast(st.Name, st.LastSeen, fresh, st.Status.String(), st.Summary))
		}
		k.emit(wire.StateBroadcast(st.Name, st.LastSeen, fresh, st.Status.String(), st.Summary))
	}
}
