// Copyright (C) 2026 The Bolo Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kernel

import (
	"errors"
	"fmt"

	"github.com/teancom/bolo-sub000/internal/model"
	"github.com/teancom/bolo-sub000/internal/store"
	"github.com/teancom/bolo-sub000/internal/wire"
)

func (k *Kernel) applySubmission(p wire.PDU) error {
	switch p.Type {
	case "STATE":
		return k.applyState(p)
	case "COUNTER":
		return k.applyCounter(p)
	case "SAMPLE":
		return k.applySample(p)
	case "RATE":
		return k.applyRate(p)
	case "EVENT":
		return k.applyEvent(p)
	case "SET.KEYS":
		return k.applySetKeys(p)
	default:
		return fmt.Errorf("kernel: unknown ingestion PDU type %q", p.Type)
	}
}

func rejectLookup(err error, kind, name string) error {
	switch {
	case errors.Is(err, store.ErrNotConfigured):
		return fmt.Errorf("%s %q Not Found", kind, name)
	case errors.Is(err, store.ErrIgnored):
		return fmt.Errorf("%s %q ignored by configuration", kind, name)
	default:
		return err
	}
}

func (k *Kernel) applyState(p wire.PDU) error {
	sub, err := wire.ParseStateSubmission(p)
	if err != nil {
		return err
	}

	st, err := k.store.FindOrCreateState(sub.Name)
	if err != nil {
		return rejectLookup(err, "State", sub.Name)
	}

	status := model.ParseStatus(sub.Code)
	trans := st.Observe(sub.Timestamp, status, sub.Message)

	fresh := !st.Stale
	if trans.Changed {
		k.emit(wire.TransitionBroadcast(st.Name, st.LastSeen, fresh, st.Status.String(), st.Summary))
	}
	k.emit(wire.StateBroadcast(st.Name, st.LastSeen, fresh, st.Status.String(), st.Summary))

	return nil
}

func (k *Kernel) applyCounter(p wire.PDU) error {
	sub, err := wire.ParseCounterSubmission(p)
	if err != nil {
		return err
	}

	c, err := k.store.FindOrCreateCounter(sub.Name, sub.Timestamp)
	if err != nil {
		return rejectLookup(err, "Counter", sub.Name)
	}

	k.rolloverCounterIfNeeded(c, sub.Timestamp)
	c.Add(sub.Timestamp, sub.Delta)
	return nil
}

func (k *Kernel) rolloverCounterIfNeeded(c *model.Counter, ts int64) {
	if c.Window == nil {
		return
	}
	prevStart := c.Window.Start(c.LastSeen)
	curStart := c.Window.Start(ts)
	if curStart == prevStart {
		return
	}
	k.emit(wire.CounterBroadcast(prevStart, c.Name, c.Value))
	c.Reset(ts)
}

func (k *Kernel) applySample(p wire.PDU) error {
	sub, err := wire.ParseSampleSubmission(p)
	if err != nil {
		return err
	}

	sa, err := k.store.FindOrCreateSample(sub.Name, sub.Timestamp)
	if err != nil {
		return rejectLookup(err, "Sample", sub.Name)
	}

	for _, v := range sub.Values {
		k.rolloverSampleIfNeeded(sa, sub.Timestamp)
		sa.Update(sub.Timestamp, v)
	}
	return nil
}

func (k *Kernel) rolloverSampleIfNeeded(sa *model.Sample, ts int64) {
	if sa.Window == nil || sa.N == 0 {
		return
	}
	prevStart := sa.Window.Start(sa.LastSeen)
	curStart := sa.Window.Start(ts)
	if curStart == prevStart {
		return
	}
	k.emit(wire.SampleBroadcast(prevStart, sa.Name, sa.N, sa.Min, sa.Max, sa.Sum, sa.Mean, sa.Var))
	sa.Reset(ts)
}

func (k *Kernel) applyRate(p wire.PDU) error {
	sub, err := wire.ParseRateSubmission(p)
	if err != nil {
		return err
	}

	r, err := k.store.FindOrCreateRate(sub.Name)
	if err != nil {
		return rejectLookup(err, "Rate", sub.Name)
	}

	k.rolloverRateIfNeeded(r, sub.Timestamp)
	r.Update(sub.Timestamp, sub.Value)
	return nil
}

func (k *Kernel) rolloverRateIfNeeded(r *model.Rate, ts int64) {
	if r.Window == nil || !r.HasData() {
		return
	}
	prevStart := r.Window.Start(r.LastSeen)
	curStart := r.Window.Start(ts)
	if curStart == prevStart {
		return
	}
	k.emit(wire.RateBroadcast(prevStart, r.Name, r.Window.Seconds, r.Calc(r.Window.Seconds)))
	r.Reset()
}

func (k *Kernel) applyEvent(p wire.PDU) error {
	sub, err := wire.ParseEventSubmission(p)
	if err != nil {
		return err
	}
	k.emit(wire.EventBroadcast(sub.Timestamp, sub.Name, sub.Extra))
	k.store.Events.Append(model.Event{Timestamp: sub.Timestamp, Name: sub.Name, Extra: sub.Extra}, sub.Timestamp)
	return nil
}

func (k *Kernel) applySetKeys(p wire.PDU) error {
	pairs, err := wire.ParseSetKeysSubmission(p)
	if err != nil {
		return err
	}
	for key, val := range pairs {
		k.store.SetKey(key, val)
	}
	return nil
}
