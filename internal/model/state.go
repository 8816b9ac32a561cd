// Copyright (C) 2026 The Bolo Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package model

// State is a monitored condition with lifecycle. Type is a non-owning
// reference into the immutable type table built at config load.
type State struct {
	Name     string
	Type     *Type
	LastSeen int64
	Expiry   int64
	Status   Status
	Summary  string
	Stale    bool
}

// NewState returns a freshly materialized, never-updated state: status
// pending, not stale, with no expiry until the first observation arrives.
func NewState(name string, typ *Type) *State {
	return &State{
		Name:   name,
		Type:   typ,
		Status: StatusPending,
	}
}

// Transition is the result of applying a submission or a freshness sweep to
// a state: whether staleness or status code changed relative to the prior
// observation, which is exactly the condition under which a TRANSITION
// broadcast (in addition to the unconditional STATE broadcast) is emitted.
type Transition struct {
	Changed    bool
	WasStale   bool
	WasStatus  Status
}

// Observe applies a STATE submission at time ts with the given status code
// and summary. Invariant: expiry = last_seen + type.freshness_seconds.
func (s *State) Observe(ts int64, status Status, summary string) Transition {
	t := Transition{WasStale: s.Stale, WasStatus: s.Status}

	s.LastSeen = ts
	s.Status = status
	s.Summary = summary
	s.Stale = false
	s.Expiry = ts + s.Type.FreshnessSeconds

	t.Changed = t.WasStale != s.Stale || t.WasStatus != s.Status
	return t
}

// SweepStale marks the state stale if its expiry has passed as of now. It
// reports the resulting Transition; Transition.Changed is false when the
// state was already stale with the same status (no TRANSITION broadcast
// follows for an already-stale state whose expiry is merely being rolled
// forward; the STATE broadcast is still emitted for every swept state).
func (s *State) SweepStale(now int64) (Transition, bool) {
	if s.Expiry > now {
		return Transition{}, false
	}

	t := Transition{WasStale: s.Stale, WasStatus: s.Status}

	s.Stale = true
	s.Status = s.Type.StaleStatus
	s.Summary = s.Type.StaleSummary
	s.Expiry = now + s.Type.FreshnessSeconds

	t.Changed = t.WasStale != s.Stale || t.WasStatus != s.Status
	return t, true
}
