// Copyright (C) 2026 The Bolo Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package store implements the aggregator's in-memory metric store: the
// type/window tables, the regex/literal match-rule lists, and the
// lookup-or-create maps for states, counters, samples, rates and events,
// plus the flat key/value fact store.
//
// The store is not internally synchronized: per §5 of the specification
// the kernel is a single-threaded event reactor and is the only goroutine
// that ever touches a Store, so no locks are needed on the maps here.
package store

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/teancom/bolo-sub000/internal/configschema"
	"github.com/teancom/bolo-sub000/internal/model"
)

// ErrNotConfigured is returned by the Find* methods when a submitted name
// matches no literal or regex rule for that metric kind. Per §4.1,
// producers' submissions for non-configured names are rejected, never
// silently materialized.
var ErrNotConfigured = errors.New("store: metric not configured")

// ErrIgnored is returned when a name matches a rule flagged ignore: true.
var ErrIgnored = errors.New("store: metric ignored by configuration")

// Store is the aggregator's single in-memory metric store.
type Store struct {
	Types   map[string]*model.Type
	Windows map[string]*model.Window

	stateRules   []*rule
	counterRules []*rule
	sampleRules  []*rule
	rateRules    []*rule

	States   map[string]*model.State
	Counters map[string]*model.Counter
	Samples  map[string]*model.Sample
	Rates    map[string]*model.Rate

	Events *model.EventRing
	Keys   map[string]string
}

// New builds a Store from a validated configuration document: the type and
// window tables are built first (immutable afterwards), then the
// literal/regex match rule lists for each metric kind, binding unqualified
// rules to the configured defaults.
func New(cfg *configschema.Config) (*Store, error) {
	s := &Store{
		Types:    make(map[string]*model.Type, len(cfg.Types)),
		Windows:  make(map[string]*model.Window, len(cfg.Windows)),
		States:   make(map[string]*model.State),
		Counters: make(map[string]*model.Counter),
		Samples:  make(map[string]*model.Sample),
		Rates:    make(map[string]*model.Rate),
		Keys:     make(map[string]string),
	}

	for _, td := range cfg.Types {
		status, err := parseStatus(td.StaleStatus)
		if err != nil {
			return nil, fmt.Errorf("store: type %q: %w", td.Name, err)
		}
		summary := td.StaleSummary
		if summary == "" {
			summary = fmt.Sprintf("stale: no update in %ds", td.FreshnessSeconds)
		}
		s.Types[td.Name] = &model.Type{
			Name:             td.Name,
			FreshnessSeconds: td.FreshnessSeconds,
			StaleStatus:      status,
			StaleSummary:     summary,
		}
	}

	for _, wd := range cfg.Windows {
		s.Windows[wd.Name] = &model.Window{Name: wd.Name, Seconds: wd.Seconds}
	}

	var defaultType *model.Type
	if cfg.Defaults.Type != "" {
		defaultType = s.Types[cfg.Defaults.Type]
		if defaultType == nil {
			return nil, fmt.Errorf("store: default type %q not defined", cfg.Defaults.Type)
		}
	}

	var defaultWindow *model.Window
	if cfg.Defaults.Window != "" {
		defaultWindow = s.Windows[cfg.Defaults.Window]
		if defaultWindow == nil {
			return nil, fmt.Errorf("store: default window %q not defined", cfg.Defaults.Window)
		}
	}

	var err error
	if s.stateRules, err = compileStateRules(cfg.States, s.Types, defaultType); err != nil {
		return nil, err
	}
	if s.counterRules, err = compileWindowRules(cfg.Counters, s.Windows, defaultWindow, "counter"); err != nil {
		return nil, err
	}
	if s.sampleRules, err = compileWindowRules(cfg.Samples, s.Windows, defaultWindow, "sample"); err != nil {
		return nil, err
	}
	if s.rateRules, err = compileWindowRules(cfg.Rates, s.Windows, defaultWindow, "rate"); err != nil {
		return nil, err
	}

	policy := model.EvictByCount
	if cfg.Events.Unit == "seconds" {
		policy = model.EvictByAge
	}
	n := cfg.Events.N
	if n == 0 {
		n = 1024
	}
	s.Events = model.NewEventRing(policy, n)

	return s, nil
}

func parseStatus(s string) (model.Status, error) {
	switch s {
	case "OK":
		return model.StatusOK, nil
	case "WARNING":
		return model.StatusWarning, nil
	case "CRITICAL":
		return model.StatusCritical, nil
	case "UNKNOWN":
		return model.StatusUnknown, nil
	default:
		return model.StatusUnknown, fmt.Errorf("unknown stale_status %q", s)
	}
}

func compileStateRules(defs []configschema.MatchDef, types map[string]*model.Type, def *model.Type) ([]*rule, error) {
	out := make([]*rule, 0, len(defs))
	for _, d := range defs {
		r := &rule{literal: d.Pattern, ignore: d.Ignore}
		if d.Regex {
			pat, err := regexp.Compile(d.Pattern)
			if err != nil {
				return nil, fmt.Errorf("store: compiling state pattern %q: %w", d.Pattern, err)
			}
			r.pattern = pat
			r.literal = ""
		}
		if !d.Ignore {
			typ := def
			if d.Type != "" {
				typ = types[d.Type]
				if typ == nil {
					return nil, fmt.Errorf("store: state rule %q references undefined type %q", d.Pattern, d.Type)
				}
			}
			if typ == nil {
				return nil, fmt.Errorf("store: state rule %q has no type and no default type configured", d.Pattern)
			}
			r.typ = typ
		}
		out = append(out, r)
	}
	return out, nil
}

func compileWindowRules(defs []configschema.MatchDef, windows map[string]*model.Window, def *model.Window, kind string) ([]*rule, error) {
	out := make([]*rule, 0, len(defs))
	for _, d := range defs {
		r := &rule{literal: d.Pattern, ignore: d.Ignore}
		if d.Regex {
			pat, err := regexp.Compile(d.Pattern)
			if err != nil {
				return nil, fmt.Errorf("store: compiling %s pattern %q: %w", kind, d.Pattern, err)
			}
			r.pattern = pat
			r.literal = ""
		}
		if !d.Ignore {
			win := def
			if d.Window != "" {
				win = windows[d.Window]
				if win == nil {
					return nil, fmt.Errorf("store: %s rule %q references undefined window %q", kind, d.Pattern, d.Window)
				}
			}
			if win == nil {
				return nil, fmt.Errorf("store: %s rule %q has no window and no default window configured", kind, d.Pattern)
			}
			r.window = win
		}
		out = append(out, r)
	}
	return out, nil
}

// FindOrCreateState returns the named state, materializing it from the
// first matching state rule if it doesn't exist yet.
func (s *Store) FindOrCreateState(name string) (*model.State, error) {
	if st, ok := s.States[name]; ok {
		return st, nil
	}

	m := firstMatch(s.stateRules, name)
	if m == nil {
		return nil, ErrNotConfigured
	}
	if m.ignore {
		return nil, ErrIgnored
	}

	st := model.NewState(name, m.typ)
	s.States[name] = st
	return st, nil
}

// FindOrCreateCounter returns the named counter, materializing it (bound
// to the current window for ts) from the first matching counter rule if
// it doesn't exist yet.
func (s *Store) FindOrCreateCounter(name string, ts int64) (*model.Counter, error) {
	if c, ok := s.Counters[name]; ok {
		return c, nil
	}

	m := firstMatch(s.counterRules, name)
	if m == nil {
		return nil, ErrNotConfigured
	}
	if m.ignore {
		return nil, ErrIgnored
	}

	c := model.NewCounter(name, m.window, ts)
	s.Counters[name] = c
	return c, nil
}

// FindOrCreateSample returns the named sample, materializing it if needed.
func (s *Store) FindOrCreateSample(name string, ts int64) (*model.Sample, error) {
	if sa, ok := s.Samples[name]; ok {
		return sa, nil
	}

	m := firstMatch(s.sampleRules, name)
	if m == nil {
		return nil, ErrNotConfigured
	}
	if m.ignore {
		return nil, ErrIgnored
	}

	sa := model.NewSample(name, m.window, ts)
	s.Samples[name] = sa
	return sa, nil
}

// FindOrCreateRate returns the named rate, materializing it if needed.
func (s *Store) FindOrCreateRate(name string) (*model.Rate, error) {
	if r, ok := s.Rates[name]; ok {
		return r, nil
	}

	m := firstMatch(s.rateRules, name)
	if m == nil {
		return nil, ErrNotConfigured
	}
	if m.ignore {
		return nil, ErrIgnored
	}

	r := model.NewRate(name, m.window)
	s.Rates[name] = r
	return r, nil
}

// LookupState returns the named state without materializing it, for
// point-lookup management queries.
func (s *Store) LookupState(name string) (*model.State, bool) {
	st, ok := s.States[name]
	return st, ok
}
