// Copyright (C) 2026 The Bolo Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kernel

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/teancom/bolo-sub000/internal/snapshot"
	"github.com/teancom/bolo-sub000/internal/wire"
)

func (k *Kernel) applyRequest(p wire.PDU) wire.PDU {
	switch p.Type {
	case "STATE":
		return k.handleStateQuery(p)
	case "DUMP":
		return k.handleDump(p)
	case "GET.KEYS":
		return k.handleGetKeys(p)
	case "DEL.KEYS":
		return k.handleDelKeys(p)
	case "SEARCH.KEYS":
		return k.handleSearchKeys(p)
	case "GET.EVENTS":
		return k.handleGetEvents(p)
	case "SAVESTATE":
		return k.handleSavestate(p)
	default:
		return wire.ErrorPDU(fmt.Sprintf("unknown management PDU type %q", p.Type))
	}
}

func (k *Kernel) handleStateQuery(p wire.PDU) wire.PDU {
	name, err := wire.ParseStateQuery(p)
	if err != nil {
		return wire.ErrorPDU(err.Error())
	}
	st, ok := k.store.LookupState(name)
	if !ok {
		return wire.ErrorPDU(fmt.Sprintf("State %q Not Found", name))
	}
	return wire.StateReply(st.Name, st.LastSeen, !st.Stale, st.Status.String(), st.Summary)
}

type dumpState struct {
	Name     string `yaml:"name"`
	LastSeen int64  `yaml:"last_seen"`
	Stale    bool   `yaml:"stale"`
	Status   string `yaml:"status"`
	Summary  string `yaml:"summary"`
}

func (k *Kernel) handleDump(p wire.PDU) wire.PDU {
	states := make([]dumpState, 0, len(k.store.States))
	for _, st := range k.store.States {
		states = append(states, dumpState{
			Name: st.Name, LastSeen: st.LastSeen, Stale: st.Stale,
			Status: st.Status.String(), Summary: st.Summary,
		})
	}

	blob, err := yaml.Marshal(states)
	if err != nil {
		return wire.ErrorPDU(fmt.Sprintf("dumping states: %v", err))
	}
	return wire.DumpReply(string(blob))
}

func (k *Kernel) handleGetKeys(p wire.PDU) wire.PDU {
	keys, err := wire.ParseGetKeysQuery(p)
	if err != nil {
		return wire.ErrorPDU(err.Error())
	}
	pairs := make(map[string]string, len(keys))
	for _, key := range keys {
		if v, ok := k.store.GetKey(key); ok {
			pairs[key] = v
		}
	}
	return wire.ValuesReply(pairs, keys)
}

func (k *Kernel) handleDelKeys(p wire.PDU) wire.PDU {
	keys, err := wire.ParseDelKeysQuery(p)
	if err != nil {
		return wire.ErrorPDU(err.Error())
	}
	for _, key := range keys {
		k.store.DeleteKey(key)
	}
	return wire.OKReply()
}

func (k *Kernel) handleSearchKeys(p wire.PDU) wire.PDU {
	pattern, err := wire.ParseSearchKeysQuery(p)
	if err != nil {
		return wire.ErrorPDU(err.Error())
	}
	keys, err := k.store.SearchKeys(pattern)
	if err != nil {
		return wire.ErrorPDU(err.Error())
	}
	return wire.KeysReply(keys)
}

type dumpEvent struct {
	Timestamp int64  `yaml:"timestamp"`
	Name      string `yaml:"name"`
	Extra     string `yaml:"extra"`
}

func (k *Kernel) handleGetEvents(p wire.PDU) wire.PDU {
	since, err := wire.ParseGetEventsQuery(p)
	if err != nil {
		return wire.ErrorPDU(err.Error())
	}

	evs := k.store.Events.Since(since)
	out := make([]dumpEvent, 0, len(evs))
	for _, ev := range evs {
		out = append(out, dumpEvent{Timestamp: ev.Timestamp, Name: ev.Name, Extra: ev.Extra})
	}

	blob, err := yaml.Marshal(out)
	if err != nil {
		return wire.ErrorPDU(fmt.Sprintf("dumping events: %v", err))
	}
	return wire.EventsReply(string(blob))
}

func (k *Kernel) handleSavestate(p wire.PDU) wire.PDU {
	if err := k.flush(); err != nil {
		return wire.ErrorPDU(err.Error())
	}
	return wire.OKReply()
}

// flush writes the binary snapshot and the keys file, the two persistence
// actions SAVESTATE and the scheduler's savestate cadence both trigger.
func (k *Kernel) flush() error {
	if k.cfg.SnapshotPath != "" {
		if err := snapshot.WriteFile(k.cfg.SnapshotPath, k.store, k.cfg.SnapshotSizeMiB, k.lastTick); err != nil {
			return fmt.Errorf("writing snapshot: %w", err)
		}
	}
	if k.cfg.KeysPath != "" {
		if err := k.store.SaveKeys(k.cfg.KeysPath); err != nil {
			return fmt.Errorf("writing keys file: %w", err)
		}
	}
	return nil
}
