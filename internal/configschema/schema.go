// Copyright (C) 2026 The Bolo Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package configschema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TypeDef is the JSON shape of a Type definition (§3 of the spec).
type TypeDef struct {
	Name             string `json:"name"`
	FreshnessSeconds int64  `json:"freshness_seconds"`
	StaleStatus      string `json:"stale_status"`
	StaleSummary     string `json:"stale_summary,omitempty"`
}

// WindowDef is the JSON shape of a Window definition.
type WindowDef struct {
	Name    string `json:"name"`
	Seconds int64  `json:"seconds"`
}

// MatchDef is a regex-or-literal match rule binding a metric name (or
// name pattern) to a type or window, per §4.1's "find-or-create on first
// match, in declaration order" semantics.
type MatchDef struct {
	// Pattern is either a literal metric name or, when Regex is true, a
	// compiled-on-load regular expression.
	Pattern string `json:"pattern"`
	Regex   bool   `json:"regex,omitempty"`
	// Type names the Type this rule binds (state rules only).
	Type string `json:"type,omitempty"`
	// Window names the Window this rule binds (counter/sample/rate rules).
	Window string `json:"window,omitempty"`
	// Ignore marks matching names as explicitly uncollected.
	Ignore bool `json:"ignore,omitempty"`
}

// EventsDef configures the event ring's eviction policy: Unit is either
// "count" (N = max retained events) or "seconds" (N = max age).
type EventsDef struct {
	N    int64  `json:"n"`
	Unit string `json:"unit"`
}

// EndpointsDef configures the three wire listeners.
type EndpointsDef struct {
	Ingestion  string `json:"ingestion"`
	Management string `json:"management"`
	Broadcast  string `json:"broadcast"`
}

// SnapshotDef configures the binary snapshot writer.
type SnapshotDef struct {
	Path       string `json:"path"`
	SizeMiB    int64  `json:"size_mib"`
	IntervalS  int64  `json:"interval_seconds"`
}

// KeysDef configures the plain-text keys file.
type KeysDef struct {
	Path string `json:"path"`
}

// MetricsDef configures the self-telemetry HTTP exporter.
type MetricsDef struct {
	Addr string `json:"addr"`
}

// SchedulerDef configures tick cadence and the freshness/savestate
// multiples the kernel acts on (§4.7).
type SchedulerDef struct {
	TickSeconds        int64 `json:"tick_seconds"`
	FreshnessInterval  int64 `json:"freshness_interval"`
	SavestateInterval  int64 `json:"savestate_interval"`
}

// Defaults names the implicit type/window bound to states/counters/
// samples/rates that don't specify one explicitly.
type Defaults struct {
	Type   string `json:"type,omitempty"`
	Window string `json:"window,omitempty"`
}

// Config is the full declarative configuration document (§6 of the spec).
// The grammar that historically produced it is out of scope; this is its
// produced JSON shape.
type Config struct {
	Types     []TypeDef     `json:"types"`
	Windows   []WindowDef   `json:"windows"`
	Defaults  Defaults      `json:"defaults"`
	States    []MatchDef    `json:"states"`
	Counters  []MatchDef    `json:"counters"`
	Samples   []MatchDef    `json:"samples"`
	Rates     []MatchDef    `json:"rates"`
	Events    EventsDef     `json:"events"`
	Endpoints EndpointsDef  `json:"endpoints"`
	Snapshot  SnapshotDef   `json:"snapshot"`
	Keys      KeysDef       `json:"keys"`
	Scheduler SchedulerDef  `json:"scheduler"`
	Metrics   MetricsDef    `json:"metrics"`
	Nats      *NatsSubset   `json:"nats,omitempty"`
}

// NatsSubset mirrors pkg/nats.NatsConfig's JSON shape without importing
// that package here, keeping configschema free of a transport dependency.
type NatsSubset struct {
	Address       string `json:"address"`
	Username      string `json:"username,omitempty"`
	Password      string `json:"password,omitempty"`
	CredsFilePath string `json:"creds-file-path,omitempty"`
	Subject       string `json:"subject"`
}

// Schema is the JSON Schema document config documents are validated
// against before being decoded, mirroring the teacher's
// config.Validate(schema, raw)-before-decode idiom.
const Schema = `{
  "type": "object",
  "required": ["types", "windows", "endpoints"],
  "properties": {
    "types": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "freshness_seconds", "stale_status"],
        "properties": {
          "name": {"type": "string"},
          "freshness_seconds": {"type": "integer", "minimum": 1},
          "stale_status": {"type": "string", "enum": ["OK", "WARNING", "CRITICAL", "UNKNOWN"]},
          "stale_summary": {"type": "string"}
        }
      }
    },
    "windows": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "seconds"],
        "properties": {
          "name": {"type": "string"},
          "seconds": {"type": "integer", "minimum": 1}
        }
      }
    },
    "defaults": {
      "type": "object",
      "properties": {
        "type": {"type": "string"},
        "window": {"type": "string"}
      }
    },
    "states":   {"type": "array", "items": {"$ref": "#/definitions/match"}},
    "counters": {"type": "array", "items": {"$ref": "#/definitions/match"}},
    "samples":  {"type": "array", "items": {"$ref": "#/definitions/match"}},
    "rates":    {"type": "array", "items": {"$ref": "#/definitions/match"}},
    "events": {
      "type": "object",
      "properties": {
        "n": {"type": "integer", "minimum": 1},
        "unit": {"type": "string", "enum": ["count", "seconds"]}
      }
    },
    "endpoints": {
      "type": "object",
      "required": ["ingestion", "management", "broadcast"],
      "properties": {
        "ingestion": {"type": "string"},
        "management": {"type": "string"},
        "broadcast": {"type": "string"}
      }
    },
    "snapshot": {
      "type": "object",
      "properties": {
        "path": {"type": "string"},
        "size_mib": {"type": "integer", "minimum": 1},
        "interval_seconds": {"type": "integer", "minimum": 1}
      }
    },
    "keys": {
      "type": "object",
      "properties": {
        "path": {"type": "string"}
      }
    },
    "scheduler": {
      "type": "object",
      "properties": {
        "tick_seconds": {"type": "integer", "minimum": 1},
        "freshness_interval": {"type": "integer", "minimum": 1},
        "savestate_interval": {"type": "integer", "minimum": 1}
      }
    },
    "metrics": {
      "type": "object",
      "properties": {
        "addr": {"type": "string"}
      }
    },
    "nats": {
      "type": "object",
      "required": ["address", "subject"],
      "properties": {
        "address": {"type": "string"},
        "username": {"type": "string"},
        "password": {"type": "string"},
        "creds-file-path": {"type": "string"},
        "subject": {"type": "string"}
      }
    }
  },
  "definitions": {
    "match": {
      "type": "object",
      "required": ["pattern"],
      "properties": {
        "pattern": {"type": "string"},
        "regex": {"type": "boolean"},
        "type": {"type": "string"},
        "window": {"type": "string"},
        "ignore": {"type": "boolean"}
      }
    }
  }
}`

// Load validates raw against Schema and decodes it into a Config.
func Load(raw json.RawMessage) (*Config, error) {
	if err := Validate(Schema, raw); err != nil {
		return nil, err
	}

	var cfg Config
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("configschema: decoding config: %w", err)
	}

	if len(cfg.Types) == 0 {
		return nil, fmt.Errorf("configschema: at least one type is required")
	}

	return &cfg, nil
}
