// Copyright (C) 2026 The Bolo Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package configschema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

const validConfigJSON = `{
  "types": [{"name": "svc", "freshness_seconds": 30, "stale_status": "CRITICAL"}],
  "windows": [{"name": "w10", "seconds": 10}],
  "defaults": {"type": "svc", "window": "w10"},
  "states": [{"pattern": "^s\\.", "regex": true}],
  "endpoints": {"ingestion": "tcp://*:2999", "management": "tcp://*:2998", "broadcast": "tcp://*:2997"}
}`

func TestLoadValidConfig(t *testing.T) {
	cfg, err := Load(json.RawMessage(validConfigJSON))
	require.NoError(t, err)
	require.Len(t, cfg.Types, 1)
	require.Equal(t, "svc", cfg.Types[0].Name)
	require.Equal(t, "tcp://*:2999", cfg.Endpoints.Ingestion)
}

func TestLoadRejectsMissingRequiredField(t *testing.T) {
	_, err := Load(json.RawMessage(`{"types": [], "windows": []}`))
	require.Error(t, err)
}

func TestLoadRejectsBadStaleStatusEnum(t *testing.T) {
	_, err := Load(json.RawMessage(`{
	  "types": [{"name": "svc", "freshness_seconds": 30, "stale_status": "BOGUS"}],
	  "windows": [],
	  "endpoints": {"ingestion": "a", "management": "b", "broadcast": "c"}
	}`))
	require.Error(t, err)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	_, err := Load(json.RawMessage(`{
	  "types": [{"name": "svc", "freshness_seconds": 30, "stale_status": "OK"}],
	  "windows": [],
	  "endpoints": {"ingestion": "a", "management": "b", "broadcast": "c"},
	  "not_a_real_field": true
	}`))
	require.Error(t, err)
}

func TestLoadRequiresAtLeastOneType(t *testing.T) {
	_, err := Load(json.RawMessage(`{
	  "types": [],
	  "windows": [],
	  "endpoints": {"ingestion": "a", "management": "b", "broadcast": "c"}
	}`))
	require.Error(t, err)
}

func TestValidateRejectsMalformedJSON(t *testing.T) {
	err := Validate(Schema, json.RawMessage(`{not json`))
	require.Error(t, err)
}
