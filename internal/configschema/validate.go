// Copyright (C) 2026 The Bolo Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package configschema loads the aggregator's declarative configuration
// (types, windows, literal/regex metric rules, default bindings, events
// retention) into the shapes internal/store needs to seed the metric
// store. The configuration's grammar/parser is out of scope per the
// specification; this package consumes its produced JSON document.
package configschema

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Validate checks instance against the given JSON Schema document,
// following the same compile-then-validate idiom the teacher uses for its
// own config (internal/config.Validate): fail fast with a descriptive
// error rather than decoding a document that doesn't match the schema.
func Validate(schema string, instance json.RawMessage) error {
	sch, err := jsonschema.CompileString("bolod-config.schema.json", schema)
	if err != nil {
		return fmt.Errorf("configschema: compiling schema: %w", err)
	}

	var v any
	if err := json.Unmarshal(instance, &v); err != nil {
		return fmt.Errorf("configschema: decoding instance: %w", err)
	}

	if err := sch.Validate(v); err != nil {
		return fmt.Errorf("configschema: validating config: %w", err)
	}
	return nil
}
