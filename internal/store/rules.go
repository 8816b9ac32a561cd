// Copyright (C) 2026 The Bolo Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package store

import (
	"regexp"

	"github.com/teancom/bolo-sub000/internal/model"
)

// rule is a compiled regex-or-literal match rule. Patterns are compiled
// once at config load time (§9 Design Notes: "Regex caching... compiled
// patterns are held inside their owning rule entries").
type rule struct {
	literal string
	pattern *regexp.Regexp
	typ     *model.Type   // bound type, for state rules
	window  *model.Window // bound window, for counter/sample/rate rules
	ignore  bool
}

func (r *rule) matches(name string) bool {
	if r.pattern != nil {
		return r.pattern.MatchString(name)
	}
	return r.literal == name
}

// firstMatch scans rules in declaration order and returns the first match,
// or nil if none matched.
func firstMatch(rules []*rule, name string) *rule {
	for _, r := range rules {
		if r.matches(name) {
			return r
		}
	}
	return nil
}
