// Copyright (C) 2026 The Bolo Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package store

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRuleMatchesLiteral(t *testing.T) {
	r := &rule{literal: "cpu.load"}
	require.True(t, r.matches("cpu.load"))
	require.False(t, r.matches("cpu.loadavg"))
}

func TestRuleMatchesRegex(t *testing.T) {
	r := &rule{pattern: regexp.MustCompile(`^cpu\.`)}
	require.True(t, r.matches("cpu.load"))
	require.False(t, r.matches("mem.cpu.load"))
}

func TestFirstMatchReturnsDeclarationOrder(t *testing.T) {
	rules := []*rule{
		{pattern: regexp.MustCompile(`^s`)},
		{literal: "svc.a"},
	}
	m := firstMatch(rules, "svc.a")
	require.Same(t, rules[0], m)
}

func TestFirstMatchNilWhenNoneMatch(t *testing.T) {
	rules := []*rule{{literal: "a"}, {literal: "b"}}
	require.Nil(t, firstMatch(rules, "c"))
}
