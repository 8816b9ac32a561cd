// Copyright (C) 2026 The Bolo Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetGetDeleteKey(t *testing.T) {
	s := &Store{Keys: make(map[string]string)}
	s.SetKey("region", "us-east")

	v, ok := s.GetKey("region")
	require.True(t, ok)
	require.Equal(t, "us-east", v)

	s.DeleteKey("region")
	_, ok = s.GetKey("region")
	require.False(t, ok)

	s.DeleteKey("region")
}

func TestSearchKeysSortedMatches(t *testing.T) {
	s := &Store{Keys: map[string]string{
		"host.web1": "up",
		"host.web2": "up",
		"region":    "us-east",
	}}

	keys, err := s.SearchKeys(`^host\.`)
	require.NoError(t, err)
	require.Equal(t, []string{"host.web1", "host.web2"}, keys)
}

func TestSaveAndLoadKeysRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.txt")

	s1 := &Store{Keys: map[string]string{"a": "1", "b": "2", "c": ""}}
	require.NoError(t, s1.SaveKeys(path))

	s2 := &Store{Keys: make(map[string]string)}
	require.NoError(t, s2.LoadKeys(path))

	require.Equal(t, "1", s2.Keys["a"])
	require.Equal(t, "2", s2.Keys["b"])
	_, ok := s2.Keys["c"]
	require.False(t, ok, "empty-valued keys are not persisted")
}

func TestLoadKeysMissingFileIsNotAnError(t *testing.T) {
	s := &Store{Keys: make(map[string]string)}
	err := s.LoadKeys(filepath.Join(t.TempDir(), "does-not-exist.txt"))
	require.NoError(t, err)
	require.Empty(t, s.Keys)
}
