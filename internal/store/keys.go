// Copyright (C) 2026 The Bolo Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package store

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"
)

// SetKey replaces the value bound to k, displacing whatever was there.
func (s *Store) SetKey(k, v string) {
	s.Keys[k] = v
}

// GetKey returns k's value and whether k is bound.
func (s *Store) GetKey(k string) (string, bool) {
	v, ok := s.Keys[k]
	return v, ok
}

// DeleteKey unbinds k. Idempotent: deleting an unbound key is a no-op.
func (s *Store) DeleteKey(k string) {
	delete(s.Keys, k)
}

// SearchKeys compiles pattern and returns every bound key matching it, in
// sorted order for deterministic replies.
func (s *Store) SearchKeys(pattern string) ([]string, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("store: compiling search pattern: %w", err)
	}

	out := make([]string, 0, len(s.Keys))
	for k := range s.Keys {
		if re.MatchString(k) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out, nil
}

// SaveKeys writes the keys file: a "# generated <millis>" header, one
// "key = value" line per bound key with a non-empty value (keys bound to ""
// are not written), and a trailing count comment, matching the layout in
// §6 of the specification.
func (s *Store) SaveKeys(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("store: opening keys file %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "# generated %d\n", time.Now().UnixMilli())

	keys := make([]string, 0, len(s.Keys))
	for k := range s.Keys {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	n := 0
	for _, k := range keys {
		v := s.Keys[k]
		if v == "" {
			continue
		}
		fmt.Fprintf(w, "%s = %s\n", k, v)
		n++
	}
	fmt.Fprintf(w, "# %d keys\n", n)

	return w.Flush()
}

// LoadKeys reads a keys file written by SaveKeys, ignoring blank lines and
// "#"-prefixed comments.
func (s *Store) LoadKeys(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("store: opening keys file %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		k := strings.TrimSpace(parts[0])
		v := strings.TrimSpace(parts[1])
		s.Keys[k] = v
	}
	return sc.Err()
}
