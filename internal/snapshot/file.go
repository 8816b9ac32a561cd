// Copyright (C) 2026 The Bolo Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package snapshot

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/teancom/bolo-sub000/internal/model"
	"github.com/teancom/bolo-sub000/internal/store"
)

// WriteFile serializes every state, counter, sample, rate and event
// currently held by s to path, truncating the file to sizeMiB first (the
// stand-in for the original's fixed-size mmap region; see package doc).
// now is stamped into the header as the snapshot timestamp.
func WriteFile(path string, s *store.Store, sizeMiB int64, now int64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: creating %s: %w", path, err)
	}
	defer f.Close()

	if sizeMiB > 0 {
		if err := f.Truncate(sizeMiB * 1024 * 1024); err != nil {
			return fmt.Errorf("snapshot: truncating %s: %w", path, err)
		}
		if _, err := f.Seek(0, 0); err != nil {
			return err
		}
	}

	w := bufio.NewWriter(f)

	count := uint32(len(s.States) + len(s.Counters) + len(s.Samples) + len(s.Rates) + s.Events.Len())

	if _, err := w.WriteString(magic); err != nil {
		return err
	}
	var hdr [12]byte
	binary.BigEndian.PutUint16(hdr[0:2], version)
	binary.BigEndian.PutUint16(hdr[2:4], 0) // flags, unused
	binary.BigEndian.PutUint32(hdr[4:8], uint32(now))
	binary.BigEndian.PutUint32(hdr[8:12], count)
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}

	for name, st := range s.States {
		rec := StateRecord{Name: name, LastSeen: st.LastSeen, Status: uint8(st.Status), Stale: st.Stale, Summary: st.Summary}
		if err := EncodeState(w, rec); err != nil {
			return fmt.Errorf("snapshot: encoding state %q: %w", name, err)
		}
	}
	for name, c := range s.Counters {
		rec := CounterRecord{Name: name, LastSeen: c.LastSeen, Value: c.Value}
		if err := EncodeCounter(w, rec); err != nil {
			return fmt.Errorf("snapshot: encoding counter %q: %w", name, err)
		}
	}
	for name, sa := range s.Samples {
		rec := SampleRecord{Name: name, LastSeen: sa.LastSeen, N: sa.N, Min: sa.Min, Max: sa.Max, Sum: sa.Sum, Mean: sa.Mean, Var: sa.Var}
		if err := EncodeSample(w, rec); err != nil {
			return fmt.Errorf("snapshot: encoding sample %q: %w", name, err)
		}
	}
	for name, r := range s.Rates {
		rec := RateRecord{Name: name, FirstSeen: r.FirstSeen, LastSeen: r.LastSeen, First: r.First, Last: r.Last}
		if err := EncodeRate(w, rec); err != nil {
			return fmt.Errorf("snapshot: encoding rate %q: %w", name, err)
		}
	}
	for _, ev := range s.Events.All() {
		rec := EventRecord{Timestamp: ev.Timestamp, Name: ev.Name, Extra: ev.Extra}
		if err := EncodeEvent(w, rec); err != nil {
			return fmt.Errorf("snapshot: encoding event %q: %w", ev.Name, err)
		}
	}

	if _, err := w.Write([]byte{0, 0}); err != nil {
		return err
	}

	return w.Flush()
}

// ReadFile restores s from the snapshot at path, overwriting whatever
// entries it currently holds for the names the snapshot carries. Types and
// windows are resolved against s's already-loaded configuration; a record
// whose name no longer matches any configured rule is dropped with no
// error, since configuration may have changed since the snapshot was
// written.
func ReadFile(path string, s *store.Store) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("snapshot: opening %s: %w", path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)

	var magicBuf [4]byte
	if _, err := io.ReadFull(r, magicBuf[:]); err != nil {
		return fmt.Errorf("snapshot: reading magic: %w", err)
	}
	if string(magicBuf[:]) != magic {
		return fmt.Errorf("snapshot: bad magic %q", magicBuf[:])
	}

	var hdr [12]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return fmt.Errorf("snapshot: reading header: %w", err)
	}
	recordCount := binary.BigEndian.Uint32(hdr[8:12])

	for i := uint32(0); i < recordCount; i++ {
		rec, err := DecodeRecord(r)
		if err != nil {
			return fmt.Errorf("snapshot: decoding record %d: %w", i, err)
		}
		applyRecord(s, rec)
	}

	return nil
}

func applyRecord(s *store.Store, rec *Record) {
	switch rec.Kind {
	case KindState:
		sr := rec.State
		st, err := s.FindOrCreateState(sr.Name)
		if err != nil {
			return
		}
		st.LastSeen = sr.LastSeen
		st.Status = model.ParseStatus(int(sr.Status))
		st.Stale = sr.Stale
		st.Summary = sr.Summary

	case KindCounter:
		cr := rec.Counter
		c, err := s.FindOrCreateCounter(cr.Name, cr.LastSeen)
		if err != nil {
			return
		}
		c.LastSeen = cr.LastSeen
		c.Value = cr.Value

	case KindSample:
		sa := rec.Sample
		smp, err := s.FindOrCreateSample(sa.Name, sa.LastSeen)
		if err != nil {
			return
		}
		smp.LastSeen = sa.LastSeen
		smp.N = sa.N
		smp.Min, smp.Max, smp.Sum, smp.Mean, smp.Var = sa.Min, sa.Max, sa.Sum, sa.Mean, sa.Var

	case KindRate:
		rr := rec.Rate
		rt, err := s.FindOrCreateRate(rr.Name)
		if err != nil {
			return
		}
		rt.Restore(rr.FirstSeen, rr.LastSeen, rr.First, rr.Last)

	case KindEvent:
		er := rec.Event
		s.Events.Append(model.Event{Timestamp: er.Timestamp, Name: er.Name, Extra: er.Extra}, er.Timestamp)
	}
}
