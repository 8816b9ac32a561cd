// Copyright (C) 2026 The Bolo Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package bolog provides leveled logging for the aggregator kernel and the
// processes (relays, agents) that embed the subscriber harness.
//
// Time/Date are not logged by default because systemd adds them for us;
// pass WithTimestamps(true) to a Logger for environments without a
// supervising init system.
//
// Uses these prefixes: https://www.freedesktop.org/software/systemd/man/sd-daemon.html
package bolog

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// Level is a logging severity, ordered from most to least verbose.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelNotice
	LevelWarn
	LevelError
	LevelCrit
)

func ParseLevel(s string) (Level, error) {
	switch s {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "notice":
		return LevelNotice, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "err", "error":
		return LevelError, nil
	case "crit", "critical":
		return LevelCrit, nil
	default:
		return LevelDebug, fmt.Errorf("bolog: unknown level %q", s)
	}
}

var prefixes = map[Level]string{
	LevelDebug:  "<7>[DEBUG]    ",
	LevelInfo:   "<6>[INFO]     ",
	LevelNotice: "<5>[NOTICE]   ",
	LevelWarn:   "<4>[WARNING]  ",
	LevelError:  "<3>[ERROR]    ",
	LevelCrit:   "<2>[CRITICAL] ",
}

// Logger is a named, level-gated writer. Every actor in the kernel
// (listener, kernel, scheduler, supervisor) and every relay that embeds the
// subscriber harness constructs its own Logger instance instead of sharing
// package-level state, so that a process hosting several actors can tag
// each actor's output independently while still funneling to one stream.
type Logger struct {
	mu         sync.Mutex
	name       string
	out        io.Writer
	minLevel   Level
	timestamps bool
	backing    map[Level]*log.Logger
}

// New returns a Logger named name, writing to os.Stderr at LevelDebug.
func New(name string) *Logger {
	l := &Logger{
		name:     name,
		out:      os.Stderr,
		minLevel: LevelDebug,
	}
	l.rebuild()
	return l
}

func (l *Logger) rebuild() {
	flags := 0
	if l.timestamps {
		flags = log.LstdFlags
	}
	l.backing = make(map[Level]*log.Logger, len(prefixes))
	for lvl, prefix := range prefixes {
		tag := prefix
		if l.name != "" {
			tag = prefix + l.name + ": "
		}
		l.backing[lvl] = log.New(l.out, tag, flags)
	}
}

// WithLevel returns l after setting its minimum emitted level.
func (l *Logger) WithLevel(lvl Level) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.minLevel = lvl
	return l
}

// WithOutput returns l after redirecting its writer.
func (l *Logger) WithOutput(w io.Writer) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = w
	l.rebuild()
	return l
}

// WithTimestamps returns l after toggling date/time prefixes.
func (l *Logger) WithTimestamps(on bool) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.timestamps = on
	l.rebuild()
	return l
}

// Named returns a child Logger sharing this Logger's output and level but
// tagged with an additional component name (e.g. kernel logger -> "ingest").
func (l *Logger) Named(component string) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := component
	if l.name != "" {
		name = l.name + "." + component
	}
	child := &Logger{
		name:       name,
		out:        l.out,
		minLevel:   l.minLevel,
		timestamps: l.timestamps,
	}
	child.rebuild()
	return child
}

func (l *Logger) log(lvl Level, depth int, s string) {
	l.mu.Lock()
	enabled := lvl >= l.minLevel
	bl := l.backing[lvl]
	l.mu.Unlock()
	if !enabled {
		return
	}
	bl.Output(depth, s)
}

func (l *Logger) Debug(v ...interface{})                 { l.log(LevelDebug, 3, fmt.Sprint(v...)) }
func (l *Logger) Info(v ...interface{})                  { l.log(LevelInfo, 3, fmt.Sprint(v...)) }
func (l *Logger) Notice(v ...interface{})                { l.log(LevelNotice, 3, fmt.Sprint(v...)) }
func (l *Logger) Warn(v ...interface{})                  { l.log(LevelWarn, 3, fmt.Sprint(v...)) }
func (l *Logger) Error(v ...interface{})                 { l.log(LevelError, 3, fmt.Sprint(v...)) }
func (l *Logger) Crit(v ...interface{})                  { l.log(LevelCrit, 3, fmt.Sprint(v...)) }
func (l *Logger) Debugf(f string, v ...interface{})      { l.log(LevelDebug, 3, fmt.Sprintf(f, v...)) }
func (l *Logger) Infof(f string, v ...interface{})       { l.log(LevelInfo, 3, fmt.Sprintf(f, v...)) }
func (l *Logger) Noticef(f string, v ...interface{})     { l.log(LevelNotice, 3, fmt.Sprintf(f, v...)) }
func (l *Logger) Warnf(f string, v ...interface{})       { l.log(LevelWarn, 3, fmt.Sprintf(f, v...)) }
func (l *Logger) Errorf(f string, v ...interface{})      { l.log(LevelError, 3, fmt.Sprintf(f, v...)) }
func (l *Logger) Critf(f string, v ...interface{})       { l.log(LevelCrit, 3, fmt.Sprintf(f, v...)) }

// Fatal logs at LevelCrit and terminates the process. Used only for
// unrecoverable startup failures (bad config, cannot bind a listener),
// never from inside a reactor loop.
func (l *Logger) Fatal(v ...interface{}) {
	l.log(LevelCrit, 3, fmt.Sprint(v...))
	os.Exit(1)
}

func (l *Logger) Fatalf(f string, v ...interface{}) {
	l.log(LevelCrit, 3, fmt.Sprintf(f, v...))
	os.Exit(1)
}
