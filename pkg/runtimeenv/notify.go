// Copyright (C) 2026 The Bolo Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package runtimeenv provides small OS-lifecycle helpers the supervisor
// actor uses to integrate with a supervising init system. Process
// daemonization itself (fork/detach, pidfiles) is out of scope: callers are
// expected to already be running under systemd, runit, or similar.
package runtimeenv

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/teancom/bolo-sub000/pkg/bolog"
)

var log = bolog.New("runtimeenv")

// SystemdNotify informs systemd of a readiness/status change, per
// https://www.freedesktop.org/software/systemd/man/sd_notify.html.
// It is a no-op when NOTIFY_SOCKET is unset (i.e. not started via systemd).
func SystemdNotify(ready bool, status string) {
	if os.Getenv("NOTIFY_SOCKET") == "" {
		return
	}

	args := []string{fmt.Sprintf("--pid=%d", os.Getpid())}
	if ready {
		args = append(args, "--ready")
	}
	if status != "" {
		args = append(args, fmt.Sprintf("--status=%s", status))
	}

	cmd := exec.Command("systemd-notify", args...)
	if err := cmd.Run(); err != nil {
		log.Debugf("runtimeenv: systemd-notify: %v", err)
	}
}
