// Copyright (C) 2026 The Bolo Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kernel

import (
	"context"
	"io"
	"net"
	"sync"

	"github.com/teancom/bolo-sub000/internal/wire"
	"github.com/teancom/bolo-sub000/pkg/bolog"
)

// ServeIngestion accepts connections on ln and routes every PDU read from
// them into k.Submissions. Ingestion is fire-and-forget: PDU-boundary
// errors close the offending connection rather than replying, since the
// ingestion protocol carries no reply frame.
func ServeIngestion(ctx context.Context, ln net.Listener, k *Kernel, log *bolog.Logger) {
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
				log.Warnf("ingestion: accept: %v", err)
				continue
			}
		}
		go serveIngestionConn(wire.NewConn(conn), k, log)
	}
}

func serveIngestionConn(c *wire.Conn, k *Kernel, log *bolog.Logger) {
	defer c.Close()
	for {
		p, err := c.ReadPDU()
		if err != nil {
			if err != io.EOF {
				log.Debugf("ingestion: reading PDU: %v", err)
			}
			return
		}
		k.Submissions <- Submission{PDU: p}
	}
}

// ServeManagement accepts connections on ln and serves the
// request/reply protocol: one PDU in, one PDU reply out, repeated until
// the client disconnects.
func ServeManagement(ctx context.Context, ln net.Listener, k *Kernel, log *bolog.Logger) {
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
				log.Warnf("management: accept: %v", err)
				continue
			}
		}
		go serveManagementConn(wire.NewConn(conn), k, log)
	}
}

func serveManagementConn(c *wire.Conn, k *Kernel, log *bolog.Logger) {
	defer c.Close()
	for {
		p, err := c.ReadPDU()
		if err != nil {
			if err != io.EOF {
				log.Debugf("management: reading PDU: %v", err)
			}
			return
		}

		replyCh := make(chan wire.PDU, 1)
		k.Requests <- Request{PDU: p, Reply: replyCh}
		reply := <-replyCh

		if err := c.WritePDU(reply); err != nil {
			log.Debugf("management: writing reply: %v", err)
			return
		}
	}
}

// ServeBroadcast accepts subscriber connections on ln and fans out every
// PDU read from k.Broadcasts to all of them, best-effort: a slow or dead
// subscriber is dropped rather than allowed to back-pressure the fan-out.
func ServeBroadcast(ctx context.Context, ln net.Listener, k *Kernel, log *bolog.Logger) {
	subs := newSubscriberSet()

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				select {
				case <-ctx.Done():
					return
				default:
					log.Warnf("broadcast: accept: %v", err)
					continue
				}
			}
			subs.add(wire.NewConn(conn), log)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case p := <-k.Broadcasts:
			subs.publish(p)
		}
	}
}

// subscriberSet tracks the currently connected broadcast subscribers and
// fans out published PDUs to each of their per-connection send queues.
// Guarded by mu since add runs on the accept goroutine while publish runs
// on the reactor's broadcast-forwarding goroutine.
type subscriberSet struct {
	mu    sync.Mutex
	conns map[*wire.Conn]chan wire.PDU
}

func newSubscriberSet() *subscriberSet {
	return &subscriberSet{conns: make(map[*wire.Conn]chan wire.PDU)}
}

// add registers c and starts its dedicated writer goroutine, which drains
// c's send queue until it closes (on disconnect or a dead write).
func (s *subscriberSet) add(c *wire.Conn, log *bolog.Logger) {
	ch := make(chan wire.PDU, 64)

	s.mu.Lock()
	s.conns[c] = ch
	s.mu.Unlock()

	go func() {
		defer c.Close()
		for p := range ch {
			if err := c.WritePDU(p); err != nil {
				log.Debugf("broadcast: writing to subscriber: %v", err)
				s.remove(c)
				return
			}
		}
	}()
}

func (s *subscriberSet) remove(c *wire.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ch, ok := s.conns[c]; ok {
		close(ch)
		delete(s.conns, c)
	}
}

// publish fans p out to every subscriber's send queue, best-effort: a
// subscriber whose queue is full is dropped rather than allowed to
// back-pressure the whole fan-out.
func (s *subscriberSet) publish(p wire.PDU) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c, ch := range s.conns {
		select {
		case ch <- p:
		default:
			close(ch)
			delete(s.conns, c)
			c.Close()
		}
	}
}
