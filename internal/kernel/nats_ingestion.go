// Copyright (C) 2026 The Bolo Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kernel

import (
	"bufio"
	"bytes"

	"github.com/teancom/bolo-sub000/internal/wire"
	"github.com/teancom/bolo-sub000/pkg/bolog"
	"github.com/teancom/bolo-sub000/pkg/nats"
)

// ServeNATSIngestion subscribes to subject on client and routes every
// decoded PDU into k.Submissions, mirroring serveIngestionConn's handling
// of the TCP ingestion listener. Per §4.11 this is an optional, additive
// ingestion path: agents may publish to the message bus instead of (or in
// addition to) dialing the TCP endpoint.
func ServeNATSIngestion(client *nats.Client, subject string, k *Kernel, log *bolog.Logger) error {
	return client.Subscribe(subject, func(_ string, data []byte) {
		p, err := wire.Decode(bufio.NewReader(bytes.NewReader(data)))
		if err != nil {
			log.Debugf("nats ingestion: decoding PDU: %v", err)
			return
		}
		k.Submissions <- Submission{PDU: p}
	})
}
