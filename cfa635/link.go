// Copyright 2023 FoxDen Industries
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package cfa635

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// responseTimeout is the maximum latency of the module before a request
	// is considered lost.
	responseTimeout = 250 * time.Millisecond

	// sendAttempts bounds how often a request is put on the wire before the
	// timeout is surfaced to the caller.
	sendAttempts = 6
)

// ErrTimeout is returned when the module never answered a request, even
// after retries.
var ErrTimeout = errors.New("cfa635: timed out waiting for response")

// ResponseError is an ERROR-type response from the module. The module
// explains itself in the packet payload.
type ResponseError struct {
	Packet *Packet
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("cfa635: module reported error: %s", e.Packet.textData())
}

// link owns one serial connection. A dedicated reader goroutine deframes
// incoming bytes and splits them into responses (claimed by Send) and
// reports (handed to onReport). Send serializes all requests: at most one is
// on the wire at a time.
type link struct {
	conn     io.ReadWriteCloser
	log      *logrus.Entry
	onReport func(*Packet)

	frames    framer
	responses chan *Packet

	sendMu sync.Mutex
	done   chan struct{}
}

// connect adopts an open serial connection and starts the reader.
func connect(conn io.ReadWriteCloser, onReport func(*Packet), log *logrus.Entry) *link {
	l := &link{
		conn:      conn,
		log:       log,
		onReport:  onReport,
		responses: make(chan *Packet, 1),
		done:      make(chan struct{}),
	}
	go l.readLoop()
	return l
}

// close closes the connection and waits for the reader to exit.
func (l *link) close() error {
	err := l.conn.Close()
	<-l.done
	return err
}

func (l *link) readLoop() {
	defer close(l.done)

	buf := make([]byte, 64)
	for {
		n, err := l.conn.Read(buf)
		if n > 0 {
			l.frames.push(buf[:n])
			for p := l.frames.next(); p != nil; p = l.frames.next() {
				l.dispatch(p)
			}
		}
		if err != nil {
			// Reads time out periodically with n == 0 and no error; an
			// actual error means the port is gone or closing.
			if err != io.EOF {
				l.log.WithError(err).Debug("reader exiting")
			}
			return
		}
	}
}

func (l *link) dispatch(p *Packet) {
	switch p.Type {
	case TypeResponse, TypeError:
		for {
			select {
			case l.responses <- p:
				return
			default:
			}
			select {
			case old := <-l.responses:
				l.log.WithField("packet", old).Warn("overwriting unclaimed response; a request was lost")
			default:
			}
		}
	case TypeReport:
		if l.onReport != nil {
			l.onReport(p)
		}
	case TypeRequest:
		l.log.WithField("packet", p).Warn("REQUEST packet from module; this should never happen")
	}
}

// send writes a request and waits for the response with the same command
// code. Timed-out requests are retried; an ERROR-type response is surfaced
// as a *ResponseError.
func (l *link) send(command byte, data []byte) ([]byte, error) {
	if len(data) > MaxDataLen {
		return nil, ErrDataTooLong
	}
	req := Packet{Type: TypeRequest, Command: command, Data: data}
	wire := req.serialize()

	l.sendMu.Lock()
	defer l.sendMu.Unlock()

	for attempt := 0; attempt < sendAttempts; attempt++ {
		// A response left over from an earlier, timed-out request must not
		// satisfy this one.
		select {
		case <-l.responses:
		default:
		}

		if _, err := l.conn.Write(wire); err != nil {
			return nil, errors.Wrapf(err, "cfa635: write command 0x%02x", command)
		}

		resp := l.awaitResponse(command)
		if resp == nil {
			l.log.WithField("command", fmt.Sprintf("0x%02x", command)).Debug("no response; retrying")
			continue
		}
		if resp.Type == TypeError {
			return nil, &ResponseError{Packet: resp}
		}
		return resp.Data, nil
	}

	return nil, ErrTimeout
}

func (l *link) awaitResponse(command byte) *Packet {
	timeout := time.NewTimer(responseTimeout)
	defer timeout.Stop()

	for {
		select {
		case p := <-l.responses:
			if p.Command == command {
				return p
			}
			l.log.WithField("packet", p).Warn("response for a different command; discarding")
		case <-timeout.C:
			return nil
		}
	}
}
