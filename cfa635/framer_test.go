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
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFramerResync(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	want := &Packet{Type: TypeResponse, Command: 0x06}

	for trial := 0; trial < 100; trial++ {
		garbage := make([]byte, rng.Intn(40))
		rng.Read(garbage)

		var f framer
		f.push(garbage)
		f.push(want.serialize())

		got := f.next()
		if got == nil {
			t.Fatalf("trial %d: no packet after %d garbage bytes", trial, len(garbage))
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("trial %d: first packet mismatch (-want +got):\n%s", trial, diff)
		}
	}
}

func TestFramerPartialFeed(t *testing.T) {
	want := &Packet{Type: TypeResponse, Command: 0x1F, Data: []byte{1, 2, 3}}
	wire := want.serialize()

	var f framer
	for i, b := range wire {
		if p := f.next(); p != nil && i < len(wire) {
			t.Fatalf("packet parsed after only %d bytes", i)
		}
		f.push([]byte{b})
	}

	got := f.next()
	if got == nil {
		t.Fatal("no packet after full feed")
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("packet mismatch (-want +got):\n%s", diff)
	}
}

func TestFramerKeepsTrailingBytes(t *testing.T) {
	first := &Packet{Type: TypeReport, Command: ReportKey, Data: []byte{2}}
	second := &Packet{Type: TypeResponse, Command: 0x00}

	var f framer
	f.push(first.serialize())
	f.push(second.serialize())

	if diff := cmp.Diff(first, f.next()); diff != "" {
		t.Errorf("first packet mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(second, f.next()); diff != "" {
		t.Errorf("second packet mismatch (-want +got):\n%s", diff)
	}
	if f.next() != nil {
		t.Error("third packet parsed from two-packet stream")
	}
}

func TestFramerBadLengthAndCRC(t *testing.T) {
	want := &Packet{Type: TypeResponse, Command: 0x01, Data: []byte("h1.2")}

	// A plausible header with an impossible length byte.
	var f framer
	f.push([]byte{0x41, 0xFF})
	f.push(want.serialize())
	if diff := cmp.Diff(want, f.next()); diff != "" {
		t.Errorf("after bad length (-want +got):\n%s", diff)
	}

	// A full frame whose CRC is wrong.
	corrupt := want.serialize()
	corrupt[len(corrupt)-1] ^= 0xFF
	f = framer{}
	f.push(corrupt)
	f.push(want.serialize())
	if diff := cmp.Diff(want, f.next()); diff != "" {
		t.Errorf("after bad CRC (-want +got):\n%s", diff)
	}
}
