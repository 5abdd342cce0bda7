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

import "testing"

var allKeys = []Key{KeyUp, KeyEnter, KeyCancel, KeyLeft, KeyRight, KeyDown}

func TestKeyMaskLaws(t *testing.T) {
	if KeyMaskNone.Raw() != 0x00 {
		t.Errorf("KeyMaskNone.Raw() = 0x%02x, want 0x00", KeyMaskNone.Raw())
	}
	if KeyMaskAll.Raw() != 0x3F {
		t.Errorf("KeyMaskAll.Raw() = 0x%02x, want 0x3f", KeyMaskAll.Raw())
	}

	for _, k := range allKeys {
		if KeyMaskNone.Has(k) {
			t.Errorf("empty mask has %s", k)
		}
		if !KeyMaskNone.Add(k).Has(k) {
			t.Errorf("mask does not have %s after Add", k)
		}
		if KeyMaskAll.Remove(k).Has(k) {
			t.Errorf("mask still has %s after Remove", k)
		}
	}

	var m KeyMask
	for _, k := range allKeys {
		m = m.Add(k)
	}
	if m != KeyMaskAll {
		t.Errorf("adding every key = 0x%02x, want KeyMaskAll", m.Raw())
	}
	if got := len(KeyMaskAll.Keys()); got != 6 {
		t.Errorf("KeyMaskAll.Keys() has %d entries, want 6", got)
	}
}

func TestDecodeKeyReport(t *testing.T) {
	tests := []struct {
		code byte
		want KeyEvent
		ok   bool
	}{
		{0x00, KeyEvent{}, false},
		{0x01, KeyEvent{KeyUp, KeyPressed}, true},
		{0x02, KeyEvent{KeyDown, KeyPressed}, true},
		{0x03, KeyEvent{KeyLeft, KeyPressed}, true},
		{0x04, KeyEvent{KeyRight, KeyPressed}, true},
		{0x05, KeyEvent{KeyEnter, KeyPressed}, true},
		{0x06, KeyEvent{KeyCancel, KeyPressed}, true},
		{0x07, KeyEvent{KeyUp, KeyReleased}, true},
		{0x0C, KeyEvent{KeyCancel, KeyReleased}, true},
		{0x0D, KeyEvent{}, false},
		{0xFF, KeyEvent{}, false},
	}

	for _, test := range tests {
		got, ok := decodeKeyReport(test.code)
		if ok != test.ok {
			t.Errorf("decodeKeyReport(0x%02x) ok = %v, want %v", test.code, ok, test.ok)
			continue
		}
		if ok && got != test.want {
			t.Errorf("decodeKeyReport(0x%02x) = %v/%v, want %v/%v",
				test.code, got.Key, got.Action, test.want.Key, test.want.Action)
		}
	}
}
