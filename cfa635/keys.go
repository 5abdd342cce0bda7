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

// Key identifies one of the six buttons on the module. The values double as
// bits in a KeyMask.
type Key byte

const (
	KeyUp     Key = 0x01
	KeyEnter  Key = 0x02
	KeyCancel Key = 0x04
	KeyLeft   Key = 0x08
	KeyRight  Key = 0x10
	KeyDown   Key = 0x20
)

func (k Key) String() string {
	switch k {
	case KeyUp:
		return "UP"
	case KeyEnter:
		return "ENTER"
	case KeyCancel:
		return "CANCEL"
	case KeyLeft:
		return "LEFT"
	case KeyRight:
		return "RIGHT"
	case KeyDown:
		return "DOWN"
	}
	return "UNKNOWN"
}

// KeyMask is a set of keys, one bit per key.
type KeyMask byte

const (
	KeyMaskNone KeyMask = 0x00
	KeyMaskAll  KeyMask = 0x3F
)

func (m KeyMask) Has(k Key) bool      { return m&KeyMask(k) != 0 }
func (m KeyMask) Add(k Key) KeyMask   { return m | KeyMask(k) }
func (m KeyMask) Remove(k Key) KeyMask { return m &^ KeyMask(k) }
func (m KeyMask) Raw() byte           { return byte(m) }

// Keys enumerates the keys present in the mask.
func (m KeyMask) Keys() []Key {
	var keys []Key
	for _, k := range []Key{KeyUp, KeyEnter, KeyCancel, KeyLeft, KeyRight, KeyDown} {
		if m.Has(k) {
			keys = append(keys, k)
		}
	}
	return keys
}

// KeyAction is the transition reported for a key.
type KeyAction byte

const (
	KeyPressed KeyAction = iota
	KeyReleased
)

func (a KeyAction) String() string {
	if a == KeyPressed {
		return "PRESSED"
	}
	return "RELEASED"
}

// KeyEvent is one decoded key activity report.
type KeyEvent struct {
	Key    Key
	Action KeyAction
}

// keyReportTable maps the single data byte of a key activity report (1..12)
// to its key. Codes 1..6 are presses, 7..12 the matching releases; 0 is
// invalid.
var keyReportTable = [...]Key{
	0,
	KeyUp, KeyDown, KeyLeft, KeyRight, KeyEnter, KeyCancel,
	KeyUp, KeyDown, KeyLeft, KeyRight, KeyEnter, KeyCancel,
}

// decodeKeyReport translates the data byte of a key activity report.
func decodeKeyReport(b byte) (KeyEvent, bool) {
	if b == 0 || int(b) >= len(keyReportTable) {
		return KeyEvent{}, false
	}

	ev := KeyEvent{Key: keyReportTable[b], Action: KeyPressed}
	if b > 6 {
		ev.Action = KeyReleased
	}
	return ev, true
}
