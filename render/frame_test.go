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

package render

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
)

var testGeometry = Geometry{Width: 20, Height: 4, LEDs: 4}

func TestNewFrameCleared(t *testing.T) {
	f := NewFrame(testGeometry)

	if len(f.Cells) != 80 {
		t.Fatalf("frame has %d cells, want 80", len(f.Cells))
	}
	for i, c := range f.Cells {
		if c != DefaultCell {
			t.Fatalf("cell %d = 0x%02x, want space", i, c)
		}
	}
	for i, led := range f.LEDs {
		if led != LEDOff {
			t.Errorf("LED %d = %+v, want off", i, led)
		}
	}
	if f.Dirty() {
		t.Error("fresh frame is dirty")
	}
}

func TestSetLine(t *testing.T) {
	f := NewFrame(testGeometry)

	if err := f.SetLine(1, "short"); err != nil {
		t.Fatalf("SetLine: %v", err)
	}
	line := f.Cells[20:40]
	want := []byte("short               ")
	if !bytes.Equal(line, want) {
		t.Errorf("line 1 = %q, want %q", line, want)
	}
	if !f.Dirty() {
		t.Error("frame not dirty after SetLine")
	}

	if err := f.SetLine(0, "this line is far too wide"); !errors.Is(err, ErrLineTooLong) {
		t.Errorf("over-wide line: err = %v, want ErrLineTooLong", err)
	}
}

func TestWriteAtSpansRows(t *testing.T) {
	f := NewFrame(testGeometry)

	if err := f.WriteAt(18, 0, "abcd"); err != nil {
		t.Fatalf("WriteAt: %v", err)
	}
	if got := f.Cells[18:22]; !bytes.Equal(got, []byte("abcd")) {
		t.Errorf("cells 18..22 = %q, want abcd", got)
	}
}

func TestWriteAtBounds(t *testing.T) {
	f := NewFrame(testGeometry)

	if err := f.WriteAt(20, 0, "x"); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("col 20: err = %v, want ErrOutOfRange", err)
	}
	if err := f.WriteAt(0, 4, "x"); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("row 4: err = %v, want ErrOutOfRange", err)
	}
	if err := f.WriteAt(18, 3, "abcd"); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("overrun: err = %v, want ErrOutOfRange", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	f := NewFrame(testGeometry)
	f.SetLine(0, "original")
	f.SetLED(0, LEDCritical)

	c := f.Clone()
	c.SetLine(0, "copy")
	c.SetLED(0, LEDNormal)

	if got := f.Cells[0]; got != 'o' {
		t.Errorf("original cell 0 = %q after mutating clone", got)
	}
	if f.LEDs[0] != LEDCritical {
		t.Errorf("original LED 0 = %+v after mutating clone", f.LEDs[0])
	}
}

func TestClearKeepsLEDs(t *testing.T) {
	f := NewFrame(testGeometry)
	f.SetLine(2, "text")
	f.SetLED(1, LEDWarning)

	f.Clear()
	for i, c := range f.Cells {
		if c != DefaultCell {
			t.Fatalf("cell %d = 0x%02x after Clear", i, c)
		}
	}
	if f.LEDs[1] != LEDWarning {
		t.Errorf("LED 1 = %+v after Clear, want warning", f.LEDs[1])
	}
}
