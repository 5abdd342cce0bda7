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

package transition

import (
	"bytes"
	"testing"
	"time"

	"github.com/FoxDenHome/LCDify/render"
)

var testGeometry = render.Geometry{Width: 20, Height: 4, LEDs: 4}

// fakeClock drives a transition's notion of time by hand.
type fakeClock struct {
	at time.Time
}

func (c *fakeClock) now() time.Time { return c.at }

func (c *fakeClock) advance(d time.Duration) { c.at = c.at.Add(d) }

func testFrames() (from, to *render.Frame) {
	from = render.NewFrame(testGeometry)
	from.SetLine(0, "old contents")
	from.SetLED(0, render.LEDCritical)

	to = render.NewFrame(testGeometry)
	to.SetLine(0, "new contents")
	to.SetLED(0, render.LEDNormal)
	return from, to
}

func start(t *testing.T, name string) (Transition, *fakeClock, *render.Frame, *render.Frame) {
	t.Helper()

	trans, err := New(name, time.Second)
	if err != nil {
		t.Fatalf("New(%q): %v", name, err)
	}

	clock := &fakeClock{at: time.Unix(1000, 0)}
	switch tr := trans.(type) {
	case *None:
		tr.base.now = clock.now
	case *Printer:
		tr.base.now = clock.now
	case *Curtain:
		tr.base.now = clock.now
	}

	from, to := testFrames()
	trans.Start(from, to)
	return trans, clock, from, to
}

func TestNoneFinishesImmediately(t *testing.T) {
	trans, _, _, _ := start(t, "none")

	if !trans.Running() {
		t.Fatal("not running after Start")
	}
	if frame := trans.Render(); frame != nil {
		t.Error("None rendered a frame")
	}
	if trans.Running() {
		t.Error("still running after first Render")
	}
}

func TestPrinterProgressesAndFinishes(t *testing.T) {
	trans, clock, from, to := start(t, "printer")

	clock.advance(500 * time.Millisecond)
	frame := trans.Render()
	if frame == nil {
		t.Fatal("no frame at half time")
	}

	// Half the cells are the target's, the rest still the old frame's.
	half := testGeometry.CellCount() / 2
	if !bytes.Equal(frame.Cells[:half], to.Cells[:half]) {
		t.Error("first half not yet copied from target")
	}
	if !bytes.Equal(frame.Cells[half:], from.Cells[half:]) {
		t.Error("second half no longer matches the old frame")
	}

	// LEDs interpolate: critical (100,0) half way to normal (0,100).
	if got := frame.LEDs[0]; got != (render.LED{Red: 50, Green: 50}) {
		t.Errorf("LED 0 at half time = %+v, want {50 50}", got)
	}

	clock.advance(600 * time.Millisecond)
	if frame := trans.Render(); frame != nil {
		t.Error("frame rendered past the period")
	}
	if trans.Running() {
		t.Error("still running past the period")
	}
}

func TestPrinterStopForcesCompletion(t *testing.T) {
	trans, clock, _, _ := start(t, "printer")

	clock.advance(100 * time.Millisecond)
	trans.Render()
	trans.Stop()

	if trans.Running() {
		t.Error("running after Stop")
	}
	if frame := trans.Render(); frame != nil {
		t.Error("frame rendered after Stop")
	}
}

func TestCurtainCovers(t *testing.T) {
	trans, clock, from, to := start(t, "curtain")

	// First half: curtains of block glyphs grow in from both edges over
	// the old frame.
	clock.advance(250 * time.Millisecond)
	frame := trans.Render()
	if frame == nil {
		t.Fatal("no frame at quarter time")
	}
	n := 5 // round(20 * 0.25)
	for row := 0; row < testGeometry.Height; row++ {
		line := frame.Cells[row*20 : (row+1)*20]
		for i := 0; i < n; i++ {
			if line[i] != blockGlyph {
				t.Fatalf("row %d col %d = 0x%02x, want block", row, i, line[i])
			}
			if line[19-i] != blockGlyph {
				t.Fatalf("row %d col %d = 0x%02x, want block", row, 19-i, line[19-i])
			}
		}
	}
	if !bytes.Equal(frame.Cells[5:15], from.Cells[5:15]) {
		t.Error("center of row 0 no longer matches the old frame")
	}

	// Second half: the target shows with shrinking curtains.
	clock.advance(500 * time.Millisecond)
	frame = trans.Render()
	if frame == nil {
		t.Fatal("no frame at three-quarter time")
	}
	n = 5 // round(20 * (1 - 0.75))
	line := frame.Cells[0:20]
	for i := 0; i < n; i++ {
		if line[i] != blockGlyph {
			t.Fatalf("col %d = 0x%02x, want block", i, line[i])
		}
	}
	if !bytes.Equal(line[5:15], to.Cells[5:15]) {
		t.Error("center of row 0 does not match the target")
	}

	clock.advance(300 * time.Millisecond)
	if frame := trans.Render(); frame != nil {
		t.Error("frame rendered past the period")
	}
}

func TestUnknownTransition(t *testing.T) {
	if _, err := New("wipe", time.Second); err == nil {
		t.Error("unknown transition type did not error")
	}
}

func TestDefaultPeriod(t *testing.T) {
	trans, err := New("printer", 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := trans.(*Printer).period; got != DefaultPeriod {
		t.Errorf("period = %v, want %v", got, DefaultPeriod)
	}
}
