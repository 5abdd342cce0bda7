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

// Package render holds the in-memory shadow of a panel — cell and LED
// state — and compresses the difference between two shadows into the
// smallest reasonable set of panel writes.
package render

import (
	"github.com/pkg/errors"

	"github.com/FoxDenHome/LCDify/cfa635"
)

// DefaultCell is what an empty cell holds.
const DefaultCell = byte(' ')

var (
	ErrLineTooLong = errors.New("render: line longer than the panel width")
	ErrOutOfRange  = errors.New("render: write outside the panel")
)

// Geometry describes one panel.
type Geometry struct {
	Width  int
	Height int
	LEDs   int
}

// CellCount returns the number of character cells on the panel.
func (g Geometry) CellCount() int { return g.Width * g.Height }

// Frame is a full shadow of panel state: every character cell plus every
// LED. Mutations mark the frame dirty; the flag stays set until MarkClean
// resets it.
type Frame struct {
	Geometry

	Cells []byte
	LEDs  []LED

	dirty bool
}

// NewFrame allocates a cleared frame: all cells spaces, all LEDs off.
func NewFrame(g Geometry) *Frame {
	f := &Frame{
		Geometry: g,
		Cells:    make([]byte, g.CellCount()),
		LEDs:     make([]LED, g.LEDs),
	}
	for i := range f.Cells {
		f.Cells[i] = DefaultCell
	}
	return f
}

// Clone copies the frame, cell and LED state included.
func (f *Frame) Clone() *Frame {
	c := &Frame{
		Geometry: f.Geometry,
		Cells:    append([]byte(nil), f.Cells...),
		LEDs:     append([]LED(nil), f.LEDs...),
		dirty:    f.dirty,
	}
	return c
}

// CopyFrom overwrites this frame's state with another's.
func (f *Frame) CopyFrom(src *Frame) {
	copy(f.Cells, src.Cells)
	copy(f.LEDs, src.LEDs)
	f.dirty = true
}

// Clear resets every cell to a space. LEDs are left alone.
func (f *Frame) Clear() {
	for i := range f.Cells {
		f.Cells[i] = DefaultCell
	}
	f.dirty = true
}

// WriteBytesAt places raw cell bytes starting at (col, row). Long runs
// continue onto the following row; running off the end of the panel is an
// error.
func (f *Frame) WriteBytesAt(col, row int, data []byte) error {
	if col < 0 || col >= f.Width || row < 0 || row >= f.Height {
		return ErrOutOfRange
	}

	start := row*f.Width + col
	if start+len(data) > len(f.Cells) {
		return ErrOutOfRange
	}

	copy(f.Cells[start:], data)
	f.dirty = true
	return nil
}

// WriteAt places text starting at (col, row), encoded for the display.
func (f *Frame) WriteAt(col, row int, s string) error {
	return f.WriteBytesAt(col, row, cfa635.EncodeText(s))
}

// SetLine replaces a whole row with text, right-padded with spaces. Text
// wider than the panel is a caller bug, not something to truncate silently.
func (f *Frame) SetLine(row int, s string) error {
	data := cfa635.EncodeText(s)
	if len(data) > f.Width {
		return ErrLineTooLong
	}
	for len(data) < f.Width {
		data = append(data, DefaultCell)
	}
	return f.WriteBytesAt(0, row, data)
}

// SetLED sets one LED's color.
func (f *Frame) SetLED(idx int, c LED) error {
	if idx < 0 || idx >= len(f.LEDs) {
		return ErrOutOfRange
	}
	f.LEDs[idx] = c
	f.dirty = true
	return nil
}

// Dirty reports whether the frame changed since the last MarkClean.
func (f *Frame) Dirty() bool { return f.dirty }

// MarkClean resets the dirty flag.
func (f *Frame) MarkClean() { f.dirty = false }
