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

import "github.com/FoxDenHome/LCDify/cfa635"

const (
	// MaxWriteLen caps each emitted span at what one WriteCells packet can
	// carry.
	MaxWriteLen = cfa635.MaxDataLen - 2

	// MinDiffSpacing is how many unchanged cells it takes to end a span.
	// Two runs of changed cells closer than this are written as one span,
	// padding the unchanged cells: a few redundant bytes cost less than an
	// extra round-trip.
	MinDiffSpacing = 5
)

// Span is a half-open [Start, End) range of cell indexes. Spans may cross
// row boundaries; the flat index determines the column and row of the
// write.
type Span struct {
	Start int
	End   int
}

// Len returns the number of cells in the span.
func (s Span) Len() int { return s.End - s.Start }

// DiffCells computes the write plan that transforms sent into target. Cells
// are scanned in flat order, opening a span at the first difference,
// tolerating short gaps of unchanged cells, and closing either when the gap
// grows to MinDiffSpacing or when the span reaches MaxWriteLen. A span that
// reaches the cap mid-gap closes at the current cell, gap included.
func DiffCells(sent, target []byte) []Span {
	var spans []Span

	start := -1 // first cell of the open span, -1 when no span is open
	gap := -1   // first cell of the current unchanged gap, -1 when none

	for i := range target {
		if sent[i] != target[i] {
			switch {
			case start < 0:
				start = i
			case i-start >= MaxWriteLen:
				spans = append(spans, Span{start, i})
				start = i
				gap = -1
			case gap >= 0:
				gap = -1
			}
		} else if start >= 0 {
			if gap < 0 {
				gap = i
			}
			if i-gap >= MinDiffSpacing-1 {
				spans = append(spans, Span{start, gap})
				start = -1
				gap = -1
			}
		}
	}

	if start >= 0 {
		end := gap
		if end < 0 {
			end = len(target)
		}
		spans = append(spans, Span{start, end})
	}

	return spans
}

// DiffLEDs returns the indexes of LEDs whose state differs.
func DiffLEDs(sent, target []LED) []int {
	var changed []int
	for i := range target {
		if sent[i] != target[i] {
			changed = append(changed, i)
		}
	}
	return changed
}
