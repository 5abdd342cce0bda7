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
	"math"
	"time"

	"github.com/FoxDenHome/LCDify/render"
)

func init() {
	Register("printer", func(period time.Duration) Transition {
		return &Printer{base: newBase(period)}
	})
}

// Printer reveals the target frame cell by cell from the top left, like a
// line printer feeding out the new page.
type Printer struct {
	base
	setUpTo int
}

func (p *Printer) Start(from, to *render.Frame) {
	p.base.Start(from, to)
	p.setUpTo = 0
}

func (p *Printer) UpdateTarget(to *render.Frame) {
	p.base.UpdateTarget(to)
	p.setUpTo = 0
}

func (p *Printer) Render() *render.Frame {
	if !p.step() {
		return nil
	}

	target := int(math.Round(float64(p.buf.CellCount()) * p.progress))
	if target > len(p.buf.Cells) {
		target = len(p.buf.Cells)
	}
	if target > p.setUpTo {
		copy(p.buf.Cells[p.setUpTo:target], p.to.Cells[p.setUpTo:target])
		p.setUpTo = target
	}

	return p.buf
}
