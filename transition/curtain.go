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

// blockGlyph is the solid-block character in the module's character set.
const blockGlyph = 0x1F

func init() {
	Register("curtain", func(period time.Duration) Transition {
		return &Curtain{base: newBase(period)}
	})
}

// Curtain draws solid-block curtains in from both edges over the old frame,
// then pulls them back out to reveal the new one.
type Curtain struct {
	base
}

func (c *Curtain) Render() *render.Frame {
	if !c.step() {
		return nil
	}

	if c.progress < 0.5 {
		c.drawCurtains(int(math.Round(float64(c.buf.Width) * c.progress)))
	} else {
		copy(c.buf.Cells, c.to.Cells)
		c.drawCurtains(int(math.Round(float64(c.buf.Width) * (1 - c.progress))))
	}

	return c.buf
}

// drawCurtains covers n columns at both edges of every row with the solid
// block.
func (c *Curtain) drawCurtains(n int) {
	if n <= 0 {
		return
	}
	if n > c.buf.Width/2 {
		n = c.buf.Width / 2
	}

	for row := 0; row < c.buf.Height; row++ {
		line := c.buf.Cells[row*c.buf.Width : (row+1)*c.buf.Width]
		for i := 0; i < n; i++ {
			line[i] = blockGlyph
			line[len(line)-1-i] = blockGlyph
		}
	}
}
