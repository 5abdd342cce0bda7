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

package page

import (
	"time"

	"github.com/FoxDenHome/LCDify/config"
)

func init() {
	Register("difftest", newDiffTestPage)
}

// diffTestPage paints a growing, creeping run of digits from the bottom of
// the panel. It exists to exercise the write-plan compression with awkward
// change patterns; keep it out of production page lists.
type diffTestPage struct {
	Updating

	i int
	x int
}

func newDiffTestPage(cfg config.Page, deps Deps) (Page, error) {
	p := &diffTestPage{x: 1}
	p.Updating.init(cfg, "DIFFTEST", p.update)
	if cfg.UpdatePeriod <= 0 {
		p.period = 200 * time.Millisecond
	}
	p.self = p
	return p, nil
}

func (p *diffTestPage) update() error {
	p.i++
	if p.i > 30 {
		p.i = 0
		p.x++
	}

	p.frame.Clear()
	digit := byte(p.i%10) + '0'
	for j := 0; j < p.i; j++ {
		idx := p.frame.CellCount() - (p.x + j)
		if idx < 0 {
			p.x = 1
			break
		}
		p.frame.Cells[idx] = digit
	}
	return nil
}
