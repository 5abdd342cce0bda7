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

package driver

import (
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/FoxDenHome/LCDify/cfa635"
	"github.com/FoxDenHome/LCDify/config"
	"github.com/FoxDenHome/LCDify/page"
	"github.com/FoxDenHome/LCDify/render"
)

func init() {
	Register("paged", NewPaged)
}

// Paged cycles a panel through an ordered list of pages. DOWN moves to the
// next page and UP to the previous one; if auto-cycling is configured the
// driver advances on its own after a quiet period.
type Paged struct {
	*Base

	pages     []page.Page
	current   atomic.Int32
	autoCycle time.Duration
	lastCycle atomic.Int64 // unix nanoseconds
}

// NewPaged builds a paged driver and its pages from configuration.
func NewPaged(name string, cfg config.Driver, deps Deps) (Driver, error) {
	base, err := NewBase(name, cfg)
	if err != nil {
		return nil, err
	}

	p := &Paged{Base: base}
	if cfg.AutoCycleTime > 0 {
		p.autoCycle = time.Duration(cfg.AutoCycleTime * float64(time.Second))
	}

	for _, pc := range cfg.Pages {
		pg, err := page.New(pc, page.Deps{Prom: deps.Prom})
		if err != nil {
			return nil, errors.Wrapf(err, "driver %q", name)
		}
		p.pages = append(p.pages, pg)
	}
	if len(p.pages) == 0 {
		return nil, errors.Errorf("driver %q: paged driver needs at least one page", name)
	}

	base.renderer = p
	return p, nil
}

func (p *Paged) RenderInit() error {
	for _, pg := range p.pages {
		if err := pg.Start(p); err != nil {
			return err
		}
	}
	p.lastCycle.Store(time.Now().UnixNano())
	return nil
}

func (p *Paged) Shutdown() {
	for _, pg := range p.pages {
		pg.Stop()
	}
}

func (p *Paged) RenderFrame(force bool) (*render.Frame, error) {
	if p.autoCycle > 0 {
		last := time.Unix(0, p.lastCycle.Load())
		if time.Since(last) > p.autoCycle {
			p.NextPage()
		}
	}
	return p.pages[p.current.Load()].Render(force)
}

// IsCurrent reports whether pg is the page on screen.
func (p *Paged) IsCurrent(pg page.Page) bool {
	return p.pages[p.current.Load()] == pg
}

// NextPage advances to the following page, wrapping at the end.
func (p *Paged) NextPage() {
	p.SetPage(int(p.current.Load()) + 1)
}

// PreviousPage goes back one page, wrapping at the start.
func (p *Paged) PreviousPage() {
	p.SetPage(int(p.current.Load()) - 1)
}

// SetPage switches to page n, wrapping modulo the page count, and kicks off
// a transition and an immediate render.
func (p *Paged) SetPage(n int) {
	count := len(p.pages)
	n %= count
	if n < 0 {
		n += count
	}

	p.current.Store(int32(n))
	p.lastCycle.Store(time.Now().UnixNano())
	p.StartTransition()
	p.Wake()
}

func (p *Paged) OnKeyDown(k cfa635.Key) {
	switch k {
	case cfa635.KeyDown:
		p.NextPage()
	case cfa635.KeyUp:
		p.PreviousPage()
	}
}

func (p *Paged) OnKeyUp(k cfa635.Key)    {}
func (p *Paged) OnKeyPress(k cfa635.Key) {}
