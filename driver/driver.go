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

// Package driver runs one panel: a render loop that diffs frames against
// what the panel last saw and emits the smallest reasonable writes, plus
// the paged driver built on top of it.
package driver

import (
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/FoxDenHome/LCDify/cfa635"
	"github.com/FoxDenHome/LCDify/config"
	"github.com/FoxDenHome/LCDify/critical"
	"github.com/FoxDenHome/LCDify/render"
	"github.com/FoxDenHome/LCDify/transition"
)

// DefaultRenderPeriod paces the render loop when the configuration does not
// say otherwise.
const DefaultRenderPeriod = time.Second / 30

// Renderer is what a concrete driver plugs into the render loop.
type Renderer interface {
	// RenderInit runs on the render goroutine once the panel is open and
	// its geometry known.
	RenderInit() error

	// RenderFrame produces the frame to show. force is set when the frame
	// will seed a transition and must be complete. A nil frame skips the
	// tick.
	RenderFrame(force bool) (*render.Frame, error)

	// Shutdown runs on the render goroutine as the loop exits.
	Shutdown()
}

// KeyListener is implemented by renderers that react to the panel's keys.
// OnKeyDown and OnKeyPress both fire on a press; OnKeyUp on a release.
type KeyListener interface {
	OnKeyDown(k cfa635.Key)
	OnKeyUp(k cfa635.Key)
	OnKeyPress(k cfa635.Key)
}

// Base owns a panel and its render loop. Concrete drivers embed it and
// provide the Renderer.
type Base struct {
	name string
	log  *logrus.Entry

	lcd  *cfa635.Module
	geom render.Geometry

	sentCells []byte
	sentLEDs  []render.LED

	trans       transition.Transition
	transStart  atomic.Bool
	transCancel atomic.Bool

	renderPeriod time.Duration
	renderer     Renderer

	running atomic.Bool
	wake    chan struct{}
	quit    chan struct{}
	done    chan struct{}
}

// NewBase builds the common driver state from configuration. The concrete
// driver must set the renderer before Start.
func NewBase(name string, cfg config.Driver) (*Base, error) {
	b := &Base{
		name:         name,
		log:          logrus.WithField("driver", name),
		renderPeriod: DefaultRenderPeriod,
		wake:         make(chan struct{}, 1),
	}
	if cfg.RenderPeriod > 0 {
		b.renderPeriod = time.Duration(cfg.RenderPeriod * float64(time.Second))
	}

	transType := "none"
	transPeriod := time.Duration(0)
	if cfg.Transition != nil {
		transType = cfg.Transition.Type
		transPeriod = time.Duration(cfg.Transition.Period * float64(time.Second))
	}
	trans, err := transition.New(transType, transPeriod)
	if err != nil {
		return nil, err
	}
	b.trans = trans

	return b, nil
}

// SetPort binds the driver to a serial port. A running driver is stopped
// first.
func (b *Base) SetPort(port string) {
	b.Stop()
	b.lcd = cfa635.NewModule(port)
	b.lcd.OnKey(b.handleKey)
	b.log = logrus.WithFields(logrus.Fields{"driver": b.name, "port": port})
}

// Start spawns the render goroutine.
func (b *Base) Start() error {
	if b.lcd == nil {
		return cfa635.ErrNotOpen
	}
	if !b.running.CompareAndSwap(false, true) {
		return nil
	}

	b.quit = make(chan struct{})
	b.done = make(chan struct{})
	go func() {
		defer close(b.done)
		critical.Call(b.log, b.renderLoop)
	}()
	return nil
}

// Stop signals the render goroutine and waits for it to exit.
func (b *Base) Stop() {
	if !b.running.CompareAndSwap(true, false) {
		return
	}
	close(b.quit)
	b.Wake()
	<-b.done
}

// Wake forces a render outside the regular tick.
func (b *Base) Wake() {
	select {
	case b.wake <- struct{}{}:
	default:
	}
}

// Geometry describes the bound panel. Valid once the render loop has opened
// it.
func (b *Base) Geometry() render.Geometry { return b.geom }

// StartTransition asks the next tick to animate from the panel's current
// contents to the renderer's output.
func (b *Base) StartTransition() {
	b.transStart.Store(true)
}

// CancelTransition asks the next tick to cut any running animation short.
func (b *Base) CancelTransition() {
	b.transCancel.Store(true)
}

func (b *Base) handleKey(ev cfa635.KeyEvent) {
	kl, ok := b.renderer.(KeyListener)
	if !ok {
		return
	}
	switch ev.Action {
	case cfa635.KeyPressed:
		kl.OnKeyDown(ev.Key)
		kl.OnKeyPress(ev.Key)
	case cfa635.KeyReleased:
		kl.OnKeyUp(ev.Key)
	}
}

func (b *Base) renderLoop() error {
	if err := b.lcd.Open(); err != nil {
		return err
	}
	defer b.lcd.Close()

	b.geom = render.Geometry{
		Width:  b.lcd.Width(),
		Height: b.lcd.Height(),
		LEDs:   b.lcd.LEDCount(),
	}

	if err := b.lcd.Clear(); err != nil {
		return err
	}

	b.sentCells = make([]byte, b.geom.CellCount())
	for i := range b.sentCells {
		b.sentCells[i] = render.DefaultCell
	}
	b.sentLEDs = make([]render.LED, b.geom.LEDs)
	for i := range b.sentLEDs {
		if err := b.lcd.SetLED(i, 0, 0); err != nil {
			return err
		}
	}

	if err := b.renderer.RenderInit(); err != nil {
		return err
	}
	defer b.renderer.Shutdown()

	idle := time.NewTimer(b.renderPeriod)
	defer idle.Stop()

	for {
		if err := b.tick(); err != nil {
			return err
		}

		if !idle.Stop() {
			select {
			case <-idle.C:
			default:
			}
		}
		idle.Reset(b.renderPeriod)

		select {
		case <-b.quit:
			return nil
		case <-b.wake:
		case <-idle.C:
		}
	}
}

func (b *Base) tick() error {
	if b.transCancel.Swap(false) {
		b.trans.Stop()
	} else if b.transStart.Swap(false) {
		target, err := b.renderer.RenderFrame(true)
		if err != nil {
			return err
		}
		if target != nil {
			if b.trans.Running() {
				b.trans.UpdateTarget(target)
			} else {
				b.trans.Start(b.sentFrame(), target)
			}
		}
	}

	var frame *render.Frame
	if b.trans.Running() {
		frame = b.trans.Render()
	}
	if frame == nil {
		f, err := b.renderer.RenderFrame(false)
		if err != nil {
			return err
		}
		frame = f
	}
	if frame == nil {
		return nil
	}

	// LEDs before cells: a page change should not flash stale colors next
	// to fresh text.
	if frame.LEDs != nil {
		for _, i := range render.DiffLEDs(b.sentLEDs, frame.LEDs) {
			if err := b.lcd.SetLED(i, int(frame.LEDs[i].Red), int(frame.LEDs[i].Green)); err != nil {
				return err
			}
			b.sentLEDs[i] = frame.LEDs[i]
		}
	}

	if frame.Cells != nil {
		for _, span := range render.DiffCells(b.sentCells, frame.Cells) {
			col := span.Start % b.geom.Width
			row := span.Start / b.geom.Width
			if err := b.lcd.WriteCells(col, row, frame.Cells[span.Start:span.End]); err != nil {
				return err
			}
		}
		copy(b.sentCells, frame.Cells)
	}

	return nil
}

// sentFrame snapshots what the panel is currently showing.
func (b *Base) sentFrame() *render.Frame {
	f := render.NewFrame(b.geom)
	copy(f.Cells, b.sentCells)
	copy(f.LEDs, b.sentLEDs)
	return f
}
