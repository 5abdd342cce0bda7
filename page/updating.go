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
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/FoxDenHome/LCDify/config"
	"github.com/FoxDenHome/LCDify/critical"
	"github.com/FoxDenHome/LCDify/render"
)

// DefaultUpdatePeriod is how often an updating page refreshes its data when
// the configuration does not say otherwise.
const DefaultUpdatePeriod = 30 * time.Second

// statusLED is the indicator that shows the update worker's state.
const statusLED = 0

// Updating extends Base with a background worker that refreshes the page's
// data on a fixed period. While a refresh runs, the status LED shows
// warning; a failed refresh leaves it critical until the next refresh
// starts. A
// refresh that fails keeps the previous frame contents: the panel shows
// last-known-good data.
type Updating struct {
	Base

	period       time.Duration
	useStatusLED bool
	updateFn     func() error
	renderFn     func(force bool) error

	log *logrus.Entry

	mu          sync.Mutex
	status      render.LED
	firstUpdate bool

	wake chan struct{}
	quit chan struct{}
	done chan struct{}
}

// init wires the updating-page state around a refresh function. Concrete
// pages may additionally set renderFn to draw from cached data on every
// render instead of inside update.
func (u *Updating) init(cfg config.Page, defaultTitle string, update func() error) {
	u.Base = NewBase(cfg, defaultTitle)

	u.period = DefaultUpdatePeriod
	if cfg.UpdatePeriod > 0 {
		u.period = time.Duration(cfg.UpdatePeriod * float64(time.Second))
	}
	u.useStatusLED = true
	u.updateFn = update
	u.log = logrus.WithField("page", u.title)
}

func (u *Updating) Start(host Host) error {
	if err := u.Base.Start(host); err != nil {
		return err
	}

	u.status = render.LEDOff
	u.firstUpdate = true
	u.wake = make(chan struct{}, 1)
	u.quit = make(chan struct{})
	u.done = make(chan struct{})
	go critical.Call(u.log, u.loop)
	return nil
}

func (u *Updating) Stop() {
	u.Base.Stop()
	if u.quit == nil {
		return
	}
	close(u.quit)
	<-u.done
	u.quit = nil
}

// Refresh wakes the update worker ahead of its period.
func (u *Updating) Refresh() {
	select {
	case u.wake <- struct{}{}:
	default:
	}
}

func (u *Updating) loop() error {
	defer close(u.done)

	for {
		select {
		case <-u.quit:
			return nil
		default:
		}

		u.setStatus(render.LEDWarning)
		if err := u.runUpdate(); err != nil {
			u.setStatus(render.LEDCritical)
			u.log.WithError(err).Error("page update failed")
		} else {
			u.setStatus(render.LEDOff)
			if u.firstUpdate {
				u.firstUpdate = false
				u.wakeIfCurrent()
			}
		}

		select {
		case <-u.quit:
			return nil
		case <-u.wake:
		case <-time.After(u.period):
		}
	}
}

// runUpdate confines faults to this one refresh: a panicking update ends up
// as an error and the worker carries on.
func (u *Updating) runUpdate() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("update panicked: %v", r)
		}
	}()
	return u.updateFn()
}

func (u *Updating) setStatus(c render.LED) {
	u.mu.Lock()
	u.status = c
	u.mu.Unlock()

	if u.useStatusLED {
		u.wakeIfCurrent()
	}
}

// Status is the update worker's state as an LED color.
func (u *Updating) Status() render.LED {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.status
}

func (u *Updating) wakeIfCurrent() {
	if u.host != nil && u.self != nil && u.host.IsCurrent(u.self) {
		u.host.Wake()
	}
}

func (u *Updating) Render(force bool) (*render.Frame, error) {
	if u.renderFn != nil {
		if err := u.renderFn(force); err != nil {
			return nil, err
		}
	}
	if u.useStatusLED {
		if err := u.frame.SetLED(statusLED, u.Status()); err != nil {
			return nil, err
		}
	}
	return u.frame, nil
}
