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

// Package transition animates the change from one panel frame to another
// over a fixed period.
package transition

import (
	"math"
	"time"

	"github.com/pkg/errors"

	"github.com/FoxDenHome/LCDify/render"
)

// DefaultPeriod is how long a transition takes when the configuration does
// not say otherwise.
const DefaultPeriod = time.Second

// Transition interpolates between two frames. It is a two-state machine:
// Start moves it to running, and it finishes on its own once its period has
// elapsed (or immediately on Stop).
type Transition interface {
	// Start snapshots both endpoints and begins the animation.
	Start(from, to *render.Frame)

	// UpdateTarget swaps the destination of an already-running transition.
	UpdateTarget(to *render.Frame)

	// Stop forces completion; the next Render reports finished.
	Stop()

	// Running reports whether the animation is still in progress.
	Running() bool

	// Render produces the frame for the current instant, or nil once the
	// transition has finished and live output should resume.
	Render() *render.Frame
}

// Factory builds a transition with the given period.
type Factory func(period time.Duration) Transition

var registry = map[string]Factory{}

// Register adds a transition factory to the static registry. Call from an
// init function.
func Register(name string, f Factory) {
	registry[name] = f
}

// New builds a registered transition by name. A non-positive period falls
// back to DefaultPeriod.
func New(name string, period time.Duration) (Transition, error) {
	f, ok := registry[name]
	if !ok {
		return nil, errors.Errorf("transition: unknown type %q", name)
	}
	if period <= 0 {
		period = DefaultPeriod
	}
	return f(period), nil
}

// base carries the state machine shared by all transitions: endpoint
// snapshots, the working frame, and time-based progress.
type base struct {
	from *render.Frame
	to   *render.Frame
	buf  *render.Frame

	period    time.Duration
	startTime time.Time
	progress  float64
	running   bool

	now func() time.Time // swapped out by tests
}

func newBase(period time.Duration) base {
	return base{period: period, progress: 1, now: time.Now}
}

func (b *base) Start(from, to *render.Frame) {
	b.from = from.Clone()
	b.to = to.Clone()
	b.buf = from.Clone()
	b.startTime = b.now()
	b.progress = 0
	b.running = true
}

func (b *base) UpdateTarget(to *render.Frame) {
	b.to = to.Clone()
}

func (b *base) Stop() {
	if b.to != nil {
		b.buf = b.to.Clone()
	}
	b.progress = 1
	b.running = false
}

func (b *base) Running() bool { return b.running }

// step advances progress. It returns false once the period has elapsed, at
// which point the transition has marked itself finished. While running it
// also interpolates the LEDs, which every concrete transition shares.
func (b *base) step() bool {
	if !b.running {
		return false
	}

	b.progress = float64(b.now().Sub(b.startTime)) / float64(b.period)
	if b.progress >= 1 {
		b.running = false
		return false
	}

	for i := range b.buf.LEDs {
		b.buf.LEDs[i] = lerpLED(b.from.LEDs[i], b.to.LEDs[i], b.progress)
	}
	return true
}

func lerpLED(from, to render.LED, progress float64) render.LED {
	return render.LED{
		Red:   lerp(from.Red, to.Red, progress),
		Green: lerp(from.Green, to.Green, progress),
	}
}

func lerp(from, to uint8, progress float64) uint8 {
	return uint8(math.Round(float64(from) + (float64(to)-float64(from))*progress))
}
