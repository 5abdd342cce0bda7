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

// Package page implements the screens a paged driver cycles through. Each
// page owns its own frame; pages that poll a data source run their own
// background update worker.
package page

import (
	"github.com/FoxDenHome/LCDify/config"
	"github.com/FoxDenHome/LCDify/render"
)

// Host is the page's view of the driver that renders it.
type Host interface {
	// Geometry describes the panel the page renders for.
	Geometry() render.Geometry

	// Wake forces a render outside the regular tick.
	Wake()

	// IsCurrent reports whether the page is the one on screen.
	IsCurrent(p Page) bool
}

// Page is one screen of a paged driver.
type Page interface {
	// Title is the human-readable page title.
	Title() string

	// Start prepares the page for rendering on host's panel.
	Start(host Host) error

	// Stop releases whatever Start set up.
	Stop()

	// Render returns the page's current frame. force is set when the frame
	// is about to seed a transition and must be complete.
	Render(force bool) (*render.Frame, error)
}

// Base carries what every page has: a title on line 0 and a frame to draw
// into.
type Base struct {
	title     string
	host      Host
	frame     *render.Frame
	self      Page
	shouldRun bool
}

// NewBase builds the common page state. The configured title wins over the
// page type's default.
func NewBase(cfg config.Page, defaultTitle string) Base {
	title := defaultTitle
	if cfg.Title != "" {
		title = cfg.Title
	}
	return Base{title: title}
}

func (b *Base) Title() string { return b.title }

func (b *Base) Start(host Host) error {
	b.host = host
	b.frame = render.NewFrame(host.Geometry())
	b.shouldRun = true

	formatted, err := FormatTitle(b.title, b.frame.Width, '=')
	if err != nil {
		return err
	}
	return b.frame.SetLine(0, formatted)
}

func (b *Base) Stop() {
	b.shouldRun = false
}

func (b *Base) Render(force bool) (*render.Frame, error) {
	return b.frame, nil
}
