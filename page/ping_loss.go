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
	"fmt"
	"sync"

	"github.com/FoxDenHome/LCDify/config"
	"github.com/FoxDenHome/LCDify/prom"
	"github.com/FoxDenHome/LCDify/render"
)

func init() {
	Register("ping_loss", newPingLossPage)
}

// pingLossPage shows packet loss per uplink, rendered from the last
// successful query on every tick.
type pingLossPage struct {
	Updating
	prom *prom.Client

	mu   sync.Mutex
	loss map[string]float64
}

func newPingLossPage(cfg config.Page, deps Deps) (Page, error) {
	p := &pingLossPage{prom: deps.Prom}
	p.Updating.init(cfg, "PACKET LOSS", p.update)
	p.renderFn = p.renderBody
	p.self = p
	return p, nil
}

func (p *pingLossPage) update() error {
	loss, err := p.prom.MapBy("ping_percent_packet_loss", "name")
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.loss = loss
	p.mu.Unlock()
	return nil
}

func (p *pingLossPage) renderBody(force bool) error {
	p.mu.Lock()
	loss := p.loss
	p.mu.Unlock()

	if loss == nil {
		return p.frame.SetLine(1, "Loading...")
	}

	rows := []struct {
		row   int
		label string
		iface string
	}{
		{1, "WAN", "internet"},
		{2, "ETH", "wired"},
		{3, "LTE", "lte"},
	}
	for _, r := range rows {
		pct, ok := loss[r.iface]
		if !ok {
			pct = 100
		}
		if err := p.frame.SetLED(r.row, render.UpperThreshold(pct, 5, 90)); err != nil {
			return err
		}
		if err := p.frame.SetLine(r.row, fmt.Sprintf("%s %4.0f %%", r.label, pct)); err != nil {
			return err
		}
	}
	return nil
}
