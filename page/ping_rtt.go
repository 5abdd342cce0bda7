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
	Register("ping_rtt", newPingRTTPage)
}

// pingRTTPage shows round-trip time per uplink, rendered from the last
// successful query on every tick.
type pingRTTPage struct {
	Updating
	prom *prom.Client

	mu  sync.Mutex
	rtt map[string]float64
}

func newPingRTTPage(cfg config.Page, deps Deps) (Page, error) {
	p := &pingRTTPage{prom: deps.Prom}
	p.Updating.init(cfg, "PING RTT", p.update)
	p.renderFn = p.renderBody
	p.self = p
	return p, nil
}

func (p *pingRTTPage) update() error {
	rtt, err := p.prom.MapBy("ping_average_response_ms > 0", "name")
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.rtt = rtt
	p.mu.Unlock()
	return nil
}

func (p *pingRTTPage) renderBody(force bool) error {
	p.mu.Lock()
	rtt := p.rtt
	p.mu.Unlock()

	if rtt == nil {
		return p.frame.SetLine(1, "Loading...")
	}

	rows := []struct {
		row    int
		label  string
		iface  string
		warnMS float64
		critMS float64
	}{
		{1, "WAN", "internet", 10, 50},
		{2, "ETH", "wired", 10, 50},
		{3, "LTE", "lte", 100, 300},
	}
	for _, r := range rows {
		ms, ok := rtt[r.iface]
		if !ok {
			ms = 9999
		}
		if err := p.frame.SetLED(r.row, render.UpperThreshold(ms, r.warnMS, r.critMS)); err != nil {
			return err
		}
		if err := p.frame.SetLine(r.row, fmt.Sprintf("%s %4.0f ms", r.label, ms)); err != nil {
			return err
		}
	}
	return nil
}
