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

	"github.com/FoxDenHome/LCDify/config"
	"github.com/FoxDenHome/LCDify/prom"
	"github.com/FoxDenHome/LCDify/render"
)

func init() {
	Register("ping", newPingPage)
}

// pingPage shows round-trip time and packet loss per uplink on one line
// each. A missing series counts as a dead link: worst-case loss and RTT.
type pingPage struct {
	Updating
	prom *prom.Client
}

func newPingPage(cfg config.Page, deps Deps) (Page, error) {
	p := &pingPage{prom: deps.Prom}
	p.Updating.init(cfg, "PING RTT / LOSS", p.update)
	p.self = p
	return p, nil
}

func (p *pingPage) update() error {
	rtt, err := p.prom.MapBy("ping_average_response_ms > 0", "name")
	if err != nil {
		return err
	}
	loss, err := p.prom.MapBy("ping_percent_packet_loss", "name")
	if err != nil {
		return err
	}

	if err := p.uplinkLine(1, "WAN", "internet", rtt, loss, 10, 50); err != nil {
		return err
	}
	if err := p.uplinkLine(2, "ETH", "wired", rtt, loss, 10, 50); err != nil {
		return err
	}
	return p.uplinkLine(3, "LTE", "lte", rtt, loss, 100, 300)
}

func (p *pingPage) uplinkLine(row int, label, iface string, rtt, loss map[string]float64, warnMS, critMS float64) error {
	rttMS, ok := rtt[iface]
	if !ok {
		rttMS = 9999
	}
	lossPct, ok := loss[iface]
	if !ok {
		lossPct = 100
	}

	if err := p.frame.SetLED(row, render.MostCritical(
		render.UpperThreshold(lossPct, 5, 90),
		render.UpperThreshold(rttMS, warnMS, critMS),
	)); err != nil {
		return err
	}
	return p.frame.SetLine(row, fmt.Sprintf("%s %4.0f ms / %4.0f %%", label, rttMS, lossPct))
}
