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
	"math"

	"github.com/FoxDenHome/LCDify/config"
	"github.com/FoxDenHome/LCDify/prom"
	"github.com/FoxDenHome/LCDify/render"
)

func init() {
	Register("ntp", newNTPPage)
}

// ntpPage shows the house NTP server's clock discipline: estimated error,
// frequency adjustment, stratum and sanity.
type ntpPage struct {
	Updating
	prom *prom.Client
}

func newNTPPage(cfg config.Page, deps Deps) (Page, error) {
	p := &ntpPage{prom: deps.Prom}
	p.Updating.init(cfg, "NTP", p.update)
	p.self = p
	return p, nil
}

func (p *ntpPage) update() error {
	estErr, err := p.prom.FirstValue(`node_timex_estimated_error_seconds{instance="ntp.foxden.network:9100"}`)
	if err != nil {
		return err
	}
	ppmAdj, err := p.prom.FirstValue(`(node_timex_frequency_adjustment_ratio{instance="ntp.foxden.network:9100"} - 1) * 1000000`)
	if err != nil {
		return err
	}
	stratum, err := p.prom.FirstValue(`node_ntp_stratum{instance="ntp.foxden.network:9100"}`)
	if err != nil {
		return err
	}
	sanity, err := p.prom.FirstValue(`node_ntp_sanity{instance="ntp.foxden.network:9100"}`)
	if err != nil {
		return err
	}
	sanity *= 100

	estErrMS := estErr * 1000
	if err := p.frame.SetLine(1, fmt.Sprintf("Err %12.6f ms", estErrMS)); err != nil {
		return err
	}
	if err := p.frame.SetLED(1, render.UpperThreshold(estErrMS, 0.001, 1)); err != nil {
		return err
	}

	if err := p.frame.SetLine(2, fmt.Sprintf("Adj %12.6f ppm", ppmAdj)); err != nil {
		return err
	}
	if err := p.frame.SetLED(2, render.UpperThreshold(math.Abs(ppmAdj), 20, 100)); err != nil {
		return err
	}

	if err := p.frame.SetLine(3, fmt.Sprintf("Str %2.0f    /  San %3.0f", stratum, sanity)); err != nil {
		return err
	}
	status := render.LEDNormal
	if stratum != 1 {
		status = render.LEDWarning
	}
	if sanity < 100 {
		status = render.LEDCritical
	}
	return p.frame.SetLED(3, status)
}
