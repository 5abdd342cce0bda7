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
	Register("upspower", newUPSPowerPage)
}

// upsPowerPage shows the rack UPS: load, battery and line voltages.
type upsPowerPage struct {
	Updating
	prom *prom.Client
}

func newUPSPowerPage(cfg config.Page, deps Deps) (Page, error) {
	p := &upsPowerPage{prom: deps.Prom}
	p.Updating.init(cfg, "UPS Power", p.update)
	p.self = p
	return p, nil
}

func (p *upsPowerPage) update() error {
	filter := prom.LabelFilter(map[string]string{"hostname": "ups-rack"})

	power, err := p.prom.FirstValue("snmp_upsAdvOutputActivePower" + filter)
	if err != nil {
		return err
	}
	apparent, err := p.prom.FirstValue("snmp_upsAdvOutputApparentPower" + filter)
	if err != nil {
		return err
	}
	runtime, err := p.prom.FirstValue("snmp_upsAdvBatteryRunTimeRemaining" + filter + " / 6000")
	if err != nil {
		return err
	}
	capacity, err := p.prom.FirstValue("snmp_upsHighPrecBatteryCapacity" + filter)
	if err != nil {
		return err
	}
	inVolt, err := p.prom.FirstValue("snmp_upsHighPrecInputLineVoltage" + filter)
	if err != nil {
		return err
	}
	outVolt, err := p.prom.FirstValue("snmp_upsHighPrecOutputVoltage" + filter)
	if err != nil {
		return err
	}

	if err := p.frame.SetLine(1, fmt.Sprintf("PWR %4.0f W / %4.0f VA", power, apparent)); err != nil {
		return err
	}
	if err := p.frame.SetLED(1, render.UpperThreshold(power, 800, 1000)); err != nil {
		return err
	}

	if err := p.frame.SetLine(2, fmt.Sprintf("BAT %4.0f m / %4.0f %%", runtime, capacity)); err != nil {
		return err
	}
	if err := p.frame.SetLED(2, render.LowerThreshold(runtime, 15, 5)); err != nil {
		return err
	}

	if err := p.frame.SetLine(3, fmt.Sprintf("VIO %4.0f V / %4.0f V", inVolt, outVolt)); err != nil {
		return err
	}
	return p.frame.SetLED(3, render.LowerThreshold(inVolt, 100, 80))
}
