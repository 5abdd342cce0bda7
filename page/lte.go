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

const (
	bytesPerMB = 1024 * 1024

	// lteDataLimitMB is the monthly plan volume; the transfer LED warns as
	// usage approaches it.
	lteDataLimitMB = 2000
)

func init() {
	Register("lte", newLTEPage)
}

type lteSignal struct {
	rsrp float64
	rsrq float64
	rssi float64
	snr  float64
	rxMB float64
	txMB float64
}

// ltePage shows modem signal quality and the month's transfer volume.
type ltePage struct {
	Updating
	prom *prom.Client

	mu     sync.Mutex
	signal *lteSignal
}

func newLTEPage(cfg config.Page, deps Deps) (Page, error) {
	p := &ltePage{prom: deps.Prom}
	p.Updating.init(cfg, "LTE (MB)", p.update)
	p.renderFn = p.renderBody
	p.self = p
	return p, nil
}

func (p *ltePage) update() error {
	var sig lteSignal
	queries := []struct {
		dst   *float64
		query string
		scale float64
	}{
		{&sig.rsrp, "modem_signal_lte_rsrp", 1},
		{&sig.rsrq, "modem_signal_lte_rsrq", 1},
		{&sig.rssi, "modem_signal_lte_rssi", 1},
		{&sig.snr, "modem_signal_lte_snr", 1},
		{&sig.rxMB, `increase(node_network_receive_bytes_total{instance="router.foxden.network:9100",device="wwan0"}[30d])`, 1.0 / bytesPerMB},
		{&sig.txMB, `increase(node_network_transmit_bytes_total{instance="router.foxden.network:9100",device="wwan0"}[30d])`, 1.0 / bytesPerMB},
	}
	for _, q := range queries {
		val, err := p.prom.FirstValue(q.query)
		if err != nil {
			return err
		}
		*q.dst = val * q.scale
	}

	p.mu.Lock()
	p.signal = &sig
	p.mu.Unlock()
	return nil
}

func (p *ltePage) renderBody(force bool) error {
	p.mu.Lock()
	sig := p.signal
	p.mu.Unlock()

	if sig == nil {
		return p.frame.SetLine(1, "Loading...")
	}

	if err := p.frame.SetLED(1, render.MostCritical(
		render.LowerThreshold(sig.rsrp, -90, -100),
		render.LowerThreshold(sig.rsrq, -15, -20),
	)); err != nil {
		return err
	}
	if err := p.frame.SetLine(1, fmt.Sprintf("RSRP %4.0f / RSRQ %3.0f", sig.rsrp, sig.rsrq)); err != nil {
		return err
	}

	if err := p.frame.SetLED(2, render.MostCritical(
		render.LowerThreshold(sig.rssi, -75, -85),
		render.LowerThreshold(sig.snr, 13, 0),
	)); err != nil {
		return err
	}
	if err := p.frame.SetLine(2, fmt.Sprintf("RSSI %4.0f / SNR  %3.0f", sig.rssi, sig.snr)); err != nil {
		return err
	}

	used := sig.rxMB + sig.txMB
	if err := p.frame.SetLED(3, render.UpperThreshold(used, lteDataLimitMB*0.75, lteDataLimitMB)); err != nil {
		return err
	}
	return p.frame.SetLine(3, fmt.Sprintf("RX  %5.0f / TX %5.0f", sig.rxMB, sig.txMB))
}
