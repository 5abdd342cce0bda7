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

// Package core pairs physical panels to configured displays and supervises
// their drivers. Pairing happens once at startup: each CFA635 found on the
// bus carries a logical display ID in its user flash, and panels without
// one are claimed and programmed on demand.
package core

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.bug.st/serial/enumerator"

	"github.com/FoxDenHome/LCDify/cfa635"
	"github.com/FoxDenHome/LCDify/config"
	"github.com/FoxDenHome/LCDify/driver"
	"github.com/FoxDenHome/LCDify/prom"
)

// portIdentSubstring marks the USB product string of the panels we drive.
const portIdentSubstring = "CFA635-USB"

// InitialConfigVersion is the schema version of the settings initialConfig
// programs. Panels stamped with an older version are reprogrammed at
// startup.
const InitialConfigVersion = 0x01

// discoveredPort is one CFA635 found during enumeration.
type discoveredPort struct {
	device  string
	version byte
}

// Supervisor discovers panels, pairs them to configured displays and runs
// one driver per pair.
type Supervisor struct {
	cfg     *config.Config
	log     *logrus.Entry
	drivers []driver.Driver
}

func NewSupervisor(cfg *config.Config) *Supervisor {
	return &Supervisor{
		cfg: cfg,
		log: logrus.WithField("component", "core"),
	}
}

// Run enumerates panels, pairs them to the configured displays, and starts
// a driver for every display that got a port. Displays that cannot be
// paired are skipped, not fatal: the rest of the panels should still come
// up.
func (s *Supervisor) Run() error {
	byID, free, err := s.discoverPorts()
	if err != nil {
		return err
	}

	deps := driver.Deps{}
	if s.cfg.PrometheusURL != "" {
		client, err := prom.New(s.cfg.PrometheusURL)
		if err != nil {
			return err
		}
		deps.Prom = client
	}

	for _, display := range s.cfg.Displays {
		log := s.log.WithFields(logrus.Fields{"display": display.Name, "id": display.ID})

		port, err := s.pairPort(byID, &free, byte(display.ID))
		if err != nil {
			log.WithError(err).Error("no port for display; skipping")
			continue
		}
		log.WithField("port", port).Info("display paired")

		d, err := driver.New(display.Name, display.Driver, deps)
		if err != nil {
			return err
		}
		d.SetPort(port)
		if err := d.Start(); err != nil {
			return err
		}
		s.drivers = append(s.drivers, d)
	}

	return nil
}

// Stop shuts down every running driver.
func (s *Supervisor) Stop() {
	for _, d := range s.drivers {
		d.Stop()
	}
	s.drivers = nil
}

// discoverPorts scans the serial bus for CFA635 panels and reads each one's
// identity, indexing assigned panels by ID and collecting the rest as free.
func (s *Supervisor) discoverPorts() (map[byte]discoveredPort, []string, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, nil, errors.Wrap(err, "core: enumerate serial ports")
	}

	byID := make(map[byte]discoveredPort)
	var free []string

	for _, port := range ports {
		s.log.WithFields(logrus.Fields{
			"port":    port.Name,
			"product": port.Product,
		}).Info("found serial port")
		if !strings.Contains(port.Product, portIdentSubstring) {
			continue
		}

		id, version, assigned, err := s.readIdentity(port.Name)
		if err != nil {
			s.log.WithField("port", port.Name).WithError(err).Error("cannot read panel identity")
			continue
		}
		if assigned {
			byID[id] = discoveredPort{device: port.Name, version: version}
		} else {
			free = append(free, port.Name)
		}
	}

	return byID, free, nil
}

func (s *Supervisor) readIdentity(device string) (id, version byte, assigned bool, err error) {
	lcd := cfa635.NewModule(device)
	if err := lcd.Open(); err != nil {
		return 0, 0, false, err
	}
	defer lcd.Close()
	return lcd.ReadIDAndVersion()
}

// pairPort finds the port for a display ID: a panel already carrying the
// ID (reprogrammed if its config schema is stale), or the first free panel,
// which gets the initial configuration and the ID written to flash.
func (s *Supervisor) pairPort(byID map[byte]discoveredPort, free *[]string, id byte) (string, error) {
	if found, ok := byID[id]; ok {
		if found.version != InitialConfigVersion {
			s.log.WithFields(logrus.Fields{
				"port": found.device,
				"from": found.version,
				"to":   InitialConfigVersion,
			}).Info("panel config schema stale; reprogramming")
			if err := s.initialConfig(found.device, id); err != nil {
				return "", err
			}
		}
		return found.device, nil
	}

	if len(*free) == 0 {
		return "", errors.Errorf("core: no panel carries ID %d and no free panels remain", id)
	}
	port := (*free)[0]
	*free = (*free)[1:]

	s.log.WithFields(logrus.Fields{"port": port, "id": id}).Info("claiming free panel")
	if err := s.initialConfig(port, id); err != nil {
		return "", err
	}
	return port, nil
}

// initialConfig programs a panel's power-on defaults and writes its
// identity: dim backlight, full key reporting, dark LEDs, and a first-boot
// banner so a panel on a shelf says who it is.
func (s *Supervisor) initialConfig(device string, id byte) error {
	lcd := cfa635.NewModule(device)
	if err := lcd.Open(); err != nil {
		return err
	}
	defer lcd.Close()

	if err := lcd.SetBacklight(10); err != nil {
		return err
	}
	if err := lcd.SetContrast(100); err != nil {
		return err
	}
	if err := lcd.Clear(); err != nil {
		return err
	}
	if err := lcd.WriteString(0, 0, " FoxDen Industries"); err != nil {
		return err
	}
	if err := lcd.WriteString(0, 1, strings.Repeat("=", lcd.Width())); err != nil {
		return err
	}
	if err := lcd.WriteString(0, 2, fmt.Sprintf("ID %d", id)); err != nil {
		return err
	}
	if err := lcd.WriteString(0, 3, fmt.Sprintf("Init config %d", InitialConfigVersion)); err != nil {
		return err
	}
	if err := lcd.SetKeyReporting(cfa635.KeyMaskAll, cfa635.KeyMaskAll); err != nil {
		return err
	}
	for i := 0; i < lcd.LEDCount(); i++ {
		if err := lcd.SetLED(i, 0, 0); err != nil {
			return err
		}
	}
	if err := lcd.SaveAsDefault(); err != nil {
		return err
	}
	return lcd.WriteIDAndVersion(id, InitialConfigVersion)
}
