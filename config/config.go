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

// Package config loads the daemon configuration: which logical displays
// exist, which driver runs each one, and where the metrics come from.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the root of the YAML configuration file.
type Config struct {
	PrometheusURL string    `yaml:"prometheus_url"`
	Displays      []Display `yaml:"displays"`
}

// Display binds one logical display ID to a name and a driver.
type Display struct {
	ID     int    `yaml:"id"`
	Name   string `yaml:"name"`
	Driver Driver `yaml:"driver"`
}

// Driver configures one display driver instance. RenderPeriod and
// AutoCycleTime are in seconds; a non-positive RenderPeriod means "use the
// default" and a non-positive AutoCycleTime disables cycling.
type Driver struct {
	Type          string      `yaml:"type"`
	RenderPeriod  float64     `yaml:"render_period"`
	AutoCycleTime float64     `yaml:"auto_cycle_time"`
	Transition    *Transition `yaml:"transition"`
	Pages         []Page      `yaml:"pages"`
}

// Transition configures the animation between pages. Period is in seconds;
// zero means the default of one second.
type Transition struct {
	Type   string  `yaml:"type"`
	Period float64 `yaml:"period"`
}

// Page configures one page of a paged driver. UpdatePeriod is in seconds;
// zero means the page default.
type Page struct {
	Type         string  `yaml:"type"`
	Title        string  `yaml:"title"`
	UpdatePeriod float64 `yaml:"update_period"`
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config: read %s", path)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, errors.Wrapf(err, "config: parse %s", path)
	}
	if err := cfg.validate(); err != nil {
		return nil, errors.Wrapf(err, "config: %s", path)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	seen := make(map[int]bool)
	for _, d := range c.Displays {
		if d.ID <= 0x00 || d.ID >= 0xFF {
			return errors.Errorf("display %q: id %d outside 1..254", d.Name, d.ID)
		}
		if seen[d.ID] {
			return errors.Errorf("display %q: duplicate id %d", d.Name, d.ID)
		}
		seen[d.ID] = true
		if d.Driver.Type == "" {
			return errors.Errorf("display %q: driver type missing", d.Name)
		}
	}
	return nil
}
