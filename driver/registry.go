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

package driver

import (
	"github.com/pkg/errors"

	"github.com/FoxDenHome/LCDify/config"
	"github.com/FoxDenHome/LCDify/prom"
)

// Driver is one panel's driver as the supervisor sees it.
type Driver interface {
	SetPort(port string)
	Start() error
	Stop()
}

// Deps carries the external collaborators drivers and their pages need.
type Deps struct {
	Prom *prom.Client
}

// Factory builds a driver from its configuration block.
type Factory func(name string, cfg config.Driver, deps Deps) (Driver, error)

var registry = map[string]Factory{}

// Register adds a driver factory to the static registry. Call from an init
// function.
func Register(name string, f Factory) {
	registry[name] = f
}

// New builds a registered driver type by name.
func New(name string, cfg config.Driver, deps Deps) (Driver, error) {
	f, ok := registry[cfg.Type]
	if !ok {
		return nil, errors.Errorf("driver: unknown type %q", cfg.Type)
	}
	return f(name, cfg, deps)
}
