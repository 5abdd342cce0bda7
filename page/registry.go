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
	"github.com/pkg/errors"

	"github.com/FoxDenHome/LCDify/config"
	"github.com/FoxDenHome/LCDify/prom"
)

// Deps carries the external collaborators a page may need.
type Deps struct {
	Prom *prom.Client
}

// Factory builds a page from its configuration block.
type Factory func(cfg config.Page, deps Deps) (Page, error)

var registry = map[string]Factory{}

// Register adds a page factory to the static registry. Call from an init
// function.
func Register(name string, f Factory) {
	registry[name] = f
}

// New builds a registered page type by name.
func New(cfg config.Page, deps Deps) (Page, error) {
	f, ok := registry[cfg.Type]
	if !ok {
		return nil, errors.Errorf("page: unknown type %q", cfg.Type)
	}
	return f(cfg, deps)
}
