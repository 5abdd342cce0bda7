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

import "github.com/FoxDenHome/LCDify/config"

func init() {
	Register("dummy", newDummyPage)
}

// dummyPage shows nothing but its title. Useful as a placeholder while
// bringing up a new panel.
type dummyPage struct {
	Base
}

func newDummyPage(cfg config.Page, deps Deps) (Page, error) {
	p := &dummyPage{Base: NewBase(cfg, "DUMMY PAGE")}
	p.self = p
	return p, nil
}
