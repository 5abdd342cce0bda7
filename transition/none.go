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

package transition

import (
	"time"

	"github.com/FoxDenHome/LCDify/render"
)

func init() {
	Register("none", func(period time.Duration) Transition {
		return &None{base: newBase(period)}
	})
}

// None cuts straight to the target: the first Render reports finished.
type None struct {
	base
}

func (n *None) Render() *render.Frame {
	n.running = false
	return nil
}
