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

package cfa635

import "github.com/pkg/errors"

// UserFlashSize is the capacity of the module's non-volatile user flash.
const UserFlashSize = 16

// ErrIDRange rejects the reserved identity sentinels: 0x00 and 0xFF both
// read as "unassigned" (erased flash is all 0xFF).
var ErrIDRange = errors.New("cfa635: display ID must be between 0x01 and 0xFE")

// ReadIDAndVersion reads the display identity pair from user flash: byte 0
// is the logical display ID, byte 1 the initial-config schema version the
// module was programmed against. assigned is false for factory-fresh or
// deliberately cleared modules.
func (m *Module) ReadIDAndVersion() (id, version byte, assigned bool, err error) {
	flash, err := m.ReadUserFlash()
	if err != nil {
		return 0, 0, false, err
	}

	id, version = flash[0], flash[1]
	if id == 0x00 || id == 0xFF {
		return 0, 0, false, nil
	}
	return id, version, true, nil
}

// WriteIDAndVersion stores the display identity pair in user flash. The
// remaining 14 bytes are written as zero.
func (m *Module) WriteIDAndVersion(id, version byte) error {
	if id == 0x00 || id == 0xFF {
		return ErrIDRange
	}

	blob := make([]byte, UserFlashSize)
	blob[0] = id
	blob[1] = version
	return m.WriteUserFlash(blob)
}
