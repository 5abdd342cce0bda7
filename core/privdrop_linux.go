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

package core

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// DropPrivileges switches to the given gid and uid, in that order; the
// group must change while we are still root. Zero values leave the
// corresponding ID alone.
func DropPrivileges(uid, gid int) error {
	if gid > 0 {
		if err := unix.Setgid(gid); err != nil {
			return errors.Wrapf(err, "core: setgid %d", gid)
		}
	}
	if uid > 0 {
		if err := unix.Setuid(uid); err != nil {
			return errors.Wrapf(err, "core: setuid %d", uid)
		}
	}
	return nil
}
