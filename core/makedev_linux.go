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
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// usbSerialMajor is the Linux character device major for USB serial ports.
const usbSerialMajor = 188

// MakeTTYDevs creates /dev/ttyUSB0..count-1 device nodes. In a minimal
// container there is no udev to make them; the daemon does it itself before
// dropping privileges. Nodes that already exist are left alone.
func MakeTTYDevs(count int) {
	for i := 0; i < count; i++ {
		path := fmt.Sprintf("/dev/ttyUSB%d", i)
		dev := unix.Mkdev(usbSerialMajor, uint32(i))
		if err := unix.Mknod(path, unix.S_IFCHR|0666, int(dev)); err != nil && err != unix.EEXIST {
			logrus.WithField("path", path).WithError(err).Error("cannot create device node")
		}
	}
}
