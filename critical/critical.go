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

// Package critical wraps the long-lived goroutines of the daemon. A render
// loop or update worker that dies leaves a panel frozen with stale data,
// which is worse than no panel at all; any fault that escapes one of these
// loops takes the whole process down so the supervisor restarts it.
package critical

import (
	"os"
	"runtime/debug"

	"github.com/sirupsen/logrus"
)

// Call runs fn and terminates the process if fn panics or returns an error.
func Call(log *logrus.Entry, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("fatal panic in critical goroutine")
			os.Stderr.Write(debug.Stack())
			os.Exit(1)
		}
	}()

	if err := fn(); err != nil {
		log.WithError(err).Error("fatal error in critical goroutine")
		os.Exit(1)
	}
}
