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

// LCDify turns CFA635 USB LCD panels into small dashboards fed from
// Prometheus.
package main

import (
	"flag"
	"os"
	"os/signal"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/FoxDenHome/LCDify/config"
	"github.com/FoxDenHome/LCDify/core"
)

func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		logrus.WithField("var", name).WithField("value", raw).Warn("ignoring unparsable environment variable")
		return fallback
	}
	return val
}

func main() {
	configPath := flag.String("config", "lcdify.yml", "path to the configuration file")
	flag.Parse()

	// Device nodes must exist before privileges go away, and privileges
	// must go away before any panel is touched.
	if count := envInt("MAKE_TTY_DEVS", 0); count > 0 {
		core.MakeTTYDevs(count)
	}
	if err := core.DropPrivileges(envInt("PUID", 0), envInt("PGID", 0)); err != nil {
		logrus.WithError(err).Fatal("cannot drop privileges")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("cannot load configuration")
	}

	supervisor := core.NewSupervisor(cfg)
	if err := supervisor.Run(); err != nil {
		logrus.WithError(err).Fatal("cannot start displays")
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	<-interrupt

	logrus.Info("shutting down")
	supervisor.Stop()
}
