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

// Package prom wraps the Prometheus HTTP API with the few query shapes the
// pages need.
package prom

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/api"
	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"
	"github.com/sirupsen/logrus"
)

// queryTimeout bounds every query; a page update must never hang its
// worker on a dead Prometheus.
const queryTimeout = 5 * time.Second

// ErrNoResult is returned when a query matched no series.
var ErrNoResult = errors.New("prom: query returned no result")

// Client queries one Prometheus server.
type Client struct {
	api v1.API
	log *logrus.Entry
}

// New builds a client for the server at url.
func New(url string) (*Client, error) {
	c, err := api.NewClient(api.Config{Address: url})
	if err != nil {
		return nil, errors.Wrapf(err, "prom: client for %s", url)
	}
	return &Client{
		api: v1.NewAPI(c),
		log: logrus.WithField("prometheus", url),
	}, nil
}

// Query runs an instant query and returns the resulting vector.
func (c *Client) Query(q string) (model.Vector, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	val, warnings, err := c.api.Query(ctx, q, time.Now())
	if err != nil {
		return nil, errors.Wrapf(err, "prom: query %q", q)
	}
	for _, w := range warnings {
		c.log.WithField("query", q).Warn(w)
	}

	vec, ok := val.(model.Vector)
	if !ok {
		return nil, errors.Errorf("prom: query %q returned %s, want vector", q, val.Type())
	}
	return vec, nil
}

// FirstValue runs a query and returns the value of its first sample.
func (c *Client) FirstValue(q string) (float64, error) {
	vec, err := c.Query(q)
	if err != nil {
		return 0, err
	}
	if len(vec) == 0 {
		return 0, errors.Wrapf(ErrNoResult, "query %q", q)
	}
	return float64(vec[0].Value), nil
}

// MapBy runs a query and indexes the sample values by one of their labels.
func (c *Client) MapBy(q, label string) (map[string]float64, error) {
	vec, err := c.Query(q)
	if err != nil {
		return nil, err
	}

	out := make(map[string]float64, len(vec))
	for _, sample := range vec {
		name := string(sample.Metric[model.LabelName(label)])
		out[name] = float64(sample.Value)
	}
	return out, nil
}

// LabelFilter renders a label-match selector, e.g. {hostname="ups-rack"}.
// Labels are emitted in sorted order so queries are stable.
func LabelFilter(labels map[string]string) string {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%q", k, labels[k])
	}
	return "{" + strings.Join(parts, ",") + "}"
}
