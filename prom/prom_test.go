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

package prom

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

func TestLabelFilter(t *testing.T) {
	tests := []struct {
		labels map[string]string
		want   string
	}{
		{nil, "{}"},
		{map[string]string{"hostname": "ups-rack"}, `{hostname="ups-rack"}`},
		{map[string]string{"b": "2", "a": "1"}, `{a="1",b="2"}`},
	}
	for _, test := range tests {
		if got := LabelFilter(test.labels); got != test.want {
			t.Errorf("LabelFilter(%v) = %s, want %s", test.labels, got, test.want)
		}
	}
}

// fakePrometheus answers the instant-query endpoint with a fixed vector.
func fakePrometheus(t *testing.T, body string) *Client {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/query" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

const pingVector = `{
	"status": "success",
	"data": {
		"resultType": "vector",
		"result": [
			{"metric": {"name": "internet"}, "value": [1700000000, "12.5"]},
			{"metric": {"name": "wired"}, "value": [1700000000, "0.8"]}
		]
	}
}`

func TestFirstValue(t *testing.T) {
	c := fakePrometheus(t, pingVector)

	got, err := c.FirstValue("ping_average_response_ms > 0")
	if err != nil {
		t.Fatalf("FirstValue: %v", err)
	}
	if got != 12.5 {
		t.Errorf("FirstValue = %v, want 12.5", got)
	}
}

func TestFirstValueEmpty(t *testing.T) {
	c := fakePrometheus(t, `{"status":"success","data":{"resultType":"vector","result":[]}}`)

	_, err := c.FirstValue("absent_metric")
	if !errors.Is(err, ErrNoResult) {
		t.Errorf("err = %v, want ErrNoResult", err)
	}
}

func TestMapBy(t *testing.T) {
	c := fakePrometheus(t, pingVector)

	got, err := c.MapBy("ping_average_response_ms > 0", "name")
	if err != nil {
		t.Fatalf("MapBy: %v", err)
	}
	want := map[string]float64{"internet": 12.5, "wired": 0.8}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MapBy mismatch (-want +got):\n%s", diff)
	}
}
