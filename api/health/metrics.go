// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package health

import "github.com/prometheus/client_golang/prometheus"

type healthMetrics struct {
	// failingChecks is 1 while the last check failed
	failingChecks prometheus.Gauge
}

func newMetrics(registerer prometheus.Registerer) (*healthMetrics, error) {
	m := &healthMetrics{
		failingChecks: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "checks_failing",
			Help: "number of currently failing health checks",
		}),
	}
	m.failingChecks.Set(0)
	return m, registerer.Register(m.failingChecks)
}
