// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
)

// Checker reports the health of a component. Details are returned even when
// the check fails.
type Checker interface {
	HealthCheck(context.Context) (interface{}, error)
}

type APIReply struct {
	Healthy bool        `json:"healthy"`
	Details interface{} `json:"details"`
	Error   string      `json:"error,omitempty"`
}

// NewHandler serves the result of [checker] as JSON, with status 503 while
// the check fails.
func NewHandler(checker Checker, registerer prometheus.Registerer) (http.Handler, error) {
	m, err := newMetrics(registerer)
	if err != nil {
		return nil, err
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		details, err := checker.HealthCheck(r.Context())
		reply := APIReply{
			Healthy: err == nil,
			Details: details,
		}
		status := http.StatusOK
		if err != nil {
			reply.Error = err.Error()
			status = http.StatusServiceUnavailable
			m.failingChecks.Set(1)
		} else {
			m.failingChecks.Set(0)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(reply)
	}), nil
}
