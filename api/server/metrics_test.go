// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistrationFailure(t *testing.T) {
	reg := prometheus.NewRegistry()

	metrics1, err := newMetrics(reg)
	require.NoError(t, err)
	require.NotNil(t, metrics1)

	// Second registration should fail due to duplicate metrics
	metrics2, err := newMetrics(reg)
	require.Error(t, err)
	require.Nil(t, metrics2)
}

func TestWrapHandler(t *testing.T) {
	require := require.New(t)

	metrics, err := newMetrics(prometheus.NewRegistry())
	require.NoError(err)

	handler := metrics.wrapHandler("fracvm", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		require.Equal(float64(1), testutil.ToFloat64(metrics.inflight))
		w.WriteHeader(http.StatusTeapot)
	}))

	for range 3 {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
		require.Equal(http.StatusTeapot, w.Code)
	}

	require.Equal(float64(3), testutil.ToFloat64(metrics.requests.WithLabelValues(http.MethodPost, "fracvm")))
	require.Zero(testutil.ToFloat64(metrics.inflight))
	require.Equal(1, testutil.CollectAndCount(metrics.duration))
}
