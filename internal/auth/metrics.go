// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BasicAuthAttempts counts Basic auth checks.
	// Labels:
	//   - outcome: "success", "missing", "invalid"
	BasicAuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_basic_attempts_total",
			Help: "Total number of HTTP Basic authentication attempts",
		},
		[]string{"outcome"},
	)
)

// RecordBasicAuth records the outcome of a Basic auth check.
func RecordBasicAuth(outcome string) {
	BasicAuthAttempts.WithLabelValues(outcome).Inc()
}
