// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

/*
Package metrics defines the Prometheus collectors exported at /metrics.

Collectors are registered with the default registry through promauto at package
init, so importing the package is enough to expose them:

	r.Handle("/metrics", promhttp.Handler())

	metrics.RecordScan("scan", err)
	metrics.RecordFileAction("s3", err)

Label values are bounded: endpoints are chi route patterns, never raw paths.
*/
package metrics
