// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

/*
Package cache provides a thread-safe in-memory cache with TTL expiration and a
bound on the number of entries.

The scanner uses it to keep recently rendered thumbnails in memory so the file
list view does not re-read every thumbnail from disk on each page load.

	thumbs := cache.New[[]byte](10*time.Minute, 512)
	defer thumbs.Close()

	thumbs.Set("scan_1.jpg", data)
	if b, ok := thumbs.Get("scan_1.jpg"); ok {
	    // serve b
	}

Expired entries are dropped lazily on Get and by a background sweep. When the
cache is full, Set evicts the entry closest to expiry.
*/
package cache
