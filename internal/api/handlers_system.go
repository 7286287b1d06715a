// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

package api

import "net/http"

// SystemInfo returns host and backend information.
//
// @Summary Get system information
// @Description Returns host, runtime and scanner backend details.
// @Tags System
// @Produce json
// @Success 200 {object} scanner.SystemInfo "System information"
// @Failure 500 {object} ErrorPayload "Failed to collect system information"
// @Security BasicAuth
// @Router /system [get]
func (h *Handler) SystemInfo(w http.ResponseWriter, r *http.Request) error {
	info, err := h.api.SystemInfo(r.Context())
	if err != nil {
		return err
	}
	respondJSON(w, http.StatusOK, info)
	return nil
}
