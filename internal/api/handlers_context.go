// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

package api

import (
	"net/http"
)

// ReadContext returns devices, filters, pipelines, paper sizes and actions.
//
// @Summary Get scanner context
// @Description Returns the scanner devices with their options, the available filters, output pipelines, paper sizes and file actions. Devices are probed on first use and cached.
// @Tags Context
// @Produce json
// @Success 200 {object} scanner.Context "Scanner context"
// @Failure 500 {object} ErrorPayload "Scanner failure"
// @Security BasicAuth
// @Router /context [get]
func (h *Handler) ReadContext(w http.ResponseWriter, r *http.Request) error {
	sc, err := h.api.ReadContext(r.Context())
	if err != nil {
		return err
	}
	respondJSON(w, http.StatusOK, sc)
	return nil
}

// DeleteContext forgets the cached devices so the next read probes again.
//
// @Summary Reset scanner context
// @Description Clears cached scanner devices. The next context read probes the scanners again.
// @Tags Context
// @Produce json
// @Success 200 {object} object "Empty object"
// @Failure 500 {object} ErrorPayload "Failed to clear the device cache"
// @Security BasicAuth
// @Router /context [delete]
func (h *Handler) DeleteContext(w http.ResponseWriter, r *http.Request) error {
	if err := h.api.DeleteContext(r.Context()); err != nil {
		return err
	}
	respondJSON(w, http.StatusOK, struct{}{})
	return nil
}
