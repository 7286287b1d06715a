// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

package api

import (
	"net/http"

	"github.com/tomtom215/scanserv/internal/scanner"
)

// Scan scans a page into the output directory.
//
// @Summary Scan
// @Description Scans with the given device parameters, applies filters and the output pipeline, and stores the result in the output directory.
// @Tags Scan
// @Accept json
// @Produce json
// @Param request body scanner.ScanRequest true "Scan parameters, filters and pipeline"
// @Success 200 {object} scanner.ScanResult "The scanned file"
// @Failure 500 {object} ErrorPayload "Invalid parameters or scanner failure"
// @Security BasicAuth
// @Router /scan [post]
func (h *Handler) Scan(w http.ResponseWriter, r *http.Request) error {
	var req scanner.ScanRequest
	if err := bind(r, &req); err != nil {
		return err
	}
	result, err := h.api.Scan(r.Context(), req)
	if err != nil {
		return err
	}
	respondJSON(w, http.StatusOK, result)
	return nil
}
