// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

package api

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/tomtom215/scanserv/internal/scanner"
)

// PreviewResponse carries the preview image.
type PreviewResponse struct {
	// Content is the base64 encoded JPEG preview.
	Content string `json:"content"`
}

// queryFilters returns the filter names from repeated or comma separated
// filter query parameters.
func queryFilters(r *http.Request) []string {
	var filters []string
	for _, v := range r.URL.Query()["filter"] {
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				filters = append(filters, name)
			}
		}
	}
	return filters
}

// ReadPreview returns the current preview with filters applied.
//
// @Summary Get preview
// @Description Returns the current preview image, base64 encoded, with the requested filters applied. A blank image is returned when no preview exists.
// @Tags Preview
// @Produce json
// @Param filter query []string false "Filters to apply" collectionFormat(multi) example("filter.auto-level")
// @Success 200 {object} PreviewResponse "Preview image"
// @Failure 500 {object} ErrorPayload "Unknown filter or unreadable preview"
// @Security BasicAuth
// @Router /preview [get]
func (h *Handler) ReadPreview(w http.ResponseWriter, r *http.Request) error {
	data, err := h.api.ReadPreview(r.Context(), queryFilters(r))
	if err != nil {
		return err
	}
	respondJSON(w, http.StatusOK, PreviewResponse{Content: base64.StdEncoding.EncodeToString(data)})
	return nil
}

// DeletePreview removes the current preview.
//
// @Summary Delete preview
// @Description Deletes the current preview image.
// @Tags Preview
// @Produce json
// @Success 200 {object} fileinfo.Entry "The deleted preview"
// @Failure 500 {object} ErrorPayload "No preview exists"
// @Security BasicAuth
// @Router /preview [delete]
func (h *Handler) DeletePreview(w http.ResponseWriter, r *http.Request) error {
	entry, err := h.api.DeletePreview(r.Context())
	if err != nil {
		return err
	}
	respondJSON(w, http.StatusOK, entry)
	return nil
}

// CreatePreview runs a low resolution scan into the preview file.
//
// @Summary Create preview
// @Description Scans a low resolution preview with the given device parameters.
// @Tags Preview
// @Accept json
// @Produce json
// @Param request body scanner.PreviewRequest true "Scan parameters"
// @Success 200 {object} scanner.PreviewResult "The new preview"
// @Failure 500 {object} ErrorPayload "Invalid parameters or scanner failure"
// @Security BasicAuth
// @Router /preview [post]
func (h *Handler) CreatePreview(w http.ResponseWriter, r *http.Request) error {
	var req scanner.PreviewRequest
	if err := bind(r, &req); err != nil {
		return err
	}
	result, err := h.api.CreatePreview(r.Context(), req)
	if err != nil {
		return err
	}
	respondJSON(w, http.StatusOK, result)
	return nil
}
