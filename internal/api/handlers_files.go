// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

package api

import (
	"errors"
	"mime"
	"net/http"
	"net/url"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/scanserv/internal/fileinfo"
	"github.com/tomtom215/scanserv/internal/logging"
	"github.com/tomtom215/scanserv/internal/metrics"
)

// RenameRequest is the body of PUT /files/{name}.
type RenameRequest struct {
	NewName string `json:"newName" validate:"required,filename" example:"invoice.jpg"`
}

// fileParam returns the {name} URL parameter. chi routes on RawPath when
// the request carries one (e.g. an encoded "/"), and only then is the
// parameter still escaped.
func fileParam(r *http.Request) string {
	raw := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return raw
	}
	name, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return name
}

// fileError attaches an HTTP code to FileInfo failures.
func fileError(err error) error {
	switch {
	case errors.Is(err, fileinfo.ErrNotExist):
		return &requestError{code: http.StatusNotFound, msg: err.Error()}
	case errors.Is(err, fileinfo.ErrNotContained):
		return &requestError{code: http.StatusBadRequest, msg: err.Error()}
	case errors.Is(err, fileinfo.ErrExists):
		return &requestError{code: http.StatusConflict, msg: err.Error()}
	}
	return err
}

// ListFiles returns the scanned files.
//
// @Summary List scanned files
// @Description Returns the files in the output directory, newest first.
// @Tags Files
// @Produce json
// @Success 200 {array} fileinfo.Entry "Scanned files"
// @Failure 500 {object} ErrorPayload "Failed to read the output directory"
// @Security BasicAuth
// @Router /files [get]
func (h *Handler) ListFiles(w http.ResponseWriter, r *http.Request) error {
	files, err := h.api.ListFiles(r.Context())
	if err != nil {
		return err
	}
	if files == nil {
		files = []fileinfo.Entry{}
	}
	respondJSON(w, http.StatusOK, files)
	return nil
}

// FileAction runs a configured action against a file.
//
// @Summary Run file action
// @Description Runs the named action (command or S3 upload) against the named file.
// @Tags Files
// @Produce plain
// @Param name path string true "File name" example("scan_2026-03-14 09.26.53.jpg")
// @Param action path string true "Action name" example("upload")
// @Success 200 {string} string "200"
// @Failure 500 {object} ErrorPayload "Unknown action, missing file or action failure"
// @Security BasicAuth
// @Router /files/{name}/actions/{action} [post]
func (h *Handler) FileAction(w http.ResponseWriter, r *http.Request) error {
	if err := h.api.FileAction(r.Context(), fileParam(r), chi.URLParam(r, "action")); err != nil {
		return err
	}
	respondText(w, http.StatusOK, "200")
	return nil
}

// ReadThumbnail returns the thumbnail of a file.
//
// @Summary Get file thumbnail
// @Description Returns a JPEG thumbnail of an image scan. Thumbnails are generated on first request.
// @Tags Files
// @Produce jpeg
// @Param name path string true "File name"
// @Success 200 {file} binary "Thumbnail image"
// @Failure 500 {object} ErrorPayload "Missing file or unsupported type"
// @Security BasicAuth
// @Router /files/{name}/thumbnail [get]
func (h *Handler) ReadThumbnail(w http.ResponseWriter, r *http.Request) error {
	data, err := h.api.ReadThumbnail(r.Context(), fileParam(r))
	if err != nil {
		return err
	}
	respondBytes(w, http.StatusOK, mimetype.Detect(data).String(), data)
	return nil
}

// DownloadFile streams a file from the output directory as an attachment.
// The name is joined to the output root as given.
//
// @Summary Download file
// @Description Streams the named file from the output directory as a download.
// @Tags Files
// @Produce octet-stream
// @Param name path string true "File name"
// @Success 200 {file} binary "File contents"
// @Failure 500 {object} ErrorPayload "File not found"
// @Security BasicAuth
// @Router /files/{name} [get]
func (h *Handler) DownloadFile(w http.ResponseWriter, r *http.Request) error {
	f := fileinfo.New(h.config.Paths.Output, fileParam(r))
	fh, err := f.Open()
	if err != nil {
		return fileError(err)
	}
	defer func() {
		if cerr := fh.Close(); cerr != nil {
			logging.Ctx(r.Context()).Debug().Err(cerr).Msg("Failed to close download")
		}
	}()

	st, err := fh.Stat()
	if err != nil {
		return err
	}
	if st.IsDir() {
		return &requestError{code: http.StatusNotFound, msg: f.Name() + ": " + fileinfo.ErrNotExist.Error()}
	}

	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": f.Name()}))
	metrics.RecordFileOperation("download")
	http.ServeContent(w, r, f.Name(), st.ModTime(), fh)
	return nil
}

// DeleteFile removes a file and its thumbnail.
//
// @Summary Delete file
// @Description Deletes the named file and its thumbnail.
// @Tags Files
// @Produce json
// @Param name path string true "File name"
// @Success 200 {object} fileinfo.Entry "The deleted file"
// @Failure 500 {object} ErrorPayload "File not found"
// @Security BasicAuth
// @Router /files/{name} [delete]
func (h *Handler) DeleteFile(w http.ResponseWriter, r *http.Request) error {
	entry, err := h.api.DeleteFile(r.Context(), fileParam(r))
	if err != nil {
		return err
	}
	respondJSON(w, http.StatusOK, entry)
	return nil
}

// RenameFile renames a file in the output directory. A thumbnail with the
// old name is renamed too. The thumbnail moves before the file so the output
// watch, which reacts to the file's rename, finds nothing left to drop.
//
// @Summary Rename file
// @Description Renames the named file. Its thumbnail, when present, follows the new name. Renaming onto an existing file is refused with code 409.
// @Tags Files
// @Accept json
// @Produce plain
// @Param name path string true "File name"
// @Param request body RenameRequest true "New name"
// @Success 200 {string} string "200"
// @Failure 500 {object} ErrorPayload "Invalid name, file not found or target exists"
// @Security BasicAuth
// @Router /files/{name} [put]
func (h *Handler) RenameFile(w http.ResponseWriter, r *http.Request) error {
	var req RenameRequest
	if err := bind(r, &req); err != nil {
		return err
	}

	name := fileParam(r)
	log := logging.Ctx(r.Context())
	f := fileinfo.New(h.config.Paths.Output, name)

	thumb := fileinfo.New(h.config.Paths.Thumbnail, name)
	movedThumb := false
	if name != req.NewName && f.Exists() && thumb.Exists() && !fileinfo.New(h.config.Paths.Output, req.NewName).Exists() {
		// No scan owns a thumbnail under the new name; anything there is stale.
		if _, err := fileinfo.New(h.config.Paths.Thumbnail, req.NewName).Delete(); err != nil && !errors.Is(err, fileinfo.ErrNotExist) {
			log.Warn().Err(err).Str("file", req.NewName).Msg("Failed to drop stale thumbnail")
		}
		if err := thumb.Rename(req.NewName); err != nil {
			log.Warn().Err(err).Str("file", name).Msg("Failed to rename thumbnail")
		} else {
			movedThumb = true
		}
	}

	if err := f.Rename(req.NewName); err != nil {
		if movedThumb {
			if rerr := thumb.Rename(name); rerr != nil {
				log.Warn().Err(rerr).Str("file", name).Msg("Failed to restore thumbnail")
			}
		}
		return fileError(err)
	}
	metrics.RecordFileOperation("rename")

	respondText(w, http.StatusOK, "200")
	return nil
}
