// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

package scanner

import (
	"image"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
)

// Pipeline encodes a filtered scan into its output format.
type Pipeline struct {
	Name      string
	Extension string
	format    imaging.Format
	opts      []imaging.EncodeOption
}

// DefaultPipeline is used when a scan request names none.
const DefaultPipeline = "JPG | High quality"

var pipelines = []Pipeline{
	{Name: "JPG | High quality", Extension: ".jpg", format: imaging.JPEG, opts: []imaging.EncodeOption{imaging.JPEGQuality(92)}},
	{Name: "JPG | Medium", Extension: ".jpg", format: imaging.JPEG, opts: []imaging.EncodeOption{imaging.JPEGQuality(75)}},
	{Name: "JPG | Low", Extension: ".jpg", format: imaging.JPEG, opts: []imaging.EncodeOption{imaging.JPEGQuality(50)}},
	{Name: "PNG", Extension: ".png", format: imaging.PNG, opts: []imaging.EncodeOption{imaging.PNGCompressionLevel(png.BestSpeed)}},
	{Name: "TIF", Extension: ".tif", format: imaging.TIFF},
}

// PipelineNames returns the names of the supported pipelines.
func PipelineNames() []string {
	names := make([]string, len(pipelines))
	for i, p := range pipelines {
		names[i] = p.Name
	}
	return names
}

// lookupPipeline resolves name, defaulting the empty name.
func lookupPipeline(name string) (Pipeline, error) {
	if name == "" {
		name = DefaultPipeline
	}
	for _, p := range pipelines {
		if p.Name == name {
			return p, nil
		}
	}
	return Pipeline{}, badRequest(ErrUnknownPipeline, "unknown pipeline %q", name)
}

// Encode writes img to w in the pipeline's format.
func (p Pipeline) Encode(w io.Writer, img image.Image) error {
	return imaging.Encode(w, img, p.format, p.opts...)
}
