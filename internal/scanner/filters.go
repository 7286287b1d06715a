// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

package scanner

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Filter transforms a scanned image.
type Filter func(image.Image) image.Image

type namedFilter struct {
	name string
	fn   Filter
}

// filters is ordered; Context lists them in this order.
var filters = []namedFilter{
	{"filter.auto-level", autoLevel},
	{"filter.threshold", threshold},
	{"filter.blur", func(img image.Image) image.Image { return imaging.Blur(img, 1) }},
	{"filter.grayscale", func(img image.Image) image.Image { return imaging.Grayscale(img) }},
	{"filter.sharpen", func(img image.Image) image.Image { return imaging.Sharpen(img, 1) }},
	{"filter.invert", func(img image.Image) image.Image { return imaging.Invert(img) }},
}

// FilterNames returns the names of the supported filters.
func FilterNames() []string {
	names := make([]string, len(filters))
	for i, f := range filters {
		names[i] = f.name
	}
	return names
}

func lookupFilter(name string) (Filter, bool) {
	for _, f := range filters {
		if f.name == name {
			return f.fn, true
		}
	}
	return nil, false
}

// validateFilters rejects unknown filter names.
func validateFilters(names []string) error {
	for _, n := range names {
		if _, ok := lookupFilter(n); !ok {
			return badRequest(ErrUnknownFilter, "unknown filter %q", n)
		}
	}
	return nil
}

// applyFilters runs the named filters in order. Names must be validated first.
func applyFilters(img image.Image, names []string) image.Image {
	for _, n := range names {
		if fn, ok := lookupFilter(n); ok {
			img = fn(img)
		}
	}
	return img
}

// autoLevel stretches luminance so the darkest and brightest 0.5% of pixels
// map to black and white.
func autoLevel(img image.Image) image.Image {
	hist := imaging.Histogram(img)

	const clip = 0.005
	lo, hi := 0, 255
	var acc float64
	for i := 0; i < 256; i++ {
		acc += hist[i]
		if acc > clip {
			lo = i
			break
		}
	}
	acc = 0
	for i := 255; i >= 0; i-- {
		acc += hist[i]
		if acc > clip {
			hi = i
			break
		}
	}
	if hi <= lo {
		return imaging.Clone(img)
	}

	scale := 255.0 / float64(hi-lo)
	stretch := func(v uint8) uint8 {
		f := (float64(v) - float64(lo)) * scale
		switch {
		case f < 0:
			return 0
		case f > 255:
			return 255
		}
		return uint8(f + 0.5)
	}
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{R: stretch(c.R), G: stretch(c.G), B: stretch(c.B), A: c.A}
	})
}

// threshold converts to pure black and white around mid grey.
func threshold(img image.Image) image.Image {
	gray := imaging.Grayscale(img)
	return imaging.AdjustFunc(gray, func(c color.NRGBA) color.NRGBA {
		v := uint8(0)
		if c.R >= 128 {
			v = 255
		}
		return color.NRGBA{R: v, G: v, B: v, A: c.A}
	})
}
