package validation

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// DimensionLookup reports the pixel size of the image behind a URI.
type DimensionLookup interface {
	Dimensions(ctx context.Context, uri string) (width, height int, err error)
}

// PhotoExtension returns the lower-cased suffix after the last dot of uri and
// whether it is an accepted photo extension.
func PhotoExtension(uri string) (string, bool) {
	idx := strings.LastIndex(uri, ".")
	if idx < 0 {
		return "", false
	}
	ext := strings.ToLower(uri[idx+1:])
	return ext, ext == "jpg" || ext == "jpeg"
}

// IsSquare reports an exact 1:1 ratio. Degenerate sizes are never square.
func IsSquare(width, height int) bool {
	return width > 0 && height > 0 && width == height
}

type ImageChecker struct {
	lookup DimensionLookup
	log    zerolog.Logger
}

func NewImageChecker(lookup DimensionLookup, log zerolog.Logger) *ImageChecker {
	return &ImageChecker{lookup: lookup, log: log}
}

// IsAcceptable applies the photo gates in order: extension, dimension lookup,
// square ratio. Any failure rejects the image.
func (c *ImageChecker) IsAcceptable(ctx context.Context, uri string) bool {
	ext, ok := PhotoExtension(uri)
	if !ok {
		c.log.Debug().Str("uri", uri).Str("extension", ext).Msg("image rejected: extension")
		return false
	}

	width, height, err := c.lookup.Dimensions(ctx, uri)
	if err != nil {
		c.log.Warn().Err(err).Str("uri", uri).Msg("image rejected: dimension lookup failed")
		return false
	}

	if !IsSquare(width, height) {
		c.log.Debug().
			Str("uri", uri).
			Int("width", width).
			Int("height", height).
			Msg("image rejected: ratio")
		return false
	}
	return true
}
