// Package metadata extracts EXIF information from uploaded photographs.
package metadata

import (
	"bytes"
	"fmt"

	"github.com/rwcarlsen/goexif/exif"

	"github.com/your-org/sightline/internal/models"
)

// Extract reads EXIF data from image bytes and returns whatever could be
// recovered: capture time, GPS coordinates, and device info. Images without
// an EXIF block return an error; partially populated blocks return partial
// metadata rather than failing.
func Extract(data []byte) (*models.ImageMetadata, error) {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode exif: %w", err)
	}

	meta := &models.ImageMetadata{}
	populated := false

	if t, err := x.DateTime(); err == nil {
		meta.TakenAt = &t
		populated = true
	}

	if lat, lon, err := x.LatLong(); err == nil {
		meta.Latitude = &lat
		meta.Longitude = &lon
		populated = true
	}

	if tag, err := x.Get(exif.Make); err == nil {
		if v, err := tag.StringVal(); err == nil {
			meta.CameraMake = v
			populated = true
		}
	}
	if tag, err := x.Get(exif.Model); err == nil {
		if v, err := tag.StringVal(); err == nil {
			meta.CameraModel = v
			populated = true
		}
	}

	if !populated {
		return nil, fmt.Errorf("exif block carries no usable fields")
	}
	return meta, nil
}
