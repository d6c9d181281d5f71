// Package geo infers geospatial exposure from image metadata.
package geo

import "github.com/trailsight/trailsight/src/evidence"

const gpsRisk = 15

// InferLocation returns a geolocation risk report when any known GPS key
// variant is present in the image metadata, nil otherwise. There is no
// partial result.
func InferLocation(meta map[string]string) *evidence.GeoReport {
	if len(meta) == 0 {
		return nil
	}
	for _, key := range evidence.GPSKeyVariants {
		if _, ok := meta[key]; ok {
			return &evidence.GeoReport{
				Risk:     gpsRisk,
				Evidence: "Geolocation data detected in image metadata (EXIF GPS coordinates)",
			}
		}
	}
	return nil
}
