// Package media extracts OSINT-relevant metadata from uploaded images,
// video, and audio files.
package media

import (
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/rwcarlsen/goexif/exif"

	"github.com/trailsight/trailsight/src/evidence"
)

// highValueTags are the EXIF fields worth surfacing; everything else is
// noise for exposure purposes.
var highValueTags = []exif.FieldName{
	exif.Make,
	exif.Model,
	exif.Software,
	exif.DateTimeOriginal,
	exif.DateTime,
	exif.ExposureTime,
	exif.FNumber,
	exif.ISOSpeedRatings,
	exif.FocalLength,
}

// ExtractImageMetadata pulls high-value EXIF tags and GPS coordinates from
// an image file. Extraction failures of any kind yield an empty map and a
// nil fix; image handling never fails a scan.
func ExtractImageMetadata(path string) (map[string]string, *evidence.GPSFix) {
	meta := map[string]string{}

	f, err := os.Open(path)
	if err != nil {
		return meta, nil
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return meta, nil
	}

	for _, name := range highValueTags {
		tag, err := x.Get(name)
		if err != nil {
			continue
		}
		if v := strings.Trim(tag.String(), `"`); v != "" {
			meta[string(name)] = v
		}
	}

	lat, lon, err := x.LatLong()
	if err != nil {
		return meta, nil
	}
	fix := &evidence.GPSFix{
		Lat: roundCoord(lat),
		Lon: roundCoord(lon),
	}
	meta["GPSLatitude"] = strconv.FormatFloat(fix.Lat, 'f', 6, 64)
	meta["GPSLongitude"] = strconv.FormatFloat(fix.Lon, 'f', 6, 64)
	return meta, fix
}

// roundCoord keeps coordinates at 6-decimal precision, sign already applied
// per hemisphere reference by the decoder.
func roundCoord(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
