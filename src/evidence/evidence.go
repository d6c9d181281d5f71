package evidence

// Visibility describes how much of a found profile is publicly reachable.
type Visibility string

const (
	VisibilityPublic  Visibility = "PUBLIC"
	VisibilityPrivate Visibility = "PRIVATE"
	// VisibilityExistsUnknown marks accounts that exist but whose visibility
	// could not be determined (login walls, regional blocks).
	VisibilityExistsUnknown Visibility = "EXISTS (VISIBILITY UNKNOWN)"
)

// Confidence grades how reliable a platform probe's existence signal is.
type Confidence string

const (
	ConfidenceHigh    Confidence = "HIGH"
	ConfidenceMedium  Confidence = "MEDIUM"
	ConfidenceLow     Confidence = "LOW"
	ConfidenceUnknown Confidence = "UNKNOWN"
)

// Richness estimates how much content a public profile exposes.
type Richness string

const (
	RichnessLow    Richness = "LOW"
	RichnessMedium Richness = "MEDIUM"
	RichnessHigh   Richness = "HIGH"
)

// PlatformRecord is one platform's probe result. Produced once by a probe,
// read-only thereafter.
type PlatformRecord struct {
	URL        string     `json:"url,omitempty"`
	Visibility Visibility `json:"visibility"`
	Confidence Confidence `json:"confidence"`
	Richness   Richness   `json:"richness"`
	Evidence   string     `json:"evidence,omitempty"`
}

// MediaReport carries a pre-capped risk contribution from a media extractor
// (video capped at 30, audio at 25 by the extractor itself).
type MediaReport struct {
	Risk     int               `json:"risk"`
	Signals  []string          `json:"signals"`
	Metadata map[string]string `json:"metadata"`
	Evidence string            `json:"evidence"`
}

// TextReport is the text analyzer output, risk capped at 25.
type TextReport struct {
	Risk     int      `json:"risk"`
	Findings []string `json:"findings"`
}

// GeoReport signals geolocation leakage inferred from image metadata.
type GeoReport struct {
	Risk     int    `json:"risk"`
	Evidence string `json:"evidence"`
}

// GPSFix is a decoded EXIF coordinate pair, degrees, 6-decimal precision,
// sign per hemisphere reference.
type GPSFix struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Bundle aggregates every raw signal collected for one scan. It is assembled
// exactly once and never mutated afterwards; a nil sub-report means the
// corresponding probe did not run, which is distinct from "probed, empty".
type Bundle struct {
	PlatformsFound        map[string]PlatformRecord `json:"platforms_found"`
	InconclusivePlatforms []string                  `json:"inconclusive_platforms"`
	ImageMetadata         map[string]string         `json:"image_metadata,omitempty"`
	GPS                   *GPSFix                   `json:"gps,omitempty"`
	VideoRisk             *MediaReport              `json:"video_risk,omitempty"`
	AudioRisk             *MediaReport              `json:"audio_risk,omitempty"`
	TextRisk              *TextReport               `json:"text_risk,omitempty"`
	GeoRisk               *GeoReport                `json:"geo_risk,omitempty"`
}

// GPSKeyVariants lists the EXIF key spellings that indicate embedded
// coordinates across extractor versions.
var GPSKeyVariants = []string{
	"GPSLatitude",
	"GPSLongitude",
	"GPS GPSLatitude",
	"GPS GPSLongitude",
}

// HasGPS reports whether the bundle's image metadata carries location data.
func (b *Bundle) HasGPS() bool {
	if b == nil {
		return false
	}
	if b.GPS != nil {
		return true
	}
	for _, key := range GPSKeyVariants {
		if _, ok := b.ImageMetadata[key]; ok {
			return true
		}
	}
	return false
}
