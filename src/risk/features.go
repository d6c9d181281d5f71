package risk

import "github.com/trailsight/trailsight/src/evidence"

// FeatureNames is the canonical feature order the classifier was trained on.
// The extractor and the model loader both reference this single list; a model
// artifact whose feature list differs is rejected at load time.
var FeatureNames = []string{
	"platform_count",
	"high_confidence_accounts",
	"private_profiles",
	"image_metadata",
	"media_risk",
	"text_risk",
	"identity_correlation",
}

// FeatureVector is the fixed-shape numeric input to the learned classifier.
type FeatureVector struct {
	PlatformCount          int
	HighConfidenceAccounts int
	PrivateProfiles        int
	ImageMetadata          int
	MediaRisk              int
	TextRisk               int
	IdentityCorrelation    int
}

// Values returns the vector in FeatureNames order.
func (v FeatureVector) Values() []float64 {
	return []float64{
		float64(v.PlatformCount),
		float64(v.HighConfidenceAccounts),
		float64(v.PrivateProfiles),
		float64(v.ImageMetadata),
		float64(v.MediaRisk),
		float64(v.TextRisk),
		float64(v.IdentityCorrelation),
	}
}

// ExtractFeatures derives the feature vector from an evidence bundle. Pure
// function: absent evidence contributes zero, partial bundles never fail.
func ExtractFeatures(b *evidence.Bundle) FeatureVector {
	if b == nil {
		return FeatureVector{}
	}

	var v FeatureVector
	v.PlatformCount = len(b.PlatformsFound)

	for _, rec := range b.PlatformsFound {
		if rec.Confidence == evidence.ConfidenceHigh {
			v.HighConfidenceAccounts++
		}
		if rec.Visibility == evidence.VisibilityPrivate {
			v.PrivateProfiles++
		}
	}

	if len(b.ImageMetadata) > 0 {
		v.ImageMetadata = 1
		v.MediaRisk += imageMetadataWeight
	}
	if b.VideoRisk != nil {
		v.MediaRisk += b.VideoRisk.Risk
	}
	if b.AudioRisk != nil {
		v.MediaRisk += b.AudioRisk.Risk
	}
	if b.TextRisk != nil {
		v.TextRisk = b.TextRisk.Risk
	}

	v.IdentityCorrelation = identityCorrelation(v.PlatformCount)
	return v
}

// identityCorrelation applies the trained thresholds exactly: reproducibility
// with the offline model depends on these steps, not a smooth function.
func identityCorrelation(platformCount int) int {
	score := 0
	if platformCount >= 2 {
		score += 10
	}
	if platformCount >= 4 {
		score += 10
	}
	return score
}
