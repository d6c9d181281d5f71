package risk

import (
	"fmt"
	"sort"
	"strings"

	"github.com/trailsight/trailsight/src/evidence"
)

const (
	imageMetadataWeight = 15
	defaultPlatformBase = 5
	maxScore            = 100
)

// platformBase holds fixed per-platform exposure weights. Platforms not
// listed score the default weight.
var platformBase = map[string]int{
	"GitHub":    5,
	"LinkedIn":  5,
	"Instagram": 10,
	"Threads":   10,
	"Facebook":  15,
	"Reddit":    25,
}

var richnessMultiplier = map[evidence.Richness]float64{
	evidence.RichnessLow:    0.5,
	evidence.RichnessMedium: 1.0,
	evidence.RichnessHigh:   1.4,
}

// PlatformScore attributes part of the rule-based score to one platform.
type PlatformScore struct {
	Platform   string              `json:"platform"`
	Score      int                 `json:"score"`
	Base       int                 `json:"base"`
	Visibility evidence.Visibility `json:"visibility"`
	Richness   evidence.Richness   `json:"richness"`
}

// CategoryScores are the per-category sub-totals of the rule-based score,
// used for proportional breakdown in the fused verdict.
type CategoryScores struct {
	PlatformExposure    int
	IdentityCorrelation int
	MediaMetadata       int
	TextContent         int
}

// RuleResult is the transparent, additive scoring pass over a bundle.
type RuleResult struct {
	Score             int
	Reasons           []string
	PlatformBreakdown []PlatformScore
	SubScores         CategoryScores
}

// ScoreRules runs the deterministic point-accumulation pass. It never fails:
// absent or malformed sub-bundles contribute zero. Platforms are visited in
// name order so output is stable regardless of probe completion order.
func ScoreRules(b *evidence.Bundle) RuleResult {
	var res RuleResult
	if b == nil {
		return res
	}

	names := make([]string, 0, len(b.PlatformsFound))
	for name := range b.PlatformsFound {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		rec := b.PlatformsFound[name]
		base := defaultPlatformBase
		if w, ok := platformBase[name]; ok {
			base = w
		}

		var platformScore int
		switch rec.Visibility {
		case evidence.VisibilityPrivate:
			platformScore = int(float64(base) * 0.4)
			res.Reasons = append(res.Reasons,
				fmt.Sprintf("%s: Account exists but content is private, limiting public exposure", name))
		case evidence.VisibilityExistsUnknown:
			platformScore = int(float64(base) * 0.3)
			res.Reasons = append(res.Reasons,
				fmt.Sprintf("%s: Account exists but visibility could not be reliably determined due to platform restrictions", name))
		default:
			mult, ok := richnessMultiplier[rec.Richness]
			if !ok {
				mult = 0.5
			}
			platformScore = int(float64(base) * mult)
			res.Reasons = append(res.Reasons,
				fmt.Sprintf("%s: Public profile with %s information exposure", name, strings.ToLower(string(rec.Richness))))
		}

		res.Score += platformScore
		res.SubScores.PlatformExposure += platformScore
		res.PlatformBreakdown = append(res.PlatformBreakdown, PlatformScore{
			Platform:   name,
			Score:      platformScore,
			Base:       base,
			Visibility: rec.Visibility,
			Richness:   rec.Richness,
		})
	}

	// Identity correlation: cumulative threshold bonuses, max +20.
	platformCount := len(b.PlatformsFound)
	if platformCount >= 2 {
		res.Score += 10
		res.SubScores.IdentityCorrelation += 10
		res.Reasons = append(res.Reasons,
			"Same identifier reused across multiple platforms, enabling identity correlation")
	}
	if platformCount >= 4 {
		res.Score += 10
		res.SubScores.IdentityCorrelation += 10
		res.Reasons = append(res.Reasons,
			"Broad cross-platform presence increases profiling and tracking risk")
	}

	// Image metadata: flat contribution, conditional reasons are explanatory
	// only and add no further points.
	if len(b.ImageMetadata) > 0 {
		res.Score += imageMetadataWeight
		res.SubScores.MediaMetadata += imageMetadataWeight

		if _, ok := b.ImageMetadata["Make"]; ok {
			res.Reasons = append(res.Reasons, "Image metadata reveals device make/model")
		} else if _, ok := b.ImageMetadata["Model"]; ok {
			res.Reasons = append(res.Reasons, "Image metadata reveals device make/model")
		}
		if _, ok := b.ImageMetadata["DateTimeOriginal"]; ok {
			res.Reasons = append(res.Reasons, "Image metadata reveals capture timestamp")
		}
		if b.HasGPS() {
			res.Reasons = append(res.Reasons, "Image metadata contains precise GPS location")
		}
	}

	// Text, video and audio contributions arrive pre-capped by their
	// extractors and pass through verbatim.
	if b.TextRisk != nil {
		res.Score += b.TextRisk.Risk
		res.SubScores.TextContent += b.TextRisk.Risk
		res.Reasons = append(res.Reasons, b.TextRisk.Findings...)
	}
	if b.VideoRisk != nil {
		res.Score += b.VideoRisk.Risk
		res.SubScores.MediaMetadata += b.VideoRisk.Risk
		res.Reasons = append(res.Reasons, b.VideoRisk.Signals...)
	}
	if b.AudioRisk != nil {
		res.Score += b.AudioRisk.Risk
		res.SubScores.MediaMetadata += b.AudioRisk.Risk
		res.Reasons = append(res.Reasons, b.AudioRisk.Signals...)
	}

	if len(b.InconclusivePlatforms) > 0 {
		res.Reasons = append(res.Reasons,
			"Some platforms could not be fully assessed due to access restrictions")
	}

	// Cap once, after all categories are summed.
	if res.Score > maxScore {
		res.Score = maxScore
	}
	return res
}
