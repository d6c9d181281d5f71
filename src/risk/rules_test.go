package risk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trailsight/trailsight/src/evidence"
	"github.com/trailsight/trailsight/src/risk"
)

func TestScoreRules_EmptyBundle(t *testing.T) {
	res := risk.ScoreRules(&evidence.Bundle{})
	assert.Equal(t, 0, res.Score)
	assert.Empty(t, res.Reasons)
	assert.Empty(t, res.PlatformBreakdown)

	assert.Equal(t, 0, risk.ScoreRules(nil).Score)
}

func TestScoreRules_PublicRichnessMultipliers(t *testing.T) {
	// Reddit base 25: LOW 12, MEDIUM 25, HIGH 35 (int truncation).
	cases := []struct {
		richness evidence.Richness
		want     int
	}{
		{evidence.RichnessLow, 12},
		{evidence.RichnessMedium, 25},
		{evidence.RichnessHigh, 35},
	}
	for _, tc := range cases {
		b := &evidence.Bundle{
			PlatformsFound: map[string]evidence.PlatformRecord{
				"Reddit": {Visibility: evidence.VisibilityPublic, Richness: tc.richness},
			},
		}
		res := risk.ScoreRules(b)
		assert.Equal(t, tc.want, res.Score, "richness %s", tc.richness)
		assert.Len(t, res.PlatformBreakdown, 1)
		assert.Equal(t, tc.want, res.PlatformBreakdown[0].Score)
	}
}

func TestScoreRules_PrivateAndUnknownMultipliers(t *testing.T) {
	// Facebook base 15: private 15*0.4 = 6.
	b := &evidence.Bundle{
		PlatformsFound: map[string]evidence.PlatformRecord{
			"Facebook": {Visibility: evidence.VisibilityPrivate, Richness: evidence.RichnessHigh},
		},
	}
	res := risk.ScoreRules(b)
	assert.Equal(t, 6, res.Score)
	assert.Contains(t, res.Reasons[0], "content is private")

	// Instagram base 10: unknown visibility 10*0.3 = 3.
	b = &evidence.Bundle{
		PlatformsFound: map[string]evidence.PlatformRecord{
			"Instagram": {Visibility: evidence.VisibilityExistsUnknown},
		},
	}
	res = risk.ScoreRules(b)
	assert.Equal(t, 3, res.Score)
	assert.Contains(t, res.Reasons[0], "could not be reliably determined")
}

func TestScoreRules_UnknownPlatformDefaultBase(t *testing.T) {
	b := &evidence.Bundle{
		PlatformsFound: map[string]evidence.PlatformRecord{
			"Mastodon": {Visibility: evidence.VisibilityPublic, Richness: evidence.RichnessMedium},
		},
	}
	// Default base 5 at MEDIUM = 5.
	assert.Equal(t, 5, risk.ScoreRules(b).Score)
}

func TestScoreRules_IdentityCorrelationThresholds(t *testing.T) {
	mk := func(n int) *evidence.Bundle {
		names := []string{"A", "B", "C", "D", "E"}
		found := map[string]evidence.PlatformRecord{}
		for i := 0; i < n; i++ {
			found[names[i]] = evidence.PlatformRecord{
				Visibility: evidence.VisibilityPublic,
				Richness:   evidence.RichnessLow,
			}
		}
		return &evidence.Bundle{PlatformsFound: found}
	}

	// Each unlisted platform at LOW contributes int(5*0.5)=2.
	assert.Equal(t, 2, risk.ScoreRules(mk(1)).SubScores.PlatformExposure+risk.ScoreRules(mk(1)).SubScores.IdentityCorrelation)
	assert.Equal(t, 0, risk.ScoreRules(mk(1)).SubScores.IdentityCorrelation)
	assert.Equal(t, 10, risk.ScoreRules(mk(2)).SubScores.IdentityCorrelation)
	assert.Equal(t, 10, risk.ScoreRules(mk(3)).SubScores.IdentityCorrelation)
	assert.Equal(t, 20, risk.ScoreRules(mk(4)).SubScores.IdentityCorrelation)
	assert.Equal(t, 20, risk.ScoreRules(mk(5)).SubScores.IdentityCorrelation)
}

func TestScoreRules_ImageMetadataFlatWeight(t *testing.T) {
	b := &evidence.Bundle{
		ImageMetadata: map[string]string{
			"Make":             "Canon",
			"DateTimeOriginal": "2024:01:01 10:00:00",
			"GPSLatitude":      "48.858400",
		},
	}
	res := risk.ScoreRules(b)
	// Flat 15 regardless of how many tags matched.
	assert.Equal(t, 15, res.Score)
	assert.Equal(t, 15, res.SubScores.MediaMetadata)
	assert.Contains(t, res.Reasons, "Image metadata reveals device make/model")
	assert.Contains(t, res.Reasons, "Image metadata reveals capture timestamp")
	assert.Contains(t, res.Reasons, "Image metadata contains precise GPS location")
}

func TestScoreRules_MediaAndTextPassThrough(t *testing.T) {
	b := &evidence.Bundle{
		TextRisk:  &evidence.TextReport{Risk: 25, Findings: []string{"Text contains potential personal identifier: 'dob'"}},
		VideoRisk: &evidence.MediaReport{Risk: 30, Signals: []string{"Video metadata reveals creation timestamp"}},
		AudioRisk: &evidence.MediaReport{Risk: 25, Signals: []string{"Audio metadata reveals recording timestamp"}},
	}
	res := risk.ScoreRules(b)
	// 25 + 30 + 25 = 80, under the cap.
	assert.Equal(t, 80, res.Score)
	assert.Equal(t, 55, res.SubScores.MediaMetadata)
	assert.Equal(t, 25, res.SubScores.TextContent)
	assert.Len(t, res.Reasons, 3)
}

func TestScoreRules_CapAppliedOnce(t *testing.T) {
	b := &evidence.Bundle{
		PlatformsFound: map[string]evidence.PlatformRecord{
			"Reddit":    {Visibility: evidence.VisibilityPublic, Richness: evidence.RichnessHigh},
			"Facebook":  {Visibility: evidence.VisibilityPublic, Richness: evidence.RichnessHigh},
			"Instagram": {Visibility: evidence.VisibilityPublic, Richness: evidence.RichnessHigh},
			"Threads":   {Visibility: evidence.VisibilityPublic, Richness: evidence.RichnessHigh},
		},
		ImageMetadata: map[string]string{"Make": "Canon"},
		TextRisk:      &evidence.TextReport{Risk: 25},
		VideoRisk:     &evidence.MediaReport{Risk: 30},
	}
	res := risk.ScoreRules(b)
	assert.Equal(t, 100, res.Score)
	// Sub-scores stay uncapped for attribution.
	assert.Greater(t, res.SubScores.PlatformExposure+res.SubScores.IdentityCorrelation+
		res.SubScores.MediaMetadata+res.SubScores.TextContent, 100)
}

func TestScoreRules_InconclusiveReason(t *testing.T) {
	b := &evidence.Bundle{InconclusivePlatforms: []string{"Facebook"}}
	res := risk.ScoreRules(b)
	assert.Equal(t, 0, res.Score)
	assert.Contains(t, res.Reasons,
		"Some platforms could not be fully assessed due to access restrictions")
}

func TestScoreRules_DeterministicPlatformOrder(t *testing.T) {
	b := &evidence.Bundle{
		PlatformsFound: map[string]evidence.PlatformRecord{
			"Reddit":   {Visibility: evidence.VisibilityPublic, Richness: evidence.RichnessLow},
			"Facebook": {Visibility: evidence.VisibilityPublic, Richness: evidence.RichnessLow},
			"GitHub":   {Visibility: evidence.VisibilityPublic, Richness: evidence.RichnessLow},
		},
	}
	for i := 0; i < 5; i++ {
		res := risk.ScoreRules(b)
		assert.Equal(t, "Facebook", res.PlatformBreakdown[0].Platform)
		assert.Equal(t, "GitHub", res.PlatformBreakdown[1].Platform)
		assert.Equal(t, "Reddit", res.PlatformBreakdown[2].Platform)
	}
}
