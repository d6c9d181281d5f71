package risk_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trailsight/trailsight/src/risk"
)

// Weights push HIGH sharply up with platform_count so predictions are
// unambiguous in tests.
const testModel = `{
	"features": ["platform_count", "high_confidence_accounts", "private_profiles",
		"image_metadata", "media_risk", "text_risk", "identity_correlation"],
	"classes": ["LOW", "MEDIUM", "HIGH"],
	"weights": [
		[-2.0, 0, 0, 0, 0, 0, 0],
		[0.1, 0, 0, 0, 0, 0, 0],
		[2.0, 0.5, 0, 0.5, 0.1, 0.1, 0.2]
	],
	"intercepts": [3.0, 0.5, -4.0]
}`

func writeModel(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestModelClassifier_UnloadedDegradesToUnknown(t *testing.T) {
	c := risk.NewModelClassifier("does-not-exist.json")
	assert.False(t, c.Ready())

	pred := c.Predict(risk.FeatureVector{PlatformCount: 5})
	assert.Equal(t, risk.LevelUnknown, pred.Level)
	assert.Equal(t, 0, pred.Score)
	assert.Equal(t, 0.0, pred.Confidence)
}

func TestModelClassifier_LoadRejectsFeatureMismatch(t *testing.T) {
	bad := `{
		"features": ["platform_count", "text_risk"],
		"classes": ["LOW"],
		"weights": [[0.1, 0.1]],
		"intercepts": [0]
	}`
	c := risk.NewModelClassifier(writeModel(t, bad))
	err := c.Load()
	assert.Error(t, err)
	assert.False(t, c.Ready())
}

func TestModelClassifier_LoadRejectsShapeMismatch(t *testing.T) {
	bad := `{
		"features": ["platform_count", "high_confidence_accounts", "private_profiles",
			"image_metadata", "media_risk", "text_risk", "identity_correlation"],
		"classes": ["LOW", "HIGH"],
		"weights": [[0, 0, 0, 0, 0, 0, 0]],
		"intercepts": [0, 0]
	}`
	c := risk.NewModelClassifier(writeModel(t, bad))
	assert.Error(t, c.Load())
}

func TestModelClassifier_PredictTiers(t *testing.T) {
	c := risk.NewModelClassifier(writeModel(t, testModel))
	require.NoError(t, c.Load())
	require.True(t, c.Ready())

	low := c.Predict(risk.FeatureVector{})
	assert.Equal(t, risk.LevelLow, low.Level)

	high := c.Predict(risk.FeatureVector{
		PlatformCount:          5,
		HighConfidenceAccounts: 3,
		ImageMetadata:          1,
		MediaRisk:              40,
		IdentityCorrelation:    20,
	})
	assert.Equal(t, risk.LevelHigh, high.Level)

	// Score is the max posterior scaled to 0-100; confidence is the same
	// probability rounded to two decimals.
	assert.GreaterOrEqual(t, high.Score, 1)
	assert.LessOrEqual(t, high.Score, 100)
	assert.InDelta(t, float64(high.Score)/100, high.Confidence, 0.01)
}

func TestModelClassifier_UnknownClassLabel(t *testing.T) {
	weird := `{
		"features": ["platform_count", "high_confidence_accounts", "private_profiles",
			"image_metadata", "media_risk", "text_risk", "identity_correlation"],
		"classes": ["CRITICAL"],
		"weights": [[0, 0, 0, 0, 0, 0, 0]],
		"intercepts": [1.0]
	}`
	c := risk.NewModelClassifier(writeModel(t, weird))
	require.NoError(t, c.Load())
	pred := c.Predict(risk.FeatureVector{})
	assert.Equal(t, risk.LevelUnknown, pred.Level)
}
