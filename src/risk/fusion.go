package risk

import (
	"math"

	"github.com/trailsight/trailsight/src/evidence"
)

// Verdict is the fused output of one scan. Constructed once, never mutated.
type Verdict struct {
	Score                 int             `json:"score"`
	Level                 Level           `json:"level"`
	Reasons               []string        `json:"reasons"`
	Explanations          []Explanation   `json:"explanations"`
	PlatformBreakdown     []PlatformScore `json:"platform_breakdown"`
	RiskBreakdown         map[string]int  `json:"risk_breakdown"`
	MLConfidence          *float64        `json:"ml_confidence"`
	InconclusivePlatforms []string        `json:"inconclusive_platforms"`
	Method                string          `json:"confidence"`
}

const methodNote = "Risk classification is generated using a trained machine learning model " +
	"combined with explainable OSINT heuristics. No private or restricted data sources are used."

// Engine fuses the transparent rule-based score with the learned tier.
// It performs no I/O, holds no per-scan state, and is safe to share.
type Engine struct {
	classifier Classifier
}

// NewEngine builds a fusion engine around an injected classifier.
func NewEngine(classifier Classifier) *Engine {
	return &Engine{classifier: classifier}
}

// Evaluate runs the full pipeline over an immutable bundle: feature
// extraction and rule scoring feed the classifier and the fusion step.
// Identical bundles produce identical verdicts.
func (e *Engine) Evaluate(b *evidence.Bundle) Verdict {
	rules := ScoreRules(b)
	features := ExtractFeatures(b)
	pred := e.classifier.Predict(features)

	var inconclusive []string
	if b != nil {
		inconclusive = b.InconclusivePlatforms
	}
	return Fuse(rules, pred, inconclusive)
}

// Fuse reconciles the two scoring paths. The classifier's tier is
// authoritative for the level and its calibrated confidence supplies the
// numeric score; the additive rule score is kept for attribution only, since
// it saturates at the cap.
func Fuse(rules RuleResult, pred Prediction, inconclusive []string) Verdict {
	v := Verdict{
		Score:                 pred.Score,
		Level:                 pred.Level,
		Reasons:               rules.Reasons,
		Explanations:          ExplainAll(rules.Reasons),
		PlatformBreakdown:     rules.PlatformBreakdown,
		RiskBreakdown:         breakdownPercentages(rules),
		InconclusivePlatforms: inconclusive,
		Method:                methodNote,
	}
	if pred.Level != LevelUnknown {
		conf := pred.Confidence
		v.MLConfidence = &conf
	}
	return v
}

// breakdownPercentages converts category sub-totals into percentages of the
// capped rule-based total. A zero total yields all-zero percentages.
func breakdownPercentages(rules RuleResult) map[string]int {
	parts := map[string]int{
		"platform_exposure":    rules.SubScores.PlatformExposure,
		"identity_correlation": rules.SubScores.IdentityCorrelation,
		"media_metadata":       rules.SubScores.MediaMetadata,
		"text_content":         rules.SubScores.TextContent,
	}

	out := make(map[string]int, len(parts))
	for name, part := range parts {
		if rules.Score <= 0 {
			out[name] = 0
			continue
		}
		out[name] = int(math.Round(float64(part) / float64(rules.Score) * 100))
	}
	return out
}
