package risk

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"
)

// Level is the final risk tier.
type Level string

const (
	LevelLow     Level = "LOW"
	LevelMedium  Level = "MEDIUM"
	LevelHigh    Level = "HIGH"
	LevelUnknown Level = "UNKNOWN"
)

// Prediction is the classifier output for one feature vector.
type Prediction struct {
	Level      Level
	Score      int
	Confidence float64
}

// Classifier maps a feature vector to a risk tier with calibrated confidence.
type Classifier interface {
	Predict(v FeatureVector) Prediction
}

// modelArtifact is the serialized form of the offline-trained multinomial
// logistic regression: one weight row and intercept per class.
type modelArtifact struct {
	Features   []string    `json:"features"`
	Classes    []string    `json:"classes"`
	Weights    [][]float64 `json:"weights"`
	Intercepts []float64   `json:"intercepts"`
}

// ModelClassifier serves a pre-trained model artifact. It is explicitly
// constructed and injected; failure to load is a checked condition and the
// classifier degrades to UNKNOWN predictions rather than failing scans.
type ModelClassifier struct {
	path  string
	model *modelArtifact
}

// NewModelClassifier returns an unloaded classifier for the given artifact
// path. Call Load before serving; Predict is safe either way.
func NewModelClassifier(path string) *ModelClassifier {
	return &ModelClassifier{path: path}
}

// Load reads and validates the model artifact. The artifact's feature list
// must match FeatureNames exactly, order included: a mismatch would silently
// corrupt every prediction, so it is rejected here.
func (c *ModelClassifier) Load() error {
	raw, err := os.ReadFile(c.path)
	if err != nil {
		return fmt.Errorf("risk: read model %s: %w", c.path, err)
	}

	var m modelArtifact
	if err := json.Unmarshal(raw, &m); err != nil {
		return fmt.Errorf("risk: parse model %s: %w", c.path, err)
	}

	if len(m.Features) != len(FeatureNames) {
		return fmt.Errorf("risk: model has %d features, want %d", len(m.Features), len(FeatureNames))
	}
	for i, name := range m.Features {
		if name != FeatureNames[i] {
			return fmt.Errorf("risk: model feature %d is %q, want %q", i, name, FeatureNames[i])
		}
	}
	if len(m.Classes) == 0 || len(m.Weights) != len(m.Classes) || len(m.Intercepts) != len(m.Classes) {
		return fmt.Errorf("risk: model class/weight shape mismatch")
	}
	for i, row := range m.Weights {
		if len(row) != len(m.Features) {
			return fmt.Errorf("risk: weight row %d has %d values, want %d", i, len(row), len(m.Features))
		}
	}

	c.model = &m
	log.Printf("risk: model loaded from %s (%d classes)", c.path, len(m.Classes))
	return nil
}

// Ready reports whether a model is loaded.
func (c *ModelClassifier) Ready() bool {
	return c != nil && c.model != nil
}

// Predict runs softmax over the class scores. Score is the max posterior
// probability scaled to 0-100; it is not derived from the rule-based score.
// Without a loaded model it returns the UNKNOWN degradation triple.
func (c *ModelClassifier) Predict(v FeatureVector) Prediction {
	if !c.Ready() {
		return Prediction{Level: LevelUnknown, Score: 0, Confidence: 0}
	}

	x := v.Values()
	logits := make([]float64, len(c.model.Classes))
	for i, row := range c.model.Weights {
		sum := c.model.Intercepts[i]
		for j, w := range row {
			sum += w * x[j]
		}
		logits[i] = sum
	}

	probs := softmax(logits)
	best := 0
	for i := range probs {
		if probs[i] > probs[best] {
			best = i
		}
	}

	level := Level(c.model.Classes[best])
	switch level {
	case LevelLow, LevelMedium, LevelHigh:
	default:
		level = LevelUnknown
	}

	maxProb := probs[best]
	return Prediction{
		Level:      level,
		Score:      int(math.Round(maxProb * 100)),
		Confidence: math.Round(maxProb*100) / 100,
	}
}

func softmax(logits []float64) []float64 {
	max := logits[0]
	for _, l := range logits[1:] {
		if l > max {
			max = l
		}
	}
	var total float64
	out := make([]float64, len(logits))
	for i, l := range logits {
		out[i] = math.Exp(l - max)
		total += out[i]
	}
	for i := range out {
		out[i] /= total
	}
	return out
}
