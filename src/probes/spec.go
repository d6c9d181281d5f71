// Package probes implements the canonical platform-probe abstraction:
// declarative platform specs evaluated by one shared runner.
package probes

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/trailsight/trailsight/src/evidence"
)

const (
	userAgent   = "Mozilla/5.0 (compatible; Trailsight-OSINT/1.0)"
	maxBodySize = 1 << 20
)

// Spec declares how to check one platform for a username. Specs are data:
// adding a platform means adding an entry, not code.
type Spec struct {
	Name string `yaml:"name"`
	// URL contains a {username} placeholder.
	URL string `yaml:"url"`
	// SuccessMarkers must ALL appear in the page body for a hit.
	SuccessMarkers []string `yaml:"success_markers"`
	// FailureMarkers are checked first; ANY match short-circuits to not-found.
	FailureMarkers []string `yaml:"failure_markers"`
	// PrivateMarkers flip visibility to PRIVATE when any match.
	PrivateMarkers []string `yaml:"private_markers"`
	// RichnessToken, when set, is counted in the body to grade richness
	// (>20 HIGH, >5 MEDIUM, else LOW).
	RichnessToken   string              `yaml:"richness_token"`
	DefaultRichness evidence.Richness   `yaml:"default_richness"`
	Confidence      evidence.Confidence `yaml:"confidence"`
}

// URLFor expands the username into the spec's URL template.
func (s Spec) URLFor(username string) string {
	return strings.ReplaceAll(s.URL, "{username}", username)
}

// Evaluate inspects one fetched page body and either produces a platform
// record or nil when existence could not be established.
func (s Spec) Evaluate(status int, body string, username string) *evidence.PlatformRecord {
	if status != http.StatusOK {
		return nil
	}
	page := strings.ToLower(body)

	for _, marker := range s.FailureMarkers {
		if strings.Contains(page, strings.ToLower(marker)) {
			return nil
		}
	}
	for _, marker := range s.SuccessMarkers {
		if !strings.Contains(page, strings.ToLower(marker)) {
			return nil
		}
	}

	visibility := evidence.VisibilityPublic
	for _, marker := range s.PrivateMarkers {
		if strings.Contains(page, strings.ToLower(marker)) {
			visibility = evidence.VisibilityPrivate
			break
		}
	}

	richness := s.DefaultRichness
	if richness == "" {
		richness = evidence.RichnessLow
	}
	if s.RichnessToken != "" {
		switch n := strings.Count(page, strings.ToLower(s.RichnessToken)); {
		case n > 20:
			richness = evidence.RichnessHigh
		case n > 5:
			richness = evidence.RichnessMedium
		default:
			richness = evidence.RichnessLow
		}
	}

	confidence := s.Confidence
	if confidence == "" {
		confidence = evidence.ConfidenceMedium
	}

	rec := &evidence.PlatformRecord{
		URL:        s.URLFor(username),
		Visibility: visibility,
		Confidence: confidence,
		Richness:   richness,
	}
	if visibility == evidence.VisibilityPrivate {
		rec.Evidence = fmt.Sprintf("%s account exists (private)", s.Name)
	} else {
		rec.Evidence = fmt.Sprintf("Public %s profile detected", s.Name)
	}
	return rec
}

func readBody(r io.Reader) (string, error) {
	raw, err := io.ReadAll(io.LimitReader(r, maxBodySize))
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
