package probes

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/trailsight/trailsight/src/evidence"
)

// DefaultSpecs returns the built-in platform table. The same shapes can be
// supplied from a YAML file to extend coverage without a rebuild.
func DefaultSpecs() []Spec {
	return []Spec{
		{
			Name:           "Instagram",
			URL:            "https://www.instagram.com/{username}/",
			SuccessMarkers: []string{`"username"`},
			FailureMarkers: []string{
				"profile isn't available",
				"sorry, this page isn't available",
				"page not found",
				"the link you followed may be broken",
			},
			PrivateMarkers: []string{
				`"is_private":true`,
				"this account is private",
				"follow to see their photos",
			},
			RichnessToken: `"shortcode"`,
			Confidence:    evidence.ConfidenceHigh,
		},
		{
			Name:           "Facebook",
			URL:            "https://www.facebook.com/{username}",
			SuccessMarkers: []string{"timeline", "friends", "photos"},
			FailureMarkers: []string{
				"log in to facebook",
				"this content isn't available",
				"page not found",
				"create new account",
			},
			RichnessToken: "post",
			Confidence:    evidence.ConfidenceLow,
		},
		{
			Name:            "Threads",
			URL:             "https://www.threads.net/@{username}",
			SuccessMarkers:  []string{"threads"},
			FailureMarkers:  []string{"page not found", "log in"},
			DefaultRichness: evidence.RichnessMedium,
			Confidence:      evidence.ConfidenceMedium,
		},
		{
			Name:            "GitHub",
			URL:             "https://github.com/{username}",
			SuccessMarkers:  []string{"repositories"},
			FailureMarkers:  []string{"not found"},
			RichnessToken:   "contribution",
			DefaultRichness: evidence.RichnessMedium,
			Confidence:      evidence.ConfidenceHigh,
		},
		{
			Name:            "Reddit",
			URL:             "https://www.reddit.com/user/{username}/",
			SuccessMarkers:  []string{"karma"},
			FailureMarkers:  []string{"nobody on reddit goes by that name", "page not found"},
			RichnessToken:   "comment",
			DefaultRichness: evidence.RichnessMedium,
			Confidence:      evidence.ConfidenceMedium,
		},
	}
}

// LoadSpecs reads platform specs from a YAML file. An empty path falls back
// to the built-in table.
func LoadSpecs(path string) ([]Spec, error) {
	if path == "" {
		return DefaultSpecs(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("probes: read specs %s: %w", path, err)
	}
	var specs []Spec
	if err := yaml.Unmarshal(raw, &specs); err != nil {
		return nil, fmt.Errorf("probes: parse specs %s: %w", path, err)
	}
	for i, s := range specs {
		if s.Name == "" || s.URL == "" {
			return nil, fmt.Errorf("probes: spec %d missing name or url", i)
		}
	}
	return specs, nil
}
