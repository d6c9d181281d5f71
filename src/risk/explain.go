package risk

import "strings"

// Explanation pairs a scoring reason with mitigation advice.
type Explanation struct {
	Reason     string `json:"reason"`
	Mitigation string `json:"mitigation"`
}

// explainRule maps a case-insensitive substring pattern to advice. The table
// is ordered: the first matching rule wins.
type explainRule struct {
	pattern string
	advice  string
}

var explainRules = []explainRule{
	{"identity", "Avoid reusing the same username across platforms to reduce cross-platform correlation."},
	{"public profile", "Restrict public visibility and remove unnecessary personal details."},
	{"metadata", "Strip metadata from images before sharing online."},
	{"private", "Private profiles reduce exposure but still confirm account existence."},
}

const defaultAdvice = "Review platform privacy and content exposure settings."

// Explain returns mitigation advice for a single reason string.
func Explain(reason string) string {
	lower := strings.ToLower(reason)
	for _, rule := range explainRules {
		if strings.Contains(lower, rule.pattern) {
			return rule.advice
		}
	}
	return defaultAdvice
}

// ExplainAll attaches advice to every reason, preserving discovery order.
func ExplainAll(reasons []string) []Explanation {
	out := make([]Explanation, 0, len(reasons))
	for _, r := range reasons {
		out = append(out, Explanation{Reason: r, Mitigation: Explain(r)})
	}
	return out
}
