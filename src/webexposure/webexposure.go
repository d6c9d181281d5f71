// Package webexposure assesses how much a personal website or domain leaks:
// reachable sensitive files, listable admin paths, robots.txt hints, missing
// security headers, and DNS records that tie the domain to other services.
package webexposure

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	defaultTimeout = 8 * time.Second
	maxBodySize    = 1 << 18
	// A 200 with a tiny body is usually a soft error page, not a real file.
	minBodyBytes = 50
)

var sensitiveFiles = []string{
	".env",
	".git/config",
	"backup.zip",
	"db.sql",
	"config.php",
}

var interestingDirs = []string{
	"admin",
	"login",
	"uploads",
	"backup",
}

var securityHeaders = []string{
	"Content-Security-Policy",
	"Strict-Transport-Security",
	"X-Frame-Options",
	"X-Content-Type-Options",
	"Referrer-Policy",
	"Permissions-Policy",
}

// DNSRecords holds the resolver output for the scanned domain.
type DNSRecords struct {
	A   []string `json:"a"`
	MX  []string `json:"mx"`
	TXT []string `json:"txt"`
}

// Findings is the raw observation set, separated from scoring so the
// assessment stays a pure function.
type Findings struct {
	Target           string     `json:"target"`
	ExposedFiles     []string   `json:"exposed_files"`
	InterestingPaths []string   `json:"interesting_paths"`
	RobotsDisallowed []string   `json:"robots_disallowed"`
	RobotsSitemaps   []string   `json:"robots_sitemaps"`
	MissingHeaders   []string   `json:"missing_headers"`
	DNS              DNSRecords `json:"dns"`
}

// Report is the scored exposure assessment returned to callers.
type Report struct {
	Findings
	Score   int      `json:"score"`
	Level   string   `json:"level"`
	Reasons []string `json:"reasons"`
}

// Analyzer probes a target website. The zero resolver and client use sane
// defaults; both are injectable for tests.
type Analyzer struct {
	client   *http.Client
	resolver *net.Resolver
}

func NewAnalyzer(timeout time.Duration) *Analyzer {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Analyzer{
		client:   &http.Client{Timeout: timeout},
		resolver: net.DefaultResolver,
	}
}

// NormalizeTarget makes a bare domain fetchable and strips a trailing slash
// so path joins stay predictable.
func NormalizeTarget(target string) string {
	t := strings.TrimSpace(target)
	if t == "" {
		return ""
	}
	if !strings.HasPrefix(t, "http://") && !strings.HasPrefix(t, "https://") {
		t = "https://" + t
	}
	return strings.TrimRight(t, "/")
}

// Analyze gathers findings for the target and scores them. Individual probe
// failures degrade to absent findings rather than failing the assessment.
func (a *Analyzer) Analyze(ctx context.Context, target string) (Report, error) {
	base := NormalizeTarget(target)
	if base == "" {
		return Report{}, fmt.Errorf("webexposure: empty target")
	}

	f := Findings{Target: base}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for _, file := range sensitiveFiles {
		file := file
		g.Go(func() error {
			if a.pathServed(gctx, base+"/"+file) {
				mu.Lock()
				f.ExposedFiles = append(f.ExposedFiles, file)
				mu.Unlock()
			}
			return nil
		})
	}
	for _, dir := range interestingDirs {
		dir := dir
		g.Go(func() error {
			if a.pathServed(gctx, base+"/"+dir) {
				mu.Lock()
				f.InterestingPaths = append(f.InterestingPaths, dir)
				mu.Unlock()
			}
			return nil
		})
	}
	g.Go(func() error {
		f.RobotsDisallowed, f.RobotsSitemaps = a.robotsHints(gctx, base)
		return nil
	})
	g.Go(func() error {
		f.MissingHeaders = a.missingHeaders(gctx, base)
		return nil
	})
	g.Go(func() error {
		f.DNS = a.lookupDNS(gctx, domainOf(base))
		return nil
	})
	_ = g.Wait()

	sort.Strings(f.ExposedFiles)
	sort.Strings(f.InterestingPaths)

	return AssessExposure(f), nil
}

// AssessExposure turns raw findings into a scored report. Exposed files
// dominate; everything else adds incrementally.
func AssessExposure(f Findings) Report {
	score := 0
	var reasons []string

	if len(f.ExposedFiles) > 0 {
		score += 70
		reasons = append(reasons, fmt.Sprintf(
			"Sensitive files publicly reachable: %s", strings.Join(f.ExposedFiles, ", ")))
	}
	for _, p := range f.InterestingPaths {
		score += 10
		reasons = append(reasons, fmt.Sprintf("Interesting path reachable: /%s", p))
	}
	if len(f.RobotsDisallowed) > 0 {
		score += 5
		reasons = append(reasons, fmt.Sprintf(
			"robots.txt discloses %d hidden paths", len(f.RobotsDisallowed)))
	}
	switch missing := len(f.MissingHeaders); {
	case missing >= 4:
		score += 20
		reasons = append(reasons, fmt.Sprintf("%d security headers missing", missing))
	case missing >= 2:
		score += 10
		reasons = append(reasons, fmt.Sprintf("%d security headers missing", missing))
	}
	if score > 100 {
		score = 100
	}

	level := "LOW"
	switch {
	case score >= 70:
		level = "HIGH"
	case score >= 30:
		level = "MEDIUM"
	}
	if reasons == nil {
		reasons = []string{"No notable web exposure detected"}
	}

	return Report{Findings: f, Score: score, Level: level, Reasons: reasons}
}

// pathServed reports whether the URL answers 200 with a non-trivial body.
func (a *Analyzer) pathServed(ctx context.Context, url string) bool {
	body, _, ok := a.fetch(ctx, url)
	return ok && len(body) > minBodyBytes
}

func (a *Analyzer) robotsHints(ctx context.Context, base string) (disallowed, sitemaps []string) {
	body, _, ok := a.fetch(ctx, base+"/robots.txt")
	if !ok {
		return nil, nil
	}
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		lower := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lower, "disallow:"):
			p := strings.TrimSpace(line[len("disallow:"):])
			if p != "" && p != "/" {
				disallowed = append(disallowed, p)
			}
		case strings.HasPrefix(lower, "sitemap:"):
			if s := strings.TrimSpace(line[len("sitemap:"):]); s != "" {
				sitemaps = append(sitemaps, s)
			}
		}
	}
	return disallowed, sitemaps
}

func (a *Analyzer) missingHeaders(ctx context.Context, base string) []string {
	_, header, ok := a.fetch(ctx, base)
	if !ok {
		return nil
	}
	var missing []string
	for _, h := range securityHeaders {
		if header.Get(h) == "" {
			missing = append(missing, h)
		}
	}
	return missing
}

func (a *Analyzer) lookupDNS(ctx context.Context, domain string) DNSRecords {
	var rec DNSRecords
	if domain == "" {
		return rec
	}
	if addrs, err := a.resolver.LookupHost(ctx, domain); err == nil {
		rec.A = addrs
	}
	if mxs, err := a.resolver.LookupMX(ctx, domain); err == nil {
		for _, mx := range mxs {
			rec.MX = append(rec.MX, strings.TrimSuffix(mx.Host, "."))
		}
	}
	if txts, err := a.resolver.LookupTXT(ctx, domain); err == nil {
		rec.TXT = txts
	}
	return rec
}

func (a *Analyzer) fetch(ctx context.Context, url string) (string, http.Header, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", nil, false
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return "", nil, false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", nil, false
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", nil, false
	}
	return string(raw), resp.Header, true
}

func domainOf(base string) string {
	d := strings.TrimPrefix(strings.TrimPrefix(base, "https://"), "http://")
	if i := strings.IndexByte(d, '/'); i >= 0 {
		d = d[:i]
	}
	if i := strings.IndexByte(d, ':'); i >= 0 {
		d = d[:i]
	}
	return d
}
