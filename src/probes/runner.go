package probes

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/trailsight/trailsight/src/evidence"
)

const (
	defaultTimeout     = 5 * time.Second
	defaultConcurrency = 8
)

// Runner checks a username against a set of platform specs with bounded
// concurrency. A timeout or error on one platform resolves that platform to
// inconclusive; it never aborts the scan.
type Runner struct {
	client      *http.Client
	specs       []Spec
	concurrency int
}

// NewRunner builds a runner. Zero timeout and concurrency pick the defaults
// (5s per request, 8 in flight).
func NewRunner(specs []Spec, timeout time.Duration, concurrency int) *Runner {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Runner{
		client:      &http.Client{Timeout: timeout},
		specs:       specs,
		concurrency: concurrency,
	}
}

// Specs returns the runner's platform table.
func (r *Runner) Specs() []Spec {
	return r.specs
}

// Check probes a single platform. A nil record with nil error means the
// check completed but existence could not be established.
func (r *Runner) Check(ctx context.Context, spec Spec, username string) (*evidence.PlatformRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, spec.URLFor(username), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := readBody(resp.Body)
	if err != nil {
		return nil, err
	}
	return spec.Evaluate(resp.StatusCode, body, username), nil
}

// ScanUsername probes every configured platform concurrently and waits for
// the full set before returning, so callers always score a complete bundle.
// Output ordering is independent of request completion order.
func (r *Runner) ScanUsername(ctx context.Context, username string) (map[string]evidence.PlatformRecord, []string) {
	return r.ScanPlatforms(ctx, username, nil)
}

// ScanPlatforms probes the named subset of platforms, or all of them when
// names is empty.
func (r *Runner) ScanPlatforms(ctx context.Context, username string, names []string) (map[string]evidence.PlatformRecord, []string) {
	found := make(map[string]evidence.PlatformRecord)
	var inconclusive []string
	if username == "" {
		return found, inconclusive
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for _, spec := range r.specs {
		if len(wanted) > 0 && !wanted[spec.Name] {
			continue
		}
		spec := spec
		g.Go(func() error {
			rec, err := r.Check(ctx, spec, username)
			mu.Lock()
			defer mu.Unlock()
			if err != nil || rec == nil {
				inconclusive = append(inconclusive, spec.Name)
				return nil
			}
			found[spec.Name] = *rec
			return nil
		})
	}

	_ = g.Wait()
	sort.Strings(inconclusive)
	return found, inconclusive
}
