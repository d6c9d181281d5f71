// Package scan orchestrates one full exposure scan: platform probes, media
// metadata extraction, text analysis, and geolocation inference feeding the
// risk engine.
package scan

import (
	"context"
	"log"

	"github.com/trailsight/trailsight/src/evidence"
	"github.com/trailsight/trailsight/src/geo"
	"github.com/trailsight/trailsight/src/media"
	"github.com/trailsight/trailsight/src/probes"
	"github.com/trailsight/trailsight/src/risk"
	"github.com/trailsight/trailsight/src/textscan"
)

// Request describes one scan. Empty fields skip the corresponding signal
// source; media paths point at already-saved uploads.
type Request struct {
	Username  string
	Platforms []string
	Text      string
	ImagePath string
	VideoPath string
	AudioPath string
}

// Service runs scans end to end.
type Service struct {
	runner *probes.Runner
	engine *risk.Engine
}

func NewService(runner *probes.Runner, engine *risk.Engine) *Service {
	return &Service{runner: runner, engine: engine}
}

// Run collects evidence for the request and scores it. Signal sources never
// abort the scan; each degrades to absent evidence on failure.
func (s *Service) Run(ctx context.Context, req Request) (*evidence.Bundle, risk.Verdict) {
	b := &evidence.Bundle{
		PlatformsFound:        map[string]evidence.PlatformRecord{},
		InconclusivePlatforms: []string{},
		ImageMetadata:         map[string]string{},
	}

	if req.Username != "" {
		b.PlatformsFound, b.InconclusivePlatforms = s.runner.ScanPlatforms(ctx, req.Username, req.Platforms)
	}

	if req.ImagePath != "" {
		meta, fix := media.ExtractImageMetadata(req.ImagePath)
		b.ImageMetadata = meta
		b.GPS = fix
		if report := geo.InferLocation(meta); report != nil {
			b.GeoRisk = report
		}
	}

	if req.VideoPath != "" {
		report := media.AnalyzeVideo(ctx, req.VideoPath)
		b.VideoRisk = &report
	}

	if req.AudioPath != "" {
		report := media.AnalyzeAudio(ctx, req.AudioPath)
		b.AudioRisk = &report
	}

	if req.Text != "" {
		report := textscan.Analyze(req.Text)
		b.TextRisk = &report
	}

	verdict := s.engine.Evaluate(b)
	log.Printf("scan: username=%q platforms=%d inconclusive=%d score=%d level=%s",
		req.Username, len(b.PlatformsFound), len(b.InconclusivePlatforms), verdict.Score, verdict.Level)
	return b, verdict
}
