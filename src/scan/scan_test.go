package scan_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/trailsight/trailsight/src/evidence"
	"github.com/trailsight/trailsight/src/probes"
	"github.com/trailsight/trailsight/src/risk"
	"github.com/trailsight/trailsight/src/scan"
)

type stubClassifier struct {
	pred risk.Prediction
}

func (s stubClassifier) Predict(risk.FeatureVector) risk.Prediction { return s.pred }

func newService(t *testing.T) *scan.Service {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/found/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "profile repositories")
	})
	mux.HandleFunc("/missing/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	specs := []probes.Spec{
		{
			Name:           "Found",
			URL:            srv.URL + "/found/{username}",
			SuccessMarkers: []string{"repositories"},
			Confidence:     evidence.ConfidenceHigh,
		},
		{
			Name:           "Missing",
			URL:            srv.URL + "/missing/{username}",
			SuccessMarkers: []string{"repositories"},
		},
	}
	runner := probes.NewRunner(specs, time.Second, 2)
	engine := risk.NewEngine(stubClassifier{
		pred: risk.Prediction{Level: risk.LevelMedium, Score: 55, Confidence: 0.55},
	})
	return scan.NewService(runner, engine)
}

func TestService_RunUsernameAndText(t *testing.T) {
	svc := newService(t)

	bundle, verdict := svc.Run(context.Background(), scan.Request{
		Username: "alice",
		Text:     "my email and dob",
	})

	assert.Len(t, bundle.PlatformsFound, 1)
	assert.Contains(t, bundle.PlatformsFound, "Found")
	assert.Equal(t, []string{"Missing"}, bundle.InconclusivePlatforms)
	assert.NotNil(t, bundle.TextRisk)
	assert.Equal(t, 15, bundle.TextRisk.Risk)

	assert.Equal(t, risk.LevelMedium, verdict.Level)
	assert.Equal(t, 55, verdict.Score)
	assert.Equal(t, []string{"Missing"}, verdict.InconclusivePlatforms)
}

func TestService_RunEmptyRequest(t *testing.T) {
	svc := newService(t)

	bundle, verdict := svc.Run(context.Background(), scan.Request{})

	assert.Empty(t, bundle.PlatformsFound)
	assert.Empty(t, bundle.InconclusivePlatforms)
	assert.Nil(t, bundle.TextRisk)
	assert.Equal(t, risk.LevelMedium, verdict.Level)
	// Absent signals still yield zeroed attribution, never an error.
	assert.Equal(t, 0, verdict.RiskBreakdown["platform_exposure"])
}

func TestService_MissingMediaFilesDegrade(t *testing.T) {
	svc := newService(t)

	bundle, _ := svc.Run(context.Background(), scan.Request{
		ImagePath: "no-such-image.jpg",
		VideoPath: "no-such-video.mp4",
		AudioPath: "no-such-audio.mp3",
	})

	assert.Empty(t, bundle.ImageMetadata)
	assert.Nil(t, bundle.GPS)
	if assert.NotNil(t, bundle.VideoRisk) {
		assert.Equal(t, 0, bundle.VideoRisk.Risk)
		assert.Equal(t, "Video uploaded, but metadata extraction failed", bundle.VideoRisk.Evidence)
	}
	if assert.NotNil(t, bundle.AudioRisk) {
		assert.Equal(t, 0, bundle.AudioRisk.Risk)
	}
}
