package webserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/trailsight/trailsight/src/probes"
)

type Platforms struct {
	runner *probes.Runner
}

func NewPlatforms(runner *probes.Runner) Platforms {
	return Platforms{runner: runner}
}

// List exposes the configured platform probe table.
func (p Platforms) List(c *gin.Context) {
	specs := p.runner.Specs()
	out := make([]gin.H, 0, len(specs))
	for _, spec := range specs {
		out = append(out, gin.H{
			"name":       spec.Name,
			"url":        strings.ReplaceAll(spec.URL, "{username}", "<username>"),
			"confidence": spec.Confidence,
		})
	}
	c.JSON(http.StatusOK, gin.H{"platforms": out})
}
