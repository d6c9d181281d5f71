package webserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/trailsight/trailsight/src/history"
	"github.com/trailsight/trailsight/src/reports"
)

type Reports struct {
	store     *history.Store
	generator *reports.Generator
}

func NewReports(store *history.Store, generator *reports.Generator) Reports {
	return Reports{store: store, generator: generator}
}

// Download renders the stored scan as a PDF and streams it back.
func (r Reports) Download(c *gin.Context) {
	id := c.Param("id")

	rec, bundle, verdict, err := r.store.Get(id)
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusNotFound, gin.H{"err": "scan not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	path, err := r.generator.Generate(reports.ReportData{
		ScanID:      rec.ID,
		Username:    rec.Username,
		GeneratedAt: rec.CreatedAt,
		Bundle:      bundle,
		Verdict:     *verdict,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	c.FileAttachment(path, fmt.Sprintf("trailsight-%s.pdf", rec.ID))
}
