package webserver

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trailsight/trailsight/src/api/types"
	"github.com/trailsight/trailsight/src/webexposure"
)

type Exposure struct {
	analyzer *webexposure.Analyzer
	db       *gorm.DB
}

func NewExposure(analyzer *webexposure.Analyzer, db *gorm.DB) Exposure {
	return Exposure{analyzer: analyzer, db: db}
}

// Check assesses a personal website or domain for public exposure.
func (e Exposure) Check(c *gin.Context) {
	var req struct {
		Target string `json:"target" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	report, err := e.analyzer.Analyze(c.Request.Context(), req.Target)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	id := uuid.NewString()
	if raw, jerr := json.Marshal(report); jerr == nil {
		rec := types.ExposureCheck{
			ID:     id,
			Target: report.Target,
			Report: string(raw),
			Score:  report.Score,
			Level:  report.Level,
		}
		if err := e.db.Create(&rec).Error; err != nil {
			log.Printf("exposure: persist %s: %v", id, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "report": report})
}
