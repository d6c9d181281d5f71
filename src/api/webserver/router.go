// Package webserver wires the HTTP API: token auth, scan submission and
// retrieval, website exposure checks, and PDF report downloads.
package webserver

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/trailsight/trailsight/src/api/config"
	"github.com/trailsight/trailsight/src/history"
	"github.com/trailsight/trailsight/src/probes"
	"github.com/trailsight/trailsight/src/reports"
	"github.com/trailsight/trailsight/src/scan"
	"github.com/trailsight/trailsight/src/webexposure"
)

func New(cfg config.Config, db *gorm.DB, rdb *redis.Client, svc *scan.Service, runner *probes.Runner) *gin.Engine {
	r := gin.Default()
	attachRoutes(r, cfg, db, rdb, svc, runner)
	return r
}

func attachRoutes(r *gin.Engine, cfg config.Config, db *gorm.DB, rdb *redis.Client, svc *scan.Service, runner *probes.Runner) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	store := history.NewStore(db)
	generator := reports.NewGenerator(cfg.ReportDir)
	analyzer := webexposure.NewAnalyzer(0)

	authH := NewAuth(rdb, []byte(cfg.JWTSecret), cfg.APIKeyHash)
	scanH := NewScans(svc, store, rdb, cfg.UploadDir)
	exposureH := NewExposure(analyzer, db)
	reportH := NewReports(store, generator)
	platformH := NewPlatforms(runner)

	limiter := NewRateLimiter(30, time.Minute)

	v1 := r.Group("/v1")
	{
		v1.POST("/auth/token", authH.Token)
		v1.GET("/platforms", platformH.List)

		secured := v1.Use(JWTMiddleware([]byte(cfg.JWTSecret)), RateLimitMiddleware(limiter))
		secured.POST("/scans", scanH.Create)
		secured.GET("/scans/:id", scanH.Get)
		secured.GET("/scans/:id/report", reportH.Download)
		secured.POST("/exposure", exposureH.Check)
	}
}
