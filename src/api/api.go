package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/trailsight/trailsight/src/api/config"
	"github.com/trailsight/trailsight/src/api/data"
	"github.com/trailsight/trailsight/src/api/types"
	"github.com/trailsight/trailsight/src/api/webserver"
	"github.com/trailsight/trailsight/src/probes"
	"github.com/trailsight/trailsight/src/risk"
	"github.com/trailsight/trailsight/src/scan"
)

func main() {
	cfg := config.Load()

	db := data.MustMySQL(cfg.MySQLDSN)
	if err := db.AutoMigrate(&types.Scan{}, &types.ExposureCheck{}); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb := data.MustRedis(cfg.RedisURL)

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("upload dir: %v", err)
	}

	classifier := risk.NewModelClassifier(cfg.ModelPath)
	if err := classifier.Load(); err != nil {
		log.Printf("classifier unavailable, scans degrade to rules only: %v", err)
	}

	specs, err := probes.LoadSpecs(cfg.PlatformSpecPath)
	if err != nil {
		log.Fatalf("platform specs: %v", err)
	}
	runner := probes.NewRunner(specs, cfg.ProbeTimeout, cfg.ProbeConcurrency)

	engine := risk.NewEngine(classifier)
	svc := scan.NewService(runner, engine)

	router := webserver.New(cfg, db, rdb, svc, runner)
	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()
	log.Printf("Trailsight API listening on %s", cfg.Port)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	_ = httpSrv.Shutdown(shutCtx)
}
