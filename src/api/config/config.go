package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	MySQLDSN         string
	RedisURL         string
	JWTSecret        string
	APIKeyHash       string
	Port             string
	ProbeTimeout     time.Duration
	ProbeConcurrency int
	ModelPath        string
	PlatformSpecPath string
	UploadDir        string
	ReportDir        string
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		if def == "" {
			log.Fatalf("missing env %s", key)
		}
		return def
	}
	return v
}

func Load() Config {
	probeSecs, _ := strconv.Atoi(getenv("PROBE_TIMEOUT", "5"))
	probeConc, _ := strconv.Atoi(getenv("PROBE_CONCURRENCY", "8"))
	return Config{
		MySQLDSN:         getenv("MYSQL_DSN", "trailsight:trailsight@tcp(127.0.0.1:3306)/trailsight?parseTime=true"),
		RedisURL:         getenv("REDIS_URL", "redis://127.0.0.1:6379/0"),
		JWTSecret:        getenv("JWT_SECRET", ""),
		APIKeyHash:       getenv("API_KEY_HASH", ""),
		Port:             getenv("PORT", "8080"),
		ProbeTimeout:     time.Duration(probeSecs) * time.Second,
		ProbeConcurrency: probeConc,
		ModelPath:        getenv("MODEL_PATH", "models/risk_classifier.json"),
		PlatformSpecPath: os.Getenv("PLATFORM_SPEC_PATH"),
		UploadDir:        getenv("UPLOAD_DIR", "uploads"),
		ReportDir:        getenv("REPORT_DIR", "reports"),
	}
}
