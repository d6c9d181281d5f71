package webserver

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/trailsight/trailsight/src/api/data"
	"github.com/trailsight/trailsight/src/history"
	"github.com/trailsight/trailsight/src/scan"
)

type Scans struct {
	svc       *scan.Service
	store     *history.Store
	rdb       *redis.Client
	uploadDir string
	sanitizer *bluemonday.Policy
}

func NewScans(svc *scan.Service, store *history.Store, rdb *redis.Client, uploadDir string) Scans {
	return Scans{
		svc:       svc,
		store:     store,
		rdb:       rdb,
		uploadDir: uploadDir,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Create accepts a multipart scan request: optional username, free text, and
// image, video, and audio uploads. At least one signal source is required.
func (s Scans) Create(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("single_username"))
	text := s.sanitizer.Sanitize(c.PostForm("text_input"))

	var platforms []string
	if raw := c.PostForm("platforms"); raw != "" {
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				platforms = append(platforms, p)
			}
		}
	}

	scanID := uuid.NewString()
	req := scan.Request{
		Username:  username,
		Platforms: platforms,
		Text:      text,
	}

	var saved []string
	defer func() {
		for _, p := range saved {
			_ = os.Remove(p)
		}
	}()
	for _, upload := range []struct {
		field string
		dst   *string
	}{
		{"image_file", &req.ImagePath},
		{"video_file", &req.VideoPath},
		{"audio_file", &req.AudioPath},
	} {
		fh, err := c.FormFile(upload.field)
		if err != nil {
			continue
		}
		path := filepath.Join(s.uploadDir, scanID+"-"+upload.field+filepath.Ext(fh.Filename))
		if err := c.SaveUploadedFile(fh, path); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"err": "failed to store upload"})
			return
		}
		saved = append(saved, path)
		*upload.dst = path
	}

	if username == "" && text == "" && len(saved) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"err": "no scan inputs provided"})
		return
	}

	bundle, verdict := s.svc.Run(c.Request.Context(), req)

	var newPlatforms []string
	if username != "" {
		if added, err := s.store.NewPlatformsSince(username, bundle); err == nil {
			newPlatforms = added
		}
	}
	if newPlatforms == nil {
		newPlatforms = []string{}
	}

	if err := s.store.Save(scanID, username, bundle, verdict); err != nil {
		log.Printf("scans: persist %s: %v", scanID, err)
	}

	payload := gin.H{
		"id":            scanID,
		"verdict":       verdict,
		"new_platforms": newPlatforms,
	}
	if raw, err := json.Marshal(payload); err == nil {
		if err := data.CacheVerdict(c, s.rdb, scanID, raw); err != nil {
			log.Printf("scans: cache %s: %v", scanID, err)
		}
	}

	_ = data.PublishScan(context.Background(), s.rdb, map[string]interface{}{
		"id":       scanID,
		"username": username,
		"score":    verdict.Score,
		"level":    string(verdict.Level),
		"time":     time.Now().Unix(),
	})

	c.JSON(http.StatusCreated, payload)
}

// Get returns a stored scan verdict, served from the redis cache when warm.
func (s Scans) Get(c *gin.Context) {
	id := c.Param("id")

	if raw, err := data.CachedVerdict(c, s.rdb, id); err == nil {
		c.Data(http.StatusOK, "application/json", raw)
		return
	}

	rec, _, verdict, err := s.store.Get(id)
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusNotFound, gin.H{"err": "scan not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":         rec.ID,
		"username":   rec.Username,
		"created_at": rec.CreatedAt,
		"verdict":    verdict,
	})
}
