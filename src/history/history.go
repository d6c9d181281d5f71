// Package history persists scan results and answers "what changed since the
// last scan" questions.
package history

import (
	"encoding/json"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/trailsight/trailsight/src/api/types"
	"github.com/trailsight/trailsight/src/evidence"
	"github.com/trailsight/trailsight/src/risk"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Save serializes and stores one completed scan. Callers treat failure as
// non-fatal; the verdict has already been computed and returned.
func (s *Store) Save(id, username string, b *evidence.Bundle, v risk.Verdict) error {
	bundleJSON, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("history: marshal bundle: %w", err)
	}
	verdictJSON, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("history: marshal verdict: %w", err)
	}
	rec := types.Scan{
		ID:       id,
		Username: username,
		Bundle:   string(bundleJSON),
		Verdict:  string(verdictJSON),
		Score:    v.Score,
		Level:    string(v.Level),
	}
	return s.db.Create(&rec).Error
}

// Get loads one stored scan with its bundle and verdict decoded.
func (s *Store) Get(id string) (*types.Scan, *evidence.Bundle, *risk.Verdict, error) {
	var rec types.Scan
	if err := s.db.First(&rec, "id = ?", id).Error; err != nil {
		return nil, nil, nil, err
	}
	var b evidence.Bundle
	if err := json.Unmarshal([]byte(rec.Bundle), &b); err != nil {
		return nil, nil, nil, fmt.Errorf("history: decode bundle %s: %w", id, err)
	}
	var v risk.Verdict
	if err := json.Unmarshal([]byte(rec.Verdict), &v); err != nil {
		return nil, nil, nil, fmt.Errorf("history: decode verdict %s: %w", id, err)
	}
	return &rec, &b, &v, nil
}

// NewPlatformsSince compares the latest stored scan for the username against
// a fresh bundle and lists platforms that were not present before. A user
// with no history sees every found platform as new.
func (s *Store) NewPlatformsSince(username string, current *evidence.Bundle) ([]string, error) {
	var prev types.Scan
	err := s.db.Where("username = ?", username).
		Order("created_at desc").
		First(&prev).Error
	if err == gorm.ErrRecordNotFound {
		return sortedPlatforms(current), nil
	}
	if err != nil {
		return nil, err
	}

	var prevBundle evidence.Bundle
	if err := json.Unmarshal([]byte(prev.Bundle), &prevBundle); err != nil {
		return nil, fmt.Errorf("history: decode bundle %s: %w", prev.ID, err)
	}

	var added []string
	for name := range current.PlatformsFound {
		if _, ok := prevBundle.PlatformsFound[name]; !ok {
			added = append(added, name)
		}
	}
	sort.Strings(added)
	return added, nil
}

func sortedPlatforms(b *evidence.Bundle) []string {
	names := make([]string, 0, len(b.PlatformsFound))
	for name := range b.PlatformsFound {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
