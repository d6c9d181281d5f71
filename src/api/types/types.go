package types

import "time"

// Scans
type Scan struct {
	ID        string `gorm:"primaryKey;size:36"`
	Username  string `gorm:"size:128;index"`
	Target    string `gorm:"size:256"`
	Bundle    string `gorm:"type:longtext"`
	Verdict   string `gorm:"type:longtext"`
	Score     int    `gorm:"index"`
	Level     string `gorm:"size:16"`
	CreatedAt time.Time
}

// Exposure assessments for personal websites
type ExposureCheck struct {
	ID        string `gorm:"primaryKey;size:36"`
	Target    string `gorm:"size:256;index"`
	Report    string `gorm:"type:longtext"`
	Score     int
	Level     string `gorm:"size:16"`
	CreatedAt time.Time
}
