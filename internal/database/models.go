package database

import (
	"time"

	"gorm.io/gorm"
)

// QueryLog is the best-effort audit record of one completed lookup.
// Writes never block or fail the caller's result.
type QueryLog struct {
	gorm.Model
	LookupID     string    `json:"lookup_id" gorm:"index"`
	Actor        string    `json:"actor"`
	Mode         string    `json:"mode"`
	Term         string    `json:"term"`
	TribunalHint string    `json:"tribunal_hint"`
	Provenance   string    `json:"provenance"`
	HitCount     int       `json:"hit_count"`
	QueryTime    time.Time `json:"query_time"`
}

func (QueryLog) TableName() string {
	return "query_logs"
}
