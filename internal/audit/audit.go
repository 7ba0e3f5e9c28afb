package audit

import (
	"context"

	"github.com/crocobrasseur/website/internal/models"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Recorder appends admin activity entries. Recording never fails the
// request that triggered it.
type Recorder struct {
	db *gorm.DB
}

// NewRecorder constructs a Recorder.
func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

// Entry describes one auditable action.
type Entry struct {
	AdminID     uint64
	Action      string
	TableName   string
	RecordID    uint64
	Description string
	IPAddress   string
}

// Record inserts an activity log row. Errors are logged and swallowed.
func (r *Recorder) Record(ctx context.Context, entry Entry) {
	if r == nil || r.db == nil {
		return
	}
	row := models.ActivityLog{
		AdminID:     entry.AdminID,
		Action:      entry.Action,
		TableName:   entry.TableName,
		RecordID:    entry.RecordID,
		Description: entry.Description,
		IPAddress:   entry.IPAddress,
	}
	if errCreate := r.db.WithContext(ctx).Create(&row).Error; errCreate != nil {
		log.WithError(errCreate).Warnf("audit entry dropped: admin=%d action=%s", entry.AdminID, entry.Action)
	}
}
