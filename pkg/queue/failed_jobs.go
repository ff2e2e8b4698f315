package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/ameya/pkg/logger"
)

// FailedJobRecord is the database row written when a job exhausts its
// retries. The table is created by UseDB at boot.
type FailedJobRecord struct {
	ID       uint      `gorm:"primaryKey;autoIncrement"`
	JobType  string    `gorm:"size:255;not null;index"`
	Payload  string    `gorm:"type:text;not null"`
	Error    string    `gorm:"type:text"`
	Attempts int       `gorm:"not null;default:0"`
	FailedAt time.Time `gorm:"autoCreateTime"`
}

func (FailedJobRecord) TableName() string { return "ameya_failed_jobs" }

// failedJobDB is nil until UseDB is called. Without it failures stay in
// memory only.
var failedJobDB *gorm.DB

// UseDB persists failed jobs to the database. Call once after the
// database connection is up.
func UseDB(db *gorm.DB) {
	failedJobDB = db
	if err := db.AutoMigrate(&FailedJobRecord{}); err != nil {
		logger.Error("queue: migrate failed jobs table", "error", err)
	}
}

// persistFailed records the failure in memory and, when configured, in
// the database. The in-memory copy survives a failed insert.
func (m *manager) persistFailed(job Job, typeName string, lastErr error, attempts int) {
	m.mu.Lock()
	m.failed = append(m.failed, FailedJob{
		Job: job, Err: lastErr, FailedAt: time.Now(), Attempts: attempts,
	})
	m.mu.Unlock()

	if failedJobDB == nil {
		return
	}

	payload, err := json.Marshal(job)
	if err != nil {
		payload = []byte(fmt.Sprintf(`{"error": %q}`, err.Error()))
	}

	record := FailedJobRecord{
		JobType:  typeName,
		Payload:  string(payload),
		Error:    lastErr.Error(),
		Attempts: attempts,
		FailedAt: time.Now(),
	}
	if err := failedJobDB.Create(&record).Error; err != nil {
		logger.Error("queue: persist failed job", "type", typeName, "error", err)
	}
}
