// Package jobs persists the async message-processing jobs the HTTP API can
// enqueue instead of waiting for a reply inline. Jobs share the process-scoped
// sqlite database with the session store.
package jobs

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

type Job struct {
	ID string `gorm:"primaryKey;size:26"` // ULID length

	UserID string `gorm:"size:64;index;not null"`
	Prompt string `gorm:"type:text;not null"`

	Status Status `gorm:"type:varchar(16);index;not null"`

	// Filled when succeeded
	Reply  *string `gorm:"type:text"`
	Intent *string `gorm:"size:16"`

	// Filled when failed
	Error *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Job) TableName() string { return "bot_jobs" }

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) (*Repo, error) {
	if err := db.AutoMigrate(&Job{}); err != nil {
		return nil, err
	}
	return &Repo{db: db}, nil
}

func (r *Repo) Create(ctx context.Context, job *Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *Repo) Get(ctx context.Context, id string) (*Job, error) {
	var j Job
	if err := r.db.WithContext(ctx).First(&j, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *Repo) MarkRunning(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&Job{}).
		Where("id = ? AND status = ?", id, StatusQueued).
		Update("status", StatusRunning).Error
}

func (r *Repo) MarkSucceeded(ctx context.Context, id, reply, intent string) error {
	return r.db.WithContext(ctx).Model(&Job{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status": StatusSucceeded,
			"reply":  reply,
			"intent": intent,
			"error":  nil,
		}).Error
}

func (r *Repo) MarkFailed(ctx context.Context, id string, errMsg string) error {
	return r.db.WithContext(ctx).Model(&Job{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status": StatusFailed,
			"error":  errMsg,
			"reply":  nil,
			"intent": nil,
		}).Error
}
