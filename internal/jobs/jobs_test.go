package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/suPer8Hu/supportbot/internal/common"
)

var testDBSeq int64

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	dsn := fmt.Sprintf("file:jobs_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	repo, err := NewRepo(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return repo
}

func newJob(t *testing.T) *Job {
	t.Helper()
	id, err := common.NewULID()
	if err != nil {
		t.Fatalf("ulid: %v", err)
	}
	return &Job{ID: id, UserID: "u1", Prompt: "hello", Status: StatusQueued}
}

func TestJobLifecycle(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	job := newJob(t)
	if err := repo.Create(ctx, job); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.Get(ctx, job.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != StatusQueued || got.UserID != "u1" || got.Prompt != "hello" {
		t.Fatalf("unexpected job: %+v", got)
	}

	if err := repo.MarkRunning(ctx, job.ID); err != nil {
		t.Fatalf("mark running: %v", err)
	}
	if err := repo.MarkSucceeded(ctx, job.ID, "Hello! How can I help you today?", "greeting"); err != nil {
		t.Fatalf("mark succeeded: %v", err)
	}

	got, err = repo.Get(ctx, job.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != StatusSucceeded {
		t.Fatalf("status = %q, want succeeded", got.Status)
	}
	if got.Reply == nil || *got.Reply != "Hello! How can I help you today?" {
		t.Fatalf("reply = %v", got.Reply)
	}
	if got.Intent == nil || *got.Intent != "greeting" {
		t.Fatalf("intent = %v", got.Intent)
	}
	if got.Error != nil {
		t.Fatalf("error should be nil, got %q", *got.Error)
	}
}

func TestJobMarkFailed(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	job := newJob(t)
	if err := repo.Create(ctx, job); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.MarkFailed(ctx, job.ID, "boom"); err != nil {
		t.Fatalf("mark failed: %v", err)
	}

	got, err := repo.Get(ctx, job.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != StatusFailed || got.Error == nil || *got.Error != "boom" {
		t.Fatalf("unexpected job: %+v", got)
	}
}

func TestJobMarkRunningOnlyFromQueued(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	job := newJob(t)
	if err := repo.Create(ctx, job); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.MarkSucceeded(ctx, job.ID, "done", "greeting"); err != nil {
		t.Fatalf("mark succeeded: %v", err)
	}

	// redelivery of an already finished job must not flip it back to running
	if err := repo.MarkRunning(ctx, job.ID); err != nil {
		t.Fatalf("mark running: %v", err)
	}
	got, err := repo.Get(ctx, job.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != StatusSucceeded {
		t.Fatalf("status = %q, want succeeded", got.Status)
	}
}

func TestJobGetMissing(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Get(context.Background(), "01ARZ3NDEKTSV4RRFFQ69G5FAV")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("err = %v, want gorm.ErrRecordNotFound", err)
	}
}
