// Package session keeps the per-user conversation log. Sessions live for the
// current process only; history is append-only and ordered by insertion.
package session

import (
	"context"
	"time"
)

type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Turn is one recorded message. Bot turns additionally carry the intent tag
// chosen for the reply.
type Turn struct {
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Intent    string    `json:"intent,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Stats is the aggregate state of one session. MessageCount counts user turns
// only.
type Stats struct {
	CreatedAt    time.Time `json:"created_at"`
	MessageCount int       `json:"message_count"`
}

// Store is the session log contract. All implementations guarantee per-user
// mutual exclusion on Record while keeping different users independent.
type Store interface {
	// Record creates the session on first use and appends the turn.
	Record(ctx context.Context, userID string, t Turn) error
	// History returns the ordered turn sequence; empty for unknown users,
	// never an error for them.
	History(ctx context.Context, userID string) ([]Turn, error)
	// Clear removes the session entirely. Idempotent on unknown users.
	Clear(ctx context.Context, userID string) error
	// Stats reports session aggregates; ok is false for unknown users.
	Stats(ctx context.Context, userID string) (stats Stats, ok bool, err error)
}
