package session

import (
	"context"
	"errors"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type sessionRow struct {
	UserID       string    `gorm:"primaryKey;size:64"`
	CreatedAt    time.Time `gorm:"not null"`
	MessageCount int       `gorm:"not null"`
}

func (sessionRow) TableName() string { return "bot_sessions" }

type turnRow struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	UserID    string    `gorm:"size:64;index;not null"`
	Role      string    `gorm:"size:8;not null"`
	Text      string    `gorm:"type:text;not null"`
	Intent    string    `gorm:"size:16"`
	CreatedAt time.Time `gorm:"not null"`
}

func (turnRow) TableName() string { return "bot_turns" }

// OpenDB opens the process-scoped sqlite database. The DSN is fixed to an
// in-memory database: conversation history must not outlive the process.
func OpenDB() (*gorm.DB, error) {
	return gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
}

// SQLiteStore keeps sessions in an in-memory sqlite database via gorm.
// Insertion order is preserved through the autoincrement turn id.
type SQLiteStore struct {
	db *gorm.DB
}

func NewSQLiteStore(db *gorm.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("session: db must not be nil")
	}
	if err := db.AutoMigrate(&sessionRow{}, &turnRow{}); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Record(ctx context.Context, userID string, t Turn) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sess sessionRow
		err := tx.Where("user_id = ?", userID).First(&sess).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sess = sessionRow{UserID: userID, CreatedAt: time.Now()}
			if err := tx.Create(&sess).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		if t.Role == RoleUser {
			if err := tx.Model(&sessionRow{}).
				Where("user_id = ?", userID).
				Update("message_count", gorm.Expr("message_count + 1")).Error; err != nil {
				return err
			}
		}

		return tx.Create(&turnRow{
			UserID:    userID,
			Role:      string(t.Role),
			Text:      t.Text,
			Intent:    t.Intent,
			CreatedAt: t.Timestamp,
		}).Error
	})
}

func (s *SQLiteStore) History(ctx context.Context, userID string) ([]Turn, error) {
	var rows []turnRow
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]Turn, 0, len(rows))
	for _, row := range rows {
		out = append(out, Turn{
			Role:      Role(row.Role),
			Text:      row.Text,
			Intent:    row.Intent,
			Timestamp: row.CreatedAt,
		})
	}
	return out, nil
}

func (s *SQLiteStore) Clear(ctx context.Context, userID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&turnRow{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&sessionRow{}).Error
	})
}

func (s *SQLiteStore) Stats(ctx context.Context, userID string) (Stats, bool, error) {
	var sess sessionRow
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&sess).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Stats{}, false, nil
	}
	if err != nil {
		return Stats{}, false, err
	}
	return Stats{CreatedAt: sess.CreatedAt, MessageCount: sess.MessageCount}, true, nil
}
