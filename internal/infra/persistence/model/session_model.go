package model

import (
	"time"
)

// SessionModel mirrors the 'sessions' table. The payload is the session's
// JSON-encoded data map; expires_at is indexed so the sweeper can delete
// stale rows cheaply.
type SessionModel struct {
	ID        string `gorm:"type:varchar(64);primaryKey"`
	UserID    uint64 `gorm:"not null;index:idx_sessions_user_id"`
	Payload   []byte `gorm:"type:jsonb"`
	CreatedAt time.Time
	ExpiresAt time.Time `gorm:"not null;index:idx_sessions_expires_at"`
}

// TableName explicitly sets the table name for GORM.
func (SessionModel) TableName() string {
	return "sessions"
}
