package model

import (
	"time"
)

// UserModel mirrors the 'users' table. PostgreSQL assigns sequential ids
// via BIGSERIAL; the unique index on username is what makes concurrent
// registrations of the same name fail instead of racing.
type UserModel struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"type:varchar(128);uniqueIndex:idx_users_username;not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
