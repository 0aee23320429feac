package session

import (
	"time"

	"github.com/google/uuid"
)

type Session struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID     uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index"`
	UserAgent  string     `gorm:"column:user_agent;type:text"`
	IPAddress  string     `gorm:"column:ip_address;type:varchar(45)"`
	ClientType string     `gorm:"column:client_type;type:varchar(20)"`
	ExpiresAt  time.Time  `gorm:"column:expires_at;not null"`
	RevokedAt  *time.Time `gorm:"column:revoked_at"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (Session) TableName() string {
	return "sessions"
}

// Active reports whether the session is neither revoked nor expired.
func (s Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
