package works

import (
	"artifolio/internal/domain/users"
	"time"
)

type PrivateComment struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	ArtworkID uint       `gorm:"not null;index" json:"artwork_id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	User      users.User `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	Text      string     `gorm:"type:text;not null" json:"text"`

	CreatedAt time.Time `gorm:"autoCreateTime;<-:create" json:"created_at"`
}
