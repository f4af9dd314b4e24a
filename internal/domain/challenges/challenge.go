package challenges

import "artifolio/internal/domain/users"

type Challenge struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;index" json:"-"`
	User        users.User `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	Text        string     `gorm:"size:255;not null" json:"text"`
	IsCompleted bool       `gorm:"not null;default:false" json:"is_completed"`
}
