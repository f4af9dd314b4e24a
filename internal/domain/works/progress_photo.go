package works

import "time"

const DefaultPhotoOrder = 1

type ProgressPhoto struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ArtworkID uint   `gorm:"not null;index:idx_progress_photos_artwork_order,priority:1" json:"artwork_id"`
	Image     string `gorm:"not null" json:"image"`
	Order     int    `gorm:"column:sort_order;not null;default:1;index:idx_progress_photos_artwork_order,priority:2" json:"order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
