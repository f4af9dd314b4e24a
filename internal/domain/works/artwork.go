package works

import (
	"artifolio/internal/domain/users"
	"time"

	"gorm.io/datatypes"
)

type Artwork struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint       `gorm:"not null;index" json:"-"`
	User   users.User `gorm:"constraint:OnDelete:CASCADE;" json:"-"`

	Title          string    `gorm:"size:100;not null" json:"title"`
	Description    *string   `gorm:"type:text" json:"description,omitempty"`
	FinalImage     string    `gorm:"not null" json:"final_image"`
	Technique      Technique `gorm:"type:varchar(3);not null;default:'BOC';index" json:"technique"`
	VideoTimelapse *string   `json:"video_timelapse,omitempty"`

	// start <= end is checked by the artwork validator, not by the database
	StartDate *datatypes.Date `json:"start_date,omitempty"`
	EndDate   *datatypes.Date `json:"end_date,omitempty"`

	ProgressPhotos []ProgressPhoto  `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	Comments       []PrivateComment `gorm:"constraint:OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StoredFiles lists every upload path referenced by the artwork row itself.
func (a Artwork) StoredFiles() []string {
	files := []string{a.FinalImage}
	if a.VideoTimelapse != nil && *a.VideoTimelapse != "" {
		files = append(files, *a.VideoTimelapse)
	}
	return files
}
