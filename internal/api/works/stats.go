package works

import (
	"fmt"

	"gorm.io/gorm"
)

type Stats struct {
	TotalArtworks int64 `json:"total_artworks"`
	TotalPhotos   int64 `json:"total_photos"`
	TotalComments int64 `json:"total_comments"`
}

// GlobalStats counts userID's artworks and the photos and comments attached to them.
func GlobalStats(db *gorm.DB, userID uint) (Stats, error) {
	var s Stats
	err := db.Table("artworks").
		Select(`COUNT(DISTINCT artworks.id) AS total_artworks,
			COUNT(DISTINCT progress_photos.id) AS total_photos,
			COUNT(DISTINCT private_comments.id) AS total_comments`).
		Joins("LEFT JOIN progress_photos ON progress_photos.artwork_id = artworks.id").
		Joins("LEFT JOIN private_comments ON private_comments.artwork_id = artworks.id").
		Where("artworks.user_id = ?", userID).
		Scan(&s).Error
	if err != nil {
		return Stats{}, fmt.Errorf("stats: %w", err)
	}
	return s, nil
}
