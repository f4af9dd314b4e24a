package works

import (
	"fmt"
	"strings"

	"artifolio/internal/domain/works"

	"gorm.io/gorm"
)

func userArtworksQuery(db *gorm.DB, userID uint) *gorm.DB {
	return db.Model(&works.Artwork{}).
		Where("artworks.user_id = ?", userID)
}

// ArtworkRow is one listing entry: the artwork plus how many progress photos it has.
type ArtworkRow struct {
	works.Artwork
	PhotoCount int64
}

type ArtworkPage struct {
	Rows       []ArtworkRow
	Pagination Pagination
}

const likeEscape = "!"

var likeReplacer = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_", "[", "![")

func containsPattern(s string) string {
	return "%" + likeReplacer.Replace(strings.ToLower(s)) + "%"
}

// datePart returns the SQL expression extracting part ("month" or "year") from column
// in the dialect db talks to.
func datePart(db *gorm.DB, part, column string) string {
	switch db.Dialector.Name() {
	case "sqlite":
		f := "%m"
		if part == "year" {
			f = "%Y"
		}
		return fmt.Sprintf("CAST(strftime('%s', %s) AS INTEGER)", f, column)
	case "mysql":
		return fmt.Sprintf("%s(%s)", strings.ToUpper(part), column)
	case "sqlserver":
		return fmt.Sprintf("DATEPART(%s, %s)", part, column)
	default:
		return fmt.Sprintf("EXTRACT(%s FROM %s)", strings.ToUpper(part), column)
	}
}

// applyCriteria narrows q to the artworks matching every set criterion.
func applyCriteria(q *gorm.DB, c Criteria) *gorm.DB {
	if c.Title != "" {
		q = q.Where("LOWER(artworks.title) LIKE ? ESCAPE '"+likeEscape+"'", containsPattern(c.Title))
	}
	if c.Technique != "" {
		q = q.Where("artworks.technique = ?", string(c.Technique))
	}
	// a NULL start_date compares as NULL and never matches
	if c.StartMonth != 0 {
		q = q.Where(datePart(q, "month", "artworks.start_date")+" = ?", c.StartMonth)
	}
	if c.StartYear != 0 {
		q = q.Where(datePart(q, "year", "artworks.start_date")+" = ?", c.StartYear)
	}
	return q
}

// ListArtworks returns one page of userID's artworks matching c, newest first.
func ListArtworks(db *gorm.DB, userID uint, c Criteria, page, perPage int) (ArtworkPage, error) {
	var total int64
	if err := applyCriteria(userArtworksQuery(db, userID), c).Count(&total).Error; err != nil {
		return ArtworkPage{}, fmt.Errorf("count artworks: %w", err)
	}

	out := ArtworkPage{Pagination: buildPagination(page, perPage, total)}

	var artworks []works.Artwork
	err := applyCriteria(userArtworksQuery(db, userID), c).
		Order("artworks.id DESC").
		Offset(out.Pagination.offset()).
		Limit(out.Pagination.PerPage).
		Find(&artworks).Error
	if err != nil {
		return ArtworkPage{}, fmt.Errorf("list artworks: %w", err)
	}

	ids := make([]uint, 0, len(artworks))
	for _, a := range artworks {
		ids = append(ids, a.ID)
	}
	counts, err := photoCounts(db, ids)
	if err != nil {
		return ArtworkPage{}, err
	}

	out.Rows = make([]ArtworkRow, 0, len(artworks))
	for _, a := range artworks {
		out.Rows = append(out.Rows, ArtworkRow{Artwork: a, PhotoCount: counts[a.ID]})
	}
	return out, nil
}

func photoCounts(db *gorm.DB, artworkIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(artworkIDs))
	if len(artworkIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		ArtworkID uint
		Total     int64
	}
	err := db.Model(&works.ProgressPhoto{}).
		Select("artwork_id, COUNT(*) AS total").
		Where("artwork_id IN ?", artworkIDs).
		Group("artwork_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count progress photos: %w", err)
	}
	for _, r := range rows {
		counts[r.ArtworkID] = r.Total
	}
	return counts, nil
}

// CountArtworks is the owner's unfiltered artwork total.
func CountArtworks(db *gorm.DB, userID uint) (int64, error) {
	var n int64
	if err := userArtworksQuery(db, userID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count artworks: %w", err)
	}
	return n, nil
}

// ArtworkDetail loads one of userID's artworks with its photos (by order) and
// comments (newest first).
func ArtworkDetail(db *gorm.DB, userID, artworkID uint) (works.Artwork, error) {
	var a works.Artwork
	err := userArtworksQuery(db, userID).
		Preload("ProgressPhotos", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC, id DESC")
		}).
		Preload("Comments.User").
		First(&a, "artworks.id = ?", artworkID).Error
	return a, err
}
