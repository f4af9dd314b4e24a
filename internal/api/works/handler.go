package works

import (
	"errors"
	"net/http"
	"strconv"

	"artifolio/config"
	"artifolio/database"
	challengesapi "artifolio/internal/api/challenges"
	"artifolio/internal/domain/challenges"
	"artifolio/internal/domain/works"
	"artifolio/internal/infra/metrics"
	"artifolio/internal/infra/storage"
	"artifolio/internal/validation"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const listPath = "/artworks/"

func mustUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

func artworkIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid artwork id"})
		return 0, false
	}
	return uint(id), true
}

// ------------------------------
// GET /artworks/
// ------------------------------
func ListArtworksHandler(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	f := ArtworkFilter{
		Title:      c.Query("title"),
		Technique:  c.Query("technique"),
		StartMonth: c.Query("start_month"),
		StartYear:  c.Query("start_year"),
	}
	criteria := f.Criteria()

	page, err := ListArtworks(database.DB, userID, criteria, parsePage(c), config.PAGE_SIZE)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load artworks", "details": err.Error()})
		return
	}

	total, err := CountArtworks(database.DB, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load artworks", "details": err.Error()})
		return
	}

	open, err := challengesapi.Incomplete(database.DB, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load challenges", "details": err.Error()})
		return
	}
	if open == nil {
		open = []challenges.Challenge{}
	}

	c.JSON(http.StatusOK, gin.H{
		"artworks":       toArtworkRowDTOs(page.Rows),
		"pagination":     page.Pagination,
		"filter":         criteria,
		"total_artworks": total,
		"challenges":     open,
		"techniques":     techniqueChoices(),
	})
}

// ------------------------------
// GET /artworks/:id/
// ------------------------------
func GetArtwork(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	id, ok := artworkIDParam(c)
	if !ok {
		return
	}

	a, err := ArtworkDetail(database.DB, userID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Artwork not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load artwork", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"artwork":          toArtworkDTO(a),
		"progress_photos":  toPhotoDTOs(a.ProgressPhotos),
		"private_comments": toCommentDTOs(a.Comments),
		"comment_form":     gin.H{"text": ""},
		"techniques":       techniqueChoices(),
	})
}

// ------------------------------
// POST /artworks/create/
// ------------------------------
func CreateArtwork(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	saveArtworkForm(c, userID, 0)
}

// ------------------------------
// POST /artworks/:id/edit/
// ------------------------------
func UpdateArtwork(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	id, ok := artworkIDParam(c)
	if !ok {
		return
	}

	var existing works.Artwork
	err := userArtworksQuery(database.DB, userID).Select("artworks.id").First(&existing, "artworks.id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Artwork not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load artwork", "details": err.Error()})
		return
	}

	saveArtworkForm(c, userID, id)
}

func saveArtworkForm(c *gin.Context, userID, artworkID uint) {
	creating := artworkID == 0

	in, uploads, err := bindArtworkForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form", "details": err.Error()})
		return
	}

	// reject before anything reaches the disk
	errs := validation.New()
	if fe, ok := validation.AsFormErrors(ValidateArtwork(in, creating)); ok {
		errs = fe
	}
	uploads.check(errs)
	if !errs.Empty() {
		respondInvalid(c, errs, in)
		return
	}

	stored, err := uploads.store(&in)
	if err != nil {
		storage.Remove(stored...)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store upload", "details": err.Error()})
		return
	}

	res, err := SaveArtwork(database.DB, userID, artworkID, in)
	if err != nil {
		storage.Remove(stored...)
		if fe, ok := validation.AsFormErrors(err); ok {
			respondInvalid(c, fe, in)
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Artwork not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save artwork", "details": err.Error()})
		return
	}
	storage.Remove(res.Orphaned...)

	status, action, message := http.StatusOK, "updated", "Artwork updated successfully."
	if res.Created {
		status, action, message = http.StatusCreated, "created", "Artwork created successfully."
	}
	metrics.Artworks.WithLabelValues(action).Inc()

	c.JSON(status, gin.H{
		"artwork":  toArtworkDTO(res.Artwork),
		"message":  message,
		"redirect": listPath,
	})
}

func respondInvalid(c *gin.Context, errs *validation.FormErrors, in ArtworkInput) {
	metrics.Artworks.WithLabelValues("rejected").Inc()
	c.JSON(http.StatusBadRequest, gin.H{
		"error":  "Please correct the errors below.",
		"errors": errs,
		"input":  in,
	})
}

// ------------------------------
// POST /artworks/:id/delete
// ------------------------------
func DeleteArtworkHandler(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	id, ok := artworkIDParam(c)
	if !ok {
		return
	}

	files, err := DeleteArtwork(database.DB, userID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Artwork not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete artwork", "details": err.Error()})
		return
	}
	storage.Remove(files...)

	metrics.Artworks.WithLabelValues("deleted").Inc()
	c.JSON(http.StatusOK, gin.H{
		"message":  "Artwork deleted successfully.",
		"redirect": listPath,
	})
}

// ------------------------------
// GET /stats/
// ------------------------------
func GetStats(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	stats, err := GlobalStats(database.DB, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GET /techniques/
func ListTechniques(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"techniques": techniqueChoices()})
}
