package comments

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"artifolio/database"
	"artifolio/internal/infra/metrics"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func mustUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}

func artworkPath(id uint) string {
	if id == 0 {
		return "/artworks/"
	}
	return fmt.Sprintf("/artworks/%d/", id)
}

func respond(c *gin.Context, status int, out Outcome) {
	metrics.Comments.WithLabelValues(out.Status).Inc()
	resp := gin.H{"status": out.Status, "redirect": artworkPath(out.ArtworkID)}
	if out.Reason != "" {
		resp["reason"] = out.Reason
	}
	if out.Comment != nil {
		resp["comment"] = gin.H{
			"id":         out.Comment.ID,
			"text":       out.Comment.Text,
			"created_at": out.Comment.CreatedAt,
		}
	}
	c.JSON(status, resp)
}

// POST /artworks/:id/comment/
func AddComment(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	artworkID, ok := paramID(c)
	if !ok {
		return
	}

	var in CommentInput
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := Add(database.DB, userID, artworkID, in)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Artwork not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment", "details": err.Error()})
		return
	}

	status := http.StatusOK
	if out.Status == StatusCreated {
		status = http.StatusCreated
	}
	respond(c, status, out)
}

// POST /comments/:id/delete/
func DeleteComment(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	commentID, ok := paramID(c)
	if !ok {
		return
	}

	out, err := Delete(database.DB, userID, commentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment", "details": err.Error()})
		return
	}
	respond(c, http.StatusOK, out)
}
