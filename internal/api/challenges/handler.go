package challenges

import (
	"net/http"
	"strconv"

	"artifolio/database"
	"artifolio/internal/domain/challenges"
	"artifolio/internal/infra/metrics"
	"artifolio/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const listPath = "/challenges/"

func mustUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

func ListChallenges(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	items, err := Incomplete(database.DB, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load challenges", "details": err.Error()})
		return
	}
	if items == nil {
		items = []challenges.Challenge{}
	}
	c.JSON(http.StatusOK, gin.H{"challenges": items})
}

func CreateChallenge(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var in ChallengeInput
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ch, err := Create(database.DB, userID, in)
	if fe, ok := validation.AsFormErrors(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid challenge", "errors": fe, "input": in})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create challenge", "details": err.Error()})
		return
	}

	metrics.Challenges.WithLabelValues(StatusCreated).Inc()
	c.JSON(http.StatusCreated, gin.H{
		"challenge": ch,
		"message":   "Challenge created successfully.",
		"redirect":  listPath,
	})
}

func CompleteChallenge(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid challenge id"})
		return
	}

	out, err := Complete(database.DB, userID, uint(id), completeRequested(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete challenge", "details": err.Error()})
		return
	}

	metrics.Challenges.WithLabelValues(out.Status).Inc()
	resp := gin.H{"status": out.Status, "redirect": listPath}
	if out.Reason != "" {
		resp["reason"] = out.Reason
	}
	if out.Status == StatusCompleted {
		resp["message"] = "Challenge completed!"
	}
	c.JSON(http.StatusOK, resp)
}

// completeRequested reports whether the body carries a "complete" field, whatever its value.
func completeRequested(c *gin.Context) bool {
	if c.ContentType() == binding.MIMEJSON {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			return false
		}
		_, ok := body["complete"]
		return ok
	}
	_, ok := c.GetPostForm("complete")
	return ok
}
