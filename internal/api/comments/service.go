package comments

import (
	"errors"
	"fmt"
	"strings"

	"artifolio/internal/domain/works"
	"artifolio/internal/validation"

	"gorm.io/gorm"
)

const (
	StatusCreated = "created"
	StatusDeleted = "deleted"
	StatusSkipped = "skipped"
)

// Outcome reports what a workflow did. A skipped outcome is not an error.
type Outcome struct {
	Status    string                `json:"status"`
	Reason    string                `json:"reason,omitempty"`
	ArtworkID uint                  `json:"artwork_id"`
	Comment   *works.PrivateComment `json:"comment,omitempty"`
}

type CommentInput struct {
	Text string `form:"text" json:"text" validate:"required"`
}

// Add attaches a comment by userID to an artwork. The artwork must exist
// (gorm.ErrRecordNotFound otherwise); invalid text is skipped without writing.
func Add(db *gorm.DB, userID, artworkID uint, in CommentInput) (Outcome, error) {
	var a works.Artwork
	if err := db.Select("id").First(&a, artworkID).Error; err != nil {
		return Outcome{}, err
	}

	out := Outcome{ArtworkID: a.ID}
	in.Text = strings.TrimSpace(in.Text)
	if errs := validation.Struct(in); !errs.Empty() {
		out.Status = StatusSkipped
		out.Reason = errs.Error()
		return out, nil
	}

	cm := works.PrivateComment{ArtworkID: a.ID, UserID: userID, Text: in.Text}
	if err := db.Create(&cm).Error; err != nil {
		return Outcome{}, fmt.Errorf("create comment: %w", err)
	}
	out.Status = StatusCreated
	out.Comment = &cm
	return out, nil
}

// Delete removes a comment when userID wrote it. Anything else is skipped.
func Delete(db *gorm.DB, userID, commentID uint) (Outcome, error) {
	var cm works.PrivateComment
	err := db.First(&cm, commentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Outcome{Status: StatusSkipped, Reason: "comment not found"}, nil
	}
	if err != nil {
		return Outcome{}, fmt.Errorf("load comment: %w", err)
	}

	out := Outcome{ArtworkID: cm.ArtworkID}
	if cm.UserID != userID {
		out.Status = StatusSkipped
		out.Reason = "only the author can delete this comment"
		return out, nil
	}

	if err := db.Where("id = ? AND user_id = ?", cm.ID, userID).Delete(&works.PrivateComment{}).Error; err != nil {
		return Outcome{}, fmt.Errorf("delete comment: %w", err)
	}
	out.Status = StatusDeleted
	return out, nil
}
