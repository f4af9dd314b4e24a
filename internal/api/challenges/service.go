package challenges

import (
	"errors"
	"fmt"
	"strings"

	"artifolio/internal/domain/challenges"
	"artifolio/internal/validation"

	"gorm.io/gorm"
)

const (
	StatusCreated   = "created"
	StatusCompleted = "completed"
	StatusSkipped   = "skipped"
)

// Outcome reports what a workflow did. A skipped outcome is not an error.
type Outcome struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

type ChallengeInput struct {
	Text string `form:"text" json:"text" validate:"required,max=255"`
}

func userChallengesQuery(db *gorm.DB, userID uint) *gorm.DB {
	return db.Model(&challenges.Challenge{}).
		Where("challenges.user_id = ?", userID)
}

// Incomplete lists userID's open challenges, oldest first.
func Incomplete(db *gorm.DB, userID uint) ([]challenges.Challenge, error) {
	var out []challenges.Challenge
	err := userChallengesQuery(db, userID).
		Where("is_completed = ?", false).
		Order("id ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list challenges: %w", err)
	}
	return out, nil
}

// Create stores a new challenge owned by userID. Validation failures are
// returned as *validation.FormErrors.
func Create(db *gorm.DB, userID uint, in ChallengeInput) (challenges.Challenge, error) {
	in.Text = strings.TrimSpace(in.Text)
	if errs := validation.Struct(in); !errs.Empty() {
		return challenges.Challenge{}, errs
	}

	ch := challenges.Challenge{UserID: userID, Text: in.Text}
	if err := db.Create(&ch).Error; err != nil {
		return challenges.Challenge{}, fmt.Errorf("create challenge: %w", err)
	}
	return ch, nil
}

// Complete removes userID's challenge when complete is set. Challenges that do
// not exist or belong to someone else are skipped.
func Complete(db *gorm.DB, userID, challengeID uint, complete bool) (Outcome, error) {
	var ch challenges.Challenge
	err := userChallengesQuery(db, userID).First(&ch, "challenges.id = ?", challengeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Outcome{Status: StatusSkipped, Reason: "challenge not found"}, nil
	}
	if err != nil {
		return Outcome{}, fmt.Errorf("load challenge: %w", err)
	}

	if !complete {
		return Outcome{Status: StatusSkipped, Reason: "complete not requested"}, nil
	}

	if err := db.Delete(&ch).Error; err != nil {
		return Outcome{}, fmt.Errorf("delete challenge: %w", err)
	}
	return Outcome{Status: StatusCompleted}, nil
}
