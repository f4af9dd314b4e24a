package challenges

import (
	"strings"
	"testing"

	"artifolio/internal/domain/challenges"
	"artifolio/internal/testutil"
	"artifolio/internal/validation"
)

func TestCreateChallenge(t *testing.T) {
	db := testutil.OpenDB(t)
	u := testutil.CreateUser(t, db, "u@example.com")

	ch, err := Create(db, u.ID, ChallengeInput{Text: "  Draw hands for a week  "})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ch.UserID != u.ID || ch.Text != "Draw hands for a week" || ch.IsCompleted {
		t.Fatalf("challenge = %+v", ch)
	}
}

func TestCreateChallengeValidation(t *testing.T) {
	db := testutil.OpenDB(t)
	u := testutil.CreateUser(t, db, "u@example.com")

	for _, text := range []string{"", "   ", strings.Repeat("x", 256)} {
		_, err := Create(db, u.ID, ChallengeInput{Text: text})
		fe, ok := validation.AsFormErrors(err)
		if !ok || len(fe.Fields["text"]) == 0 {
			t.Errorf("text %q: expected field error, got %v", text, err)
		}
	}

	var n int64
	db.Model(&challenges.Challenge{}).Count(&n)
	if n != 0 {
		t.Fatalf("invalid challenges persisted: %d", n)
	}
}

func TestIncompleteOrdersByID(t *testing.T) {
	db := testutil.OpenDB(t)
	u := testutil.CreateUser(t, db, "u@example.com")
	other := testutil.CreateUser(t, db, "other@example.com")

	first := testutil.CreateChallenge(t, db, u.ID, "first")
	done := testutil.CreateChallenge(t, db, u.ID, "done")
	second := testutil.CreateChallenge(t, db, u.ID, "second")
	testutil.CreateChallenge(t, db, other.ID, "not mine")
	db.Model(&done).Update("is_completed", true)

	got, err := Incomplete(db, u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID != first.ID || got[1].ID != second.ID {
		t.Fatalf("Incomplete = %+v", got)
	}
}

func TestCompleteChallenge(t *testing.T) {
	db := testutil.OpenDB(t)
	u := testutil.CreateUser(t, db, "u@example.com")
	ch := testutil.CreateChallenge(t, db, u.ID, "finish a study")

	out, err := Complete(db, u.ID, ch.ID, false)
	if err != nil || out.Status != StatusSkipped {
		t.Fatalf("without complete flag: %+v %v", out, err)
	}

	out, err = Complete(db, u.ID, ch.ID, true)
	if err != nil || out.Status != StatusCompleted {
		t.Fatalf("complete: %+v %v", out, err)
	}

	var n int64
	db.Model(&challenges.Challenge{}).Count(&n)
	if n != 0 {
		t.Fatalf("challenge not removed")
	}

	out, err = Complete(db, u.ID, ch.ID, true)
	if err != nil || out.Status != StatusSkipped {
		t.Fatalf("missing challenge: %+v %v", out, err)
	}
}

func TestCompleteChallengeNonOwnerIsNoop(t *testing.T) {
	db := testutil.OpenDB(t)
	owner := testutil.CreateUser(t, db, "owner@example.com")
	intruder := testutil.CreateUser(t, db, "intruder@example.com")
	ch := testutil.CreateChallenge(t, db, owner.ID, "mine")

	out, err := Complete(db, intruder.ID, ch.ID, true)
	if err != nil {
		t.Fatal(err)
	}
	if out.Status != StatusSkipped {
		t.Fatalf("status = %s", out.Status)
	}

	var stored challenges.Challenge
	if err := db.First(&stored, ch.ID).Error; err != nil {
		t.Fatalf("challenge removed by non-owner: %v", err)
	}
	if stored.IsCompleted {
		t.Fatalf("challenge modified by non-owner")
	}
}
