package works

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"artifolio/config"
	"artifolio/internal/domain/works"
	"artifolio/internal/validation"

	"gorm.io/datatypes"
)

// ArtworkInput is one artwork submission: scalar fields as typed by the user plus its
// progress-photo line items. Image fields hold stored upload paths.
type ArtworkInput struct {
	Title          string `form:"title" json:"title" validate:"required,max=100"`
	Description    string `form:"description" json:"description"`
	FinalImage     string `form:"final_image" json:"final_image"`
	Technique      string `form:"technique" json:"technique" validate:"omitempty,technique"`
	VideoTimelapse string `form:"video_timelapse" json:"video_timelapse"`
	StartDate      string `form:"start_date" json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate        string `form:"end_date" json:"end_date" validate:"omitempty,datetime=2006-01-02"`

	Photos []PhotoLineItem `form:"-" json:"photos"`
}

// PhotoLineItem is one row of the progress-photo batch. ID == 0 means a new photo;
// a non-zero ID revises or (with Delete) removes an existing one.
type PhotoLineItem struct {
	ID     uint   `json:"id,omitempty"`
	Image  string `json:"image,omitempty"`
	Order  string `json:"order,omitempty"`
	Delete bool   `json:"delete,omitempty"`
}

// blank reports an extra slot left at its initial values: no file and the default order.
func (p PhotoLineItem) blank() bool {
	if p.ID != 0 || p.Delete || strings.TrimSpace(p.Image) != "" {
		return false
	}
	order := strings.TrimSpace(p.Order)
	return order == "" || order == strconv.Itoa(works.DefaultPhotoOrder)
}

type photoOpKind int

const (
	photoCreate photoOpKind = iota
	photoUpdate
	photoDelete
)

type photoOp struct {
	index int
	kind  photoOpKind
	id    uint
	image string
	order int
}

type cleanedArtwork struct {
	title          string
	description    *string
	finalImage     string
	technique      works.Technique
	videoTimelapse *string
	startDate      *datatypes.Date
	endDate        *datatypes.Date
}

func (f cleanedArtwork) applyTo(a *works.Artwork) {
	a.Title = f.title
	a.Description = f.description
	// an empty image on update keeps the stored one
	if f.finalImage != "" {
		a.FinalImage = f.finalImage
	}
	a.Technique = f.technique
	if f.videoTimelapse != nil {
		a.VideoTimelapse = f.videoTimelapse
	}
	a.StartDate = f.startDate
	a.EndDate = f.endDate
}

// ValidateArtwork checks a submission without touching the database. The returned
// error, when non-nil, is a *validation.FormErrors.
func ValidateArtwork(in ArtworkInput, creating bool) error {
	_, _, errs := cleanArtwork(in, creating)
	return errs.Err()
}

func cleanArtwork(in ArtworkInput, creating bool) (cleanedArtwork, []photoOp, *validation.FormErrors) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.FinalImage = strings.TrimSpace(in.FinalImage)
	in.Technique = strings.TrimSpace(in.Technique)
	in.VideoTimelapse = strings.TrimSpace(in.VideoTimelapse)
	in.StartDate = strings.TrimSpace(in.StartDate)
	in.EndDate = strings.TrimSpace(in.EndDate)

	errs := validation.Struct(in)

	if creating && in.FinalImage == "" {
		errs.Add("final_image", "This field is required.")
	}

	out := cleanedArtwork{
		title:      in.Title,
		finalImage: in.FinalImage,
		technique:  works.DefaultTechnique,
	}
	if in.Description != "" {
		d := in.Description
		out.description = &d
	}
	if in.Technique != "" {
		out.technique = works.Technique(in.Technique)
	}
	if in.VideoTimelapse != "" {
		v := in.VideoTimelapse
		out.videoTimelapse = &v
	}
	out.startDate = parseDate(in.StartDate)
	out.endDate = parseDate(in.EndDate)

	if out.startDate != nil && out.endDate != nil &&
		time.Time(*out.startDate).After(time.Time(*out.endDate)) {
		errs.AddNonField("Start date cannot be after end date.")
	}

	ops := cleanPhotoLines(in.Photos, creating, errs)
	return out, ops, errs
}

func cleanPhotoLines(items []PhotoLineItem, creating bool, errs *validation.FormErrors) []photoOp {
	ops := make([]photoOp, 0, len(items))
	seen := map[uint]bool{}
	newCount := 0

	for i, item := range items {
		if item.blank() {
			continue
		}
		if item.ID == 0 && item.Delete {
			// an unsaved slot marked for deletion is simply dropped
			continue
		}

		if item.ID != 0 {
			if creating {
				errs.AddItem(i, "id", "Select a valid choice. That choice is not one of the available choices.")
				continue
			}
			if seen[item.ID] {
				errs.AddItem(i, "id", "Please correct the duplicate data for id.")
				continue
			}
			seen[item.ID] = true
		}

		if item.Delete {
			ops = append(ops, photoOp{index: i, kind: photoDelete, id: item.ID})
			continue
		}

		if item.ID != 0 && strings.TrimSpace(item.Order) == "" {
			errs.AddItem(i, "order", "This field is required.")
			continue
		}
		order, ok := parseOrder(item.Order)
		if !ok {
			errs.AddItem(i, "order", "Enter a whole number.")
		}
		image := strings.TrimSpace(item.Image)

		if item.ID == 0 {
			newCount++
			if image == "" {
				errs.AddItem(i, "image", "This field is required.")
			}
			ops = append(ops, photoOp{index: i, kind: photoCreate, image: image, order: order})
			continue
		}
		ops = append(ops, photoOp{index: i, kind: photoUpdate, id: item.ID, image: image, order: order})
	}

	if newCount > config.PHOTO_EXTRA_SLOTS {
		errs.AddNonField(fmt.Sprintf("Please submit at most %d new progress photos.", config.PHOTO_EXTRA_SLOTS))
	}
	return ops
}

func parseOrder(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return works.DefaultPhotoOrder, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseDate returns nil for blank or malformed input; malformed input is reported by the validator.
func parseDate(raw string) *datatypes.Date {
	if raw == "" {
		return nil
	}
	t, err := time.ParseInLocation(validation.DateLayout, raw, time.UTC)
	if err != nil {
		return nil
	}
	d := datatypes.Date(t)
	return &d
}

// ArtworkFilter is the raw list query. Every criterion is optional.
type ArtworkFilter struct {
	Title      string `json:"title"`
	Technique  string `json:"technique"`
	StartMonth string `json:"start_month"`
	StartYear  string `json:"start_year"`
}

// Criteria is a cleaned ArtworkFilter; zero values mean "no constraint".
type Criteria struct {
	Title      string          `json:"title,omitempty"`
	Technique  works.Technique `json:"technique,omitempty"`
	StartMonth int             `json:"start_month,omitempty"`
	StartYear  int             `json:"start_year,omitempty"`
}

// Criteria drops anything that does not validate instead of failing the listing.
func (f ArtworkFilter) Criteria() Criteria {
	var c Criteria

	c.Title = strings.TrimSpace(f.Title)

	if t := works.Technique(strings.TrimSpace(f.Technique)); t.Valid() {
		c.Technique = t
	}

	v := validation.Engine()
	if m, err := strconv.Atoi(strings.TrimSpace(f.StartMonth)); err == nil && v.Var(m, "gte=1,lte=12") == nil {
		c.StartMonth = m
	}
	if y, err := strconv.Atoi(strings.TrimSpace(f.StartYear)); err == nil && v.Var(y, "gte=1,lte=9999") == nil {
		c.StartYear = y
	}
	return c
}
