package works

import (
	"fmt"
	"time"

	"artifolio/internal/domain/works"
	"artifolio/internal/infra/storage"
	"artifolio/internal/validation"

	"gorm.io/datatypes"
)

type TechniqueDTO struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

type ArtworkDTO struct {
	ID             uint         `json:"id"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	FinalImage     string       `json:"final_image"`
	FinalImageURL  string       `json:"final_image_url"`
	Technique      TechniqueDTO `json:"technique"`
	VideoTimelapse *string      `json:"video_timelapse,omitempty"`
	StartDate      *string      `json:"start_date"`
	EndDate        *string      `json:"end_date"`
	PhotoCount     *int64       `json:"photo_count,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
	URL            string       `json:"url"`
}

type PhotoDTO struct {
	ID       uint   `json:"id"`
	Image    string `json:"image"`
	ImageURL string `json:"image_url"`
	Order    int    `json:"order"`
}

type CommentDTO struct {
	ID        uint      `json:"id"`
	Author    string    `json:"author"`
	AuthorID  uint      `json:"author_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

func artworkPath(id uint) string {
	return fmt.Sprintf("/artworks/%d/", id)
}

func formatDate(d *datatypes.Date) *string {
	if d == nil {
		return nil
	}
	s := time.Time(*d).Format(validation.DateLayout)
	return &s
}

func toTechniqueDTO(t works.Technique) TechniqueDTO {
	return TechniqueDTO{Code: string(t), Label: t.Label()}
}

func toArtworkDTO(a works.Artwork) ArtworkDTO {
	out := ArtworkDTO{
		ID:            a.ID,
		Title:         a.Title,
		FinalImage:    a.FinalImage,
		FinalImageURL: storage.URL(a.FinalImage),
		Technique:     toTechniqueDTO(a.Technique),
		StartDate:     formatDate(a.StartDate),
		EndDate:       formatDate(a.EndDate),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
		URL:           artworkPath(a.ID),
	}
	if a.Description != nil {
		out.Description = *a.Description
	}
	if a.VideoTimelapse != nil && *a.VideoTimelapse != "" {
		u := storage.URL(*a.VideoTimelapse)
		out.VideoTimelapse = &u
	}
	return out
}

func toArtworkRowDTOs(rows []ArtworkRow) []ArtworkDTO {
	out := make([]ArtworkDTO, 0, len(rows))
	for _, r := range rows {
		dto := toArtworkDTO(r.Artwork)
		n := r.PhotoCount
		dto.PhotoCount = &n
		out = append(out, dto)
	}
	return out
}

func toPhotoDTOs(photos []works.ProgressPhoto) []PhotoDTO {
	out := make([]PhotoDTO, 0, len(photos))
	for _, p := range photos {
		out = append(out, PhotoDTO{ID: p.ID, Image: p.Image, ImageURL: storage.URL(p.Image), Order: p.Order})
	}
	return out
}

func toCommentDTOs(comments []works.PrivateComment) []CommentDTO {
	out := make([]CommentDTO, 0, len(comments))
	for _, c := range comments {
		out = append(out, CommentDTO{
			ID:        c.ID,
			Author:    c.User.Name,
			AuthorID:  c.UserID,
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
		})
	}
	return out
}

func techniqueChoices() []TechniqueDTO {
	choices := works.TechniqueChoices()
	out := make([]TechniqueDTO, 0, len(choices))
	for _, c := range choices {
		out = append(out, TechniqueDTO{Code: string(c.Code), Label: c.Label})
	}
	return out
}
