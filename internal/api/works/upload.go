package works

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"artifolio/config"
	"artifolio/internal/infra/storage"
	"artifolio/internal/validation"

	"github.com/gin-gonic/gin"
)

const (
	photoPrefix   = "photos"
	maxPhotoForms = 1000
)

// formUploads are the files of one artwork submission, not yet written to disk.
type formUploads struct {
	finalImage *multipart.FileHeader
	timelapse  *multipart.FileHeader
	photos     map[int]*multipart.FileHeader
}

func photoField(i int, name string) string {
	return fmt.Sprintf("%s-%d-%s", photoPrefix, i, name)
}

func formFile(c *gin.Context, name string) *multipart.FileHeader {
	fh, err := c.FormFile(name)
	if err != nil {
		return nil
	}
	return fh
}

func formFlag(c *gin.Context, name string) bool {
	v, ok := c.GetPostForm(name)
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "0", "false", "off", "no":
		return false
	}
	return true
}

// bindArtworkForm reads the multipart (or urlencoded) artwork form. Image fields of the
// returned input carry the client file names until the uploads are stored.
func bindArtworkForm(c *gin.Context) (ArtworkInput, formUploads, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.Request.ParseMultipartForm(int64(config.MAX_UPLOAD_MB) << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return ArtworkInput{}, formUploads{}, fmt.Errorf("parse form: %w", err)
		}
	}

	in := ArtworkInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Technique:   c.PostForm("technique"),
		StartDate:   c.PostForm("start_date"),
		EndDate:     c.PostForm("end_date"),
	}
	up := formUploads{
		finalImage: formFile(c, "final_image"),
		timelapse:  formFile(c, "video_timelapse"),
		photos:     map[int]*multipart.FileHeader{},
	}
	if up.finalImage != nil {
		in.FinalImage = up.finalImage.Filename
	}
	if up.timelapse != nil {
		in.VideoTimelapse = up.timelapse.Filename
	}

	total := 0
	if raw := strings.TrimSpace(c.PostForm(photoPrefix + "-TOTAL_FORMS")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > maxPhotoForms {
			return ArtworkInput{}, formUploads{}, fmt.Errorf("invalid %s-TOTAL_FORMS: %q", photoPrefix, raw)
		}
		total = n
	}

	in.Photos = make([]PhotoLineItem, 0, total)
	for i := 0; i < total; i++ {
		item := PhotoLineItem{
			Order:  c.PostForm(photoField(i, "order")),
			Delete: formFlag(c, photoField(i, "DELETE")),
		}
		if raw := strings.TrimSpace(c.PostForm(photoField(i, "id"))); raw != "" {
			id, err := strconv.ParseUint(raw, 10, 64)
			if err != nil || id == 0 {
				return ArtworkInput{}, formUploads{}, fmt.Errorf("invalid %s: %q", photoField(i, "id"), raw)
			}
			item.ID = uint(id)
		}
		if fh := formFile(c, photoField(i, "image")); fh != nil {
			up.photos[i] = fh
			item.Image = fh.Filename
		}
		in.Photos = append(in.Photos, item)
	}
	return in, up, nil
}

// check reports type and size problems on the owning form field.
func (u formUploads) check(errs *validation.FormErrors) {
	if err := storage.Check(storage.FinalImages, u.finalImage); err != nil {
		errs.Add("final_image", uploadMessage(err))
	}
	if err := storage.Check(storage.Timelapses, u.timelapse); err != nil {
		errs.Add("video_timelapse", uploadMessage(err))
	}
	for i, fh := range u.photos {
		if err := storage.Check(storage.ProgressPhotos, fh); err != nil {
			errs.AddItem(i, "image", uploadMessage(err))
		}
	}
}

func uploadMessage(err error) string {
	switch {
	case errors.Is(err, storage.ErrTooLarge):
		return fmt.Sprintf("File too large. The limit is %dMB.", config.MAX_UPLOAD_MB)
	case errors.Is(err, storage.ErrUnsupportedType):
		return "Upload a valid file. The file you uploaded is not of a supported type."
	}
	return "Upload a valid file."
}

// store writes every upload and points in at the stored paths. Paths written so far are
// returned even on error so the caller can remove them.
func (u formUploads) store(in *ArtworkInput) ([]string, error) {
	var stored []string
	save := func(kind storage.Kind, fh *multipart.FileHeader, dst *string) error {
		if fh == nil {
			return nil
		}
		p, err := storage.Save(kind, fh)
		if err != nil {
			return err
		}
		stored = append(stored, p)
		*dst = p
		return nil
	}

	if err := save(storage.FinalImages, u.finalImage, &in.FinalImage); err != nil {
		return stored, err
	}
	if err := save(storage.Timelapses, u.timelapse, &in.VideoTimelapse); err != nil {
		return stored, err
	}
	for i, fh := range u.photos {
		if in.Photos[i].Delete {
			continue
		}
		if err := save(storage.ProgressPhotos, fh, &in.Photos[i].Image); err != nil {
			return stored, err
		}
	}
	return stored, nil
}
