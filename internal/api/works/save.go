package works

import (
	"fmt"

	"artifolio/internal/domain/works"
	"artifolio/internal/validation"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SaveResult describes a committed artwork save.
type SaveResult struct {
	Artwork works.Artwork
	Created bool
	// upload paths no longer referenced by any row
	Orphaned []string
}

// SaveArtwork validates in and writes the artwork together with its photo line items in a
// single transaction. artworkID == 0 creates an artwork owned by userID; otherwise only
// userID's own artwork resolves (gorm.ErrRecordNotFound otherwise). Validation failures are
// returned as *validation.FormErrors and leave the database untouched.
func SaveArtwork(db *gorm.DB, userID, artworkID uint, in ArtworkInput) (SaveResult, error) {
	creating := artworkID == 0
	fields, ops, errs := cleanArtwork(in, creating)
	if !errs.Empty() {
		return SaveResult{}, errs
	}

	res := SaveResult{Created: creating}
	err := db.Transaction(func(tx *gorm.DB) error {
		a := works.Artwork{UserID: userID}
		if !creating {
			if err := userArtworksQuery(tx, userID).First(&a, "artworks.id = ?", artworkID).Error; err != nil {
				return err
			}
		}

		existing, err := ownedPhotos(tx, a.ID, ops)
		if err != nil {
			return err
		}
		if ferrs := checkPhotoOwnership(ops, existing); !ferrs.Empty() {
			return ferrs
		}

		previous := a
		fields.applyTo(&a)
		if creating {
			err = tx.Omit(clause.Associations).Create(&a).Error
		} else {
			err = tx.Omit(clause.Associations).Save(&a).Error
		}
		if err != nil {
			return fmt.Errorf("save artwork: %w", err)
		}
		if !creating {
			res.Orphaned = append(res.Orphaned, replacedFiles(previous, a)...)
		}

		var deletes []uint
		for _, op := range ops {
			switch op.kind {
			case photoCreate:
				p := works.ProgressPhoto{ArtworkID: a.ID, Image: op.image, Order: op.order}
				if err := tx.Create(&p).Error; err != nil {
					return fmt.Errorf("create progress photo: %w", err)
				}
			case photoUpdate:
				updates := map[string]any{"sort_order": op.order}
				if op.image != "" {
					updates["image"] = op.image
					res.Orphaned = append(res.Orphaned, existing[op.id].Image)
				}
				if err := tx.Model(&works.ProgressPhoto{}).
					Where("id = ? AND artwork_id = ?", op.id, a.ID).
					Updates(updates).Error; err != nil {
					return fmt.Errorf("update progress photo %d: %w", op.id, err)
				}
			case photoDelete:
				deletes = append(deletes, op.id)
				res.Orphaned = append(res.Orphaned, existing[op.id].Image)
			}
		}

		if len(deletes) > 0 {
			if err := tx.Where("artwork_id = ? AND id IN ?", a.ID, deletes).
				Delete(&works.ProgressPhoto{}).Error; err != nil {
				return fmt.Errorf("delete progress photos: %w", err)
			}
		}

		res.Artwork = a
		return nil
	})
	if err != nil {
		return SaveResult{}, err
	}
	return res, nil
}

// ownedPhotos loads the photos referenced by ops that belong to artworkID.
func ownedPhotos(tx *gorm.DB, artworkID uint, ops []photoOp) (map[uint]works.ProgressPhoto, error) {
	out := map[uint]works.ProgressPhoto{}
	var ids []uint
	for _, op := range ops {
		if op.id != 0 {
			ids = append(ids, op.id)
		}
	}
	if len(ids) == 0 || artworkID == 0 {
		return out, nil
	}

	var photos []works.ProgressPhoto
	if err := tx.Where("artwork_id = ? AND id IN ?", artworkID, ids).Find(&photos).Error; err != nil {
		return nil, fmt.Errorf("load progress photos: %w", err)
	}
	for _, p := range photos {
		out[p.ID] = p
	}
	return out, nil
}

func checkPhotoOwnership(ops []photoOp, existing map[uint]works.ProgressPhoto) *validation.FormErrors {
	errs := validation.New()
	for _, op := range ops {
		if op.id == 0 {
			continue
		}
		if _, ok := existing[op.id]; !ok {
			errs.AddItem(op.index, "id", "Select a valid choice. That choice is not one of the available choices.")
		}
	}
	return errs
}

func replacedFiles(before, after works.Artwork) []string {
	var out []string
	if before.FinalImage != "" && before.FinalImage != after.FinalImage {
		out = append(out, before.FinalImage)
	}
	if before.VideoTimelapse != nil && *before.VideoTimelapse != "" &&
		(after.VideoTimelapse == nil || *after.VideoTimelapse != *before.VideoTimelapse) {
		out = append(out, *before.VideoTimelapse)
	}
	return out
}

// DeleteArtwork removes userID's artwork with its comments and photos in one transaction
// and returns the upload paths the deleted rows referenced.
func DeleteArtwork(db *gorm.DB, userID, artworkID uint) ([]string, error) {
	var files []string
	err := db.Transaction(func(tx *gorm.DB) error {
		var a works.Artwork
		if err := userArtworksQuery(tx, userID).First(&a, "artworks.id = ?", artworkID).Error; err != nil {
			return err
		}

		var photos []works.ProgressPhoto
		if err := tx.Where("artwork_id = ?", a.ID).Find(&photos).Error; err != nil {
			return fmt.Errorf("load progress photos: %w", err)
		}

		if err := tx.Where("artwork_id = ?", a.ID).Delete(&works.PrivateComment{}).Error; err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}
		if err := tx.Where("artwork_id = ?", a.ID).Delete(&works.ProgressPhoto{}).Error; err != nil {
			return fmt.Errorf("delete progress photos: %w", err)
		}
		if err := tx.Delete(&works.Artwork{}, a.ID).Error; err != nil {
			return fmt.Errorf("delete artwork: %w", err)
		}

		files = append(files, a.StoredFiles()...)
		for _, p := range photos {
			files = append(files, p.Image)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
