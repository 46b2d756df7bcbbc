package authors

import (
	"errors"

	"paper-tracker/internal/arxiv"

	"gorm.io/gorm"
)

// Resolve returns the author a name refers to within a user's library,
// creating one if none exists. Matching priority: ORCID, then the supplied
// slug, then the slug derived from the name. The new row is created on the
// caller's transaction without committing, so author creation can be part
// of a larger atomic write.
func Resolve(db *gorm.DB, userID uint, name, orcid, slug string) (*Author, error) {
	if orcid != "" {
		var author Author
		err := db.Where("user_id = ? AND orcid = ?", userID, orcid).First(&author).Error
		if err == nil {
			return &author, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if slug == "" {
		slug = arxiv.NormalizeAuthorName(name)
	}

	var author Author
	err := db.Where("user_id = ? AND slug = ?", userID, slug).First(&author).Error
	if err == nil {
		return &author, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	author = Author{UserID: userID, Name: name, Slug: &slug}
	if orcid != "" {
		author.ORCID = &orcid
	}

	if err := db.Create(&author).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race, or the display name already exists under a
			// different slug. Retry as a lookup once.
			var existing Author
			lerr := db.Where("user_id = ? AND (slug = ? OR name = ?)", userID, slug, name).
				First(&existing).Error
			if lerr == nil {
				return &existing, nil
			}
		}
		return nil, err
	}
	return &author, nil
}
