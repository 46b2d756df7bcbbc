package authors

import "time"

type Author struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index;uniqueIndex:uq_author_user_name;uniqueIndex:uq_author_user_orcid;uniqueIndex:uq_author_user_slug" json:"-"`

	Name string `gorm:"size:255;not null;uniqueIndex:uq_author_user_name" json:"name"`

	// ORCID is the strong external identifier; Slug is the weak one
	// derived from the display name.
	ORCID *string `gorm:"column:orcid;size:50;uniqueIndex:uq_author_user_orcid" json:"orcid,omitempty"`
	Slug  *string `gorm:"size:255;uniqueIndex:uq_author_user_slug" json:"slug,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
