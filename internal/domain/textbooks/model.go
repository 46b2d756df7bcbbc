package textbooks

import (
	"time"

	"paper-tracker/internal/domain/categories"
	"paper-tracker/internal/domain/reading"
)

type Textbook struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"-"`

	Title string `gorm:"size:500;not null" json:"title"`

	// Authors as a joined display string, the way Open Library reports them.
	Authors   string `gorm:"size:500" json:"authors,omitempty"`
	Publisher string `gorm:"size:200" json:"publisher,omitempty"`
	Year      *int   `json:"year,omitempty"`
	ISBN      string `gorm:"size:20" json:"isbn,omitempty"`
	Edition   string `gorm:"size:50" json:"edition,omitempty"`
	URL       string `gorm:"size:500" json:"url,omitempty"`

	Status reading.Status `gorm:"type:varchar(20);not null;default:'PLANNED';index" json:"status"`

	CategoryID *uint                `gorm:"index" json:"category_id,omitempty"`
	Category   *categories.Category `gorm:"constraint:OnDelete:SET NULL" json:"category,omitempty"`

	OrderIndex int `gorm:"not null;default:0" json:"order_index"`
	Likes      int `gorm:"not null;default:0" json:"likes"`

	Notes string `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
}
