package papers

import (
	"time"

	"paper-tracker/internal/domain/authors"
	"paper-tracker/internal/domain/categories"
	"paper-tracker/internal/domain/reading"
)

type Paper struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index;uniqueIndex:uq_paper_user_arxiv_id" json:"-"`

	Title    string `gorm:"size:500;not null" json:"title"`
	Abstract string `gorm:"type:text" json:"abstract,omitempty"`
	URL      string `gorm:"size:500" json:"url,omitempty"`
	PDFURL   string `gorm:"size:500" json:"pdf_url,omitempty"`

	Source Source         `gorm:"type:varchar(20);not null;default:'MANUAL'" json:"source"`
	Status reading.Status `gorm:"type:varchar(20);not null;default:'PLANNED';index" json:"status"`

	CategoryID *uint                `gorm:"index" json:"category_id,omitempty"`
	Category   *categories.Category `gorm:"constraint:OnDelete:CASCADE" json:"category,omitempty"`

	// OrderIndex is a sort key, not a sequence: gaps and ties are fine.
	OrderIndex int `gorm:"not null;default:0" json:"order_index"`
	Likes      int `gorm:"not null;default:0" json:"likes"`

	Notes string `gorm:"type:text" json:"notes,omitempty"`

	ArxivID              *string    `gorm:"size:50;uniqueIndex:uq_paper_user_arxiv_id" json:"arxiv_id,omitempty"`
	ArxivVersion         string     `gorm:"size:10" json:"arxiv_version,omitempty"`
	ArxivPrimaryCategory string     `gorm:"size:50" json:"arxiv_primary_category,omitempty"`
	ArxivPublishedAt     *time.Time `json:"arxiv_published_at,omitempty"`
	ArxivUpdatedAt       *time.Time `json:"arxiv_updated_at,omitempty"`

	DOI         string `gorm:"size:100" json:"doi,omitempty"`
	JournalRef  string `gorm:"size:200" json:"journal_ref,omitempty"`
	CitationKey string `gorm:"size:100" json:"citation_key,omitempty"`
	VenueYear   string `gorm:"size:100" json:"venue_year,omitempty"`

	AuthorLinks      []PaperAuthor     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	DiscoverySources []DiscoverySource `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
}

// PaperAuthor is the ordered join between papers and authors. The list is
// replaced wholesale whenever a paper's authors change.
type PaperAuthor struct {
	ID       uint           `gorm:"primaryKey" json:"id"`
	PaperID  uint           `gorm:"not null;index;uniqueIndex:uq_paper_author;uniqueIndex:uq_paper_author_position" json:"paper_id"`
	AuthorID uint           `gorm:"not null;index;uniqueIndex:uq_paper_author" json:"author_id"`
	Author   authors.Author `gorm:"constraint:OnDelete:CASCADE" json:"author"`
	Position int            `gorm:"not null;default:0;uniqueIndex:uq_paper_author_position" json:"position"`

	CreatedAt time.Time `json:"created_at"`
}

// DiscoverySource records how a paper was found: via another paper
// (optionally resolved to one already in the library) or a free-text note.
type DiscoverySource struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	PaperID uint `gorm:"not null;index" json:"paper_id"`

	SourceType    DiscoveryType `gorm:"type:varchar(10);not null" json:"source_type"`
	SourceArxivID *string       `gorm:"size:50" json:"source_arxiv_id,omitempty"`
	SourcePaperID *uint         `gorm:"index" json:"source_paper_id,omitempty"`
	SourceText    *string       `gorm:"type:text" json:"source_text,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
