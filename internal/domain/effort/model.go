package effort

import (
	"time"

	"paper-tracker/internal/domain/papers"
	"paper-tracker/internal/domain/textbooks"

	"gorm.io/gorm"
)

// Log is one effort entry against a paper or a textbook (exactly one of
// the two references is set).
type Log struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"-"`

	PaperID    *uint               `gorm:"index" json:"paper_id,omitempty"`
	Paper      *papers.Paper       `gorm:"constraint:OnDelete:CASCADE" json:"paper,omitempty"`
	TextbookID *uint               `gorm:"index" json:"textbook_id,omitempty"`
	Textbook   *textbooks.Textbook `gorm:"constraint:OnDelete:CASCADE" json:"textbook,omitempty"`

	Points int    `gorm:"not null;default:1" json:"points"`
	Note   string `gorm:"type:text" json:"note,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (Log) TableName() string {
	return "effort_logs"
}

// PaperTotals sums effort points per paper for one user.
func PaperTotals(db *gorm.DB, userID uint) (map[uint]int, error) {
	return totals(db, userID, "paper_id")
}

// TextbookTotals sums effort points per textbook for one user.
func TextbookTotals(db *gorm.DB, userID uint) (map[uint]int, error) {
	return totals(db, userID, "textbook_id")
}

func totals(db *gorm.DB, userID uint, column string) (map[uint]int, error) {
	var rows []struct {
		ItemID uint
		Total  int
	}
	err := db.Model(&Log{}).
		Select(column+" AS item_id, SUM(points) AS total").
		Where("user_id = ? AND "+column+" IS NOT NULL", userID).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[uint]int, len(rows))
	for _, r := range rows {
		out[r.ItemID] = r.Total
	}
	return out, nil
}

// PaperTotal sums effort points for a single paper.
func PaperTotal(db *gorm.DB, userID, paperID uint) (int, error) {
	return totalFor(db, userID, "paper_id", paperID)
}

// TextbookTotal sums effort points for a single textbook.
func TextbookTotal(db *gorm.DB, userID, textbookID uint) (int, error) {
	return totalFor(db, userID, "textbook_id", textbookID)
}

func totalFor(db *gorm.DB, userID uint, column string, itemID uint) (int, error) {
	var total *int
	err := db.Model(&Log{}).
		Select("SUM(points)").
		Where("user_id = ? AND "+column+" = ?", userID, itemID).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}
