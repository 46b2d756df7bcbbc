// Package ordering maintains the manual sort keys for papers and textbooks.
// Order indexes are gap-spaced integers: new items are placed 10 below the
// current minimum so they sort first, and a reorder rewrites the whole
// partition to 10, 20, 30, ...
package ordering

import (
	"paper-tracker/internal/domain/reading"

	"gorm.io/gorm"
)

// Gap is the spacing left between order indexes.
const Gap = 10

// Partition identifies the bucket within which order indexes are compared.
// CategoryID is optional; item creation passes a status-only partition so a
// new item sorts first in the all-categories view.
type Partition struct {
	UserID     uint
	Status     reading.Status
	CategoryID *uint
}

func (p Partition) scope(db *gorm.DB, model any) *gorm.DB {
	q := db.Model(model).Where("user_id = ? AND status = ?", p.UserID, p.Status)
	if p.CategoryID != nil {
		q = q.Where("category_id = ?", *p.CategoryID)
	}
	return q
}

// PlaceNew computes the order index for a new item in the partition: 10
// below the current minimum, or 0 when the partition is empty. Two
// concurrent calls may collide on the same index; order_index carries no
// uniqueness constraint, so a tie only costs ordering determinism.
func PlaceNew(db *gorm.DB, model any, p Partition) (int, error) {
	var min *int
	err := p.scope(db, model).Select("MIN(order_index)").Scan(&min).Error
	if err != nil {
		return 0, err
	}
	if min == nil {
		return 0, nil
	}
	return *min - Gap, nil
}

// Reorder resequences the partition to the explicit id order, assigning
// (position+1)*10. The write is all-or-nothing: if the supplied ids do not
// exactly match the items found in the partition (stale, foreign, or
// duplicated ids), nothing is written and Reorder returns false.
func Reorder(db *gorm.DB, model any, p Partition, ids []uint) (bool, error) {
	matched := false
	err := db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := p.scope(tx, model).Where("id IN ?", ids).Count(&count).Error; err != nil {
			return err
		}
		if count != int64(len(ids)) {
			return nil
		}

		for i, id := range ids {
			err := tx.Model(model).
				Where("id = ? AND user_id = ?", id, p.UserID).
				Update("order_index", (i+1)*Gap).Error
			if err != nil {
				return err
			}
		}
		matched = true
		return nil
	})
	return matched, err
}
