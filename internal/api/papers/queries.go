package papers

import (
	"paper-tracker/internal/domain/papers"
	"paper-tracker/internal/domain/reading"

	"gorm.io/gorm"
)

func userPapersQuery(db *gorm.DB, userID uint) *gorm.DB {
	return db.Model(&papers.Paper{}).Where("user_id = ?", userID)
}

// applySort maps a sort mode onto the query. Only manual order is backed by
// stored state; the rest are pure query-time sorts.
func applySort(q *gorm.DB, mode reading.SortMode) *gorm.DB {
	switch mode {
	case reading.SortLikes:
		return q.Order("likes DESC").Order("created_at DESC")
	case reading.SortAdded:
		return q.Order("created_at DESC")
	case reading.SortRead:
		return q.Order("read_at DESC NULLS LAST").Order("created_at DESC")
	default:
		return q.Order("order_index ASC").Order("id ASC")
	}
}

// preloadPaper loads category and ordered author links.
func preloadPaper(q *gorm.DB) *gorm.DB {
	return q.Preload("Category").
		Preload("AuthorLinks", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("AuthorLinks.Author")
}

func statusCounts(db *gorm.DB, userID uint) (map[reading.Status]int64, error) {
	var rows []struct {
		Status reading.Status
		Count  int64
	}
	err := userPapersQuery(db, userID).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := map[reading.Status]int64{
		reading.StatusPlanned: 0,
		reading.StatusReading: 0,
		reading.StatusRead:    0,
	}
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

func sourceCounts(db *gorm.DB, userID uint) (map[uint]int64, error) {
	var rows []struct {
		PaperID uint
		Count   int64
	}
	err := db.Model(&papers.DiscoverySource{}).
		Select("discovery_sources.paper_id, COUNT(*) AS count").
		Joins("JOIN papers ON papers.id = discovery_sources.paper_id").
		Where("papers.user_id = ?", userID).
		Group("discovery_sources.paper_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[uint]int64, len(rows))
	for _, r := range rows {
		out[r.PaperID] = r.Count
	}
	return out, nil
}
