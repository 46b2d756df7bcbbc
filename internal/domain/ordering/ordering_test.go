package ordering

import (
	"testing"

	"paper-tracker/internal/domain/papers"
	"paper-tracker/internal/domain/reading"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&papers.Paper{}))
	return db
}

func addPaper(t *testing.T, db *gorm.DB, userID uint, status reading.Status, orderIndex int) *papers.Paper {
	t.Helper()
	p := &papers.Paper{
		UserID:     userID,
		Title:      "paper",
		Status:     status,
		OrderIndex: orderIndex,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func orderIndexes(t *testing.T, db *gorm.DB, ids []uint) []int {
	t.Helper()
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		var p papers.Paper
		require.NoError(t, db.First(&p, id).Error)
		out = append(out, p.OrderIndex)
	}
	return out
}

func TestPlaceNewEmptyPartition(t *testing.T) {
	db := newTestDB(t)

	idx, err := PlaceNew(db, &papers.Paper{}, Partition{UserID: 1, Status: reading.StatusPlanned})
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
}

func TestPlaceNewDescends(t *testing.T) {
	db := newTestDB(t)
	p := Partition{UserID: 1, Status: reading.StatusPlanned}

	want := []int{0, -10, -20}
	for _, expected := range want {
		idx, err := PlaceNew(db, &papers.Paper{}, p)
		require.NoError(t, err)
		assert.Equal(t, expected, idx)
		addPaper(t, db, 1, reading.StatusPlanned, idx)
	}
}

func TestPlaceNewIgnoresOtherPartitions(t *testing.T) {
	db := newTestDB(t)

	addPaper(t, db, 1, reading.StatusReading, -50)
	addPaper(t, db, 2, reading.StatusPlanned, -50)

	idx, err := PlaceNew(db, &papers.Paper{}, Partition{UserID: 1, Status: reading.StatusPlanned})
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
}

func TestPlaceNewCategoryScoped(t *testing.T) {
	db := newTestDB(t)

	catID := uint(7)
	inCat := addPaper(t, db, 1, reading.StatusPlanned, 30)
	inCat.CategoryID = &catID
	require.NoError(t, db.Save(inCat).Error)
	addPaper(t, db, 1, reading.StatusPlanned, -40)

	idx, err := PlaceNew(db, &papers.Paper{}, Partition{UserID: 1, Status: reading.StatusPlanned, CategoryID: &catID})
	require.NoError(t, err)
	assert.Equal(t, 20, idx)
}

func TestReorder(t *testing.T) {
	db := newTestDB(t)

	a := addPaper(t, db, 1, reading.StatusPlanned, 0)
	b := addPaper(t, db, 1, reading.StatusPlanned, -10)
	c := addPaper(t, db, 1, reading.StatusPlanned, -20)

	ids := []uint{c.ID, a.ID, b.ID}
	matched, err := Reorder(db, &papers.Paper{}, Partition{UserID: 1, Status: reading.StatusPlanned}, ids)
	require.NoError(t, err)
	require.True(t, matched)

	assert.Equal(t, []int{10, 20, 30}, orderIndexes(t, db, ids))
}

func TestReorderRejectsForeignID(t *testing.T) {
	db := newTestDB(t)

	a := addPaper(t, db, 1, reading.StatusPlanned, 0)
	b := addPaper(t, db, 1, reading.StatusPlanned, -10)
	other := addPaper(t, db, 2, reading.StatusPlanned, 0)

	matched, err := Reorder(db, &papers.Paper{}, Partition{UserID: 1, Status: reading.StatusPlanned}, []uint{other.ID, b.ID, a.ID})
	require.NoError(t, err)
	assert.False(t, matched)

	// Nothing was written.
	assert.Equal(t, []int{0, -10, 0}, orderIndexes(t, db, []uint{a.ID, b.ID, other.ID}))
}

func TestReorderRejectsWrongStatus(t *testing.T) {
	db := newTestDB(t)

	a := addPaper(t, db, 1, reading.StatusPlanned, 0)
	stale := addPaper(t, db, 1, reading.StatusRead, -10)

	matched, err := Reorder(db, &papers.Paper{}, Partition{UserID: 1, Status: reading.StatusPlanned}, []uint{stale.ID, a.ID})
	require.NoError(t, err)
	assert.False(t, matched)

	assert.Equal(t, []int{0, -10}, orderIndexes(t, db, []uint{a.ID, stale.ID}))
}

func TestReorderWithinCategory(t *testing.T) {
	db := newTestDB(t)
	catID := uint(3)

	var ids []uint
	for i := 0; i < 2; i++ {
		p := addPaper(t, db, 1, reading.StatusReading, -10*i)
		p.CategoryID = &catID
		require.NoError(t, db.Save(p).Error)
		ids = append(ids, p.ID)
	}
	outside := addPaper(t, db, 1, reading.StatusReading, -99)

	matched, err := Reorder(db, &papers.Paper{}, Partition{UserID: 1, Status: reading.StatusReading, CategoryID: &catID}, []uint{ids[1], ids[0]})
	require.NoError(t, err)
	require.True(t, matched)

	assert.Equal(t, []int{20, 10}, orderIndexes(t, db, ids))
	assert.Equal(t, []int{-99}, orderIndexes(t, db, []uint{outside.ID}))
}
